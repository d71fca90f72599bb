package render

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"runtime"

	"github.com/joomcode/errorx"
	"github.com/npillmayer/kibt"
	"github.com/npillmayer/kibt/vm"
	"golang.org/x/image/bmp"
	"golang.org/x/sync/errgroup"
)

// DefaultSize is the edge length of a canvas if nothing else is requested.
const DefaultSize = 64

// Pixel is the drawing environment of a single pixel. It implements
// library.Drawing.
type Pixel struct {
	X, Y          uint32
	Width, Height uint32
}

// UV returns the pixel coordinates normalized by the canvas size.
func (p *Pixel) UV() (float32, float32) {
	return float32(p.X) / float32(p.Width), float32(p.Y) / float32(p.Height)
}

// Px returns the pixel coordinates.
func (p *Pixel) Px() (uint32, uint32) {
	return p.X, p.Y
}

// Size returns the canvas size.
func (p *Pixel) Size() (uint32, uint32) {
	return p.Width, p.Height
}

// Canvas is an RGB image every pixel of which is computed by a program.
type Canvas struct {
	img     *image.RGBA
	workers int
}

// NewCanvas creates a black canvas of width × height pixels.
func NewCanvas(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %d×%d", width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return &Canvas{img: img, workers: runtime.GOMAXPROCS(0)}, nil
}

// Size returns width and height of the canvas.
func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the canvas as an image.
func (c *Canvas) Image() image.Image {
	return c.img
}

// Draw runs code once for every pixel of the canvas and paints the pixel with
// the color of the result. code has to be compiled against lib. Rows are
// distributed over worker goroutines. The first trap stops the drawing and
// is returned; the canvas is left partially painted then.
func (c *Canvas) Draw(ctx context.Context, code []byte, lib *kibt.Library[*Pixel]) error {
	w, h := c.Size()
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(c.workers)
	for y := 0; y < h; y++ {
		y := y
		group.Go(func() error {
			for x := 0; x < w; x++ {
				px := &Pixel{X: uint32(x), Y: uint32(y), Width: uint32(w), Height: uint32(h)}
				v, err := vm.New(code, lib, px).Run(ctx)
				if err != nil {
					return errorx.Decorate(err, "pixel (%d,%d)", x, y)
				}
				c.img.SetRGBA(x, y, Color(v))
			}
			return nil
		})
	}
	err := group.Wait()
	if err != nil {
		tracer().Errorf("drawing stopped: %v", err)
	}
	return err
}

// WriteBMP encodes the canvas as a BMP image.
func (c *Canvas) WriteBMP(w io.Writer) error {
	return bmp.Encode(w, c.img)
}

// SaveBMP writes the canvas to a BMP file.
func (c *Canvas) SaveBMP(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = c.WriteBMP(f); err != nil {
		f.Close()
		return err
	}
	tracer().Infof("wrote %s", path)
	return f.Close()
}
