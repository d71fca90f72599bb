package render

import (
	"image/color"
	"math"

	"github.com/npillmayer/kibt"
)

// Color maps the result of a pixel program to a color. A list of three
// values maps to red, green and blue; any other list is black. Every other
// value is mapped to a gray level.
func Color(v kibt.Value) color.RGBA {
	if l, ok := v.(kibt.List); ok {
		if len(l) != 3 {
			return color.RGBA{A: 0xff}
		}
		return color.RGBA{R: channel(l[0]), G: channel(l[1]), B: channel(l[2]), A: 0xff}
	}
	g := channel(v)
	return color.RGBA{R: g, G: g, B: g, A: 0xff}
}

// channel maps a single value to a color channel. Integers are clamped to
// 0…255, floats to 0…1 and then scaled by 256, saturating at 255. Anything
// else is 0.
func channel(v kibt.Value) uint8 {
	switch x := v.(type) {
	case kibt.Int:
		switch {
		case x < 0:
			return 0
		case x > 255:
			return 255
		}
		return uint8(x)
	case kibt.Float:
		f := float32(x)
		switch {
		case math.IsNaN(float64(f)) || f <= 0:
			return 0
		case f >= 1:
			return 255
		}
		return uint8(f * 256)
	}
	return 0
}
