package render

import (
	"context"
	"sync"

	"github.com/cnf/structhash"
	"github.com/npillmayer/kibt"
	"github.com/npillmayer/kibt/compiler"
	"github.com/npillmayer/kibt/library"
)

// Renderer draws programs onto canvases. It owns the draw table and keeps the
// code of every program it has compiled, so drawing the same source again
// (on another canvas, or in another frame) skips compilation.
//
// A Renderer is safe for concurrent use.
type Renderer struct {
	lib   *kibt.Library[*Pixel]
	mu    sync.Mutex
	cache map[string][]byte
}

// NewRenderer creates a renderer using the draw table.
func NewRenderer() *Renderer {
	return &Renderer{
		lib:   library.DrawTable[*Pixel](),
		cache: make(map[string][]byte),
	}
}

// Library returns the table programs are compiled against.
func (r *Renderer) Library() *kibt.Library[*Pixel] {
	return r.lib
}

type unit struct {
	Layout string
	Source string
}

// Compile compiles src against the draw table, consulting the cache first.
func (r *Renderer) Compile(src string) ([]byte, error) {
	key, err := structhash.Hash(unit{Layout: r.lib.Signature(), Source: src}, 1)
	if err != nil {
		tracer().Errorf("cannot hash unit, not caching: %v", err)
		return compiler.Compile(src, r.lib)
	}
	r.mu.Lock()
	code, ok := r.cache[key]
	r.mu.Unlock()
	if ok {
		tracer().Debugf("code cache hit for %s", key)
		return code, nil
	}
	code, err = compiler.Compile(src, r.lib)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.cache[key] = code
	r.mu.Unlock()
	return code, nil
}

// Cached returns the number of compiled units in the cache.
func (r *Renderer) Cached() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}

// Render compiles every source and draws it onto the canvas, in order. Each
// program paints every pixel, so the last one wins, unless it fails. All
// sources are compiled before any drawing starts.
func (r *Renderer) Render(ctx context.Context, c *Canvas, sources ...string) error {
	units := make([][]byte, len(sources))
	for i, src := range sources {
		code, err := r.Compile(src)
		if err != nil {
			return err
		}
		units[i] = code
	}
	for _, code := range units {
		if err := c.Draw(ctx, code, r.lib); err != nil {
			return err
		}
	}
	return nil
}
