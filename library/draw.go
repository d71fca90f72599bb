package library

import (
	"github.com/npillmayer/kibt"
)

// Drawing is the capability set of programs computing one pixel of an
// image.
type Drawing interface {
	kibt.Environment
	UV() (float32, float32) // normalized coordinates of the pixel
	Px() (uint32, uint32)   // pixel coordinates
	Size() (uint32, uint32) // width and height of the image
}

// Pixel accessors. None of them pulls arguments.

func UVX[E Drawing](_ kibt.ArgSource, env E) kibt.Value {
	u, _ := env.UV()
	return kibt.Float(u)
}

func UVY[E Drawing](_ kibt.ArgSource, env E) kibt.Value {
	_, v := env.UV()
	return kibt.Float(v)
}

func PxX[E Drawing](_ kibt.ArgSource, env E) kibt.Value {
	x, _ := env.Px()
	return kibt.Int(int32(x))
}

func PxY[E Drawing](_ kibt.ArgSource, env E) kibt.Value {
	_, y := env.Px()
	return kibt.Int(int32(y))
}

func Width[E Drawing](_ kibt.ArgSource, env E) kibt.Value {
	w, _ := env.Size()
	return kibt.Int(int32(w))
}

func Height[E Drawing](_ kibt.ArgSource, env E) kibt.Value {
	_, h := env.Size()
	return kibt.Int(int32(h))
}
