/*
Package render computes images by running a kibt program once per pixel.

A program is compiled once against the draw table and then executed by one
interpreter per pixel of a canvas. Every interpreter gets its own Pixel as
environment; interpreters share nothing but the read-only code and library,
so pixels are computed in parallel.

The value a program leaves is mapped to a color: integers are channel
values from 0 to 255, floats are intensities from 0 to 1, and a list of three
values gives red, green and blue. Canvases are written as 24-bit BMP files.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2025 Norbert Pillmayer <norbert@pillmayer.com>

*/
package render

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'kibt.render'.
func tracer() tracing.Trace {
	return tracing.Select("kibt.render")
}
