/*
Package library provides the native functions of kibt.

Natives are grouped by the capabilities they need from their execution
environment. The base set (arithmetic, comparison, conversion, lists) needs
nothing and is part of every table. The standalone set adds printing and
needs an environment offering an output stream; the draw set adds accessors
for the pixel currently computed and needs a drawing environment.

Tables are built generically over the environment type, so the Go compiler
checks that a host hands in an environment with the right capabilities:

	lib := library.DrawTable[*render.Pixel]()

All natives follow the pull protocol of package kibt: they take arguments
until they are satisfied or the arguments are exhausted. Numeric natives are
variadic and fold over their arguments, stopping at the first none.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2025 Norbert Pillmayer <norbert@pillmayer.com>

*/
package library

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'kibt.library'.
func tracer() tracing.Trace {
	return tracing.Select("kibt.library")
}
