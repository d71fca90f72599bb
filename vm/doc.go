/*
Package vm implements the kibt bytecode interpreter.

The interpreter is a stack machine executing one compiled unit against one
environment value. It is driven from the outside: every call to Tick
executes exactly one instruction, so callers may step through a program and
inspect the operand stack in between. Run is a convenience driver ticking
until the end of the code.

At creation, the operand stack is seeded with one native function reference
per library entry, in table order. Compiled code addresses these slots as
globals; compiler and interpreter have to be handed the same library.

Natives are called with a pull-based argument protocol: the native receives
an argument source and takes arguments one by one until it is satisfied or
the source is exhausted. Arguments left over are discarded when the native
returns.

Execution faults (traps) end a run. They are reported as errors of type
kibt.Trap. With configuration flag "panic-on-vm-trap" set, the interpreter
panics instead, which helps with post-mortem debugging of the compiler.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2025 Norbert Pillmayer <norbert@pillmayer.com>

*/
package vm

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'kibt.vm'.
func tracer() tracing.Trace {
	return tracing.Select("kibt.vm")
}
