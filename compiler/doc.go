/*
Package compiler translates kibt source into bytecode in a single pass.

Parsing and code generation happen together: the compiler is a recursive
descent parser which emits instructions as soon as it recognizes them. No
syntax tree is built. Forward jumps of conditionals are emitted with
placeholder targets and back-patched when their destinations are known.

Variables live on the interpreter's operand stack and are addressed by
absolute slot numbers. The compiler therefore mirrors the runtime stack in a
compile-time environment: one entry per stack slot, named for bindings and
anonymous for temporaries. The environment is seeded with one entry per
library function, exactly as the interpreter seeds its stack. After every
statement the compiler checks that the environment and the simulated stack
depth agree.

Grammar

	primary  ➞ '(' primary primary* ')'
	         |  '{' stmt* '}'
	         |  'if' primary primary 'else' primary
	         |  'none'  |  int  |  float  |  ident
	stmt     ➞ 'let' ident primary  |  'set' ident primary  |  primary

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2025 Norbert Pillmayer <norbert@pillmayer.com>

*/
package compiler

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'kibt.compiler'.
func tracer() tracing.Trace {
	return tracing.Select("kibt.compiler")
}
