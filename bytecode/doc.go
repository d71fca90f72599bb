/*
Package bytecode defines the instruction encoding of kibt programs.

A compiled unit is a plain byte buffer. Every instruction starts with a
one-byte opcode; operands follow immediately, without alignment or padding.
Multi-byte operands are big-endian.

	NOP                 no effect
	POP                 discard top value
	GET  idx:u8         push a copy of stack[idx]
	SET  idx:u8         pop a value and store it into stack[idx]
	SWAP                exchange the top two values
	JUMP target:u32     pop an Int condition; jump to target if it is 0
	CALL argc:u8        pop a native function and call it with argc arguments
	LIT_INT  val:i32    push an Int
	LIT_FLT  val:f32    push a Float
	LIT_NONE            push None

Buffers carry no metadata. They are built append-only by an Emitter during
compilation and are treated as immutable afterwards.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2025 Norbert Pillmayer <norbert@pillmayer.com>

*/
package bytecode
