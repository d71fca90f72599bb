package bytecode

import (
	"encoding/binary"
	"math"
)

// Emitter builds a byte buffer append-only. Forward jumps are emitted with a
// placeholder target, which is back-patched once the destination is known.
type Emitter struct {
	code []byte
}

// Len returns the current length of the buffer, which is the address of the
// next instruction to be emitted.
func (e *Emitter) Len() int {
	return len(e.code)
}

// Bytes returns the buffer.
func (e *Emitter) Bytes() []byte {
	return e.code
}

// Emit appends an instruction without operand.
func (e *Emitter) Emit(op Opcode) {
	e.code = append(e.code, byte(op))
}

// EmitU8 appends an instruction with a one-byte operand.
func (e *Emitter) EmitU8(op Opcode, x uint8) {
	e.code = append(e.code, byte(op), x)
}

// EmitI32 appends an instruction with a four-byte signed operand.
func (e *Emitter) EmitI32(op Opcode, x int32) {
	e.code = append(e.code, byte(op))
	e.code = binary.BigEndian.AppendUint32(e.code, uint32(x))
}

// EmitF32 appends an instruction with a four-byte float operand.
func (e *Emitter) EmitF32(op Opcode, x float32) {
	e.code = append(e.code, byte(op))
	e.code = binary.BigEndian.AppendUint32(e.code, math.Float32bits(x))
}

// EmitJump appends a jump with a zero placeholder target. It returns the
// offset of the placeholder, to be handed to Patch.
func (e *Emitter) EmitJump() int {
	e.code = append(e.code, byte(OpJump))
	at := len(e.code)
	e.code = append(e.code, 0, 0, 0, 0)
	return at
}

// Patch overwrites the four-byte placeholder at offset at with target.
func (e *Emitter) Patch(at int, target uint32) {
	binary.BigEndian.PutUint32(e.code[at:at+4], target)
}

// Retract removes the last byte of the buffer and returns it.
// Retract is meant for taking back an operand-less instruction.
func (e *Emitter) Retract() (Opcode, bool) {
	if len(e.code) == 0 {
		return OpNop, false
	}
	last := Opcode(e.code[len(e.code)-1])
	e.code = e.code[:len(e.code)-1]
	return last, true
}
