package bytecode

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Opcode represents a bytecode instruction.
type Opcode byte

const (
	// Stack manipulation and control flow (0x00-0x0F)

	OpNop  Opcode = 0x00 // No operation
	OpPop  Opcode = 0x01 // Pop top of stack
	OpGet  Opcode = 0x02 // Push copy of slot: OpGet <slot:u8>
	OpSet  Opcode = 0x03 // Pop and store to slot: OpSet <slot:u8>
	OpSwap Opcode = 0x04 // Swap top two stack elements
	OpJump Opcode = 0x05 // Pop condition, jump if Int 0: OpJump <target:u32>
	OpCall Opcode = 0x06 // Call native: OpCall <argc:u8>

	// Literals (0x10-0x1F)

	OpLitInt  Opcode = 0x10 // Push Int: OpLitInt <value:i32>
	OpLitFlt  Opcode = 0x11 // Push Float: OpLitFlt <value:f32>
	OpLitNone Opcode = 0x12 // Push None
)

type opInfo struct {
	name  string
	width int // operand bytes
}

var opTable = map[Opcode]opInfo{
	OpNop:     {"NOP", 0},
	OpPop:     {"POP", 0},
	OpGet:     {"GET", 1},
	OpSet:     {"SET", 1},
	OpSwap:    {"SWAP", 0},
	OpJump:    {"JUMP", 4},
	OpCall:    {"CALL", 1},
	OpLitInt:  {"LIT_INT", 4},
	OpLitFlt:  {"LIT_FLT", 4},
	OpLitNone: {"LIT_NONE", 0},
}

// String returns the mnemonic of an opcode.
func (op Opcode) String() string {
	if info, ok := opTable[op]; ok {
		return info.name
	}
	return fmt.Sprintf("OP_%02X", byte(op))
}

// IsValid is a predicate: is op a known opcode?
func (op Opcode) IsValid() bool {
	_, ok := opTable[op]
	return ok
}

// OperandWidth returns the number of operand bytes following op.
func (op Opcode) OperandWidth() int {
	return opTable[op].width
}

// MaxU8 is the largest value of a one-byte operand (slot index or argument count).
const MaxU8 = 0xff

// StackEffect returns the net change of the operand stack depth caused by
// executing op with the given operand.
func StackEffect(op Opcode, operand uint32) int {
	switch op {
	case OpPop, OpSet, OpJump:
		return -1
	case OpGet, OpLitInt, OpLitFlt, OpLitNone:
		return 1
	case OpCall:
		// callee and argc arguments are consumed, the result is pushed
		return -int(operand)
	}
	return 0
}

// --- Decoding --------------------------------------------------------------

// Decoding errors.
var (
	ErrUnknownOpcode = errors.New("unknown opcode")
	ErrTruncated     = errors.New("truncated operand")
)

// Instruction is a decoded instruction.
type Instruction struct {
	Op      Opcode
	Operand uint32 // raw operand bits, zero if op has no operand
}

// Len returns the encoded length of the instruction in bytes.
func (ins Instruction) Len() int {
	return 1 + ins.Op.OperandWidth()
}

// Int returns the operand interpreted as a signed 32-bit integer.
func (ins Instruction) Int() int32 {
	return int32(ins.Operand)
}

// Decode decodes the instruction starting at code[pc].
func Decode(code []byte, pc int) (Instruction, error) {
	if pc < 0 || pc >= len(code) {
		return Instruction{}, fmt.Errorf("%w: pc %d outside of code", ErrTruncated, pc)
	}
	op := Opcode(code[pc])
	info, ok := opTable[op]
	if !ok {
		return Instruction{Op: op}, fmt.Errorf("%w 0x%02x", ErrUnknownOpcode, byte(op))
	}
	ins := Instruction{Op: op}
	operand := code[pc+1:]
	if len(operand) < info.width {
		return ins, fmt.Errorf("%w for %s at %d", ErrTruncated, op, pc)
	}
	switch info.width {
	case 1:
		ins.Operand = uint32(operand[0])
	case 4:
		ins.Operand = binary.BigEndian.Uint32(operand)
	}
	return ins, nil
}
