package bytecode

import (
	"fmt"
	"math"
	"strings"
)

// Disassemble returns a human-readable listing of code, one instruction
// per line. Names, if given, are used to annotate GET and SET operands which
// refer to global slots.
//
// Disassembly does not stop at undecodable bytes: an unknown opcode is
// listed as a single byte and decoding resumes behind it; a truncated
// operand ends the listing.
func Disassemble(code []byte, names ...string) string {
	var sb strings.Builder
	line := func(pc int, op Opcode, operand string) {
		l := fmt.Sprintf("%04d  %-9s %s", pc, op, operand)
		sb.WriteString(strings.TrimRight(l, " "))
		sb.WriteString("\n")
	}
	for pc := 0; pc < len(code); {
		ins, err := Decode(code, pc)
		if err != nil {
			if ins.Op.IsValid() {
				line(pc, ins.Op, fmt.Sprintf("<%v>", err))
				break
			}
			line(pc, ins.Op, "; unknown")
			pc++
			continue
		}
		operand := ins.operand()
		if (ins.Op == OpGet || ins.Op == OpSet) && int(ins.Operand) < len(names) {
			operand += "  ; " + names[ins.Operand]
		}
		line(pc, ins.Op, operand)
		pc += ins.Len()
	}
	return sb.String()
}

// String returns the instruction in assembler notation, e.g. "JUMP -> 0012".
func (ins Instruction) String() string {
	if operand := ins.operand(); operand != "" {
		return ins.Op.String() + " " + operand
	}
	return ins.Op.String()
}

func (ins Instruction) operand() string {
	switch ins.Op {
	case OpGet, OpSet, OpCall:
		return fmt.Sprintf("%d", ins.Operand)
	case OpJump:
		return fmt.Sprintf("-> %04d", ins.Operand)
	case OpLitInt:
		return fmt.Sprintf("%d", ins.Int())
	case OpLitFlt:
		return fmt.Sprintf("%g", math.Float32frombits(ins.Operand))
	}
	return ""
}
