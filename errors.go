package kibt

import (
	"github.com/joomcode/errorx"
)

// Errors is the error namespace of kibt.
var Errors = errorx.NewNamespace("kibt")

var (
	// CompileError flags a unit which could not be compiled. Compile errors
	// are recoverable: the unit is rejected and no bytecode is produced.
	CompileError = Errors.NewType("compile")

	// Trap flags an execution fault of the interpreter. A trap ends the
	// current run. Correct bytecode never traps, therefore a trap indicates
	// either a compiler bug or a hand-crafted, invalid byte buffer.
	Trap = Errors.NewType("trap")
)

var (
	// SpanProperty carries the source span of a compile error.
	SpanProperty = errorx.RegisterProperty("span")

	// PCProperty carries the program counter of the instruction which trapped.
	PCProperty = errorx.RegisterProperty("pc")
)

// ErrorSpan extracts the source span from a compile error, if present.
func ErrorSpan(err error) (Span, bool) {
	p, ok := errorx.ExtractProperty(err, SpanProperty)
	if !ok {
		return Span{}, false
	}
	span, ok := p.(Span)
	return span, ok
}

// TrapPC extracts the program counter from a trap, if present.
func TrapPC(err error) (int, bool) {
	p, ok := errorx.ExtractProperty(err, PCProperty)
	if !ok {
		return 0, false
	}
	pc, ok := p.(int)
	return pc, ok
}

// Excerpt decorates a compile error with the source line it occurred in,
// marking the error position with a caret.
func Excerpt(err error, src string) error {
	span, ok := ErrorSpan(err)
	if !ok {
		return err
	}
	pos := span.From()
	if pos < 0 || pos > len(src) {
		return err
	}
	start := 0
	for i := pos - 1; i >= 0; i-- {
		if src[i] == '\n' {
			start = i + 1
			break
		}
	}
	end := len(src)
	for i := pos; i < len(src); i++ {
		if src[i] == '\n' {
			end = i
			break
		}
	}
	return errorx.Decorate(err, "code: %s", src[start:pos]+"^"+src[pos:end])
}
