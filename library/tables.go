package library

import (
	"github.com/npillmayer/kibt"
)

// base returns the entries every table starts with.
func base[E kibt.Environment]() []kibt.Entry[E] {
	return []kibt.Entry[E]{
		{Name: "int", Fn: Int[E]},
		{Name: "flt", Fn: Flt[E]},
		{Name: "list", Fn: List[E]},
		{Name: "cmp", Fn: Cmp[E]},
		{Name: "not", Fn: Not[E]},
		{Name: "neg", Fn: Neg[E]},
		{Name: "eq", Fn: Eq[E]},
		{Name: "add", Fn: Add[E]},
		{Name: "sub", Fn: Sub[E]},
		{Name: "mul", Fn: Mul[E]},
		{Name: "div", Fn: Div[E]},
		{Name: "pi", Fn: Pi[E]},
	}
}

// BaseTable creates a table of the base natives only.
func BaseTable[E kibt.Environment]() *kibt.Library[E] {
	return kibt.NewLibrary(base[E]()...)
}

// StandaloneTable creates the table for programs run on their own: the base
// natives followed by print.
func StandaloneTable[E Standalone]() *kibt.Library[E] {
	entries := append(base[E](), kibt.Entry[E]{Name: "print", Fn: Print[E]})
	return kibt.NewLibrary(entries...)
}

// DrawTable creates the table for programs computing pixels: the base
// natives followed by the pixel accessors.
func DrawTable[E Drawing]() *kibt.Library[E] {
	entries := append(base[E](),
		kibt.Entry[E]{Name: "uv_x", Fn: UVX[E]},
		kibt.Entry[E]{Name: "uv_y", Fn: UVY[E]},
		kibt.Entry[E]{Name: "px_x", Fn: PxX[E]},
		kibt.Entry[E]{Name: "px_y", Fn: PxY[E]},
		kibt.Entry[E]{Name: "width", Fn: Width[E]},
		kibt.Entry[E]{Name: "height", Fn: Height[E]},
	)
	return kibt.NewLibrary(entries...)
}
