package library

import (
	"math"

	"github.com/npillmayer/kibt"
)

// --- Conversion ------------------------------------------------------------

// Int converts its argument to an integer. Floats are truncated towards zero,
// saturating at the bounds of int32; NaN converts to 0. Anything not a number
// converts to 0.
func Int[E kibt.Environment](args kibt.ArgSource, _ E) kibt.Value {
	switch x := kibt.NextOrNone(args).(type) {
	case kibt.Int:
		return x
	case kibt.Float:
		return kibt.Int(truncate(float64(x)))
	}
	return kibt.Int(0)
}

func truncate(f float64) int32 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int32(f)
}

// Flt converts its argument to a float. Anything not a number converts to 0.
func Flt[E kibt.Environment](args kibt.ArgSource, _ E) kibt.Value {
	switch x := kibt.NextOrNone(args).(type) {
	case kibt.Float:
		return x
	case kibt.Int:
		return kibt.Float(x)
	}
	return kibt.Float(0)
}

// List collects all of its arguments, none included, into a list.
func List[E kibt.Environment](args kibt.ArgSource, _ E) kibt.Value {
	l := kibt.List{}
	for v, ok := args.Next(); ok; v, ok = args.Next() {
		l = append(l, v)
	}
	return l
}

// --- Logic -----------------------------------------------------------------

func truth(b bool) kibt.Value {
	if b {
		return kibt.Int(1)
	}
	return kibt.Int(0)
}

// Cmp returns 1 if its arguments are strictly increasing, 0 otherwise. Only
// numbers of the same kind are comparable. Cmp stops pulling at the first
// none or at the first pair out of order.
func Cmp[E kibt.Environment](args kibt.ArgSource, _ E) kibt.Value {
	acc := kibt.NextOrNone(args)
	for {
		n := kibt.NextOrNone(args)
		if kibt.IsNone(n) {
			return truth(true)
		}
		if !less(acc, n) {
			return truth(false)
		}
		acc = n
	}
}

func less(a, b kibt.Value) bool {
	switch x := a.(type) {
	case kibt.Int:
		y, ok := b.(kibt.Int)
		return ok && x < y
	case kibt.Float:
		y, ok := b.(kibt.Float)
		return ok && x < y
	}
	return false
}

// Not returns 1 for an integer 0, and 0 for everything else.
func Not[E kibt.Environment](args kibt.ArgSource, _ E) kibt.Value {
	if x, ok := kibt.NextOrNone(args).(kibt.Int); ok {
		return truth(x == 0)
	}
	return truth(false)
}

// Neg negates a number. Other values are passed through unchanged.
func Neg[E kibt.Environment](args kibt.ArgSource, _ E) kibt.Value {
	switch x := kibt.NextOrNone(args).(type) {
	case kibt.Int:
		return -x
	case kibt.Float:
		return -x
	default:
		return x
	}
}

// Eq returns 1 if all of its arguments equal the first one. Eq pulls until
// the first none, even after a mismatch has been found.
func Eq[E kibt.Environment](args kibt.ArgSource, _ E) kibt.Value {
	first := kibt.NextOrNone(args)
	check := true
	for {
		n := kibt.NextOrNone(args)
		if kibt.IsNone(n) {
			break
		}
		check = check && kibt.Equal(first, n)
	}
	return truth(check)
}

// --- Arithmetic ------------------------------------------------------------

type intOp func(x, y kibt.Int) kibt.Value
type floatOp func(x, y kibt.Float) kibt.Value

// fold reduces the arguments from left to right until the first none. The
// first argument (or the first after a mismatch) starts the fold as is.
// Combining values of different kinds, or anything but numbers, yields none.
func fold(args kibt.ArgSource, iop intOp, fop floatOp) kibt.Value {
	var acc kibt.Value = kibt.None{}
	for {
		n := kibt.NextOrNone(args)
		if kibt.IsNone(n) {
			return acc
		}
		acc = combine(acc, n, iop, fop)
	}
}

func combine(acc, n kibt.Value, iop intOp, fop floatOp) kibt.Value {
	switch x := acc.(type) {
	case kibt.None:
		return n
	case kibt.Int:
		if y, ok := n.(kibt.Int); ok {
			return iop(x, y)
		}
	case kibt.Float:
		if y, ok := n.(kibt.Float); ok {
			return fop(x, y)
		}
	}
	return kibt.None{}
}

// Add sums its arguments. Integer arithmetic wraps around.
func Add[E kibt.Environment](args kibt.ArgSource, _ E) kibt.Value {
	return fold(args,
		func(x, y kibt.Int) kibt.Value { return x + y },
		func(x, y kibt.Float) kibt.Value { return x + y })
}

// Sub subtracts all further arguments from the first one.
func Sub[E kibt.Environment](args kibt.ArgSource, _ E) kibt.Value {
	return fold(args,
		func(x, y kibt.Int) kibt.Value { return x - y },
		func(x, y kibt.Float) kibt.Value { return x - y })
}

// Mul multiplies its arguments.
func Mul[E kibt.Environment](args kibt.ArgSource, _ E) kibt.Value {
	return fold(args,
		func(x, y kibt.Int) kibt.Value { return x * y },
		func(x, y kibt.Float) kibt.Value { return x * y })
}

// Div divides the first argument by all further arguments. Integer division
// truncates towards zero. Dividing an integer by zero yields none; as with any
// mismatch, a further argument restarts the fold.
func Div[E kibt.Environment](args kibt.ArgSource, _ E) kibt.Value {
	return fold(args,
		func(x, y kibt.Int) kibt.Value {
			if y == 0 {
				tracer().Debugf("integer division by zero")
				return kibt.None{}
			}
			return x / y
		},
		func(x, y kibt.Float) kibt.Value { return x / y })
}

// Pi returns π.
func Pi[E kibt.Environment](kibt.ArgSource, E) kibt.Value {
	return kibt.Float(math.Pi)
}
