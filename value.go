package kibt

import (
	"strconv"
	"strings"
)

// Kind is the tag of a Value.
type Kind uint8

// Value kinds. FnKind is reserved for user-defined functions, which the
// language does not have yet.
const (
	NoneKind Kind = iota
	IntKind
	FloatKind
	ListKind
	FnKind
	NativeKind
)

func (k Kind) String() string {
	switch k {
	case NoneKind:
		return "none"
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case ListKind:
		return "list"
	case FnKind:
		return "function"
	case NativeKind:
		return "native function"
	}
	return "<unknown kind " + strconv.Itoa(int(k)) + ">"
}

// Value is a tagged value living on the operand stack of the interpreter.
// Concrete types are None, Int, Float, List, FnRef and NativeRef.
//
// Values are owned by the stack slot holding them. A List owns its elements;
// use Clone to obtain an independent copy.
type Value interface {
	Kind() Kind
	String() string
}

// None is the unit value.
type None struct{}

// Int is a 32-bit signed integer value.
type Int int32

// Float is a 32-bit floating point value.
type Float float32

// List is an ordered, heterogeneous sequence of values.
type List []Value

// FnRef references a user-defined function. Reserved.
type FnRef uint32

// NativeRef references a native function by its index in the active library.
type NativeRef uint32

func (None) Kind() Kind      { return NoneKind }
func (Int) Kind() Kind       { return IntKind }
func (Float) Kind() Kind     { return FloatKind }
func (List) Kind() Kind      { return ListKind }
func (FnRef) Kind() Kind     { return FnKind }
func (NativeRef) Kind() Kind { return NativeKind }

func (None) String() string {
	return "none"
}

func (i Int) String() string {
	return strconv.FormatInt(int64(i), 10)
}

// String prints the shortest decimal representation which reads back to the
// same float32, without exponent.
func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

// String prints a list as "[ a b c ]".
func (l List) String() string {
	var b strings.Builder
	b.WriteString("[ ")
	for _, v := range l {
		b.WriteString(Display(v))
		b.WriteByte(' ')
	}
	b.WriteString("]")
	return b.String()
}

func (FnRef) String() string {
	return "<function>"
}

func (NativeRef) String() string {
	return "<native function>"
}

// Display returns the printed form of v. A nil value prints as none.
func Display(v Value) string {
	if v == nil {
		return None{}.String()
	}
	return v.String()
}

// Equal compares two values. None equals only None; numbers and lists compare
// structurally and only with values of the same kind. Function references
// never compare equal, not even to themselves.
func Equal(a, b Value) bool {
	a, b = orNone(a), orNone(b)
	switch x := a.(type) {
	case None:
		_, ok := b.(None)
		return ok
	case Int:
		y, ok := b.(Int)
		return ok && x == y
	case Float:
		y, ok := b.(Float)
		return ok && x == y
	case List:
		y, ok := b.(List)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Clone returns a copy of v. Lists are copied deeply.
func Clone(v Value) Value {
	if l, ok := v.(List); ok {
		c := make(List, len(l))
		for i, e := range l {
			c[i] = Clone(e)
		}
		return c
	}
	return orNone(v)
}

// IsNone is a predicate: is v the unit value (or missing)?
func IsNone(v Value) bool {
	_, ok := orNone(v).(None)
	return ok
}

func orNone(v Value) Value {
	if v == nil {
		return None{}
	}
	return v
}
