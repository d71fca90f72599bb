package kibt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func constant(v Value) NativeFunc[Environment] {
	return func(ArgSource, Environment) Value { return v }
}

type pulls []Value

func (p *pulls) Next() (Value, bool) {
	if len(*p) == 0 {
		return nil, false
	}
	v := (*p)[0]
	*p = (*p)[1:]
	return v, true
}

func TestLibrary(t *testing.T) {
	lib := NewLibrary(
		Entry[Environment]{Name: "one", Fn: constant(Int(1))},
		Entry[Environment]{Name: "two", Fn: constant(Int(2))},
	)
	if lib.Len() != 2 {
		t.Fatalf("expected 2 entries, have %d", lib.Len())
	}
	if diff := cmp.Diff([]string{"one", "two"}, lib.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	lib.Names()[0] = "changed"
	if lib.Entry(0).Name != "one" || lib.Lookup("one") != 0 {
		t.Errorf("library must not be changed through Names")
	}
	if lib.Lookup("three") != -1 {
		t.Errorf("expected lookup of unknown name to fail")
	}
	if v := lib.Entry(1).Fn(&pulls{}, nil); v != Int(2) {
		t.Errorf("expected entry #1 to return 2, got %v", v)
	}
	var null *Library[Environment]
	if null.Len() != 0 || null.Names() != nil {
		t.Errorf("nil library should be empty")
	}
}

func TestSignature(t *testing.T) {
	a := NewLibrary(Entry[Environment]{Name: "x"}, Entry[Environment]{Name: "y"})
	b := NewLibrary(Entry[Environment]{Name: "x", Fn: constant(None{})}, Entry[Environment]{Name: "y"})
	c := NewLibrary(Entry[Environment]{Name: "y"}, Entry[Environment]{Name: "x"})
	if a.Signature() != b.Signature() {
		t.Errorf("signature should depend on names only")
	}
	if a.Signature() == c.Signature() {
		t.Errorf("signature should depend on the order of names")
	}
}

func TestNextOrNone(t *testing.T) {
	p := pulls{Int(1), nil}
	if v := NextOrNone(&p); v != Int(1) {
		t.Errorf("expected 1, got %v", v)
	}
	if v := NextOrNone(&p); !IsNone(v) {
		t.Errorf("expected nil argument to map to none, got %v", v)
	}
	if v := NextOrNone(&p); !IsNone(v) {
		t.Errorf("expected exhaustion to map to none, got %v", v)
	}
}
