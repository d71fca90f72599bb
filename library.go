package kibt

import (
	"strings"

	"github.com/cnf/structhash"
)

// --- Native functions ------------------------------------------------------

// ArgSource hands out the arguments waiting for a native function call.
// Natives pull arguments one at a time, in source order, until Next reports
// exhaustion. Natives are free to stop early; arguments never pulled are
// discarded by the caller.
type ArgSource interface {
	Next() (Value, bool)
}

// NextOrNone pulls the next argument from args, mapping exhaustion to None.
func NextOrNone(args ArgSource) Value {
	v, ok := args.Next()
	if !ok || v == nil {
		return None{}
	}
	return v
}

// Environment is the base capability every execution environment has. It
// carries no accessors; capability sets extend it with interfaces of their
// own (see package library).
type Environment interface{}

// NativeFunc is the signature of a native function. It receives the source
// of its arguments and a read-only environment, and returns exactly one value.
type NativeFunc[E Environment] func(args ArgSource, env E) Value

// Entry binds a name to a native function.
type Entry[E Environment] struct {
	Name string
	Fn   NativeFunc[E]
}

// --- Libraries -------------------------------------------------------------

// Library is an ordered table of native functions for one capability set.
// The position of an entry is its index for NativeRef values and, at the same
// time, its global slot number for compiled code. Compiler and interpreter
// therefore have to be handed the very same table.
//
// A library is immutable after construction and may be shared freely.
type Library[E Environment] struct {
	entries []Entry[E]
	names   []string
}

// NewLibrary creates a library from entries, keeping their order.
func NewLibrary[E Environment](entries ...Entry[E]) *Library[E] {
	lib := &Library[E]{
		entries: make([]Entry[E], len(entries)),
		names:   make([]string, len(entries)),
	}
	copy(lib.entries, entries)
	for i, e := range entries {
		lib.names[i] = e.Name
	}
	return lib
}

// Len returns the number of entries.
func (lib *Library[E]) Len() int {
	if lib == nil {
		return 0
	}
	return len(lib.entries)
}

// Names returns the entry names in table order.
func (lib *Library[E]) Names() []string {
	if lib == nil {
		return nil
	}
	names := make([]string, len(lib.names))
	copy(names, lib.names)
	return names
}

// Entry returns entry #i.
func (lib *Library[E]) Entry(i int) Entry[E] {
	return lib.entries[i]
}

// Lookup finds an entry by name. Returns its index or -1.
func (lib *Library[E]) Lookup(name string) int {
	for i, n := range lib.Names() {
		if n == name {
			return i
		}
	}
	return -1
}

// Signature returns a fingerprint of the table's name order. Two libraries
// with equal signatures lay out global slots identically.
func (lib *Library[E]) Signature() string {
	layout := struct {
		Names []string
	}{
		Names: lib.Names(),
	}
	h, err := structhash.Hash(layout, 1)
	if err != nil {
		tracer().Errorf("cannot hash library layout: %v", err)
		return strings.Join(layout.Names, ",")
	}
	return h
}
