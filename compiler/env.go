package compiler

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
)

// --- Tags -------------------------------------------------------

// Tag is an entry of the compile-time environment and stands for exactly one
// slot of the runtime operand stack. Named tags are variable bindings (or
// library functions); anonymous tags are temporaries like call arguments or
// the value of the current statement.
type Tag struct {
	Name  string // empty for temporaries
	Depth int    // scope depth the slot belongs to
}

// String is a debug Stringer for tags.
func (tag *Tag) String() string {
	if tag.Name == "" {
		return fmt.Sprintf("<tmp:%d>", tag.Depth)
	}
	return fmt.Sprintf("<tag '%s':%d>", tag.Name, tag.Depth)
}

// === Environment ===========================================================

// Env is the compile-time environment: an ordered sequence of tags, where the
// position of a tag is its slot number. It grows and shrinks at the top only,
// with the exception of unwinding a binding from underneath a scope's result.
type Env struct {
	slots *arraylist.List
}

// NewEnv creates an environment seeded with one global tag per name.
func NewEnv(globals []string) *Env {
	env := &Env{slots: arraylist.New()}
	for _, name := range globals {
		env.Push(name, 0)
	}
	return env
}

// Size returns the number of slots.
func (env *Env) Size() int {
	return env.slots.Size()
}

// At returns the tag for slot i.
func (env *Env) At(i int) *Tag {
	t, ok := env.slots.Get(i)
	if !ok {
		panic(fmt.Sprintf("attempt to access slot %d of environment with %d slots", i, env.Size()))
	}
	return t.(*Tag)
}

// Top returns the tag of the topmost slot.
func (env *Env) Top() *Tag {
	return env.At(env.Size() - 1)
}

// Push appends a tag and returns its slot number.
func (env *Env) Push(name string, depth int) int {
	env.slots.Add(&Tag{Name: name, Depth: depth})
	return env.Size() - 1
}

// Drop removes the n topmost tags.
func (env *Env) Drop(n int) {
	if n > env.Size() {
		panic("attempt to drop more slots than present in environment")
	}
	for ; n > 0; n-- {
		env.slots.Remove(env.Size() - 1)
	}
}

// Remove removes the tag of slot i. Tags above i move down by one slot.
func (env *Env) Remove(i int) {
	env.slots.Remove(i)
}

// Resolve finds the innermost binding for name, scanning from the top of the
// environment downwards. Returns the slot number and true, or -1 and false.
func (env *Env) Resolve(name string) (int, bool) {
	if name == "" {
		return -1, false
	}
	for i := env.Size() - 1; i >= 0; i-- {
		if env.At(i).Name == name {
			return i, true
		}
	}
	return -1, false
}

func (env *Env) String() string {
	return fmt.Sprintf("%v", env.slots.Values())
}
