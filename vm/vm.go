package vm

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/kibt"
	"github.com/npillmayer/kibt/bytecode"
	"github.com/npillmayer/schuko/gconf"
)

// Interpreter executes a compiled unit. An interpreter is created per run and
// is not safe for concurrent use; the code, the library and the environment
// it references are only read and may be shared between interpreters.
type Interpreter[E kibt.Environment] struct {
	pc    int
	stack []kibt.Value
	code  []byte
	env   E
	lib   *kibt.Library[E]
	trap  error // sticky
}

// New creates an interpreter for code, seeding the operand stack with one
// NativeRef per entry of lib.
func New[E kibt.Environment](code []byte, lib *kibt.Library[E], env E) *Interpreter[E] {
	vm := &Interpreter[E]{
		code:  code,
		env:   env,
		lib:   lib,
		stack: make([]kibt.Value, lib.Len(), lib.Len()+16),
	}
	for i := range vm.stack {
		vm.stack[i] = kibt.NativeRef(i)
	}
	return vm
}

// End is a predicate: has the program counter reached the end of the code?
func (vm *Interpreter[E]) End() bool {
	return vm.pc >= len(vm.code)
}

// PC returns the program counter, i.e. the address of the next instruction.
func (vm *Interpreter[E]) PC() int {
	return vm.pc
}

// Stack returns a copy of the operand stack, bottom first.
func (vm *Interpreter[E]) Stack() []kibt.Value {
	s := make([]kibt.Value, len(vm.stack))
	copy(s, vm.stack)
	return s
}

// Pop removes the topmost value from the operand stack. If the stack is
// empty, Pop returns None and false.
func (vm *Interpreter[E]) Pop() (kibt.Value, bool) {
	if len(vm.stack) == 0 {
		return kibt.None{}, false
	}
	v := vm.stack[len(vm.stack)-1]
	vm.stack[len(vm.stack)-1] = nil
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v, true
}

// Err returns the trap which ended execution, if any.
func (vm *Interpreter[E]) Err() error {
	return vm.trap
}

// Run ticks until the end of the code is reached and returns the value
// left on top of the stack (None, if the stack is empty). The context is
// checked between instructions.
func (vm *Interpreter[E]) Run(ctx context.Context) (kibt.Value, error) {
	for !vm.End() {
		if err := ctx.Err(); err != nil {
			return kibt.None{}, err
		}
		if err := vm.Tick(); err != nil {
			return kibt.None{}, err
		}
	}
	if vm.trap != nil {
		return kibt.None{}, vm.trap
	}
	v, _ := vm.Pop()
	return v, nil
}

// Tick executes exactly one instruction. At the end of the code Tick does
// nothing. After a trap, every further call to Tick returns the trap again.
func (vm *Interpreter[E]) Tick() error {
	if vm.trap != nil {
		return vm.trap
	}
	if vm.End() {
		return nil
	}
	pc := vm.pc
	ins, err := bytecode.Decode(vm.code, pc)
	if err != nil {
		return vm.fail(pc, "%v", err)
	}
	vm.pc += ins.Len()
	switch ins.Op {
	case bytecode.OpNop:
	case bytecode.OpPop:
		if _, ok := vm.Pop(); !ok {
			return vm.underflow(pc, ins.Op)
		}
	case bytecode.OpGet:
		slot := int(ins.Operand)
		if slot >= len(vm.stack) {
			return vm.fail(pc, "GET from slot %d with stack depth %d", slot, len(vm.stack))
		}
		vm.push(kibt.Clone(vm.stack[slot]))
	case bytecode.OpSet:
		v, ok := vm.Pop()
		if !ok {
			return vm.underflow(pc, ins.Op)
		}
		slot := int(ins.Operand)
		if slot >= len(vm.stack) {
			return vm.fail(pc, "SET to slot %d with stack depth %d", slot, len(vm.stack))
		}
		vm.stack[slot] = v
	case bytecode.OpSwap:
		n := len(vm.stack)
		if n < 2 {
			return vm.underflow(pc, ins.Op)
		}
		vm.stack[n-1], vm.stack[n-2] = vm.stack[n-2], vm.stack[n-1]
	case bytecode.OpJump:
		cond, ok := vm.Pop()
		if !ok {
			return vm.underflow(pc, ins.Op)
		}
		c, isInt := cond.(kibt.Int)
		if !isInt {
			return vm.fail(pc, "JUMP condition is %s, not int", cond.Kind())
		}
		if c == 0 {
			vm.pc = int(ins.Operand)
		}
	case bytecode.OpCall:
		return vm.call(pc, int(ins.Operand))
	case bytecode.OpLitInt:
		vm.push(kibt.Int(ins.Int()))
	case bytecode.OpLitFlt:
		vm.push(kibt.Float(math.Float32frombits(ins.Operand)))
	case bytecode.OpLitNone:
		vm.push(kibt.None{})
	default:
		return vm.fail(pc, "instruction %s not implemented", ins.Op)
	}
	return nil
}

func (vm *Interpreter[E]) push(v kibt.Value) {
	vm.stack = append(vm.stack, v)
}

// call pops the callee and hands the argc values below it to the native
// function. Whatever the native does not pull is dropped afterwards.
func (vm *Interpreter[E]) call(pc int, argc int) error {
	callee, ok := vm.Pop()
	if !ok {
		return vm.underflow(pc, bytecode.OpCall)
	}
	ref, isNative := callee.(kibt.NativeRef)
	if !isNative {
		return vm.fail(pc, "cannot call %s value %s", callee.Kind(), kibt.Display(callee))
	}
	if int(ref) >= vm.lib.Len() {
		return vm.fail(pc, "native function #%d not in library of size %d", ref, vm.lib.Len())
	}
	if argc > len(vm.stack) {
		return vm.underflow(pc, bytecode.OpCall)
	}
	args := &argSource{stack: &vm.stack, waiting: argc}
	result := vm.lib.Entry(int(ref)).Fn(args, vm.env)
	args.drop()
	if result == nil {
		result = kibt.None{}
	}
	vm.push(result)
	return nil
}

func (vm *Interpreter[E]) underflow(pc int, op bytecode.Opcode) error {
	return vm.fail(pc, "stack underflow in %s", op)
}

func (vm *Interpreter[E]) fail(pc int, format string, args ...interface{}) error {
	vm.trap = kibt.Trap.New(format, args...).WithProperty(kibt.PCProperty, pc)
	tracer().Errorf("trap at %04d: %v", pc, vm.trap)
	if gconf.GetBool("panic-on-vm-trap") {
		panic(fmt.Sprintf(`Interpreter trapped at pc %04d.

Configuration flag panic-on-vm-trap is set to true. It is aimed at helping
to debug the compiler and do a post-mortem of the faulty bytecode. Unset
panic-on-vm-trap to have traps reported as errors.

%v
%s`, pc, vm.trap, vm.Dump()))
	}
	return vm.trap
}

// Dump returns a multi-line representation of the interpreter state: the
// program counter and the operand stack, topmost value first.
func (vm *Interpreter[E]) Dump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "pc = %04d\n", vm.pc)
	for i := len(vm.stack) - 1; i >= 0; i-- {
		name := ""
		if i < vm.lib.Len() {
			name = " (" + vm.lib.Entry(i).Name + ")"
		}
		fmt.Fprintf(&b, "[%3d] %s%s\n", i, kibt.Display(vm.stack[i]), name)
	}
	return b.String()
}

// --- Arguments -------------------------------------------------------------

// argSource serves the arguments of one native call. Arguments are the
// topmost waiting values of the stack, stacked in source order, so the next
// argument always lives at depth waiting.
type argSource struct {
	stack   *[]kibt.Value
	waiting int
}

func (args *argSource) Next() (kibt.Value, bool) {
	if args.waiting == 0 {
		return nil, false
	}
	s := *args.stack
	i := len(s) - args.waiting
	v := s[i]
	copy(s[i:], s[i+1:])
	s[len(s)-1] = nil
	*args.stack = s[:len(s)-1]
	args.waiting--
	return v, true
}

// drop discards the arguments nobody pulled. A native holding on to its
// argument source will find it exhausted.
func (args *argSource) drop() {
	s := *args.stack
	for i := len(s) - args.waiting; i < len(s); i++ {
		s[i] = nil
	}
	*args.stack = s[:len(s)-args.waiting]
	args.waiting = 0
}
