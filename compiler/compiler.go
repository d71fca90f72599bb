package compiler

import (
	"strconv"

	"github.com/joomcode/errorx"
	"github.com/npillmayer/kibt"
	"github.com/npillmayer/kibt/bytecode"
	"github.com/npillmayer/kibt/lexer"
)

// Globals is the view of a library the compiler needs: the names of its
// entries in table order. *kibt.Library implements it.
type Globals interface {
	Names() []string
}

// Compiler is a single-pass compiler for one unit of kibt source.
// A compiler is used once; call Parse to obtain the bytecode.
type Compiler struct {
	tokens    lexer.Tokenizer
	lookahead *lexer.Token
	env       *Env
	scope     int // current scope depth
	depth     int // simulated depth of the runtime stack
	out       bytecode.Emitter
}

// New creates a compiler reading from tokens. Global slots are laid out
// according to globals, which has to be the very library the bytecode will
// later be executed with.
func New(tokens lexer.Tokenizer, globals Globals) *Compiler {
	var names []string
	if globals != nil {
		names = globals.Names()
	}
	return &Compiler{
		tokens: tokens,
		env:    NewEnv(names),
		depth:  len(names),
	}
}

// Compile is a helper to compile source text against a library.
func Compile(src string, globals Globals) ([]byte, error) {
	lex := lexer.New(src)
	code, err := New(lex, globals).Parse()
	if err != nil {
		return nil, kibt.Excerpt(err, src)
	}
	return code, nil
}

// Parse compiles a single expression, consuming all of the input.
// If it fails, no bytecode is returned.
func (c *Compiler) Parse() ([]byte, error) {
	if err := c.primary(); err != nil {
		return nil, err
	}
	if t := c.peek(); t.Kind != lexer.EOF {
		return nil, c.errorAt(t, "trailing input after expression: %s", t)
	}
	if err := c.checkSlots(); err != nil {
		return nil, err
	}
	tracer().Debugf("compiled %d bytes", c.out.Len())
	return c.out.Bytes(), nil
}

// --- Token handling --------------------------------------------------------

func (c *Compiler) peek() lexer.Token {
	if c.lookahead == nil {
		t := c.tokens.NextToken()
		c.lookahead = &t
	}
	return *c.lookahead
}

func (c *Compiler) next() lexer.Token {
	t := c.peek()
	c.lookahead = nil
	return t
}

// check consumes the next token if it is of kind k.
func (c *Compiler) check(k lexer.TokKind) (lexer.Token, bool) {
	if t := c.peek(); t.Kind == k {
		return c.next(), true
	}
	return lexer.Token{}, false
}

func (c *Compiler) errorAt(t lexer.Token, format string, args ...interface{}) error {
	return c.errorIn(t.Span, format, args...)
}

func (c *Compiler) errorIn(span kibt.Span, format string, args ...interface{}) error {
	return kibt.CompileError.New(format, args...).WithProperty(kibt.SpanProperty, span)
}

// --- Emitting --------------------------------------------------------------

// Every emit keeps the simulated stack depth up to date. Environment tags are
// maintained by the grammar rules; checkSlots compares the two.

func (c *Compiler) emit(op bytecode.Opcode) {
	c.out.Emit(op)
	c.depth += bytecode.StackEffect(op, 0)
}

func (c *Compiler) emitU8(op bytecode.Opcode, x int) {
	c.out.EmitU8(op, uint8(x))
	c.depth += bytecode.StackEffect(op, uint32(x))
}

func (c *Compiler) emitJump() int {
	at := c.out.EmitJump()
	c.depth += bytecode.StackEffect(bytecode.OpJump, 0)
	return at
}

func (c *Compiler) emitI32(op bytecode.Opcode, x int32) {
	c.out.EmitI32(op, x)
	c.depth += bytecode.StackEffect(op, uint32(x))
}

func (c *Compiler) emitF32(op bytecode.Opcode, x float32) {
	c.out.EmitF32(op, x)
	c.depth += bytecode.StackEffect(op, 0)
}

// temp tags the value just pushed as a temporary.
func (c *Compiler) temp() {
	c.env.Push("", c.scope)
}

func (c *Compiler) checkSlots() error {
	if c.env.Size() != c.depth {
		err := errorx.IllegalState.New("slot layout out of sync: %d tags for stack depth %d",
			c.env.Size(), c.depth)
		return kibt.CompileError.Wrap(err, "internal compiler error")
	}
	return nil
}

// --- Grammar ---------------------------------------------------------------

func (c *Compiler) primary() error {
	t := c.next()
	switch t.Kind {
	case lexer.LParen:
		return c.call(t)
	case lexer.LBrace:
		return c.block(t)
	case lexer.If:
		return c.conditional(t)
	case lexer.None:
		c.emit(bytecode.OpLitNone)
		c.temp()
		return nil
	case lexer.Int:
		x, err := strconv.ParseInt(t.Lexeme, 10, 32)
		if err != nil {
			return c.errorAt(t, "number parse error: %q", t.Lexeme)
		}
		c.emitI32(bytecode.OpLitInt, int32(x))
		c.temp()
		return nil
	case lexer.Float:
		x, err := strconv.ParseFloat(t.Lexeme, 32)
		if err != nil {
			return c.errorAt(t, "number parse error: %q", t.Lexeme)
		}
		c.emitF32(bytecode.OpLitFlt, float32(x))
		c.temp()
		return nil
	case lexer.Ident:
		slot, err := c.resolve(t)
		if err != nil {
			return err
		}
		c.emitU8(bytecode.OpGet, slot)
		c.temp()
		return nil
	case lexer.EOF:
		return c.errorAt(t, "unexpected end of input")
	case lexer.Loop, lexer.Break, lexer.Continue:
		return c.errorAt(t, "reserved keyword '%s'", t.Lexeme)
	case lexer.Error:
		return c.errorAt(t, "unexpected token %s: %v", t, t.Err())
	}
	return c.errorAt(t, "unexpected token %s", t)
}

func (c *Compiler) resolve(name lexer.Token) (int, error) {
	slot, ok := c.env.Resolve(name.Lexeme)
	if !ok {
		return -1, c.errorAt(name, "unknown variable %s", name.Lexeme)
	}
	if slot > bytecode.MaxU8 {
		return -1, c.errorAt(name, "too many slots: %s lives in slot %d", name.Lexeme, slot)
	}
	return slot, nil
}

// call compiles '(' callee arg* ')'. Every argument is swapped below the
// callee, so that at the time of CALL the callee is on top of its arguments,
// which are stacked in source order.
func (c *Compiler) call(open lexer.Token) error {
	if err := c.primary(); err != nil {
		return err
	}
	argc := 0
	for {
		if _, ok := c.check(lexer.RParen); ok {
			break
		}
		if t := c.peek(); t.Kind == lexer.EOF {
			return c.errorIn(open.Span.Extend(t.Span), "missing ')'")
		}
		if err := c.primary(); err != nil {
			return err
		}
		c.emit(bytecode.OpSwap)
		argc++
	}
	if argc > bytecode.MaxU8 {
		return c.errorAt(open, "too many arguments: %d", argc)
	}
	c.emitU8(bytecode.OpCall, argc)
	c.env.Drop(argc) // callee and arguments are replaced by the result
	return nil
}

// block compiles '{' stmt* '}'. Every statement leaves exactly one value,
// which is popped, except for the last one: its value is the value of the
// block. Bindings of the block are unwound from underneath that value.
func (c *Compiler) block(open lexer.Token) error {
	c.scope++
	statements := 0
	for {
		if _, ok := c.check(lexer.RBrace); ok {
			break
		}
		if t := c.peek(); t.Kind == lexer.EOF {
			return c.errorIn(open.Span.Extend(t.Span), "missing '}'")
		}
		if err := c.statement(); err != nil {
			return err
		}
		c.emit(bytecode.OpPop)
		c.env.Drop(1)
		statements++
		if err := c.checkSlots(); err != nil {
			return err
		}
	}
	if statements == 0 {
		c.emit(bytecode.OpLitNone)
	} else {
		// take back the POP of the last statement
		c.out.Retract()
		c.depth++
	}
	c.temp()
	c.scope--
	for c.env.Size() > 1 {
		below := c.env.Size() - 2
		if c.env.At(below).Depth <= c.scope {
			break
		}
		tracer().Debugf("unwinding %v", c.env.At(below))
		c.emit(bytecode.OpSwap)
		c.emit(bytecode.OpPop)
		c.env.Remove(below)
	}
	c.env.Top().Depth = c.scope
	return nil
}

func (c *Compiler) statement() error {
	if kw, ok := c.check(lexer.Let); ok {
		name, ok := c.check(lexer.Ident)
		if !ok {
			return c.errorAt(kw, "missing variable name")
		}
		if err := c.primary(); err != nil {
			return err
		}
		// the value just computed becomes the binding's slot
		tag := c.env.Top()
		tag.Name, tag.Depth = name.Lexeme, c.scope
		c.emit(bytecode.OpLitNone)
		c.temp()
		return nil
	}
	if kw, ok := c.check(lexer.Set); ok {
		name, ok := c.check(lexer.Ident)
		if !ok {
			return c.errorAt(kw, "missing variable name")
		}
		if err := c.primary(); err != nil {
			return err
		}
		slot, err := c.resolve(name)
		if err != nil {
			return err
		}
		c.emitU8(bytecode.OpSet, slot)
		c.env.Drop(1)
		c.emit(bytecode.OpLitNone)
		c.temp()
		return nil
	}
	return c.primary()
}

// conditional compiles 'if' cond then 'else' else:
//
//	      <cond>
//	      JUMP else
//	      <then>
//	      LIT_INT 0
//	      JUMP end
//	else: <else>
//	end:
func (c *Compiler) conditional(kw lexer.Token) error {
	if err := c.primary(); err != nil {
		return err
	}
	elseTarget := c.emitJump()
	c.env.Drop(1)
	if err := c.primary(); err != nil {
		return err
	}
	// unconditional jump: JUMP branches on 0
	c.emitI32(bytecode.OpLitInt, 0)
	c.temp()
	endTarget := c.emitJump()
	c.env.Drop(1)
	if _, ok := c.check(lexer.Else); !ok {
		return c.errorAt(c.peek(), "missing 'else' branch for 'if' at %v", kw.Span)
	}
	c.out.Patch(elseTarget, uint32(c.out.Len()))
	// the else branch is entered without the value of the then branch
	c.depth--
	c.env.Drop(1)
	if err := c.primary(); err != nil {
		return err
	}
	c.out.Patch(endTarget, uint32(c.out.Len()))
	return nil
}
