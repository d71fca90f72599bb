package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/kibt"
)

// Tokenizer is the interface the compiler reads tokens from.
type Tokenizer interface {
	NextToken() Token
	SetErrorHandler(func(error))
}

// Lexer is a tokenizer for kibt source text. A lexer runs over its input
// exactly once; once it has reached the end it keeps returning EOF tokens.
// Re-tokenizing requires a fresh lexer.
type Lexer struct {
	src   string
	start int         // start of the current token
	pos   int         // read position
	Error func(error) // error handler
}

var _ Tokenizer = (*Lexer)(nil)

// New creates a lexer for src.
func New(src string) *Lexer {
	return &Lexer{
		src:   src,
		Error: logError,
	}
}

// Default error reporting function for lexers
func logError(e error) {
	tracer().Errorf("lexer error: " + e.Error())
}

// SetErrorHandler sets an error handler for the lexer. It is called once
// for every error token.
func (l *Lexer) SetErrorHandler(h func(error)) {
	if h == nil {
		l.Error = logError
		return
	}
	l.Error = h
}

// NextToken is part of the Tokenizer interface. It never returns whitespace.
func (l *Lexer) NextToken() Token {
	for {
		token := l.Advance()
		if token.Kind != Whitespace {
			return token
		}
	}
}

// Advance scans the next raw token, including whitespace.
func (l *Lexer) Advance() Token {
	l.start = l.pos
	c, ok := l.bump()
	if !ok {
		return Token{Kind: EOF, Span: kibt.Span{l.pos, l.pos}}
	}
	var kind TokKind
	switch {
	case c == '(':
		kind = LParen
	case c == ')':
		kind = RParen
	case c == '{':
		kind = LBrace
	case c == '}':
		kind = RBrace
	case unicode.IsSpace(c):
		l.bumpWhile(unicode.IsSpace)
		kind = Whitespace
	case unicode.IsLetter(c):
		l.bumpWhile(isIdentRune)
		if k, is := keywords[l.src[l.start:l.pos]]; is {
			kind = k
		} else {
			kind = Ident
		}
	case unicode.IsNumber(c) || c == '-':
		// a lone '-' is accepted here; it fails later as a number literal
		l.bumpWhile(unicode.IsNumber)
		if p, ok := l.peek(); ok && p == '.' {
			l.bump()
			l.bumpWhile(unicode.IsNumber)
			kind = Float
		} else {
			kind = Int
		}
	default:
		kind = Error
	}
	token := l.emit(kind)
	if kind == Error {
		l.Error(fmt.Errorf("%w %q at %v", ErrUnknownChar, token.Lexeme, token.Span))
	}
	return token
}

// Tokenize is a helper which collects all tokens of src, up to but excluding
// EOF. Error tokens are included.
func Tokenize(src string) []Token {
	l := New(src)
	l.SetErrorHandler(func(error) {})
	var tokens []Token
	for t := l.NextToken(); t.Kind != EOF; t = l.NextToken() {
		tokens = append(tokens, t)
	}
	return tokens
}

// ---------------------------------------------------------------------------

func (l *Lexer) emit(kind TokKind) Token {
	t := Token{
		Kind:   kind,
		Lexeme: l.src[l.start:l.pos],
		Span:   kibt.Span{l.start, l.pos},
	}
	l.start = l.pos
	return t
}

func (l *Lexer) peek() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return r, true
}

func (l *Lexer) bump() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	r, w := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += w
	return r, true
}

func (l *Lexer) bumpWhile(predicate func(rune) bool) {
	for {
		r, ok := l.peek()
		if !ok || !predicate(r) {
			return
		}
		l.bump()
	}
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}
