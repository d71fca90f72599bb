package lexer

import (
	"errors"
	"fmt"

	"github.com/npillmayer/kibt"
)

// TokKind is a category type for tokens.
type TokKind int8

// Token kinds.
const (
	EOF TokKind = iota
	Error
	Whitespace

	LParen
	RParen
	LBrace
	RBrace

	Let
	Set
	If
	Else
	Loop
	Break
	Continue
	None

	Int
	Float
	Ident
)

var kindNames = [...]string{
	EOF:        "EOF",
	Error:      "Error",
	Whitespace: "Whitespace",
	LParen:     "LParen",
	RParen:     "RParen",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	Let:        "Let",
	Set:        "Set",
	If:         "If",
	Else:       "Else",
	Loop:       "Loop",
	Break:      "Break",
	Continue:   "Continue",
	None:       "None",
	Int:        "Int",
	Float:      "Float",
	Ident:      "Ident",
}

func (k TokKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("TokKind(%d)", int(k))
	}
	return kindNames[k]
}

// IsKeyword is a predicate: is k one of the keyword kinds?
func (k TokKind) IsKeyword() bool {
	return k >= Let && k <= None
}

// keywords maps the exact lexeme of a keyword to its kind.
var keywords = map[string]TokKind{
	"let":      Let,
	"set":      Set,
	"if":       If,
	"else":     Else,
	"loop":     Loop,
	"break":    Break,
	"continue": Continue,
	"none":     None,
}

// ErrUnknownChar is the reason of every error token.
var ErrUnknownChar = errors.New("unknown character")

// Token is a classified piece of source text.
type Token struct {
	Kind   TokKind
	Lexeme string    // the source slice
	Span   kibt.Span // byte offsets of Lexeme within the source
}

// Err returns the lexical error an error token stands for, or nil.
func (t Token) Err() error {
	if t.Kind == Error {
		return ErrUnknownChar
	}
	return nil
}

func (t Token) String() string {
	if t.Kind == EOF {
		return "EOF"
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Lexeme)
}
