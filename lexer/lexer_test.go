package lexer

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/kibt"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type kl struct {
	Kind   TokKind
	Lexeme string
}

func kindsAndLexemes(tokens []Token) []kl {
	r := make([]kl, len(tokens))
	for i, t := range tokens {
		r[i] = kl{t.Kind, t.Lexeme}
	}
	return r
}

func TestTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kibt.lexer")
	defer teardown()
	//
	got := kindsAndLexemes(Tokenize("(0 0.0 test) (0)"))
	want := []kl{
		{LParen, "("},
		{Int, "0"},
		{Float, "0.0"},
		{Ident, "test"},
		{RParen, ")"},
		{LParen, "("},
		{Int, "0"},
		{RParen, ")"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestKeywords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kibt.lexer")
	defer teardown()
	//
	input := "let set if else loop break continue none lettuce if_ Else"
	want := []TokKind{Let, Set, If, Else, Loop, Break, Continue, None, Ident, Ident, Ident}
	tokens := Tokenize(input)
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i, k := range want {
		if tokens[i].Kind != k {
			t.Errorf("token #%d %q: expected %s, got %s", i, tokens[i].Lexeme, k, tokens[i].Kind)
		}
	}
}

func TestNumbers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kibt.lexer")
	defer teardown()
	//
	var tests = []struct {
		input string
		want  []kl
	}{
		{"42", []kl{{Int, "42"}}},
		{"-7", []kl{{Int, "-7"}}},
		{"-", []kl{{Int, "-"}}},
		{"3.25", []kl{{Float, "3.25"}}},
		{"1.", []kl{{Float, "1."}}},
		{"-.5", []kl{{Float, "-.5"}}},
		{"1.2.3", []kl{{Float, "1.2"}, {Error, "."}, {Int, "3"}}},
		{"12ab", []kl{{Int, "12"}, {Ident, "ab"}}},
		{"a-1", []kl{{Ident, "a"}, {Int, "-1"}}},
	}
	for _, test := range tests {
		got := kindsAndLexemes(Tokenize(test.input))
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("input %q (-want +got):\n%s", test.input, diff)
		}
	}
}

func TestWhitespaceNeverSurfaces(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kibt.lexer")
	defer teardown()
	//
	for _, tok := range Tokenize(" \t{ let\n  a\r\n1 } ") {
		if tok.Kind == Whitespace {
			t.Errorf("whitespace token surfaced: %v", tok)
		}
	}
	l := New("  x  ")
	if tok := l.Advance(); tok.Kind != Whitespace || tok.Lexeme != "  " {
		t.Errorf("expected raw whitespace token, got %v", tok)
	}
}

func TestUnknownCharContinues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kibt.lexer")
	defer teardown()
	//
	var reported []error
	l := New("a # b")
	l.SetErrorHandler(func(e error) {
		reported = append(reported, e)
	})
	var got []Token
	for tok := l.NextToken(); tok.Kind != EOF; tok = l.NextToken() {
		got = append(got, tok)
	}
	want := []kl{{Ident, "a"}, {Error, "#"}, {Ident, "b"}}
	if diff := cmp.Diff(want, kindsAndLexemes(got)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if len(reported) != 1 || !errors.Is(reported[0], ErrUnknownChar) {
		t.Errorf("expected one unknown-character error, got %v", reported)
	}
	if got[1].Err() != ErrUnknownChar {
		t.Errorf("expected error token to carry reason, got %v", got[1].Err())
	}
}

func TestEOFRepeats(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kibt.lexer")
	defer teardown()
	//
	l := New("x")
	l.NextToken()
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Kind != EOF {
			t.Fatalf("expected EOF, got %v", tok)
		}
	}
}

func TestUnicodeAndSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kibt.lexer")
	defer teardown()
	//
	tokens := Tokenize("(grün_1 2)")
	if len(tokens) != 4 {
		t.Fatalf("expected 4 tokens, got %v", tokens)
	}
	if tokens[1].Kind != Ident || tokens[1].Lexeme != "grün_1" {
		t.Errorf("expected identifier 'grün_1', got %v", tokens[1])
	}
	if tokens[1].Span != (kibt.Span{1, 8}) {
		t.Errorf("expected span (1…8), got %v", tokens[1].Span)
	}
	if tokens[2].Span != (kibt.Span{9, 10}) {
		t.Errorf("expected span (9…10), got %v", tokens[2].Span)
	}
}
