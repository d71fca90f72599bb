/*
Package lexer splits kibt source text into classified tokens.

The lexer works one character at a time, classifying by the first character
of a token and consuming the longest run belonging to it. Whitespace is
recognized but never handed out by NextToken. Characters the language does
not know become error tokens; lexing continues behind them, leaving it to the
compiler to reject the input.

The keywords loop, break and continue are recognized, but reserved: no
grammar rule consumes them.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2025 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexer

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'kibt.lexer'.
func tracer() tracing.Trace {
	return tracing.Select("kibt.lexer")
}
