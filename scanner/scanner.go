/*
Package scanner defines an interface for tokenizers reading rule text.

The default implementation is an adapter for lexmachine, living in
sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"text/scanner"

	"github.com/npillmayer/grammatch"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grammatch.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("grammatch.scanner")
}

// EOF is identical to text/scanner.EOF.
const EOF = scanner.EOF

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() grammatch.Token
	SetErrorHandler(func(error))
}

// LogError is the default error reporting function for tokenizers.
func LogError(e error) {
	tracer().Errorf("scanner error: %s", e.Error())
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the
// lexmachine adapter.
type DefaultToken struct {
	kind   grammatch.TokType
	lexeme string
	Val    interface{}
	span   grammatch.Span
}

var _ grammatch.Token = DefaultToken{}

// MakeDefaultToken creates a token of type typ.
func MakeDefaultToken(typ grammatch.TokType, lexeme string, span grammatch.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

// TokType is part of interface grammatch.Token.
func (t DefaultToken) TokType() grammatch.TokType {
	return t.kind
}

// Value is part of interface grammatch.Token.
func (t DefaultToken) Value() interface{} {
	return t.Val
}

// Lexeme is part of interface grammatch.Token.
func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

// Span is part of interface grammatch.Token.
func (t DefaultToken) Span() grammatch.Span {
	return t.span
}

func (t DefaultToken) String() string {
	if t.kind == EOF {
		return "<EOF>"
	}
	return fmt.Sprintf("%q@%d", t.lexeme, t.span.From())
}
