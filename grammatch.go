package grammatch

import "fmt"

// --- Tokens ----------------------------------------------------------------

// TokType is a category type for a Token. Constants are defined by the
// packages producing tokens.
type TokType int

// Token represents an input token, usually produced by a scanner.
//
// An example would be a token for a rule number in rule text:
//
//    TokType = NUM      // identifier for this kind of tokens
//    Lexeme  = "42"     // lexeme how it appeared in the input
//    Value   = 42       // the converted value, if any
//    Span    = 4…6      // occured from position 4 in the input line
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input symbols. A span denotes
// a start position and the position just behind the end. Matchers use spans
// to report which part of an input a rule repetition accounted for.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is true for the zero span.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
