package match

import (
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/grammatch"
	"github.com/npillmayer/grammatch/grammar"
)

// Derivation is the result of matching a repetition pair. If the input is
// accepted, A and B hold the spans of the repetitions of rules A and B, in
// input order.
type Derivation struct {
	Accepted bool
	A        []grammatch.Span
	B        []grammatch.Span
}

// N returns the number of repetitions of rule A.
func (d Derivation) N() int { return len(d.A) }

// M returns the number of repetitions of rule B.
func (d Derivation) M() int { return len(d.B) }

// Paired is a predicate: does input consist of N repetitions of a followed by
// M repetitions of b, with N > M ≥ 1?
//
// This is the language of a start rule `R1 R2` with
//
//    R1: A | A R1
//    R2: A B | A R2 B
//
// Neither R1 nor R2 has to be present in the table.
func (m *Matcher) Paired(a, b grammar.Rule, input string) (bool, error) {
	d, err := m.PairedDerivation(a, b, input)
	return d.Accepted, err
}

// PairedDerivation is like Paired, but reports the repetitions found.
//
// The matcher first collects as many repetitions of a as possible. It then
// tries to match the rest of the input with repetitions of b. If that fails,
// it gives back the last repetition of a and tries again, until fewer than
// two repetitions of a are left. Matches of zero length do not count as
// repetitions.
func (m *Matcher) PairedDerivation(a, b grammar.Rule, input string) (Derivation, error) {
	at := m.newAttempt(input)
	end := len(at.input)
	alen := arraystack.New() // lengths of A-repetitions
	offset := 0
	for offset < end {
		n, ok, err := at.prefix(a, offset)
		if err != nil {
			return Derivation{}, err
		}
		if !ok || n == 0 {
			break
		}
		alen.Push(n)
		offset += n
	}
	tracer().Debugf("paired: %d × A up to %d", alen.Size(), offset)
	for alen.Size() >= 2 {
		var bspans []grammatch.Span
		pos := offset
		for pos < end {
			n, ok, err := at.prefix(b, pos)
			if err != nil {
				return Derivation{}, err
			}
			if !ok || n == 0 {
				break
			}
			bspans = append(bspans, span(pos, pos+n))
			pos += n
			if pos == end && alen.Size() > len(bspans) {
				d := Derivation{Accepted: true, A: stackedSpans(alen), B: bspans}
				tracer().Debugf("paired: accept %d × A, %d × B", d.N(), d.M())
				return d, nil
			}
		}
		n, _ := alen.Pop()
		offset -= n.(int)
	}
	return Derivation{}, nil
}

// stackedSpans converts the lengths on a stack to consecutive spans, bottom
// of stack first.
func stackedSpans(lengths *arraystack.Stack) []grammatch.Span {
	values := lengths.Values() // LIFO
	spans := make([]grammatch.Span, 0, len(values))
	pos := 0
	for i := len(values) - 1; i >= 0; i-- {
		n := values[i].(int)
		spans = append(spans, span(pos, pos+n))
		pos += n
	}
	return spans
}

func span(from, to int) grammatch.Span {
	return grammatch.Span{uint64(from), uint64(to)}
}
