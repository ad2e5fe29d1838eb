package match

import (
	"fmt"

	"github.com/npillmayer/grammatch/grammar"
)

// Recognizer checks lines against the start rule of a grammar. If the start
// rule is a repetition pair, lines are matched with the paired matcher,
// otherwise with the whole-string matcher.
type Recognizer struct {
	m     *Matcher
	start grammar.RuleID
	root  grammar.Rule
	pair  *grammar.Pair
	a, b  grammar.Rule // base rules of the pair
}

// NewRecognizer creates a recognizer for rule start of table. All references
// reachable from start are checked, except those to the rules of a pair.
// Unresolvable references result in an error wrapping grammar.ErrUnknownRule.
func NewRecognizer(table *grammar.Table, start grammar.RuleID, opts ...Option) (*Recognizer, error) {
	rec := &Recognizer{m: New(table, opts...), start: start}
	var err error
	if rec.root, err = table.Lookup(start); err != nil {
		return nil, fmt.Errorf("start rule: %w", err)
	}
	if p, ok := table.FindPair(start); ok {
		rec.pair = &p
		for _, id := range []grammar.RuleID{p.A, p.B} {
			if err = table.CheckReferences(id, p.Repeat, p.Nested); err != nil {
				return nil, fmt.Errorf("rule %d: %w", id, err)
			}
		}
		rec.a, _ = table.Lookup(p.A)
		rec.b, _ = table.Lookup(p.B)
		tracer().Infof("rule %d is matched as %s", start, p)
		return rec, nil
	}
	if err = table.CheckReferences(start); err != nil {
		return nil, fmt.Errorf("rule %d: %w", start, err)
	}
	if cyclic, _ := table.SelfReferential(start); cyclic {
		tracer().Infof("rule %d refers to itself, greedy matching may reject valid input", start)
	}
	return rec, nil
}

// Matcher returns the matcher used by the recognizer.
func (rec *Recognizer) Matcher() *Matcher {
	return rec.m
}

// Start returns the ID of the start rule.
func (rec *Recognizer) Start() grammar.RuleID {
	return rec.start
}

// Pair returns the repetition pair of the start rule, or nil.
func (rec *Recognizer) Pair() *grammar.Pair {
	return rec.pair
}

// Accepts is a predicate: does line belong to the language of the start rule?
func (rec *Recognizer) Accepts(line string) (bool, error) {
	if rec.pair != nil {
		return rec.m.Paired(rec.a, rec.b, line)
	}
	return rec.m.Matches(rec.root, line)
}

// Derive is like Accepts, but reports the repetitions for pairs. For other
// start rules, A and B of the derivation are empty.
func (rec *Recognizer) Derive(line string) (Derivation, error) {
	if rec.pair != nil {
		return rec.m.PairedDerivation(rec.a, rec.b, line)
	}
	ok, err := rec.m.Matches(rec.root, line)
	return Derivation{Accepted: ok}, err
}
