package match

import (
	"errors"
	"fmt"

	"github.com/npillmayer/grammatch/grammar"
	"github.com/npillmayer/schuko/gconf"
)

// ErrLeftRecursion is returned if a rule is re-entered at the same input
// position, i.e. without consuming any input in between.
var ErrLeftRecursion = errors.New("left recursion")

// Matcher matches rules of a table against input strings. Input symbols are
// runes, and all positions and lengths count runes.
//
// A Matcher holds no state between calls and is safe for concurrent use.
type Matcher struct {
	table          *grammar.Table
	panicOnUnknown bool
}

// Option configures a Matcher.
type Option func(*Matcher)

// PanicOnUnknownRule lets a matcher panic instead of returning an error when
// a reference cannot be resolved. Default is the value of configuration
// key "panic-on-unknown-rule". This is a debugging aid.
func PanicOnUnknownRule(b bool) Option {
	return func(m *Matcher) {
		m.panicOnUnknown = b
	}
}

// New creates a matcher for rules of table.
func New(table *grammar.Table, opts ...Option) *Matcher {
	m := &Matcher{
		table:          table,
		panicOnUnknown: gconf.GetBool("panic-on-unknown-rule"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Table returns the table the matcher resolves references with.
func (m *Matcher) Table() *grammar.Table {
	return m.table
}

// Prefix matches rule r against the start of input. It returns the number of
// symbols consumed if r matches, and ok=false if it does not.
func (m *Matcher) Prefix(r grammar.Rule, input string) (int, bool, error) {
	return m.newAttempt(input).prefix(r, 0)
}

// Matches is a predicate: does r match all of input? The empty input never
// matches.
func (m *Matcher) Matches(r grammar.Rule, input string) (bool, error) {
	at := m.newAttempt(input)
	n, ok, err := at.prefix(r, 0)
	if err != nil {
		return false, err
	}
	return ok && n == len(at.input), nil
}

// MatchesID is like Matches, for the rule with ID id.
func (m *Matcher) MatchesID(id grammar.RuleID, input string) (bool, error) {
	r, err := m.table.Lookup(id)
	if err != nil {
		return false, m.unknown(err)
	}
	return m.Matches(r, input)
}

func (m *Matcher) unknown(err error) error {
	if m.panicOnUnknown {
		panic(err)
	}
	tracer().Errorf("%v", err)
	return err
}

// --- Match attempts --------------------------------------------------------

// attempt holds the state of matching a single input string.
type attempt struct {
	m      *Matcher
	input  []rune
	active map[activation]bool // references currently being matched
}

type activation struct {
	id grammar.RuleID
	at int
}

func (m *Matcher) newAttempt(input string) *attempt {
	return &attempt{
		m:      m,
		input:  []rune(input),
		active: make(map[activation]bool),
	}
}

func (a *attempt) prefix(r grammar.Rule, at int) (int, bool, error) {
	v := prefixVisitor{attempt: a, at: at}
	r.Accept(&v)
	return v.n, v.ok, v.err
}

// prefixVisitor matches a single rule at position at.
type prefixVisitor struct {
	*attempt
	at  int
	n   int // symbols consumed
	ok  bool
	err error
}

var _ grammar.Visitor = (*prefixVisitor)(nil)

func (v *prefixVisitor) VisitTerminal(t grammar.Terminal) {
	if v.at < len(v.input) && v.input[v.at] == t.Symbol() {
		v.n, v.ok = 1, true
	}
}

func (v *prefixVisitor) VisitReference(r grammar.Reference) {
	rule, err := v.m.table.Lookup(r.ID())
	if err != nil {
		v.err = v.m.unknown(err)
		return
	}
	act := activation{id: r.ID(), at: v.at}
	if v.active[act] {
		v.err = fmt.Errorf("rule %d at position %d: %w", r.ID(), v.at, ErrLeftRecursion)
		return
	}
	v.active[act] = true
	v.n, v.ok, v.err = v.prefix(rule, v.at)
	delete(v.active, act)
}

// VisitAlternative commits to the first choice matching.
func (v *prefixVisitor) VisitAlternative(alt grammar.Alternative) {
	for i := 0; i < alt.Len(); i++ {
		n, ok, err := v.prefix(alt.Choice(i), v.at)
		if err != nil {
			v.err = err
			return
		}
		if ok {
			v.n, v.ok = n, true
			return
		}
	}
}

// VisitSequence matches children one after the other. A child is never
// re-tried. A sequence fails as soon as the input is exhausted before a
// child.
func (v *prefixVisitor) VisitSequence(seq grammar.Sequence) {
	offset := 0
	for i := 0; i < seq.Len(); i++ {
		if v.at+offset >= len(v.input) {
			return
		}
		n, ok, err := v.prefix(seq.Child(i), v.at+offset)
		if err != nil {
			v.err = err
			return
		}
		if !ok {
			return
		}
		offset += n
	}
	v.n, v.ok = offset, true
}
