package grammar

import (
	"fmt"
	"strings"
)

// RuleID identifies a rule within a table.
type RuleID int

// Kind is the category of a rule.
type Kind int8

// The four rule kinds. There are no others.
const (
	SequenceKind Kind = iota
	AlternativeKind
	ReferenceKind
	TerminalKind
)

func (k Kind) String() string {
	switch k {
	case SequenceKind:
		return "sequence"
	case AlternativeKind:
		return "alternative"
	case ReferenceKind:
		return "reference"
	case TerminalKind:
		return "terminal"
	}
	return "<unknown>"
}

// Rule is a node of a grammar. The set of implementations is closed:
// Sequence, Alternative, Reference and Terminal.
//
// Clients which have to distinguish between rule kinds should implement
// Visitor. Adding a rule kind adds a method to Visitor, so every client
// failing to handle it will not compile.
type Rule interface {
	Kind() Kind
	Accept(Visitor)
	String() string
	isRule()
}

// Visitor has to be implemented by clients which dispatch on rule kinds.
type Visitor interface {
	VisitSequence(Sequence)
	VisitAlternative(Alternative)
	VisitReference(Reference)
	VisitTerminal(Terminal)
}

// --- Sequence --------------------------------------------------------------

// Sequence matches if all of its children match consecutively.
type Sequence struct {
	children []Rule
}

// Seq creates a sequence rule. The children are copied.
func Seq(children ...Rule) Sequence {
	c := make([]Rule, len(children))
	copy(c, children)
	return Sequence{children: c}
}

// Len returns the number of children.
func (s Sequence) Len() int { return len(s.children) }

// Child returns child #i.
func (s Sequence) Child(i int) Rule { return s.children[i] }

// Kind is part of interface Rule.
func (s Sequence) Kind() Kind { return SequenceKind }

// Accept is part of interface Rule.
func (s Sequence) Accept(v Visitor) { v.VisitSequence(s) }

func (s Sequence) String() string {
	return joinRules(s.children, " ", true)
}

func (s Sequence) isRule() {}

// --- Alternative -----------------------------------------------------------

// Alternative matches if one of its choices matches. Choices are tried in
// order and the first one matching wins.
type Alternative struct {
	choices []Rule
}

// Alt creates an alternative rule. The choices are copied.
func Alt(choices ...Rule) Alternative {
	c := make([]Rule, len(choices))
	copy(c, choices)
	return Alternative{choices: c}
}

// Len returns the number of choices.
func (a Alternative) Len() int { return len(a.choices) }

// Choice returns choice #i.
func (a Alternative) Choice(i int) Rule { return a.choices[i] }

// Kind is part of interface Rule.
func (a Alternative) Kind() Kind { return AlternativeKind }

// Accept is part of interface Rule.
func (a Alternative) Accept(v Visitor) { v.VisitAlternative(a) }

func (a Alternative) String() string {
	return joinRules(a.choices, " | ", false)
}

func (a Alternative) isRule() {}

// --- Reference -------------------------------------------------------------

// Reference matches like the rule it refers to.
type Reference struct {
	id RuleID
}

// Ref creates a reference to rule id.
func Ref(id RuleID) Reference {
	return Reference{id: id}
}

// ID returns the ID of the referenced rule.
func (r Reference) ID() RuleID { return r.id }

// Kind is part of interface Rule.
func (r Reference) Kind() Kind { return ReferenceKind }

// Accept is part of interface Rule.
func (r Reference) Accept(v Visitor) { v.VisitReference(r) }

func (r Reference) String() string {
	return fmt.Sprintf("%d", r.id)
}

func (r Reference) isRule() {}

// --- Terminal --------------------------------------------------------------

// Terminal matches exactly one input symbol.
type Terminal struct {
	sym rune
}

// T creates a terminal rule for symbol r.
func T(r rune) Terminal {
	return Terminal{sym: r}
}

// Symbol returns the symbol a terminal matches.
func (t Terminal) Symbol() rune { return t.sym }

// Kind is part of interface Rule.
func (t Terminal) Kind() Kind { return TerminalKind }

// Accept is part of interface Rule.
func (t Terminal) Accept(v Visitor) { v.VisitTerminal(t) }

func (t Terminal) String() string {
	return fmt.Sprintf("%q", string(t.sym))
}

func (t Terminal) isRule() {}

// ---------------------------------------------------------------------------

// joinRules formats composite rules. Nested alternatives are always put in
// parentheses, nested sequences only within sequences. Both happen only for
// expanded rules.
func joinRules(rules []Rule, sep string, inSequence bool) string {
	var b strings.Builder
	for i, r := range rules {
		if i > 0 {
			b.WriteString(sep)
		}
		k := r.Kind()
		if k == AlternativeKind || (k == SequenceKind && inSequence) {
			b.WriteString("(")
			b.WriteString(r.String())
			b.WriteString(")")
		} else {
			b.WriteString(r.String())
		}
	}
	return b.String()
}

// Equal is a predicate: are rules a and b structurally identical?
func Equal(a, b Rule) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	eq := &equality{other: b}
	a.Accept(eq)
	return eq.equal
}

type equality struct {
	other Rule
	equal bool
}

var _ Visitor = (*equality)(nil)

func (e *equality) VisitSequence(s Sequence) {
	o, ok := e.other.(Sequence)
	e.equal = ok && equalLists(s.children, o.children)
}

func (e *equality) VisitAlternative(a Alternative) {
	o, ok := e.other.(Alternative)
	e.equal = ok && equalLists(a.choices, o.choices)
}

func (e *equality) VisitReference(r Reference) {
	o, ok := e.other.(Reference)
	e.equal = ok && o.id == r.id
}

func (e *equality) VisitTerminal(t Terminal) {
	o, ok := e.other.(Terminal)
	e.equal = ok && o.sym == t.sym
}

func equalLists(l1, l2 []Rule) bool {
	if len(l1) != len(l2) {
		return false
	}
	for i := range l1 {
		if !Equal(l1[i], l2[i]) {
			return false
		}
	}
	return true
}

// FromAlternatives creates a rule from a list of alternatives, each being a
// list of tokens. An alternative with a single token collapses to the token,
// and a single alternative collapses to the alternative itself.
func FromAlternatives(alts [][]Rule) (Rule, error) {
	if len(alts) == 0 {
		return nil, fmt.Errorf("rule has no alternatives")
	}
	choices := make([]Rule, 0, len(alts))
	for i, alt := range alts {
		switch len(alt) {
		case 0:
			return nil, fmt.Errorf("alternative #%d is empty", i+1)
		case 1:
			choices = append(choices, alt[0])
		default:
			choices = append(choices, Seq(alt...))
		}
	}
	if len(choices) == 1 {
		return choices[0], nil
	}
	return Alt(choices...), nil
}
