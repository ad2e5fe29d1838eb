package grammar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// ErrUnknownRule is returned (wrapped) whenever a rule ID cannot be found in a
// table. It flags a defective grammar, not a rejected input.
var ErrUnknownRule = errors.New("unknown rule")

// ErrCyclicRule is returned when a rule cannot be expanded because it refers
// to itself.
var ErrCyclicRule = errors.New("cyclic rule")

// UnknownRuleError is the concrete error for references to absent rules.
type UnknownRuleError struct {
	ID RuleID
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("unknown rule %d", e.ID)
}

// Is makes UnknownRuleError match ErrUnknownRule.
func (e *UnknownRuleError) Is(target error) bool {
	return target == ErrUnknownRule
}

// Table is an immutable mapping from rule IDs to rules. Tables are created
// by a Builder. They are safe for concurrent use.
type Table struct {
	name  string
	rules map[RuleID]Rule
	ids   []RuleID // ascending
}

func newTable(name string, rules map[RuleID]Rule) *Table {
	t := &Table{
		name:  name,
		rules: make(map[RuleID]Rule, len(rules)),
	}
	ids := treeset.NewWith(ruleIDComparator)
	for id, r := range rules {
		t.rules[id] = r
		ids.Add(id)
	}
	t.ids = make([]RuleID, 0, ids.Size())
	it := ids.Iterator()
	for it.Next() {
		t.ids = append(t.ids, it.Value().(RuleID))
	}
	return t
}

func ruleIDComparator(a, b interface{}) int {
	return utils.IntComparator(int(a.(RuleID)), int(b.(RuleID)))
}

// Name returns the name given to the builder of this table.
func (t *Table) Name() string {
	return t.name
}

// Lookup returns the rule for id. If id is absent, an *UnknownRuleError is
// returned.
func (t *Table) Lookup(id RuleID) (Rule, error) {
	r, ok := t.rules[id]
	if !ok {
		return nil, &UnknownRuleError{ID: id}
	}
	return r, nil
}

// Has is a predicate: is there a rule for id?
func (t *Table) Has(id RuleID) bool {
	_, ok := t.rules[id]
	return ok
}

// Size returns the number of rules.
func (t *Table) Size() int {
	return len(t.rules)
}

// IDs returns all rule IDs in ascending order.
func (t *Table) IDs() []RuleID {
	ids := make([]RuleID, len(t.ids))
	copy(ids, t.ids)
	return ids
}

// Each calls f for every rule, in ascending order of IDs.
func (t *Table) Each(f func(RuleID, Rule)) {
	for _, id := range t.ids {
		f(id, t.rules[id])
	}
}

// String returns the table in rule text format, one rule per line.
func (t *Table) String() string {
	var b strings.Builder
	t.Each(func(id RuleID, r Rule) {
		fmt.Fprintf(&b, "%d: %s\n", id, r)
	})
	return b.String()
}

// Dump is a debugging helper.
func (t *Table) Dump() {
	tracer().Debugf("--- grammar %s -----------", t.name)
	t.Each(func(id RuleID, r Rule) {
		tracer().Debugf("%4d: %s", id, r)
	})
	tracer().Debugf("-------------------------")
}

// fingerprintEntry is the canonical form of a rule used for hashing.
type fingerprintEntry struct {
	ID   int
	Text string
}

// Fingerprint returns a hash over the contents of the table. Tables built
// from identical rules have identical fingerprints. The table's name is not
// part of the fingerprint.
func (t *Table) Fingerprint() string {
	entries := make([]fingerprintEntry, 0, len(t.ids))
	t.Each(func(id RuleID, r Rule) {
		entries = append(entries, fingerprintEntry{ID: int(id), Text: r.String()})
	})
	h, err := structhash.Hash(struct{ Rules []fingerprintEntry }{entries}, 1)
	if err != nil { // structhash does not fail for plain structs
		tracer().Errorf("cannot hash grammar %s: %v", t.name, err)
		return ""
	}
	return h
}

// --- Reference checks ------------------------------------------------------

// refCollector collects all references of a rule.
type refCollector struct {
	refs []RuleID
}

var _ Visitor = (*refCollector)(nil)

func (c *refCollector) VisitSequence(s Sequence) {
	for _, ch := range s.children {
		ch.Accept(c)
	}
}

func (c *refCollector) VisitAlternative(a Alternative) {
	for _, ch := range a.choices {
		ch.Accept(c)
	}
}

func (c *refCollector) VisitReference(r Reference) {
	c.refs = append(c.refs, r.id)
}

func (c *refCollector) VisitTerminal(Terminal) {}

// References returns the IDs of all rules referenced by r, in order of
// appearance (duplicates included).
func References(r Rule) []RuleID {
	c := &refCollector{}
	r.Accept(c)
	return c.refs
}

// CheckReferences follows all references reachable from rule start and
// returns an *UnknownRuleError for the first one that cannot be resolved.
// Rules given as except are neither resolved nor followed.
func (t *Table) CheckReferences(start RuleID, except ...RuleID) error {
	seen := make(map[RuleID]bool, len(t.rules))
	for _, id := range except {
		seen[id] = true
	}
	var check func(id RuleID) error
	check = func(id RuleID) error {
		if seen[id] {
			return nil
		}
		seen[id] = true
		r, err := t.Lookup(id)
		if err != nil {
			return err
		}
		for _, ref := range References(r) {
			if err := check(ref); err != nil {
				return err
			}
		}
		return nil
	}
	return check(start)
}

// SelfReferential is a predicate: does rule id, directly or transitively,
// refer to itself?
func (t *Table) SelfReferential(id RuleID) (bool, error) {
	r, err := t.Lookup(id)
	if err != nil {
		return false, err
	}
	seen := make(map[RuleID]bool, len(t.rules))
	stack := References(r)
	for len(stack) > 0 {
		ref := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if ref == id {
			return true, nil
		}
		if seen[ref] {
			continue
		}
		seen[ref] = true
		sub, err := t.Lookup(ref)
		if err != nil {
			return false, err
		}
		stack = append(stack, References(sub)...)
	}
	return false, nil
}

// --- Expansion -------------------------------------------------------------

// Expand returns rule id with all references substituted by the rules they
// refer to. Expanding a rule which refers to itself fails with ErrCyclicRule.
func (t *Table) Expand(id RuleID) (Rule, error) {
	x := &expander{table: t, path: make(map[RuleID]bool)}
	r := x.expandID(id)
	if x.err != nil {
		return nil, fmt.Errorf("cannot expand rule %d: %w", id, x.err)
	}
	return r, nil
}

type expander struct {
	table  *Table
	path   map[RuleID]bool // rules currently being expanded
	result Rule
	err    error
}

var _ Visitor = (*expander)(nil)

func (x *expander) expandID(id RuleID) Rule {
	if x.path[id] {
		x.err = fmt.Errorf("rule %d: %w", id, ErrCyclicRule)
		return nil
	}
	r, err := x.table.Lookup(id)
	if err != nil {
		x.err = err
		return nil
	}
	x.path[id] = true
	defer delete(x.path, id)
	return x.expand(r)
}

func (x *expander) expand(r Rule) Rule {
	r.Accept(x)
	return x.result
}

func (x *expander) expandAll(rules []Rule) []Rule {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		e := x.expand(r)
		if x.err != nil {
			return nil
		}
		out = append(out, e)
	}
	return out
}

func (x *expander) VisitSequence(s Sequence) {
	children := x.expandAll(s.children)
	x.result = Sequence{children: children}
}

func (x *expander) VisitAlternative(a Alternative) {
	choices := x.expandAll(a.choices)
	x.result = Alternative{choices: choices}
}

func (x *expander) VisitReference(r Reference) {
	x.result = x.expandID(r.id)
}

func (x *expander) VisitTerminal(t Terminal) {
	x.result = t
}
