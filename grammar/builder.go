package grammar

import (
	"fmt"
)

// Builder is used to construct a table. Create one with NewBuilder, add
// rules and finally call Table(). Errors occuring while adding rules are
// collected and reported by Table().
type Builder struct {
	name  string
	rules map[RuleID]Rule
	errs  []error
}

// NewBuilder creates a builder for a table called name.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:  name,
		rules: make(map[RuleID]Rule),
	}
}

// Rule starts a new rule with the given ID. The rule is added to the table
// with a call to End().
//
//    b.Rule(1).Ref(2).Ref(3).Or().Ref(3).Ref(2).End()   // 1: 2 3 | 3 2
//
func (b *Builder) Rule(id RuleID) *RuleBuilder {
	return &RuleBuilder{b: b, id: id}
}

// Define adds a ready-made rule. It is an error to define a rule ID twice.
func (b *Builder) Define(id RuleID, r Rule) error {
	if r == nil {
		err := fmt.Errorf("rule %d is nil", id)
		b.errs = append(b.errs, err)
		return err
	}
	if _, exists := b.rules[id]; exists {
		err := fmt.Errorf("rule %d defined twice", id)
		b.errs = append(b.errs, err)
		return err
	}
	b.rules[id] = r
	return nil
}

// Replace sets rule id to r, overriding a previous definition, if any.
// Clients use it to patch rules after a grammar has been read.
func (b *Builder) Replace(id RuleID, r Rule) {
	if r == nil {
		b.errs = append(b.errs, fmt.Errorf("rule %d is nil", id))
		return
	}
	if old, exists := b.rules[id]; exists {
		tracer().Debugf("replacing rule %d: %s  ⟹  %s", id, old, r)
	}
	b.rules[id] = r
}

// Table returns the table built so far, or the first error encountered
// while adding rules.
func (b *Builder) Table() (*Table, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("grammar %s: %w", b.name, b.errs[0])
	}
	t := newTable(b.name, b.rules)
	tracer().Debugf("grammar %s has %d rules", b.name, t.Size())
	return t, nil
}

// RuleBuilder collects the alternatives of a single rule.
type RuleBuilder struct {
	b    *Builder
	id   RuleID
	alts [][]Rule
	cur  []Rule
}

// Ref appends a reference to the current alternative.
func (rb *RuleBuilder) Ref(id RuleID) *RuleBuilder {
	rb.cur = append(rb.cur, Ref(id))
	return rb
}

// T appends a terminal to the current alternative.
func (rb *RuleBuilder) T(r rune) *RuleBuilder {
	rb.cur = append(rb.cur, T(r))
	return rb
}

// Or closes the current alternative and starts a new one.
func (rb *RuleBuilder) Or() *RuleBuilder {
	rb.alts = append(rb.alts, rb.cur)
	rb.cur = nil
	return rb
}

// End closes the rule and adds it to the builder.
func (rb *RuleBuilder) End() {
	rb.alts = append(rb.alts, rb.cur)
	r, err := FromAlternatives(rb.alts)
	if err != nil {
		rb.b.errs = append(rb.b.errs, fmt.Errorf("rule %d: %w", rb.id, err))
		return
	}
	rb.b.Define(rb.id, r)
}
