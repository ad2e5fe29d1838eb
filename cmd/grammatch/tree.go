package main

import (
	"fmt"

	"github.com/npillmayer/grammatch/grammar"
	"github.com/pterm/pterm"
)

// ruleTree creates a tree for rule start, with references resolved.
// References to rules currently being displayed are not followed.
func ruleTree(table *grammar.Table, start grammar.RuleID) pterm.TreeNode {
	ll := leveledRule(table, start)
	tracer().Debugf("|ll| = %d", len(ll))
	return pterm.NewTreeFromLeveledList(ll)
}

func leveledRule(table *grammar.Table, start grammar.RuleID) pterm.LeveledList {
	lb := &leveler{table: table, path: make(map[grammar.RuleID]bool)}
	lb.VisitReference(grammar.Ref(start))
	return lb.ll
}

type leveler struct {
	table *grammar.Table
	ll    pterm.LeveledList
	level int
	path  map[grammar.RuleID]bool
}

var _ grammar.Visitor = (*leveler)(nil)

func (lb *leveler) item(text string) {
	lb.ll = append(lb.ll, pterm.LeveledListItem{Level: lb.level, Text: text})
}

func (lb *leveler) VisitSequence(s grammar.Sequence) {
	lb.item("seq")
	lb.level++
	for i := 0; i < s.Len(); i++ {
		s.Child(i).Accept(lb)
	}
	lb.level--
}

func (lb *leveler) VisitAlternative(a grammar.Alternative) {
	lb.item("alt")
	lb.level++
	for i := 0; i < a.Len(); i++ {
		a.Choice(i).Accept(lb)
	}
	lb.level--
}

func (lb *leveler) VisitReference(r grammar.Reference) {
	id := r.ID()
	if lb.path[id] {
		lb.item(fmt.Sprintf("%d ↺", id))
		return
	}
	rule, err := lb.table.Lookup(id)
	if err != nil {
		lb.item(fmt.Sprintf("%d ?", id))
		return
	}
	lb.item(fmt.Sprintf("%d", id))
	lb.path[id] = true
	lb.level++
	rule.Accept(lb)
	lb.level--
	delete(lb.path, id)
}

func (lb *leveler) VisitTerminal(t grammar.Terminal) {
	lb.item(t.String())
}
