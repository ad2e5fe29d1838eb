package grammar

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// We use the small grammar from the package documentation for testing:
//
//     0: 4 1 5
//     1: 2 3 | 3 2
//     2: 4 4 | 5 5
//     3: 4 5 | 5 4
//     4: "a"
//     5: "b"
//
func makeTable(t *testing.T) *Table {
	b := NewBuilder("G")
	b.Rule(0).Ref(4).Ref(1).Ref(5).End()
	b.Rule(1).Ref(2).Ref(3).Or().Ref(3).Ref(2).End()
	b.Rule(2).Ref(4).Ref(4).Or().Ref(5).Ref(5).End()
	b.Rule(3).Ref(4).Ref(5).Or().Ref(5).Ref(4).End()
	b.Rule(4).T('a').End()
	b.Rule(5).T('b').End()
	table, err := b.Table()
	if err != nil {
		t.Fatal(err)
	}
	return table
}

// Rules 8 and 11 encode repetitions of 42 and 31.
func makePairTable(t *testing.T, flipped bool) *Table {
	b := NewBuilder("Loops")
	b.Rule(0).Ref(8).Ref(11).End()
	if flipped {
		b.Rule(8).Ref(42).Ref(8).Or().Ref(42).End()
		b.Rule(11).Ref(42).Ref(11).Ref(31).Or().Ref(42).Ref(31).End()
	} else {
		b.Rule(8).Ref(42).Or().Ref(42).Ref(8).End()
		b.Rule(11).Ref(42).Ref(31).Or().Ref(42).Ref(11).Ref(31).End()
	}
	b.Rule(42).T('a').End()
	b.Rule(31).T('b').End()
	table, err := b.Table()
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestBuilderCollapses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatch.grammar")
	defer teardown()
	//
	table := makeTable(t)
	table.Dump()
	for _, x := range []struct {
		id   RuleID
		kind Kind
		text string
	}{
		{0, SequenceKind, "4 1 5"},
		{1, AlternativeKind, "2 3 | 3 2"},
		{4, TerminalKind, `"a"`},
	} {
		r, err := table.Lookup(x.id)
		if err != nil {
			t.Fatal(err)
		}
		if r.Kind() != x.kind {
			t.Errorf("expected rule %d to be a %s, is %s", x.id, x.kind, r.Kind())
		}
		if r.String() != x.text {
			t.Errorf("expected rule %d to be %q, is %q", x.id, x.text, r.String())
		}
	}
	b := NewBuilder("G")
	b.Rule(3).Ref(4).Or().Ref(1).Ref(5).End()
	table, err := b.Table()
	if err != nil {
		t.Fatal(err)
	}
	r, _ := table.Lookup(3)
	expected := Alt(Ref(4), Seq(Ref(1), Ref(5)))
	if !Equal(r, expected) {
		t.Errorf("expected rule 3 to be %s, is %s", expected, r)
	}
}

func TestBuilderErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatch.grammar")
	defer teardown()
	//
	b := NewBuilder("dup")
	b.Rule(1).T('a').End()
	b.Rule(1).T('b').End()
	if _, err := b.Table(); err == nil {
		t.Errorf("expected duplicate rule to be an error")
	}
	b = NewBuilder("empty")
	b.Rule(1).T('a').Or().End()
	if _, err := b.Table(); err == nil {
		t.Errorf("expected empty alternative to be an error")
	}
	b = NewBuilder("replace")
	b.Rule(1).T('a').End()
	b.Replace(1, T('b'))
	table, err := b.Table()
	if err != nil {
		t.Fatal(err)
	}
	if r, _ := table.Lookup(1); !Equal(r, T('b')) {
		t.Errorf("expected rule 1 to be replaced, is %s", r)
	}
}

func TestLookupUnknown(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatch.grammar")
	defer teardown()
	//
	table := makeTable(t)
	_, err := table.Lookup(99)
	if !errors.Is(err, ErrUnknownRule) {
		t.Fatalf("expected ErrUnknownRule, got %v", err)
	}
	var unknown *UnknownRuleError
	if !errors.As(err, &unknown) || unknown.ID != 99 {
		t.Errorf("expected error to carry rule ID 99, is %v", err)
	}
	if table.Has(99) || !table.Has(5) {
		t.Errorf("Has() does not work")
	}
}

func TestTableOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatch.grammar")
	defer teardown()
	//
	table := makeTable(t)
	ids := table.IDs()
	if len(ids) != 6 || table.Size() != 6 {
		t.Fatalf("expected 6 rules, have %d", len(ids))
	}
	for i, id := range ids {
		if id != RuleID(i) {
			t.Errorf("expected IDs in ascending order, have %v", ids)
			break
		}
	}
	text := "0: 4 1 5\n1: 2 3 | 3 2\n2: 4 4 | 5 5\n3: 4 5 | 5 4\n4: \"a\"\n5: \"b\"\n"
	if table.String() != text {
		t.Errorf("unexpected table text:\n%s", table.String())
	}
}

func TestFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatch.grammar")
	defer teardown()
	//
	t1, t2 := makeTable(t), makeTable(t)
	if t1.Fingerprint() == "" || t1.Fingerprint() != t2.Fingerprint() {
		t.Errorf("expected identical fingerprints, have %q and %q", t1.Fingerprint(), t2.Fingerprint())
	}
	b := NewBuilder("G") // same rules, different order of definition
	b.Rule(5).T('b').End()
	b.Rule(4).T('a').End()
	b.Rule(3).Ref(4).Ref(5).Or().Ref(5).Ref(4).End()
	b.Rule(2).Ref(4).Ref(4).Or().Ref(5).Ref(5).End()
	b.Rule(1).Ref(2).Ref(3).Or().Ref(3).Ref(2).End()
	b.Rule(0).Ref(4).Ref(1).Ref(5).End()
	t3, _ := b.Table()
	if t3.Fingerprint() != t1.Fingerprint() {
		t.Errorf("expected fingerprint to be independent of definition order")
	}
	t4 := makePairTable(t, false)
	if t4.Fingerprint() == t1.Fingerprint() {
		t.Errorf("expected different grammars to have different fingerprints")
	}
}

func TestExpand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatch.grammar")
	defer teardown()
	//
	table := makeTable(t)
	r, err := table.Expand(0)
	if err != nil {
		t.Fatal(err)
	}
	rule2 := Alt(Seq(T('a'), T('a')), Seq(T('b'), T('b')))
	rule3 := Alt(Seq(T('a'), T('b')), Seq(T('b'), T('a')))
	expected := Seq(
		T('a'),
		Alt(Seq(rule2, rule3), Seq(rule3, rule2)),
		T('b'),
	)
	if !Equal(r, expected) {
		t.Errorf("expected expansion\n%s\nis\n%s", expected, r)
	}
}

func TestExpandCyclic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatch.grammar")
	defer teardown()
	//
	table := makePairTable(t, false)
	if _, err := table.Expand(0); !errors.Is(err, ErrCyclicRule) {
		t.Errorf("expected expansion of rule 0 to fail with ErrCyclicRule, got %v", err)
	}
	if _, err := table.Expand(42); err != nil {
		t.Errorf("expected rule 42 to be expandable, got %v", err)
	}
	b := NewBuilder("broken")
	b.Rule(0).Ref(1).Ref(7).End()
	b.Rule(1).T('x').End()
	broken, _ := b.Table()
	if _, err := broken.Expand(0); !errors.Is(err, ErrUnknownRule) {
		t.Errorf("expected expansion of rule 0 to fail with ErrUnknownRule, got %v", err)
	}
}

func TestSelfReferential(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatch.grammar")
	defer teardown()
	//
	table := makePairTable(t, false)
	for id, expected := range map[RuleID]bool{0: false, 8: true, 11: true, 42: false} {
		cyclic, err := table.SelfReferential(id)
		if err != nil {
			t.Fatal(err)
		}
		if cyclic != expected {
			t.Errorf("expected self-reference of rule %d to be %v", id, expected)
		}
	}
	if _, err := table.SelfReferential(7); !errors.Is(err, ErrUnknownRule) {
		t.Errorf("expected ErrUnknownRule for rule 7, got %v", err)
	}
}

func TestCheckReferences(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatch.grammar")
	defer teardown()
	//
	if err := makeTable(t).CheckReferences(0); err != nil {
		t.Errorf("expected all references to resolve, got %v", err)
	}
	b := NewBuilder("broken")
	b.Rule(0).Ref(1).Ref(2).End()
	b.Rule(1).T('x').End()
	b.Rule(2).Ref(3).Or().Ref(1).End()
	b.Rule(5).Ref(6).End() // unreachable from 0
	broken, _ := b.Table()
	err := broken.CheckReferences(0)
	var unknown *UnknownRuleError
	if !errors.As(err, &unknown) || unknown.ID != 3 {
		t.Errorf("expected unknown rule 3, got %v", err)
	}
	if err := broken.CheckReferences(0, 2); err != nil {
		t.Errorf("expected rule 2 to be skipped, got %v", err)
	}
}

func TestFindPair(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatch.grammar")
	defer teardown()
	//
	expected := Pair{Repeat: 8, Nested: 11, A: 42, B: 31}
	for _, flipped := range []bool{false, true} {
		p, ok := makePairTable(t, flipped).FindPair(0)
		if !ok {
			t.Fatalf("expected to find a pair (flipped=%v)", flipped)
		}
		if p != expected {
			t.Errorf("expected %s, found %s", expected, p)
		}
	}
	if _, ok := makeTable(t).FindPair(0); ok {
		t.Errorf("expected no pair in non-recursive grammar")
	}
	b := NewBuilder("mixed")
	b.Rule(0).Ref(8).Ref(11).End()
	b.Rule(8).Ref(42).Or().Ref(42).Ref(8).End()
	b.Rule(11).Ref(43).Ref(31).Or().Ref(43).Ref(11).Ref(31).End()
	b.Rule(42).T('a').End()
	b.Rule(43).T('a').End()
	b.Rule(31).T('b').End()
	mixed, _ := b.Table()
	if _, ok := mixed.FindPair(0); ok {
		t.Errorf("expected no pair for different base rules")
	}
}
