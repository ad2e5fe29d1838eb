package match

import (
	"errors"
	"testing"

	"github.com/npillmayer/grammatch"
	"github.com/npillmayer/grammatch/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

//     0: 4 1 5
//     1: 2 3 | 3 2
//     2: 4 4 | 5 5
//     3: 4 5 | 5 4
//     4: "a"
//     5: "b"
func makeTable(t *testing.T) *grammar.Table {
	b := grammar.NewBuilder("G")
	b.Rule(0).Ref(4).Ref(1).Ref(5).End()
	b.Rule(1).Ref(2).Ref(3).Or().Ref(3).Ref(2).End()
	b.Rule(2).Ref(4).Ref(4).Or().Ref(5).Ref(5).End()
	b.Rule(3).Ref(4).Ref(5).Or().Ref(5).Ref(4).End()
	b.Rule(4).T('a').End()
	b.Rule(5).T('b').End()
	return mustTable(t, b)
}

func mustTable(t *testing.T, b *grammar.Builder) *grammar.Table {
	table, err := b.Table()
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestMatches(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatch.match")
	defer teardown()
	//
	m := New(makeTable(t))
	for input, expected := range map[string]bool{
		"ababbb":  true,
		"abbbab":  true,
		"bababa":  false,
		"aaabbb":  false,
		"aaaabbb": false,
		"":        false,
	} {
		ok, err := m.MatchesID(0, input)
		if err != nil {
			t.Fatal(err)
		}
		if ok != expected {
			t.Errorf("expected %q to match = %v", input, expected)
		}
		again, _ := m.MatchesID(0, input)
		if again != ok {
			t.Errorf("matching %q is not deterministic", input)
		}
	}
}

func TestPrefix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatch.match")
	defer teardown()
	//
	table := makeTable(t)
	m := New(table)
	root, _ := table.Lookup(0)
	n, ok, err := m.Prefix(root, "aaaabbb")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || n != 6 {
		t.Errorf("expected prefix of length 6, have %d (ok=%v)", n, ok)
	}
	n, ok, _ = m.Prefix(grammar.Seq(grammar.T('ä'), grammar.T('ö')), "äöü")
	if !ok || n != 2 {
		t.Errorf("expected to count runes, not bytes; have %d", n)
	}
}

func TestTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatch.match")
	defer teardown()
	//
	b := grammar.NewBuilder("T")
	b.Rule(0).T('a').End()
	m := New(mustTable(t, b))
	for input, expected := range map[string]bool{
		"a": true, "b": false, "aa": false, "": false,
	} {
		if ok, _ := m.MatchesID(0, input); ok != expected {
			t.Errorf("expected %q to match = %v", input, expected)
		}
	}
	n, ok, _ := m.Prefix(grammar.T('a'), "ab")
	if !ok || n != 1 {
		t.Errorf("a terminal consumes exactly one symbol, have %d", n)
	}
	if _, ok, _ := m.Prefix(grammar.T('a'), ""); ok {
		t.Errorf("a terminal does not match empty input")
	}
}

func TestSequenceDoesNotBacktrack(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatch.match")
	defer teardown()
	//
	b := grammar.NewBuilder("greedy")
	b.Rule(0).Ref(1).Ref(2).End()
	b.Rule(1).T('a').T('a').Or().T('a').End()
	b.Rule(2).T('a').T('b').End()
	table := mustTable(t, b)
	m := New(table)
	r1, _ := table.Lookup(1)
	if n, _, _ := m.Prefix(r1, "aab"); n != 2 {
		t.Errorf("expected first choice to be taken, consuming 2, have %d", n)
	}
	// "a" + "ab" would be a derivation, but the first choice of rule 1 wins.
	if ok, _ := m.MatchesID(0, "aab"); ok {
		t.Errorf("expected greedy sequence to reject %q", "aab")
	}
	if ok, _ := m.MatchesID(0, "aaab"); !ok {
		t.Errorf("expected %q to match", "aaab")
	}
	// input exhausted before the last child
	if _, ok, _ := m.Prefix(grammar.Seq(grammar.T('a'), grammar.T('b')), "a"); ok {
		t.Errorf("expected sequence to fail on exhausted input")
	}
}

func TestUnknownRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatch.match")
	defer teardown()
	//
	b := grammar.NewBuilder("broken")
	b.Rule(0).Ref(1).Ref(9).End()
	b.Rule(1).T('a').End()
	m := New(mustTable(t, b))
	_, err := m.MatchesID(0, "ab")
	if !errors.Is(err, grammar.ErrUnknownRule) {
		t.Errorf("expected unknown rule error, got %v", err)
	}
	// rule 9 is never reached
	if ok, err := m.MatchesID(0, "b"); ok || err != nil {
		t.Errorf("expected plain mismatch, got %v, %v", ok, err)
	}
	if _, err := m.MatchesID(7, "a"); !errors.Is(err, grammar.ErrUnknownRule) {
		t.Errorf("expected unknown rule error for rule 7, got %v", err)
	}
}

func TestPanicOnUnknownRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatch.match")
	defer teardown()
	//
	b := grammar.NewBuilder("broken")
	b.Rule(0).Ref(9).End()
	m := New(mustTable(t, b), PanicOnUnknownRule(true))
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected matcher to panic")
		}
	}()
	m.MatchesID(0, "a")
}

func TestLeftRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatch.match")
	defer teardown()
	//
	b := grammar.NewBuilder("left")
	b.Rule(0).Ref(0).Ref(1).Or().Ref(1).End()
	b.Rule(1).T('a').End()
	m := New(mustTable(t, b))
	if _, err := m.MatchesID(0, "aa"); !errors.Is(err, ErrLeftRecursion) {
		t.Errorf("expected left recursion error, got %v", err)
	}
	b = grammar.NewBuilder("right")
	b.Rule(0).Ref(1).Ref(0).Or().Ref(1).End()
	b.Rule(1).T('a').End()
	m = New(mustTable(t, b))
	if ok, err := m.MatchesID(0, "aaa"); !ok || err != nil {
		t.Errorf("expected right recursion to match, got %v, %v", ok, err)
	}
}

func TestPaired(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatch.match")
	defer teardown()
	//
	m := New(mustTable(t, grammar.NewBuilder("empty")))
	a, b := grammar.T('a'), grammar.T('b')
	for input, expected := range map[string]bool{
		"aab":    true,
		"aaab":   true,
		"aaabb":  true,
		"aaaabb": true,
		"ab":     false, // N = M
		"aabb":   false,
		"aa":     false, // M = 0
		"a":      false,
		"b":      false,
		"":       false,
		"aaba":   false,
		"aabab":  false,
	} {
		ok, err := m.Paired(a, b, input)
		if err != nil {
			t.Fatal(err)
		}
		if ok != expected {
			t.Errorf("expected %q to be accepted = %v", input, expected)
		}
	}
}

func TestPairedDerivation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatch.match")
	defer teardown()
	//
	m := New(mustTable(t, grammar.NewBuilder("empty")))
	a := grammar.Seq(grammar.T('a'), grammar.T('x'))
	b := grammar.T('b')
	d, err := m.PairedDerivation(a, b, "axaxaxbb")
	if err != nil {
		t.Fatal(err)
	}
	if !d.Accepted || d.N() != 3 || d.M() != 2 {
		t.Fatalf("expected 3 × A and 2 × B, have %v", d)
	}
	if d.A[2] != (grammatch.Span{4, 6}) || d.B[0] != (grammatch.Span{6, 7}) {
		t.Errorf("unexpected spans %v and %v", d.A, d.B)
	}
	d, _ = m.PairedDerivation(a, b, "axbb")
	if d.Accepted || d.N() != 0 {
		t.Errorf("expected rejected derivation to be empty, have %v", d)
	}
}

func TestPairedOverlap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatch.match")
	defer teardown()
	//
	// A matches the whole input, so the matcher has to give back the last
	// repetition of A to let B match.
	m := New(mustTable(t, grammar.NewBuilder("empty")))
	a := grammar.Alt(grammar.T('a'), grammar.T('b'))
	d, err := m.PairedDerivation(a, grammar.T('b'), "aab")
	if err != nil {
		t.Fatal(err)
	}
	if !d.Accepted || d.N() != 2 || d.M() != 1 {
		t.Errorf("expected 2 × A and 1 × B, have %v", d)
	}
}

func TestPairedUnknownRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatch.match")
	defer teardown()
	//
	m := New(mustTable(t, grammar.NewBuilder("empty")))
	_, err := m.Paired(grammar.T('a'), grammar.Ref(31), "aab")
	if !errors.Is(err, grammar.ErrUnknownRule) {
		t.Errorf("expected unknown rule error, got %v", err)
	}
}
