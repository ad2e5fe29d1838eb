package grammar

import "fmt"

// Pair describes two self-referential rules encoding repetition, together
// with their base rules A and B:
//
//    Repeat: A | A Repeat           // one or more A
//    Nested: A B | A Nested B       // n × A followed by n × B, n ≥ 1
//
// A start rule `Repeat Nested` therefore matches N × A followed by M × B,
// with N > M ≥ 1.
type Pair struct {
	Repeat RuleID
	Nested RuleID
	A      RuleID
	B      RuleID
}

func (p Pair) String() string {
	return fmt.Sprintf("pair(%d=%d+, %d=%dⁿ%dⁿ)", p.Repeat, p.A, p.Nested, p.A, p.B)
}

// FindPair checks if rule start is of the form `Repeat Nested` and
// returns the pair, if so. Alternatives of Repeat and Nested may be given
// in either order.
func (t *Table) FindPair(start RuleID) (Pair, bool) {
	root, err := t.Lookup(start)
	if err != nil {
		return Pair{}, false
	}
	ids, ok := refSequence(root)
	if !ok || len(ids) != 2 {
		return Pair{}, false
	}
	p := Pair{Repeat: ids[0], Nested: ids[1]}
	if p.A, ok = t.repetitionBase(p.Repeat); !ok {
		return Pair{}, false
	}
	var a RuleID
	if a, p.B, ok = t.nestingBase(p.Nested); !ok || a != p.A {
		return Pair{}, false
	}
	if p.A == p.Repeat || p.A == p.Nested || p.B == p.Repeat || p.B == p.Nested {
		return Pair{}, false
	}
	tracer().Debugf("rule %d is %s", start, p)
	return p, true
}

// repetitionBase checks for `id: A | A id` and returns A.
func (t *Table) repetitionBase(id RuleID) (RuleID, bool) {
	choices, ok := t.twoChoices(id)
	if !ok {
		return 0, false
	}
	for i := 0; i < 2; i++ {
		single, recursive := choices[i], choices[1-i]
		if len(single) == 1 && len(recursive) == 2 &&
			recursive[0] == single[0] && recursive[1] == id {
			return single[0], true
		}
	}
	return 0, false
}

// nestingBase checks for `id: A B | A id B` and returns A and B.
func (t *Table) nestingBase(id RuleID) (RuleID, RuleID, bool) {
	choices, ok := t.twoChoices(id)
	if !ok {
		return 0, 0, false
	}
	for i := 0; i < 2; i++ {
		flat, nested := choices[i], choices[1-i]
		if len(flat) == 2 && len(nested) == 3 &&
			nested[0] == flat[0] && nested[1] == id && nested[2] == flat[1] {
			return flat[0], flat[1], true
		}
	}
	return 0, 0, false
}

func (t *Table) twoChoices(id RuleID) ([][]RuleID, bool) {
	r, err := t.Lookup(id)
	if err != nil {
		return nil, false
	}
	alt, ok := r.(Alternative)
	if !ok || alt.Len() != 2 {
		return nil, false
	}
	choices := make([][]RuleID, 2)
	for i := 0; i < 2; i++ {
		if choices[i], ok = refSequence(alt.Choice(i)); !ok {
			return nil, false
		}
	}
	return choices, true
}

// refSequence returns the IDs of a single reference or of a sequence
// consisting of references only.
func refSequence(r Rule) ([]RuleID, bool) {
	switch x := r.(type) {
	case Reference:
		return []RuleID{x.ID()}, true
	case Sequence:
		ids := make([]RuleID, x.Len())
		for i := 0; i < x.Len(); i++ {
			ref, ok := x.Child(i).(Reference)
			if !ok {
				return nil, false
			}
			ids[i] = ref.ID()
		}
		return ids, true
	}
	return nil, false
}
