/*
Package grammar implements the data model for rule tables.

A grammar is a table of numbered rules. Every rule is one of four kinds:
a sequence of rules, a list of alternatives, a reference to another rule of
the table, or a terminal symbol. Rules are immutable values; cycles between
rules are possible only through references, i.e. at the level of the table.

Building a Table

Tables are built with a builder object. Clients add rules alternative by
alternative, consisting of references and terminals:

    b := grammar.NewBuilder("G")
    b.Rule(0).Ref(4).Ref(1).Ref(5).End()               // 0: 4 1 5
    b.Rule(1).Ref(2).Ref(3).Or().Ref(3).Ref(2).End()   // 1: 2 3 | 3 2
    b.Rule(2).Ref(4).Ref(4).Or().Ref(5).Ref(5).End()   // 2: 4 4 | 5 5
    b.Rule(3).Ref(4).Ref(5).Or().Ref(5).Ref(4).End()   // 3: 4 5 | 5 4
    b.Rule(4).T('a').End()                             // 4: "a"
    b.Rule(5).T('b').End()                             // 5: "b"
    table, err := b.Table()

An alternative consisting of a single token collapses to that token, and
a rule with a single alternative collapses to that alternative.

Repetition Pairs

Some grammars encode unbounded repetition by two self-referential rules

    8: 42 | 42 8
    11: 42 31 | 42 11 31

with a start rule `0: 8 11`. Expanding these rules by substitution does not
terminate. Table.FindPair detects this shape and reports the base rules
(42 and 31 in the example), which package match uses to decide membership
without ever resolving rules 8 and 11.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grammatch.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("grammatch.grammar")
}
