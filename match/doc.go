/*
Package match decides whether strings belong to the language of a grammar.

Matching is greedy and does not backtrack: an alternative commits to its first
successful choice, and a sequence never re-tries a child after a later child
fails. This makes matching cheap, but some grammars reject strings they
derive. The only exception is the repetition pair (see grammar.Pair),
which is matched by a dedicated matcher retrying the split between the two
repetitions.

    m := match.New(table)
    ok, err := m.MatchesID(0, "ababbb")

A Recognizer selects the right matcher for a start rule, and Evaluate checks a
batch of lines in parallel.

Unknown rules are reported as errors wrapping grammar.ErrUnknownRule. A string
not matching is never an error.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package match

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grammatch.match'.
func tracer() tracing.Trace {
	return tracing.Select("grammatch.match")
}
