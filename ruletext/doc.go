/*
Package ruletext reads grammars and candidate strings from text.

A rule text consists of rule lines, followed by an empty line, followed by
candidate lines:

    0: 4 1 5
    1: 2 3 | 3 2
    2: 4 4 | 5 5
    3: 4 5 | 5 4
    4: "a"
    5: "b"

    ababbb
    bababa

Rule IDs are non-negative integers. A terminal is a single symbol between
double quotes. Alternatives are separated by '|'.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ruletext

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grammatch.ruletext'.
func tracer() tracing.Trace {
	return tracing.Select("grammatch.ruletext")
}
