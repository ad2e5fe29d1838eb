/*
Command grammatch checks lines of text against a grammar.

Input files contain rules, an empty line and candidate lines (see package
ruletext). For every file grammatch prints the number of candidate lines
belonging to the language of the start rule.

    grammatch -replace "8: 42 | 42 8" -replace "11: 42 31 | 42 11 31" input.txt

Flags:

    -trace    trace level [Debug|Info|Error]
    -config   NestedText configuration file
    -start    start rule (default 0)
    -replace  replace a rule after loading, may be repeated
    -workers  number of lines checked in parallel
    -dump     print the start rule as a tree
    -v        print the result for every line
    -i        interactive mode: check lines entered at the prompt

Configuration files are searched for at the usual locations, using app tag
"grammatch". Recognized keys are "tracing.adapter", "tracelevel.root",
"tracelevel.grammatch.<package>", "workers" and "panic-on-unknown-rule".
Flags take precedence over configuration.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grammatch.cli'
func tracer() tracing.Trace {
	return tracing.Select("grammatch.cli")
}
