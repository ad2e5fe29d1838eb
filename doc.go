/*
Package grammatch is a recognizer for languages given as tables of
numbered production rules.

Grammatch decides membership of input strings for grammars written as
small rule tables, including grammars with two self-referential rules
encoding unbounded repetition. It does not build parse trees and it does not
perform general context-free parsing. Package structure is as follows:

■ grammar: Package grammar implements the rule data model, rule tables and
a builder for them.

■ match: Package match implements greedy prefix matching, whole-string
matching, and a matcher for the paired repetition rules.

■ ruletext: Package ruletext reads rule tables and candidate strings from
their line-oriented text format.

■ scanner: Package scanner defines tokens and a lexmachine adapter used to
read rule text.

■ cmd/grammatch: A command line tool checking candidate lines of rule files.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammatch
