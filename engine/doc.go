/*
Package engine implements a backtracking matching engine for SBNF grammars.

The engine walks the grammar IR recursively against a fully materialized input
text. Alternatives are tried in order of declaration and the first one to match
wins. Before every attempt, the engine takes a snapshot of the input position and
of the length of the result tree; a failing attempt restores both, so no partial
results of a failed branch survive.

Options within a sequence are matched together with the remainder of the sequence:
for

    r ::= [ "a" | "b" ] "c" .

the engine tries "a" "c", then "b" "c", and finally "c" alone. Options written as
[~ … ] try the remainder without the option first. This may lead to exponential
run time for deeply nested options and should be used sparingly.

Whenever a terminal or a leaf fails to match, the failure is reported to an error
tracker, which remembers the rightmost input position any failure occured at and
what was expected there. Clients get these diagnostics after a failed parse:

    p := engine.NewParser(g)
    ok, err := p.Parse(input)
    if err != nil {
        // grammar error, e.g. unknown rule
    } else if !ok {
        fmt.Println(p.Diagnostics().Report())
    } else {
        p.Result().Dump()
    }

Transport

Sometimes results have to move to a place in the result tree other than the
one they occured at. A rule reference <^x> parses rule x into a side buffer instead
of the result tree. A subsequent <&y> within the same rule inserts all pending side
buffers as the first children of y. <%z> hands pending side buffers over to z, which
may in turn accept them. Insertions are applied once the enclosing rule has matched
completely.

Configuration

The following keys of the global configuration (package schuko/gconf) are read
when a parser is created:

    sbnf.max-depth         maximum nesting depth of rule matching, default 5000
    sbnf.snapshot-size     number of result entries in diagnostics, default 5
    sbnf.excerpt-width     width of the input excerpt in diagnostics, default 60
    panic-on-unknown-rule  panic on references to undefined rules, default false

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package engine

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'sbnf.engine'.
func tracer() tracing.Trace {
	return tracing.Select("sbnf.engine")
}
