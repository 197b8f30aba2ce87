/*
Package result implements parse results of the SBNF matching engine.

A parse result is a flat sequence of entries, laid out in depth-first order.
Every entry knows its parent and the position just behind its last descendant.
This makes the sequence a tree, without a single pointer being involved:

    0 greeting    [Component, End=3]
    1   "hello"   [Terminal,  End=2, Parent=0]
    2   name      [Ident,     End=3, Parent=0]

The matching engine appends entries while descending the grammar and
truncates the sequence whenever it has to backtrack. Clients navigate a
finished tree with First, Descend and Sibling, or hand a Listener to Walk.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package result

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'sbnf.result'.
func tracer() tracing.Trace {
	return tracing.Select("sbnf.result")
}
