/*
Package populate maps parse results onto Go structs.

Struct fields are bound to the children of a result entry by struct tags:

    type Assignment struct {
        Target string   `sbnf:"target"`
        Values []int    `sbnf:"value"`
        Const  bool     `sbnf:"const"`
        Body   *Block   `sbnf:"block"`
        Choice int      `sbnf:"op,alt"`
        Where  sbnf.Span `sbnf:"target,span"`
    }

    var a Assignment
    err := populate.Into(tree, tree.First(), &a)

A field receives the first child carrying its tag; slice fields receive all of them.
Strings receive the value of leaves, or their raw text, numeric fields receive integer
and float values, and booleans are set if a child with the tag is present (and, for
options, an alternative matched). Struct fields and pointers to structs are
populated recursively from component children. Fields of type interface{} receive the
plain value of an entry.

Tag options select other properties of an entry: "alt" is the alternative index,
"span" the input span and "text" the raw input text. Fields without a tag, or
tagged "-", are left alone.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package populate

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'sbnf.populate'.
func tracer() tracing.Trace {
	return tracing.Select("sbnf.populate")
}
