/*
Package markup serializes parse results to XML.

Every tagged entry of a result tree becomes an element named by its tag.
Components and options enclose the elements of their children, leaves carry
their value as character data, and markers are written as empty elements.
Alternative indices are written as attribute "alt", where present.

Namespace declarations of a grammar (directive !namespace) are attached to the
root element. A tree with more than one top-level entry is wrapped into an
element "result".

    g, _ := grammar.Load("greeting", src)
    p := engine.NewParser(g)
    if tree, err := p.ParseString("hello world"); err == nil {
        markup.Write(os.Stdout, tree, g)
    }

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package markup

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'sbnf.markup'.
func tracer() tracing.Trace {
	return tracing.Select("sbnf.markup")
}
