/*
Command sbnf parses text with an SBNF grammar and prints the parse results.

Usage:

    sbnf [flags] grammar.sbnf [input …]

Input files are parsed concurrently, each with a parser of its own, and the
results are printed in the order of the arguments. Without input files, sbnf
enters interactive mode and parses every line entered. Lines starting with a
colon are commands:

    :grammar    print the grammar
    :start r    parse with start rule r
    :xml        toggle between tree and XML output
    :quit       leave interactive mode

Results are rendered as a tree, or as XML with flag -xml. On failure, the
rightmost failure position is reported, together with the expected input.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'sbnf.cli'
func tracer() tracing.Trace {
	return tracing.Select("sbnf.cli")
}
