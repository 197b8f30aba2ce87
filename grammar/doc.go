/*
Package grammar implements the grammar IR and the loader for SBNF, a compact
semantic BNF notation.

Writing a Grammar

A grammar is a sequence of rules and directives. Rules have the form

    name ::= sequence .

and are composed of the following elements:

    "hello"  hello         terminal symbols (quoted or bare)
    "+":plus               terminal, recorded in the result with tag "plus"
    <$?name>               identifier, tagged "name"
    <#?n> <+#?n> <0x?n>    unsigned, signed and hex integer numbers
    <.#?f>                 floating point number
    <'?s>                  quoted string ("…" or '…')
    <*";"?s>               text up to one of the characters of a set
    <*<"."?s> <*<=".?s>    text up to the rightmost character of a set on the current line
    <*|"end" "fin"?s>      text up to a terminator (modifiers '=' inclusive, '~' strip indentation)
    <*'",")?s>             text up to a character of a set, outside of quotations
    </[a-z]+/?s>           regular expression
    <?flag>                semantic marker, consumes nothing
    <~>                    skip whitespace and comments
    <other>                reference to rule "other", tagged "other"
    <other?t> <other?>     rule reference with tag override, or untagged
    <^x> <&y> <%z>         produce results for transport, accept transported results,
                           propagate pending transports into a rule
    [ a | b ]              optional alternatives
    [~ a ]                 option, trying the rest of the sequence without it first
    [? a ]                 negative lookahead
    { a }  { a ? b }       repetition, optionally with a continuation (e.g., a separator)
    ( a | b )              alternatives

Leaf tags may be "@", meaning the tag of the enclosing rule. Leaves may re-parse their
captured text with a rule (<*";"?s=stmt>) and may have a maximum length (<$?id:32>).
A marker directly following an opening bracket tags the whole group:

    r ::= [<?opt> "x"] "y" .

Rules are tagged with their name. A rule may get a different tag with

    name?tag ::= … .

or no tag at all ("name? ::= … ."), which makes it a grouping rule without an entry of
its own in parse results.

Comments in grammar source are enclosed in (* … *).

Directives

Directives configure the matching engine globally:

    !whitespace " \t".           whitespace characters
    !comment "{-" "-}" .         block comments in the input
    !linecomment "//" "#" .      line comments in the input
    !keywords if then else .     identifiers excluded from <$?…>
    !linemode .                  newlines are not whitespace
    !encoding "ISO-8859-1" .     encoding of input text
    !namespace x "urn:x" .       namespace declarations for markup output
    !identchars "-" .            additional characters within identifiers
    !start program .             start rule, default is the first rule

Loading

    g, err := grammar.Load("greeting", `greeting ::= "hello" <$?name> .`)

Load returns a *SyntaxError if the grammar source is malformed. References to rules
are resolved lazily, at parse time. A Grammar is immutable after loading and may be
shared between parsers running concurrently.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'sbnf.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("sbnf.grammar")
}
