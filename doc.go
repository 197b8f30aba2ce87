/*
Package sbnf is a backtracking grammar engine for semantic BNF.

SBNF strives to be a small and practical tool to turn textual input into
semantically tagged trees, driven by a compact grammar notation which is
loaded at runtime. There is no code generation step.
Package structure is as follows:

■ grammar: Package grammar holds the grammar IR and the loader for the
SBNF notation.

■ engine: Package engine implements the backtracking matching engine, together
with rightmost-failure diagnostics.

■ result: Package result implements the flat, tree-shaped result of a parse run.

■ markup and populate: Readers of parse results, serializing them to XML or
mapping them onto Go structs.

■ scanner: Package scanner defines tokens and tokenizers, used for reading
grammar source text.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sbnf
