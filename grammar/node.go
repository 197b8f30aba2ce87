package grammar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NodeType is the type of a node of the grammar IR.
type NodeType int8

// Node types of the grammar IR. Leaf types, from Ident to Regex, consume input
// and produce a result entry of their own.
const (
	AltSet NodeType = iota
	Option
	AltOption
	AltOptionCheckEmpty
	Negative
	Repetition
	Terminal
	RuleRef
	Ident
	Unsigned
	Hex
	Signed
	Float
	Quoted
	ScanCharset
	ScanFromRight
	ScanTerminators
	ScanOutsideQuotes
	Regex
	Marker
	SkipSpace
)

var nodeTypeNames = [...]string{
	"AltSet", "Option", "AltOption", "AltOptionCheckEmpty", "Negative", "Repetition",
	"Terminal", "RuleRef", "Ident", "Unsigned", "Hex", "Signed", "Float", "Quoted",
	"ScanCharset", "ScanFromRight", "ScanTerminators", "ScanOutsideQuotes", "Regex",
	"Marker", "SkipSpace",
}

func (t NodeType) String() string {
	if t < 0 || int(t) >= len(nodeTypeNames) {
		return fmt.Sprintf("NodeType(%d)", t)
	}
	return nodeTypeNames[t]
}

// IsLeaf is true for node types which capture input text.
func (t NodeType) IsLeaf() bool {
	return t >= Ident && t <= Regex
}

// IsOption is true for optional groups, i.e. groups which may match nothing.
func (t NodeType) IsOption() bool {
	return t == Option || t == AltOption || t == AltOptionCheckEmpty
}

// InheritTag is a tag which stands for the tag of the enclosing rule.
const InheritTag = "@"

// Seq is a sequence of grammar nodes, i.e. one alternative.
type Seq []*Node

// Node is a node of the grammar IR. Every node type uses a subset of the fields:
//
//    AltSet, Option, AltOption,
//    AltOptionCheckEmpty, Negative   Alts
//    Repetition                      Alts (forward), Cont (continuation)
//    Terminal                        Text (literal)
//    RuleRef                         Text (rule name), Produce, Accept, Propagate, Override
//    ScanCharset, ScanOutsideQuotes  Text (character set)
//    ScanFromRight                   Text (character set), Inclusive
//    ScanTerminators                 Terms, Inclusive, IndentAware
//    Regex                           Text (source of the expression)
//
// Leaf nodes may carry Nested and MaxLen. Nodes are never modified after loading.
type Node struct {
	Type        NodeType
	Tag         string // "" = no tag, InheritTag = tag of enclosing rule
	Text        string
	Terms       []string
	Alts        []Seq
	Cont        []Seq
	MaxLen      int    // 0 = unbounded
	Nested      string // rule to re-parse captured text with
	Inclusive   bool
	IndentAware bool
	Produce     bool
	Accept      bool
	Propagate   bool
	Override    bool // rule reference carries its own tag, possibly empty
	re          *regexp.Regexp
}

// Regexp returns the compiled regular expression of a Regex node, anchored at
// the start of the text to match.
func (n *Node) Regexp() *regexp.Regexp {
	return n.re
}

func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (s Seq) String() string {
	var b strings.Builder
	writeSeq(&b, s)
	return b.String()
}

func writeSeq(b *strings.Builder, s Seq) {
	for i, n := range s {
		if i > 0 {
			b.WriteByte(' ')
		}
		n.write(b)
	}
}

func writeAlts(b *strings.Builder, alts []Seq) {
	for i, s := range alts {
		if i > 0 {
			b.WriteString(" | ")
		}
		writeSeq(b, s)
	}
}

func (n *Node) write(b *strings.Builder) {
	switch n.Type {
	case AltSet, Option, AltOption, AltOptionCheckEmpty, Negative:
		open, close := "[", "]"
		switch n.Type {
		case AltSet:
			open, close = "(", ")"
		case AltOptionCheckEmpty:
			open = "[~"
		case Negative:
			open = "[?"
		}
		b.WriteString(open)
		n.writeGroupTag(b)
		b.WriteByte(' ')
		writeAlts(b, n.Alts)
		b.WriteByte(' ')
		b.WriteString(close)
	case Repetition:
		b.WriteString("{")
		n.writeGroupTag(b)
		b.WriteByte(' ')
		writeAlts(b, n.Alts)
		if len(n.Cont) > 0 {
			b.WriteString(" ? ")
			writeAlts(b, n.Cont)
		}
		b.WriteString(" }")
	case Terminal:
		b.WriteString(strconv.Quote(n.Text))
		if n.Tag != "" {
			b.WriteByte(':')
			b.WriteString(n.Tag)
		}
	case RuleRef:
		b.WriteByte('<')
		if n.Produce {
			b.WriteByte('^')
		}
		if n.Accept {
			b.WriteByte('&')
		}
		if n.Propagate {
			b.WriteByte('%')
		}
		b.WriteString(n.Text)
		if n.Override {
			b.WriteByte('?')
			b.WriteString(n.Tag)
		}
		b.WriteByte('>')
	case Marker:
		b.WriteString("<?")
		b.WriteString(n.Tag)
		b.WriteByte('>')
	case SkipSpace:
		b.WriteString("<~>")
	default:
		b.WriteByte('<')
		b.WriteString(n.kindString())
		b.WriteByte('?')
		b.WriteString(n.Tag)
		if n.Nested != "" {
			b.WriteByte('=')
			b.WriteString(n.Nested)
		}
		if n.MaxLen > 0 {
			fmt.Fprintf(b, ":%d", n.MaxLen)
		}
		b.WriteByte('>')
	}
}

func (n *Node) writeGroupTag(b *strings.Builder) {
	if n.Tag != "" {
		b.WriteString("<?")
		b.WriteString(n.Tag)
		b.WriteByte('>')
	}
}

func (n *Node) kindString() string {
	switch n.Type {
	case Ident:
		return "$"
	case Unsigned:
		return "#"
	case Signed:
		return "+#"
	case Hex:
		return "0x"
	case Float:
		return ".#"
	case Quoted:
		return "'"
	case ScanCharset:
		return "*" + strconv.Quote(n.Text)
	case ScanOutsideQuotes:
		return "*'" + strconv.Quote(n.Text)
	case ScanFromRight:
		if n.Inclusive {
			return "*<=" + strconv.Quote(n.Text)
		}
		return "*<" + strconv.Quote(n.Text)
	case ScanTerminators:
		var b strings.Builder
		b.WriteString("*|")
		if n.Inclusive {
			b.WriteByte('=')
		}
		if n.IndentAware {
			b.WriteByte('~')
		}
		for i, t := range n.Terms {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.Quote(t))
		}
		return b.String()
	case Regex:
		return "/" + strings.ReplaceAll(n.Text, "/", `\/`) + "/"
	}
	return n.Type.String()
}
