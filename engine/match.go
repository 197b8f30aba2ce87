package engine

import (
	"strings"

	"github.com/npillmayer/sbnf"
	"github.com/npillmayer/sbnf/grammar"
	"github.com/npillmayer/sbnf/result"
)

// cont is a continuation: it matches the remainder of the enclosing sequences.
type cont func() bool

func succeed() bool {
	return true
}

func isChoice(n *grammar.Node) bool {
	return n.Type.IsOption() || n.Type == grammar.AltSet
}

// matchSeq matches seq[i:] and then k. Choices within seq are matched together
// with the remainder of the sequence, so the engine is able to revise a choice if
// the remainder does not match.
func (e *engine) matchSeq(seq grammar.Seq, i int, parent result.Handle, k cont) bool {
	for ; i < len(seq); i++ {
		if e.err != nil {
			return false
		}
		n := seq[i]
		if isChoice(n) {
			next := i + 1
			return e.matchChoice(n, parent, func() bool {
				return e.matchSeq(seq, next, parent, k)
			})
		}
		if !e.matchNode(n, parent) {
			return false
		}
	}
	return e.err == nil && k()
}

// matchChoice matches an option or an alternative set, followed by k.
func (e *engine) matchChoice(n *grammar.Node, parent result.Handle, k cont) bool {
	if n.Type == grammar.AltOptionCheckEmpty {
		s := e.snapshot()
		if e.matchAbsent(n, parent) && k() {
			return true
		}
		e.restore(s)
		if e.err != nil {
			return false
		}
	}
	tag := e.resolveTag(n.Tag)
	for i, alt := range n.Alts {
		s := e.snapshot()
		if e.matchGroupAlt(n, tag, i+1, alt, parent, k) {
			return true
		}
		e.restore(s)
		if e.err != nil {
			return false
		}
	}
	if n.Type == grammar.Option || n.Type == grammar.AltOption {
		s := e.snapshot()
		if e.matchAbsent(n, parent) && k() {
			return true
		}
		e.restore(s)
	}
	return false
}

// matchGroupAlt matches alternative alt of a group, followed by k. A tagged group
// gets an entry covering the alternative.
func (e *engine) matchGroupAlt(n *grammar.Node, tag string, alt int, seq grammar.Seq,
	parent result.Handle, k cont) bool {
	//
	if tag == "" {
		return e.matchSeq(seq, 0, parent, k)
	}
	kind := result.Option
	if n.Type == grammar.AltSet {
		kind = result.Component
	}
	start := e.pos
	h := e.tree.Append(tag, kind, alt, parent)
	e.tree.At(h).Alt = alt
	e.lineage = append(e.lineage, tag)
	depth := len(e.lineage) - 1
	return e.matchSeq(seq, 0, h, func() bool {
		e.tree.Close(h)
		e.tree.At(h).Span = sbnf.MakeSpan(e.contentStart(start), e.pos)
		e.lineage = e.lineage[:depth]
		if k() {
			return true
		}
		e.lineage = append(e.lineage[:depth], tag)
		return false
	}) || e.popLineage(depth)
}

// popLineage drops lineage entries from depth on. It always returns false.
func (e *engine) popLineage(depth int) bool {
	if len(e.lineage) > depth {
		e.lineage = e.lineage[:depth]
	}
	return false
}

// matchAbsent records an option which did not match anything.
func (e *engine) matchAbsent(n *grammar.Node, parent result.Handle) bool {
	if tag := e.resolveTag(n.Tag); tag != "" {
		h := e.tree.Append(tag, result.Option, 0, parent)
		e.tree.At(h).Span = sbnf.MakeSpan(e.pos, e.pos)
	}
	return true
}

// matchNode matches a single node which is not a choice.
func (e *engine) matchNode(n *grammar.Node, parent result.Handle) bool {
	switch n.Type {
	case grammar.Terminal:
		return e.matchTerminal(n, parent)
	case grammar.RuleRef:
		return e.matchRef(n, parent)
	case grammar.Repetition:
		return e.matchRepetition(n, parent)
	case grammar.Negative:
		return e.matchNegative(n, parent)
	case grammar.Marker:
		if tag := e.resolveTag(n.Tag); tag != "" {
			h := e.tree.Append(tag, result.Marker, nil, parent)
			e.tree.At(h).Span = sbnf.MakeSpan(e.pos, e.pos)
		}
		return true
	case grammar.SkipSpace:
		e.advanceTo(e.skipFrom(e.pos))
		return true
	}
	if n.Type.IsLeaf() {
		return e.matchLeaf(n, parent)
	}
	tracer().Errorf("unexpected grammar node %s", n.Type)
	return false
}

// matchRepetition matches its forward part as often as possible. If a continuation
// is present, it has to match between two forward parts. A loop iteration which
// does not consume any input ends the repetition.
func (e *engine) matchRepetition(n *grammar.Node, parent result.Handle) bool {
	tag := e.resolveTag(n.Tag)
	start := e.pos
	h := parent
	if tag != "" {
		h = e.tree.Append(tag, result.Component, nil, parent)
		e.lineage = append(e.lineage, tag)
		defer e.popLineage(len(e.lineage) - 1)
	}
	count := 0
	for e.err == nil {
		s := e.snapshot()
		if count > 0 && len(n.Cont) > 0 {
			if e.matchAlts(n.Cont, h) == 0 {
				e.restore(s)
				break
			}
		}
		if e.matchAlts(n.Alts, h) == 0 || e.pos == s.pos {
			e.restore(s)
			break
		}
		count++
	}
	if e.err != nil {
		return false
	}
	if tag != "" {
		e.tree.Close(h)
		r := e.tree.At(h)
		r.Alt = count
		r.Span = sbnf.MakeSpan(e.contentStart(start), e.pos)
	}
	return true
}

// matchNegative succeeds without consuming anything if none of the alternatives
// of n match.
func (e *engine) matchNegative(n *grammar.Node, parent result.Handle) bool {
	s := e.snapshot()
	e.track.quiet++
	matched := e.matchAlts(n.Alts, parent) != 0
	e.track.quiet--
	e.restore(s)
	if e.err != nil {
		return false
	}
	if matched {
		alts := make([]string, len(n.Alts))
		for i, seq := range n.Alts {
			alts[i] = seq.String()
		}
		e.failText(e.skipFrom(s.pos), "not "+strings.Join(alts, " | "))
		return false
	}
	return true
}
