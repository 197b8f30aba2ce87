package engine

import (
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/sbnf"
	"github.com/npillmayer/sbnf/grammar"
	"github.com/npillmayer/sbnf/result"
)

// engine holds the state of a single parse run.
type engine struct {
	g        *grammar.Grammar
	dirs     *grammar.Directives
	input    string
	end      int // input is matched up to here
	pos      int
	line     int
	tree     *result.Tree // receives results, may be a side buffer during <^rule>
	main     *result.Tree // top-level result, snapshotted on failures
	track    *tracker
	scope    *scope
	rule     *grammar.Rule // rule currently matched
	tags     []string      // resolved tags of enclosing rules, innermost last
	lineage  []string      // enclosing semantic tags
	depth    int
	maxDepth int
	err      error // hard error, aborts matching
}

func newEngine(g *grammar.Grammar, input string, maxDepth, snapshotSize int) *engine {
	tree := result.NewTree()
	return &engine{
		g:        g,
		dirs:     &g.Directives,
		input:    input,
		end:      len(input),
		line:     1,
		tree:     tree,
		main:     tree,
		track:    newTracker(snapshotSize),
		maxDepth: maxDepth,
	}
}

// text is the part of the input available for matching.
func (e *engine) text() string {
	return e.input[:e.end]
}

func (e *engine) advanceTo(pos int) {
	e.line += strings.Count(e.input[e.pos:pos], "\n")
	e.pos = pos
}

func (e *engine) fail(pos int, n *grammar.Node) {
	e.failText(pos, n.String())
}

func (e *engine) failText(pos int, fragment string) {
	if e.track.quiet == 0 && pos >= e.track.rightmost {
		tracer().Debugf("fail at %d: expected %s", pos, fragment)
	}
	e.track.record(pos, fragment, strings.Join(e.lineage, "."), e.main)
}

func (e *engine) abort(err error) {
	if e.err == nil {
		e.err = err
	}
}

// --- Snapshots -------------------------------------------------------------

type snapshot struct {
	pos      int
	line     int
	tree     result.Handle
	produced []*result.Tree
	pending  int
}

func (e *engine) snapshot() snapshot {
	return snapshot{
		pos:      e.pos,
		line:     e.line,
		tree:     e.tree.Position(),
		produced: e.scope.produced,
		pending:  e.scope.pending.Size(),
	}
}

func (e *engine) restore(s snapshot) {
	e.pos = s.pos
	e.line = s.line
	e.tree.Truncate(s.tree)
	e.scope.produced = s.produced
	for e.scope.pending.Size() > s.pending {
		e.scope.pending.Remove(e.scope.pending.Size() - 1)
	}
}

// --- Transport -------------------------------------------------------------

// scope holds transported results for the duration of a rule match.
type scope struct {
	produced []*result.Tree  // side buffers waiting for an acceptor
	pending  *arraylist.List // of *insertion, applied when the rule has matched
}

func newScope(inherited []*result.Tree) *scope {
	return &scope{produced: inherited, pending: arraylist.New()}
}

// insertion is a pending splice of side buffers into the result tree.
type insertion struct {
	buffers []*result.Tree
	at      result.Handle
	parent  result.Handle
}

// produce adds a side buffer to the current scope. produced is never appended
// to in place, as snapshots share it.
func (e *engine) produce(buf *result.Tree) {
	p := e.scope.produced
	e.scope.produced = append(p[:len(p):len(p)], buf)
}

// accept queues all side buffers of the current scope for insertion at a given
// position.
func (e *engine) accept(at, parent result.Handle) {
	if len(e.scope.produced) == 0 {
		return
	}
	e.scope.pending.Add(&insertion{buffers: e.scope.produced, at: at, parent: parent})
	e.scope.produced = nil
}

// applyPending splices the side buffers of all pending insertions into the
// result tree. Handles in hold are adjusted.
func (e *engine) applyPending(sc *scope, hold *result.Handle) {
	if sc.pending.Empty() {
		return
	}
	ins := make([]*insertion, 0, sc.pending.Size())
	it := sc.pending.Iterator()
	for it.Next() {
		ins = append(ins, it.Value().(*insertion))
	}
	for i, x := range ins {
		for k := len(x.buffers) - 1; k >= 0; k-- {
			shift := []*result.Handle{hold}
			for _, y := range ins[i+1:] {
				shift = append(shift, &y.at, &y.parent)
			}
			e.tree.Splice(x.buffers[k], x.at, x.parent, shift...)
		}
	}
	sc.pending.Clear()
	if len(sc.produced) > 0 {
		tracer().Debugf("%d transported results not accepted", len(sc.produced))
	}
}

// --- Rules -----------------------------------------------------------------

// resolveTag resolves the tag of a leaf or group.
func (e *engine) resolveTag(tag string) string {
	if tag == grammar.InheritTag {
		if len(e.tags) == 0 {
			return ""
		}
		return e.tags[len(e.tags)-1]
	}
	return tag
}

// matchRef matches a rule reference.
func (e *engine) matchRef(n *grammar.Node, parent result.Handle) bool {
	rule, ok := e.g.Rule(n.Text)
	if !ok {
		from := ""
		if e.rule != nil {
			from = e.rule.Name
		}
		e.abort(unknownRule(&UnknownRuleError{Rule: n.Text, From: from}))
		return false
	}
	tag := rule.Tag
	if n.Override {
		tag = e.resolveTag(n.Tag)
	}
	if n.Produce {
		main := e.tree
		e.tree = result.NewTree()
		ok = e.matchRule(rule, tag, result.NoHandle, nil)
		side := e.tree
		e.tree = main
		if ok && side.Len() > 0 {
			e.produce(side)
		}
		return ok
	}
	var inherited []*result.Tree
	if n.Propagate {
		inherited = e.scope.produced
		e.scope.produced = nil
	}
	at := e.tree.Position()
	if !e.matchRule(rule, tag, parent, inherited) {
		return false
	}
	if n.Accept {
		if tag != "" {
			e.accept(at+1, at)
		} else {
			e.accept(at, parent)
		}
	}
	return true
}

// matchRule matches the body of a rule. A component entry is written if tag is
// not empty. inherited are side buffers handed over from the caller.
func (e *engine) matchRule(rule *grammar.Rule, tag string, parent result.Handle,
	inherited []*result.Tree) bool {
	//
	if e.depth >= e.maxDepth {
		e.abort(ErrRecursionDepth)
		return false
	}
	e.depth++
	outerScope, outerRule, outerLineage := e.scope, e.rule, len(e.lineage)
	e.scope, e.rule = newScope(inherited), rule
	e.tags = append(e.tags, tag)
	defer func() {
		e.depth--
		e.scope, e.rule = outerScope, outerRule
		e.tags = e.tags[:len(e.tags)-1]
		e.lineage = e.lineage[:outerLineage]
	}()
	start := e.pos
	comp := parent
	if tag != "" {
		comp = e.tree.Append(tag, result.Component, nil, parent)
		e.lineage = append(e.lineage, tag)
	}
	alt := e.matchAlts(rule.Body.Alts, comp)
	if alt == 0 {
		return false
	}
	if tag != "" {
		e.tree.Close(comp)
		c := e.tree.At(comp)
		c.Alt = alt
		c.Span = sbnf.MakeSpan(e.contentStart(start), e.pos)
	}
	e.applyPending(e.scope, &comp)
	tracer().Debugf("matched %s at line %d", rule.Name, e.line)
	return true
}

// matchAlts tries alternatives in order. It returns the 1-based index of the first
// alternative to match, result.NoAlternatives for a single matching alternative,
// or 0 if no alternative matched.
func (e *engine) matchAlts(alts []grammar.Seq, parent result.Handle) int {
	for i, seq := range alts {
		s := e.snapshot()
		if e.matchSeq(seq, 0, parent, succeed) {
			if len(alts) == 1 {
				return result.NoAlternatives
			}
			return i + 1
		}
		e.restore(s)
		if e.err != nil {
			break
		}
	}
	return 0
}

// contentStart returns the position of the first character of a match
// starting at pos, i.e. behind leading whitespace and comments.
func (e *engine) contentStart(pos int) int {
	if q := e.skipFrom(pos); q < e.pos {
		return q
	}
	return pos
}

// --- Top level -------------------------------------------------------------

func (e *engine) run(start *grammar.Rule, skipLeading bool, seeds []Seed) bool {
	if skipLeading {
		e.advanceTo(e.skipFrom(0))
	}
	e.scope = newScope(nil)
	if !e.matchRule(start, start.Tag, result.NoHandle, nil) {
		return false
	}
	if q := e.skipFrom(e.pos); q < e.end {
		e.failText(q, "end of input")
		return false
	}
	e.advanceTo(e.end)
	if len(seeds) > 0 {
		at, parent := result.Handle(0), result.NoHandle
		if start.Tag != "" {
			at, parent = 1, 0
		}
		e.tree.Splice(seedTree(seeds), at, parent)
	}
	return true
}
