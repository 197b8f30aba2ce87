package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/sbnf/grammar"
	"github.com/npillmayer/sbnf/markup"
	"github.com/npillmayer/sbnf/result"
	"github.com/pterm/pterm"
)

// render returns the printable form of a parse result, either as XML or as a tree.
func render(tree *result.Tree, g *grammar.Grammar, opts options) (string, error) {
	if opts.xml {
		var b strings.Builder
		var mopts []markup.Option
		if opts.spans {
			mopts = append(mopts, markup.WithSpans())
		}
		err := markup.Write(&b, tree, g, mopts...)
		return b.String(), err
	}
	if tree.Len() == 0 {
		return "(empty result)\n", nil
	}
	ll := leveledList(tree)
	tracer().Debugf("|ll| = %d", len(ll))
	root := pterm.NewTreeFromLeveledList(ll)
	root.Text = g.Name
	return pterm.DefaultTree.WithRoot(root).Srender()
}

// leveledList flattens a result tree into a list of labels with nesting levels.
func leveledList(tree *result.Tree) pterm.LeveledList {
	l := &leveler{}
	tree.Walk(result.NoHandle, l, result.Continue)
	return l.items
}

type leveler struct {
	items pterm.LeveledList
}

func (l *leveler) add(e *result.Entry, ctxt result.WalkCtxt) {
	l.items = append(l.items, pterm.LeveledListItem{
		Level: ctxt.Level,
		Text:  label(e),
	})
}

func (l *leveler) EnterComponent(e *result.Entry, ctxt result.WalkCtxt) bool {
	l.add(e, ctxt)
	return true
}

func (l *leveler) ExitComponent(e *result.Entry, values []interface{}, ctxt result.WalkCtxt) interface{} {
	return nil
}

func (l *leveler) Leaf(e *result.Entry, ctxt result.WalkCtxt) interface{} {
	l.add(e, ctxt)
	return nil
}

func label(e *result.Entry) string {
	switch e.Kind {
	case result.Component, result.Option:
		if e.Alt == result.NoAlternatives {
			return e.Tag
		}
		return fmt.Sprintf("%s (alt %d)", e.Tag, e.Alt)
	case result.Marker:
		return e.Tag
	case result.String:
		return fmt.Sprintf("%s = %q", e.Tag, e.Value)
	}
	return fmt.Sprintf("%s = %v", e.Tag, e.Value)
}
