package result

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/sbnf"
	"golang.org/x/exp/slices"
)

// Kind is the kind of a result entry.
type Kind int8

// Kinds of result entries.
const (
	Component Kind = iota // rule match, parent of its sub-results
	String                // text, from quoted strings and scans
	Ident                 // identifier
	Integer               // int64 value
	Float                 // float64 value
	Option                // chosen alternative of a tagged option
	Terminal              // tagged constant terminal
	Marker                // semantic marker, no text
)

var kindNames = [...]string{
	"Component", "String", "Ident", "Integer", "Float", "Option", "Terminal", "Marker",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindNames[k]
}

// Handle is a position within a result tree.
type Handle int

// NoHandle denotes the absence of an entry.
const NoHandle Handle = -1

// NoAlternatives is the Alt value of components for rules without alternatives.
// For all other components, Alt is the 1-based index of the matching alternative.
// Option entries have Alt 0 if no alternative matched.
const NoAlternatives = -1

// Entry is an entry of a result tree.
type Entry struct {
	Tag    string
	Kind   Kind
	Text   string      // raw input text
	Value  interface{} // int64, float64 or string, depending on Kind
	Alt    int
	End    Handle // position behind the last descendant
	Parent Handle
	Span   sbnf.Span
}

func (e Entry) String() string {
	switch e.Kind {
	case Component, Option:
		return fmt.Sprintf("%s[%s alt=%d]", e.Tag, e.Kind, e.Alt)
	case Marker:
		return fmt.Sprintf("%s[%s]", e.Tag, e.Kind)
	}
	return fmt.Sprintf("%s[%s %v]", e.Tag, e.Kind, e.Value)
}

// Tree is a parse result. The zero value is an empty tree.
// Trees are not safe for concurrent modification.
type Tree struct {
	entries []Entry
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{entries: make([]Entry, 0, 64)}
}

// Len returns the number of entries.
func (t *Tree) Len() int {
	return len(t.entries)
}

// Position returns the handle the next appended entry will receive.
func (t *Tree) Position() Handle {
	return Handle(len(t.entries))
}

// Append adds an entry as the last descendant of parent. The entry initially
// covers no descendants.
func (t *Tree) Append(tag string, kind Kind, value interface{}, parent Handle) Handle {
	h := t.Position()
	t.entries = append(t.entries, Entry{
		Tag:    tag,
		Kind:   kind,
		Value:  value,
		End:    h + 1,
		Parent: parent,
	})
	return h
}

// At returns a pointer to an entry, for completing it. The pointer is valid until
// the next Append, Truncate or Splice.
func (t *Tree) At(h Handle) *Entry {
	return &t.entries[h]
}

// Entry returns a copy of an entry.
func (t *Tree) Entry(h Handle) Entry {
	return t.entries[h]
}

// Truncate drops all entries from h on.
func (t *Tree) Truncate(h Handle) {
	if int(h) < len(t.entries) {
		t.entries = t.entries[:h]
	}
}

// Close marks every entry appended after h as a descendant of h.
func (t *Tree) Close(h Handle) {
	t.entries[h].End = t.Position()
}

// Splice inserts all entries of other at position at, making the top-level
// entries of other children of parent. All handles recorded in the tree are
// adjusted, and so are the handles pointed to by shift.
//
// parent must be NoHandle or an entry enclosing position at.
func (t *Tree) Splice(other *Tree, at Handle, parent Handle, shift ...*Handle) {
	n := Handle(other.Len())
	if n == 0 {
		return
	}
	for i := Handle(0); i < at; i++ {
		e := &t.entries[i]
		if e.End > at || (e.End == at && i <= parent) {
			e.End += n
		}
	}
	for i := int(at); i < len(t.entries); i++ {
		e := &t.entries[i]
		e.End += n
		if e.Parent >= at {
			e.Parent += n
		}
	}
	ins := make([]Entry, n)
	for i, e := range other.entries {
		e.End += at
		if e.Parent == NoHandle {
			e.Parent = parent
		} else {
			e.Parent += at
		}
		ins[i] = e
	}
	t.entries = slices.Insert(t.entries, int(at), ins...)
	for _, h := range shift {
		if *h >= at {
			*h += n
		}
	}
	tracer().Debugf("spliced %d entries at %d, parent %d", n, at, parent)
}

// --- Navigation ------------------------------------------------------------

// First returns the first entry, or NoHandle for an empty tree.
func (t *Tree) First() Handle {
	if len(t.entries) == 0 {
		return NoHandle
	}
	return 0
}

// Descend returns the first child of parent, or NoHandle if parent has no children.
// Descend(NoHandle) is the same as First().
func (t *Tree) Descend(parent Handle) Handle {
	if parent == NoHandle {
		return t.First()
	}
	if child := parent + 1; child < t.entries[parent].End {
		return child
	}
	return NoHandle
}

// Sibling returns the entry following h within parent, or NoHandle if h is the
// last child of parent. For parent == NoHandle, the siblings are the top-level entries.
func (t *Tree) Sibling(h, parent Handle) Handle {
	next := t.entries[h].End
	limit := t.Position()
	if parent != NoHandle {
		limit = t.entries[parent].End
	}
	if next < limit {
		return next
	}
	return NoHandle
}

// Children returns the handles of all children of parent.
func (t *Tree) Children(parent Handle) []Handle {
	var children []Handle
	for h := t.Descend(parent); h != NoHandle; h = t.Sibling(h, parent) {
		children = append(children, h)
	}
	return children
}

// Child returns the first child of parent with the given tag, or NoHandle.
func (t *Tree) Child(parent Handle, tag string) Handle {
	for h := t.Descend(parent); h != NoHandle; h = t.Sibling(h, parent) {
		if t.entries[h].Tag == tag {
			return h
		}
	}
	return NoHandle
}

// Find returns all entries with a given tag, in input order.
func (t *Tree) Find(tag string) []Handle {
	var found []Handle
	for i, e := range t.entries {
		if e.Tag == tag {
			found = append(found, Handle(i))
		}
	}
	return found
}

// --- Debugging -------------------------------------------------------------

type fingerprintEntry struct {
	Tag    string
	Kind   int
	Text   string
	Value  string
	Alt    int
	End    int
	Parent int
	Span   [2]uint64
}

// Fingerprint returns a hash over all entries. Trees with the same structure
// and the same content have identical fingerprints.
func (t *Tree) Fingerprint() string {
	fp := make([]fingerprintEntry, len(t.entries))
	for i, e := range t.entries {
		fp[i] = fingerprintEntry{
			Tag:    e.Tag,
			Kind:   int(e.Kind),
			Text:   e.Text,
			Value:  fmt.Sprintf("%T:%v", e.Value, e.Value),
			Alt:    e.Alt,
			End:    int(e.End),
			Parent: int(e.Parent),
			Span:   e.Span,
		}
	}
	hash, err := structhash.Hash(struct{ Entries []fingerprintEntry }{fp}, 1)
	if err != nil {
		tracer().Errorf("cannot fingerprint result tree: %v", err)
		return ""
	}
	return hash
}

// String renders the tree as an indented list, one entry per line.
func (t *Tree) String() string {
	var b strings.Builder
	depth := make([]int, len(t.entries))
	for i, e := range t.entries {
		if e.Parent != NoHandle {
			depth[i] = depth[e.Parent] + 1
		}
		fmt.Fprintf(&b, "%4d %s%s\n", i, strings.Repeat("  ", depth[i]), e)
	}
	return b.String()
}

// Dump is a debugging helper, tracing the entries of a tree.
func (t *Tree) Dump() {
	tracer().Debugf("--- result tree, %d entries ---------------------", len(t.entries))
	for _, line := range strings.Split(strings.TrimRight(t.String(), "\n"), "\n") {
		tracer().Debugf("%s", line)
	}
	tracer().Debugf("-------------------------------------------------")
}
