package result

import "github.com/npillmayer/sbnf"

// Listener is a type for walking a result tree.
//
// EnterComponent is called for components and options before their children
// are visited. It returns a boolean value indicating if the traversal should
// continue to the children of this entry. ExitComponent receives the values of
// the children and may return a user-defined value to be propagated upwards.
// Leaf is called for all other entries.
type Listener interface {
	EnterComponent(*Entry, WalkCtxt) bool
	ExitComponent(*Entry, []interface{}, WalkCtxt) interface{}
	Leaf(*Entry, WalkCtxt) interface{}
}

// WalkCtxt is a context structure for Listeners.
type WalkCtxt struct {
	Handle Handle
	Span   sbnf.Span // span of input covered by this entry
	Level  int       // nesting level
}

// Breakmode is a client hint wether to stop traversing on break-signals or not.
type Breakmode int

// Setting Continue will always traverse a complete (sub-)tree. Break will skip
// traversing a sub-tree as soon as EnterComponent signals a break.
const (
	Continue Breakmode = iota
	Break
)

// Walk traverses the sub-tree starting at h top-down, applying Listener-methods for
// all entries encountered. It returns a user-defined value, calculated by the listener.
// If h is NoHandle, all top-level entries are walked and the value of the last one
// is returned.
func (t *Tree) Walk(h Handle, listener Listener, breakmode Breakmode) interface{} {
	if h != NoHandle {
		return t.walk(h, listener, breakmode, 0)
	}
	var value interface{}
	for h = t.First(); h != NoHandle; h = t.Sibling(h, NoHandle) {
		value = t.walk(h, listener, breakmode, 0)
	}
	return value
}

func (t *Tree) walk(h Handle, listener Listener, breakmode Breakmode, level int) interface{} {
	e := &t.entries[h]
	ctxt := WalkCtxt{Handle: h, Span: e.Span, Level: level}
	if e.Kind != Component && e.Kind != Option {
		return listener.Leaf(e, ctxt)
	}
	var values []interface{}
	if listener.EnterComponent(e, ctxt) || breakmode == Continue {
		for ch := t.Descend(h); ch != NoHandle; ch = t.Sibling(ch, h) {
			values = append(values, t.walk(ch, listener, breakmode, level+1))
		}
	}
	return listener.ExitComponent(e, values, ctxt)
}
