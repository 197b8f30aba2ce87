package markup

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/npillmayer/sbnf/grammar"
	"github.com/npillmayer/sbnf/result"
)

// WrapperElement is the name of the root element for trees with more than one
// top-level entry.
const WrapperElement = "result"

// Option configures serialization.
type Option func(*serializer)

// WithSpans adds attributes "from" and "to" to every element, holding the
// byte positions of the input covered by the entry.
func WithSpans() Option {
	return func(s *serializer) {
		s.spans = true
	}
}

// Indent sets the indentation string. Default is two spaces; an empty string
// writes all elements on a single line.
func Indent(indent string) Option {
	return func(s *serializer) {
		s.indent = indent
	}
}

// Write serializes a result tree as XML to w. g may be nil; otherwise its
// namespace declarations are attached to the root element.
func Write(w io.Writer, tree *result.Tree, g *grammar.Grammar, opts ...Option) error {
	s := &serializer{
		enc:    xml.NewEncoder(w),
		tree:   tree,
		indent: "  ",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.enc.Indent("", s.indent)
	if g != nil {
		s.ns = namespaceAttrs(g.Directives.Namespaces)
	}
	top := tree.Children(result.NoHandle)
	tracer().Debugf("serializing %d entries, %d top-level", tree.Len(), len(top))
	if len(top) != 1 {
		start := xml.StartElement{Name: xml.Name{Local: WrapperElement}, Attr: s.takeNamespaces()}
		if err := s.enc.EncodeToken(start); err != nil {
			return err
		}
		tree.Walk(result.NoHandle, s, result.Continue)
		s.token(start.End())
	} else {
		tree.Walk(top[0], s, result.Continue)
	}
	if s.err != nil {
		return s.err
	}
	if err := s.enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func namespaceAttrs(namespaces []grammar.Namespace) []xml.Attr {
	attrs := make([]xml.Attr, 0, len(namespaces))
	for _, ns := range namespaces {
		name := "xmlns"
		if ns.Prefix != "" {
			name = "xmlns:" + ns.Prefix
		}
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: name}, Value: ns.URI})
	}
	return attrs
}

// serializer is a result.Listener, writing XML tokens while walking a tree.
type serializer struct {
	enc    *xml.Encoder
	tree   *result.Tree
	ns     []xml.Attr // pending namespace declarations, for the first element
	spans  bool
	indent string
	err    error
}

var _ result.Listener = (*serializer)(nil)

func (s *serializer) takeNamespaces() []xml.Attr {
	ns := s.ns
	s.ns = nil
	return ns
}

func (s *serializer) token(t xml.Token) {
	if s.err != nil {
		return
	}
	if err := s.enc.EncodeToken(t); err != nil {
		tracer().Errorf("markup: %v", err)
		s.err = err
	}
}

func (s *serializer) start(e *result.Entry) xml.StartElement {
	start := xml.StartElement{Name: xml.Name{Local: elementName(e.Tag)}}
	start.Attr = s.takeNamespaces()
	if (e.Kind == result.Component || e.Kind == result.Option) && e.Alt != result.NoAlternatives {
		start.Attr = append(start.Attr, attr("alt", strconv.Itoa(e.Alt)))
	}
	if s.spans {
		start.Attr = append(start.Attr,
			attr("from", strconv.FormatUint(e.Span.From(), 10)),
			attr("to", strconv.FormatUint(e.Span.To(), 10)))
	}
	return start
}

// EnterComponent is part of interface result.Listener.
func (s *serializer) EnterComponent(e *result.Entry, ctxt result.WalkCtxt) bool {
	s.token(s.start(e))
	return true
}

// ExitComponent is part of interface result.Listener.
func (s *serializer) ExitComponent(e *result.Entry, values []interface{}, ctxt result.WalkCtxt) interface{} {
	s.token(xml.EndElement{Name: xml.Name{Local: elementName(e.Tag)}})
	return nil
}

// Leaf is part of interface result.Listener.
func (s *serializer) Leaf(e *result.Entry, ctxt result.WalkCtxt) interface{} {
	start := s.start(e)
	s.token(start)
	if e.Kind != result.Marker {
		s.token(xml.CharData(leafText(e)))
	}
	s.token(start.End())
	return nil
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// elementName replaces an empty tag, which is no valid element name.
func elementName(tag string) string {
	if tag == "" {
		return "_"
	}
	return tag
}

func leafText(e *result.Entry) string {
	switch v := e.Value.(type) {
	case nil:
		return e.Text
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
