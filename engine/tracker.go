package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/sbnf"
	"github.com/npillmayer/sbnf/result"
)

// tracker remembers the rightmost position a failure occured at, together with
// everything expected at that position.
type tracker struct {
	rightmost int
	expected  []string
	trailing  []string // rendering of the last result entries at the time of failure
	size      int      // maximum number of trailing entries
	quiet     int      // > 0 while within negative lookahead
}

func newTracker(size int) *tracker {
	return &tracker{rightmost: -1, size: size}
}

// record registers a failure at input position pos. fragment describes what was
// expected, lineage names the enclosing semantic tags.
func (t *tracker) record(pos int, fragment, lineage string, tree *result.Tree) {
	if t.quiet > 0 || pos < t.rightmost {
		return
	}
	if lineage != "" {
		fragment = fragment + " in " + lineage
	}
	if pos > t.rightmost {
		t.rightmost = pos
		t.expected = t.expected[:0]
		t.snapshot(tree)
	}
	for _, x := range t.expected {
		if x == fragment {
			return
		}
	}
	t.expected = append(t.expected, fragment)
}

func (t *tracker) snapshot(tree *result.Tree) {
	t.trailing = t.trailing[:0]
	from := tree.Len() - t.size
	if from < 0 {
		from = 0
	}
	for h := from; h < tree.Len(); h++ {
		t.trailing = append(t.trailing, fmt.Sprintf("%d: %s", h, tree.Entry(result.Handle(h))))
	}
}

// --- Diagnostics -----------------------------------------------------------

// Diagnostics describe the outcome of a failed parse.
type Diagnostics struct {
	input    string
	pos      int
	line     int
	col      int
	expected []string
	trailing []string
	width    int
}

func makeDiagnostics(input string, t *tracker, width int) *Diagnostics {
	d := &Diagnostics{
		input:    input,
		pos:      t.rightmost,
		expected: append([]string(nil), t.expected...),
		trailing: append([]string(nil), t.trailing...),
		width:    width,
	}
	if d.pos < 0 {
		d.pos = 0
	}
	d.line, d.col = sbnf.LineCol(input, d.pos)
	return d
}

// Position is the rightmost byte offset a failure occured at.
func (d *Diagnostics) Position() int {
	return d.pos
}

// Line returns the line number (1…n) of Position.
func (d *Diagnostics) Line() int {
	return d.line
}

// Column returns the column (1…n, counting runes) of Position.
func (d *Diagnostics) Column() int {
	return d.col
}

// Expected returns everything expected at Position, in the order of discovery.
func (d *Diagnostics) Expected() []string {
	return d.expected
}

// Trailing returns a rendering of the last result entries written when the failure
// at Position occured. Entries are taken from the top-level result, even if the
// failure occured while producing results for transport.
func (d *Diagnostics) Trailing() []string {
	return d.trailing
}

// AtEnd is true if the failure occured at the end of input.
func (d *Diagnostics) AtEnd() bool {
	return d.pos >= len(d.input)
}

// Excerpt returns the input line containing Position, cut to the configured width,
// and a second line with a caret marking Position.
func (d *Diagnostics) Excerpt() string {
	start := strings.LastIndexByte(d.input[:d.pos], '\n') + 1
	end := strings.IndexByte(d.input[d.pos:], '\n')
	if end < 0 {
		end = len(d.input)
	} else {
		end += d.pos
	}
	line := d.input[start:end]
	caret := utf8.RuneCountInString(d.input[start:d.pos])
	runes := []rune(line)
	if d.width > 0 && len(runes) > d.width {
		from := caret - d.width/2
		if from < 0 {
			from = 0
		}
		to := from + d.width
		if to > len(runes) {
			to = len(runes)
			from = to - d.width
		}
		runes = runes[from:to]
		caret -= from
	}
	prefix := fmt.Sprintf("%4d | ", d.line)
	return prefix + strings.TrimRight(string(runes), "\r") + "\n" +
		strings.Repeat(" ", len(prefix)-2) + "| " + strings.Repeat(" ", caret) + "^"
}

// Report renders the diagnostics as a multi-line text.
func (d *Diagnostics) Report() string {
	var b strings.Builder
	where := "end of input"
	if !d.AtEnd() {
		where = fmt.Sprintf("line %d, column %d", d.line, d.col)
	}
	fmt.Fprintf(&b, "syntax error at %s:\n%s\n", where, d.Excerpt())
	switch len(d.expected) {
	case 0:
	case 1:
		fmt.Fprintf(&b, "expected %s\n", d.expected[0])
	default:
		b.WriteString("expected one of\n")
		for _, x := range d.expected {
			fmt.Fprintf(&b, "    %s\n", x)
		}
	}
	if len(d.trailing) > 0 {
		b.WriteString("last results\n")
		for _, t := range d.trailing {
			fmt.Fprintf(&b, "    %s\n", t)
		}
	}
	return b.String()
}
