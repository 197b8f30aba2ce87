package sbnf

import "testing"

func TestSpan(t *testing.T) {
	s := MakeSpan(3, 7)
	if s.From() != 3 || s.To() != 7 || s.Len() != 4 {
		t.Errorf("unexpected span %v", s)
	}
	if s.IsNull() || !(Span{}).IsNull() {
		t.Errorf("expected only the zero span to be null")
	}
	if x := s.Extend(MakeSpan(1, 5)); x != MakeSpan(1, 7) {
		t.Errorf("expected extended span (1…7), is %v", x)
	}
	if s.String() != "(3…7)" {
		t.Errorf("unexpected span format %s", s)
	}
}

func TestLineCol(t *testing.T) {
	text := "ab\nüx\n"
	for _, c := range []struct {
		offset, line, col int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{5, 2, 2}, // ü has 2 bytes
		{6, 2, 3},
		{7, 3, 1},
		{99, 3, 1},
	} {
		line, col := LineCol(text, c.offset)
		if line != c.line || col != c.col {
			t.Errorf("offset %d: expected %d:%d, have %d:%d", c.offset, c.line, c.col, line, col)
		}
	}
}
