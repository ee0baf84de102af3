package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{File: 1, Start: 2, End: 4}, Span{File: 1, Start: 8, End: 10}, Span{File: 1, Start: 2, End: 10}},
		{"reversed", Span{File: 1, Start: 8, End: 10}, Span{File: 1, Start: 2, End: 4}, Span{File: 1, Start: 2, End: 10}},
		{"nested", Span{File: 1, Start: 0, End: 10}, Span{File: 1, Start: 3, End: 5}, Span{File: 1, Start: 0, End: 10}},
		{"other file", Span{File: 1, Start: 2, End: 4}, Span{File: 2, Start: 0, End: 10}, Span{File: 1, Start: 2, End: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Fatalf("Cover = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanCollapseAndContains(t *testing.T) {
	s := Span{File: 3, Start: 5, End: 9}
	if got := s.AtStart(); got != (Span{File: 3, Start: 5, End: 5}) || !got.Empty() {
		t.Fatalf("AtStart = %v", got)
	}
	if got := s.AtEnd(); got != (Span{File: 3, Start: 9, End: 9}) || !got.Contains(9) {
		t.Fatalf("AtEnd = %v", got)
	}
	if !s.Contains(5) || !s.Contains(8) || s.Contains(9) {
		t.Fatal("Contains must treat the span as half-open")
	}
	if s.Len() != 4 {
		t.Fatalf("Len = %d", s.Len())
	}
	if s.String() != "3:5-9" {
		t.Fatalf("String = %q", s.String())
	}
}
