package source

import (
	"testing"
)

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{
			name: "disjoint spans",
			a:    Span{File: 1, Start: 2, End: 4},
			b:    Span{File: 1, Start: 8, End: 10},
			want: Span{File: 1, Start: 2, End: 10},
		},
		{
			name: "nested span",
			a:    Span{File: 1, Start: 0, End: 10},
			b:    Span{File: 1, Start: 3, End: 5},
			want: Span{File: 1, Start: 0, End: 10},
		},
		{
			name: "different files keep receiver",
			a:    Span{File: 1, Start: 3, End: 5},
			b:    Span{File: 2, Start: 0, End: 10},
			want: Span{File: 1, Start: 3, End: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Errorf("Cover() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSpan_EmptyLen(t *testing.T) {
	sp := Span{Start: 4, End: 4}
	if !sp.Empty() || sp.Len() != 0 {
		t.Fatalf("expected empty span, got %v", sp)
	}
	sp.End = 9
	if sp.Empty() || sp.Len() != 5 {
		t.Fatalf("expected length 5, got %d", sp.Len())
	}
}
