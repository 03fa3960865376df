package sheet

import (
	"errors"
	"math"
	"testing"
)

func TestPlanScenarios(t *testing.T) {
	doc := newFakeDoc(3, 2, 4, map[string][2]int{
		"walk": {0, 3},
		"a":    {0, 0},
		"b":    {1, 1},
		"c":    {2, 2},
	})
	tests := []struct {
		name       string
		opts       Options
		cols, rows int
		frames     []int
	}{
		{"single row", Options{Tags: []string{"walk"}, FramesPerTag: 4}, 4, 1, []int{0, 1, 2, 3}},
		{"two columns", Options{Tags: []string{"walk"}, FramesPerTag: 4, Columns: 2}, 2, 2, []int{0, 1, 2, 3}},
		{"ragged", Options{Tags: []string{"a", "b", "c"}, Columns: 2}, 2, 2, []int{0, 1, 2}},
		{"wide", Options{Tags: []string{"a", "b"}, Columns: 5}, 5, 1, []int{0, 1}},
		{"column", Options{Tags: []string{"walk"}, FramesPerTag: 3, Columns: 1}, 1, 3, []int{0, 1, 2}},
		{"repeats", Options{Tags: []string{"b", "b", "a"}}, 3, 1, []int{1, 1, 0}},
	}
	for _, tt := range tests {
		l, err := Plan(doc, tt.opts)
		if err != nil {
			t.Errorf("%s: %v", tt.name, err)
			continue
		}
		if l.Cols != tt.cols || l.Rows != tt.rows {
			t.Errorf("%s: grid got %dx%d, expected %dx%d", tt.name, l.Cols, l.Rows, tt.cols, tt.rows)
		}
		if l.Width() != tt.cols*3 || l.Height() != tt.rows*2 {
			t.Errorf("%s: size got %dx%d", tt.name, l.Width(), l.Height())
		}
		if len(l.Placements) != len(tt.frames) {
			t.Errorf("%s: got %d placements, expected %d", tt.name, len(l.Placements), len(tt.frames))
			continue
		}
		for i, p := range l.Placements {
			if p.Frame != tt.frames[i] {
				t.Errorf("%s: placement %d frame got %d, expected %d", tt.name, i, p.Frame, tt.frames[i])
			}
		}
	}
}

func TestPlanProperties(t *testing.T) {
	const w, h = 3, 5
	doc := newFakeDoc(w, h, 9, map[string][2]int{
		"x": {0, 2},
		"y": {3, 5},
		"z": {6, 8},
	})
	all := []string{"x", "y", "z", "y"}
	for tags := 1; tags <= len(all); tags++ {
		for k := 1; k <= 3; k++ {
			for cols := 0; cols <= 13; cols++ {
				opts := Options{Tags: all[:tags], FramesPerTag: k, Columns: cols}
				l, err := Plan(doc, opts)
				if err != nil {
					t.Fatalf("%+v: %v", opts, err)
				}
				m := tags * k
				wantCols := cols
				if cols == 0 {
					wantCols = m
				}
				if l.Width() != wantCols*w || l.Height() != (m+wantCols-1)/wantCols*h {
					t.Errorf("%+v: size got %dx%d", opts, l.Width(), l.Height())
				}
				if len(l.Placements) != m {
					t.Fatalf("%+v: got %d placements, expected %d", opts, len(l.Placements), m)
				}
				seen := make(map[[2]int]bool)
				for i, p := range l.Placements {
					if p.X != (i%wantCols)*w || p.Y != (i/wantCols)*h {
						t.Errorf("%+v: placement %d at (%d, %d)", opts, i, p.X, p.Y)
					}
					if p.X < 0 || p.X+w > l.Width() || p.Y < 0 || p.Y+h > l.Height() {
						t.Errorf("%+v: placement %d out of bounds", opts, i)
					}
					if seen[[2]int{p.X, p.Y}] {
						t.Errorf("%+v: placement %d overlaps", opts, i)
					}
					seen[[2]int{p.X, p.Y}] = true
					from, _, _ := doc.Tag(opts.Tags[i/k])
					if p.Frame != from+i%k {
						t.Errorf("%+v: placement %d frame got %d, expected %d", opts, i, p.Frame, from+i%k)
					}
				}
				if l.MemoryBytes() != l.Width()*l.Height()*4 {
					t.Errorf("%+v: memory got %d", opts, l.MemoryBytes())
				}
			}
		}
	}
}

func TestPlanErrors(t *testing.T) {
	doc := newFakeDoc(2, 2, 3, map[string][2]int{
		"walk": {0, 1},
		"jump": {2, 2},
	})

	_, err := Plan(doc, Options{Tags: []string{"walk", "jump"}, FramesPerTag: 2})
	var short *InsufficientFramesError
	if !errors.As(err, &short) {
		t.Fatalf("got %v, expected InsufficientFramesError", err)
	}
	if short.Tag != "jump" || short.Have != 1 || short.Need != 2 || short.Path != "in.ase" {
		t.Errorf("got %+v", short)
	}

	_, err = Plan(doc, Options{Tags: []string{"walk", "missing", "other"}})
	var missing *TagMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("got %v, expected TagMissingError", err)
	}
	if missing.Tag != "missing" || missing.Path != "in.ase" {
		t.Errorf("got %+v", missing)
	}

	for _, opts := range []Options{
		{},
		{Tags: []string{"walk"}, FramesPerTag: -1},
		{Tags: []string{"walk"}, Columns: -2},
	} {
		if _, err := Plan(doc, opts); err == nil {
			t.Errorf("%+v: expected an error", opts)
		}
	}
}

func TestPlanHugeColumns(t *testing.T) {
	doc := newFakeDoc(4, 3, 2, map[string][2]int{"a": {0, 0}, "b": {1, 1}})
	for _, cols := range []int{math.MaxInt, 1 << 62, math.MaxInt/4 + 1, math.MaxInt / 16} {
		_, err := Plan(doc, Options{Tags: []string{"a", "b"}, Columns: cols})
		var big *SheetTooLargeError
		if !errors.As(err, &big) {
			t.Errorf("columns %d: got %v, expected SheetTooLargeError", cols, err)
			continue
		}
		if big.Cols != cols || big.Rows != 1 {
			t.Errorf("columns %d: got %+v", cols, big)
		}
	}

	// The widest sheet whose buffer still fits in an int.
	cols := math.MaxInt / 4 / 3 / 4
	l, err := Plan(doc, Options{Tags: []string{"a", "b"}, Columns: cols})
	if err != nil {
		t.Fatalf("columns %d: %v", cols, err)
	}
	if l.Rows != 1 || l.MemoryBytes() <= 0 {
		t.Errorf("columns %d: rows %d, bytes %d", cols, l.Rows, l.MemoryBytes())
	}
}
