package sheet

import (
	"errors"
	"fmt"
	"math"

	"github.com/darkautism/asesheet"
)

// Options selects the frames of a sheet.
type Options struct {
	// Tags in output order. Repeats produce repeated tiles.
	Tags []string
	// FramesPerTag is taken from the start of each tag. Zero means 1.
	FramesPerTag int
	// Columns of the grid. Zero puts every tile on a single row.
	Columns int
}

// Placement copies source frame Frame to the cell whose top-left pixel is
// (X, Y).
type Placement struct {
	Frame int
	X, Y  int
}

// Layout is a planned sheet.
type Layout struct {
	Cols, Rows int
	// FrameWidth and FrameHeight are the canvas size of the source.
	FrameWidth, FrameHeight int
	Placements              []Placement
}

func (l *Layout) Width() int  { return l.Cols * l.FrameWidth }
func (l *Layout) Height() int { return l.Rows * l.FrameHeight }

// MemoryBytes is the size of the RGBA buffer Compose allocates.
func (l *Layout) MemoryBytes() int {
	return l.Width() * l.Height() * 4
}

// Plan resolves opts against doc and lays the selected frames out row-major.
// Placement i shows frame from(Tags[i/K]) + i%K at cell (i%Cols, i/Cols).
func Plan(doc Document, opts Options) (*Layout, error) {
	if len(opts.Tags) == 0 {
		return nil, errors.New("no tags selected")
	}
	k := opts.FramesPerTag
	if k == 0 {
		k = 1
	}
	if k < 0 {
		return nil, fmt.Errorf("frames per tag must be positive, got %d", k)
	}
	if opts.Columns < 0 {
		return nil, fmt.Errorf("columns must be positive, got %d", opts.Columns)
	}

	starts := make([]int, len(opts.Tags))
	for i, name := range opts.Tags {
		from, to, ok := doc.Tag(name)
		if !ok {
			return nil, &TagMissingError{Path: doc.Path(), Tag: name}
		}
		if have := to - from + 1; have < k {
			return nil, &InsufficientFramesError{Path: doc.Path(), Tag: name, Have: have, Need: k}
		}
		starts[i] = from
	}

	total := len(opts.Tags) * k
	cols := opts.Columns
	if cols == 0 {
		cols = total
	}
	rows := (total-1)/cols + 1
	w, h := doc.Canvas()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("canvas of %s is %dx%d", doc.Path(), w, h)
	}
	if cols > math.MaxInt/w || rows > math.MaxInt/h || cols*w > math.MaxInt/4/(rows*h) {
		return nil, &SheetTooLargeError{Path: doc.Path(), Cols: cols, Rows: rows, FrameWidth: w, FrameHeight: h}
	}
	l := &Layout{
		Cols:        cols,
		Rows:        rows,
		FrameWidth:  w,
		FrameHeight: h,
		Placements:  make([]Placement, total),
	}
	for i := range l.Placements {
		l.Placements[i] = Placement{
			Frame: starts[i/k] + i%k,
			X:     (i % cols) * w,
			Y:     (i / cols) * h,
		}
	}

	asesheet.Logger().Debug("planned sheet",
		"tags", len(opts.Tags), "frames_per_tag", k,
		"cols", l.Cols, "rows", l.Rows, "bytes", l.MemoryBytes())
	return l, nil
}
