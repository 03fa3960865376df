// Package sheet arranges frames of an animation document onto sprite sheets
// and writes them as PNG.
//
// The whole pipeline runs synchronously. Peak memory is the decoded document
// plus one sheet buffer of Cols*Rows*W*H*4 bytes; see [Layout.MemoryBytes].
package sheet

import "image"

// Document is the read-only view of a decoded animation file the planner and
// compositor need. *asesheet.File implements it.
type Document interface {
	// Path names the source for diagnostics.
	Path() string
	// Canvas returns the size shared by every frame.
	Canvas() (width, height int)
	FrameCount() int
	// Frame returns the flattened image of frame i, 0 <= i < FrameCount().
	Frame(i int) image.Image
	// Tag returns the inclusive, zero-based frame range of the named tag.
	Tag(name string) (from, to int, ok bool)
}
