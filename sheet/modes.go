package sheet

import (
	"errors"
	"path/filepath"
)

// Convert writes the only frame of doc to output.
func Convert(doc Document, output string) error {
	if n := doc.FrameCount(); n != 1 {
		return &WrongFrameCountError{Path: doc.Path(), Found: n}
	}
	return WritePNG(doc.Frame(0), output)
}

// Assemble plans, composes and writes a sprite sheet. Nothing is written
// when planning fails.
func Assemble(doc Document, output string, opts Options) error {
	l, err := Plan(doc, opts)
	if err != nil {
		return err
	}
	img, err := Compose(l, doc)
	if err != nil {
		return err
	}
	return WritePNG(img, output)
}

// Separate writes the first frame of each tag to <dir>/<tag>.png in the given
// order. The first failure stops the run; files already written are kept.
func Separate(doc Document, dir string, tags []string) error {
	if len(tags) == 0 {
		return errors.New("no tags selected")
	}
	for _, name := range tags {
		from, _, ok := doc.Tag(name)
		if !ok {
			return &TagMissingError{Path: doc.Path(), Tag: name}
		}
		if err := WritePNG(doc.Frame(from), filepath.Join(dir, name+".png")); err != nil {
			return err
		}
	}
	return nil
}
