package sheet

import (
	"bufio"
	"image"
	"image/png"
	"os"

	"github.com/darkautism/asesheet"
)

// WritePNG encodes img as PNG into a new file at path, replacing any existing
// file. Failures are returned as *WriteError.
func WritePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	w := bufio.NewWriter(f)
	if err := png.Encode(w, img); err != nil {
		f.Close()
		return &WriteError{Path: path, Err: err}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return &WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	b := img.Bounds()
	asesheet.Logger().Info("wrote image", "path", path, "width", b.Dx(), "height", b.Dy())
	return nil
}
