package sheet

import (
	"image"
	"image/png"
	"os"
	"testing"

	"github.com/darkautism/asesheet/internal/asetest"
	"github.com/mandykoh/prism"
)

type fakeDoc struct {
	w, h   int
	frames []image.Image
	tags   map[string][2]int
}

// newFakeDoc returns a document of n distinct frames.
func newFakeDoc(w, h, n int, tags map[string][2]int) *fakeDoc {
	d := &fakeDoc{w: w, h: h, tags: tags}
	for i := 0; i < n; i++ {
		d.frames = append(d.frames, asetest.Frame(w, h, i))
	}
	return d
}

func (d *fakeDoc) Path() string            { return "in.ase" }
func (d *fakeDoc) Canvas() (int, int)      { return d.w, d.h }
func (d *fakeDoc) FrameCount() int         { return len(d.frames) }
func (d *fakeDoc) Frame(i int) image.Image { return d.frames[i] }
func (d *fakeDoc) Tag(name string) (int, int, bool) {
	r, ok := d.tags[name]
	return r[0], r[1], ok
}

func readPNG(t *testing.T, path string) *image.NRGBA {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return prism.ConvertImageToNRGBA(img, 1)
}

// cell returns the w x h region of img at (x, y) as a zero-origin image.
func cell(img *image.NRGBA, x, y, w, h int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for r := 0; r < h; r++ {
		so := img.PixOffset(x, y+r)
		copy(out.Pix[r*out.Stride:], img.Pix[so:so+w*4])
	}
	return out
}
