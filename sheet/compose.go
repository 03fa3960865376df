package sheet

import (
	"fmt"
	"image"

	"github.com/mandykoh/prism"
)

// Compose allocates a transparent sheet of the layout's size and copies each
// placed frame into its cell byte for byte. Pixels are replaced, not blended.
func Compose(l *Layout, doc Document) (*image.NRGBA, error) {
	sheet := image.NewNRGBA(image.Rect(0, 0, l.Width(), l.Height()))
	rowBytes := l.FrameWidth * 4
	for _, p := range l.Placements {
		src := toNRGBA(doc.Frame(p.Frame))
		if src.Rect.Dx() != l.FrameWidth || src.Rect.Dy() != l.FrameHeight {
			return nil, fmt.Errorf("frame %d is %dx%d, canvas is %dx%d",
				p.Frame, src.Rect.Dx(), src.Rect.Dy(), l.FrameWidth, l.FrameHeight)
		}
		for r := 0; r < l.FrameHeight; r++ {
			so := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+r)
			do := sheet.PixOffset(p.X, p.Y+r)
			copy(sheet.Pix[do:do+rowBytes], src.Pix[so:so+rowBytes])
		}
	}
	return sheet, nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	return prism.ConvertImageToNRGBA(img, 1)
}
