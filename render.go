package asesheet

import (
	"cmp"
	"image"
	"slices"
)

// render flattens frame i onto a transparent canvas.
func (f *File) render(i int) *image.NRGBA {
	canvas := image.NewNRGBA(f.Rect())
	states := layerStates(f.Layers, f.Header.Flags)

	cels := slices.Clone(f.Frames[i].Cels)
	slices.SortStableFunc(cels, func(a, b *Cel) int {
		oa, ob := int(a.LayerIndex)+int(a.ZIndex), int(b.LayerIndex)+int(b.ZIndex)
		if oa != ob {
			return cmp.Compare(oa, ob)
		}
		return cmp.Compare(a.ZIndex, b.ZIndex)
	})

	for _, c := range cels {
		if int(c.LayerIndex) >= len(f.Layers) {
			Logger().Debug("cel references missing layer", "frame", i, "layer", c.LayerIndex)
			continue
		}
		layer := f.Layers[c.LayerIndex]
		state := states[c.LayerIndex]
		if !state.visible || layer.Type == LayerTypeGroup || layer.Flags&LayerFlagsReference != 0 {
			continue
		} // This layer is unvisible, skip it
		if c.Pixels == nil {
			continue
		}
		if layer.Blend != BlendNormal {
			Logger().Debug("rendering blend mode as normal", "layer", layer.Name, "blend", layer.Blend)
		}

		background := layer.Flags&LayerFlagsBackground != 0
		blendNormal(canvas, f.celImage(c, background), mul8(c.Opacity, state.opacity))
	}
	return canvas
}

// blendNormal composites src over dst in straight alpha, the way Aseprite's
// normal blender does. A pixel over a fully transparent backdrop is copied
// unchanged when opacity is 255.
func blendNormal(dst, src *image.NRGBA, opacity uint8) {
	r := src.Rect.Intersect(dst.Rect)
	if r.Empty() || opacity == 0 {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s := src.Pix[src.PixOffset(x, y):]
			d := dst.Pix[dst.PixOffset(x, y):]
			sa := mul8(s[3], opacity)
			if sa == 0 {
				continue
			}
			if d[3] == 0 {
				d[0], d[1], d[2], d[3] = s[0], s[1], s[2], sa
				continue
			}
			da := d[3]
			ra := int(sa) + int(da) - int(mul8(da, sa))
			for k := 0; k < 3; k++ {
				d[k] = uint8(int(d[k]) + (int(s[k])-int(d[k]))*int(sa)/ra)
			}
			d[3] = uint8(ra)
		}
	}
}

// mul8 is a*b/255 rounded.
func mul8(a, b uint8) uint8 {
	t := int(a)*int(b) + 0x80
	return uint8(((t >> 8) + t) >> 8)
}
