package asesheet

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
)

var ErrCelTruncated = errors.New("cel pixel data shorter than its size")

type CelType uint16

const (
	CelTypeRaw               CelType = 0
	CelTypeLinked            CelType = 1
	CelTypeCompressed        CelType = 2
	CelTypeCompressedTilemap CelType = 3
)

// Cel determine where to put a cel in the specified layer/frame
type Cel struct {
	LayerIndex uint16
	X          int16
	Y          int16
	Opacity    byte
	Type       CelType
	ZIndex     int16

	// Link is the frame a linked cel borrows its pixels from.
	Link uint16

	// Pixels holds Width*Height pixels in the file's color depth.
	Width  int
	Height int
	Pixels []byte
}

func (c *Cel) ChunkType() ChunkType {
	return ChunkTypeCel
}

func readCel(r *bytes.Reader, f *File) (*Cel, error) {
	var head struct {
		LayerIndex uint16
		X          int16
		Y          int16
		Opacity    byte
		Type       CelType
		ZIndex     int16
		_          [5]byte
	}
	if err := binary.Read(r, binary.LittleEndian, &head); err != nil {
		return nil, err
	}
	p := &Cel{
		LayerIndex: head.LayerIndex,
		X:          head.X,
		Y:          head.Y,
		Opacity:    head.Opacity,
		Type:       head.Type,
		ZIndex:     head.ZIndex,
	}

	switch p.Type {
	case CelTypeRaw, CelTypeCompressed:
		var size struct{ Width, Height uint16 }
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return nil, err
		}
		p.Width, p.Height = int(size.Width), int(size.Height)
		need := p.Width * p.Height * int(f.Header.ColorDepth/8)
		if p.Type == CelTypeRaw {
			if need > r.Len() {
				return nil, fmt.Errorf("%w: %dx%d cel needs %d bytes, chunk has %d",
					ErrCelTruncated, p.Width, p.Height, need, r.Len())
			}
			p.Pixels = make([]byte, need)
			if _, err := io.ReadFull(r, p.Pixels); err != nil {
				return nil, fmt.Errorf("cel pixels: %w", err)
			}
			break
		}
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(io.LimitReader(zr, int64(need))); err != nil {
			return nil, fmt.Errorf("cel pixels: %w", err)
		}
		if buf.Len() != need {
			return nil, fmt.Errorf("%w: %dx%d cel needs %d bytes, decompressed %d",
				ErrCelTruncated, p.Width, p.Height, need, buf.Len())
		}
		p.Pixels = buf.Bytes()
	case CelTypeLinked:
		if err := binary.Read(r, binary.LittleEndian, &p.Link); err != nil {
			return nil, err
		}
	case CelTypeCompressedTilemap:
		Logger().Debug("skipping tilemap cel", "layer", p.LayerIndex)
	default:
		return nil, fmt.Errorf("unknown cel type %d", p.Type)
	}

	return p, nil
}

// resolveLinks copies the pixel data of linked cels from the frames they
// reference.
func (f *File) resolveLinks() error {
	for fi, frame := range f.Frames {
		for _, c := range frame.Cels {
			if c.Type != CelTypeLinked {
				continue
			}
			if int(c.Link) >= len(f.Frames) {
				return fmt.Errorf("frame %d: cel links to missing frame %d", fi, c.Link)
			}
			for _, target := range f.Frames[c.Link].Cels {
				if target.LayerIndex == c.LayerIndex && target.Type != CelTypeLinked {
					c.Width, c.Height, c.Pixels = target.Width, target.Height, target.Pixels
					break
				}
			}
		}
	}
	return nil
}

// celImage converts the cel pixels into a straight-alpha image positioned at
// the cel offset. The transparent palette index is opaque on background
// layers.
func (f *File) celImage(c *Cel, background bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.Width, c.Height).Add(image.Pt(int(c.X), int(c.Y))))
	n := c.Width * c.Height
	switch f.Header.ColorDepth {
	case 32:
		copy(img.Pix, c.Pixels[:n*4])
	case 16:
		for i := 0; i < n; i++ {
			v, a := c.Pixels[i*2], c.Pixels[i*2+1]
			img.Pix[i*4] = v
			img.Pix[i*4+1] = v
			img.Pix[i*4+2] = v
			img.Pix[i*4+3] = a
		}
	case 8:
		for i := 0; i < n; i++ {
			idx := c.Pixels[i]
			if (idx == f.Header.TransparentIndex && !background) || int(idx) >= len(f.Palette) {
				continue
			}
			pc := f.Palette[idx]
			img.Pix[i*4] = pc.R
			img.Pix[i*4+1] = pc.G
			img.Pix[i*4+2] = pc.B
			img.Pix[i*4+3] = pc.A
		}
	}
	return img
}
