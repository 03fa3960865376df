// Package asetest writes small Aseprite files for tests. Every frame becomes
// one cel on a single visible layer.
package asetest

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"image"
	"image/color"
	"io"
	"os"
)

type Tag struct {
	Name     string
	From, To int
}

type Sprite struct {
	Width, Height int
	Frames        []*image.NRGBA
	Tags          []Tag
	// Raw stores cels uncompressed instead of zlib-compressed.
	Raw bool

	// ColorDepth is 32 when zero. Other depths take their pixels from Cels.
	ColorDepth int
	// Cels holds each frame's cel pixels in ColorDepth format. When set,
	// Frames is ignored.
	Cels [][]byte
	// CelSize replaces the size written in every cel header when non-zero.
	CelSize image.Point

	// Palette is written as a 0x2019 chunk, OldPalette as a 0x0004 chunk.
	Palette          []color.NRGBA
	OldPalette       []color.NRGBA
	TransparentIndex uint8
	// Background marks the layer as a background layer.
	Background bool
	// FramePadding trailing bytes follow the chunks of every frame.
	FramePadding int
}

type header struct {
	FileSize    uint32
	Magic       uint16
	Frames      uint16
	Width       uint16
	Height      uint16
	ColorDepth  uint16
	Flags       uint32
	Speed       uint16
	_           [8]byte
	Transparent uint8
	_           [3]byte
	Colors      uint16
	PixelW      uint8
	PixelH      uint8
	GridX       int16
	GridY       int16
	GridW       uint16
	GridH       uint16
	_           [84]byte
}

type frameHeader struct {
	Size      uint32
	Magic     uint16
	OldChunks uint16
	Duration  uint16
	_         [2]byte
	Chunks    uint32
}

// Encode writes s to w.
func Encode(w io.Writer, s Sprite) error {
	depth := s.ColorDepth
	if depth == 0 {
		depth = 32
	}
	cels := s.Cels
	if cels == nil {
		for _, frame := range s.Frames {
			cels = append(cels, pixels(frame))
		}
	}
	size := s.CelSize
	if size == (image.Point{}) {
		size = image.Pt(s.Width, s.Height)
	}

	var body bytes.Buffer
	for i, pix := range cels {
		var chunks [][]byte
		if i == 0 {
			if s.OldPalette != nil {
				chunks = append(chunks, oldPaletteChunk(s.OldPalette))
			}
			if s.Palette != nil {
				chunks = append(chunks, paletteChunk(s.Palette))
			}
			chunks = append(chunks, layerChunk("Layer 1", s.Background))
			if len(s.Tags) > 0 {
				chunks = append(chunks, tagsChunk(s.Tags))
			}
		}
		cel, err := celChunk(pix, size, s.Raw)
		if err != nil {
			return err
		}
		chunks = append(chunks, cel)

		frameSize := 16 + s.FramePadding
		for _, c := range chunks {
			frameSize += len(c)
		}
		fh := frameHeader{
			Size:      uint32(frameSize),
			Magic:     0xF1FA,
			OldChunks: uint16(len(chunks)),
			Duration:  100,
			Chunks:    uint32(len(chunks)),
		}
		binary.Write(&body, binary.LittleEndian, fh)
		for _, c := range chunks {
			body.Write(c)
		}
		body.Write(make([]byte, s.FramePadding))
	}

	h := header{
		FileSize:    uint32(128 + body.Len()),
		Magic:       0xA5E0,
		Frames:      uint16(len(cels)),
		Width:       uint16(s.Width),
		Height:      uint16(s.Height),
		ColorDepth:  uint16(depth),
		Flags:       1,
		Speed:       100,
		Transparent: s.TransparentIndex,
		Colors:      uint16(len(s.Palette)),
		PixelW:      1,
		PixelH:      1,
		GridW:       16,
		GridH:       16,
	}
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}

// WriteFile encodes s into a new file at path.
func WriteFile(path string, s Sprite) error {
	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func chunk(typ uint16, data []byte) []byte {
	var b bytes.Buffer
	binary.Write(&b, binary.LittleEndian, uint32(len(data)+6))
	binary.Write(&b, binary.LittleEndian, typ)
	b.Write(data)
	return b.Bytes()
}

func writeString(b *bytes.Buffer, s string) {
	binary.Write(b, binary.LittleEndian, uint16(len(s)))
	b.WriteString(s)
}

func layerChunk(name string, background bool) []byte {
	flags := uint16(3)
	if background {
		flags |= 8
	}
	var b bytes.Buffer
	binary.Write(&b, binary.LittleEndian, struct {
		Flags, Type, ChildLevel, DefaultW, DefaultH, Blend uint16
		Opacity                                            uint8
		_                                                  [3]byte
	}{Flags: flags, Opacity: 255})
	writeString(&b, name)
	return chunk(0x2004, b.Bytes())
}

func paletteChunk(colors []color.NRGBA) []byte {
	var b bytes.Buffer
	binary.Write(&b, binary.LittleEndian, []uint32{uint32(len(colors)), 0, uint32(len(colors) - 1)})
	b.Write(make([]byte, 8))
	for _, c := range colors {
		b.Write([]byte{0, 0, c.R, c.G, c.B, c.A})
	}
	return chunk(0x2019, b.Bytes())
}

func oldPaletteChunk(colors []color.NRGBA) []byte {
	var b bytes.Buffer
	binary.Write(&b, binary.LittleEndian, uint16(1))
	b.Write([]byte{0, uint8(len(colors))})
	for _, c := range colors {
		b.Write([]byte{c.R, c.G, c.B})
	}
	return chunk(0x0004, b.Bytes())
}

func tagsChunk(tags []Tag) []byte {
	var b bytes.Buffer
	binary.Write(&b, binary.LittleEndian, uint16(len(tags)))
	b.Write(make([]byte, 8))
	for _, t := range tags {
		binary.Write(&b, binary.LittleEndian, struct {
			From, To uint16
			Loop     uint8
			Repeat   uint16
			_        [6]byte
			RGB      [3]byte
			_        byte
		}{From: uint16(t.From), To: uint16(t.To)})
		writeString(&b, t.Name)
	}
	return chunk(0x2018, b.Bytes())
}

func pixels(img *image.NRGBA) []byte {
	r := img.Bounds()
	var pix bytes.Buffer
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := img.PixOffset(r.Min.X, y)
		pix.Write(img.Pix[off : off+r.Dx()*4])
	}
	return pix.Bytes()
}

func celChunk(pix []byte, size image.Point, raw bool) ([]byte, error) {
	var b bytes.Buffer
	typ := uint16(2)
	if raw {
		typ = 0
	}
	binary.Write(&b, binary.LittleEndian, struct {
		Layer   uint16
		X, Y    int16
		Opacity uint8
		Type    uint16
		Z       int16
		_       [5]byte
	}{Opacity: 255, Type: typ})
	binary.Write(&b, binary.LittleEndian, [2]uint16{uint16(size.X), uint16(size.Y)})

	if raw {
		b.Write(pix)
		return chunk(0x2005, b.Bytes()), nil
	}
	zw := zlib.NewWriter(&b)
	if _, err := zw.Write(pix); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return chunk(0x2005, b.Bytes()), nil
}

// Frame returns a w x h frame whose pixels are distinct for every (seed, x, y)
// with seed < 256. Every fourth pixel is fully transparent.
func Frame(w, h, seed int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%4 == 3 {
				continue
			}
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(seed), G: uint8(x), B: uint8(y), A: 255})
		}
	}
	return img
}
