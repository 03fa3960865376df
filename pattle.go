package asesheet

import (
	"encoding/binary"
	"fmt"
	"io"
)

// maxPaletteSize bounds palette chunks; indexed pixels address 256 entries.
const maxPaletteSize = 1 << 16

type Palette struct {
	Size            uint32
	FirstColorIndex uint32
	LastColorIndex  uint32
	Colors          []NamedColor
}

func (p *Palette) ChunkType() ChunkType {
	return ChunkTypePalette
}

func readPalette(r io.Reader) (*Palette, error) {
	var head struct {
		Size            uint32
		FirstColorIndex uint32
		LastColorIndex  uint32
		_               [8]byte
	}
	if err := binary.Read(r, binary.LittleEndian, &head); err != nil {
		return nil, err
	}
	if head.Size > maxPaletteSize {
		return nil, fmt.Errorf("palette size %d exceeds %d", head.Size, maxPaletteSize)
	}
	if head.LastColorIndex < head.FirstColorIndex || head.LastColorIndex >= head.Size {
		return nil, fmt.Errorf("palette range %d..%d outside size %d",
			head.FirstColorIndex, head.LastColorIndex, head.Size)
	}
	p := &Palette{
		Size:            head.Size,
		FirstColorIndex: head.FirstColorIndex,
		LastColorIndex:  head.LastColorIndex,
	}
	for pi := head.FirstColorIndex; pi <= head.LastColorIndex; pi++ {
		var entry struct {
			Flags      uint16
			R, G, B, A uint8
		}
		if err := binary.Read(r, binary.LittleEndian, &entry); err != nil {
			return nil, err
		}
		c := NamedColor{R: entry.R, G: entry.G, B: entry.B, A: entry.A}
		if entry.Flags&1 == 1 {
			name, err := readString(r)
			if err != nil {
				return nil, err
			}
			c.Name = name
		}
		p.Colors = append(p.Colors, c)
	}
	return p, nil
}

// applyPalette resizes the document palette and overwrites the chunk's range.
func (f *File) applyPalette(p *Palette) {
	if int(p.Size) > len(f.Palette) {
		grown := make([]NamedColor, p.Size)
		copy(grown, f.Palette)
		f.Palette = grown
	}
	copy(f.Palette[p.FirstColorIndex:], p.Colors)
}

type NamedColor struct {
	R    uint8
	G    uint8
	B    uint8
	A    uint8
	Name string
}

func (c NamedColor) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * uint32(c.A) / 0xff
	r |= r << 8
	g = uint32(c.G) * uint32(c.A) / 0xff
	g |= g << 8
	b = uint32(c.B) * uint32(c.A) / 0xff
	b |= b << 8
	a = uint32(c.A)
	a |= a << 8
	return
}

type OldPalette struct {
	Six    bool // 0x0011 chunk, components in 0..63
	Colors []NamedColor
}

func (p *OldPalette) ChunkType() ChunkType {
	if p.Six {
		return ChunkTypeOldPalette11
	}
	return ChunkTypeOldPalette4
}

func readOldPalette(r io.Reader, six bool) (*OldPalette, error) {
	var packets uint16
	if err := binary.Read(r, binary.LittleEndian, &packets); err != nil {
		return nil, err
	}
	p := &OldPalette{Six: six}
	index := 0
	for i := 0; i < int(packets); i++ {
		var head struct {
			Skip         uint8
			ColorsLength uint8
		}
		if err := binary.Read(r, binary.LittleEndian, &head); err != nil {
			return nil, err
		}
		index += int(head.Skip)
		n := int(head.ColorsLength)
		if n == 0 {
			n = 256
		}
		for j := 0; j < n; j++ {
			var rgb [3]uint8
			if err := binary.Read(r, binary.LittleEndian, &rgb); err != nil {
				return nil, err
			}
			if six {
				for k := range rgb {
					rgb[k] = uint8(int(min(rgb[k], 63)) * 255 / 63)
				}
			}
			if index >= 256 {
				return nil, fmt.Errorf("old palette index %d out of range", index)
			}
			for len(p.Colors) <= index {
				p.Colors = append(p.Colors, NamedColor{})
			}
			p.Colors[index] = NamedColor{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
			index++
		}
	}
	return p, nil
}
