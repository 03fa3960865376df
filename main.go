package asesheet

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
)

const (
	fileMagic  = 0xA5E0
	frameMagic = 0xF1FA
)

var (
	ErrInvalidMagic          = errors.New("magic code check failed")
	ErrInvalidFrameMagic     = errors.New("magic code of frame check failed")
	ErrUnsupportedColorDepth = errors.New("unsupported color depth")
	ErrNoFrames              = errors.New("file contains no frames")
	ErrEmptyCanvas           = errors.New("canvas has zero width or height")
)

// HeaderFlags are the flags field of the file header.
type HeaderFlags uint32

const (
	HeaderFlagsLayerOpacityValid HeaderFlags = 1
	HeaderFlagsGroupOpacityValid HeaderFlags = 2
	HeaderFlagsLayerUUID         HeaderFlags = 4
)

type Header struct {
	FileSize         uint32
	Magic            uint16
	Frames           uint16
	Width            uint16
	Height           uint16
	ColorDepth       uint16
	Flags            HeaderFlags
	Speed            uint16 // DEPRECATED
	_                [8]byte
	TransparentIndex uint8
	_                [3]byte
	NumberOfColor    uint16
	PixelWidth       uint8
	PixelHeight      uint8
	GridX            int16
	GridY            int16
	GridWidth        uint16
	GridHeight       uint16
	_                [84]byte
}

type frameHeader struct {
	Size           uint32
	Magic          uint16
	NumberOfChunk  uint16
	Duration       uint16
	_              [2]byte
	NumberOfChunk2 uint32
}

type Frame struct {
	Duration uint16
	Chunks   []Chunk
	Cels     []*Cel
}

func readFrame(r io.Reader, f *File, index int) (*Frame, error) {
	var h frameHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("frame %d header: %w", index, err)
	}
	if h.Magic != frameMagic {
		return nil, fmt.Errorf("frame %d: %w", index, ErrInvalidFrameMagic)
	}
	if h.Size < 16 {
		return nil, fmt.Errorf("frame %d: size %d shorter than its header", index, h.Size)
	}
	chunks := int(h.NumberOfChunk2)
	if chunks == 0 {
		chunks = int(h.NumberOfChunk)
	}

	body := io.LimitReader(r, int64(h.Size)-16)
	frame := &Frame{Duration: h.Duration}
	for i := 0; i < chunks; i++ {
		c, err := readChunk(body, f)
		if err != nil {
			return nil, fmt.Errorf("frame %d chunk %d: %w", index, i, err)
		}
		frame.Chunks = append(frame.Chunks, c)
		switch c := c.(type) {
		case *Layer:
			f.Layers = append(f.Layers, c)
		case *Cel:
			frame.Cels = append(frame.Cels, c)
		case *Palette:
			f.applyPalette(c)
		case *OldPalette:
			f.oldPalette = c
		case *FrameTags:
			f.addTags(c)
		}
	}
	if n, err := io.Copy(io.Discard, body); err != nil {
		return nil, fmt.Errorf("frame %d: %w", index, err)
	} else if n > 0 {
		Logger().Debug("skipped trailing frame bytes", "frame", index, "bytes", n)
	}
	return frame, nil
}

// File is a decoded Aseprite document. It is immutable once loaded apart
// from the memoised frame renders.
type File struct {
	Header  Header
	Frames  []*Frame
	Layers  []*Layer
	Palette []NamedColor
	Tags    []Tag

	path       string
	tagIndex   map[string]int
	oldPalette *OldPalette
	rendered   []*image.NRGBA
}

// LoadAseprite reads and decodes the Aseprite file at filename.
func LoadAseprite(filename string) (*File, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	f, err := Decode(bufio.NewReader(file))
	if err != nil {
		return nil, err
	}
	f.path = filename
	return f, nil
}

// Decode decodes an Aseprite document from r.
func Decode(r io.Reader) (*File, error) {
	f := &File{tagIndex: make(map[string]int)}
	if err := binary.Read(r, binary.LittleEndian, &f.Header); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	if f.Header.Magic != fileMagic {
		return nil, ErrInvalidMagic
	}
	switch f.Header.ColorDepth {
	case 8, 16, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedColorDepth, f.Header.ColorDepth)
	}
	if f.Header.Frames == 0 {
		return nil, ErrNoFrames
	}
	if f.Header.Width == 0 || f.Header.Height == 0 {
		return nil, ErrEmptyCanvas
	}

	for i := 0; i < int(f.Header.Frames); i++ {
		frame, err := readFrame(r, f, i)
		if err != nil {
			return nil, err
		}
		f.Frames = append(f.Frames, frame)
	}
	if f.Palette == nil && f.oldPalette != nil {
		f.Palette = f.oldPalette.Colors
	}
	if err := f.resolveLinks(); err != nil {
		return nil, err
	}
	f.rendered = make([]*image.NRGBA, len(f.Frames))
	return f, nil
}

// Get this Aseprite image file Rectangle
func (f *File) Rect() image.Rectangle {
	return image.Rect(0, 0, int(f.Header.Width), int(f.Header.Height))
}

// Path returns the filename the document was loaded from, or "" when it was
// decoded from a reader.
func (f *File) Path() string { return f.path }

func (f *File) Canvas() (width, height int) {
	return int(f.Header.Width), int(f.Header.Height)
}

func (f *File) FrameCount() int { return len(f.Frames) }

// Frame returns the flattened image of frame i. An out of range index panics.
func (f *File) Frame(i int) image.Image {
	if f.rendered[i] == nil {
		f.rendered[i] = f.render(i)
	}
	return f.rendered[i]
}

// Tag returns the inclusive frame range of the named tag.
func (f *File) Tag(name string) (from, to int, ok bool) {
	i, ok := f.tagIndex[name]
	if !ok {
		return 0, 0, false
	}
	return int(f.Tags[i].From), int(f.Tags[i].To), true
}
