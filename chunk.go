package asesheet

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var ErrChunkTooShort = errors.New("chunk shorter than its header")

type ChunkType uint16

const (
	ChunkTypeOldPalette4  ChunkType = 0x0004
	ChunkTypeOldPalette11 ChunkType = 0x0011
	ChunkTypeLayer        ChunkType = 0x2004
	ChunkTypeCel          ChunkType = 0x2005
	ChunkTypeCelExtra     ChunkType = 0x2006
	ChunkTypeColorProfile ChunkType = 0x2007
	ChunkTypeMask         ChunkType = 0x2016 // DEPRECATED
	ChunkTypePath         ChunkType = 0x2017 // Never used.
	ChunkTypeFrameTags    ChunkType = 0x2018
	ChunkTypePalette      ChunkType = 0x2019
	ChunkTypeUserData     ChunkType = 0x2020
	ChunkTypeSlice        ChunkType = 0x2022
	ChunkTypeTileset      ChunkType = 0x2023
)

func (e ChunkType) String() string {
	switch e {
	case ChunkTypeOldPalette4:
		return "OldPalette4"
	case ChunkTypeOldPalette11:
		return "OldPalette11"
	case ChunkTypeLayer:
		return "Layer"
	case ChunkTypeCel:
		return "Cel"
	case ChunkTypeCelExtra:
		return "CelExtra"
	case ChunkTypeColorProfile:
		return "ColorProfile"
	case ChunkTypeMask:
		return "Mask"
	case ChunkTypePath:
		return "Path"
	case ChunkTypeFrameTags:
		return "FrameTags"
	case ChunkTypePalette:
		return "Palette"
	case ChunkTypeUserData:
		return "UserData"
	case ChunkTypeSlice:
		return "Slice"
	case ChunkTypeTileset:
		return "Tileset"
	default:
		return fmt.Sprintf("%#04x", uint16(e))
	}
}

type Chunk interface {
	ChunkType() ChunkType
}

// RawChunk is a chunk the decoder keeps without interpreting.
type RawChunk struct {
	Type ChunkType
	Data []byte
}

func (c *RawChunk) ChunkType() ChunkType {
	return c.Type
}

type chunkHeader struct {
	Size uint32
	Type ChunkType
}

func readChunk(r io.Reader, f *File) (Chunk, error) {
	var h chunkHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	if h.Size < 6 {
		return nil, fmt.Errorf("%v: %w", h.Type, ErrChunkTooShort)
	}
	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, r, int64(h.Size)-6); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("%v: %w", h.Type, err)
	}
	data := buf.Bytes()

	var (
		c   Chunk
		err error
	)
	body := bytes.NewReader(data)
	switch h.Type {
	case ChunkTypePalette:
		c, err = readPalette(body)
	case ChunkTypeOldPalette4:
		c, err = readOldPalette(body, false)
	case ChunkTypeOldPalette11:
		c, err = readOldPalette(body, true)
	case ChunkTypeLayer:
		c, err = readLayer(body)
	case ChunkTypeCel:
		c, err = readCel(body, f)
	case ChunkTypeFrameTags:
		c, err = readFrameTags(body)
	default:
		Logger().Debug("keeping raw chunk", "type", h.Type, "size", len(data))
		return &RawChunk{Type: h.Type, Data: data}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%v: %w", h.Type, err)
	}
	return c, nil
}

func readString(r io.Reader) (string, error) {
	var size uint16
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return "", err
	}
	buffer := make([]byte, size)
	if _, err := io.ReadFull(r, buffer); err != nil {
		return "", err
	}
	return string(buffer), nil
}
