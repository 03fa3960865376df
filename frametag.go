package asesheet

import (
	"encoding/binary"
	"io"
)

type LoopDirection uint8

const (
	LoopForward         LoopDirection = 0
	LoopReverse         LoopDirection = 1
	LoopPingPong        LoopDirection = 2
	LoopPingPongReverse LoopDirection = 3
)

type FrameTags struct {
	Tags []Tag
}

func (p *FrameTags) ChunkType() ChunkType {
	return ChunkTypeFrameTags
}

// Tag is a named inclusive frame range.
type Tag struct {
	From   uint16
	To     uint16
	Loop   LoopDirection
	Repeat uint16
	Name   string
}

type tagEntry struct {
	From   uint16
	To     uint16
	Loop   LoopDirection
	Repeat uint16
	_      [6]byte
	RGB    [3]byte // Deprecated
	_      byte
}

func readFrameTags(r io.Reader) (*FrameTags, error) {
	var head struct {
		Counts uint16
		_      [8]byte
	}
	if err := binary.Read(r, binary.LittleEndian, &head); err != nil {
		return nil, err
	}
	p := &FrameTags{Tags: make([]Tag, 0, head.Counts)}
	for i := 0; i < int(head.Counts); i++ {
		var e tagEntry
		if err := binary.Read(r, binary.LittleEndian, &e); err != nil {
			return nil, err
		}
		name, err := readString(r)
		if err != nil {
			return nil, err
		}
		p.Tags = append(p.Tags, Tag{
			From:   e.From,
			To:     e.To,
			Loop:   e.Loop,
			Repeat: e.Repeat,
			Name:   name,
		})
	}
	return p, nil
}

// addTags records tags in file order. The first tag with a given name wins
// lookups; ranges outside the frame list or reversed are dropped.
func (f *File) addTags(p *FrameTags) {
	for _, tag := range p.Tags {
		if tag.From > tag.To || int(tag.To) >= int(f.Header.Frames) {
			Logger().Debug("dropping tag with invalid range",
				"tag", tag.Name, "from", tag.From, "to", tag.To)
			continue
		}
		f.Tags = append(f.Tags, tag)
		if _, ok := f.tagIndex[tag.Name]; !ok {
			f.tagIndex[tag.Name] = len(f.Tags) - 1
		}
	}
}
