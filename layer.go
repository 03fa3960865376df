package asesheet

import (
	"encoding/binary"
	"io"
)

type LayerFlags uint16

const (
	LayerFlagsVisible          LayerFlags = 1
	LayerFlagsEditable         LayerFlags = 2
	LayerFlagsLockMovement     LayerFlags = 4
	LayerFlagsBackground       LayerFlags = 8
	LayerFlagsPreferLinkedCels LayerFlags = 16
	LayerFlagsCollapsedGroup   LayerFlags = 32
	LayerFlagsReference        LayerFlags = 64
)

type LayerType uint16

const (
	LayerTypeNormal  LayerType = 0
	LayerTypeGroup   LayerType = 1
	LayerTypeTilemap LayerType = 2
)

type BlendMode uint16

const BlendNormal BlendMode = 0

type Layer struct {
	Flags      LayerFlags
	Type       LayerType
	ChildLevel uint16
	Blend      BlendMode
	Opacity    uint8
	Name       string
}

func (p *Layer) ChunkType() ChunkType {
	return ChunkTypeLayer
}

func readLayer(r io.Reader) (*Layer, error) {
	var head struct {
		Flags      LayerFlags
		Type       LayerType
		ChildLevel uint16
		_          uint16 // default width, ignored
		_          uint16 // default height, ignored
		Blend      BlendMode
		Opacity    uint8
		_          [3]byte
	}
	if err := binary.Read(r, binary.LittleEndian, &head); err != nil {
		return nil, err
	}
	name, err := readString(r)
	if err != nil {
		return nil, err
	}
	return &Layer{
		Flags:      head.Flags,
		Type:       head.Type,
		ChildLevel: head.ChildLevel,
		Blend:      head.Blend,
		Opacity:    head.Opacity,
		Name:       name,
	}, nil
}

type layerState struct {
	visible bool
	opacity uint8
}

// layerStates resolves, per layer index, whether the layer and every group
// above it are visible, and the opacity it is drawn with: its own opacity
// multiplied by that of its ancestor groups. Layer and group opacities only
// count when the header marks them valid. Groups nest by child level: a
// layer's parent is the closest preceding layer one level up.
func layerStates(layers []*Layer, flags HeaderFlags) []layerState {
	states := make([]layerState, len(layers))
	var parents []int
	for i, l := range layers {
		level := int(l.ChildLevel)
		if level < len(parents) {
			parents = parents[:level]
		}
		s := layerState{visible: l.Flags&LayerFlagsVisible != 0, opacity: 255}
		if l.Type == LayerTypeGroup {
			if flags&HeaderFlagsGroupOpacityValid != 0 {
				s.opacity = l.Opacity
			}
		} else if flags&HeaderFlagsLayerOpacityValid != 0 {
			s.opacity = l.Opacity
		}
		if len(parents) > 0 && level > 0 {
			parent := states[parents[len(parents)-1]]
			s.visible = s.visible && parent.visible
			s.opacity = mul8(s.opacity, parent.opacity)
		}
		states[i] = s
		parents = append(parents, i)
	}
	return states
}
