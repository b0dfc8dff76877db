package chunkprovider

import (
	"github.com/Penguin-Spy/quasar/chunk"
	"github.com/Penguin-Spy/quasar/registry"
)

// Layer is one ordered (block, thickness) band of a superflat world,
// lowest layer first.
type Layer struct {
	BlockState string // identifier or "name[k=v,...]" state key
	Height     int    // number of blocks this layer occupies
}

// Superflat is a Provider that generates every chunk identically: the same
// stack of horizontal layers repeated across x/z, with air above.
type Superflat struct {
	layers        []Layer
	height        int
	minSectionY   int
	airState      int32
	plainsBiomeID int32

	template *chunk.Chunk // built once; GetData/GetBlock are read-only afterward
}

// NewSuperflat resolves layers against reg and pre-renders one template
// chunk: a superflat world has no per-coordinate variation, so Load hands
// out copies of that single template.
func NewSuperflat(reg *registry.Registry, layers []Layer, height, minSectionY int, airState, plainsBiomeID int32) (*Superflat, error) {
	s := &Superflat{
		layers:        layers,
		height:        height,
		minSectionY:   minSectionY,
		airState:      airState,
		plainsBiomeID: plainsBiomeID,
	}

	c := chunk.New(height, minSectionY, airState, plainsBiomeID)
	y := int32(minSectionY * 16)
	for _, layer := range layers {
		state, ok := reg.ResolveBlockState(layer.BlockState)
		if !ok {
			return nil, &ErrUnresolvedBlockState{Name: layer.BlockState}
		}
		for i := 0; i < layer.Height; i++ {
			for x := int32(0); x < 16; x++ {
				for z := int32(0); z < 16; z++ {
					if err := c.SetBlock(x, y, z, state); err != nil {
						return nil, err
					}
				}
			}
			y++
		}
	}

	s.template = c
	return s, nil
}

// Load always succeeds: every coordinate yields an independent copy of the
// same generated layer stack.
func (s *Superflat) Load(cx, cz int32) (*chunk.Chunk, bool, error) {
	return s.template.Clone(), true, nil
}
