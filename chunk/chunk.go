package chunk

import "github.com/Penguin-Spy/quasar/proto"

// Chunk is a column of H subchunks; H is set by the caller of New or
// NewFromData.
type Chunk struct {
	sections       []*Subchunk
	verticalOffset int // subtracted from (y/16) so the lowest subchunk is index 0
	plainsBiomeID  int32
}

// New builds a chunk of height (in subchunks) initialized to airState in
// every section, the shape an empty/missing-chunk placeholder needs.
func New(height int, minSectionY int, airState, plainsBiomeID int32) *Chunk {
	c := &Chunk{
		sections:       make([]*Subchunk, height),
		verticalOffset: -minSectionY,
		plainsBiomeID:  plainsBiomeID,
	}
	for i := range c.sections {
		c.sections[i] = NewSingleValuedSubchunk(airState)
	}
	return c
}

// sectionIndex maps a world Y coordinate to this chunk's subchunk slice
// index.
func (c *Chunk) sectionIndex(y int32) int {
	return int(y>>4) + c.verticalOffset
}

// SetBlock writes state at an absolute block position.
func (c *Chunk) SetBlock(x, y, z int32, state int32) error {
	idx := c.sectionIndex(y)
	if idx < 0 || idx >= len(c.sections) {
		return &ErrOutOfRange{Y: y}
	}
	return c.sections[idx].Set(int(x), int(y), int(z), state)
}

// GetBlock reads the state at an absolute block position.
func (c *Chunk) GetBlock(x, y, z int32) (int32, error) {
	idx := c.sectionIndex(y)
	if idx < 0 || idx >= len(c.sections) {
		return 0, &ErrOutOfRange{Y: y}
	}
	return c.sections[idx].Get(int(x), int(y), int(z)), nil
}

// Height returns the number of subchunks this chunk holds.
func (c *Chunk) Height() int { return len(c.sections) }

// Clone returns a deep copy, so the original and the copy can be mutated
// independently. Used when a single generated template (superflat) is
// handed out to many chunk-map slots that each need their own identity.
func (c *Chunk) Clone() *Chunk {
	sections := make([]*Subchunk, len(c.sections))
	for i, s := range c.sections {
		sections[i] = s.clone()
	}
	return &Chunk{
		sections:       sections,
		verticalOffset: c.verticalOffset,
		plainsBiomeID:  c.plainsBiomeID,
	}
}

// GetData emits the wire form of the chunk: a sequence of subchunk
// sections, length-prefixed as a whole.
func (c *Chunk) GetData() []byte {
	w := proto.NewWriter()
	for _, sec := range c.sections {
		encodeSection(w, sec, c.plainsBiomeID)
	}
	return proto.ConcatWithLength(w.Bytes())
}

func encodeSection(w *proto.Writer, sec *Subchunk, plainsBiomeID int32) {
	w.Short(int16(entriesPerSect)) // non-normative block count field
	w.Byte(sec.bitsPerEntry)

	if sec.bitsPerEntry == 0 {
		w.VarInt(sec.singleState)
	} else {
		// Palette length is varint(|palette|+1); the |palette| entries
		// that follow are indexed 0..|palette| over the 0-based palette.
		w.VarInt(int32(len(sec.palette) + 1))
		for _, state := range sec.palette {
			w.VarInt(state)
		}
		for _, l := range sec.data {
			w.Long(int64(l))
		}
	}

	// Biome palette: single-valued, "minecraft:plains".
	w.Byte(0)
	w.VarInt(plainsBiomeID)
}

// SectionData is the decoded input shape NewFromData consumes: a palette of
// block-state ids (0-based local index -> state id) plus the packed long
// array referencing it.
type SectionData struct {
	Palette     []int32
	BlockStates []uint64
}

// NewFromData builds a Chunk from already-decoded section data (as read
// from a region file), deriving bits_per_entry = max(4, ceil(log2(|palette|)))
// or 0 when the palette is single-valued.
func NewFromData(sections []SectionData, minSectionY int, plainsBiomeID int32) *Chunk {
	c := &Chunk{
		sections:       make([]*Subchunk, len(sections)),
		verticalOffset: -minSectionY,
		plainsBiomeID:  plainsBiomeID,
	}
	for i, sd := range sections {
		c.sections[i] = subchunkFromData(sd)
	}
	return c
}

func subchunkFromData(sd SectionData) *Subchunk {
	if len(sd.Palette) <= 1 {
		state := int32(0)
		if len(sd.Palette) == 1 {
			state = sd.Palette[0]
		}
		return NewSingleValuedSubchunk(state)
	}

	bits := bitsForPaletteSize(len(sd.Palette))
	contents := make(map[int32]int, len(sd.Palette))
	for i, state := range sd.Palette {
		contents[state] = i
	}

	return &Subchunk{
		bitsPerEntry:    bits,
		palette:         append([]int32(nil), sd.Palette...),
		paletteContents: contents,
		data:            append([]uint64(nil), sd.BlockStates...),
	}
}

// bitsForPaletteSize computes max(4, ceil(log2(n))).
func bitsForPaletteSize(n int) uint8 {
	bits := uint8(minBitsPerEntry)
	for (1 << bits) < n {
		bits++
	}
	return bits
}
