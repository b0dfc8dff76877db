package chunk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testAirState   = 0
	testHeight     = 24
	testMinSection = -4 // world y -64 .. 319, 24 sections of 16
	testPlainsID   = 5
)

func newTestChunk() *Chunk {
	return New(testHeight, testMinSection, testAirState, testPlainsID)
}

func TestEmptyChunkIsSingleValuedAir(t *testing.T) {
	c := newTestChunk()
	got, err := c.GetBlock(0, -60, 0)
	require.NoError(t, err)
	require.Equal(t, int32(testAirState), got)

	// Same bytes every time for an untouched chunk.
	require.Equal(t, c.GetData(), newTestChunk().GetData())
}

func TestSetBlockGrowsPaletteAndBits(t *testing.T) {
	c := newTestChunk()
	require.NoError(t, c.SetBlock(1, 0, 1, 10))
	got, err := c.GetBlock(1, 0, 1)
	require.NoError(t, err)
	require.Equal(t, int32(10), got)

	// Every other cell in that subchunk is still air.
	got, err = c.GetBlock(2, 0, 1)
	require.NoError(t, err)
	require.Equal(t, int32(testAirState), got)

	sec := c.sections[c.sectionIndex(0)]
	require.Equal(t, uint8(4), sec.bitsPerEntry)
}

func TestPaletteGrowsAcrossWidths(t *testing.T) {
	c := newTestChunk()
	// 20 distinct states forces growth past the initial 4-bit width
	// (16 slots) into 5 bits.
	for i := int32(1); i <= 20; i++ {
		x := int((i - 1) % 16)
		z := int((i - 1) / 16)
		require.NoError(t, c.SetBlock(int32(x), 0, int32(z), i))
	}

	sec := c.sections[c.sectionIndex(0)]
	require.GreaterOrEqual(t, sec.bitsPerEntry, uint8(5))

	for i := int32(1); i <= 20; i++ {
		x := int32((i - 1) % 16)
		z := int32((i - 1) / 16)
		got, err := c.GetBlock(x, 0, z)
		require.NoError(t, err)
		require.Equal(t, i, got)
	}
}

func TestPaletteOverflow(t *testing.T) {
	c := newTestChunk()
	var err error
	for i := int32(1); i <= 260; i++ {
		x := int32(i % 16)
		z := int32((i / 16) % 16)
		y := int32(i / 256)
		err = c.SetBlock(x, y, z, i)
		if err != nil {
			break
		}
	}
	require.ErrorIs(t, err, ErrPaletteOverflow)
}

func TestWireRoundTrip(t *testing.T) {
	c := newTestChunk()
	require.NoError(t, c.SetBlock(0, 0, 0, 7))
	require.NoError(t, c.SetBlock(1, 0, 0, 8))
	require.NoError(t, c.SetBlock(2, 20, 3, 9))

	data := c.GetData()
	decoded, err := Decode(data, testHeight, testMinSection, testPlainsID)
	require.NoError(t, err)

	for _, pos := range [][3]int32{{0, 0, 0}, {1, 0, 0}, {2, 20, 3}, {5, 5, 5}} {
		want, err := c.GetBlock(pos[0], pos[1], pos[2])
		require.NoError(t, err)
		got, err := decoded.GetBlock(pos[0], pos[1], pos[2])
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestNewFromData(t *testing.T) {
	sd := SectionData{
		Palette:     []int32{0, 42},
		BlockStates: make([]uint64, (entriesPerSect+15)/16),
	}
	// Mark cell 0 as palette index 1 (state 42).
	sd.BlockStates[0] = 1

	c := NewFromData([]SectionData{sd}, 0, testPlainsID)
	got, err := c.GetBlock(0, 0, 0)
	require.NoError(t, err)
	require.Equal(t, int32(42), got)

	sec := c.sections[0]
	require.Equal(t, uint8(4), sec.bitsPerEntry)
}
