package chunkprovider

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Penguin-Spy/quasar/nbt"
	"github.com/stretchr/testify/require"
)

// writeTestRegion builds a minimal single-chunk region file at (cx, cz)
// containing one section's worth of NBT, in the Anvil layout: an 8KiB
// header of (offset, sector-count) entries, then 4KiB-aligned
// zlib-compressed chunk payloads.
func writeTestRegion(t *testing.T, dir string, cx, cz int32, root *nbt.Compound) string {
	t.Helper()

	raw := nbt.Encode("", root)

	var zbuf bytes.Buffer
	zw := zlib.NewWriter(&zbuf)
	_, err := zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	compressed := zbuf.Bytes()

	payload := make([]byte, 0, 5+len(compressed))
	length := uint32(len(compressed) + 1)
	payload = append(payload, byte(length>>24), byte(length>>16), byte(length>>8), byte(length))
	payload = append(payload, 2) // compression scheme: zlib
	payload = append(payload, compressed...)

	sectors := (len(payload) + sectorSize - 1) / sectorSize
	padded := make([]byte, sectors*sectorSize)
	copy(padded, payload)

	header := make([]byte, regionHeaderBytes)
	localX, localZ := cx&31, cz&31
	idx := int(localX) + int(localZ)*32
	offsetSectors := uint32(regionHeaderBytes / sectorSize) // sector 2, right after the header
	header[idx*4] = byte(offsetSectors >> 16)
	header[idx*4+1] = byte(offsetSectors >> 8)
	header[idx*4+2] = byte(offsetSectors)
	header[idx*4+3] = byte(sectors)

	out := append(header, padded...)

	regionX, regionZ := cx>>5, cz>>5
	path := filepath.Join(dir, fmt.Sprintf("r.%d.%d.mca", regionX, regionZ))
	require.NoError(t, os.WriteFile(path, out, 0o644))
	return path
}

func buildSection(y int8, blockNames []string) *nbt.Compound {
	palette := make([]nbt.Tag, len(blockNames))
	for i, name := range blockNames {
		entry := nbt.NewCompound()
		entry.Set("Name", nbt.String(name))
		palette[i] = entry
	}

	blockStates := nbt.NewCompound()
	blockStates.Set("palette", &nbt.List{ElemType: nbt.TagCompound, Items: palette})

	sec := nbt.NewCompound()
	sec.Set("Y", nbt.Byte(y))
	sec.Set("block_states", blockStates)
	return sec
}

func TestRegionLoaderReadsFullyGeneratedChunk(t *testing.T) {
	r := testRegistry(t)
	air, _ := r.ResolveBlockState("minecraft:air")
	bedrock, _ := r.ResolveBlockState("minecraft:bedrock")

	root := nbt.NewCompound()
	root.Set("Status", nbt.String("minecraft:full"))
	sections := []nbt.Tag{buildSection(-4, []string{"minecraft:bedrock"})}
	root.Set("sections", &nbt.List{ElemType: nbt.TagCompound, Items: sections})

	dir := t.TempDir()
	writeTestRegion(t, dir, 1, 2, root)

	loader := NewRegionLoader(dir, r, 24, -4, air, 0)
	t.Cleanup(func() { loader.Close() })

	c, ok, err := loader.Load(1, 2)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := c.GetBlock(0, -64, 0)
	require.NoError(t, err)
	require.Equal(t, bedrock, got)

	// An unvisited section defaults to air.
	got, err = c.GetBlock(0, 0, 0)
	require.NoError(t, err)
	require.Equal(t, air, got)
}

func TestRegionLoaderMissingChunkIsAbsent(t *testing.T) {
	r := testRegistry(t)
	air, _ := r.ResolveBlockState("minecraft:air")
	dir := t.TempDir()

	loader := NewRegionLoader(dir, r, 24, -4, air, 0)
	t.Cleanup(func() { loader.Close() })

	_, ok, err := loader.Load(1, 2)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRegionLoaderSkipsUngeneratedStatus(t *testing.T) {
	r := testRegistry(t)
	air, _ := r.ResolveBlockState("minecraft:air")

	root := nbt.NewCompound()
	root.Set("Status", nbt.String("minecraft:noise"))

	dir := t.TempDir()
	writeTestRegion(t, dir, 0, 0, root)

	loader := NewRegionLoader(dir, r, 24, -4, air, 0)
	t.Cleanup(func() { loader.Close() })

	_, ok, err := loader.Load(0, 0)
	require.NoError(t, err)
	require.False(t, ok)
}
