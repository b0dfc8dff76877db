package chunkprovider

import (
	"testing"

	"github.com/Penguin-Spy/quasar/registry"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	r.LoadBlockStates([]registry.BlockStateDef{
		{Identifier: "minecraft:air", Default: true},
		{Identifier: "minecraft:bedrock", Default: true},
		{Identifier: "minecraft:dirt", Default: true},
		{Identifier: "minecraft:grass_block", Default: true, Properties: map[string]string{"snowy": "false"}},
	})
	return r
}

func TestSuperflatLayersStack(t *testing.T) {
	r := testRegistry(t)
	bedrock, _ := r.ResolveBlockState("minecraft:bedrock")
	dirt, _ := r.ResolveBlockState("minecraft:dirt")
	grass, _ := r.ResolveBlockState("minecraft:grass_block[snowy=false]")
	air, _ := r.ResolveBlockState("minecraft:air")

	s, err := NewSuperflat(r, []Layer{
		{BlockState: "minecraft:bedrock", Height: 1},
		{BlockState: "minecraft:dirt", Height: 2},
		{BlockState: "minecraft:grass_block[snowy=false]", Height: 1},
	}, 24, -4, air, 0)
	require.NoError(t, err)

	c, ok, err := s.Load(5, -3)
	require.NoError(t, err)
	require.True(t, ok)

	base := int32(-64)
	got, err := c.GetBlock(0, base, 0)
	require.NoError(t, err)
	require.Equal(t, bedrock, got)

	got, err = c.GetBlock(0, base+1, 0)
	require.NoError(t, err)
	require.Equal(t, dirt, got)
	got, err = c.GetBlock(0, base+2, 0)
	require.NoError(t, err)
	require.Equal(t, dirt, got)

	got, err = c.GetBlock(0, base+3, 0)
	require.NoError(t, err)
	require.Equal(t, grass, got)

	got, err = c.GetBlock(0, base+4, 0)
	require.NoError(t, err)
	require.Equal(t, air, got)
}

func TestSuperflatChunksAreIndependentCopies(t *testing.T) {
	r := testRegistry(t)
	air, _ := r.ResolveBlockState("minecraft:air")

	s, err := NewSuperflat(r, []Layer{{BlockState: "minecraft:bedrock", Height: 1}}, 24, -4, air, 0)
	require.NoError(t, err)

	a, _, err := s.Load(0, 0)
	require.NoError(t, err)
	b, _, err := s.Load(1, 0)
	require.NoError(t, err)

	require.NoError(t, a.SetBlock(0, -64, 0, 999))
	got, err := b.GetBlock(0, -64, 0)
	require.NoError(t, err)
	require.NotEqual(t, int32(999), got)
}
