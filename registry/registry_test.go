package registry

import (
	"testing"

	"github.com/Penguin-Spy/quasar/nbt"
	"github.com/stretchr/testify/require"
)

func TestFreezeAfterFinalize(t *testing.T) {
	r := New()
	r.LoadDataPackCategory("worldgen/biome", []string{"minecraft:plains", "minecraft:forest"})
	require.NoError(t, r.Finalize())

	err := r.SetData("worldgen/biome", "minecraft:desert", nil)
	require.ErrorIs(t, err, ErrRegistryFrozen)

	err = r.AddTag("block", "mineable/axe", []string{"minecraft:oak_log"})
	require.ErrorIs(t, err, ErrRegistryFrozen)

	_, err = r.GetNetworkData()
	require.NoError(t, err)
	_, err = r.GetNetworkTags()
	require.NoError(t, err)
}

func TestGetNetworkDataBeforeFinalize(t *testing.T) {
	r := New()
	_, err := r.GetNetworkData()
	require.ErrorIs(t, err, ErrNotFinalized)
}

func TestDataPackNetworkIDAssignment(t *testing.T) {
	r := New()
	r.LoadDataPackCategory("worldgen/biome", []string{"minecraft:plains", "minecraft:forest"})
	require.NoError(t, r.SetData("worldgen/biome", "minecraft:desert", nbt.NewCompound()))
	require.NoError(t, r.Finalize())

	id, ok := r.NetworkID("worldgen/biome", "minecraft:plains")
	require.True(t, ok)
	require.Equal(t, int32(0), id)

	id, ok = r.NetworkID("worldgen/biome", "minecraft:desert")
	require.True(t, ok)
	require.Equal(t, int32(2), id)

	name, ok := r.Identifier("worldgen/biome", 1)
	require.True(t, ok)
	require.Equal(t, "minecraft:forest", name)
}

func TestTagFlatteningResolvesReferences(t *testing.T) {
	r := New()
	r.LoadTags("block", map[string][]string{
		"minecraft:mineable/axe": {"minecraft:oak_log"},
		"logs":                   {"#minecraft:mineable/axe", "minecraft:spruce_log"},
	})
	require.NoError(t, r.Finalize())

	entries, ok := r.GetTagEntries("block", "logs")
	require.True(t, ok)
	require.ElementsMatch(t, []string{"minecraft:oak_log", "minecraft:spruce_log"}, entries)
}

func TestCircularTagDetected(t *testing.T) {
	r := New()
	r.LoadTags("block", map[string][]string{
		"a": {"#b"},
		"b": {"#a"},
	})
	err := r.Finalize()
	require.Error(t, err)
	var cycleErr *ErrCircularTag
	require.ErrorAs(t, err, &cycleErr)
}

func TestStateKeySortsProperties(t *testing.T) {
	key := StateKey("minecraft:oak_stairs", map[string]string{
		"facing": "north",
		"half":   "bottom",
	})
	require.Equal(t, "minecraft:oak_stairs[facing=north,half=bottom]", key)
}

func TestBlockStateResolution(t *testing.T) {
	r := New()
	r.LoadBlockStates([]BlockStateDef{
		{Identifier: "minecraft:air", Default: true},
		{Identifier: "minecraft:stone", Default: true},
		{Identifier: "minecraft:oak_stairs", Default: false, Properties: map[string]string{"facing": "north"}},
		{Identifier: "minecraft:oak_stairs", Default: true, Properties: map[string]string{"facing": "south"}},
	})

	id, ok := r.BlockStateDefault("minecraft:air")
	require.True(t, ok)
	require.Equal(t, int32(0), id)

	id, ok = r.BlockStateByKey("minecraft:oak_stairs[facing=north]")
	require.True(t, ok)
	require.Equal(t, int32(2), id)

	id, ok = r.BlockStateDefault("minecraft:oak_stairs")
	require.True(t, ok)
	require.Equal(t, int32(3), id)

	key, ok := r.BlockStateKey(1)
	require.True(t, ok)
	require.Equal(t, "minecraft:stone", key)
}
