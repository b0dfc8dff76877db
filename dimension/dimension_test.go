package dimension

import (
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Penguin-Spy/quasar/chunkprovider"
	"github.com/Penguin-Spy/quasar/proto"
	"github.com/Penguin-Spy/quasar/registry"
)

// fakeSink records every call a Dimension makes against a player's
// connection, so tests can assert on fan-out without a real protocol
// engine.
type fakeSink struct {
	addedPlayers   [][]*Player
	removedPlayers [][]*Player
	addedEntities  []*Entity
	removedEntity  [][]int32
	chunksSent     [][2]int32
	centerSent     [2]int32
	syncCount      int
	blockUpdates   []proto.BlockPos
	chatReceived   []string
}

func (f *fakeSink) AddPlayers(players []*Player) error {
	f.addedPlayers = append(f.addedPlayers, players)
	return nil
}
func (f *fakeSink) RemovePlayers(players []*Player) error {
	f.removedPlayers = append(f.removedPlayers, players)
	return nil
}
func (f *fakeSink) AddEntity(e *Entity) error {
	f.addedEntities = append(f.addedEntities, e)
	return nil
}
func (f *fakeSink) RemoveEntities(ids []int32) error {
	f.removedEntity = append(f.removedEntity, ids)
	return nil
}
func (f *fakeSink) SendChunk(cx, cz int32, data []byte) error {
	f.chunksSent = append(f.chunksSent, [2]int32{cx, cz})
	return nil
}
func (f *fakeSink) SetChunkCacheCenter(cx, cz int32) error {
	f.centerSent = [2]int32{cx, cz}
	return nil
}
func (f *fakeSink) SynchronizePosition(pos proto.Vector3, yaw, pitch float32) error {
	f.syncCount++
	return nil
}
func (f *fakeSink) SendBlockUpdate(pos proto.BlockPos, state int32) error {
	f.blockUpdates = append(f.blockUpdates, pos)
	return nil
}
func (f *fakeSink) BroadcastChat(text string, sender *Player) error {
	f.chatReceived = append(f.chatReceived, text)
	return nil
}
func (f *fakeSink) TeleportListeners(mover *Player) error         { return nil }
func (f *fakeSink) EntityMetadataListeners(subject *Player) error { return nil }

func testDimension(t *testing.T) *Dimension {
	t.Helper()
	reg := registry.New()
	reg.LoadBlockStates([]registry.BlockStateDef{
		{Identifier: "minecraft:air", Default: true},
		{Identifier: "minecraft:stone", Default: true},
	})
	air, _ := reg.ResolveBlockState("minecraft:air")

	sf, err := chunkprovider.NewSuperflat(reg, []chunkprovider.Layer{
		{BlockState: "minecraft:stone", Height: 1},
	}, 24, -4, air, 0)
	require.NoError(t, err)

	log := zerolog.New(io.Discard)
	return New(proto.NewIdentifier("minecraft", "overworld"), proto.NewIdentifier("minecraft", "overworld"), reg, sf, 24, -4, air, 0, log)
}

func newTestPlayer(name string) (*Player, *fakeSink) {
	sink := &fakeSink{}
	p := &Player{
		Entity: Entity{UUID: uuid.New(), Type: proto.NewIdentifier("minecraft", "player")},
		Username: name,
		Sink:     sink,
	}
	return p, sink
}

func TestAddPlayerAssignsIDAndStreamsChunks(t *testing.T) {
	d := testDimension(t)
	p, sink := newTestPlayer("alice")

	d.AddPlayer(p, nil)

	require.NotZero(t, p.ID)
	require.Equal(t, d.SpawnPoint(), p.Position)
	require.Equal(t, 2, sink.syncCount)
	require.NotEmpty(t, sink.chunksSent)

	r := d.ViewDistance() + 3
	require.Equal(t, (2*r+1)*(2*r+1), len(sink.chunksSent))
}

func TestSecondPlayerSeesFirst(t *testing.T) {
	d := testDimension(t)
	a, _ := newTestPlayer("alice")
	d.AddPlayer(a, nil)

	b, bSink := newTestPlayer("bob")
	d.AddPlayer(b, nil)

	require.Len(t, bSink.addedPlayers, 1)
	require.Equal(t, a.Username, bSink.addedPlayers[0][0].Username)
}

func TestRemovePlayerFansOutToRemaining(t *testing.T) {
	d := testDimension(t)
	a, aSink := newTestPlayer("alice")
	d.AddPlayer(a, nil)
	b, _ := newTestPlayer("bob")
	d.AddPlayer(b, nil)

	d.RemovePlayer(b)

	require.Len(t, aSink.removedPlayers, 1)
	require.Equal(t, b.Username, aSink.removedPlayers[0][0].Username)
	require.Zero(t, b.ID)
}

func TestOnPlayerMovedStreamsOnlyNewChunks(t *testing.T) {
	d := testDimension(t)
	p, sink := newTestPlayer("alice")
	d.AddPlayer(p, nil)
	initialCount := len(sink.chunksSent)

	// Move one block within the same chunk: no new streaming.
	d.OnPlayerMoved(p, proto.Vector3{X: p.Position.X + 1, Y: p.Position.Y, Z: p.Position.Z}, 0, 0, true, false)
	require.Equal(t, initialCount, len(sink.chunksSent))

	// Move a full chunk away: new coordinates stream in.
	d.OnPlayerMoved(p, proto.Vector3{X: p.Position.X + 16, Y: p.Position.Y, Z: p.Position.Z}, 0, 0, true, false)
	require.Greater(t, len(sink.chunksSent), initialCount)
}

func TestSetBlockFansOutUpdate(t *testing.T) {
	d := testDimension(t)
	p, sink := newTestPlayer("alice")
	d.AddPlayer(p, nil)

	pos := proto.BlockPos{X: 0, Y: 0, Z: 0}
	require.NoError(t, d.SetBlock(pos, "minecraft:stone"))
	require.Contains(t, sink.blockUpdates, pos)
}

func TestSetBlockUnknownIdentifier(t *testing.T) {
	d := testDimension(t)
	err := d.SetBlock(proto.BlockPos{}, "minecraft:does_not_exist")
	require.Error(t, err)
}
