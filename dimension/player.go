package dimension

import "github.com/Penguin-Spy/quasar/proto"

// Item is an opaque inventory slot payload; its NBT/component structure is
// not interpreted by the core, only stored and echoed back.
type Item struct {
	Present bool
	Raw     []byte
}

// Skin holds the client-reported appearance/locale state a Player carries
//.
type Skin struct {
	Texture          string
	TextureSignature string
	Locale           string
	ViewDistance     int8
	ChatMode         int32
	ChatColors       bool
	Layers           uint8 // masked to 7 bits
	MainHand         uint8 // normalized to 0 or 1
}

// PlayerSink is the protocol-level callback surface a Connection implements
// so Dimension can drive packet fan-out without importing the conn
// package. Every method is
// best-effort from the Dimension's point of view: a returned error is
// logged by the caller and does not abort the surrounding operation, since
// a handler error should only ever abort the erroring connection.
type PlayerSink interface {
	// AddPlayers informs this connection's client about players (tab list
	// entries) and, for connections representing a different
	// player than the receiver, begins listening to their updates.
	AddPlayers(players []*Player) error
	// RemovePlayers reverses AddPlayers.
	RemovePlayers(players []*Player) error
	// AddEntity spawns a non-listened entity (e.g. another player's
	// avatar) for this connection's client.
	AddEntity(e *Entity) error
	// RemoveEntities despawns entities by id.
	RemoveEntities(ids []int32) error
	// SendChunk delivers one chunk's wire-encoded column.
	SendChunk(cx, cz int32, data []byte) error
	// SetChunkCacheCenter tells the client which chunk it is centered on.
	SetChunkCacheCenter(cx, cz int32) error
	// SynchronizePosition allocates a new teleport id and sends an
	// absolute player_position packet.
	SynchronizePosition(pos proto.Vector3, yaw, pitch float32) error
	// SendBlockUpdate notifies of a single block change.
	SendBlockUpdate(pos proto.BlockPos, state int32) error
	// BroadcastChat delivers a chat message from sender (nil for system
	// messages) to this connection's client.
	BroadcastChat(text string, sender *Player) error
	// TeleportListeners fans out teleport_entity + rotate_head to peers
	// listening to mover.
	TeleportListeners(mover *Player) error
	// EntityMetadataListeners fans out a set_entity_data update to peers
	// listening to subject.
	EntityMetadataListeners(subject *Player) error
	// BlockChangedAck acknowledges a client-predicted block change by echoing
	// back the sequence number it arrived with.
	BlockChangedAck(seq int32) error
}

// Player extends Entity with connection-scoped state.
type Player struct {
	Entity

	Username string
	Sink     PlayerSink

	Inventory    [46]Item
	SelectedSlot int // [0, 8]

	Skin Skin

	OnGround    bool
	AgainstWall bool
	Sneaking    bool
	Sprinting   bool

	// Shadows used to detect block/chunk transitions.
	lastBlockX, lastBlockY, lastBlockZ int32
	lastChunkX, lastChunkZ             int32
	hasMoved                           bool
}

// BlockPos returns the player's current integer block position.
func (p *Player) BlockPos() proto.BlockPos {
	return proto.BlockPos{
		X: floorToInt(p.Position.X),
		Y: floorToInt(p.Position.Y),
		Z: floorToInt(p.Position.Z),
	}
}

// ChunkPos returns the (cx, cz) the player's current block position falls
// within.
func (p *Player) ChunkPos() (cx, cz int32) {
	bp := p.BlockPos()
	return bp.X >> 4, bp.Z >> 4
}

func floorToInt(v float64) int32 {
	i := int32(v)
	if v < 0 && float64(i) != v {
		i--
	}
	return i
}
