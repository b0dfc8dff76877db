package dimension

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/Penguin-Spy/quasar/chunk"
	"github.com/Penguin-Spy/quasar/chunkprovider"
	"github.com/Penguin-Spy/quasar/proto"
	"github.com/Penguin-Spy/quasar/registry"
)

const defaultViewDistance = 4

type chunkCacheEntry struct {
	chunk  *chunk.Chunk
	absent bool
}

// Dimension is one world: chunks, players, entities, and the provider that
// backs chunk misses.
type Dimension struct {
	Identifier proto.Identifier
	TypeID     proto.Identifier

	IsFlat   bool
	SeaLevel int32

	viewDistance int
	spawnPoint   proto.Vector3

	height      int
	minSectionY int

	registry   *registry.Registry
	provider   chunkprovider.Provider
	emptyChunk *chunk.Chunk

	log zerolog.Logger

	mu           sync.Mutex
	chunks       map[[2]int32]*chunkCacheEntry
	players      map[int32]*Player
	entities     map[int32]*Entity
	nextEntity   int32
	lastCenters  map[int32]chunkCenter // last-sent view-square center, per player entity id
}

// chunkCenter is the center of the last view-distance square sent to a
// player, used to compute which coordinates are "newly entered" on the
// next move.
type chunkCenter struct {
	cx, cz int32
}

// New constructs a Dimension. height/minSectionY/airState feed the
// empty-chunk singleton, built once at dimension start.
func New(id, typeID proto.Identifier, reg *registry.Registry, provider chunkprovider.Provider, height, minSectionY int, airState, plainsBiomeID int32, log zerolog.Logger) *Dimension {
	return &Dimension{
		Identifier:   id,
		TypeID:       typeID,
		viewDistance: defaultViewDistance,
		height:       height,
		minSectionY:  minSectionY,
		registry:     reg,
		provider:     provider,
		emptyChunk:   chunk.New(height, minSectionY, airState, plainsBiomeID),
		log:          log,
		chunks:       make(map[[2]int32]*chunkCacheEntry),
		players:      make(map[int32]*Player),
		entities:     make(map[int32]*Entity),
		nextEntity:   1,
		lastCenters:  make(map[int32]chunkCenter),
	}
}

// SetViewDistance overrides the default view-distance radius.
func (d *Dimension) SetViewDistance(r int) { d.viewDistance = r }

// ViewDistance returns the configured view-distance radius.
func (d *Dimension) ViewDistance() int { return d.viewDistance }

// SetSpawnPoint sets the point new players are placed at by default.
func (d *Dimension) SetSpawnPoint(pos proto.Vector3) { d.spawnPoint = pos }

// SpawnPoint returns the dimension's configured spawn point.
func (d *Dimension) SpawnPoint() proto.Vector3 { return d.spawnPoint }

// GetChunk implements a cache-then-provider lookup: a miss invokes the
// provider and caches the result (including absence) so repeat lookups
// never re-invoke it.
func (d *Dimension) GetChunk(cx, cz int32) (*chunk.Chunk, bool) {
	key := [2]int32{cx, cz}

	d.mu.Lock()
	if entry, ok := d.chunks[key]; ok {
		d.mu.Unlock()
		if entry.absent {
			return nil, false
		}
		return entry.chunk, true
	}
	d.mu.Unlock()

	var entry *chunkCacheEntry
	if d.provider == nil {
		entry = &chunkCacheEntry{absent: true}
	} else {
		c, ok, err := d.provider.Load(cx, cz)
		if err != nil {
			d.log.Error().Err(err).Int32("cx", cx).Int32("cz", cz).Msg("chunk provider failed")
			entry = &chunkCacheEntry{absent: true}
		} else if !ok {
			entry = &chunkCacheEntry{absent: true}
		} else {
			entry = &chunkCacheEntry{chunk: c}
		}
	}

	d.mu.Lock()
	d.chunks[key] = entry
	d.mu.Unlock()

	if entry.absent {
		return nil, false
	}
	return entry.chunk, true
}

// chunkDataOrEmpty returns the wire-encoded form of the chunk at (cx, cz),
// falling back to the shared empty-chunk singleton when absent.
func (d *Dimension) chunkDataOrEmpty(cx, cz int32) []byte {
	c, ok := d.GetChunk(cx, cz)
	if !ok {
		return d.emptyChunk.GetData()
	}
	return c.GetData()
}

func (d *Dimension) allocateEntityID() int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.nextEntity
	d.nextEntity++
	return id
}

// AllocateEntityID reserves a fresh entity id without registering anything
// under it. Used by the login-phase play packet, which must carry the
// client's own entity id before AddPlayer runs the rest of the join
// sequence.
func (d *Dimension) AllocateEntityID() int32 { return d.allocateEntityID() }

// players snapshot helpers; callers must not retain past releasing the lock
// implicitly taken by these (they copy into a fresh slice).

func (d *Dimension) playersSnapshot() []*Player {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*Player, 0, len(d.players))
	for _, p := range d.players {
		out = append(out, p)
	}
	return out
}

func (d *Dimension) entitiesSnapshot() []*Entity {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*Entity, 0, len(d.entities))
	for _, e := range d.entities {
		out = append(out, e)
	}
	return out
}

// SetBlock resolves identifier to a state id, writes it into the chunk
// covering pos, and fans out block_update to every player in the dimension.
func (d *Dimension) SetBlock(pos proto.BlockPos, identifier string) error {
	state, ok := d.registry.ResolveBlockState(identifier)
	if !ok {
		return &ErrUnknownBlockState{Query: identifier}
	}

	cx, cz := pos.X>>4, pos.Z>>4
	c, ok := d.GetChunk(cx, cz)
	if !ok {
		return &ErrNoChunk{CX: cx, CZ: cz}
	}
	if err := c.SetBlock(pos.X, pos.Y, pos.Z, state); err != nil {
		return err
	}

	for _, p := range d.playersSnapshot() {
		if err := p.Sink.SendBlockUpdate(pos, state); err != nil {
			d.log.Warn().Err(err).Str("player", p.Username).Msg("block_update delivery failed")
		}
	}
	return nil
}

// BroadcastChat delivers text to every player in the dimension. sender is
// nil for a system message.
func (d *Dimension) BroadcastChat(text string, sender *Player) {
	for _, p := range d.playersSnapshot() {
		if err := p.Sink.BroadcastChat(text, sender); err != nil {
			d.log.Warn().Err(err).Str("player", p.Username).Msg("chat delivery failed")
		}
	}
}

// BroadcastEntitySpawn fans out add_entity for e to every player in the
// dimension other than e itself.
func (d *Dimension) BroadcastEntitySpawn(e *Player) {
	for _, p := range d.playersSnapshot() {
		if p.ID == e.ID {
			continue
		}
		if err := p.Sink.AddEntity(&e.Entity); err != nil {
			d.log.Warn().Err(err).Str("player", p.Username).Msg("add_entity delivery failed")
		}
	}
}

// Tick is the per-dimension step hook. Its body is empty, and nothing in
// this module calls it on a timer. Players are deliberately not moved
// here: their positions arrive via movement packets.
func (d *Dimension) Tick() {}
