package dimension

import "github.com/Penguin-Spy/quasar/proto"

// AddPlayer runs the join sequence: informs the
// joiner of existing players/entities, assigns an entity id, invokes
// onJoined (defaulting to placing the player at the spawn point when nil),
// fans out this player's arrival, and streams the initial chunk square.
func (d *Dimension) AddPlayer(p *Player, onJoined func(*Player)) {
	existingPlayers := d.playersSnapshot()
	existingEntities := d.entitiesSnapshot()

	// 1. Inform the joiner of every existing player.
	if len(existingPlayers) > 0 {
		if err := p.Sink.AddPlayers(existingPlayers); err != nil {
			d.log.Warn().Err(err).Str("player", p.Username).Msg("add_players delivery failed")
		}
	}

	// 2. Inform the joiner of every existing non-player entity.
	for _, e := range existingEntities {
		if _, isPlayer := d.players[e.ID]; isPlayer {
			continue
		}
		if err := p.Sink.AddEntity(e); err != nil {
			d.log.Warn().Err(err).Str("player", p.Username).Msg("add_entity delivery failed")
		}
	}

	// 3. Assign a fresh entity id, unless the caller already reserved one
	// (the login-phase play packet must carry it ahead of this call).
	if p.ID == 0 {
		p.ID = d.allocateEntityID()
	}

	d.mu.Lock()
	d.players[p.ID] = p
	d.entities[p.ID] = &p.Entity
	d.mu.Unlock()

	// 4. Place the joining player.
	if onJoined != nil {
		onJoined(p)
	} else {
		p.Position = d.spawnPoint
	}

	// 5. Announce this player to everyone who was already present.
	for _, peer := range existingPlayers {
		if err := peer.Sink.AddPlayers([]*Player{p}); err != nil {
			d.log.Warn().Err(err).Str("player", peer.Username).Msg("add_players delivery failed")
		}
		if err := peer.Sink.AddEntity(&p.Entity); err != nil {
			d.log.Warn().Err(err).Str("player", peer.Username).Msg("add_entity delivery failed")
		}
	}

	// 6. First position sync.
	if err := p.Sink.SynchronizePosition(p.Position, p.Yaw, p.Pitch); err != nil {
		d.log.Warn().Err(err).Str("player", p.Username).Msg("position sync failed")
	}

	// 7. Initial chunk square.
	cx, cz := p.ChunkPos()
	d.onPlayerChangedChunk(p, cx, cz, true)
	bp := p.BlockPos()
	p.lastBlockX, p.lastBlockY, p.lastBlockZ = bp.X, bp.Y, bp.Z
	p.lastChunkX, p.lastChunkZ = cx, cz
	p.hasMoved = true

	// 8. Re-synchronize, guarding against falling into the void while
	// chunks streamed.
	if err := p.Sink.SynchronizePosition(p.Position, p.Yaw, p.Pitch); err != nil {
		d.log.Warn().Err(err).Str("player", p.Username).Msg("position re-sync failed")
	}
}

// RemovePlayer removes p from the player/entity lists and fans out its
// departure.
func (d *Dimension) RemovePlayer(p *Player) {
	d.mu.Lock()
	delete(d.players, p.ID)
	delete(d.entities, p.ID)
	delete(d.lastCenters, p.ID)
	removedID := p.ID
	d.mu.Unlock()

	for _, peer := range d.playersSnapshot() {
		if err := peer.Sink.RemovePlayers([]*Player{p}); err != nil {
			d.log.Warn().Err(err).Str("player", peer.Username).Msg("remove_players delivery failed")
		}
		if err := peer.Sink.RemoveEntities([]int32{removedID}); err != nil {
			d.log.Warn().Err(err).Str("player", peer.Username).Msg("remove_entities delivery failed")
		}
	}

	p.ID = 0
}

// OnPlayerMoved updates p's pose, detects block/chunk transitions, and
// triggers chunk streaming when the chunk changed.
func (d *Dimension) OnPlayerMoved(p *Player, pos proto.Vector3, yaw, pitch float32, onGround, againstWall bool) {
	p.Position = pos
	p.Yaw = yaw
	p.Pitch = pitch
	p.OnGround = onGround
	p.AgainstWall = againstWall

	bp := p.BlockPos()
	blockChanged := !p.hasMoved || bp.X != p.lastBlockX || bp.Y != p.lastBlockY || bp.Z != p.lastBlockZ
	if blockChanged {
		cx, cz := bp.X>>4, bp.Z>>4
		chunkChanged := !p.hasMoved || cx != p.lastChunkX || cz != p.lastChunkZ
		if chunkChanged {
			d.onPlayerChangedChunk(p, cx, cz, false)
			p.lastChunkX, p.lastChunkZ = cx, cz
		}
		p.lastBlockX, p.lastBlockY, p.lastBlockZ = bp.X, bp.Y, bp.Z
		p.hasMoved = true
	}
}

// onPlayerChangedChunk streams the view-distance square around (cx, cz),
// sending only coordinates that weren't already covered by the previous
// square of the same radius, unless loadAll forces every coordinate
//.
func (d *Dimension) onPlayerChangedChunk(p *Player, cx, cz int32, loadAll bool) {
	if err := p.Sink.SetChunkCacheCenter(cx, cz); err != nil {
		d.log.Warn().Err(err).Str("player", p.Username).Msg("set_chunk_cache_center delivery failed")
	}

	r := int32(d.viewDistance + 3)

	d.mu.Lock()
	prev, hadPrev := d.lastCenters[p.ID]
	d.mu.Unlock()

	for x := cx - r; x <= cx+r; x++ {
		for z := cz - r; z <= cz+r; z++ {
			newlyEntered := loadAll || !hadPrev ||
				x < prev.cx-r || x > prev.cx+r || z < prev.cz-r || z > prev.cz+r
			if !newlyEntered {
				continue
			}
			data := d.chunkDataOrEmpty(x, z)
			if err := p.Sink.SendChunk(x, z, data); err != nil {
				d.log.Warn().Err(err).Str("player", p.Username).Int32("cx", x).Int32("cz", z).Msg("chunk delivery failed")
			}
		}
	}

	d.mu.Lock()
	d.lastCenters[p.ID] = chunkCenter{cx: cx, cz: cz}
	d.mu.Unlock()
}
