package conn

import (
	"encoding/json"

	"github.com/Penguin-Spy/quasar/dimension"
	"github.com/Penguin-Spy/quasar/nbt"
	"github.com/Penguin-Spy/quasar/proto"
)

func init() {
	register(StatePlay, packetConfirmTeleportation, handleConfirmTeleportation)
	register(StatePlay, packetChatServerbound, handleChat)
	register(StatePlay, packetChatCommand, handleChatCommand)
	register(StatePlay, packetClientInformationPlay, handleClientInformationPlay)
	register(StatePlay, packetCustomPayloadPlay, handleCustomPayloadPlay)
	register(StatePlay, packetMovePlayerPos, handleMovePlayerPos)
	register(StatePlay, packetMovePlayerPosRot, handleMovePlayerPosRot)
	register(StatePlay, packetMovePlayerRot, handleMovePlayerRot)
	register(StatePlay, packetMovePlayerStatusOnly, handleMovePlayerStatusOnly)
	register(StatePlay, packetPlayerCommand, handlePlayerCommand)
	register(StatePlay, packetPlayerAbilities, handlePlayerAbilities)
	register(StatePlay, packetSetCarriedItem, handleSetCarriedItem)
	register(StatePlay, packetSetCreativeModeSlot, handleSetCreativeModeSlot)
	register(StatePlay, packetPlayerAction, handlePlayerAction)
	register(StatePlay, packetSwing, handleSwing)
	register(StatePlay, packetUseItemOn, handleUseItemOn)
	register(StatePlay, packetUseItem, handleUseItem)
	register(StatePlay, packetPingRequestPlay, handlePingRequestPlay)
}

// --- dimension.PlayerSink -------------------------------------------------

func (c *Connection) AddPlayers(players []*dimension.Player) error {
	w := proto.NewWriter()
	w.VarInt(0x01) // action bitmask: add player
	w.VarInt(int32(len(players)))
	for _, p := range players {
		w.UUID(p.UUID)
		w.String(p.Username)
		if p.Skin.Texture != "" {
			w.VarInt(1)
			w.String("textures")
			w.String(p.Skin.Texture)
			w.Bool(p.Skin.TextureSignature != "")
			if p.Skin.TextureSignature != "" {
				w.String(p.Skin.TextureSignature)
			}
		} else {
			w.VarInt(0)
		}
		if p != c.player {
			if peer, ok := p.Sink.(*Connection); ok {
				peer.addListener(c)
			}
		}
	}
	return c.send(packetPlayerInfoUpdate, w)
}

func (c *Connection) RemovePlayers(players []*dimension.Player) error {
	w := proto.NewWriter()
	w.VarInt(int32(len(players)))
	for _, p := range players {
		w.UUID(p.UUID)
		if p != c.player {
			if peer, ok := p.Sink.(*Connection); ok {
				peer.removeListener(c)
			}
		}
	}
	return c.send(packetPlayerInfoRemove, w)
}

func (c *Connection) AddEntity(e *dimension.Entity) error {
	typeID, _ := c.hooks.Registry().NetworkID("entity_type", string(e.Type))
	w := proto.NewWriter()
	w.VarInt(e.ID)
	w.UUID(e.UUID)
	w.VarInt(typeID)
	w.Double(e.Position.X)
	w.Double(e.Position.Y)
	w.Double(e.Position.Z)
	w.Byte(angleToByte(e.Pitch))
	w.Byte(angleToByte(e.Yaw))
	w.Byte(angleToByte(e.Yaw)) // head yaw
	w.VarInt(0)                // data
	w.Short(0)
	w.Short(0)
	w.Short(0)
	return c.send(packetAddEntity, w)
}

func (c *Connection) RemoveEntities(ids []int32) error {
	w := proto.NewWriter()
	w.VarInt(int32(len(ids)))
	for _, id := range ids {
		w.VarInt(id)
	}
	return c.send(packetRemoveEntities, w)
}

func (c *Connection) SendChunk(cx, cz int32, data []byte) error {
	w := proto.NewWriter()
	w.Int(cx)
	w.Int(cz)
	w.Raw(nbt.EncodeNameless(nbt.NewCompound())) // heightmaps: none computed
	w.Raw(data)                                  // already length-prefixed section data
	w.VarInt(0)                                  // block entities
	w.VarInt(0)                                  // sky light mask
	w.VarInt(0)                                  // block light mask
	w.VarInt(0)                                  // empty sky light mask
	w.VarInt(0)                                  // empty block light mask
	w.VarInt(0)                                  // sky light arrays
	w.VarInt(0)                                  // block light arrays
	return c.send(packetLevelChunkWithLight, w)
}

func (c *Connection) SetChunkCacheCenter(cx, cz int32) error {
	w := proto.NewWriter()
	w.VarInt(cx)
	w.VarInt(cz)
	return c.send(packetSetChunkCacheCenter, w)
}

func (c *Connection) SynchronizePosition(pos proto.Vector3, yaw, pitch float32) error {
	c.currentTeleportID++
	c.teleportAcknowledged = false
	w := proto.NewWriter()
	w.VarInt(c.currentTeleportID)
	w.Double(pos.X)
	w.Double(pos.Y)
	w.Double(pos.Z)
	w.Double(0) // velocity x
	w.Double(0) // velocity y
	w.Double(0) // velocity z
	w.Float(yaw)
	w.Float(pitch)
	w.Int(0) // relative-flags bitfield: fully absolute
	return c.send(packetPlayerPosition, w)
}

func (c *Connection) SendBlockUpdate(pos proto.BlockPos, state int32) error {
	w := proto.NewWriter()
	w.Position(pos)
	w.VarInt(state)
	return c.send(packetBlockUpdate, w)
}

func (c *Connection) BroadcastChat(text string, sender *dimension.Player) error {
	if sender != nil {
		text = sender.Username + ": " + text
	}
	body, err := json.Marshal(struct {
		Text string `json:"text"`
	}{Text: text})
	if err != nil {
		return err
	}
	w := proto.NewWriter()
	w.String(string(body))
	w.Bool(false) // overlay
	return c.send(packetSystemChat, w)
}

func (c *Connection) TeleportListeners(mover *dimension.Player) error {
	for _, peer := range c.snapshotListeners() {
		w := proto.NewWriter()
		w.VarInt(mover.ID)
		w.Double(mover.Position.X)
		w.Double(mover.Position.Y)
		w.Double(mover.Position.Z)
		w.Float(0)
		w.Float(0)
		w.Float(0)
		w.Byte(angleToByte(mover.Yaw))
		w.Byte(angleToByte(mover.Pitch))
		w.Bool(mover.OnGround)
		if err := peer.send(packetTeleportEntity, w); err != nil {
			return err
		}
		head := proto.NewWriter()
		head.VarInt(mover.ID)
		head.Byte(angleToByte(mover.Yaw))
		if err := peer.send(packetRotateHead, head); err != nil {
			return err
		}
	}
	mover.SyncShadow()
	return nil
}

func (c *Connection) EntityMetadataListeners(subject *dimension.Player) error {
	for _, peer := range c.snapshotListeners() {
		w := proto.NewWriter()
		w.VarInt(subject.ID)
		w.Byte(0xFF) // end of metadata: no tracked fields modeled yet
		if err := peer.send(packetSetEntityData, w); err != nil {
			return err
		}
	}
	return nil
}

func (c *Connection) BlockChangedAck(seq int32) error {
	w := proto.NewWriter()
	w.VarInt(seq)
	return c.send(packetBlockChangedAck, w)
}

func (c *Connection) addListener(peer *Connection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range c.listening {
		if l == peer {
			return
		}
	}
	c.listening = append(c.listening, peer)
}

func (c *Connection) removeListener(peer *Connection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, l := range c.listening {
		if l == peer {
			c.listening = append(c.listening[:i], c.listening[i+1:]...)
			return
		}
	}
}

func (c *Connection) snapshotListeners() []*Connection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Connection(nil), c.listening...)
}

// --- serverbound play handlers --------------------------------------------

func handleConfirmTeleportation(c *Connection, r *proto.Reader) error {
	id, err := r.VarInt()
	if err != nil {
		return err
	}
	if id == c.currentTeleportID {
		c.teleportAcknowledged = true
	}
	return nil
}

func handleChat(c *Connection, r *proto.Reader) error {
	message, err := r.String()
	if err != nil {
		return err
	}
	c.dim.BroadcastChat(message, c.player)
	return nil
}

func handleChatCommand(c *Connection, r *proto.Reader) error {
	_, err := r.ReadToEnd() // command parsing is out of scope for the core
	return err
}

func handleClientInformationPlay(c *Connection, r *proto.Reader) error {
	return handleClientInformation(c, r)
}

func handleCustomPayloadPlay(c *Connection, r *proto.Reader) error {
	_, err := r.ReadToEnd()
	return err
}

func handleMovePlayerPos(c *Connection, r *proto.Reader) error {
	x, err := r.Double()
	if err != nil {
		return err
	}
	y, err := r.Double()
	if err != nil {
		return err
	}
	z, err := r.Double()
	if err != nil {
		return err
	}
	onGround, flags, err := readMoveFlags(r)
	if err != nil {
		return err
	}
	c.dim.OnPlayerMoved(c.player, proto.Vector3{X: x, Y: y, Z: z}, c.player.Yaw, c.player.Pitch, onGround, flags)
	return c.player.Sink.TeleportListeners(c.player)
}

func handleMovePlayerPosRot(c *Connection, r *proto.Reader) error {
	x, err := r.Double()
	if err != nil {
		return err
	}
	y, err := r.Double()
	if err != nil {
		return err
	}
	z, err := r.Double()
	if err != nil {
		return err
	}
	yaw, err := r.Float()
	if err != nil {
		return err
	}
	pitch, err := r.Float()
	if err != nil {
		return err
	}
	onGround, flags, err := readMoveFlags(r)
	if err != nil {
		return err
	}
	c.dim.OnPlayerMoved(c.player, proto.Vector3{X: x, Y: y, Z: z}, normalizeYaw(yaw), clampPitch(pitch), onGround, flags)
	return c.player.Sink.TeleportListeners(c.player)
}

func handleMovePlayerRot(c *Connection, r *proto.Reader) error {
	yaw, err := r.Float()
	if err != nil {
		return err
	}
	pitch, err := r.Float()
	if err != nil {
		return err
	}
	onGround, flags, err := readMoveFlags(r)
	if err != nil {
		return err
	}
	c.dim.OnPlayerMoved(c.player, c.player.Position, normalizeYaw(yaw), clampPitch(pitch), onGround, flags)
	return c.player.Sink.TeleportListeners(c.player)
}

func handleMovePlayerStatusOnly(c *Connection, r *proto.Reader) error {
	onGround, flags, err := readMoveFlags(r)
	if err != nil {
		return err
	}
	c.dim.OnPlayerMoved(c.player, c.player.Position, c.player.Yaw, c.player.Pitch, onGround, flags)
	return nil
}

// readMoveFlags reads the trailing on_ground + against_wall byte movement
// packets carry as of 1.21.2.
func readMoveFlags(r *proto.Reader) (onGround, againstWall bool, err error) {
	flags, err := r.Byte()
	if err != nil {
		return false, false, err
	}
	return flags&0x01 != 0, flags&0x02 != 0, nil
}

func handlePlayerCommand(c *Connection, r *proto.Reader) error {
	if _, err := r.VarInt(); err != nil { // entity id, always self
		return err
	}
	action, err := r.VarInt()
	if err != nil {
		return err
	}
	if _, err := r.VarInt(); err != nil { // jump boost, unused
		return err
	}
	switch action {
	case 0:
		c.player.Sneaking = true
	case 1:
		c.player.Sneaking = false
	case 3:
		c.player.Sprinting = true
	case 4:
		c.player.Sprinting = false
	}
	return c.player.Sink.EntityMetadataListeners(c.player)
}

func handlePlayerAbilities(c *Connection, r *proto.Reader) error {
	_, err := r.Byte() // flags: flying, unmodeled beyond acknowledging receipt
	return err
}

func handleSetCarriedItem(c *Connection, r *proto.Reader) error {
	slot, err := r.Short()
	if err != nil {
		return err
	}
	if slot >= 0 && slot < 9 {
		c.player.SelectedSlot = int(slot)
	}
	return nil
}

func handleSetCreativeModeSlot(c *Connection, r *proto.Reader) error {
	slot, err := r.Short()
	if err != nil {
		return err
	}
	present, err := r.Bool()
	if err != nil {
		return err
	}
	item := dimension.Item{Present: present}
	if present {
		raw, err := r.ReadToEnd()
		if err != nil {
			return err
		}
		item.Raw = raw
	}
	if slot >= 0 && int(slot) < len(c.player.Inventory) {
		c.player.Inventory[slot] = item
	}
	return nil
}

func handlePlayerAction(c *Connection, r *proto.Reader) error {
	status, err := r.VarInt()
	if err != nil {
		return err
	}
	pos, err := r.Position()
	if err != nil {
		return err
	}
	if _, err := r.Byte(); err != nil { // face, unused
		return err
	}
	seq, err := r.VarInt()
	if err != nil {
		return err
	}
	if status == 0 { // started digging: treat as instant break to air
		if err := c.dim.SetBlock(pos, "minecraft:air"); err != nil {
			return err
		}
	}
	return c.player.Sink.BlockChangedAck(seq)
}

func handleSwing(c *Connection, r *proto.Reader) error {
	if _, err := r.VarInt(); err != nil { // hand
		return err
	}
	for _, peer := range c.snapshotListeners() {
		w := proto.NewWriter()
		w.VarInt(c.player.ID)
		w.Byte(0) // swing main arm animation
		if err := peer.send(packetAnimate, w); err != nil {
			return err
		}
	}
	return nil
}

// handleUseItemOn parses enough of the packet to recover its trailing
// sequence number; block placement itself is out of scope for the core.
func handleUseItemOn(c *Connection, r *proto.Reader) error {
	if _, err := r.VarInt(); err != nil { // hand
		return err
	}
	if _, err := r.Position(); err != nil { // location
		return err
	}
	if _, err := r.VarInt(); err != nil { // face
		return err
	}
	if _, err := r.Float(); err != nil { // cursor x
		return err
	}
	if _, err := r.Float(); err != nil { // cursor y
		return err
	}
	if _, err := r.Float(); err != nil { // cursor z
		return err
	}
	if _, err := r.Bool(); err != nil { // inside block
		return err
	}
	if _, err := r.Bool(); err != nil { // world border hit
		return err
	}
	seq, err := r.VarInt()
	if err != nil {
		return err
	}
	return c.player.Sink.BlockChangedAck(seq)
}

// handleUseItem parses enough of the packet to recover its sequence
// number; item-use effects are out of scope for the core.
func handleUseItem(c *Connection, r *proto.Reader) error {
	if _, err := r.VarInt(); err != nil { // hand
		return err
	}
	seq, err := r.VarInt()
	if err != nil {
		return err
	}
	if _, err := r.Float(); err != nil { // yaw
		return err
	}
	if _, err := r.Float(); err != nil { // pitch
		return err
	}
	return c.player.Sink.BlockChangedAck(seq)
}

func handlePingRequestPlay(c *Connection, r *proto.Reader) error {
	payload, err := r.Long()
	if err != nil {
		return err
	}
	w := proto.NewWriter()
	w.Long(payload)
	return c.send(packetPongResponsePlay, w)
}

func (c *Connection) sendGameEvent(event byte, value float32) error {
	w := proto.NewWriter()
	w.Byte(event)
	w.Float(value)
	return c.send(packetGameEvent, w)
}
