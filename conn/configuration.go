package conn

import "github.com/Penguin-Spy/quasar/proto"

func init() {
	register(StateConfiguration, packetClientInformationServerbound, handleClientInformation)
	register(StateConfiguration, packetCustomPayloadServerbound, handleCustomPayloadConfiguration)
	register(StateConfiguration, packetSelectKnownPacksServerbound, handleSelectKnownPacks)
	register(StateConfigurationWaitAck, packetFinishConfigurationServerbound, handleFinishConfigurationAck)
}

// handleClientInformation stores the client's locale/view-distance/skin
// layer preferences in c.pendingSkin, which handleFinishConfigurationAck
// copies onto the Player when Play begins. Calls made during Play update
// only c.pendingSkin.
func handleClientInformation(c *Connection, r *proto.Reader) error {
	locale, err := r.String()
	if err != nil {
		return err
	}
	viewDistance, err := r.Byte()
	if err != nil {
		return err
	}
	chatMode, err := r.VarInt()
	if err != nil {
		return err
	}
	chatColors, err := r.Bool()
	if err != nil {
		return err
	}
	layers, err := r.Byte()
	if err != nil {
		return err
	}
	mainHand, err := r.VarInt()
	if err != nil {
		return err
	}
	if _, err := r.Bool(); err != nil { // text filtering enabled, not used
		return err
	}
	if _, err := r.Bool(); err != nil { // allow server listings, not used
		return err
	}
	if _, err := r.VarInt(); err != nil { // particle status, not used
		return err
	}

	c.pendingSkin.Locale = locale
	c.pendingSkin.ViewDistance = int8(viewDistance)
	c.pendingSkin.ChatMode = chatMode
	c.pendingSkin.ChatColors = chatColors
	c.pendingSkin.Layers = layers & 0x7F
	if mainHand != 0 {
		c.pendingSkin.MainHand = 1
	} else {
		c.pendingSkin.MainHand = 0
	}
	return nil
}

func handleCustomPayloadConfiguration(c *Connection, r *proto.Reader) error {
	_, err := r.ReadToEnd() // opaque plugin channel payload
	return err
}

// handleSelectKnownPacks validates the client declares this server's core
// data pack, then streams the full registry.
func handleSelectKnownPacks(c *Connection, r *proto.Reader) error {
	count, err := r.VarInt()
	if err != nil {
		return err
	}
	hasCore := false
	for i := int32(0); i < count; i++ {
		namespace, err := r.String()
		if err != nil {
			return err
		}
		id, err := r.String()
		if err != nil {
			return err
		}
		version, err := r.String()
		if err != nil {
			return err
		}
		if namespace == "minecraft" && id == "core" && version == coreVersionString {
			hasCore = true
		}
	}
	if !hasCore {
		c.disconnect(packetDisconnectConfiguration, `{"translate":"multiplayer.disconnect.outdated_client"}`)
		return nil
	}

	reg := c.hooks.Registry()
	packets, err := reg.GetNetworkData()
	if err != nil {
		return err
	}
	for _, body := range packets {
		w := proto.NewWriter()
		w.Raw(body)
		if err := c.send(packetRegistryDataClientbound, w); err != nil {
			return err
		}
	}

	tags, err := reg.GetNetworkTags()
	if err != nil {
		return err
	}
	tagsWriter := proto.NewWriter()
	tagsWriter.Raw(tags)
	if err := c.send(packetUpdateTagsClientbound, tagsWriter); err != nil {
		return err
	}

	if err := c.send(packetFinishConfigurationClientbound, proto.NewWriter()); err != nil {
		return err
	}
	c.state = StateConfigurationWaitAck
	return nil
}

// handleFinishConfigurationAck enters Play: attaches the embedder's
// dimension choice, sends the play-phase login packet, places the player
// in the world, and starts the keep-alive timer.
func handleFinishConfigurationAck(c *Connection, r *proto.Reader) error {
	skin := c.pendingSkin
	skin.Texture = c.player.Skin.Texture
	skin.TextureSignature = c.player.Skin.TextureSignature
	c.player.Skin = skin

	decision := c.hooks.OnJoin(c.player)
	if decision.Reject {
		c.disconnect(packetDisconnectPlay, disconnectJSON(decision.Message))
		return nil
	}

	dim := c.dim
	if dim == nil {
		dim = c.hooks.DefaultDimension()
		c.dim = dim
	}
	c.player.Type = "minecraft:player"
	c.player.ID = dim.AllocateEntityID()

	w := proto.NewWriter()
	w.Int(c.player.ID)
	w.Bool(false) // is hardcore
	w.VarInt(1)
	w.String(string(dim.Identifier))
	w.VarInt(0) // max players, unused by clients since 1.8
	w.VarInt(int32(dim.ViewDistance()))
	w.VarInt(int32(dim.ViewDistance()))
	w.Bool(false) // reduced debug info
	w.Bool(true)  // enable respawn screen
	w.Bool(false) // do limited crafting
	typeID, _ := c.hooks.Registry().NetworkID("minecraft:dimension_type", string(dim.TypeID))
	w.VarInt(typeID)
	w.String(string(dim.Identifier))
	w.Long(0) // hashed seed, decorative only
	w.Byte(0) // game mode: survival
	w.Byte(255) // previous game mode: none
	w.Bool(false) // is debug
	w.Bool(dim.IsFlat)
	w.Bool(false) // has death location
	w.VarInt(0)   // portal cooldown
	w.VarInt(int32(dim.SeaLevel))
	w.Bool(false) // enforces secure chat
	if err := c.send(packetLoginPlay, w); err != nil {
		return err
	}

	hooks := c.hooks
	hooks.RegisterPlayer(c.player)
	c.state = StatePlay

	dim.AddPlayer(c.player, nil)

	if err := c.sendGameEvent(13, 0); err != nil { // "wait for chunks" start
		return err
	}

	c.startKeepAlive()
	return nil
}
