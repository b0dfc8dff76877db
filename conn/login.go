package conn

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/Penguin-Spy/quasar/auth"
	"github.com/Penguin-Spy/quasar/dimension"
	"github.com/Penguin-Spy/quasar/proto"
)

func init() {
	register(StateLogin, packetHelloServerbound, handleHello)
	register(StateLoginWaitEncrypt, packetKey, handleKey)
	register(StateLoginWaitAck, packetLoginAcknowledged, handleLoginAcknowledged)
}

// handleHello starts the login sequence. Offline mode
// synthesizes a v4 uuid and completes immediately; online mode requests
// encryption and defers completion to handleKey.
func handleHello(c *Connection, r *proto.Reader) error {
	username, err := r.String()
	if err != nil {
		return err
	}
	if _, err := r.UUID(); err != nil { // client-reported uuid, discarded: authoritative id comes from us (or the session server)
		return err
	}

	if !c.hooks.OnlineMode() {
		return c.completeLogin(username, uuid.New(), dimension.Skin{})
	}

	c.pendingUsername = username

	token, err := auth.NewVerifyToken()
	if err != nil {
		return err
	}
	c.verifyToken = token

	w := proto.NewWriter()
	w.String("") // server id: always empty, legacy field the wire format still carries
	w.ByteArray(c.hooks.KeyPair().PublicKeyDER())
	w.ByteArray(token)
	w.Bool(true) // should authenticate
	if err := c.send(packetHelloClientbound, w); err != nil {
		return err
	}
	c.state = StateLoginWaitEncrypt
	return nil
}

// handleKey finishes the online-mode handshake: decrypts the shared secret
// and verify token, switches the transport to encrypted, and checks the
// client's identity with the session server.
func handleKey(c *Connection, r *proto.Reader) error {
	encryptedSecret, err := r.ByteArray()
	if err != nil {
		return err
	}
	encryptedToken, err := r.ByteArray()
	if err != nil {
		return err
	}

	sharedSecret, err := c.hooks.KeyPair().Decrypt(encryptedSecret)
	if err != nil {
		return err
	}
	token, err := c.hooks.KeyPair().Decrypt(encryptedToken)
	if err != nil {
		return err
	}
	if !bytes.Equal(token, c.verifyToken) {
		return auth.ErrVerifyTokenMismatch
	}

	encryptStream, decryptStream, err := auth.NewCFB8Ciphers(sharedSecret)
	if err != nil {
		return err
	}
	c.encryptStream = encryptStream
	c.decryptStream = decryptStream
	c.encrypted = true

	hash := auth.ServerHash(sharedSecret, c.hooks.KeyPair().PublicKeyDER())
	result, err := auth.HasJoined(nil, c.pendingUsername, hash)
	if err != nil {
		switch err {
		case auth.ErrAuthenticationFailed:
			c.disconnect(packetLoginDisconnect, `{"translate":"multiplayer.disconnect.unverified_username"}`)
			return nil
		default:
			c.disconnect(packetLoginDisconnect, `{"translate":"disconnect.loginFailedInfo.serversUnavailable"}`)
			return nil
		}
	}

	skin := dimension.Skin{}
	if texture, ok := result.Texture(); ok {
		skin.Texture = texture.Value
		skin.TextureSignature = texture.Signature
	}
	return c.completeLogin(result.Username, result.UUID, skin)
}

// completeLogin builds the connection's Player, invokes the embedder's
// login callback, and either rejects or sends login_finished.
func (c *Connection) completeLogin(username string, id uuid.UUID, skin dimension.Skin) error {
	decision := c.hooks.OnLogin(username, id)
	if decision.Reject {
		c.disconnect(packetLoginDisconnect, disconnectJSON(decision.Message))
		return nil
	}

	c.player = &dimension.Player{
		Username: username,
		Sink:     c,
		Skin:     skin,
	}
	c.player.UUID = id
	c.player.Type = "minecraft:player"

	w := proto.NewWriter()
	w.UUID(id)
	w.String(username)
	w.VarInt(0) // number of properties; skin texture is delivered via player_info_update in Play, not here
	if err := c.send(packetLoginFinished, w); err != nil {
		return err
	}
	c.state = StateLoginWaitAck
	return nil
}

// handleLoginAcknowledged moves to the configuration phase and sends the
// fixed set of initial configuration packets.
func handleLoginAcknowledged(c *Connection, r *proto.Reader) error {
	c.state = StateConfiguration

	brand := proto.NewWriter()
	brand.String(brandName)
	if err := c.sendPluginMessage("minecraft:brand", brand.Bytes()); err != nil {
		return err
	}

	details := proto.NewWriter()
	details.String("") // report details: none
	if err := c.send(packetCustomReportDetails, details); err != nil {
		return err
	}

	links := proto.NewWriter()
	links.VarInt(0) // no server links
	if err := c.send(packetServerLinks, links); err != nil {
		return err
	}

	features := proto.NewWriter()
	features.VarInt(1)
	features.String("minecraft:vanilla")
	if err := c.send(packetUpdateEnabledFeatures, features); err != nil {
		return err
	}

	packs := proto.NewWriter()
	packs.VarInt(1)
	packs.String("minecraft")
	packs.String("core")
	packs.String(coreVersionString)
	return c.send(packetSelectKnownPacksClientbound, packs)
}

func (c *Connection) sendPluginMessage(channel string, data []byte) error {
	w := proto.NewWriter()
	w.String(channel)
	w.Raw(data)
	return c.send(packetCustomPayloadClientbound, w)
}

func disconnectJSON(message string) string {
	if message == "" {
		message = "Disconnected"
	}
	body, _ := json.Marshal(struct {
		Text string `json:"text"`
	}{Text: message})
	return string(body)
}
