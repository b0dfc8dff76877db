package conn

import (
	"crypto/cipher"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Penguin-Spy/quasar/dimension"
	"github.com/Penguin-Spy/quasar/proto"
)

const (
	keepAliveInterval = 15 * time.Second
	receiveBufferSize = 4096
)

// Connection is one client socket's protocol state machine.
type Connection struct {
	socket net.Conn
	hooks  Hooks
	log    zerolog.Logger

	recv *proto.Reader

	encrypted      bool
	encryptStream  cipher.Stream
	decryptStream  cipher.Stream

	state State

	// Login-phase scratch state.
	verifyToken     []byte
	pendingUsername string

	// Configuration-phase scratch state, attached to the Player once Play
	// begins.
	pendingSkin dimension.Skin

	// Play-phase state.
	player               *dimension.Player
	dim                  *dimension.Dimension
	currentTeleportID    int32
	teleportAcknowledged bool
	keepAliveID          int64
	keepAliveReceived    bool
	keepAliveStop        chan struct{}

	mu        sync.Mutex
	listening []*Connection // peers receiving this connection's movement/animation/metadata updates
	closed    bool
}

// New wraps an accepted socket in a fresh Connection in StateHandshake.
func New(socket net.Conn, hooks Hooks, log zerolog.Logger) *Connection {
	return &Connection{
		socket: socket,
		hooks:  hooks,
		log:    log,
		recv:   proto.NewReader(nil),
		state:  StateHandshake,
	}
}

// Serve drives the receive loop until the connection closes, cleaning up
// dimension membership and the keep-alive timer on exit.
func (c *Connection) Serve() {
	defer c.cleanup()

	buf := make([]byte, receiveBufferSize)
	first := true

	for {
		n, err := c.socket.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if first {
				first = false
				if chunk[0] == 0xFE {
					c.handleLegacyPing()
					return
				}
			}
			if c.encrypted {
				plain := make([]byte, len(chunk))
				c.decryptStream.XORKeyStream(plain, chunk)
				chunk = plain
			}
			c.recv.Feed(chunk)

			if procErr := c.processBuffered(); procErr != nil {
				c.failAndClose(procErr)
				return
			}
			if c.state == StateClosed {
				return
			}
		}
		if err != nil {
			return // clean disconnect: socket closed or read error
		}
	}
}

// processBuffered dispatches every complete frame currently queued.
func (c *Connection) processBuffered() error {
	for {
		frame, ok, err := proto.ExtractFrame(c.recv)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := c.dispatch(frame); err != nil {
			return err
		}
	}
}

func (c *Connection) dispatch(frame *proto.Frame) error {
	handler, ok := c.handlerFor(c.state, frame.ID)
	if !ok {
		return &ErrUnexpectedPacket{State: c.state, ID: frame.ID}
	}
	if err := handler(c, frame.Body); err != nil {
		return err
	}
	frame.Body.ReadToEnd() //nolint:errcheck // drain any unconsumed bytes
	return nil
}

// handlerFor resolves the dispatch table for state.
func (c *Connection) handlerFor(state State, id int32) (func(*Connection, *proto.Reader) error, bool) {
	table, ok := dispatchTables[state]
	if !ok {
		return nil, false
	}
	h, ok := table[id]
	return h, ok
}

// send builds (id, body) and writes it through the framing/encryption
// pipeline.
func (c *Connection) send(packetID int32, w *proto.Writer) error {
	frame := w.Frame(packetID)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	if c.encrypted {
		out := make([]byte, len(frame))
		c.encryptStream.XORKeyStream(out, frame)
		frame = out
	}
	_, err := c.socket.Write(frame)
	return err
}

// disconnect sends a play/login/configuration-phase disconnect packet
// (packet id varies by state; handlers pass the right one) best-effort,
// then closes the socket.
func (c *Connection) disconnect(packetID int32, reasonJSON string) {
	w := proto.NewWriter()
	w.String(reasonJSON)
	_ = c.send(packetID, w)
	c.Close()
}

// Shutdown disconnects the connection with reasonJSON, choosing the
// disconnect packet id for whatever phase it is currently in.
func (c *Connection) Shutdown(reasonJSON string) {
	switch c.state {
	case StateLogin, StateLoginWaitEncrypt, StateLoginWaitAck:
		c.disconnect(packetLoginDisconnect, reasonJSON)
	case StateConfiguration, StateConfigurationWaitAck:
		c.disconnect(packetDisconnectConfiguration, reasonJSON)
	case StatePlay:
		c.disconnect(packetDisconnectPlay, reasonJSON)
	default:
		c.Close()
	}
}

// Close closes the underlying socket and marks the connection closed.
func (c *Connection) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()
	c.state = StateClosed
	_ = c.socket.Close()
}

func (c *Connection) failAndClose(err error) {
	c.log.Error().Err(err).Str("state", c.state.String()).Msg("connection handler failed")
	if c.state == StatePlay {
		c.disconnect(packetDisconnectPlay, `{"translate":"Internal server error"}`)
	} else {
		c.Close()
	}
}

func (c *Connection) cleanup() {
	if c.keepAliveStop != nil {
		close(c.keepAliveStop)
	}
	if c.player != nil && c.dim != nil {
		c.dim.RemovePlayer(c.player)
		c.hooks.UnregisterPlayer(c.player)
	}
	c.Close()
}
