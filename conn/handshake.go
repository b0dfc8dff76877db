package conn

import "github.com/Penguin-Spy/quasar/proto"

func init() {
	register(StateHandshake, packetIntention, handleIntention)
}

// handleIntention processes the single handshake packet: protocol id,
// (informational) address/port, and next_state.
func handleIntention(c *Connection, r *proto.Reader) error {
	version, err := r.VarInt()
	if err != nil {
		return err
	}
	if _, err := r.String(); err != nil { // server address, informational
		return err
	}
	if _, err := r.UnsignedShort(); err != nil { // port, informational
		return err
	}
	nextState, err := r.VarInt()
	if err != nil {
		return err
	}

	switch nextState {
	case 1:
		if version != protocolVersion {
			// wiki.vg-documented behavior is to still allow status with a
			// mismatched protocol, since status replies describe version
			// mismatch to the client; only login enforces it.
		}
		c.state = StateStatus
	case 2:
		c.state = StateLogin
		if version != protocolVersion {
			c.disconnect(packetLoginDisconnect, `{"translate":"multiplayer.disconnect.outdated_client"}`)
			return nil
		}
	default:
		c.state = StateLogin
		c.disconnect(packetLoginDisconnect, `{"translate":"multiplayer.disconnect.transfers_disabled"}`)
	}
	return nil
}
