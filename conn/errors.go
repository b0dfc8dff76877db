package conn

import "fmt"

// ErrUnexpectedPacket is raised when the dispatch table for the current
// state has no handler for a received packet id.
type ErrUnexpectedPacket struct {
	State State
	ID    int32
}

func (e *ErrUnexpectedPacket) Error() string {
	return fmt.Sprintf("conn: unexpected packet 0x%02X in state %s", e.ID, e.State)
}

// ErrOutdatedClient is raised when the handshake protocol id or the
// configuration-phase known-packs declaration doesn't match this server's
// version.
var ErrOutdatedClient = fmt.Errorf("conn: outdated or incompatible client")

// ErrTransfersDisabled is raised for a handshake next_state this core
// doesn't support.
var ErrTransfersDisabled = fmt.Errorf("conn: transfers are disabled")
