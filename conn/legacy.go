package conn

import (
	"encoding/binary"
	"strconv"
	"time"
	"unicode/utf16"
)

// handleLegacyPing answers a pre-1.7 "legacy" server list ping: the whole
// exchange is a single client packet and a single kick-formatted response,
// entirely outside the varint-framed protocol.
func (c *Connection) handleLegacyPing() {
	// Drain whatever else the client already sent, waiting only briefly;
	// the legacy ping carries no information this core needs to answer it.
	buf := make([]byte, receiveBufferSize)
	_ = c.socket.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _ = c.socket.Read(buf)

	status := c.hooks.GetStatus()
	fields := []string{
		"§1", // fixed legacy protocol marker
		"772",
		status.VersionName,
		status.Description,
		strconv.Itoa(status.Online),
		strconv.Itoa(status.Max),
	}

	var text []rune
	for i, f := range fields {
		if i > 0 {
			text = append(text, '\x00')
		}
		text = append(text, []rune(f)...)
	}

	payload := utf16.Encode(text)
	out := make([]byte, 0, 3+len(payload)*2)
	out = append(out, 0xFF)
	out = binary.BigEndian.AppendUint16(out, uint16(len(payload)))
	for _, u := range payload {
		out = binary.BigEndian.AppendUint16(out, u)
	}

	_, _ = c.socket.Write(out)
	c.Close()
}
