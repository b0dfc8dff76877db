package conn

import (
	"time"

	"github.com/Penguin-Spy/quasar/proto"
)

func init() {
	register(StatePlay, packetKeepAliveServerbound, handleKeepAlive)
}

// startKeepAlive sends the first keep_alive immediately and then every
// keepAliveInterval, disconnecting a client that never answers within one
// interval.
func (c *Connection) startKeepAlive() {
	c.keepAliveStop = make(chan struct{})
	go c.keepAliveLoop()
}

func (c *Connection) keepAliveLoop() {
	c.sendKeepAlive()
	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.keepAliveStop:
			return
		case <-ticker.C:
			if !c.keepAliveReceived {
				c.disconnect(packetDisconnectPlay, `{"translate":"disconnect.timeout"}`)
				return
			}
			c.sendKeepAlive()
		}
	}
}

func (c *Connection) sendKeepAlive() {
	c.keepAliveID = time.Now().UnixNano()
	c.keepAliveReceived = false
	w := proto.NewWriter()
	w.Long(c.keepAliveID)
	_ = c.send(packetKeepAliveClientbound, w)
}

func handleKeepAlive(c *Connection, r *proto.Reader) error {
	id, err := r.Long()
	if err != nil {
		return err
	}
	if id == c.keepAliveID {
		c.keepAliveReceived = true
	}
	return nil
}
