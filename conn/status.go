package conn

import (
	"encoding/json"

	"github.com/Penguin-Spy/quasar/proto"
)

func init() {
	register(StateStatus, packetStatusRequest, handleStatusRequest)
	register(StateStatus, packetPingRequest, handlePingRequest)
}

type statusJSONVersion struct {
	Name     string `json:"name"`
	Protocol int32  `json:"protocol"`
}

type statusJSONSamplePlayer struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type statusJSONPlayers struct {
	Max    int                      `json:"max"`
	Online int                      `json:"online"`
	Sample []statusJSONSamplePlayer `json:"sample,omitempty"`
}

type statusJSONDescription struct {
	Text string `json:"text"`
}

type statusJSON struct {
	Version     statusJSONVersion      `json:"version"`
	Players     statusJSONPlayers      `json:"players"`
	Description statusJSONDescription  `json:"description"`
	Favicon     string                 `json:"favicon,omitempty"`
}

func handleStatusRequest(c *Connection, r *proto.Reader) error {
	status := c.hooks.GetStatus()

	doc := statusJSON{
		Version:     statusJSONVersion{Name: status.VersionName, Protocol: status.ProtocolID},
		Players:     statusJSONPlayers{Max: status.Max, Online: status.Online},
		Description: statusJSONDescription{Text: status.Description},
	}
	if status.FaviconPNGBase64 != "" {
		doc.Favicon = "data:image/png;base64," + status.FaviconPNGBase64
	}
	for _, s := range status.Sample {
		doc.Players.Sample = append(doc.Players.Sample, statusJSONSamplePlayer{
			Name: s.Username,
			ID:   proto.UUIDHyphenated(s.UUID),
		})
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	w := proto.NewWriter()
	w.String(string(body))
	return c.send(packetStatusResponse, w)
}

func handlePingRequest(c *Connection, r *proto.Reader) error {
	payload, err := r.Read(8)
	if err != nil {
		return err
	}
	w := proto.NewWriter()
	w.Raw(payload)
	return c.send(packetPongResponse, w)
}
