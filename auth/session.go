package auth

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/Penguin-Spy/quasar/proto"
)

// sessionServerURL is a var (not a const) so tests can point it at a local
// httptest server instead of the real Mojang endpoint.
var sessionServerURL = "https://sessionserver.mojang.com/session/minecraft/hasJoined"

// SkinProperty is a single signed property from the session-server
// response, most importantly "textures".
type SkinProperty struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Signature string `json:"signature,omitempty"`
}

// JoinResult is the authoritative identity the session server returns.
type JoinResult struct {
	UUID       uuid.UUID
	Username   string
	Properties []SkinProperty
}

// Texture returns the "textures" property, if the session server sent one.
func (r *JoinResult) Texture() (SkinProperty, bool) {
	for _, p := range r.Properties {
		if p.Name == "textures" {
			return p, true
		}
	}
	return SkinProperty{}, false
}

type hasJoinedResponse struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Properties []SkinProperty `json:"properties"`
}

// HasJoined calls Mojang's session server to verify an online-mode login
//. It performs no certificate-pinning shortcuts;
// standard TLS verification applies.
func HasJoined(client *http.Client, username, serverHash string) (*JoinResult, error) {
	if client == nil {
		client = http.DefaultClient
	}

	q := url.Values{}
	q.Set("username", username)
	q.Set("serverId", serverHash)

	resp, err := client.Get(sessionServerURL + "?" + q.Encode())
	if err != nil {
		return nil, &ErrSessionServerUnavailable{Status: 0}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp.StatusCode)
	}

	var body hasJoinedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	id, err := proto.ParsePlainUUID(body.ID)
	if err != nil {
		return nil, err
	}
	return &JoinResult{UUID: id, Username: body.Name, Properties: body.Properties}, nil
}

// classifyStatus maps a non-200 session-server response to the
// appropriate error.
func classifyStatus(status int) error {
	if status == http.StatusNoContent {
		return ErrAuthenticationFailed
	}
	return &ErrSessionServerUnavailable{Status: status}
}
