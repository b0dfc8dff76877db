package conn

import (
	"github.com/google/uuid"

	"github.com/Penguin-Spy/quasar/dimension"
	"github.com/Penguin-Spy/quasar/registry"
)

// SampledPlayer is one entry of a status response's optional player sample
//.
type SampledPlayer struct {
	Username string
	UUID     uuid.UUID
}

// StatusResponse is the embedder-supplied status document.
type StatusResponse struct {
	VersionName    string
	ProtocolID     int32
	Online         int
	Max            int
	Sample         []SampledPlayer
	Description    string
	FaviconPNGBase64 string
}

// LoginDecision is the outcome of an embedding callback that may reject a
// connecting player with a disconnect message.
type LoginDecision struct {
	Reject  bool
	Message string
}

// Hooks is the surface a Connection needs from the owning Server, kept as
// an interface so this package never imports server (server constructs
// Connections, the dependency runs one way).
type Hooks interface {
	Registry() *registry.Registry
	OnlineMode() bool
	KeyPair() KeyPairDecrypter
	GetStatus() StatusResponse
	OnLogin(username string, id uuid.UUID) LoginDecision
	OnJoin(p *dimension.Player) LoginDecision
	DefaultDimension() *dimension.Dimension
	RegisterPlayer(p *dimension.Player)
	UnregisterPlayer(p *dimension.Player)
}

// KeyPairDecrypter is the subset of auth.KeyPair a Connection needs,
// extracted so this package depends on a capability, not the concrete
// auth type, at the Hooks boundary.
type KeyPairDecrypter interface {
	Decrypt(ciphertext []byte) ([]byte, error)
	PublicKeyDER() []byte
}
