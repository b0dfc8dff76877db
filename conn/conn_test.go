package conn

import (
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Penguin-Spy/quasar/dimension"
	"github.com/Penguin-Spy/quasar/proto"
	"github.com/Penguin-Spy/quasar/registry"
)

// fakeHooks is a minimal conn.Hooks stand-in so tests can drive a
// Connection without a real Server.
type fakeHooks struct {
	reg        *registry.Registry
	onlineMode bool
	status     StatusResponse
}

func (h *fakeHooks) Registry() *registry.Registry                { return h.reg }
func (h *fakeHooks) OnlineMode() bool                            { return h.onlineMode }
func (h *fakeHooks) KeyPair() KeyPairDecrypter                    { return nil }
func (h *fakeHooks) GetStatus() StatusResponse                   { return h.status }
func (h *fakeHooks) OnLogin(string, uuid.UUID) LoginDecision      { return LoginDecision{} }
func (h *fakeHooks) OnJoin(*dimension.Player) LoginDecision       { return LoginDecision{} }
func (h *fakeHooks) DefaultDimension() *dimension.Dimension       { return nil }
func (h *fakeHooks) RegisterPlayer(*dimension.Player)             {}
func (h *fakeHooks) UnregisterPlayer(*dimension.Player)           {}

func newTestHooks() *fakeHooks {
	return &fakeHooks{
		reg: registry.New(),
		status: StatusResponse{
			VersionName: "1.21.7",
			ProtocolID:  772,
			Max:         20,
			Description: "test server",
		},
	}
}

// readPacket pulls one framed packet directly off a raw net.Conn, bypassing
// Connection so the test can see exactly what was written to the wire.
func readPacket(t *testing.T, sock net.Conn) (id int32, body *proto.Reader) {
	t.Helper()
	r := proto.NewReader(nil)
	buf := make([]byte, 4096)
	for {
		frame, ok, err := proto.ExtractFrame(r)
		require.NoError(t, err)
		if ok {
			return frame.ID, frame.Body
		}
		n, err := sock.Read(buf)
		require.NoError(t, err)
		r.Feed(buf[:n])
	}
}

func writePacket(t *testing.T, sock net.Conn, id int32, w *proto.Writer) {
	t.Helper()
	_, err := sock.Write(w.Frame(id))
	require.NoError(t, err)
}

func TestHandshakeStatusPing(t *testing.T) {
	client, srv := net.Pipe()
	defer client.Close()

	hooks := newTestHooks()
	c := New(srv, hooks, zerolog.Nop())
	go c.Serve()

	hs := proto.NewWriter()
	hs.VarInt(protocolVersion)
	hs.String("localhost")
	hs.UnsignedShort(25565)
	hs.VarInt(1) // next_state: status
	writePacket(t, client, packetIntention, hs)

	writePacket(t, client, packetStatusRequest, proto.NewWriter())
	id, body := readPacket(t, client)
	require.Equal(t, packetStatusResponse, id)
	doc, err := body.String()
	require.NoError(t, err)
	require.Contains(t, doc, "test server")

	ping := proto.NewWriter()
	ping.Long(42)
	writePacket(t, client, packetPingRequest, ping)
	id, body = readPacket(t, client)
	require.Equal(t, packetPongResponse, id)
	payload, err := body.Read(8)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 42}, payload)
}

func TestHandshakeOutdatedLoginClientDisconnects(t *testing.T) {
	client, srv := net.Pipe()
	defer client.Close()

	hooks := newTestHooks()
	c := New(srv, hooks, zerolog.Nop())
	go c.Serve()

	hs := proto.NewWriter()
	hs.VarInt(protocolVersion - 1)
	hs.String("localhost")
	hs.UnsignedShort(25565)
	hs.VarInt(2) // next_state: login
	writePacket(t, client, packetIntention, hs)

	id, body := readPacket(t, client)
	require.Equal(t, packetLoginDisconnect, id)
	reason, err := body.String()
	require.NoError(t, err)
	require.Contains(t, reason, "outdated_client")
}

func TestOfflineLoginCompletes(t *testing.T) {
	client, srv := net.Pipe()
	defer client.Close()

	hooks := newTestHooks()
	hooks.onlineMode = false
	c := New(srv, hooks, zerolog.Nop())
	go c.Serve()

	hs := proto.NewWriter()
	hs.VarInt(protocolVersion)
	hs.String("localhost")
	hs.UnsignedShort(25565)
	hs.VarInt(2)
	writePacket(t, client, packetIntention, hs)

	hello := proto.NewWriter()
	hello.String("Steve")
	hello.UUID(uuid.New())
	writePacket(t, client, packetHelloServerbound, hello)

	id, body := readPacket(t, client)
	require.Equal(t, packetLoginFinished, id)
	gotUUID, err := body.UUID()
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, gotUUID)
	name, err := body.String()
	require.NoError(t, err)
	require.Equal(t, "Steve", name)

	require.Eventually(t, func() bool {
		return c.state == StateLoginWaitAck
	}, time.Second, time.Millisecond)
}

func TestConfigurationOutdatedClientDisconnects(t *testing.T) {
	client, srv := net.Pipe()
	defer client.Close()

	hooks := newTestHooks()
	hooks.onlineMode = false
	c := New(srv, hooks, zerolog.Nop())
	go c.Serve()

	hs := proto.NewWriter()
	hs.VarInt(protocolVersion)
	hs.String("localhost")
	hs.UnsignedShort(25565)
	hs.VarInt(2)
	writePacket(t, client, packetIntention, hs)

	hello := proto.NewWriter()
	hello.String("Steve")
	hello.UUID(uuid.New())
	writePacket(t, client, packetHelloServerbound, hello)
	readPacket(t, client) // login_finished

	writePacket(t, client, packetLoginAcknowledged, proto.NewWriter())
	for i := 0; i < 5; i++ { // brand, report details, server links, enabled features, known packs
		readPacket(t, client)
	}

	packs := proto.NewWriter()
	packs.VarInt(1)
	packs.String("minecraft")
	packs.String("core")
	packs.String("not-the-right-version")
	writePacket(t, client, packetSelectKnownPacksServerbound, packs)

	id, body := readPacket(t, client)
	require.Equal(t, packetDisconnectConfiguration, id)
	reason, err := body.String()
	require.NoError(t, err)
	require.Contains(t, reason, "outdated_client")
}

func TestAngleToByteWrapsNegative(t *testing.T) {
	require.Equal(t, byte(0), angleToByte(0))
	require.Equal(t, byte(128), angleToByte(180))
	require.InDelta(t, 0, int(angleToByte(360)), 1)
	require.Equal(t, byte(192), angleToByte(-90))
	require.Equal(t, byte(255), angleToByte(-1))
}

func TestNormalizeYaw(t *testing.T) {
	require.InDelta(t, 270.0, float64(normalizeYaw(-90)), 0.001)
	require.InDelta(t, 10.0, float64(normalizeYaw(370)), 0.001)
}

func TestClampPitch(t *testing.T) {
	require.Equal(t, float32(90), clampPitch(200))
	require.Equal(t, float32(-90), clampPitch(-200))
	require.Equal(t, float32(45), clampPitch(45))
}
