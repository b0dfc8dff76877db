// Package server implements the process-wide Server: the dimension table,
// the RSA keypair, the live connection set, and the
// embedder callback surface. Grounded on ErikPelli-MinecraftLightServer's
// Server (sync.Map of players, a counter mutex, a listen/newPlayer accept
// loop), generalized to own a dimension table and implement conn.Hooks so
// Connection never imports this package.
package server

import (
	"fmt"
	"net"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Penguin-Spy/quasar/auth"
	"github.com/Penguin-Spy/quasar/conn"
	"github.com/Penguin-Spy/quasar/dimension"
	"github.com/Penguin-Spy/quasar/proto"
	"github.com/Penguin-Spy/quasar/registry"
)

// Config holds the embedder-supplied knobs a Server is built from.
type Config struct {
	Address    string
	OnlineMode bool
	Registry   *registry.Registry

	// GetStatus answers the status phase. A nil callback answers with a
	// placeholder status (version "quasar", protocol 772, the live player
	// count).
	GetStatus func() conn.StatusResponse
	// OnLogin is invoked once a login-phase identity is established
	// (synthesized offline or verified online), before a Player exists.
	// A nil callback never rejects.
	OnLogin func(username string, id uuid.UUID) conn.LoginDecision
	// OnJoin is invoked once configuration finishes, with a constructed
	// but not-yet-added Player; it may reject the join. An accepted player
	// always joins DefaultDimension at that dimension's spawn point: there
	// is no way to pick another dimension here, and a position set on p is
	// overwritten. A nil callback never rejects.
	OnJoin func(p *dimension.Player) conn.LoginDecision
}

// Server is one running process-wide server instance.
type Server struct {
	cfg Config
	log zerolog.Logger

	keyPair *auth.KeyPair

	dimMu      sync.Mutex
	dimensions map[proto.Identifier]*dimension.Dimension
	defaultDim *dimension.Dimension

	listener net.Listener

	connMu sync.Mutex
	conns  map[*conn.Connection]struct{}

	playerMu sync.Mutex
	players  map[uuid.UUID]*dimension.Player
}

// New constructs a Server. Call AddDimension at least once before Listen.
func New(cfg Config, log zerolog.Logger) *Server {
	return &Server{
		cfg:        cfg,
		log:        log,
		dimensions: make(map[proto.Identifier]*dimension.Dimension),
		conns:      make(map[*conn.Connection]struct{}),
		players:    make(map[uuid.UUID]*dimension.Player),
	}
}

// AddDimension registers d under its identifier. The first dimension added
// becomes the default.
func (s *Server) AddDimension(d *dimension.Dimension) {
	s.dimMu.Lock()
	defer s.dimMu.Unlock()
	s.dimensions[d.Identifier] = d
	if s.defaultDim == nil {
		s.defaultDim = d
	}
}

// ErrNoDefaultDimension is returned by Listen when no dimension was added.
var ErrNoDefaultDimension = fmt.Errorf("server: no default dimension configured")

// Listen finalizes the registry, requires a default dimension, generates
// the RSA keypair if online, binds the listening socket, and spawns a
// goroutine per accepted connection. It blocks until the listener closes.
func (s *Server) Listen() error {
	if s.cfg.Registry == nil {
		return fmt.Errorf("server: no registry configured")
	}
	if err := s.cfg.Registry.Finalize(); err != nil {
		return err
	}

	s.dimMu.Lock()
	defaultDim := s.defaultDim
	s.dimMu.Unlock()
	if defaultDim == nil {
		return ErrNoDefaultDimension
	}

	if s.cfg.OnlineMode {
		kp, err := auth.GenerateKeyPair()
		if err != nil {
			return err
		}
		s.keyPair = kp
	}

	listener, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return err
	}
	s.listener = listener

	s.log.Info().Str("address", s.cfg.Address).Bool("online_mode", s.cfg.OnlineMode).Msg("listening")

	for {
		socket, err := listener.Accept()
		if err != nil {
			return nil // Close() closed the listener; not a failure
		}
		go s.serve(socket)
	}
}

func (s *Server) serve(socket net.Conn) {
	c := conn.New(socket, s, s.log.With().Str("remote", socket.RemoteAddr().String()).Logger())

	s.connMu.Lock()
	s.conns[c] = struct{}{}
	s.connMu.Unlock()

	c.Serve()

	s.connMu.Lock()
	delete(s.conns, c)
	s.connMu.Unlock()
}

// Close stops accepting connections, disconnects every live connection
// with a server_shutdown reason.
func (s *Server) Close() error {
	if s.listener != nil {
		_ = s.listener.Close()
	}

	s.connMu.Lock()
	live := make([]*conn.Connection, 0, len(s.conns))
	for c := range s.conns {
		live = append(live, c)
	}
	s.connMu.Unlock()

	for _, c := range live {
		c.Shutdown(`{"translate":"multiplayer.disconnect.server_shutdown"}`)
	}
	return nil
}
