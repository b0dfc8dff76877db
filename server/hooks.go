package server

import (
	"github.com/google/uuid"

	"github.com/Penguin-Spy/quasar/conn"
	"github.com/Penguin-Spy/quasar/dimension"
	"github.com/Penguin-Spy/quasar/proto"
	"github.com/Penguin-Spy/quasar/registry"
)

// The methods in this file make *Server satisfy conn.Hooks.

func (s *Server) Registry() *registry.Registry { return s.cfg.Registry }

func (s *Server) OnlineMode() bool { return s.cfg.OnlineMode }

func (s *Server) KeyPair() conn.KeyPairDecrypter {
	if s.keyPair == nil {
		return nil
	}
	return s.keyPair
}

func (s *Server) GetStatus() conn.StatusResponse {
	if s.cfg.GetStatus == nil {
		return conn.StatusResponse{VersionName: "quasar", ProtocolID: 772, Max: 0, Online: s.PlayerCount()}
	}
	return s.cfg.GetStatus()
}

func (s *Server) OnLogin(username string, id uuid.UUID) conn.LoginDecision {
	if s.cfg.OnLogin == nil {
		return conn.LoginDecision{}
	}
	return s.cfg.OnLogin(username, id)
}

func (s *Server) OnJoin(p *dimension.Player) conn.LoginDecision {
	if s.cfg.OnJoin == nil {
		return conn.LoginDecision{}
	}
	return s.cfg.OnJoin(p)
}

func (s *Server) DefaultDimension() *dimension.Dimension {
	s.dimMu.Lock()
	defer s.dimMu.Unlock()
	return s.defaultDim
}

// Dimension looks up a registered dimension by identifier.
func (s *Server) Dimension(id string) (*dimension.Dimension, bool) {
	s.dimMu.Lock()
	defer s.dimMu.Unlock()
	d, ok := s.dimensions[proto.Identifier(id)]
	return d, ok
}

func (s *Server) RegisterPlayer(p *dimension.Player) {
	s.playerMu.Lock()
	defer s.playerMu.Unlock()
	s.players[p.UUID] = p
}

func (s *Server) UnregisterPlayer(p *dimension.Player) {
	s.playerMu.Lock()
	defer s.playerMu.Unlock()
	delete(s.players, p.UUID)
}

// PlayerCount returns the number of currently registered players.
func (s *Server) PlayerCount() int {
	s.playerMu.Lock()
	defer s.playerMu.Unlock()
	return len(s.players)
}
