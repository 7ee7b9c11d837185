package server

import (
	"fmt"

	"daifugo/internal/engine"
	"daifugo/internal/wire"
)

// Server implements engine.Transport.
var _ engine.Transport = (*Server)(nil)

func (s *Server) SendTable(player int, t *wire.Table) error {
	if _, err := s.conns[player].Write(wire.EncodeTable(t)); err != nil {
		return fmt.Errorf("server: send table to player %d: %w", player, err)
	}
	return nil
}

func (s *Server) ReadTable(player int) (*wire.Table, error) {
	buf, err := s.readFrame(player)
	if err != nil {
		return nil, err
	}
	return wire.DecodeTable(buf)
}

func (s *Server) SendCode(player int, code uint32) error {
	return s.sendU32(player, code)
}

func (s *Server) sendU32(player int, v uint32) error {
	if _, err := s.conns[player].Write(wire.EncodeU32(v)); err != nil {
		return fmt.Errorf("server: send code to player %d: %w", player, err)
	}
	return nil
}

func (s *Server) BroadcastTable(t *wire.Table) error {
	for i := 0; i < engine.NumPlayers; i++ {
		if err := s.SendTable(i, t); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) BroadcastCode(code uint32) error {
	for i := 0; i < engine.NumPlayers; i++ {
		if err := s.SendCode(i, code); err != nil {
			return err
		}
	}
	return nil
}
