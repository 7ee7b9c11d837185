package server

import (
	"bufio"
	"net"
	"testing"
	"time"

	"daifugo/internal/wire"

	"github.com/rs/zerolog"
)

func TestHandshakeDecodesProfileTable(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	s := &Server{logger: zerolog.Nop(), handshakeTimeout: time.Second}
	reader := bufio.NewReader(serverConn)

	go func() {
		profile := &wire.Table{}
		profile.SetU(0, 0, wire.ProtocolVersion)
		name := "Alice"
		for i, ch := range name {
			profile.SetU(wire.NameRow, i, uint32(ch))
		}
		clientConn.Write(wire.EncodeTable(profile))
	}()

	info, err := s.handshake(0, serverConn, reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Name != "Alice" {
		t.Fatalf("expected name Alice, got %q", info.Name)
	}
	if info.ProtocolVersion != wire.ProtocolVersion {
		t.Fatalf("expected protocol version %d, got %d", wire.ProtocolVersion, info.ProtocolVersion)
	}
}

func TestHandshakeFallsBackToLegacyOnTimeout(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	s := &Server{logger: zerolog.Nop(), handshakeTimeout: 30 * time.Millisecond}
	reader := bufio.NewReader(serverConn)

	info, err := s.handshake(2, serverConn, reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Name != "Player2" {
		t.Fatalf("expected legacy name Player2, got %q", info.Name)
	}
	if info.ProtocolVersion != wire.LegacyProtocolVersion {
		t.Fatalf("expected legacy protocol version, got %d", info.ProtocolVersion)
	}
}
