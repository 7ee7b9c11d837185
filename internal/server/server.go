// Package server is the TCP adapter that implements engine.Transport: it
// owns the net.Listener and the five net.Conn values, and is the only
// arbiter-side package that imports net (internal/agent dials on its own
// for the reference client). This is the concrete half of
// the port/adapter seam internal/engine defines — structurally the same
// role internal/netx plays for a peer-to-peer network in the retrieved
// poker corpus, narrowed here to a serial accept loop because the
// Daifugō protocol is strictly one-client-at-a-time.
package server

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"time"

	"daifugo/internal/engine"
	"daifugo/internal/wire"

	"github.com/rs/zerolog"
)

// Server hosts exactly engine.NumPlayers TCP connections, handshaken
// serially, and then serves as the Transport for a single Engine session.
type Server struct {
	listener         net.Listener
	conns            [engine.NumPlayers]net.Conn
	readers          [engine.NumPlayers]*bufio.Reader
	logger           zerolog.Logger
	handshakeTimeout time.Duration
}

// Listen opens the TCP listener on addr (e.g. ":42485").
func Listen(addr string, handshakeTimeout time.Duration, logger zerolog.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("server: listen %s: %w", addr, err)
	}
	return &Server{listener: ln, logger: logger, handshakeTimeout: handshakeTimeout}, nil
}

// AcceptAll blocks until engine.NumPlayers clients have connected and
// handshaken, serially, assigning seats 0..4 in arrival order. It returns
// each seat's PlayerInfo for engine.New.
func (s *Server) AcceptAll() ([engine.NumPlayers]engine.PlayerInfo, error) {
	var infos [engine.NumPlayers]engine.PlayerInfo
	for seat := 0; seat < engine.NumPlayers; seat++ {
		conn, err := s.listener.Accept()
		if err != nil {
			return infos, fmt.Errorf("server: accept seat %d: %w", seat, err)
		}
		if tc, ok := conn.(*net.TCPConn); ok {
			_ = tc.SetNoDelay(true)
		}
		reader := bufio.NewReader(conn)
		info, err := s.handshake(seat, conn, reader)
		if err != nil {
			conn.Close()
			return infos, fmt.Errorf("server: handshake seat %d: %w", seat, err)
		}
		s.conns[seat] = conn
		s.readers[seat] = reader
		infos[seat] = info
		if err := s.sendU32(seat, uint32(seat)); err != nil {
			return infos, fmt.Errorf("server: assign seat %d: %w", seat, err)
		}
		s.logger.Info().Int("seat", seat).Str("name", info.Name).Int("protocol", info.ProtocolVersion).Msg("player joined")
	}
	return infos, nil
}

// Close tears down every connection and the listener in one pass; it is
// safe to call even if AcceptAll returned early with an error.
func (s *Server) Close() error {
	for _, c := range s.conns {
		if c != nil {
			c.Close()
		}
	}
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}

func (s *Server) readFrame(seat int) ([]byte, error) {
	buf := make([]byte, wire.FrameSize)
	n, err := io.ReadFull(s.readers[seat], buf)
	if err != nil {
		if n == 0 {
			return nil, engine.ErrConnectionClosed
		}
		return nil, fmt.Errorf("%w: %v", engine.ErrShortRead, err)
	}
	return buf, nil
}
