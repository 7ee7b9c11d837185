package server

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"time"

	"daifugo/internal/engine"
	"daifugo/internal/wire"
)

// handshake waits up to s.handshakeTimeout for a profile table on conn. A
// client that sends nothing in time is treated as a legacy client: a
// synthetic name and the legacy protocol version.
func (s *Server) handshake(seat int, conn net.Conn, reader *bufio.Reader) (engine.PlayerInfo, error) {
	conn.SetReadDeadline(time.Now().Add(s.handshakeTimeout))
	defer conn.SetReadDeadline(time.Time{})

	buf := make([]byte, wire.FrameSize)
	n, err := io.ReadFull(reader, buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return engine.PlayerInfo{
				Name:            fmt.Sprintf("Player%d", seat),
				ProtocolVersion: wire.LegacyProtocolVersion,
			}, nil
		}
		if n == 0 {
			return engine.PlayerInfo{}, engine.ErrConnectionClosed
		}
		return engine.PlayerInfo{}, fmt.Errorf("%w: %v", engine.ErrShortRead, err)
	}

	t, err := wire.DecodeTable(buf)
	if err != nil {
		return engine.PlayerInfo{}, err
	}
	return engine.PlayerInfo{
		Name:            decodeName(t),
		ProtocolVersion: int(t.Get(0, 0)),
	}, nil
}

// decodeName reads the NUL-terminated ASCII name from row 1, columns
// 0..NameCols-1.
func decodeName(t *wire.Table) string {
	b := make([]byte, 0, wire.NameCols)
	for i := 0; i < wire.NameCols; i++ {
		v := t.Get(wire.NameRow, i)
		if v == 0 {
			break
		}
		b = append(b, byte(v))
	}
	return string(b)
}
