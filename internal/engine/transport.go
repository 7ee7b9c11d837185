package engine

import "daifugo/internal/wire"

// Transport is the port the engine speaks through. internal/server is the
// concrete TCP adapter; the engine package itself never imports net, so it
// can be driven and asserted against in tests without a socket. This plays
// the same role the reference architecture's match-runtime dispatcher
// plays for its authoritative game loop: a single seam between domain
// logic and the transport that carries it.
type Transport interface {
	// SendTable writes a table to exactly one player.
	SendTable(player int, t *wire.Table) error
	// ReadTable blocks until a full table frame arrives from player.
	ReadTable(player int) (*wire.Table, error)
	// SendCode writes a single response/game-state u32 code to one player.
	SendCode(player int, code uint32) error
	// BroadcastTable writes a table to every connected player, in player-id
	// order.
	BroadcastTable(t *wire.Table) error
	// BroadcastCode writes a single u32 code to every connected player, in
	// player-id order.
	BroadcastCode(code uint32) error
}
