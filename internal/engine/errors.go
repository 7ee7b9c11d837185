package engine

import "errors"

// Sentinel errors bubbled out of the engine. Only wire/framing failures
// reach here — validator-level problems are always recovered locally as a
// pass.
var (
	ErrShortRead      = errors.New("engine: short read from player")
	ErrConnectionClosed = errors.New("engine: connection closed")
	ErrUnknownPlayer  = errors.New("engine: unknown player id")
)
