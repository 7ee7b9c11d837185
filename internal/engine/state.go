package engine

import (
	"daifugo/internal/cards"
	"daifugo/internal/validator"
)

// ClassRank is a player's standing from the previous game's finish order;
// it determines card-exchange obligations for the next game.
type ClassRank int

const (
	Daifugo ClassRank = iota
	Fugo
	Heimin
	Hinmin
	Daihinmin
)

func (c ClassRank) String() string {
	switch c {
	case Daifugo:
		return "daifugo"
	case Fugo:
		return "fugo"
	case Heimin:
		return "heimin"
	case Hinmin:
		return "hinmin"
	case Daihinmin:
		return "daihinmin"
	default:
		return "unknown"
	}
}

// ExchangeCount is the conceptual (signed) number of cards this class gives
// (positive) or receives (negative) during the between-games exchange.
func (c ClassRank) ExchangeCount() int {
	switch c {
	case Daifugo:
		return 2
	case Fugo:
		return 1
	case Hinmin:
		return -1
	case Daihinmin:
		return -2
	default:
		return 0
	}
}

const NumPlayers = 5

// Player is one of the five seats the arbiter hosts.
type Player struct {
	ID              int
	Name            string
	ProtocolVersion int
	Seat            int
	ClassRank       ClassRank
	PassedThisTrick bool
	Finished        bool
	FinishPosition  int // -1 until finished
	Hand            cards.Hand
}

func newPlayer(id int, name string, protocolVersion int) *Player {
	return &Player{
		ID:              id,
		Name:            name,
		ProtocolVersion: protocolVersion,
		Seat:            id,
		ClassRank:       Heimin,
		FinishPosition:  -1,
		Hand:            cards.NewHand(),
	}
}

func (p *Player) resetForNewGame() {
	p.PassedThisTrick = false
	p.Finished = false
	p.FinishPosition = -1
	p.Hand = cards.NewHand()
}

func (p *Player) resetTurnState() {
	p.PassedThisTrick = false
}

// SessionState is the table-wide game state the engine threads through a
// single game within the session.
type SessionState struct {
	GameNumber        int
	TurnNumber        int
	CurrentPlayer     int
	LastPlayerID      int
	IsRevolution      bool
	IsElevenBack      bool
	IsJokerSingle     bool
	ConsecutivePasses int
	FinishedCount     int
	Field             validator.Field
}

// EffectiveRevolution combines the persistent revolution flag with the
// transient 11-back toggle.
func (s SessionState) EffectiveRevolution() bool {
	return s.IsRevolution != s.IsElevenBack
}

// resetForNewRound clears per-trick state after a universal pass or an
// 8-cut. 11-back and the joker-single flag are transient and die here too.
func (s *SessionState) resetForNewRound() {
	s.Field.Clear()
	s.ConsecutivePasses = 0
	s.IsJokerSingle = false
	s.IsElevenBack = false
}

// resetForNewGame clears everything except the game number, which the
// caller advances separately.
func (s *SessionState) resetForNewGame(leader int) {
	game := s.GameNumber
	*s = SessionState{GameNumber: game, CurrentPlayer: leader, LastPlayerID: -1}
	s.Field.Clear()
}
