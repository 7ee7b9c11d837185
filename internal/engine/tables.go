package engine

import (
	"daifugo/internal/cards"
	"daifugo/internal/eventlog"
	"daifugo/internal/wire"
)

// buildInitialHandTable is sent to recipient once per game. shownHand is the
// hand to display: Daifugō/Fugō see their post-extraction hand, Hinmin/
// Daihinmin see their pre-extraction snapshot.
func (e *Engine) buildInitialHandTable(recipient *Player, shownHand cards.Hand) *wire.Table {
	t := &wire.Table{}
	wire.PlaceHeld(t, shownHand)
	t.SetU(wire.ControlRow, wire.ColPhase, 1)
	t.SetU(wire.ControlRow, wire.ColExchangeCount, wire.ExchangeCountCell(recipient.ClassRank.ExchangeCount()))
	t.SetU(wire.ControlRow, wire.ColCurrentPlayer, uint32(e.state.CurrentPlayer))
	e.fillMetadataRow(t)
	return t
}

// buildTurnHandTable is sent to every player at the top of each turn
// iteration: the recipient's own hand plus the control-row flags (onset,
// 11-back, revolution, lock), with the is-your-turn bit set only for the
// current player. The field's cards travel in buildFieldTable instead.
func (e *Engine) buildTurnHandTable(recipient *Player) *wire.Table {
	t := &wire.Table{}
	wire.PlaceHeld(t, recipient.Hand)
	t.SetU(wire.ControlRow, wire.ColPhase, 0)
	if recipient.ID == e.state.CurrentPlayer {
		t.SetU(wire.ControlRow, wire.ColIsYourTurn, 1)
	}
	e.fillControlRow(t)
	e.fillMetadataRow(t)
	return t
}

// buildFieldTable is the broadcast-only snapshot of the trick, sent to every
// player after each accepted or rejected submission. It carries no player's
// cards; the metadata row still holds every seat's hand count.
func (e *Engine) buildFieldTable() *wire.Table {
	t := &wire.Table{}
	jokerAsSelf := false
	for _, c := range e.state.Field.Cards {
		if c.IsJoker {
			jokerAsSelf = true
			break
		}
	}
	wire.PlaceSubmission(t, e.state.Field.Cards, nil, jokerAsSelf)
	e.fillControlRow(t)
	e.fillMetadataRow(t)
	return t
}

func (e *Engine) fillControlRow(t *wire.Table) {
	t.SetU(wire.ControlRow, wire.ColCurrentPlayer, uint32(e.state.CurrentPlayer))
	if e.state.Field.IsEmpty() {
		t.SetU(wire.ControlRow, wire.ColOnset, 1)
	}
	if e.state.IsElevenBack {
		t.SetU(wire.ControlRow, wire.ColElevenBack, 1)
	}
	if e.state.IsRevolution {
		t.SetU(wire.ControlRow, wire.ColRevolution, 1)
	}
	if e.state.Field.LockActive {
		t.SetU(wire.ControlRow, wire.ColLock, 1)
	}
}

func (e *Engine) fillMetadataRow(t *wire.Table) {
	for _, p := range e.players {
		t.SetU(wire.MetadataRow, wire.HandCountBase+p.ID, uint32(p.Hand.Count()))
		t.SetU(wire.MetadataRow, wire.ClassRankBase+p.ID, uint32(p.ClassRank))
		t.SetU(wire.MetadataRow, wire.SeatBase+p.ID, uint32(p.Seat))
	}
}

// handsNotation renders every player's current hand as card notation, for
// event-log records.
func (e *Engine) handsNotation() map[int]string {
	out := make(map[int]string, NumPlayers)
	for _, p := range e.players {
		out[p.ID] = eventlog.Notation(p.Hand.Cards())
	}
	return out
}
