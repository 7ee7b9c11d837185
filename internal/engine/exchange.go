package engine

import (
	"daifugo/internal/validator"
	"daifugo/internal/wire"
)

func (e *Engine) findByRank(rank ClassRank) *Player {
	for _, p := range e.players {
		if p.ClassRank == rank {
			return p
		}
	}
	return nil
}

// preExtractStrongest silently credits Daifugō/Fugō with the strongest
// cards taken from Daihinmin/Hinmin before initial hands go out. Strength
// uses the between-games (non-revolution) ordering.
func (e *Engine) preExtractStrongest() {
	if !e.rules.Exchange || e.state.GameNumber == 1 {
		return
	}
	daifugo, fugo := e.findByRank(Daifugo), e.findByRank(Fugo)
	hinmin, daihinmin := e.findByRank(Hinmin), e.findByRank(Daihinmin)

	strongest2 := daihinmin.Hand.Strongest(2, e.state.IsRevolution)
	daihinmin.Hand.RemoveAll(strongest2)
	daifugo.Hand.AddAll(strongest2)

	strongest1 := hinmin.Hand.Strongest(1, e.state.IsRevolution)
	hinmin.Hand.RemoveAll(strongest1)
	fugo.Hand.AddAll(strongest1)
}

// doCardExchange reads the Daifugō's and Fugō's chosen gifts to Daihinmin
// and Hinmin respectively, auto-correcting an invalid selection to the
// giver's weakest n cards.
func (e *Engine) doCardExchange() error {
	if !e.rules.Exchange || e.state.GameNumber == 1 {
		return nil
	}
	daifugo, daihinmin := e.findByRank(Daifugo), e.findByRank(Daihinmin)
	fugo, hinmin := e.findByRank(Fugo), e.findByRank(Hinmin)

	if err := e.exchangeFromTo(daifugo, daihinmin, 2); err != nil {
		return err
	}
	return e.exchangeFromTo(fugo, hinmin, 1)
}

func (e *Engine) exchangeFromTo(giver, receiver *Player, n int) error {
	t, err := e.transport.ReadTable(giver.ID)
	if err != nil {
		return err
	}
	selected, _ := wire.ExtractSubmission(t)

	if !validator.ValidateExchange(selected, n, giver.Hand).Accepted {
		e.logger.Warn().Int("player", giver.ID).Int("expected", n).
			Msg("invalid exchange selection, substituting weakest cards")
		selected = giver.Hand.Weakest(n, e.state.IsRevolution)
	}

	giver.Hand.RemoveAll(selected)
	receiver.Hand.AddAll(selected)
	e.log.Exchange(giver.ID, receiver.ID, selected, e.handsNotation())
	return nil
}
