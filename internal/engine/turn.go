package engine

import (
	"daifugo/internal/analyzer"
	"daifugo/internal/cards"
	"daifugo/internal/eventlog"
	"daifugo/internal/validator"
	"daifugo/internal/wire"
)

// sennichiteThreshold is the number of consecutive passes that forces a
// stalemate game-end.
const sennichiteThreshold = 20

// runTurnLoop drives one game from the current leader until either four
// players have finished, or sennichite fires. It returns the finish order
// (player ids, first to last).
func (e *Engine) runTurnLoop() ([]int, error) {
	var finishOrder []int
	gameEnded := false
	sennichite := false

	for e.state.FinishedCount < 4 && !gameEnded {
		e.state.TurnNumber++
		cur := e.players[e.state.CurrentPlayer]

		if cur.Finished {
			e.advancePlayer()
			continue
		}
		if cur.PassedThisTrick && !e.state.Field.IsEmpty() {
			e.advancePlayer()
			continue
		}

		if err := e.sendTurnHands(); err != nil {
			return nil, err
		}

		t, err := e.transport.ReadTable(cur.ID)
		if err != nil {
			return nil, err
		}
		realCards, jokerPositions := wire.ExtractSubmission(t)
		revolution := e.state.EffectiveRevolution()
		a := analyzer.Analyze(realCards, jokerPositions, revolution)
		result := validator.Validate(a, cur.Hand, realCards, jokerPositions, e.state.Field, revolution, e.state.IsJokerSingle && e.rules.Spade3Joker)

		roundCleared := false
		if result.Accepted && !result.IsPass {
			e.applyAcceptedPlay(cur, realCards, jokerPositions, a)
			// An 8-cut has already cleared the field inside applyAcceptedPlay.
			roundCleared = e.state.Field.IsEmpty()
			if err := e.transport.SendCode(cur.ID, wire.ResponseAccept); err != nil {
				return nil, err
			}
			e.log.Turn(cur.ID, "play", realCards, cardTypeName(a.Type),
				eventlog.Notation(e.state.Field.Cards), e.handsNotation(), e.flagsSnapshot())

			if cur.Hand.IsEmpty() {
				cur.Finished = true
				cur.FinishPosition = e.state.FinishedCount
				finishOrder = append(finishOrder, cur.ID)
				e.state.FinishedCount++
				e.log.Special("player_finish", map[string]any{"player": cur.ID, "position": len(finishOrder)})
			}
		} else {
			if !result.Accepted {
				e.logger.Warn().Int("player", cur.ID).Str("reason", result.Reason).Msg("submission rejected, treated as pass")
			}
			cur.PassedThisTrick = true
			e.state.ConsecutivePasses++
			if err := e.transport.SendCode(cur.ID, wire.ResponseReject); err != nil {
				return nil, err
			}
			e.log.Turn(cur.ID, "pass", nil, "empty",
				eventlog.Notation(e.state.Field.Cards), e.handsNotation(), e.flagsSnapshot())
		}

		if err := e.transport.BroadcastTable(e.buildFieldTable()); err != nil {
			return nil, err
		}

		if e.checkAllPassed() {
			e.clearRound()
			roundCleared = true
			e.log.Special("field_clear", map[string]any{"reason": "all_passed", "current_player": e.state.CurrentPlayer})
		}

		if e.rules.Sennichite && e.state.ConsecutivePasses >= sennichiteThreshold {
			e.logger.Warn().Msg("sennichite reached, resolving remaining positions randomly")
			finishOrder = e.resolveSennichite(finishOrder)
			sennichite = true
			gameEnded = true
		}

		if e.state.FinishedCount >= 4 {
			gameEnded = true
			if err := e.transport.BroadcastCode(e.gameEndCode()); err != nil {
				return nil, err
			}
		}

		if !gameEnded {
			if err := e.transport.BroadcastCode(wire.GameContinue); err != nil {
				return nil, err
			}
			// clearRound has already handed the lead to the right player.
			if !roundCleared {
				e.advancePlayer()
			}
		}
	}

	// The fifth, still-unfinished player auto-finishes last.
	if e.state.FinishedCount == 4 {
		for _, p := range e.players {
			if !p.Finished {
				p.Finished = true
				p.FinishPosition = 4
				finishOrder = append(finishOrder, p.ID)
				break
			}
		}
	}

	// Sennichite ends the game without having gone through the
	// finished-count>=4 branch above, so its game-end broadcast happens
	// here instead, once, after the fifth-player fixup.
	if sennichite {
		if err := e.transport.BroadcastCode(e.gameEndCode()); err != nil {
			return nil, err
		}
	}

	return finishOrder, nil
}

func (e *Engine) gameEndCode() uint32 {
	if e.state.GameNumber == e.totalGames {
		return wire.AllGamesEnd
	}
	return wire.GameEnd
}

func (e *Engine) sendTurnHands() error {
	for _, p := range e.players {
		if err := e.transport.SendTable(p.ID, e.buildTurnHandTable(p)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) advancePlayer() {
	for attempts := 0; attempts < NumPlayers; attempts++ {
		e.state.CurrentPlayer = (e.state.CurrentPlayer + 1) % NumPlayers
		if !e.players[e.state.CurrentPlayer].Finished {
			return
		}
	}
}

// checkAllPassed reports whether every unfinished player except the last
// one to play has passed this trick — the round-clearing condition. The
// exemption is tied to LastPlayerID specifically: if that player has since
// finished (or there is no last player), there is no one left to exempt,
// so every remaining active player must have passed.
func (e *Engine) checkAllPassed() bool {
	lastStillActive := e.state.LastPlayerID >= 0 && !e.players[e.state.LastPlayerID].Finished

	active, passed := 0, 0
	for _, p := range e.players {
		if p.Finished {
			continue
		}
		active++
		if p.PassedThisTrick {
			passed++
		}
	}
	if lastStillActive {
		return passed >= active-1
	}
	return passed >= active
}

// clearRound resets the trick after a universal pass or an 8-cut, handing
// the lead back to whoever played last — skipping forward if that player
// has since finished the game, since a finished player cannot hold the
// lead.
func (e *Engine) clearRound() {
	e.state.resetForNewRound()
	for _, p := range e.players {
		p.resetTurnState()
	}
	if e.state.LastPlayerID >= 0 {
		e.state.CurrentPlayer = e.state.LastPlayerID
		if e.players[e.state.CurrentPlayer].Finished {
			e.advancePlayer()
		}
	}
}

// applyAcceptedPlay removes the played cards from the player's hand,
// installs the new field, and runs the side-effect rules in order.
func (e *Engine) applyAcceptedPlay(p *Player, realCards []cards.Card, jokerPositions map[wire.Position]bool, a analyzer.Analysis) {
	for _, c := range realCards {
		if c.IsJoker {
			p.Hand.Remove(cards.Joker)
			continue
		}
		if jokerPositions[wire.Position{Suit: c.Suit, Rank: c.Rank}] {
			p.Hand.Remove(cards.Joker)
			continue
		}
		p.Hand.Remove(c)
	}
	// Substituted positions never appear in realCards; the joker standing in
	// for them is what leaves the hand.
	if len(jokerPositions) > 0 {
		p.Hand.Remove(cards.Joker)
	}

	prevSuitPattern := e.state.Field.SuitPattern
	prevWasEmpty := e.state.Field.IsEmpty()
	prevLockActive := e.state.Field.LockActive
	prevLockCount := e.state.Field.LockCount

	e.state.Field = validator.Field{
		Cards:       realCards,
		Type:        a.Type,
		Count:       a.Count,
		BaseRank:    a.BaseRank,
		SuitPattern: a.SuitPattern,
		LockActive:  prevLockActive,
		LockCount:   prevLockCount,
	}

	e.state.LastPlayerID = p.ID
	e.state.ConsecutivePasses = 0

	e.applySideEffects(a, p.ID)
	e.updateLock(a, prevWasEmpty, prevSuitPattern)
}

// applySideEffects runs the joker-single, 8-cut, revolution and 11-back
// rules, in that order.
func (e *Engine) applySideEffects(a analyzer.Analysis, lastPlayer int) {
	e.state.IsJokerSingle = a.Type == analyzer.JokerSingle

	if e.rules.EightCut && analyzer.ContainsRank(a, cards.RankEight, e.state.EffectiveRevolution()) {
		e.log.Special("eight_stop", map[string]any{"player": lastPlayer})
		// A full round clear, not just Field.Clear(): the round-clearing
		// rule fires on 8-cut too. Since last-player is the player who just
		// played, clearRound hands the lead straight back to them — the
		// same player remains leader.
		e.clearRound()
	}

	if e.rules.Revolution {
		isRevolutionPlay := (a.Type == analyzer.Group && a.Count >= 4) ||
			(a.Type == analyzer.Ladder && a.Count >= 5)
		if isRevolutionPlay {
			e.state.IsRevolution = !e.state.IsRevolution
			e.log.Special("revolution", map[string]any{"player": lastPlayer, "is_revolution": e.state.IsRevolution})
		}
	}

	if e.rules.ElevenBack && analyzer.ContainsRank(a, cards.RankJack, e.state.EffectiveRevolution()) {
		e.state.IsElevenBack = !e.state.IsElevenBack
		e.log.Special("eleven_back", map[string]any{"player": lastPlayer, "is_eleven_back": e.state.IsElevenBack})
	}
}

// updateLock implements shibari: lock activates only after two consecutive
// accepted plays share an identical suit-pattern, compared against the
// field's suit-pattern as it stood BEFORE this play (prevSuitPattern), not
// the pattern this play just installed.
func (e *Engine) updateLock(a analyzer.Analysis, prevWasEmpty bool, prevSuitPattern int) {
	if !e.rules.Lock {
		return
	}
	if prevWasEmpty {
		e.state.Field.LockCount = 1
		e.state.Field.LockActive = false
		return
	}
	if a.SuitPattern == prevSuitPattern {
		e.state.Field.LockCount++
		if e.state.Field.LockCount >= 2 {
			e.state.Field.LockActive = true
			e.log.Special("lock", map[string]any{"player": e.state.LastPlayerID})
		}
		return
	}
	e.state.Field.LockCount = 1
	e.state.Field.LockActive = false
}

func (e *Engine) flagsSnapshot() map[string]any {
	return map[string]any{
		"revolution":   e.state.IsRevolution,
		"eleven_back":  e.state.IsElevenBack,
		"joker_single": e.state.IsJokerSingle,
		"lock_active":  e.state.Field.LockActive,
	}
}

func cardTypeName(t analyzer.CardType) string {
	switch t {
	case analyzer.Single:
		return "single"
	case analyzer.JokerSingle:
		return "joker_single"
	case analyzer.Group:
		return "group"
	case analyzer.Ladder:
		return "ladder"
	default:
		return "empty"
	}
}
