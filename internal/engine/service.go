// Package engine implements the Daifugō/Daihinmin game state machine: the
// turn-ordered adjudicator that analyses submissions, validates them
// against the field, applies the special-rule side effects, and runs a
// series of games to completion. It never imports net — see Transport.
package engine

import (
	"math/rand"
	"sort"
	"time"

	"daifugo/internal/cards"
	"daifugo/internal/config"
	"daifugo/internal/eventlog"

	"github.com/rs/zerolog"
)

// Engine holds everything one hosted session needs: the five seated
// players, the current game's state, and the ports it speaks through.
type Engine struct {
	transport  Transport
	log        *eventlog.Logger
	logger     zerolog.Logger
	rng        *rand.Rand
	rules      config.RulesConfig
	players    [NumPlayers]*Player
	state      SessionState
	totalGames int
}

// PlayerInfo is what the handshake hands the engine for one seat.
type PlayerInfo struct {
	Name            string
	ProtocolVersion int
}

// New builds an Engine for a freshly handshaken table of five players,
// seated in id order 0..4.
func New(transport Transport, logger zerolog.Logger, log *eventlog.Logger, rules config.RulesConfig, infos [NumPlayers]PlayerInfo) *Engine {
	e := &Engine{
		transport: transport,
		log:       log,
		logger:    logger,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		rules:     rules,
	}
	for i, info := range infos {
		e.players[i] = newPlayer(i, info.Name, info.ProtocolVersion)
	}
	e.state.Field.Clear()
	return e
}

// RunSession plays numGames games back to back, exchanging cards between
// games per the class-rank rules, and returns each player's accumulated
// point total.
func (e *Engine) RunSession(numGames int) (map[int]int, error) {
	e.totalGames = numGames
	totals := make(map[int]int, NumPlayers)
	names := make([]string, NumPlayers)
	for i, p := range e.players {
		names[i] = p.Name
		totals[i] = 0
	}
	e.log.SessionStart(names)

	for g := 1; g <= numGames; g++ {
		e.state.GameNumber = g
		finishOrder, err := e.playGame()
		if err != nil {
			return totals, err
		}
		e.awardPoints(finishOrder, totals)

		newRanks := make(map[int]string, NumPlayers)
		for _, p := range e.players {
			newRanks[p.ID] = p.ClassRank.String()
		}
		e.log.GameEnd(finishOrder, newRanks)
	}

	ranking := make([]int, 0, NumPlayers)
	for i := range e.players {
		ranking = append(ranking, i)
	}
	sort.Slice(ranking, func(i, j int) bool { return totals[ranking[i]] > totals[ranking[j]] })
	e.log.SessionEnd(numGames, totals, ranking)

	return totals, nil
}

// playGame runs deal -> initial hands -> exchange -> turn loop for one
// game number, returning the finish order.
func (e *Engine) playGame() ([]int, error) {
	for _, p := range e.players {
		p.resetForNewGame()
	}
	e.state.resetForNewGame(e.leaderForGame())

	e.deal()

	if err := e.sendInitialHands(); err != nil {
		return nil, err
	}

	if e.rules.Exchange && e.state.GameNumber > 1 {
		if err := e.doCardExchange(); err != nil {
			return nil, err
		}
	}

	hands := make(map[int]string, NumPlayers)
	ranks := make(map[int]string, NumPlayers)
	for _, p := range e.players {
		hands[p.ID] = eventlog.Notation(p.Hand.Cards())
		ranks[p.ID] = p.ClassRank.String()
	}
	e.log.GameStart(e.state.GameNumber, ranks, hands, e.state.CurrentPlayer)

	return e.runTurnLoop()
}

// sendInitialHands sends every player their opening-hand table, in the
// order sendOrderForGame specifies. Hinmin and Daihinmin are shown their
// pre-extraction holdings even though preExtractStrongest has already run.
func (e *Engine) sendInitialHands() error {
	preSnapshot := map[int]cards.Hand{}
	if e.rules.Exchange && e.state.GameNumber > 1 {
		hinmin, daihinmin := e.findByRank(Hinmin), e.findByRank(Daihinmin)
		preSnapshot[hinmin.ID] = hinmin.Hand.Copy()
		preSnapshot[daihinmin.ID] = daihinmin.Hand.Copy()
		e.preExtractStrongest()
	}

	for _, id := range e.sendOrderForGame() {
		p := e.players[id]
		shown := p.Hand
		if snap, ok := preSnapshot[id]; ok {
			shown = snap
		}
		if err := e.transport.SendTable(id, e.buildInitialHandTable(p, shown)); err != nil {
			return err
		}
	}
	return nil
}
