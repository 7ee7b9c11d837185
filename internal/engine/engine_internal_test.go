package engine

import (
	"math/rand"
	"testing"

	"daifugo/internal/cards"
	"daifugo/internal/wire"

	"github.com/rs/zerolog"
)

func newTestEngine() *Engine {
	e := &Engine{logger: zerolog.Nop(), rng: rand.New(rand.NewSource(1))}
	for i := 0; i < NumPlayers; i++ {
		e.players[i] = newPlayer(i, "p", 0)
	}
	e.state.Field.Clear()
	e.state.LastPlayerID = -1
	return e
}

func TestAdvancePlayerSkipsFinished(t *testing.T) {
	e := newTestEngine()
	e.players[1].Finished = true
	e.players[2].Finished = true
	e.state.CurrentPlayer = 0
	e.advancePlayer()
	if e.state.CurrentPlayer != 3 {
		t.Fatalf("expected player 3, got %d", e.state.CurrentPlayer)
	}
}

func TestCheckAllPassedRequiresActiveMinusOne(t *testing.T) {
	e := newTestEngine()
	e.state.LastPlayerID = 4
	for i := 0; i < 4; i++ {
		e.players[i].PassedThisTrick = true
	}
	if !e.checkAllPassed() {
		t.Fatal("expected all-passed once 4 of 5 active players have passed")
	}
}

func TestCheckAllPassedExcludesFinishedPlayers(t *testing.T) {
	e := newTestEngine()
	e.players[4].Finished = true
	e.state.LastPlayerID = 3
	for i := 0; i < 3; i++ {
		e.players[i].PassedThisTrick = true
	}
	if !e.checkAllPassed() {
		t.Fatal("expected all-passed once 3 of 4 active players have passed")
	}
}

func TestCheckAllPassedRequiresEveryoneOnceLastPlayerFinishes(t *testing.T) {
	// 5 seats; player 0 already finished earlier. Player 1 just played a
	// winning card that also emptied their hand, finishing the game (but
	// the game continues since fewer than 4 players are finished).
	// Players 2 and 3 already passed this trick; player 4 has not.
	e := newTestEngine()
	e.players[0].Finished = true
	e.players[1].Finished = true
	e.state.LastPlayerID = 1
	e.players[2].PassedThisTrick = true
	e.players[3].PassedThisTrick = true

	if e.checkAllPassed() {
		t.Fatal("expected no clear: player 4 has not had a chance to respond to the winning play")
	}

	e.players[4].PassedThisTrick = true
	if !e.checkAllPassed() {
		t.Fatal("expected all-passed once every remaining active player has passed")
	}
}

func TestClearRoundReturnsLeadToLastPlayer(t *testing.T) {
	e := newTestEngine()
	e.state.LastPlayerID = 2
	e.state.CurrentPlayer = 4
	e.state.Field.Cards = []cards.Card{cards.NewCard(cards.Spade, cards.RankFive)}
	e.clearRound()
	if e.state.CurrentPlayer != 2 {
		t.Fatalf("expected lead to return to player 2, got %d", e.state.CurrentPlayer)
	}
	if !e.state.Field.IsEmpty() {
		t.Fatal("expected field cleared")
	}
}

func TestClearRoundSkipsFinishedLastPlayer(t *testing.T) {
	e := newTestEngine()
	e.state.LastPlayerID = 2
	e.players[2].Finished = true
	e.state.CurrentPlayer = 4
	e.clearRound()
	if e.state.CurrentPlayer == 2 {
		t.Fatal("expected lead to skip the finished last player")
	}
}

func TestResolveSennichiteFillsRemainingPositionsWithoutDuplicates(t *testing.T) {
	e := newTestEngine()
	order := []int{3, 1}
	// Players already in the finish order are finished, as in the turn loop.
	for _, id := range order {
		e.players[id].Finished = true
	}
	finished := e.resolveSennichite(order)
	if len(finished) != NumPlayers {
		t.Fatalf("expected %d players in finish order, got %d", NumPlayers, len(finished))
	}
	seen := map[int]bool{}
	for _, id := range finished {
		if seen[id] {
			t.Fatalf("player %d appears twice in finish order", id)
		}
		seen[id] = true
	}
	for _, p := range e.players {
		if !p.Finished {
			t.Fatalf("player %d should be marked finished after sennichite resolution", p.ID)
		}
	}
}

func TestAwardPointsAssignsClassRanksByFinishOrder(t *testing.T) {
	e := newTestEngine()
	totals := map[int]int{0: 0, 1: 0, 2: 0, 3: 0, 4: 0}
	e.awardPoints([]int{4, 3, 2, 1, 0}, totals)
	if totals[4] != 5 || totals[0] != 1 {
		t.Fatalf("unexpected totals: %v", totals)
	}
	if e.players[4].ClassRank != Daifugo || e.players[0].ClassRank != Daihinmin {
		t.Fatalf("unexpected class ranks: daifugo=%v daihinmin=%v", e.players[4].ClassRank, e.players[0].ClassRank)
	}
}

func TestEffectiveRevolutionTogglesWithElevenBack(t *testing.T) {
	var s SessionState
	if s.EffectiveRevolution() {
		t.Fatal("expected false by default")
	}
	s.IsRevolution = true
	if !s.EffectiveRevolution() {
		t.Fatal("expected true under revolution alone")
	}
	s.IsElevenBack = true
	if s.EffectiveRevolution() {
		t.Fatal("expected revolution and eleven-back to cancel out")
	}
}

// exchangeFakeTransport answers every ReadTable call with a fixed response,
// regardless of which seat asked.
type exchangeFakeTransport struct {
	response *wire.Table
}

func (f *exchangeFakeTransport) SendTable(int, *wire.Table) error        { return nil }
func (f *exchangeFakeTransport) ReadTable(int) (*wire.Table, error)      { return f.response, nil }
func (f *exchangeFakeTransport) SendCode(int, uint32) error              { return nil }
func (f *exchangeFakeTransport) BroadcastTable(*wire.Table) error        { return nil }
func (f *exchangeFakeTransport) BroadcastCode(uint32) error              { return nil }

func TestExchangeFromToFallsBackToWeakestOnInvalidSelection(t *testing.T) {
	e := newTestEngine()
	giver, receiver := e.players[0], e.players[1]
	giver.Hand.AddAll([]cards.Card{
		cards.NewCard(cards.Spade, cards.RankThree),
		cards.NewCard(cards.Heart, cards.RankFour),
	})

	// The response claims a card (Spade Ace) the giver never held.
	resp := &wire.Table{}
	wire.PlaceSubmission(resp, []cards.Card{cards.NewCard(cards.Spade, cards.RankAce)}, nil, false)
	e.transport = &exchangeFakeTransport{response: resp}

	if err := e.exchangeFromTo(giver, receiver, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if giver.Hand.Count() != 1 {
		t.Fatalf("expected giver to have 1 card left, got %d", giver.Hand.Count())
	}
	if receiver.Hand.Count() != 1 {
		t.Fatalf("expected receiver to gain 1 card, got %d", receiver.Hand.Count())
	}
	// Weakest(1, false) of {S3, H4} is S3.
	if !receiver.Hand.Contains(cards.NewCard(cards.Spade, cards.RankThree)) {
		t.Fatal("expected receiver to get the giver's weakest card, not the invalid selection")
	}
}
