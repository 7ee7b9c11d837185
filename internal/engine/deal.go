package engine

import "daifugo/internal/cards"

// deal shuffles a fresh 53-card deck and distributes it round-robin. Game 1
// starts from a uniform-random seat; later games start from the current
// Daifugō's seat.
func (e *Engine) deal() {
	deck := cards.Shuffle(e.rng, cards.NewDeck())

	startSeat := 0
	if e.state.GameNumber == 1 {
		startSeat = e.rng.Intn(NumPlayers)
	} else {
		startSeat = e.playerBySeat(e.daifugoID()).Seat
	}

	hands := cards.DealRoundRobin(deck, NumPlayers, startSeat)
	for i, h := range hands {
		e.players[i].Hand = h
	}
}

func (e *Engine) daifugoID() int {
	for _, p := range e.players {
		if p.ClassRank == Daifugo {
			return p.ID
		}
	}
	return 0
}

func (e *Engine) playerBySeat(id int) *Player { return e.players[id] }

// leaderForGame is the player who opens the first trick of the game.
func (e *Engine) leaderForGame() int {
	if e.state.GameNumber == 1 {
		return 0
	}
	return e.daifugoID()
}

// sendOrderForGame returns player ids in the order initial hands should be
// sent: rank order (Daifugō..Daihinmin) from game 2 on, so cooperating
// clients can coordinate by arrival order; plain id order in game 1, before
// any class ranks have been earned.
func (e *Engine) sendOrderForGame() []int {
	if e.state.GameNumber == 1 {
		order := make([]int, NumPlayers)
		for i := range order {
			order[i] = i
		}
		return order
	}
	order := make([]int, 0, NumPlayers)
	for rank := Daifugo; rank <= Daihinmin; rank++ {
		for _, p := range e.players {
			if p.ClassRank == rank {
				order = append(order, p.ID)
			}
		}
	}
	return order
}
