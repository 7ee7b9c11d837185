package engine

// resolveSennichite randomly assigns finish positions to every player not
// already in order, appending them to it.
func (e *Engine) resolveSennichite(order []int) []int {
	remaining := make([]int, 0, NumPlayers)
	inOrder := make(map[int]bool, len(order))
	for _, id := range order {
		inOrder[id] = true
	}
	for _, p := range e.players {
		if !inOrder[p.ID] {
			remaining = append(remaining, p.ID)
		}
	}
	e.rng.Shuffle(len(remaining), func(i, j int) { remaining[i], remaining[j] = remaining[j], remaining[i] })

	for _, id := range remaining {
		order = append(order, id)
		p := e.players[id]
		p.Finished = true
		p.FinishPosition = len(order) - 1
	}
	return order
}

// awardPoints adds 5 points for 1st place down to 1 point for 5th, and
// rotates every player's class-rank to match the finish order for the next
// game.
func (e *Engine) awardPoints(finishOrder []int, totals map[int]int) {
	for rank, id := range finishOrder {
		totals[id] += 5 - rank
		e.players[id].ClassRank = ClassRank(rank)
	}
}
