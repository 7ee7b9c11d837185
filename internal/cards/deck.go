package cards

import "math/rand"

// NewDeck returns the full 53-card deck: 52 normal cards plus the Joker.
func NewDeck() []Card {
	deck := make([]Card, 0, 53)
	for s := Spade; s <= Club; s++ {
		for r := RankThree; r <= RankTwo; r++ {
			deck = append(deck, NewCard(s, r))
		}
	}
	deck = append(deck, Joker)
	return deck
}

// Shuffle returns a shuffled copy of deck using rng.
func Shuffle(rng *rand.Rand, deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// DealRoundRobin distributes deck round-robin starting at startSeat, walking
// seats in order 0..n-1, wrapping. Hand sizes differ by at most one card.
func DealRoundRobin(deck []Card, numPlayers, startSeat int) []Hand {
	hands := make([]Hand, numPlayers)
	for i := range hands {
		hands[i] = NewHand()
	}
	for i, c := range deck {
		seat := (startSeat + i) % numPlayers
		hands[seat].Add(c)
	}
	return hands
}
