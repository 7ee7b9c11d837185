package cards

import "sort"

// Hand is a set of distinct cards. The deck has exactly 53 cards (52 plus
// one Joker) so a hand never holds duplicates.
type Hand map[Card]struct{}

// NewHand builds a hand from the given cards, deduplicating.
func NewHand(cards ...Card) Hand {
	h := make(Hand, len(cards))
	for _, c := range cards {
		h[c] = struct{}{}
	}
	return h
}

func (h Hand) Add(c Card)      { h[c] = struct{}{} }
func (h Hand) Remove(c Card)   { delete(h, c) }
func (h Hand) Contains(c Card) bool {
	_, ok := h[c]
	return ok
}
func (h Hand) Count() int    { return len(h) }
func (h Hand) IsEmpty() bool { return len(h) == 0 }

func (h Hand) HasJoker() bool {
	return h.Contains(Joker)
}

// Cards returns the hand's contents as a slice, in no particular order.
func (h Hand) Cards() []Card {
	out := make([]Card, 0, len(h))
	for c := range h {
		out = append(out, c)
	}
	return out
}

// Copy returns an independent copy of the hand.
func (h Hand) Copy() Hand {
	out := make(Hand, len(h))
	for c := range h {
		out[c] = struct{}{}
	}
	return out
}

// RemoveAll removes every card in cards from h. Used after an accepted
// play, and when moving cards during the card exchange.
func (h Hand) RemoveAll(cards []Card) {
	for _, c := range cards {
		h.Remove(c)
	}
}

// AddAll adds every card in cards to h.
func (h Hand) AddAll(cards []Card) {
	for _, c := range cards {
		h.Add(c)
	}
}

// SortedByStrength returns a copy of cards ordered weakest-first under the
// given revolution flag. It backs Weakest and Strongest, which the card
// exchange and the reference agent use.
func SortedByStrength(cards []Card, revolution bool) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Strength(revolution) < out[j].Strength(revolution)
	})
	return out
}

// Weakest returns the n weakest cards in the hand under revolution. If the
// hand holds fewer than n cards, all of them are returned.
func (h Hand) Weakest(n int, revolution bool) []Card {
	sorted := SortedByStrength(h.Cards(), revolution)
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// Strongest returns the n strongest cards in the hand under revolution.
func (h Hand) Strongest(n int, revolution bool) []Card {
	sorted := SortedByStrength(h.Cards(), revolution)
	if n > len(sorted) {
		n = len(sorted)
	}
	out := make([]Card, n)
	copy(out, sorted[len(sorted)-n:])
	return out
}
