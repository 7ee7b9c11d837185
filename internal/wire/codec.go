package wire

import "daifugo/internal/cards"

// CardRowJoker is the joker row index (row 4).
const CardRowJoker = 4

// suitRow maps a Suit to its presence-matrix row (0..3).
func suitRow(s cards.Suit) int { return int(s) }

// rankCol maps a Rank (1..13) directly to its column; columns run 1..13,
// column 0 is unused by the card rows.
func rankCol(r cards.Rank) int { return int(r) }

// Position identifies a (suit, rank) cell in the card-presence rows.
type Position struct {
	Suit cards.Suit
	Rank cards.Rank
}

// PlaceHeld writes a player's full hand into rows 0-4 in held form: a
// normal card sets its (suit, rank) cell to 1; the joker, if held, sets
// [4][1] to 2.
func PlaceHeld(t *Table, hand cards.Hand) {
	for c := range hand {
		if c.IsJoker {
			t.SetU(CardRowJoker, 1, 2)
			continue
		}
		t.SetU(suitRow(c.Suit), rankCol(c.Rank), 1)
	}
}

// ExtractHeld reads rows 0-4 in held form and reconstructs the hand they
// describe. Used by the reference agent to recover its own hand from a
// table the arbiter sent it.
func ExtractHeld(t *Table) cards.Hand {
	h := cards.NewHand()
	for s := cards.Spade; s <= cards.Club; s++ {
		for r := cards.RankThree; r <= cards.RankTwo; r++ {
			if t.Get(suitRow(s), rankCol(r)) != 0 {
				h.Add(cards.NewCard(s, r))
			}
		}
	}
	if t.Get(CardRowJoker, 1) == 2 {
		h.Add(cards.Joker)
	}
	return h
}

// PlaceSubmission writes a played combination into rows 0-4 in submitted
// form: a real card sets its cell to 1; a position where the joker
// substitutes for that card sets the cell to 2 instead; the joker played
// as itself (joker-single, or as a member of a group/ladder in its own
// right) sets [4][1] to 2.
func PlaceSubmission(t *Table, realCards []cards.Card, substitutions []Position, jokerAsSelf bool) {
	for _, c := range realCards {
		if c.IsJoker {
			continue
		}
		t.SetU(suitRow(c.Suit), rankCol(c.Rank), 1)
	}
	for _, p := range substitutions {
		t.SetU(suitRow(p.Suit), rankCol(p.Rank), 2)
	}
	if jokerAsSelf {
		t.SetU(CardRowJoker, 1, 2)
	}
}

// ExtractSubmission reads rows 0-4 in submitted form. It returns the real
// (non-substituted) cards present — including the literal Joker card if it
// was played as itself — plus the set of positions where the joker stands
// in for a missing card in a group or ladder. This mirrors the original
// analyzer's (cards, joker_positions) input pair.
func ExtractSubmission(t *Table) (realCards []cards.Card, jokerPositions map[Position]bool) {
	jokerPositions = make(map[Position]bool)
	for s := cards.Spade; s <= cards.Club; s++ {
		for r := cards.RankThree; r <= cards.RankTwo; r++ {
			switch t.Get(suitRow(s), rankCol(r)) {
			case 1:
				realCards = append(realCards, cards.NewCard(s, r))
			case 2:
				jokerPositions[Position{Suit: s, Rank: r}] = true
			}
		}
	}
	if t.Get(CardRowJoker, 1) == 2 {
		realCards = append(realCards, cards.Joker)
	}
	return realCards, jokerPositions
}
