// Package analyzer classifies a submitted card multiset into a typed play
// (empty/single/joker-single/group/ladder), shared unchanged between the
// arbiter's validator and the reference agent's strategy.
package analyzer

import (
	"sort"

	"daifugo/internal/cards"
	"daifugo/internal/wire"
)

// CardType enumerates the shapes a submission can take.
type CardType int

const (
	Empty CardType = iota
	Single
	JokerSingle
	Group
	Ladder
)

// Error enumerates the ways a submission can fail classification. Any non-
// None error makes IsValid false, so the validator rejects it.
// LadderTooShort still carries the Ladder type and count it was found with.
type Error int

const (
	None Error = iota
	MultipleJokers
	InvalidPosition
	LadderTooShort
	// InvalidSuit has no Analyze path that produces it: Suit is a 4-valued
	// enum decoded only from the presence rows dedicated to real suits, so
	// there is no runtime suit value that falls outside Spade..Club for a
	// group's suit-pattern to leak. Kept so the error enum stays a complete
	// enumeration of the wire format's historical error codes.
	InvalidSuit
	CountMismatch
)

// Analysis is the result of classifying a submission.
type Analysis struct {
	BaseRank         int
	Count            int
	SuitPattern      int
	Type             CardType
	Error            Error
	JokerSubstituted bool
}

func (a Analysis) IsValid() bool { return a.Error == None }
func (a Analysis) IsPass() bool  { return a.Type == Empty }

func (a Analysis) MatchesSuit(otherPattern int) bool { return a.SuitPattern == otherPattern }

// jokerSingleRank is the comparison rank assigned to a lone joker: strictly
// above rank 2 (13), so it only loses to the Spade-3 override, never to a
// higher single.
const jokerSingleRank = int(cards.RankTwo) + 1

// Analyze classifies realCards (the literal cards physically present,
// including the Joker if played as itself) together with jokerPositions
// (positions where the Joker substitutes for a missing card in a group or
// ladder).
func Analyze(realCards []cards.Card, jokerPositions map[wire.Position]bool, revolution bool) Analysis {
	cardCount := len(realCards)
	if cardCount == 0 {
		return Analysis{BaseRank: -1, Count: 0, SuitPattern: 0, Type: Empty}
	}

	hasLiteralJoker := false
	var normalCards []cards.Card
	for _, c := range realCards {
		if c.IsJoker {
			hasLiteralJoker = true
			continue
		}
		normalCards = append(normalCards, c)
	}
	hasSubstitution := len(jokerPositions) > 0

	// The deck holds exactly one joker; a submission claiming to use it
	// both as itself and as a substitute in the same play is malformed.
	if hasLiteralJoker && hasSubstitution {
		return Analysis{BaseRank: -1, Count: cardCount, SuitPattern: 0, Type: Empty, Error: MultipleJokers}
	}

	// A substitute position that collides with a real card in the same
	// submission is ambiguous.
	for pos := range jokerPositions {
		for _, c := range normalCards {
			if c.Suit == pos.Suit && c.Rank == pos.Rank {
				return Analysis{BaseRank: -1, Count: cardCount, SuitPattern: 0, Type: Empty, Error: InvalidPosition}
			}
		}
	}

	if cardCount == 1 && hasLiteralJoker {
		return Analysis{BaseRank: jokerSingleRank, Count: 1, SuitPattern: 0, Type: JokerSingle}
	}

	if cardCount == 1 && !hasSubstitution {
		c := normalCards[0]
		return Analysis{BaseRank: int(c.Rank), Count: 1, SuitPattern: 1 << uint(c.Suit), Type: Single}
	}

	return analyzeMultiple(normalCards, jokerPositions, hasLiteralJoker || hasSubstitution, revolution)
}

func analyzeMultiple(normalCards []cards.Card, jokerPositions map[wire.Position]bool, hasJoker, revolution bool) Analysis {
	type pos struct {
		suit cards.Suit
		rank cards.Rank
	}
	var all []pos
	for _, c := range normalCards {
		all = append(all, pos{c.Suit, c.Rank})
	}
	for p := range jokerPositions {
		all = append(all, pos{p.Suit, p.Rank})
	}
	if len(all) == 0 {
		return Analysis{BaseRank: -1, Count: 0, SuitPattern: 0, Type: Empty}
	}

	sort.Slice(all, func(i, j int) bool { return all[i].rank < all[j].rank })

	suits := map[cards.Suit]bool{}
	ranks := make([]cards.Rank, 0, len(all))
	for _, p := range all {
		suits[p.suit] = true
		ranks = append(ranks, p.rank)
	}

	if len(suits) == 1 {
		isLadder := true
		for i := 1; i < len(ranks); i++ {
			if ranks[i] != ranks[i-1]+1 {
				isLadder = false
				break
			}
		}
		if isLadder {
			count := len(all)
			suitPattern := 1 << uint(all[0].suit)
			if count < 3 {
				return Analysis{
					BaseRank:    int(ranks[0]),
					Count:       count,
					SuitPattern: suitPattern,
					Type:        Ladder,
					Error:       LadderTooShort,
				}
			}
			base := int(ranks[0])
			if revolution {
				base = int(ranks[len(ranks)-1])
			}
			return Analysis{
				BaseRank:         base,
				Count:            count,
				SuitPattern:      suitPattern,
				Type:             Ladder,
				JokerSubstituted: hasJoker,
			}
		}
	}

	sameRank := true
	for _, r := range ranks {
		if r != ranks[0] {
			sameRank = false
			break
		}
	}
	if sameRank {
		suitPattern := 0
		for _, p := range all {
			suitPattern |= 1 << uint(p.suit)
		}
		return Analysis{
			BaseRank:         int(ranks[0]),
			Count:            len(all),
			SuitPattern:      suitPattern,
			Type:             Group,
			JokerSubstituted: hasJoker,
		}
	}

	return Analysis{BaseRank: -1, Count: len(all), SuitPattern: 0, Type: Empty, Error: CountMismatch}
}

// ContainsRank answers whether an accepted play includes the given rank,
// used by the engine to detect 8-cut and 11-back triggers. For ladders the
// answer considers the whole contiguous span; for singles/groups it is a
// direct base-rank comparison.
func ContainsRank(a Analysis, rank cards.Rank, revolution bool) bool {
	if a.Type != Ladder {
		return a.BaseRank == int(rank)
	}
	var low, high int
	if revolution {
		low = a.BaseRank - a.Count + 1
		high = a.BaseRank
	} else {
		low = a.BaseRank
		high = a.BaseRank + a.Count - 1
	}
	return low <= int(rank) && int(rank) <= high
}
