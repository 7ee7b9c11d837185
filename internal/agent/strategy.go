// Package agent implements the reference playing strategy: a simple
// heuristic bot that gives away its weakest cards on exchange, leads with
// its longest ladder or largest group before falling back to its weakest
// single, and follows with the cheapest legal beat it can find.
package agent

import (
	"sort"

	"daifugo/internal/analyzer"
	"daifugo/internal/cards"
	"daifugo/internal/validator"
	"daifugo/internal/wire"
)

// Submission is what the strategy hands back to the client loop: the real
// cards to place (including a literal Joker if played as itself) and any
// positions where the joker substitutes for a missing card. An empty
// Submission (no cards, no substitutions) is a pass.
type Submission struct {
	Cards         []cards.Card
	Substitutions []wire.Position
}

func (s Submission) IsPass() bool { return len(s.Cards) == 0 && len(s.Substitutions) == 0 }

func pass() Submission { return Submission{} }

// Strategy is stateless: every decision is a pure function of the hand and
// the state the arbiter has just broadcast.
type Strategy struct{}

// ChooseExchange gives away the weakest n cards in hand.
func (Strategy) ChooseExchange(hand cards.Hand, n int, revolution bool) []cards.Card {
	return hand.Weakest(n, revolution)
}

// ChooseLead picks an opening play when the field is empty: the longest
// ladder if one exists, else the largest same-rank group, else the
// weakest single. Strength already flips under revolution, so "weakest"
// and "prefer highest-valued under revolution" fall out of the same
// comparison.
func (Strategy) ChooseLead(hand cards.Hand, revolution bool) Submission {
	if ladder, ok := bestLadder(hand, revolution); ok {
		return ladder
	}
	if group, ok := bestGroup(hand, revolution); ok {
		return group
	}
	if single, ok := weakestSingle(hand, revolution); ok {
		return Submission{Cards: []cards.Card{single}}
	}
	if hand.HasJoker() {
		return Submission{Cards: []cards.Card{cards.Joker}}
	}
	return pass()
}

// ChooseFollow picks the cheapest legal beat of field, or passes if none
// exists. effectiveRevolution and fieldIsJokerSingle mirror the session
// state the engine would be tracking.
func (Strategy) ChooseFollow(hand cards.Hand, field validator.Field, effectiveRevolution, fieldIsJokerSingle bool) Submission {
	if fieldIsJokerSingle {
		if hand.Contains(cards.NewCard(cards.Spade, cards.RankThree)) {
			return Submission{Cards: []cards.Card{cards.NewCard(cards.Spade, cards.RankThree)}}
		}
		return pass()
	}

	switch field.Type {
	case analyzer.Single:
		if best, ok := weakestBeatingSingle(hand, field, effectiveRevolution); ok {
			return Submission{Cards: []cards.Card{best}}
		}
		if hand.HasJoker() {
			return Submission{Cards: []cards.Card{cards.Joker}}
		}
		return pass()
	case analyzer.Group:
		return weakestBeatingGroup(hand, field, effectiveRevolution)
	case analyzer.Ladder:
		return weakestBeatingLadder(hand, field, effectiveRevolution)
	default:
		return pass()
	}
}

func weakestSingle(hand cards.Hand, revolution bool) (cards.Card, bool) {
	var best cards.Card
	found := false
	for _, c := range hand.Cards() {
		if c.IsJoker {
			continue
		}
		if !found || c.Strength(revolution) < best.Strength(revolution) {
			best, found = c, true
		}
	}
	return best, found
}

func weakestBeatingSingle(hand cards.Hand, field validator.Field, revolution bool) (cards.Card, bool) {
	var best cards.Card
	found := false
	for _, c := range hand.Cards() {
		if c.IsJoker {
			continue
		}
		if field.LockActive && (1<<uint(c.Suit)) != field.SuitPattern {
			continue
		}
		if !beatsRank(int(c.Rank), field.BaseRank, revolution) {
			continue
		}
		if !found || c.Strength(revolution) < best.Strength(revolution) {
			best, found = c, true
		}
	}
	return best, found
}

// beatsRank answers whether candidateRank beats fieldRank under the
// session's strict-inequality rule for the current revolution mode.
func beatsRank(candidateRank, fieldRank int, revolution bool) bool {
	if revolution {
		return candidateRank < fieldRank
	}
	return candidateRank > fieldRank
}

// rankCounts tallies how many real (non-joker) cards of each rank the
// hand holds.
func rankCounts(hand cards.Hand) map[cards.Rank][]cards.Card {
	out := make(map[cards.Rank][]cards.Card)
	for _, c := range hand.Cards() {
		if c.IsJoker {
			continue
		}
		out[c.Rank] = append(out[c.Rank], c)
	}
	return out
}

func bestGroup(hand cards.Hand, revolution bool) (Submission, bool) {
	byRank := rankCounts(hand)
	var bestRank cards.Rank
	var bestCards []cards.Card
	found := false
	for rank, cs := range byRank {
		if len(cs) < 2 {
			continue
		}
		if !found || len(cs) > len(bestCards) ||
			(len(cs) == len(bestCards) && cards.NewCard(cards.Spade, rank).Strength(revolution) < cards.NewCard(cards.Spade, bestRank).Strength(revolution)) {
			bestRank, bestCards, found = rank, cs, true
		}
	}
	if !found {
		return Submission{}, false
	}
	return Submission{Cards: append([]cards.Card(nil), bestCards...)}, true
}

func weakestBeatingGroup(hand cards.Hand, field validator.Field, revolution bool) Submission {
	byRank := rankCounts(hand)
	var best []cards.Card
	found := false
	for rank, cs := range byRank {
		if len(cs) < field.Count {
			continue
		}
		candidate := cs[:field.Count]
		if field.LockActive && suitPattern(candidate) != field.SuitPattern {
			continue
		}
		if !beatsRank(int(rank), field.BaseRank, revolution) {
			continue
		}
		if !found || candidate[0].Strength(revolution) < best[0].Strength(revolution) {
			best, found = append([]cards.Card(nil), candidate...), true
		}
	}
	if !found {
		return pass()
	}
	return Submission{Cards: best}
}

func suitPattern(cs []cards.Card) int {
	p := 0
	for _, c := range cs {
		p |= 1 << uint(c.Suit)
	}
	return p
}

// suitRuns finds every maximal run of consecutive ranks held (as real,
// non-joker cards) within one suit, sorted ascending by rank.
func suitRuns(hand cards.Hand, suit cards.Suit) [][]cards.Card {
	present := map[cards.Rank]cards.Card{}
	for _, c := range hand.Cards() {
		if !c.IsJoker && c.Suit == suit {
			present[c.Rank] = c
		}
	}
	ranks := make([]cards.Rank, 0, len(present))
	for r := range present {
		ranks = append(ranks, r)
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] < ranks[j] })

	var runs [][]cards.Card
	var cur []cards.Card
	for i, r := range ranks {
		if i > 0 && r != ranks[i-1]+1 {
			runs = append(runs, cur)
			cur = nil
		}
		cur = append(cur, present[r])
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	return runs
}

// bestLadder finds the longest available same-suit run of length >= 3.
// With the joker in hand it also tries, per suit, bridging the first
// one-rank gap between two runs, and takes that bridged ladder whenever it
// is longer than the best found so far.
func bestLadder(hand cards.Hand, revolution bool) (Submission, bool) {
	var best []cards.Card
	var bestSub []wire.Position
	found := false

	for suit := cards.Spade; suit <= cards.Club; suit++ {
		for _, run := range suitRuns(hand, suit) {
			if len(run) >= 3 && (!found || len(run) > len(best) ||
				(len(run) == len(best) && run[0].Strength(revolution) < best[0].Strength(revolution))) {
				best, bestSub, found = run, nil, true
			}
		}
		if hand.HasJoker() {
			if run, gap, ok := bridgedRun(hand, suit); ok && len(run)+1 >= 3 &&
				(!found || len(run)+1 > len(best)) {
				best, bestSub, found = run, []wire.Position{{Suit: suit, Rank: gap}}, true
			}
		}
	}
	if !found {
		return Submission{}, false
	}
	return Submission{Cards: append([]cards.Card(nil), best...), Substitutions: bestSub}, true
}

// bridgedRun looks for two runs in suit separated by exactly one missing
// rank, returning the combined card list (gap excluded) and the gap rank.
func bridgedRun(hand cards.Hand, suit cards.Suit) ([]cards.Card, cards.Rank, bool) {
	runs := suitRuns(hand, suit)
	for i := 0; i+1 < len(runs); i++ {
		a, b := runs[i], runs[i+1]
		lastA := a[len(a)-1].Rank
		firstB := b[0].Rank
		if firstB == lastA+2 {
			combined := append(append([]cards.Card(nil), a...), b...)
			return combined, lastA + 1, true
		}
	}
	return nil, 0, false
}

func weakestBeatingLadder(hand cards.Hand, field validator.Field, revolution bool) Submission {
	var best []cards.Card
	found := false
	for suit := cards.Spade; suit <= cards.Club; suit++ {
		for _, run := range suitRuns(hand, suit) {
			if len(run) < field.Count {
				continue
			}
			for start := 0; start+field.Count <= len(run); start++ {
				candidate := run[start : start+field.Count]
				if field.LockActive && (1<<uint(suit)) != field.SuitPattern {
					continue
				}
				base := int(candidate[0].Rank)
				if revolution {
					base = int(candidate[len(candidate)-1].Rank)
				}
				if !beatsRank(base, field.BaseRank, revolution) {
					continue
				}
				if !found || candidate[0].Strength(revolution) < best[0].Strength(revolution) {
					best, found = append([]cards.Card(nil), candidate...), true
				}
			}
		}
	}
	if !found {
		return pass()
	}
	return Submission{Cards: best}
}
