// Package validator decides whether a classified submission may be played
// against the current field, given the player's hand and the active rule
// flags.
package validator

import (
	"daifugo/internal/analyzer"
	"daifugo/internal/cards"
	"daifugo/internal/wire"
)

// Field is the trick currently heading the table: the cards that led it,
// their classification, and the lock/shibari bookkeeping.
type Field struct {
	Cards       []cards.Card
	Type        analyzer.CardType
	Count       int
	BaseRank    int
	SuitPattern int
	LockActive  bool
	LockCount   int
}

func (f Field) IsEmpty() bool { return f.Type == analyzer.Empty }

// Clear resets the field to empty. Invariant: type=empty implies count=0,
// base-rank=-1, lock-active=false.
func (f *Field) Clear() {
	*f = Field{BaseRank: -1}
}

// Result is the validator's verdict on a submission.
type Result struct {
	Accepted bool
	IsPass   bool
	Reason   string
}

func accept() Result           { return Result{Accepted: true} }
func pass() Result             { return Result{Accepted: true, IsPass: true} }
func reject(reason string) Result { return Result{Accepted: false, Reason: reason} }

// Validate runs the 10-step decision procedure. submittedReal and
// jokerPositions are the same pair ExtractSubmission produced; they let the
// hand-containment check tell "this card is really in hand" apart from
// "this position is a joker standing in for a card that needn't be held".
func Validate(
	a analyzer.Analysis,
	hand cards.Hand,
	submittedReal []cards.Card,
	jokerPositions map[wire.Position]bool,
	field Field,
	effectiveRevolution bool,
	fieldIsJokerSingle bool,
) Result {
	// 1. Pass.
	if a.IsPass() {
		return pass()
	}

	// 2. Analyzer error: reject. This includes ladder-too-short — a ladder
	// of length 2 is never valid, and that holds unconditionally, including
	// when leading an empty field, so the check cannot be deferred past
	// step 4.
	if !a.IsValid() {
		return reject("invalid card combination")
	}

	// 3. Hand containment.
	if !handContains(hand, submittedReal, jokerPositions) {
		return reject("player does not have the submitted cards")
	}

	// 4. Leading an empty field: anything valid is accepted.
	if field.IsEmpty() {
		return accept()
	}

	return compareWithField(a, field, effectiveRevolution, fieldIsJokerSingle)
}

func handContains(hand cards.Hand, submitted []cards.Card, jokerPositions map[wire.Position]bool) bool {
	if len(jokerPositions) > 0 && !hand.HasJoker() {
		return false
	}
	for _, c := range submitted {
		if c.IsJoker {
			continue
		}
		if jokerPositions[wire.Position{Suit: c.Suit, Rank: c.Rank}] {
			continue
		}
		if !hand.Contains(c) {
			return false
		}
	}
	return true
}

func compareWithField(a analyzer.Analysis, field Field, effectiveRevolution, fieldIsJokerSingle bool) Result {
	// 5. Joker-single is only legal atop a single.
	if a.Type == analyzer.JokerSingle {
		if field.Type == analyzer.Single {
			return accept()
		}
		return reject("joker single can only be played on a single")
	}

	// 6. Spade-3 override: always legal atop an outstanding joker single.
	if fieldIsJokerSingle &&
		a.Type == analyzer.Single &&
		a.BaseRank == int(cards.RankThree) &&
		a.SuitPattern == 1<<uint(cards.Spade) {
		return accept()
	}

	// 7. Count and type must match the field.
	if a.Count != field.Count {
		return reject("card count mismatch")
	}
	if a.Type != field.Type {
		return reject("card type mismatch")
	}

	// 8. Lock/shibari: suit pattern must match exactly.
	if field.LockActive && a.SuitPattern != field.SuitPattern {
		return reject("lock active: must play the same suit pattern")
	}

	// 9. Strict rank comparison. A ladder's base rank is already the
	// lowest (normal) or highest (revolution) rank of its run, so the same
	// inequality applies uniformly to singles, groups and ladders.
	if effectiveRevolution {
		if a.BaseRank >= field.BaseRank {
			return reject("submitted play is not stronger (revolution)")
		}
	} else {
		if a.BaseRank <= field.BaseRank {
			return reject("submitted play is not stronger")
		}
	}

	return accept()
}

// ValidateExchange checks a card-exchange selection: exactly expectedCount
// cards, all present in hand.
func ValidateExchange(selected []cards.Card, expectedCount int, hand cards.Hand) Result {
	if len(selected) != expectedCount {
		return reject("must exchange exactly the expected number of cards")
	}
	for _, c := range selected {
		if !hand.Contains(c) {
			return reject("selected card not in hand")
		}
	}
	return accept()
}
