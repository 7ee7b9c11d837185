package validator

import (
	"testing"

	"daifugo/internal/analyzer"
	"daifugo/internal/cards"

	"github.com/stretchr/testify/assert"
)

func handWith(c ...cards.Card) cards.Hand { return cards.NewHand(c...) }

func TestValidatePass(t *testing.T) {
	r := Validate(analyzer.Analysis{Type: analyzer.Empty}, handWith(), nil, nil, Field{BaseRank: -1}, false, false)
	assert.True(t, r.Accepted)
	assert.True(t, r.IsPass)
}

func TestValidateRejectsLadderTooShort(t *testing.T) {
	c := []cards.Card{cards.NewCard(cards.Spade, cards.RankThree), cards.NewCard(cards.Spade, cards.RankFour)}
	a := analyzer.Analyze(c, nil, false)
	r := Validate(a, handWith(c...), c, nil, Field{BaseRank: -1}, false, false)
	assert.False(t, r.Accepted)
}

func TestValidateRejectsMissingCard(t *testing.T) {
	c := []cards.Card{cards.NewCard(cards.Spade, cards.RankThree)}
	a := analyzer.Analyze(c, nil, false)
	r := Validate(a, handWith(), c, nil, Field{BaseRank: -1}, false, false)
	assert.False(t, r.Accepted)
}

func TestValidateAcceptsLeadingEmptyField(t *testing.T) {
	c := []cards.Card{cards.NewCard(cards.Spade, cards.RankThree)}
	a := analyzer.Analyze(c, nil, false)
	r := Validate(a, handWith(c...), c, nil, Field{BaseRank: -1}, false, false)
	assert.True(t, r.Accepted)
}

func TestValidateStrictGreaterRequired(t *testing.T) {
	// Field is Spade-3 single; Heart-3 is equal strength, not strictly
	// greater, and must be rejected.
	field := Field{Type: analyzer.Single, Count: 1, BaseRank: int(cards.RankThree), SuitPattern: 1 << uint(cards.Spade)}
	c := []cards.Card{cards.NewCard(cards.Heart, cards.RankThree)}
	a := analyzer.Analyze(c, nil, false)
	r := Validate(a, handWith(c...), c, nil, field, false, false)
	assert.False(t, r.Accepted)
}

func TestValidateLock(t *testing.T) {
	field := Field{
		Type: analyzer.Single, Count: 1, BaseRank: int(cards.RankFive),
		SuitPattern: 1 << uint(cards.Spade), LockActive: true,
	}
	heart := []cards.Card{cards.NewCard(cards.Heart, cards.RankJack)}
	a := analyzer.Analyze(heart, nil, false)
	r := Validate(a, handWith(heart...), heart, nil, field, false, false)
	assert.False(t, r.Accepted)

	spade := []cards.Card{cards.NewCard(cards.Spade, cards.RankNine)}
	a2 := analyzer.Analyze(spade, nil, false)
	r2 := Validate(a2, handWith(spade...), spade, nil, field, false, false)
	assert.True(t, r2.Accepted)
}

func TestValidateJokerSingleAndSpade3Override(t *testing.T) {
	jokerHand := handWith(cards.Joker)
	jokerAnalysis := analyzer.Analyze([]cards.Card{cards.Joker}, nil, false)
	onSingle := Field{Type: analyzer.Single, Count: 1, BaseRank: int(cards.RankKing), SuitPattern: 1 << uint(cards.Heart)}
	r := Validate(jokerAnalysis, jokerHand, []cards.Card{cards.Joker}, nil, onSingle, false, false)
	assert.True(t, r.Accepted)

	onGroup := Field{Type: analyzer.Group, Count: 2, BaseRank: int(cards.RankKing)}
	r2 := Validate(jokerAnalysis, jokerHand, []cards.Card{cards.Joker}, nil, onGroup, false, false)
	assert.False(t, r2.Accepted)

	spade3 := []cards.Card{cards.NewCard(cards.Spade, cards.RankThree)}
	a3 := analyzer.Analyze(spade3, nil, false)
	fieldIsJokerSingle := Field{Type: analyzer.JokerSingle, Count: 1, BaseRank: int(cards.RankTwo) + 1}
	r3 := Validate(a3, handWith(spade3...), spade3, nil, fieldIsJokerSingle, false, true)
	assert.True(t, r3.Accepted)
}

func TestValidateExchange(t *testing.T) {
	c := []cards.Card{cards.NewCard(cards.Spade, cards.RankThree), cards.NewCard(cards.Heart, cards.RankFour)}
	h := handWith(c...)
	assert.True(t, ValidateExchange(c, 2, h).Accepted)
	assert.False(t, ValidateExchange(c, 1, h).Accepted)
	assert.False(t, ValidateExchange([]cards.Card{cards.NewCard(cards.Club, cards.RankFive)}, 1, h).Accepted)
}
