package agent

import (
	"testing"

	"daifugo/internal/analyzer"
	"daifugo/internal/cards"
	"daifugo/internal/validator"
)

func card(s cards.Suit, r cards.Rank) cards.Card { return cards.NewCard(s, r) }

func TestChooseExchangeGivesAwayWeakestCards(t *testing.T) {
	hand := cards.NewHand(
		card(cards.Spade, cards.RankThree),
		card(cards.Heart, cards.RankFour),
		card(cards.Club, cards.RankAce),
	)
	got := Strategy{}.ChooseExchange(hand, 2, false)
	if len(got) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(got))
	}
	for _, c := range got {
		if c == card(cards.Club, cards.RankAce) {
			t.Fatal("expected the strongest card (Ace) to be kept, not given away")
		}
	}
}

func TestChooseLeadPrefersLadderOverGroupOverSingle(t *testing.T) {
	hand := cards.NewHand(
		card(cards.Spade, cards.RankThree),
		card(cards.Spade, cards.RankFour),
		card(cards.Spade, cards.RankFive),
		card(cards.Heart, cards.RankThree),
		card(cards.Diamond, cards.RankThree),
	)
	sub := Strategy{}.ChooseLead(hand, false)
	if len(sub.Cards) != 3 {
		t.Fatalf("expected a 3-card ladder lead, got %d cards: %v", len(sub.Cards), sub.Cards)
	}
	for _, c := range sub.Cards {
		if c.Suit != cards.Spade {
			t.Fatalf("expected the spade ladder, got a mixed-suit submission: %v", sub.Cards)
		}
	}
}

func TestChooseLeadFallsBackToWeakestSingle(t *testing.T) {
	hand := cards.NewHand(
		card(cards.Spade, cards.RankKing),
		card(cards.Heart, cards.RankFour),
		card(cards.Club, cards.RankSeven),
	)
	sub := Strategy{}.ChooseLead(hand, false)
	if len(sub.Cards) != 1 || sub.Cards[0] != card(cards.Heart, cards.RankFour) {
		t.Fatalf("expected the weakest single (H4), got %v", sub.Cards)
	}
}

func TestChooseFollowBeatsSingleWithCheapestLegalCard(t *testing.T) {
	hand := cards.NewHand(
		card(cards.Spade, cards.RankSeven),
		card(cards.Heart, cards.RankNine),
	)
	field := validator.Field{Type: analyzer.Single, Count: 1, BaseRank: int(cards.RankFive), SuitPattern: 0}
	sub := Strategy{}.ChooseFollow(hand, field, false, false)
	if len(sub.Cards) != 1 || sub.Cards[0] != card(cards.Spade, cards.RankSeven) {
		t.Fatalf("expected the cheapest beat (S7), got %v", sub.Cards)
	}
}

func TestChooseFollowPassesWhenNoLegalBeatExists(t *testing.T) {
	hand := cards.NewHand(card(cards.Spade, cards.RankThree))
	field := validator.Field{Type: analyzer.Single, Count: 1, BaseRank: int(cards.RankKing)}
	sub := Strategy{}.ChooseFollow(hand, field, false, false)
	if !sub.IsPass() {
		t.Fatalf("expected a pass, got %v", sub.Cards)
	}
}

func TestChooseFollowOnJokerSingleRequiresSpadeThree(t *testing.T) {
	withSpade3 := cards.NewHand(card(cards.Spade, cards.RankThree), card(cards.Heart, cards.RankFive))
	sub := Strategy{}.ChooseFollow(withSpade3, validator.Field{}, false, true)
	if len(sub.Cards) != 1 || sub.Cards[0] != card(cards.Spade, cards.RankThree) {
		t.Fatalf("expected Spade-3 to beat a joker single, got %v", sub.Cards)
	}

	without := cards.NewHand(card(cards.Heart, cards.RankFive))
	sub = Strategy{}.ChooseFollow(without, validator.Field{}, false, true)
	if !sub.IsPass() {
		t.Fatalf("expected a pass without the Spade 3, got %v", sub.Cards)
	}
}

func TestChooseFollowRespectsLockSuitPattern(t *testing.T) {
	hand := cards.NewHand(card(cards.Heart, cards.RankSeven), card(cards.Spade, cards.RankNine))
	field := validator.Field{
		Type:        analyzer.Single,
		Count:       1,
		BaseRank:    int(cards.RankFive),
		SuitPattern: 1 << uint(cards.Spade),
		LockActive:  true,
	}
	sub := Strategy{}.ChooseFollow(hand, field, false, false)
	if len(sub.Cards) != 1 || sub.Cards[0].Suit != cards.Spade {
		t.Fatalf("expected lock to restrict the beat to a spade, got %v", sub.Cards)
	}
}
