package wire

import (
	"testing"

	"daifugo/internal/cards"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRoundTrip(t *testing.T) {
	tbl := &Table{}
	tbl.Set(0, 1, 1)
	tbl.Set(3, 13, 1)
	tbl.SetU(ControlRow, ColRevolution, 1)
	tbl.Set(6, 0, -5) // negative clamps to zero when stored

	decoded, err := DecodeTable(EncodeTable(tbl))
	require.NoError(t, err)

	want := &Table{}
	want.Set(0, 1, 1)
	want.Set(3, 13, 1)
	want.SetU(ControlRow, ColRevolution, 1)

	if diff := cmp.Diff(want, decoded, cmp.AllowUnexported(Table{})); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeTableShortFrame(t *testing.T) {
	_, err := DecodeTable(make([]byte, FrameSize-1))
	assert.Error(t, err)
}

func TestU32RoundTrip(t *testing.T) {
	v, err := DecodeU32(EncodeU32(4242))
	require.NoError(t, err)
	assert.Equal(t, uint32(4242), v)
}

func TestCardRoundTripHeld(t *testing.T) {
	hand := cards.NewHand(
		cards.NewCard(cards.Spade, cards.RankThree),
		cards.NewCard(cards.Heart, cards.RankTwo),
		cards.Joker,
	)
	tbl := &Table{}
	PlaceHeld(tbl, hand)
	got := ExtractHeld(tbl)

	assert.Equal(t, hand.Count(), got.Count())
	for c := range hand {
		assert.True(t, got.Contains(c))
	}
}

func TestCardRoundTripSubmittedWithSubstitution(t *testing.T) {
	real := []cards.Card{cards.NewCard(cards.Spade, cards.RankThree)}
	subs := []Position{{Suit: cards.Spade, Rank: cards.RankFour}}

	tbl := &Table{}
	PlaceSubmission(tbl, real, subs, false)

	gotCards, gotSubs := ExtractSubmission(tbl)
	require.Len(t, gotCards, 1)
	assert.Equal(t, real[0], gotCards[0])
	require.Len(t, gotSubs, 1)
	assert.True(t, gotSubs[subs[0]])
}

func TestJokerSingleSubmission(t *testing.T) {
	tbl := &Table{}
	PlaceSubmission(tbl, nil, nil, true)

	gotCards, gotSubs := ExtractSubmission(tbl)
	require.Len(t, gotCards, 1)
	assert.True(t, gotCards[0].IsJoker)
	assert.Empty(t, gotSubs)
}
