package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/belot/internal/deck"
)

func mustCards(t *testing.T, s string) []deck.Card {
	t.Helper()
	cards, err := deck.ParseCards(s)
	require.NoError(t, err)
	return cards
}

func TestFindMeldsRuns(t *testing.T) {
	tests := []struct {
		name      string
		hand      string
		wantKinds []MeldKind
		wantPts   []int
	}{
		{
			name:      "three card run",
			hand:      "7c8c9c",
			wantKinds: []MeldKind{Run},
			wantPts:   []int{20},
		},
		{
			name:      "four card run",
			hand:      "TcJcQcKc",
			wantKinds: []MeldKind{Run},
			wantPts:   []int{50},
		},
		{
			name:      "five card run reported once, not as sub-runs",
			hand:      "7h8h9hThJh",
			wantKinds: []MeldKind{Run},
			wantPts:   []int{100},
		},
		{
			name:      "run adjacency ignores trump strength order",
			hand:      "9sTsJs", // consecutive in plain order, scattered in trump order
			wantKinds: []MeldKind{Run},
			wantPts:   []int{20},
		},
		{
			name:      "gap breaks a run",
			hand:      "7c8c9cJcQcKc",
			wantKinds: []MeldKind{Run, Run},
			wantPts:   []int{20, 20},
		},
		{
			name:    "two card sequence is no meld",
			hand:    "7c8cAh",
			wantPts: nil,
		},
		{
			name:    "same ranks different suits is no run",
			hand:    "7c7h8s",
			wantPts: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			melds := FindMelds(0, mustCards(t, tt.hand))
			require.Len(t, melds, len(tt.wantPts))
			for i, m := range melds {
				assert.Equal(t, tt.wantKinds[i], m.Kind)
				assert.Equal(t, tt.wantPts[i], m.Points)
			}
		})
	}
}

func TestFindMeldsFourOfAKind(t *testing.T) {
	tests := []struct {
		name    string
		hand    string
		wantPts int
	}{
		{"four jacks", "JcJhJsJd", 200},
		{"four nines", "9c9h9s9d", 150},
		{"four aces", "AcAhAsAd", 100},
		{"four tens", "TcThTsTd", 100},
		{"four kings", "KcKhKsKd", 100},
		{"four queens", "QcQhQsQd", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			melds := FindMelds(2, mustCards(t, tt.hand))
			require.Len(t, melds, 1)
			assert.Equal(t, FourOfAKind, melds[0].Kind)
			assert.Equal(t, tt.wantPts, melds[0].Points)
			assert.Equal(t, Seat(2), melds[0].Seat)
			assert.Len(t, melds[0].Cards, 4)
		})
	}
}

func TestFindMeldsFourSevensScoreNothing(t *testing.T) {
	melds := FindMelds(0, mustCards(t, "7c7h7s7d"))
	assert.Empty(t, melds)

	melds = FindMelds(0, mustCards(t, "8c8h8s8d"))
	assert.Empty(t, melds)
}

func TestFindMeldsMixedHand(t *testing.T) {
	// Four jacks plus a run of three hearts in the same 8-card hand
	melds := FindMelds(1, mustCards(t, "JcJhJsJd7h8h9hAc"))
	require.Len(t, melds, 2)

	var pts []int
	for _, m := range melds {
		pts = append(pts, m.Points)
	}
	assert.ElementsMatch(t, []int{200, 20}, pts)
}

func defaultOrder() []Seat {
	// Dealer 0, so seat 1 acts first
	return []Seat{1, 2, 3, 0}
}

func TestCreditMeldsNoMelds(t *testing.T) {
	credit := CreditMelds(nil, deck.Hearts, defaultOrder())
	assert.False(t, credit.HasWinner)
	assert.Zero(t, credit.Credited)
	assert.Empty(t, credit.Surviving)
}

func TestCreditMeldsWinnerTakesAll(t *testing.T) {
	all := []Meld{
		{Seat: 0, Kind: Run, Points: 50, Cards: mustCards(t, "TcJcQcKc")},
		{Seat: 1, Kind: Run, Points: 20, Cards: mustCards(t, "7h8h9h")},
		{Seat: 3, Kind: Run, Points: 20, Cards: mustCards(t, "7s8s9s")},
	}

	credit := CreditMelds(all, deck.Diamonds, defaultOrder())
	require.True(t, credit.HasWinner)
	assert.Equal(t, TeamA, credit.Winner)
	// Winner is credited the sum of both teams' raw melds
	assert.Equal(t, 90, credit.Credited)
	assert.Equal(t, [NumTeams]int{TeamA: 50, TeamB: 40}, credit.Raw)

	// Losing team's melds are suppressed
	require.Len(t, credit.Surviving, 1)
	assert.Equal(t, Seat(0), credit.Surviving[0].Seat)
}

func TestCreditMeldsTrumpBreaksPointTie(t *testing.T) {
	all := []Meld{
		{Seat: 0, Kind: Run, Points: 20, Cards: mustCards(t, "7c8c9c")},
		{Seat: 1, Kind: Run, Points: 20, Cards: mustCards(t, "7h8h9h")},
	}

	// Hearts trump: seat 1's all-trump run wins the tie
	credit := CreditMelds(all, deck.Hearts, defaultOrder())
	require.True(t, credit.HasWinner)
	assert.Equal(t, TeamB, credit.Winner)
	assert.Equal(t, 40, credit.Credited)

	// Clubs trump: seat 0's run wins instead
	credit = CreditMelds(all, deck.Clubs, defaultOrder())
	require.True(t, credit.HasWinner)
	assert.Equal(t, TeamA, credit.Winner)
}

func TestCreditMeldsTurnOrderBreaksFullTie(t *testing.T) {
	// Same points, neither in trump: the seat acting earliest after the
	// dealer wins. Order is 1,2,3,0 so seat 1 beats seat 0.
	all := []Meld{
		{Seat: 0, Kind: Run, Points: 20, Cards: mustCards(t, "7c8c9c")},
		{Seat: 1, Kind: Run, Points: 20, Cards: mustCards(t, "7h8h9h")},
	}

	credit := CreditMelds(all, deck.Diamonds, defaultOrder())
	require.True(t, credit.HasWinner)
	assert.Equal(t, TeamB, credit.Winner)
}

func TestCreditMeldsBestMeldNotSumDecides(t *testing.T) {
	// Team A holds one 100-point meld; team B holds two 50-point melds.
	// Team A's single best meld wins despite equal sums.
	all := []Meld{
		{Seat: 0, Kind: FourOfAKind, Points: 100, Cards: mustCards(t, "AcAhAsAd")},
		{Seat: 1, Kind: Run, Points: 50, Cards: mustCards(t, "7h8h9hTh")},
		{Seat: 3, Kind: Run, Points: 50, Cards: mustCards(t, "7s8s9sTs")},
	}

	credit := CreditMelds(all, deck.Diamonds, defaultOrder())
	require.True(t, credit.HasWinner)
	assert.Equal(t, TeamA, credit.Winner)
	assert.Equal(t, 200, credit.Credited)
}
