package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/belot/internal/deck"
)

func TestComputerTrumpPassChance(t *testing.T) {
	const trials = 4000

	tests := []struct {
		name string
		hand string
		want float64 // expected pass rate
	}{
		{"eight card suit clamps to 20%", "7c8c9cTcJcQcKcAc", 0.20},
		{"balanced hand passes at 50%", "7c8c7h8h7s8s7d8d", 0.50},
		{"four card suit passes at 40%", "7c8c9cTc7h8h7s7d", 0.40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent := NewComputerAgent(rand.New(rand.NewSource(1)))
			hand := mustCards(t, tt.hand)

			passes := 0
			for i := 0; i < trials; i++ {
				if agent.ChooseTrump(hand).Pass {
					passes++
				}
			}
			require.InDelta(t, tt.want, float64(passes)/trials, 0.04)
		})
	}
}

func TestComputerTrumpPicksAmongTopTwoSuits(t *testing.T) {
	agent := NewComputerAgent(rand.New(rand.NewSource(2)))
	// five spades, three diamonds: those are the only candidate suits
	hand := mustCards(t, "7s8s9sTsJs7d8d9d")

	seen := make(map[deck.Suit]int)
	for i := 0; i < 500; i++ {
		d := agent.ChooseTrump(hand)
		if d.Pass {
			continue
		}
		require.Contains(t, []deck.Suit{deck.Spades, deck.Diamonds}, d.Suit)
		seen[d.Suit]++
	}
	require.Positive(t, seen[deck.Spades])
	require.Positive(t, seen[deck.Diamonds])
}

func TestComputerPlaysUniformlyAmongLegal(t *testing.T) {
	agent := NewComputerAgent(rand.New(rand.NewSource(3)))
	legal := mustCards(t, "7cJhAs")

	seen := make(map[deck.Card]bool)
	for i := 0; i < 200; i++ {
		c := agent.PlayCard(TableView{Seat: 0, Hand: legal, Legal: legal})
		require.True(t, containsCard(legal, c))
		seen[c] = true
	}
	require.Len(t, seen, 3)
}

func TestComputerAlwaysDeclaresBela(t *testing.T) {
	agent := NewComputerAgent(rand.New(rand.NewSource(4)))
	require.False(t, agent.Interactive())
	require.True(t, agent.DeclareBela())
}
