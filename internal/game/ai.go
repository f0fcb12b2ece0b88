package game

import (
	"math/rand"
	"sort"

	"github.com/lox/belot/internal/deck"
)

// Pass-probability shape for the computer trump policy: a 60% baseline that
// drops 5 points per card held in the seat's longest suit, clamped to
// [20%, 80%].
const (
	basePassChance    = 60
	passChancePerCard = 5
	minPassChance     = 20
	maxPassChance     = 80
)

// ComputerAgent makes autonomous decisions for a computer-controlled seat
type ComputerAgent struct {
	rng *rand.Rand
}

// NewComputerAgent creates a computer agent using the provided random source
func NewComputerAgent(rng *rand.Rand) *ComputerAgent {
	return &ComputerAgent{rng: rng}
}

// Interactive reports false: decisions are computed in-process
func (a *ComputerAgent) Interactive() bool { return false }

// ChooseTrump passes with a probability that shrinks as the hand's longest
// suit grows; otherwise it picks uniformly between the two most numerous
// suits in hand.
func (a *ComputerAgent) ChooseTrump(hand []deck.Card) TrumpDecision {
	counts := make(map[deck.Suit]int)
	for _, c := range hand {
		counts[c.Suit]++
	}

	best := 0
	for _, n := range counts {
		if n > best {
			best = n
		}
	}

	passChance := basePassChance - best*passChancePerCard
	if passChance < minPassChance {
		passChance = minPassChance
	}
	if passChance > maxPassChance {
		passChance = maxPassChance
	}

	if a.rng.Intn(100) < passChance {
		return TrumpDecision{Pass: true}
	}

	suits := append([]deck.Suit(nil), deck.Suits...)
	sort.SliceStable(suits, func(i, j int) bool {
		return counts[suits[i]] > counts[suits[j]]
	})

	pool := suits[:2]
	if len(hand) == 0 {
		pool = suits
	}
	return TrumpDecision{Suit: pool[a.rng.Intn(len(pool))]}
}

// PlayCard picks uniformly at random among the legal cards
func (a *ComputerAgent) PlayCard(view TableView) deck.Card {
	return view.Legal[a.rng.Intn(len(view.Legal))]
}

// DeclareBela always accepts the +20
func (a *ComputerAgent) DeclareBela() bool { return true }
