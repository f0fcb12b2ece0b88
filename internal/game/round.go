package game

import (
	"math/rand"

	"github.com/lox/belot/internal/deck"
)

// Phase represents the engine phase within a round
type Phase int

const (
	PhaseTrumpSelection Phase = iota
	PhaseMeldCheck
	PhaseMeldShow
	PhasePlaying
	PhaseRoundOver
	PhaseGameOver
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseTrumpSelection:
		return "trump selection"
	case PhaseMeldCheck:
		return "checking melds"
	case PhaseMeldShow:
		return "showing melds"
	case PhasePlaying:
		return "playing"
	case PhaseRoundOver:
		return "round over"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// BelaOffer is a pending bela declaration awaiting a human seat's answer
type BelaOffer struct {
	Seat   Seat
	Played deck.Card // the trump honor just played
}

// round holds all per-round state: one deal-to-empty-hands cycle
type round struct {
	number     int
	dealer     Seat
	hands      [NumSeats][]deck.Card
	trick      []Play
	tricksDone int

	// trump selection
	decider    Seat
	deciderSet bool
	passes     map[Seat]bool
	trump      deck.Suit
	trumpSet   bool
	chooser    Seat

	// play
	active    Seat
	activeSet bool

	// scoring accumulators
	trickScore  [NumTeams]int
	trickCount  [NumTeams]int
	pendingMeld [NumTeams]int
	rawMeld     [NumTeams]int
	melds       []Meld

	// bela
	belaCalled bool
	belaOffer  *BelaOffer

	illegalMsg string
}

// newRound deals a fresh round. The deck invariant (4 hands of 8 consuming
// all 32 cards) is the caller's structural precondition.
func newRound(number int, dealer Seat, rng *rand.Rand) *round {
	r := &round{
		number: number,
		dealer: dealer,
		passes: make(map[Seat]bool),
	}

	d := deck.NewDeck(rng)
	for s := Seat(0); s < NumSeats; s++ {
		r.hands[s] = d.DealN(8)
	}

	r.decider = dealer.Next()
	r.deciderSet = true
	return r
}

// cardsInPlay counts cards across hands, completed tricks and the live
// trick; it must always equal the deck size
func (r *round) cardsInPlay() int {
	n := len(r.trick) + 4*r.tricksDone
	for s := Seat(0); s < NumSeats; s++ {
		n += len(r.hands[s])
	}
	return n
}

// handsEmpty reports whether every seat has played out its hand
func (r *round) handsEmpty() bool {
	for s := Seat(0); s < NumSeats; s++ {
		if len(r.hands[s]) > 0 {
			return false
		}
	}
	return true
}

// turnOrder returns the four seats starting from the seat after the dealer
func (r *round) turnOrder() []Seat {
	order := make([]Seat, 0, NumSeats)
	s := r.dealer.Next()
	for i := 0; i < NumSeats; i++ {
		order = append(order, s)
		s = s.Next()
	}
	return order
}
