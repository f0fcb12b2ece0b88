package game

import "github.com/lox/belot/internal/deck"

// Belot ranks cards differently inside and outside the trump suit, for both
// trick strength and point value. The same strength order is used for
// legal-move filtering and trick resolution.

// nonTrumpOrder returns the strength of a rank outside the trump suit
func nonTrumpOrder(r deck.Rank) int {
	switch r {
	case deck.Seven:
		return 0
	case deck.Eight:
		return 1
	case deck.Nine:
		return 2
	case deck.Ten:
		return 3
	case deck.Jack:
		return 4
	case deck.Queen:
		return 5
	case deck.King:
		return 6
	case deck.Ace:
		return 7
	default:
		return -1
	}
}

// trumpOrder returns the strength of a rank inside the trump suit. The nine
// and jack are promoted above the ace.
func trumpOrder(r deck.Rank) int {
	switch r {
	case deck.Seven:
		return 0
	case deck.Eight:
		return 1
	case deck.Queen:
		return 2
	case deck.King:
		return 3
	case deck.Ten:
		return 4
	case deck.Ace:
		return 5
	case deck.Nine:
		return 6
	case deck.Jack:
		return 7
	default:
		return -1
	}
}

// nonTrumpPoints returns the trick point value of a rank outside trump
func nonTrumpPoints(r deck.Rank) int {
	switch r {
	case deck.Ten:
		return 10
	case deck.Jack:
		return 2
	case deck.Queen:
		return 3
	case deck.King:
		return 4
	case deck.Ace:
		return 11
	default:
		return 0
	}
}

// trumpPoints returns the trick point value of a rank inside trump
func trumpPoints(r deck.Rank) int {
	switch r {
	case deck.Nine:
		return 14
	case deck.Ten:
		return 10
	case deck.Jack:
		return 20
	case deck.Queen:
		return 3
	case deck.King:
		return 4
	case deck.Ace:
		return 11
	default:
		return 0
	}
}

// cardStrength returns the strength of a card given the round's trump suit.
// Strengths are only comparable between cards of the same suit class
// (trump vs. a given plain suit); trick resolution never compares across.
func cardStrength(c deck.Card, trump deck.Suit) int {
	if c.Suit == trump {
		return trumpOrder(c.Rank)
	}
	return nonTrumpOrder(c.Rank)
}

// cardPoints returns the trick point value of a card given the trump suit
func cardPoints(c deck.Card, trump deck.Suit) int {
	if c.Suit == trump {
		return trumpPoints(c.Rank)
	}
	return nonTrumpPoints(c.Rank)
}

// runOrder returns the rank position used for meld run adjacency. This is
// plain 7<8<9<T<J<Q<K<A order regardless of trump.
func runOrder(r deck.Rank) int {
	return int(r - deck.Seven)
}
