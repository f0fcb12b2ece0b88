package game

import (
	"github.com/lox/belot/internal/deck"
)

// Play is one card placed into the current trick
type Play struct {
	Seat Seat
	Card deck.Card
}

// bestOfSuit returns the strongest play of the given suit in the trick,
// or false if the suit has not been played
func bestOfSuit(trick []Play, suit deck.Suit, trump deck.Suit) (Play, bool) {
	var best Play
	found := false
	for _, p := range trick {
		if p.Card.Suit != suit {
			continue
		}
		if !found || cardStrength(p.Card, trump) > cardStrength(best.Card, trump) {
			best = p
			found = true
		}
	}
	return best, found
}

// legalPlays computes the cards the holder of hand may legally play into the
// trick. Follow suit and overtake if possible; when void in the lead suit,
// trump and overtrump if possible; otherwise discard freely.
func legalPlays(hand []deck.Card, trick []Play, trump deck.Suit) []deck.Card {
	if len(trick) == 0 {
		return append([]deck.Card(nil), hand...)
	}

	lead := trick[0].Card.Suit

	var leadCards, trumpCards []deck.Card
	for _, c := range hand {
		if c.Suit == lead {
			leadCards = append(leadCards, c)
		}
		if c.Suit == trump {
			trumpCards = append(trumpCards, c)
		}
	}

	if len(leadCards) > 0 {
		if best, ok := bestOfSuit(trick, lead, trump); ok {
			var stronger []deck.Card
			for _, c := range leadCards {
				if cardStrength(c, trump) > cardStrength(best.Card, trump) {
					stronger = append(stronger, c)
				}
			}
			if len(stronger) > 0 {
				return stronger
			}
		}
		return leadCards
	}

	if len(trumpCards) > 0 {
		if best, ok := bestOfSuit(trick, trump, trump); ok {
			var stronger []deck.Card
			for _, c := range trumpCards {
				if cardStrength(c, trump) > cardStrength(best.Card, trump) {
					stronger = append(stronger, c)
				}
			}
			if len(stronger) > 0 {
				return stronger
			}
		}
		return trumpCards
	}

	return append([]deck.Card(nil), hand...)
}

// illegalReason explains why a card outside the legal set was rejected
func illegalReason(hand []deck.Card, trick []Play, trump deck.Suit) string {
	if len(trick) == 0 {
		return "not your turn"
	}
	lead := trick[0].Card.Suit
	holdsLead, holdsTrump := false, false
	for _, c := range hand {
		if c.Suit == lead {
			holdsLead = true
		}
		if c.Suit == trump {
			holdsTrump = true
		}
	}
	if holdsLead {
		return "must follow suit"
	}
	if holdsTrump {
		return "must play trump"
	}
	return "cannot play that card"
}

// trickWinner determines the winning seat of a completed trick. Any trump
// play beats all plain-suit plays; otherwise the strongest lead-suit card
// wins.
func trickWinner(trick []Play, trump deck.Suit) Seat {
	if best, ok := bestOfSuit(trick, trump, trump); ok {
		return best.Seat
	}
	best, _ := bestOfSuit(trick, trick[0].Card.Suit, trump)
	return best.Seat
}

// trickPoints sums the trump-aware point values of the trick's cards
func trickPoints(trick []Play, trump deck.Suit) int {
	pts := 0
	for _, p := range trick {
		pts += cardPoints(p.Card, trump)
	}
	return pts
}

// containsCard reports whether cards includes c
func containsCard(cards []deck.Card, c deck.Card) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}

// removeCard drops the first occurrence of c and reports whether it was held
func removeCard(cards []deck.Card, c deck.Card) ([]deck.Card, bool) {
	for i, x := range cards {
		if x == c {
			return append(cards[:i], cards[i+1:]...), true
		}
	}
	return cards, false
}
