package game

import "github.com/lox/belot/internal/deck"

// TrumpDecision is a seat's answer when asked to pick trump
type TrumpDecision struct {
	Pass bool
	Suit deck.Suit
}

// TableView is the read-only state an agent sees when deciding a card.
// Only the acting seat's own hand is included.
type TableView struct {
	Seat       Seat
	Hand       []deck.Card
	Legal      []deck.Card
	Trick      []Play
	Trump      deck.Suit
	RoundScore [NumTeams]int
}

// Agent is the decision source behind a seat. Interactive agents never have
// their decision methods invoked; their choices arrive as external engine
// commands instead. Autonomous agents are consulted by the engine after the
// configured thinking delay.
type Agent interface {
	Interactive() bool
	ChooseTrump(hand []deck.Card) TrumpDecision
	PlayCard(view TableView) deck.Card
	DeclareBela() bool
}

// InteractiveAgent marks a seat whose decisions arrive via engine commands
// (the human seat). Its decision methods are never called by the engine.
type InteractiveAgent struct{}

// Interactive reports that decisions come from outside
func (InteractiveAgent) Interactive() bool { return true }

// ChooseTrump is unused for interactive seats
func (InteractiveAgent) ChooseTrump([]deck.Card) TrumpDecision { return TrumpDecision{Pass: true} }

// PlayCard is unused for interactive seats
func (InteractiveAgent) PlayCard(view TableView) deck.Card {
	if len(view.Legal) > 0 {
		return view.Legal[0]
	}
	return deck.Card{}
}

// DeclareBela is unused for interactive seats; bela offers are surfaced as
// events and answered by command
func (InteractiveAgent) DeclareBela() bool { return false }
