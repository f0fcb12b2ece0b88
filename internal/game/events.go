package game

import (
	"time"

	"github.com/lox/belot/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeTrumpSet      EventType = "trump_set"
	EventTypeAwaitingTrump EventType = "awaiting_trump"
	EventTypeMeldsComputed EventType = "melds_computed"
	EventTypeBelaOffered   EventType = "bela_offered"
	EventTypeBelaDeclared  EventType = "bela_declared"
	EventTypeAwaitingPlay  EventType = "awaiting_play"
	EventTypeCardPlayed    EventType = "card_played"
	EventTypeIllegalMove   EventType = "illegal_move"
	EventTypeTrickResolved EventType = "trick_resolved"
	EventTypeRoundEnded    EventType = "round_ended"
	EventTypeGameEnded     EventType = "game_ended"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

type eventStamp struct {
	at time.Time
}

func (e eventStamp) Timestamp() time.Time { return e.at }

func stamp() eventStamp { return eventStamp{at: time.Now()} }

// AwaitingTrumpEvent announces which seat must decide on trump next
type AwaitingTrumpEvent struct {
	eventStamp
	Decider Seat
	Forced  bool // true when the dealer can no longer pass
}

func (e AwaitingTrumpEvent) EventType() EventType { return EventTypeAwaitingTrump }

// TrumpSetEvent is published when a seat fixes the trump suit
type TrumpSetEvent struct {
	eventStamp
	Chooser Seat
	Trump   deck.Suit
}

func (e TrumpSetEvent) EventType() EventType { return EventTypeTrumpSet }

// MeldsComputedEvent carries the surviving melds and per-team totals after
// the meld comparison
type MeldsComputedEvent struct {
	eventStamp
	Melds     []Meld
	Raw       [NumTeams]int
	HasWinner bool
	Winner    Team
	Credited  int
}

func (e MeldsComputedEvent) EventType() EventType { return EventTypeMeldsComputed }

// BelaOfferedEvent asks a human seat whether to declare bela
type BelaOfferedEvent struct {
	eventStamp
	Seat   Seat
	Played deck.Card
}

func (e BelaOfferedEvent) EventType() EventType { return EventTypeBelaOffered }

// BelaDeclaredEvent is published when a seat declares bela for +20
type BelaDeclaredEvent struct {
	eventStamp
	Seat Seat
	Team Team
}

func (e BelaDeclaredEvent) EventType() EventType { return EventTypeBelaDeclared }

// AwaitingPlayEvent announces the seat to act in the current trick
type AwaitingPlayEvent struct {
	eventStamp
	Seat Seat
}

func (e AwaitingPlayEvent) EventType() EventType { return EventTypeAwaitingPlay }

// CardPlayedEvent is published when a legal play lands in the trick
type CardPlayedEvent struct {
	eventStamp
	Seat Seat
	Card deck.Card
}

func (e CardPlayedEvent) EventType() EventType { return EventTypeCardPlayed }

// IllegalMoveEvent is published when a legal seat attempts an illegal card.
// The reason is surfaced transiently and then auto-cleared by the engine.
type IllegalMoveEvent struct {
	eventStamp
	Seat   Seat
	Card   deck.Card
	Reason string
}

func (e IllegalMoveEvent) EventType() EventType { return EventTypeIllegalMove }

// TrickResolvedEvent is published after the trick-clearing pause
type TrickResolvedEvent struct {
	eventStamp
	Plays  []Play
	Winner Seat
	Points int
}

func (e TrickResolvedEvent) EventType() EventType { return EventTypeTrickResolved }

// RoundEndedEvent carries the finalized round scores and running totals
type RoundEndedEvent struct {
	eventStamp
	Round      int
	RoundScore [NumTeams]int
	Total      [NumTeams]int
	Caller     Team
	Fell       bool
	Capot      bool
}

func (e RoundEndedEvent) EventType() EventType { return EventTypeRoundEnded }

// GameEndedEvent is published once when a team wins the game
type GameEndedEvent struct {
	eventStamp
	Winner Team
	Total  [NumTeams]int
}

func (e GameEndedEvent) EventType() EventType { return EventTypeGameEnded }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
