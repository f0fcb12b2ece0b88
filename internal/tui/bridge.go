package tui

import (
	"github.com/charmbracelet/log"

	"github.com/lox/belot/internal/game"
)

// eventBufferSize bounds the bridge channel; the TUI drains far faster than
// the engine paces its events, so the buffer only absorbs bursts
const eventBufferSize = 256

// EventBridge forwards engine events onto a channel the Bubble Tea program
// can consume. The engine invokes subscribers while holding its lock, so
// OnEvent must never call back into the engine; it only hands the event off.
type EventBridge struct {
	events chan game.GameEvent
	logger *log.Logger
}

// NewEventBridge creates a bridge and subscribes it to the engine's bus
func NewEventBridge(engine *game.Engine, logger *log.Logger) *EventBridge {
	b := &EventBridge{
		events: make(chan game.GameEvent, eventBufferSize),
		logger: logger.WithPrefix("bridge"),
	}
	engine.Events().Subscribe(b)
	return b
}

// OnEvent queues the event for the TUI. A full buffer drops the event
// rather than blocking the engine.
func (b *EventBridge) OnEvent(ev game.GameEvent) {
	select {
	case b.events <- ev:
	default:
		b.logger.Warn("event buffer full, dropping", "type", ev.EventType())
	}
}

// Events returns the channel the TUI reads from
func (b *EventBridge) Events() <-chan game.GameEvent {
	return b.events
}

// Close shuts the channel down; the TUI treats a closed channel as quit
func (b *EventBridge) Close() {
	close(b.events)
}
