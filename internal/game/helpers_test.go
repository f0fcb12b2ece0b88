package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func testPlayers(typ PlayerType) [NumSeats]Player {
	return [NumSeats]Player{
		{Name: "South", Type: typ, Avatar: "a1"},
		{Name: "West", Type: typ, Avatar: "a2"},
		{Name: "North", Type: typ, Avatar: "a3"},
		{Name: "East", Type: typ, Avatar: "a4"},
	}
}

// newHumanEngine starts an engine with four interactive seats and inline
// transitions, so tests drive every decision through engine commands
func newHumanEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	e, err := New(Config{
		Players: testPlayers(Human),
		Target:  1001,
		Rand:    rand.New(rand.NewSource(seed)),
	})
	require.NoError(t, err)
	require.NoError(t, e.Start())
	return e
}

// eventRecorder collects published events for assertions
type eventRecorder struct {
	events []GameEvent
}

func (r *eventRecorder) OnEvent(ev GameEvent) {
	r.events = append(r.events, ev)
}

func (r *eventRecorder) ofType(et EventType) []GameEvent {
	var out []GameEvent
	for _, ev := range r.events {
		if ev.EventType() == et {
			out = append(out, ev)
		}
	}
	return out
}

func (r *eventRecorder) count(et EventType) int {
	return len(r.ofType(et))
}

// subscriberFunc adapts a closure to the EventSubscriber interface
type subscriberFunc func(GameEvent)

func (f subscriberFunc) OnEvent(ev GameEvent) { f(ev) }
