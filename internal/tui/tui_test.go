package tui

import (
	"io"
	"math/rand"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/belot/internal/deck"
	"github.com/lox/belot/internal/game"
)

// testTable starts an all-human engine with inline transitions and wires a
// model in test mode to seat 1, the first trump decider
func testTable(t *testing.T) (*game.Engine, *Model) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})

	e, err := game.New(game.Config{
		Players: [game.NumSeats]game.Player{
			{Name: "South", Type: game.Human},
			{Name: "West", Type: game.Human},
			{Name: "North", Type: game.Human},
			{Name: "East", Type: game.Human},
		},
		Rand: rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)

	bridge := NewEventBridge(e, logger)
	m := NewWithOptions(e, bridge, 1, logger, true)
	require.NoError(t, e.Start())
	return e, m
}

// drain feeds queued bridge events into the model like the program loop
func drain(m *Model) {
	for {
		select {
		case ev := <-m.bridge.Events():
			m.handleEvent(ev)
		default:
			return
		}
	}
}

func TestModelLogsEvents(t *testing.T) {
	_, m := testTable(t)
	drain(m)

	captured := m.CapturedLog()
	require.NotEmpty(t, captured)
	assert.Contains(t, captured[0], "You to choose trump")
}

func TestTrumpKeysDriveEngine(t *testing.T) {
	e, m := testTable(t)
	drain(m)

	// keys from a seat that isn't deciding do nothing; seat 1 is deciding
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})

	trump, ok := e.Trump()
	require.True(t, ok)
	assert.Equal(t, deck.Hearts, trump)

	// inline delays take the round straight into play
	assert.Equal(t, game.PhasePlaying, e.Phase())
}

func TestPassKeyAdvancesDecider(t *testing.T) {
	e, m := testTable(t)
	drain(m)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})

	decider, ok := e.Decider()
	require.True(t, ok)
	assert.Equal(t, game.Seat(2), decider)

	// no longer this seat's decision, suit keys are ignored
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	_, ok = e.Trump()
	assert.False(t, ok)
}

func TestEnterPlaysSelectedCard(t *testing.T) {
	e, m := testTable(t)
	hearts := deck.Hearts
	e.ChooseTrump(1, &hearts)
	require.Equal(t, game.PhasePlaying, e.Phase())
	drain(m)

	require.Len(t, e.Hand(1), 8)
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// leading a trick, so any card in hand is legal
	assert.Len(t, e.Hand(1), 7)
	assert.Len(t, e.CurrentTrick(), 1)
}

func TestCursorStaysInHand(t *testing.T) {
	e, m := testTable(t)
	hearts := deck.Hearts
	e.ChooseTrump(1, &hearts)
	drain(m)

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, m.cursor)

	for i := 0; i < 20; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyRight})
	}
	assert.Equal(t, len(e.Hand(1))-1, m.cursor)
}

func TestViewBeforeSizing(t *testing.T) {
	_, m := testTable(t)
	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	view := m.View()
	assert.Contains(t, view, "Your hand")
	assert.Contains(t, view, "West")
}

func TestQuitKeys(t *testing.T) {
	_, m := testTable(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestClosedBridgeQuits(t *testing.T) {
	_, m := testTable(t)

	m.bridge.Close()
	_, cmd := m.Update(eventsClosedMsg{})
	assert.NotNil(t, cmd)
	assert.True(t, m.quitting)
}

func TestBridgeDropsWhenFull(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	e, err := game.New(game.Config{
		Players: [game.NumSeats]game.Player{
			{Name: "A", Type: game.Computer},
			{Name: "B", Type: game.Computer},
			{Name: "C", Type: game.Computer},
			{Name: "D", Type: game.Computer},
		},
		Target: 301,
		Rand:   rand.New(rand.NewSource(2)),
	})
	require.NoError(t, err)

	bridge := NewEventBridge(e, logger)
	// an entire bot game emits far more events than the buffer holds; the
	// bridge must drop rather than deadlock the engine
	require.NoError(t, e.Start())
	require.True(t, e.Over())
	assert.Len(t, bridge.Events(), eventBufferSize)
}
