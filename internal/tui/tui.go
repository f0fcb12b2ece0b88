package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/belot/internal/deck"
	"github.com/lox/belot/internal/game"
)

// Model is the Bubble Tea model driving a table with one human seat. All
// game state lives in the engine; the model mirrors just enough of it to
// render and turns key presses into engine commands.
type Model struct {
	engine *game.Engine
	bridge *EventBridge
	seat   game.Seat // the seat this terminal controls
	logger *log.Logger

	logViewport viewport.Model
	gameLog     []string

	cursor   int // selected card in the human hand
	quitting bool

	width       int
	height      int
	initialized bool

	// Test mode
	testMode    bool
	capturedLog []string
}

// eventMsg wraps an engine event for the Bubble Tea update loop
type eventMsg struct {
	event game.GameEvent
}

// eventsClosedMsg signals that the bridge channel was closed
type eventsClosedMsg struct{}

// New creates a TUI model for the given engine and human seat
func New(engine *game.Engine, bridge *EventBridge, seat game.Seat, logger *log.Logger) *Model {
	return NewWithOptions(engine, bridge, seat, logger, false)
}

// NewWithOptions creates a TUI model with test mode option. Test mode skips
// viewport updates and captures log entries for assertions.
func NewWithOptions(engine *game.Engine, bridge *EventBridge, seat game.Seat, logger *log.Logger, testMode bool) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	return &Model{
		engine:      engine,
		bridge:      bridge,
		seat:        seat,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		gameLog:     []string{},
		testMode:    testMode,
	}
}

// Init starts listening for engine events
func (m *Model) Init() tea.Cmd {
	return m.waitForEvent()
}

// waitForEvent returns a command that blocks on the next engine event
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.bridge.Events()
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg{event: ev}
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventsClosedMsg:
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)

	case eventMsg:
		m.handleEvent(msg.event)
		return m, m.waitForEvent()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)

	case "y":
		if offer, ok := m.engine.PendingBela(); ok && offer.Seat == m.seat {
			m.engine.DeclareBela(m.seat)
		}
		return m, nil

	case "n":
		if offer, ok := m.engine.PendingBela(); ok && offer.Seat == m.seat {
			m.engine.DeclineBela(m.seat)
			m.addLog(InfoStyle.Render("You keep the bela to yourself"))
		}
		return m, nil

	case "c", "h", "s", "d":
		if suit, ok := suitForKey(msg.String()); ok && m.myTrumpTurn() {
			m.engine.ChooseTrump(m.seat, &suit)
		}
		return m, nil

	case "p":
		if m.myTrumpTurn() {
			m.engine.ChooseTrump(m.seat, nil)
		}
		return m, nil

	case "left":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "right":
		if m.cursor < len(m.engine.Hand(m.seat))-1 {
			m.cursor++
		}
		return m, nil

	case "enter", " ":
		hand := m.engine.Hand(m.seat)
		if m.myPlayTurn() && m.cursor < len(hand) {
			m.engine.PlayCard(m.seat, hand[m.cursor])
		}
		return m, nil

	case "up", "k":
		m.logViewport.ScrollUp(1)
		return m, nil

	case "down", "j":
		m.logViewport.ScrollDown(1)
		return m, nil
	}

	return m, nil
}

func suitForKey(key string) (deck.Suit, bool) {
	switch key {
	case "c":
		return deck.Clubs, true
	case "h":
		return deck.Hearts, true
	case "s":
		return deck.Spades, true
	case "d":
		return deck.Diamonds, true
	}
	return 0, false
}

// myTrumpTurn reports whether the human seat currently decides trump
func (m *Model) myTrumpTurn() bool {
	if m.engine.Phase() != game.PhaseTrumpSelection {
		return false
	}
	decider, ok := m.engine.Decider()
	return ok && decider == m.seat
}

// myPlayTurn reports whether the human seat is on turn in the trick
func (m *Model) myPlayTurn() bool {
	if m.engine.Phase() != game.PhasePlaying {
		return false
	}
	active, ok := m.engine.ActiveSeat()
	return ok && active == m.seat
}

// handleEvent turns an engine event into log lines and cursor upkeep
func (m *Model) handleEvent(ev game.GameEvent) {
	switch ev := ev.(type) {
	case game.AwaitingTrumpEvent:
		name := m.displayName(ev.Decider)
		if ev.Forced {
			m.addLog(WarningStyle.Render(fmt.Sprintf("%s must choose trump", name)))
		} else {
			m.addLog(InfoStyle.Render(fmt.Sprintf("%s to choose trump", name)))
		}

	case game.TrumpSetEvent:
		m.addLog(TrumpStyle.Render(fmt.Sprintf("%s chooses %s %s as trump",
			m.displayName(ev.Chooser), ev.Trump.String(), ev.Trump.Name())))

	case game.MeldsComputedEvent:
		if !ev.HasWinner {
			m.addLog(InfoStyle.Render("No melds this round"))
			break
		}
		for _, meld := range ev.Melds {
			m.addLog(fmt.Sprintf("%s shows %s", m.displayName(meld.Seat), meld.String()))
		}
		m.addLog(SuccessStyle.Render(fmt.Sprintf("%s takes %d in melds", ev.Winner, ev.Credited)))

	case game.BelaOfferedEvent:
		if ev.Seat == m.seat {
			m.addLog(ActionsStyle.Render("Declare bela for +20? (y/n)"))
		}

	case game.BelaDeclaredEvent:
		m.addLog(SuccessStyle.Render(fmt.Sprintf("%s declares bela (+20)", m.displayName(ev.Seat))))

	case game.CardPlayedEvent:
		m.addLog(fmt.Sprintf("%s plays %s", m.displayName(ev.Seat), m.formatCard(ev.Card)))
		if ev.Seat == m.seat {
			m.clampCursor()
		}

	case game.IllegalMoveEvent:
		if ev.Seat == m.seat {
			m.addLog(ErrorStyle.Render(fmt.Sprintf("Cannot play %s: %s", ev.Card, ev.Reason)))
		}

	case game.TrickResolvedEvent:
		m.addLog(fmt.Sprintf("%s takes the trick (+%d)", m.displayName(ev.Winner), ev.Points))

	case game.RoundEndedEvent:
		m.addLog("")
		line := fmt.Sprintf("Round %d: %s %d, %s %d",
			ev.Round, game.TeamA, ev.RoundScore[game.TeamA], game.TeamB, ev.RoundScore[game.TeamB])
		if ev.Fell {
			line += fmt.Sprintf(" (%s fell", ev.Caller)
			if ev.Capot {
				line += ", capot"
			}
			line += ")"
		}
		m.addLog(HeaderStyle.Render(line))
		m.addLog(fmt.Sprintf("Totals: %s %d, %s %d",
			game.TeamA, ev.Total[game.TeamA], game.TeamB, ev.Total[game.TeamB]))
		m.addLog("")
		m.cursor = 0

	case game.GameEndedEvent:
		m.addLog(HeaderStyle.Render(fmt.Sprintf("%s wins the game %d to %d",
			ev.Winner, ev.Total[ev.Winner], ev.Total[ev.Winner.Other()])))
		m.addLog(InfoStyle.Render("Press q to exit"))
	}
}

// clampCursor keeps the selection inside the shrinking hand
func (m *Model) clampCursor() {
	if n := len(m.engine.Hand(m.seat)); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	}
}

func (m *Model) displayName(seat game.Seat) string {
	if seat == m.seat {
		return "You"
	}
	return m.engine.PlayerAt(seat).Name
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)

	actionWidth := max(m.width-2, 1)
	actionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(actionWidth)
	actionPane := actionStyle.Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 25)
	sidebarHeight := max(m.height-actionHeight-6, 1)

	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(sidebarHeight)
	sidebarPane := sidebarStyle.Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-6, 1)
	logHeight := sidebarHeight

	m.logViewport.Width = logWidth
	m.logViewport.Height = logHeight
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if !m.initialized {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(logHeight)
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

// renderSidebarPane shows the running score, trump and table roster
func (m *Model) renderSidebarPane() string {
	var content strings.Builder

	total := m.engine.TotalScore()
	content.WriteString(WarningStyle.Render(fmt.Sprintf("%s %d", game.TeamA, total[game.TeamA])))
	content.WriteString("  ")
	content.WriteString(WarningStyle.Render(fmt.Sprintf("%s %d", game.TeamB, total[game.TeamB])))
	content.WriteString("\n")

	content.WriteString(InfoStyle.Render(fmt.Sprintf("Round %d", m.engine.RoundNumber())))
	if trump, ok := m.engine.Trump(); ok {
		content.WriteString("  ")
		content.WriteString(TrumpStyle.Render(fmt.Sprintf("trump %s", trump)))
	}
	content.WriteString("\n\n")

	round := m.engine.RoundScore()
	content.WriteString(InfoStyle.Render(
		fmt.Sprintf("This round: %d / %d", round[game.TeamA], round[game.TeamB])))
	content.WriteString("\n\n")

	dealer := m.engine.Dealer()
	for s := game.Seat(0); s < game.NumSeats; s++ {
		p := m.engine.PlayerAt(s)
		marker := "  "
		if active, ok := m.engine.ActiveSeat(); ok && active == s {
			marker = "> "
		}
		line := fmt.Sprintf("%s%s %s", marker, p.Avatar, p.Name)
		if s == dealer {
			line += " (dealer)"
		}
		content.WriteString(line)
		content.WriteString("\n")
	}

	return content.String()
}

// renderActionPane shows the human hand, the live trick and the key hints
func (m *Model) renderActionPane() string {
	var content strings.Builder

	if trick := m.engine.CurrentTrick(); len(trick) > 0 {
		var parts []string
		for _, play := range trick {
			parts = append(parts, fmt.Sprintf("%s %s",
				m.engine.PlayerAt(play.Seat).Name, m.formatCard(play.Card)))
		}
		content.WriteString(InfoStyle.Render("Trick: "))
		content.WriteString(strings.Join(parts, "  "))
		content.WriteString("\n")
	}

	content.WriteString(HandStyle.Render("Your hand: "))
	content.WriteString(m.renderHand())
	content.WriteString("\n")

	if notice := m.engine.IllegalNotice(); notice != "" {
		content.WriteString(ErrorStyle.Render(notice))
		content.WriteString("\n")
	}

	content.WriteString(m.renderHints())
	return content.String()
}

// renderHand formats the human hand with the cursor highlighted
func (m *Model) renderHand() string {
	hand := m.engine.Hand(m.seat)
	if len(hand) == 0 {
		return InfoStyle.Render("(empty)")
	}

	var parts []string
	for i, card := range hand {
		label := card.String()
		switch {
		case i == m.cursor && m.myPlayTurn():
			parts = append(parts, SelectedCardStyle.Render(label))
		case card.IsRed():
			parts = append(parts, RedCardStyle.Render(label))
		default:
			parts = append(parts, BlackCardStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m *Model) renderHints() string {
	if offer, ok := m.engine.PendingBela(); ok && offer.Seat == m.seat {
		return ActionsStyle.Render("y declare bela • n decline")
	}

	switch {
	case m.myTrumpTurn():
		hint := "c/h/s/d choose trump"
		if !m.dealerForced() {
			hint += " • p pass"
		}
		return ActionsStyle.Render(hint)
	case m.myPlayTurn():
		return ActionsStyle.Render("←/→ select card • Enter play • q quit")
	default:
		return InfoStyle.Render("Waiting... • ↑↓ scroll log • q quit")
	}
}

// dealerForced reports whether the trump decision has cycled back to the
// dealer, who may no longer pass
func (m *Model) dealerForced() bool {
	decider, ok := m.engine.Decider()
	return ok && decider == m.engine.Dealer()
}

// formatCard colors a card by suit
func (m *Model) formatCard(card deck.Card) string {
	if card.IsRed() {
		return RedCardStyle.Render(card.String())
	}
	return BlackCardStyle.Render(card.String())
}

// addLog appends an entry to the game log and scrolls to show it
func (m *Model) addLog(entry string) {
	m.gameLog = append(m.gameLog, entry)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// CapturedLog returns the captured log entries (test mode only)
func (m *Model) CapturedLog() []string {
	if !m.testMode {
		return nil
	}
	out := make([]string, len(m.capturedLog))
	copy(out, m.capturedLog)
	return out
}
