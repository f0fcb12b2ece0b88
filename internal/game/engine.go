package game

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/belot/internal/deck"
)

// lastTrickBonus is added to the team winning the final trick of a round
const lastTrickBonus = 10

// DefaultTarget is the customary winning threshold
const DefaultTarget = 1001

// Delays paces the engine's time-gated transitions. Zero values run the
// transition inline, which the simulator and most tests rely on.
type Delays struct {
	TrumpDecision time.Duration // computer trump thinking time
	CardPlay      time.Duration // computer card thinking time
	MeldEvaluate  time.Duration // "checking melds" pause after trump is set
	MeldShow      time.Duration // meld display pause before play starts
	TrickClear    time.Duration // pause before a full trick is resolved
	IllegalNotice time.Duration // how long an illegal-move notice stays up
	RoundRollover time.Duration // pause between round end and next deal
}

// DefaultDelays returns the pacing used for interactive play
func DefaultDelays() Delays {
	return Delays{
		TrumpDecision: 2500 * time.Millisecond,
		CardPlay:      time.Second,
		MeldEvaluate:  2 * time.Second,
		MeldShow:      3 * time.Second,
		TrickClear:    2 * time.Second,
		IllegalNotice: 2 * time.Second,
		RoundRollover: time.Second,
	}
}

// Config configures a game. All engine-relevant settings arrive here
// explicitly; there are no ambient toggles.
type Config struct {
	Players [NumSeats]Player
	Target  int    // winning threshold, defaults to DefaultTarget
	Delays  Delays // zero-valued delays run transitions inline
	Rand    *rand.Rand
	Clock   quartz.Clock
	Logger  *log.Logger
}

// Engine is the Belot rules state machine. All mutation happens behind one
// mutex: external commands and timer callbacks alike, preserving a single
// logical control thread. Read accessors take the same lock and never
// mutate.
type Engine struct {
	mu sync.Mutex

	players [NumSeats]Player
	agents  [NumSeats]Agent
	target  int
	delays  Delays
	rng     *rand.Rand
	clock   quartz.Clock
	logger  *log.Logger
	bus     EventBus

	round  *round
	total  [NumTeams]int
	phase  Phase
	winner Team
	over   bool

	// roundSeq invalidates timers scheduled for a superseded round;
	// noticeSeq does the same for illegal-move notice clearing
	roundSeq  int
	noticeSeq int
}

// New creates an engine from the config. Structural preconditions (four
// distinctly named seats, a positive target) are validated here and are
// fatal; gameplay errors never surface as Go errors.
func New(cfg Config) (*Engine, error) {
	if cfg.Target == 0 {
		cfg.Target = DefaultTarget
	}
	if cfg.Target < 0 {
		return nil, fmt.Errorf("winning threshold must be positive, got %d", cfg.Target)
	}

	names := make(map[string]bool, NumSeats)
	for i, p := range cfg.Players {
		if p.Name == "" {
			return nil, fmt.Errorf("seat %d has no name", i)
		}
		if names[p.Name] {
			return nil, fmt.Errorf("duplicate player name %q", p.Name)
		}
		names[p.Name] = true
	}

	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}

	e := &Engine{
		players: cfg.Players,
		target:  cfg.Target,
		delays:  cfg.Delays,
		rng:     cfg.Rand,
		clock:   cfg.Clock,
		logger:  cfg.Logger.WithPrefix("engine"),
		bus:     NewEventBus(),
	}

	for i, p := range cfg.Players {
		if p.Type == Computer {
			e.agents[i] = NewComputerAgent(cfg.Rand)
		} else {
			e.agents[i] = InteractiveAgent{}
		}
	}

	return e, nil
}

// Events returns the bus carrying engine notifications. Subscribers are
// invoked synchronously while the engine lock is held and must not call
// back into the engine.
func (e *Engine) Events() EventBus {
	return e.bus
}

// Start deals the first round and opens trump selection
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.round != nil {
		return fmt.Errorf("game already started")
	}

	e.logger.Info("game started",
		"target", e.target,
		"players", fmt.Sprintf("%s/%s vs %s/%s",
			e.players[0].Name, e.players[2].Name, e.players[1].Name, e.players[3].Name))
	e.startRoundLocked(1, 0)
	return nil
}

// startRoundLocked deals a round and begins trump selection
func (e *Engine) startRoundLocked(number int, dealer Seat) {
	e.roundSeq++
	e.round = newRound(number, dealer, e.rng)
	e.phase = PhaseTrumpSelection

	e.logger.Debug("round started", "round", number, "dealer", e.players[dealer].Name)
	e.publish(AwaitingTrumpEvent{eventStamp: stamp(), Decider: e.round.decider})
	e.promptTrumpLocked()
}

func (e *Engine) publish(ev GameEvent) {
	e.bus.Publish(ev)
}

// --- Read accessors ---

// Phase returns the current engine phase
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// RoundNumber returns the current round number, starting at 1
func (e *Engine) RoundNumber() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.round == nil {
		return 0
	}
	return e.round.number
}

// Dealer returns the current round's dealer seat
func (e *Engine) Dealer() Seat {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.round == nil {
		return 0
	}
	return e.round.dealer
}

// PlayerAt returns the player occupying a seat
func (e *Engine) PlayerAt(seat Seat) Player {
	return e.players[seat]
}

// Hand returns a copy of a seat's current hand. Masking opponents' cards is
// the display layer's concern.
func (e *Engine) Hand(seat Seat) []deck.Card {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.round == nil {
		return nil
	}
	return append([]deck.Card(nil), e.round.hands[seat]...)
}

// CurrentTrick returns a copy of the live trick's plays in turn order
func (e *Engine) CurrentTrick() []Play {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.round == nil {
		return nil
	}
	return append([]Play(nil), e.round.trick...)
}

// Trump returns the round's trump suit, if chosen
func (e *Engine) Trump() (deck.Suit, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.round == nil {
		return 0, false
	}
	return e.round.trump, e.round.trumpSet
}

// TrumpChooser returns the seat that fixed trump this round
func (e *Engine) TrumpChooser() (Seat, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.round == nil || !e.round.trumpSet {
		return 0, false
	}
	return e.round.chooser, true
}

// Decider returns the seat currently on turn to choose trump
func (e *Engine) Decider() (Seat, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.round == nil || !e.round.deciderSet {
		return 0, false
	}
	return e.round.decider, true
}

// ActiveSeat returns the seat currently on turn to play a card
func (e *Engine) ActiveSeat() (Seat, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.round == nil || e.phase != PhasePlaying || !e.round.activeSet {
		return 0, false
	}
	return e.round.active, true
}

// LegalPlays returns the cards the seat may legally play right now. Empty
// unless it is the seat's turn and the round is in the play phase.
func (e *Engine) LegalPlays(seat Seat) []deck.Card {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.round == nil || e.phase != PhasePlaying || !e.round.activeSet || e.round.active != seat {
		return nil
	}
	if !e.round.trumpSet {
		return nil
	}
	return legalPlays(e.round.hands[seat], e.round.trick, e.round.trump)
}

// RoundScore returns each team's accumulated trick points this round
func (e *Engine) RoundScore() [NumTeams]int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.round == nil {
		return [NumTeams]int{}
	}
	return e.round.trickScore
}

// TrickCounts returns how many tricks each team has won this round
func (e *Engine) TrickCounts() [NumTeams]int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.round == nil {
		return [NumTeams]int{}
	}
	return e.round.trickCount
}

// PendingMelds returns each team's pending meld points (credited melds plus
// any declared bela), applied to scores only at round end
func (e *Engine) PendingMelds() [NumTeams]int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.round == nil {
		return [NumTeams]int{}
	}
	return e.round.pendingMeld
}

// RawMelds returns each team's pre-credit meld totals, for display
func (e *Engine) RawMelds() [NumTeams]int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.round == nil {
		return [NumTeams]int{}
	}
	return e.round.rawMeld
}

// Melds returns the surviving (credited) melds of the round
func (e *Engine) Melds() []Meld {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.round == nil {
		return nil
	}
	return append([]Meld(nil), e.round.melds...)
}

// TotalScore returns each team's running game total
func (e *Engine) TotalScore() [NumTeams]int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.total
}

// IllegalNotice returns the transient illegal-move message, if one is up
func (e *Engine) IllegalNotice() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.round == nil {
		return ""
	}
	return e.round.illegalMsg
}

// PendingBela returns the outstanding bela offer, if any
func (e *Engine) PendingBela() (BelaOffer, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.round == nil || e.round.belaOffer == nil {
		return BelaOffer{}, false
	}
	return *e.round.belaOffer, true
}

// Over reports whether the game has ended
func (e *Engine) Over() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.over
}

// Winner returns the winning team once the game is over
func (e *Engine) Winner() (Team, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.winner, e.over
}

// CardsInPlay counts cards across hands, completed tricks and the live
// trick; it equals deck.Size at every instant of a round
func (e *Engine) CardsInPlay() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.round == nil {
		return 0
	}
	return e.round.cardsInPlay()
}
