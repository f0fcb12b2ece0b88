package simulator

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/belot/internal/game"
)

// Config holds configuration for running simulations
type Config struct {
	Games   int
	Workers int   // defaults to the number of CPUs
	Seed    int64 // base seed; game i plays with Seed+i
	Target  int   // winning threshold, defaults to the engine default
	Timeout time.Duration
	Logger  *log.Logger
}

// GameResult summarises one finished game
type GameResult struct {
	Winner game.Team
	Total  [game.NumTeams]int
	Rounds int
	Falls  int
	Belas  int
}

// Statistics aggregates results across games
type Statistics struct {
	Games  int
	Wins   [game.NumTeams]int
	Rounds int
	Falls  int
	Belas  int
}

// Add folds one game result into the totals
func (s *Statistics) Add(r GameResult) {
	s.Games++
	s.Wins[r.Winner]++
	s.Rounds += r.Rounds
	s.Falls += r.Falls
	s.Belas += r.Belas
}

// Validate checks internal consistency of the totals
func (s *Statistics) Validate() error {
	if s.Wins[game.TeamA]+s.Wins[game.TeamB] != s.Games {
		return fmt.Errorf("win counts %v don't sum to %d games", s.Wins, s.Games)
	}
	if s.Rounds < s.Games {
		return fmt.Errorf("%d rounds across %d games, every game needs at least one", s.Rounds, s.Games)
	}
	return nil
}

// Summary formats the totals for display
func (s *Statistics) Summary() string {
	if s.Games == 0 {
		return "no games played"
	}
	return fmt.Sprintf("%d games: %s %d wins, %s %d wins • %.1f rounds/game • %d falls • %d belas",
		s.Games,
		game.TeamA, s.Wins[game.TeamA],
		game.TeamB, s.Wins[game.TeamB],
		float64(s.Rounds)/float64(s.Games),
		s.Falls, s.Belas)
}

// Simulator plays out all-computer games and aggregates the results
type Simulator struct {
	config Config
}

// New creates a simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	return &Simulator{config: config}
}

// Run plays the configured number of games in parallel and returns the
// aggregated statistics. Each game gets an independent derived seed, so a
// fixed base seed reproduces the full batch regardless of worker count.
func (s *Simulator) Run(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := 0; i < s.config.Games; i++ {
		seed := s.config.Seed + int64(i)
		g.Go(func() error {
			result, err := s.playGame(ctx, seed)
			if err != nil {
				return fmt.Errorf("game with seed %d: %w", seed, err)
			}
			mu.Lock()
			stats.Add(result)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// playGame runs one game to completion with hang protection. Zero delays
// make the engine play the entire game inside Start.
func (s *Simulator) playGame(ctx context.Context, seed int64) (GameResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	resultCh := make(chan GameResult, 1)
	errCh := make(chan error, 1)

	go func() {
		result, err := s.playGameBlocking(seed)
		if err != nil {
			errCh <- err
			return
		}
		resultCh <- result
	}()

	select {
	case result := <-resultCh:
		return result, nil
	case err := <-errCh:
		return GameResult{}, err
	case <-ctx.Done():
		return GameResult{}, fmt.Errorf("game timed out after %v", s.config.Timeout)
	}
}

// resultCounter tallies events as they are published
type resultCounter struct {
	rounds int
	falls  int
	belas  int
}

func (c *resultCounter) OnEvent(ev game.GameEvent) {
	switch ev := ev.(type) {
	case game.RoundEndedEvent:
		c.rounds++
		if ev.Fell {
			c.falls++
		}
	case game.BelaDeclaredEvent:
		c.belas++
	}
}

func (s *Simulator) playGameBlocking(seed int64) (GameResult, error) {
	engine, err := game.New(game.Config{
		Players: [game.NumSeats]game.Player{
			{Name: "South", Type: game.Computer},
			{Name: "West", Type: game.Computer},
			{Name: "North", Type: game.Computer},
			{Name: "East", Type: game.Computer},
		},
		Target: s.config.Target,
		Rand:   rand.New(rand.NewSource(seed)),
		Logger: s.config.Logger,
	})
	if err != nil {
		return GameResult{}, err
	}

	counter := &resultCounter{}
	engine.Events().Subscribe(counter)

	if err := engine.Start(); err != nil {
		return GameResult{}, err
	}
	if !engine.Over() {
		return GameResult{}, fmt.Errorf("game did not finish")
	}

	winner, ok := engine.Winner()
	if !ok {
		return GameResult{}, fmt.Errorf("finished game has no winner")
	}

	return GameResult{
		Winner: winner,
		Total:  engine.TotalScore(),
		Rounds: counter.rounds,
		Falls:  counter.falls,
		Belas:  counter.belas,
	}, nil
}
