package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/lox/belot/internal/game"
	"github.com/lox/belot/internal/simulator"
)

// SimulateCmd plays out all-computer games and reports the aggregate
type SimulateCmd struct {
	Games   int   `kong:"default='1000',help='Number of games to simulate'"`
	Workers int   `kong:"help='Parallel workers (default: number of CPUs)'"`
	Seed    int64 `kong:"default='1',help='Base RNG seed; game i plays with seed+i'"`
	Target  int   `kong:"default='1001',help='Winning threshold'"`
	Timeout int   `kong:"default='30',help='Per-game timeout in seconds'"`
	Debug   bool  `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := setupLogger(c.Debug, os.Stderr)

	sim := simulator.New(simulator.Config{
		Games:   c.Games,
		Workers: c.Workers,
		Seed:    c.Seed,
		Target:  c.Target,
		Timeout: time.Duration(c.Timeout) * time.Second,
		Logger:  logger,
	})

	start := time.Now()
	stats, err := sim.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Println(stats.Summary())
	if stats.Games == 0 {
		return nil
	}
	fmt.Printf("%s win rate: %.1f%%\n", game.TeamA,
		100*float64(stats.Wins[game.TeamA])/float64(stats.Games))
	fmt.Printf("fall rate: %.1f%% of rounds\n",
		100*float64(stats.Falls)/float64(stats.Rounds))
	fmt.Printf("completed in %v (%.0f games/sec)\n",
		elapsed.Round(time.Millisecond), float64(stats.Games)/elapsed.Seconds())
	return nil
}
