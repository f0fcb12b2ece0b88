package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/belot/internal/game"
	"github.com/lox/belot/internal/tui"
)

// PlayCmd starts an interactive table
type PlayCmd struct {
	Config  string `kong:"default='belot.hcl',help='Table configuration file'"`
	Name    string `kong:"help='Override the human player name'"`
	Target  int    `kong:"help='Override the winning threshold'"`
	Seed    *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Fast    bool   `kong:"help='Shorten the computer thinking pauses'"`
	LogFile string `kong:"help='Write debug logs to a file'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	cfg, err := LoadTableConfig(c.Config)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file or nowhere
	logW := io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logW = f
	}
	logger := setupLogger(c.Debug, logW)

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	players, humanSeat := cfg.Players()
	if c.Name != "" {
		players[humanSeat].Name = c.Name
	}

	target := cfg.Game.Target
	if c.Target > 0 {
		target = c.Target
	}

	delays := cfg.EngineDelays()
	if c.Fast {
		delays = fastDelays()
	}

	logger.Info("starting table", "seed", seed, "target", target)

	engine, err := game.New(game.Config{
		Players: players,
		Target:  target,
		Delays:  delays,
		Rand:    rand.New(rand.NewSource(seed)),
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	bridge := tui.NewEventBridge(engine, logger)
	model := tui.New(engine, bridge, humanSeat, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if err := engine.Start(); err != nil {
		return err
	}
	_, err = program.Run()
	return err
}

// fastDelays keeps the game readable but snappy
func fastDelays() game.Delays {
	return game.Delays{
		TrumpDecision: 300 * time.Millisecond,
		CardPlay:      150 * time.Millisecond,
		MeldEvaluate:  300 * time.Millisecond,
		MeldShow:      500 * time.Millisecond,
		TrickClear:    300 * time.Millisecond,
		IllegalNotice: time.Second,
		RoundRollover: 300 * time.Millisecond,
	}
}
