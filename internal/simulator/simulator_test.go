package simulator

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/belot/internal/game"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestNew(t *testing.T) {
	config := Config{
		Games:  100,
		Seed:   12345,
		Target: 501,
		Logger: quietLogger(),
	}

	simulator := New(config)
	if simulator == nil {
		t.Fatal("New() returned nil")
	}
	if simulator.config.Games != 100 {
		t.Errorf("Expected 100 games, got %d", simulator.config.Games)
	}
	if simulator.config.Workers <= 0 {
		t.Errorf("Expected a positive worker default, got %d", simulator.config.Workers)
	}
	if simulator.config.Timeout <= 0 {
		t.Errorf("Expected a timeout default, got %v", simulator.config.Timeout)
	}
}

func TestSimulatorRun(t *testing.T) {
	config := Config{
		Games:   4,
		Workers: 2,
		Seed:    42,
		Target:  301, // short games keep the test fast
		Timeout: 30 * time.Second,
		Logger:  quietLogger(),
	}

	stats, err := New(config).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if stats.Games != 4 {
		t.Errorf("Expected 4 games, got %d", stats.Games)
	}
	if stats.Wins[game.TeamA]+stats.Wins[game.TeamB] != 4 {
		t.Errorf("Win counts %v don't sum to 4", stats.Wins)
	}
	if stats.Rounds < 4 {
		t.Errorf("Expected at least one round per game, got %d", stats.Rounds)
	}
}

func TestSimulatorDeterministicForSeed(t *testing.T) {
	config := Config{
		Games:   3,
		Workers: 3,
		Seed:    7,
		Target:  301,
		Timeout: 30 * time.Second,
		Logger:  quietLogger(),
	}

	first, err := New(config).Run(context.Background())
	if err != nil {
		t.Fatalf("first Run() failed: %v", err)
	}
	second, err := New(config).Run(context.Background())
	if err != nil {
		t.Fatalf("second Run() failed: %v", err)
	}

	if *first != *second {
		t.Errorf("Same seed produced different statistics: %+v vs %+v", first, second)
	}
}

func TestStatisticsSummary(t *testing.T) {
	stats := &Statistics{}
	if stats.Summary() != "no games played" {
		t.Errorf("Unexpected empty summary: %q", stats.Summary())
	}

	stats.Add(GameResult{Winner: game.TeamA, Rounds: 8, Falls: 1, Belas: 2})
	stats.Add(GameResult{Winner: game.TeamB, Rounds: 6})

	if err := stats.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if stats.Rounds != 14 || stats.Falls != 1 || stats.Belas != 2 {
		t.Errorf("Unexpected totals: %+v", stats)
	}
}

func TestStatisticsValidate(t *testing.T) {
	stats := &Statistics{Games: 2, Wins: [game.NumTeams]int{1, 0}, Rounds: 4}
	if err := stats.Validate(); err == nil {
		t.Error("Expected validation error for mismatched win counts")
	}
}
