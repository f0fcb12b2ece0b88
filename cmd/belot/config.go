package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/belot/internal/game"
)

// TableConfig represents the complete table configuration
type TableConfig struct {
	Game   *GameSettings  `hcl:"game,block"`
	Seats  []SeatConfig   `hcl:"seat,block"`
	Delays *DelaySettings `hcl:"delays,block"`
}

// GameSettings contains game-level configuration
type GameSettings struct {
	Target int `hcl:"target,optional"`
}

// SeatConfig defines one seat at the table, in clockwise order. Seats 0 and
// 2 partner against seats 1 and 3.
type SeatConfig struct {
	Name   string `hcl:"name,label"`
	Type   string `hcl:"type,optional"` // "human" or "computer"
	Avatar string `hcl:"avatar,optional"`
}

// DelaySettings overrides the computer pacing, in milliseconds
type DelaySettings struct {
	TrumpDecisionMs int `hcl:"trump_decision_ms,optional"`
	CardPlayMs      int `hcl:"card_play_ms,optional"`
	MeldEvaluateMs  int `hcl:"meld_evaluate_ms,optional"`
	MeldShowMs      int `hcl:"meld_show_ms,optional"`
	TrickClearMs    int `hcl:"trick_clear_ms,optional"`
	IllegalNoticeMs int `hcl:"illegal_notice_ms,optional"`
	RoundRolloverMs int `hcl:"round_rollover_ms,optional"`
}

// DefaultTableConfig returns the default table: one human seat partnered
// with a computer against two more computers
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		Game: &GameSettings{Target: game.DefaultTarget},
		Seats: []SeatConfig{
			{Name: "You", Type: "human", Avatar: "🧑"},
			{Name: "West", Type: "computer", Avatar: "🤖"},
			{Name: "North", Type: "computer", Avatar: "🦊"},
			{Name: "East", Type: "computer", Avatar: "🐻"},
		},
	}
}

// LoadTableConfig loads configuration from an HCL file, falling back to
// defaults when the file doesn't exist
func LoadTableConfig(filename string) (*TableConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultTableConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config TableConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Game == nil {
		config.Game = &GameSettings{}
	}
	if config.Game.Target == 0 {
		config.Game.Target = game.DefaultTarget
	}
	if len(config.Seats) == 0 {
		config.Seats = DefaultTableConfig().Seats
	}
	if len(config.Seats) != game.NumSeats {
		return nil, fmt.Errorf("table needs exactly %d seats, got %d", game.NumSeats, len(config.Seats))
	}
	for i := range config.Seats {
		switch config.Seats[i].Type {
		case "":
			config.Seats[i].Type = "computer"
		case "human", "computer":
		default:
			return nil, fmt.Errorf("seat %q has unknown type %q", config.Seats[i].Name, config.Seats[i].Type)
		}
	}

	return &config, nil
}

// Players converts the seat configs into engine players and returns the
// first human seat for the TUI to control
func (c *TableConfig) Players() ([game.NumSeats]game.Player, game.Seat) {
	var players [game.NumSeats]game.Player
	human := game.Seat(0)
	humanFound := false

	for i, seat := range c.Seats {
		typ := game.Computer
		if seat.Type == "human" {
			typ = game.Human
			if !humanFound {
				human = game.Seat(i)
				humanFound = true
			}
		}
		avatar := seat.Avatar
		if avatar == "" {
			avatar = "🤖"
		}
		players[i] = game.Player{Name: seat.Name, Type: typ, Avatar: avatar}
	}
	return players, human
}

// EngineDelays converts the millisecond overrides into engine delays,
// keeping the defaults for anything unset
func (c *TableConfig) EngineDelays() game.Delays {
	delays := game.DefaultDelays()
	d := c.Delays
	if d == nil {
		return delays
	}
	if d.TrumpDecisionMs > 0 {
		delays.TrumpDecision = time.Duration(d.TrumpDecisionMs) * time.Millisecond
	}
	if d.CardPlayMs > 0 {
		delays.CardPlay = time.Duration(d.CardPlayMs) * time.Millisecond
	}
	if d.MeldEvaluateMs > 0 {
		delays.MeldEvaluate = time.Duration(d.MeldEvaluateMs) * time.Millisecond
	}
	if d.MeldShowMs > 0 {
		delays.MeldShow = time.Duration(d.MeldShowMs) * time.Millisecond
	}
	if d.TrickClearMs > 0 {
		delays.TrickClear = time.Duration(d.TrickClearMs) * time.Millisecond
	}
	if d.IllegalNoticeMs > 0 {
		delays.IllegalNotice = time.Duration(d.IllegalNoticeMs) * time.Millisecond
	}
	if d.RoundRolloverMs > 0 {
		delays.RoundRollover = time.Duration(d.RoundRolloverMs) * time.Millisecond
	}
	return delays
}
