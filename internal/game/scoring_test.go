package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinalizeRoundCallerWins(t *testing.T) {
	res := finalizeRound(roundTally{
		trickScore:  [NumTeams]int{100, 62},
		trickCount:  [NumTeams]int{5, 3},
		pendingMeld: [NumTeams]int{20, 0},
		caller:      TeamA,
	})

	assert.False(t, res.fell)
	assert.Equal(t, 120, res.score[TeamA])
	assert.Equal(t, 62, res.score[TeamB])
}

func TestFinalizeRoundTieMeansFall(t *testing.T) {
	// Not strictly greater: 81+0 vs 81+0 is a fall for the caller
	res := finalizeRound(roundTally{
		trickScore: [NumTeams]int{81, 81},
		trickCount: [NumTeams]int{4, 4},
		caller:     TeamA,
	})

	assert.True(t, res.fell)
	assert.False(t, res.capot)
	assert.Equal(t, 0, res.score[TeamA])
	assert.Equal(t, 162, res.score[TeamB])
}

func TestFinalizeRoundFallAwardsAllMelds(t *testing.T) {
	res := finalizeRound(roundTally{
		trickScore:  [NumTeams]int{60, 102},
		trickCount:  [NumTeams]int{2, 6},
		pendingMeld: [NumTeams]int{50, 20},
		caller:      TeamA,
	})

	assert.True(t, res.fell)
	assert.Equal(t, 0, res.score[TeamA])
	// 162 plus both teams' pending melds
	assert.Equal(t, 162+70, res.score[TeamB])
}

func TestFinalizeRoundZeroTricksBonus(t *testing.T) {
	res := finalizeRound(roundTally{
		trickScore: [NumTeams]int{0, 172},
		trickCount: [NumTeams]int{0, 8},
		caller:     TeamA,
	})

	assert.True(t, res.fell)
	assert.True(t, res.capot)
	assert.Equal(t, 262, res.score[TeamB])
}

func TestFinalizeRoundLastTrickOnlyIsNotZeroTricks(t *testing.T) {
	// The caller's only points are the 10-point last-trick bonus plus a
	// pointless trick: the explicit trick count says they won a trick, so
	// no zero-tricks bonus applies.
	res := finalizeRound(roundTally{
		trickScore: [NumTeams]int{10, 152},
		trickCount: [NumTeams]int{1, 7},
		caller:     TeamA,
	})

	assert.True(t, res.fell)
	assert.False(t, res.capot)
	assert.Equal(t, 162, res.score[TeamB])
}

func TestFinalizeRoundCallerTeamB(t *testing.T) {
	res := finalizeRound(roundTally{
		trickScore:  [NumTeams]int{120, 42},
		trickCount:  [NumTeams]int{6, 2},
		pendingMeld: [NumTeams]int{0, 20},
		caller:      TeamB,
	})

	assert.True(t, res.fell)
	assert.Equal(t, 0, res.score[TeamB])
	assert.Equal(t, 162+20, res.score[TeamA])
}

func TestGameWinner(t *testing.T) {
	tests := []struct {
		name    string
		total   [NumTeams]int
		target  int
		wantWin bool
		winner  Team
	}{
		{"below target", [NumTeams]int{900, 800}, 1001, false, 0},
		{"exactly at target and ahead", [NumTeams]int{1001, 1000}, 1001, true, TeamA},
		{"above target but tied", [NumTeams]int{1100, 1100}, 1001, false, 0},
		{"above target but behind", [NumTeams]int{1001, 1200}, 1001, true, TeamB},
		{"both above, one ahead", [NumTeams]int{1050, 1040}, 1001, true, TeamA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winner, ok := gameWinner(tt.total, tt.target)
			assert.Equal(t, tt.wantWin, ok)
			if tt.wantWin {
				assert.Equal(t, tt.winner, winner)
			}
		})
	}
}
