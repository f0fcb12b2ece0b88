package game

// fallBase is the fixed award to the opponents when the trump-calling team
// fails to out-score them: all 152 card points plus the 10 last-trick bonus.
const fallBase = 162

// capotBonus is the extra award when the calling team took no tricks at all
const capotBonus = 100

// roundTally is the input to round finalization, after the last-trick bonus
// has been applied to trick scores
type roundTally struct {
	trickScore  [NumTeams]int
	trickCount  [NumTeams]int
	pendingMeld [NumTeams]int
	caller      Team
}

// roundResult is each team's final score contribution for the round
type roundResult struct {
	score [NumTeams]int
	fell  bool
	capot bool
}

// finalizeRound applies the fall rule. The calling team must finish with
// strictly more total points (tricks + melds) than the opponents; otherwise
// everything goes to the other side. Whether the callers took zero tricks is
// decided from the explicit trick counter, never inferred from point totals.
func finalizeRound(t roundTally) roundResult {
	var res roundResult
	caller := t.caller
	opp := caller.Other()

	callerTotal := t.trickScore[caller] + t.pendingMeld[caller]
	oppTotal := t.trickScore[opp] + t.pendingMeld[opp]

	if callerTotal > oppTotal {
		res.score[caller] = callerTotal
		res.score[opp] = oppTotal
		return res
	}

	res.fell = true
	res.capot = t.trickCount[caller] == 0

	allMelds := t.pendingMeld[TeamA] + t.pendingMeld[TeamB]
	award := fallBase + allMelds
	if res.capot {
		award += capotBonus
	}
	res.score[opp] = award
	res.score[caller] = 0
	return res
}

// gameWinner reports whether a team has won the game: at or above the
// target score and strictly ahead of the opponents. A tie at or above the
// target keeps the game going.
func gameWinner(total [NumTeams]int, target int) (Team, bool) {
	if total[TeamA] >= target && total[TeamA] > total[TeamB] {
		return TeamA, true
	}
	if total[TeamB] >= target && total[TeamB] > total[TeamA] {
		return TeamB, true
	}
	return 0, false
}
