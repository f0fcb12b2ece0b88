package game

import (
	"fmt"
	"sort"

	"github.com/lox/belot/internal/deck"
)

// MeldKind tags the category of a scoring combination
type MeldKind int

const (
	FourOfAKind MeldKind = iota
	Run
)

// String returns the string representation of the meld kind
func (k MeldKind) String() string {
	if k == FourOfAKind {
		return "four of a kind"
	}
	return "run"
}

// Meld is one scoring combination found in a single hand
type Meld struct {
	Seat   Seat
	Kind   MeldKind
	Points int
	Cards  []deck.Card
}

// String describes the meld for display, e.g. "run of 4 (♥) 50pts"
func (m Meld) String() string {
	if m.Kind == FourOfAKind {
		return fmt.Sprintf("four %ss %dpts", m.Cards[0].Rank, m.Points)
	}
	return fmt.Sprintf("run of %d (%s) %dpts", len(m.Cards), m.Cards[0].Suit, m.Points)
}

// allTrump reports whether every card of the meld is in the trump suit
func (m Meld) allTrump(trump deck.Suit) bool {
	for _, c := range m.Cards {
		if c.Suit != trump {
			return false
		}
	}
	return true
}

// fourOfAKindPoints returns the meld value of four cards of the given rank.
// Four sevens or eights score nothing.
func fourOfAKindPoints(r deck.Rank) int {
	switch r {
	case deck.Jack:
		return 200
	case deck.Nine:
		return 150
	case deck.Ace, deck.Ten, deck.King, deck.Queen:
		return 100
	default:
		return 0
	}
}

// runPoints returns the meld value of a same-suit consecutive run
func runPoints(length int) int {
	switch {
	case length >= 5:
		return 100
	case length == 4:
		return 50
	case length == 3:
		return 20
	default:
		return 0
	}
}

// FindMelds scans a dealt hand for four-of-a-kinds and maximal same-suit
// runs of three or more. Run adjacency uses plain 7..A rank order, never the
// trump strength order.
func FindMelds(seat Seat, hand []deck.Card) []Meld {
	var melds []Meld

	byRank := make(map[deck.Rank][]deck.Card)
	bySuit := make(map[deck.Suit][]deck.Card)
	for _, c := range hand {
		byRank[c.Rank] = append(byRank[c.Rank], c)
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
	}

	for _, rank := range deck.Ranks {
		group := byRank[rank]
		if len(group) != 4 {
			continue
		}
		pts := fourOfAKindPoints(rank)
		if pts == 0 {
			continue
		}
		melds = append(melds, Meld{
			Seat:   seat,
			Kind:   FourOfAKind,
			Points: pts,
			Cards:  append([]deck.Card(nil), group...),
		})
	}

	for _, suit := range deck.Suits {
		cards := bySuit[suit]
		if len(cards) < 3 {
			continue
		}
		sort.Slice(cards, func(i, j int) bool {
			return runOrder(cards[i].Rank) < runOrder(cards[j].Rank)
		})
		for _, run := range maximalRuns(cards) {
			melds = append(melds, Meld{
				Seat:   seat,
				Kind:   Run,
				Points: runPoints(len(run)),
				Cards:  run,
			})
		}
	}

	return melds
}

// maximalRuns splits a rank-sorted single-suit card list into maximal
// consecutive runs of length >= 3. A 5-card run is reported once, not as
// overlapping sub-runs.
func maximalRuns(sorted []deck.Card) [][]deck.Card {
	var runs [][]deck.Card
	current := []deck.Card{sorted[0]}

	for i := 1; i < len(sorted); i++ {
		if runOrder(sorted[i].Rank) == runOrder(sorted[i-1].Rank)+1 {
			current = append(current, sorted[i])
			continue
		}
		if len(current) >= 3 {
			runs = append(runs, current)
		}
		current = []deck.Card{sorted[i]}
	}
	if len(current) >= 3 {
		runs = append(runs, current)
	}
	return runs
}

// MeldCredit is the outcome of comparing both teams' melds
type MeldCredit struct {
	HasWinner bool
	Winner    Team
	Credited  int            // total awarded to the winning team (both teams' raw sums)
	Raw       [NumTeams]int  // per-team raw meld totals, for display
	Surviving []Meld         // the winning team's melds; losers are suppressed
}

// CreditMelds decides which team's melds count this round. Each team's
// single best meld is compared: higher points win, then an all-trump meld
// beats a plain one, then the meld whose seat acts earliest in post-dealer
// turn order. The winning team is credited with the sum of BOTH teams' raw
// meld points; the losing team's melds are dropped from display.
func CreditMelds(all []Meld, trump deck.Suit, order []Seat) MeldCredit {
	var credit MeldCredit
	if len(all) == 0 {
		return credit
	}

	turnPos := make(map[Seat]int, len(order))
	for i, s := range order {
		turnPos[s] = i
	}

	stronger := func(a, b Meld) bool {
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		aTrump, bTrump := a.allTrump(trump), b.allTrump(trump)
		if aTrump != bTrump {
			return aTrump
		}
		return turnPos[a.Seat] < turnPos[b.Seat]
	}

	var best [NumTeams]*Meld
	for i := range all {
		m := all[i]
		credit.Raw[m.Seat.Team()] += m.Points
		t := m.Seat.Team()
		if best[t] == nil || stronger(m, *best[t]) {
			best[t] = &all[i]
		}
	}

	var winner Team
	switch {
	case best[TeamA] == nil && best[TeamB] == nil:
		return credit
	case best[TeamB] == nil:
		winner = TeamA
	case best[TeamA] == nil:
		winner = TeamB
	case stronger(*best[TeamA], *best[TeamB]):
		winner = TeamA
	default:
		winner = TeamB
	}

	credit.HasWinner = true
	credit.Winner = winner
	credit.Credited = credit.Raw[TeamA] + credit.Raw[TeamB]
	for _, m := range all {
		if m.Seat.Team() == winner {
			credit.Surviving = append(credit.Surviving, m)
		}
	}
	return credit
}
