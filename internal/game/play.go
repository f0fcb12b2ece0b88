package game

import (
	"github.com/lox/belot/internal/deck"
)

// startTrickPlayLocked opens the play phase; the seat after the dealer
// leads the first trick
func (e *Engine) startTrickPlayLocked() {
	r := e.round
	e.phase = PhasePlaying
	r.active = r.dealer.Next()
	r.activeSet = true

	e.publish(AwaitingPlayEvent{eventStamp: stamp(), Seat: r.active})
	e.promptPlayLocked()
}

// PlayCard consumes a card play from a seat. Commands from the wrong seat
// or with a card the seat doesn't hold are ignored without state change; a
// held card outside the legal set is rejected with a transient notice.
func (e *Engine) PlayCard(seat Seat, card deck.Card) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.playCardLocked(seat, card)
}

func (e *Engine) playCardLocked(seat Seat, card deck.Card) {
	if e.over || e.round == nil || e.phase != PhasePlaying {
		return
	}
	r := e.round
	if !r.activeSet || r.active != seat {
		e.logger.Debug("play from inactive seat ignored", "seat", seat)
		return
	}
	if !containsCard(r.hands[seat], card) {
		e.logger.Debug("play of card not in hand ignored", "seat", seat, "card", card)
		return
	}

	legal := legalPlays(r.hands[seat], r.trick, r.trump)
	if !containsCard(legal, card) {
		e.rejectIllegalLocked(seat, card)
		return
	}

	r.illegalMsg = ""
	r.hands[seat], _ = removeCard(r.hands[seat], card)
	r.trick = append(r.trick, Play{Seat: seat, Card: card})

	e.logger.Debug("card played", "seat", e.players[seat].Name, "card", card)
	e.publish(CardPlayedEvent{eventStamp: stamp(), Seat: seat, Card: card})

	// Bela is checked after removal so the partner honor must still be held
	e.checkBelaLocked(seat, card)

	if len(r.trick) < NumSeats {
		r.active = seat.Next()
		e.publish(AwaitingPlayEvent{eventStamp: stamp(), Seat: r.active})
		e.promptPlayLocked()
		return
	}

	r.activeSet = false
	seq := e.roundSeq
	e.schedule(e.delays.TrickClear, func() {
		if e.roundSeq != seq || e.phase != PhasePlaying || len(e.round.trick) != NumSeats {
			return
		}
		e.resolveTrickLocked()
	})
}

// rejectIllegalLocked surfaces an illegal-move reason and schedules its
// auto-clear; the hand is untouched
func (e *Engine) rejectIllegalLocked(seat Seat, card deck.Card) {
	r := e.round
	reason := illegalReason(r.hands[seat], r.trick, r.trump)
	r.illegalMsg = reason
	e.noticeSeq++
	notice := e.noticeSeq

	e.logger.Debug("illegal play rejected", "seat", e.players[seat].Name, "card", card, "reason", reason)
	e.publish(IllegalMoveEvent{eventStamp: stamp(), Seat: seat, Card: card, Reason: reason})

	seq := e.roundSeq
	e.schedule(e.delays.IllegalNotice, func() {
		if e.roundSeq != seq || e.noticeSeq != notice {
			return
		}
		e.round.illegalMsg = ""
	})
}

// promptPlayLocked schedules the active seat's play if computer-controlled
func (e *Engine) promptPlayLocked() {
	r := e.round
	if !r.activeSet {
		return
	}
	seat := r.active
	agent := e.agents[seat]
	if agent.Interactive() {
		return
	}

	seq := e.roundSeq
	e.schedule(e.delays.CardPlay, func() {
		if e.roundSeq != seq || e.phase != PhasePlaying {
			return
		}
		r := e.round
		if !r.activeSet || r.active != seat || len(r.hands[seat]) == 0 {
			return
		}
		view := TableView{
			Seat:       seat,
			Hand:       append([]deck.Card(nil), r.hands[seat]...),
			Legal:      legalPlays(r.hands[seat], r.trick, r.trump),
			Trick:      append([]Play(nil), r.trick...),
			Trump:      r.trump,
			RoundScore: r.trickScore,
		}
		e.playCardLocked(seat, agent.PlayCard(view))
	})
}

// checkBelaLocked triggers the bela declaration when a trump queen or king
// is played while its partner honor is still in hand. Computer seats
// declare automatically; human seats get a yes/no offer.
func (e *Engine) checkBelaLocked(seat Seat, card deck.Card) {
	r := e.round
	if r.belaCalled || !r.trumpSet || card.Suit != r.trump {
		return
	}
	if card.Rank != deck.Queen && card.Rank != deck.King {
		return
	}

	partner := deck.Queen
	if card.Rank == deck.Queen {
		partner = deck.King
	}
	if !containsCard(r.hands[seat], deck.NewCard(r.trump, partner)) {
		return
	}

	if e.agents[seat].Interactive() {
		r.belaOffer = &BelaOffer{Seat: seat, Played: card}
		e.publish(BelaOfferedEvent{eventStamp: stamp(), Seat: seat, Played: card})
		return
	}
	if e.agents[seat].DeclareBela() {
		e.declareBelaLocked(seat)
	}
}

// DeclareBela resolves a pending bela offer in the affirmative, adding +20
// to the declaring seat's team's pending melds
func (e *Engine) DeclareBela(seat Seat) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.over || e.round == nil {
		return
	}
	offer := e.round.belaOffer
	if offer == nil || offer.Seat != seat {
		return
	}
	e.declareBelaLocked(seat)
}

// DeclineBela dismisses a pending bela offer without declaring
func (e *Engine) DeclineBela(seat Seat) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.round == nil {
		return
	}
	offer := e.round.belaOffer
	if offer == nil || offer.Seat != seat {
		return
	}
	e.round.belaOffer = nil
}

func (e *Engine) declareBelaLocked(seat Seat) {
	r := e.round
	if r.belaCalled {
		return
	}
	r.belaCalled = true
	r.belaOffer = nil
	r.pendingMeld[seat.Team()] += 20

	e.logger.Info("bela declared", "seat", e.players[seat].Name, "team", seat.Team())
	e.publish(BelaDeclaredEvent{eventStamp: stamp(), Seat: seat, Team: seat.Team()})
}

// resolveTrickLocked determines the trick winner, credits the points and
// either continues play or finalizes the round
func (e *Engine) resolveTrickLocked() {
	r := e.round
	winner := trickWinner(r.trick, r.trump)
	pts := trickPoints(r.trick, r.trump)
	team := winner.Team()

	r.trickScore[team] += pts
	r.trickCount[team]++
	r.tricksDone++

	plays := r.trick
	r.trick = nil

	e.logger.Debug("trick resolved", "winner", e.players[winner].Name, "points", pts)
	e.publish(TrickResolvedEvent{eventStamp: stamp(), Plays: plays, Winner: winner, Points: pts})

	if r.handsEmpty() {
		e.finalizeRoundLocked(winner)
		return
	}

	r.active = winner
	r.activeSet = true
	e.publish(AwaitingPlayEvent{eventStamp: stamp(), Seat: winner})
	e.promptPlayLocked()
}

// finalizeRoundLocked applies the last-trick bonus and the fall rule, adds
// the round to the running totals, and either ends the game or rolls the
// dealer forward into a new round
func (e *Engine) finalizeRoundLocked(lastWinner Seat) {
	r := e.round
	r.belaOffer = nil
	r.trickScore[lastWinner.Team()] += lastTrickBonus

	res := finalizeRound(roundTally{
		trickScore:  r.trickScore,
		trickCount:  r.trickCount,
		pendingMeld: r.pendingMeld,
		caller:      r.chooser.Team(),
	})

	e.total[TeamA] += res.score[TeamA]
	e.total[TeamB] += res.score[TeamB]
	e.phase = PhaseRoundOver

	e.logger.Info("round ended",
		"round", r.number,
		"scoreA", res.score[TeamA],
		"scoreB", res.score[TeamB],
		"totalA", e.total[TeamA],
		"totalB", e.total[TeamB],
		"fell", res.fell)

	e.publish(RoundEndedEvent{
		eventStamp: stamp(),
		Round:      r.number,
		RoundScore: res.score,
		Total:      e.total,
		Caller:     r.chooser.Team(),
		Fell:       res.fell,
		Capot:      res.capot,
	})

	if winner, ok := gameWinner(e.total, e.target); ok {
		e.over = true
		e.winner = winner
		e.phase = PhaseGameOver
		e.logger.Info("game over", "winner", winner, "totalA", e.total[TeamA], "totalB", e.total[TeamB])
		e.publish(GameEndedEvent{eventStamp: stamp(), Winner: winner, Total: e.total})
		return
	}

	seq := e.roundSeq
	number, dealer := r.number, r.dealer
	e.schedule(e.delays.RoundRollover, func() {
		if e.roundSeq != seq || e.phase != PhaseRoundOver {
			return
		}
		e.startRoundLocked(number+1, dealer.Next())
	})
}
