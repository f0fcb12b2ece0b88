package game

import (
	"github.com/lox/belot/internal/deck"
)

// ChooseTrump consumes a trump decision from a seat: a suit fixes trump for
// the round, nil passes. Decisions from any seat other than the current
// decider are ignored without state change, as is a dealer pass once every
// other seat has passed.
func (e *Engine) ChooseTrump(seat Seat, suit *deck.Suit) {
	e.mu.Lock()
	defer e.mu.Unlock()

	d := TrumpDecision{Pass: suit == nil}
	if suit != nil {
		d.Suit = *suit
	}
	e.chooseTrumpLocked(seat, d)
}

func (e *Engine) chooseTrumpLocked(seat Seat, d TrumpDecision) {
	if e.over || e.round == nil || e.phase != PhaseTrumpSelection {
		return
	}
	r := e.round
	if !r.deciderSet || r.decider != seat {
		e.logger.Debug("trump decision from non-decider ignored", "seat", seat)
		return
	}

	if !d.Pass {
		r.trump = d.Suit
		r.trumpSet = true
		r.chooser = seat
		r.deciderSet = false
		e.logger.Info("trump set", "suit", d.Suit, "chooser", e.players[seat].Name)
		e.publish(TrumpSetEvent{eventStamp: stamp(), Chooser: seat, Trump: d.Suit})
		e.beginMeldCheckLocked()
		return
	}

	// Once the three non-dealer seats have passed, the dealer must choose.
	// Computer dealers get re-prompted until their policy names a suit.
	if seat == r.dealer && len(r.passes) >= NumSeats-1 {
		e.logger.Debug("dealer pass denied, must choose trump")
		e.publish(AwaitingTrumpEvent{eventStamp: stamp(), Decider: seat, Forced: true})
		e.promptTrumpLocked()
		return
	}

	r.passes[seat] = true
	r.decider = seat.Next()
	forced := len(r.passes) >= NumSeats-1

	e.logger.Debug("trump passed", "seat", e.players[seat].Name, "next", e.players[r.decider].Name)
	e.publish(AwaitingTrumpEvent{eventStamp: stamp(), Decider: r.decider, Forced: forced})
	e.promptTrumpLocked()
}

// promptTrumpLocked schedules the current decider's decision if that seat
// is computer-controlled; interactive seats decide via ChooseTrump commands
func (e *Engine) promptTrumpLocked() {
	r := e.round
	if !r.deciderSet {
		return
	}
	seat := r.decider
	agent := e.agents[seat]
	if agent.Interactive() {
		return
	}

	seq := e.roundSeq
	e.schedule(e.delays.TrumpDecision, func() {
		if e.roundSeq != seq || e.phase != PhaseTrumpSelection {
			return
		}
		if !e.round.deciderSet || e.round.decider != seat {
			return
		}
		hand := append([]deck.Card(nil), e.round.hands[seat]...)
		e.chooseTrumpLocked(seat, agent.ChooseTrump(hand))
	})
}

// beginMeldCheckLocked runs the evaluating pause, computes and publishes
// melds, then holds the display pause before trick play begins
func (e *Engine) beginMeldCheckLocked() {
	e.phase = PhaseMeldCheck
	seq := e.roundSeq

	e.schedule(e.delays.MeldEvaluate, func() {
		if e.roundSeq != seq || e.phase != PhaseMeldCheck {
			return
		}
		e.computeMeldsLocked()
		e.phase = PhaseMeldShow

		e.schedule(e.delays.MeldShow, func() {
			if e.roundSeq != seq || e.phase != PhaseMeldShow {
				return
			}
			e.startTrickPlayLocked()
		})
	})
}

// computeMeldsLocked scans all hands, resolves which team's melds count and
// stores the credit as pending points for round-end finalization
func (e *Engine) computeMeldsLocked() {
	r := e.round

	var all []Meld
	for s := Seat(0); s < NumSeats; s++ {
		all = append(all, FindMelds(s, r.hands[s])...)
	}

	credit := CreditMelds(all, r.trump, r.turnOrder())
	r.rawMeld = credit.Raw
	r.melds = credit.Surviving
	if credit.HasWinner {
		r.pendingMeld[credit.Winner] += credit.Credited
		e.logger.Info("melds credited",
			"team", credit.Winner,
			"points", credit.Credited,
			"melds", len(credit.Surviving))
	}

	e.publish(MeldsComputedEvent{
		eventStamp: stamp(),
		Melds:      append([]Meld(nil), credit.Surviving...),
		Raw:        credit.Raw,
		HasWinner:  credit.HasWinner,
		Winner:     credit.Winner,
		Credited:   credit.Credited,
	})
}
