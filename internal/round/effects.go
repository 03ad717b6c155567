package round

import (
	"github.com/peterkuimelis/nshapes/internal/enemy"
	"github.com/peterkuimelis/nshapes/internal/log"
)

// Apply folds an effect result into the round. It is the same reducer the
// controller uses for every enemy hook, exported for tools that inject effects.
func (r *Round) Apply(res enemy.EffectResult, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started || r.over {
		return
	}
	r.apply(res, reason)
	r.afterMutation()
}

// apply folds res into board, score and timer. Order: card modifications,
// removals, events, score, time, instant death.
func (r *Round) apply(res enemy.EffectResult, reason string) {
	if r.over || res.IsEmpty() {
		return
	}

	for _, mod := range res.CardModifications {
		if card := r.board.Find(mod.CardID); card != nil {
			card.Apply(mod.Changes)
		}
	}

	if len(res.CardsToRemove) > 0 {
		ids := make([]string, len(res.CardsToRemove))
		for i, c := range res.CardsToRemove {
			ids[i] = c.ID
		}
		removed := r.board.Remove(ids...)
		if len(removed) > 0 {
			r.log(log.NewCardsRemovedEvent(r.elapsedMs, r.info.Name, cardNames(removed), reason))
		}
	}

	for _, ev := range res.Events {
		r.applyEvent(ev)
	}

	r.addScore(res.ScoreDelta, reason)
	r.addTime(res.TimeDelta, reason)

	if res.InstantDeath {
		r.log(log.NewInstantDeathEvent(r.elapsedMs, r.info.Name, reason))
		r.finish(OutcomeInstantDeath, r.info.Name+" delivered instant death")
	}
}

// applyEvent performs the board side of an event and records it.
func (r *Round) applyEvent(ev enemy.Event) {
	switch ev.Type {
	case enemy.EventTimeStolen:
		r.log(log.NewTimeStolenEvent(r.elapsedMs, r.info.Name, ev.Amount))
	case enemy.EventPositionsShuffled:
		r.board.Reorder(ev.Order)
		r.log(log.NewShuffleEvent(r.elapsedMs, r.info.Name, len(ev.Order)))
	case enemy.EventScoreDecay:
		r.log(log.NewScoreDecayEvent(r.elapsedMs, r.info.Name, ev.Amount))
	case enemy.EventCardMutated:
		for _, id := range ev.CardIDs {
			if card := r.board.Find(id); card != nil {
				r.log(log.NewCardMutatedEvent(r.elapsedMs, r.info.Name, card.String()))
			}
		}
	case enemy.EventTripleAttached:
		r.logCards(ev.CardIDs, log.EventTripleAttached, "card armored", 3)
	case enemy.EventCountdownAttached:
		r.logCards(ev.CardIDs, log.EventCountdownAttached, "countdown started", ev.Amount)
	case enemy.EventBombPlaced:
		r.logCards(ev.CardIDs, log.EventBombPlaced, "bomb planted", ev.Amount)
	case enemy.EventFaceDown:
		r.logCards(ev.CardIDs, log.EventFaceDown, "card hidden", 0)
	}
}

func (r *Round) logCards(ids []string, t log.EventType, what string, amount int) {
	for _, id := range ids {
		if card := r.board.Find(id); card != nil {
			r.log(log.NewHazardEvent(r.elapsedMs, r.info.Name, t, card.String(), amount, what))
		}
	}
}
