package round

import "github.com/peterkuimelis/nshapes/internal/log"

// tickHazards runs bomb and countdown timers down by deltaMs. An expired bomb
// destroys its card and costs time; an expired countdown costs score and
// damage but leaves the card in play.
func (r *Round) tickHazards(deltaMs int) {
	var exploded []string
	for i := range r.board.Cards {
		card := &r.board.Cards[i]
		if card.HasBomb {
			card.BombTimer -= deltaMs
			if card.BombTimer <= 0 {
				card.HasBomb, card.BombTimer = false, 0
				exploded = append(exploded, card.ID)
				r.log(log.NewHazardEvent(r.elapsedMs, r.info.Name, log.EventBombExploded, card.String(), BombPenaltySeconds, "bomb exploded"))
			}
		}
		if card.HasCountdown {
			card.CountdownTimer -= deltaMs
			if card.CountdownTimer <= 0 {
				card.HasCountdown, card.CountdownTimer = false, 0
				r.log(log.NewHazardEvent(r.elapsedMs, r.info.Name, log.EventCountdownExpired, card.String(), CountdownDamage, "countdown expired"))
				r.stats.RecordDamage(CountdownDamage)
				r.log(log.NewDamageEvent(r.elapsedMs, r.info.Name, CountdownDamage, "countdown expired"))
				r.addScore(-CountdownPenaltyScore, "countdown expired")
			}
		}
	}
	if len(exploded) == 0 {
		return
	}
	removed := r.board.Remove(exploded...)
	r.log(log.NewCardsRemovedEvent(r.elapsedMs, r.info.Name, cardNames(removed), "bomb"))
	r.addTime(-BombPenaltySeconds*len(exploded), "bomb exploded")
	if r.timeLeftMs <= 0 {
		r.syncStats()
		r.finishByScore("time is up")
	}
}
