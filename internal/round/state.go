package round

import (
	"github.com/peterkuimelis/nshapes/internal/enemy"
	"github.com/peterkuimelis/nshapes/internal/game"
	"github.com/peterkuimelis/nshapes/internal/log"
)

// Snapshot is a consistent read of the round taken under the lock.
type Snapshot struct {
	Enemy           enemy.Info
	UI              enemy.UIModifiers
	Cards           []game.Card
	DeckCount       int
	Stats           game.RoundStats
	ElapsedMs       int
	TimeRemainingMs int
	EnemyDefeated   bool
	Over            bool
	Outcome         Outcome
	Reason          string
}

// Snapshot returns a copy of the current round state.
func (r *Round) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := Snapshot{
		Enemy:           r.info,
		UI:              r.ui,
		Stats:           r.stats.Clone(),
		ElapsedMs:       r.elapsedMs,
		TimeRemainingMs: int(r.timeLeftMs),
		EnemyDefeated:   r.defeated,
		Over:            r.over,
		Outcome:         r.outcome,
		Reason:          r.reason,
	}
	if r.board != nil {
		s.Cards = r.board.Snapshot()
		s.DeckCount = r.board.DeckCount()
	}
	return s
}

// Cards returns a copy of the board in display order.
func (r *Round) Cards() []game.Card {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.board == nil {
		return nil
	}
	return r.board.Snapshot()
}

// Stats returns a copy of the round statistics.
func (r *Round) Stats() game.RoundStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats.Clone()
}

func (r *Round) Enemy() enemy.Info {
	return r.info
}

func (r *Round) Over() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.over
}

func (r *Round) Outcome() Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcome
}

func (r *Round) EnemyDefeated() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.defeated
}

func (r *Round) ElapsedMs() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.elapsedMs
}

func (r *Round) Logger() log.EventLogger {
	return r.logger
}
