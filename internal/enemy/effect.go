package enemy

import "github.com/peterkuimelis/nshapes/internal/game"

// EventType names a domain event emitted by an enemy hook. The values double
// as animation keys for the presentation layer.
type EventType string

const (
	EventTimeStolen        EventType = "time_stolen"
	EventPositionsShuffled EventType = "positions_shuffled"
	EventScoreDecay        EventType = "score_decay"
	EventScorePenalty      EventType = "score_penalty"
	EventCardMutated       EventType = "card_mutated"
	EventTripleAttached    EventType = "triple_attached"
	EventCountdownAttached EventType = "countdown_attached"
	EventBombPlaced        EventType = "bomb_placed"
	EventFaceDown          EventType = "face_down"
	EventCardsRemoved      EventType = "cards_removed"
	EventInstantDeath      EventType = "instant_death"
)

// Event is a single domain event. Only the fields relevant to Type are set.
type Event struct {
	Type    EventType
	Amount  int      // seconds stolen, points lost, cards affected
	CardIDs []string // cards the event refers to
	Order   []string // new board order for positions_shuffled
	Message string
}

// CardModification is a partial update addressed to one board card.
type CardModification struct {
	CardID  string
	Changes game.CardChanges
}

// EffectResult is what every world-mutating hook returns. The zero value is
// the neutral result, so hooks with nothing to do return NoEffect().
type EffectResult struct {
	TimeDelta         int // seconds added to the round timer (negative steals)
	ScoreDelta        int
	CardModifications []CardModification
	CardsToRemove     []game.Card
	Events            []Event
	InstantDeath      bool
}

// NoEffect returns the neutral result.
func NoEffect() EffectResult {
	return EffectResult{}
}

// IsEmpty reports whether applying r would change nothing.
func (r EffectResult) IsEmpty() bool {
	return r.TimeDelta == 0 && r.ScoreDelta == 0 && len(r.CardModifications) == 0 &&
		len(r.CardsToRemove) == 0 && len(r.Events) == 0 && !r.InstantDeath
}

// Merge folds other into r and returns the combined result.
func (r EffectResult) Merge(other EffectResult) EffectResult {
	r.TimeDelta += other.TimeDelta
	r.ScoreDelta += other.ScoreDelta
	r.CardModifications = append(r.CardModifications, other.CardModifications...)
	r.CardsToRemove = append(r.CardsToRemove, other.CardsToRemove...)
	r.Events = append(r.Events, other.Events...)
	r.InstantDeath = r.InstantDeath || other.InstantDeath
	return r
}

// HasEvent reports whether r carries an event of type t.
func (r EffectResult) HasEvent(t EventType) bool {
	for _, e := range r.Events {
		if e.Type == t {
			return true
		}
	}
	return false
}
