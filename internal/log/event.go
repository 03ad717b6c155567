package log

// EventType enumerates all observable round events.
type EventType int

const (
	EventRoundStart EventType = iota
	EventCardDrawn
	EventValidMatch
	EventInvalidMatch
	EventTimeStolen
	EventTimeChange
	EventScoreChange
	EventScoreDecay
	EventPositionsShuffled
	EventCardMutated
	EventTripleAttached
	EventTripleDamaged
	EventTripleCleared
	EventCountdownAttached
	EventCountdownExpired
	EventBombPlaced
	EventBombExploded
	EventFaceDown
	EventCardsRemoved
	EventWeaponTriggered
	EventHintUsed
	EventGraceUsed
	EventDamage
	EventEnemyDefeated
	EventInstantDeath
	EventRoundEnd
)

func (e EventType) String() string {
	switch e {
	case EventRoundStart:
		return "RoundStart"
	case EventCardDrawn:
		return "CardDrawn"
	case EventValidMatch:
		return "ValidMatch"
	case EventInvalidMatch:
		return "InvalidMatch"
	case EventTimeStolen:
		return "TimeStolen"
	case EventTimeChange:
		return "TimeChange"
	case EventScoreChange:
		return "ScoreChange"
	case EventScoreDecay:
		return "ScoreDecay"
	case EventPositionsShuffled:
		return "PositionsShuffled"
	case EventCardMutated:
		return "CardMutated"
	case EventTripleAttached:
		return "TripleAttached"
	case EventTripleDamaged:
		return "TripleDamaged"
	case EventTripleCleared:
		return "TripleCleared"
	case EventCountdownAttached:
		return "CountdownAttached"
	case EventCountdownExpired:
		return "CountdownExpired"
	case EventBombPlaced:
		return "BombPlaced"
	case EventBombExploded:
		return "BombExploded"
	case EventFaceDown:
		return "FaceDown"
	case EventCardsRemoved:
		return "CardsRemoved"
	case EventWeaponTriggered:
		return "WeaponTriggered"
	case EventHintUsed:
		return "HintUsed"
	case EventGraceUsed:
		return "GraceUsed"
	case EventDamage:
		return "Damage"
	case EventEnemyDefeated:
		return "EnemyDefeated"
	case EventInstantDeath:
		return "InstantDeath"
	case EventRoundEnd:
		return "RoundEnd"
	default:
		return "Unknown"
	}
}

// RoundEvent represents a single observable event in a round.
type RoundEvent struct {
	Seq       int       // monotonic sequence number
	ElapsedMs int       // round clock when the event happened
	Enemy     string    // active enemy name
	Type      EventType // event type
	Card      string    // card description (if applicable)
	Amount    int       // seconds, points or card count, depending on Type
	Details   string    // human-readable detail string
}
