package game

// RoundStats accumulates everything defeat conditions are evaluated against.
// Counters only grow within a round; CurrentScore, TimeRemaining and
// CardsRemaining move freely. Nil maps read as empty.
type RoundStats struct {
	TotalMatches   int
	CurrentStreak  int
	MaxStreak      int
	InvalidMatches int
	MatchTimes     []int // elapsed ms of every valid match, in order

	TimeRemaining  int // seconds
	CardsRemaining int

	TripleCardsCleared    int
	FaceDownCardsMatched  int
	BombsDefused          int
	CountdownCardsMatched int

	ShapesMatched    map[Shape]bool
	ColorsMatched    map[Color]bool
	ColorMatchCounts map[Color]int

	AllDifferentMatches int
	AllSameColorMatches int
	SquiggleMatches     int

	GracesUsed      int
	GracesRemaining int
	HintsUsed       int
	HintsRemaining  int
	DamageReceived  int

	WeaponEffectsTriggered map[WeaponType]bool

	CurrentScore int
	TargetScore  int
}

// NewRoundStats creates stats for a fresh round.
func NewRoundStats(targetScore, hints, graces int) *RoundStats {
	return &RoundStats{
		TargetScore:            targetScore,
		HintsRemaining:         hints,
		GracesRemaining:        graces,
		ShapesMatched:          make(map[Shape]bool),
		ColorsMatched:          make(map[Color]bool),
		ColorMatchCounts:       make(map[Color]int),
		WeaponEffectsTriggered: make(map[WeaponType]bool),
	}
}

// RecordValidMatch folds a resolved set into the counters. Hazard counters
// (bombs, countdowns, face-down) are credited per matched card.
func (s *RoundStats) RecordValidMatch(cards []Card, elapsedMs int) {
	s.ensureMaps()
	s.TotalMatches++
	s.CurrentStreak++
	if s.CurrentStreak > s.MaxStreak {
		s.MaxStreak = s.CurrentStreak
	}
	s.MatchTimes = append(s.MatchTimes, elapsedMs)

	for _, c := range cards {
		s.ShapesMatched[c.Shape] = true
		s.ColorsMatched[c.Color] = true
		if c.HasBomb {
			s.BombsDefused++
		}
		if c.HasCountdown {
			s.CountdownCardsMatched++
		}
		if c.FaceDown {
			s.FaceDownCardsMatched++
		}
	}
	if IsAllSameColor(cards) {
		s.AllSameColorMatches++
		s.ColorMatchCounts[cards[0].Color]++
	} else {
		for _, c := range cards {
			s.ColorMatchCounts[c.Color]++
		}
	}
	if IsAllDifferent(cards) {
		s.AllDifferentMatches++
	}
	if IsAllShape(cards, ShapeSquiggle) {
		s.SquiggleMatches++
	}
}

// RecordInvalidMatch counts a failed selection and breaks the streak.
func (s *RoundStats) RecordInvalidMatch() {
	s.InvalidMatches++
	s.CurrentStreak = 0
}

func (s *RoundStats) RecordTripleCleared() {
	s.TripleCardsCleared++
}

// RecordBombDefused credits a bomb removed by something other than a match.
func (s *RoundStats) RecordBombDefused() {
	s.BombsDefused++
}

func (s *RoundStats) RecordWeaponTrigger(w WeaponType) {
	s.ensureMaps()
	s.WeaponEffectsTriggered[w] = true
}

// RecordHint spends a hint. Returns false if none are left.
func (s *RoundStats) RecordHint() bool {
	if s.HintsRemaining <= 0 {
		return false
	}
	s.HintsRemaining--
	s.HintsUsed++
	return true
}

// RecordGrace spends a grace. Returns false if none are left.
func (s *RoundStats) RecordGrace() bool {
	if s.GracesRemaining <= 0 {
		return false
	}
	s.GracesRemaining--
	s.GracesUsed++
	return true
}

func (s *RoundStats) RecordDamage(n int) {
	if n > 0 {
		s.DamageReceived += n
	}
}

// Accuracy is valid matches over all attempts, 0 before any attempt.
func (s RoundStats) Accuracy() float64 {
	attempts := s.TotalMatches + s.InvalidMatches
	if attempts == 0 {
		return 0
	}
	return float64(s.TotalMatches) / float64(attempts)
}

// Clone returns a deep copy so predicates can't observe later mutation.
func (s RoundStats) Clone() RoundStats {
	out := s
	out.MatchTimes = append([]int(nil), s.MatchTimes...)
	out.ShapesMatched = make(map[Shape]bool, len(s.ShapesMatched))
	for k, v := range s.ShapesMatched {
		out.ShapesMatched[k] = v
	}
	out.ColorsMatched = make(map[Color]bool, len(s.ColorsMatched))
	for k, v := range s.ColorsMatched {
		out.ColorsMatched[k] = v
	}
	out.ColorMatchCounts = make(map[Color]int, len(s.ColorMatchCounts))
	for k, v := range s.ColorMatchCounts {
		out.ColorMatchCounts[k] = v
	}
	out.WeaponEffectsTriggered = make(map[WeaponType]bool, len(s.WeaponEffectsTriggered))
	for k, v := range s.WeaponEffectsTriggered {
		out.WeaponEffectsTriggered[k] = v
	}
	return out
}

func (s *RoundStats) ensureMaps() {
	if s.ShapesMatched == nil {
		s.ShapesMatched = make(map[Shape]bool)
	}
	if s.ColorsMatched == nil {
		s.ColorsMatched = make(map[Color]bool)
	}
	if s.ColorMatchCounts == nil {
		s.ColorMatchCounts = make(map[Color]int)
	}
	if s.WeaponEffectsTriggered == nil {
		s.WeaponEffectsTriggered = make(map[WeaponType]bool)
	}
}
