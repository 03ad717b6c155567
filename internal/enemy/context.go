package enemy

import "math/rand"

// Rand is the randomness source enemy hooks draw from. *rand.Rand satisfies it;
// tests supply scripted sequences.
type Rand interface {
	Float64() float64
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// globalRand forwards to the math/rand package functions.
type globalRand struct{}

func (globalRand) Float64() float64                   { return rand.Float64() }
func (globalRand) Intn(n int) int                     { return rand.Intn(n) }
func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// RoundContext is the per-round state the controller owns and passes into
// every hook. Enemies themselves hold no mutable state between calls.
// A nil *RoundContext behaves like a fresh context with no memory.
type RoundContext struct {
	Rand Rand

	// LastValidMatchMs is the elapsed time of the most recent valid match
	// (0 until the first one). Inactivity timers measure from here.
	LastValidMatchMs int

	fired   map[string]bool
	crossed map[string]int
}

// NewRoundContext creates a context. A nil r uses the global math/rand source.
func NewRoundContext(r Rand) *RoundContext {
	if r == nil {
		r = globalRand{}
	}
	return &RoundContext{
		Rand:    r,
		fired:   make(map[string]bool),
		crossed: make(map[string]int),
	}
}

func (rc *RoundContext) rand() Rand {
	if rc == nil || rc.Rand == nil {
		return globalRand{}
	}
	return rc.Rand
}

func (rc *RoundContext) lastValidMatch() int {
	if rc == nil {
		return 0
	}
	return rc.LastValidMatchMs
}

// Once returns true the first time it is called with key, false afterwards.
func (rc *RoundContext) Once(key string) bool {
	if rc == nil {
		return true
	}
	if rc.fired == nil {
		rc.fired = make(map[string]bool)
	}
	if rc.fired[key] {
		return false
	}
	rc.fired[key] = true
	return true
}

// Crossed returns how many multiples of periodMs elapsedMs has passed since the
// last call with the same key. Irregular or skipped ticks still count every
// boundary exactly once; repeated calls at the same elapsed time return 0.
func (rc *RoundContext) Crossed(key string, elapsedMs, periodMs int) int {
	if periodMs <= 0 || elapsedMs <= 0 {
		return 0
	}
	periods := elapsedMs / periodMs
	if rc == nil {
		return periods
	}
	if rc.crossed == nil {
		rc.crossed = make(map[string]int)
	}
	prev := rc.crossed[key]
	if periods <= prev {
		return 0
	}
	rc.crossed[key] = periods
	return periods - prev
}
