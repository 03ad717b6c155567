package enemy

import "github.com/peterkuimelis/nshapes/internal/game"

// scriptedRand replays fixed values. Float64 and Intn cycle through their
// scripts (defaulting to 0); Shuffle reverses the sequence.
type scriptedRand struct {
	floats []float64
	ints   []int
	fpos   int
	ipos   int
}

func (s *scriptedRand) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[s.fpos%len(s.floats)]
	s.fpos++
	return v
}

func (s *scriptedRand) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.ipos%len(s.ints)]
	s.ipos++
	if v >= n {
		return n - 1
	}
	return v
}

func (s *scriptedRand) Shuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

// testBoard returns the first n cards of an unshuffled deck.
func testBoard(n int) []game.Card {
	return game.NewDeck()[:n]
}

func mustLookup(name string) *Enemy {
	e, err := LookupEnemy(name)
	if err != nil {
		panic(err)
	}
	return e
}

func hasEvent(res EffectResult, t EventType, amount int) bool {
	for _, e := range res.Events {
		if e.Type == t && e.Amount == amount {
			return true
		}
	}
	return false
}
