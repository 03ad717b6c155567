package round

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/nshapes/internal/config"
	"github.com/peterkuimelis/nshapes/internal/enemy"
	"github.com/peterkuimelis/nshapes/internal/game"
	"github.com/peterkuimelis/nshapes/internal/log"
)

// fixedRand keeps the deck in attribute order, always picks index 0 and
// returns roll for every Float64 call.
type fixedRand struct{ roll float64 }

func (f fixedRand) Float64() float64                 { return f.roll }
func (fixedRand) Intn(int) int                       { return 0 }
func (fixedRand) Shuffle(n int, swap func(i, j int)) {}

// noWeapons never triggers a weapon (every roll is above every chance).
var noWeapons = fixedRand{roll: 0.99}

// stepClock moves forward by step on every read.
type stepClock struct {
	mu   sync.Mutex
	t    time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

// startRound builds and starts a round with a memory logger.
func startRound(t *testing.T, e enemy.Behavior, opts ...Option) (*Round, *log.MemoryLogger) {
	t.Helper()
	return startRoundWith(t, config.Default(), e, opts...)
}

func startRoundWith(t *testing.T, cfg config.Config, e enemy.Behavior, opts ...Option) (*Round, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	opts = append([]Option{WithLogger(logger), WithRand(noWeapons)}, opts...)
	r := New(cfg, e, opts...)
	require.NoError(t, r.Start())
	return r, logger
}

func lookup(t *testing.T, name string) *enemy.Enemy {
	t.Helper()
	e, err := enemy.LookupEnemy(name)
	require.NoError(t, err)
	return e
}

func findSet(t *testing.T, r *Round) []string {
	t.Helper()
	set, ok := (&game.Board{Cards: r.Cards()}).FindSet()
	require.True(t, ok, "board has no set")
	return ids(set)
}

func findNonSet(t *testing.T, r *Round) []string {
	t.Helper()
	cards := r.Cards()
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			for k := j + 1; k < len(cards); k++ {
				trio := []game.Card{cards[i], cards[j], cards[k]}
				if !game.IsValidSet(trio) {
					return ids(trio)
				}
			}
		}
	}
	t.Fatal("every triple on the board is a set")
	return nil
}

func ids(cards []game.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}
