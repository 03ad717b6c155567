package enemy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/nshapes/internal/game"
)

func TestThievingRaven(t *testing.T) {
	raven := mustLookup("Thieving Raven")

	res := raven.OnValidMatch(nil, nil, nil)
	assert.Equal(t, -5, res.TimeDelta)
	assert.True(t, hasEvent(res, EventTimeStolen, 5))

	res = raven.OnInvalidMatch(nil, nil, nil)
	assert.Equal(t, 0, res.TimeDelta)
	assert.Equal(t, 0, res.ScoreDelta)
	assert.True(t, res.IsEmpty())

	assert.False(t, raven.CheckDefeatCondition(game.RoundStats{TotalMatches: 4}))
	assert.True(t, raven.CheckDefeatCondition(game.RoundStats{TotalMatches: 5}))
	assert.True(t, raven.CheckDefeatCondition(game.RoundStats{TotalMatches: 10}))
}

func TestDivingHawk(t *testing.T) {
	hawk := mustLookup("Diving Hawk")
	assert.Equal(t, 1.35, hawk.UIModifiers().TimerSpeedMultiplier)
	assert.True(t, hawk.OnTick(NewRoundContext(nil), 5000, testBoard(12)).IsEmpty())

	for _, n := range []int{1, 2} {
		assert.False(t, hawk.CheckDefeatCondition(game.RoundStats{AllDifferentMatches: n}))
	}
	for _, n := range []int{3, 5} {
		assert.True(t, hawk.CheckDefeatCondition(game.RoundStats{AllDifferentMatches: n}))
	}
}

func TestTimerMultiplierDefaultsToOne(t *testing.T) {
	assert.Equal(t, 1.0, mustLookup("Thieving Raven").UIModifiers().TimerSpeedMultiplier)
}

func TestGoblinSaboteur(t *testing.T) {
	goblin := mustLookup("Goblin Saboteur")
	counters := goblin.UIModifiers().WeaponCounters
	require.Len(t, counters, 3)
	for _, c := range counters {
		assert.Equal(t, 50, c.Reduction)
	}

	stats := game.RoundStats{WeaponEffectsTriggered: map[game.WeaponType]bool{
		game.WeaponLaser: true,
		game.WeaponFire:  true,
	}}
	assert.False(t, goblin.CheckDefeatCondition(stats))
	stats.WeaponEffectsTriggered[game.WeaponEcho] = true
	assert.True(t, goblin.CheckDefeatCondition(stats))
}

func TestVenomousCobra(t *testing.T) {
	cobra := mustLookup("Venomous Cobra")
	rc := NewRoundContext(&scriptedRand{})
	board := testBoard(12)

	cobra.OnRoundStart(rc, board)
	res := cobra.OnTick(rc, 15000, board)
	require.NotEmpty(t, res.CardModifications)
	mod := res.CardModifications[0]
	require.NotNil(t, mod.Changes.Shape)
	for _, c := range board {
		if c.ID == mod.CardID {
			assert.NotEqual(t, c.Shape, *mod.Changes.Shape)
		}
	}

	// Same threshold again does not re-fire.
	assert.Empty(t, cobra.OnTick(rc, 15000, board).CardModifications)

	drawn := cobra.OnCardDraw(NewRoundContext(&scriptedRand{floats: []float64{0}}), board[1])
	assert.True(t, drawn.HasBomb)
	assert.Equal(t, 10000, drawn.BombTimer)
	assert.False(t, board[1].HasBomb, "original card must not change")

	safe := cobra.OnCardDraw(NewRoundContext(&scriptedRand{floats: []float64{0.99}}), board[2])
	assert.False(t, safe.HasBomb)

	assert.False(t, cobra.CheckDefeatCondition(game.RoundStats{BombsDefused: 3}))
	assert.True(t, cobra.CheckDefeatCondition(game.RoundStats{BombsDefused: 4}))
}

func TestMercilessPorcupine(t *testing.T) {
	porcupine := mustLookup("Merciless Porcupine")
	board := testBoard(12)
	selected := board[:3]

	res := porcupine.OnInvalidMatch(NewRoundContext(&scriptedRand{}), selected, board)
	require.Len(t, res.CardsToRemove, 3)
	for _, c := range res.CardsToRemove {
		for _, s := range selected {
			assert.NotEqual(t, s.ID, c.ID)
		}
	}
	assert.Equal(t, 0, res.TimeDelta)

	rc := NewRoundContext(nil)
	assert.False(t, porcupine.OnTick(rc, 34999, board).InstantDeath)
	death := porcupine.OnTick(rc, 35000, board)
	assert.True(t, death.InstantDeath)
	assert.True(t, death.HasEvent(EventInstantDeath))
	assert.False(t, porcupine.OnTick(rc, 36000, board).InstantDeath)

	// A recent valid match resets the inactivity window.
	rc = NewRoundContext(nil)
	rc.LastValidMatchMs = 20000
	assert.False(t, porcupine.OnTick(rc, 35000, board).InstantDeath)
	assert.True(t, porcupine.OnTick(rc, 55000, board).InstantDeath)

	assert.False(t, porcupine.CheckDefeatCondition(game.RoundStats{}))
	assert.True(t, porcupine.CheckDefeatCondition(game.RoundStats{TotalMatches: 1}))
	assert.False(t, porcupine.CheckDefeatCondition(game.RoundStats{TotalMatches: 7, InvalidMatches: 1}))
}

func TestNightmareSquid(t *testing.T) {
	squid := mustLookup("Nightmare Squid")
	board := testBoard(12)

	assert.Equal(t, -6, squid.OnTick(NewRoundContext(nil), 1000, board).ScoreDelta)

	res := squid.OnTick(NewRoundContext(&scriptedRand{}), 15000, board)
	require.True(t, res.HasEvent(EventPositionsShuffled))
	for _, ev := range res.Events {
		if ev.Type == EventPositionsShuffled {
			assert.Len(t, ev.Order, len(board))
			assert.Equal(t, board[len(board)-1].ID, ev.Order[0])
		}
	}

	// Irregular ticks: decay counts every second exactly once.
	rc := NewRoundContext(nil)
	total := 0
	for _, ms := range []int{900, 2500, 2500, 4000} {
		total += squid.OnTick(rc, ms, board).ScoreDelta
	}
	assert.Equal(t, -24, total)

	assert.False(t, squid.CheckDefeatCondition(game.RoundStats{CurrentScore: 180, TargetScore: 100}))
	assert.True(t, squid.CheckDefeatCondition(game.RoundStats{CurrentScore: 200, TargetScore: 100}))
}

func TestOneEyedTerror(t *testing.T) {
	terror := mustLookup("One-Eyed Terror")
	ui := terror.UIModifiers()
	assert.True(t, ui.DisableAutoHints)
	assert.True(t, ui.DisableManualHints)
	assert.Equal(t, 0.55, terror.StatModifiers().HintGainChanceReduction)
	assert.True(t, terror.CheckDefeatCondition(game.RoundStats{AllDifferentMatches: 3}))
}

func TestStoneSentinel(t *testing.T) {
	sentinel := mustLookup("Stone Sentinel")
	res := sentinel.OnRoundStart(NewRoundContext(&scriptedRand{}), testBoard(12))
	require.Len(t, res.CardModifications, 2)
	assert.NotEqual(t, res.CardModifications[0].CardID, res.CardModifications[1].CardID)
	for _, m := range res.CardModifications {
		require.NotNil(t, m.Changes.Health)
		assert.Equal(t, 3, *m.Changes.Health)
	}

	mods := sentinel.StatModifiers()
	assert.Equal(t, 0.55, mods.ChanceReduction(game.WeaponExplosive))
	assert.Equal(t, 0.55, mods.ChanceReduction(game.WeaponLaser))
	assert.Equal(t, 0.0, mods.ChanceReduction(game.WeaponFire))

	assert.False(t, sentinel.CheckDefeatCondition(game.RoundStats{TripleCardsCleared: 1}))
	assert.True(t, sentinel.CheckDefeatCondition(game.RoundStats{TripleCardsCleared: 2}))
}

func TestSwarmingAnts(t *testing.T) {
	ants := mustLookup("Swarming Ants")
	assert.Equal(t, 0.55, ants.StatModifiers().ChanceReduction(game.WeaponFire))

	res := ants.OnRoundStart(NewRoundContext(&scriptedRand{}), testBoard(12))
	require.Len(t, res.CardModifications, 1)
	ch := res.CardModifications[0].Changes
	require.NotNil(t, ch.CountdownTimer)
	assert.Equal(t, 8000, *ch.CountdownTimer)
	assert.True(t, *ch.HasCountdown)

	assert.True(t, ants.CheckDefeatCondition(game.RoundStats{BombsDefused: 5}))
}

func TestKrakensGrasp(t *testing.T) {
	kraken := mustLookup("Kraken's Grasp")
	counters := kraken.UIModifiers().WeaponCounters
	require.Len(t, counters, 7)
	for _, c := range counters {
		assert.Equal(t, 75, c.Reduction)
	}
	assert.True(t, kraken.OnTick(NewRoundContext(nil), 10000, testBoard(12)).HasEvent(EventPositionsShuffled))

	assert.False(t, kraken.CheckDefeatCondition(game.RoundStats{CurrentScore: 150, TargetScore: 100, CardsRemaining: 4}))
	assert.False(t, kraken.CheckDefeatCondition(game.RoundStats{CurrentScore: 90, TargetScore: 100, CardsRemaining: 20}))
	assert.True(t, kraken.CheckDefeatCondition(game.RoundStats{CurrentScore: 100, TargetScore: 100, CardsRemaining: 5}))
}

func TestTheHydra(t *testing.T) {
	hydra := mustLookup("The Hydra")
	assert.Equal(t, -4, hydra.OnValidMatch(nil, nil, nil).TimeDelta)

	rc := NewRoundContext(nil)
	assert.False(t, hydra.OnTick(rc, 29000, nil).InstantDeath)
	assert.True(t, hydra.OnTick(rc, 30000, nil).InstantDeath)

	assert.False(t, hydra.CheckDefeatCondition(game.RoundStats{TotalMatches: 10, InvalidMatches: 1}))
	assert.True(t, hydra.CheckDefeatCondition(game.RoundStats{TotalMatches: 10}))
}

func TestChromaticChameleon(t *testing.T) {
	chameleon := mustLookup("Chromatic Chameleon")
	rc := NewRoundContext(&scriptedRand{})
	board := testBoard(12)
	assert.Empty(t, chameleon.OnTick(rc, 19000, board).CardModifications)
	assert.Len(t, chameleon.OnTick(rc, 21000, board).CardModifications, 2)
	assert.Empty(t, chameleon.OnTick(rc, 40000, board).CardModifications)

	counts := map[game.Color]int{game.ColorRed: 2, game.ColorGreen: 2, game.ColorPurple: 1}
	assert.False(t, chameleon.CheckDefeatCondition(game.RoundStats{ColorMatchCounts: counts}))
	counts[game.ColorPurple] = 2
	assert.True(t, chameleon.CheckDefeatCondition(game.RoundStats{ColorMatchCounts: counts}))
}

func applyMods(board []game.Card, mods []CardModification) []game.Card {
	out := append([]game.Card(nil), board...)
	for _, m := range mods {
		for i := range out {
			if out[i].ID == m.CardID {
				out[i].Apply(m.Changes)
			}
		}
	}
	return out
}

func assertDistinctFaces(t *testing.T, board []game.Card) {
	t.Helper()
	seen := map[string]bool{}
	for _, c := range board {
		key := c.Shape.String() + c.Color.String() + c.Number.String() + c.Shading.String()
		assert.False(t, seen[key], "duplicate card %s", key)
		seen[key] = true
	}
}

func TestMutationsNeverDuplicateCards(t *testing.T) {
	deck := game.NewDeck()
	// The same card in all three shapes: no shape change is possible.
	boxed := []game.Card{deck[0], deck[27], deck[54]}

	cobra := mustLookup("Venomous Cobra")
	res := cobra.OnTick(NewRoundContext(&scriptedRand{}), 15000, boxed)
	assert.Empty(t, res.CardModifications)
	assert.Empty(t, res.Events)

	// A fourth card with room to change is picked instead.
	free := append(boxed, deck[1])
	res = cobra.OnTick(NewRoundContext(&scriptedRand{}), 15000, free)
	require.Len(t, res.CardModifications, 1)
	assert.Equal(t, deck[1].ID, res.CardModifications[0].CardID)
	assertDistinctFaces(t, applyMods(free, res.CardModifications))

	// diamond red 1 and diamond green 1 cards crowd the color space.
	chameleon := mustLookup("Chromatic Chameleon")
	board := testBoard(12)
	res = chameleon.OnTick(NewRoundContext(&scriptedRand{}), 20000, board)
	require.Len(t, res.CardModifications, 2)
	assertDistinctFaces(t, applyMods(board, res.CardModifications))
}

func TestSnappingTurtlePenalty(t *testing.T) {
	turtle := mustLookup("Snapping Turtle")
	res := turtle.OnInvalidMatch(NewRoundContext(nil), nil, nil)
	assert.Equal(t, -3, res.TimeDelta)
	assert.Equal(t, -10, res.ScoreDelta)
	assert.True(t, hasEvent(res, EventTimeStolen, 3))
	assert.True(t, hasEvent(res, EventScorePenalty, 10))
}

func TestVoidSerpentAccuracy(t *testing.T) {
	serpent := mustLookup("Void Serpent")
	assert.True(t, serpent.UIModifiers().DisableManualHints)
	assert.False(t, serpent.UIModifiers().DisableAutoHints)
	assert.False(t, serpent.CheckDefeatCondition(game.RoundStats{TotalMatches: 8, InvalidMatches: 1}))
	assert.True(t, serpent.CheckDefeatCondition(game.RoundStats{TotalMatches: 9, InvalidMatches: 1}))
}

func TestDefeatConditionsArePure(t *testing.T) {
	stats := game.NewRoundStats(100, 3, 2)
	stats.TotalMatches = 6
	stats.AllDifferentMatches = 3
	stats.CurrentScore = 120
	stats.CardsRemaining = 30
	stats.ColorMatchCounts[game.ColorRed] = 4

	for name, ctor := range Catalog {
		e := ctor()
		first := e.CheckDefeatCondition(*stats)
		second := e.CheckDefeatCondition(*stats)
		assert.Equal(t, first, second, name)
	}
}

func TestHooksTolerateEmptyInput(t *testing.T) {
	for name, ctor := range Catalog {
		e := ctor()
		assert.NotPanics(t, func() {
			e.OnRoundStart(nil, nil)
			e.OnTick(nil, 60000, nil)
			e.OnValidMatch(nil, nil, nil)
			e.OnInvalidMatch(nil, nil, nil)
			e.OnCardDraw(nil, game.Card{})
			e.CheckDefeatCondition(game.RoundStats{})
		}, name)
	}
}

func TestNilHooksAreNeutral(t *testing.T) {
	e := &Enemy{Info: Info{Name: "Blank", Tier: 1}}
	c := testBoard(1)[0]

	assert.True(t, e.OnRoundStart(nil, nil).IsEmpty())
	assert.True(t, e.OnTick(nil, 1000, nil).IsEmpty())
	assert.Equal(t, c, e.OnCardDraw(nil, c))
	assert.False(t, e.CheckDefeatCondition(game.RoundStats{TotalMatches: 100}))
}
