package round

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/nshapes/internal/config"
	"github.com/peterkuimelis/nshapes/internal/enemy"
	"github.com/peterkuimelis/nshapes/internal/game"
	"github.com/peterkuimelis/nshapes/internal/log"
)

func TestStartDealsBoard(t *testing.T) {
	r, logger := startRound(t, enemy.TrainingDummy())

	assert.Len(t, r.Cards(), game.DefaultBoardSize)
	snap := r.Snapshot()
	assert.Equal(t, 81-game.DefaultBoardSize, snap.DeckCount)
	assert.Equal(t, 90000, snap.TimeRemainingMs)
	assert.Equal(t, snap.DeckCount, snap.Stats.CardsRemaining)
	assert.False(t, snap.Over)
	assert.Len(t, logger.EventsOfType(log.EventRoundStart), 1)

	assert.Error(t, r.Start(), "second start must fail")
}

func TestCallsBeforeStart(t *testing.T) {
	r := New(config.Default(), enemy.TrainingDummy(), WithRand(noWeapons))

	_, err := r.Select("a", "b", "c")
	assert.ErrorIs(t, err, ErrNotStarted)
	_, err = r.Hint()
	assert.ErrorIs(t, err, ErrNotStarted)

	r.Advance(5000)
	assert.Equal(t, 0, r.ElapsedMs())
}

func TestSelectValidation(t *testing.T) {
	r, _ := startRound(t, enemy.TrainingDummy())
	cards := r.Cards()

	_, err := r.Select(cards[0].ID, cards[1].ID)
	assert.ErrorIs(t, err, ErrBadSelection)

	_, err = r.Select(cards[0].ID, cards[0].ID, cards[1].ID)
	assert.ErrorIs(t, err, ErrBadSelection)

	_, err = r.Select(cards[0].ID, cards[1].ID, "missing")
	assert.ErrorIs(t, err, ErrBadSelection)

	assert.Equal(t, 0, r.Stats().InvalidMatches, "rejected selections are not attempts")
}

func TestRavenStealsTimeOnValidMatch(t *testing.T) {
	r, logger := startRound(t, lookup(t, "Thieving Raven"))

	res, err := r.Select(findSet(t, r)...)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, 10, res.Points)
	assert.Len(t, res.Cleared, 3)
	assert.Equal(t, -5, res.Effect.TimeDelta)

	snap := r.Snapshot()
	assert.Equal(t, 85000, snap.TimeRemainingMs)
	assert.Equal(t, 10, snap.Stats.CurrentScore)
	assert.Equal(t, 1, snap.Stats.TotalMatches)
	assert.Len(t, snap.Cards, game.DefaultBoardSize, "board refilled")
	assert.Len(t, logger.EventsOfType(log.EventTimeStolen), 1)
}

func TestStreakBonus(t *testing.T) {
	r, _ := startRound(t, enemy.TrainingDummy())

	first, err := r.Select(findSet(t, r)...)
	require.NoError(t, err)
	second, err := r.Select(findSet(t, r)...)
	require.NoError(t, err)

	assert.Equal(t, 10, first.Points)
	assert.Equal(t, 10+StreakBonus, second.Points)
	assert.Equal(t, 2, r.Stats().MaxStreak)
}

func TestInvalidMatchUsesGraceThenDamage(t *testing.T) {
	r, logger := startRound(t, enemy.TrainingDummy())

	for i := 0; i < 3; i++ {
		res, err := r.Select(findNonSet(t, r)...)
		require.NoError(t, err)
		assert.False(t, res.Valid)
	}

	stats := r.Stats()
	assert.Equal(t, 3, stats.InvalidMatches)
	assert.Equal(t, 2, stats.GracesUsed)
	assert.Equal(t, 0, stats.GracesRemaining)
	assert.Equal(t, 1, stats.DamageReceived)
	assert.Len(t, logger.EventsOfType(log.EventGraceUsed), 2)
	assert.Len(t, logger.EventsOfType(log.EventDamage), 1)
	assert.Len(t, r.Cards(), game.DefaultBoardSize, "invalid selections leave the board alone")
}

func TestSnappingTurtlePenalty(t *testing.T) {
	r, _ := startRound(t, lookup(t, "Snapping Turtle"))
	r.Apply(enemy.EffectResult{ScoreDelta: 25}, "seed")

	_, err := r.Select(findNonSet(t, r)...)
	require.NoError(t, err)

	snap := r.Snapshot()
	assert.Equal(t, 15, snap.Stats.CurrentScore)
	assert.Equal(t, 87000, snap.TimeRemainingMs)
}

func TestScoreNeverNegative(t *testing.T) {
	r, _ := startRound(t, lookup(t, "Nightmare Squid"))
	r.Advance(5000)
	assert.Equal(t, 0, r.Stats().CurrentScore)
}

func TestSquidDecay(t *testing.T) {
	r, logger := startRound(t, lookup(t, "Nightmare Squid"))
	r.Apply(enemy.EffectResult{ScoreDelta: 50}, "seed")
	assert.Equal(t, 50, r.Stats().CurrentScore)

	r.Advance(1000)
	assert.Equal(t, 44, r.Stats().CurrentScore)

	// A skipped tick still charges every second.
	r.Advance(3000)
	assert.Equal(t, 32, r.Stats().CurrentScore)
	assert.Len(t, logger.EventsOfType(log.EventScoreDecay), 2)
}

func TestSquidShufflesBoard(t *testing.T) {
	r, logger := startRound(t, lookup(t, "Nightmare Squid"))
	before := ids(r.Cards())

	r.Advance(15000)
	after := ids(r.Cards())
	assert.ElementsMatch(t, before, after)
	assert.Len(t, logger.EventsOfType(log.EventPositionsShuffled), 1)
}

func TestHawkSpeedsUpTimer(t *testing.T) {
	r, _ := startRound(t, lookup(t, "Diving Hawk"))
	r.Advance(10000)
	assert.InDelta(t, 90000-13500, r.Snapshot().TimeRemainingMs, 1)
}

func TestPorcupineInstantDeath(t *testing.T) {
	r, logger := startRound(t, lookup(t, "Merciless Porcupine"))

	r.Advance(34000)
	assert.False(t, r.Over())

	r.Advance(35000)
	require.True(t, r.Over())
	assert.Equal(t, OutcomeInstantDeath, r.Outcome())
	assert.Len(t, logger.EventsOfType(log.EventInstantDeath), 1)
	assert.Len(t, logger.EventsOfType(log.EventRoundEnd), 1)

	// Everything after teardown is a no-op.
	r.Advance(40000)
	assert.Equal(t, 35000, r.ElapsedMs())
	r.Apply(enemy.EffectResult{ScoreDelta: 100}, "late")
	assert.Equal(t, 0, r.Stats().CurrentScore)
	_, err := r.Select(findSet(t, r)...)
	assert.ErrorIs(t, err, ErrRoundOver)
	r.Close()
	assert.Equal(t, OutcomeInstantDeath, r.Outcome())
	assert.Len(t, logger.EventsOfType(log.EventRoundEnd), 1)
}

func TestPorcupineRemovesExtraCards(t *testing.T) {
	r, logger := startRound(t, lookup(t, "Merciless Porcupine"))
	deck := r.Snapshot().DeckCount

	_, err := r.Select(findNonSet(t, r)...)
	require.NoError(t, err)

	assert.Len(t, logger.EventsOfType(log.EventCardsRemoved), 1)
	assert.Len(t, r.Cards(), game.DefaultBoardSize)
	assert.Equal(t, deck-3, r.Snapshot().DeckCount)
}

func TestCloseTearsDown(t *testing.T) {
	r, _ := startRound(t, lookup(t, "Nightmare Squid"))
	r.Close()

	select {
	case <-r.Done():
	default:
		t.Fatal("Done not closed")
	}
	assert.Equal(t, OutcomeAborted, r.Outcome())

	r.Advance(5000)
	assert.Equal(t, 0, r.ElapsedMs())
	_, err := r.Hint()
	assert.ErrorIs(t, err, ErrRoundOver)
}

func TestStartAfterCloseIsNoOp(t *testing.T) {
	hooks := 0
	counting := &enemy.Enemy{
		Info: enemy.Info{Name: "Counter", Tier: 1},
		RoundStart: func(rc *enemy.RoundContext, board []game.Card) enemy.EffectResult {
			hooks++
			return enemy.NoEffect()
		},
		CardDraw: func(rc *enemy.RoundContext, card game.Card) game.Card {
			hooks++
			return card
		},
	}
	r := New(config.Default(), counting, WithRand(noWeapons))
	r.Close()

	assert.ErrorIs(t, r.Start(), ErrRoundOver)
	assert.Zero(t, hooks)
	assert.Empty(t, r.Cards())
	assert.Equal(t, OutcomeAborted, r.Outcome())
}

func TestBombExplodes(t *testing.T) {
	bomber := &enemy.Enemy{
		Info: enemy.Info{Name: "Bomber", Tier: 1},
		RoundStart: func(rc *enemy.RoundContext, board []game.Card) enemy.EffectResult {
			return enemy.EffectResult{CardModifications: []enemy.CardModification{{
				CardID:  board[0].ID,
				Changes: game.CardChanges{HasBomb: game.Ptr(true), BombTimer: game.Ptr(1500)},
			}}}
		},
	}
	r, logger := startRound(t, bomber)
	bombed := r.Cards()[0]
	require.True(t, bombed.HasBomb)

	r.Advance(1000)
	assert.True(t, r.Cards()[0].HasBomb)
	assert.Equal(t, 500, r.Cards()[0].BombTimer)

	r.Advance(2000)
	snap := r.Snapshot()
	assert.Equal(t, 83000, snap.TimeRemainingMs)
	for _, c := range snap.Cards {
		assert.NotEqual(t, bombed.ID, c.ID)
	}
	assert.Len(t, snap.Cards, game.DefaultBoardSize)
	assert.Len(t, logger.EventsOfType(log.EventBombExploded), 1)
}

func TestCountdownExpires(t *testing.T) {
	r, logger := startRound(t, lookup(t, "Stinging Scorpion"))
	r.Apply(enemy.EffectResult{ScoreDelta: 30}, "seed")

	r.Advance(12000)
	stats := r.Stats()
	assert.Equal(t, 20, stats.CurrentScore)
	assert.Equal(t, CountdownDamage, stats.DamageReceived)
	assert.Len(t, logger.EventsOfType(log.EventCountdownExpired), 1)
	assert.Len(t, r.Cards(), game.DefaultBoardSize, "countdown card stays in play")
}

func armorFirstSetCard(health int) *enemy.Enemy {
	return &enemy.Enemy{
		Info: enemy.Info{Name: "Armorer", Tier: 1},
		RoundStart: func(rc *enemy.RoundContext, board []game.Card) enemy.EffectResult {
			set, ok := (&game.Board{Cards: board}).FindSet()
			if !ok {
				return enemy.NoEffect()
			}
			return enemy.EffectResult{CardModifications: []enemy.CardModification{{
				CardID:  set[0].ID,
				Changes: game.CardChanges{Health: game.Ptr(health)},
			}}}
		},
	}
}

func TestTripleCardTakesDamage(t *testing.T) {
	r, logger := startRound(t, armorFirstSetCard(game.TripleHealth))
	set := findSet(t, r)

	res, err := r.Select(set...)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Len(t, res.Cleared, 2)

	var armored *game.Card
	for _, c := range r.Cards() {
		if c.ID == set[0] {
			armored = &c
		}
	}
	require.NotNil(t, armored, "armored card stays on the board")
	assert.Equal(t, 2, armored.Health)
	assert.Equal(t, 0, r.Stats().TripleCardsCleared)
	assert.Len(t, logger.EventsOfType(log.EventTripleDamaged), 1)
}

func TestTripleCardClears(t *testing.T) {
	r, _ := startRound(t, armorFirstSetCard(1))

	res, err := r.Select(findSet(t, r)...)
	require.NoError(t, err)
	assert.Len(t, res.Cleared, 3)
	assert.Equal(t, 1, r.Stats().TripleCardsCleared)
}

func TestHints(t *testing.T) {
	r, logger := startRound(t, enemy.TrainingDummy())
	set, err := r.Hint()
	require.NoError(t, err)
	assert.True(t, game.IsValidSet(set))
	assert.Equal(t, 2, r.Stats().HintsRemaining)
	assert.Len(t, logger.EventsOfType(log.EventHintUsed), 1)

	terror, _ := startRound(t, lookup(t, "One-Eyed Terror"))
	_, err = terror.Hint()
	assert.ErrorIs(t, err, ErrHintsDisabled)
}

func TestHintsRunOut(t *testing.T) {
	cfg := config.Default()
	cfg.Round.Hints = 1
	r, _ := startRoundWith(t, cfg, enemy.TrainingDummy())

	_, err := r.Hint()
	require.NoError(t, err)
	_, err = r.Hint()
	assert.ErrorIs(t, err, ErrNoHints)
}

func TestTimeOutLoses(t *testing.T) {
	r, _ := startRound(t, enemy.TrainingDummy())
	r.Advance(90000)

	require.True(t, r.Over())
	assert.Equal(t, OutcomeLost, r.Outcome())
	assert.Equal(t, 0, r.Stats().TimeRemaining)
}

func TestTimeOutWinsAtTarget(t *testing.T) {
	r, _ := startRound(t, enemy.TrainingDummy())
	r.Apply(enemy.EffectResult{ScoreDelta: 100}, "seed")
	r.Advance(90000)
	assert.Equal(t, OutcomeWon, r.Outcome())
}

func TestDefeatConditionLatches(t *testing.T) {
	r, logger := startRound(t, enemy.TrainingDummy())
	assert.False(t, r.EnemyDefeated())

	_, err := r.Select(findSet(t, r)...)
	require.NoError(t, err)
	assert.True(t, r.EnemyDefeated())
	assert.False(t, r.Over(), "defeating the enemy does not end the round")

	_, err = r.Select(findNonSet(t, r)...)
	require.NoError(t, err)
	assert.True(t, r.EnemyDefeated())
	assert.Len(t, logger.EventsOfType(log.EventEnemyDefeated), 1)
}

func TestEffectiveChance(t *testing.T) {
	cases := []struct {
		enemy  string
		weapon config.Weapon
		want   float64
	}{
		{"Goblin Saboteur", config.Weapon{Type: game.WeaponExplosive, Chance: 0.5}, 0.25},
		{"Goblin Saboteur", config.Weapon{Type: game.WeaponFire, Chance: 0.5}, 0.5},
		{"Stone Sentinel", config.Weapon{Type: game.WeaponExplosive, Chance: 0.5}, 0.225},
		{"One-Eyed Terror", config.Weapon{Type: game.WeaponHint, Chance: 0.2}, 0.09},
		{"Kraken's Grasp", config.Weapon{Type: game.WeaponEcho, Chance: 0.4}, 0.1},
	}
	for _, tc := range cases {
		t.Run(tc.enemy+"/"+string(tc.weapon.Type), func(t *testing.T) {
			r := New(config.Default(), lookup(t, tc.enemy), WithRand(noWeapons))
			assert.InDelta(t, tc.want, r.EffectiveChance(tc.weapon), 1e-9)
		})
	}
}

func TestWeaponsTrigger(t *testing.T) {
	cfg := config.Default()
	cfg.Weapons = []config.Weapon{
		{Type: game.WeaponEcho, Chance: 1},
		{Type: game.WeaponTimeFreeze, Chance: 1},
		{Type: game.WeaponGrace, Chance: 1},
	}
	r, logger := startRoundWith(t, cfg, enemy.TrainingDummy(), WithRand(fixedRand{roll: 0}))

	_, err := r.Select(findSet(t, r)...)
	require.NoError(t, err)

	snap := r.Snapshot()
	assert.Equal(t, 20, snap.Stats.CurrentScore)
	assert.Equal(t, 93000, snap.TimeRemainingMs)
	assert.Equal(t, 3, snap.Stats.GracesRemaining)
	assert.Len(t, snap.Stats.WeaponEffectsTriggered, 3)
	assert.Len(t, logger.EventsOfType(log.EventWeaponTriggered), 3)
}

func TestExplosiveDefusesBomb(t *testing.T) {
	cfg := config.Default()
	cfg.Weapons = []config.Weapon{{Type: game.WeaponExplosive, Chance: 1}}
	r, _ := startRoundWith(t, cfg, lookup(t, "Venomous Cobra"), WithRand(fixedRand{roll: 0}))

	// Every drawn card carries a bomb at roll 0.
	require.True(t, r.Cards()[0].HasBomb)

	// Three bombs matched plus one destroyed by the explosive.
	_, err := r.Select(findSet(t, r)...)
	require.NoError(t, err)
	assert.Equal(t, 4, r.Stats().BombsDefused)
	assert.Equal(t, 10+weaponClearPoints, r.Stats().CurrentScore)
}

func TestRunCancelled(t *testing.T) {
	r, _ := startRound(t, enemy.TrainingDummy())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, OutcomeAborted, r.Outcome())
}

func TestRunUntilTimeOut(t *testing.T) {
	cfg := config.Default()
	cfg.Round.TickIntervalMs = 1
	clock := &stepClock{t: time.Unix(0, 0), step: 30 * time.Second}
	r, _ := startRoundWith(t, cfg, enemy.TrainingDummy(), WithClock(clock))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, r.Run(ctx))
	assert.Equal(t, OutcomeLost, r.Outcome())
	assert.Equal(t, 90000, r.ElapsedMs())
}
