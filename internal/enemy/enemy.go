package enemy

import "github.com/peterkuimelis/nshapes/internal/game"

// Info is the immutable identity of an enemy.
type Info struct {
	Name                string
	Tier                int // 1 (lowest) to 4
	Icon                string
	Description         string
	DefeatConditionText string
	Placeholder         bool // never offered by random selection
}

// WeaponCounter reduces the effect of one weapon type while the enemy is active.
type WeaponCounter struct {
	Type      game.WeaponType
	Reduction int // percent
}

// UIModifiers are cosmetic and UI-facing toggles declared by an enemy.
type UIModifiers struct {
	TimerSpeedMultiplier float64 // 0 is treated as 1
	DisableAutoHints     bool
	DisableManualHints   bool
	WeaponCounters       []WeaponCounter
}

// CounterFor returns the reduction percent applied to w, 0 when uncountered.
func (m UIModifiers) CounterFor(w game.WeaponType) int {
	for _, c := range m.WeaponCounters {
		if c.Type == w {
			return c.Reduction
		}
	}
	return 0
}

// StatModifiers are numeric reductions applied to player mechanics.
// Reductions are fractions in [0, 1].
type StatModifiers struct {
	HintGainChanceReduction float64
	WeaponChanceReductions  map[game.WeaponType]float64
}

// ChanceReduction returns the trigger-chance reduction for w.
func (m StatModifiers) ChanceReduction(w game.WeaponType) float64 {
	return m.WeaponChanceReductions[w]
}

// Behavior is the capability set the round controller drives.
type Behavior interface {
	Describe() Info
	OnRoundStart(rc *RoundContext, board []game.Card) EffectResult
	OnTick(rc *RoundContext, elapsedMs int, board []game.Card) EffectResult
	OnValidMatch(rc *RoundContext, matched, board []game.Card) EffectResult
	OnInvalidMatch(rc *RoundContext, selected, board []game.Card) EffectResult
	OnCardDraw(rc *RoundContext, card game.Card) game.Card
	UIModifiers() UIModifiers
	StatModifiers() StatModifiers
	CheckDefeatCondition(stats game.RoundStats) bool
}

// Enemy is a data + behavior bundle. Each hook is optional; a nil hook
// yields the neutral result.
type Enemy struct {
	Info
	UI    UIModifiers
	Stats StatModifiers

	// RoundStart runs once after the initial deal.
	RoundStart func(rc *RoundContext, board []game.Card) EffectResult

	// Tick runs on every scheduler tick with the cumulative elapsed time.
	Tick func(rc *RoundContext, elapsedMs int, board []game.Card) EffectResult

	// ValidMatch runs after a valid set resolves.
	ValidMatch func(rc *RoundContext, matched, board []game.Card) EffectResult

	// InvalidMatch runs after a rejected selection.
	InvalidMatch func(rc *RoundContext, selected, board []game.Card) EffectResult

	// CardDraw may return a modified copy of a card entering the board.
	CardDraw func(rc *RoundContext, card game.Card) game.Card

	// Defeated is the defeat predicate. Nil means the enemy cannot be defeated.
	Defeated func(stats game.RoundStats) bool
}

var _ Behavior = (*Enemy)(nil)

func (e *Enemy) String() string {
	return e.Name
}

// Describe returns the enemy's identity.
func (e *Enemy) Describe() Info {
	return e.Info
}

func (e *Enemy) OnRoundStart(rc *RoundContext, board []game.Card) EffectResult {
	if e.RoundStart == nil {
		return NoEffect()
	}
	return e.RoundStart(rc, board)
}

func (e *Enemy) OnTick(rc *RoundContext, elapsedMs int, board []game.Card) EffectResult {
	if e.Tick == nil {
		return NoEffect()
	}
	return e.Tick(rc, elapsedMs, board)
}

func (e *Enemy) OnValidMatch(rc *RoundContext, matched, board []game.Card) EffectResult {
	if e.ValidMatch == nil {
		return NoEffect()
	}
	return e.ValidMatch(rc, matched, board)
}

func (e *Enemy) OnInvalidMatch(rc *RoundContext, selected, board []game.Card) EffectResult {
	if e.InvalidMatch == nil {
		return NoEffect()
	}
	return e.InvalidMatch(rc, selected, board)
}

func (e *Enemy) OnCardDraw(rc *RoundContext, card game.Card) game.Card {
	if e.CardDraw == nil {
		return card
	}
	return e.CardDraw(rc, card)
}

// UIModifiers returns the declared UI modifiers with the timer multiplier
// normalized to 1 when unset.
func (e *Enemy) UIModifiers() UIModifiers {
	m := e.UI
	if m.TimerSpeedMultiplier == 0 {
		m.TimerSpeedMultiplier = 1
	}
	m.WeaponCounters = append([]WeaponCounter(nil), e.UI.WeaponCounters...)
	return m
}

func (e *Enemy) StatModifiers() StatModifiers {
	m := e.Stats
	if e.Stats.WeaponChanceReductions != nil {
		m.WeaponChanceReductions = make(map[game.WeaponType]float64, len(e.Stats.WeaponChanceReductions))
		for k, v := range e.Stats.WeaponChanceReductions {
			m.WeaponChanceReductions[k] = v
		}
	}
	return m
}

// CheckDefeatCondition evaluates the predicate on a private copy of stats.
func (e *Enemy) CheckDefeatCondition(stats game.RoundStats) bool {
	if e.Defeated == nil {
		return false
	}
	return e.Defeated(stats.Clone())
}
