package round

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/peterkuimelis/nshapes/internal/config"
	"github.com/peterkuimelis/nshapes/internal/enemy"
	"github.com/peterkuimelis/nshapes/internal/game"
	"github.com/peterkuimelis/nshapes/internal/log"
)

var (
	ErrRoundOver     = errors.New("round is over")
	ErrNotStarted    = errors.New("round has not started")
	ErrBadSelection  = errors.New("bad selection")
	ErrHintsDisabled = errors.New("hints are disabled by the enemy")
	ErrNoHints       = errors.New("no hints left")
	ErrNoSet         = errors.New("no set on the board")
)

const (
	BombPenaltySeconds    = 5
	CountdownPenaltyScore = 10
	CountdownDamage       = 1
	StreakBonus           = 2  // extra points per streak step
	maxBoardSize          = 21 // a board this large always holds a set
)

// Outcome is how a round ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeLost
	OutcomeInstantDeath
	OutcomeAborted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	case OutcomeInstantDeath:
		return "instant death"
	case OutcomeAborted:
		return "aborted"
	default:
		return "in progress"
	}
}

// MatchResult describes how a selection resolved.
type MatchResult struct {
	Valid   bool
	Points  int
	Cleared []game.Card // cards that left the board because of the match
	Effect  enemy.EffectResult
}

// Option customizes a Round.
type Option func(*Round)

// WithLogger sets the event logger (default: in-memory).
func WithLogger(l log.EventLogger) Option {
	return func(r *Round) { r.logger = l }
}

// WithRand sets the randomness source for the deck, weapons and enemy hooks.
func WithRand(rng enemy.Rand) Option {
	return func(r *Round) { r.rng = rng }
}

// WithClock sets the clock Run measures elapsed time with.
func WithClock(c Clock) Option {
	return func(r *Round) { r.clock = c }
}

// Round is the round controller. It is the only mutator of its board and
// stats; every exported method is safe to call from the tick loop and from
// player input concurrently.
type Round struct {
	mu sync.Mutex

	cfg     config.Round
	weapons []config.Weapon
	enemy   enemy.Behavior
	info    enemy.Info
	ui      enemy.UIModifiers
	mods    enemy.StatModifiers

	board  *game.Board
	stats  *game.RoundStats
	rc     *enemy.RoundContext
	rng    enemy.Rand
	clock  Clock
	logger log.EventLogger

	elapsedMs  int
	timeLeftMs float64

	started  bool
	over     bool
	defeated bool
	outcome  Outcome
	reason   string
	done     chan struct{}
}

// New creates a round against the given enemy. Call Start to deal.
func New(cfg config.Config, e enemy.Behavior, opts ...Option) *Round {
	r := &Round{
		cfg:     cfg.Round,
		weapons: append([]config.Weapon(nil), cfg.Weapons...),
		enemy:   e,
		info:    e.Describe(),
		ui:      e.UIModifiers(),
		mods:    e.StatModifiers(),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.NewMemoryLogger()
	}
	if r.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		r.rng = rand.New(rand.NewSource(seed))
	}
	if r.clock == nil {
		r.clock = RealClock{}
	}
	if r.ui.TimerSpeedMultiplier <= 0 {
		r.ui.TimerSpeedMultiplier = 1
	}
	r.rc = enemy.NewRoundContext(r.rng)
	r.stats = game.NewRoundStats(cfg.Round.TargetScore, cfg.Round.Hints, cfg.Round.Graces)
	r.timeLeftMs = float64(cfg.Round.DurationSeconds) * 1000
	return r
}

// Start deals the opening board and runs the enemy's round-start hook.
func (r *Round) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return fmt.Errorf("round already started")
	}
	if r.over {
		return ErrRoundOver
	}
	r.started = true
	r.board = game.NewBoard(r.rng)

	r.log(log.NewRoundStartEvent(r.info.Name, r.info.Tier, r.cfg.BoardSize))
	r.refill()

	r.apply(r.enemy.OnRoundStart(r.rc, r.board.Snapshot()), "round start")
	r.afterMutation()
	return nil
}

// Advance moves the round clock to elapsedMs. Calls at or before the current
// clock, before Start, or after the round ended are no-ops.
func (r *Round) Advance(elapsedMs int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started || r.over || elapsedMs <= r.elapsedMs {
		return
	}
	delta := elapsedMs - r.elapsedMs
	r.elapsedMs = elapsedMs
	r.timeLeftMs -= float64(delta) * r.ui.TimerSpeedMultiplier

	r.tickHazards(delta)
	if r.over {
		return
	}
	r.apply(r.enemy.OnTick(r.rc, elapsedMs, r.board.Snapshot()), "enemy")
	r.afterMutation()
}

// Tick advances the clock by deltaMs.
func (r *Round) Tick(deltaMs int) {
	r.mu.Lock()
	target := r.elapsedMs + deltaMs
	r.mu.Unlock()
	r.Advance(target)
}

// Select resolves a selection of card IDs.
func (r *Round) Select(ids ...string) (MatchResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return MatchResult{}, ErrNotStarted
	}
	if r.over {
		return MatchResult{}, ErrRoundOver
	}
	if len(ids) != game.MatchSize {
		return MatchResult{}, fmt.Errorf("%w: need %d cards, got %d", ErrBadSelection, game.MatchSize, len(ids))
	}
	seen := make(map[string]bool, len(ids))
	cards := make([]game.Card, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			return MatchResult{}, fmt.Errorf("%w: card %s selected twice", ErrBadSelection, id)
		}
		seen[id] = true
		c := r.board.Find(id)
		if c == nil {
			return MatchResult{}, fmt.Errorf("%w: card %s is not on the board", ErrBadSelection, id)
		}
		cards = append(cards, *c)
	}

	var res MatchResult
	if game.IsValidSet(cards) {
		res = r.resolveValid(cards)
	} else {
		res = r.resolveInvalid(cards)
	}
	r.board.ClearSelection()
	r.afterMutation()
	return res, nil
}

func (r *Round) resolveValid(cards []game.Card) MatchResult {
	points := r.cfg.ScorePerMatch + StreakBonus*r.stats.CurrentStreak
	r.stats.RecordValidMatch(cards, r.elapsedMs)
	r.rc.LastValidMatchMs = r.elapsedMs

	var cleared []string
	var clearedCards []game.Card
	for _, c := range cards {
		live := r.board.Find(c.ID)
		if live.Health > 1 {
			live.Health--
			live.HasBomb, live.BombTimer = false, 0
			live.HasCountdown, live.CountdownTimer = false, 0
			live.FaceDown = false
			r.log(log.NewHazardEvent(r.elapsedMs, r.info.Name, log.EventTripleDamaged, live.String(), live.Health, "armored card cracks"))
			continue
		}
		if live.Health == 1 {
			r.stats.RecordTripleCleared()
			r.log(log.NewHazardEvent(r.elapsedMs, r.info.Name, log.EventTripleCleared, live.String(), 0, "armored card cleared"))
		}
		cleared = append(cleared, c.ID)
		clearedCards = append(clearedCards, *live)
	}
	r.board.Remove(cleared...)

	r.log(log.NewValidMatchEvent(r.elapsedMs, r.info.Name, cardNames(cards), points))
	r.addScore(points, "set found")
	r.rollWeapons()

	effect := r.enemy.OnValidMatch(r.rc, cards, r.board.Snapshot())
	r.apply(effect, "valid match")
	return MatchResult{Valid: true, Points: points, Cleared: clearedCards, Effect: effect}
}

func (r *Round) resolveInvalid(cards []game.Card) MatchResult {
	r.stats.RecordInvalidMatch()
	r.log(log.NewInvalidMatchEvent(r.elapsedMs, r.info.Name, cardNames(cards)))
	if r.stats.RecordGrace() {
		r.log(log.NewGraceEvent(r.elapsedMs, r.info.Name, r.stats.GracesRemaining))
	} else {
		r.stats.RecordDamage(1)
		r.log(log.NewDamageEvent(r.elapsedMs, r.info.Name, 1, "invalid set"))
	}
	effect := r.enemy.OnInvalidMatch(r.rc, cards, r.board.Snapshot())
	r.apply(effect, "invalid match")
	return MatchResult{Effect: effect}
}

// Hint spends a hint and returns a valid set on the board.
func (r *Round) Hint() ([]game.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return nil, ErrNotStarted
	}
	if r.over {
		return nil, ErrRoundOver
	}
	if r.ui.DisableManualHints {
		return nil, ErrHintsDisabled
	}
	set, ok := r.board.FindSet()
	if !ok {
		return nil, ErrNoSet
	}
	if !r.stats.RecordHint() {
		return nil, ErrNoHints
	}
	r.log(log.NewHintEvent(r.elapsedMs, r.info.Name, r.stats.HintsRemaining))
	r.afterMutation()
	return set, nil
}

// Close tears the round down. Later hooks and ticks are no-ops.
func (r *Round) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.over {
		r.finish(OutcomeAborted, "round closed")
	}
}

// Done is closed when the round ends.
func (r *Round) Done() <-chan struct{} {
	return r.done
}

// afterMutation syncs derived stats, latches the defeat condition and ends the
// round when time or cards run out.
func (r *Round) afterMutation() {
	if r.over {
		return
	}
	r.refill()
	r.syncStats()
	if !r.defeated && r.enemy.CheckDefeatCondition(*r.stats) {
		r.defeated = true
		r.log(log.NewEnemyDefeatedEvent(r.elapsedMs, r.info.Name, r.info.DefeatConditionText))
	}
	if r.timeLeftMs <= 0 {
		r.finishByScore("time is up")
		return
	}
	if r.board.DeckCount() == 0 {
		if _, ok := r.board.FindSet(); !ok {
			r.finishByScore("no sets left")
		}
	}
}

func (r *Round) syncStats() {
	if r.timeLeftMs < 0 {
		r.timeLeftMs = 0
	}
	r.stats.TimeRemaining = int(math.Ceil(r.timeLeftMs / 1000))
	r.stats.CardsRemaining = r.board.DeckCount()
}

func (r *Round) finishByScore(reason string) {
	if r.stats.CurrentScore >= r.stats.TargetScore {
		r.finish(OutcomeWon, reason)
		return
	}
	r.finish(OutcomeLost, reason)
}

func (r *Round) finish(outcome Outcome, reason string) {
	if r.over {
		return
	}
	r.over = true
	r.outcome = outcome
	r.reason = reason
	if r.board != nil {
		r.syncStats()
	}
	r.log(log.NewRoundEndEvent(r.elapsedMs, r.info.Name, fmt.Sprintf("%s, %s", outcome, reason), r.stats.CurrentScore))
	close(r.done)
}

// refill tops the board up to the configured size, then keeps drawing until
// a set is showing or the deck is empty.
func (r *Round) refill() {
	for len(r.board.Cards) < r.cfg.BoardSize && r.drawCard() {
	}
	for len(r.board.Cards) < maxBoardSize {
		if _, ok := r.board.FindSet(); ok {
			return
		}
		if !r.drawCard() {
			return
		}
	}
}

// drawCard moves one card from the deck onto the board through the enemy's
// draw hook.
func (r *Round) drawCard() bool {
	card, ok := r.board.Draw()
	if !ok {
		return false
	}
	card = r.enemy.OnCardDraw(r.rc, card)
	if card.HasBomb {
		r.log(log.NewHazardEvent(r.elapsedMs, r.info.Name, log.EventBombPlaced, card.String(), card.BombTimer/1000, "bomb planted"))
	}
	r.board.Place(card)
	return true
}

func (r *Round) addScore(points int, reason string) {
	if points == 0 {
		return
	}
	old := r.stats.CurrentScore
	r.stats.CurrentScore += points
	if r.stats.CurrentScore < 0 {
		r.stats.CurrentScore = 0
	}
	r.log(log.NewScoreChangeEvent(r.elapsedMs, r.info.Name, old, r.stats.CurrentScore, reason))
}

func (r *Round) addTime(seconds int, reason string) {
	if seconds == 0 {
		return
	}
	old := r.timeSeconds()
	r.timeLeftMs += float64(seconds) * 1000
	if r.timeLeftMs < 0 {
		r.timeLeftMs = 0
	}
	r.log(log.NewTimeChangeEvent(r.elapsedMs, r.info.Name, old, r.timeSeconds(), reason))
}

func (r *Round) timeSeconds() int {
	return int(math.Ceil(r.timeLeftMs / 1000))
}

func (r *Round) log(e log.RoundEvent) {
	if e.ElapsedMs == 0 {
		e.ElapsedMs = r.elapsedMs
	}
	r.logger.Log(e)
}

func cardNames(cards []game.Card) []string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.String()
	}
	return names
}
