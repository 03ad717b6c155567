package enemy

import (
	"fmt"

	"github.com/peterkuimelis/nshapes/internal/game"
)

// Shared building blocks for the catalog. Each returns a hook closure (or a
// fragment of one) so enemies can be assembled from the mechanics they use.

type tickFunc func(rc *RoundContext, elapsedMs int, board []game.Card) EffectResult

// combineTicks runs every fragment and merges their results in order.
func combineTicks(fns ...tickFunc) func(rc *RoundContext, elapsedMs int, board []game.Card) EffectResult {
	return func(rc *RoundContext, elapsedMs int, board []game.Card) EffectResult {
		res := NoEffect()
		for _, fn := range fns {
			res = res.Merge(fn(rc, elapsedMs, board))
		}
		return res
	}
}

// stealTime takes seconds off the timer on every valid match.
func stealTime(seconds int) func(rc *RoundContext, matched, board []game.Card) EffectResult {
	return func(rc *RoundContext, matched, board []game.Card) EffectResult {
		return EffectResult{
			TimeDelta: -seconds,
			Events:    []Event{{Type: EventTimeStolen, Amount: seconds}},
		}
	}
}

// scoreDecay removes points for every period of elapsed time.
func scoreDecay(key string, points, everyMs int) tickFunc {
	return func(rc *RoundContext, elapsedMs int, board []game.Card) EffectResult {
		n := rc.Crossed(key, elapsedMs, everyMs)
		if n == 0 {
			return NoEffect()
		}
		return EffectResult{
			ScoreDelta: -points * n,
			Events:     []Event{{Type: EventScoreDecay, Amount: points * n}},
		}
	}
}

// reshuffle permutes board positions once per period.
func reshuffle(key string, everyMs int) tickFunc {
	return func(rc *RoundContext, elapsedMs int, board []game.Card) EffectResult {
		if rc.Crossed(key, elapsedMs, everyMs) == 0 {
			return NoEffect()
		}
		order := make([]string, len(board))
		for i, c := range board {
			order[i] = c.ID
		}
		if len(order) > 1 {
			rc.rand().Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		}
		return EffectResult{
			Events: []Event{{Type: EventPositionsShuffled, Order: order, Amount: len(order)}},
		}
	}
}

// inactivityDeath ends the round once thresholdMs pass without a valid match.
func inactivityDeath(key string, thresholdMs int) tickFunc {
	return func(rc *RoundContext, elapsedMs int, board []game.Card) EffectResult {
		if elapsedMs-rc.lastValidMatch() < thresholdMs {
			return NoEffect()
		}
		if !rc.Once(key) {
			return NoEffect()
		}
		return EffectResult{
			InstantDeath: true,
			Events: []Event{{
				Type:    EventInstantDeath,
				Amount:  thresholdMs / 1000,
				Message: fmt.Sprintf("no valid match for %ds", thresholdMs/1000),
			}},
		}
	}
}

// mutateAttribute changes the shape of count random cards once per period.
func mutateAttribute(key string, everyMs, count int) tickFunc {
	return func(rc *RoundContext, elapsedMs int, board []game.Card) EffectResult {
		if rc.Crossed(key, elapsedMs, everyMs) == 0 {
			return NoEffect()
		}
		return alterCards(rc, board, count, len(game.AllShapes), func(c game.Card, step int) (game.Card, game.CardChanges) {
			c.Shape = game.AllShapes[(int(c.Shape)+step)%len(game.AllShapes)]
			return c, game.CardChanges{Shape: game.Ptr(c.Shape)}
		})
	}
}

// recolorOnce changes the color of count random cards the first time
// elapsed time reaches atMs.
func recolorOnce(key string, atMs, count int) tickFunc {
	return func(rc *RoundContext, elapsedMs int, board []game.Card) EffectResult {
		if elapsedMs < atMs || !rc.Once(key) {
			return NoEffect()
		}
		return alterCards(rc, board, count, len(game.AllColors), func(c game.Card, step int) (game.Card, game.CardChanges) {
			c.Color = game.AllColors[(int(c.Color)+step)%len(game.AllColors)]
			return c, game.CardChanges{Color: game.Ptr(c.Color)}
		})
	}
}

// cardFace identifies a card by its attributes alone.
type cardFace struct {
	shape   game.Shape
	color   game.Color
	number  game.Number
	shading game.Shading
}

func faceOf(c game.Card) cardFace {
	return cardFace{c.Shape, c.Color, c.Number, c.Shading}
}

// alterCards gives up to count random cards a different value of one
// attribute. alter applies step (1..values-1) to a card. A card is skipped
// when every alternative would duplicate a card already on the board.
func alterCards(rc *RoundContext, board []game.Card, count, values int, alter func(c game.Card, step int) (game.Card, game.CardChanges)) EffectResult {
	taken := make(map[cardFace]bool, len(board))
	for _, c := range board {
		taken[faceOf(c)] = true
	}

	res := NoEffect()
	var ids []string
	for _, c := range pickRandom(rc, board, len(board), nil) {
		if len(ids) == count {
			break
		}
		start := rc.rand().Intn(values - 1)
		for k := 0; k < values-1; k++ {
			changed, changes := alter(c, 1+(start+k)%(values-1))
			face := faceOf(changed)
			if taken[face] {
				continue
			}
			delete(taken, faceOf(c))
			taken[face] = true
			res.CardModifications = append(res.CardModifications, CardModification{CardID: c.ID, Changes: changes})
			ids = append(ids, c.ID)
			break
		}
	}
	if len(ids) == 0 {
		return NoEffect()
	}
	res.Events = append(res.Events, Event{Type: EventCardMutated, CardIDs: ids, Amount: len(ids)})
	return res
}

// attachTriple gives count random cards triple health at round start.
func attachTriple(count int) func(rc *RoundContext, board []game.Card) EffectResult {
	return func(rc *RoundContext, board []game.Card) EffectResult {
		picked := pickRandom(rc, board, count, func(c game.Card) bool { return !c.IsTriple() })
		if len(picked) == 0 {
			return NoEffect()
		}
		res := NoEffect()
		var ids []string
		for _, c := range picked {
			res.CardModifications = append(res.CardModifications, CardModification{
				CardID:  c.ID,
				Changes: game.CardChanges{Health: game.Ptr(game.TripleHealth)},
			})
			ids = append(ids, c.ID)
		}
		res.Events = append(res.Events, Event{Type: EventTripleAttached, CardIDs: ids, Amount: len(ids)})
		return res
	}
}

// attachCountdown starts a countdown on one random card at round start.
func attachCountdown(timerMs int) func(rc *RoundContext, board []game.Card) EffectResult {
	return func(rc *RoundContext, board []game.Card) EffectResult {
		picked := pickRandom(rc, board, 1, func(c game.Card) bool { return !c.HasCountdown })
		if len(picked) == 0 {
			return NoEffect()
		}
		c := picked[0]
		return EffectResult{
			CardModifications: []CardModification{{
				CardID: c.ID,
				Changes: game.CardChanges{
					HasCountdown:   game.Ptr(true),
					CountdownTimer: game.Ptr(timerMs),
				},
			}},
			Events: []Event{{Type: EventCountdownAttached, CardIDs: []string{c.ID}, Amount: timerMs / 1000}},
		}
	}
}

// turnFaceDown hides count random cards at round start.
func turnFaceDown(count int) func(rc *RoundContext, board []game.Card) EffectResult {
	return func(rc *RoundContext, board []game.Card) EffectResult {
		picked := pickRandom(rc, board, count, func(c game.Card) bool { return !c.FaceDown })
		if len(picked) == 0 {
			return NoEffect()
		}
		res := NoEffect()
		var ids []string
		for _, c := range picked {
			res.CardModifications = append(res.CardModifications, CardModification{
				CardID:  c.ID,
				Changes: game.CardChanges{FaceDown: game.Ptr(true)},
			})
			ids = append(ids, c.ID)
		}
		res.Events = append(res.Events, Event{Type: EventFaceDown, CardIDs: ids, Amount: len(ids)})
		return res
	}
}

// removeExtra takes count random cards besides the selection off the board.
func removeExtra(count int) func(rc *RoundContext, selected, board []game.Card) EffectResult {
	return func(rc *RoundContext, selected, board []game.Card) EffectResult {
		skip := make(map[string]bool, len(selected))
		for _, c := range selected {
			skip[c.ID] = true
		}
		picked := pickRandom(rc, board, count, func(c game.Card) bool { return !skip[c.ID] })
		if len(picked) == 0 {
			return NoEffect()
		}
		ids := make([]string, len(picked))
		for i, c := range picked {
			ids[i] = c.ID
		}
		return EffectResult{
			CardsToRemove: picked,
			Events:        []Event{{Type: EventCardsRemoved, CardIDs: ids, Amount: len(ids)}},
		}
	}
}

// invalidPenalty costs time and score on every rejected selection.
func invalidPenalty(seconds, points int) func(rc *RoundContext, selected, board []game.Card) EffectResult {
	return func(rc *RoundContext, selected, board []game.Card) EffectResult {
		return EffectResult{
			TimeDelta:  -seconds,
			ScoreDelta: -points,
			Events: []Event{
				{Type: EventTimeStolen, Amount: seconds},
				{Type: EventScorePenalty, Amount: points},
			},
		}
	}
}

// plantBombs arms drawn cards with a bomb with the given probability.
func plantBombs(probability float64, timerMs int) func(rc *RoundContext, card game.Card) game.Card {
	return func(rc *RoundContext, card game.Card) game.Card {
		if card.HasBomb {
			return card
		}
		if rc.rand().Float64() >= probability {
			return card
		}
		card.HasBomb = true
		card.BombTimer = timerMs
		return card
	}
}

// counterWeapons builds a counter list for the given types at one reduction.
func counterWeapons(reduction int, types ...game.WeaponType) []WeaponCounter {
	out := make([]WeaponCounter, len(types))
	for i, t := range types {
		out[i] = WeaponCounter{Type: t, Reduction: reduction}
	}
	return out
}

// pickRandom chooses up to n distinct cards satisfying keep (nil keeps all).
func pickRandom(rc *RoundContext, board []game.Card, n int, keep func(game.Card) bool) []game.Card {
	var pool []game.Card
	for _, c := range board {
		if keep == nil || keep(c) {
			pool = append(pool, c)
		}
	}
	if n > len(pool) {
		n = len(pool)
	}
	r := rc.rand()
	for i := 0; i < n; i++ {
		j := i + r.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}
