package round

import (
	"fmt"

	"github.com/peterkuimelis/nshapes/internal/config"
	"github.com/peterkuimelis/nshapes/internal/game"
	"github.com/peterkuimelis/nshapes/internal/log"
)

const (
	timeFreezeSeconds = 3
	weaponClearPoints = 5
)

// EffectiveChance is a weapon's trigger chance after the active enemy's
// weapon counters and stat reductions.
func (r *Round) EffectiveChance(w config.Weapon) float64 {
	chance := w.Chance
	chance *= 1 - float64(r.ui.CounterFor(w.Type))/100
	chance *= 1 - r.mods.ChanceReduction(w.Type)
	if w.Type == game.WeaponHint {
		chance *= 1 - r.mods.HintGainChanceReduction
	}
	if chance < 0 {
		return 0
	}
	return chance
}

// rollWeapons gives every weapon in the loadout one chance to trigger.
func (r *Round) rollWeapons() {
	for _, w := range r.weapons {
		if r.rng.Float64() >= r.EffectiveChance(w) {
			continue
		}
		r.stats.RecordWeaponTrigger(w.Type)
		r.fireWeapon(w.Type)
	}
}

func (r *Round) fireWeapon(t game.WeaponType) {
	switch t {
	case game.WeaponExplosive, game.WeaponLaser, game.WeaponFire:
		target, ok := r.weaponTarget()
		if !ok {
			r.log(log.NewWeaponEvent(r.elapsedMs, r.info.Name, string(t), "no target"))
			return
		}
		if target.HasBomb {
			r.stats.RecordBombDefused()
		}
		r.board.Remove(target.ID)
		r.log(log.NewWeaponEvent(r.elapsedMs, r.info.Name, string(t), fmt.Sprintf("destroys %s", target)))
		r.addScore(weaponClearPoints, string(t))
	case game.WeaponHint:
		r.stats.HintsRemaining++
		r.log(log.NewWeaponEvent(r.elapsedMs, r.info.Name, string(t), "gain a hint"))
	case game.WeaponGrace:
		r.stats.GracesRemaining++
		r.log(log.NewWeaponEvent(r.elapsedMs, r.info.Name, string(t), "gain a grace"))
	case game.WeaponTimeFreeze:
		r.log(log.NewWeaponEvent(r.elapsedMs, r.info.Name, string(t), fmt.Sprintf("+%ds", timeFreezeSeconds)))
		r.addTime(timeFreezeSeconds, string(t))
	case game.WeaponEcho:
		r.log(log.NewWeaponEvent(r.elapsedMs, r.info.Name, string(t), "echoes the set"))
		r.addScore(r.cfg.ScorePerMatch, string(t))
	}
}

// weaponTarget picks a random card that was never armored, preferring bombs.
func (r *Round) weaponTarget() (game.Card, bool) {
	var pool []game.Card
	for _, c := range r.board.Cards {
		if c.Health > 0 {
			continue
		}
		if c.HasBomb {
			return c, true
		}
		pool = append(pool, c)
	}
	if len(pool) == 0 {
		return game.Card{}, false
	}
	return pool[r.rng.Intn(len(pool))], true
}
