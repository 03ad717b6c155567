package enemy

import "github.com/peterkuimelis/nshapes/internal/game"

// MercilessPorcupine removes extra cards on mistakes and kills idle players.
func MercilessPorcupine() *Enemy {
	return &Enemy{
		Info: Info{
			Name:                "Merciless Porcupine",
			Tier:                3,
			Icon:                "porcupine",
			Description:         "Invalid selections cost 3 more cards. 35 seconds without a set is instant death.",
			DefeatConditionText: "Find at least one set and never make a mistake.",
		},
		Tick:         combineTicks(inactivityDeath("porcupine_quills", 35000)),
		InvalidMatch: removeExtra(3),
		Defeated: func(s game.RoundStats) bool {
			return s.TotalMatches > 0 && s.InvalidMatches == 0
		},
	}
}

// NightmareSquid drains score every second and scrambles the board.
func NightmareSquid() *Enemy {
	return &Enemy{
		Info: Info{
			Name:                "Nightmare Squid",
			Tier:                3,
			Icon:                "squid",
			Description:         "Drains 6 points every second and shuffles the board every 15 seconds.",
			DefeatConditionText: "Reach double the target score.",
		},
		Tick: combineTicks(
			scoreDecay("squid_ink", 6, 1000),
			reshuffle("squid_shuffle", 15000),
		),
		Defeated: func(s game.RoundStats) bool {
			return s.TargetScore > 0 && s.CurrentScore >= 2*s.TargetScore
		},
	}
}

// OneEyedTerror blinds the hint system.
func OneEyedTerror() *Enemy {
	return &Enemy{
		Info: Info{
			Name:                "One-Eyed Terror",
			Tier:                3,
			Icon:                "cyclops",
			Description:         "Hints are disabled and hint gain chance is reduced by 55%.",
			DefeatConditionText: "Find 3 sets where every attribute differs.",
		},
		UI: UIModifiers{
			DisableAutoHints:   true,
			DisableManualHints: true,
		},
		Stats: StatModifiers{HintGainChanceReduction: 0.55},
		Defeated: func(s game.RoundStats) bool {
			return s.AllDifferentMatches >= 3
		},
	}
}

// StoneSentinel armors two cards and resists explosives and lasers.
func StoneSentinel() *Enemy {
	return &Enemy{
		Info: Info{
			Name:                "Stone Sentinel",
			Tier:                3,
			Icon:                "sentinel",
			Description:         "Two cards need 3 matches to clear. Explosive and laser chance reduced by 55%.",
			DefeatConditionText: "Clear 2 triple cards.",
		},
		Stats: StatModifiers{
			WeaponChanceReductions: map[game.WeaponType]float64{
				game.WeaponExplosive: 0.55,
				game.WeaponLaser:     0.55,
			},
		},
		RoundStart: attachTriple(2),
		Defeated: func(s game.RoundStats) bool {
			return s.TripleCardsCleared >= 2
		},
	}
}

// SwarmingAnts smother fire and carry small bombs.
func SwarmingAnts() *Enemy {
	return &Enemy{
		Info: Info{
			Name:                "Swarming Ants",
			Tier:                3,
			Icon:                "ants",
			Description:         "Fire spread chance reduced by 55%. One card starts an 8 second countdown and new cards may carry bombs.",
			DefeatConditionText: "Defuse 5 bombs.",
		},
		Stats: StatModifiers{
			WeaponChanceReductions: map[game.WeaponType]float64{
				game.WeaponFire: 0.55,
			},
		},
		RoundStart: attachCountdown(8000),
		CardDraw:   plantBombs(0.12, 12000),
		Defeated: func(s game.RoundStats) bool {
			return s.BombsDefused >= 5
		},
	}
}

// ChromaticChameleon repaints two cards once, 20 seconds in.
func ChromaticChameleon() *Enemy {
	return &Enemy{
		Info: Info{
			Name:                "Chromatic Chameleon",
			Tier:                3,
			Icon:                "chameleon",
			Description:         "After 20 seconds two cards change color.",
			DefeatConditionText: "Match every color at least twice.",
		},
		Tick: combineTicks(recolorOnce("chameleon_paint", 20000, 2)),
		Defeated: func(s game.RoundStats) bool {
			for _, c := range game.AllColors {
				if s.ColorMatchCounts[c] < 2 {
					return false
				}
			}
			return true
		},
	}
}
