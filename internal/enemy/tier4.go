package enemy

import "github.com/peterkuimelis/nshapes/internal/game"

// KrakensGrasp shuffles the board every 10 seconds and counters every weapon.
func KrakensGrasp() *Enemy {
	return &Enemy{
		Info: Info{
			Name:                "Kraken's Grasp",
			Tier:                4,
			Icon:                "kraken",
			Description:         "Shuffles the board every 10 seconds. All weapons are 75% weaker.",
			DefeatConditionText: "Reach the target score with at least 5 cards left in the deck.",
		},
		UI: UIModifiers{
			WeaponCounters: counterWeapons(75, game.AllWeaponTypes...),
		},
		Tick: combineTicks(reshuffle("kraken_shuffle", 10000)),
		Defeated: func(s game.RoundStats) bool {
			return s.CurrentScore >= s.TargetScore && s.CardsRemaining >= 5
		},
	}
}

// TheHydra steals time and kills idle players after 30 seconds.
func TheHydra() *Enemy {
	return &Enemy{
		Info: Info{
			Name:                "The Hydra",
			Tier:                4,
			Icon:                "hydra",
			Description:         "Steals 4 seconds per set. 30 seconds without a set is instant death.",
			DefeatConditionText: "Find 10 sets without a single mistake.",
		},
		Tick:       combineTicks(inactivityDeath("hydra_bite", 30000)),
		ValidMatch: stealTime(4),
		Defeated: func(s game.RoundStats) bool {
			return s.TotalMatches >= 10 && s.InvalidMatches == 0
		},
	}
}

// AncientDragon burns score and rains bombs onto new cards.
func AncientDragon() *Enemy {
	return &Enemy{
		Info: Info{
			Name:                "Ancient Dragon",
			Tier:                4,
			Icon:                "dragon",
			Description:         "Burns 3 points every second. New cards may carry an 8 second bomb.",
			DefeatConditionText: "Defuse 3 bombs and find 2 all-squiggle sets.",
		},
		Tick:     combineTicks(scoreDecay("dragon_fire", 3, 1000)),
		CardDraw: plantBombs(0.15, 8000),
		Defeated: func(s game.RoundStats) bool {
			return s.BombsDefused >= 3 && s.SquiggleMatches >= 2
		},
	}
}

// VoidSerpent hides manual hints and swallows time.
func VoidSerpent() *Enemy {
	return &Enemy{
		Info: Info{
			Name:                "Void Serpent",
			Tier:                4,
			Icon:                "serpent",
			Description:         "Manual hints are disabled. Steals 3 seconds per set.",
			DefeatConditionText: "Find 8 sets with at least 90% accuracy.",
		},
		UI:         UIModifiers{DisableManualHints: true},
		ValidMatch: stealTime(3),
		Defeated: func(s game.RoundStats) bool {
			return s.TotalMatches >= 8 && s.Accuracy() >= 0.9
		},
	}
}

// BlazingPhoenix armors three cards and shrugs off fire.
func BlazingPhoenix() *Enemy {
	return &Enemy{
		Info: Info{
			Name:                "Blazing Phoenix",
			Tier:                4,
			Icon:                "phoenix",
			Description:         "Three cards need 3 matches to clear. Fire weapons are 75% weaker.",
			DefeatConditionText: "Find 2 single-color sets and clear 3 triple cards.",
		},
		UI:         UIModifiers{WeaponCounters: counterWeapons(75, game.WeaponFire)},
		RoundStart: attachTriple(3),
		Defeated: func(s game.RoundStats) bool {
			return s.AllSameColorMatches >= 2 && s.TripleCardsCleared >= 3
		},
	}
}
