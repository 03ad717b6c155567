package enemy

import "github.com/peterkuimelis/nshapes/internal/game"

// DivingHawk makes the round timer run 35% faster.
func DivingHawk() *Enemy {
	return &Enemy{
		Info: Info{
			Name:                "Diving Hawk",
			Tier:                2,
			Icon:                "hawk",
			Description:         "The timer runs 1.35x faster.",
			DefeatConditionText: "Find 3 sets where every attribute differs.",
		},
		UI: UIModifiers{TimerSpeedMultiplier: 1.35},
		Defeated: func(s game.RoundStats) bool {
			return s.AllDifferentMatches >= 3
		},
	}
}

// GoblinSaboteur halves three weapon types.
func GoblinSaboteur() *Enemy {
	return &Enemy{
		Info: Info{
			Name:                "Goblin Saboteur",
			Tier:                2,
			Icon:                "goblin",
			Description:         "Explosive, laser and hint weapons are 50% weaker.",
			DefeatConditionText: "Trigger 3 different weapon types.",
		},
		UI: UIModifiers{
			WeaponCounters: counterWeapons(50, game.WeaponExplosive, game.WeaponLaser, game.WeaponHint),
		},
		Defeated: func(s game.RoundStats) bool {
			return len(s.WeaponEffectsTriggered) >= 3
		},
	}
}

const (
	cobraBombChance = 0.1
	cobraBombTimer  = 10000
)

// VenomousCobra mutates cards every 15 seconds and plants bombs on drawn cards.
func VenomousCobra() *Enemy {
	return &Enemy{
		Info: Info{
			Name:                "Venomous Cobra",
			Tier:                2,
			Icon:                "cobra",
			Description:         "Every 15 seconds its venom changes a card's shape. New cards may carry a 10 second bomb.",
			DefeatConditionText: "Defuse 4 bombs.",
		},
		Tick:     combineTicks(mutateAttribute("cobra_venom", 15000, 1)),
		CardDraw: plantBombs(cobraBombChance, cobraBombTimer),
		Defeated: func(s game.RoundStats) bool {
			return s.BombsDefused >= 4
		},
	}
}

// ShadowBat turns three cards face-down at the start of the round.
func ShadowBat() *Enemy {
	return &Enemy{
		Info: Info{
			Name:                "Shadow Bat",
			Tier:                2,
			Icon:                "bat",
			Description:         "Flips 3 cards face-down when the round begins.",
			DefeatConditionText: "Match 3 face-down cards.",
		},
		RoundStart: turnFaceDown(3),
		Defeated: func(s game.RoundStats) bool {
			return s.FaceDownCardsMatched >= 3
		},
	}
}

// SnappingTurtle punishes every invalid selection.
func SnappingTurtle() *Enemy {
	return &Enemy{
		Info: Info{
			Name:                "Snapping Turtle",
			Tier:                2,
			Icon:                "turtle",
			Description:         "Each invalid selection costs 3 seconds and 10 points.",
			DefeatConditionText: "Find 6 sets without a single mistake.",
		},
		InvalidMatch: invalidPenalty(3, 10),
		Defeated: func(s game.RoundStats) bool {
			return s.TotalMatches >= 6 && s.InvalidMatches == 0
		},
	}
}
