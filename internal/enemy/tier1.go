package enemy

import "github.com/peterkuimelis/nshapes/internal/game"

// ThievingRaven steals 5 seconds on every valid match.
func ThievingRaven() *Enemy {
	return &Enemy{
		Info: Info{
			Name:                "Thieving Raven",
			Tier:                1,
			Icon:                "raven",
			Description:         "Steals 5 seconds every time you find a set.",
			DefeatConditionText: "Find 5 sets.",
		},
		ValidMatch: stealTime(5),
		Defeated: func(s game.RoundStats) bool {
			return s.TotalMatches >= 5
		},
	}
}

// StingingScorpion starts a 12 second countdown on one card.
func StingingScorpion() *Enemy {
	return &Enemy{
		Info: Info{
			Name:                "Stinging Scorpion",
			Tier:                1,
			Icon:                "scorpion",
			Description:         "Marks a card with a 12 second countdown when the round begins.",
			DefeatConditionText: "Match a countdown card.",
		},
		RoundStart: attachCountdown(12000),
		Defeated: func(s game.RoundStats) bool {
			return s.CountdownCardsMatched >= 1
		},
	}
}

// BurrowingMole reshuffles the board every 20 seconds.
func BurrowingMole() *Enemy {
	return &Enemy{
		Info: Info{
			Name:                "Burrowing Mole",
			Tier:                1,
			Icon:                "mole",
			Description:         "Digs under the board and shuffles card positions every 20 seconds.",
			DefeatConditionText: "Reach a streak of 3.",
		},
		Tick: combineTicks(reshuffle("mole_shuffle", 20000)),
		Defeated: func(s game.RoundStats) bool {
			return s.MaxStreak >= 3
		},
	}
}

// GrumpyToad makes hints harder to earn.
func GrumpyToad() *Enemy {
	return &Enemy{
		Info: Info{
			Name:                "Grumpy Toad",
			Tier:                1,
			Icon:                "toad",
			Description:         "Hint gain chance is reduced by 25%.",
			DefeatConditionText: "Find 4 sets without using a hint.",
		},
		Stats: StatModifiers{HintGainChanceReduction: 0.25},
		Defeated: func(s game.RoundStats) bool {
			return s.HintsUsed == 0 && s.TotalMatches >= 4
		},
	}
}

// CraftyFox dampens fire weapons.
func CraftyFox() *Enemy {
	return &Enemy{
		Info: Info{
			Name:                "Crafty Fox",
			Tier:                1,
			Icon:                "fox",
			Description:         "Fire weapons are 25% weaker.",
			DefeatConditionText: "Match all 3 shapes.",
		},
		UI: UIModifiers{WeaponCounters: counterWeapons(25, game.WeaponFire)},
		Defeated: func(s game.RoundStats) bool {
			return len(s.ShapesMatched) >= len(game.AllShapes)
		},
	}
}

// TrainingDummy does nothing. It exists for dev tooling and is never offered.
func TrainingDummy() *Enemy {
	return &Enemy{
		Info: Info{
			Name:                "Training Dummy",
			Tier:                1,
			Icon:                "dummy",
			Description:         "A straw target. Has no effect.",
			DefeatConditionText: "Find 1 set.",
			Placeholder:         true,
		},
		Defeated: func(s game.RoundStats) bool {
			return s.TotalMatches >= 1
		},
	}
}
