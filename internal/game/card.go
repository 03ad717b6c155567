package game

import (
	"fmt"

	"github.com/google/uuid"
)

// Card is a single card on the board or in the draw pile. Cards are passed to
// enemy hooks by value; the round controller owns the live copies.
type Card struct {
	ID      string
	Shape   Shape
	Color   Color
	Number  Number
	Shading Shading

	Selected bool

	// Enemy-attached state
	Health         int // >1 means the card must be matched Health times
	HasBomb        bool
	BombTimer      int // ms until the bomb goes off
	HasCountdown   bool
	CountdownTimer int // ms until the countdown expires
	FaceDown       bool

	// Weapon status
	Holographic bool
	OnFire      bool
}

// NewCard creates a card with a fresh identity.
func NewCard(shape Shape, color Color, number Number, shading Shading) Card {
	return Card{
		ID:      uuid.NewString(),
		Shape:   shape,
		Color:   color,
		Number:  number,
		Shading: shading,
	}
}

func (c Card) String() string {
	return fmt.Sprintf("%s %s %s %s", c.Number, c.Color, c.Shading, c.Shape)
}

// IsTriple reports whether the card needs more than one match to clear.
func (c Card) IsTriple() bool {
	return c.Health > 1
}

// CardChanges is a partial update to a card's attachable state. Nil fields are
// left untouched.
type CardChanges struct {
	Shape   *Shape
	Color   *Color
	Number  *Number
	Shading *Shading

	Health         *int
	HasBomb        *bool
	BombTimer      *int
	HasCountdown   *bool
	CountdownTimer *int
	FaceDown       *bool
	Holographic    *bool
	OnFire         *bool
}

// IsEmpty reports whether the change set touches nothing.
func (ch CardChanges) IsEmpty() bool {
	return ch.Shape == nil && ch.Color == nil && ch.Number == nil && ch.Shading == nil &&
		ch.Health == nil && ch.HasBomb == nil && ch.BombTimer == nil &&
		ch.HasCountdown == nil && ch.CountdownTimer == nil && ch.FaceDown == nil &&
		ch.Holographic == nil && ch.OnFire == nil
}

// Apply writes every non-nil field of ch onto the card.
func (c *Card) Apply(ch CardChanges) {
	if ch.Shape != nil {
		c.Shape = *ch.Shape
	}
	if ch.Color != nil {
		c.Color = *ch.Color
	}
	if ch.Number != nil {
		c.Number = *ch.Number
	}
	if ch.Shading != nil {
		c.Shading = *ch.Shading
	}
	if ch.Health != nil {
		c.Health = *ch.Health
	}
	if ch.HasBomb != nil {
		c.HasBomb = *ch.HasBomb
	}
	if ch.BombTimer != nil {
		c.BombTimer = *ch.BombTimer
	}
	if ch.HasCountdown != nil {
		c.HasCountdown = *ch.HasCountdown
	}
	if ch.CountdownTimer != nil {
		c.CountdownTimer = *ch.CountdownTimer
	}
	if ch.FaceDown != nil {
		c.FaceDown = *ch.FaceDown
	}
	if ch.Holographic != nil {
		c.Holographic = *ch.Holographic
	}
	if ch.OnFire != nil {
		c.OnFire = *ch.OnFire
	}
}

// Ptr returns a pointer to v. Used to build CardChanges literals.
func Ptr[T any](v T) *T {
	return &v
}

// --- SET rules ---

func allSameOrDifferent[T comparable](a, b, c T) bool {
	if a == b && b == c {
		return true
	}
	return a != b && b != c && a != c
}

func allDifferent[T comparable](a, b, c T) bool {
	return a != b && b != c && a != c
}

// IsValidSet reports whether three cards form a set: every attribute is
// either the same on all three or different on all three.
func IsValidSet(cards []Card) bool {
	if len(cards) != MatchSize {
		return false
	}
	a, b, c := cards[0], cards[1], cards[2]
	if a.ID != "" && (a.ID == b.ID || b.ID == c.ID || a.ID == c.ID) {
		return false
	}
	return allSameOrDifferent(a.Shape, b.Shape, c.Shape) &&
		allSameOrDifferent(a.Color, b.Color, c.Color) &&
		allSameOrDifferent(a.Number, b.Number, c.Number) &&
		allSameOrDifferent(a.Shading, b.Shading, c.Shading)
}

// IsAllDifferent reports whether every attribute differs across the three cards.
func IsAllDifferent(cards []Card) bool {
	if len(cards) != MatchSize {
		return false
	}
	a, b, c := cards[0], cards[1], cards[2]
	return allDifferent(a.Shape, b.Shape, c.Shape) &&
		allDifferent(a.Color, b.Color, c.Color) &&
		allDifferent(a.Number, b.Number, c.Number) &&
		allDifferent(a.Shading, b.Shading, c.Shading)
}

// IsAllSameColor reports whether all cards share one color.
func IsAllSameColor(cards []Card) bool {
	if len(cards) == 0 {
		return false
	}
	for _, c := range cards[1:] {
		if c.Color != cards[0].Color {
			return false
		}
	}
	return true
}

// IsAllShape reports whether every card has the given shape.
func IsAllShape(cards []Card, shape Shape) bool {
	if len(cards) == 0 {
		return false
	}
	for _, c := range cards {
		if c.Shape != shape {
			return false
		}
	}
	return true
}
