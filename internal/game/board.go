package game

import "math/rand"

// Shuffler is the subset of *rand.Rand the board needs.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Board holds the face-up cards in display order and the draw pile.
type Board struct {
	Cards []Card
	Deck  []Card // top of deck is last element (pop from end)
}

// NewBoard creates a board whose draw pile is a full shuffled deck.
// A nil shuffler uses the global math/rand source.
func NewBoard(s Shuffler) *Board {
	deck := NewDeck()
	shuffle(s, deck)
	return &Board{Deck: deck}
}

// NewDeck returns all 81 distinct cards in attribute order.
func NewDeck() []Card {
	deck := make([]Card, 0, len(AllShapes)*len(AllColors)*len(AllNumbers)*len(AllShadings))
	for _, shape := range AllShapes {
		for _, color := range AllColors {
			for _, number := range AllNumbers {
				for _, shading := range AllShadings {
					deck = append(deck, NewCard(shape, color, number, shading))
				}
			}
		}
	}
	return deck
}

func shuffle(s Shuffler, cards []Card) {
	swap := func(i, j int) { cards[i], cards[j] = cards[j], cards[i] }
	if s == nil {
		rand.Shuffle(len(cards), swap)
		return
	}
	s.Shuffle(len(cards), swap)
}

// DeckCount returns the number of cards left in the draw pile.
func (b *Board) DeckCount() int {
	return len(b.Deck)
}

// Draw removes the top card from the draw pile.
// Returns false if the pile is empty.
func (b *Board) Draw() (Card, bool) {
	if len(b.Deck) == 0 {
		return Card{}, false
	}
	card := b.Deck[len(b.Deck)-1]
	b.Deck = b.Deck[:len(b.Deck)-1]
	return card, true
}

// Place appends a card to the end of the board.
func (b *Board) Place(card Card) {
	b.Cards = append(b.Cards, card)
}

// Find returns a pointer to the live card with the given ID, or nil.
func (b *Board) Find(id string) *Card {
	for i := range b.Cards {
		if b.Cards[i].ID == id {
			return &b.Cards[i]
		}
	}
	return nil
}

// Remove takes the given cards off the board and returns the ones that were present.
func (b *Board) Remove(ids ...string) []Card {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	var removed []Card
	kept := b.Cards[:0]
	for _, c := range b.Cards {
		if drop[c.ID] {
			removed = append(removed, c)
			continue
		}
		kept = append(kept, c)
	}
	b.Cards = kept
	return removed
}

// Reorder puts the board into the given ID order. IDs not on the board are
// ignored and cards missing from order keep their relative position at the end.
func (b *Board) Reorder(order []string) {
	byID := make(map[string]Card, len(b.Cards))
	for _, c := range b.Cards {
		byID[c.ID] = c
	}
	result := make([]Card, 0, len(b.Cards))
	for _, id := range order {
		if c, ok := byID[id]; ok {
			result = append(result, c)
			delete(byID, id)
		}
	}
	for _, c := range b.Cards {
		if _, ok := byID[c.ID]; ok {
			result = append(result, c)
		}
	}
	b.Cards = result
}

// Snapshot returns a copy of the board cards safe to hand to enemy hooks.
func (b *Board) Snapshot() []Card {
	out := make([]Card, len(b.Cards))
	copy(out, b.Cards)
	return out
}

// ClearSelection unselects every card.
func (b *Board) ClearSelection() {
	for i := range b.Cards {
		b.Cards[i].Selected = false
	}
}

// FindSet returns the first valid set on the board in board order.
func (b *Board) FindSet() ([]Card, bool) {
	n := len(b.Cards)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				trio := []Card{b.Cards[i], b.Cards[j], b.Cards[k]}
				if IsValidSet(trio) {
					return trio, true
				}
			}
		}
	}
	return nil, false
}
