package mcp

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/peterkuimelis/nshapes/internal/game"
)

// Select resolves the cards at the given board positions.
func (s *RoundSession) Select(indices []int) (*ToolResponse, error) {
	cards := s.round.Cards()
	ids := make([]string, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(cards) {
			return nil, fmt.Errorf("index %d out of range, must be 0-%d", idx, len(cards)-1)
		}
		ids[i] = cards[idx].ID
	}
	res, err := s.round.Select(ids...)
	if err != nil {
		return nil, err
	}
	resp := s.response()
	resp.Match = &MatchView{Valid: res.Valid, Points: res.Points, TimeDelta: res.Effect.TimeDelta}
	return resp, nil
}

// Hint spends a hint and reports the positions of a valid set.
func (s *RoundSession) Hint() (*ToolResponse, error) {
	set, err := s.round.Hint()
	if err != nil {
		return nil, err
	}
	resp := s.response()
	resp.Hint = positions(s.round.Cards(), set)
	return resp, nil
}

// Advance moves the round clock forward by ms.
func (s *RoundSession) Advance(ms int) (*ToolResponse, error) {
	if ms <= 0 {
		return nil, fmt.Errorf("ms must be > 0, got %d", ms)
	}
	s.round.Tick(ms)
	return s.response(), nil
}

// State reports the round without changing it.
func (s *RoundSession) State() *ToolResponse {
	return s.response()
}

// End tears the round down.
func (s *RoundSession) End() *ToolResponse {
	s.round.Close()
	return s.response()
}

// parseIndices accepts "0 2 5", "0,2,5" or a JSON array of numbers.
func parseIndices(raw any) ([]int, error) {
	var parts []any
	switch v := raw.(type) {
	case nil:
		return nil, fmt.Errorf("indices are required")
	case string:
		for _, f := range strings.FieldsFunc(v, func(r rune) bool { return r == ' ' || r == ',' }) {
			parts = append(parts, f)
		}
	case []any:
		parts = v
	default:
		parts = []any{v}
	}
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := cast.ToIntE(p)
		if err != nil {
			return nil, fmt.Errorf("invalid index %v: must be an integer", p)
		}
		out = append(out, n)
	}
	if len(out) != game.MatchSize {
		return nil, fmt.Errorf("select exactly %d cards, got %d", game.MatchSize, len(out))
	}
	return out, nil
}

func positions(board, set []game.Card) []int {
	pos := make(map[string]int, len(board))
	for i, c := range board {
		pos[c.ID] = i
	}
	out := make([]int, 0, len(set))
	for _, c := range set {
		if i, ok := pos[c.ID]; ok {
			out = append(out, i)
		}
	}
	return out
}
