package mcp

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"

	"github.com/peterkuimelis/nshapes/internal/config"
	"github.com/peterkuimelis/nshapes/internal/enemy"
	"github.com/peterkuimelis/nshapes/internal/log"
	nsnet "github.com/peterkuimelis/nshapes/internal/net"
	"github.com/peterkuimelis/nshapes/internal/round"
)

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events []nsnet.EventView `json:"events"`
	Round  *nsnet.RoundView  `json:"round,omitempty"`
	Match  *MatchView        `json:"match,omitempty"`
	Hint   []int             `json:"hint,omitempty"`
	Over   bool              `json:"over"`
	Result string            `json:"result,omitempty"`
}

// MatchView reports how a selection resolved.
type MatchView struct {
	Valid     bool `json:"valid"`
	Points    int  `json:"points"`
	TimeDelta int  `json:"time_delta,omitempty"`
}

// RoundSession holds one round driven entirely by tool calls. Time only
// moves when advance_time is called.
type RoundSession struct {
	round *round.Round

	mu     sync.Mutex
	events []nsnet.EventView
}

// NewRoundSession starts a round against the named enemy. With no name it
// uses the configured forced enemy, else a random enemy of the stage's tier.
func NewRoundSession(cfg config.Config, name string, stage int) (*RoundSession, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))

	var foe *enemy.Enemy
	if name != "" {
		e, err := enemy.LookupEnemy(name)
		if err != nil {
			return nil, err
		}
		foe = e
	} else {
		// An unknown forced_enemy falls back to a random pick of the tier.
		tier := cfg.Progression.TierFor(stage)
		picked, _ := enemy.DefaultRegistry().SelectForced(rng, tier, 1, cfg.ForcedEnemy)
		if len(picked) == 0 {
			return nil, fmt.Errorf("no enemies for tier %d", tier)
		}
		e, err := enemy.LookupEnemy(picked[0].Name)
		if err != nil {
			return nil, err
		}
		foe = e
	}

	sess := &RoundSession{}
	logger := log.NewFuncLogger(func(e log.RoundEvent) {
		sess.appendEvent(*nsnet.EventViewOf(e))
	})
	sess.round = round.New(cfg, foe, round.WithLogger(logger), round.WithRand(rng))
	if err := sess.round.Start(); err != nil {
		return nil, err
	}
	return sess, nil
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *RoundSession) appendEvent(ev nsnet.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *RoundSession) drainEvents() []nsnet.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []nsnet.EventView{}
	}
	return events
}

// response builds a ToolResponse with accumulated events and the current round.
func (s *RoundSession) response() *ToolResponse {
	snap := s.round.Snapshot()
	resp := &ToolResponse{
		Events: s.drainEvents(),
		Round:  nsnet.BuildRoundView(snap),
		Over:   snap.Over,
	}
	if snap.Over {
		resp.Result = fmt.Sprintf("%s: %s", snap.Outcome, snap.Reason)
		if snap.EnemyDefeated {
			resp.Result += fmt.Sprintf(" (%s defeated)", snap.Enemy.Name)
		}
	}
	return resp
}

// respondJSON marshals a value to a JSON string.
func respondJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
