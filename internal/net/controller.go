package net

import (
	"encoding/json"
	"net"
	"sync"

	"github.com/peterkuimelis/nshapes/internal/enemy"
	"github.com/peterkuimelis/nshapes/internal/game"
	"github.com/peterkuimelis/nshapes/internal/log"
	"github.com/peterkuimelis/nshapes/internal/round"
)

// PlayerConn carries protocol messages over one connection. Sends are
// serialized; receives happen on a single reader goroutine.
type PlayerConn struct {
	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder
	mu   sync.Mutex
}

// NewPlayerConn wraps conn.
func NewPlayerConn(conn net.Conn) *PlayerConn {
	return &PlayerConn{
		conn: conn,
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
	}
}

// Send writes one server message.
func (pc *PlayerConn) Send(msg ServerMessage) error {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.enc.Encode(msg)
}

// Recv reads one client message.
func (pc *PlayerConn) Recv() (ClientMessage, error) {
	var msg ClientMessage
	err := pc.dec.Decode(&msg)
	return msg, err
}

// Close closes the underlying connection.
func (pc *PlayerConn) Close() error {
	return pc.conn.Close()
}

// EnemyViewOf describes an enemy for the client.
func EnemyViewOf(index int, info enemy.Info) EnemyView {
	return EnemyView{
		Index:           index,
		Name:            info.Name,
		Tier:            info.Tier,
		Icon:            info.Icon,
		Description:     info.Description,
		DefeatCondition: info.DefeatConditionText,
	}
}

// CardViewOf describes a board card. Face-down cards only reveal their hazards.
func CardViewOf(index int, c game.Card) CardView {
	cv := CardView{
		Index:    index,
		ID:       c.ID,
		Health:   c.Health,
		FaceDown: c.FaceDown,
	}
	if c.HasBomb {
		cv.BombMs = c.BombTimer
	}
	if c.HasCountdown {
		cv.CountdownMs = c.CountdownTimer
	}
	if c.FaceDown {
		cv.Label = "??"
		return cv
	}
	cv.Label = c.String()
	cv.Shape = c.Shape.String()
	cv.Color = c.Color.String()
	cv.Number = int(c.Number)
	cv.Shading = c.Shading.String()
	return cv
}

// BuildRoundView converts a round snapshot into its wire form.
func BuildRoundView(s round.Snapshot) *RoundView {
	rv := &RoundView{
		Enemy:           EnemyViewOf(0, s.Enemy),
		DeckCount:       s.DeckCount,
		Score:           s.Stats.CurrentScore,
		TargetScore:     s.Stats.TargetScore,
		TimeRemainingMs: s.TimeRemainingMs,
		ElapsedMs:       s.ElapsedMs,
		Streak:          s.Stats.CurrentStreak,
		Hints:           s.Stats.HintsRemaining,
		Graces:          s.Stats.GracesRemaining,
		Damage:          s.Stats.DamageReceived,
		HintsDisabled:   s.UI.DisableManualHints,
		EnemyDefeated:   s.EnemyDefeated,
		Over:            s.Over,
		Outcome:         s.Outcome.String(),
	}
	rv.Cards = make([]CardView, len(s.Cards))
	for i, c := range s.Cards {
		rv.Cards[i] = CardViewOf(i, c)
	}
	return rv
}

// EventViewOf converts a logged round event.
func EventViewOf(e log.RoundEvent) *EventView {
	return &EventView{
		Seq:       e.Seq,
		ElapsedMs: e.ElapsedMs,
		Enemy:     e.Enemy,
		Type:      e.Type.String(),
		Card:      e.Card,
		Amount:    e.Amount,
		Details:   e.Details,
	}
}

// indexOf maps card IDs back to board positions.
func indexOf(cards []game.Card, ids []string) []int {
	pos := make(map[string]int, len(cards))
	for i, c := range cards {
		pos[c.ID] = i
	}
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if i, ok := pos[id]; ok {
			out = append(out, i)
		}
	}
	return out
}
