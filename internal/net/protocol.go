package net

// Message types for the JSON protocol over TCP.

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "choose_enemy"
	Stage   int         `json:"stage,omitempty"`
	Enemies []EnemyView `json:"enemies,omitempty"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "state", "hint" and "round_over"
	Round *RoundView `json:"round,omitempty"`

	// For "hint": board indices of a valid set
	Hint []int `json:"hint,omitempty"`

	// For "match"
	Valid  bool `json:"valid,omitempty"`
	Points int  `json:"points,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`

	// For "round_over"
	Result        string `json:"result,omitempty"`
	DroppedEvents int    `json:"dropped_events,omitempty"`
}

// EventView is a round event as the client sees it.
type EventView struct {
	Seq       int    `json:"seq"`
	ElapsedMs int    `json:"elapsed_ms"`
	Enemy     string `json:"enemy"`
	Type      string `json:"type"`
	Card      string `json:"card,omitempty"`
	Amount    int    `json:"amount,omitempty"`
	Details   string `json:"details"`
}

// EnemyView describes one enemy on offer or in play.
type EnemyView struct {
	Index           int    `json:"index"`
	Name            string `json:"name"`
	Tier            int    `json:"tier"`
	Icon            string `json:"icon,omitempty"`
	Description     string `json:"description"`
	DefeatCondition string `json:"defeat_condition"`
}

// CardView is one board card. Hidden attributes of face-down cards are blanked.
type CardView struct {
	Index       int    `json:"index"`
	ID          string `json:"id"`
	Label       string `json:"label"`
	Shape       string `json:"shape,omitempty"`
	Color       string `json:"color,omitempty"`
	Number      int    `json:"number,omitempty"`
	Shading     string `json:"shading,omitempty"`
	Health      int    `json:"health,omitempty"`
	BombMs      int    `json:"bomb_ms,omitempty"`
	CountdownMs int    `json:"countdown_ms,omitempty"`
	FaceDown    bool   `json:"face_down,omitempty"`
}

// RoundView is the full round state.
type RoundView struct {
	Enemy           EnemyView  `json:"enemy"`
	Cards           []CardView `json:"cards"`
	DeckCount       int        `json:"deck_count"`
	Score           int        `json:"score"`
	TargetScore     int        `json:"target_score"`
	TimeRemainingMs int        `json:"time_remaining_ms"`
	ElapsedMs       int        `json:"elapsed_ms"`
	Streak          int        `json:"streak"`
	Hints           int        `json:"hints"`
	Graces          int        `json:"graces"`
	Damage          int        `json:"damage"`
	HintsDisabled   bool       `json:"hints_disabled,omitempty"`
	EnemyDefeated   bool       `json:"enemy_defeated"`
	Over            bool       `json:"over"`
	Outcome         string     `json:"outcome"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "join" (initial handshake)
	Stage int `json:"stage,omitempty"`

	// For "choose_enemy"
	Index int `json:"index,omitempty"`

	// For "select": board indices
	Indices []int `json:"indices,omitempty"`
}
