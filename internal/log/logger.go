package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// EventLogger is the interface for logging round events.
type EventLogger interface {
	Log(event RoundEvent)
	Events() []RoundEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	mu     sync.Mutex
	events []RoundEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event RoundEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []RoundEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]RoundEvent(nil), l.events...)
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []RoundEvent {
	var result []RoundEvent
	for _, e := range l.Events() {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() RoundEvent {
	events := l.Events()
	if len(events) == 0 {
		return RoundEvent{}
	}
	return events[len(events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event RoundEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- FuncLogger: forwards every event to a callback ---

// FuncLogger records events and hands each one to fn, e.g. to stream them
// to a network client.
type FuncLogger struct {
	MemoryLogger
	fn func(RoundEvent)
}

func NewFuncLogger(fn func(RoundEvent)) *FuncLogger {
	return &FuncLogger{fn: fn}
}

func (l *FuncLogger) Log(event RoundEvent) {
	l.MemoryLogger.Log(event)
	if l.fn != nil {
		l.fn(event)
	}
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e RoundEvent) string {
	return fmt.Sprintf("%6.1fs | %s", float64(e.ElapsedMs)/1000, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []RoundEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewRoundStartEvent(enemy string, tier int, boardSize int) RoundEvent {
	return RoundEvent{
		Enemy:   enemy,
		Type:    EventRoundStart,
		Amount:  boardSize,
		Details: fmt.Sprintf("=== Round start vs %s (tier %d), %d cards dealt ===", enemy, tier, boardSize),
	}
}

func NewValidMatchEvent(elapsedMs int, enemy string, cards []string, points int) RoundEvent {
	return RoundEvent{
		ElapsedMs: elapsedMs,
		Enemy:     enemy,
		Type:      EventValidMatch,
		Card:      strings.Join(cards, ", "),
		Amount:    points,
		Details:   fmt.Sprintf("Set found: %s (+%d)", strings.Join(cards, ", "), points),
	}
}

func NewInvalidMatchEvent(elapsedMs int, enemy string, cards []string) RoundEvent {
	return RoundEvent{
		ElapsedMs: elapsedMs,
		Enemy:     enemy,
		Type:      EventInvalidMatch,
		Card:      strings.Join(cards, ", "),
		Details:   fmt.Sprintf("Not a set: %s", strings.Join(cards, ", ")),
	}
}

func NewTimeStolenEvent(elapsedMs int, enemy string, seconds int) RoundEvent {
	return RoundEvent{
		ElapsedMs: elapsedMs,
		Enemy:     enemy,
		Type:      EventTimeStolen,
		Amount:    seconds,
		Details:   fmt.Sprintf("%s steals %ds", enemy, seconds),
	}
}

func NewTimeChangeEvent(elapsedMs int, enemy string, oldSec, newSec int, reason string) RoundEvent {
	return RoundEvent{
		ElapsedMs: elapsedMs,
		Enemy:     enemy,
		Type:      EventTimeChange,
		Amount:    newSec - oldSec,
		Details:   fmt.Sprintf("Time: %ds → %ds (%s)", oldSec, newSec, reason),
	}
}

func NewScoreChangeEvent(elapsedMs int, enemy string, oldScore, newScore int, reason string) RoundEvent {
	return RoundEvent{
		ElapsedMs: elapsedMs,
		Enemy:     enemy,
		Type:      EventScoreChange,
		Amount:    newScore - oldScore,
		Details:   fmt.Sprintf("Score: %d → %d (%s)", oldScore, newScore, reason),
	}
}

func NewScoreDecayEvent(elapsedMs int, enemy string, points int) RoundEvent {
	return RoundEvent{
		ElapsedMs: elapsedMs,
		Enemy:     enemy,
		Type:      EventScoreDecay,
		Amount:    points,
		Details:   fmt.Sprintf("%s drains %d points", enemy, points),
	}
}

func NewShuffleEvent(elapsedMs int, enemy string, cards int) RoundEvent {
	return RoundEvent{
		ElapsedMs: elapsedMs,
		Enemy:     enemy,
		Type:      EventPositionsShuffled,
		Amount:    cards,
		Details:   fmt.Sprintf("%s shuffles the board", enemy),
	}
}

func NewCardMutatedEvent(elapsedMs int, enemy string, card string) RoundEvent {
	return RoundEvent{
		ElapsedMs: elapsedMs,
		Enemy:     enemy,
		Type:      EventCardMutated,
		Card:      card,
		Details:   fmt.Sprintf("%s transforms a card into %s", enemy, card),
	}
}

func NewHazardEvent(elapsedMs int, enemy string, t EventType, card string, amount int, what string) RoundEvent {
	return RoundEvent{
		ElapsedMs: elapsedMs,
		Enemy:     enemy,
		Type:      t,
		Card:      card,
		Amount:    amount,
		Details:   fmt.Sprintf("%s: %s (%s)", enemy, what, card),
	}
}

func NewCardsRemovedEvent(elapsedMs int, enemy string, cards []string, reason string) RoundEvent {
	return RoundEvent{
		ElapsedMs: elapsedMs,
		Enemy:     enemy,
		Type:      EventCardsRemoved,
		Card:      strings.Join(cards, ", "),
		Amount:    len(cards),
		Details:   fmt.Sprintf("%d card(s) removed (%s)", len(cards), reason),
	}
}

func NewWeaponEvent(elapsedMs int, enemy string, weapon string, details string) RoundEvent {
	return RoundEvent{
		ElapsedMs: elapsedMs,
		Enemy:     enemy,
		Type:      EventWeaponTriggered,
		Card:      weapon,
		Details:   fmt.Sprintf("Weapon %s triggers: %s", weapon, details),
	}
}

func NewHintEvent(elapsedMs int, enemy string, remaining int) RoundEvent {
	return RoundEvent{
		ElapsedMs: elapsedMs,
		Enemy:     enemy,
		Type:      EventHintUsed,
		Amount:    remaining,
		Details:   fmt.Sprintf("Hint used (%d left)", remaining),
	}
}

func NewGraceEvent(elapsedMs int, enemy string, remaining int) RoundEvent {
	return RoundEvent{
		ElapsedMs: elapsedMs,
		Enemy:     enemy,
		Type:      EventGraceUsed,
		Amount:    remaining,
		Details:   fmt.Sprintf("Grace absorbs the mistake (%d left)", remaining),
	}
}

func NewDamageEvent(elapsedMs int, enemy string, amount int, reason string) RoundEvent {
	return RoundEvent{
		ElapsedMs: elapsedMs,
		Enemy:     enemy,
		Type:      EventDamage,
		Amount:    amount,
		Details:   fmt.Sprintf("Took %d damage (%s)", amount, reason),
	}
}

func NewEnemyDefeatedEvent(elapsedMs int, enemy string, condition string) RoundEvent {
	return RoundEvent{
		ElapsedMs: elapsedMs,
		Enemy:     enemy,
		Type:      EventEnemyDefeated,
		Details:   fmt.Sprintf("%s defeated! (%s)", enemy, condition),
	}
}

func NewInstantDeathEvent(elapsedMs int, enemy string, reason string) RoundEvent {
	return RoundEvent{
		ElapsedMs: elapsedMs,
		Enemy:     enemy,
		Type:      EventInstantDeath,
		Details:   fmt.Sprintf("%s strikes: instant death (%s)", enemy, reason),
	}
}

func NewRoundEndEvent(elapsedMs int, enemy string, result string, score int) RoundEvent {
	return RoundEvent{
		ElapsedMs: elapsedMs,
		Enemy:     enemy,
		Type:      EventRoundEnd,
		Amount:    score,
		Details:   fmt.Sprintf("=== Round over: %s (score %d) ===", result, score),
	}
}
