package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// Client connects to a round server and provides a terminal REPL.
type Client struct {
	conn net.Conn
	in   io.Reader
	out  io.Writer
}

// NewClient creates a REPL client on an established connection.
func NewClient(conn net.Conn, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, in: in, out: out}
}

// Connect dials a server, joins at the given stage, and runs the REPL.
func Connect(ctx context.Context, addr string, stage int, in io.Reader, out io.Writer) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	fmt.Fprintln(out, "Connected! Waiting for the round to start...")
	return NewClient(conn, in, out).Join(ctx, stage)
}

// Join sends the handshake and runs the REPL.
func (c *Client) Join(ctx context.Context, stage int) error {
	if err := json.NewEncoder(c.conn).Encode(ClientMessage{Type: "join", Stage: stage}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}
	return c.RunREPL(ctx)
}

// RunREPL renders server messages and turns input lines into commands.
// Input is only read once the enemy choice has been offered.
func (c *Client) RunREPL(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	enc := json.NewEncoder(c.conn)

	msgs := make(chan ServerMessage)
	readErr := make(chan error, 1)
	go func() {
		dec := json.NewDecoder(c.conn)
		for {
			var msg ServerMessage
			if err := dec.Decode(&msg); err != nil {
				readErr <- err
				return
			}
			select {
			case msgs <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	var (
		input    <-chan string // nil until input is wanted
		choosing bool
		offers   int
		quitSent bool
		board    *RoundView
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-readErr:
			return fmt.Errorf("read message: %w", err)

		case msg := <-msgs:
			switch msg.Type {
			case "choose_enemy":
				c.renderEnemies(msg.Stage, msg.Enemies)
				choosing, offers = true, len(msg.Enemies)
				input = lines
			case "notify":
				c.renderEvent(msg.Event)
			case "state":
				board = msg.Round
				c.renderRound(board)
			case "match":
				if msg.Valid {
					fmt.Fprintf(c.out, "Set! +%d\n", msg.Points)
				} else {
					fmt.Fprintln(c.out, "Not a set.")
				}
				board = msg.Round
				c.renderRound(board)
			case "hint":
				board = msg.Round
				fmt.Fprintf(c.out, "Hint: %s\n", joinPositions(msg.Hint))
			case "error":
				fmt.Fprintf(c.out, "Error: %s\n", msg.Error)
			case "round_over":
				c.renderRound(msg.Round)
				fmt.Fprintln(c.out)
				fmt.Fprintln(c.out, "═══════════════════════════════════")
				fmt.Fprintln(c.out, "          ROUND OVER")
				fmt.Fprintln(c.out, "═══════════════════════════════════")
				fmt.Fprintln(c.out, msg.Result)
				fmt.Fprintln(c.out, "═══════════════════════════════════")
				return nil
			}

		case line, ok := <-input:
			if !ok {
				input = nil
				if !quitSent {
					quitSent = true
					if err := enc.Encode(ClientMessage{Type: "quit"}); err != nil {
						return fmt.Errorf("send quit: %w", err)
					}
				}
				continue
			}
			msg, ok := c.parseLine(strings.TrimSpace(line), choosing, offers, board)
			if !ok {
				continue
			}
			if msg.Type == "choose_enemy" {
				choosing = false
			}
			if msg.Type == "quit" {
				quitSent = true
			}
			if err := enc.Encode(msg); err != nil {
				return fmt.Errorf("send %s: %w", msg.Type, err)
			}
		}
	}
}

// parseLine turns one input line into a message. Positions are 1-indexed.
func (c *Client) parseLine(line string, choosing bool, offers int, board *RoundView) (ClientMessage, bool) {
	if line == "" {
		return ClientMessage{}, false
	}
	if choosing {
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > offers {
			fmt.Fprintf(c.out, "Enter a number between 1 and %d\n", offers)
			return ClientMessage{}, false
		}
		return ClientMessage{Type: "choose_enemy", Index: n - 1}, true
	}

	switch strings.ToLower(line) {
	case "h", "hint":
		return ClientMessage{Type: "hint"}, true
	case "b", "board":
		return ClientMessage{Type: "state"}, true
	case "q", "quit":
		return ClientMessage{Type: "quit"}, true
	}

	parts := strings.Fields(line)
	if len(parts) != 3 {
		fmt.Fprintln(c.out, "Enter 3 card numbers, or h (hint), b (board), q (quit)")
		return ClientMessage{}, false
	}
	count := 0
	if board != nil {
		count = len(board.Cards)
	}
	indices := make([]int, 0, 3)
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || (count > 0 && n > count) {
			fmt.Fprintf(c.out, "Each number must be between 1 and %d\n", count)
			return ClientMessage{}, false
		}
		indices = append(indices, n-1)
	}
	return ClientMessage{Type: "select", Indices: indices}, true
}

func (c *Client) renderEnemies(stage int, enemies []EnemyView) {
	fmt.Fprintf(c.out, "\nStage %d. Choose your enemy:\n", stage)
	for _, e := range enemies {
		fmt.Fprintf(c.out, "  %d) %s (tier %d)\n     %s\n     Defeat: %s\n",
			e.Index+1, e.Name, e.Tier, e.Description, e.DefeatCondition)
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	// Format like the TextLogger
	fmt.Fprintf(c.out, "%6.1fs | %s\n", float64(ev.ElapsedMs)/1000, ev.Details)
}

func (c *Client) renderRound(rv *RoundView) {
	if rv == nil {
		return
	}
	left := time.Duration(rv.TimeRemainingMs) * time.Millisecond
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "╔══════════════════════════════════════════════════════╗")
	fmt.Fprintf(c.out, "║  %s (tier %d)  %s\n", rv.Enemy.Name, rv.Enemy.Tier, defeatMark(rv.EnemyDefeated))
	fmt.Fprintf(c.out, "║  Score: %d/%d  Time: %s  Deck: %d  Streak: %d\n",
		rv.Score, rv.TargetScore, left.Truncate(time.Second), rv.DeckCount, rv.Streak)
	fmt.Fprintf(c.out, "║  Hints: %d  Graces: %d  Damage: %d\n", rv.Hints, rv.Graces, rv.Damage)
	fmt.Fprintln(c.out, "║──────────────────────────────────────────────────────")
	for _, cv := range rv.Cards {
		fmt.Fprintf(c.out, "║  %2d) %s\n", cv.Index+1, formatCard(cv))
	}
	fmt.Fprintln(c.out, "╚══════════════════════════════════════════════════════╝")
}

func defeatMark(defeated bool) string {
	if defeated {
		return "[DEFEATED]"
	}
	return ""
}

func formatCard(cv CardView) string {
	var tags []string
	if cv.Health > 0 {
		tags = append(tags, fmt.Sprintf("armor %d", cv.Health))
	}
	if cv.BombMs > 0 {
		tags = append(tags, fmt.Sprintf("bomb %.0fs", float64(cv.BombMs)/1000))
	}
	if cv.CountdownMs > 0 {
		tags = append(tags, fmt.Sprintf("countdown %.0fs", float64(cv.CountdownMs)/1000))
	}
	if len(tags) == 0 {
		return cv.Label
	}
	return fmt.Sprintf("%s [%s]", cv.Label, strings.Join(tags, ", "))
}

func joinPositions(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx + 1)
	}
	return strings.Join(parts, " ")
}
