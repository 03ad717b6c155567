package net

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync/atomic"

	"github.com/peterkuimelis/nshapes/internal/config"
	"github.com/peterkuimelis/nshapes/internal/enemy"
	"github.com/peterkuimelis/nshapes/internal/log"
	"github.com/peterkuimelis/nshapes/internal/round"
)

const (
	enemyChoices = 3
	// eventBuffer bounds the round events waiting to be sent as notify
	// messages. Events past it are dropped and counted; the board state in
	// every reply stays authoritative.
	eventBuffer = 256
)

// eventRelay hands round events from the round lock to the connection loop
// without blocking the round.
type eventRelay struct {
	ch      chan log.RoundEvent
	dropped atomic.Int64
}

func newEventRelay(size int) *eventRelay {
	return &eventRelay{ch: make(chan log.RoundEvent, size)}
}

// push queues e, or counts it as dropped when the buffer is full.
func (q *eventRelay) push(e log.RoundEvent) bool {
	select {
	case q.ch <- e:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// Dropped reports how many events never reached the client.
func (q *eventRelay) Dropped() int {
	return int(q.dropped.Load())
}

// Server hosts rounds for a player connected over TCP.
type Server struct {
	Config   config.Config
	Registry *enemy.Registry
	Port     string
	Output   io.Writer // round log, nil to stay quiet
	Rand     enemy.Rand
}

// Run listens on Port, waits for one player, then serves a round.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()

	s.printf("Waiting for a player on port %s...\n", s.Port)

	conn, err := ln.Accept()
	if err != nil {
		return fmt.Errorf("accept: %w", err)
	}
	defer conn.Close()

	s.printf("Player connected from %s\n", conn.RemoteAddr())
	return s.Serve(ctx, conn)
}

// Serve runs the handshake and one round on an established connection:
// join, enemy choice, then player input until the round ends.
func (s *Server) Serve(ctx context.Context, conn net.Conn) error {
	pc := NewPlayerConn(conn)

	join, err := pc.Recv()
	if err != nil {
		return fmt.Errorf("read join message: %w", err)
	}
	stage := join.Stage
	if stage < 1 {
		stage = 1
	}

	foe, err := s.chooseEnemy(pc, stage)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := newEventRelay(eventBuffer)
	logger := log.NewFuncLogger(func(e log.RoundEvent) {
		if s.Output != nil {
			fmt.Fprintln(s.Output, log.FormatEvent(e))
		}
		events.push(e)
	})

	opts := []round.Option{round.WithLogger(logger)}
	if s.Rand != nil {
		opts = append(opts, round.WithRand(s.Rand))
	}
	r := round.New(s.Config, foe, opts...)
	if err := r.Start(); err != nil {
		return err
	}
	defer r.Close()

	go func() { _ = r.Run(ctx) }()

	msgs := make(chan ClientMessage)
	readErr := make(chan error, 1)
	go func() {
		for {
			msg, err := pc.Recv()
			if err != nil {
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

	if err := pc.Send(ServerMessage{Type: "state", Round: BuildRoundView(r.Snapshot())}); err != nil {
		return fmt.Errorf("send state: %w", err)
	}

	for {
		select {
		case e := <-events.ch:
			if err := pc.Send(ServerMessage{Type: "notify", Event: EventViewOf(e)}); err != nil {
				return fmt.Errorf("send notify: %w", err)
			}
		case msg := <-msgs:
			if err := s.handle(pc, r, msg); err != nil {
				return err
			}
		case <-r.Done():
			return s.finish(pc, r, events)
		case err := <-readErr:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// chooseEnemy offers up to three enemies of the stage's tier and reads the
// player's pick. A forced enemy in the config is the only offer.
func (s *Server) chooseEnemy(pc *PlayerConn, stage int) (*enemy.Enemy, error) {
	reg := s.Registry
	if reg == nil {
		reg = enemy.DefaultRegistry()
	}
	tier := s.Config.Progression.TierFor(stage)
	offers, _ := reg.SelectForced(s.Rand, tier, enemyChoices, s.Config.ForcedEnemy)
	if len(offers) == 0 {
		return nil, fmt.Errorf("no enemies for tier %d", tier)
	}

	views := make([]EnemyView, len(offers))
	for i, e := range offers {
		views[i] = EnemyViewOf(i, e.Describe())
	}
	if err := pc.Send(ServerMessage{Type: "choose_enemy", Stage: stage, Enemies: views}); err != nil {
		return nil, fmt.Errorf("send choose_enemy: %w", err)
	}

	resp, err := pc.Recv()
	if err != nil {
		return nil, fmt.Errorf("read enemy choice: %w", err)
	}
	idx := resp.Index
	if resp.Type != "choose_enemy" || idx < 0 || idx >= len(offers) {
		idx = 0
	}

	// Registry entries are shared; the round gets its own instance.
	picked, err := enemy.LookupEnemy(offers[idx].Name)
	if err != nil {
		return offers[idx], nil
	}
	s.printf("Player faces %s (tier %d)\n", picked.Name, picked.Tier)
	return picked, nil
}

func (s *Server) handle(pc *PlayerConn, r *round.Round, msg ClientMessage) error {
	var reply ServerMessage
	switch msg.Type {
	case "select":
		cards := r.Cards()
		ids := make([]string, 0, len(msg.Indices))
		for _, i := range msg.Indices {
			if i < 0 || i >= len(cards) {
				return pc.Send(ServerMessage{Type: "error", Error: fmt.Sprintf("no card at position %d", i+1)})
			}
			ids = append(ids, cards[i].ID)
		}
		res, err := r.Select(ids...)
		if err != nil {
			return pc.Send(ServerMessage{Type: "error", Error: err.Error()})
		}
		reply = ServerMessage{Type: "match", Valid: res.Valid, Points: res.Points, Round: BuildRoundView(r.Snapshot())}
	case "hint":
		set, err := r.Hint()
		if err != nil {
			return pc.Send(ServerMessage{Type: "error", Error: err.Error()})
		}
		snap := r.Snapshot()
		ids := make([]string, len(set))
		for i, c := range set {
			ids[i] = c.ID
		}
		reply = ServerMessage{Type: "hint", Hint: indexOf(snap.Cards, ids), Round: BuildRoundView(snap)}
	case "state":
		reply = ServerMessage{Type: "state", Round: BuildRoundView(r.Snapshot())}
	case "quit":
		r.Close()
		return nil
	default:
		reply = ServerMessage{Type: "error", Error: fmt.Sprintf("unknown message type %q", msg.Type)}
	}
	if err := pc.Send(reply); err != nil {
		return fmt.Errorf("send %s: %w", reply.Type, err)
	}
	return nil
}

// finish flushes pending events and reports the outcome.
func (s *Server) finish(pc *PlayerConn, r *round.Round, events *eventRelay) error {
drain:
	for {
		select {
		case e := <-events.ch:
			if err := pc.Send(ServerMessage{Type: "notify", Event: EventViewOf(e)}); err != nil {
				return fmt.Errorf("send notify: %w", err)
			}
		default:
			break drain
		}
	}

	snap := r.Snapshot()
	result := fmt.Sprintf("%s: %s", snap.Outcome, snap.Reason)
	if snap.EnemyDefeated {
		result += fmt.Sprintf(" (%s defeated)", snap.Enemy.Name)
	}
	s.printf("Round over, %s\n", result)
	if n := events.Dropped(); n > 0 {
		s.printf("%d round events were not delivered\n", n)
	}
	if err := pc.Send(ServerMessage{Type: "round_over", Result: result, Round: BuildRoundView(snap), DroppedEvents: events.Dropped()}); err != nil {
		return fmt.Errorf("send round_over: %w", err)
	}
	return nil
}

func (s *Server) printf(format string, args ...any) {
	if s.Output != nil {
		fmt.Fprintf(s.Output, format, args...)
	}
}

// PlayLocal serves a round to a REPL on in/out through an in-memory pipe.
func (s *Server) PlayLocal(ctx context.Context, stage int, in io.Reader, out io.Writer) error {
	playerConn, serverConn := net.Pipe()
	defer playerConn.Close()

	errCh := make(chan error, 1)
	go func() {
		defer serverConn.Close()
		errCh <- s.Serve(ctx, serverConn)
	}()

	clientErr := NewClient(playerConn, in, out).Join(ctx, stage)
	playerConn.Close()
	serverErr := <-errCh
	if clientErr != nil {
		return clientErr
	}
	return serverErr
}
