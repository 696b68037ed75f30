// Package sequencer runs the move queue: at most one rotation is in flight,
// the rest wait in FIFO order until a renderer signals that the current one
// has finished.
//
// Every transition publishes a new immutable State. Readers get a pointer to
// the latest State and never observe a mix of two.
package sequencer

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SeamusWaldron/cubestate/internal/cube"
	"github.com/SeamusWaldron/cubestate/internal/metrics"
)

// DefaultDuration is the nominal time a renderer spends animating one move.
const DefaultDuration = 500 * time.Millisecond

// Clock returns the current time.
type Clock func() time.Time

// ActiveRotation is the move currently being animated.
type ActiveRotation struct {
	Move      cube.Move
	StartedAt time.Time
	Duration  time.Duration
}

// Progress returns how far the animation should be at now, clamped to [0,1].
func (a ActiveRotation) Progress(now time.Time) float64 {
	if a.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(a.StartedAt)) / float64(a.Duration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

// Done reports whether the nominal duration has elapsed.
func (a ActiveRotation) Done(now time.Time) bool {
	return a.Progress(now) >= 1
}

// State is one published snapshot. It must not be modified.
type State struct {
	Cubies []cube.Cubie
	Active *ActiveRotation
	Queue  []cube.Move
}

// Rotating reports whether a move is in flight.
func (s *State) Rotating() bool {
	return s.Active != nil
}

func solvedState() *State {
	return &State{Cubies: cube.BuildSolved()}
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithClock sets the time source used to stamp rotations.
func WithClock(c Clock) Option {
	return func(s *Sequencer) {
		s.clock = c
	}
}

// WithDuration sets the nominal duration of each rotation.
func WithDuration(d time.Duration) Option {
	return func(s *Sequencer) {
		s.duration = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sequencer) {
		s.logger = l
	}
}

// WithMetrics enables instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Sequencer) {
		s.metrics = m
	}
}

// Sequencer owns the cube state.
type Sequencer struct {
	mu    sync.Mutex // serializes writers
	state atomic.Pointer[State]

	clock    Clock
	duration time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New creates a sequencer holding a solved cube.
func New(opts ...Option) *Sequencer {
	s := &Sequencer{
		clock:    time.Now,
		duration: DefaultDuration,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state.Store(solvedState())
	s.metrics.ObserveQueue(0, false)
	return s
}

// Duration returns the nominal rotation duration.
func (s *Sequencer) Duration() time.Duration {
	return s.duration
}

// Snapshot returns the current state.
func (s *Sequencer) Snapshot() *State {
	return s.state.Load()
}

// CurrentCubies returns a copy of the current cubie list.
func (s *Sequencer) CurrentCubies() []cube.Cubie {
	return cube.Clone(s.Snapshot().Cubies)
}

// ActiveRotation returns the rotation in flight, if any.
func (s *Sequencer) ActiveRotation() (ActiveRotation, bool) {
	st := s.Snapshot()
	if st.Active == nil {
		return ActiveRotation{}, false
	}
	return *st.Active, true
}

// QueueLength returns the number of pending moves.
func (s *Sequencer) QueueLength() int {
	return len(s.Snapshot().Queue)
}

// IsRotating reports whether a move is in flight.
func (s *Sequencer) IsRotating() bool {
	return s.Snapshot().Rotating()
}

// Busy reports whether a move is in flight or waiting.
func (s *Sequencer) Busy() bool {
	st := s.Snapshot()
	return st.Rotating() || len(st.Queue) > 0
}

// publish stores next. Callers hold mu.
func (s *Sequencer) publish(next *State) {
	s.state.Store(next)
	s.metrics.ObserveQueue(len(next.Queue), next.Rotating())
}

// Enqueue appends moves to the queue. Invalid moves reject the whole batch.
func (s *Sequencer) Enqueue(moves ...cube.Move) error {
	for i, m := range moves {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("move %d: %w", i, err)
		}
	}
	if len(moves) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.state.Load()
	queue := make([]cube.Move, 0, len(cur.Queue)+len(moves))
	queue = append(queue, cur.Queue...)
	queue = append(queue, moves...)

	s.publish(&State{Cubies: cur.Cubies, Active: cur.Active, Queue: queue})
	s.metrics.RecordEnqueued(len(moves))
	s.logger.Debug("moves enqueued", "count", len(moves), "queue_length", len(queue))
	return nil
}

// DequeueIfIdle starts the next queued move when nothing is rotating.
// It returns false when a rotation is already active or the queue is empty.
func (s *Sequencer) DequeueIfIdle() (ActiveRotation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.state.Load()
	if cur.Active != nil || len(cur.Queue) == 0 {
		return ActiveRotation{}, false
	}

	active := &ActiveRotation{
		Move:      cur.Queue[0],
		StartedAt: s.clock(),
		Duration:  s.duration,
	}
	s.publish(&State{Cubies: cur.Cubies, Active: active, Queue: cur.Queue[1:]})
	s.logger.Debug("rotation started", "move", active.Move.String(), "queue_length", len(cur.Queue)-1)
	return *active, true
}

// CommitActive applies the active rotation to the cubies and returns to idle.
// Calling it while idle is a no-op that returns false; a late timer may
// signal after the move was already committed.
func (s *Sequencer) CommitActive() (cube.Move, bool) {
	m, _, ok := s.CommitActiveState()
	return m, ok
}

// CommitActiveState is CommitActive that also returns the state it published.
func (s *Sequencer) CommitActiveState() (cube.Move, *State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.state.Load()
	if cur.Active == nil {
		s.metrics.RecordIdleCommit()
		s.logger.Debug("commit ignored, no active rotation")
		return cube.Move{}, cur, false
	}

	m := cur.Active.Move
	next := &State{Cubies: cube.ApplyMove(cur.Cubies, m), Queue: cur.Queue}
	s.publish(next)
	s.metrics.RecordCommit(m.Axis.String())
	s.logger.Debug("rotation committed", "move", m.String())
	return m, next, true
}

// Reset returns to a solved cube with no active rotation and an empty queue.
func (s *Sequencer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.publish(solvedState())
	s.metrics.RecordReset()
	s.logger.Debug("state reset")
}

// Drain commits the active rotation and every queued move in order without
// waiting for a renderer. onCommit, if not nil, sees each committed move with
// the state it produced. It returns the committed moves.
func (s *Sequencer) Drain(onCommit func(cube.Move, *State)) []cube.Move {
	var committed []cube.Move
	for {
		if s.IsRotating() {
			if m, st, ok := s.CommitActiveState(); ok {
				committed = append(committed, m)
				if onCommit != nil {
					onCommit(m, st)
				}
			}
		}
		if _, ok := s.DequeueIfIdle(); !ok {
			return committed
		}
	}
}
