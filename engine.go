package cubestate

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/SeamusWaldron/cubestate/internal/cube"
	"github.com/SeamusWaldron/cubestate/internal/notation"
	"github.com/SeamusWaldron/cubestate/internal/scramble"
	"github.com/SeamusWaldron/cubestate/internal/sequencer"
	"github.com/SeamusWaldron/cubestate/internal/solver"
)

// Engine owns one cube: its state, move queue, scramble generator and the
// last recorded scramble. Presentation layers read it through the accessor
// methods and drive it with DequeueIfIdle and CommitActive.
//
// All methods are safe for concurrent use. Commit and solved callbacks run
// in commit order while the engine holds its commit lock, so they must not
// call CommitActive, Drain or Reset.
type Engine struct {
	// commitMu orders a commit with the tracker update that observes it.
	commitMu sync.Mutex

	seq     *sequencer.Sequencer
	gen     *scramble.Generator
	solver  *solver.Reconstructor
	tracker *Tracker

	scrambleLength int
	logger         *slog.Logger
	metrics        *Metrics
}

// New creates an engine holding a solved cube.
func New(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Engine{
		seq: sequencer.New(
			sequencer.WithClock(cfg.clock),
			sequencer.WithDuration(cfg.moveDuration),
			sequencer.WithLogger(cfg.logger),
			sequencer.WithMetrics(cfg.metrics),
		),
		gen:            scramble.NewGenerator(cfg.rng),
		solver:         solver.NewReconstructor(),
		tracker:        newTracker(cfg.moveHistory),
		scrambleLength: cfg.scrambleLength,
		logger:         cfg.logger,
		metrics:        cfg.metrics,
	}
}

// Tracker returns the commit observer.
func (e *Engine) Tracker() *Tracker {
	return e.tracker
}

// OnCommit registers a callback that fires after every committed move.
func (e *Engine) OnCommit(cb func(m Move, st *State)) {
	e.tracker.OnCommit(cb)
}

// OnSolved registers a callback that fires when the cube returns to solved.
func (e *Engine) OnSolved(cb func(moveCount int)) {
	e.tracker.OnSolved(cb)
}

// Enqueue appends primitive moves to the queue.
func (e *Engine) Enqueue(moves ...Move) error {
	return e.seq.Enqueue(moves...)
}

// EnqueueNotation parses text and enqueues the moves of every well-formed
// token. Malformed tokens are skipped; the returned error lists them.
func (e *Engine) EnqueueNotation(text string) error {
	moves, perr := notation.ParseSequence(text)
	if err := e.seq.Enqueue(moves...); err != nil {
		return err
	}
	if perr != nil {
		e.logger.Warn("skipped malformed tokens", "input", text, "error", perr)
		return perr
	}
	return nil
}

// DequeueIfIdle starts the next queued move when nothing is rotating.
func (e *Engine) DequeueIfIdle() (ActiveRotation, bool) {
	return e.seq.DequeueIfIdle()
}

// CommitActive applies the rotation in flight. While idle it does nothing
// and returns false.
func (e *Engine) CommitActive() (Move, bool) {
	e.commitMu.Lock()
	defer e.commitMu.Unlock()

	m, st, ok := e.seq.CommitActiveState()
	if ok {
		e.tracker.observe(m, st)
	}
	return m, ok
}

// Drain commits the active move and everything queued behind it without
// animation.
func (e *Engine) Drain() []Move {
	e.commitMu.Lock()
	defer e.commitMu.Unlock()
	return e.seq.Drain(e.tracker.observe)
}

// Reset returns to a solved cube and drops the queue and any active
// rotation. The recorded scramble is kept.
func (e *Engine) Reset() {
	e.commitMu.Lock()
	defer e.commitMu.Unlock()
	e.seq.Reset()
	e.tracker.Reset()
}

// Snapshot returns the current immutable state.
func (e *Engine) Snapshot() *State {
	return e.seq.Snapshot()
}

// CurrentCubies returns a copy of the cubie list.
func (e *Engine) CurrentCubies() []Cubie {
	return e.seq.CurrentCubies()
}

// ActiveRotation returns the rotation in flight, if any.
func (e *Engine) ActiveRotation() (ActiveRotation, bool) {
	return e.seq.ActiveRotation()
}

// QueueLength returns the number of moves waiting to start.
func (e *Engine) QueueLength() int {
	return e.seq.QueueLength()
}

// IsRotating reports whether a move is in flight.
func (e *Engine) IsRotating() bool {
	return e.seq.IsRotating()
}

// Busy reports whether a move is in flight or queued. Input layers use it
// to disable controls that start new sequences.
func (e *Engine) Busy() bool {
	return e.seq.Busy()
}

// Facelets returns the sticker view of the committed state.
func (e *Engine) Facelets() Facelets {
	return cube.Project(e.seq.Snapshot().Cubies)
}

// IsSolved reports whether the committed state is solved.
func (e *Engine) IsSolved() bool {
	return cube.IsSolved(e.seq.Snapshot().Cubies)
}

// History returns the moves committed since the last reset.
func (e *Engine) History() []Move {
	return e.tracker.History()
}

// GenerateScramble returns a random scramble of length tokens. Zero uses the
// configured default length. It does not record or apply the scramble.
func (e *Engine) GenerateScramble(length int) (string, error) {
	if length < 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	if length == 0 {
		length = e.scrambleLength
	}
	s := e.gen.Generate(length)
	e.metrics.RecordScramble()
	e.logger.Debug("scramble generated", "length", length)
	return s, nil
}

// RecordScramble stores the scramble that ReconstructSolution inverts.
func (e *Engine) RecordScramble(text string) error {
	if err := e.solver.Record(text); err != nil {
		return err
	}
	e.logger.Debug("scramble recorded", "scramble", text)
	return nil
}

// LastScramble returns the recorded scramble.
func (e *Engine) LastScramble() (string, error) {
	s, ok := e.solver.Last()
	if !ok {
		return "", ErrNoScramble
	}
	return s, nil
}

// Scramble generates a scramble, records it and enqueues it.
func (e *Engine) Scramble(length int) (string, error) {
	s, err := e.GenerateScramble(length)
	if err != nil {
		return "", err
	}
	if err := e.RecordScramble(s); err != nil {
		return "", err
	}
	if err := e.EnqueueNotation(s); err != nil {
		return "", err
	}
	return s, nil
}

// ReconstructSolution returns the phased inverse of the recorded scramble.
// Without one it returns a demonstration with BestEffort set.
func (e *Engine) ReconstructSolution() Solution {
	sol := e.solver.Reconstruct()
	e.metrics.RecordReconstruction(sol.BestEffort)
	if sol.BestEffort {
		e.logger.Info("no scramble recorded, using demonstration solution")
	}
	return sol
}

// EnqueueSolution enqueues every step of a solution in order.
func (e *Engine) EnqueueSolution(sol Solution) error {
	for _, st := range sol.Steps {
		moves, err := st.Commands()
		if err != nil {
			return fmt.Errorf("step %s: %w", st.Phase, err)
		}
		if err := e.seq.Enqueue(moves...); err != nil {
			return err
		}
	}
	return nil
}
