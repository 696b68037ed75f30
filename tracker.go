package cubestate

import (
	"sync"

	"github.com/SeamusWaldron/cubestate/internal/cube"
)

// Tracker watches committed moves and detects when the cube returns to
// solved.
type Tracker struct {
	mu          sync.Mutex
	keepHistory bool
	history     []Move
	moveCount   int
	solved      bool

	commitCallbacks []func(m Move, st *State)
	solvedCallbacks []func(moveCount int)
}

func newTracker(keepHistory bool) *Tracker {
	return &Tracker{
		keepHistory: keepHistory,
		solved:      true,
	}
}

// OnCommit registers a callback that fires after every committed move.
func (t *Tracker) OnCommit(cb func(m Move, st *State)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.commitCallbacks = append(t.commitCallbacks, cb)
}

// OnSolved registers a callback that fires when a commit brings the cube
// back to solved. It receives the number of moves since the last reset.
func (t *Tracker) OnSolved(cb func(moveCount int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.solvedCallbacks = append(t.solvedCallbacks, cb)
}

// Reset clears the history; the cube is solved again.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.history = nil
	t.moveCount = 0
	t.solved = true
}

// observe records a commit and fires callbacks outside the lock.
func (t *Tracker) observe(m Move, st *State) {
	solved := cube.IsSolved(st.Cubies)

	t.mu.Lock()
	t.moveCount++
	if t.keepHistory {
		t.history = append(t.history, m)
	}
	// Only a transition into solved fires, not every commit while solved
	becameSolved := solved && !t.solved
	t.solved = solved
	count := t.moveCount
	commitCbs := t.commitCallbacks
	solvedCbs := t.solvedCallbacks
	t.mu.Unlock()

	for _, cb := range commitCbs {
		cb(m, st)
	}
	if becameSolved {
		for _, cb := range solvedCbs {
			cb(count)
		}
	}
}

// MoveCount returns the number of moves committed since the last reset.
func (t *Tracker) MoveCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.moveCount
}

// History returns the committed moves since the last reset.
func (t *Tracker) History() []Move {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Move, len(t.history))
	copy(out, t.history)
	return out
}

// IsSolved returns the solved flag as of the last commit.
func (t *Tracker) IsSolved() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.solved
}
