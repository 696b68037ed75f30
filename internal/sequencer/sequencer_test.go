package sequencer

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubestate/internal/cube"
	"github.com/SeamusWaldron/cubestate/internal/metrics"
)

var (
	moveR      = cube.Move{Axis: cube.X, Layer: 1, Direction: 1}
	moveU      = cube.Move{Axis: cube.Y, Layer: 1, Direction: 1}
	moveRPrime = cube.Move{Axis: cube.X, Layer: 1, Direction: -1}
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestSequencer(t *testing.T) (*Sequencer, *fakeClock) {
	t.Helper()
	clk := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	return New(WithClock(clk.Now)), clk
}

func TestNew_IsSolvedAndIdle(t *testing.T) {
	s, _ := newTestSequencer(t)

	assert.True(t, cube.IsSolved(s.CurrentCubies()))
	assert.False(t, s.IsRotating())
	assert.Equal(t, 0, s.QueueLength())
	_, ok := s.ActiveRotation()
	assert.False(t, ok)
}

func TestEnqueueDequeueCommit(t *testing.T) {
	s, clk := newTestSequencer(t)

	require.NoError(t, s.Enqueue(moveR, moveU, moveRPrime))
	assert.Equal(t, 3, s.QueueLength())
	assert.False(t, s.IsRotating())

	active, ok := s.DequeueIfIdle()
	require.True(t, ok)
	assert.Equal(t, moveR, active.Move)
	assert.Equal(t, clk.now, active.StartedAt)
	assert.Equal(t, DefaultDuration, active.Duration)
	assert.True(t, s.IsRotating())
	assert.Equal(t, 2, s.QueueLength())

	m, ok := s.CommitActive()
	require.True(t, ok)
	assert.Equal(t, moveR, m)
	assert.False(t, s.IsRotating())
	assert.Equal(t, 2, s.QueueLength())
	require.NoError(t, cube.CheckBijection(s.CurrentCubies()))
	assert.False(t, cube.IsSolved(s.CurrentCubies()))
}

func TestDequeueRefusedWhileRotating(t *testing.T) {
	s, _ := newTestSequencer(t)
	require.NoError(t, s.Enqueue(moveR, moveU))

	_, ok := s.DequeueIfIdle()
	require.True(t, ok)

	_, ok = s.DequeueIfIdle()
	assert.False(t, ok, "a second move must not start while one is active")
	assert.Equal(t, 1, s.QueueLength())

	active, _ := s.ActiveRotation()
	assert.Equal(t, moveR, active.Move)
}

func TestDequeueEmptyQueue(t *testing.T) {
	s, _ := newTestSequencer(t)
	_, ok := s.DequeueIfIdle()
	assert.False(t, ok)
	assert.False(t, s.IsRotating())
}

func TestCommitWhileIdleIsNoop(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	s := New(WithMetrics(m))

	before := s.Snapshot()
	_, ok := s.CommitActive()
	assert.False(t, ok)
	assert.Same(t, before, s.Snapshot(), "idle commit must not publish a new state")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IdleCommits))
}

func TestFIFOOrder(t *testing.T) {
	s, _ := newTestSequencer(t)
	moves := []cube.Move{moveR, moveU, moveRPrime, moveU.Inverse()}
	require.NoError(t, s.Enqueue(moves...))

	var got []cube.Move
	for {
		active, ok := s.DequeueIfIdle()
		if !ok {
			break
		}
		got = append(got, active.Move)
		_, ok = s.CommitActive()
		require.True(t, ok)
	}
	assert.Equal(t, moves, got)
}

func TestDrain(t *testing.T) {
	s, _ := newTestSequencer(t)
	require.NoError(t, s.Enqueue(moveR, moveR, moveR))
	_, ok := s.DequeueIfIdle()
	require.True(t, ok)
	require.NoError(t, s.Enqueue(moveR))

	var seen int
	committed := s.Drain(func(m cube.Move, st *State) {
		seen++
		assert.Equal(t, moveR, m)
		assert.Nil(t, st.Active)
	})
	assert.Len(t, committed, 4)
	assert.Equal(t, 4, seen)
	assert.False(t, s.Busy())
	assert.True(t, cube.IsSolved(s.CurrentCubies()), "R x 4 should be solved")
}

func TestReset(t *testing.T) {
	s, _ := newTestSequencer(t)
	require.NoError(t, s.Enqueue(moveR, moveU))
	s.DequeueIfIdle()
	s.CommitActive()
	s.DequeueIfIdle()

	s.Reset()

	assert.False(t, s.IsRotating())
	assert.Equal(t, 0, s.QueueLength())
	assert.True(t, cube.IsSolved(s.CurrentCubies()))
	assert.Equal(t, cube.BuildSolved(), s.CurrentCubies())
}

func TestEnqueueRejectsInvalidMove(t *testing.T) {
	s, _ := newTestSequencer(t)
	err := s.Enqueue(moveR, cube.Move{Axis: cube.X, Layer: 2, Direction: 1})
	require.Error(t, err)
	assert.Equal(t, 0, s.QueueLength(), "an invalid batch is not partially enqueued")
}

func TestPublishedStatesAreNotMutated(t *testing.T) {
	s, _ := newTestSequencer(t)
	require.NoError(t, s.Enqueue(moveR, moveU))
	snap := s.Snapshot()
	queue := append([]cube.Move(nil), snap.Queue...)
	cubies := cube.Clone(snap.Cubies)

	s.DequeueIfIdle()
	s.CommitActive()
	require.NoError(t, s.Enqueue(moveRPrime))

	assert.Equal(t, queue, snap.Queue)
	assert.Equal(t, cubies, snap.Cubies)
	assert.Nil(t, snap.Active)
}

func TestCurrentCubiesReturnsCopy(t *testing.T) {
	s, _ := newTestSequencer(t)
	c := s.CurrentCubies()
	c[0].Position = cube.Vec3{9, 9, 9}
	assert.NoError(t, cube.CheckBijection(s.CurrentCubies()))
}

func TestProgress(t *testing.T) {
	s, clk := newTestSequencer(t)
	require.NoError(t, s.Enqueue(moveR))
	active, ok := s.DequeueIfIdle()
	require.True(t, ok)

	assert.Equal(t, 0.0, active.Progress(clk.now))
	assert.InDelta(t, 0.5, active.Progress(clk.now.Add(DefaultDuration/2)), 1e-9)
	assert.False(t, active.Done(clk.now.Add(DefaultDuration/2)))
	clk.Advance(2 * DefaultDuration)
	assert.Equal(t, 1.0, active.Progress(clk.now))
	assert.True(t, active.Done(clk.now))
	assert.Equal(t, 0.0, active.Progress(active.StartedAt.Add(-time.Second)))

	zero := ActiveRotation{}
	assert.Equal(t, 1.0, zero.Progress(clk.now))
}

func TestWithDuration(t *testing.T) {
	s := New(WithDuration(time.Second))
	require.NoError(t, s.Enqueue(moveR))
	active, ok := s.DequeueIfIdle()
	require.True(t, ok)
	assert.Equal(t, time.Second, active.Duration)
	assert.Equal(t, time.Second, s.Duration())
}

func TestMetricsTrackQueue(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	s := New(WithMetrics(m))

	require.NoError(t, s.Enqueue(moveR, moveU))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.QueueDepth))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.MovesEnqueued))

	s.DequeueIfIdle()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueueDepth))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rotating))

	s.CommitActive()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Rotating))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MovesCommitted.WithLabelValues("x")))

	s.Reset()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.QueueDepth))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Resets))
}

// Concurrent readers must only ever see whole states: at most one active
// rotation, and a bijective cubie list.
func TestConcurrentReadersSeeConsistentStates(t *testing.T) {
	s := New()
	stop := make(chan struct{})
	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				st := s.Snapshot()
				if err := cube.CheckBijection(st.Cubies); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}

	for i := 0; i < 200; i++ {
		require.NoError(t, s.Enqueue(moveR, moveU))
		s.Drain(nil)
	}
	close(stop)
	wg.Wait()
	assert.False(t, s.Busy())
}
