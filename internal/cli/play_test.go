package cli

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubestate"
)

func newTestPlayModel(t *testing.T, opts ...cubestate.Option) *playModel {
	t.Helper()
	opts = append([]cubestate.Option{cubestate.WithMoveDuration(0), cubestate.WithSeed(7)}, opts...)
	m := newPlayModel(cubestate.New(opts...), nil, nil)
	m.color = false
	return m
}

func press(m *playModel, key string) {
	switch key {
	case "enter":
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	default:
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	}
}

// settle runs frames until nothing is turning or queued.
func settle(t *testing.T, m *playModel) {
	t.Helper()
	for i := 0; i < 1000 && m.engine.Busy(); i++ {
		m.Update(frameMsg(time.Now()))
	}
	require.False(t, m.engine.Busy(), "engine did not settle")
}

func TestPlay_FaceKeys(t *testing.T) {
	m := newTestPlayModel(t)

	press(m, "r")
	assert.Equal(t, 1, m.engine.QueueLength())

	press(m, "R")
	press(m, "2")
	assert.True(t, m.pendingDouble)
	press(m, "u")
	assert.False(t, m.pendingDouble)
	assert.Equal(t, 4, m.engine.QueueLength(), "R, R' and two U turns")

	settle(t, m)
	assert.Equal(t, "R R' U U", cubestate.FormatMoves(m.engine.History()))
}

func TestPlay_FrameCommitsAndDequeues(t *testing.T) {
	m := newTestPlayModel(t)
	press(m, "f")

	m.Update(frameMsg(time.Now()))
	assert.True(t, m.engine.IsRotating())
	assert.Equal(t, 0, m.engine.QueueLength())

	m.Update(frameMsg(time.Now()))
	assert.False(t, m.engine.IsRotating())
	assert.Equal(t, 1, m.engine.Tracker().MoveCount())
}

func TestPlay_AnimationHoldsUntilDone(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	m := newTestPlayModel(t, cubestate.WithMoveDuration(500*time.Millisecond), cubestate.WithClock(clock))
	m.now = clock

	press(m, "r")
	m.Update(frameMsg(now))
	require.True(t, m.engine.IsRotating())

	now = now.Add(250 * time.Millisecond)
	m.Update(frameMsg(now))
	assert.True(t, m.engine.IsRotating(), "half way through")
	assert.Contains(t, m.View(), "Turning: ")

	now = now.Add(250 * time.Millisecond)
	m.Update(frameMsg(now))
	assert.False(t, m.engine.IsRotating())
}

func TestPlay_ControlsDisabledWhileBusy(t *testing.T) {
	m := newTestPlayModel(t)
	press(m, "r")

	press(m, "s")
	_, err := m.engine.LastScramble()
	assert.ErrorIs(t, err, cubestate.ErrNoScramble)
	assert.Equal(t, "Wait for the cube to stop turning", m.message)

	press(m, "n")
	assert.True(t, m.engine.Busy(), "reset ignored while busy")
}

func TestPlay_ScrambleThenSolve(t *testing.T) {
	m := newTestPlayModel(t)

	press(m, "s")
	_, err := m.engine.LastScramble()
	require.NoError(t, err)
	settle(t, m)
	require.False(t, m.engine.IsSolved())

	press(m, "o")
	require.NotNil(t, m.solution)
	assert.False(t, m.solution.BestEffort)

	m.Update(frameMsg(time.Now()))
	assert.Equal(t, 0, m.currentStep(), "first step is playing")

	settle(t, m)
	assert.True(t, m.engine.IsSolved())
	assert.Contains(t, m.message, "Solved!")
	assert.Contains(t, m.View(), "SOLVED")
}

func TestPlay_SolveWithoutScramble(t *testing.T) {
	m := newTestPlayModel(t)
	press(m, "enter")
	require.NotNil(t, m.solution)
	assert.True(t, m.solution.BestEffort)
	assert.Contains(t, m.message, "demonstration")
}

func TestPlay_TypedSequence(t *testing.T) {
	m := newTestPlayModel(t)

	press(m, "/")
	require.True(t, m.typing)
	press(m, "R U2 X")
	press(m, "enter")

	assert.False(t, m.typing)
	assert.Equal(t, 3, m.engine.QueueLength())
	require.Error(t, m.err)
	assert.ErrorIs(t, m.err, cubestate.ErrInvalidNotation)
}

func TestPlay_TypingEscCancels(t *testing.T) {
	m := newTestPlayModel(t)
	press(m, "/")
	press(m, "R")
	press(m, "esc")
	assert.False(t, m.typing)
	assert.Equal(t, 0, m.engine.QueueLength())
}

func TestPlay_Reset(t *testing.T) {
	m := newTestPlayModel(t)
	press(m, "r")
	settle(t, m)

	press(m, "n")
	assert.True(t, m.engine.IsSolved())
	assert.Equal(t, 0, m.engine.Tracker().MoveCount())
}

func TestPlay_Quit(t *testing.T) {
	m := newTestPlayModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Equal(t, "Goodbye!\n", m.View())
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[    ]", progressBar(0, 4))
	assert.Equal(t, "[==  ]", progressBar(0.5, 4))
	assert.Equal(t, "[====]", progressBar(1, 4))
}

func keyRunes(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}
