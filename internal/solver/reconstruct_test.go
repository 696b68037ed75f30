package solver

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubestate/internal/cube"
	"github.com/SeamusWaldron/cubestate/internal/notation"
	"github.com/SeamusWaldron/cubestate/internal/scramble"
)

func applyNotation(t *testing.T, cubies []cube.Cubie, s string) []cube.Cubie {
	t.Helper()
	moves, err := notation.ParseSequence(s)
	require.NoError(t, err)
	return cube.ApplyMoves(cubies, moves)
}

func TestReconstruct_NoScrambleIsBestEffort(t *testing.T) {
	r := NewReconstructor()

	sol := r.Reconstruct()

	assert.True(t, sol.BestEffort)
	assert.Empty(t, sol.Scramble)
	require.Len(t, sol.Steps, NumPhases)
	for i, st := range sol.Steps {
		assert.Equal(t, Phases[i], st.Phase)
		_, err := st.Commands()
		assert.NoError(t, err)
	}
}

func TestReconstruct_RUR(t *testing.T) {
	r := NewReconstructor()
	require.NoError(t, r.Record("R U R'"))

	sol := r.Reconstruct()

	assert.False(t, sol.BestEffort)
	assert.Equal(t, "R U R'", sol.Scramble)
	assert.Equal(t, "R U' R'", sol.Moves())
	// three tokens, chunk size ceil(3/7) = 1
	require.Len(t, sol.Steps, 3)
	assert.Equal(t, Step{Phase: PhaseWhiteCross, Moves: "R"}, sol.Steps[0])
	assert.Equal(t, Step{Phase: PhaseWhiteCorners, Moves: "U'"}, sol.Steps[1])
	assert.Equal(t, Step{Phase: PhaseMiddleLayer, Moves: "R'"}, sol.Steps[2])

	c := applyNotation(t, cube.BuildSolved(), "R U R'")
	require.False(t, cube.IsSolved(c))
	c = applyNotation(t, c, sol.Moves())
	assert.True(t, cube.IsSolved(c))
}

func TestReconstruct_SolvesGeneratedScrambles(t *testing.T) {
	g := scramble.NewGenerator(scramble.NewSeededRNG(99))
	r := NewReconstructor()

	for trial := 0; trial < 50; trial++ {
		s := g.Generate(scramble.DefaultLength)
		require.NoError(t, r.Record(s))

		sol := r.Reconstruct()
		require.False(t, sol.BestEffort)
		require.Len(t, sol.Steps, NumPhases, "25 tokens fill all seven phases")

		c := applyNotation(t, cube.BuildSolved(), s)
		for _, st := range sol.Steps {
			c = applyNotation(t, c, st.Moves)
		}
		assert.True(t, cube.IsSolved(c), "scramble %q", s)
	}
}

func TestChunk(t *testing.T) {
	tokens := strings.Fields("a b c d e f g h i j k l m n o p q r s t u v w x y")
	steps := Chunk(tokens)

	// ceil(25/7) = 4, so chunks of 4,4,4,4,4,4,1
	require.Len(t, steps, 7)
	for i := 0; i < 6; i++ {
		assert.Len(t, strings.Fields(steps[i].Moves), 4)
	}
	assert.Equal(t, "y", steps[6].Moves)
	assert.Equal(t, PhaseFinalEdges, steps[6].Phase)
}

func TestChunk_OmitsEmptyPhases(t *testing.T) {
	// ceil(8/7) = 2, so 4 chunks of 2 and no empty tail phases
	steps := Chunk(strings.Fields("a b c d e f g h"))
	require.Len(t, steps, 4)
	assert.Equal(t, PhaseYellowCross, steps[3].Phase)
	assert.Equal(t, "g h", steps[3].Moves)

	assert.Empty(t, Chunk(nil))
}

func TestReconstruct_LenientModifiers(t *testing.T) {
	tests := []struct {
		scramble string
		recorded string
		solution string
	}{
		{"R''", "R'", "R"},
		{"R'x", "R'", "R"},
		{"U' F''", "U' F'", "F U"},
		{"R2'", "R2", "R2"},
	}
	for _, tt := range tests {
		t.Run(tt.scramble, func(t *testing.T) {
			r := NewReconstructor()
			require.NoError(t, r.Record(tt.scramble))

			last, _ := r.Last()
			assert.Equal(t, tt.recorded, last)

			sol := r.Reconstruct()
			assert.Equal(t, tt.solution, sol.Moves())

			c := applyNotation(t, cube.BuildSolved(), tt.scramble)
			c = applyNotation(t, c, sol.Moves())
			assert.True(t, cube.IsSolved(c), "solution %q does not undo %q", sol.Moves(), tt.scramble)
		})
	}
}

func TestRecord_RejectsMalformed(t *testing.T) {
	r := NewReconstructor()
	require.NoError(t, r.Record("R U"))

	err := r.Record("R X U")
	require.Error(t, err)
	assert.True(t, errors.Is(err, notation.ErrMalformedToken))

	last, ok := r.Last()
	assert.True(t, ok)
	assert.Equal(t, "R U", last, "a rejected scramble keeps the previous record")
}

func TestRecord_BlankClears(t *testing.T) {
	r := NewReconstructor()
	require.NoError(t, r.Record("R U"))
	require.NoError(t, r.Record("   "))

	_, ok := r.Last()
	assert.False(t, ok)
	assert.True(t, r.Reconstruct().BestEffort)
}

func TestRecord_NormalizesWhitespace(t *testing.T) {
	r := NewReconstructor()
	require.NoError(t, r.Record("  R   U2\tF' "))
	last, _ := r.Last()
	assert.Equal(t, "R U2 F'", last)
}

func TestClear(t *testing.T) {
	r := NewReconstructor()
	require.NoError(t, r.Record("R"))
	r.Clear()
	assert.True(t, r.Reconstruct().BestEffort)
}

func TestSolutionLen(t *testing.T) {
	assert.Equal(t, 0, Solution{}.Len())
	assert.Equal(t, 54, Demo().Len())
}

func TestPhaseNames(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range Phases {
		assert.NotEqual(t, "unknown", p.String())
		assert.NotEmpty(t, p.Description())
		assert.False(t, seen[p.String()], "duplicate key %s", p)
		seen[p.String()] = true
	}
	assert.True(t, PhaseFinalEdges.IsLast())
	assert.False(t, PhaseWhiteCross.IsLast())
	assert.Equal(t, "Unknown", Phase(42).DisplayName())
}
