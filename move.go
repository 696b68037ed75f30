package cubestate

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/SeamusWaldron/cubestate/internal/cube"
	"github.com/SeamusWaldron/cubestate/internal/metrics"
	"github.com/SeamusWaldron/cubestate/internal/notation"
	"github.com/SeamusWaldron/cubestate/internal/scramble"
	"github.com/SeamusWaldron/cubestate/internal/sequencer"
	"github.com/SeamusWaldron/cubestate/internal/solver"
)

// Types shared with the internal packages.
type (
	Move           = cube.Move
	Axis           = cube.Axis
	Cubie          = cube.Cubie
	Quat           = cube.Quat
	Vec3           = cube.Vec3
	Color          = cube.Color
	Facelets       = cube.Facelets
	ActiveRotation = sequencer.ActiveRotation
	State          = sequencer.State
	Solution       = solver.Solution
	Step           = solver.Step
	Phase          = solver.Phase
	RandomSource   = scramble.RandomSource
	Metrics        = metrics.Metrics
)

// Axes.
const (
	AxisX = cube.X
	AxisY = cube.Y
	AxisZ = cube.Z
)

// NewMetrics creates engine metrics registered on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return metrics.New(reg)
}

// ParseMove parses one token into primitive moves. A half turn yields two.
func ParseMove(token string) ([]Move, error) {
	return notation.ParseToken(token)
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "R U R' U'"
// Malformed tokens are skipped and reported in the returned error.
func ParseMoves(s string) ([]Move, error) {
	return notation.ParseSequence(s)
}

// FormatMoves formats primitive moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	return notation.FormatCommands(moves)
}

// InvertMoves returns the sequence that undoes s.
func InvertMoves(s string) string {
	return notation.InvertSequence(s)
}
