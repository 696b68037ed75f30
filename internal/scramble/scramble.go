// Package scramble generates random move sequences for scrambling a solved
// cube.
package scramble

import (
	"strings"

	"github.com/SeamusWaldron/cubestate/internal/notation"
)

// DefaultLength is the number of tokens in a standard scramble.
const DefaultLength = 25

// oppositeRejectRate is the chance a face opposite the previous one is
// redrawn. Opposite-face pairs are legal, just not every time.
const oppositeRejectRate = 0.5

var modifiers = [3]string{"", "'", "2"}

// Generator produces scrambles from a random source.
type Generator struct {
	rng RandomSource
}

// NewGenerator creates a generator. A nil source uses DefaultRNG.
func NewGenerator(rng RandomSource) *Generator {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Generator{rng: rng}
}

// Generate returns length space-separated tokens. The same face never
// appears twice in a row; a face opposite the previous one is redrawn half
// of the time.
func (g *Generator) Generate(length int) string {
	if length <= 0 {
		return ""
	}

	tokens := make([]string, 0, length)
	var prev byte
	for len(tokens) < length {
		face := notation.Faces[g.rng.IntN(len(notation.Faces))]
		if face == prev {
			continue
		}
		if prev != 0 && face == notation.Opposite(prev) && g.rng.Float64() < oppositeRejectRate {
			continue
		}
		tokens = append(tokens, string(face)+modifiers[g.rng.IntN(len(modifiers))])
		prev = face
	}

	return strings.Join(tokens, " ")
}
