// Package solver rebuilds a solution for a scramble it has seen.
//
// It does not analyze cube states. The solution is the group inverse of the
// recorded scramble, split into the seven layer-by-layer phases so it can be
// shown step by step. Without a recorded scramble it falls back to a canned
// demonstration that is not guaranteed to solve anything.
package solver

import (
	"fmt"
	"strings"
	"sync"

	"github.com/SeamusWaldron/cubestate/internal/cube"
	"github.com/SeamusWaldron/cubestate/internal/notation"
)

// Step is one labeled chunk of a solution.
type Step struct {
	Phase Phase
	Moves string // space-separated tokens
}

// Commands parses the step's moves.
func (s Step) Commands() ([]cube.Move, error) {
	return notation.ParseSequence(s.Moves)
}

// Solution is the result of Reconstruct.
type Solution struct {
	Steps []Step

	// BestEffort is true for the demonstration fallback, which does not
	// solve the cube.
	BestEffort bool

	// Scramble is the recorded scramble the steps invert. Empty for the
	// demonstration fallback.
	Scramble string
}

// Moves returns every step's moves joined in order.
func (s Solution) Moves() string {
	parts := make([]string, 0, len(s.Steps))
	for _, st := range s.Steps {
		if st.Moves != "" {
			parts = append(parts, st.Moves)
		}
	}
	return strings.Join(parts, " ")
}

// Len returns the number of tokens in the solution.
func (s Solution) Len() int {
	return len(notation.Tokens(s.Moves()))
}

// demoSteps is shown when no scramble has been recorded.
var demoSteps = [NumPhases]string{
	"D' L' U L D",
	"R U R' U' R U R'",
	"U R U' R' U' F' U F",
	"F R U R' U' F'",
	"R U R' U R U2 R'",
	"U R U' L' U R' U' L",
	"R U R' F' R U R' U' R' F R2 U' R'",
}

// Demo returns the canned demonstration solution.
func Demo() Solution {
	steps := make([]Step, NumPhases)
	for i, p := range Phases {
		steps[i] = Step{Phase: p, Moves: demoSteps[i]}
	}
	return Solution{Steps: steps, BestEffort: true}
}

// Chunk splits tokens into at most NumPhases contiguous chunks of
// ceil(n/NumPhases) tokens, labeled in phase order. Empty chunks are omitted.
func Chunk(tokens []string) []Step {
	if len(tokens) == 0 {
		return nil
	}
	size := (len(tokens) + NumPhases - 1) / NumPhases

	steps := make([]Step, 0, NumPhases)
	for i, p := range Phases {
		start := i * size
		if start >= len(tokens) {
			break
		}
		end := min(start+size, len(tokens))
		steps = append(steps, Step{Phase: p, Moves: strings.Join(tokens[start:end], " ")})
	}
	return steps
}

// Reconstructor remembers the last scramble and produces its solution.
type Reconstructor struct {
	mu       sync.RWMutex
	scramble string
}

// NewReconstructor creates a reconstructor with nothing recorded.
func NewReconstructor() *Reconstructor {
	return &Reconstructor{}
}

// Record stores the scramble to be solved in canonical form. A scramble
// containing malformed tokens is rejected and the previous record is kept.
// A blank scramble clears the record.
func (r *Reconstructor) Record(scramble string) error {
	if _, err := notation.ParseSequence(scramble); err != nil {
		return fmt.Errorf("record scramble: %w", err)
	}
	tokens := notation.Tokens(scramble)
	for i, tok := range tokens {
		// ParseSequence accepted every token, so Canonical cannot fail
		tokens[i], _ = notation.Canonical(tok)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.scramble = strings.Join(tokens, " ")
	return nil
}

// Last returns the recorded scramble and whether there is one.
func (r *Reconstructor) Last() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.scramble, r.scramble != ""
}

// Clear forgets the recorded scramble.
func (r *Reconstructor) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scramble = ""
}

// Reconstruct returns the phased inverse of the recorded scramble, or the
// demonstration when nothing is recorded.
func (r *Reconstructor) Reconstruct() Solution {
	scramble, ok := r.Last()
	if !ok {
		return Demo()
	}
	return Solution{
		Steps:    Chunk(notation.Tokens(notation.InvertSequence(scramble))),
		Scramble: scramble,
	}
}
