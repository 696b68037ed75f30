package cubestate

import (
	"errors"

	"github.com/SeamusWaldron/cubestate/internal/notation"
)

// Sentinel errors for the cubestate package.
var (
	// Parsing errors
	ErrInvalidNotation = notation.ErrMalformedToken

	// Scramble errors
	ErrInvalidLength = errors.New("cubestate: invalid scramble length")
	ErrNoScramble    = errors.New("cubestate: no scramble recorded")
)
