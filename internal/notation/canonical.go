// Package notation provides move notation conversion utilities.
//
// A token is a face letter (U, D, L, R, F, B) followed by an optional
// modifier: ' for the inverse turn, 2 for a half turn.
package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SeamusWaldron/cubestate/internal/cube"
)

// ErrMalformedToken is returned for tokens whose first character is not a
// face letter.
var ErrMalformedToken = errors.New("malformed move token")

// FaceTurn is the primitive command a face letter stands for.
type FaceTurn struct {
	Axis      cube.Axis
	Layer     int
	Direction int // base direction of the unmodified token
}

// Command returns the unmodified move.
func (ft FaceTurn) Command() cube.Move {
	return cube.Move{Axis: ft.Axis, Layer: ft.Layer, Direction: ft.Direction}
}

// Faces lists the face letters in table order.
var Faces = [6]byte{'U', 'D', 'R', 'L', 'F', 'B'}

var faceTable = map[byte]FaceTurn{
	'U': {Axis: cube.Y, Layer: 1, Direction: 1},
	'D': {Axis: cube.Y, Layer: -1, Direction: -1},
	'R': {Axis: cube.X, Layer: 1, Direction: 1},
	'L': {Axis: cube.X, Layer: -1, Direction: -1},
	'F': {Axis: cube.Z, Layer: 1, Direction: 1},
	'B': {Axis: cube.Z, Layer: -1, Direction: -1},
}

// LookupFace returns the table entry for a face letter.
func LookupFace(face byte) (FaceTurn, bool) {
	ft, ok := faceTable[face]
	return ft, ok
}

// Opposite returns the face on the other side of the cube.
func Opposite(face byte) byte {
	switch face {
	case 'U':
		return 'D'
	case 'D':
		return 'U'
	case 'L':
		return 'R'
	case 'R':
		return 'L'
	case 'F':
		return 'B'
	case 'B':
		return 'F'
	default:
		return 0
	}
}

// ParseToken converts one token into primitive moves.
// A 2 anywhere after the face emits the base move twice; otherwise a '
// inverts it. Other trailing characters are ignored.
func ParseToken(token string) ([]cube.Move, error) {
	if len(token) == 0 {
		return nil, fmt.Errorf("%w: empty token", ErrMalformedToken)
	}

	ft, ok := faceTable[token[0]]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMalformedToken, token)
	}

	m := ft.Command()
	suffix := token[1:]
	switch {
	case strings.Contains(suffix, "2"):
		return []cube.Move{m, m}, nil
	case strings.Contains(suffix, "'"):
		return []cube.Move{m.Inverse()}, nil
	default:
		return []cube.Move{m}, nil
	}
}

// Canonical rewrites a token to its plain form: R, R' or R2. It follows
// the same modifier rules as ParseToken.
func Canonical(token string) (string, error) {
	if len(token) == 0 {
		return "", fmt.Errorf("%w: empty token", ErrMalformedToken)
	}
	if _, ok := faceTable[token[0]]; !ok {
		return "", fmt.Errorf("%w: %q", ErrMalformedToken, token)
	}

	face := token[:1]
	suffix := token[1:]
	switch {
	case strings.Contains(suffix, "2"):
		return face + "2", nil
	case strings.Contains(suffix, "'"):
		return face + "'", nil
	default:
		return face, nil
	}
}

// TokenError records one rejected token.
type TokenError struct {
	Index int // position in the whitespace-split sequence
	Token string
}

// ParseError lists every token ParseSequence skipped.
type ParseError struct {
	Tokens []TokenError
}

func (e *ParseError) Error() string {
	parts := make([]string, len(e.Tokens))
	for i, t := range e.Tokens {
		parts[i] = fmt.Sprintf("%q at %d", t.Token, t.Index)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedToken, strings.Join(parts, ", "))
}

func (e *ParseError) Unwrap() error {
	return ErrMalformedToken
}

// ParseSequence parses a whitespace-separated sequence of tokens.
// Malformed tokens are skipped; the moves of the remaining tokens are still
// returned, together with a *ParseError naming what was skipped.
func ParseSequence(s string) ([]cube.Move, error) {
	parts := strings.Fields(s)
	moves := make([]cube.Move, 0, len(parts))

	var perr *ParseError
	for i, part := range parts {
		cmds, err := ParseToken(part)
		if err != nil {
			if perr == nil {
				perr = &ParseError{}
			}
			perr.Tokens = append(perr.Tokens, TokenError{Index: i, Token: part})
			continue
		}
		moves = append(moves, cmds...)
	}

	if perr != nil {
		return moves, perr
	}
	return moves, nil
}

// InvertToken returns the token that undoes t.
// R' becomes R, R2 stays R2, R becomes R'. Modifiers are read the same way
// ParseToken reads them, so R'x inverts to R. Tokens with an unknown face are
// returned unchanged.
func InvertToken(t string) string {
	c, err := Canonical(t)
	if err != nil {
		return t
	}
	switch kindOf(c) {
	case turnPrime:
		return c[:1]
	case turnDouble:
		return c
	default:
		return c + "'"
	}
}

// InvertSequence reverses the token order and inverts every token, giving
// the group inverse of the sequence.
func InvertSequence(s string) string {
	parts := strings.Fields(s)
	out := make([]string, len(parts))
	for i, p := range parts {
		out[len(parts)-1-i] = InvertToken(p)
	}
	return strings.Join(out, " ")
}

// Tokens splits a sequence into its tokens.
func Tokens(s string) []string {
	return strings.Fields(s)
}

// FormatCommand renders a primitive move as a token when it is an outer
// face turn. Slice moves have no token and render as axis/layer/direction.
func FormatCommand(m cube.Move) string {
	for _, face := range Faces {
		ft := faceTable[face]
		if ft.Axis != m.Axis || ft.Layer != m.Layer {
			continue
		}
		if m.Direction == ft.Direction {
			return string(face)
		}
		return string(face) + "'"
	}
	return m.String()
}

// FormatCommands formats moves as a space-separated string.
func FormatCommands(moves []cube.Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = FormatCommand(m)
	}

	return strings.Join(parts, " ")
}
