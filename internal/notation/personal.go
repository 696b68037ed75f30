package notation

import "strings"

// turnKind classifies a token's modifier the same way ParseToken does.
type turnKind int

const (
	turnBase turnKind = iota
	turnPrime
	turnDouble
)

func kindOf(token string) turnKind {
	suffix := token[1:]
	switch {
	case strings.Contains(suffix, "2"):
		return turnDouble
	case strings.Contains(suffix, "'"):
		return turnPrime
	default:
		return turnBase
	}
}

// phrases holds the spoken form of each face turn: base, prime, double.
// Reference frame: White on top, Green in front, facing the cube.
var phrases = map[byte][3]string{
	'R': {"R up", "R down", "R up x 2"},
	'L': {"L down", "L up", "L down x 2"},
	'U': {"T rotate right", "T rotate left", "T rotate right x 2"},
	'D': {"B rotate right", "B rotate left", "B rotate right x 2"},
	'F': {"F rotate clockwise", "F rotate anti-clockwise", "F rotate x 2"},
	'B': {"Back rotate clockwise", "Back rotate anti-clockwise", "Back rotate x 2"},
}

// Describe converts a token to a plain-language instruction.
// Unknown tokens are returned unchanged.
func Describe(token string) string {
	if token == "" {
		return ""
	}
	p, ok := phrases[token[0]]
	if !ok {
		return token
	}
	return p[kindOf(token)]
}

// DescribeSequence formats a sequence as a comma-separated list of
// instructions.
func DescribeSequence(s string) string {
	tokens := strings.Fields(s)
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = Describe(t)
	}
	return strings.Join(out, ", ")
}
