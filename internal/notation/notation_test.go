package notation

import (
	"errors"
	"reflect"
	"testing"

	"github.com/SeamusWaldron/cubestate/internal/cube"
)

func TestParseSequence_RURU(t *testing.T) {
	moves, err := ParseSequence("R U R' U'")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []cube.Move{
		{Axis: cube.X, Layer: 1, Direction: 1},
		{Axis: cube.Y, Layer: 1, Direction: 1},
		{Axis: cube.X, Layer: 1, Direction: -1},
		{Axis: cube.Y, Layer: 1, Direction: -1},
	}
	if !reflect.DeepEqual(moves, want) {
		t.Errorf("ParseSequence = %v, want %v", moves, want)
	}
}

func TestParseToken_FaceTable(t *testing.T) {
	tests := []struct {
		token string
		want  cube.Move
	}{
		{"U", cube.Move{Axis: cube.Y, Layer: 1, Direction: 1}},
		{"D", cube.Move{Axis: cube.Y, Layer: -1, Direction: -1}},
		{"R", cube.Move{Axis: cube.X, Layer: 1, Direction: 1}},
		{"L", cube.Move{Axis: cube.X, Layer: -1, Direction: -1}},
		{"F", cube.Move{Axis: cube.Z, Layer: 1, Direction: 1}},
		{"B", cube.Move{Axis: cube.Z, Layer: -1, Direction: -1}},
		{"D'", cube.Move{Axis: cube.Y, Layer: -1, Direction: 1}},
		{"L'", cube.Move{Axis: cube.X, Layer: -1, Direction: 1}},
	}
	for _, tt := range tests {
		got, err := ParseToken(tt.token)
		if err != nil {
			t.Errorf("ParseToken(%q) error: %v", tt.token, err)
			continue
		}
		if len(got) != 1 || got[0] != tt.want {
			t.Errorf("ParseToken(%q) = %v, want [%v]", tt.token, got, tt.want)
		}
	}
}

func TestParseToken_Double(t *testing.T) {
	got, err := ParseToken("F2")
	if err != nil {
		t.Fatal(err)
	}
	m := cube.Move{Axis: cube.Z, Layer: 1, Direction: 1}
	if !reflect.DeepEqual(got, []cube.Move{m, m}) {
		t.Errorf("ParseToken(F2) = %v", got)
	}
}

func TestParseToken_Malformed(t *testing.T) {
	for _, tok := range []string{"X", "u", "2", "'", ""} {
		if _, err := ParseToken(tok); !errors.Is(err, ErrMalformedToken) {
			t.Errorf("ParseToken(%q) error = %v, want ErrMalformedToken", tok, err)
		}
	}
}

func TestParseSequence_SkipsMalformedTokens(t *testing.T) {
	moves, err := ParseSequence("R X U2 q")
	if !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken, got %v", err)
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	want := []TokenError{{Index: 1, Token: "X"}, {Index: 3, Token: "q"}}
	if !reflect.DeepEqual(perr.Tokens, want) {
		t.Errorf("rejected tokens = %v, want %v", perr.Tokens, want)
	}

	if len(moves) != 3 {
		t.Errorf("expected R plus two U moves, got %v", moves)
	}
}

func TestParseSequence_Empty(t *testing.T) {
	for _, s := range []string{"", "   ", "\t\n"} {
		moves, err := ParseSequence(s)
		if err != nil || len(moves) != 0 {
			t.Errorf("ParseSequence(%q) = %v, %v; want empty, nil", s, moves, err)
		}
	}
}

func TestInvertToken(t *testing.T) {
	tests := map[string]string{
		"R":  "R'",
		"R'": "R",
		"R2": "R2",
		"U":  "U'",
		"F'": "F",
		"":   "",
	}
	for in, want := range tests {
		if got := InvertToken(in); got != want {
			t.Errorf("InvertToken(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInvertToken_MatchesParseToken(t *testing.T) {
	tests := map[string]string{
		"R''": "R",
		"R'x": "R",
		"F2'": "F2",
		"Ux":  "U'",
		"x":   "x",
	}
	for in, want := range tests {
		if got := InvertToken(in); got != want {
			t.Errorf("InvertToken(%q) = %q, want %q", in, got, want)
		}
	}

	for _, tok := range []string{"R''", "R'x", "F2'", "Ux", "B'2"} {
		fwd, err := ParseToken(tok)
		if err != nil {
			t.Fatalf("ParseToken(%q): %v", tok, err)
		}
		back, err := ParseToken(InvertToken(tok))
		if err != nil {
			t.Fatalf("ParseToken(InvertToken(%q)): %v", tok, err)
		}
		c := cube.ApplyMoves(cube.ApplyMoves(cube.BuildSolved(), fwd), back)
		if !cube.IsSolved(c) {
			t.Errorf("InvertToken(%q) = %q does not undo it", tok, InvertToken(tok))
		}
	}
}

func TestInvertToken_IsInvolution(t *testing.T) {
	for _, face := range Faces {
		for _, mod := range []string{"", "'", "2"} {
			tok := string(face) + mod
			if got := InvertToken(InvertToken(tok)); got != tok {
				t.Errorf("InvertToken(InvertToken(%q)) = %q", tok, got)
			}
		}
	}
}

func TestInvertSequence(t *testing.T) {
	if got := InvertSequence("R U R'"); got != "R U' R'" {
		t.Errorf("InvertSequence = %q", got)
	}
	if got := InvertSequence("  F2  B' "); got != "B F2" {
		t.Errorf("InvertSequence = %q", got)
	}
	if got := InvertSequence(""); got != "" {
		t.Errorf("InvertSequence(\"\") = %q", got)
	}
}

func TestInvertSequence_IsInvolutionUnderParsing(t *testing.T) {
	seqs := []string{
		"R U R' U'",
		"F2 B L' D2 U R",
		"R2' U",
		"L",
	}
	for _, s := range seqs {
		a, errA := ParseSequence(s)
		b, errB := ParseSequence(InvertSequence(InvertSequence(s)))
		if errA != nil || errB != nil {
			t.Fatalf("%q: parse errors %v / %v", s, errA, errB)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%q: %v != %v", s, a, b)
		}
	}
}

func TestInvertSequence_UndoesMoves(t *testing.T) {
	s := "R U2 F' L D B2 U' R'"
	fwd, _ := ParseSequence(s)
	inv, _ := ParseSequence(InvertSequence(s))
	c := cube.ApplyMoves(cube.ApplyMoves(cube.BuildSolved(), fwd), inv)
	if !cube.IsSolved(c) {
		t.Error("sequence followed by its inverse should be solved")
	}
}

func TestFormatCommands(t *testing.T) {
	moves, _ := ParseSequence("R U' B D2")
	if got := FormatCommands(moves); got != "R U' B D D" {
		t.Errorf("FormatCommands = %q", got)
	}
	slice := cube.Move{Axis: cube.X, Layer: 0, Direction: 1}
	if got := FormatCommand(slice); got != slice.String() {
		t.Errorf("FormatCommand(slice) = %q", got)
	}
}

func TestOpposite(t *testing.T) {
	for _, f := range Faces {
		if Opposite(Opposite(f)) != f {
			t.Errorf("Opposite is not symmetric for %c", f)
		}
		a, _ := LookupFace(f)
		b, _ := LookupFace(Opposite(f))
		if a.Axis != b.Axis || a.Layer != -b.Layer {
			t.Errorf("%c and %c are not on opposite layers of one axis", f, Opposite(f))
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := map[string]string{
		"R":  "R up",
		"R'": "R down",
		"U2": "T rotate right x 2",
		"B'": "Back rotate anti-clockwise",
		"X":  "X",
	}
	for in, want := range tests {
		if got := Describe(in); got != want {
			t.Errorf("Describe(%q) = %q, want %q", in, got, want)
		}
	}
	if got := DescribeSequence("R U"); got != "R up, T rotate right" {
		t.Errorf("DescribeSequence = %q", got)
	}
}

func TestCanonical(t *testing.T) {
	tests := map[string]string{
		"R":   "R",
		"R'":  "R'",
		"R2":  "R2",
		"R2'": "R2",
		"U'2": "U2",
		"Fx":  "F",
	}
	for in, want := range tests {
		got, err := Canonical(in)
		if err != nil {
			t.Errorf("Canonical(%q) error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("Canonical(%q) = %q, want %q", in, got, want)
		}
	}

	for _, bad := range []string{"", "x", "M"} {
		if _, err := Canonical(bad); !errors.Is(err, ErrMalformedToken) {
			t.Errorf("Canonical(%q) error = %v, want ErrMalformedToken", bad, err)
		}
	}
}
