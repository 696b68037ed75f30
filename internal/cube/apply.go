package cube

import "fmt"

// Move is a primitive quarter turn of one layer.
type Move struct {
	Axis      Axis
	Layer     int // -1, 0 or 1
	Direction int // +1 or -1, right-hand rule about the positive axis
}

// Inverse returns the move that undoes m.
func (m Move) Inverse() Move {
	m.Direction = -m.Direction
	return m
}

func (m Move) String() string {
	return fmt.Sprintf("%s%+d/%+d", m.Axis, m.Layer, m.Direction)
}

// Validate checks the move's fields are in range.
func (m Move) Validate() error {
	if m.Axis < X || m.Axis > Z {
		return fmt.Errorf("invalid axis %d", m.Axis)
	}
	if m.Layer < -1 || m.Layer > 1 {
		return fmt.Errorf("invalid layer %d", m.Layer)
	}
	if m.Direction != 1 && m.Direction != -1 {
		return fmt.Errorf("invalid direction %d", m.Direction)
	}
	return nil
}

// ApplyMove returns the cubie list after the move. Cubies in the selected
// layer get a rotated position and orientation; the rest are copied as is.
// The input slice is not modified.
func ApplyMove(cubies []Cubie, m Move) []Cubie {
	out := make([]Cubie, len(cubies))
	for i, c := range cubies {
		if c.Position.Component(m.Axis) == m.Layer {
			c.Position = RotatePosition90(c.Position, m.Axis, m.Direction)
			c.Orientation = ComposeOrientation(c.Orientation, m.Axis, m.Direction)
		}
		out[i] = c
	}
	return out
}

// ApplyMoves applies a sequence of moves in order.
func ApplyMoves(cubies []Cubie, moves []Move) []Cubie {
	out := cubies
	for _, m := range moves {
		out = ApplyMove(out, m)
	}
	if len(moves) == 0 {
		return Clone(cubies)
	}
	return out
}
