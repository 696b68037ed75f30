package cube

import "strings"

// Facelets is the unfolded sticker view of a cube.
// Each face has 9 facelets indexed as:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// seen from outside the cube, with U viewed from above (B at the top edge),
// D viewed from below (F at the top edge) and the four side faces upright.
type Facelets [6][9]Color

// faceletIndex returns where a cubie at pos shows a sticker on face f.
func faceletIndex(f Face, pos Vec3) int {
	x, y, z := pos[0], pos[1], pos[2]
	var row, col int
	switch f {
	case U:
		row, col = z+1, x+1
	case D:
		row, col = 1-z, x+1
	case F:
		row, col = 1-y, x+1
	case B:
		row, col = 1-y, 1-x
	case R:
		row, col = 1-y, 1-z
	case L:
		row, col = 1-y, z+1
	}
	return row*3 + col
}

// Project computes the facelet view of a cubie list by turning each sticker's
// local normal through the cubie's orientation.
func Project(cubies []Cubie) Facelets {
	var fl Facelets
	for _, c := range cubies {
		for _, lf := range LocalFaces {
			col, ok := c.Sticker(lf)
			if !ok {
				continue
			}
			face, ok := faceFromNormal(c.Orientation.Rotate(lf.Normal()))
			if !ok {
				continue
			}
			fl[face][faceletIndex(face, c.Position)] = col
		}
	}
	return fl
}

// IsSolved returns true if every facelet shows its face's solved color.
func (fl Facelets) IsSolved() bool {
	for face := Face(0); face < 6; face++ {
		expected := face.SolvedColor()
		for i := 0; i < 9; i++ {
			if fl[face][i] != expected {
				return false
			}
		}
	}
	return true
}

// IsSolved reports whether the cubie list shows a solved cube.
func IsSolved(cubies []Cubie) bool {
	return Project(cubies).IsSolved()
}

// String returns the unfolded net:
//
//	      U
//	L F R B
//	      D
func (fl Facelets) String() string {
	var b strings.Builder

	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		for col := 0; col < 3; col++ {
			b.WriteString(fl[U][row*3+col].String() + " ")
		}
		b.WriteString("\n")
	}

	for row := 0; row < 3; row++ {
		for _, face := range []Face{L, F, R, B} {
			for col := 0; col < 3; col++ {
				b.WriteString(fl[face][row*3+col].String() + " ")
			}
		}
		b.WriteString("\n")
	}

	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		for col := 0; col < 3; col++ {
			b.WriteString(fl[D][row*3+col].String() + " ")
		}
		b.WriteString("\n")
	}

	return b.String()
}
