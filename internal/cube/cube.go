// Package cube provides a 3x3 Rubik's cube model built from 26 cubies.
//
// Each cubie carries an integer lattice position, a unit quaternion for its
// cumulative rotation from the solved pose, and the stickers on its local
// faces. Moves replace the cubie list as a whole; a published list is never
// mutated.
package cube

import "fmt"

// Color represents a sticker color.
type Color byte

const (
	NoColor Color = 0
	White   Color = 1 // Up face when solved
	Yellow  Color = 2 // Down face when solved
	Green   Color = 3 // Front face when solved
	Blue    Color = 4 // Back face when solved
	Red     Color = 5 // Right face when solved
	Orange  Color = 6 // Left face when solved
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	default:
		return "?"
	}
}

// Hex returns the display color used by renderers.
func (c Color) Hex() string {
	switch c {
	case White:
		return "#ffffff"
	case Yellow:
		return "#ffd500"
	case Green:
		return "#009b48"
	case Blue:
		return "#0045ad"
	case Red:
		return "#ba0000"
	case Orange:
		return "#ff6900"
	default:
		return "#000000"
	}
}

// Face represents a cube face in world space.
type Face int

const (
	U Face = 0 // Up (White)
	D Face = 1 // Down (Yellow)
	F Face = 2 // Front (Green)
	B Face = 3 // Back (Blue)
	R Face = 4 // Right (Red)
	L Face = 5 // Left (Orange)
)

func (f Face) String() string {
	switch f {
	case U:
		return "U"
	case D:
		return "D"
	case F:
		return "F"
	case B:
		return "B"
	case R:
		return "R"
	case L:
		return "L"
	default:
		return "?"
	}
}

// SolvedColor returns the color of a face when solved.
func (f Face) SolvedColor() Color {
	switch f {
	case U:
		return White
	case D:
		return Yellow
	case F:
		return Green
	case B:
		return Blue
	case R:
		return Red
	case L:
		return Orange
	default:
		return NoColor
	}
}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() Vec3 {
	switch f {
	case U:
		return Vec3{0, 1, 0}
	case D:
		return Vec3{0, -1, 0}
	case F:
		return Vec3{0, 0, 1}
	case B:
		return Vec3{0, 0, -1}
	case R:
		return Vec3{1, 0, 0}
	default:
		return Vec3{-1, 0, 0}
	}
}

// faceFromNormal maps an axis-aligned unit vector to the world face it points at.
func faceFromNormal(n Vec3) (Face, bool) {
	switch n {
	case Vec3{0, 1, 0}:
		return U, true
	case Vec3{0, -1, 0}:
		return D, true
	case Vec3{0, 0, 1}:
		return F, true
	case Vec3{0, 0, -1}:
		return B, true
	case Vec3{1, 0, 0}:
		return R, true
	case Vec3{-1, 0, 0}:
		return L, true
	}
	return 0, false
}

// LocalFace tags one of the six faces of a cubie in its own frame.
type LocalFace int

const (
	PosX LocalFace = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// LocalFaces lists every local face tag in index order.
var LocalFaces = [6]LocalFace{PosX, NegX, PosY, NegY, PosZ, NegZ}

func (lf LocalFace) String() string {
	return [...]string{"+x", "-x", "+y", "-y", "+z", "-z"}[lf]
}

// Normal returns the local unit normal of the face.
func (lf LocalFace) Normal() Vec3 {
	switch lf {
	case PosX:
		return Vec3{1, 0, 0}
	case NegX:
		return Vec3{-1, 0, 0}
	case PosY:
		return Vec3{0, 1, 0}
	case NegY:
		return Vec3{0, -1, 0}
	case PosZ:
		return Vec3{0, 0, 1}
	default:
		return Vec3{0, 0, -1}
	}
}

// Axis is a rotation axis.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	default:
		return "?"
	}
}

// Vec3 is an integer lattice point.
type Vec3 [3]int

// Component returns the coordinate along the axis.
func (v Vec3) Component(a Axis) int {
	return v[a]
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v[0], v[1], v[2])
}

// Cubie is one of the 26 visible blocks.
type Cubie struct {
	ID          int
	Position    Vec3
	Orientation Quat
	Stickers    [6]Color // indexed by LocalFace; NoColor where there is no sticker
}

// Sticker returns the color on a local face, if the cubie has one there.
func (c Cubie) Sticker(lf LocalFace) (Color, bool) {
	col := c.Stickers[lf]
	return col, col != NoColor
}

// BuildSolved creates the 26 cubies of a solved cube.
// Ids are assigned in x, y, z lattice order so the result is deterministic.
func BuildSolved() []Cubie {
	cubies := make([]Cubie, 0, 26)
	id := 0
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				if x == 0 && y == 0 && z == 0 {
					continue // hidden core
				}
				var stickers [6]Color
				if x == 1 {
					stickers[PosX] = R.SolvedColor()
				}
				if x == -1 {
					stickers[NegX] = L.SolvedColor()
				}
				if y == 1 {
					stickers[PosY] = U.SolvedColor()
				}
				if y == -1 {
					stickers[NegY] = D.SolvedColor()
				}
				if z == 1 {
					stickers[PosZ] = F.SolvedColor()
				}
				if z == -1 {
					stickers[NegZ] = B.SolvedColor()
				}
				cubies = append(cubies, Cubie{
					ID:          id,
					Position:    Vec3{x, y, z},
					Orientation: Identity,
					Stickers:    stickers,
				})
				id++
			}
		}
	}
	return cubies
}

// CheckBijection verifies that the cubies occupy every non-origin lattice
// point exactly once.
func CheckBijection(cubies []Cubie) error {
	if len(cubies) != 26 {
		return fmt.Errorf("expected 26 cubies, got %d", len(cubies))
	}
	seen := make(map[Vec3]int, 26)
	for _, c := range cubies {
		p := c.Position
		for _, v := range p {
			if v < -1 || v > 1 {
				return fmt.Errorf("cubie %d at %v is outside the lattice", c.ID, p)
			}
		}
		if p == (Vec3{}) {
			return fmt.Errorf("cubie %d occupies the core", c.ID)
		}
		if other, ok := seen[p]; ok {
			return fmt.Errorf("cubies %d and %d both at %v", other, c.ID, p)
		}
		seen[p] = c.ID
	}
	return nil
}

// Clone returns a copy of the cubie list.
func Clone(cubies []Cubie) []Cubie {
	out := make([]Cubie, len(cubies))
	copy(out, cubies)
	return out
}
