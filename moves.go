package cubestate

// Named algorithms in standard notation.
//
// Example:
//
//	e.EnqueueNotation(cubestate.SexyMove)
const (
	// Sexy move: R U R' U' - one of the most common algorithms
	SexyMove = "R U R' U'"

	// Inverse sexy move: U R U' R'
	InverseSexyMove = "U R U' R'"

	// Sune orients the last-layer corners.
	Sune = "R U R' U R U2 R'"

	// T-perm algorithm
	TPerm = "R U R' U' R' F R2 U' R' U' R U R' F'"
)
