package solver

// Phase labels one chunk of a solution with a layer-by-layer solving step.
// Phases are ordered, so they can be compared with < and >.
type Phase int

const (
	// PhaseWhiteCross places the white edges around the white center.
	PhaseWhiteCross Phase = iota

	// PhaseWhiteCorners finishes the first layer.
	PhaseWhiteCorners

	// PhaseMiddleLayer places the four middle-layer edges.
	PhaseMiddleLayer

	// PhaseYellowCross forms the cross on the yellow face.
	PhaseYellowCross

	// PhaseOrientYellowCorners turns every yellow sticker to face down.
	PhaseOrientYellowCorners

	// PhasePositionYellowCorners moves the yellow corners into place.
	PhasePositionYellowCorners

	// PhaseFinalEdges places the last edges.
	PhaseFinalEdges
)

// NumPhases is the number of solving phases.
const NumPhases = 7

// Phases lists every phase in order.
var Phases = [NumPhases]Phase{
	PhaseWhiteCross,
	PhaseWhiteCorners,
	PhaseMiddleLayer,
	PhaseYellowCross,
	PhaseOrientYellowCorners,
	PhasePositionYellowCorners,
	PhaseFinalEdges,
}

// String returns a short identifier for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseWhiteCross:
		return "white_cross"
	case PhaseWhiteCorners:
		return "white_corners"
	case PhaseMiddleLayer:
		return "middle_layer"
	case PhaseYellowCross:
		return "yellow_cross"
	case PhaseOrientYellowCorners:
		return "orient_yellow_corners"
	case PhasePositionYellowCorners:
		return "position_yellow_corners"
	case PhaseFinalEdges:
		return "final_edges"
	default:
		return "unknown"
	}
}

// DisplayName returns a human-readable name for the phase.
func (p Phase) DisplayName() string {
	switch p {
	case PhaseWhiteCross:
		return "Step 1: Making White Cross"
	case PhaseWhiteCorners:
		return "Step 2: Completing White Corners"
	case PhaseMiddleLayer:
		return "Step 3: Completing Middle Layer"
	case PhaseYellowCross:
		return "Step 4: Making Yellow Cross"
	case PhaseOrientYellowCorners:
		return "Step 5: Orienting Yellow Corners"
	case PhasePositionYellowCorners:
		return "Step 6: Positioning Yellow Corners"
	case PhaseFinalEdges:
		return "Step 7: Final Edge Positioning"
	default:
		return "Unknown"
	}
}

// Description explains what the phase accomplishes.
func (p Phase) Description() string {
	switch p {
	case PhaseWhiteCross:
		return "Moving white edge pieces to form a cross on top"
	case PhaseWhiteCorners:
		return "Placing white corner pieces to finish the first layer"
	case PhaseMiddleLayer:
		return "Positioning edge pieces in the middle layer"
	case PhaseYellowCross:
		return "Creating a cross pattern on the yellow face"
	case PhaseOrientYellowCorners:
		return "Making all yellow stickers face up"
	case PhasePositionYellowCorners:
		return "Moving yellow corners to correct positions"
	case PhaseFinalEdges:
		return "Placing the last edge pieces correctly"
	default:
		return ""
	}
}

// IsLast returns true for the final phase.
func (p Phase) IsLast() bool {
	return p == PhaseFinalEdges
}
