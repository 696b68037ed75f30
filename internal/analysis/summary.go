package analysis

import (
	"strings"

	"github.com/SeamusWaldron/cubestate/internal/notation"
)

// Turn kinds used as profile keys.
const (
	TurnBase   = "base"
	TurnPrime  = "prime"
	TurnDouble = "double"
)

// MovementProfile analyzes which faces and turns a sequence uses.
type MovementProfile struct {
	Tokens        int            `json:"tokens"`
	QuarterTurns  int            `json:"quarter_turns"`
	FaceCounts    map[string]int `json:"face_counts"`
	TurnCounts    map[string]int `json:"turn_counts"`
	MostUsedFace  string         `json:"most_used_face"`
	FaceSequences map[string]int `json:"face_sequences"` // e.g., "RU" -> count
}

// AnalyzeMovementProfile counts faces, turn kinds and face pairs. Malformed
// tokens are ignored.
func AnalyzeMovementProfile(tokens []string) *MovementProfile {
	profile := &MovementProfile{
		FaceCounts:    make(map[string]int),
		TurnCounts:    make(map[string]int),
		FaceSequences: make(map[string]int),
	}

	prev := ""
	for _, t := range tokens {
		c, err := notation.Canonical(t)
		if err != nil {
			continue
		}
		face := c[:1]

		profile.Tokens++
		profile.FaceCounts[face]++
		switch {
		case strings.HasSuffix(c, "2"):
			profile.TurnCounts[TurnDouble]++
			profile.QuarterTurns += 2
		case strings.HasSuffix(c, "'"):
			profile.TurnCounts[TurnPrime]++
			profile.QuarterTurns++
		default:
			profile.TurnCounts[TurnBase]++
			profile.QuarterTurns++
		}

		if prev != "" {
			profile.FaceSequences[prev+face]++
		}
		prev = face
	}

	// Ties go to the earlier face in U D R L F B order
	best := 0
	for _, f := range notation.Faces {
		if n := profile.FaceCounts[string(f)]; n > best {
			best = n
			profile.MostUsedFace = string(f)
		}
	}

	return profile
}

// PauseInfo represents a gap between two timed inputs.
type PauseInfo struct {
	AfterIndex int   `json:"after_index"`
	DurationMs int64 `json:"duration_ms"`
	AtMs       int64 `json:"at_ms"`
}

// AnalyzePauses finds gaps of at least thresholdMs between consecutive
// timestamps.
func AnalyzePauses(timestampsMs []int64, thresholdMs int64) []PauseInfo {
	var pauses []PauseInfo
	for i := 1; i < len(timestampsMs); i++ {
		gap := timestampsMs[i] - timestampsMs[i-1]
		if gap >= thresholdMs {
			pauses = append(pauses, PauseInfo{
				AfterIndex: i - 1,
				DurationMs: gap,
				AtMs:       timestampsMs[i-1],
			})
		}
	}
	return pauses
}

// CalculateTPS calculates turns per second.
func CalculateTPS(turns int, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(turns) / (float64(durationMs) / 1000.0)
}
