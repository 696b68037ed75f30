// Package cubestate is a state engine for a 3x3x3 twisty puzzle.
//
// # Features
//
//   - Cubie model with exact integer positions and quaternion orientations
//   - Standard move notation (U, D, L, R, F, B with ' and 2 modifiers)
//   - A move queue that runs one rotation at a time for animated renderers
//   - Random scramble generation
//   - Step-by-step solutions for recorded scrambles
//
// # Quick Start
//
// Apply moves without animation:
//
//	e := cubestate.New()
//	if err := e.EnqueueNotation("R U R' U'"); err != nil {
//	    log.Fatal(err)
//	}
//	e.Drain()
//	fmt.Println(e.Facelets())
//
// # Driving a Renderer
//
// A renderer calls DequeueIfIdle each frame, animates the active rotation
// using its start time and duration, and calls CommitActive when the
// animation is done:
//
//	if rot, ok := e.ActiveRotation(); ok {
//	    if rot.Done(time.Now()) {
//	        e.CommitActive()
//	    }
//	} else {
//	    e.DequeueIfIdle()
//	}
//
// # Scramble and Solve
//
//	s, _ := e.GenerateScramble(25)
//	_ = e.RecordScramble(s)
//	_ = e.EnqueueNotation(s)
//	sol := e.ReconstructSolution()
//	for _, step := range sol.Steps {
//	    fmt.Println(step.Phase.DisplayName(), step.Moves)
//	}
//
// Solutions are the inverse of the recorded scramble. Without a recorded
// scramble ReconstructSolution returns a demonstration sequence marked
// BestEffort, which does not solve the cube.
package cubestate
