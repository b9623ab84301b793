// Package telemetry provides a live terminal view of a closed-loop run.
//
// The package implements a Bubble Tea program that steps the harness frame
// by frame and draws the chaser track next to the current loop numbers:
//
//   - [Model]: Bubble Tea model wrapping a harness in step mode
//   - [Canvas]: braille dot-matrix the track view renders into
//
// # Key Bindings
//
//	Space  - Pause/Resume the run
//	R      - Restart from the initial state
//	Up/K   - Double playback speed
//	Down/J - Halve playback speed
//	Q      - Quit
package telemetry
