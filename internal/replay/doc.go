// Package replay runs scripted gestures against a rotation.Machine.
//
// A script is YAML. It names a pointer path around the vinyl and waits
// between moves; time only advances during waits, in frame-sized steps, so a
// replay is deterministic. The result lists every release, every callback
// the machine fired and a snapshot after each step.
//
//	name: flick forward
//	cards: 3
//	steps:
//	  - down: 0        # grab at 0 degrees on the rim
//	  - spin: 90       # drag clockwise through 90 degrees
//	  - up: true
//	  - wait: 250      # ms of frames
//
// Other steps are move (a raw point), cancel, and geometry (false hides the
// vinyl's centre, true restores it).
package replay
