// Package rotation implements the gesture-driven vinyl control: a drag that is
// tracked as an unwrapped angle, classified into zones on release, and three
// writers (idle spin, drag, snap-back) that take turns owning the rendered
// rotation.
//
// # Angle Tracking
//
// [AngleFromCenter] measures a pointer against the control centre with atan2.
// [ShortestDelta] picks the short arc between two samples so a [Session]
// can accumulate past the ±180° seam: three clockwise turns read as +1080°,
// not 0°. Samples more than 180° apart are read the short way round; fast
// spins with coarse sampling under-count.
//
// # Zones
//
// [Thresholds.Classify] maps a released cumulative rotation onto a [Zone]:
//
//	|c| < 45          NoOp
//	45 <= |c| <= 360  Paginate (sign picks next/previous)
//	360 < |c| < 1080  SnapBack
//	c >= 1080         RegenerateForward
//	c <= -1080        RegenerateBackward
//
// # Machine
//
// [Machine] is the arbiter. It has three modes ([ModeIdle], [ModeDragging],
// [ModeSnappingBack]) and explicit transitions:
//
//  1. [Machine.PointerDown] suspends the idle driver (or cancels a snap-back)
//     and opens a [Session] at the rotation currently on screen.
//  2. [Machine.PointerMove] accumulates and writes start + cumulative.
//  3. [Machine.PointerUp] classifies, fires at most one [Handlers] callback
//     and hands the rotation to the idle driver or to a [SnapBack].
//  4. [Machine.PointerCancel] releases as if the zone were NoOp.
//  5. [Machine.Frame] is the per-frame callback driving idle and snap-back.
//
// Only the owner of the current mode writes the rotation; [WithTrace] exposes
// every write with its [Writer] for inspection.
//
// # Hosts
//
// A host feeds pointer events and frame timestamps from one goroutine. The
// TUI does this from bubbletea's Update with tea.Tick frames. [Loop] does it
// for network hosts, reading [PointerEvent]s from a channel and frames from a
// [Scheduler].
package rotation
