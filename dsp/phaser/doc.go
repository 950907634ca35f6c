// Package phaser implements a six-stage analog-modeled phaser effect.
//
// A PhaseShifter is a feedback-coupled cascade of first-order all-pass
// stages whose center frequencies sweep within fixed per-stage bands under a
// bipolar modulation input. A Kernel combines one shifter per channel with a
// shared triangle LFO and the ramped parameter set (rate, depth, intensity,
// dry, wet, odd90) and renders blocks through an event-interleaved
// processor, so parameter changes land on exact frame boundaries.
package phaser
