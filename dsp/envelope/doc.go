// Package envelope provides per-sample control envelopes for voices.
//
// Included generators:
//   - Decay: exponential decay from 1 towards 0 with a -60 dB time.
//   - Segments: breakpoint envelope with curvature and an optional sustain point.
//   - ADSR: attack/decay/sustain/release amplitude envelope built on Segments.
//   - Follower: one-pole smoothed absolute value for level detection.
//
// All generators are real-time safe after construction: Next and Process do
// not allocate, lock or block. Parameters are changed only between notes.
package envelope
