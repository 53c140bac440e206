// Package pluck implements a Karplus-Strong plucked-string voice.
//
// A short burst of pink noise, shaped by a 0.1 s exponential decay, is
// injected into a feedback delay loop tuned to the note frequency. A 2-tap
// moving average inside the loop damps high partials so the tone darkens
// as it rings. The loop output passes through an optional one-pole
// smoother, an ADSR amplitude envelope and a constant-power panner driven
// by a two-segment pan trajectory.
//
// A String implements voice.Renderer: a host configures it with
// voice.Params, calls Reset on note-on and TriggerRelease on note-off, and
// reclaims it once Finished reports true.
package pluck
