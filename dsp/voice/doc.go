// Package voice defines the capability interface a polyphonic host uses to
// drive note voices, the range-constrained control parameters supplied at
// note-on, and a fixed-size voice pool that renders and reclaims voices.
//
// A voice is pulled one stereo frame at a time and never blocks. The host
// adds (never overwrites) voice output into its block buffers and polls
// Finished once per block to decide when a voice can be reused.
package voice
