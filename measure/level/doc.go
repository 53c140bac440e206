// Package level measures time-domain loudness of rendered audio: RMS, peak,
// DC offset, crest factor, onset and tail positions. Meter accumulates the
// same statistics block by block for streaming renders.
package level
