// Package delay provides a fixed-capacity circular delay line with an
// integer read tap.
//
// The line is sized once, for the lowest pitch it has to represent, and is
// never reallocated afterwards: retuning only moves the read tap. Reads are
// truncated to whole samples, so a line tuned to frequency f resonates at
// sampleRate/int(sampleRate/f) rather than exactly f.
package delay
