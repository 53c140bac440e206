// Package moving provides an equal-weight moving-average FIR filter.
//
// The two-tap form is the loop damping filter of a Karplus-Strong string:
// it averages each sample with its predecessor, which is a gentle low-pass
// with half a sample of group delay.
package moving
