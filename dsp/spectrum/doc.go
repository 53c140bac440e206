// Package spectrum provides helpers over complex spectrum bins produced by
// an FFT backend.
//
// The package does not implement FFT itself.
package spectrum
