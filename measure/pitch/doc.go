// Package pitch measures the period and spectral peak of a recorded signal.
//
// EstimatePeriod finds the fundamental period by FFT autocorrelation with
// parabolic peak interpolation, which resolves fractional periods such as
// the N+0.5 sample loop of a Karplus-Strong string. PeakFrequency and
// Centroid describe the magnitude spectrum.
package pitch
