// Package window generates analysis window coefficients and applies them to
// sample buffers ahead of spectral measurement.
package window
