package pitch

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-pluck/dsp/spectrum"
	"github.com/cwbudde/algo-pluck/dsp/window"
)

// Peak is the strongest spectral component of a signal.
type Peak struct {
	Bin       int
	Frequency float64
	Magnitude float64
}

// MagnitudeSpectrum returns the one-sided magnitude spectrum of the
// mean-removed, Hann-windowed signal, zero-padded to a power of two. The
// result has fftSize/2+1 bins from DC to Nyquist.
func MagnitudeSpectrum(signal []float64) ([]float64, error) {
	n := len(signal)
	if n < 2 {
		return nil, fmt.Errorf("%w: %d samples", ErrSignalTooShort, n)
	}
	fftSize := nextPowerOf2(n)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("pitch: failed to create FFT plan: %w", err)
	}

	buf := removeMean(signal)
	window.Apply(window.TypeHann, buf)

	in := make([]complex128, fftSize)
	for i, x := range buf {
		in[i] = complex(x, 0)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, err
	}

	return spectrum.Magnitude(out[:fftSize/2+1]), nil
}

// PeakFrequency returns the strongest non-DC component of signal, refined
// by parabolic interpolation between bins.
func PeakFrequency(signal []float64, sampleRate float64) (Peak, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return Peak{}, fmt.Errorf("%w: sample rate must be > 0: %f", ErrInvalidConfig, sampleRate)
	}
	mag, err := MagnitudeSpectrum(signal)
	if err != nil {
		return Peak{}, err
	}

	bin := 1
	for i := 2; i < len(mag); i++ {
		if mag[i] > mag[bin] {
			bin = i
		}
	}
	if mag[bin] == 0 {
		return Peak{}, ErrNoPeriod
	}

	pos := float64(bin)
	if bin < len(mag)-1 {
		pos += parabolicOffset(mag[bin-1], mag[bin], mag[bin+1])
	}
	binHz := sampleRate / float64(2*(len(mag)-1))
	return Peak{Bin: bin, Frequency: pos * binHz, Magnitude: mag[bin]}, nil
}

// Centroid returns the spectral centroid in Hz of a one-sided magnitude
// spectrum:
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
func Centroid(magnitude []float64, sampleRate float64) float64 {
	if len(magnitude) < 2 {
		return 0
	}
	binHz := sampleRate / float64(2*(len(magnitude)-1))

	var num, den float64
	for i, m := range magnitude {
		num += float64(i) * binHz * m
		den += m
	}
	if den == 0 {
		return 0
	}
	return num / den
}
