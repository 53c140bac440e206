package pitch

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-pluck/dsp/spectrum"
)

// peakFraction selects the first autocorrelation peak that reaches this
// share of the largest peak in the search range, so octave errors favour
// the shorter period.
const peakFraction = 0.9

var (
	// ErrInvalidConfig is returned for a non-positive sample rate or an
	// empty frequency range.
	ErrInvalidConfig = errors.New("pitch: invalid config")
	// ErrSignalTooShort is returned when the signal holds less than two
	// periods of the lowest frequency searched.
	ErrSignalTooShort = errors.New("pitch: signal too short")
	// ErrNoPeriod is returned for silent or aperiodic signals.
	ErrNoPeriod = errors.New("pitch: no periodicity found")
)

// Config bounds the period search.
type Config struct {
	SampleRate float64
	MinFreq    float64
	MaxFreq    float64
}

// Result holds a period estimate.
type Result struct {
	// PeriodSamples is the fractional period in samples.
	PeriodSamples float64
	// Frequency is SampleRate / PeriodSamples.
	Frequency float64
	// Clarity is the normalized autocorrelation at the chosen lag, in
	// [0, 1]; values near 1 indicate a strongly periodic signal.
	Clarity float64
}

func (cfg Config) validate() error {
	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be > 0: %f", ErrInvalidConfig, cfg.SampleRate)
	}
	if cfg.MinFreq <= 0 || cfg.MaxFreq <= cfg.MinFreq || math.IsInf(cfg.MaxFreq, 0) {
		return fmt.Errorf("%w: need 0 < min < max: [%f, %f]", ErrInvalidConfig, cfg.MinFreq, cfg.MaxFreq)
	}
	if cfg.MaxFreq > cfg.SampleRate/2 {
		return fmt.Errorf("%w: max frequency above Nyquist: %f", ErrInvalidConfig, cfg.MaxFreq)
	}
	return nil
}

// EstimatePeriod returns the fundamental period of signal.
func EstimatePeriod(signal []float64, cfg Config) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}

	minLag := max(int(math.Floor(cfg.SampleRate/cfg.MaxFreq)), 1)
	maxLag := int(math.Ceil(cfg.SampleRate / cfg.MinFreq))
	if len(signal) < 2*maxLag {
		return Result{}, fmt.Errorf("%w: %d samples, need %d", ErrSignalTooShort, len(signal), 2*maxLag)
	}

	acf, err := autocorrelate(signal)
	if err != nil {
		return Result{}, err
	}
	if acf[0] <= 0 {
		return Result{}, ErrNoPeriod
	}
	// Unbiased normalization keeps the peak of a steady tone on its true lag.
	n := float64(len(signal))
	for k := range acf {
		acf[k] /= n - float64(k)
	}

	best := math.Inf(-1)
	for k := minLag; k <= maxLag; k++ {
		best = math.Max(best, acf[k])
	}
	if best <= 0 {
		return Result{}, ErrNoPeriod
	}

	lag := -1
	for k := minLag; k <= maxLag; k++ {
		if acf[k] >= peakFraction*best && acf[k] >= acf[k-1] && acf[k] >= acf[k+1] {
			lag = k
			break
		}
	}
	if lag < 0 {
		return Result{}, ErrNoPeriod
	}

	period := float64(lag) + parabolicOffset(acf[lag-1], acf[lag], acf[lag+1])
	return Result{
		PeriodSamples: period,
		Frequency:     cfg.SampleRate / period,
		Clarity:       math.Min(acf[lag]/acf[0], 1),
	}, nil
}

// autocorrelate returns the biased autocorrelation of the mean-removed
// signal for lags 0..len(signal)-1.
func autocorrelate(signal []float64) ([]float64, error) {
	n := len(signal)
	fftSize := nextPowerOf2(2 * n)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("pitch: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, x := range removeMean(signal) {
		in[i] = complex(x, 0)
	}

	freq := make([]complex128, fftSize)
	if err := plan.Forward(freq, in); err != nil {
		return nil, err
	}

	for i, p := range spectrum.Power(freq) {
		freq[i] = complex(p, 0)
	}

	if err := plan.Inverse(in, freq); err != nil {
		return nil, err
	}

	acf := make([]float64, n)
	for i := range acf {
		acf[i] = real(in[i])
	}
	return acf, nil
}

// parabolicOffset returns the vertex offset in [-0.5, 0.5] of the parabola
// through three equally spaced points.
func parabolicOffset(a, b, c float64) float64 {
	den := a - 2*b + c
	if den == 0 {
		return 0
	}
	off := 0.5 * (a - c) / den
	if off < -0.5 || off > 0.5 || math.IsNaN(off) {
		return 0
	}
	return off
}

// removeMean returns a copy of signal with its DC offset subtracted.
func removeMean(signal []float64) []float64 {
	var mean float64
	for _, x := range signal {
		mean += x
	}
	mean /= float64(len(signal))

	out := make([]float64, len(signal))
	for i, x := range signal {
		out[i] = x - mean
	}
	return out
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
