package level

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Stats holds time-domain level statistics.
//
//nolint:revive
type Stats struct {
	Length         int
	DC             float64 // mean
	RMS            float64
	RMS_dB         float64
	Peak           float64 // max |x|
	Peak_dB        float64
	PeakPos        int
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
	Energy         float64 // sum of squares
	ZeroCrossings  int
}

func emptyStats() Stats {
	return Stats{
		RMS_dB:         math.Inf(-1),
		Peak_dB:        math.Inf(-1),
		CrestFactor_dB: math.Inf(-1),
	}
}

// Calculate computes all statistics in a single pass.
func Calculate(signal []float64) Stats {
	m := NewMeter()
	m.Update(signal)
	return m.Result()
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}
	return math.Sqrt(sumSq / float64(len(signal)))
}

// DC returns the mean (DC offset) of the signal.
func DC(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	// Kahan summation.
	var sum, c float64
	for _, x := range signal {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}
	return sum / float64(len(signal))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	return vecmath.MaxAbs(signal)
}

// StereoPeak returns the larger peak of two channels.
func StereoPeak(left, right []float64) float64 {
	return math.Max(Peak(left), Peak(right))
}

// Onset returns the index of the first sample whose magnitude exceeds
// threshold, or -1.
func Onset(signal []float64, threshold float64) int {
	for i, x := range signal {
		if math.Abs(x) > threshold {
			return i
		}
	}
	return -1
}

// Tail returns the index just past the last sample whose magnitude exceeds
// threshold, or 0 when none does.
func Tail(signal []float64, threshold float64) int {
	for i := len(signal) - 1; i >= 0; i-- {
		if math.Abs(signal[i]) > threshold {
			return i + 1
		}
	}
	return 0
}
