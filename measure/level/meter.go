package level

import (
	"math"

	"github.com/cwbudde/algo-pluck/dsp/core"
)

// Meter accumulates level statistics incrementally across blocks. It
// processes each sample individually so results match Calculate on the
// concatenated signal exactly.
type Meter struct {
	n             int
	sum           float64
	sumSq         float64
	peak          float64
	peakPos       int
	zeroCrossings int
	lastSample    float64
}

// NewMeter returns an empty Meter.
func NewMeter() *Meter {
	return &Meter{}
}

// Update adds a block of samples.
func (m *Meter) Update(samples []float64) {
	for _, x := range samples {
		a := math.Abs(x)
		if m.n == 0 || a > m.peak {
			m.peak = a
			m.peakPos = m.n
		}
		if m.n > 0 && m.lastSample*x < 0 {
			m.zeroCrossings++
		}
		m.sum += x
		m.sumSq += x * x
		m.lastSample = x
		m.n++
	}
}

// Len returns the number of samples seen.
func (m *Meter) Len() int {
	return m.n
}

// Result computes the statistics of everything seen so far.
func (m *Meter) Result() Stats {
	if m.n == 0 {
		return emptyStats()
	}

	nf := float64(m.n)
	rms := math.Sqrt(m.sumSq / nf)

	crest, crestdB := 0.0, 0.0
	if rms > 0 {
		crest = m.peak / rms
		crestdB = core.LinearToDB(crest)
	}

	return Stats{
		Length:         m.n,
		DC:             m.sum / nf,
		RMS:            rms,
		RMS_dB:         core.LinearToDB(rms),
		Peak:           m.peak,
		Peak_dB:        core.LinearToDB(m.peak),
		PeakPos:        m.peakPos,
		CrestFactor:    crest,
		CrestFactor_dB: crestdB,
		Energy:         m.sumSq,
		ZeroCrossings:  m.zeroCrossings,
	}
}

// Reset clears all accumulated data.
func (m *Meter) Reset() {
	*m = Meter{}
}
