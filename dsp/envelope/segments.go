package envelope

import (
	"fmt"
	"math"
)

const curveEpsilon = 1e-6

// SegmentsOption configures a Segments envelope.
type SegmentsOption func(*Segments) error

// WithCurve sets segment curvature. 0 is linear, negative values change
// fast then slow (exponential-like decays), positive values change slow
// then fast.
func WithCurve(curve float64) SegmentsOption {
	return func(e *Segments) error {
		if math.IsNaN(curve) || math.IsInf(curve, 0) {
			return fmt.Errorf("envelope curve must be finite: %f", curve)
		}
		e.curve = curve
		return nil
	}
}

// WithSustainPoint makes the envelope hold once it reaches levels[index]
// until Release is called. Index must address a segment start.
func WithSustainPoint(index int) SegmentsOption {
	return func(e *Segments) error {
		if index < 0 || index >= len(e.lengths) {
			return fmt.Errorf("envelope sustain point must be in [0, %d]: %d", len(e.lengths)-1, index)
		}
		e.sustain = index
		return nil
	}
}

// Segments is a breakpoint envelope: len(lengths) curved segments joining
// len(lengths)+1 levels. The segment index only ever moves forward between
// Resets. After the last segment the envelope holds its final level and
// reports Done.
//
// Levels and lengths may be edited between notes; edits take effect at the
// next segment start, never in the middle of a running segment.
type Segments struct {
	sampleRate float64
	levels     []float64
	lengths    []float64
	curve      float64
	sustain    int

	seg      int
	pos      int
	count    int
	from     float64
	to       float64
	expStep  float64
	expCur   float64
	expScale float64
	value    float64
	released bool
}

// NewSegments returns a breakpoint envelope. It starts finished, holding
// the final level, until Reset.
func NewSegments(sampleRate float64, levels, lengths []float64, opts ...SegmentsOption) (*Segments, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("envelope sample rate must be > 0 and finite: %f", sampleRate)
	}
	if len(lengths) == 0 || len(levels) != len(lengths)+1 {
		return nil, fmt.Errorf("envelope needs len(levels) == len(lengths)+1 >= 2: %d levels, %d lengths",
			len(levels), len(lengths))
	}

	e := &Segments{
		sampleRate: sampleRate,
		levels:     make([]float64, len(levels)),
		lengths:    make([]float64, len(lengths)),
		sustain:    -1,
	}
	for i, v := range levels {
		if err := e.SetLevel(i, v); err != nil {
			return nil, err
		}
	}
	for i, v := range lengths {
		if err := e.SetLength(i, v); err != nil {
			return nil, err
		}
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	e.seg = len(e.lengths)
	e.value = e.levels[len(e.levels)-1]
	return e, nil
}

// NumSegments returns the number of segments.
func (e *Segments) NumSegments() int {
	return len(e.lengths)
}

// Level returns breakpoint level i.
func (e *Segments) Level(i int) float64 {
	return e.levels[i]
}

// Length returns the duration of segment i in seconds.
func (e *Segments) Length(i int) float64 {
	return e.lengths[i]
}

// SetLevel sets breakpoint level i.
func (e *Segments) SetLevel(i int, level float64) error {
	if i < 0 || i >= len(e.levels) {
		return fmt.Errorf("envelope level index out of range [0, %d]: %d", len(e.levels)-1, i)
	}
	if math.IsNaN(level) || math.IsInf(level, 0) {
		return fmt.Errorf("envelope level must be finite: %f", level)
	}
	e.levels[i] = level
	return nil
}

// SetLength sets the duration of segment i in seconds. Zero-length
// segments last one sample.
func (e *Segments) SetLength(i int, seconds float64) error {
	if i < 0 || i >= len(e.lengths) {
		return fmt.Errorf("envelope segment index out of range [0, %d]: %d", len(e.lengths)-1, i)
	}
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fmt.Errorf("envelope length must be >= 0 and finite: %f", seconds)
	}
	e.lengths[i] = seconds
	return nil
}

// Reset restarts the envelope from levels[0].
func (e *Segments) Reset() {
	e.released = false
	e.seg = 0
	e.value = e.levels[0]
	e.startSegment(e.value)
}

// Release lets a held envelope continue past its sustain point. An
// envelope still before its sustain point jumps there and continues from
// its current value.
func (e *Segments) Release() {
	if e.Done() || e.released {
		return
	}
	e.released = true
	if e.sustain >= 0 && e.seg < e.sustain {
		e.seg = e.sustain
		e.startSegment(e.value)
	}
}

// Released reports whether Release was called since the last Reset.
func (e *Segments) Released() bool {
	return e.released
}

// Segment returns the index of the running segment; NumSegments() once done.
func (e *Segments) Segment() int {
	return e.seg
}

// Holding reports whether the envelope is parked at its sustain point.
func (e *Segments) Holding() bool {
	return e.seg == e.sustain && !e.released
}

// Done reports whether every segment has completed.
func (e *Segments) Done() bool {
	return e.seg >= len(e.lengths)
}

// Value returns the current value without advancing.
func (e *Segments) Value() float64 {
	return e.value
}

// Next returns the current value and advances one sample.
func (e *Segments) Next() float64 {
	out := e.value
	if e.Done() || e.Holding() {
		return out
	}

	e.pos++
	if e.pos >= e.count {
		e.value = e.to
		e.seg++
		e.startSegment(e.value)
		return out
	}

	var t float64
	if e.expScale != 0 {
		e.expCur *= e.expStep
		t = (1 - e.expCur) * e.expScale
	} else {
		t = float64(e.pos) / float64(e.count)
	}
	e.value = e.from + (e.to-e.from)*t
	return out
}

func (e *Segments) startSegment(from float64) {
	e.pos = 0
	e.from = from
	if e.Done() {
		return
	}

	e.to = e.levels[e.seg+1]
	e.count = int(math.Round(e.lengths[e.seg] * e.sampleRate))
	if e.count < 1 {
		e.count = 1
	}

	e.expScale = 0
	if math.Abs(e.curve) > curveEpsilon {
		e.expStep = math.Exp(e.curve / float64(e.count))
		e.expCur = 1
		e.expScale = 1 / (1 - math.Exp(e.curve))
	}
}
