package delay

import (
	"fmt"
	"math"
)

// Line is a circular delay line.
type Line struct {
	buffer   []float64
	writePos int
	delay    int
}

// New returns a delay line holding size samples. The read tap starts at
// the full length of the line.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	return &Line{buffer: make([]float64, size), delay: size}, nil
}

// NewForMinFrequency returns a line long enough to hold one period of
// minHz at sampleRate.
func NewForMinFrequency(sampleRate, minHz float64) (*Line, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("delay sample rate must be > 0 and finite: %f", sampleRate)
	}
	if minHz <= 0 || math.IsNaN(minHz) || math.IsInf(minHz, 0) {
		return nil, fmt.Errorf("delay minimum frequency must be > 0 and finite: %f", minHz)
	}
	return New(int(math.Ceil(sampleRate/minHz)) + 1)
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Delay returns the current tap distance in samples.
func (d *Line) Delay() int {
	return d.delay
}

// SetDelay moves the read tap to the given distance in samples, in [1, Len()].
func (d *Line) SetDelay(samples int) error {
	if samples < 1 || samples > len(d.buffer) {
		return fmt.Errorf("delay must be in [1, %d]: %d", len(d.buffer), samples)
	}
	d.delay = samples
	return nil
}

// SetFrequency tunes the tap so one pass through the line lasts 1/hz
// seconds, truncated to whole samples.
func (d *Line) SetFrequency(sampleRate, hz float64) error {
	if sampleRate <= 0 || hz <= 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
		return fmt.Errorf("delay frequency must be > 0 and finite at sample rate %f: %f", sampleRate, hz)
	}
	return d.SetDelay(int(sampleRate / hz))
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read reads an integer delay in samples. Read(1) returns the most
// recently written sample.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	readPos := (d.writePos - delay%size + size) % size
	return d.buffer[readPos]
}

// Out returns the sample leaving the line at the current tap.
func (d *Line) Out() float64 {
	return d.Read(d.delay)
}

// Tick returns the sample leaving the line and then writes sample.
func (d *Line) Tick(sample float64) float64 {
	out := d.Out()
	d.Write(sample)
	return out
}

// Reset clears line state. The tap distance is kept.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}
