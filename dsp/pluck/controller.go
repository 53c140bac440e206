package pluck

import (
	"fmt"

	"github.com/cwbudde/algo-pluck/dsp/core"
	"github.com/cwbudde/algo-pluck/dsp/envelope"
	"github.com/cwbudde/algo-pluck/dsp/voice"
)

// panCurve bends the pan trajectory so it moves slowly at first.
const panCurve = 4.0

// Controller drives the loudness and stereo position of one note: an ADSR
// amplitude envelope scaled by the note amplitude, and a pan trajectory
// pan1 -> pan2 -> pan1 over the note duration.
type Controller struct {
	amp       *envelope.ADSR
	pan       *envelope.Segments
	duration  float64
	amplitude float64 // configured, applied on Reset
	gain      float64
}

// NewController returns a controller whose pan trajectory spans duration
// seconds. It starts idle with default parameters.
func NewController(sampleRate, duration float64) (*Controller, error) {
	if !core.IsFinite(duration) || duration <= 0 {
		return nil, fmt.Errorf("pluck controller duration must be > 0 and finite: %f", duration)
	}
	amp, err := envelope.NewADSR(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("pluck controller: %w", err)
	}
	pan, err := envelope.NewSegments(sampleRate,
		[]float64{0, 0, 0},
		[]float64{0, duration},
		envelope.WithCurve(panCurve),
	)
	if err != nil {
		return nil, fmt.Errorf("pluck controller: %w", err)
	}

	c := &Controller{amp: amp, pan: pan, duration: duration}
	c.Configure(voice.DefaultParams())
	return c, nil
}

// Configure clamps p and recomputes envelope breakpoints. It takes effect
// on the next Reset.
func (c *Controller) Configure(p voice.Params) {
	p = p.Clamp()
	c.amplitude = p.Amplitude

	// Clamped values always satisfy the envelope setters.
	_ = c.amp.SetAttack(p.AttackTime)
	_ = c.amp.SetRelease(p.ReleaseTime)
	_ = c.amp.SetSustain(p.Sustain)

	rise := core.Clamp(p.PanRise, 0, 1)
	_ = c.pan.SetLevel(0, p.Pan1)
	_ = c.pan.SetLevel(1, p.Pan2)
	_ = c.pan.SetLevel(2, p.Pan1)
	_ = c.pan.SetLength(0, rise*c.duration)
	_ = c.pan.SetLength(1, (1-rise)*c.duration)
}

// Reset restarts both envelopes.
func (c *Controller) Reset() {
	c.gain = c.amplitude
	c.amp.Reset()
	c.pan.Reset()
}

// TriggerRelease moves the amplitude envelope into its release phase.
func (c *Controller) TriggerRelease() {
	c.amp.TriggerRelease()
}

// Next returns the current gain (envelope times amplitude) and pan position
// and advances both envelopes one sample.
func (c *Controller) Next() (gain, pan float64) {
	return c.amp.Next() * c.gain, c.pan.Next()
}

// Done reports whether the amplitude envelope has finished its release.
func (c *Controller) Done() bool {
	return c.amp.Done()
}

// Stage returns the amplitude envelope phase.
func (c *Controller) Stage() envelope.Stage {
	return c.amp.Stage()
}

// Amplitude returns the configured note amplitude. It scales the output
// from the next Reset on.
func (c *Controller) Amplitude() float64 {
	return c.amplitude
}

// Duration returns the pan trajectory duration in seconds.
func (c *Controller) Duration() float64 {
	return c.duration
}
