package pluck

import (
	"fmt"

	"github.com/cwbudde/algo-pluck/dsp/core"
	"github.com/cwbudde/algo-pluck/dsp/delay"
	"github.com/cwbudde/algo-pluck/dsp/effects/spatial"
	"github.com/cwbudde/algo-pluck/dsp/envelope"
	"github.com/cwbudde/algo-pluck/dsp/filter/moving"
	"github.com/cwbudde/algo-pluck/dsp/signal"
	"github.com/cwbudde/algo-pluck/dsp/voice"
)

var _ voice.Renderer = (*String)(nil)

// String is a plucked-string voice. It is not safe for concurrent use;
// distinct Strings share no state.
type String struct {
	sampleRate float64
	cfg        config

	noise      signal.Source
	excitation *envelope.Decay
	line       *delay.Line
	damping    *moving.Average
	ctrl       *Controller
	panner     *spatial.Panner
	follower   *envelope.Follower

	frequency float64
	last      float64
}

// New returns an idle String configured with voice.DefaultParams. It stays
// silent until Reset.
func New(sampleRate float64, opts ...Option) (*String, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.followerCutoff >= sampleRate/2 {
		return nil, fmt.Errorf("pluck follower cutoff must be below Nyquist %f: %f", sampleRate/2, cfg.followerCutoff)
	}

	s := &String{sampleRate: sampleRate, cfg: cfg}

	switch cfg.noise {
	case NoiseWhite:
		s.noise = signal.NewWhiteNoise(cfg.seed)
	default:
		s.noise = signal.NewPinkNoise(cfg.seed)
	}

	var err error
	if s.excitation, err = envelope.NewDecay(sampleRate, cfg.excitationDecay); err != nil {
		return nil, fmt.Errorf("pluck: %w", err)
	}
	if s.line, err = delay.NewForMinFrequency(sampleRate, LowestFrequency); err != nil {
		return nil, fmt.Errorf("pluck: %w", err)
	}
	if s.damping, err = moving.New(2); err != nil {
		return nil, fmt.Errorf("pluck: %w", err)
	}
	if s.ctrl, err = NewController(sampleRate, cfg.noteDuration); err != nil {
		return nil, fmt.Errorf("pluck: %w", err)
	}
	if s.follower, err = envelope.NewFollower(sampleRate, cfg.followerCutoff); err != nil {
		return nil, fmt.Errorf("pluck: %w", err)
	}
	s.panner = spatial.NewPanner(0)

	s.Configure(voice.DefaultParams())
	return s, nil
}

// Factory returns a voice.Factory building Strings with the given options.
func Factory(sampleRate float64, opts ...Option) voice.Factory {
	return func() (voice.Renderer, error) {
		return New(sampleRate, opts...)
	}
}

// Configure clamps p and recomputes tuning, amplitude and envelope
// breakpoints. A sounding note keeps its tuning and amplitude until the
// next Reset; envelope edits apply from the next segment start.
func (s *String) Configure(p voice.Params) {
	p = p.Clamp()
	s.ctrl.Configure(p)
	s.frequency = p.Frequency
}

// Reset starts a new note: tuning and envelopes take the configured values,
// the noise burst replays and all signal state is cleared.
func (s *String) Reset() {
	// The line is sized for LowestFrequency. Only a sample rate below
	// 2*frequency can request a sub-sample loop; the tap then stays put.
	_ = s.line.SetFrequency(s.sampleRate, s.frequency)
	s.ctrl.Reset()
	s.noise.Reset()
	s.excitation.Reset()
	s.line.Reset()
	s.damping.Reset()
	s.follower.Reset()
	s.last = 0
}

// TriggerRelease starts the release phase.
func (s *String) TriggerRelease() {
	s.ctrl.TriggerRelease()
}

// Finished reports whether the amplitude envelope is done and the output
// energy has fallen below SilenceThreshold.
func (s *String) Finished() bool {
	return s.ctrl.Done() && s.follower.Value() < SilenceThreshold
}

// ProduceSample returns the next stereo frame.
func (s *String) ProduceSample() (left, right float64) {
	exc := s.noise.Next() * s.excitation.Next()

	fb := s.damping.ProcessSample(s.line.Out() + exc)
	fb = core.FlushDenormals(fb)
	s.line.Write(fb)

	gain, pan := s.ctrl.Next()
	out := fb * gain
	if s.cfg.smoothing {
		out = core.FlushDenormals((out + s.last) / 2)
		s.last = out
	}

	s.follower.Process(out)
	s.panner.SetPosition(pan)
	return s.panner.Process(out)
}

// Render adds len(left) frames into left and right. Both slices must have
// the same length.
func (s *String) Render(left, right []float64) {
	for i := range left {
		l, r := s.ProduceSample()
		left[i] += l
		right[i] += r
	}
}

// Energy returns the output level tracked by the energy follower.
func (s *String) Energy() float64 {
	return s.follower.Value()
}

// Frequency returns the configured frequency in Hz. DelaySamples follows it
// after the next Reset.
func (s *String) Frequency() float64 {
	return s.frequency
}

// DelaySamples returns the feedback loop delay in whole samples.
func (s *String) DelaySamples() int {
	return s.line.Delay()
}

// Stage returns the amplitude envelope phase.
func (s *String) Stage() envelope.Stage {
	return s.ctrl.Stage()
}

// SampleRate returns the sample rate the voice was built for.
func (s *String) SampleRate() float64 {
	return s.sampleRate
}
