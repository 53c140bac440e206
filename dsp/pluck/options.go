package pluck

import (
	"errors"
	"fmt"
	"math"
)

// Defaults for String construction.
const (
	DefaultSeed            = 1
	DefaultExcitationDecay = 0.1
	DefaultNoteDuration    = 2.0
	DefaultFollowerCutoff  = 10.0

	// LowestFrequency sizes the delay line. It is the bottom of the
	// frequency control range, so every accepted note fits the loop.
	LowestFrequency = 20.0
	// SilenceThreshold is the follower level below which a released voice
	// counts as silent.
	SilenceThreshold = 0.001
)

// ErrInvalidSampleRate is returned for a non-positive or non-finite sample rate.
var ErrInvalidSampleRate = errors.New("pluck: invalid sample rate")

// NoiseKind selects the excitation source.
type NoiseKind int

const (
	// NoisePink excites the string with 1/f noise.
	NoisePink NoiseKind = iota
	// NoiseWhite excites the string with uniform white noise.
	NoiseWhite
)

func (k NoiseKind) String() string {
	switch k {
	case NoisePink:
		return "pink"
	case NoiseWhite:
		return "white"
	default:
		return fmt.Sprintf("NoiseKind(%d)", int(k))
	}
}

type config struct {
	seed            int64
	smoothing       bool
	excitationDecay float64
	noteDuration    float64
	followerCutoff  float64
	noise           NoiseKind
}

func defaultConfig() config {
	return config{
		seed:            DefaultSeed,
		smoothing:       true,
		excitationDecay: DefaultExcitationDecay,
		noteDuration:    DefaultNoteDuration,
		followerCutoff:  DefaultFollowerCutoff,
		noise:           NoisePink,
	}
}

// Option configures a String.
type Option func(*config) error

// WithSeed sets the excitation noise seed. Every note-on replays the same
// burst.
func WithSeed(seed int64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		return nil
	}
}

// WithOutputSmoothing enables or disables the one-pole (s+last)/2 output
// smoother. It is enabled by default.
func WithOutputSmoothing(enabled bool) Option {
	return func(cfg *config) error {
		cfg.smoothing = enabled
		return nil
	}
}

// WithExcitationDecay sets the -60 dB time of the noise burst in seconds.
func WithExcitationDecay(seconds float64) Option {
	return func(cfg *config) error {
		if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
			return fmt.Errorf("pluck excitation decay must be > 0 and finite: %f", seconds)
		}
		cfg.excitationDecay = seconds
		return nil
	}
}

// WithNoteDuration sets the duration in seconds the pan trajectory spans.
func WithNoteDuration(seconds float64) Option {
	return func(cfg *config) error {
		if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
			return fmt.Errorf("pluck note duration must be > 0 and finite: %f", seconds)
		}
		cfg.noteDuration = seconds
		return nil
	}
}

// WithFollowerCutoff sets the energy follower smoothing cutoff in Hz.
func WithFollowerCutoff(hz float64) Option {
	return func(cfg *config) error {
		if hz <= 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
			return fmt.Errorf("pluck follower cutoff must be > 0 and finite: %f", hz)
		}
		cfg.followerCutoff = hz
		return nil
	}
}

// WithNoise selects the excitation noise colour.
func WithNoise(kind NoiseKind) Option {
	return func(cfg *config) error {
		if kind != NoisePink && kind != NoiseWhite {
			return fmt.Errorf("pluck noise kind not supported: %d", int(kind))
		}
		cfg.noise = kind
		return nil
	}
}
