package envelope

import (
	"fmt"
	"math"
)

// Default ADSR settings.
const (
	DefaultAttack  = 0.01
	DefaultDecay   = 0.1
	DefaultSustain = 0.7
	DefaultRelease = 1.0
	DefaultCurve   = -4.0
)

// Stage identifies the running ADSR phase.
type Stage int

const (
	// StageIdle means the envelope has finished (or never started).
	StageIdle Stage = iota
	// StageAttack ramps from 0 to the peak level.
	StageAttack
	// StageDecay falls from the peak to the sustain level.
	StageDecay
	// StageSustain holds the sustain level until release.
	StageSustain
	// StageRelease falls to 0.
	StageRelease
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageAttack:
		return "attack"
	case StageDecay:
		return "decay"
	case StageSustain:
		return "sustain"
	case StageRelease:
		return "release"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

const (
	adsrAttack  = 0
	adsrDecay   = 1
	adsrRelease = 2
	adsrPeak    = 1
	adsrSustain = 2
)

type adsrConfig struct {
	attack, decay, sustain, release float64
	curve                           float64
}

// ADSROption configures ADSR construction.
type ADSROption func(*adsrConfig) error

// WithAttack sets the attack time in seconds.
func WithAttack(seconds float64) ADSROption {
	return func(cfg *adsrConfig) error {
		cfg.attack = seconds
		return nil
	}
}

// WithDecay sets the decay time in seconds.
func WithDecay(seconds float64) ADSROption {
	return func(cfg *adsrConfig) error {
		cfg.decay = seconds
		return nil
	}
}

// WithSustain sets the sustain level in [0, 1].
func WithSustain(level float64) ADSROption {
	return func(cfg *adsrConfig) error {
		cfg.sustain = level
		return nil
	}
}

// WithRelease sets the release time in seconds.
func WithRelease(seconds float64) ADSROption {
	return func(cfg *adsrConfig) error {
		cfg.release = seconds
		return nil
	}
}

// WithADSRCurve sets the curvature shared by all three segments.
func WithADSRCurve(curve float64) ADSROption {
	return func(cfg *adsrConfig) error {
		cfg.curve = curve
		return nil
	}
}

// ADSR is an attack/decay/sustain/release envelope with levels
// 0 -> peak -> sustain -> 0. It holds at the sustain level until
// TriggerRelease and is Done only once the release segment completes.
type ADSR struct {
	env *Segments
}

// NewADSR returns an idle ADSR envelope.
func NewADSR(sampleRate float64, opts ...ADSROption) (*ADSR, error) {
	cfg := adsrConfig{
		attack:  DefaultAttack,
		decay:   DefaultDecay,
		sustain: DefaultSustain,
		release: DefaultRelease,
		curve:   DefaultCurve,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if err := validateSustain(cfg.sustain); err != nil {
		return nil, err
	}

	env, err := NewSegments(sampleRate,
		[]float64{0, 1, cfg.sustain, 0},
		[]float64{cfg.attack, cfg.decay, cfg.release},
		WithCurve(cfg.curve),
		WithSustainPoint(adsrRelease),
	)
	if err != nil {
		return nil, fmt.Errorf("adsr: %w", err)
	}
	return &ADSR{env: env}, nil
}

func validateSustain(level float64) error {
	if level < 0 || level > 1 || math.IsNaN(level) {
		return fmt.Errorf("adsr sustain level must be in [0, 1]: %f", level)
	}
	return nil
}

// SetAttack sets the attack time in seconds.
func (a *ADSR) SetAttack(seconds float64) error { return a.env.SetLength(adsrAttack, seconds) }

// SetDecay sets the decay time in seconds.
func (a *ADSR) SetDecay(seconds float64) error { return a.env.SetLength(adsrDecay, seconds) }

// SetRelease sets the release time in seconds.
func (a *ADSR) SetRelease(seconds float64) error { return a.env.SetLength(adsrRelease, seconds) }

// SetPeak sets the level reached at the end of the attack.
func (a *ADSR) SetPeak(level float64) error { return a.env.SetLevel(adsrPeak, level) }

// SetSustain sets the sustain level in [0, 1].
func (a *ADSR) SetSustain(level float64) error {
	if err := validateSustain(level); err != nil {
		return err
	}
	return a.env.SetLevel(adsrSustain, level)
}

// AttackTime returns the attack time in seconds.
func (a *ADSR) AttackTime() float64 { return a.env.Length(adsrAttack) }

// DecayTime returns the decay time in seconds.
func (a *ADSR) DecayTime() float64 { return a.env.Length(adsrDecay) }

// ReleaseTime returns the release time in seconds.
func (a *ADSR) ReleaseTime() float64 { return a.env.Length(adsrRelease) }

// SustainLevel returns the sustain level.
func (a *ADSR) SustainLevel() float64 { return a.env.Level(adsrSustain) }

// Reset restarts the envelope at the beginning of the attack.
func (a *ADSR) Reset() { a.env.Reset() }

// TriggerRelease moves the envelope into its release phase from wherever
// it currently is. It has no effect once idle.
func (a *ADSR) TriggerRelease() { a.env.Release() }

// Next returns the current level and advances one sample.
func (a *ADSR) Next() float64 { return a.env.Next() }

// Value returns the current level without advancing.
func (a *ADSR) Value() float64 { return a.env.Value() }

// Done reports whether the release phase has completed.
func (a *ADSR) Done() bool { return a.env.Done() }

// Stage returns the running phase.
func (a *ADSR) Stage() Stage {
	switch {
	case a.env.Done():
		return StageIdle
	case a.env.Segment() == adsrAttack:
		return StageAttack
	case a.env.Segment() == adsrDecay:
		return StageDecay
	case !a.env.Released():
		return StageSustain
	default:
		return StageRelease
	}
}
