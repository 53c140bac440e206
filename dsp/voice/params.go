package voice

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-pluck/dsp/core"
)

// ErrUnknownParam is returned for a parameter name not in Ranges.
var ErrUnknownParam = errors.New("unknown voice parameter")

// Params are the per-note controls supplied before each note-on.
type Params struct {
	Amplitude   float64 `json:"amplitude"`
	Frequency   float64 `json:"frequency"`
	AttackTime  float64 `json:"attackTime"`
	ReleaseTime float64 `json:"releaseTime"`
	Sustain     float64 `json:"sustain"`
	Pan1        float64 `json:"pan1"`
	Pan2        float64 `json:"pan2"`
	PanRise     float64 `json:"panRise"`
}

// Range describes one named control.
type Range struct {
	Name    string
	Default float64
	Min     float64
	Max     float64
}

// Ranges lists every control with its default and inclusive bounds.
var Ranges = []Range{
	{Name: "amplitude", Default: 0.6, Min: 0, Max: 1},
	{Name: "frequency", Default: 60, Min: 20, Max: 5000},
	{Name: "attackTime", Default: 0.001, Min: 0.001, Max: 1},
	{Name: "releaseTime", Default: 0.25, Min: 0.1, Max: 10},
	{Name: "sustain", Default: 0.5, Min: 0, Max: 1},
	{Name: "pan1", Default: 0, Min: -1, Max: 1},
	{Name: "pan2", Default: 0, Min: -1, Max: 1},
	{Name: "panRise", Default: 0, Min: -1, Max: 1},
}

// LookupRange returns the range for name.
func LookupRange(name string) (Range, bool) {
	for _, r := range Ranges {
		if r.Name == name {
			return r, true
		}
	}
	return Range{}, false
}

// DefaultParams returns every control at its default.
func DefaultParams() Params {
	var p Params
	for _, r := range Ranges {
		*p.field(r.Name) = r.Default
	}
	return p
}

// Clamp returns p with every control limited to its range.
func (p Params) Clamp() Params {
	for _, r := range Ranges {
		f := p.field(r.Name)
		*f = core.Clamp(*f, r.Min, r.Max)
	}
	return p
}

// Set assigns one control by name, clamping it to its range.
func (p *Params) Set(name string, value float64) error {
	r, ok := LookupRange(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	*p.field(name) = core.Clamp(value, r.Min, r.Max)
	return nil
}

// Get returns one control by name.
func (p Params) Get(name string) (float64, error) {
	f := p.field(name)
	if f == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return *f, nil
}

func (p *Params) field(name string) *float64 {
	switch name {
	case "amplitude":
		return &p.Amplitude
	case "frequency":
		return &p.Frequency
	case "attackTime":
		return &p.AttackTime
	case "releaseTime":
		return &p.ReleaseTime
	case "sustain":
		return &p.Sustain
	case "pan1":
		return &p.Pan1
	case "pan2":
		return &p.Pan2
	case "panRise":
		return &p.PanRise
	default:
		return nil
	}
}
