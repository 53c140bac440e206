package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/algo-pluck/dsp/voice"
)

// noteEvent is one timed note of a sequence file. Missing params keep their
// defaults.
type noteEvent struct {
	Start    float64      `json:"start"`
	Duration float64      `json:"duration"`
	Params   voice.Params `json:"params"`
}

func (e *noteEvent) UnmarshalJSON(b []byte) error {
	type plain noteEvent
	p := plain{Params: voice.DefaultParams()}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*e = noteEvent(p)
	return nil
}

func (e noteEvent) validate() error {
	if e.Start < 0 || math.IsNaN(e.Start) || math.IsInf(e.Start, 0) {
		return fmt.Errorf("start must be >= 0 and finite: %f", e.Start)
	}
	if e.Duration <= 0 || math.IsNaN(e.Duration) || math.IsInf(e.Duration, 0) {
		return fmt.Errorf("duration must be > 0 and finite: %f", e.Duration)
	}
	return nil
}

func parseNotes(data []byte) ([]noteEvent, error) {
	var notes []noteEvent
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("decoding notes: %w", err)
	}
	if len(notes) == 0 {
		return nil, fmt.Errorf("notes: sequence is empty")
	}
	for i := range notes {
		if err := notes[i].validate(); err != nil {
			return nil, fmt.Errorf("note %d: %w", i, err)
		}
		notes[i].Params = notes[i].Params.Clamp()
	}
	return notes, nil
}

func loadNotes(path string) ([]noteEvent, error) {
	if path == "" {
		return demoNotes(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseNotes(data)
}

// demoNotes is an A minor arpeggio that sweeps across the stereo field.
func demoNotes() []noteEvent {
	freqs := []float64{110, 220, 261.63, 329.63, 440, 523.25, 659.26, 880}
	notes := make([]noteEvent, len(freqs))
	for i, f := range freqs {
		p := voice.DefaultParams()
		p.Frequency = f
		p.Pan1 = -0.8 + 1.6*float64(i)/float64(len(freqs)-1)
		p.Pan2 = -p.Pan1
		p.PanRise = 0.5
		notes[i] = noteEvent{Start: 0.25 * float64(i), Duration: 0.6, Params: p}
	}
	return notes
}
