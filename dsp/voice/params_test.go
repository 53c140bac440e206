package voice

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	want := Params{
		Amplitude:   0.6,
		Frequency:   60,
		AttackTime:  0.001,
		ReleaseTime: 0.25,
		Sustain:     0.5,
	}
	if p != want {
		t.Fatalf("DefaultParams()=%+v want %+v", p, want)
	}
}

func TestParamsClamp(t *testing.T) {
	p := Params{
		Amplitude:   2,
		Frequency:   1,
		AttackTime:  0,
		ReleaseTime: 100,
		Sustain:     -1,
		Pan1:        -5,
		Pan2:        5,
		PanRise:     math.NaN(),
	}.Clamp()

	want := Params{
		Amplitude:   1,
		Frequency:   20,
		AttackTime:  0.001,
		ReleaseTime: 10,
		Sustain:     0,
		Pan1:        -1,
		Pan2:        1,
		PanRise:     -1,
	}
	if p != want {
		t.Fatalf("Clamp()=%+v want %+v", p, want)
	}
}

func TestParamsClampKeepsInRangeValues(t *testing.T) {
	p := DefaultParams()
	p.Frequency = 440
	p.Pan2 = 0.25
	if got := p.Clamp(); got != p {
		t.Fatalf("Clamp()=%+v want %+v", got, p)
	}
}

func TestParamsSetGet(t *testing.T) {
	p := DefaultParams()
	for _, r := range Ranges {
		if err := p.Set(r.Name, r.Max+1); err != nil {
			t.Fatalf("Set(%q): %v", r.Name, err)
		}
		got, err := p.Get(r.Name)
		if err != nil {
			t.Fatalf("Get(%q): %v", r.Name, err)
		}
		if got != r.Max {
			t.Fatalf("%s=%v want clamped %v", r.Name, got, r.Max)
		}
	}
}

func TestParamsUnknownName(t *testing.T) {
	p := DefaultParams()
	if err := p.Set("cutoff", 1); !errors.Is(err, ErrUnknownParam) {
		t.Fatalf("Set error=%v want ErrUnknownParam", err)
	}
	if _, err := p.Get("cutoff"); !errors.Is(err, ErrUnknownParam) {
		t.Fatalf("Get error=%v want ErrUnknownParam", err)
	}
	if _, ok := LookupRange("cutoff"); ok {
		t.Fatal("LookupRange found unknown name")
	}
}

func TestRangesContainDefaults(t *testing.T) {
	for _, r := range Ranges {
		if r.Min > r.Max {
			t.Fatalf("%s: min %v > max %v", r.Name, r.Min, r.Max)
		}
		if r.Default < r.Min || r.Default > r.Max {
			t.Fatalf("%s: default %v outside [%v, %v]", r.Name, r.Default, r.Min, r.Max)
		}
	}
}

func TestParamsJSONOverlaysDefaults(t *testing.T) {
	p := DefaultParams()
	if err := json.Unmarshal([]byte(`{"frequency":440,"pan2":-0.5}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Frequency != 440 || p.Pan2 != -0.5 {
		t.Fatalf("decoded %+v", p)
	}
	if p.Amplitude != 0.6 || p.ReleaseTime != 0.25 {
		t.Fatalf("defaults lost: %+v", p)
	}
}
