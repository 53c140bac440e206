package envelope

import (
	"math"
	"testing"
)

func TestADSRStartsIdle(t *testing.T) {
	a, err := NewADSR(1000)
	if err != nil {
		t.Fatal(err)
	}
	if a.Stage() != StageIdle || !a.Done() || a.Value() != 0 {
		t.Fatalf("new ADSR: stage=%v done=%v value=%v", a.Stage(), a.Done(), a.Value())
	}
	a.TriggerRelease()
	if a.Stage() != StageIdle {
		t.Fatalf("release on idle envelope changed stage to %v", a.Stage())
	}
}

func TestADSRDefaults(t *testing.T) {
	a, err := NewADSR(1000)
	if err != nil {
		t.Fatal(err)
	}
	if a.AttackTime() != DefaultAttack || a.DecayTime() != DefaultDecay ||
		a.SustainLevel() != DefaultSustain || a.ReleaseTime() != DefaultRelease {
		t.Fatalf("defaults: A=%v D=%v S=%v R=%v", a.AttackTime(), a.DecayTime(), a.SustainLevel(), a.ReleaseTime())
	}
}

func TestADSRValidation(t *testing.T) {
	if _, err := NewADSR(1000, WithSustain(1.5)); err == nil {
		t.Fatal("expected error for sustain > 1")
	}
	if _, err := NewADSR(1000, WithAttack(-1)); err == nil {
		t.Fatal("expected error for negative attack")
	}
	a, err := NewADSR(1000)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.SetSustain(-0.1); err == nil {
		t.Fatal("expected error for negative sustain")
	}
	if err := a.SetRelease(math.NaN()); err == nil {
		t.Fatal("expected error for NaN release")
	}
}

func TestADSRStateMachine(t *testing.T) {
	a, err := NewADSR(1000,
		WithAttack(0.01), WithDecay(0.1), WithSustain(0.5), WithRelease(0.25))
	if err != nil {
		t.Fatal(err)
	}
	a.Reset()

	if a.Stage() != StageAttack {
		t.Fatalf("after reset stage = %v, want attack", a.Stage())
	}
	if v := a.Next(); v != 0 {
		t.Fatalf("first value = %v, want 0", v)
	}
	if a.Value() <= 0 {
		t.Fatal("attack must rise after the first sample")
	}

	render(a, 9)
	if a.Stage() != StageDecay || a.Value() != 1 {
		t.Fatalf("after attack: stage=%v value=%v", a.Stage(), a.Value())
	}

	render(a, 100)
	if a.Stage() != StageSustain || a.Value() != 0.5 {
		t.Fatalf("after decay: stage=%v value=%v", a.Stage(), a.Value())
	}

	for i := 0; i < 5000; i++ {
		if v := a.Next(); v != 0.5 {
			t.Fatalf("sustain sample %d = %v, want 0.5", i, v)
		}
	}
	if a.Done() {
		t.Fatal("sustain must hold until release")
	}

	a.TriggerRelease()
	if a.Stage() != StageRelease {
		t.Fatalf("after release stage = %v", a.Stage())
	}
	render(a, 249)
	if a.Done() {
		t.Fatal("release finished early")
	}
	render(a, 1)
	if !a.Done() || a.Stage() != StageIdle || a.Value() != 0 {
		t.Fatalf("after release: stage=%v value=%v", a.Stage(), a.Value())
	}
}

func TestADSRReleaseDuringAttack(t *testing.T) {
	a, err := NewADSR(1000, WithAttack(0.1), WithRelease(0.05))
	if err != nil {
		t.Fatal(err)
	}
	a.Reset()
	render(a, 20)
	level := a.Value()
	a.TriggerRelease()
	if a.Stage() != StageRelease {
		t.Fatalf("stage = %v, want release", a.Stage())
	}

	prev := level
	for i := 0; i < 50; i++ {
		v := a.Next()
		if v > prev+1e-15 {
			t.Fatalf("release rose at sample %d: %v > %v", i, v, prev)
		}
		prev = v
	}
	if !a.Done() {
		t.Fatal("expected idle after release length")
	}
}

func TestADSRRetrigger(t *testing.T) {
	a, err := NewADSR(1000, WithAttack(0.001), WithDecay(0.001), WithRelease(0.001))
	if err != nil {
		t.Fatal(err)
	}
	a.Reset()
	render(a, 10)
	a.TriggerRelease()
	render(a, 10)
	if !a.Done() {
		t.Fatal("expected idle")
	}
	a.Reset()
	if a.Stage() != StageAttack || a.Value() != 0 {
		t.Fatalf("retrigger: stage=%v value=%v", a.Stage(), a.Value())
	}
}

func TestStageString(t *testing.T) {
	if StageSustain.String() != "sustain" || Stage(42).String() != "Stage(42)" {
		t.Fatalf("unexpected stage strings: %q %q", StageSustain, Stage(42))
	}
}
