package envelope

import (
	"math"
	"testing"
)

func TestDecayValidation(t *testing.T) {
	if _, err := NewDecay(0, 0.1); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := NewDecay(48000, 0); err == nil {
		t.Fatal("expected error for zero decay")
	}
}

func TestDecayReachesMinus60dB(t *testing.T) {
	d, err := NewDecay(48000, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if d.Value() != 0 {
		t.Fatalf("value before reset = %v, want 0", d.Value())
	}
	d.Reset()
	if v := d.Next(); v != 1 {
		t.Fatalf("first value = %v, want 1", v)
	}
	for i := 1; i < 4800; i++ {
		d.Next()
	}
	if math.Abs(d.Value()-0.001) > 1e-6 {
		t.Fatalf("value after decay time = %v, want 0.001", d.Value())
	}
	if d.Done(0.001 - 1e-6) {
		t.Fatal("should not be below threshold yet")
	}
	d.Next()
	if !d.Done(0.001) {
		t.Fatal("expected below -60 dB after decay time")
	}
}

func TestDecayFlushesToZero(t *testing.T) {
	d, err := NewDecay(1000, 0.001)
	if err != nil {
		t.Fatal(err)
	}
	d.Reset()
	for i := 0; i < 100; i++ {
		d.Next()
	}
	if d.Value() != 0 {
		t.Fatalf("value = %v, want exact 0", d.Value())
	}
}
