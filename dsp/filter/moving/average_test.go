package moving

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-pluck/internal/testutil"
)

func TestNewValidation(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for taps=0")
	}
	a, err := New(2)
	if err != nil {
		t.Fatal(err)
	}
	if a.Taps() != 2 {
		t.Fatalf("Taps() = %d, want 2", a.Taps())
	}
}

func TestTwoTapImpulseResponse(t *testing.T) {
	a, err := New(2)
	if err != nil {
		t.Fatal(err)
	}

	buf := testutil.Impulse(5, 0)
	a.ProcessBlock(buf)
	testutil.RequireSliceNearlyEqual(t, buf, []float64{0.5, 0.5, 0, 0, 0}, 1e-15)
}

func TestDCGainIsUnity(t *testing.T) {
	for _, taps := range []int{1, 2, 3, 8} {
		a, err := New(taps)
		if err != nil {
			t.Fatal(err)
		}
		var y float64
		for i := 0; i < 32; i++ {
			y = a.ProcessSample(0.75)
		}
		if math.Abs(y-0.75) > 1e-12 {
			t.Fatalf("taps=%d: DC output %v, want 0.75", taps, y)
		}
	}
}

func TestNyquistIsCancelledByTwoTaps(t *testing.T) {
	a, err := New(2)
	if err != nil {
		t.Fatal(err)
	}
	a.ProcessSample(1)
	for i := 1; i < 16; i++ {
		x := 1.0
		if i%2 == 1 {
			x = -1
		}
		if y := a.ProcessSample(x); y != 0 {
			t.Fatalf("sample %d: got %v want 0", i, y)
		}
	}
}

func TestReset(t *testing.T) {
	a, err := New(3)
	if err != nil {
		t.Fatal(err)
	}
	a.ProcessSample(3)
	a.ProcessSample(3)
	a.Reset()
	if y := a.ProcessSample(3); y != 1 {
		t.Fatalf("after reset got %v want 1", y)
	}
}
