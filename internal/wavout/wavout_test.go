package wavout

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	left := []float64{0, 0.5, -0.5, 1, -1, 0.25}
	right := []float64{0.1, -0.1, 0.75, -0.75, 0, 0.9}

	if err := WriteFile(path, left, right, 44100); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	gotL, gotR, sr, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if sr != 44100 {
		t.Fatalf("sample rate=%d want 44100", sr)
	}
	if len(gotL) != len(left) || len(gotR) != len(right) {
		t.Fatalf("frames=%d/%d want %d", len(gotL), len(gotR), len(left))
	}
	for i := range left {
		if math.Abs(gotL[i]-left[i]) > 1.0/fullScale || math.Abs(gotR[i]-right[i]) > 1.0/fullScale {
			t.Fatalf("frame %d = (%v, %v) want (%v, %v)", i, gotL[i], gotR[i], left[i], right[i])
		}
	}
}

func TestEncodeClips(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{in: 2, want: fullScale},
		{in: -3, want: -fullScale},
		{in: math.NaN(), want: 0},
		{in: 0.5, want: 16384},
	}
	for _, tt := range tests {
		if got := toPCM(tt.in); got != tt.want {
			t.Fatalf("toPCM(%v)=%d want %d", tt.in, got, tt.want)
		}
	}
}

func TestWriteFileDither(t *testing.T) {
	dir := t.TempDir()
	left := make([]float64, 4096)
	right := make([]float64, 4096)
	for i := range left {
		left[i] = 0.3 * math.Sin(float64(i)*0.01)
		right[i] = -left[i]
	}

	a := filepath.Join(dir, "a.wav")
	b := filepath.Join(dir, "b.wav")
	if err := WriteFile(a, left, right, 48000, WithDither(7)); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := WriteFile(b, left, right, 48000, WithDither(7)); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	gotA, _, _, err := ReadFile(a)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	gotB, _, _, err := ReadFile(b)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	changed := 0
	for i := range left {
		if gotA[i] != gotB[i] {
			t.Fatalf("frame %d: same seed gave %v and %v", i, gotA[i], gotB[i])
		}
		if math.Abs(gotA[i]-left[i]) > 2.0/fullScale {
			t.Fatalf("frame %d: dithered %v too far from %v", i, gotA[i], left[i])
		}
		if int(math.Round(gotA[i]*fullScale)) != toPCM(left[i]) {
			changed++
		}
	}
	if changed == 0 {
		t.Fatal("dither never changed a sample")
	}
}

func TestEncodeValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	if err := WriteFile(path, make([]float64, 2), make([]float64, 3), 48000); err == nil {
		t.Fatal("expected error for mismatched channels")
	}
	if err := WriteFile(path, nil, nil, 0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestReadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.wav")
	if err := os.WriteFile(path, []byte("not a wav file at all"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := ReadFile(path); !errors.Is(err, ErrInvalidFile) {
		t.Fatalf("error=%v want ErrInvalidFile", err)
	}
}
