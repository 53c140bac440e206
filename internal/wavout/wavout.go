// Package wavout writes and reads 16-bit PCM stereo WAV files for rendered
// voice output.
package wavout

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitDepth  = 16
	fullScale = 32767
)

// ErrInvalidFile is returned when a file is not a readable WAV file.
var ErrInvalidFile = errors.New("wavout: invalid WAV file")

// Option configures encoding.
type Option func(*encoder)

type encoder struct {
	rng *rand.Rand
}

// WithDither adds triangular (TPDF) dither of +-1 LSB before quantizing.
func WithDither(seed uint64) Option {
	return func(e *encoder) {
		e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// Encode writes left/right as interleaved 16-bit PCM. Samples are clipped
// to [-1, 1].
func Encode(w io.WriteSeeker, left, right []float64, sampleRate int, opts ...Option) error {
	if len(left) != len(right) {
		return fmt.Errorf("wavout: left and right must have equal length: %d != %d", len(left), len(right))
	}
	if sampleRate <= 0 {
		return fmt.Errorf("wavout: sample rate must be > 0: %d", sampleRate)
	}

	var e encoder
	for _, opt := range opts {
		if opt != nil {
			opt(&e)
		}
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 2, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 2,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, 2*len(left)),
		SourceBitDepth: bitDepth,
	}
	for i := range left {
		buf.Data[2*i] = e.quantize(left[i])
		buf.Data[2*i+1] = e.quantize(right[i])
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavout: %w", err)
	}
	return enc.Close()
}

// WriteFile writes a stereo WAV file at path.
func WriteFile(path string, left, right []float64, sampleRate int, opts ...Option) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Encode(f, left, right, sampleRate, opts...)
}

// Decode reads a 16-bit stereo WAV stream back into float channels.
func Decode(r io.ReadSeeker) (left, right []float64, sampleRate int, err error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, nil, 0, ErrInvalidFile
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("wavout: %w", err)
	}
	if buf.Format == nil || buf.Format.NumChannels != 2 {
		return nil, nil, 0, fmt.Errorf("%w: need 2 channels", ErrInvalidFile)
	}

	frames := len(buf.Data) / 2
	left = make([]float64, frames)
	right = make([]float64, frames)
	for i := range frames {
		left[i] = float64(buf.Data[2*i]) / fullScale
		right[i] = float64(buf.Data[2*i+1]) / fullScale
	}
	return left, right, buf.Format.SampleRate, nil
}

// ReadFile reads a stereo WAV file from path.
func ReadFile(path string) (left, right []float64, sampleRate int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, 0, err
	}
	defer f.Close()
	return Decode(f)
}

func (e *encoder) quantize(x float64) int {
	if e.rng == nil {
		return toPCM(x)
	}
	if math.IsNaN(x) {
		return 0
	}
	x = math.Max(-1, math.Min(1, x))
	v := int(math.Round(x*fullScale + e.rng.Float64() - e.rng.Float64()))
	return max(-fullScale, min(fullScale, v))
}

func toPCM(x float64) int {
	if math.IsNaN(x) {
		return 0
	}
	x = math.Max(-1, math.Min(1, x))
	return int(math.Round(x * fullScale))
}
