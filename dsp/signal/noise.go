package signal

import (
	"math/bits"
	"math/rand"
)

// Source is a streaming, resettable sample source.
type Source interface {
	Next() float64
	Reset()
}

// WhiteNoise streams uniform white noise in [-1, 1).
type WhiteNoise struct {
	rng  *rand.Rand
	seed int64
}

// NewWhiteNoise returns a white noise source seeded with seed.
func NewWhiteNoise(seed int64) *WhiteNoise {
	return &WhiteNoise{rng: rand.New(rand.NewSource(seed)), seed: seed}
}

// Next returns the next sample.
func (w *WhiteNoise) Next() float64 {
	return w.rng.Float64()*2 - 1
}

// Reset rewinds the source to its seed.
func (w *WhiteNoise) Reset() {
	w.rng.Seed(w.seed)
}

const pinkRows = 12

// PinkNoise streams approximately 1/f noise using the Voss-McCartney
// algorithm: row k of a bank of white generators is refreshed every 2^k
// samples and the rows are summed with one fresh white sample. Output is
// bounded to [-1, 1).
type PinkNoise struct {
	rng     *rand.Rand
	seed    int64
	rows    [pinkRows]float64
	sum     float64
	counter uint32
}

// NewPinkNoise returns a pink noise source seeded with seed.
func NewPinkNoise(seed int64) *PinkNoise {
	p := &PinkNoise{rng: rand.New(rand.NewSource(seed)), seed: seed}
	p.Reset()
	return p
}

// Next returns the next sample.
func (p *PinkNoise) Next() float64 {
	p.counter++
	if k := bits.TrailingZeros32(p.counter); k < pinkRows {
		v := p.rng.Float64()*2 - 1
		p.sum += v - p.rows[k]
		p.rows[k] = v
	}
	white := p.rng.Float64()*2 - 1
	return (p.sum + white) / (pinkRows + 1)
}

// Reset rewinds the source to its seed and refills every row so the
// spectrum is pink from the first sample.
func (p *PinkNoise) Reset() {
	p.rng.Seed(p.seed)
	p.counter = 0
	p.sum = 0
	for i := range p.rows {
		p.rows[i] = p.rng.Float64()*2 - 1
		p.sum += p.rows[i]
	}
}
