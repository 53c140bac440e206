package voice

import (
	"context"
	"errors"
	"fmt"

	"github.com/cwbudde/algo-pluck/dsp/core"
	"github.com/cwbudde/algo-vecmath"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrPoolExhausted is returned by NoteOn when every voice is in use.
	ErrPoolExhausted = errors.New("voice pool exhausted")
	// ErrUnknownNote is returned by NoteOff when no held voice plays the note.
	ErrUnknownNote = errors.New("no held voice for note")
	// ErrSampleRateMismatch is returned by NewPool when a voice runs at a
	// different rate than the pool.
	ErrSampleRateMismatch = errors.New("voice sample rate does not match pool")
)

// sampleRater is implemented by voices that know their sample rate.
type sampleRater interface {
	SampleRate() float64
}

type slot struct {
	voice    Renderer
	note     int
	released bool
	left     []float64
	right    []float64
}

// Stats summarizes pool usage.
type Stats struct {
	Active    int
	Free      int
	Started   uint64
	Reclaimed uint64
}

// Pool owns a fixed set of voices. NoteOn takes a free voice, Render adds
// every active voice into the host buffers and, once per block, returns
// finished voices to the free list.
//
// A voice whose Finished never becomes true stays active forever; Stats
// exposes the active count so hosts can notice.
//
// Pool is not safe for concurrent use; RenderParallel fans out internally.
type Pool struct {
	cfg       core.ProcessorConfig
	free      []*slot
	active    []*slot
	started   uint64
	reclaimed uint64
}

// NewPool allocates maxVoices voices from factory. Voices that report a
// sample rate must match the pool's.
func NewPool(factory Factory, maxVoices int, opts ...core.ProcessorOption) (*Pool, error) {
	if factory == nil {
		return nil, fmt.Errorf("voice pool factory must not be nil")
	}
	if maxVoices <= 0 {
		return nil, fmt.Errorf("voice pool size must be > 0: %d", maxVoices)
	}
	cfg := core.ApplyProcessorOptions(opts...)

	p := &Pool{
		cfg:    cfg,
		free:   make([]*slot, 0, maxVoices),
		active: make([]*slot, 0, maxVoices),
	}
	for i := 0; i < maxVoices; i++ {
		v, err := factory()
		if err != nil {
			return nil, fmt.Errorf("voice pool: allocating voice %d: %w", i, err)
		}
		if r, ok := v.(sampleRater); ok && r.SampleRate() != cfg.SampleRate {
			return nil, fmt.Errorf("%w: voice %d at %g Hz, pool at %g Hz",
				ErrSampleRateMismatch, i, r.SampleRate(), cfg.SampleRate)
		}
		p.free = append(p.free, &slot{
			voice: v,
			left:  make([]float64, cfg.BlockSize),
			right: make([]float64, cfg.BlockSize),
		})
	}
	return p, nil
}

// Config returns the pool processing configuration.
func (p *Pool) Config() core.ProcessorConfig {
	return p.cfg
}

// NoteOn configures and starts a free voice for note.
func (p *Pool) NoteOn(note int, params Params) error {
	n := len(p.free)
	if n == 0 {
		return fmt.Errorf("%w: %d voices active (note %d)", ErrPoolExhausted, len(p.active), note)
	}
	s := p.free[n-1]
	p.free = p.free[:n-1]

	s.note = note
	s.released = false
	s.voice.Configure(params.Clamp())
	s.voice.Reset()
	p.active = append(p.active, s)
	p.started++
	return nil
}

// NoteOff releases every held voice playing note.
func (p *Pool) NoteOff(note int) error {
	found := false
	for _, s := range p.active {
		if s.note == note && !s.released {
			s.voice.TriggerRelease()
			s.released = true
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: %d", ErrUnknownNote, note)
	}
	return nil
}

// Render adds one block of every active voice into left and right, then
// reclaims finished voices.
func (p *Pool) Render(left, right []float64) error {
	if len(left) != len(right) {
		return fmt.Errorf("voice pool: left and right buffers must have equal length: %d != %d",
			len(left), len(right))
	}
	for _, s := range p.active {
		s.voice.Render(left, right)
	}
	p.reclaim()
	return nil
}

// RenderParallel renders each active voice into its own scratch block on a
// separate goroutine and then sums the blocks into left and right. Voices
// share no state, so the result equals Render up to summation order.
func (p *Pool) RenderParallel(ctx context.Context, left, right []float64) error {
	if len(left) != len(right) {
		return fmt.Errorf("voice pool: left and right buffers must have equal length: %d != %d",
			len(left), len(right))
	}
	n := len(left)

	g, ctx := errgroup.WithContext(ctx)
	for _, s := range p.active {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.left = core.EnsureLen(s.left, n)
			s.right = core.EnsureLen(s.right, n)
			core.Zero(s.left)
			core.Zero(s.right)
			s.voice.Render(s.left, s.right)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, s := range p.active {
		vecmath.AddBlockInPlace(left, s.left)
		vecmath.AddBlockInPlace(right, s.right)
	}
	p.reclaim()
	return nil
}

func (p *Pool) reclaim() {
	kept := p.active[:0]
	for _, s := range p.active {
		if s.voice.Finished() {
			p.free = append(p.free, s)
			p.reclaimed++
			continue
		}
		kept = append(kept, s)
	}
	for i := len(kept); i < len(p.active); i++ {
		p.active[i] = nil
	}
	p.active = kept
}

// Active returns the number of voices currently rendering.
func (p *Pool) Active() int {
	return len(p.active)
}

// Stats returns usage counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Active:    len(p.active),
		Free:      len(p.free),
		Started:   p.started,
		Reclaimed: p.reclaimed,
	}
}
