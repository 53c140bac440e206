package main

import (
	"context"
	"errors"
	"math"
	"runtime"

	"github.com/cwbudde/algo-pluck/dsp/core"
	"github.com/cwbudde/algo-pluck/dsp/pluck"
	"github.com/cwbudde/algo-pluck/measure/level"
	"github.com/cwbudde/algo-pluck/measure/pitch"
	"golang.org/x/sync/errgroup"
)

const (
	analysisSkip   = 0.3
	analysisWindow = 8192 // minimum, grown for low notes
)

type noteReport struct {
	index     int
	frequency float64
	delay     int
	expected  float64 // sampleRate / frequency
	measured  float64 // NaN when no period was found
	clarity   float64
	peakDB    float64
	onset     int
}

// analyzeNotes renders every note in isolation, held long enough for the
// excitation to die away, and measures its loop period and peak level.
func analyzeNotes(ctx context.Context, notes []noteEvent, sampleRate float64, opts []pluck.Option) ([]noteReport, error) {
	reports := make([]noteReport, len(notes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, n := range notes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := analyzeNote(n, sampleRate, opts)
			if err != nil {
				return err
			}
			r.index = i
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func analyzeNote(n noteEvent, sampleRate float64, opts []pluck.Option) (noteReport, error) {
	s, err := pluck.New(sampleRate, opts...)
	if err != nil {
		return noteReport{}, err
	}
	s.Configure(n.Params)
	s.Reset()

	f := s.Frequency()
	skip := int(analysisSkip * sampleRate)
	left := make([]float64, skip+analysisLength(sampleRate, f))
	right := make([]float64, len(left))
	s.Render(left, right)

	mono := make([]float64, len(left))
	for i := range mono {
		mono[i] = left[i] + right[i]
	}

	r := noteReport{
		frequency: f,
		delay:     s.DelaySamples(),
		expected:  sampleRate / f,
		measured:  math.NaN(),
		peakDB:    core.LinearToDB(level.StereoPeak(left, right)),
		onset:     level.Onset(mono, 0),
	}

	res, err := pitch.EstimatePeriod(mono[skip:], pitch.Config{
		SampleRate: sampleRate,
		MinFreq:    f / 2,
		MaxFreq:    math.Min(2*f, sampleRate/2),
	})
	switch {
	case err == nil:
		r.measured = res.PeriodSamples
		r.clarity = res.Clarity
	case errors.Is(err, pitch.ErrNoPeriod):
		// Silent notes are reported without a period.
	default:
		return noteReport{}, err
	}
	return r, nil
}

// analysisLength returns the number of frames the period search needs for
// a note at f: two periods of its lowest candidate, f/2.
func analysisLength(sampleRate, f float64) int {
	return max(analysisWindow, 2*int(math.Ceil(sampleRate/(f/2))))
}
