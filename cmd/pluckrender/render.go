package main

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/cwbudde/algo-pluck/dsp/core"
	"github.com/cwbudde/algo-pluck/dsp/pluck"
	"github.com/cwbudde/algo-pluck/dsp/voice"
)

type renderConfig struct {
	core.ProcessorConfig
	maxVoices int
	tail      float64
	parallel  bool
	voiceOpts []pluck.Option
}

type renderResult struct {
	left, right []float64
	stats       voice.Stats
	dropped     int
}

type event struct {
	frame int
	note  int
	on    bool
}

func buildEvents(notes []noteEvent, cfg core.ProcessorConfig) ([]event, int) {
	events := make([]event, 0, 2*len(notes))
	last := 0
	for i, n := range notes {
		on := cfg.Samples(n.Start)
		off := max(cfg.Samples(n.Start+n.Duration), on+1)
		events = append(events, event{frame: on, note: i, on: true}, event{frame: off, note: i})
		last = max(last, off)
	}
	// Note-offs sort before note-ons on the same frame so a retriggered
	// note gets a fresh voice.
	sort.SliceStable(events, func(a, b int) bool {
		if events[a].frame != events[b].frame {
			return events[a].frame < events[b].frame
		}
		return !events[a].on && events[b].on
	})
	return events, last
}

// render plays notes through a voice pool with sample-accurate note-on and
// note-off events.
func render(ctx context.Context, notes []noteEvent, cfg renderConfig, logger *slog.Logger) (renderResult, error) {
	pool, err := voice.NewPool(pluck.Factory(cfg.SampleRate, cfg.voiceOpts...), cfg.maxVoices,
		core.WithSampleRate(cfg.SampleRate), core.WithBlockSize(cfg.BlockSize))
	if err != nil {
		return renderResult{}, err
	}

	events, lastOff := buildEvents(notes, cfg.ProcessorConfig)
	total := lastOff + cfg.Samples(cfg.tail)
	res := renderResult{
		left:  make([]float64, total),
		right: make([]float64, total),
	}

	mix := func(from, to int) error {
		if cfg.parallel {
			return pool.RenderParallel(ctx, res.left[from:to], res.right[from:to])
		}
		return pool.Render(res.left[from:to], res.right[from:to])
	}

	next := 0
	for pos := 0; pos < total; {
		if err := ctx.Err(); err != nil {
			return renderResult{}, err
		}
		end := min(pos+cfg.BlockSize, total)
		for pos < end {
			for next < len(events) && events[next].frame <= pos {
				ev := events[next]
				next++
				if ev.on {
					if err := pool.NoteOn(ev.note, notes[ev.note].Params); err != nil {
						if !errors.Is(err, voice.ErrPoolExhausted) {
							return renderResult{}, err
						}
						res.dropped++
						logger.Warn("note dropped", "note", ev.note, "frame", ev.frame, "err", err)
						continue
					}
					logger.Debug("note on", "note", ev.note, "frame", ev.frame,
						"frequency", notes[ev.note].Params.Frequency)
					continue
				}
				if err := pool.NoteOff(ev.note); err != nil {
					if !errors.Is(err, voice.ErrUnknownNote) {
						return renderResult{}, err
					}
					continue
				}
				logger.Debug("note off", "note", ev.note, "frame", ev.frame)
			}

			stop := end
			if next < len(events) && events[next].frame < stop {
				stop = events[next].frame
			}
			if err := mix(pos, stop); err != nil {
				return renderResult{}, err
			}
			pos = stop
		}
	}

	res.stats = pool.Stats()
	if res.stats.Active > 0 {
		logger.Warn("voices still sounding at end of render", "active", res.stats.Active,
			"tailSeconds", cfg.tail)
	}
	return res, nil
}
