// Command pluckrender renders a sequence of plucked-string notes to a
// stereo WAV file and reports the measured loop period of every note.
//
// Usage:
//
//	pluckrender [flags]
//
// The note sequence is a JSON array of events:
//
//	[
//	  {"start": 0, "duration": 0.5, "params": {"frequency": 440, "pan1": -0.5}},
//	  {"start": 0.25, "duration": 1, "params": {"frequency": 660, "sustain": 0.8}}
//	]
//
// Parameters left out keep their defaults; -list-params prints them.
// Without -notes a built-in arpeggio is rendered.
//
// Examples:
//
//	pluckrender -out demo.wav
//	pluckrender -notes song.json -out song.wav -normalize -parallel
//	pluckrender -list-params
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/cwbudde/algo-pluck/dsp/core"
	"github.com/cwbudde/algo-pluck/dsp/pluck"
	dspsignal "github.com/cwbudde/algo-pluck/dsp/signal"
	"github.com/cwbudde/algo-pluck/dsp/voice"
	"github.com/cwbudde/algo-pluck/internal/wavout"
	"github.com/cwbudde/algo-pluck/measure/level"
)

func main() {
	notesPath := flag.String("notes", "", "JSON note sequence (default: built-in arpeggio)")
	outPath := flag.String("out", "pluck.wav", "output WAV path")
	sampleRate := flag.Int("sample-rate", 48000, "render sample rate in Hz")
	blockSize := flag.Int("block", 512, "render block size in frames")
	maxVoices := flag.Int("voices", 16, "polyphony")
	tail := flag.Float64("tail", 1.5, "seconds rendered after the last note-off")
	normalize := flag.Bool("normalize", false, "scale the mix to -peak")
	peak := flag.Float64("peak", 0.98, "target peak for -normalize")
	parallel := flag.Bool("parallel", false, "render voices concurrently")
	seed := flag.Int64("seed", pluck.DefaultSeed, "excitation noise seed")
	noise := flag.String("noise", "pink", "excitation noise: pink or white")
	smoothing := flag.Bool("smoothing", true, "enable output smoothing")
	dither := flag.Bool("dither", false, "apply TPDF dither when writing 16-bit PCM")
	analyze := flag.Bool("analyze", true, "measure per-note period and peak")
	listParams := flag.Bool("list-params", false, "list note parameters and exit")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pluckrender [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders plucked-string notes to a WAV file.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *listParams {
		if err := printParams(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	lvl := slog.LevelInfo
	if *verbose {
		lvl = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := options{
		notesPath:  *notesPath,
		outPath:    *outPath,
		sampleRate: *sampleRate,
		blockSize:  *blockSize,
		maxVoices:  *maxVoices,
		tail:       *tail,
		normalize:  *normalize,
		peak:       *peak,
		parallel:   *parallel,
		seed:       *seed,
		noise:      *noise,
		smoothing:  *smoothing,
		dither:     *dither,
		analyze:    *analyze,
	}
	if err := run(ctx, opts, os.Stdout, logger); err != nil {
		logger.Error("render failed", "err", err)
		os.Exit(1)
	}
}

type options struct {
	notesPath  string
	outPath    string
	sampleRate int
	blockSize  int
	maxVoices  int
	tail       float64
	normalize  bool
	peak       float64
	parallel   bool
	seed       int64
	noise      string
	smoothing  bool
	dither     bool
	analyze    bool
}

func (o options) voiceOptions() ([]pluck.Option, error) {
	var kind pluck.NoiseKind
	switch o.noise {
	case "pink":
		kind = pluck.NoisePink
	case "white":
		kind = pluck.NoiseWhite
	default:
		return nil, fmt.Errorf("unknown noise %q (want pink or white)", o.noise)
	}
	return []pluck.Option{
		pluck.WithSeed(o.seed),
		pluck.WithNoise(kind),
		pluck.WithOutputSmoothing(o.smoothing),
	}, nil
}

func run(ctx context.Context, o options, stdout io.Writer, logger *slog.Logger) error {
	cfg := core.ProcessorConfig{SampleRate: float64(o.sampleRate), BlockSize: o.blockSize}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if o.tail < 0 || math.IsNaN(o.tail) {
		return fmt.Errorf("tail must be >= 0: %f", o.tail)
	}
	voiceOpts, err := o.voiceOptions()
	if err != nil {
		return err
	}

	notes, err := loadNotes(o.notesPath)
	if err != nil {
		return err
	}
	logger.Info("rendering", "notes", len(notes), "sampleRate", o.sampleRate,
		"blockSize", o.blockSize, "voices", o.maxVoices, "parallel", o.parallel)

	res, err := render(ctx, notes, renderConfig{
		ProcessorConfig: cfg,
		maxVoices:       o.maxVoices,
		tail:            o.tail,
		parallel:        o.parallel,
		voiceOpts:       voiceOpts,
	}, logger)
	if err != nil {
		return err
	}

	if o.normalize {
		gain, err := dspsignal.NormalizeStereo(res.left, res.right, o.peak)
		if err != nil {
			return err
		}
		logger.Debug("normalized", "gain", gain)
	}

	mixL := level.Calculate(res.left)
	mixR := level.Calculate(res.right)
	var wavOpts []wavout.Option
	if o.dither {
		wavOpts = append(wavOpts, wavout.WithDither(uint64(o.seed)))
	}
	if err := wavout.WriteFile(o.outPath, res.left, res.right, o.sampleRate, wavOpts...); err != nil {
		return err
	}
	logger.Info("wrote wav", "path", o.outPath,
		"seconds", float64(len(res.left))/cfg.SampleRate,
		"peakDB", math.Max(mixL.Peak_dB, mixR.Peak_dB),
		"rmsDB", math.Max(mixL.RMS_dB, mixR.RMS_dB),
		"started", res.stats.Started, "reclaimed", res.stats.Reclaimed, "dropped", res.dropped)

	if !o.analyze {
		return nil
	}
	reports, err := analyzeNotes(ctx, notes, cfg.SampleRate, voiceOpts)
	if err != nil {
		return err
	}
	return printReports(stdout, reports)
}

func printReports(w io.Writer, reports []noteReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Note\tFreq [Hz]\tDelay\tsr/f\tPeriod\tError\tClarity\tPeak [dB]\tOnset\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "----\t---------\t-----\t----\t------\t-----\t-------\t---------\t-----\n"); err != nil {
		return err
	}
	for _, r := range reports {
		if _, err := fmt.Fprintf(tw, "%d\t%.2f\t%d\t%.2f\t%.2f\t%+.2f\t%.3f\t%.1f\t%d\n",
			r.index,
			r.frequency,
			r.delay,
			r.expected,
			r.measured,
			r.measured-r.expected,
			r.clarity,
			r.peakDB,
			r.onset,
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printParams(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Name\tDefault\tMin\tMax\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "----\t-------\t---\t---\n"); err != nil {
		return err
	}
	for _, r := range voice.Ranges {
		if _, err := fmt.Fprintf(tw, "%s\t%g\t%g\t%g\n", r.Name, r.Default, r.Min, r.Max); err != nil {
			return err
		}
	}
	return tw.Flush()
}
