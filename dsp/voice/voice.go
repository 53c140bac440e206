package voice

// Voice is one live note instance.
type Voice interface {
	// ProduceSample returns the next stereo frame.
	ProduceSample() (left, right float64)
	// Configure recomputes derived state from clamped control values.
	// It is called before Reset on every note-on.
	Configure(p Params)
	// Reset restarts all envelopes and clears signal state.
	Reset()
	// TriggerRelease starts the release phase (note-off).
	TriggerRelease()
	// Finished reports that the voice is silent and may be reclaimed.
	Finished() bool
}

// Renderer is a Voice that can also render whole blocks, adding its output
// into left and right.
type Renderer interface {
	Voice
	Render(left, right []float64)
}

// Factory allocates a new voice. Pools call it only at construction time.
type Factory func() (Renderer, error)
