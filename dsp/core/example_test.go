package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-pluck/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithBlockSize(256),
	)
	fmt.Printf("sampleRate=%.0f blockSize=%d release=%d\n", cfg.SampleRate, cfg.BlockSize, cfg.Samples(0.25))
	// Output:
	// sampleRate=44100 blockSize=256 release=11025
}

func ExampleClamp() {
	fmt.Println(core.Clamp(8000, 20, 5000), core.Clamp(440, 20, 5000))
	// Output:
	// 5000 440
}
