package pitch_test

import (
	"fmt"

	"github.com/cwbudde/algo-pluck/internal/testutil"
	"github.com/cwbudde/algo-pluck/measure/pitch"
)

func ExampleEstimatePeriod() {
	x := testutil.PulseTrain(2048, 64)
	res, err := pitch.EstimatePeriod(x, pitch.Config{SampleRate: 6400, MinFreq: 50, MaxFreq: 400})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("period=%.1f samples (%.0f Hz)\n", res.PeriodSamples, res.Frequency)
	// Output: period=64.0 samples (100 Hz)
}
