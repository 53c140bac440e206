package level_test

import (
	"fmt"

	"github.com/cwbudde/algo-pluck/measure/level"
)

func ExampleCalculate() {
	s := level.Calculate([]float64{1, -1, 1, -1})
	fmt.Printf("rms=%.1f zc=%d\n", s.RMS, s.ZeroCrossings)

	// Output:
	// rms=1.0 zc=3
}

func ExampleMeter() {
	m := level.NewMeter()
	m.Update([]float64{0.5, -1})
	m.Update([]float64{0.25})
	s := m.Result()
	fmt.Printf("len=%d peak=%.2f at %d\n", s.Length, s.Peak, s.PeakPos)

	// Output:
	// len=3 peak=1.00 at 1
}
