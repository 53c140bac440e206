package pluck

import (
	"testing"

	"github.com/cwbudde/algo-pluck/dsp/voice"
)

func BenchmarkStringRender(b *testing.B) {
	s, err := New(48000)
	if err != nil {
		b.Fatal(err)
	}
	p := voice.DefaultParams()
	p.Frequency = 440
	s.Configure(p)
	s.Reset()

	left := make([]float64, 512)
	right := make([]float64, 512)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Render(left, right)
	}
}
