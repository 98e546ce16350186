package svf

import (
	"math"
	"testing"
)

func BenchmarkProcessSample(b *testing.B) {
	tests := []struct {
		name   string
		shaper Shaper
	}{
		{name: "linear", shaper: ShaperLinear},
		{name: "tanh", shaper: ShaperTanh},
		{name: "asinh", shaper: ShaperAsinh},
	}

	for _, tc := range tests {
		b.Run(tc.name, func(b *testing.B) {
			f, err := New(48000,
				WithCutoffHz(1800),
				WithResonance(0.6),
				WithDrive(2.0),
				WithShaper(tc.shaper),
			)
			if err != nil {
				b.Fatalf("New() error = %v", err)
			}

			in := 0.0
			step := 2 * math.Pi * 220 / 48000

			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				_, _, _ = f.ProcessSample(math.Sin(in))
				in += step
			}
		})
	}
}

func BenchmarkProcessInPlace1024(b *testing.B) {
	tests := []struct {
		name   string
		shaper Shaper
	}{
		{name: "linear", shaper: ShaperLinear},
		{name: "tanh", shaper: ShaperTanh},
		{name: "asinh", shaper: ShaperAsinh},
	}

	for _, tc := range tests {
		b.Run(tc.name, func(b *testing.B) {
			f, err := New(48000,
				WithCutoffHz(1400),
				WithResonance(0.7),
				WithDrive(2.5),
				WithShaper(tc.shaper),
			)
			if err != nil {
				b.Fatalf("New() error = %v", err)
			}

			buf := make([]float64, 1024)
			for i := range buf {
				buf[i] = 0.7*math.Sin(2*math.Pi*220*float64(i)/48000) + 0.2*math.Sin(2*math.Pi*660*float64(i)/48000)
			}

			b.SetBytes(int64(len(buf) * 8))
			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				f.ProcessInPlace(buf, OutputLowpass)
			}
		})
	}
}
