package response

import (
	"math"
	"testing"
)

func TestMagnitudeIdentity(t *testing.T) {
	mags, err := Magnitude(func([]float64) {}, 48000, 256)
	if err != nil {
		t.Fatalf("Magnitude() error = %v", err)
	}

	if len(mags) != 129 {
		t.Fatalf("len(mags) = %d, want 129", len(mags))
	}

	for i, m := range mags {
		if math.Abs(m-1) > 1e-9 {
			t.Fatalf("bin %d: magnitude = %v, want 1", i, m)
		}
	}
}

func TestMagnitudeGain(t *testing.T) {
	mags, err := Magnitude(func(buf []float64) {
		for i := range buf {
			buf[i] *= 0.5
		}
	}, 48000, 128)
	if err != nil {
		t.Fatalf("Magnitude() error = %v", err)
	}

	for i, m := range mags {
		if math.Abs(m-0.5) > 1e-9 {
			t.Fatalf("bin %d: magnitude = %v, want 0.5", i, m)
		}
	}
}

func TestMagnitudeOnePoleLowpass(t *testing.T) {
	const (
		sampleRate = 48000.0
		fftSize    = 1024
		a          = 0.9
	)

	process := func(buf []float64) {
		var y float64
		for i, x := range buf {
			y = a*y + (1-a)*x
			buf[i] = y
		}
	}

	mags, err := Magnitude(process, sampleRate, fftSize)
	if err != nil {
		t.Fatalf("Magnitude() error = %v", err)
	}

	// |H(w)| = (1-a) / |1 - a*e^{-jw}| for the recursion above.
	for _, bin := range []int{1, 32, 256, 511} {
		w := 2 * math.Pi * float64(bin) / fftSize
		den := math.Hypot(1-a*math.Cos(w), a*math.Sin(w))
		want := (1 - a) / den

		if math.Abs(mags[bin]-want) > 1e-6 {
			t.Fatalf("bin %d: magnitude = %v, want %v", bin, mags[bin], want)
		}
	}

	if mags[2] <= mags[400] {
		t.Fatal("lowpass response not monotonically attenuating")
	}
}

func TestMagnitudeValidation(t *testing.T) {
	if _, err := Magnitude(nil, 48000, 64); err == nil {
		t.Fatal("expected error for nil processor")
	}

	if _, err := Magnitude(func([]float64) {}, 0, 64); err == nil {
		t.Fatal("expected error for zero sample rate")
	}

	if _, err := Magnitude(func([]float64) {}, 48000, 100); err == nil {
		t.Fatal("expected error for non-power-of-two size")
	}
}

func TestBinFreq(t *testing.T) {
	if got := BinFreq(48000, 1024, 0); got != 0 {
		t.Fatalf("BinFreq(0) = %v", got)
	}

	if got := BinFreq(48000, 1024, 512); got != 24000 {
		t.Fatalf("BinFreq(512) = %v, want 24000", got)
	}
}

func TestAt(t *testing.T) {
	mags := make([]float64, 513)
	for i := range mags {
		mags[i] = float64(i)
	}

	if got := At(mags, 48000, 1024, 1500); got != 32 {
		t.Fatalf("At(1500 Hz) = %v, want bin 32", got)
	}

	if got := At(mags, 48000, 1024, -10); got != 0 {
		t.Fatalf("At(-10 Hz) = %v, want bin 0", got)
	}

	if got := At(mags, 48000, 1024, 1e9); got != 512 {
		t.Fatalf("At(high) = %v, want last bin", got)
	}
}
