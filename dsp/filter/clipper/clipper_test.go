package clipper

import (
	"math"
	"os"
	"testing"

	"github.com/cwbudde/algo-va/internal/equations"
	"github.com/cwbudde/algo-va/internal/testutil"
)

func TestGeneratedFileUpToDate(t *testing.T) {
	want, err := equations.ClipperFile()
	if err != nil {
		t.Fatalf("ClipperFile() error = %v", err)
	}

	got, err := os.ReadFile("gen_clipper.go")
	if err != nil {
		t.Fatalf("read gen_clipper.go: %v", err)
	}

	if string(got) != want {
		t.Fatal("gen_clipper.go is out of date, rerun go generate")
	}
}

func TestGeneratedDerivativeMatchesFiniteDifferences(t *testing.T) {
	const h = 1e-7

	eq := diodeClipper[float64]{C1: 0.47, C2: 5.25e-6, Vt: 0.02585, X: 0.8, Vp: 0.1}

	for _, v := range []float64{-0.4, -0.1, 0, 0.05, 0.2, 0.35} {
		_, df := eq.EvalWithDerivative(v)

		fUp, _ := eq.EvalWithDerivative(v + h)
		fDown, _ := eq.EvalWithDerivative(v - h)
		want := (fUp - fDown) / (2 * h)

		if math.Abs(df-want) > 1e-4*(1+math.Abs(want)) {
			t.Fatalf("df(%v) = %v, finite differences give %v", v, df, want)
		}
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
		opts       []Option
	}{
		{name: "zero sample rate", sampleRate: 0},
		{name: "inf sample rate", sampleRate: math.Inf(1)},
		{name: "cutoff above nyquist", sampleRate: 48000, opts: []Option{WithCutoffHz(24000)}},
		{name: "cutoff too low", sampleRate: 48000, opts: []Option{WithCutoffHz(0.1)}},
		{name: "drive too low", sampleRate: 48000, opts: []Option{WithDrive(0.01)}},
		{name: "drive too high", sampleRate: 48000, opts: []Option{WithDrive(1000)}},
		{name: "thermal voltage zero", sampleRate: 48000, opts: []Option{WithThermalVoltage(0)}},
		{name: "saturation current zero", sampleRate: 48000, opts: []Option{WithSaturationCurrent(0)}},
		{name: "negative gain", sampleRate: 48000, opts: []Option{WithOutputGain(-1)}},
		{name: "zero tolerance", sampleRate: 48000, opts: []Option{WithTolerance(0)}},
		{name: "zero iterations", sampleRate: 48000, opts: []Option{WithMaxIterations(0)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.sampleRate, tc.opts...); err == nil {
				t.Fatal("expected constructor error")
			}
		})
	}
}

func TestResidualSatisfied(t *testing.T) {
	f, err := New(48000, WithDrive(4), WithMaxIterations(100), WithTolerance(1e-12))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	input := testutil.DeterministicSine(220, 48000, 0.5, 256)

	for i, x := range input {
		st := f.State()
		v := f.processCore(x)

		vp := st.V + f.c1*(st.X-st.V) - f.c2*math.Sinh(st.V/f.thermalVoltage)
		res := (v - vp) - (f.c1*(x*f.drive-v) - f.c2*math.Sinh(v/f.thermalVoltage))

		if math.Abs(res) > 1e-9 {
			t.Fatalf("sample %d: residual = %v", i, res)
		}
	}

	if n := f.NonConvergedSamples(); n != 0 {
		t.Fatalf("NonConvergedSamples() = %d, want 0", n)
	}
}

func TestClipsLargeInput(t *testing.T) {
	f, err := New(48000, WithDrive(8))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	peak := 0.0
	for _, x := range testutil.DeterministicSine(220, 48000, 1.0, 2048) {
		if y := math.Abs(f.ProcessSample(x)); y > peak {
			peak = y
		}
	}

	if peak > 0.5 {
		t.Fatalf("peak = %v, diode pair should clamp well below the driven input", peak)
	}

	if peak < 1e-3 {
		t.Fatalf("peak = %v, output vanished", peak)
	}
}

func TestOddSymmetry(t *testing.T) {
	pos, err := New(48000, WithDrive(6))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	neg, err := New(48000, WithDrive(6))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for i, x := range testutil.DeterministicSine(330, 48000, 0.7, 256) {
		yp := pos.ProcessSample(x)
		yn := neg.ProcessSample(-x)

		if math.Abs(yp+yn) > 1e-9 {
			t.Fatalf("sample %d: %v vs %v, clipper should be odd", i, yp, yn)
		}
	}
}

func TestStateRoundTrip(t *testing.T) {
	f, err := New(48000, WithDrive(4))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, x := range testutil.DeterministicSine(440, 48000, 0.5, 64) {
		f.ProcessSample(x)
	}

	saved := f.State()
	probe := testutil.DeterministicSine(440, 48000, 0.5, 32)

	first := make([]float64, len(probe))
	for i, x := range probe {
		first[i] = f.ProcessSample(x)
	}

	if err := f.SetState(saved); err != nil {
		t.Fatalf("SetState() error = %v", err)
	}

	for i, x := range probe {
		if again := f.ProcessSample(x); again != first[i] {
			t.Fatalf("sample %d: %v != %v after state restore", i, again, first[i])
		}
	}

	if err := f.SetState(State{V: math.NaN()}); err == nil {
		t.Fatal("expected error for NaN state")
	}
}

func TestProcessToMatchesProcessSample(t *testing.T) {
	mk := func() *Filter {
		f, err := New(48000, WithDrive(4), WithOutputGain(0.5))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		return f
	}

	src := testutil.DeterministicSine(330, 48000, 0.8, 128)

	byBuffer := make([]float64, len(src))
	mk().ProcessTo(byBuffer, src)

	bySample := mk()
	for i, x := range src {
		if y := bySample.ProcessSample(x); math.Abs(y-byBuffer[i]) > 1e-12 {
			t.Fatalf("sample %d: block %v vs sample %v", i, byBuffer[i], y)
		}
	}
}

func TestReset(t *testing.T) {
	f, err := New(48000)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, x := range testutil.DeterministicSine(440, 48000, 0.5, 32) {
		f.ProcessSample(x)
	}

	f.Reset()

	if f.State() != (State{}) {
		t.Fatal("Reset did not clear state")
	}

	if f.NonConvergedSamples() != 0 {
		t.Fatal("Reset did not clear non-convergence counter")
	}
}

func TestNonFiniteInputTreatedAsZero(t *testing.T) {
	f, err := New(48000)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if y := f.ProcessSample(math.Inf(1)); math.IsNaN(y) || math.IsInf(y, 0) {
		t.Fatalf("ProcessSample(Inf) = %v", y)
	}
}

func BenchmarkProcessSample(b *testing.B) {
	f, err := New(48000, WithDrive(6))
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}

	in := 0.0
	step := 2 * math.Pi * 220 / 48000

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		_ = f.ProcessSample(math.Sin(in))
		in += step
	}
}
