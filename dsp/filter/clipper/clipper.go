package clipper

//go:generate go run github.com/cwbudde/algo-va/cmd/vagen -only clipper -out ../../..

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-va/dsp/solve"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultCutoffHz          = 7200.0
	defaultDrive             = 1.0
	defaultThermalVoltage    = 0.02585
	defaultSaturationCurrent = 2.52e-9
	defaultOutputGain        = 1.0
	defaultMaxIterations     = 50
	defaultTolerance         = 1e-9

	minCutoffHz          = 1.0
	minDrive             = 0.1
	maxDrive             = 100.0
	minThermalVoltage    = 1e-3
	maxThermalVoltage    = 1.0
	minSaturationCurrent = 1e-18
	maxSaturationCurrent = 1e-3
	minOutputGain        = 0.0
	maxOutputGain        = 24.0
	maxIterCap           = 1000

	// Shunt capacitance of the modeled RC stage. The series resistance is
	// derived from the cutoff, so only the ratio matters for the response.
	capacitanceFarads = 10e-9
)

// Option configures a Filter at construction time.
type Option func(*Filter) error

// WithCutoffHz sets the RC corner frequency of the stage in Hz.
func WithCutoffHz(cutoffHz float64) Option {
	return func(f *Filter) error {
		f.cutoffHz = cutoffHz
		return nil
	}
}

// WithDrive sets the input gain applied before the clipping stage.
func WithDrive(drive float64) Option {
	return func(f *Filter) error {
		f.drive = drive
		return nil
	}
}

// WithThermalVoltage sets the diode thermal voltage in volts. Smaller
// values clip harder.
func WithThermalVoltage(vt float64) Option {
	return func(f *Filter) error {
		f.thermalVoltage = vt
		return nil
	}
}

// WithSaturationCurrent sets the diode saturation current in amperes.
func WithSaturationCurrent(is float64) Option {
	return func(f *Filter) error {
		f.saturationCurrent = is
		return nil
	}
}

// WithOutputGain sets the linear makeup gain applied after the stage.
func WithOutputGain(gain float64) Option {
	return func(f *Filter) error {
		f.outputGain = gain
		return nil
	}
}

// WithMaxIterations caps the per-sample Newton iteration count.
func WithMaxIterations(n int) Option {
	return func(f *Filter) error {
		if n < 1 || n > maxIterCap {
			return fmt.Errorf("clipper: max iterations must be in [1, %d]: %d", maxIterCap, n)
		}

		f.maxIterations = n

		return nil
	}
}

// WithTolerance sets the absolute convergence tolerance of the per-sample
// Newton solve.
func WithTolerance(tol float64) Option {
	return func(f *Filter) error {
		if !isFinite(tol) || tol <= 0 {
			return fmt.Errorf("clipper: tolerance must be finite and > 0: %v", tol)
		}

		f.tolerance = tol

		return nil
	}
}

// State is the full processing state of a Filter. V is the capacitor
// voltage and X the driven input, both from the previous sample.
type State struct {
	V float64
	X float64
}

// Filter is a mono diode clipper stage. Not safe for concurrent use.
type Filter struct {
	sampleRate        float64
	cutoffHz          float64
	drive             float64
	thermalVoltage    float64
	saturationCurrent float64
	outputGain        float64
	maxIterations     int
	tolerance         float64

	c1 float64
	c2 float64
	nr solve.NewtonRaphson[float64]

	state        State
	nonConverged int
}

// New constructs a diode clipper for the given sample rate. Nil options
// are skipped.
func New(sampleRate float64, opts ...Option) (*Filter, error) {
	f := &Filter{
		sampleRate:        sampleRate,
		cutoffHz:          defaultCutoffHz,
		drive:             defaultDrive,
		thermalVoltage:    defaultThermalVoltage,
		saturationCurrent: defaultSaturationCurrent,
		outputGain:        defaultOutputGain,
		maxIterations:     defaultMaxIterations,
		tolerance:         defaultTolerance,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(f); err != nil {
			return nil, err
		}
	}

	if err := f.rebuild(); err != nil {
		return nil, err
	}

	return f, nil
}

// SampleRate returns the configured sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// CutoffHz returns the RC corner frequency in Hz.
func (f *Filter) CutoffHz() float64 { return f.cutoffHz }

// Drive returns the input gain.
func (f *Filter) Drive() float64 { return f.drive }

// ThermalVoltage returns the diode thermal voltage in volts.
func (f *Filter) ThermalVoltage() float64 { return f.thermalVoltage }

// SaturationCurrent returns the diode saturation current in amperes.
func (f *Filter) SaturationCurrent() float64 { return f.saturationCurrent }

// OutputGain returns the makeup gain.
func (f *Filter) OutputGain() float64 { return f.outputGain }

// MaxIterations returns the per-sample Newton iteration cap.
func (f *Filter) MaxIterations() int { return f.maxIterations }

// Tolerance returns the Newton convergence tolerance.
func (f *Filter) Tolerance() float64 { return f.tolerance }

// NonConvergedSamples returns the number of samples since the last Reset
// for which the Newton solve did not converge.
func (f *Filter) NonConvergedSamples() int { return f.nonConverged }

// SetSampleRate updates the sample rate and recomputes coefficients.
func (f *Filter) SetSampleRate(sampleRate float64) error {
	prev := f.sampleRate
	f.sampleRate = sampleRate

	if err := f.rebuild(); err != nil {
		f.sampleRate = prev
		return err
	}

	return nil
}

// SetCutoffHz updates the RC corner frequency and recomputes coefficients.
func (f *Filter) SetCutoffHz(cutoffHz float64) error {
	prev := f.cutoffHz
	f.cutoffHz = cutoffHz

	if err := f.rebuild(); err != nil {
		f.cutoffHz = prev
		return err
	}

	return nil
}

// SetDrive updates the input gain.
func (f *Filter) SetDrive(drive float64) error {
	if err := validateFiniteRange(drive, minDrive, maxDrive, "drive"); err != nil {
		return err
	}

	f.drive = drive

	return nil
}

// SetThermalVoltage updates the diode thermal voltage.
func (f *Filter) SetThermalVoltage(vt float64) error {
	prev := f.thermalVoltage
	f.thermalVoltage = vt

	if err := f.rebuild(); err != nil {
		f.thermalVoltage = prev
		return err
	}

	return nil
}

// SetSaturationCurrent updates the diode saturation current.
func (f *Filter) SetSaturationCurrent(is float64) error {
	prev := f.saturationCurrent
	f.saturationCurrent = is

	if err := f.rebuild(); err != nil {
		f.saturationCurrent = prev
		return err
	}

	return nil
}

// SetOutputGain updates the makeup gain.
func (f *Filter) SetOutputGain(gain float64) error {
	if err := validateFiniteRange(gain, minOutputGain, maxOutputGain, "output gain"); err != nil {
		return err
	}

	f.outputGain = gain

	return nil
}

// Reset clears the processing state and the non-convergence counter.
func (f *Filter) Reset() {
	f.state = State{}
	f.nonConverged = 0
}

// State returns a copy of the processing state.
func (f *Filter) State() State { return f.state }

// SetState restores a previously captured processing state.
func (f *Filter) SetState(state State) error {
	if !isFinite(state.V) || !isFinite(state.X) {
		return fmt.Errorf("clipper: state must be finite: %+v", state)
	}

	f.state = state

	return nil
}

// ProcessSample clips one input sample.
func (f *Filter) ProcessSample(input float64) float64 {
	return f.processCore(input) * f.outputGain
}

// ProcessInPlace clips buf in place.
func (f *Filter) ProcessInPlace(buf []float64) {
	f.ProcessTo(buf, buf)
}

// ProcessTo clips src into dst. The slices may alias. It panics when dst
// is shorter than src.
func (f *Filter) ProcessTo(dst, src []float64) {
	n := len(src)
	if n == 0 {
		return
	}

	_ = dst[n-1]

	for i := 0; i < n; i++ {
		dst[i] = f.processCore(src[i])
	}

	if f.outputGain != 1 {
		vecmath.ScaleBlock(dst[:n], dst[:n], f.outputGain)
	}
}

func (f *Filter) processCore(input float64) float64 {
	if !isFinite(input) {
		input = 0
	}

	x := input * f.drive

	// History term of the trapezoidal discretization, evaluated at the
	// previous sample's converged voltage.
	vp := f.state.V + f.c1*(f.state.X-f.state.V) - f.c2*math.Sinh(f.state.V/f.thermalVoltage)

	eq := diodeClipper[float64]{
		C1: f.c1,
		C2: f.c2,
		Vt: f.thermalVoltage,
		X:  x,
		Vp: vp,
	}

	res, err := solve.Solve(f.nr, eq, f.state.V)
	if err != nil || !isFinite(res.Value) {
		f.nonConverged++
		return f.state.V
	}

	f.state = State{V: res.Value, X: x}

	return res.Value
}

func (f *Filter) rebuild() error {
	if err := validateFiniteRange(f.sampleRate, 1, math.Inf(1), "sample rate"); err != nil {
		return err
	}

	if err := validateFiniteRange(f.cutoffHz, minCutoffHz, math.Inf(1), "cutoff"); err != nil {
		return err
	}

	if err := validateFiniteRange(f.drive, minDrive, maxDrive, "drive"); err != nil {
		return err
	}

	if err := validateFiniteRange(f.thermalVoltage, minThermalVoltage, maxThermalVoltage, "thermal voltage"); err != nil {
		return err
	}

	if err := validateFiniteRange(f.saturationCurrent, minSaturationCurrent, maxSaturationCurrent, "saturation current"); err != nil {
		return err
	}

	if err := validateFiniteRange(f.outputGain, minOutputGain, maxOutputGain, "output gain"); err != nil {
		return err
	}

	nyquist := f.sampleRate * 0.5
	if f.cutoffHz >= nyquist {
		return fmt.Errorf("clipper: cutoff must be < Nyquist (%f Hz): %f", nyquist, f.cutoffHz)
	}

	f.c1 = math.Pi / f.sampleRate * f.cutoffHz
	f.c2 = f.saturationCurrent / (capacitanceFarads * f.sampleRate)
	f.nr = solve.New[float64](f.maxIterations, f.tolerance)

	return nil
}

func validateFiniteRange(value, min, max float64, name string) error {
	if !isFinite(value) {
		return fmt.Errorf("clipper: %s must be finite: %v", name, value)
	}

	if value < min || value > max {
		return fmt.Errorf("clipper: %s must be in [%g, %g]: %f", name, min, max, value)
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
