package svf

//go:generate go run github.com/cwbudde/algo-va/cmd/vagen -only svf -out ../../..

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-va/dsp/enums"
	"github.com/cwbudde/algo-va/dsp/linalg"
	"github.com/cwbudde/algo-va/dsp/scalar"
	"github.com/cwbudde/algo-va/dsp/solve"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultCutoffHz      = 1000.0
	defaultResonance     = 0.5
	defaultDrive         = 1.0
	defaultOutputGain    = 1.0
	defaultMaxIterations = 10
	defaultTolerance     = 1e-4

	minCutoffHz   = 1.0
	maxResonance  = 1.0
	minDrive      = 0.1
	maxDrive      = 24.0
	minOutputGain = 0.0
	maxOutputGain = 24.0
	maxIterCap    = 1000
)

// Shaper selects the integrator feedback nonlinearity.
type Shaper int

const (
	// ShaperLinear disables saturation. The system is linear and the
	// solver converges in a single step.
	ShaperLinear Shaper = iota
	// ShaperTanh saturates integrator feedback with tanh(drive*v)/drive.
	ShaperTanh
	// ShaperAsinh saturates integrator feedback with asinh(drive*v)/drive,
	// a softer curve than tanh.
	ShaperAsinh

	numShapers
)

func (s Shaper) String() string {
	switch s {
	case ShaperLinear:
		return "linear"
	case ShaperTanh:
		return "tanh"
	case ShaperAsinh:
		return "asinh"
	default:
		return "unknown"
	}
}

// EnumCount reports the number of shaper variants.
func (s Shaper) EnumCount() int { return int(numShapers) }

// Output identifies one of the three simultaneous filter outputs.
type Output int

const (
	OutputLowpass Output = iota
	OutputBandpass
	OutputHighpass

	numOutputs
)

func (o Output) String() string {
	switch o {
	case OutputLowpass:
		return "lowpass"
	case OutputBandpass:
		return "bandpass"
	case OutputHighpass:
		return "highpass"
	default:
		return "unknown"
	}
}

// EnumCount reports the number of filter outputs.
func (o Output) EnumCount() int { return int(numOutputs) }

// Param identifies a runtime-settable filter parameter.
type Param int

const (
	ParamCutoff Param = iota
	ParamResonance
	ParamDrive

	numParams
)

func (p Param) String() string {
	switch p {
	case ParamCutoff:
		return "cutoff"
	case ParamResonance:
		return "resonance"
	case ParamDrive:
		return "drive"
	default:
		return "unknown"
	}
}

// EnumCount reports the number of filter parameters.
func (p Param) EnumCount() int { return int(numParams) }

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	cutoffHz      float64
	resonance     float64
	drive         float64
	shaper        Shaper
	outputGain    float64
	maxIterations int
	tolerance     float64
}

func defaultConfig() config {
	return config{
		cutoffHz:      defaultCutoffHz,
		resonance:     defaultResonance,
		drive:         defaultDrive,
		shaper:        ShaperLinear,
		outputGain:    defaultOutputGain,
		maxIterations: defaultMaxIterations,
		tolerance:     defaultTolerance,
	}
}

// WithCutoffHz sets cutoff in Hz. Must be finite, >= 1 and below Nyquist.
func WithCutoffHz(cutoffHz float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(cutoffHz, minCutoffHz, math.Inf(1), "cutoff"); err != nil {
			return err
		}

		cfg.cutoffHz = cutoffHz

		return nil
	}
}

// WithResonance sets resonance in [0, 1]. Damping is 1 - resonance.
func WithResonance(resonance float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(resonance, 0, maxResonance, "resonance"); err != nil {
			return err
		}

		cfg.resonance = resonance

		return nil
	}
}

// WithDrive sets nonlinearity drive in [0.1, 24]. Ignored by ShaperLinear.
func WithDrive(drive float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(drive, minDrive, maxDrive, "drive"); err != nil {
			return err
		}

		cfg.drive = drive

		return nil
	}
}

// WithShaper selects the integrator nonlinearity.
func WithShaper(shaper Shaper) Option {
	return func(cfg *config) error {
		if !validShaper(shaper) {
			return fmt.Errorf("svf: invalid shaper: %d", shaper)
		}

		cfg.shaper = shaper

		return nil
	}
}

// WithOutputGain sets linear output gain in [0, 24], applied to all
// outputs.
func WithOutputGain(gain float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(gain, minOutputGain, maxOutputGain, "output gain"); err != nil {
			return err
		}

		cfg.outputGain = gain

		return nil
	}
}

// WithMaxIterations caps the per-sample Newton iteration count.
func WithMaxIterations(n int) Option {
	return func(cfg *config) error {
		if n < 1 || n > maxIterCap {
			return fmt.Errorf("svf: max iterations must be in [1, %d]: %d", maxIterCap, n)
		}

		cfg.maxIterations = n

		return nil
	}
}

// WithTolerance sets the absolute convergence tolerance on the Newton
// update. Must be finite and > 0.
func WithTolerance(tolerance float64) Option {
	return func(cfg *config) error {
		if !isFinite(tolerance) || tolerance <= 0 {
			return fmt.Errorf("svf: tolerance must be > 0 and finite: %v", tolerance)
		}

		cfg.tolerance = tolerance

		return nil
	}
}

// State contains explicit filter runtime state for save/restore workflows.
// S1 and S2 are the integrator states; the output fields hold the last
// converged sample and seed the next Newton solve.
type State struct {
	S1       float64
	S2       float64
	Lowpass  float64
	Bandpass float64
	Highpass float64
}

// Filter is a nonlinear topology-preserving state-variable filter.
//
// Every sample solves the implicit trapezoidal equations for the three
// simultaneous outputs with a Newton iteration, warm-started from the
// previous sample's solution. On non-convergence the previous converged
// outputs are held and the integrator state is left untouched; affected
// samples are counted via NonConvergedSamples.
type Filter struct {
	sampleRate float64

	cutoffHz      float64
	resonance     float64
	drive         float64
	shaper        Shaper
	outputGain    float64
	maxIterations int
	tolerance     float64

	g float64
	r float64

	nr solve.NewtonRaphson[float64]

	state        State
	nonConverged int
}

// New constructs a nonlinear state-variable filter.
func New(sampleRate float64, opts ...Option) (*Filter, error) {
	if !isFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("svf: sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	f := &Filter{
		sampleRate:    sampleRate,
		cutoffHz:      cfg.cutoffHz,
		resonance:     cfg.resonance,
		drive:         cfg.drive,
		shaper:        cfg.shaper,
		outputGain:    cfg.outputGain,
		maxIterations: cfg.maxIterations,
		tolerance:     cfg.tolerance,
	}

	if err := f.rebuild(); err != nil {
		return nil, err
	}

	return f, nil
}

// SampleRate returns the sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// CutoffHz returns the cutoff frequency in Hz.
func (f *Filter) CutoffHz() float64 { return f.cutoffHz }

// Resonance returns the resonance amount.
func (f *Filter) Resonance() float64 { return f.resonance }

// Drive returns the nonlinearity drive.
func (f *Filter) Drive() float64 { return f.drive }

// Shaper returns the integrator nonlinearity.
func (f *Filter) Shaper() Shaper { return f.shaper }

// OutputGain returns the linear output gain.
func (f *Filter) OutputGain() float64 { return f.outputGain }

// MaxIterations returns the per-sample Newton iteration cap.
func (f *Filter) MaxIterations() int { return f.maxIterations }

// Tolerance returns the Newton convergence tolerance.
func (f *Filter) Tolerance() float64 { return f.tolerance }

// NonConvergedSamples reports how many samples failed to converge since
// construction or the last Reset.
func (f *Filter) NonConvergedSamples() int { return f.nonConverged }

// SetSampleRate updates sample rate and rebuilds coefficients.
func (f *Filter) SetSampleRate(sampleRate float64) error {
	if !isFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("svf: sample rate must be > 0 and finite: %f", sampleRate)
	}

	f.sampleRate = sampleRate

	return f.rebuild()
}

// SetCutoffHz updates cutoff and rebuilds coefficients.
func (f *Filter) SetCutoffHz(cutoffHz float64) error {
	if err := validateFiniteRange(cutoffHz, minCutoffHz, math.Inf(1), "cutoff"); err != nil {
		return err
	}

	f.cutoffHz = cutoffHz

	return f.rebuild()
}

// SetResonance updates resonance and rebuilds coefficients.
func (f *Filter) SetResonance(resonance float64) error {
	if err := validateFiniteRange(resonance, 0, maxResonance, "resonance"); err != nil {
		return err
	}

	f.resonance = resonance

	return f.rebuild()
}

// SetDrive updates the nonlinearity drive.
func (f *Filter) SetDrive(drive float64) error {
	if err := validateFiniteRange(drive, minDrive, maxDrive, "drive"); err != nil {
		return err
	}

	f.drive = drive

	return nil
}

// SetShaper switches the integrator nonlinearity. Filter state carries
// over.
func (f *Filter) SetShaper(shaper Shaper) error {
	if !validShaper(shaper) {
		return fmt.Errorf("svf: invalid shaper: %d", shaper)
	}

	f.shaper = shaper

	return nil
}

// SetOutputGain updates the linear output gain.
func (f *Filter) SetOutputGain(gain float64) error {
	if err := validateFiniteRange(gain, minOutputGain, maxOutputGain, "output gain"); err != nil {
		return err
	}

	f.outputGain = gain

	return nil
}

// SetParam updates one runtime parameter through the Param enum.
func (f *Filter) SetParam(param Param, value float64) error {
	switch param {
	case ParamCutoff:
		return f.SetCutoffHz(value)
	case ParamResonance:
		return f.SetResonance(value)
	case ParamDrive:
		return f.SetDrive(value)
	default:
		return fmt.Errorf("svf: invalid parameter: %d", param)
	}
}

// Reset clears filter state and the non-convergence counter.
func (f *Filter) Reset() {
	f.state = State{}
	f.nonConverged = 0
}

// State returns a copy of the current processor state.
func (f *Filter) State() State {
	return f.state
}

// SetState restores an externally saved processor state.
func (f *Filter) SetState(state State) error {
	if !stateIsFinite(state) {
		return fmt.Errorf("svf: state contains NaN or Inf")
	}

	f.state = state

	return nil
}

// LastOutputs returns the most recent converged outputs keyed by Output.
func (f *Filter) LastOutputs() enums.Map[Output, float64] {
	m := enums.NewMap[Output, float64]()
	m.Set(OutputLowpass, f.state.Lowpass)
	m.Set(OutputBandpass, f.state.Bandpass)
	m.Set(OutputHighpass, f.state.Highpass)

	return m
}

// ProcessSample processes one sample and returns the three simultaneous
// outputs with output gain applied.
func (f *Filter) ProcessSample(input float64) (lp, bp, hp float64) {
	lp, bp, hp = f.processCore(input)
	return lp * f.outputGain, bp * f.outputGain, hp * f.outputGain
}

// ProcessInPlace processes a mono buffer in place, keeping the selected
// output.
func (f *Filter) ProcessInPlace(buf []float64, output Output) {
	f.ProcessTo(buf, buf, output)
}

// ProcessTo processes src into dst, keeping the selected output. Both
// slices must have the same length.
func (f *Filter) ProcessTo(dst, src []float64, output Output) {
	n := len(src)
	if n == 0 {
		return
	}

	_ = dst[n-1]

	for i, x := range src {
		lp, bp, hp := f.processCore(x)

		switch output {
		case OutputBandpass:
			dst[i] = bp
		case OutputHighpass:
			dst[i] = hp
		default:
			dst[i] = lp
		}
	}

	if f.outputGain != 1 {
		vecmath.ScaleBlock(dst[:n], dst[:n], f.outputGain)
	}
}

func (f *Filter) processCore(input float64) (lp, bp, hp float64) {
	if !isFinite(input) {
		input = 0
	}

	guess := linalg.Vec3[float64]{f.state.Lowpass, f.state.Bandpass, f.state.Highpass}

	var (
		res solve.Result3[float64]
		err error
	)

	switch f.shaper {
	case ShaperTanh:
		eq := svfTanh[float64]{G: f.g, R: f.r, K: f.drive, X: input, S1: f.state.S1, S2: f.state.S2}
		res, err = solve.Solve3(f.nr, eq, guess)
	case ShaperAsinh:
		eq := svfAsinh[float64]{G: f.g, R: f.r, K: f.drive, X: input, S1: f.state.S1, S2: f.state.S2}
		res, err = solve.Solve3(f.nr, eq, guess)
	default:
		eq := svfLinear[float64]{G: f.g, R: f.r, X: input, S1: f.state.S1, S2: f.state.S2}
		res, err = solve.Solve3(f.nr, eq, guess)
	}

	if err != nil || !res.Value.IsFinite() {
		f.nonConverged++
		return f.state.Lowpass, f.state.Bandpass, f.state.Highpass
	}

	lp, bp, hp = res.Value[0], res.Value[1], res.Value[2]

	// Trapezoidal integrator state update: s' = 2y - s expressed through
	// the saturated integrator inputs.
	f.state.S1 = f.g*f.saturate(hp) + bp
	f.state.S2 = f.g*f.saturate(bp) + lp
	f.state.Lowpass = lp
	f.state.Bandpass = bp
	f.state.Highpass = hp

	return lp, bp, hp
}

// saturate mirrors the nonlinearity baked into the generated equations.
func (f *Filter) saturate(v float64) float64 {
	switch f.shaper {
	case ShaperTanh:
		return scalar.Tanh(f.drive*v) / f.drive
	case ShaperAsinh:
		return scalar.Asinh(f.drive*v) / f.drive
	default:
		return v
	}
}

func (f *Filter) rebuild() error {
	if err := validateFiniteRange(f.cutoffHz, minCutoffHz, math.Inf(1), "cutoff"); err != nil {
		return err
	}

	if err := validateFiniteRange(f.resonance, 0, maxResonance, "resonance"); err != nil {
		return err
	}

	if err := validateFiniteRange(f.drive, minDrive, maxDrive, "drive"); err != nil {
		return err
	}

	if err := validateFiniteRange(f.outputGain, minOutputGain, maxOutputGain, "output gain"); err != nil {
		return err
	}

	if !validShaper(f.shaper) {
		return fmt.Errorf("svf: invalid shaper: %d", f.shaper)
	}

	nyquist := f.sampleRate * 0.5
	if f.cutoffHz >= nyquist {
		return fmt.Errorf("svf: cutoff must be < Nyquist (%f Hz): %f", nyquist, f.cutoffHz)
	}

	f.g = math.Pi / f.sampleRate * f.cutoffHz
	f.r = 1 - f.resonance
	f.nr = solve.New[float64](f.maxIterations, f.tolerance)

	return nil
}

// Stereo is a helper that runs one filter state per channel.
type Stereo struct {
	left  *Filter
	right *Filter
}

// NewStereo constructs a stereo helper with independent left/right state.
func NewStereo(sampleRate float64, opts ...Option) (*Stereo, error) {
	left, err := New(sampleRate, opts...)
	if err != nil {
		return nil, err
	}

	right, err := New(sampleRate, opts...)
	if err != nil {
		return nil, err
	}

	return &Stereo{left: left, right: right}, nil
}

// Left returns the left-channel filter.
func (s *Stereo) Left() *Filter { return s.left }

// Right returns the right-channel filter.
func (s *Stereo) Right() *Filter { return s.right }

// Reset clears both channel states.
func (s *Stereo) Reset() {
	s.left.Reset()
	s.right.Reset()
}

// ProcessSample processes one stereo sample frame, keeping the selected
// output.
func (s *Stereo) ProcessSample(leftIn, rightIn float64, output Output) (leftOut, rightOut float64) {
	lp, bp, hp := s.left.ProcessSample(leftIn)
	l := pickOutput(output, lp, bp, hp)

	lp, bp, hp = s.right.ProcessSample(rightIn)
	r := pickOutput(output, lp, bp, hp)

	return l, r
}

// ProcessInPlace processes stereo planar buffers in place, keeping the
// selected output.
func (s *Stereo) ProcessInPlace(left, right []float64, output Output) {
	s.left.ProcessInPlace(left, output)
	s.right.ProcessInPlace(right, output)
}

func pickOutput(output Output, lp, bp, hp float64) float64 {
	switch output {
	case OutputBandpass:
		return bp
	case OutputHighpass:
		return hp
	default:
		return lp
	}
}

func validShaper(shaper Shaper) bool {
	return shaper >= ShaperLinear && shaper < numShapers
}

func validateFiniteRange(value, min, max float64, name string) error {
	if !isFinite(value) {
		return fmt.Errorf("svf: %s must be finite: %v", name, value)
	}

	if value < min || value > max {
		return fmt.Errorf("svf: %s must be in [%g, %g]: %f", name, min, max, value)
	}

	return nil
}

func stateIsFinite(state State) bool {
	return isFinite(state.S1) && isFinite(state.S2) &&
		isFinite(state.Lowpass) && isFinite(state.Bandpass) && isFinite(state.Highpass)
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
