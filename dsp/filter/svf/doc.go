// Package svf implements a nonlinear topology-preserving state-variable
// filter.
//
// The filter solves the implicit trapezoidal integrator equations per
// sample with a warm-started Newton iteration, producing simultaneous
// lowpass, bandpass and highpass outputs. The integrator feedback
// nonlinearity is selectable (linear, tanh or asinh saturation); the
// equation systems and their inverse-Jacobian evaluation live in
// gen_svf.go, maintained by cmd/vagen. A FilterType mixer combines the
// three outputs with the dry input into common composite responses such
// as notch, shelf and allpass.
package svf
