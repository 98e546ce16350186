// Package solve implements Newton-Raphson root finding for the implicit
// equations that virtual-analog filters produce, in scalar and fixed
// three-dimensional form.
//
// Equations supply both the residual and its derivative in a single call
// (Differentiable), or the residual vector together with the already
// inverted Jacobian (MultiDifferentiable3); generated equation code shares
// subexpressions between the two, which is why they are evaluated together.
//
// The solver is deliberately real-time safe: iteration count is hard
// bounded, no call allocates, and the only failure mode is
// ErrMaxIterations. A derivative of exactly zero or a non-finite update is
// reported the same way instead of letting NaN or Inf propagate into the
// audio path.
package solve
