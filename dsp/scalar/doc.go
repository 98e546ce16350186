// Package scalar provides the generic floating-point numerics shared by the
// solver packages and by generated equation code.
//
// The Real constraint covers float32 and float64, so a single generated
// equation artifact serves both precisions. The function set mirrors what
// generated code needs: hyperbolic shapers (Tanh, Asinh, Sinh, Cosh),
// exponentials, and small helpers for range and finiteness checks.
//
// Building with the fastmath tag replaces Tanh and Exp with polynomial
// approximations from algo-approx for lower CPU use at reduced accuracy.
package scalar
