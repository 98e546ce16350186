// Package codegen turns symbolic equation systems into Go source.
//
// An Equation pairs one or three residual expressions with named unknowns
// and an ordered parameter list. GenerateDifferentiable emits a generic
// struct whose EvalWithDerivative method evaluates the residual and its
// analytic derivative through a shared common-subexpression binding
// sequence; GenerateMultiDifferentiable3 does the same for three coupled
// residuals, emitting the full Jacobian and inverting it at run time.
// GenerateFile wraps units into a complete source file. Output is a
// deterministic function of the input, so generated files can be checked
// in and re-verified byte for byte.
package codegen
