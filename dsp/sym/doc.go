// Package sym is a small deterministic symbolic-expression kernel for the
// offline equation generator.
//
// It is not general computer algebra: the node set (constants, variables,
// arithmetic, integer powers, and the smooth function family tanh, asinh,
// sinh, cosh, exp, log, sqrt) covers exactly the implicit equations that
// virtual-analog filter design produces. Every expression is differentiable
// with respect to every variable, analytically, via Diff.
//
// Determinism is a hard requirement here: constructors fold constants and
// drop identities eagerly but never reorder operands, String renders a
// canonical form, and CSE numbers its bindings by first occurrence in a
// post-order walk. Identical input trees therefore always produce identical
// output, which the generator relies on for byte-stable emitted code.
package sym
