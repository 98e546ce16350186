// Package clipper implements a virtual-analog diode clipper stage.
//
// The circuit model is a series resistor driving a capacitor shunted by an
// antiparallel diode pair. Trapezoidal discretization of the node equation
// yields one implicit nonlinear equation per sample, which is solved with a
// scalar Newton-Raphson iteration warm-started from the previous output.
//
// The implicit equation and its analytic derivative live in gen_clipper.go,
// which is produced by cmd/vagen and must not be edited by hand.
package clipper
