// Package enums maps closed, int-backed enum types onto a dense zero-based
// index space, and provides per-variant storage addressed by that index.
//
// A participating enum declares its variants with iota, implements String
// for its display label, and reports its variant count via EnumCount:
//
//	type Output int
//
//	const (
//		OutputLowpass Output = iota
//		OutputBandpass
//		OutputHighpass
//
//		numOutputs
//	)
//
//	func (o Output) EnumCount() int { return int(numOutputs) }
//
// The index mapping is a bijection: ToIndex and FromIndex invert each other
// over [0, Count), and both panic on values outside that range, since such a
// value indicates a logic error in the caller rather than a runtime
// condition.
package enums
