package svf

// FilterType names a composite response mixed from the dry input and the
// three simultaneous filter outputs.
type FilterType int

const (
	TypeBypass FilterType = iota
	TypeLowpass
	TypeBandpass
	TypeHighpass
	TypeLowshelf
	TypeHighshelf
	TypePeakSharp
	TypePeakShelf
	TypeNotch
	TypeAllpass

	numFilterTypes
)

func (ft FilterType) String() string {
	switch ft {
	case TypeBypass:
		return "bypass"
	case TypeLowpass:
		return "lowpass"
	case TypeBandpass:
		return "bandpass"
	case TypeHighpass:
		return "highpass"
	case TypeLowshelf:
		return "lowshelf"
	case TypeHighshelf:
		return "highshelf"
	case TypePeakSharp:
		return "peak_sharp"
	case TypePeakShelf:
		return "peak_shelf"
	case TypeNotch:
		return "notch"
	case TypeAllpass:
		return "allpass"
	default:
		return "unknown"
	}
}

// EnumCount reports the number of filter types.
func (ft FilterType) EnumCount() int { return int(numFilterTypes) }

// MixCoefficients returns the weights for (input, lp, bp, hp) realizing
// the filter type. amp is the linear shelf or peak amplitude; types
// without an amplitude ignore it.
func (ft FilterType) MixCoefficients(amp float64) [4]float64 {
	g := amp - 1

	switch ft {
	case TypeBypass:
		return [4]float64{1, 0, 0, 0}
	case TypeLowpass:
		return [4]float64{0, 1, 0, 0}
	case TypeBandpass:
		return [4]float64{0, 0, 1, 0}
	case TypeHighpass:
		return [4]float64{0, 0, 0, 1}
	case TypeLowshelf:
		return [4]float64{1, g, 0, 0}
	case TypeHighshelf:
		return [4]float64{1, 0, 0, g}
	case TypePeakSharp:
		return [4]float64{0, 1, 0, -1}
	case TypePeakShelf:
		return [4]float64{1, 0, g, 0}
	case TypeNotch:
		return [4]float64{1, 0, -1, 1}
	case TypeAllpass:
		return [4]float64{1, 0, -2, 0}
	default:
		return [4]float64{}
	}
}

// Mix combines one dry input sample with the three filter outputs using
// the type's coefficients.
func (ft FilterType) Mix(amp, input, lp, bp, hp float64) float64 {
	k := ft.MixCoefficients(amp)
	return k[0]*input + k[1]*lp + k[2]*bp + k[3]*hp
}
