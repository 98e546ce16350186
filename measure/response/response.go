// Package response measures the frequency response of sample processors.
//
// A processor is any function that filters a buffer in place. Magnitude
// drives it with a unit impulse, transforms the impulse response and
// returns the single-sided magnitude spectrum, which is enough to check
// passband and stopband behavior of a filter under test.
package response

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Magnitude captures the impulse response of process and returns the
// single-sided magnitude spectrum with fftSize/2+1 bins. fftSize must be
// a power of two >= 2; the processor sees one buffer of fftSize samples
// whose first sample is 1.
func Magnitude(process func([]float64), sampleRate float64, fftSize int) ([]float64, error) {
	if process == nil {
		return nil, fmt.Errorf("response: process function is nil")
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("response: sample rate must be > 0 and finite: %f", sampleRate)
	}

	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("response: fft size must be a power of two >= 2: %d", fftSize)
	}

	impulse := make([]float64, fftSize)
	impulse[0] = 1

	process(impulse)

	inData := make([]complex128, fftSize)
	for i, v := range impulse {
		inData[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: fft plan: %v", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, inData); err != nil {
		return nil, fmt.Errorf("response: forward fft: %v", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for i := 0; i < bins; i++ {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mags := make([]float64, bins)
	vecmath.Magnitude(mags, re, im)

	return mags, nil
}

// BinFreq returns the center frequency in Hz of the given bin.
func BinFreq(sampleRate float64, fftSize, bin int) float64 {
	return float64(bin) * sampleRate / float64(fftSize)
}

// At returns the magnitude at the bin closest to freqHz, clamped to the
// valid bin range.
func At(mags []float64, sampleRate float64, fftSize int, freqHz float64) float64 {
	bin := int(math.Round(freqHz * float64(fftSize) / sampleRate))

	if bin < 0 {
		bin = 0
	}

	if bin >= len(mags) {
		bin = len(mags) - 1
	}

	return mags[bin]
}
