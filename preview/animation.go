package preview

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"time"

	"github.com/kettek/apng"
)

var _ = fmt.Print

// Time each frame of a comparison is shown for
const CompareDelay = 500 * time.Millisecond

// Compare builds an endlessly looping animation that switches between
// swatches of the given colors, typically a queried color and the color of
// the notation it was matched to.
func Compare(colors []color.Color, size, radius int, delay time.Duration) (ans apng.APNG) {
	num, den := as_fraction(delay)
	for _, c := range colors {
		ans.Frames = append(ans.Frames, apng.Frame{
			Image: Swatch(c, size, radius), DisposeOp: apng.DISPOSE_OP_BACKGROUND, BlendOp: apng.BLEND_OP_SOURCE,
			DelayNumerator: num, DelayDenominator: den,
		})
	}
	return
}

// EncodeCompare writes the Compare animation as an APNG file. Viewers
// without APNG support show the first color.
func EncodeCompare(w io.Writer, colors []color.Color, size, radius int, delay time.Duration) error {
	if len(colors) == 0 {
		return fmt.Errorf("no colors to compare")
	}
	return apng.Encode(w, Compare(colors, size, radius, delay))
}

// converts a time.Duration to a numerator and denominator of type uint16.
// It finds the best rational approximation of the duration in seconds.
func as_fraction(d time.Duration) (num, den uint16) {
	if d <= 0 {
		return 0, 1
	}
	val := d.Seconds()

	// Continued fraction convergents, keeping the closest one whose
	// numerator and denominator fit in uint16.
	bestNum, bestDen := uint16(0), uint16(1)
	bestError := math.Abs(val)

	var h, k [3]int64
	h[0], k[0] = 0, 1
	h[1], k[1] = 1, 0

	f := val
	for range 98 {
		a := int64(f)
		h[2] = a*h[1] + h[0]
		k[2] = a*k[1] + k[0]
		if h[2] > math.MaxUint16 || k[2] > math.MaxUint16 {
			break
		}
		numConv, denConv := uint16(h[2]), uint16(k[2])
		if currentError := math.Abs(val - float64(numConv)/float64(denConv)); currentError < bestError {
			bestError, bestNum, bestDen = currentError, numConv, denConv
		}
		if f-float64(a) == 0.0 {
			break
		}
		f = 1.0 / (f - float64(a))
		h[0], h[1] = h[1], h[2]
		k[0], k[1] = k[1], k[2]
	}
	return bestNum, bestDen
}
