package oracle

import (
	"fmt"
	"math"

	"github.com/kovidgoyal/munsell/colorconv"
	"github.com/kovidgoyal/munsell/notation"
)

var _ = fmt.Print

// The analytic model places Munsell colors in CIELAB relative to illuminant
// C. It is a smooth approximation of the renotation data, good to a few ΔE
// in the well populated regions and coarser near the edges of the solid.
//
//   - value -> luminance: the ASTM D1535 fifth order polynomial
//   - hue -> Lab hue angle: piecewise linear between the 5 step of each family
//   - chroma -> Lab chroma: a linear, value dependent scale factor
//   - gamut: a per family envelope of maximum chroma over value

// Lab hue angles of 5R, 5YR, ... 5RP relative to illuminant C
var family_angles = [10]float64{24, 58, 92, 120, 160, 195, 230, 275, 315, 350}

type envelope_peak struct{ chroma, value float64 }

// Maximum chroma of each family and the value at which it is reached
var envelope_peaks = [10]envelope_peak{
	{16, 4}, {14, 6}, {14, 8.5}, {12, 7}, {12, 5},
	{10, 5}, {10, 5}, {14, 3}, {12, 3.5}, {14, 4},
}

const (
	envelope_width = 6.5
	min_max_chroma = 2
	// the inverse rounds to one decimal, so it tolerates half a step of
	// numerical drift at the envelope
	inverse_slack  = 0.05
	forward_slack  = 1e-9
	// luminances this close to black or white are numerical noise
	luminance_slop = 1e-6
)

// anchor_position returns the anchor index and fractional offset of the
// hue number h in (0,100]. Anchors sit at 5, 15, ... 95 and the index ranges
// over [-1, 9], with -1 standing for the 95 anchor one turn back.
func anchor_position(h float64) (int, float64) {
	x := (h - 5) / 10
	i := math.Floor(x)
	return int(i), x - i
}

func anchor_angle(i int) float64 {
	switch {
	case i < 0:
		return family_angles[len(family_angles)+i] - 360
	case i >= len(family_angles):
		return family_angles[i-len(family_angles)] + 360
	}
	return family_angles[i]
}

func hue_to_angle(h float64) float64 {
	i, f := anchor_position(h)
	a0, a1 := anchor_angle(i), anchor_angle(i+1)
	return math.Mod(a0+f*(a1-a0)+360, 360)
}

func angle_to_hue(theta float64) float64 {
	theta = math.Mod(theta, 360)
	if theta < 0 {
		theta += 360
	}
	if theta < family_angles[0] {
		theta += 360
	}
	i := 0
	for i < len(family_angles)-1 && theta >= anchor_angle(i+1) {
		i++
	}
	a0, a1 := anchor_angle(i), anchor_angle(i+1)
	h := 5 + 10*(float64(i)+(theta-a0)/(a1-a0))
	if h > 100 {
		h -= 100
	}
	return h
}

func envelope_at(h float64) envelope_peak {
	i, f := anchor_position(h)
	p0, p1 := envelope_peaks[(i+10)%10], envelope_peaks[(i+11)%10]
	return envelope_peak{p0.chroma + f*(p1.chroma-p0.chroma), p0.value + f*(p1.value-p0.value)}
}

// max_chroma is the largest chroma the model defines for the hue number h
// at value v. Black and white admit no chroma at all.
func max_chroma(h, v float64) float64 {
	if v <= 0 || v >= 10 {
		return 0
	}
	p := envelope_at(h)
	d := (v - p.value) / envelope_width
	return max(min_max_chroma, p.chroma*(1-d*d))
}

// Lab chroma per unit of Munsell chroma
func chroma_scale(v float64) float64 {
	return 2.6 + 0.45*v
}

// luminance_from_value is the ASTM D1535 polynomial scaled so that value 10
// is Y = 1.
func luminance_from_value(v float64) float64 {
	return v * (1.1914 + v*(-0.22533+v*(0.23352+v*(-0.020484+v*0.00081939)))) / 100
}

// value_from_luminance inverts luminance_from_value by bisection, which is
// safe since the polynomial is monotonic on [0,10].
func value_from_luminance(Y float64) float64 {
	if Y <= 0 {
		return 0
	}
	if Y >= 1 {
		return 10
	}
	lo, hi := 0.0, 10.0
	for range 64 {
		mid := (lo + hi) / 2
		if luminance_from_value(mid) < Y {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// munsell_to_lab maps a notation to Lab relative to illuminant C.
func munsell_to_lab(n notation.Notation) (colorconv.Lab, error) {
	L := colorconv.LightnessFromLuminance(luminance_from_value(n.Value))
	if n.Neutral {
		return colorconv.Lab{L, 0, 0}, nil
	}
	h := n.HueNumber()
	if limit := max_chroma(h, n.Value); n.Chroma > limit+forward_slack {
		return colorconv.Lab{}, fmt.Errorf("%w: %s exceeds the maximum chroma %.1f at this hue and value", ErrUndefined, n, limit)
	}
	return colorconv.LCH{L, n.Chroma * chroma_scale(n.Value), hue_to_angle(h)}.Lab(), nil
}

// lab_to_munsell maps Lab relative to illuminant C back to a notation.
func lab_to_munsell(lab colorconv.Lab) (notation.Notation, error) {
	if !colorconv.Vec3(lab).IsFinite() {
		return notation.Notation{}, fmt.Errorf("%w: non-finite Lab %v", ErrConversion, lab)
	}
	Y := colorconv.LuminanceFromLightness(lab[0])
	if Y <= luminance_slop || Y > 1+luminance_slop {
		return notation.Notation{}, fmt.Errorf("%w: luminance %g is outside (0, 1]", ErrUndefined, Y)
	}
	v := value_from_luminance(Y)
	lch := lab.LCH()
	chroma := lch[1] / chroma_scale(v)
	h := angle_to_hue(lch[2])
	ans := notation.FromHueNumber(h, v, chroma)
	if !ans.Neutral && chroma > max_chroma(h, v)+inverse_slack {
		return notation.Notation{}, fmt.Errorf("%w: chroma %.1f at %s exceeds the maximum %.1f", ErrUndefined, chroma, ans.Hue(), max_chroma(h, v))
	}
	return ans, nil
}
