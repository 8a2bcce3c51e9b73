package colorconv

import (
	"math"
)

// This package holds the CIE colorimetry used by the Munsell model: xyY,
// XYZ, L*a*b* and LCH conversions relative to an explicit white point, the
// Bradford chromatic adaptation between illuminants and the XYZ (D65) to sRGB
// transform.
//
// Notes:
// - XYZ values are normalised so that the reference white has Y = 1.0.
// - L is in [0,100], a and b are unbounded.
// - sRGB results are gamma companded but NOT clamped, callers decide how to
//   deal with out of gamut colors.

type Vec3 [3]float64
type Mat3 [3][3]float64

// CIE xyY: chromaticity x, y and luminance Y
type XyY Vec3

// CIE XYZ tristimulus values
type XYZ Vec3

// CIE L*a*b*
type Lab Vec3

// Cylindrical form of Lab: lightness, chroma, hue angle in degrees
type LCH Vec3

// Gamma companded sRGB with nominal range [0,1]
type RGB Vec3

// Standard reference whites (CIE XYZ, 2° observer) normalized so Y = 1.0
// WhiteD50 uses the Z value of the ICC profile connection space, not the CIE one.
var (
	WhiteD50 = XYZ{0.96422, 1.00000, 0.82491}
	WhiteD65 = XYZ{0.95047, 1.00000, 1.08883}
	// Illuminant C, the illuminant of the Munsell renotation data
	WhiteC = XYZ{0.98074, 1.00000, 1.18232}
)

// Bradford transform matrices (forward and inverse)
var (
	bradford = Mat3{
		{0.8951, 0.2664, -0.1614},
		{-0.7502, 1.7135, 0.0367},
		{0.0389, -0.0685, 1.0296},
	}
	invBradford = Mat3{
		{0.9869929, -0.1470543, 0.1599627},
		{0.4323053, 0.5183603, 0.0492912},
		{-0.0085287, 0.0400428, 0.9684867},
	}
)

// sRGB (linear) transform matrix from CIE XYZ (D65)
var srgbFromXYZ = Mat3{
	{3.2406, -1.5372, -0.4986},
	{-0.9689, 1.8758, 0.0415},
	{0.0557, -0.2040, 1.0570},
}

// Public API

// XyYToXYZ converts chromaticity coordinates plus luminance to XYZ. A zero y
// has no defined chromaticity and maps to black.
func XyYToXYZ(c XyY) XYZ {
	x, y, Y := c[0], c[1], c[2]
	if y == 0 {
		return XYZ{0, 0, 0}
	}
	return XYZ{x * Y / y, Y, (1 - x - y) * Y / y}
}

// XYZToXyY converts XYZ to xyY. Black has no chromaticity, so the
// chromaticity of white is used for it.
func XYZToXyY(c XYZ, white XYZ) XyY {
	sum := c[0] + c[1] + c[2]
	if sum == 0 {
		ws := white[0] + white[1] + white[2]
		return XyY{white[0] / ws, white[1] / ws, 0}
	}
	return XyY{c[0] / sum, c[1] / sum, c[1]}
}

// XYZToLab converts XYZ relative to white into CIELAB.
func XYZToLab(c XYZ, white XYZ) Lab {
	fx := ff(c[0] / white[0])
	fy := ff(c[1] / white[1])
	fz := ff(c[2] / white[2])
	return Lab{116.0*fy - 16.0, 500.0 * (fx - fy), 200.0 * (fy - fz)}
}

// LabToXYZ converts CIELAB into XYZ values relative to white.
func LabToXYZ(c Lab, white XYZ) XYZ {
	// Inverse of the CIELAB f function
	var fy = (c[0] + 16.0) / 116.0
	var fx = fy + (c[1] / 500.0)
	var fz = fy - (c[2] / 200.0)
	return XYZ{finv(fx) * white[0], finv(fy) * white[1], finv(fz) * white[2]}
}

// LightnessFromLuminance returns L* for a relative luminance in [0,1].
func LightnessFromLuminance(Y float64) float64 {
	return 116.0*ff(Y) - 16.0
}

// LuminanceFromLightness is the inverse of LightnessFromLuminance.
func LuminanceFromLightness(L float64) float64 {
	return finv((L + 16.0) / 116.0)
}

// XYZToLinearSRGB converts XYZ (D65) to linear sRGB. The output may be
// outside the [0,1] range.
func XYZToLinearSRGB(c XYZ) (r, g, b float64) {
	return mulMat3Vec(srgbFromXYZ, Vec3(c))
}

// XYZToSRGB converts XYZ (D65) to gamma companded sRGB. Values are not
// clamped, use Clamp01 or InGamut as needed.
func XYZToSRGB(c XYZ) RGB {
	rl, gl, bl := XYZToLinearSRGB(c)
	return RGB{linearToSRGBComp(rl), linearToSRGBComp(gl), linearToSRGBComp(bl)}
}

// LabToSRGB converts Lab (D65) to gamma companded sRGB without any gamut
// mapping.
func LabToSRGB(c Lab) RGB {
	return XYZToSRGB(LabToXYZ(c, WhiteD65))
}

// LCH returns the cylindrical form of c with the hue angle in [0,360).
func (c Lab) LCH() LCH {
	h := math.Atan2(c[2], c[1]) * 180 / math.Pi
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return LCH{c[0], math.Hypot(c[1], c[2]), h}
}

func (c LCH) Lab() Lab {
	s, co := math.Sincos(c[2] * math.Pi / 180)
	return Lab{c[0], c[1] * co, c[1] * s}
}

// DistanceSquared is the squared euclidean distance between two Lab colors,
// that is, the square of CIE76 ΔE.
func (c Lab) DistanceSquared(o Lab) float64 {
	dl, da, db := c[0]-o[0], c[1]-o[1], c[2]-o[2]
	return dl*dl + da*da + db*db
}

// IsFinite reports whether every component is a finite number.
func (v Vec3) IsFinite() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// InGamut checks whether r,g,b are all inside [0,1] (with a small epsilon)
func (c RGB) InGamut() bool {
	const eps = 1e-12
	r, g, b := c[0], c[1], c[2]
	return r >= -eps && g >= -eps && b >= -eps && r <= 1+eps && g <= 1+eps && b <= 1+eps
}

// Clamped returns c with every channel clamped to [0,1].
func (c RGB) Clamped() RGB {
	return RGB{Clamp01(c[0]), Clamp01(c[1]), Clamp01(c[2])}
}

// Clamp01 clamps value to [0,1]
func Clamp01(x float64) float64 {
	return max(0, min(x, 1))
}

// ChromaticAdaptationMatrix constructs a 3x3 matrix that adapts XYZ values
// from sourceWhite to targetWhite using the Bradford method.
func ChromaticAdaptationMatrix(sourceWhite, targetWhite XYZ) Mat3 {
	// Convert whites to LMS using Bradford
	srcL, srcM, srcS := mulMat3Vec(bradford, Vec3(sourceWhite))
	tgtL, tgtM, tgtS := mulMat3Vec(bradford, Vec3(targetWhite))
	// diag of ratios
	var ratios = Vec3{tgtL / srcL, tgtM / srcM, tgtS / srcS}
	diag := Mat3{
		{ratios[0], 0, 0},
		{0, ratios[1], 0},
		{0, 0, ratios[2]},
	}
	// adapt = invBradford * diag * bradford
	tmp := mulMat3(diag, bradford)
	return mulMat3(invBradford, tmp)
}

// Adapt applies the adaptation matrix m to c.
func (m Mat3) Adapt(c XYZ) XYZ {
	x, y, z := mulMat3Vec(m, Vec3(c))
	return XYZ{x, y, z}
}

// Helpers: core conversions

func finv(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta {
		return t * t * t
	}
	// when t <= delta: 3*delta^2*(t - 4/29)
	return 3 * delta * delta * (t - 4.0/29.0)
}

func ff(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta*delta*delta {
		return math.Cbrt(t)
	}
	// t <= delta^3
	return t/(3*delta*delta) + 4.0/29.0
}

// linearToSRGBComp applies the sRGB (gamma) companding function to a linear component.
func linearToSRGBComp(c float64) float64 {
	// clip small negative rounding noise at this stage for stability
	if c <= 0 {
		return 0.0
	}
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1.0/2.4) - 0.055
}

// Matrix & vector utilities

func mulMat3(a, b Mat3) Mat3 {
	var out Mat3
	for i := range 3 {
		for j := range 3 {
			sum := 0.0
			for k := range 3 {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

func mulMat3Vec(m Mat3, v Vec3) (x, y, z float64) {
	x = m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2]
	y = m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2]
	z = m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2]
	return
}
