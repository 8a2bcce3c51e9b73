package oracle

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/kovidgoyal/munsell/colorconv"
	"github.com/kovidgoyal/munsell/notation"
)

var _ = fmt.Print

// Analytic is a self contained Backend. Munsell colors come from the closed
// form model in model.go, evaluated under illuminant C and Bradford adapted
// to D65. The generic CIE conversions are done with go-colorful (D65, 2°
// observer) and the XYZ to sRGB path with colorconv.
//
// It does not interpolate the renotation data, so treat its numbers as
// approximations. Swap in a Backend wrapping a renotation library when
// accuracy matters.
type Analytic struct {
	c_to_d65, d65_to_c colorconv.Mat3
}

var _ Backend = (*Analytic)(nil)

func NewAnalytic() *Analytic {
	return &Analytic{
		c_to_d65: colorconv.ChromaticAdaptationMatrix(colorconv.WhiteC, colorconv.WhiteD65),
		d65_to_c: colorconv.ChromaticAdaptationMatrix(colorconv.WhiteD65, colorconv.WhiteC),
	}
}

func (a *Analytic) String() string { return "Analytic" }

func (a *Analytic) MunsellToXyY(spec string) (colorconv.XyY, error) {
	n, err := notation.Parse(spec)
	if err != nil {
		return colorconv.XyY{}, err
	}
	lab, err := munsell_to_lab(n)
	if err != nil {
		return colorconv.XyY{}, err
	}
	xyz := a.c_to_d65.Adapt(colorconv.LabToXYZ(lab, colorconv.WhiteC))
	return a.XYZToXyY(xyz), nil
}

func (a *Analytic) XyYToMunsell(xyY colorconv.XyY) (string, error) {
	if !colorconv.Vec3(xyY).IsFinite() {
		return "", fmt.Errorf("%w: non-finite xyY %v", ErrConversion, xyY)
	}
	xyz := a.d65_to_c.Adapt(a.XyYToXYZ(xyY))
	n, err := lab_to_munsell(colorconv.XYZToLab(xyz, colorconv.WhiteC))
	if err != nil {
		return "", err
	}
	return n.String(), nil
}

func (a *Analytic) XyYToXYZ(c colorconv.XyY) colorconv.XYZ {
	X, Y, Z := colorful.XyyToXyz(c[0], c[1], c[2])
	return colorconv.XYZ{X, Y, Z}
}

func (a *Analytic) XYZToXyY(c colorconv.XYZ) colorconv.XyY {
	x, y, Y := colorful.XyzToXyy(c[0], c[1], c[2])
	return colorconv.XyY{x, y, Y}
}

// go-colorful scales L to [0,1] and a, b by the same factor of 100

func (a *Analytic) XYZToLab(c colorconv.XYZ) colorconv.Lab {
	l, aa, b := colorful.XyzToLab(c[0], c[1], c[2])
	return colorconv.Lab{l * 100, aa * 100, b * 100}
}

func (a *Analytic) LabToXYZ(c colorconv.Lab) colorconv.XYZ {
	X, Y, Z := colorful.LabToXyz(c[0]/100, c[1]/100, c[2]/100)
	return colorconv.XYZ{X, Y, Z}
}

func (a *Analytic) LabToSRGB(c colorconv.Lab) (colorconv.RGB, error) {
	col := colorful.Lab(c[0]/100, c[1]/100, c[2]/100)
	ans := colorconv.RGB{col.R, col.G, col.B}
	if !colorconv.Vec3(ans).IsFinite() {
		return ans, fmt.Errorf("%w: Lab %v has no sRGB equivalent", ErrConversion, c)
	}
	return ans, nil
}

func (a *Analytic) XYZToSRGB(c colorconv.XYZ) (colorconv.RGB, error) {
	ans := colorconv.XYZToSRGB(c)
	if !colorconv.Vec3(ans).IsFinite() {
		return ans, fmt.Errorf("%w: XYZ %v has no sRGB equivalent", ErrConversion, c)
	}
	return ans, nil
}
