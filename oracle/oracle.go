// Package oracle defines the colorimetric backend the Munsell converter is
// built on, and ships an approximate analytic implementation of it.
//
// The converter never looks inside a backend. All it relies on is the
// distinction between a backend producing a value and a backend reporting
// that the requested color is undefined (ErrUndefined) or failing outright.
package oracle

import (
	"errors"
	"fmt"

	"github.com/kovidgoyal/munsell/colorconv"
)

var _ = fmt.Print

var (
	// ErrUndefined is reported for notations or colors outside the domain
	// the backend knows about.
	ErrUndefined = errors.New("color is undefined in the Munsell system")
	// ErrConversion is an unexpected failure inside a backend.
	ErrConversion = errors.New("color conversion failed")
)

// Backend is a colorimetry library as seen by the converter. XYZ values are
// relative to D65 with Y = 1 for white. Lab is CIE L*a*b* under D65.
type Backend interface {
	// MunsellToXyY converts a Munsell notation string to CIE xyY.
	MunsellToXyY(notation string) (colorconv.XyY, error)
	// XyYToMunsell is the inverse of MunsellToXyY.
	XyYToMunsell(xyY colorconv.XyY) (string, error)

	XyYToXYZ(colorconv.XyY) colorconv.XYZ
	XYZToXyY(colorconv.XYZ) colorconv.XyY
	XYZToLab(colorconv.XYZ) colorconv.Lab
	LabToXYZ(colorconv.Lab) colorconv.XYZ

	// LabToSRGB is the general purpose Lab to sRGB conversion. The result
	// is gamma companded and not clamped.
	LabToSRGB(colorconv.Lab) (colorconv.RGB, error)
	// XYZToSRGB converts XYZ to gamma companded, unclamped sRGB.
	XYZToSRGB(colorconv.XYZ) (colorconv.RGB, error)
}

// Call runs f, turning a panic inside it into an ErrConversion error, so
// that misbehaving backends cannot take down a caller that treats failures
// as expected.
func Call[T any](f func() (T, error)) (ans T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			ans, err = zero, fmt.Errorf("%w: backend panicked: %v", ErrConversion, r)
		}
	}()
	return f()
}
