package preview

import (
	"errors"
	"fmt"

	"github.com/kovidgoyal/munsell/colorconv"
	"github.com/kovidgoyal/munsell/oracle"
)

var _ = fmt.Print

var ErrEncoding = errors.New("cannot encode color for preview")

// EncodingError is returned when neither the direct Lab to sRGB conversion
// nor the Lab to XYZ to sRGB fallback worked. There is no sensible color to
// show in its place, so callers should treat it as fatal.
type EncodingError struct {
	Lab               colorconv.Lab
	Primary, Fallback error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot encode Lab(%g, %g, %g) as sRGB: %v; fallback: %v", e.Lab[0], e.Lab[1], e.Lab[2], e.Primary, e.Fallback)
}

func (e *EncodingError) Is(target error) bool { return target == ErrEncoding }

func (e *EncodingError) Unwrap() []error { return []error{e.Primary, e.Fallback} }

// LabToColor converts lab to an 8 bit sRGB color through backend.
func LabToColor(backend oracle.Backend, lab colorconv.Lab) (NRGBColor, error) {
	rgb, primary := oracle.Call(func() (colorconv.RGB, error) { return backend.LabToSRGB(lab) })
	if primary == nil && colorconv.Vec3(rgb).IsFinite() {
		return Quantize(rgb), nil
	} else if primary == nil {
		primary = fmt.Errorf("%w: non-finite sRGB %v", oracle.ErrConversion, rgb)
	}
	rgb, fallback := oracle.Call(func() (colorconv.RGB, error) { return backend.XYZToSRGB(backend.LabToXYZ(lab)) })
	if fallback == nil && colorconv.Vec3(rgb).IsFinite() {
		return Quantize(rgb), nil
	} else if fallback == nil {
		fallback = fmt.Errorf("%w: non-finite sRGB %v", oracle.ErrConversion, rgb)
	}
	return NRGBColor{}, &EncodingError{Lab: lab, Primary: primary, Fallback: fallback}
}

// LabToHex returns the #RRGGBB form of lab.
func LabToHex(backend oracle.Backend, lab colorconv.Lab) (string, error) {
	c, err := LabToColor(backend, lab)
	if err != nil {
		return "", err
	}
	return c.AsSharp(), nil
}
