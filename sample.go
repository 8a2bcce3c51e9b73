package munsell

import (
	"context"
	"fmt"

	"github.com/kovidgoyal/munsell/colorconv"
	"github.com/kovidgoyal/munsell/notation"
	"github.com/kovidgoyal/munsell/oracle"
)

var _ = fmt.Print

// ColorSample is everything a front end shows for one query: the color,
// its notation, a preview color and, when the notation is on the database
// grid, its position in the Munsell cylinder.
type ColorSample struct {
	XYZ         colorconv.XYZ
	Lab         colorconv.Lab
	LCH         colorconv.LCH
	Notation    string
	Approximate bool
	Cylindrical *colorconv.Vec3
	Hex         string
}

func (s ColorSample) String() string {
	approx := ""
	if s.Approximate {
		approx = "~"
	}
	return fmt.Sprintf("%s%s Lab(%.2f, %.2f, %.2f) %s", approx, s.Notation, s.Lab[0], s.Lab[1], s.Lab[2], s.Hex)
}

func (c *Converter) locate(ctx context.Context, spec string) (*colorconv.Vec3, error) {
	cyl, found, err := c.Locate(ctx, spec)
	if err != nil || !found {
		return nil, err
	}
	return &cyl, nil
}

// SampleNotation converts a notation to a ColorSample. The notation is
// normalized to its canonical form when it parses.
func (c *Converter) SampleNotation(ctx context.Context, spec string) (ans ColorSample, err error) {
	col, err := c.ToColorimetric(spec)
	if err != nil {
		return
	}
	ans.XYZ, ans.Lab, ans.LCH, ans.Notation = col.XYZ, col.Lab, col.LCH, spec
	if n, perr := notation.Parse(spec); perr == nil {
		ans.Notation = n.String()
	}
	if ans.Hex, err = c.LabToHex(ans.Lab); err != nil {
		return ColorSample{}, err
	}
	if ans.Cylindrical, err = c.locate(ctx, ans.Notation); err != nil {
		return ColorSample{}, err
	}
	return
}

// SampleLab resolves a Lab color to a ColorSample.
func (c *Converter) SampleLab(ctx context.Context, lab colorconv.Lab) (ans ColorSample, err error) {
	ans.Lab, ans.LCH = lab, lab.LCH()
	if ans.XYZ, err = oracle.Call(func() (colorconv.XYZ, error) { return c.cfg.backend.LabToXYZ(lab), nil }); err != nil {
		return ColorSample{}, err
	}
	if ans.Hex, err = c.LabToHex(lab); err != nil {
		return ColorSample{}, err
	}
	r, err := c.FromLab(ctx, lab)
	if err != nil {
		return ColorSample{}, err
	}
	ans.Notation, ans.Approximate = r.Notation, r.Approximate
	if ans.Cylindrical, err = c.locate(ctx, ans.Notation); err != nil {
		return ColorSample{}, err
	}
	return
}
