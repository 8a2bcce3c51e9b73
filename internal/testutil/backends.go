// Package testutil provides Backend wrappers that inject failures, for
// exercising the recovery paths of the converter.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/kovidgoyal/munsell/colorconv"
	"github.com/kovidgoyal/munsell/oracle"
)

var _ = fmt.Print

// NoInverse never resolves xyY to a notation, forcing callers onto their
// nearest neighbour fallback.
type NoInverse struct{ oracle.Backend }

func (NoInverse) XyYToMunsell(colorconv.XyY) (string, error) {
	return "", fmt.Errorf("%w: inverse disabled", oracle.ErrUndefined)
}

// PanickingInverse panics from XyYToMunsell.
type PanickingInverse struct{ oracle.Backend }

func (PanickingInverse) XyYToMunsell(colorconv.XyY) (string, error) {
	panic("inverse exploded")
}

// EmptyInverse reports success with an empty notation.
type EmptyInverse struct{ oracle.Backend }

func (EmptyInverse) XyYToMunsell(colorconv.XyY) (string, error) { return "", nil }

// Counting counts forward conversions.
type Counting struct {
	oracle.Backend
	Calls atomic.Int64
}

func (c *Counting) MunsellToXyY(s string) (colorconv.XyY, error) {
	c.Calls.Add(1)
	return c.Backend.MunsellToXyY(s)
}

// FlakyForward fails forward conversions of every notation starting with
// one of Reject and panics on every notation starting with one of Explode.
type FlakyForward struct {
	oracle.Backend
	Reject, Explode []string
}

func (f FlakyForward) MunsellToXyY(s string) (colorconv.XyY, error) {
	for _, x := range f.Explode {
		if strings.HasPrefix(s, x) {
			panic("forward exploded on " + s)
		}
	}
	for _, x := range f.Reject {
		if strings.HasPrefix(s, x) {
			return colorconv.XyY{}, fmt.Errorf("%w: rejected %s", oracle.ErrConversion, s)
		}
	}
	return f.Backend.MunsellToXyY(s)
}

// Undefined rejects every forward conversion.
type Undefined struct{ oracle.Backend }

func (Undefined) MunsellToXyY(s string) (colorconv.XyY, error) {
	return colorconv.XyY{}, fmt.Errorf("%w: %s", oracle.ErrUndefined, s)
}

// BrokenSRGB fails the primary Lab to sRGB path and, when BothPaths is
// set, the XYZ fallback too.
type BrokenSRGB struct {
	oracle.Backend
	BothPaths bool
}

func (b BrokenSRGB) LabToSRGB(c colorconv.Lab) (colorconv.RGB, error) {
	return colorconv.RGB{}, fmt.Errorf("%w: primary path disabled", oracle.ErrConversion)
}

func (b BrokenSRGB) XYZToSRGB(c colorconv.XYZ) (colorconv.RGB, error) {
	if b.BothPaths {
		return colorconv.RGB{}, fmt.Errorf("%w: fallback path disabled", oracle.ErrConversion)
	}
	return b.Backend.XYZToSRGB(c)
}

// Slow delays every forward conversion.
type Slow struct {
	oracle.Backend
	Delay time.Duration
}

func (s Slow) MunsellToXyY(spec string) (colorconv.XyY, error) {
	time.Sleep(s.Delay)
	return s.Backend.MunsellToXyY(spec)
}
