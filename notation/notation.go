// Package notation parses and formats Munsell color notations of the form
// "<hue> <value>/<chroma>", for example "5R 5/10", "2.5YR 3.5/4" or, for
// achromatic colors, "N 5/".
package notation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var _ = fmt.Print

var ErrSyntax = errors.New("invalid Munsell notation")

// The ten hue families in wheel order, each spanning ten hue steps.
var Families = [10]string{"R", "YR", "Y", "GY", "G", "BG", "B", "PB", "P", "RP"}

const number = `(\d+(?:\.\d+)?|\.\d+)`

var (
	chromatic_pat = regexp.MustCompile(`^\s*` + number + `\s*(R|YR|Y|GY|G|BG|B|PB|P|RP)\s*` + number + `\s*/\s*` + number + `\s*$`)
	neutral_pat   = regexp.MustCompile(`^\s*N\s*` + number + `\s*(?:/\s*(?:0*(?:\.0*)?)?)?\s*$`)
)

type Notation struct {
	Neutral bool
	Step    float64 // position within the family, in (0,10]
	Family  int     // index into Families
	Value   float64 // lightness in [0,10]
	Chroma  float64 // zero for neutrals
}

func family_index(name string) int {
	for i, f := range Families {
		if f == name {
			return i
		}
	}
	return -1
}

func syntax_error(s, reason string) error {
	return fmt.Errorf("%w: %q: %s", ErrSyntax, s, reason)
}

// Parse parses a Munsell notation. Chromatic notations with zero chroma are
// returned as neutrals.
func Parse(s string) (ans Notation, err error) {
	if m := neutral_pat.FindStringSubmatch(s); m != nil {
		if ans.Value, err = strconv.ParseFloat(m[1], 64); err != nil {
			return ans, syntax_error(s, err.Error())
		}
		ans.Neutral = true
		if ans.Value > 10 {
			return ans, syntax_error(s, "value must be in [0, 10]")
		}
		return
	}
	m := chromatic_pat.FindStringSubmatch(s)
	if m == nil {
		return ans, syntax_error(s, "expected <hue> <value>/<chroma>")
	}
	var nums [3]float64
	for i, x := range []string{m[1], m[3], m[4]} {
		if nums[i], err = strconv.ParseFloat(x, 64); err != nil {
			return ans, syntax_error(s, err.Error())
		}
	}
	ans.Step, ans.Family, ans.Value, ans.Chroma = nums[0], family_index(m[2]), nums[1], nums[2]
	switch {
	case ans.Step <= 0 || ans.Step > 10:
		return ans, syntax_error(s, "hue step must be in (0, 10]")
	case ans.Value > 10:
		return ans, syntax_error(s, "value must be in [0, 10]")
	}
	if ans.Chroma == 0 {
		ans = Notation{Neutral: true, Value: ans.Value}
	}
	return
}

// HueNumber is the continuous position of the hue on the Munsell circle in
// (0, 100], 10R == 10, 10YR == 20, ... 10RP == 100. It is zero for neutrals.
func (n Notation) HueNumber() float64 {
	if n.Neutral {
		return 0
	}
	return float64(n.Family)*10 + n.Step
}

// Hue returns the hue part of the notation, for example "7.5YR" or "N".
func (n Notation) Hue() string {
	if n.Neutral {
		return "N"
	}
	return format_number(n.Step) + Families[n.Family]
}

func format_number(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func (n Notation) String() string {
	if n.Neutral {
		return "N " + format_number(n.Value) + "/"
	}
	return n.Hue() + " " + format_number(n.Value) + "/" + format_number(n.Chroma)
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }

// FromHueNumber builds a notation from continuous coordinates, rounding
// every component to one decimal place. Hue numbers wrap around the circle
// and a chroma that rounds to zero produces a neutral.
func FromHueNumber(h, value, chroma float64) Notation {
	value, chroma = round1(value), round1(chroma)
	if chroma <= 0 {
		return Notation{Neutral: true, Value: value}
	}
	tenths := int(math.Round(h*10)) % 1000
	if tenths <= 0 {
		tenths += 1000
	}
	family := (tenths - 1) / 100
	return Notation{Step: float64(tenths-family*100) / 10, Family: family, Value: value, Chroma: chroma}
}
