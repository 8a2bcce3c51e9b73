/*
Package munsell converts between Munsell notations and CIE colorimetry.

Forward conversion turns a notation such as "5R 5/10" into XYZ, L*a*b* and
LCH. Reverse conversion resolves an arbitrary L*a*b* color to a notation, by
asking the colorimetric backend to invert it and, when that fails, by
searching a sampled database of valid notations for the nearest match. All
colorimetry is delegated to an oracle.Backend.
*/
package munsell

import "fmt"

type MunsellVersion struct {
	Major, Minor, Patch uint
}

func (v MunsellVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

var Version = MunsellVersion{0, 3, 0}
