// Package hue holds the 40 step Munsell hue circle used to lay out the
// notation grid.
package hue

import (
	"errors"
	"fmt"
)

var _ = fmt.Print

var ErrUnknownHue = errors.New("unknown Munsell hue")

// Number of hues on the wheel
const Count = 40

// Degrees between adjacent hues on the wheel
const Step = 360.0 / Count

// Names are the canonical hue names in wheel order. The position in this
// list is the hue index.
var Names = [Count]string{
	"2.5R", "5R", "7.5R", "10R",
	"2.5YR", "5YR", "7.5YR", "10YR",
	"2.5Y", "5Y", "7.5Y", "10Y",
	"2.5GY", "5GY", "7.5GY", "10GY",
	"2.5G", "5G", "7.5G", "10G",
	"2.5BG", "5BG", "7.5BG", "10BG",
	"2.5B", "5B", "7.5B", "10B",
	"2.5PB", "5PB", "7.5PB", "10PB",
	"2.5P", "5P", "7.5P", "10P",
	"2.5RP", "5RP", "7.5RP", "10RP",
}

type Entry struct {
	Name  string
	Index int
}

// Angle is the position of the hue on the wheel in degrees.
func (e Entry) Angle() float64 { return Angle(e.Index) }

func (e Entry) String() string { return fmt.Sprintf("%s@%g°", e.Name, e.Angle()) }

var name_to_index = func() map[string]int {
	ans := make(map[string]int, Count)
	for i, n := range Names {
		ans[n] = i
	}
	return ans
}()

// Index returns the zero-based wheel position of name.
func Index(name string) (int, error) {
	if idx, ok := name_to_index[name]; ok {
		return idx, nil
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownHue, name)
}

// Angle returns index * 9 degrees. No range check is done, so indices
// outside [0,40) simply continue around the circle.
func Angle(index int) float64 {
	return float64(index) * Step
}

func Lookup(name string) (Entry, error) {
	idx, err := Index(name)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Name: name, Index: idx}, nil
}

// Entries returns all hues in wheel order.
func Entries() []Entry {
	ans := make([]Entry, Count)
	for i, n := range Names {
		ans[i] = Entry{Name: n, Index: i}
	}
	return ans
}
