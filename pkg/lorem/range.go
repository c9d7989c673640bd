package lorem

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is an inclusive [Min, Max] integer range.
type Range struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Default generation ranges.
var (
	DefaultWordRange     = Range{Min: 4, Max: 8}
	DefaultCommaRange    = Range{Min: 0, Max: 2}
	DefaultSentenceRange = Range{Min: 5, Max: 10}
)

// Exactly returns the range [n, n].
func Exactly(n int) Range {
	return Range{Min: n, Max: n}
}

// Validate checks that the range is ordered and that Min is at least floor.
func (r Range) Validate(name string, floor int) error {
	if r.Min > r.Max {
		return fmt.Errorf("%w: %s min %d exceeds max %d", ErrInvalidRange, name, r.Min, r.Max)
	}
	if r.Min < floor {
		return fmt.Errorf("%w: %s min %d is below %d", ErrInvalidRange, name, r.Min, floor)
	}
	return nil
}

// Pick draws a value from the range using src.
func (r Range) Pick(src Source) int {
	return src.IntRange(r.Min, r.Max)
}

func (r Range) String() string {
	if r.Min == r.Max {
		return strconv.Itoa(r.Min)
	}
	return strconv.Itoa(r.Min) + "," + strconv.Itoa(r.Max)
}

// ParseRange parses "n" or "min,max" (also "min-max" and "min:max").
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	sep := strings.IndexAny(s, ",:-")
	if sep <= 0 {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Range{}, fmt.Errorf("%w: %q is not a number", ErrInvalidRange, s)
		}
		return Exactly(n), nil
	}

	lo, err := strconv.Atoi(strings.TrimSpace(s[:sep]))
	if err != nil {
		return Range{}, fmt.Errorf("%w: bad min in %q", ErrInvalidRange, s)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(s[sep+1:]))
	if err != nil {
		return Range{}, fmt.Errorf("%w: bad max in %q", ErrInvalidRange, s)
	}
	return Range{Min: lo, Max: hi}, nil
}
