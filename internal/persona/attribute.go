package persona

import (
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Kind discriminates the shapes an Attribute can take.
type Kind int

const (
	// Absent attributes are never sampled and contribute no sentence.
	Absent Kind = iota
	// Options is an ordered set of labels; one is chosen uniformly.
	Options
	// Range is a numeric [min, max] interval. Integral bounds sample
	// inclusive integers; otherwise a real rounded to one decimal and
	// kept within the bounds.
	Range
	// Multi is an ordered set of label groups; the chosen group renders
	// as a comma-joined list.
	Multi
)

// Attribute is the sampling rule for a single persona attribute.
// The zero value is Absent. Construct non-absent attributes with Choice,
// NumRange, or MultiChoice so the shape is fixed up front rather than
// guessed from list contents at sample time.
type Attribute struct {
	kind    Kind
	options []string
	groups  [][]string
	lo, hi  float64
}

// Choice returns an attribute sampled uniformly from the given labels.
func Choice(options ...string) Attribute {
	return Attribute{kind: Options, options: options}
}

// NumRange returns an attribute sampled uniformly from [lo, hi].
func NumRange(lo, hi float64) Attribute {
	if hi < lo {
		lo, hi = hi, lo
	}
	return Attribute{kind: Range, lo: lo, hi: hi}
}

// MultiChoice returns an attribute whose sample is one of the given
// label groups, e.g. a multi-select of interests.
func MultiChoice(groups ...[]string) Attribute {
	return Attribute{kind: Multi, groups: groups}
}

// Kind reports the attribute's shape.
func (a Attribute) Kind() Kind { return a.kind }

// integral reports whether both range bounds are whole numbers.
func (a Attribute) integral() bool {
	return a.lo == math.Trunc(a.lo) && a.hi == math.Trunc(a.hi)
}

// Sample draws one value using rng. It returns nil for absent attributes
// and for empty option sets (degraded, never an error), a string for
// option choices, an int or float64 for range draws, and a []string for
// multi-select choices.
func (a Attribute) Sample(rng *rand.Rand) any {
	switch a.kind {
	case Options:
		if len(a.options) == 0 {
			return nil
		}
		return a.options[rng.IntN(len(a.options))]
	case Range:
		if a.integral() {
			lo, hi := int(a.lo), int(a.hi)
			return lo + rng.IntN(hi-lo+1)
		}
		v := math.Round((a.lo+rng.Float64()*(a.hi-a.lo))*10) / 10
		// Rounding can step past a bound that is not a multiple of 0.1.
		if v < a.lo {
			v = a.lo
		}
		if v > a.hi {
			v = a.hi
		}
		return v
	case Multi:
		if len(a.groups) == 0 {
			return nil
		}
		return a.groups[rng.IntN(len(a.groups))]
	default:
		return nil
	}
}

// formatValue renders a sampled value for template substitution.
// List values are comma-joined; reals keep exactly one decimal.
func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case []string:
		return strings.Join(v, ", ")
	default:
		return ""
	}
}
