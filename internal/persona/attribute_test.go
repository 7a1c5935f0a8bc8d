package persona

import (
	"math"
	"math/rand/v2"
	"testing"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

func TestChoiceSampleMembership(t *testing.T) {
	options := []string{"low", "medium", "high"}
	attr := Choice(options...)

	for seed := uint64(0); seed < 50; seed++ {
		v := attr.Sample(newRNG(seed))
		s, ok := v.(string)
		if !ok {
			t.Fatalf("seed %d: Sample returned %T, want string", seed, v)
		}
		found := false
		for _, o := range options {
			if s == o {
				found = true
			}
		}
		if !found {
			t.Errorf("seed %d: sampled %q not in configured set", seed, s)
		}
	}
}

func TestChoiceSampleDeterministic(t *testing.T) {
	attr := Choice("a", "b", "c", "d", "e")
	for seed := uint64(0); seed < 20; seed++ {
		first := attr.Sample(newRNG(seed))
		second := attr.Sample(newRNG(seed))
		if first != second {
			t.Errorf("seed %d: %v != %v on repeat", seed, first, second)
		}
	}
}

func TestEmptyChoiceDegradesToAbsent(t *testing.T) {
	attr := Choice()
	if v := attr.Sample(newRNG(1)); v != nil {
		t.Errorf("empty option set sampled %v, want nil", v)
	}
}

func TestZeroValueIsAbsent(t *testing.T) {
	var attr Attribute
	if attr.Kind() != Absent {
		t.Errorf("zero value Kind = %v, want Absent", attr.Kind())
	}
	if v := attr.Sample(newRNG(1)); v != nil {
		t.Errorf("absent attribute sampled %v, want nil", v)
	}
}

func TestIntRangeInclusiveBounds(t *testing.T) {
	attr := NumRange(18, 35)
	seen := map[int]bool{}

	for seed := uint64(0); seed < 500; seed++ {
		v := attr.Sample(newRNG(seed))
		n, ok := v.(int)
		if !ok {
			t.Fatalf("seed %d: integral range returned %T, want int", seed, v)
		}
		if n < 18 || n > 35 {
			t.Errorf("seed %d: sampled %d outside [18, 35]", seed, n)
		}
		seen[n] = true
	}
	// both bounds reachable: the interval is inclusive
	if !seen[18] || !seen[35] {
		t.Errorf("bounds not reached in 500 draws: 18=%v 35=%v", seen[18], seen[35])
	}
}

func TestDegenerateIntRange(t *testing.T) {
	attr := NumRange(30, 30)
	if v := attr.Sample(newRNG(7)); v != 30 {
		t.Errorf("Sample([30,30]) = %v, want 30", v)
	}
}

func TestRealRangeRoundedToOneDecimal(t *testing.T) {
	attr := NumRange(1.5, 3.7)

	for seed := uint64(0); seed < 200; seed++ {
		v := attr.Sample(newRNG(seed))
		f, ok := v.(float64)
		if !ok {
			t.Fatalf("seed %d: real range returned %T, want float64", seed, v)
		}
		if f < 1.5 || f > 3.7 {
			t.Errorf("seed %d: sampled %v outside [1.5, 3.7]", seed, f)
		}
		if f != math.Round(f*10)/10 {
			t.Errorf("seed %d: %v not rounded to one decimal place", seed, f)
		}
	}
}

func TestRealRangeNarrowBoundsStayInRange(t *testing.T) {
	// Neither bound sits on the 0.1 grid, so every rounded draw would
	// land outside the interval without clamping.
	attr := NumRange(1.62, 1.69)

	for seed := uint64(0); seed < 50; seed++ {
		v := attr.Sample(newRNG(seed))
		f, ok := v.(float64)
		if !ok {
			t.Fatalf("seed %d: real range returned %T, want float64", seed, v)
		}
		if f < 1.62 || f > 1.69 {
			t.Errorf("seed %d: sampled %v outside [1.62, 1.69]", seed, f)
		}
	}
}

func TestReversedRangeBoundsNormalized(t *testing.T) {
	attr := NumRange(35, 18)
	for seed := uint64(0); seed < 50; seed++ {
		n := attr.Sample(newRNG(seed)).(int)
		if n < 18 || n > 35 {
			t.Errorf("seed %d: sampled %d outside normalized [18, 35]", seed, n)
		}
	}
}

func TestMultiChoiceSample(t *testing.T) {
	attr := MultiChoice([]string{"fitness", "travel"}, []string{"gaming"})
	v := attr.Sample(newRNG(3))
	group, ok := v.([]string)
	if !ok {
		t.Fatalf("multi-select returned %T, want []string", v)
	}
	if len(group) != 2 && len(group) != 1 {
		t.Errorf("sampled group %v is not one of the configured groups", group)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"male", "male"},
		{30, "30"},
		{2.5, "2.5"},
		{3.0, "3.0"},
		{[]string{"fitness", "travel"}, "fitness, travel"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
