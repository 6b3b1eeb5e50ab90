package domain

import (
	"slices"
	"strings"
)

// Bound is one end of an Interval. A Bound with Unbounded set ignores Version.
type Bound struct {
	Version   Version
	Inclusive bool
	Unbounded bool
}

// Interval is a contiguous range of versions.
type Interval struct {
	Lower Bound
	Upper Bound
}

// Empty reports whether no version can satisfy the interval,
// i.e. the lower bound is not strictly below the upper bound.
func (iv Interval) Empty() bool {
	if iv.Lower.Unbounded || iv.Upper.Unbounded {
		return false
	}
	c := iv.Lower.Version.Compare(iv.Upper.Version)
	if c > 0 {
		return true
	}
	if c == 0 {
		return !iv.Lower.Inclusive || !iv.Upper.Inclusive
	}
	return false
}

// Contains reports whether v lies inside the interval.
func (iv Interval) Contains(v Version) bool {
	if !iv.Lower.Unbounded {
		c := v.Compare(iv.Lower.Version)
		if c < 0 || (c == 0 && !iv.Lower.Inclusive) {
			return false
		}
	}
	if !iv.Upper.Unbounded {
		c := v.Compare(iv.Upper.Version)
		if c > 0 || (c == 0 && !iv.Upper.Inclusive) {
			return false
		}
	}
	return true
}

// String renders the interval in mathematical notation, e.g. "[1.13, 2.0)".
func (iv Interval) String() string {
	var b strings.Builder
	if iv.Lower.Unbounded {
		b.WriteString("(-inf")
	} else {
		if iv.Lower.Inclusive {
			b.WriteByte('[')
		} else {
			b.WriteByte('(')
		}
		b.WriteString(iv.Lower.Version.String())
	}
	b.WriteString(", ")
	if iv.Upper.Unbounded {
		b.WriteString("+inf)")
	} else {
		b.WriteString(iv.Upper.Version.String())
		if iv.Upper.Inclusive {
			b.WriteByte(']')
		} else {
			b.WriteByte(')')
		}
	}
	return b.String()
}

func (iv Interval) intersect(o Interval) Interval {
	return Interval{
		Lower: tighterLower(iv.Lower, o.Lower),
		Upper: tighterUpper(iv.Upper, o.Upper),
	}
}

func tighterLower(a, b Bound) Bound {
	switch {
	case a.Unbounded:
		return b
	case b.Unbounded:
		return a
	}
	switch c := a.Version.Compare(b.Version); {
	case c > 0:
		return a
	case c < 0:
		return b
	}
	if !a.Inclusive {
		return a
	}
	return b
}

func tighterUpper(a, b Bound) Bound {
	switch {
	case a.Unbounded:
		return b
	case b.Unbounded:
		return a
	}
	switch c := a.Version.Compare(b.Version); {
	case c < 0:
		return a
	case c > 0:
		return b
	}
	if !a.Inclusive {
		return a
	}
	return b
}

// compareLower orders lower bounds; unbounded sorts first, inclusive before exclusive.
func compareLower(a, b Bound) int {
	switch {
	case a.Unbounded && b.Unbounded:
		return 0
	case a.Unbounded:
		return -1
	case b.Unbounded:
		return 1
	}
	if c := a.Version.Compare(b.Version); c != 0 {
		return c
	}
	switch {
	case a.Inclusive == b.Inclusive:
		return 0
	case a.Inclusive:
		return -1
	default:
		return 1
	}
}

// reaches reports whether an interval ending at upper touches or overlaps one starting at lower.
func reaches(upper, lower Bound) bool {
	if upper.Unbounded || lower.Unbounded {
		return true
	}
	c := upper.Version.Compare(lower.Version)
	if c != 0 {
		return c > 0
	}
	return upper.Inclusive || lower.Inclusive
}

// VersionSet is a union of disjoint intervals, kept sorted by lower bound.
// The zero value is the empty set.
type VersionSet struct {
	intervals []Interval
}

// AnyVersion returns the set containing every version.
func AnyVersion() VersionSet {
	return VersionSet{intervals: []Interval{{
		Lower: Bound{Unbounded: true},
		Upper: Bound{Unbounded: true},
	}}}
}

// Exactly returns the set containing only versions equal to v.
func Exactly(v Version) VersionSet {
	return NewVersionSet(Interval{
		Lower: Bound{Version: v, Inclusive: true},
		Upper: Bound{Version: v, Inclusive: true},
	})
}

// AtLeast returns [v, +inf) or (v, +inf).
func AtLeast(v Version, inclusive bool) VersionSet {
	return NewVersionSet(Interval{
		Lower: Bound{Version: v, Inclusive: inclusive},
		Upper: Bound{Unbounded: true},
	})
}

// AtMost returns (-inf, v] or (-inf, v).
func AtMost(v Version, inclusive bool) VersionSet {
	return NewVersionSet(Interval{
		Lower: Bound{Unbounded: true},
		Upper: Bound{Version: v, Inclusive: inclusive},
	})
}

// NewVersionSet builds a normalized set from arbitrary intervals.
func NewVersionSet(intervals ...Interval) VersionSet {
	kept := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if !iv.Empty() {
			kept = append(kept, iv)
		}
	}
	slices.SortStableFunc(kept, func(a, b Interval) int {
		return compareLower(a.Lower, b.Lower)
	})

	merged := make([]Interval, 0, len(kept))
	for _, iv := range kept {
		if n := len(merged); n > 0 && reaches(merged[n-1].Upper, iv.Lower) {
			last := &merged[n-1]
			last.Upper = looserUpper(last.Upper, iv.Upper)
			continue
		}
		merged = append(merged, iv)
	}
	return VersionSet{intervals: merged}
}

func looserUpper(a, b Bound) Bound {
	switch {
	case a.Unbounded:
		return a
	case b.Unbounded:
		return b
	}
	switch c := a.Version.Compare(b.Version); {
	case c > 0:
		return a
	case c < 0:
		return b
	}
	if a.Inclusive {
		return a
	}
	return b
}

// Intervals returns a copy of the normalized intervals.
func (s VersionSet) Intervals() []Interval {
	return slices.Clone(s.intervals)
}

// Empty reports whether the set is unsatisfiable.
func (s VersionSet) Empty() bool {
	return len(s.intervals) == 0
}

// IsAny reports whether the set places no restriction on the version.
func (s VersionSet) IsAny() bool {
	return len(s.intervals) == 1 && s.intervals[0].Lower.Unbounded && s.intervals[0].Upper.Unbounded
}

// Contains reports whether v satisfies the set.
func (s VersionSet) Contains(v Version) bool {
	for _, iv := range s.intervals {
		if iv.Contains(v) {
			return true
		}
	}
	return false
}

// Intersect returns the versions contained in both sets.
func (s VersionSet) Intersect(o VersionSet) VersionSet {
	out := make([]Interval, 0, len(s.intervals)*len(o.intervals))
	for _, a := range s.intervals {
		for _, b := range o.intervals {
			out = append(out, a.intersect(b))
		}
	}
	return NewVersionSet(out...)
}

// Union returns the versions contained in either set.
func (s VersionSet) Union(o VersionSet) VersionSet {
	all := make([]Interval, 0, len(s.intervals)+len(o.intervals))
	all = append(all, s.intervals...)
	all = append(all, o.intervals...)
	return NewVersionSet(all...)
}

// Complement returns every version not contained in s.
func (s VersionSet) Complement() VersionSet {
	if s.Empty() {
		return AnyVersion()
	}
	out := make([]Interval, 0, len(s.intervals)+1)
	prev := Bound{Unbounded: true}
	for _, iv := range s.intervals {
		if !iv.Lower.Unbounded {
			out = append(out, Interval{
				Lower: prev,
				Upper: Bound{Version: iv.Lower.Version, Inclusive: !iv.Lower.Inclusive},
			})
		}
		if iv.Upper.Unbounded {
			return NewVersionSet(out...)
		}
		prev = Bound{Version: iv.Upper.Version, Inclusive: !iv.Upper.Inclusive}
	}
	out = append(out, Interval{Lower: prev, Upper: Bound{Unbounded: true}})
	return NewVersionSet(out...)
}

// Bounds returns the overall lower and upper bound of the set.
// The second return value is false for the empty set.
func (s VersionSet) Bounds() (Interval, bool) {
	if s.Empty() {
		return Interval{}, false
	}
	return Interval{
		Lower: s.intervals[0].Lower,
		Upper: s.intervals[len(s.intervals)-1].Upper,
	}, true
}

// String renders the set as intervals joined by " | ", or "{}" when empty.
func (s VersionSet) String() string {
	if s.Empty() {
		return "{}"
	}
	parts := make([]string, len(s.intervals))
	for i, iv := range s.intervals {
		parts[i] = iv.String()
	}
	return strings.Join(parts, " | ")
}
