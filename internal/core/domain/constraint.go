package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Dialect selects the constraint grammar.
type Dialect int

const (
	// DialectConda is the conda match-spec version grammar.
	DialectConda Dialect = iota
	// DialectPip is the PEP 440 specifier grammar used in pip sections.
	DialectPip
)

// String returns the dialect name.
func (d Dialect) String() string {
	if d == DialectPip {
		return "pip"
	}
	return "conda"
}

// operators in match order; longer operators must precede their prefixes.
var operators = []string{"===", "==", "!=", "~=", ">=", "<=", ">", "<", "="}

// ParseConstraint parses a version constraint into the set of versions it admits.
//
// In the conda dialect ',' joins terms with AND and '|' joins groups with OR,
// AND binding tighter. An empty constraint or "*" admits every version.
func ParseConstraint(text string, dialect Dialect) (VersionSet, error) {
	text = strings.TrimSpace(text)
	if text == "" || text == "*" {
		return AnyVersion(), nil
	}
	if strings.ContainsAny(text, "()") {
		return VersionSet{}, invalidConstraint(text, "parentheses are not supported")
	}

	groups := []string{text}
	if dialect == DialectConda {
		groups = strings.Split(text, "|")
	} else if strings.Contains(text, "|") {
		return VersionSet{}, invalidConstraint(text, "'|' is not valid in pip specifiers")
	}

	var result VersionSet
	for _, group := range groups {
		set := AnyVersion()
		for term := range strings.SplitSeq(group, ",") {
			termSet, err := parseTerm(strings.TrimSpace(term), dialect)
			if err != nil {
				return VersionSet{}, zerr.With(err, "constraint", text)
			}
			set = set.Intersect(termSet)
		}
		result = result.Union(set)
	}
	return result, nil
}

func parseTerm(term string, dialect Dialect) (VersionSet, error) {
	if term == "" {
		return VersionSet{}, invalidConstraint(term, "empty term")
	}
	if term == "*" && dialect == DialectConda {
		return AnyVersion(), nil
	}

	op := ""
	for _, candidate := range operators {
		if strings.HasPrefix(term, candidate) {
			op = candidate
			break
		}
	}
	operand := strings.TrimSpace(strings.TrimPrefix(term, op))
	if operand == "" {
		return VersionSet{}, invalidConstraint(term, "missing version")
	}
	wildcard := strings.HasSuffix(operand, "*")

	switch op {
	case "":
		if dialect == DialectPip {
			return VersionSet{}, invalidConstraint(term, "missing operator")
		}
		if wildcard {
			return prefixSet(operand)
		}
		return exactSet(operand)
	case "=":
		if dialect == DialectPip {
			return VersionSet{}, invalidConstraint(term, "'=' is not valid in pip specifiers, use '=='")
		}
		return prefixSet(operand)
	case "==":
		if wildcard {
			return prefixSet(operand)
		}
		return exactSet(operand)
	case "===":
		return exactSet(operand)
	case "!=":
		var set VersionSet
		var err error
		if wildcard {
			set, err = prefixSet(operand)
		} else {
			set, err = exactSet(operand)
		}
		if err != nil {
			return VersionSet{}, err
		}
		return set.Complement(), nil
	case "~=":
		return compatibleSet(operand)
	}

	// Ordering operators ignore a trailing wildcard, as conda does.
	v, err := ParseVersion(trimWildcard(operand))
	if err != nil {
		return VersionSet{}, zerr.With(zerr.Wrap(err, ErrInvalidConstraint.Error()), "term", term)
	}
	switch op {
	case ">=":
		return AtLeast(v, true), nil
	case ">":
		return AtLeast(v, false), nil
	case "<=":
		return AtMost(v, true), nil
	default:
		return AtMost(v, false), nil
	}
}

func exactSet(operand string) (VersionSet, error) {
	v, err := ParseVersion(operand)
	if err != nil {
		return VersionSet{}, zerr.Wrap(err, ErrInvalidConstraint.Error())
	}
	return Exactly(v), nil
}

// prefixSet admits every version that starts with the given components,
// pre-releases included: "1.2.*" becomes [1.2dev, 1.3dev).
func prefixSet(operand string) (VersionSet, error) {
	prefix := trimWildcard(operand)
	if prefix == "" {
		return AnyVersion(), nil
	}
	v, err := ParseVersion(prefix)
	if err != nil {
		return VersionSet{}, zerr.Wrap(err, ErrInvalidConstraint.Error())
	}
	return boundedAbove(earliestRelease(v), v.Segments()), nil
}

// earliestRelease returns the lowest version starting with v. "1.2" becomes
// "1.2dev", which sorts before 1.2dev0, 1.2a1, 1.2.0.dev0 and 1.2 itself.
// Versions that do not end in a digit are returned unchanged.
func earliestRelease(v Version) Version {
	text := v.String()
	if text == "" || !isDigit(text[len(text)-1]) || strings.Contains(text, "+") {
		return v
	}
	earliest, err := ParseVersion(text + devTag)
	if err != nil {
		return v
	}
	return earliest
}

// compatibleSet implements "~=1.2.3", i.e. ">=1.2.3, ==1.2.*".
func compatibleSet(operand string) (VersionSet, error) {
	v, err := ParseVersion(operand)
	if err != nil {
		return VersionSet{}, zerr.Wrap(err, ErrInvalidConstraint.Error())
	}
	segments := v.Segments()
	if len(segments) < 2 {
		return VersionSet{}, invalidConstraint("~="+operand, "compatible release needs at least two components")
	}
	return boundedAbove(v, segments[:len(segments)-1]), nil
}

// boundedAbove returns [lower, next) where next is the earliest release
// after the last purely numeric segment of prefix is incremented, so the
// pre-releases of next stay outside. Without such a segment the set is
// unbounded above.
func boundedAbove(lower Version, prefix []string) VersionSet {
	idx := -1
	for i, seg := range prefix {
		if isDigits(seg) {
			idx = i
		}
	}
	if idx < 0 {
		return AtLeast(lower, true)
	}

	next := make([]string, idx+1)
	copy(next, prefix[:idx])
	next[idx] = incrementDigits(prefix[idx])

	text := strings.Join(next, ".")
	if epoch, _, found := strings.Cut(lower.String(), "!"); found {
		text = epoch + "!" + text
	}
	upper, err := ParseVersion(text + devTag)
	if err != nil {
		return AtLeast(lower, true)
	}
	return NewVersionSet(Interval{
		Lower: Bound{Version: lower, Inclusive: true},
		Upper: Bound{Version: upper},
	})
}

// incrementDigits adds one to a decimal string of arbitrary length.
func incrementDigits(s string) string {
	b := []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < '9' {
			b[i]++
			return string(b)
		}
		b[i] = '0'
	}
	return "1" + string(b)
}

func trimWildcard(s string) string {
	s = strings.TrimSuffix(s, "*")
	return strings.TrimSuffix(s, ".")
}

func invalidConstraint(term, reason string) error {
	return zerr.With(zerr.With(ErrInvalidConstraint, "term", term), "reason", reason)
}
