package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// devTag sorts before every other alphabetic component.
const devTag = "dev"

// postTag sorts after every other component, numeric or not.
const postTag = "post"

// component is a single run inside a version part: either digits or letters.
type component struct {
	digits string // numeric value with leading zeros trimmed; empty for letters
	text   string // alphabetic value; empty for digits
	post   bool
}

func (c component) isNumeric() bool {
	return c.text == "" || c.post
}

var zeroComponent = component{digits: "0"}

// Version is a package version ordered the way conda orders versions.
//
// The version is split into an optional epoch ("1!"), the main version and an
// optional local part ("+cuda"). The main and local parts are split into
// parts on '.' and '_' ('-' counts as '_'), and every part into runs of
// digits and letters. Runs are compared pairwise with zero padding.
type Version struct {
	raw   string
	main  [][]component
	local [][]component
}

// ParseVersion parses a version string.
func ParseVersion(s string) (Version, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	if raw == "" {
		return Version{}, zerr.With(ErrInvalidVersion, "version", s)
	}
	for _, r := range raw {
		if !isVersionRune(r) {
			return Version{}, zerr.With(zerr.With(ErrInvalidVersion, "version", s), "char", string(r))
		}
	}

	body := raw
	epoch := "0"
	if before, after, found := strings.Cut(body, "!"); found {
		if strings.Contains(after, "!") {
			return Version{}, zerr.With(ErrInvalidVersion, "version", s)
		}
		if !isDigits(before) {
			return Version{}, zerr.With(zerr.With(ErrInvalidVersion, "version", s), "epoch", before)
		}
		epoch = before
		body = after
	}

	mainText, localText, hasLocal := strings.Cut(body, "+")
	if hasLocal && (localText == "" || strings.Contains(localText, "+")) {
		return Version{}, zerr.With(ErrInvalidVersion, "version", s)
	}

	main, err := splitParts(mainText)
	if err != nil {
		return Version{}, zerr.With(err, "version", s)
	}
	main = append([][]component{{numeric(epoch)}}, main...)

	v := Version{raw: raw, main: main}
	if hasLocal {
		local, err := splitParts(localText)
		if err != nil {
			return Version{}, zerr.With(err, "version", s)
		}
		v.local = local
	}
	return v, nil
}

// MustParseVersion is like ParseVersion but panics on error.
// It is intended for constants and tests.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the normalized (lowercased) version text.
func (v Version) String() string {
	return v.raw
}

// IsZero reports whether v is the zero Version.
func (v Version) IsZero() bool {
	return v.raw == ""
}

// Compare returns -1, 0 or +1 depending on whether v sorts before, equal to or after o.
func (v Version) Compare(o Version) int {
	if c := compareParts(v.main, o.main); c != 0 {
		return c
	}
	return compareParts(v.local, o.local)
}

// Less reports whether v sorts before o.
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

// Equal reports whether v and o sort equal. "1.1" and "1.1.0" are equal.
func (v Version) Equal(o Version) bool {
	return v.Compare(o) == 0
}

// Segments returns the dot separated segments of the main version, without the epoch.
func (v Version) Segments() []string {
	body := v.raw
	if _, after, found := strings.Cut(body, "!"); found {
		body = after
	}
	body, _, _ = strings.Cut(body, "+")
	return strings.FieldsFunc(body, func(r rune) bool { return r == '.' })
}

func splitParts(s string) ([][]component, error) {
	if s == "" {
		return nil, ErrInvalidVersion
	}
	s = strings.ReplaceAll(s, "-", "_")
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == '.' || r == '_' })
	// FieldsFunc drops empty fields, so compare separator counts to detect "1..2".
	if len(fields) != strings.Count(s, ".")+strings.Count(s, "_")+1 {
		// A single trailing underscore is allowed by conda ("1.0_").
		if !strings.HasSuffix(s, "_") || strings.HasSuffix(s, "__") ||
			len(fields) != strings.Count(s, ".")+strings.Count(s, "_") {
			return nil, zerr.With(ErrInvalidVersion, "reason", "empty version component")
		}
	}

	parts := make([][]component, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, splitComponents(f))
	}
	return parts, nil
}

func splitComponents(part string) []component {
	var comps []component
	start := 0
	for i := 1; i <= len(part); i++ {
		if i < len(part) && isDigit(part[i]) == isDigit(part[start]) {
			continue
		}
		run := part[start:i]
		switch {
		case isDigit(run[0]):
			comps = append(comps, numeric(run))
		case run == postTag:
			comps = append(comps, component{post: true})
		default:
			comps = append(comps, component{text: run})
		}
		start = i
	}
	if len(comps) > 0 && !comps[0].isNumeric() {
		comps = append([]component{zeroComponent}, comps...)
	}
	return comps
}

func numeric(digits string) component {
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		trimmed = "0"
	}
	return component{digits: trimmed}
}

func compareParts(a, b [][]component) int {
	n := max(len(a), len(b))
	for i := range n {
		var pa, pb []component
		if i < len(a) {
			pa = a[i]
		}
		if i < len(b) {
			pb = b[i]
		}
		m := max(len(pa), len(pb))
		for j := range m {
			ca, cb := zeroComponent, zeroComponent
			if j < len(pa) {
				ca = pa[j]
			}
			if j < len(pb) {
				cb = pb[j]
			}
			if c := compareComponent(ca, cb); c != 0 {
				return c
			}
		}
	}
	return 0
}

func compareComponent(a, b component) int {
	switch {
	case a.post && b.post:
		return 0
	case a.post:
		return 1
	case b.post:
		return -1
	}

	aNum, bNum := a.isNumeric(), b.isNumeric()
	switch {
	case aNum && bNum:
		if len(a.digits) != len(b.digits) {
			return sign(len(a.digits) - len(b.digits))
		}
		return strings.Compare(a.digits, b.digits)
	case aNum:
		return 1
	case bNum:
		return -1
	}

	switch {
	case a.text == b.text:
		return 0
	case a.text == devTag:
		return -1
	case b.text == devTag:
		return 1
	}
	return strings.Compare(a.text, b.text)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isVersionRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9', r >= 'a' && r <= 'z':
		return true
	case r == '.', r == '_', r == '-', r == '+', r == '!':
		return true
	default:
		return false
	}
}
