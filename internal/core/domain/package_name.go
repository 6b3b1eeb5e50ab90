package domain

import (
	"strings"
	"unique"
)

// PackageName is an interned, normalized package identifier.
//
// Conda names are compared case-insensitively. Pip names are additionally
// normalized per PEP 503, so "Foo_Bar", "foo.bar" and "foo-bar" are the same
// package. Names repeat across descriptors, reports and caches, so they are
// interned to make comparisons and map keys cheap.
type PackageName struct {
	h unique.Handle[string]
}

// NewPackageName normalizes name for the given source and interns it.
func NewPackageName(name string, source Source) PackageName {
	n := strings.ToLower(strings.TrimSpace(name))
	if source == SourcePip {
		n = strings.Map(func(r rune) rune {
			if r == '_' || r == '.' {
				return '-'
			}
			return r
		}, n)
		for strings.Contains(n, "--") {
			n = strings.ReplaceAll(n, "--", "-")
		}
	}
	return PackageName{h: unique.Make(n)}
}

// String returns the normalized name.
func (p PackageName) String() string {
	var zero unique.Handle[string]
	if p.h == zero {
		return ""
	}
	return p.h.Value()
}

// IsZero reports whether the name is empty.
func (p PackageName) IsZero() bool {
	return p.String() == ""
}

// MarshalText implements encoding.TextMarshaler.
func (p PackageName) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// The text is assumed to be already normalized.
func (p *PackageName) UnmarshalText(text []byte) error {
	p.h = unique.Make(string(text))
	return nil
}
