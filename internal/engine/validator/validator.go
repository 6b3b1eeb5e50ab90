// Package validator evaluates the validity rules of environment descriptors.
package validator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/envspec/internal/core/domain"
	"go.trai.ch/zerr"
)

// Engine checks descriptors. It holds no state and is safe for concurrent use.
type Engine struct{}

// New creates a new Engine.
func New() *Engine {
	return &Engine{}
}

// Check evaluates every offline rule and returns the sorted report.
// Findings recorded by the loader are carried over. A descriptor that did
// not parse is reported with the loader's findings only.
func (e *Engine) Check(_ context.Context, d *domain.Descriptor) *domain.Report {
	report := domain.NewReport(d)
	report.Add(d.Problems...)
	if d.ParseError() != nil {
		report.Sort()
		return report
	}
	report.Add(checkName(d)...)
	report.Add(checkKeys(d)...)
	report.Add(checkChannels(d)...)
	report.Add(checkDependencies(d)...)
	report.Sort()
	return report
}

func checkName(d *domain.Descriptor) []domain.Finding {
	switch {
	case d.NameLine == 0:
		return []domain.Finding{domain.NewFinding(domain.RuleMissingName, 0, "name", "descriptor has no name")}
	case strings.TrimSpace(d.Name) == "":
		return []domain.Finding{domain.NewFinding(domain.RuleMissingName, d.NameLine, "name", "environment name is empty")}
	}
	return nil
}

func checkKeys(d *domain.Descriptor) []domain.Finding {
	var out []domain.Finding
	known := domain.KnownKeys()
	for _, key := range d.Keys {
		if !slices.Contains(known, key.Name) {
			out = append(out, domain.NewFinding(domain.RuleUnknownKey, key.Line, key.Name,
				fmt.Sprintf("unknown top-level key %q", key.Name)))
		}
	}
	return out
}

func checkChannels(d *domain.Descriptor) []domain.Finding {
	var out []domain.Finding
	seen := make(map[string]int, len(d.Channels))
	for _, ch := range d.Channels {
		name := strings.TrimSpace(ch.Name)
		if name == "" {
			out = append(out, domain.NewFinding(domain.RuleEmptyChannel, ch.Line, "channels", "channel entry is empty"))
			continue
		}
		if first, ok := seen[name]; ok {
			out = append(out, domain.NewFinding(domain.RuleDuplicateChannel, ch.Line, name,
				fmt.Sprintf("channel %s is listed twice (first on line %d)", name, first)))
			continue
		}
		seen[name] = ch.Line
	}
	return out
}

type nameKey struct {
	source domain.Source
	name   domain.PackageName
}

//nolint:cyclop // One pass over the entries, one branch per rule.
func checkDependencies(d *domain.Descriptor) []domain.Finding {
	var out []domain.Finding
	seen := make(map[nameKey]int, d.Len())

	for dep := range d.All() {
		if dep.SpecErr != nil {
			out = append(out, domain.NewFinding(domain.RuleMalformedEntry, dep.Line, dep.Raw,
				fmt.Sprintf("cannot split %q into name, version and build: %s", dep.Raw, reason(dep.SpecErr))))
			continue
		}
		if dep.Passthrough {
			continue
		}
		if dep.Name.IsZero() {
			out = append(out, domain.NewFinding(domain.RuleEmptyName, dep.Line, dep.Raw,
				fmt.Sprintf("entry %q has no package name", dep.Raw)))
			continue
		}

		name := dep.DisplayName
		if !ValidName(name) {
			out = append(out, domain.NewFinding(domain.RuleInvalidName, dep.Line, name,
				fmt.Sprintf("package name %q contains characters conda does not allow", name)))
		}

		key := nameKey{source: dep.Source, name: dep.Name}
		if first, ok := seen[key]; ok {
			out = append(out, domain.NewFinding(domain.RuleDuplicatePackage, dep.Line, name,
				fmt.Sprintf("%s is declared twice (first on line %d)", name, first)))
		} else {
			seen[key] = dep.Line
		}

		switch {
		case dep.ConstraintErr != nil:
			out = append(out, domain.NewFinding(domain.RuleInvalidConstraint, dep.Line, name,
				fmt.Sprintf("invalid version constraint %q for %s: %s", dep.Constraint, name, reason(dep.ConstraintErr))))
		case dep.Versions.Empty():
			out = append(out, domain.NewFinding(domain.RuleUnsatisfiable, dep.Line, name,
				fmt.Sprintf("constraint %q for %s admits no version", dep.Constraint, name)))
		case !dep.Pinned():
			out = append(out, domain.NewFinding(domain.RuleUnpinned, dep.Line, name,
				fmt.Sprintf("%s has no version constraint", name)))
		}
	}
	return out
}

// ValidName reports whether name uses only letters, digits, '.', '-' and '_'
// and starts with a letter or digit.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case i > 0 && (r == '.' || r == '-' || r == '_'):
		default:
			return false
		}
	}
	return true
}

// reason extracts the "reason" metadata of a parse error, falling back to its text.
func reason(err error) string {
	var zErr *zerr.Error
	if errors.As(err, &zErr) {
		if r, ok := zErr.Metadata()["reason"].(string); ok {
			return r
		}
	}
	return err.Error()
}
