package domain

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// Severity ranks findings. Higher values are more severe.
type Severity int

const (
	// SeverityInfo marks advisory findings.
	SeverityInfo Severity = iota
	// SeverityWarning marks findings that do not make the descriptor invalid.
	SeverityWarning
	// SeverityError marks violations of the descriptor's validity properties.
	SeverityError
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// ParseSeverity parses "error", "warning" (or "warn") and "info".
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	default:
		return SeverityInfo, zerr.With(ErrInvalidSeverity, "severity", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// RuleID identifies a validation rule.
type RuleID string

const (
	// RuleDescriptorParse fires when the file is not a well-formed mapping.
	RuleDescriptorParse RuleID = "descriptor-parse"
	// RuleMalformedEntry fires when an entry is not a string or cannot be split.
	RuleMalformedEntry RuleID = "malformed-entry"
	// RuleEmptyName fires when an entry has no package name.
	RuleEmptyName RuleID = "empty-name"
	// RuleInvalidName fires when a package name contains characters conda does not allow.
	RuleInvalidName RuleID = "invalid-name"
	// RuleInvalidConstraint fires when a version constraint cannot be parsed.
	RuleInvalidConstraint RuleID = "invalid-constraint"
	// RuleUnsatisfiable fires when a constraint admits no version at all.
	RuleUnsatisfiable RuleID = "unsatisfiable-constraint"
	// RuleDuplicatePackage fires when a package name is declared more than once.
	RuleDuplicatePackage RuleID = "duplicate-package"
	// RuleMissingName fires when the descriptor has no environment name.
	RuleMissingName RuleID = "missing-name"
	// RuleEmptyChannel fires when a channel entry is empty.
	RuleEmptyChannel RuleID = "empty-channel"
	// RuleDuplicateChannel fires when a channel is listed twice.
	RuleDuplicateChannel RuleID = "duplicate-channel"
	// RuleUnknownKey fires for top-level keys conda does not understand.
	RuleUnknownKey RuleID = "unknown-key"
	// RuleUnpinned fires for entries without any version constraint.
	RuleUnpinned RuleID = "unpinned-package"
	// RulePackageNotFound fires when no channel carries the package.
	RulePackageNotFound RuleID = "package-not-found"
	// RuleNoMatchingVersion fires when the channels carry the package but no admitted version.
	RuleNoMatchingVersion RuleID = "no-matching-version"
	// RuleIndexUnavailable fires when a channel could not be queried.
	RuleIndexUnavailable RuleID = "index-unavailable"
)

// Rule describes a validation rule and its default severity.
type Rule struct {
	ID          RuleID
	Severity    Severity
	Description string
}

var rules = []Rule{
	{RuleDescriptorParse, SeverityError, "descriptor parses as a well-formed mapping"},
	{RuleMalformedEntry, SeverityError, "every dependency entry is a name with an optional version and build"},
	{RuleEmptyName, SeverityError, "every dependency entry has a non-empty name"},
	{RuleInvalidName, SeverityWarning, "package names use only letters, digits, '.', '-' and '_'"},
	{RuleInvalidConstraint, SeverityError, "version constraints follow the constraint grammar"},
	{RuleUnsatisfiable, SeverityError, "every version constraint admits at least one version"},
	{RuleDuplicatePackage, SeverityError, "no package name is declared twice"},
	{RuleMissingName, SeverityWarning, "the descriptor names its environment"},
	{RuleEmptyChannel, SeverityError, "channel entries are non-empty"},
	{RuleDuplicateChannel, SeverityWarning, "no channel is listed twice"},
	{RuleUnknownKey, SeverityWarning, "only known top-level keys are used"},
	{RuleUnpinned, SeverityInfo, "dependencies carry a version constraint"},
	{RulePackageNotFound, SeverityError, "every package exists on one of the channels"},
	{RuleNoMatchingVersion, SeverityError, "the channels carry a version admitted by the constraint"},
	{RuleIndexUnavailable, SeverityWarning, "channel indexes can be queried"},
}

// Rules returns every known rule in a stable order.
func Rules() []Rule {
	return slices.Clone(rules)
}

// LookupRule returns the rule with the given ID.
func LookupRule(id RuleID) (Rule, bool) {
	for _, r := range rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// Finding is one rule violation.
type Finding struct {
	Rule     RuleID   `json:"rule"`
	Severity Severity `json:"severity"`
	Line     int      `json:"line,omitzero"`
	Subject  string   `json:"subject,omitzero"`
	Message  string   `json:"message"`
}

// NewFinding creates a finding with the rule's default severity.
func NewFinding(id RuleID, line int, subject, message string) Finding {
	sev := SeverityError
	if r, ok := LookupRule(id); ok {
		sev = r.Severity
	}
	return Finding{Rule: id, Severity: sev, Line: line, Subject: subject, Message: message}
}

// Summary counts findings per severity.
type Summary struct {
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	Infos        int `json:"infos"`
	Dependencies int `json:"dependencies"`
}

// Report collects the findings for one descriptor.
type Report struct {
	Path         string    `json:"path"`
	Environment  string    `json:"environment,omitzero"`
	Digest       string    `json:"digest,omitzero"`
	Online       bool      `json:"online,omitzero"`
	Dependencies int       `json:"dependencies"`
	Findings     []Finding `json:"findings"`
	CheckedAt    time.Time `json:"checked_at,omitzero"`
}

// NewReport creates an empty report for the descriptor.
func NewReport(d *Descriptor) *Report {
	return &Report{
		Path:         d.Path,
		Environment:  d.Name,
		Digest:       d.Digest,
		Dependencies: d.Len(),
		Findings:     []Finding{},
	}
}

// Add appends findings.
func (r *Report) Add(findings ...Finding) {
	r.Findings = append(r.Findings, findings...)
}

// Sort orders findings by line, then severity (most severe first), then rule and subject.
func (r *Report) Sort() {
	slices.SortStableFunc(r.Findings, func(a, b Finding) int {
		return cmp.Or(
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(b.Severity, a.Severity),
			strings.Compare(string(a.Rule), string(b.Rule)),
			strings.Compare(a.Subject, b.Subject),
		)
	})
}

// Summary counts the findings per severity.
func (r *Report) Summary() Summary {
	s := Summary{Dependencies: r.Dependencies}
	for _, f := range r.Findings {
		switch f.Severity {
		case SeverityError:
			s.Errors++
		case SeverityWarning:
			s.Warnings++
		default:
			s.Infos++
		}
	}
	return s
}

// HasErrors reports whether any finding has error severity.
func (r *Report) HasErrors() bool {
	return r.Summary().Errors > 0
}

// ByRule returns the findings of a single rule.
func (r *Report) ByRule(id RuleID) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Rule == id {
			out = append(out, f)
		}
	}
	return out
}
