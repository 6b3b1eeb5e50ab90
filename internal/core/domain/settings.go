package domain

import (
	"slices"
	"time"

	"go.trai.ch/zerr"
)

// Settings tune how descriptors are checked. The zero value is not useful;
// start from DefaultSettings.
type Settings struct {
	// Severity overrides the default severity of individual rules.
	Severity map[RuleID]Severity
	// Ignore drops findings of the listed rules from reports.
	Ignore []RuleID
	// IndexURL is the base URL of the channel package API.
	IndexURL string
	// IndexTTL is how long cached index responses and stored reports stay
	// fresh. Zero or less means they never expire.
	IndexTTL time.Duration
	// Parallelism bounds concurrent index lookups.
	Parallelism int
}

// DefaultSettings returns the settings used when no settings file exists.
func DefaultSettings() Settings {
	return Settings{
		Severity:    map[RuleID]Severity{},
		IndexURL:    DefaultIndexURL,
		IndexTTL:    DefaultIndexTTL,
		Parallelism: DefaultParallelism,
	}
}

// Validate rejects overrides and ignores that name unknown rules.
func (s Settings) Validate() error {
	for id := range s.Severity {
		if _, ok := LookupRule(id); !ok {
			return zerr.With(ErrUnknownRule, "rule", string(id))
		}
	}
	for _, id := range s.Ignore {
		if _, ok := LookupRule(id); !ok {
			return zerr.With(ErrUnknownRule, "rule", string(id))
		}
	}
	return nil
}

// WithinTTL reports whether cached data of the given age is still fresh.
// A ttl of zero or less never expires.
func WithinTTL(age, ttl time.Duration) bool {
	return ttl <= 0 || age < ttl
}

// Ignored reports whether findings of the rule are dropped.
func (s Settings) Ignored(id RuleID) bool {
	return slices.Contains(s.Ignore, id)
}

// Apply drops ignored findings and applies severity overrides in place.
func (s Settings) Apply(r *Report) {
	kept := r.Findings[:0]
	for _, f := range r.Findings {
		if s.Ignored(f.Rule) {
			continue
		}
		if sev, ok := s.Severity[f.Rule]; ok {
			f.Severity = sev
		}
		kept = append(kept, f)
	}
	r.Findings = kept
}
