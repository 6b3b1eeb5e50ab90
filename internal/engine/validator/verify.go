package validator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/envspec/internal/core/domain"
	"go.trai.ch/envspec/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// fallbackChannel is consulted when a descriptor lists no channels.
const fallbackChannel = "defaults"

// Verify runs Check and then looks every conda package up on its channels,
// at most parallelism lookups at a time. Lookup failures become
// index-unavailable findings and never abort the run.
func (e *Engine) Verify(
	ctx context.Context,
	d *domain.Descriptor,
	index ports.PackageIndex,
	parallelism int,
) *domain.Report {
	report := e.Check(ctx, d)
	report.Online = true
	if d.ParseError() != nil {
		return report
	}

	if parallelism <= 0 {
		parallelism = domain.DefaultParallelism
	}

	candidates := lookupCandidates(d)
	results := make([][]domain.Finding, len(candidates))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, dep := range candidates {
		g.Go(func() error {
			results[i] = verifyDependency(groupCtx, index, dep, channelsFor(d, dep))
			return nil
		})
	}
	_ = g.Wait()

	for _, findings := range results {
		report.Add(findings...)
	}
	report.Sort()
	return report
}

// lookupCandidates returns the conda entries that parsed cleanly, one per name.
// Pip entries are resolved against PyPI, not conda channels, and are skipped.
func lookupCandidates(d *domain.Descriptor) []domain.Dependency {
	var out []domain.Dependency
	seen := make(map[domain.PackageName]bool)
	for _, dep := range d.Dependencies {
		if dep.SpecErr != nil || dep.Passthrough || dep.Name.IsZero() ||
			dep.ConstraintErr != nil || dep.Versions.Empty() || seen[dep.Name] {
			continue
		}
		seen[dep.Name] = true
		out = append(out, dep)
	}
	return out
}

// channelsFor returns the channels searched for dep, in priority order.
// An explicit "channel::name" restricts the search to that channel.
func channelsFor(d *domain.Descriptor, dep domain.Dependency) []string {
	if dep.Channel != "" {
		return []string{dep.Channel}
	}
	var out []string
	for _, name := range d.ChannelNames() {
		name = strings.TrimSpace(name)
		if name != "" && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		out = []string{fallbackChannel}
	}
	return out
}

func verifyDependency(
	ctx context.Context,
	index ports.PackageIndex,
	dep domain.Dependency,
	channels []string,
) []domain.Finding {
	name := dep.DisplayName
	var (
		found       bool
		latest      domain.Version
		unavailable []string
		lastErr     error
	)

	for _, ch := range channels {
		raw, err := index.Versions(ctx, ch, dep.Name.String())
		if errors.Is(err, domain.ErrPackageNotFound) {
			continue
		}
		if err != nil {
			unavailable = append(unavailable, ch)
			lastErr = err
			continue
		}

		found = true
		for _, text := range raw {
			v, err := domain.ParseVersion(text)
			if err != nil {
				continue
			}
			if dep.Versions.Contains(v) {
				return nil
			}
			if latest.IsZero() || v.Compare(latest) > 0 {
				latest = v
			}
		}
	}

	switch {
	case len(unavailable) > 0:
		return []domain.Finding{domain.NewFinding(domain.RuleIndexUnavailable, dep.Line, name,
			fmt.Sprintf("could not query %s for %s: %s", strings.Join(unavailable, ", "), name, reason(lastErr)))}
	case found:
		msg := fmt.Sprintf("no version of %s on %s satisfies %q", name, strings.Join(channels, ", "), dep.Constraint)
		if !latest.IsZero() {
			msg += fmt.Sprintf(" (latest is %s)", latest)
		}
		return []domain.Finding{domain.NewFinding(domain.RuleNoMatchingVersion, dep.Line, name, msg)}
	default:
		return []domain.Finding{domain.NewFinding(domain.RulePackageNotFound, dep.Line, name,
			fmt.Sprintf("%s was not found on %s", name, strings.Join(channels, ", ")))}
	}
}
