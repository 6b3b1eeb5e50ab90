package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

const operatorChars = "=<>!~"

// MatchSpec is a dependency entry split into its parts.
type MatchSpec struct {
	// Name is the package name as written. It is empty when the entry has no name.
	Name string
	// Constraint is the raw version constraint, e.g. ">=1.13,<2.0" or "=3.5".
	Constraint string
	// Build is the optional conda build string, e.g. "py36_0".
	Build string
	// Channel is the optional provenance hint from "channel::name".
	Channel string
	// Marker is the optional PEP 508 environment marker of a pip requirement.
	Marker string
	// Passthrough marks pip lines that are options or direct URLs, handed to pip unchanged.
	Passthrough bool
}

// ParseMatchSpec splits a conda dependency entry.
//
// Accepted forms are "name", "name constraint", "name constraint build",
// "name=1.2", "name=1.2=build", "name==1.2", "name==1.2=build", "name>=1.2"
// and any of these prefixed with "channel::". Whitespace around operators and commas is
// tolerated (">= 1.13, < 2.0").
func ParseMatchSpec(raw string) (MatchSpec, error) {
	var spec MatchSpec
	s := strings.TrimSpace(raw)

	if channel, rest, found := strings.Cut(s, "::"); found {
		spec.Channel = strings.TrimSpace(channel)
		s = strings.TrimSpace(rest)
	}
	if strings.ContainsAny(s, "[]") {
		return spec, invalidMatchSpec(raw, "bracket options are not supported")
	}

	i := strings.IndexAny(s, " \t"+operatorChars)
	if i < 0 {
		spec.Name = s
		return spec, nil
	}
	spec.Name = s[:i]
	rest := strings.TrimSpace(s[i:])

	// "name=1.2=build" pins with single '=' separators.
	if s[i] == '=' && !strings.HasPrefix(rest, "==") && !strings.ContainsAny(rest, " \t") {
		fields := strings.Split(rest[1:], "=")
		switch len(fields) {
		case 1:
			spec.Constraint = "=" + fields[0]
		case 2:
			spec.Constraint = "=" + fields[0]
			spec.Build = fields[1]
		default:
			return spec, invalidMatchSpec(raw, "too many '=' separators")
		}
		if fields[0] == "" {
			return spec, invalidMatchSpec(raw, "missing version after '='")
		}
		return spec, nil
	}

	// "name==1.2=build" pins exactly and names a build.
	if strings.HasPrefix(rest, "==") && !strings.ContainsAny(rest, " \t,|<>!~") {
		if version, build, found := strings.Cut(rest[2:], "="); found && version != "" {
			if build == "" || strings.Contains(build, "=") {
				return spec, invalidMatchSpec(raw, "expected a single build after '=='")
			}
			spec.Constraint = "==" + version
			spec.Build = build
			return spec, nil
		}
	}

	tokens := mergeConstraintTokens(strings.Fields(rest))
	switch len(tokens) {
	case 0:
	case 1:
		spec.Constraint = tokens[0]
	case 2:
		if strings.ContainsAny(tokens[1][:1], operatorChars+",|") {
			return spec, invalidMatchSpec(raw, "constraint terms must be joined with ',' or '|'")
		}
		spec.Constraint = tokens[0]
		spec.Build = tokens[1]
	default:
		return spec, invalidMatchSpec(raw, "expected at most name, version and build")
	}
	return spec, nil
}

// mergeConstraintTokens glues whitespace separated pieces of one constraint
// back together, so ">= 1.13, < 2.0" yields a single ">=1.13,<2.0" token.
func mergeConstraintTokens(fields []string) []string {
	var tokens []string
	for _, f := range fields {
		n := len(tokens)
		if n > 0 && (endsWithJoiner(tokens[n-1]) || strings.HasPrefix(f, ",") || strings.HasPrefix(f, "|")) {
			tokens[n-1] += f
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func endsWithJoiner(s string) bool {
	return s != "" && strings.ContainsAny(s[len(s)-1:], operatorChars+",|")
}

// ParsePipRequirement splits a PEP 508 requirement line from a pip section.
// Extras are dropped; options ("-e .", "--index-url ...") and bare URLs are
// returned with Passthrough set.
func ParsePipRequirement(raw string) (MatchSpec, error) {
	var spec MatchSpec
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "-") {
		spec.Passthrough = true
		return spec, nil
	}

	if req, marker, found := strings.Cut(s, ";"); found {
		spec.Marker = strings.TrimSpace(marker)
		s = strings.TrimSpace(req)
	}
	if name, _, found := strings.Cut(s, "@"); found && !strings.ContainsAny(name, ":/") {
		// Direct reference: "pkg @ https://...".
		spec.Name = strings.TrimSpace(name)
		spec.Passthrough = true
		return spec, nil
	}
	if strings.Contains(s, "://") {
		spec.Passthrough = true
		return spec, nil
	}

	i := strings.IndexAny(s, "[( \t"+operatorChars)
	if i < 0 {
		spec.Name = s
		return spec, nil
	}
	spec.Name = s[:i]
	rest := s[i:]

	if strings.HasPrefix(rest, "[") {
		end := strings.Index(rest, "]")
		if end < 0 {
			return spec, invalidMatchSpec(raw, "unterminated extras")
		}
		rest = rest[end+1:]
	}
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "(") {
		if !strings.HasSuffix(rest, ")") {
			return spec, invalidMatchSpec(raw, "unterminated parenthesis")
		}
		rest = rest[1 : len(rest)-1]
	}
	spec.Constraint = strings.Join(strings.Fields(rest), "")
	return spec, nil
}

func invalidMatchSpec(raw, reason string) error {
	return zerr.With(zerr.With(ErrInvalidMatchSpec, "entry", raw), "reason", reason)
}
