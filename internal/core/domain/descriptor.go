// Package domain contains the environment descriptor model, the conda version
// ordering and the constraint algebra used to validate descriptors.
package domain

import (
	"iter"
	"strings"

	"go.trai.ch/zerr"
)

// Source tells which resolver consumes a dependency entry.
type Source string

const (
	// SourceConda marks entries of the top-level dependencies sequence.
	SourceConda Source = "conda"
	// SourcePip marks entries of the nested pip mapping.
	SourcePip Source = "pip"
)

// Dependency is one entry of a descriptor's dependencies sequence.
type Dependency struct {
	// Name is the normalized package name used for comparisons.
	Name PackageName
	// DisplayName is the name as written in the file.
	DisplayName string
	// Constraint is the raw version constraint; empty for bare names.
	Constraint string
	// Build is the optional conda build string.
	Build string
	// Channel is the optional provenance hint from "channel::name".
	Channel string
	// Comment is the free-text rationale from the entry's line comment.
	Comment string
	// Marker is the PEP 508 environment marker of a pip requirement.
	Marker string
	// Source is conda for top-level entries and pip for the pip section.
	Source Source
	// Raw is the entry text exactly as written.
	Raw string
	// Line is the 1-based line of the entry in the descriptor.
	Line int
	// Passthrough marks pip options and direct URLs that carry no name or version.
	Passthrough bool
	// Versions is the set admitted by Constraint. It is meaningful only when ConstraintErr is nil.
	Versions VersionSet
	// ConstraintErr records why Constraint could not be parsed.
	ConstraintErr error
	// SpecErr records why the entry could not be split into name, version and build.
	SpecErr error
}

// Pinned reports whether the entry restricts the version at all.
func (d Dependency) Pinned() bool {
	return strings.TrimSpace(d.Constraint) != "" && strings.TrimSpace(d.Constraint) != "*"
}

// NewDependency parses a raw entry of the given source into a Dependency.
// Parse problems are recorded on the returned value, never returned, so that
// a descriptor with bad entries can still be reported on as a whole.
func NewDependency(raw string, source Source, line int) Dependency {
	dep := Dependency{Raw: raw, Source: source, Line: line}

	dialect := DialectConda
	parse := ParseMatchSpec
	if source == SourcePip {
		dialect = DialectPip
		parse = ParsePipRequirement
	}

	spec, err := parse(raw)
	if err != nil {
		dep.SpecErr = err
		return dep
	}

	dep.DisplayName = strings.TrimSpace(spec.Name)
	dep.Name = NewPackageName(spec.Name, source)
	dep.Constraint = spec.Constraint
	dep.Build = spec.Build
	dep.Channel = spec.Channel
	dep.Marker = spec.Marker
	dep.Passthrough = spec.Passthrough

	dep.Versions, dep.ConstraintErr = ParseConstraint(spec.Constraint, dialect)
	return dep
}

// Channel is one entry of the channels sequence.
type Channel struct {
	Name string
	Line int
}

// Key is a top-level key of the descriptor mapping.
type Key struct {
	Name string
	Line int
}

// KnownKeys are the top-level keys understood by conda for environment files.
func KnownKeys() []string {
	return []string{"name", "channels", "dependencies", "prefix", "variables"}
}

// Descriptor is a parsed environment descriptor.
type Descriptor struct {
	// Path is the file the descriptor was read from.
	Path string
	// Digest identifies the exact file contents the descriptor was parsed from.
	Digest string
	// Name is the environment name; NameLine is 0 when the key is absent.
	Name     string
	NameLine int
	// Channels keeps the declared source order.
	Channels []Channel
	// Dependencies are the conda entries, in file order.
	Dependencies []Dependency
	// Pip are the entries of the nested pip mapping, in file order.
	Pip []Dependency
	// Prefix is the optional install prefix.
	Prefix string
	// Variables are the optional environment variables.
	Variables map[string]string
	// Keys lists every top-level key in file order.
	Keys []Key
	// Problems are structural findings recorded while loading.
	Problems []Finding
}

// Len returns the number of dependency entries, conda and pip together.
// The "pip:" mapping itself is not an entry.
func (d *Descriptor) Len() int {
	return len(d.Dependencies) + len(d.Pip)
}

// All yields every dependency entry, conda entries first.
func (d *Descriptor) All() iter.Seq[Dependency] {
	return func(yield func(Dependency) bool) {
		for _, dep := range d.Dependencies {
			if !yield(dep) {
				return
			}
		}
		for _, dep := range d.Pip {
			if !yield(dep) {
				return
			}
		}
	}
}

// Lookup finds the first entry for name, searching conda entries before pip ones.
func (d *Descriptor) Lookup(name string) (Dependency, bool) {
	conda := NewPackageName(name, SourceConda)
	for _, dep := range d.Dependencies {
		if dep.Name == conda {
			return dep, true
		}
	}
	pip := NewPackageName(name, SourcePip)
	for _, dep := range d.Pip {
		if dep.Name == pip {
			return dep, true
		}
	}
	return Dependency{}, false
}

// ChannelNames returns the channel names in declared order.
func (d *Descriptor) ChannelNames() []string {
	names := make([]string, len(d.Channels))
	for i, c := range d.Channels {
		names[i] = c.Name
	}
	return names
}

// ParseError returns the descriptor-parse problem recorded by the loader as an
// error, or nil when the file parsed as a mapping. A descriptor that failed to
// parse carries no keys or entries.
func (d *Descriptor) ParseError() error {
	for _, p := range d.Problems {
		if p.Rule != RuleDescriptorParse {
			continue
		}
		err := zerr.With(ErrDescriptorParseFailed, "path", d.Path)
		if p.Line > 0 {
			err = zerr.With(err, "line", p.Line)
		}
		return zerr.With(err, "reason", p.Message)
	}
	return nil
}
