// Package config loads environment descriptors and envspec settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/envspec/internal/core/domain"
	"go.trai.ch/envspec/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.DescriptorLoader and ports.SettingsLoader using YAML files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Discover walks upward from cwd and returns the first environment.yml or
// environment.yaml it finds.
func (l *Loader) Discover(cwd string) (string, error) {
	currentDir := cwd
	for {
		var found []string
		for _, name := range domain.DescriptorFileNames() {
			candidate := filepath.Join(currentDir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				found = append(found, candidate)
			}
		}
		if len(found) > 0 {
			if len(found) > 1 && l.Logger != nil {
				l.Logger.Warn(fmt.Sprintf("both %s and %s exist in %s, using %s",
					domain.DescriptorFileName, domain.AltDescriptorFileName, currentDir, filepath.Base(found[0])))
			}
			return found[0], nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrDescriptorNotFound, "cwd", cwd)
}

// Load reads the descriptor at path.
//
// Only an unreadable file fails the load. A document that is not a
// well-formed mapping yields a descriptor holding a single descriptor-parse
// problem; problems with individual keys and entries are recorded as
// findings on the returned descriptor.
func (l *Loader) Load(path string) (*domain.Descriptor, error) {
	// #nosec G304 -- path is chosen by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDescriptorReadFailed.Error()), "path", path)
	}

	d := &domain.Descriptor{
		Path:   path,
		Digest: Digest(data),
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		line, reason := yamlProblem(err)
		return unparsed(d, line, reason), nil
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return unparsed(d, 0, "document is empty"), nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return unparsed(d, doc.Line, "top level is not a mapping"), nil
	}

	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]
		d.Keys = append(d.Keys, domain.Key{Name: key.Value, Line: key.Line})

		switch key.Value {
		case "name":
			l.loadName(d, value)
		case "channels":
			l.loadChannels(d, value)
		case "dependencies":
			l.loadDependencies(d, value)
		case "prefix":
			if value.Kind == yaml.ScalarNode {
				d.Prefix = value.Value
			} else {
				d.Problems = append(d.Problems, malformed(value, "prefix", "prefix must be a string"))
			}
		case "variables":
			l.loadVariables(d, value)
		}
	}

	return d, nil
}

// Digest returns the hex xxhash64 of descriptor contents.
func Digest(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

func (l *Loader) loadName(d *domain.Descriptor, value *yaml.Node) {
	if value.Kind != yaml.ScalarNode {
		d.Problems = append(d.Problems, malformed(value, "name", "name must be a string"))
		return
	}
	d.Name = strings.TrimSpace(value.Value)
	if d.Name != "" {
		d.NameLine = value.Line
	}
}

func (l *Loader) loadChannels(d *domain.Descriptor, value *yaml.Node) {
	if isNull(value) {
		return
	}
	if value.Kind != yaml.SequenceNode {
		d.Problems = append(d.Problems, malformed(value, "channels", "channels must be a sequence"))
		return
	}
	for _, item := range value.Content {
		if item.Kind != yaml.ScalarNode {
			d.Problems = append(d.Problems, malformed(item, "channels", "channel entries must be strings"))
			continue
		}
		d.Channels = append(d.Channels, domain.Channel{Name: strings.TrimSpace(item.Value), Line: item.Line})
	}
}

func (l *Loader) loadDependencies(d *domain.Descriptor, value *yaml.Node) {
	if isNull(value) {
		return
	}
	if value.Kind != yaml.SequenceNode {
		d.Problems = append(d.Problems, malformed(value, "dependencies", "dependencies must be a sequence"))
		return
	}
	for _, item := range value.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			d.Dependencies = append(d.Dependencies, newDependency(item, domain.SourceConda))
		case yaml.MappingNode:
			l.loadNested(d, item)
		default:
			d.Problems = append(d.Problems, malformed(item, "dependencies", "dependency entries must be strings"))
		}
	}
}

// loadNested reads a mapping inside the dependencies sequence. Only the
// pip mapping is understood.
func (l *Loader) loadNested(d *domain.Descriptor, item *yaml.Node) {
	for i := 0; i+1 < len(item.Content); i += 2 {
		key, value := item.Content[i], item.Content[i+1]
		if key.Value != "pip" {
			d.Problems = append(d.Problems, malformed(key, key.Value, fmt.Sprintf("unsupported nested section %q", key.Value)))
			continue
		}
		if value.Kind != yaml.SequenceNode {
			d.Problems = append(d.Problems, malformed(value, "pip", "pip section must be a sequence"))
			continue
		}
		for _, req := range value.Content {
			if req.Kind != yaml.ScalarNode {
				d.Problems = append(d.Problems, malformed(req, "pip", "pip entries must be strings"))
				continue
			}
			d.Pip = append(d.Pip, newDependency(req, domain.SourcePip))
		}
	}
}

func (l *Loader) loadVariables(d *domain.Descriptor, value *yaml.Node) {
	if isNull(value) {
		return
	}
	if value.Kind != yaml.MappingNode {
		d.Problems = append(d.Problems, malformed(value, "variables", "variables must be a mapping"))
		return
	}
	d.Variables = make(map[string]string, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			d.Problems = append(d.Problems, malformed(val, key.Value, "variable values must be strings"))
			continue
		}
		d.Variables[key.Value] = val.Value
	}
}

func newDependency(node *yaml.Node, source domain.Source) domain.Dependency {
	dep := domain.NewDependency(node.Value, source, node.Line)
	dep.Comment = strings.TrimSpace(strings.TrimLeft(node.LineComment, "#"))
	return dep
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

func unparsed(d *domain.Descriptor, line int, reason string) *domain.Descriptor {
	d.Problems = append(d.Problems, domain.NewFinding(domain.RuleDescriptorParse, line, "", reason))
	return d
}

// yamlProblem splits a yaml.v3 error of the form "yaml: line 3: message"
// into its line and message. The line is 0 when the error names none.
func yamlProblem(err error) (int, string) {
	msg := strings.TrimPrefix(err.Error(), "yaml: ")
	rest, found := strings.CutPrefix(msg, "line ")
	if !found {
		return 0, msg
	}
	num, text, found := strings.Cut(rest, ": ")
	line, convErr := strconv.Atoi(num)
	if !found || convErr != nil {
		return 0, msg
	}
	return line, text
}

func malformed(node *yaml.Node, subject, message string) domain.Finding {
	return domain.NewFinding(domain.RuleMalformedEntry, node.Line, subject, message)
}
