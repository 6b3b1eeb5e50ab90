package report

import (
	"encoding/json"
	"io"

	"go.trai.ch/envspec/internal/core/domain"
	"go.trai.ch/envspec/internal/core/ports"
)

var _ ports.Renderer = (*JSONRenderer)(nil)

// JSONRenderer writes machine-readable output.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSON renderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

type jsonReport struct {
	Path        string           `json:"path"`
	Environment string           `json:"environment,omitzero"`
	Online      bool             `json:"online"`
	Findings    []domain.Finding `json:"findings"`
	Summary     domain.Summary   `json:"summary"`
}

// Render writes {"path", "findings", "summary"}.
func (r *JSONRenderer) Render(w io.Writer, report *domain.Report) error {
	findings := report.Findings
	if findings == nil {
		findings = []domain.Finding{}
	}
	return encode(w, jsonReport{
		Path:        report.Path,
		Environment: report.Environment,
		Online:      report.Online,
		Findings:    findings,
		Summary:     report.Summary(),
	})
}

type jsonDependency struct {
	Name        string `json:"name,omitzero"`
	Normalized  string `json:"normalized,omitzero"`
	Source      string `json:"source"`
	Constraint  string `json:"constraint,omitzero"`
	Range       string `json:"range,omitzero"`
	Build       string `json:"build,omitzero"`
	Channel     string `json:"channel,omitzero"`
	Marker      string `json:"marker,omitzero"`
	Comment     string `json:"comment,omitzero"`
	Line        int    `json:"line"`
	Raw         string `json:"raw"`
	Passthrough bool   `json:"passthrough,omitzero"`
	Error       string `json:"error,omitzero"`
}

// RenderDependencies writes a JSON array of entries.
func (r *JSONRenderer) RenderDependencies(w io.Writer, deps []domain.Dependency) error {
	out := make([]jsonDependency, 0, len(deps))
	for _, dep := range deps {
		jd := jsonDependency{
			Name:        dep.DisplayName,
			Normalized:  dep.Name.String(),
			Source:      string(dep.Source),
			Constraint:  dep.Constraint,
			Build:       dep.Build,
			Channel:     dep.Channel,
			Marker:      dep.Marker,
			Comment:     dep.Comment,
			Line:        dep.Line,
			Raw:         dep.Raw,
			Passthrough: dep.Passthrough,
		}
		switch {
		case dep.SpecErr != nil:
			jd.Error = dep.SpecErr.Error()
		case dep.ConstraintErr != nil:
			jd.Error = dep.ConstraintErr.Error()
		case !dep.Passthrough:
			jd.Range = dep.Versions.String()
		}
		out = append(out, jd)
	}
	return encode(w, out)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
