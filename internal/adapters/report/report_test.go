package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envspec/internal/adapters/report"
	"go.trai.ch/envspec/internal/core/domain"
)

func sampleReport() *domain.Report {
	r := &domain.Report{Path: "environment.yml", Environment: "ect", Dependencies: 17}
	r.Add(
		domain.NewFinding(domain.RuleMissingName, 0, "", "descriptor has no name"),
		domain.NewFinding(domain.RuleDuplicatePackage, 17, "numpy", "numpy is declared twice (first on line 9)"),
		domain.NewFinding(domain.RuleUnpinned, 20, "shapely", "shapely has no version constraint"),
	)
	return r
}

func sampleDependencies() []domain.Dependency {
	numpy := domain.NewDependency("numpy >=1.13,<2.0", domain.SourceConda, 17)
	numpy.Comment = "pinned below 2.0"
	return []domain.Dependency{
		domain.NewDependency("python=3.6", domain.SourceConda, 6),
		numpy,
		domain.NewDependency("conda-forge::shapely", domain.SourceConda, 20),
		domain.NewDependency("owslib==0.14.0", domain.SourcePip, 26),
	}
}

func TestTextRenderer_Render(t *testing.T) {
	warnings := &domain.Report{Path: "environment.yml", Dependencies: 1}
	warnings.Add(
		domain.NewFinding(domain.RuleDuplicateChannel, 3, "conda-forge", "channel conda-forge is listed twice"),
		domain.NewFinding(domain.RuleDuplicateChannel, 4, "defaults", "channel defaults is listed twice"),
	)

	tests := []struct {
		name       string
		report     *domain.Report
		goldenName string
	}{
		{name: "mixed severities", report: sampleReport(), goldenName: "text_report"},
		{name: "no findings", report: &domain.Report{Path: "environment.yml", Dependencies: 17}, goldenName: "text_report_clean"},
		{name: "warnings only", report: warnings, goldenName: "text_report_warnings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			var buf bytes.Buffer
			require.NoError(t, report.NewTextRenderer().Render(&buf, tt.report))

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestTextRenderer_RenderDependencies(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	require.NoError(t, report.NewTextRenderer().RenderDependencies(&buf, sampleDependencies()))

	g := goldie.New(t)
	g.Assert(t, "text_dependencies", buf.Bytes())
}

func TestTextRenderer_RenderSingleDependency(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	require.NoError(t, report.NewTextRenderer().RenderDependencies(&buf, sampleDependencies()[1:2]))

	g := goldie.New(t)
	g.Assert(t, "text_show", buf.Bytes())
}

func TestTextRenderer_InvalidEntries(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	deps := []domain.Dependency{
		domain.NewDependency("scipy >=1.0 <2.0", domain.SourceConda, 3),
		domain.NewDependency("pandas >=1..2", domain.SourceConda, 4),
		domain.NewDependency("-e .", domain.SourcePip, 5),
	}

	var buf bytes.Buffer
	require.NoError(t, report.NewTextRenderer().RenderDependencies(&buf, deps))

	out := buf.String()
	assert.Contains(t, out, "scipy >=1.0 <2.0")
	assert.Contains(t, out, "invalid")
	assert.Contains(t, out, "-e .")
	assert.NotContains(t, out, "\x1b[")
}

func TestJSONRenderer_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.NewJSONRenderer().Render(&buf, sampleReport()))

	var got struct {
		Path     string `json:"path"`
		Findings []struct {
			Rule     string `json:"rule"`
			Severity string `json:"severity"`
			Line     int    `json:"line"`
		} `json:"findings"`
		Summary domain.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "environment.yml", got.Path)
	require.Len(t, got.Findings, 3)
	assert.Equal(t, "duplicate-package", got.Findings[1].Rule)
	assert.Equal(t, "error", got.Findings[1].Severity)
	assert.Equal(t, 17, got.Findings[1].Line)
	assert.Equal(t, domain.Summary{Errors: 1, Warnings: 1, Infos: 1, Dependencies: 17}, got.Summary)
}

func TestJSONRenderer_EmptyFindingsIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.NewJSONRenderer().Render(&buf, &domain.Report{Path: "environment.yml"}))

	assert.Contains(t, buf.String(), `"findings": []`)
}

func TestJSONRenderer_RenderDependencies(t *testing.T) {
	deps := append(sampleDependencies(), domain.NewDependency("pandas >=1..2", domain.SourceConda, 30))

	var buf bytes.Buffer
	require.NoError(t, report.NewJSONRenderer().RenderDependencies(&buf, deps))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 5)

	assert.Equal(t, "numpy", got[1]["name"])
	assert.Equal(t, "[1.13, 2.0)", got[1]["range"])
	assert.Equal(t, "pinned below 2.0", got[1]["comment"])
	assert.Equal(t, "conda-forge", got[2]["channel"])
	assert.Equal(t, "pip", got[3]["source"])
	assert.NotEmpty(t, got[4]["error"])
	assert.NotContains(t, got[4], "range")
}

func TestFactory_Renderer(t *testing.T) {
	f := report.NewFactory()

	text, err := f.Renderer("")
	require.NoError(t, err)
	assert.IsType(t, &report.TextRenderer{}, text)

	text, err = f.Renderer("TEXT")
	require.NoError(t, err)
	assert.IsType(t, &report.TextRenderer{}, text)

	js, err := f.Renderer("json")
	require.NoError(t, err)
	assert.IsType(t, &report.JSONRenderer{}, js)

	_, err = f.Renderer("sarif")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnknownFormat.Error())
}
