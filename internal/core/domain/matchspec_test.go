package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envspec/internal/core/domain"
)

func TestParseMatchSpec(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.MatchSpec
	}{
		{"python", domain.MatchSpec{Name: "python"}},
		{"  python  ", domain.MatchSpec{Name: "python"}},
		{"numpy >=1.13,<2.0", domain.MatchSpec{Name: "numpy", Constraint: ">=1.13,<2.0"}},
		{"numpy>=1.13,<2.0", domain.MatchSpec{Name: "numpy", Constraint: ">=1.13,<2.0"}},
		{"numpy >= 1.13, < 2.0", domain.MatchSpec{Name: "numpy", Constraint: ">=1.13,<2.0"}},
		{"python=3.6", domain.MatchSpec{Name: "python", Constraint: "=3.6"}},
		{"python=3.6=h1234_0", domain.MatchSpec{Name: "python", Constraint: "=3.6", Build: "h1234_0"}},
		{"python==3.6.8", domain.MatchSpec{Name: "python", Constraint: "==3.6.8"}},
		{"numpy==1.11.2=py36_0", domain.MatchSpec{Name: "numpy", Constraint: "==1.11.2", Build: "py36_0"}},
		{"numpy 1.13 py36_0", domain.MatchSpec{Name: "numpy", Constraint: "1.13", Build: "py36_0"}},
		{"conda-forge::xarray", domain.MatchSpec{Name: "xarray", Channel: "conda-forge"}},
		{"conda-forge::esmpy >=7.1", domain.MatchSpec{Name: "esmpy", Constraint: ">=7.1", Channel: "conda-forge"}},
		{"scipy 1.2|1.4", domain.MatchSpec{Name: "scipy", Constraint: "1.2|1.4"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := domain.ParseMatchSpec(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMatchSpec_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"bracket options", "numpy[build=py36_0]"},
		{"missing pinned version", "python="},
		{"too many separators", "python=3.6=abc=def"},
		{"missing build after exact pin", "numpy==1.11.2="},
		{"two builds after exact pin", "numpy==1.11.2=py36_0=x"},
		{"unjoined constraint terms", "numpy 1.13 >=2"},
		{"too many parts", "numpy 1.13 py36_0 extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.ParseMatchSpec(tt.raw)
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrInvalidMatchSpec.Error())
		})
	}
}

func TestParsePipRequirement(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.MatchSpec
	}{
		{"requests", domain.MatchSpec{Name: "requests"}},
		{"requests>=2.0", domain.MatchSpec{Name: "requests", Constraint: ">=2.0"}},
		{"Django[argon2] >= 3.0, < 4", domain.MatchSpec{Name: "Django", Constraint: ">=3.0,<4"}},
		{"foo (>=1.0)", domain.MatchSpec{Name: "foo", Constraint: ">=1.0"}},
		{
			"tomli>=1.1 ; python_version < '3.11'",
			domain.MatchSpec{Name: "tomli", Constraint: ">=1.1", Marker: "python_version < '3.11'"},
		},
		{"-e .", domain.MatchSpec{Passthrough: true}},
		{"--index-url https://pypi.example.org/simple", domain.MatchSpec{Passthrough: true}},
		{"mypkg @ https://example.org/mypkg-1.0.whl", domain.MatchSpec{Name: "mypkg", Passthrough: true}},
		{"git+https://github.com/example/tool.git@v1.0", domain.MatchSpec{Passthrough: true}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := domain.ParsePipRequirement(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePipRequirement_Invalid(t *testing.T) {
	for _, raw := range []string{"foo[bar>=1.0", "foo (>=1.0"} {
		t.Run(raw, func(t *testing.T) {
			_, err := domain.ParsePipRequirement(raw)
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrInvalidMatchSpec.Error())
		})
	}
}
