package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envspec/internal/core/domain"
)

func TestNewDependency(t *testing.T) {
	t.Run("conda range", func(t *testing.T) {
		dep := domain.NewDependency("numpy >=1.13,<2.0", domain.SourceConda, 7)

		require.NoError(t, dep.SpecErr)
		require.NoError(t, dep.ConstraintErr)
		assert.Equal(t, "numpy", dep.Name.String())
		assert.Equal(t, "numpy", dep.DisplayName)
		assert.Equal(t, ">=1.13,<2.0", dep.Constraint)
		assert.Equal(t, "[1.13, 2.0)", dep.Versions.String())
		assert.Equal(t, 7, dep.Line)
		assert.Equal(t, domain.SourceConda, dep.Source)
		assert.True(t, dep.Pinned())
	})

	t.Run("bare name admits everything", func(t *testing.T) {
		dep := domain.NewDependency("Cartopy", domain.SourceConda, 3)

		assert.Equal(t, "cartopy", dep.Name.String())
		assert.Equal(t, "Cartopy", dep.DisplayName)
		assert.True(t, dep.Versions.IsAny())
		assert.False(t, dep.Pinned())
	})

	t.Run("star is unpinned", func(t *testing.T) {
		dep := domain.NewDependency("pandas *", domain.SourceConda, 3)
		assert.False(t, dep.Pinned())
	})

	t.Run("pip names are normalized", func(t *testing.T) {
		dep := domain.NewDependency("Foo_Bar.baz==1.0", domain.SourcePip, 12)

		assert.Equal(t, "foo-bar-baz", dep.Name.String())
		assert.Equal(t, "[1.0, 1.0]", dep.Versions.String())
	})

	t.Run("malformed entry keeps the raw text", func(t *testing.T) {
		dep := domain.NewDependency("numpy[build=x]", domain.SourceConda, 4)

		require.Error(t, dep.SpecErr)
		assert.Equal(t, "numpy[build=x]", dep.Raw)
		assert.True(t, dep.Name.IsZero())
	})

	t.Run("bad constraint is recorded", func(t *testing.T) {
		dep := domain.NewDependency("numpy >=abc$", domain.SourceConda, 4)

		require.NoError(t, dep.SpecErr)
		require.Error(t, dep.ConstraintErr)
		assert.ErrorContains(t, dep.ConstraintErr, domain.ErrInvalidConstraint.Error())
	})
}

func TestDescriptor_Queries(t *testing.T) {
	d := &domain.Descriptor{
		Path:     "environment.yml",
		Name:     "ect",
		Channels: []domain.Channel{{Name: "conda-forge", Line: 3}, {Name: "defaults", Line: 4}},
		Dependencies: []domain.Dependency{
			domain.NewDependency("python=3.6", domain.SourceConda, 6),
			domain.NewDependency("numpy >=1.13,<2.0", domain.SourceConda, 7),
		},
		Pip: []domain.Dependency{
			domain.NewDependency("Typing_Extensions>=4", domain.SourcePip, 9),
		},
	}

	assert.Equal(t, 3, d.Len())
	assert.Equal(t, []string{"conda-forge", "defaults"}, d.ChannelNames())

	var names []string
	for dep := range d.All() {
		names = append(names, dep.Name.String())
	}
	assert.Equal(t, []string{"python", "numpy", "typing-extensions"}, names)

	dep, ok := d.Lookup("NumPy")
	require.True(t, ok)
	assert.Equal(t, 7, dep.Line)

	dep, ok = d.Lookup("typing.extensions")
	require.True(t, ok)
	assert.Equal(t, domain.SourcePip, dep.Source)

	_, ok = d.Lookup("xarray")
	assert.False(t, ok)
}

func TestKnownKeys(t *testing.T) {
	assert.ElementsMatch(t, []string{"name", "channels", "dependencies", "prefix", "variables"}, domain.KnownKeys())
}
