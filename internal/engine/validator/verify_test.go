package validator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envspec/internal/core/domain"
	"go.trai.ch/envspec/internal/core/ports/mocks"
	"go.trai.ch/envspec/internal/engine/validator"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func TestEngine_Verify_Matching(t *testing.T) {
	ctrl := gomock.NewController(t)
	index := mocks.NewMockPackageIndex(ctrl)

	index.EXPECT().Versions(gomock.Any(), "conda-forge", "numpy").
		Return([]string{"1.12.1", "1.14.2", "2.0.1"}, nil)
	index.EXPECT().Versions(gomock.Any(), "conda-forge", "gdal").
		Return(nil, domain.ErrPackageNotFound)
	index.EXPECT().Versions(gomock.Any(), "defaults", "gdal").
		Return([]string{"2.2.4"}, nil)

	d := descriptor([]string{"conda-forge", "defaults"}, "numpy >=1.13,<2.0", "gdal >=2.1")
	report := validator.New().Verify(context.Background(), d, index, 2)

	assert.True(t, report.Online)
	assert.Empty(t, report.Findings)
}

func TestEngine_Verify_UnparsedSkipsLookups(t *testing.T) {
	ctrl := gomock.NewController(t)
	index := mocks.NewMockPackageIndex(ctrl)

	d := &domain.Descriptor{
		Path: "environment.yml",
		Problems: []domain.Finding{
			domain.NewFinding(domain.RuleDescriptorParse, 3, "", "mapping values are not allowed in this context"),
		},
	}
	report := validator.New().Verify(context.Background(), d, index, 2)

	require.Len(t, report.Findings, 1)
	assert.Equal(t, domain.RuleDescriptorParse, report.Findings[0].Rule)
}

func TestEngine_Verify_NoMatchingVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	index := mocks.NewMockPackageIndex(ctrl)

	index.EXPECT().Versions(gomock.Any(), "conda-forge", "numpy").
		Return([]string{"2.0.1", "2.1.0", "not a version!"}, nil)

	d := descriptor([]string{"conda-forge"}, "numpy >=1.13,<2.0")
	report := validator.New().Verify(context.Background(), d, index, 1)

	findings := report.ByRule(domain.RuleNoMatchingVersion)
	require.Len(t, findings, 1)
	assert.Equal(t, 10, findings[0].Line)
	assert.Equal(t, domain.SeverityError, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "latest is 2.1.0")
}

func TestEngine_Verify_PackageNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	index := mocks.NewMockPackageIndex(ctrl)

	index.EXPECT().Versions(gomock.Any(), "conda-forge", "esmpy").Return(nil, domain.ErrPackageNotFound)
	index.EXPECT().Versions(gomock.Any(), "defaults", "esmpy").Return(nil, domain.ErrPackageNotFound)

	d := descriptor([]string{"conda-forge", "defaults"}, "esmpy")
	report := validator.New().Verify(context.Background(), d, index, 4)

	findings := report.ByRule(domain.RulePackageNotFound)
	require.Len(t, findings, 1)
	assert.Equal(t, "esmpy was not found on conda-forge, defaults", findings[0].Message)
	assert.True(t, report.HasErrors())
}

func TestEngine_Verify_IndexUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	index := mocks.NewMockPackageIndex(ctrl)

	index.EXPECT().Versions(gomock.Any(), "conda-forge", "numpy").
		Return(nil, zerr.With(domain.ErrIndexRequestFailed, "status_code", 503))

	d := descriptor([]string{"conda-forge"}, "numpy >=1.13,<2.0")
	report := validator.New().Verify(context.Background(), d, index, 1)

	findings := report.ByRule(domain.RuleIndexUnavailable)
	require.Len(t, findings, 1)
	assert.Equal(t, domain.SeverityWarning, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "could not query conda-forge for numpy")
	assert.False(t, report.HasErrors())
}

func TestEngine_Verify_UnavailableChannelIsInconclusive(t *testing.T) {
	ctrl := gomock.NewController(t)
	index := mocks.NewMockPackageIndex(ctrl)

	index.EXPECT().Versions(gomock.Any(), "conda-forge", "numpy").Return(nil, errors.New("connection reset"))
	index.EXPECT().Versions(gomock.Any(), "defaults", "numpy").Return(nil, domain.ErrPackageNotFound)

	d := descriptor([]string{"conda-forge", "defaults"}, "numpy >=1.13,<2.0")
	report := validator.New().Verify(context.Background(), d, index, 1)

	assert.Equal(t, []domain.RuleID{domain.RuleIndexUnavailable}, rules(report))
}

func TestEngine_Verify_ChannelSelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	index := mocks.NewMockPackageIndex(ctrl)

	// An explicit channel prefix restricts the lookup to that channel.
	index.EXPECT().Versions(gomock.Any(), "bioconda", "samtools").Return([]string{"1.9"}, nil)

	d := descriptor([]string{"conda-forge"}, "bioconda::samtools 1.9")
	report := validator.New().Verify(context.Background(), d, index, 1)
	assert.Empty(t, report.Findings)

	// Without channels the defaults channel is searched.
	index.EXPECT().Versions(gomock.Any(), "defaults", "numpy").Return([]string{"1.14.2"}, nil)

	d = descriptor(nil, "numpy >=1.13,<2.0")
	report = validator.New().Verify(context.Background(), d, index, 1)
	assert.Empty(t, report.Findings)
}

func TestEngine_Verify_SkipsUncheckableEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	index := mocks.NewMockPackageIndex(ctrl)

	// Only the first numpy is looked up; invalid and pip entries are not.
	index.EXPECT().Versions(gomock.Any(), "conda-forge", "numpy").Return([]string{"1.14.2"}, nil).Times(1)

	d := descriptor([]string{"conda-forge"},
		"numpy >=1.13,<2.0",
		"numpy 1.14.2",
		"scipy >=2.0,<1.0",
		"pandas >=1..2",
		"scipy >=1.0 <2.0",
	)
	d.Pip = []domain.Dependency{domain.NewDependency("owslib==0.14.0", domain.SourcePip, 30)}

	report := validator.New().Verify(context.Background(), d, index, 0)

	assert.Empty(t, report.ByRule(domain.RulePackageNotFound))
	assert.Empty(t, report.ByRule(domain.RuleNoMatchingVersion))
	assert.NotEmpty(t, report.ByRule(domain.RuleDuplicatePackage))
}
