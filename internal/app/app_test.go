package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"iter"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envspec/internal/adapters/detector"
	"go.trai.ch/envspec/internal/app"
	"go.trai.ch/envspec/internal/core/domain"
	"go.trai.ch/envspec/internal/core/ports"
	"go.trai.ch/envspec/internal/core/ports/mocks"
	"go.trai.ch/envspec/internal/engine/validator"
	"go.uber.org/mock/gomock"
)

const descriptorPath = "/project/environment.yml"

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	loader    *mocks.MockDescriptorLoader
	settings  *mocks.MockSettingsLoader
	indexes   *mocks.MockPackageIndexFactory
	index     *mocks.MockPackageIndex
	store     *mocks.MockReportStore
	renderers *mocks.MockRendererFactory
	renderer  *mocks.MockRenderer
	watcher   *mocks.MockWatcher
	dashboard *mocks.MockDashboard
	logger    *mocks.MockLogger
	out       *bytes.Buffer
	app       *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		loader:    mocks.NewMockDescriptorLoader(ctrl),
		settings:  mocks.NewMockSettingsLoader(ctrl),
		indexes:   mocks.NewMockPackageIndexFactory(ctrl),
		index:     mocks.NewMockPackageIndex(ctrl),
		store:     mocks.NewMockReportStore(ctrl),
		renderers: mocks.NewMockRendererFactory(ctrl),
		renderer:  mocks.NewMockRenderer(ctrl),
		watcher:   mocks.NewMockWatcher(ctrl),
		dashboard: mocks.NewMockDashboard(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		out:       &bytes.Buffer{},
	}
	f.app = app.New(
		f.loader,
		f.settings,
		f.indexes,
		f.store,
		f.renderers,
		f.watcher,
		f.dashboard,
		validator.New(),
		f.logger,
	).WithOutput(f.out).
		WithClock(func() time.Time { return fixedNow }).
		WithModeDetector(func() detector.Mode { return detector.ModePlain })
	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return f
}

// expectWorkspace wires the loader, settings and renderer for one run over d.
func (f *fixture) expectWorkspace(d *domain.Descriptor, settings domain.Settings) {
	f.renderers.EXPECT().Renderer("text").Return(f.renderer, nil)
	f.loader.EXPECT().Load(descriptorPath).Return(d, nil)
	f.settings.EXPECT().LoadSettings("/project").Return(settings, nil)
}

// captureReport records the report passed to Render.
func (f *fixture) captureReport() **domain.Report {
	var got *domain.Report
	f.renderer.EXPECT().Render(f.out, gomock.Any()).DoAndReturn(func(_ io.Writer, r *domain.Report) error {
		got = r
		return nil
	})
	return &got
}

func newDescriptor(entries ...string) *domain.Descriptor {
	d := &domain.Descriptor{
		Path:     descriptorPath,
		Digest:   "9f86d081884c7d65",
		Name:     "ect",
		NameLine: 1,
		Channels: []domain.Channel{{Name: "conda-forge", Line: 3}},
		Keys:     []domain.Key{{Name: "name", Line: 1}, {Name: "channels", Line: 2}, {Name: "dependencies", Line: 4}},
	}
	for i, raw := range entries {
		d.Dependencies = append(d.Dependencies, domain.NewDependency(raw, domain.SourceConda, 5+i))
	}
	return d
}

func TestApp_Check(t *testing.T) {
	f := newFixture(t)
	f.expectWorkspace(newDescriptor("numpy >=1.13,<2.0", "python=3.6"), domain.DefaultSettings())
	got := f.captureReport()

	err := f.app.Check(context.Background(), app.CheckOptions{File: descriptorPath, Format: "text"})
	require.NoError(t, err)

	require.NotNil(t, *got)
	assert.Empty(t, (*got).Findings)
	assert.Equal(t, 2, (*got).Dependencies)
	assert.Equal(t, fixedNow, (*got).CheckedAt)
}

func TestApp_Check_Failed(t *testing.T) {
	f := newFixture(t)
	f.expectWorkspace(newDescriptor("numpy >=1.13,<2.0", "numpy 1.14"), domain.DefaultSettings())
	got := f.captureReport()

	err := f.app.Check(context.Background(), app.CheckOptions{File: descriptorPath, Format: "text"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCheckFailed)
	assert.Len(t, (*got).ByRule(domain.RuleDuplicatePackage), 1)
}

func TestApp_Check_AppliesSettings(t *testing.T) {
	t.Run("ignored rule", func(t *testing.T) {
		f := newFixture(t)
		settings := domain.DefaultSettings()
		settings.Ignore = []domain.RuleID{domain.RuleDuplicatePackage}
		f.expectWorkspace(newDescriptor("numpy >=1.13,<2.0", "numpy 1.14"), settings)
		got := f.captureReport()

		err := f.app.Check(context.Background(), app.CheckOptions{File: descriptorPath, Format: "text"})
		require.NoError(t, err)
		assert.Empty(t, (*got).Findings)
	})

	t.Run("severity override", func(t *testing.T) {
		f := newFixture(t)
		settings := domain.DefaultSettings()
		settings.Severity[domain.RuleUnpinned] = domain.SeverityError
		f.expectWorkspace(newDescriptor("shapely"), settings)
		got := f.captureReport()

		err := f.app.Check(context.Background(), app.CheckOptions{File: descriptorPath, Format: "text"})
		require.ErrorIs(t, err, domain.ErrCheckFailed)
		require.Len(t, (*got).Findings, 1)
		assert.Equal(t, domain.SeverityError, (*got).Findings[0].Severity)
	})
}

func TestApp_Check_UnknownFormat(t *testing.T) {
	f := newFixture(t)
	f.renderers.EXPECT().Renderer("sarif").Return(nil, domain.ErrUnknownFormat)

	err := f.app.Check(context.Background(), app.CheckOptions{File: descriptorPath, Format: "sarif"})
	assert.ErrorIs(t, err, domain.ErrUnknownFormat)
}

func TestApp_Check_LoadError(t *testing.T) {
	f := newFixture(t)
	f.renderers.EXPECT().Renderer("text").Return(f.renderer, nil)
	f.loader.EXPECT().Load(descriptorPath).Return(nil, domain.ErrDescriptorReadFailed)

	err := f.app.Check(context.Background(), app.CheckOptions{File: descriptorPath, Format: "text"})
	assert.ErrorIs(t, err, domain.ErrDescriptorReadFailed)
}

func unparsedDescriptor() *domain.Descriptor {
	return &domain.Descriptor{
		Path:   descriptorPath,
		Digest: "2c26b46b68ffc68f",
		Problems: []domain.Finding{
			domain.NewFinding(domain.RuleDescriptorParse, 2, "", "did not find expected ',' or ']'"),
		},
	}
}

func TestApp_Check_ParseFailure(t *testing.T) {
	t.Run("reported as an error finding", func(t *testing.T) {
		f := newFixture(t)
		f.expectWorkspace(unparsedDescriptor(), domain.DefaultSettings())
		got := f.captureReport()

		err := f.app.Check(context.Background(), app.CheckOptions{File: descriptorPath, Format: "text"})
		require.ErrorIs(t, err, domain.ErrCheckFailed)
		require.Len(t, (*got).Findings, 1)
		assert.Equal(t, domain.RuleDescriptorParse, (*got).Findings[0].Rule)
		assert.Equal(t, 2, (*got).Findings[0].Line)
		assert.Zero(t, (*got).Dependencies)
	})

	t.Run("severity follows settings", func(t *testing.T) {
		f := newFixture(t)
		settings := domain.DefaultSettings()
		settings.Severity[domain.RuleDescriptorParse] = domain.SeverityWarning
		f.expectWorkspace(unparsedDescriptor(), settings)
		got := f.captureReport()

		require.NoError(t, f.app.Check(context.Background(), app.CheckOptions{File: descriptorPath, Format: "text"}))
		require.Len(t, (*got).Findings, 1)
		assert.Equal(t, domain.SeverityWarning, (*got).Findings[0].Severity)
	})
}

func TestApp_List_ParseFailure(t *testing.T) {
	f := newFixture(t)
	f.renderers.EXPECT().Renderer("text").Return(f.renderer, nil)
	f.loader.EXPECT().Load(descriptorPath).Return(unparsedDescriptor(), nil)

	err := f.app.List(context.Background(), app.ListOptions{File: descriptorPath, Format: "text"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrDescriptorParseFailed.Error())
}

func TestApp_Check_Discovers(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Discover(gomock.Any()).Return(descriptorPath, nil)
	f.expectWorkspace(newDescriptor("numpy >=1.13,<2.0"), domain.DefaultSettings())
	f.captureReport()

	require.NoError(t, f.app.Check(context.Background(), app.CheckOptions{Format: "text"}))
}

func TestApp_Check_NoDescriptor(t *testing.T) {
	f := newFixture(t)
	f.renderers.EXPECT().Renderer("text").Return(f.renderer, nil)
	f.loader.EXPECT().Discover(gomock.Any()).Return("", domain.ErrDescriptorNotFound)

	err := f.app.Check(context.Background(), app.CheckOptions{Format: "text"})
	assert.ErrorIs(t, err, domain.ErrDescriptorNotFound)
}

func TestApp_List(t *testing.T) {
	f := newFixture(t)
	d := newDescriptor("numpy >=1.13,<2.0", "python=3.6")
	d.Pip = []domain.Dependency{domain.NewDependency("owslib==0.14.0", domain.SourcePip, 9)}

	f.renderers.EXPECT().Renderer("json").Return(f.renderer, nil)
	f.loader.EXPECT().Load(descriptorPath).Return(d, nil)
	f.renderer.EXPECT().RenderDependencies(f.out, gomock.Any()).DoAndReturn(
		func(_ io.Writer, deps []domain.Dependency) error {
			require.Len(t, deps, 3)
			assert.Equal(t, "numpy", deps[0].DisplayName)
			assert.Equal(t, domain.SourcePip, deps[2].Source)
			return nil
		})

	require.NoError(t, f.app.List(context.Background(), app.ListOptions{File: descriptorPath, Format: "json"}))
}

func TestApp_Show(t *testing.T) {
	t.Run("declared", func(t *testing.T) {
		f := newFixture(t)
		f.renderers.EXPECT().Renderer("text").Return(f.renderer, nil)
		f.loader.EXPECT().Load(descriptorPath).Return(newDescriptor("python=3.6", "numpy >=1.13,<2.0"), nil)
		f.renderer.EXPECT().RenderDependencies(f.out, gomock.Any()).DoAndReturn(
			func(_ io.Writer, deps []domain.Dependency) error {
				require.Len(t, deps, 1)
				assert.Equal(t, "[1.13, 2.0)", deps[0].Versions.String())
				return nil
			})

		err := f.app.Show(context.Background(), app.ShowOptions{File: descriptorPath, Format: "text", Package: "NumPy"})
		require.NoError(t, err)
	})

	t.Run("not declared", func(t *testing.T) {
		f := newFixture(t)
		f.renderers.EXPECT().Renderer("text").Return(f.renderer, nil)
		f.loader.EXPECT().Load(descriptorPath).Return(newDescriptor("python=3.6"), nil)

		err := f.app.Show(context.Background(), app.ShowOptions{File: descriptorPath, Format: "text", Package: "esmpy"})
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrPackageNotInDescriptor.Error())
	})
}

func TestApp_Verify_CacheMiss(t *testing.T) {
	f := newFixture(t)
	d := newDescriptor("numpy >=1.13,<2.0")
	settings := domain.DefaultSettings()
	f.expectWorkspace(d, settings)

	f.store.EXPECT().Get("/project", d.Digest).Return(nil, nil)
	f.indexes.EXPECT().NewIndex("/project", settings).Return(f.index, nil)
	f.index.EXPECT().Versions(gomock.Any(), "conda-forge", "numpy").Return([]string{"1.14.2"}, nil)
	f.store.EXPECT().Put("/project", gomock.Any()).DoAndReturn(func(_ string, r *domain.Report) error {
		assert.True(t, r.Online)
		assert.Equal(t, fixedNow, r.CheckedAt)
		return nil
	})
	got := f.captureReport()

	err := f.app.Verify(context.Background(), app.VerifyOptions{File: descriptorPath, Format: "text"})
	require.NoError(t, err)
	assert.True(t, (*got).Online)
}

func TestApp_Verify_CacheHit(t *testing.T) {
	f := newFixture(t)
	d := newDescriptor("numpy >=1.13,<2.0")
	f.expectWorkspace(d, domain.DefaultSettings())

	stored := domain.NewReport(d)
	stored.Path = "/elsewhere/environment.yml"
	stored.Online = true
	stored.CheckedAt = fixedNow.Add(-time.Hour)
	stored.Add(domain.NewFinding(domain.RuleNoMatchingVersion, 5, "numpy", "no version of numpy"))
	f.store.EXPECT().Get("/project", d.Digest).Return(stored, nil)
	got := f.captureReport()

	err := f.app.Verify(context.Background(), app.VerifyOptions{File: descriptorPath, Format: "text"})
	require.ErrorIs(t, err, domain.ErrCheckFailed)
	assert.Equal(t, descriptorPath, (*got).Path)
}

func TestApp_Verify_StaleCache(t *testing.T) {
	f := newFixture(t)
	d := newDescriptor("numpy >=1.13,<2.0")
	settings := domain.DefaultSettings()
	f.expectWorkspace(d, settings)

	stored := domain.NewReport(d)
	stored.CheckedAt = fixedNow.Add(-48 * time.Hour)
	f.store.EXPECT().Get("/project", d.Digest).Return(stored, nil)
	f.indexes.EXPECT().NewIndex("/project", settings).Return(f.index, nil)
	f.index.EXPECT().Versions(gomock.Any(), "conda-forge", "numpy").Return([]string{"1.14.2"}, nil)
	f.store.EXPECT().Put("/project", gomock.Any()).Return(nil)
	f.captureReport()

	require.NoError(t, f.app.Verify(context.Background(), app.VerifyOptions{File: descriptorPath, Format: "text"}))
}

func TestApp_Verify_ZeroTTLNeverExpires(t *testing.T) {
	f := newFixture(t)
	d := newDescriptor("numpy >=1.13,<2.0")
	settings := domain.DefaultSettings()
	settings.IndexTTL = 0
	f.expectWorkspace(d, settings)

	stored := domain.NewReport(d)
	stored.Online = true
	stored.CheckedAt = fixedNow.Add(-48 * time.Hour)
	f.store.EXPECT().Get("/project", d.Digest).Return(stored, nil)
	got := f.captureReport()

	require.NoError(t, f.app.Verify(context.Background(), app.VerifyOptions{File: descriptorPath, Format: "text"}))
	assert.True(t, (*got).Online)
}

func TestApp_Verify_NoCache(t *testing.T) {
	f := newFixture(t)
	d := newDescriptor("numpy >=1.13,<2.0")
	settings := domain.DefaultSettings()
	f.expectWorkspace(d, settings)

	f.indexes.EXPECT().NewIndex("/project", settings).Return(f.index, nil)
	f.index.EXPECT().Versions(gomock.Any(), "conda-forge", "numpy").Return([]string{"1.14.2"}, nil)
	f.store.EXPECT().Put("/project", gomock.Any()).Return(nil)
	f.captureReport()

	err := f.app.Verify(context.Background(), app.VerifyOptions{File: descriptorPath, Format: "text", NoCache: true, Parallelism: 2})
	require.NoError(t, err)
}

func TestApp_Verify_InconclusiveNotStored(t *testing.T) {
	f := newFixture(t)
	d := newDescriptor("numpy >=1.13,<2.0")
	settings := domain.DefaultSettings()
	f.expectWorkspace(d, settings)

	f.store.EXPECT().Get("/project", d.Digest).Return(nil, errors.New("corrupt entry"))
	f.logger.EXPECT().Warn(gomock.Any())
	f.indexes.EXPECT().NewIndex("/project", settings).Return(f.index, nil)
	f.index.EXPECT().Versions(gomock.Any(), "conda-forge", "numpy").Return(nil, domain.ErrIndexRequestFailed)
	got := f.captureReport()

	require.NoError(t, f.app.Verify(context.Background(), app.VerifyOptions{File: descriptorPath, Format: "text"}))
	assert.Len(t, (*got).ByRule(domain.RuleIndexUnavailable), 1)
}

func TestApp_Verify_Cancelled(t *testing.T) {
	f := newFixture(t)
	d := newDescriptor("numpy >=1.13,<2.0")
	settings := domain.DefaultSettings()
	f.expectWorkspace(d, settings)

	ctx, cancel := context.WithCancel(context.Background())
	f.store.EXPECT().Get("/project", d.Digest).Return(nil, nil)
	f.indexes.EXPECT().NewIndex("/project", settings).Return(f.index, nil)
	f.index.EXPECT().Versions(gomock.Any(), "conda-forge", "numpy").DoAndReturn(
		func(ctx context.Context, _, _ string) ([]string, error) {
			cancel()
			return nil, ctx.Err()
		})

	err := f.app.Verify(ctx, app.VerifyOptions{File: descriptorPath, Format: "text"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestApp_Watch(t *testing.T) {
	f := newFixture(t)
	d := newDescriptor("numpy >=1.13,<2.0")

	f.renderers.EXPECT().Renderer("text").Return(f.renderer, nil).Times(2)
	f.loader.EXPECT().Load(descriptorPath).Return(d, nil).Times(2)
	f.settings.EXPECT().LoadSettings("/project").Return(domain.DefaultSettings(), nil).Times(2)
	f.renderer.EXPECT().Render(f.out, gomock.Any()).Return(nil).Times(2)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Warn(gomock.Any())

	events := func(yield func(ports.WatchEvent) bool) {
		if !yield(ports.WatchEvent{Path: descriptorPath, Operation: ports.OpRemove}) {
			return
		}
		yield(ports.WatchEvent{Path: descriptorPath, Operation: ports.OpWrite})
	}
	gomock.InOrder(
		f.watcher.EXPECT().Start(gomock.Any(), descriptorPath).Return(nil),
		f.watcher.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](events)),
		f.watcher.EXPECT().Stop().Return(nil),
	)

	require.NoError(t, f.app.Watch(context.Background(), app.WatchOptions{File: descriptorPath, Format: "text"}))
}

func TestApp_Watch_LogsLoadErrors(t *testing.T) {
	f := newFixture(t)

	f.renderers.EXPECT().Renderer("text").Return(f.renderer, nil)
	f.loader.EXPECT().Load(descriptorPath).Return(nil, domain.ErrDescriptorParseFailed)
	f.logger.EXPECT().Error(gomock.Any())
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.watcher.EXPECT().Start(gomock.Any(), descriptorPath).Return(nil)
	f.watcher.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](func(func(ports.WatchEvent) bool) {}))
	f.watcher.EXPECT().Stop().Return(nil)

	require.NoError(t, f.app.Watch(context.Background(), app.WatchOptions{File: descriptorPath, Format: "text"}))
}

func TestApp_Watch_UnknownUI(t *testing.T) {
	f := newFixture(t)

	err := f.app.Watch(context.Background(), app.WatchOptions{File: descriptorPath, UI: "fancy"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "unknown display mode")
}

func TestApp_Watch_Dashboard(t *testing.T) {
	f := newFixture(t)
	d := newDescriptor("numpy >=1.13,<2.0", "shapely")

	f.loader.EXPECT().Load(descriptorPath).Return(d, nil).Times(2)
	f.settings.EXPECT().LoadSettings("/project").Return(domain.DefaultSettings(), nil).Times(2)

	events := func(yield func(ports.WatchEvent) bool) {
		if !yield(ports.WatchEvent{Path: descriptorPath, Operation: ports.OpRename}) {
			return
		}
		yield(ports.WatchEvent{Path: descriptorPath, Operation: ports.OpWrite})
	}
	gomock.InOrder(
		f.watcher.EXPECT().Start(gomock.Any(), descriptorPath).Return(nil),
		f.watcher.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](events)),
		f.watcher.EXPECT().Stop().Return(nil),
	)

	var got []ports.CheckResult
	f.dashboard.EXPECT().Run(gomock.Any(), descriptorPath, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, results <-chan ports.CheckResult) error {
			for res := range results {
				got = append(got, res)
			}
			return nil
		})

	err := f.app.Watch(context.Background(), app.WatchOptions{File: descriptorPath, UI: "dashboard"})
	require.NoError(t, err)

	require.Len(t, got, 3)
	require.NotNil(t, got[0].Report)
	assert.Len(t, got[0].Dependencies, 2)
	assert.Len(t, got[0].Report.ByRule(domain.RuleUnpinned), 1)
	assert.Equal(t, fixedNow, got[0].Report.CheckedAt)

	assert.Nil(t, got[1].Report)
	assert.ErrorContains(t, got[1].Err, "environment descriptor was removed")

	require.NotNil(t, got[2].Report)
	assert.NoError(t, got[2].Err)
}

func TestApp_Watch_DashboardQuit(t *testing.T) {
	tests := []struct {
		name    string
		runErr  error
		wantErr string
	}{
		{name: "user quits"},
		{name: "dashboard fails", runErr: errors.New("terminal went away"), wantErr: "terminal went away"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.app.WithModeDetector(func() detector.Mode { return detector.ModeDashboard })

			f.loader.EXPECT().Load(descriptorPath).Return(newDescriptor("numpy >=1.13,<2.0"), nil)
			f.settings.EXPECT().LoadSettings("/project").Return(domain.DefaultSettings(), nil)

			var watchCtx context.Context
			f.watcher.EXPECT().Start(gomock.Any(), descriptorPath).DoAndReturn(func(ctx context.Context, _ string) error {
				watchCtx = ctx
				return nil
			})
			f.watcher.EXPECT().Events().DoAndReturn(func() iter.Seq[ports.WatchEvent] {
				return func(func(ports.WatchEvent) bool) {
					<-watchCtx.Done()
				}
			})
			f.watcher.EXPECT().Stop().Return(nil)
			f.dashboard.EXPECT().Run(gomock.Any(), descriptorPath, gomock.Any()).Return(tt.runErr)

			err := f.app.Watch(context.Background(), app.WatchOptions{File: descriptorPath})
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestApp_Clean(t *testing.T) {
	root := t.TempDir()
	storeDir := filepath.Join(root, domain.DefaultStorePath())
	cacheDir := filepath.Join(root, domain.DefaultChannelCachePath())
	require.NoError(t, os.MkdirAll(storeDir, domain.DirPerm))
	require.NoError(t, os.MkdirAll(cacheDir, domain.DirPerm))

	t.Run("reports only", func(t *testing.T) {
		f := newFixture(t)
		f.logger.EXPECT().Info(gomock.Any()).Times(2)

		opts := app.CleanOptions{File: filepath.Join(root, domain.DescriptorFileName), Reports: true}
		require.NoError(t, f.app.Clean(context.Background(), opts))
		assert.NoDirExists(t, storeDir)
		assert.DirExists(t, cacheDir)
	})

	t.Run("index cache", func(t *testing.T) {
		f := newFixture(t)
		f.logger.EXPECT().Info(gomock.Any()).Times(2)

		opts := app.CleanOptions{File: filepath.Join(root, domain.DescriptorFileName), Index: true}
		require.NoError(t, f.app.Clean(context.Background(), opts))
		assert.NoDirExists(t, cacheDir)
	})
}
