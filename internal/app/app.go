// Package app implements the application layer for envspec.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.trai.ch/envspec/internal/adapters/detector" //nolint:depguard // Display mode is an app concern
	"go.trai.ch/envspec/internal/core/domain"
	"go.trai.ch/envspec/internal/core/ports"
	"go.trai.ch/envspec/internal/engine/validator"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	loader    ports.DescriptorLoader
	settings  ports.SettingsLoader
	indexes   ports.PackageIndexFactory
	store     ports.ReportStore
	renderers ports.RendererFactory
	watcher   ports.Watcher
	dashboard ports.Dashboard
	engine    *validator.Engine
	logger    ports.Logger
	out       io.Writer
	now       func() time.Time
	detect    func() detector.Mode
}

// New creates a new App instance.
func New(
	loader ports.DescriptorLoader,
	settings ports.SettingsLoader,
	indexes ports.PackageIndexFactory,
	store ports.ReportStore,
	renderers ports.RendererFactory,
	watcher ports.Watcher,
	dashboard ports.Dashboard,
	engine *validator.Engine,
	log ports.Logger,
) *App {
	return &App{
		loader:    loader,
		settings:  settings,
		indexes:   indexes,
		store:     store,
		renderers: renderers,
		watcher:   watcher,
		dashboard: dashboard,
		engine:    engine,
		logger:    log,
		out:       os.Stdout,
		now:       time.Now,
		detect:    func() detector.Mode { return detector.Detect(os.Stdout) },
	}
}

// WithOutput redirects rendered reports and listings to w.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithModeDetector replaces the detection used when the watch display mode is auto.
func (a *App) WithModeDetector(detect func() detector.Mode) *App {
	a.detect = detect
	return a
}

// WithClock replaces the clock used to stamp reports.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// workspace is a loaded descriptor together with the settings of its directory.
type workspace struct {
	root       string
	descriptor *domain.Descriptor
	settings   domain.Settings
}

// resolve returns file, or the descriptor discovered from the working directory.
func (a *App) resolve(file string) (string, error) {
	if file != "" {
		return file, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", zerr.Wrap(err, "failed to get current working directory")
	}
	return a.loader.Discover(cwd)
}

func (a *App) open(file string) (*workspace, error) {
	path, err := a.resolve(file)
	if err != nil {
		return nil, err
	}

	d, err := a.loader.Load(path)
	if err != nil {
		return nil, err
	}

	root := filepath.Dir(path)
	settings, err := a.settings.LoadSettings(root)
	if err != nil {
		return nil, err
	}

	return &workspace{root: root, descriptor: d, settings: settings}, nil
}

// CheckOptions configuration for the Check method.
type CheckOptions struct {
	File   string
	Format string
}

// Check validates the descriptor offline and renders the report.
// It returns domain.ErrCheckFailed when the report contains errors.
func (a *App) Check(ctx context.Context, opts CheckOptions) error {
	renderer, err := a.renderers.Renderer(opts.Format)
	if err != nil {
		return err
	}

	ws, err := a.open(opts.File)
	if err != nil {
		return err
	}

	report := a.engine.Check(ctx, ws.descriptor)
	report.CheckedAt = a.now()
	return a.finish(renderer, ws, report)
}

// finish applies the settings, renders the report and maps errors to ErrCheckFailed.
func (a *App) finish(renderer ports.Renderer, ws *workspace, report *domain.Report) error {
	ws.settings.Apply(report)
	report.Sort()

	if err := renderer.Render(a.out, report); err != nil {
		return zerr.Wrap(err, "failed to render report")
	}
	if report.HasErrors() {
		return domain.ErrCheckFailed
	}
	return nil
}

// ListOptions configuration for the List method.
type ListOptions struct {
	File   string
	Format string
}

// List renders every dependency entry, conda entries first.
func (a *App) List(_ context.Context, opts ListOptions) error {
	renderer, err := a.renderers.Renderer(opts.Format)
	if err != nil {
		return err
	}

	path, err := a.resolve(opts.File)
	if err != nil {
		return err
	}
	d, err := a.loader.Load(path)
	if err != nil {
		return err
	}
	if err := d.ParseError(); err != nil {
		return err
	}

	return renderer.RenderDependencies(a.out, slices.Collect(d.All()))
}

// ShowOptions configuration for the Show method.
type ShowOptions struct {
	File    string
	Format  string
	Package string
}

// Show renders the entry declaring a single package.
func (a *App) Show(_ context.Context, opts ShowOptions) error {
	renderer, err := a.renderers.Renderer(opts.Format)
	if err != nil {
		return err
	}

	path, err := a.resolve(opts.File)
	if err != nil {
		return err
	}
	d, err := a.loader.Load(path)
	if err != nil {
		return err
	}
	if err := d.ParseError(); err != nil {
		return err
	}

	dep, ok := d.Lookup(opts.Package)
	if !ok {
		return zerr.With(zerr.With(domain.ErrPackageNotInDescriptor, "package", opts.Package), "path", path)
	}
	return renderer.RenderDependencies(a.out, []domain.Dependency{dep})
}

// VerifyOptions configuration for the Verify method.
type VerifyOptions struct {
	File        string
	Format      string
	Parallelism int
	NoCache     bool
}

// Verify checks the descriptor and the availability of its packages on their
// channels. A stored report for identical descriptor contents is reused while
// it is younger than the index TTL, unless NoCache is set.
func (a *App) Verify(ctx context.Context, opts VerifyOptions) error {
	renderer, err := a.renderers.Renderer(opts.Format)
	if err != nil {
		return err
	}

	ws, err := a.open(opts.File)
	if err != nil {
		return err
	}

	report := a.cachedReport(ws, opts.NoCache)
	if report == nil {
		report, err = a.verify(ctx, ws, opts.Parallelism)
		if err != nil {
			return err
		}
	}

	return a.finish(renderer, ws, report)
}

func (a *App) cachedReport(ws *workspace, noCache bool) *domain.Report {
	if noCache || ws.descriptor.Digest == "" {
		return nil
	}
	report, err := a.store.Get(ws.root, ws.descriptor.Digest)
	if err != nil {
		a.logger.Warn("ignoring stored report: " + err.Error())
		return nil
	}
	if report == nil {
		a.logger.Debug("no stored report for " + ws.descriptor.Path)
		return nil
	}
	if age := a.now().Sub(report.CheckedAt); !domain.WithinTTL(age, ws.settings.IndexTTL) {
		a.logger.Debug(fmt.Sprintf("stored report for %s is %s old, checking again", ws.descriptor.Path, age.Round(time.Second)))
		return nil
	}
	a.logger.Debug(fmt.Sprintf("using report stored at %s", report.CheckedAt.Format(time.RFC3339)))
	// The file may have been moved since the report was stored.
	report.Path = ws.descriptor.Path
	return report
}

func (a *App) verify(ctx context.Context, ws *workspace, parallelism int) (*domain.Report, error) {
	index, err := a.indexes.NewIndex(ws.root, ws.settings)
	if err != nil {
		return nil, err
	}

	if parallelism <= 0 {
		parallelism = ws.settings.Parallelism
	}
	report := a.engine.Verify(ctx, ws.descriptor, index, parallelism)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	report.CheckedAt = a.now()

	// Inconclusive reports are not reused.
	if len(report.ByRule(domain.RuleIndexUnavailable)) > 0 {
		a.logger.Debug("not storing report: some channels could not be queried")
		return report, nil
	}
	if err := a.store.Put(ws.root, report); err != nil {
		a.logger.Warn("failed to store report: " + err.Error())
	}
	return report, nil
}

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	File   string
	Format string
	// UI is "auto", "dashboard" or "plain".
	UI string
}

// Watch runs Check once and again after every change of the descriptor,
// until ctx is cancelled. In dashboard mode the results are shown
// interactively and Watch also returns when the user quits.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	mode, err := detector.Resolve(detector.ModeAuto, opts.UI)
	if err != nil {
		return err
	}
	if mode == detector.ModeAuto {
		mode = a.detect()
	}

	path, err := a.resolve(opts.File)
	if err != nil {
		return err
	}

	if mode == detector.ModeDashboard {
		return a.watchDashboard(ctx, path)
	}

	checkOpts := CheckOptions{File: path, Format: opts.Format}
	a.recheck(ctx, checkOpts)
	a.logger.Info(fmt.Sprintf("watching %s for changes", path))
	return a.watchLoop(ctx, path,
		func() { a.recheck(ctx, checkOpts) },
		func() { a.logger.Warn(fmt.Sprintf("%s was removed, waiting for it to reappear", path)) },
	)
}

// watchLoop calls check after every change of path and removed when it disappears.
func (a *App) watchLoop(ctx context.Context, path string, check, removed func()) error {
	if err := a.watcher.Start(ctx, path); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	for event := range a.watcher.Events() {
		if event.Operation == ports.OpRemove || event.Operation == ports.OpRename {
			removed()
			continue
		}
		a.logger.Debug(fmt.Sprintf("%s changed", event.Path))
		check()
	}
	return nil
}

// recheck runs Check and logs failures other than findings.
func (a *App) recheck(ctx context.Context, opts CheckOptions) {
	if err := a.Check(ctx, opts); err != nil && !errors.Is(err, domain.ErrCheckFailed) {
		a.logger.Error(err)
	}
}

// watchDashboard runs the dashboard and the watch loop side by side.
// Whichever stops first stops the other.
func (a *App) watchDashboard(ctx context.Context, path string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan ports.CheckResult)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return a.dashboard.Run(ctx, path, results)
	})

	g.Go(func() error {
		defer close(results)
		publish := func(res ports.CheckResult) {
			select {
			case results <- res:
			case <-ctx.Done():
			}
		}

		publish(a.evaluate(ctx, path))
		err := a.watchLoop(ctx, path,
			func() { publish(a.evaluate(ctx, path)) },
			func() { publish(ports.CheckResult{Err: zerr.With(domain.ErrDescriptorRemoved, "path", path)}) },
		)
		cancel()
		return err
	})

	return g.Wait()
}

// evaluate checks the descriptor at path for display in the dashboard.
func (a *App) evaluate(ctx context.Context, path string) ports.CheckResult {
	ws, err := a.open(path)
	if err != nil {
		return ports.CheckResult{Err: err}
	}

	report := a.engine.Check(ctx, ws.descriptor)
	report.CheckedAt = a.now()
	ws.settings.Apply(report)
	report.Sort()

	return ports.CheckResult{Report: report, Dependencies: slices.Collect(ws.descriptor.All())}
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	File    string
	Reports bool
	Index   bool
}

// Clean removes stored reports and cached channel index responses next to the descriptor.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	root := "."
	if path, err := a.resolve(opts.File); err == nil {
		root = filepath.Dir(path)
	}

	var errs error
	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	if opts.Reports {
		remove(filepath.Join(root, domain.DefaultStorePath()), "report store")
	}
	if opts.Index {
		remove(filepath.Join(root, domain.DefaultChannelCachePath()), "channel index cache")
	}

	return errs
}
