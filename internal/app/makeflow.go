// Package app wires build files, the target registry and the evaluation engine
// into the operations the makeflow CLI exposes.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/makeflow/internal/actions"
	"github.com/felixgeelhaar/makeflow/internal/adapters/command"
	"github.com/felixgeelhaar/makeflow/internal/adapters/filesystem"
	"github.com/felixgeelhaar/makeflow/internal/buildfile"
	"github.com/felixgeelhaar/makeflow/internal/domain/build"
	"github.com/felixgeelhaar/makeflow/internal/domain/execution"
	"github.com/felixgeelhaar/makeflow/internal/domain/subproject"
	"github.com/felixgeelhaar/makeflow/internal/domain/target"
	"github.com/felixgeelhaar/makeflow/internal/ports"
)

// Makeflow is the main application orchestrator.
type Makeflow struct {
	fs      ports.FileSystem
	catalog *actions.Catalog
	logger  ports.Logger
	version string
	out     io.Writer
}

// New creates a Makeflow application that prints reports to out. Actions run
// against the real file system, process runner and HTTP client, and programs
// write their output to out as well.
func New(out io.Writer) *Makeflow {
	fs := filesystem.NewRealFileSystem()
	return &Makeflow{
		fs: fs,
		catalog: actions.NewCatalog(actions.Deps{
			FS:     fs,
			Runner: command.NewRealRunner(),
			HTTP:   &http.Client{},
			Stdout: out,
			Stderr: os.Stderr,
		}),
		logger:  ports.NewNopLogger(),
		version: "dev",
		out:     out,
	}
}

// WithFileSystem replaces the file system used to find and read build files.
func (m *Makeflow) WithFileSystem(fs ports.FileSystem) *Makeflow {
	m.fs = fs
	return m
}

// WithCatalog replaces the action catalog.
func (m *Makeflow) WithCatalog(catalog *actions.Catalog) *Makeflow {
	m.catalog = catalog
	return m
}

// WithLogger sets the logger shared by every target.
func (m *Makeflow) WithLogger(logger ports.Logger) *Makeflow {
	m.logger = ports.OrNop(logger)
	return m
}

// WithVersion sets the version build file requires clauses are checked against.
func (m *Makeflow) WithVersion(version string) *Makeflow {
	m.version = version
	return m
}

// Catalog returns the action catalog.
func (m *Makeflow) Catalog() *actions.Catalog {
	return m.catalog
}

// Build is a loaded project ready for evaluation.
type Build struct {
	Root     string
	Files    []string
	Registry *target.Registry
	Engine   *build.Engine
	Missing  []target.MissingDepends
}

// Load reads the root build file and every sub-project it pulls in. Redefined
// targets and missing dependencies are logged as warnings; the latter fail the
// load when opts.FailOnMissing is set.
func (m *Makeflow) Load(ctx context.Context, opts LoadOptions) (*Build, error) {
	root := opts.File
	if root == "" {
		root = opts.Dir
	}
	root = ports.ResolvePath(opts.Dir, root)
	if !filepath.IsAbs(root) {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
		}
		root = abs
	}

	b := &Build{Root: root, Registry: target.NewRegistry()}
	loader := buildfile.NewLoader(m.fs, m.catalog, m.version)
	counting := subproject.LoaderFunc(func(path string) (subproject.Script, error) {
		b.Files = append(b.Files, path)
		return loader.Load(path)
	})

	composer := subproject.NewComposer(b.Registry, counting, m.fs).WithChdir(opts.Chdir)
	rootOpts := target.Options{
		BuildFile: opts.BuildFile,
		Logger:    m.logger,
		Values:    opts.Values,
	}
	if err := composer.Include(ctx, root, rootOpts); err != nil {
		return nil, err
	}

	m.logger.Debug(ctx, "build files loaded",
		ports.F("files", len(b.Files)),
		ports.F("targets", b.Registry.Len()))

	for _, name := range b.Registry.Overwritten() {
		m.logger.Warn(ctx, "target redefined", ports.F("target", name))
	}

	b.Missing = b.Registry.FindMissingDepends()
	for _, md := range b.Missing {
		m.logger.Warn(ctx, "missing dependencies",
			ports.F("target", md.Name()),
			ports.F("missing", strings.Join(md.Missing, ", ")))
	}
	if opts.FailOnMissing && len(b.Missing) > 0 {
		return nil, &MissingDependenciesError{Missing: b.Missing}
	}

	b.Engine = build.NewEngine(b.Registry).
		WithStrict(opts.Strict).
		WithChdir(opts.Chdir).
		WithDryRun(opts.DryRun)
	return b, nil
}

// Plan loads the build and returns the execution sequence for names.
func (m *Makeflow) Plan(ctx context.Context, opts LoadOptions, names []string) ([]*target.Target, error) {
	b, err := m.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	return b.Engine.Plan(names)
}

// Run loads the build and evaluates names.
func (m *Makeflow) Run(ctx context.Context, opts LoadOptions, names []string) (execution.Report, error) {
	b, err := m.Load(ctx, opts)
	if err != nil {
		return execution.Report{}, err
	}
	return b.Engine.Run(ctx, names, m.logger)
}

// Check loads the build and reports missing dependencies, redefinitions and
// dependency cycles without running anything.
func (m *Makeflow) Check(ctx context.Context, opts LoadOptions) (CheckResult, error) {
	opts.FailOnMissing = false
	b, err := m.Load(ctx, opts)
	if err != nil {
		return CheckResult{}, err
	}

	result := CheckResult{
		Files:       len(b.Files),
		Targets:     b.Registry.Len(),
		Missing:     b.Missing,
		Overwritten: b.Registry.Overwritten(),
	}
	if len(b.Missing) == 0 {
		if _, err := b.Engine.WithStrict(true).Plan(nil); err != nil {
			result.CycleErr = err
		}
	}
	return result, nil
}

// PrintPlan outputs the resolved order.
func (m *Makeflow) PrintPlan(seq []*target.Target) {
	m.printf("\nMakeflow Plan\n")
	m.printf("=============\n\n")

	if len(seq) == 0 {
		m.printf("Nothing to build.\n")
		return
	}

	for i, t := range seq {
		m.printf("  %d. %s (%s)\n", i+1, t.Name, t.Kind())
	}
}

// PrintList outputs every registered target with its kind, dependencies and
// project.
func (m *Makeflow) PrintList(reg *target.Registry) {
	targets := reg.Targets()
	if len(targets) == 0 {
		m.printf("No targets defined.\n")
		return
	}

	width := len("TARGET")
	for _, t := range targets {
		if len(t.Name) > width {
			width = len(t.Name)
		}
	}

	m.printf("%-*s  %-7s  %-20s  %s\n", width, "TARGET", "KIND", "DEPENDS", "PROJECT")
	for _, t := range targets {
		deps := strings.Join(t.Depends, ",")
		if deps == "" {
			deps = "-"
		}
		project := t.Options.Prefix
		if project == "" {
			project = "."
		}
		m.printf("%-*s  %-7s  %-20s  %s\n", width, t.Name, t.Kind(), deps, project)
	}
}

// PrintCheck outputs the result of Check.
func (m *Makeflow) PrintCheck(result CheckResult) {
	m.printf("Loaded %d build files, %d targets\n", result.Files, result.Targets)

	for _, name := range result.Overwritten {
		m.printf("  ! %s is defined more than once (last definition wins)\n", name)
	}
	for _, md := range result.Missing {
		m.printf("  ✗ %s depends on missing %s\n", md.Name(), strings.Join(md.Missing, ", "))
	}
	if result.CycleErr != nil {
		m.printf("  ✗ %v\n", result.CycleErr)
	}
	if result.OK() {
		m.printf("  ✓ all dependencies resolve\n")
	}
}

// PrintResults outputs execution results.
func (m *Makeflow) PrintResults(report execution.Report) {
	m.printf("\nBuild Results\n")
	m.printf("=============\n\n")

	for _, res := range report.Results {
		switch res.Status() {
		case execution.StatusSucceeded:
			m.printf("  ✓ %s\n", res.Name())
		case execution.StatusFailed:
			m.printf("  ✗ %s: %v\n", res.Name(), res.Error())
		case execution.StatusSkipped:
			m.printf("  - %s (skipped)\n", res.Name())
		case execution.StatusPlanned:
			m.printf("  + %s (would build)\n", res.Name())
		}
	}

	s := report.Summary()
	if report.DryRun {
		m.printf("\nSummary: %d would build\n", s.Planned)
		return
	}
	m.printf("\nSummary: %d succeeded, %d failed, %d skipped (%s)\n",
		s.Succeeded, s.Failed, s.Skipped, report.Duration.Round(time.Millisecond))
}

// printf is a helper that writes to the output writer, ignoring errors.
func (m *Makeflow) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(m.out, format, args...)
}
