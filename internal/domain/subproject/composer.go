package subproject

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/makeflow/internal/domain/target"
	"github.com/felixgeelhaar/makeflow/internal/ports"
)

// DefaultBuildFiles are the file names looked up in a project directory, in
// order, when no explicit build file is configured.
var DefaultBuildFiles = []string{
	"makeflow.hcl",
	"makeflow.yaml",
	"makeflow.yml",
	"makeflow.toml",
}

// Composer loads build files into a shared registry, descending into nested
// project directories on request.
type Composer struct {
	registry   *target.Registry
	loader     Loader
	fs         ports.FileSystem
	candidates []string
	chdir      bool

	active map[string]bool
	stack  []string
}

// NewComposer creates a Composer that registers into registry.
func NewComposer(registry *target.Registry, loader Loader, fs ports.FileSystem) *Composer {
	return &Composer{
		registry:   registry,
		loader:     loader,
		fs:         fs,
		candidates: DefaultBuildFiles,
		active:     make(map[string]bool),
	}
}

// WithChdir makes the composer switch the process working directory into each
// project directory while its script runs.
func (c *Composer) WithChdir(chdir bool) *Composer {
	c.chdir = chdir
	return c
}

// WithCandidates replaces the default build file names.
func (c *Composer) WithCandidates(names ...string) *Composer {
	c.candidates = names
	return c
}

// Registry returns the registry targets are added to.
func (c *Composer) Registry() *target.Registry {
	return c.registry
}

// Locate returns the build file to use in dir. An explicit name wins over the
// default candidates.
func (c *Composer) Locate(dir, buildFile string) (string, bool) {
	if buildFile != "" {
		path := ports.ResolvePath(dir, buildFile)
		return path, c.fs.Exists(path) && !c.fs.IsDir(path)
	}
	for _, name := range c.candidates {
		path := filepath.Join(dir, name)
		if c.fs.Exists(path) && !c.fs.IsDir(path) {
			return path, true
		}
	}
	return dir, false
}

// Subdir composes the project in directory name. Relative names are joined
// onto opts.Dir, or the process working directory when that is empty.
func (c *Composer) Subdir(ctx context.Context, name string, opts target.Options) error {
	return c.subdir(ctx, name, opts.BuildFile, opts)
}

// subdir composes name using buildFile for that directory only. The child
// options keep opts.BuildFile for deeper levels.
func (c *Composer) subdir(ctx context.Context, name, buildFile string, opts target.Options) error {
	nested, err := absolute(name, opts.Dir)
	if err != nil {
		return err
	}

	file, ok := c.Locate(nested, buildFile)
	if !ok {
		return target.NewSubprojectNotFoundError(file)
	}

	return c.compose(ctx, file, opts.Child(name, nested))
}

// Include loads path as a root project. path may be a build file or a
// directory holding one. An empty opts.Dir becomes the file's directory.
func (c *Composer) Include(ctx context.Context, path string, opts target.Options) error {
	abs, err := absolute(path, opts.Dir)
	if err != nil {
		return err
	}

	file := abs
	if c.fs.IsDir(abs) {
		found, ok := c.Locate(abs, opts.BuildFile)
		if !ok {
			return target.NewSubprojectNotFoundError(found)
		}
		file = found
	} else if !c.fs.Exists(abs) {
		return target.NewSubprojectNotFoundError(abs)
	}

	if opts.Dir == "" {
		opts.Dir = filepath.Dir(file)
	}
	return c.compose(ctx, file, opts)
}

func (c *Composer) compose(ctx context.Context, file string, opts target.Options) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := opts.Dir
	if c.active[dir] {
		chain := append(append([]string{}, c.stack...), dir)
		return target.NewSubprojectCycleError(chain)
	}

	script, err := c.loader.Load(file)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", file, err)
	}

	logger := ports.OrNop(opts.Logger)
	logger.Debug(ctx, "loading build file",
		ports.F("file", file),
		ports.F("project", opts.Prefix))

	c.active[dir] = true
	c.stack = append(c.stack, dir)
	defer func() {
		delete(c.active, dir)
		c.stack = c.stack[:len(c.stack)-1]
	}()

	if c.chdir {
		restore, enterErr := ports.EnterDir(dir)
		if enterErr != nil {
			return enterErr
		}
		defer func() {
			if restoreErr := restore(); restoreErr != nil && err == nil {
				err = restoreErr
			}
		}()
	}

	project := &Project{composer: c, options: opts, file: file}
	return script.Define(ctx, project)
}

func absolute(name, base string) (string, error) {
	name = ports.ExpandPath(name)
	if filepath.IsAbs(name) {
		return filepath.Clean(name), nil
	}
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to read working directory: %w", err)
		}
		base = wd
	}
	return filepath.Join(base, name), nil
}
