package app

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/makeflow/internal/domain/target"
)

// LoadOptions configures how the root build file is found and evaluated.
type LoadOptions struct {
	// Dir is the working directory relative paths resolve against.
	Dir string
	// File is the root build file or a directory holding one. Empty means Dir.
	File string
	// BuildFile overrides the build file name looked up in sub-projects.
	BuildFile string
	// Strict reports dependency cycles as errors.
	Strict bool
	// Chdir switches the process working directory while scripts and actions run.
	Chdir bool
	// DryRun logs what would be built without running actions.
	DryRun bool
	// FailOnMissing turns missing dependencies into a load error.
	FailOnMissing bool
	// Values are forwarded to every target's options.
	Values map[string]interface{}
}

// NewLoadOptions creates options rooted at dir.
func NewLoadOptions(dir string) LoadOptions {
	return LoadOptions{Dir: dir}
}

// WithFile sets the root build file.
func (o LoadOptions) WithFile(file string) LoadOptions {
	o.File = file
	return o
}

// WithStrict enables strict cycle detection.
func (o LoadOptions) WithStrict(strict bool) LoadOptions {
	o.Strict = strict
	return o
}

// WithChdir enables the working directory compatibility mode.
func (o LoadOptions) WithChdir(chdir bool) LoadOptions {
	o.Chdir = chdir
	return o
}

// WithDryRun enables dry-run evaluation.
func (o LoadOptions) WithDryRun(dryRun bool) LoadOptions {
	o.DryRun = dryRun
	return o
}

// WithFailOnMissing makes missing dependencies fatal.
func (o LoadOptions) WithFailOnMissing(fail bool) LoadOptions {
	o.FailOnMissing = fail
	return o
}

// MissingDependenciesError reports targets that depend on unregistered names.
type MissingDependenciesError struct {
	Missing []target.MissingDepends
}

// Error lists every target with missing dependencies.
func (e *MissingDependenciesError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		parts[i] = fmt.Sprintf("%s -> %s", m.Name(), strings.Join(m.Missing, ", "))
	}
	return fmt.Sprintf("missing dependencies: %s", strings.Join(parts, "; "))
}

// CheckResult is the outcome of a static check of the build.
type CheckResult struct {
	Files       int
	Targets     int
	Missing     []target.MissingDepends
	Overwritten []string
	CycleErr    error
}

// OK reports whether the check found nothing to fix.
func (r CheckResult) OK() bool {
	return len(r.Missing) == 0 && r.CycleErr == nil
}
