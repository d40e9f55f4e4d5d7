// Package subproject composes build files across nested directories into a
// single registry.
package subproject

import (
	"context"

	"github.com/felixgeelhaar/makeflow/internal/domain/target"
)

// Script defines the targets of one project directory.
type Script interface {
	Define(ctx context.Context, p *Project) error
}

// ScriptFunc adapts a function to Script.
type ScriptFunc func(ctx context.Context, p *Project) error

// Define calls f(ctx, p).
func (f ScriptFunc) Define(ctx context.Context, p *Project) error {
	return f(ctx, p)
}

// Loader turns a build file path into a Script.
type Loader interface {
	Load(path string) (Script, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path string) (Script, error)

// Load calls f(path).
func (f LoaderFunc) Load(path string) (Script, error) {
	return f(path)
}

// Project is the view of the build a Script gets while it runs.
type Project struct {
	composer *Composer
	options  target.Options
	file     string
}

// Options returns the options targets of this project inherit.
func (p *Project) Options() target.Options {
	return p.options
}

// File returns the build file being loaded.
func (p *Project) File() string {
	return p.file
}

// Register adds a target to the shared registry. Empty option fields are
// filled from the project's options.
func (p *Project) Register(spec target.Spec) *target.Target {
	spec.Options = inherit(spec.Options, p.options)
	return p.composer.registry.Register(spec)
}

// Subdir composes the nested project name, relative to this project.
func (p *Project) Subdir(ctx context.Context, name string) error {
	return p.composer.Subdir(ctx, name, p.options)
}

// SubdirFile composes the nested project name from the given build file. An
// empty file behaves like Subdir. Deeper levels keep the project's lookup.
func (p *Project) SubdirFile(ctx context.Context, name, file string) error {
	if file == "" {
		return p.Subdir(ctx, name)
	}
	return p.composer.subdir(ctx, name, file, p.options)
}

func inherit(o, from target.Options) target.Options {
	if o.Dir == "" {
		o.Dir = from.Dir
	}
	if o.Prefix == "" {
		o.Prefix = from.Prefix
	}
	if o.BuildFile == "" {
		o.BuildFile = from.BuildFile
	}
	if o.Logger == nil {
		o.Logger = from.Logger
	}
	if o.Values == nil {
		o.Values = from.Values
	}
	return o
}
