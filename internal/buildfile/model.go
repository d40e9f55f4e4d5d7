// Package buildfile reads the declarative build files that define the targets
// of one directory. HCL, YAML and TOML are supported; the format is chosen by
// file extension.
package buildfile

import (
	"fmt"

	"github.com/felixgeelhaar/makeflow/internal/actions"
	"github.com/felixgeelhaar/makeflow/internal/validation"
)

// Format identifies a build file syntax.
type Format string

// Supported formats.
const (
	FormatHCL  Format = "hcl"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// File is a parsed build file, independent of its syntax.
type File struct {
	Path     string
	Format   Format
	Requires string
	Subdirs  []SubdirDecl
	Targets  []TargetDecl
}

// SubdirDecl declares a nested project directory.
type SubdirDecl struct {
	Name string
	// File overrides the build file name looked up in the directory.
	File string
}

// TargetDecl declares one target.
type TargetDecl struct {
	Name    string
	Action  string
	Depends []string
	Args    actions.Args
}

// Validate checks the structural rules every format shares.
func (f *File) Validate() error {
	seen := make(map[string]bool, len(f.Subdirs))
	for i, s := range f.Subdirs {
		if s.Name == "" {
			return NewInvalidError(f.Path, fmt.Sprintf("subdir #%d has no name", i+1))
		}
		if err := validation.ValidateRelativePath(s.Name); err != nil {
			return NewInvalidError(f.Path, fmt.Sprintf("subdir %q: %v", s.Name, err))
		}
		if s.File != "" {
			if err := validation.ValidateRelativePath(s.File); err != nil {
				return NewInvalidError(f.Path, fmt.Sprintf("subdir %q file: %v", s.Name, err))
			}
		}
		if seen[s.Name] {
			return NewInvalidError(f.Path, fmt.Sprintf("subdir %q is declared twice", s.Name))
		}
		seen[s.Name] = true
	}
	for i, t := range f.Targets {
		if t.Name == "" {
			return NewInvalidError(f.Path, fmt.Sprintf("target #%d has no name", i+1))
		}
		if err := validation.ValidateTargetName(t.Name); err != nil {
			return NewInvalidError(f.Path, fmt.Sprintf("target %q: %v", t.Name, err))
		}
		for _, dep := range t.Depends {
			if dep == "" {
				return NewInvalidError(f.Path, fmt.Sprintf("target %q has an empty dependency name", t.Name))
			}
			if err := validation.ValidateTargetName(dep); err != nil {
				return NewInvalidError(f.Path, fmt.Sprintf("target %q dependency: %v", t.Name, err))
			}
		}
	}
	return nil
}

// TargetNames returns the declared target names in file order.
func (f *File) TargetNames() []string {
	names := make([]string, len(f.Targets))
	for i, t := range f.Targets {
		names[i] = t.Name
	}
	return names
}

// plainTarget is the shape YAML and TOML targets decode into.
type plainTarget struct {
	Name    string                 `yaml:"name" toml:"name"`
	Action  string                 `yaml:"action" toml:"action"`
	Depends []string               `yaml:"depends" toml:"depends"`
	With    map[string]interface{} `yaml:"with" toml:"with"`
}

type plainSubdir struct {
	Name string `yaml:"name" toml:"name"`
	File string `yaml:"file" toml:"file"`
}

type plainFile struct {
	Requires string        `yaml:"requires" toml:"requires"`
	Subdirs  []plainSubdir `yaml:"subdirs" toml:"subdirs"`
	Targets  []plainTarget `yaml:"targets" toml:"targets"`
}

func (p plainFile) toFile(path string, format Format) *File {
	f := &File{
		Path:     path,
		Format:   format,
		Requires: p.Requires,
		Subdirs:  make([]SubdirDecl, 0, len(p.Subdirs)),
		Targets:  make([]TargetDecl, 0, len(p.Targets)),
	}
	for _, s := range p.Subdirs {
		f.Subdirs = append(f.Subdirs, SubdirDecl(s))
	}
	for _, t := range p.Targets {
		f.Targets = append(f.Targets, TargetDecl{
			Name:    t.Name,
			Action:  t.Action,
			Depends: t.Depends,
			Args:    actions.ArgsFrom(t.With),
		})
	}
	return f
}
