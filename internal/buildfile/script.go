package buildfile

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/makeflow/internal/actions"
	"github.com/felixgeelhaar/makeflow/internal/domain/subproject"
	"github.com/felixgeelhaar/makeflow/internal/domain/target"
)

// Script registers the targets of one parsed build file.
type Script struct {
	file    *File
	catalog *actions.Catalog
}

// NewScript creates a Script for file whose actions come from catalog.
func NewScript(file *File, catalog *actions.Catalog) *Script {
	return &Script{file: file, catalog: catalog}
}

// File returns the parsed build file.
func (s *Script) File() *File {
	return s.file
}

// Define composes the declared subdirectories first, then registers the
// file's own targets in declaration order.
func (s *Script) Define(ctx context.Context, p *subproject.Project) error {
	for _, sub := range s.file.Subdirs {
		if err := p.SubdirFile(ctx, sub.Name, sub.File); err != nil {
			return err
		}
	}

	for _, decl := range s.file.Targets {
		built, err := s.catalog.Build(decl.Action, decl.Args)
		if err != nil {
			return fmt.Errorf("%s: target %q: %w", s.file.Path, decl.Name, err)
		}

		spec := target.Spec{
			Name:    decl.Name,
			Depends: decl.Depends,
			Action:  built.Action,
		}
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("%s: %w", s.file.Path, err)
		}

		t := p.Register(spec)
		for k, v := range built.Attrs {
			t.Set(k, v)
		}
		t.Set(target.AttrFile, s.file.Path)
	}
	return nil
}

var _ subproject.Script = (*Script)(nil)
