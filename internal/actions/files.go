package actions

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"

	"github.com/felixgeelhaar/makeflow/internal/domain/target"
)

func copyDefinition() Definition {
	return Definition{
		Kind:    KindCopy,
		Summary: "copies files into a directory, skipping unchanged ones",
		Params: Params{
			{Name: "source", Type: TypeStrings, Required: true},
			{Name: "dest", Type: TypeString, Required: true},
			{Name: "rename", Type: TypeString},
		},
		New: newCopy,
	}
}

func newCopy(args Args, deps Deps) (Built, error) {
	action := target.ActionFunc(func(rc target.RunContext) error {
		r, err := args.Resolve(rc)
		if err != nil {
			return err
		}
		sources, err := r.Strings("source")
		if err != nil {
			return err
		}
		dest, err := r.String("dest")
		if err != nil {
			return err
		}
		rename, err := r.StringOr("rename", "")
		if err != nil {
			return err
		}

		destDir := rc.Path(dest)
		if err := deps.FS.MkdirAll(destDir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", destDir, err)
		}

		for _, source := range sources {
			src := rc.Path(source)
			name := filepath.Base(src)
			if rename != "" && len(sources) == 1 {
				name = rename
			}
			destPath := filepath.Join(destDir, name)

			srcInfo, err := deps.FS.GetFileInfo(src)
			if err != nil {
				return fmt.Errorf("failed to stat %s: %w", src, err)
			}
			if destInfo, err := deps.FS.GetFileInfo(destPath); err == nil && destInfo.ModTime.Equal(srcInfo.ModTime) {
				logger(rc).Debug(rc.Context(), fmt.Sprintf("%s is up to date", destPath))
				continue
			}

			logger(rc).Info(rc.Context(), fmt.Sprintf("copying %s to %s", src, destPath))
			if err := deps.FS.CopyFile(src, destPath); err != nil {
				return fmt.Errorf("failed to copy %s: %w", src, err)
			}
			if err := deps.FS.Chtimes(destPath, srcInfo.ModTime, srcInfo.ModTime); err != nil {
				return fmt.Errorf("failed to set times on %s: %w", destPath, err)
			}
		}
		return nil
	})

	return Built{
		Action: action,
		Attrs: literalAttrs(args, map[string]string{
			"source": target.AttrSource,
			"dest":   target.AttrDest,
			"rename": "rename",
		}),
	}, nil
}

func mkdirDefinition() Definition {
	return Definition{
		Kind:    KindMkdir,
		Summary: "creates a directory and its parents",
		Params: Params{
			{Name: "path", Type: TypeString, Required: true},
		},
		New: newMkdir,
	}
}

func newMkdir(args Args, deps Deps) (Built, error) {
	action := target.ActionFunc(func(rc target.RunContext) error {
		r, err := args.Resolve(rc)
		if err != nil {
			return err
		}
		path, err := r.String("path")
		if err != nil {
			return err
		}
		return deps.FS.MkdirAll(rc.Path(path), 0o755)
	})

	return Built{
		Action: action,
		Attrs:  literalAttrs(args, map[string]string{"path": target.AttrDest}),
	}, nil
}

func touchDefinition() Definition {
	return Definition{
		Kind:    KindTouch,
		Summary: "sets the modification time of existing files to now",
		Params: Params{
			{Name: "source", Type: TypeStrings, Required: true},
		},
		New: newTouch,
	}
}

func newTouch(args Args, deps Deps) (Built, error) {
	action := target.ActionFunc(func(rc target.RunContext) error {
		r, err := args.Resolve(rc)
		if err != nil {
			return err
		}
		sources, err := r.Strings("source")
		if err != nil {
			return err
		}

		now := deps.Now()
		for _, source := range sources {
			path := rc.Path(source)
			if _, err := deps.FS.GetFileInfo(path); err != nil {
				return fmt.Errorf("failed to stat %s: %w", path, err)
			}
			logger(rc).Info(rc.Context(), fmt.Sprintf("touching %s", path))
			if err := deps.FS.Chtimes(path, now, now); err != nil {
				return fmt.Errorf("failed to touch %s: %w", path, err)
			}
		}
		return nil
	})

	return Built{
		Action: action,
		Attrs:  literalAttrs(args, map[string]string{"source": target.AttrSource}),
	}, nil
}

func rmDefinition() Definition {
	return Definition{
		Kind:    KindRm,
		Summary: "removes a file or directory tree",
		Params: Params{
			{Name: "path", Type: TypeString, Required: true},
			{Name: "ignore_error", Type: TypeBool},
		},
		New: newRm,
	}
}

func newRm(args Args, deps Deps) (Built, error) {
	action := target.ActionFunc(func(rc target.RunContext) error {
		r, err := args.Resolve(rc)
		if err != nil {
			return err
		}
		raw, err := r.String("path")
		if err != nil {
			return err
		}
		ignoreError, err := r.Bool("ignore_error", true)
		if err != nil {
			return err
		}

		path := rc.Path(raw)
		if !deps.FS.Exists(path) {
			if ignoreError {
				return nil
			}
			return fmt.Errorf("no file found: %s", path)
		}

		logger(rc).Info(rc.Context(), fmt.Sprintf("removing %s", path))
		if err := deps.FS.RemoveAll(path); err != nil && !ignoreError {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
		return nil
	})

	return Built{
		Action: action,
		Attrs:  literalAttrs(args, map[string]string{"path": target.AttrDest}),
	}, nil
}

func writeDefinition() Definition {
	return Definition{
		Kind:    KindWrite,
		Summary: "writes contents to a file when they differ",
		Params: Params{
			{Name: "file", Type: TypeString, Required: true},
			{Name: "contents", Type: TypeString, Required: true},
		},
		New: newWrite,
	}
}

func newWrite(args Args, deps Deps) (Built, error) {
	action := target.ActionFunc(func(rc target.RunContext) error {
		r, err := args.Resolve(rc)
		if err != nil {
			return err
		}
		file, err := r.String("file")
		if err != nil {
			return err
		}
		contents, err := r.String("contents")
		if err != nil {
			return err
		}

		path := rc.Path(file)
		if deps.FS.Exists(path) {
			existing, err := deps.FS.FileHash(path)
			if err != nil {
				return fmt.Errorf("failed to hash %s: %w", path, err)
			}
			sum := sha256.Sum256([]byte(contents))
			if existing == hex.EncodeToString(sum[:]) {
				logger(rc).Debug(rc.Context(), fmt.Sprintf("%s is up to date", path))
				return nil
			}
		}

		logger(rc).Info(rc.Context(), fmt.Sprintf("writing %s", path))
		return deps.FS.WriteFile(path, []byte(contents), 0o644)
	})

	return Built{
		Action: action,
		Attrs:  literalAttrs(args, map[string]string{"file": target.AttrDest}),
	}, nil
}

func renameDefinition() Definition {
	return Definition{
		Kind:    KindRename,
		Summary: "renames or moves a file",
		Params: Params{
			{Name: "source", Type: TypeString, Required: true},
			{Name: "new_name", Type: TypeString, Required: true},
		},
		New: newRename,
	}
}

func newRename(args Args, deps Deps) (Built, error) {
	action := target.ActionFunc(func(rc target.RunContext) error {
		r, err := args.Resolve(rc)
		if err != nil {
			return err
		}
		source, err := r.String("source")
		if err != nil {
			return err
		}
		newName, err := r.String("new_name")
		if err != nil {
			return err
		}

		src := rc.Path(source)
		destDir := filepath.Dir(newName)
		if destDir == "." {
			destDir = filepath.Dir(src)
		} else {
			destDir = rc.Path(destDir)
		}
		dest := filepath.Join(destDir, filepath.Base(newName))

		logger(rc).Info(rc.Context(), fmt.Sprintf("renaming %s to %s", src, dest))
		return deps.FS.Rename(src, dest)
	})

	return Built{
		Action: action,
		Attrs: literalAttrs(args, map[string]string{
			"source":   target.AttrSource,
			"new_name": target.AttrDest,
		}),
	}, nil
}
