package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/makeflow/internal/templates"
	"github.com/felixgeelhaar/makeflow/internal/validation"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a starter build file",
	Long: `Init writes a makeflow build file with an "all" and a "build" target
into dir, or the current directory.

Examples:
  makeflow init
  makeflow init --format yaml --subdir lib --subdir cmd
  makeflow init services/api --format toml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var (
	initFormat  string
	initSubdirs []string
	initForce   bool
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initFormat, "format", "hcl", "build file format ("+strings.Join(templates.Formats(), ", ")+")")
	initCmd.Flags().StringSliceVar(&initSubdirs, "subdir", nil, "sub-project to compose (repeatable)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing build file")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	for _, sub := range initSubdirs {
		if err := validation.ValidateRelativePath(sub); err != nil {
			return fmt.Errorf("invalid --subdir: %w", err)
		}
	}

	data := templates.BuildFileData{
		Name:    filepath.Base(abs),
		Subdirs: initSubdirs,
	}
	if strings.HasPrefix(version, "v") {
		data.Requires = version
	}

	path := filepath.Join(abs, "makeflow."+initFormat)
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := writeBuildFile(cmd, path, data); err != nil {
		return err
	}

	// Sub-projects get their own starter file unless they already have one.
	for _, sub := range initSubdirs {
		subPath := filepath.Join(abs, sub, "makeflow."+initFormat)
		if _, err := os.Stat(subPath); err == nil {
			continue
		}
		subData := templates.BuildFileData{Name: filepath.Base(sub), Prefix: sub + ":"}
		if err := writeBuildFile(cmd, subPath, subData); err != nil {
			return err
		}
	}
	return nil
}

func writeBuildFile(cmd *cobra.Command, path string, data templates.BuildFileData) error {
	content, err := templates.GenerateBuildFile(initFormat, data)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	return nil
}
