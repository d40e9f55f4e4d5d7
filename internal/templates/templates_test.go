package templates_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/makeflow/internal/buildfile"
	"github.com/felixgeelhaar/makeflow/internal/templates"
)

func parse(t *testing.T, format, src string) *buildfile.File {
	t.Helper()

	var (
		f   *buildfile.File
		err error
	)
	switch format {
	case "hcl":
		f, err = buildfile.ParseHCL("makeflow.hcl", []byte(src))
	case "yaml":
		f, err = buildfile.ParseYAML("makeflow.yaml", []byte(src))
	case "toml":
		f, err = buildfile.ParseTOML("makeflow.toml", []byte(src))
	}
	require.NoError(t, err, src)
	require.NoError(t, f.Validate())
	return f
}

func TestGenerateBuildFile(t *testing.T) {
	t.Parallel()

	for _, format := range templates.Formats() {
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			src, err := templates.GenerateBuildFile(format, templates.BuildFileData{Name: "demo"})
			require.NoError(t, err)
			assert.Contains(t, src, "Build file for demo.")

			f := parse(t, format, src)
			assert.Equal(t, []string{"all", "build"}, f.TargetNames())
			assert.Empty(t, f.Subdirs)
			assert.Empty(t, f.Requires)
			assert.Equal(t, "exec", f.Targets[1].Action)
			assert.Equal(t, []string{"build"}, f.Targets[0].Depends)
		})
	}
}

func TestGenerateBuildFile_WithSubdirsAndRequires(t *testing.T) {
	t.Parallel()

	data := templates.BuildFileData{Name: "demo", Requires: "v0.3.0", Subdirs: []string{"lib", "cmd"}}

	for _, format := range templates.Formats() {
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			src, err := templates.GenerateBuildFile(format, data)
			require.NoError(t, err)

			f := parse(t, format, src)
			assert.Equal(t, "v0.3.0", f.Requires)
			require.Len(t, f.Subdirs, 2)
			assert.Equal(t, "lib", f.Subdirs[0].Name)
			assert.Equal(t, "cmd", f.Subdirs[1].Name)
			assert.Equal(t, []string{"build", "lib:all", "cmd:all"}, f.Targets[0].Depends)
		})
	}
}

func TestGenerateBuildFile_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := templates.GenerateBuildFile("json", templates.BuildFileData{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown build file format "json"`)
}

func TestGenerateBuildFile_Prefix(t *testing.T) {
	t.Parallel()

	for _, format := range templates.Formats() {
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			src, err := templates.GenerateBuildFile(format, templates.BuildFileData{Name: "lib", Prefix: "lib:"})
			require.NoError(t, err)

			f := parse(t, format, src)
			assert.Equal(t, []string{"lib:all", "lib:build"}, f.TargetNames())
			assert.Equal(t, []string{"lib:build"}, f.Targets[0].Depends)
		})
	}
}
