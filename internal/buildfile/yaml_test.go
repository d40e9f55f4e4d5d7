package buildfile_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/makeflow/internal/buildfile"
	"github.com/felixgeelhaar/makeflow/internal/testutil"
)

func TestParseYAML(t *testing.T) {
	t.Parallel()

	src := testutil.NewBuildFileBuilder().
		WithRequires("0.3.0").
		WithSubdir("lib").
		WithPhony("all", "gen").
		WithTarget("gen", "exec", map[string]interface{}{
			"program": "go",
			"argv":    []interface{}{"generate", "./..."},
			"env":     map[string]interface{}{"CGO_ENABLED": 0},
		}).
		Build().
		ToYAML()

	f, err := buildfile.ParseYAML("makeflow.yaml", []byte(src))
	require.NoError(t, err)

	assert.Equal(t, buildfile.FormatYAML, f.Format)
	assert.Equal(t, "0.3.0", f.Requires)
	assert.Equal(t, []buildfile.SubdirDecl{{Name: "lib"}}, f.Subdirs)
	assert.Equal(t, []string{"all", "gen"}, f.TargetNames())
	assert.Equal(t, []string{"gen"}, f.Targets[0].Depends)

	gen := f.Targets[1]
	assert.Equal(t, "exec", gen.Action)
	assert.Equal(t, []string{"argv", "env", "program"}, gen.Args.Keys())
	program, ok := gen.Args.Literal("program")
	require.True(t, ok)
	assert.Equal(t, "go", program)
	argv, _ := gen.Args.Literal("argv")
	assert.Equal(t, []interface{}{"generate", "./..."}, argv)
}

func TestParseYAML_EmptyFile(t *testing.T) {
	t.Parallel()

	f, err := buildfile.ParseYAML("makeflow.yaml", nil)
	require.NoError(t, err)
	assert.Empty(t, f.Targets)
	assert.Empty(t, f.Subdirs)
}

func TestParseYAML_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"unknown key", "colour: blue\n"},
		{"unknown target key", "targets:\n  - name: a\n    run: x\n"},
		{"bad syntax", "targets: [\n"},
		{"wrong type", "targets: hello\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildfile.ParseYAML("makeflow.yaml", []byte(tt.src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, buildfile.ErrParse))
		})
	}
}
