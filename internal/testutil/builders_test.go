package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBuildFileBuilder(t *testing.T) {
	t.Parallel()

	file := NewBuildFileBuilder().
		WithRequires("v0.1.0").
		WithSubdir("lib").
		WithPhony("all", "compile").
		WithTarget("compile", "exec", map[string]interface{}{"program": "go"}).
		Build()

	assert.Equal(t, "v0.1.0", file.Requires)
	require.Len(t, file.Targets, 2)
	assert.Equal(t, []string{"compile"}, file.Targets[0].Depends)
	assert.Equal(t, "exec", file.Targets[1].Action)
}

func TestBuildFile_ToYAML(t *testing.T) {
	t.Parallel()

	out := NewBuildFileBuilder().
		WithTarget("hello", "write", map[string]interface{}{"file": "out.txt", "contents": "hi"}).
		Build().
		ToYAML()

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))

	targets, ok := doc["targets"].([]interface{})
	require.True(t, ok)
	require.Len(t, targets, 1)
	first := targets[0].(map[string]interface{})
	assert.Equal(t, "hello", first["name"])
	assert.NotContains(t, out, "subdirs")
}
