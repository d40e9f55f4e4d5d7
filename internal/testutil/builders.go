package testutil

import (
	"gopkg.in/yaml.v3"
)

// TestBuildFile is a makeflow.yaml document for tests.
type TestBuildFile struct {
	Requires string          `yaml:"requires,omitempty"`
	Subdirs  []TestSubdir    `yaml:"subdirs,omitempty"`
	Targets  []TestTargetDef `yaml:"targets,omitempty"`
}

// TestSubdir is a subdirs entry.
type TestSubdir struct {
	Name string `yaml:"name"`
	File string `yaml:"file,omitempty"`
}

// TestTargetDef is a targets entry.
type TestTargetDef struct {
	Name    string                 `yaml:"name"`
	Action  string                 `yaml:"action,omitempty"`
	Depends []string               `yaml:"depends,omitempty"`
	With    map[string]interface{} `yaml:"with,omitempty"`
}

// BuildFileBuilder builds YAML build files.
type BuildFileBuilder struct {
	file TestBuildFile
}

// NewBuildFileBuilder creates a new build file builder.
func NewBuildFileBuilder() *BuildFileBuilder {
	return &BuildFileBuilder{}
}

// WithRequires sets the minimum makeflow version.
func (b *BuildFileBuilder) WithRequires(version string) *BuildFileBuilder {
	b.file.Requires = version
	return b
}

// WithSubdir adds a nested project.
func (b *BuildFileBuilder) WithSubdir(name string) *BuildFileBuilder {
	b.file.Subdirs = append(b.file.Subdirs, TestSubdir{Name: name})
	return b
}

// WithPhony adds a target without an action.
func (b *BuildFileBuilder) WithPhony(name string, depends ...string) *BuildFileBuilder {
	b.file.Targets = append(b.file.Targets, TestTargetDef{Name: name, Depends: depends})
	return b
}

// WithTarget adds a target with an action kind and its arguments.
func (b *BuildFileBuilder) WithTarget(name, action string, with map[string]interface{}, depends ...string) *BuildFileBuilder {
	b.file.Targets = append(b.file.Targets, TestTargetDef{
		Name:    name,
		Action:  action,
		Depends: depends,
		With:    with,
	})
	return b
}

// Build returns the document.
func (b *BuildFileBuilder) Build() TestBuildFile {
	return b.file
}

// ToYAML renders the document.
func (f TestBuildFile) ToYAML() string {
	out, err := yaml.Marshal(f)
	if err != nil {
		panic(err)
	}
	return string(out)
}
