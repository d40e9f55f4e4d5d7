// Package templates provides starter build files for makeflow init.
package templates

import (
	"bytes"
	"fmt"
	"text/template"
)

// BuildFileData contains data for the build file templates.
type BuildFileData struct {
	Name     string   // Project name, used in the header comment
	Requires string   // Minimum makeflow version, omitted when empty
	Subdirs  []string // Sub-projects to compose; "all" depends on "<subdir>:all"
	Prefix   string   // Prepended to the target names, e.g. "lib:" in a sub-project
}

// hclTemplateStr defers the argv expression so it shows how variables work.
const hclTemplateStr = `# Build file for {{.Name}}.
# Run 'makeflow list' to see the targets and 'makeflow' to build them.
{{if .Requires}}
requires = "{{.Requires}}"
{{end}}{{range .Subdirs}}
subdir "{{.}}" {}
{{end}}
target "{{.Prefix}}all" {
  depends = ["{{.Prefix}}build"{{range .Subdirs}}, "{{.}}:all"{{end}}]
}

target "{{.Prefix}}build" {
  action  = "exec"
  program = "echo"
  argv    = ["building ${dir}"]
}
`

const yamlTemplateStr = `# Build file for {{.Name}}.
# Run 'makeflow list' to see the targets and 'makeflow' to build them.
{{if .Requires}}requires: {{.Requires}}
{{end}}{{if .Subdirs}}subdirs:
{{range .Subdirs}}  - name: {{.}}
{{end}}{{end}}targets:
  - name: "{{.Prefix}}all"
    depends: ["{{.Prefix}}build"{{range .Subdirs}}, "{{.}}:all"{{end}}]
  - name: "{{.Prefix}}build"
    action: exec
    with:
      program: echo
      argv: [building]
`

const tomlTemplateStr = `# Build file for {{.Name}}.
# Run 'makeflow list' to see the targets and 'makeflow' to build them.
{{if .Requires}}requires = "{{.Requires}}"
{{end}}{{range .Subdirs}}
[[subdirs]]
name = "{{.}}"
{{end}}
[[targets]]
name = "{{.Prefix}}all"
depends = ["{{.Prefix}}build"{{range .Subdirs}}, "{{.}}:all"{{end}}]

[[targets]]
name = "{{.Prefix}}build"
action = "exec"

[targets.with]
program = "echo"
argv = ["building"]
`

var buildFileTemplates = map[string]*template.Template{
	"hcl":  template.Must(template.New("hcl").Parse(hclTemplateStr)),
	"yaml": template.Must(template.New("yaml").Parse(yamlTemplateStr)),
	"toml": template.Must(template.New("toml").Parse(tomlTemplateStr)),
}

// Formats returns the formats GenerateBuildFile accepts.
func Formats() []string {
	return []string{"hcl", "yaml", "toml"}
}

// GenerateBuildFile renders a starter build file in the given format.
func GenerateBuildFile(format string, data BuildFileData) (string, error) {
	tmpl, ok := buildFileTemplates[format]
	if !ok {
		return "", fmt.Errorf("unknown build file format %q", format)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
