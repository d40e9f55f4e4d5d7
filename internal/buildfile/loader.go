package buildfile

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/felixgeelhaar/makeflow/internal/actions"
	"github.com/felixgeelhaar/makeflow/internal/domain/subproject"
	"github.com/felixgeelhaar/makeflow/internal/ports"
)

// ParseFunc parses the contents of one build file.
type ParseFunc func(path string, data []byte) (*File, error)

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return FormatHCL, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// Loader reads build files through a FileSystem and turns them into scripts
// that register targets. It implements subproject.Loader.
type Loader struct {
	fs      ports.FileSystem
	catalog *actions.Catalog
	version string
	parsers map[Format]ParseFunc
}

// NewLoader creates a Loader. version is the running makeflow version that
// requires clauses are checked against.
func NewLoader(fs ports.FileSystem, catalog *actions.Catalog, version string) *Loader {
	return &Loader{
		fs:      fs,
		catalog: catalog,
		version: version,
		parsers: map[Format]ParseFunc{
			FormatHCL:  ParseHCL,
			FormatYAML: ParseYAML,
			FormatTOML: ParseTOML,
		},
	}
}

// WithParser returns a copy of the loader that uses parse for format.
func (l *Loader) WithParser(format Format, parse ParseFunc) *Loader {
	clone := *l
	clone.parsers = make(map[Format]ParseFunc, len(l.parsers)+1)
	for k, v := range l.parsers {
		clone.parsers[k] = v
	}
	clone.parsers[format] = parse
	return &clone
}

// Parse reads and validates the build file at path.
func (l *Loader) Parse(path string) (*File, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, NewUnsupportedFormatError(path)
	}
	parse, ok := l.parsers[format]
	if !ok {
		return nil, NewUnsupportedFormatError(path)
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	file, err := parse(path, data)
	if err != nil {
		return nil, err
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}
	if err := CheckRequires(path, file.Requires, l.version); err != nil {
		return nil, err
	}
	return file, nil
}

// Load implements subproject.Loader.
func (l *Loader) Load(path string) (subproject.Script, error) {
	file, err := l.Parse(path)
	if err != nil {
		return nil, err
	}
	return NewScript(file, l.catalog), nil
}

// CheckRequires verifies that current satisfies the minimum version required.
// Development builds, whose version is not valid semver, skip the check.
func CheckRequires(path, required, current string) error {
	if required == "" {
		return nil
	}
	req := canonical(required)
	if !semver.IsValid(req) {
		return NewInvalidError(path, fmt.Sprintf("requires %q is not a valid version", required))
	}
	cur := canonical(current)
	if !semver.IsValid(cur) {
		return nil
	}
	if semver.Compare(cur, req) < 0 {
		return NewVersionError(path, req, cur)
	}
	return nil
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

var _ subproject.Loader = (*Loader)(nil)
