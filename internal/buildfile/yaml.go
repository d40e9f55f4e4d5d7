package buildfile

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a YAML build file. Unknown keys are rejected.
func ParseYAML(path string, data []byte) (*File, error) {
	var raw plainFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, NewParseError(path, err)
	}
	return raw.toFile(path, FormatYAML), nil
}
