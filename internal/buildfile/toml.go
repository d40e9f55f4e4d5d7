package buildfile

import (
	"bytes"

	"github.com/pelletier/go-toml/v2"
)

// ParseTOML parses a TOML build file. Unknown keys are rejected.
func ParseTOML(path string, data []byte) (*File, error) {
	var raw plainFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, NewParseError(path, err)
	}
	return raw.toFile(path, FormatTOML), nil
}
