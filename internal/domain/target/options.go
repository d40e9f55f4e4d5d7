package target

import (
	"path"

	"github.com/felixgeelhaar/makeflow/internal/ports"
)

// Options is the per-target configuration inherited through sub-projects.
type Options struct {
	// Dir is the execution root. Empty means the process working directory.
	Dir string
	// Prefix is the slash-separated sub-project path, used for logging.
	Prefix string
	// BuildFile overrides the build file name looked up in nested directories.
	BuildFile string
	// Logger is shared by every target of a build.
	Logger ports.Logger
	// Values holds caller-defined fields forwarded untouched.
	Values map[string]interface{}
}

// Child derives the options of a nested sub-project. The copy is shallow
// except for Values, which is copied so the child can add entries.
func (o Options) Child(name, dir string) Options {
	child := o
	child.Prefix = path.Join(o.Prefix, name)
	child.Dir = dir
	if o.Values != nil {
		child.Values = make(map[string]interface{}, len(o.Values))
		for k, v := range o.Values {
			child.Values[k] = v
		}
	}
	return child
}

// Value returns a caller-defined field.
func (o Options) Value(key string) (interface{}, bool) {
	v, ok := o.Values[key]
	return v, ok
}
