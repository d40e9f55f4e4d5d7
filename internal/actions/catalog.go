package actions

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/felixgeelhaar/makeflow/internal/adapters/command"
	"github.com/felixgeelhaar/makeflow/internal/adapters/filesystem"
	"github.com/felixgeelhaar/makeflow/internal/domain/target"
	"github.com/felixgeelhaar/makeflow/internal/ports"
)

// Kind names of the built-in actions.
const (
	KindPhony  = "phony"
	KindExec   = "exec"
	KindCopy   = "copy"
	KindMkdir  = "mkdir"
	KindTouch  = "touch"
	KindRm     = "rm"
	KindWrite  = "write"
	KindRename = "rename"
	KindHTTP   = "http"
)

// Deps are the resources actions use to reach the outside world.
type Deps struct {
	FS     ports.FileSystem
	Runner ports.CommandRunner
	HTTP   *http.Client
	Stdout io.Writer
	Stderr io.Writer
	Now    func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.FS == nil {
		d.FS = filesystem.NewRealFileSystem()
	}
	if d.Runner == nil {
		d.Runner = command.NewRealRunner()
	}
	if d.HTTP == nil {
		d.HTTP = &http.Client{}
	}
	if d.Stdout == nil {
		d.Stdout = os.Stdout
	}
	if d.Stderr == nil {
		d.Stderr = os.Stderr
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// Built is an action ready to attach to a target, plus the attributes that
// describe it.
type Built struct {
	Action target.Action
	Attrs  map[string]interface{}
}

// Factory creates an action from validated arguments.
type Factory func(args Args, deps Deps) (Built, error)

// Definition is a registered action kind.
type Definition struct {
	Kind    string
	Summary string
	Params  Params
	New     Factory
}

// Catalog maps kind names to action definitions.
type Catalog struct {
	defs map[string]Definition
	deps Deps
}

// NewCatalog creates a catalog holding every built-in kind. Zero fields of
// deps are replaced with the real file system, process runner and HTTP client.
func NewCatalog(deps Deps) *Catalog {
	c := &Catalog{
		defs: make(map[string]Definition),
		deps: deps.withDefaults(),
	}
	for _, def := range builtins() {
		c.Register(def)
	}
	return c
}

// Register adds or replaces a kind.
func (c *Catalog) Register(def Definition) {
	c.defs[def.Kind] = def
}

// Kinds returns the registered kind names in sorted order.
func (c *Catalog) Kinds() []string {
	kinds := make([]string, 0, len(c.defs))
	for k := range c.defs {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Lookup returns the definition of kind.
func (c *Catalog) Lookup(kind string) (Definition, bool) {
	def, ok := c.defs[kind]
	return def, ok
}

// Build validates args and creates the action for kind. An empty kind means
// phony.
func (c *Catalog) Build(kind string, args Args) (Built, error) {
	if kind == "" {
		kind = KindPhony
	}
	def, ok := c.defs[kind]
	if !ok {
		return Built{}, fmt.Errorf("unknown action kind %q (available: %s)", kind, strings.Join(c.Kinds(), ", "))
	}
	if err := def.Params.Check(args); err != nil {
		return Built{}, fmt.Errorf("%s: %w", kind, err)
	}
	built, err := def.New(args, c.deps)
	if err != nil {
		return Built{}, fmt.Errorf("%s: %w", kind, err)
	}
	if built.Attrs == nil {
		built.Attrs = make(map[string]interface{})
	}
	built.Attrs[target.AttrKind] = kind
	return built, nil
}

func builtins() []Definition {
	return []Definition{
		{
			Kind:    KindPhony,
			Summary: "groups dependencies without doing any work",
			New: func(Args, Deps) (Built, error) {
				return Built{}, nil
			},
		},
		execDefinition(),
		copyDefinition(),
		mkdirDefinition(),
		touchDefinition(),
		rmDefinition(),
		writeDefinition(),
		renameDefinition(),
		httpDefinition(),
	}
}

// logger returns the RunContext logger, never nil.
func logger(rc target.RunContext) ports.Logger {
	return ports.OrNop(rc.Logger())
}

// literalAttrs copies the literal values of keys into an attribute map under
// the given attribute names.
func literalAttrs(args Args, mapping map[string]string) map[string]interface{} {
	attrs := make(map[string]interface{})
	for arg, attr := range mapping {
		if v, ok := args.Literal(arg); ok {
			attrs[attr] = v
		}
	}
	return attrs
}
