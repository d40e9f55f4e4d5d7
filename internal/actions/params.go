package actions

import (
	"fmt"
	"strings"
)

// ParamType is the accepted shape of an argument.
type ParamType int

const (
	// TypeAny accepts any value.
	TypeAny ParamType = iota
	// TypeString accepts strings and numbers.
	TypeString
	// TypeBool accepts booleans.
	TypeBool
	// TypeStrings accepts a string or a list of strings.
	TypeStrings
	// TypeStringMap accepts a map of scalars.
	TypeStringMap
)

// String returns the name used in help output.
func (t ParamType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	case TypeStrings:
		return "string or list"
	case TypeStringMap:
		return "map"
	default:
		return "any"
	}
}

// Param describes one argument of an action kind.
type Param struct {
	Name     string
	Type     ParamType
	Required bool
}

// Params is the argument schema of an action kind.
type Params []Param

// Check validates args against the schema at load time. Deferred values are
// only checked for presence; their type is checked when the action runs.
func (ps Params) Check(args Args) error {
	known := make(map[string]Param, len(ps))
	for _, p := range ps {
		known[p.Name] = p
		if _, ok := args[p.Name]; p.Required && !ok {
			return fmt.Errorf("argument %q is required", p.Name)
		}
	}

	var unknown []string
	for _, key := range args.Keys() {
		p, ok := known[key]
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		v, isLiteral := args.Literal(key)
		if !isLiteral {
			continue
		}
		if err := p.Type.check(key, v); err != nil {
			return err
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown arguments: %s", strings.Join(unknown, ", "))
	}
	return nil
}

func (t ParamType) check(key string, v interface{}) error {
	var err error
	switch t {
	case TypeString:
		_, err = asString(key, v)
	case TypeBool:
		_, err = asBool(key, v)
	case TypeStrings:
		_, err = asStrings(key, v)
	case TypeStringMap:
		_, err = asStringMap(key, v)
	case TypeAny:
	}
	return err
}
