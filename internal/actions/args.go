// Package actions provides the built-in action kinds build files can use.
package actions

import (
	"fmt"
	"sort"

	"github.com/felixgeelhaar/makeflow/internal/domain/target"
)

// Args are the arguments of one action keyed by name. Values may be deferred
// until the action starts.
type Args map[string]target.Value[interface{}]

// ArgsFrom wraps plain values as literal arguments.
func ArgsFrom(values map[string]interface{}) Args {
	args := make(Args, len(values))
	for k, v := range values {
		args[k] = target.Literal(v)
	}
	return args
}

// Keys returns the argument names in sorted order.
func (a Args) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Literal returns the value of key when it is present and not deferred.
func (a Args) Literal(key string) (interface{}, bool) {
	v, ok := a[key]
	if !ok {
		return nil, false
	}
	return v.Literal()
}

// Resolve evaluates every argument once against rc.
func (a Args) Resolve(rc target.RunContext) (Resolved, error) {
	out := make(Resolved, len(a))
	for _, k := range a.Keys() {
		v, err := a[k].Resolve(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate %s: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

// Resolved holds evaluated arguments with typed accessors.
type Resolved map[string]interface{}

// String returns a required string argument.
func (r Resolved) String(key string) (string, error) {
	v, ok := r[key]
	if !ok {
		return "", fmt.Errorf("%s is required", key)
	}
	return asString(key, v)
}

// StringOr returns a string argument or def when it is absent.
func (r Resolved) StringOr(key, def string) (string, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return def, nil
	}
	return asString(key, v)
}

// Bool returns a boolean argument or def when it is absent.
func (r Resolved) Bool(key string, def bool) (bool, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return def, nil
	}
	return asBool(key, v)
}

// Strings returns a string or list-of-strings argument as a slice.
func (r Resolved) Strings(key string) ([]string, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return nil, nil
	}
	return asStrings(key, v)
}

// StringMap returns a map argument with scalar values rendered as strings.
func (r Resolved) StringMap(key string) (map[string]string, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return nil, nil
	}
	return asStringMap(key, v)
}

// Raw returns an argument unconverted.
func (r Resolved) Raw(key string) (interface{}, bool) {
	v, ok := r[key]
	return v, ok
}

func asString(key string, v interface{}) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case int, int64, float64, uint64:
		return fmt.Sprint(s), nil
	default:
		return "", fmt.Errorf("%s must be a string, got %T", key, v)
	}
}

func asBool(key string, v interface{}) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%s must be a boolean, got %T", key, v)
	}
	return b, nil
}

func asStrings(key string, v interface{}) ([]string, error) {
	switch list := v.(type) {
	case string:
		return []string{list}, nil
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out, nil
	case []interface{}:
		out := make([]string, 0, len(list))
		for i, item := range list {
			s, err := asString(fmt.Sprintf("%s[%d]", key, i), item)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be a string or a list of strings, got %T", key, v)
	}
}

func asStringMap(key string, v interface{}) (map[string]string, error) {
	switch m := v.(type) {
	case map[string]string:
		out := make(map[string]string, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, nil
	case map[string]interface{}:
		out := make(map[string]string, len(m))
		for k, val := range m {
			s, err := asString(key+"."+k, val)
			if err != nil {
				return nil, err
			}
			out[k] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be a map, got %T", key, v)
	}
}
