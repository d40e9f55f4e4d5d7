// Package target holds the core build model: targets, their actions, the
// registry they live in and the errors raised while building them.
package target

import (
	"errors"
	"sort"
)

// Well-known attribute keys set by build files and built-in actions.
const (
	AttrKind   = "kind"
	AttrFile   = "file"
	AttrSource = "source"
	AttrDest   = "dest"
)

// Action is the work a target performs. A returned error is the only failure
// signal; the executor also converts panics into errors.
type Action interface {
	Run(rc RunContext) error
}

// ActionFunc adapts a plain function to Action.
type ActionFunc func(rc RunContext) error

// Run calls f(rc).
func (f ActionFunc) Run(rc RunContext) error {
	return f(rc)
}

// Spec describes a target to register.
type Spec struct {
	Name    string
	Depends []string
	Action  Action
	Options Options
}

// Validate checks the parts of a spec that the registry cannot repair.
func (s Spec) Validate() error {
	if s.Name == "" {
		return errors.New("target name is required")
	}
	for _, dep := range s.Depends {
		if dep == "" {
			return errors.New("dependency names must not be empty")
		}
	}
	return nil
}

// Target is a registered build target.
type Target struct {
	Name    string
	Depends []string
	Action  Action
	Options Options

	attrs map[string]interface{}
}

func newTarget(spec Spec) *Target {
	deps := make([]string, len(spec.Depends))
	copy(deps, spec.Depends)
	return &Target{
		Name:    spec.Name,
		Depends: deps,
		Action:  spec.Action,
		Options: spec.Options,
	}
}

// IsPhony reports whether the target has no action.
func (t *Target) IsPhony() bool {
	return t.Action == nil
}

// Set attaches an introspectable attribute and returns the target.
func (t *Target) Set(key string, value interface{}) *Target {
	if t.attrs == nil {
		t.attrs = make(map[string]interface{})
	}
	t.attrs[key] = value
	return t
}

// Get returns an attribute.
func (t *Target) Get(key string) (interface{}, bool) {
	v, ok := t.attrs[key]
	return v, ok
}

// GetString returns a string attribute, or "" when it is absent or not a string.
func (t *Target) GetString(key string) string {
	s, _ := t.attrs[key].(string)
	return s
}

// Attrs returns a copy of all attributes.
func (t *Target) Attrs() map[string]interface{} {
	out := make(map[string]interface{}, len(t.attrs))
	for k, v := range t.attrs {
		out[k] = v
	}
	return out
}

// AttrKeys returns the attribute keys in sorted order.
func (t *Target) AttrKeys() []string {
	keys := make([]string, 0, len(t.attrs))
	for k := range t.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Kind returns the action kind recorded by the build file, "phony" for targets
// without an action, or "" when unknown.
func (t *Target) Kind() string {
	if k := t.GetString(AttrKind); k != "" {
		return k
	}
	if t.IsPhony() {
		return "phony"
	}
	return ""
}

// String returns the target name.
func (t *Target) String() string {
	return t.Name
}

// Names returns the names of targets in order.
func Names(targets []*Target) []string {
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = t.Name
	}
	return names
}
