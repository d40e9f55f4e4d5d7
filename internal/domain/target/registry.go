package target

// Registry maps unique names to targets in insertion order. It is an explicit
// instance so several builds can coexist; it is not safe for concurrent writers.
type Registry struct {
	targets     map[string]*Target
	order       []string
	overwritten []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		targets: make(map[string]*Target),
	}
}

// Register stores a target built from spec and returns it. Registering an
// existing name replaces the record but keeps its original position.
func (r *Registry) Register(spec Spec) *Target {
	t := newTarget(spec)
	if _, exists := r.targets[spec.Name]; exists {
		r.overwritten = append(r.overwritten, spec.Name)
	} else {
		r.order = append(r.order, spec.Name)
	}
	r.targets[spec.Name] = t
	return t
}

// Get returns the target registered under name.
func (r *Registry) Get(name string) (*Target, bool) {
	t, ok := r.targets[name]
	return t, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.targets[name]
	return ok
}

// Names returns registered names in insertion order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Targets returns registered targets in insertion order.
func (r *Registry) Targets() []*Target {
	targets := make([]*Target, len(r.order))
	for i, name := range r.order {
		targets[i] = r.targets[name]
	}
	return targets
}

// Len returns the number of registered targets.
func (r *Registry) Len() int {
	return len(r.order)
}

// Overwritten returns the names that were registered more than once, once
// per overwrite, in the order the overwrites happened.
func (r *Registry) Overwritten() []string {
	out := make([]string, len(r.overwritten))
	copy(out, r.overwritten)
	return out
}

// Reset removes every target.
func (r *Registry) Reset() {
	r.targets = make(map[string]*Target)
	r.order = nil
	r.overwritten = nil
}
