// Package resolver turns requested target names into a dependency-respecting
// execution order.
package resolver

import (
	"github.com/felixgeelhaar/makeflow/internal/domain/target"
)

// Visited tracks the targets already scheduled in one evaluation, plus the
// current DFS stack used for strict cycle detection.
type Visited struct {
	seen  map[string]bool
	stack []string
	onStk map[string]int
}

// NewVisited creates an empty visited set.
func NewVisited() *Visited {
	return &Visited{
		seen:  make(map[string]bool),
		onStk: make(map[string]int),
	}
}

// Has reports whether name was already visited.
func (v *Visited) Has(name string) bool {
	return v.seen[name]
}

// Len returns the number of visited names.
func (v *Visited) Len() int {
	return len(v.seen)
}

func (v *Visited) push(name string) {
	v.onStk[name] = len(v.stack)
	v.stack = append(v.stack, name)
}

func (v *Visited) pop() {
	name := v.stack[len(v.stack)-1]
	v.stack = v.stack[:len(v.stack)-1]
	delete(v.onStk, name)
}

// cycle returns the stack slice from name to the top, closed with name.
func (v *Visited) cycle(name string) []string {
	idx, ok := v.onStk[name]
	if !ok {
		return nil
	}
	path := make([]string, 0, len(v.stack)-idx+1)
	path = append(path, v.stack[idx:]...)
	return append(path, name)
}

// Resolver computes execution sequences over a registry.
type Resolver struct {
	registry *target.Registry
	strict   bool
}

// NewResolver creates a Resolver reading from registry.
func NewResolver(registry *target.Registry) *Resolver {
	return &Resolver{registry: registry}
}

// WithStrict returns a new Resolver that fails on dependency cycles instead
// of silently scheduling each target at its first position.
func (r *Resolver) WithStrict(strict bool) *Resolver {
	return &Resolver{
		registry: r.registry,
		strict:   strict,
	}
}

// Strict returns whether cycles are reported as errors.
func (r *Resolver) Strict() bool {
	return r.strict
}

// ResolveOne appends name and its transitive dependencies to the sequence in
// post-order. Already visited names contribute nothing.
func (r *Resolver) ResolveOne(name string, visited *Visited) ([]*target.Target, error) {
	if visited.Has(name) {
		if r.strict {
			if path := visited.cycle(name); path != nil {
				return nil, target.NewCycleDetectedError(path)
			}
		}
		return nil, nil
	}

	t, ok := r.registry.Get(name)
	if !ok {
		return nil, target.NewUnresolvedTargetError(name)
	}

	visited.seen[name] = true
	visited.push(name)
	defer visited.pop()

	var seq []*target.Target
	for _, dep := range t.Depends {
		sub, err := r.ResolveOne(dep, visited)
		if err != nil {
			return nil, err
		}
		seq = append(seq, sub...)
	}
	return append(seq, t), nil
}

// Resolve returns the execution sequence for names. Seeds are taken in
// registry order whatever the order of names; with no names every registered
// target is a seed. An unknown name fails before anything is scheduled.
func (r *Resolver) Resolve(names []string) ([]*target.Target, error) {
	seeds := r.registry.Names()
	if len(names) > 0 {
		requested := make(map[string]bool, len(names))
		for _, name := range names {
			if !r.registry.Has(name) {
				return nil, target.NewUnresolvedTargetError(name)
			}
			requested[name] = true
		}
		filtered := make([]string, 0, len(requested))
		for _, name := range seeds {
			if requested[name] {
				filtered = append(filtered, name)
			}
		}
		seeds = filtered
	}

	visited := NewVisited()
	var seq []*target.Target
	for _, name := range seeds {
		sub, err := r.ResolveOne(name, visited)
		if err != nil {
			return nil, err
		}
		seq = append(seq, sub...)
	}
	return seq, nil
}
