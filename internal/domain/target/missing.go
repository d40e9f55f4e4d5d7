package target

// MissingDepends lists the unregistered dependencies of one target. Target is
// the registered record, so its attributes stay reachable.
type MissingDepends struct {
	Target  *Target
	Missing []string
}

// Name returns the name of the target with missing dependencies.
func (m MissingDepends) Name() string {
	return m.Target.Name
}

// FindMissingDepends reports, in registry order, every target that depends on
// a name nobody registered. Duplicate declarations are reported as declared.
func (r *Registry) FindMissingDepends() []MissingDepends {
	var result []MissingDepends
	for _, t := range r.Targets() {
		var missing []string
		for _, dep := range t.Depends {
			if !r.Has(dep) {
				missing = append(missing, dep)
			}
		}
		if len(missing) > 0 {
			result = append(result, MissingDepends{Target: t, Missing: missing})
		}
	}
	return result
}
