package target

// Value is either a literal or a supplier evaluated against the RunContext
// when an action starts.
type Value[T any] struct {
	literal  T
	supplier func(rc RunContext) (T, error)
}

// Literal returns a Value that always resolves to v.
func Literal[T any](v T) Value[T] {
	return Value[T]{literal: v}
}

// Supplier returns a Value computed by fn at resolution time.
func Supplier[T any](fn func(rc RunContext) (T, error)) Value[T] {
	return Value[T]{supplier: fn}
}

// IsDeferred reports whether the value is computed at resolution time.
func (v Value[T]) IsDeferred() bool {
	return v.supplier != nil
}

// Resolve returns the literal or calls the supplier.
func (v Value[T]) Resolve(rc RunContext) (T, error) {
	if v.supplier != nil {
		return v.supplier(rc)
	}
	return v.literal, nil
}

// Literal returns the literal and true, or the zero value and false for a
// supplier.
func (v Value[T]) Literal() (T, bool) {
	if v.supplier != nil {
		var zero T
		return zero, false
	}
	return v.literal, true
}
