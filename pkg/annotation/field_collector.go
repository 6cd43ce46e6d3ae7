package annotation

// FieldCollector walks only the fields of a class. The method axis is never
// touched: the provider is not even asked for methods.
type FieldCollector[T any] struct {
	provider Provider
	hooks    FieldHooks[T]
	observer Observer

	results  []T
	finished bool
}

// NewFieldCollector returns a FieldCollector. It panics if p or h is nil.
func NewFieldCollector[T any](p Provider, h FieldHooks[T], opts ...Option) *FieldCollector[T] {
	if p == nil {
		panic("annotation: provider required")
	}
	if h == nil {
		panic("annotation: hooks required")
	}
	s := applyOptions(opts)
	return &FieldCollector[T]{
		provider: p,
		hooks:    h,
		observer: s.observer,
	}
}

// Collect runs the field pass unless the collector is finished.
func (c *FieldCollector[T]) Collect(class Class) error {
	if c.finished {
		return nil
	}
	return runFieldPass[T](c.provider, c.observer, class, c.Finished, c.hooks, c.add)
}

// Results returns a copy of the results collected so far.
func (c *FieldCollector[T]) Results() []T {
	return append(make([]T, 0, len(c.results)), c.results...)
}

// SetFinished stops (true) or re-opens (false) the field pass.
func (c *FieldCollector[T]) SetFinished(v bool) { c.finished = v }

func (c *FieldCollector[T]) Finished() bool { return c.finished }

func (c *FieldCollector[T]) add(r T) { c.results = append(c.results, r) }
