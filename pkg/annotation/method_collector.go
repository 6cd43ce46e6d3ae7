package annotation

// MethodCollector walks only the methods of a class. It wraps a full
// Collector whose field hooks are inert and whose field axis is closed
// before every Collect.
type MethodCollector[T any] struct {
	inner *Collector[struct{}, T]
}

// methodOnly pairs inert field hooks with the caller's method hooks.
type methodOnly[T any] struct {
	FieldHookFuncs[struct{}]
	MethodHooks[T]
}

// NewMethodCollector returns a MethodCollector. It panics if p or h is nil.
func NewMethodCollector[T any](p Provider, h MethodHooks[T], opts ...Option) *MethodCollector[T] {
	if h == nil {
		panic("annotation: hooks required")
	}
	return &MethodCollector[T]{
		inner: NewCollector[struct{}, T](p, methodOnly[T]{MethodHooks: h}, opts...),
	}
}

// Collect skips the field pass and runs the method pass unless finished.
func (c *MethodCollector[T]) Collect(class Class) error {
	c.inner.SetFieldsFinished(true)
	return c.inner.Collect(class)
}

// MethodResults returns a copy of the results collected so far.
func (c *MethodCollector[T]) MethodResults() []T {
	return c.inner.MethodResults()
}

// SetFinished stops (true) or re-opens (false) the method pass.
func (c *MethodCollector[T]) SetFinished(v bool) { c.inner.SetMethodsFinished(v) }

func (c *MethodCollector[T]) Finished() bool { return c.inner.MethodsFinished() }
