package annotation

// FieldHooks is the field half of a collector's callbacks.
//
// OnEachField runs once per field before its tags are visited; it is the
// place to reset per-field state. OnEachFieldAnnotation runs once per tag;
// when it reports ok the value is appended to the field results, otherwise
// nothing is collected. A returned error aborts Collect and is returned as is.
type FieldHooks[FT any] interface {
	OnEachField(f Field) error
	OnEachFieldAnnotation(f Field, tag Tag) (FT, bool, error)
}

// MethodHooks is the method half of a collector's callbacks, with the same
// contract as FieldHooks.
type MethodHooks[MT any] interface {
	OnEachMethod(m Method) error
	OnEachMethodAnnotation(m Method, tag Tag) (MT, bool, error)
}

// Hooks is the full callback set of a Collector.
type Hooks[FT, MT any] interface {
	FieldHooks[FT]
	MethodHooks[MT]
}

// FieldHookFuncs adapts plain functions to FieldHooks. A nil function is inert.
type FieldHookFuncs[T any] struct {
	OnField    func(f Field) error
	OnFieldTag func(f Field, tag Tag) (T, bool, error)
}

func (h FieldHookFuncs[T]) OnEachField(f Field) error {
	if h.OnField == nil {
		return nil
	}
	return h.OnField(f)
}

func (h FieldHookFuncs[T]) OnEachFieldAnnotation(f Field, tag Tag) (T, bool, error) {
	if h.OnFieldTag == nil {
		var zero T
		return zero, false, nil
	}
	return h.OnFieldTag(f, tag)
}

// MethodHookFuncs adapts plain functions to MethodHooks. A nil function is inert.
type MethodHookFuncs[T any] struct {
	OnMethod    func(m Method) error
	OnMethodTag func(m Method, tag Tag) (T, bool, error)
}

func (h MethodHookFuncs[T]) OnEachMethod(m Method) error {
	if h.OnMethod == nil {
		return nil
	}
	return h.OnMethod(m)
}

func (h MethodHookFuncs[T]) OnEachMethodAnnotation(m Method, tag Tag) (T, bool, error) {
	if h.OnMethodTag == nil {
		var zero T
		return zero, false, nil
	}
	return h.OnMethodTag(m, tag)
}

// HookFuncs adapts plain functions to Hooks.
type HookFuncs[FT, MT any] struct {
	FieldHookFuncs[FT]
	MethodHookFuncs[MT]
}
