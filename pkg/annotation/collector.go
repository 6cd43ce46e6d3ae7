package annotation

// Option configures a collector.
type Option func(*settings)

type settings struct {
	observer Observer
}

// WithObserver attaches an observer that receives every traversal event.
func WithObserver(obs Observer) Option {
	return func(s *settings) { s.observer = obs }
}

func applyOptions(opts []Option) settings {
	var s settings
	for _, o := range opts {
		if o != nil {
			o(&s)
		}
	}
	return s
}

// Collector walks the fields and then the methods of a class, calling its
// hooks and gathering the values they report into two result lists.
//
// Flags and results persist across Collect calls: collecting the same class
// twice appends a second traversal's worth of results after the first.
// A Collector is not safe for concurrent use.
type Collector[FT, MT any] struct {
	provider Provider
	hooks    Hooks[FT, MT]
	observer Observer

	fieldResults  []FT
	methodResults []MT

	finished        bool
	fieldsFinished  bool
	methodsFinished bool
}

// NewCollector returns a Collector reading class metadata from p and
// reporting to h. It panics if p or h is nil.
func NewCollector[FT, MT any](p Provider, h Hooks[FT, MT], opts ...Option) *Collector[FT, MT] {
	if p == nil {
		panic("annotation: provider required")
	}
	if h == nil {
		panic("annotation: hooks required")
	}
	s := applyOptions(opts)
	return &Collector[FT, MT]{
		provider: p,
		hooks:    h,
		observer: s.observer,
	}
}

// Collect runs the field pass unless traversal or the field axis is finished,
// then the method pass unless traversal or the method axis is finished.
//
// A hook error is returned unchanged; a provider error is returned wrapped.
// Either way Collect stops at once and keeps whatever was already collected.
func (c *Collector[FT, MT]) Collect(class Class) error {
	if !c.finished && !c.fieldsFinished {
		err := runFieldPass[FT](c.provider, c.observer, class, c.fieldsStopped, c.hooks, c.addField)
		if err != nil {
			return err
		}
	}
	if !c.finished && !c.methodsFinished {
		err := runMethodPass[MT](c.provider, c.observer, class, c.methodsStopped, c.hooks, c.addMethod)
		if err != nil {
			return err
		}
	}
	return nil
}

// FieldResults returns a copy of the field results collected so far.
func (c *Collector[FT, MT]) FieldResults() []FT {
	return append(make([]FT, 0, len(c.fieldResults)), c.fieldResults...)
}

// MethodResults returns a copy of the method results collected so far.
func (c *Collector[FT, MT]) MethodResults() []MT {
	return append(make([]MT, 0, len(c.methodResults)), c.methodResults...)
}

// SetFinished stops (true) or re-opens (false) both passes. Clearing a flag
// never resumes a pass that already stopped; it affects later Collect calls.
func (c *Collector[FT, MT]) SetFinished(v bool) { c.finished = v }

// SetFieldsFinished stops or re-opens the field pass.
func (c *Collector[FT, MT]) SetFieldsFinished(v bool) { c.fieldsFinished = v }

// SetMethodsFinished stops or re-opens the method pass.
func (c *Collector[FT, MT]) SetMethodsFinished(v bool) { c.methodsFinished = v }

func (c *Collector[FT, MT]) Finished() bool        { return c.finished }
func (c *Collector[FT, MT]) FieldsFinished() bool  { return c.fieldsFinished }
func (c *Collector[FT, MT]) MethodsFinished() bool { return c.methodsFinished }

func (c *Collector[FT, MT]) fieldsStopped() bool  { return c.finished || c.fieldsFinished }
func (c *Collector[FT, MT]) methodsStopped() bool { return c.finished || c.methodsFinished }

func (c *Collector[FT, MT]) addField(r FT)  { c.fieldResults = append(c.fieldResults, r) }
func (c *Collector[FT, MT]) addMethod(r MT) { c.methodResults = append(c.methodResults, r) }
