package annotation

import "fmt"

// pass walks the members of one axis. The stop check runs before every
// member and again before every tag, so a flag raised inside a hook halts
// the walk at the next check point without undoing what was collected.
type pass[M Member, R any] struct {
	provider Provider
	observer Observer
	class    string
	axis     Axis

	stopped  func() bool
	onMember func(M) error
	onTag    func(M, Tag) (R, bool, error)
	collect  func(R)
}

func (p *pass[M, R]) run(members []M) error {
	p.emit(Event{Type: EventPassStart})

	for _, m := range members {
		if p.stopped() {
			p.emit(Event{Type: EventPassStopped, Member: m})
			return nil
		}

		p.emit(Event{Type: EventMemberEnter, Member: m})
		if err := p.onMember(m); err != nil {
			p.emit(Event{Type: EventPassError, Member: m, Err: err})
			return err
		}

		tags, err := p.provider.AnnotationsOf(m)
		if err != nil {
			err = fmt.Errorf("annotation: tags of %s: %w", p.class, err)
			p.emit(Event{Type: EventPassError, Member: m, Err: err})
			return err
		}

		for _, tag := range tags {
			if p.stopped() {
				p.emit(Event{Type: EventPassStopped, Member: m, Tag: tag})
				return nil
			}

			p.emit(Event{Type: EventTagVisit, Member: m, Tag: tag})
			result, ok, err := p.onTag(m, tag)
			if err != nil {
				p.emit(Event{Type: EventPassError, Member: m, Tag: tag, Err: err})
				return err
			}
			if ok {
				p.collect(result)
				p.emit(Event{Type: EventResultCollected, Member: m, Tag: tag})
			}
		}
	}

	p.emit(Event{Type: EventPassComplete})
	return nil
}

func (p *pass[M, R]) emit(e Event) {
	e.Class = p.class
	e.Axis = p.axis
	emitEvent(p.observer, e)
}

func runFieldPass[T any](prov Provider, obs Observer, c Class, stopped func() bool, h FieldHooks[T], collect func(T)) error {
	fields, err := prov.DeclaredFields(c)
	if err != nil {
		err = fmt.Errorf("annotation: declared fields of %s: %w", className(c), err)
		emitEvent(obs, Event{Type: EventPassError, Class: className(c), Axis: AxisFields, Err: err})
		return err
	}
	p := &pass[Field, T]{
		provider: prov,
		observer: obs,
		class:    className(c),
		axis:     AxisFields,
		stopped:  stopped,
		onMember: h.OnEachField,
		onTag:    h.OnEachFieldAnnotation,
		collect:  collect,
	}
	return p.run(fields)
}

func runMethodPass[T any](prov Provider, obs Observer, c Class, stopped func() bool, h MethodHooks[T], collect func(T)) error {
	methods, err := prov.DeclaredMethods(c)
	if err != nil {
		err = fmt.Errorf("annotation: declared methods of %s: %w", className(c), err)
		emitEvent(obs, Event{Type: EventPassError, Class: className(c), Axis: AxisMethods, Err: err})
		return err
	}
	p := &pass[Method, T]{
		provider: prov,
		observer: obs,
		class:    className(c),
		axis:     AxisMethods,
		stopped:  stopped,
		onMember: h.OnEachMethod,
		onTag:    h.OnEachMethodAnnotation,
		collect:  collect,
	}
	return p.run(methods)
}
