package annotation

import (
	"context"
	"log/slog"
	"sync"
)

// EventType classifies traversal events for filtering and routing.
type EventType string

const (
	EventPassStart       EventType = "pass_start"
	EventMemberEnter     EventType = "member_enter"
	EventTagVisit        EventType = "tag_visit"
	EventResultCollected EventType = "result_collected"
	EventPassStopped     EventType = "pass_stopped"
	EventPassComplete    EventType = "pass_complete"
	EventPassError       EventType = "pass_error"
)

// Event is a single observation from a traversal pass. Member and Tag are
// zero when the event is not about a particular member or tag. Index is the
// member's declaration index, or -1 for pass-level events.
type Event struct {
	Type   EventType
	Class  string
	Axis   Axis
	Member Member
	Tag    Tag
	Index  int
	Err    error
}

// Observer receives events while a collector runs. Events are delivered
// synchronously from inside the pass; observers cannot change what is collected.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }

// MultiObserver fans out events to multiple observers.
type MultiObserver []Observer

func (m MultiObserver) OnEvent(e Event) {
	for _, obs := range m {
		if obs != nil {
			obs.OnEvent(e)
		}
	}
}

// LogObserver writes traversal events as structured slog lines at debug
// level, or warn level for pass errors.
type LogObserver struct {
	Logger *slog.Logger
}

func (o *LogObserver) OnEvent(e Event) {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}

	attrs := []slog.Attr{
		slog.String("event", string(e.Type)),
		slog.String("class", e.Class),
		slog.String("axis", string(e.Axis)),
	}
	if e.Member != nil {
		attrs = append(attrs, slog.String("member", e.Member.Info().Name), slog.Int("index", e.Index))
	}
	if e.Tag.Key != "" {
		attrs = append(attrs, slog.String("tag", e.Tag.String()))
	}

	level := slog.LevelDebug
	if e.Err != nil {
		attrs = append(attrs, slog.String("error", e.Err.Error()))
		level = slog.LevelWarn
	}
	logger.LogAttrs(context.Background(), level, "traverse", attrs...)
}

// TraceCollector accumulates events in memory. Safe for concurrent use, so
// one trace may be shared by collectors running in different goroutines.
type TraceCollector struct {
	mu     sync.Mutex
	events []Event
}

func (t *TraceCollector) OnEvent(e Event) {
	t.mu.Lock()
	t.events = append(t.events, e)
	t.mu.Unlock()
}

// Events returns a copy of all collected events.
func (t *TraceCollector) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Reset clears collected events.
func (t *TraceCollector) Reset() {
	t.mu.Lock()
	t.events = nil
	t.mu.Unlock()
}

// EventsOfType returns only events matching the given type.
func (t *TraceCollector) EventsOfType(typ EventType) []Event {
	return t.filter(func(e Event) bool { return e.Type == typ })
}

// EventsFor returns the events of one class on one axis. An empty class or
// axis matches any.
func (t *TraceCollector) EventsFor(class string, axis Axis) []Event {
	return t.filter(func(e Event) bool {
		return (class == "" || e.Class == class) && (axis == "" || e.Axis == axis)
	})
}

// Visited returns the names of the members entered on one class and axis,
// in traversal order. Members skipped by a stop flag are not included.
func (t *TraceCollector) Visited(class string, axis Axis) []string {
	var out []string
	for _, e := range t.EventsFor(class, axis) {
		if e.Type == EventMemberEnter {
			out = append(out, e.Member.Info().Name)
		}
	}
	return out
}

// StoppedAt reports where the pass over class and axis was halted by a stop
// flag. ok is false when that pass ran to completion or never started.
func (t *TraceCollector) StoppedAt(class string, axis Axis) (Event, bool) {
	for _, ev := range t.EventsFor(class, axis) {
		if ev.Type == EventPassStopped {
			return ev, true
		}
	}
	return Event{}, false
}

func (t *TraceCollector) filter(keep func(Event) bool) []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []Event
	for _, e := range t.events {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// emitEvent delivers e to obs when one is set. Events that do not concern a
// member carry Index -1.
func emitEvent(obs Observer, e Event) {
	if obs == nil {
		return
	}
	if e.Member == nil {
		e.Index = -1
	} else {
		e.Index = e.Member.Info().Index
	}
	obs.OnEvent(e)
}
