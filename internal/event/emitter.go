// Package event provides synthetic user events: named signals a config
// layer fires so other components can react to lifecycle moments ("plugins
// loaded", "colorscheme changed") without direct coupling.
package event

import (
	"sync"
	"time"

	"github.com/quasar-pankaj/NormalNvim/internal/event/sched"
)

// Event is a synthetic user event.
type Event struct {
	// Name identifies the event.
	Name string

	// Time is when the event was emitted (not when handlers ran).
	Time time.Time
}

// Handler receives emitted events.
type Handler func(Event)

// Subscription is an active handler registration.
type Subscription struct {
	id      uint64
	name    string
	emitter *Emitter
}

// Unsubscribe removes this subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.emitter != nil {
		s.emitter.unsubscribe(s.name, s.id)
		s.emitter = nil
	}
}

// Emitter dispatches synthetic events. Delivery is deferred to the next
// scheduler tick, never inline with Emit.
type Emitter struct {
	mu       sync.Mutex
	sched    *sched.Scheduler
	handlers map[string]map[uint64]Handler
	nextID   uint64
}

// NewEmitter creates an emitter that delivers through s.
func NewEmitter(s *sched.Scheduler) *Emitter {
	return &Emitter{
		sched:    s,
		handlers: make(map[string]map[uint64]Handler),
	}
}

// Subscribe registers h for events with the given name.
func (e *Emitter) Subscribe(name string, h Handler) *Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	if e.handlers[name] == nil {
		e.handlers[name] = make(map[uint64]Handler)
	}
	e.handlers[name][id] = h
	return &Subscription{id: id, name: name, emitter: e}
}

func (e *Emitter) unsubscribe(name string, id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if hs, ok := e.handlers[name]; ok {
		delete(hs, id)
		if len(hs) == 0 {
			delete(e.handlers, name)
		}
	}
}

// Emit schedules delivery of a named event on the next tick. Handlers
// subscribed after Emit but before the tick still receive it, mirroring
// deferred autocommand semantics.
func (e *Emitter) Emit(name string) {
	ev := Event{Name: name, Time: time.Now()}
	e.sched.Post(func() {
		for _, h := range e.snapshot(name) {
			h(ev)
		}
	})
}

// snapshot copies the current handler set for a name.
func (e *Emitter) snapshot(name string) []Handler {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Handler, 0, len(e.handlers[name]))
	for _, h := range e.handlers[name] {
		out = append(out, h)
	}
	return out
}
