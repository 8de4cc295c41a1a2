// Package sched provides the host's run-next-tick queue.
//
// Side effects such as notifications and synthetic events are deferred to
// the next iteration of the host's cooperative scheduler instead of running
// inline, so they never execute inside arbitrary call stacks (for example a
// render callback) where host state mutation is unsafe.
package sched

import (
	"runtime/debug"
	"sync"
)

// PanicHandler is called when a deferred task panics.
type PanicHandler func(value any, stack []byte)

// Scheduler is a FIFO queue of zero-argument tasks drained by the host
// loop. Tasks run in submission order; no ordering is guaranteed relative
// to anything else. Posting is safe from any goroutine, but Tick is meant
// to be driven from the host's main execution context.
type Scheduler struct {
	mu           sync.Mutex
	tasks        []func()
	panicHandler PanicHandler
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithPanicHandler sets the handler invoked when a task panics.
func WithPanicHandler(h PanicHandler) Option {
	return func(s *Scheduler) {
		s.panicHandler = h
	}
}

// New creates a scheduler. Without a panic handler, panicking tasks are
// silently recovered.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Post queues fn for the next tick. Nil tasks are ignored.
func (s *Scheduler) Post(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.tasks = append(s.tasks, fn)
	s.mu.Unlock()
}

// Pending returns the number of queued tasks.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Tick runs every task queued before the tick began, in FIFO order, and
// returns how many ran. Tasks posted while the tick runs wait for the next
// one. A panicking task does not stop the drain.
func (s *Scheduler) Tick() int {
	s.mu.Lock()
	tasks := s.tasks
	s.tasks = nil
	s.mu.Unlock()

	for _, fn := range tasks {
		s.run(fn)
	}
	return len(tasks)
}

func (s *Scheduler) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if s.panicHandler != nil {
				s.panicHandler(r, debug.Stack())
			}
		}
	}()
	fn()
}
