// Package notify implements the user-facing notification center.
//
// Delivery is never inline: notifications are posted to the host scheduler
// and reach the sink on the next tick, so a notification raised from inside
// an arbitrary call stack cannot mutate UI state at an unsafe moment.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quasar-pankaj/NormalNvim/internal/config/merge"
	"github.com/quasar-pankaj/NormalNvim/internal/event/sched"
)

// Level is the severity of a notification.
type Level string

const (
	// LevelInfo is an informational notification.
	LevelInfo Level = "info"
	// LevelWarn is a warning notification.
	LevelWarn Level = "warn"
	// LevelError is an error notification.
	LevelError Level = "error"
)

// Notification is a single user-visible message.
type Notification struct {
	// ID uniquely identifies the notification.
	ID string

	// Message is the text to display.
	Message string

	// Level is the severity.
	Level Level

	// Options are display options (title, timeout, icon, ...), already
	// merged with the center's defaults.
	Options map[string]any

	// Time is when the notification was raised.
	Time time.Time
}

// Sink renders notifications. Implementations belong to the host UI.
type Sink interface {
	Deliver(n Notification)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(n Notification)

// Deliver implements Sink.
func (f SinkFunc) Deliver(n Notification) {
	f(n)
}

// Center raises notifications through a sink.
type Center struct {
	mu       sync.Mutex
	sink     Sink
	sched    *sched.Scheduler
	defaults map[string]any
}

// Option configures a Center.
type Option func(*Center)

// WithDefaults sets default display options merged under every
// notification's own options (the notification wins on conflicts).
func WithDefaults(defaults map[string]any) Option {
	return func(c *Center) {
		c.defaults = merge.Clone(defaults)
	}
}

// NewCenter creates a notification center delivering to sink via s.
func NewCenter(sink Sink, s *sched.Scheduler, opts ...Option) *Center {
	c := &Center{
		sink:     sink,
		sched:    s,
		defaults: map[string]any{"title": "NormalNvim"},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notify raises a notification and returns its ID. Delivery happens on the
// next scheduler tick. A nil sink makes this a no-op that still returns an
// ID, so callers never need to care whether a UI is attached.
func (c *Center) Notify(message string, level Level, opts map[string]any) string {
	c.mu.Lock()
	merged := merge.Options(c.defaults, opts)
	sink := c.sink
	c.mu.Unlock()

	n := Notification{
		ID:      uuid.New().String(),
		Message: message,
		Level:   normalize(level),
		Options: merged,
		Time:    time.Now(),
	}

	if sink != nil {
		c.sched.Post(func() {
			sink.Deliver(n)
		})
	}
	return n.ID
}

// Info raises an informational notification.
func (c *Center) Info(message string) string {
	return c.Notify(message, LevelInfo, nil)
}

// Warn raises a warning notification.
func (c *Center) Warn(message string) string {
	return c.Notify(message, LevelWarn, nil)
}

// Error raises an error notification.
func (c *Center) Error(message string) string {
	return c.Notify(message, LevelError, nil)
}

// normalize coerces unknown levels to info.
func normalize(level Level) Level {
	switch level {
	case LevelInfo, LevelWarn, LevelError:
		return level
	default:
		return LevelInfo
	}
}
