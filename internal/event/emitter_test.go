package event

import (
	"testing"

	"github.com/quasar-pankaj/NormalNvim/internal/event/sched"
)

func TestEmitIsDeferred(t *testing.T) {
	s := sched.New()
	e := NewEmitter(s)

	var got []string
	e.Subscribe("PluginsLoaded", func(ev Event) { got = append(got, ev.Name) })

	e.Emit("PluginsLoaded")
	if len(got) != 0 {
		t.Fatal("handler ran before the scheduler tick")
	}

	s.Tick()
	if len(got) != 1 || got[0] != "PluginsLoaded" {
		t.Errorf("got = %v, want [PluginsLoaded]", got)
	}
}

func TestEmitOnlyReachesMatchingName(t *testing.T) {
	s := sched.New()
	e := NewEmitter(s)

	var calls int
	e.Subscribe("A", func(Event) { calls++ })
	e.Subscribe("B", func(Event) { t.Error("handler for B ran") })

	e.Emit("A")
	s.Tick()
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestSubscribeBeforeTickReceivesEvent(t *testing.T) {
	s := sched.New()
	e := NewEmitter(s)

	e.Emit("Late")

	var calls int
	e.Subscribe("Late", func(Event) { calls++ })

	s.Tick()
	if calls != 1 {
		t.Errorf("calls = %d, want late subscriber to receive deferred event", calls)
	}
}

func TestUnsubscribe(t *testing.T) {
	s := sched.New()
	e := NewEmitter(s)

	var calls int
	sub := e.Subscribe("A", func(Event) { calls++ })
	sub.Unsubscribe()
	sub.Unsubscribe() // safe to repeat

	e.Emit("A")
	s.Tick()
	if calls != 0 {
		t.Errorf("calls = %d after unsubscribe, want 0", calls)
	}
}

func TestMultipleHandlers(t *testing.T) {
	s := sched.New()
	e := NewEmitter(s)

	var calls int
	e.Subscribe("A", func(Event) { calls++ })
	e.Subscribe("A", func(Event) { calls++ })

	e.Emit("A")
	s.Tick()
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}
