package bindings

import (
	"errors"
	"reflect"
	"testing"

	"github.com/quasar-pankaj/NormalNvim/internal/input/mode"
)

type bindCall struct {
	mode   mode.Mode
	keys   string
	action any
	opts   map[string]any
}

type fakeBinder struct {
	calls   []bindCall
	unbinds []string
	err     error
}

func (b *fakeBinder) Bind(m mode.Mode, keys string, action any, opts map[string]any) error {
	if b.err != nil {
		return b.err
	}
	b.calls = append(b.calls, bindCall{mode: m, keys: keys, action: action, opts: opts})
	return nil
}

func (b *fakeBinder) Unbind(m mode.Mode, keys string) bool {
	b.unbinds = append(b.unbinds, string(m)+":"+keys)
	return false
}

type registerCall struct {
	mode  mode.Mode
	group map[string]map[string]any
}

type fakeHints struct {
	loaded    bool
	registers []registerCall
	err       error
}

func (h *fakeHints) IsLoaded() bool {
	return h.loaded
}

func (h *fakeHints) RegisterGroup(m mode.Mode, group map[string]map[string]any) error {
	if h.err != nil {
		return h.err
	}
	h.registers = append(h.registers, registerCall{mode: m, group: group})
	return nil
}

func TestApplyDirectBinding(t *testing.T) {
	binder := &fakeBinder{}
	c := NewCompiler(binder)

	table := MapTable{
		mode.Normal: {
			"<leader>w": Direct("editor.save", map[string]any{"desc": "Save"}),
		},
	}
	if err := c.Apply(table, map[string]any{"silent": true}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if len(binder.calls) != 1 {
		t.Fatalf("binder calls = %d, want 1", len(binder.calls))
	}
	call := binder.calls[0]
	if call.mode != mode.Normal || call.keys != "<leader>w" || call.action != "editor.save" {
		t.Errorf("unexpected call %+v", call)
	}
	wantOpts := map[string]any{"silent": true, "desc": "Save"}
	if !reflect.DeepEqual(call.opts, wantOpts) {
		t.Errorf("opts = %v, want %v", call.opts, wantOpts)
	}
	if !c.Pending().Empty() {
		t.Error("pending queue not empty after direct binding")
	}
}

func TestApplyBareActionUsesBaseOptions(t *testing.T) {
	binder := &fakeBinder{}
	c := NewCompiler(binder)

	table := MapTable{
		mode.Insert: {"jj": ParseSpec("mode.normal")},
	}
	if err := c.Apply(table, map[string]any{"noremap": true}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if len(binder.calls) != 1 {
		t.Fatalf("binder calls = %d, want 1", len(binder.calls))
	}
	if !reflect.DeepEqual(binder.calls[0].opts, map[string]any{"noremap": true}) {
		t.Errorf("opts = %v, want base only", binder.calls[0].opts)
	}
}

func TestApplySpecOptionsOverrideBase(t *testing.T) {
	binder := &fakeBinder{}
	c := NewCompiler(binder)

	table := MapTable{
		mode.Normal: {
			"q": Direct("macro.record", map[string]any{"silent": false}),
		},
	}
	if err := c.Apply(table, map[string]any{"silent": true}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if got := binder.calls[0].opts["silent"]; got != false {
		t.Errorf("silent = %v, want spec-level false", got)
	}
}

func TestApplyUnbindSkipped(t *testing.T) {
	binder := &fakeBinder{}
	c := NewCompiler(binder)

	table := MapTable{
		mode.Normal: {
			"x": Unbind(),
			"y": ParseSpec(nil),
			"z": ParseSpec(false),
		},
	}
	if err := c.Apply(table, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if len(binder.calls) != 0 {
		t.Errorf("binder calls = %d, want 0", len(binder.calls))
	}
	if !c.Pending().Empty() {
		t.Error("pending queue not empty")
	}
}

func TestApplyNamedBindingQueues(t *testing.T) {
	binder := &fakeBinder{}
	c := NewCompiler(binder)

	table := MapTable{
		mode.Normal: {
			"<leader>g": Named("Git", nil, nil),
		},
	}
	if err := c.Apply(table, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if len(binder.calls) != 0 {
		t.Errorf("binder calls = %d, want 0 for named binding", len(binder.calls))
	}
	opts, ok := c.Pending().Get(mode.Normal, "<leader>g")
	if !ok {
		t.Fatal("pending entry missing")
	}
	if opts["name"] != "Git" {
		t.Errorf("name = %v, want Git", opts["name"])
	}
}

func TestApplyMissingActionQueues(t *testing.T) {
	binder := &fakeBinder{}
	c := NewCompiler(binder)

	// Pair with no action at all: group membership by absence.
	table := MapTable{
		mode.Normal: {
			"<leader>f": ParseSpec(map[string]any{"desc": "Find"}),
		},
	}
	if err := c.Apply(table, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	opts, ok := c.Pending().Get(mode.Normal, "<leader>f")
	if !ok {
		t.Fatal("pending entry missing")
	}
	// Name defaults to the description when absent.
	if opts["name"] != "Find" {
		t.Errorf("name = %v, want desc fallback Find", opts["name"])
	}
}

func TestApplyNamedWithActionKeepsMergedOptions(t *testing.T) {
	binder := &fakeBinder{}
	c := NewCompiler(binder)

	table := MapTable{
		mode.Normal: {
			"<leader>a": ParseSpec([]any{"echo hi", map[string]any{"name": "A"}}),
		},
	}
	if err := c.Apply(table, map[string]any{"silent": true}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	opts, ok := c.Pending().Get(mode.Normal, "<leader>a")
	if !ok {
		t.Fatal("pending entry missing")
	}
	want := map[string]any{"name": "A", "silent": true}
	if !reflect.DeepEqual(opts, want) {
		t.Errorf("queued opts = %v, want %v", opts, want)
	}
	if len(binder.calls) != 0 {
		t.Error("named binding reached the host binder")
	}
}

func TestApplyNamedUnbindsStaleDirect(t *testing.T) {
	binder := &fakeBinder{}
	c := NewCompiler(binder)

	first := MapTable{mode.Normal: {"<leader>a": Direct("echo one", nil)}}
	if err := c.Apply(first, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	second := MapTable{mode.Normal: {"<leader>a": Named("A", nil, nil)}}
	if err := c.Apply(second, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if len(binder.unbinds) != 1 || binder.unbinds[0] != "normal:<leader>a" {
		t.Errorf("unbinds = %v, want stale direct binding removed", binder.unbinds)
	}
	if _, ok := c.Pending().Get(mode.Normal, "<leader>a"); !ok {
		t.Error("pending entry missing after transition")
	}
}

func TestApplyLastWriteWinsInQueue(t *testing.T) {
	c := NewCompiler(&fakeBinder{})

	if err := c.Apply(MapTable{mode.Normal: {"<leader>g": Named("Git", nil, nil)}}, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := c.Apply(MapTable{mode.Normal: {"<leader>g": Named("Goto", nil, map[string]any{"icon": ">"})}}, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	opts, _ := c.Pending().Get(mode.Normal, "<leader>g")
	want := map[string]any{"name": "Goto", "icon": ">"}
	if !reflect.DeepEqual(opts, want) {
		t.Errorf("queued opts = %v, want only the second write %v", opts, want)
	}
	if c.Pending().Len() != 1 {
		t.Errorf("queue len = %d, want 1", c.Pending().Len())
	}
}

func TestApplyBinderErrorPropagates(t *testing.T) {
	sentinel := errors.New("bad key syntax")
	c := NewCompiler(&fakeBinder{err: sentinel})

	err := c.Apply(MapTable{mode.Normal: {"j": Direct("down", nil)}}, nil)
	if !errors.Is(err, sentinel) {
		t.Errorf("Apply err = %v, want wrapped %v", err, sentinel)
	}
}

func TestApplyFlushesWhenHintUILoaded(t *testing.T) {
	hints := &fakeHints{loaded: true}
	c := NewCompiler(&fakeBinder{}, WithHintUI(hints))

	table := MapTable{mode.Normal: {"<leader>g": Named("Git", nil, nil)}}
	if err := c.Apply(table, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if len(hints.registers) != 1 {
		t.Fatalf("registers = %d, want immediate flush", len(hints.registers))
	}
	if !c.Pending().Empty() {
		t.Error("queue not cleared after immediate flush")
	}
}

func TestFlushNoOpWithoutHintUI(t *testing.T) {
	hints := &fakeHints{loaded: false}
	c := NewCompiler(&fakeBinder{}, WithHintUI(hints))

	if err := c.Apply(MapTable{mode.Normal: {"<leader>g": Named("Git", nil, nil)}}, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := c.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if len(hints.registers) != 0 {
		t.Error("registration occurred while hint UI unavailable")
	}
	if c.Pending().Len() != 1 {
		t.Errorf("queue len = %d, want entry retained", c.Pending().Len())
	}
}

func TestFlushDrainsAllModes(t *testing.T) {
	hints := &fakeHints{}
	c := NewCompiler(&fakeBinder{}, WithHintUI(hints))

	// Two separate applies, two different modes, UI not yet loaded.
	if err := c.Apply(MapTable{mode.Normal: {"<leader>g": Named("Git", nil, nil)}}, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := c.Apply(MapTable{mode.Visual: {"<leader>s": Named("Sort", nil, nil)}}, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	hints.loaded = true
	if err := c.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if len(hints.registers) != 2 {
		t.Fatalf("registers = %d, want both modes drained", len(hints.registers))
	}
	if !c.Pending().Empty() {
		t.Error("queue not empty after flush")
	}

	// Second flush with nothing queued is a safe no-op.
	if err := c.Flush(); err != nil {
		t.Fatalf("second Flush: %v", err)
	}
	if len(hints.registers) != 2 {
		t.Error("idempotent flush re-registered groups")
	}
}

func TestFlushErrorLeavesQueueIntact(t *testing.T) {
	hints := &fakeHints{loaded: true, err: errors.New("ui exploded")}
	c := NewCompiler(&fakeBinder{})

	// Queue first without the UI attached, then attach via a new compiler
	// sharing the queue, so Apply's immediate flush path stays out of the way.
	if err := c.Apply(MapTable{mode.Normal: {"<leader>g": Named("Git", nil, nil)}}, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	retry := NewCompiler(&fakeBinder{}, WithHintUI(hints), WithPendingQueue(c.Pending()))

	if err := retry.Flush(); err == nil {
		t.Fatal("Flush succeeded, want propagated UI error")
	}
	if retry.Pending().Len() != 1 {
		t.Errorf("queue len = %d, want untouched after failed flush", retry.Pending().Len())
	}

	// Once the UI recovers the same queue flushes cleanly.
	hints.err = nil
	if err := retry.Flush(); err != nil {
		t.Fatalf("retry Flush: %v", err)
	}
	if !retry.Pending().Empty() {
		t.Error("queue not drained by retried flush")
	}
}

func TestEndToEndQueueThenFlush(t *testing.T) {
	binder := &fakeBinder{}
	hints := &fakeHints{loaded: false}
	c := NewCompiler(binder, WithHintUI(hints))

	table := MapTable{
		mode.Normal: {
			"<leader>a": ParseSpec([]any{"echo hi", map[string]any{"name": "A"}}),
		},
	}
	if err := c.Apply(table, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	opts, ok := c.Pending().Get(mode.Normal, "<leader>a")
	if !ok || opts["name"] != "A" {
		t.Fatalf("queued opts = %v, want name A", opts)
	}
	if len(binder.calls) != 0 {
		t.Fatal("host binder received a call for a named binding")
	}

	hints.loaded = true
	if err := c.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if len(hints.registers) != 1 {
		t.Fatalf("registers = %d, want 1", len(hints.registers))
	}
	reg := hints.registers[0]
	if reg.mode != mode.Normal {
		t.Errorf("registered mode = %q, want normal", reg.mode)
	}
	if !reflect.DeepEqual(reg.group, map[string]map[string]any{"<leader>a": {"name": "A"}}) {
		t.Errorf("registered group = %v", reg.group)
	}
	if !c.Pending().Empty() {
		t.Error("queue not empty after flush")
	}
}

func TestEmptyMapTable(t *testing.T) {
	feat := mode.StaticFeatures{AbbrevModes: false}
	table := EmptyMapTable(feat)

	want := mode.All(feat)
	if len(table) != len(want) {
		t.Fatalf("len(table) = %d, want %d", len(table), len(want))
	}
	for _, m := range want {
		specs, ok := table[m]
		if !ok {
			t.Errorf("mode %q missing", m)
			continue
		}
		if len(specs) != 0 {
			t.Errorf("mode %q not empty", m)
		}
	}

	withAbbrev := EmptyMapTable(mode.StaticFeatures{AbbrevModes: true})
	if _, ok := withAbbrev[mode.InsertAbbrev]; !ok {
		t.Error("insert-abbrev missing with abbrev support")
	}
	if _, ok := table[mode.InsertAbbrev]; ok {
		t.Error("insert-abbrev present without abbrev support")
	}
}
