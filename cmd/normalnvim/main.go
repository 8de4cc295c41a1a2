// Package main is the entry point for the normalnvim configuration host.
// It loads a user configuration, compiles its keybinding tables, and
// optionally runs a Lua init script and watches the config for changes.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/quasar-pankaj/NormalNvim/internal/config/loader"
	"github.com/quasar-pankaj/NormalNvim/internal/config/watcher"
	"github.com/quasar-pankaj/NormalNvim/internal/event"
	"github.com/quasar-pankaj/NormalNvim/internal/event/sched"
	"github.com/quasar-pankaj/NormalNvim/internal/input/bindings"
	"github.com/quasar-pankaj/NormalNvim/internal/input/keymap"
	"github.com/quasar-pankaj/NormalNvim/internal/input/mode"
	"github.com/quasar-pankaj/NormalNvim/internal/integration/shell"
	"github.com/quasar-pankaj/NormalNvim/internal/plugin/api"
	luaruntime "github.com/quasar-pankaj/NormalNvim/internal/plugin/lua"
	"github.com/quasar-pankaj/NormalNvim/internal/ui/hints"
	"github.com/quasar-pankaj/NormalNvim/internal/ui/notify"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigPath  string
	ScriptPath  string
	Watch       bool
	AbbrevModes bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	feat := mode.StaticFeatures{AbbrevModes: opts.AbbrevModes}

	// Host wiring: key registry, hint menu, scheduler, notifications.
	registry := keymap.NewRegistry(feat)
	menu := hints.NewMenu()
	scheduler := sched.New()
	center := notify.NewCenter(consoleSink{}, scheduler)
	runner := shell.NewRunner(shell.WithErrorSink(center))

	compiler := bindings.NewCompiler(registry, bindings.WithHintUI(menu))

	if opts.ConfigPath != "" {
		if err := loadConfig(opts.ConfigPath, feat, compiler); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if opts.ScriptPath != "" {
		if err := runScript(opts.ScriptPath, feat, compiler, center, runner); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	// The hint menu comes up after initial compilation, then the queued
	// group bindings land in it.
	menu.Load()
	if err := compiler.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: flushing group bindings: %v\n", err)
		return 1
	}

	scheduler.Tick()
	report(registry, menu, feat)

	if opts.Watch && opts.ConfigPath != "" {
		if err := watchConfig(opts.ConfigPath, feat, compiler, scheduler, registry, menu); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	return 0
}

// loadConfig reads and compiles a TOML or YAML configuration file.
func loadConfig(path string, feat mode.Features, compiler *bindings.Compiler) error {
	cfg, err := loader.Load(path, feat)
	if err != nil {
		return err
	}
	return compiler.Apply(cfg.Mappings, nil)
}

// runScript executes a Lua init script with the nv API injected.
func runScript(path string, feat mode.Features, compiler *bindings.Compiler, center *notify.Center, runner *shell.Runner) error {
	L := luaruntime.NewState()
	defer L.Close()

	reg := api.NewRegistry()
	modules := []api.Module{
		api.NewKeymapModule(compiler, feat),
		api.NewUIModule(center, nil, nil),
		api.NewShellModule(runner),
		api.NewUtilModule(),
	}
	for _, mod := range modules {
		if err := reg.Register(mod); err != nil {
			return err
		}
	}
	if err := reg.InjectAll(L); err != nil {
		return err
	}

	return L.DoFile(path)
}

// watchConfig recompiles on every change to the config file until
// interrupted. Each successful reload raises a "config-reloaded" event on
// the next tick.
func watchConfig(path string, feat mode.Features, compiler *bindings.Compiler, scheduler *sched.Scheduler, registry *keymap.Registry, menu *hints.Menu) error {
	w, err := watcher.New(path)
	if err != nil {
		return err
	}
	defer w.Close()

	emitter := event.NewEmitter(scheduler)
	sub := emitter.Subscribe("config-reloaded", func(ev event.Event) {
		fmt.Printf("event %s at %s\n", ev.Name, ev.Time.Format("15:04:05"))
	})
	defer sub.Unsubscribe()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	fmt.Printf("watching %s\n", w.Path())
	for {
		select {
		case <-signals:
			return nil
		case changed, ok := <-w.Changes():
			if !ok {
				return nil
			}
			fmt.Printf("\nreloading %s\n", changed)
			if err := loadConfig(changed, feat, compiler); err != nil {
				fmt.Fprintf(os.Stderr, "Error: reload failed: %v\n", err)
				continue
			}
			emitter.Emit("config-reloaded")
			scheduler.Tick()
			report(registry, menu, feat)
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Error: watcher: %v\n", err)
		}
	}
}

// report prints the compiled bindings and hint menu contents per mode.
func report(registry *keymap.Registry, menu *hints.Menu, feat mode.Features) {
	fmt.Printf("compiled %d direct bindings, %d hint entries\n", registry.Len(), menu.Len())

	for _, m := range mode.All(feat) {
		direct := registry.Bindings(m)
		groups := menu.Entries(m)
		if len(direct) == 0 && len(groups) == 0 {
			continue
		}

		fmt.Printf("[%s]\n", m)
		for _, b := range direct {
			if cmd, ok := b.Command(); ok {
				fmt.Printf("  %-14s -> %s\n", b.Keys, cmd)
			} else {
				fmt.Printf("  %-14s -> <callback>\n", b.Keys)
			}
		}
		sort.Slice(groups, func(i, j int) bool { return groups[i].Keys < groups[j].Keys })
		for _, e := range groups {
			fmt.Printf("  %-14s => group %q\n", e.Keys, e.Name)
		}
	}
}

// consoleSink renders notifications on stdout.
type consoleSink struct{}

func (consoleSink) Deliver(n notify.Notification) {
	title, _ := n.Options["title"].(string)
	fmt.Printf("[%s] %s: %s\n", n.Level, title, n.Message)
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.ScriptPath, "script", "", "Path to a Lua init script")
	flag.StringVar(&opts.ScriptPath, "s", "", "Path to a Lua init script (shorthand)")
	flag.BoolVar(&opts.Watch, "watch", false, "Watch the config file and recompile on change")
	flag.BoolVar(&opts.AbbrevModes, "abbrev", false, "Enable abbreviation modes")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "normalnvim - keybinding configuration host\n\n")
		fmt.Fprintf(os.Stderr, "Usage: normalnvim [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  normalnvim -c init.toml           Compile a mapping table\n")
		fmt.Fprintf(os.Stderr, "  normalnvim -s init.lua            Run a Lua init script\n")
		fmt.Fprintf(os.Stderr, "  normalnvim -c init.toml -watch    Recompile on change\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("normalnvim %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts
}
