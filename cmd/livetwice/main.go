// Command livetwice runs the sections presentation in a window.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/yohamta/donburi"

	"github.com/livetwice/sections"
	"github.com/livetwice/sections/ecs"
	"github.com/livetwice/sections/surface"
)

// newController is replaced in tests.
var newController = sections.New

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code once every deferred cleanup has run.
func run(args []string) int {
	fs := flag.NewFlagSet("livetwice", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a TOML config file")
	scriptPath := fs.String("script", "", "run a JSON test script and exit")
	logFormat := fs.String("log-format", "text", "log format: text or json")
	width := fs.Int("width", 1280, "window width")
	height := fs.Int("height", 720, "window height")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	// Load configuration first (needed for log level)
	cfg := sections.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = sections.LoadConfig(*configPath)
		if err != nil {
			log.Printf("Failed to load configuration: %v", err)
			return 1
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		log.Printf("Failed to apply environment: %v", err)
		return 1
	}

	logger := newLogger(*logFormat, cfg.Debug)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "format", *logFormat, "debug", cfg.Debug)

	world := donburi.NewWorld()
	ecs.SectionChangeEventType.Subscribe(world, func(_ donburi.World, ev sections.SectionChange) {
		slog.Info("Section changed", "from", ev.From, "to", ev.To, "label", ev.Label, "cause", ev.Cause.String())
	})

	ctrl, err := newController(cfg,
		sections.WithLogger(logger),
		sections.WithEventSink(ecs.NewDonburiSink(world)),
	)
	if err != nil {
		slog.Error("Failed to create controller", "error", err)
		return 1
	}
	defer ctrl.Close()

	var runner *sections.TestRunner
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			slog.Error("Failed to read test script", "error", err)
			return 1
		}
		if runner, err = sections.LoadTestScript(data); err != nil {
			slog.Error("Failed to load test script", "error", err)
			return 1
		}
		slog.Info("Running test script", "path", *scriptPath)
	}

	err = surface.Run(ctrl, surface.RunConfig{
		Title:  "Live Twice",
		Width:  *width,
		Height: *height,
		Script: runner,
		Logger: logger,
		OnFrame: func() {
			ecs.SectionChangeEventType.ProcessEvents(world)
		},
	})
	if err != nil {
		slog.Error("Run failed", "error", err)
		return 1
	}
	return 0
}

// newLogger builds the process logger. Debug configs log at debug level.
func newLogger(format string, debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
