// Command livetwice-tui runs the sections presentation in the terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/livetwice/sections"
	"github.com/livetwice/sections/tui"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code once the controller and the log file
// are closed.
func run() int {
	configPath := flag.String("config", "", "path to a TOML config file")
	logPath := flag.String("log", "livetwice-tui.log", "log file; empty disables logging")
	flag.Parse()

	cfg := sections.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = sections.LoadConfig(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			return 1
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error applying environment: %v\n", err)
		return 1
	}

	// The terminal belongs to the UI, so logs go to a file.
	var out io.Writer = io.Discard
	if *logPath != "" {
		logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
		} else {
			defer logFile.Close()
			out = logFile
		}
	}
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctrl, err := sections.New(cfg, sections.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating controller: %v\n", err)
		return 1
	}
	defer ctrl.Close()
	ctrl.OnSectionChange(func(ev sections.SectionChange) {
		slog.Info("Section changed", "from", ev.From, "to", ev.To, "label", ev.Label, "cause", ev.Cause.String())
	})

	slog.Info("Starting UI")
	p := tea.NewProgram(tui.New(ctrl), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		slog.Error("Error running program", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	slog.Info("UI exited normally")
	return 0
}
