// syswatch is a live host telemetry dashboard for the terminal.
//
// It samples processes, CPU, memory, and disks at an adaptive cadence that
// slows down when the window loses focus or energy saving is on, and shows
// the result in a tabbed Bubbletea TUI with sortable, filterable process
// rows, history charts, and one-key JSON export.
//
// Usage:
//
//	syswatch [flags]
//
// Flags:
//
//	-config string  Path to configuration file (default: ~/.config/syswatch/config.yaml)
//	-once           Print one plain-text snapshot and exit
//	-export         Write one JSON snapshot and exit
//	-demo           Use deterministic demo data instead of host telemetry
//	-theme string   Theme override (dark|nord)
//	-verbose        Enable debug logging
//	-version        Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/syswatch/config"
	"gitlab.com/tinyland/lab/syswatch/display/tui"
	"gitlab.com/tinyland/lab/syswatch/engine"
	"gitlab.com/tinyland/lab/syswatch/export"
	"gitlab.com/tinyland/lab/syswatch/store"
	"gitlab.com/tinyland/lab/syswatch/telemetry"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file (default: ~/.config/syswatch/config.yaml)")
		runOnce     = flag.Bool("once", false, "Print one plain-text snapshot and exit")
		runExport   = flag.Bool("export", false, "Write one JSON snapshot and exit")
		demoMode    = flag.Bool("demo", false, "Use deterministic demo data instead of host telemetry")
		themeFlag   = flag.String("theme", "", "Theme override (dark|nord)")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("syswatch %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(*configPath, *themeFlag, *runOnce, *runExport, *demoMode, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "syswatch: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, themeFlag string, runOnce, runExport, demoMode, verbose bool) error {
	if configPath == "" {
		configPath = defaultConfigPath()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if themeFlag != "" {
		cfg.Display.Theme = themeFlag
	}

	logger, closeLog := newLogger(cfg, runOnce || runExport, verbose)
	defer closeLog()

	var provider telemetry.Provider
	var actions telemetry.Actions
	if demoMode {
		mock := telemetry.MockHostData()
		provider, actions = mock, mock
	} else {
		sys := telemetry.NewSystemProvider(logger)
		provider, actions = sys, sys
	}

	baseInterval, err := cfg.BaseInterval()
	if err != nil {
		return err
	}

	session := engine.NewSession(engine.Options{
		Provider:        provider,
		Actions:         actions,
		Exporter:        export.NewWriter(cfg.Export.Dir, logger),
		BaseInterval:    baseInterval,
		HistoryCapacity: cfg.Sampling.HistorySamples,
		Logger:          logger,
	})
	session.SetEnergySaving(cfg.Sampling.EnergySaving)

	ctx := context.Background()

	if runOnce {
		session.Tick(ctx, time.Now())
		fmt.Print(renderSnapshot(session.View(), snapshotWidth()))
		return nil
	}
	if runExport {
		session.Tick(ctx, time.Now())
		path, err := session.Export(time.Now())
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	}

	st := loadSettings(session, logger)

	model := tui.NewModel(tui.Options{
		Session:    session,
		Theme:      tui.ThemeByName(cfg.Display.Theme),
		ShowSystem: cfg.Display.ShowSystemInfo,
		ShowDisks:  cfg.Display.ShowDiskInfo,
		ShowCharts: cfg.Display.ShowCharts,
		Logger:     logger,
	})

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	logger.Info("starting dashboard",
		slog.String("version", version),
		slog.Duration("base_interval", baseInterval),
		slog.Bool("demo", demoMode),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}

	if st != nil {
		saveSettings(session, st, logger)
	}
	return nil
}

// defaultConfigPath is ~/.config/syswatch/config.yaml, or empty (pure
// defaults) when the home directory cannot be resolved.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "syswatch", "config.yaml")
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "syswatch")
}

// newLogger builds the application logger. The TUI owns the terminal, so
// interactive runs log to the configured file; one-shot runs log to stderr.
func newLogger(cfg *config.Config, oneShot, verbose bool) (*slog.Logger, func()) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if oneShot {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), func() {}
	}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err == nil {
			if f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err == nil {
				return slog.New(slog.NewTextHandler(f, opts)), func() { _ = f.Close() }
			}
		}
	}

	return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}
}

// loadSettings restores the persisted sort, filter, and cadence preferences
// into the session. Persistence is best-effort: a broken state directory
// just means defaults.
func loadSettings(session *engine.Session, logger *slog.Logger) *store.Store {
	dir := defaultStateDir()
	if dir == "" {
		return nil
	}

	st, err := store.New(dir, logger)
	if err != nil {
		logger.Warn("settings store unavailable", slog.String("error", err.Error()))
		return nil
	}

	settings, err := st.Load()
	if err != nil {
		logger.Warn("settings load failed", slog.String("error", err.Error()))
		return st
	}
	if settings == nil {
		return st
	}

	session.SetSort(engine.ParseSortKey(settings.SortKey), settings.SortDescending)
	session.SetFilter(settings.Filter)
	if d, err := time.ParseDuration(settings.BaseInterval); err == nil {
		session.SetBaseInterval(d)
	}
	session.SetEnergySaving(settings.EnergySaving)
	return st
}

// saveSettings writes the session's current preferences back to disk.
func saveSettings(session *engine.Session, st *store.Store, logger *slog.Logger) {
	view := session.View()
	err := st.Save(&store.Settings{
		SortKey:        view.SortKey.String(),
		SortDescending: view.Descending,
		Filter:         view.Filter,
		BaseInterval:   view.BaseInterval.String(),
		EnergySaving:   view.EnergySaving,
	})
	if err != nil {
		logger.Warn("settings save failed", slog.String("error", err.Error()))
	}
}
