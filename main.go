package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/mkale/emissia/internal/config"
	"github.com/mkale/emissia/internal/dashboard"
	"github.com/mkale/emissia/internal/profile"
)

func main() {
	cfg := config.FromEnv()
	log := newLogger(cfg)

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "seed":
			runSeed(cfg, log)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	runDashboard(cfg, log)
}

func runDashboard(cfg config.Config, log zerolog.Logger) {
	// A missing or unopenable store is not fatal: the dashboard runs
	// with placeholder profile values.
	var store profile.Store
	if s, err := openStore(cfg); err != nil {
		log.Error().Err(err).Str("path", cfg.DBPath).Msg("profile store unavailable")
	} else {
		store = s
	}

	m := dashboard.New(store, cfg.UserID, log).WithTickPeriod(cfg.TickPeriod)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runSeed inserts a demo factory profile so the dashboard has a record
// to fetch. Usage: emissia seed [user-id] [name] [location] [industry] [rating]
func runSeed(cfg config.Config, log zerolog.Logger) {
	s, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot open store: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	userID := cfg.UserID
	p := profile.Profile{
		Name:     "Acme Steel",
		Location: "Ohio",
		Industry: "metal_production",
		Rating:   4,
	}

	args := os.Args[2:]
	if len(args) > 0 {
		userID = args[0]
	}
	if len(args) > 1 {
		p.Name = args[1]
	}
	if len(args) > 2 {
		p.Location = args[2]
	}
	if len(args) > 3 {
		p.Industry = args[3]
	}
	if len(args) > 4 {
		fmt.Sscanf(args[4], "%d", &p.Rating)
	}

	if err := s.Put(context.Background(), userID, p); err != nil {
		fmt.Fprintf(os.Stderr, "Seed failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Str("user_id", userID).Str("factory", p.Name).Msg("profile seeded")
	fmt.Printf("Seeded profile for %s: %s (%s)\n", userID, p.Name, p.Location)
}

func openStore(cfg config.Config) (*profile.SQLiteStore, error) {
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return profile.NewSQLiteStore(cfg.DBPath)
}

// newLogger builds the zerolog logger. Logs go to a file when
// EMISSIA_LOG_FILE is set, otherwise to stderr; the TUI owns stdout.
func newLogger(cfg config.Config) zerolog.Logger {
	out := os.Stderr
	if cfg.LogFile != "" {
		if f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
			out = f
		}
	}
	return zerolog.New(out).With().Timestamp().Logger()
}

func printHelp() {
	fmt.Println(`emissia - factory emissions dashboard

Usage:
  emissia              Run the live dashboard
  emissia seed [args]  Insert a demo factory profile
  emissia help         Show this help

Environment:
  EMISSIA_DB_PATH   Profile store path (default ~/.emissia/profiles.db)
  EMISSIA_USER_ID   Profile to display (default U1)
  EMISSIA_TICK_SEC  Simulator period in seconds (default 5)
  EMISSIA_LOG_FILE  Log destination (default stderr)`)
}
