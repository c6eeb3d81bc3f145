// Command postop runs the post-op bed monitoring dashboard.
package main

import (
	"fmt"
	"os"

	"github.com/jwulff/postop/internal/api"
	"github.com/jwulff/postop/internal/app"
	"github.com/jwulff/postop/internal/config"
	"github.com/jwulff/postop/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "postop:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFile, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log := logging.New(logFile, cfg.Log.Level, "postop", false)

	log.Info().
		Str("api_url", cfg.Dashboard.APIURL).
		Dur("poll_interval", cfg.Dashboard.PollInterval).
		Dur("countdown_interval", cfg.Dashboard.CountdownInterval).
		Msg("dashboard starting")

	client := api.NewClient(cfg.Dashboard.APIURL, cfg.Dashboard.RequestTimeout)
	m := app.New(client, app.Options{
		PollInterval:      cfg.Dashboard.PollInterval,
		CountdownInterval: cfg.Dashboard.CountdownInterval,
		Logger:            log,
	})

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Error().Err(err).Msg("dashboard exited with error")
		return err
	}
	log.Info().Msg("dashboard stopped")
	return nil
}
