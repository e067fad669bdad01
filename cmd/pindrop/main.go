package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pindrop/internal/adapter"
	"pindrop/internal/domain"
	"pindrop/internal/geometry"
	"pindrop/internal/immich"
	"pindrop/internal/review"
	"pindrop/internal/store"
	"pindrop/internal/timeline"
	"pindrop/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting pindrop", "version", "1.0.0")

	if !cfg.IsConfigured() {
		return runAuthFlow(cfg, logger)
	}

	if cfg.Timeline.Path == "" {
		return fmt.Errorf("no timeline configured; set timeline.path to a location-history export (Records.json)")
	}

	tl, err := timeline.LoadFile(cfg.Timeline.Path)
	if err != nil {
		return err
	}
	first, last := tl.Span()
	logger.Info("loaded timeline", "fixes", tl.Len(), "from", first, "to", last)

	seen, err := store.NewSeenStore(adapter.DataDir())
	if err != nil {
		return fmt.Errorf("failed to open seen store: %w", err)
	}
	defer seen.Close()

	client := immich.NewClient(cfg.Server.URL, cfg.Server.APIKey, logger)
	estimator := timeline.NewEstimatorWithWindows(tl,
		time.Duration(cfg.Review.ExactWindowMins)*time.Minute,
		time.Duration(cfg.Review.MaxGapHours)*time.Hour,
	)

	criteria := domain.FilterCriteria{
		NotInAlbum: cfg.Review.NotInAlbum,
		PageSize:   cfg.Review.PageSize,
	}
	session := review.NewSession(client, estimator, geometry.NewAdapter(), seen, criteria, logger)
	session.SetRefetchDelay(time.Duration(cfg.Review.RefetchDelayMs) * time.Millisecond)

	model := tui.NewModel(session)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Repaint from the event loop when the post-commit refetch lands
	session.SetOnRefetch(func(err error) {
		p.Send(tui.RefetchedMsg{Err: err})
	})

	logger.Info("starting TUI")
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runAuthFlow handles the initial API key setup when not configured
func runAuthFlow(cfg *adapter.Config, logger *slog.Logger) error {
	fmt.Println("Welcome to pindrop!")

	flow := immich.NewAuthFlow(logger)
	serverURL, apiKey, err := flow.Run(context.Background(), cfg.Server.URL)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	cfg.Server.URL = serverURL
	cfg.Server.APIKey = apiKey
	if err := adapter.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Println("Run pindrop again to start reviewing.")
	return nil
}
