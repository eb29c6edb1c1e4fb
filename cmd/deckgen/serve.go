package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	httpadapter "github.com/fredcamaral/deckgen/internal/adapters/primary/http"
	"github.com/fredcamaral/deckgen/internal/adapters/secondary/browser"
	"github.com/fredcamaral/deckgen/internal/adapters/secondary/export"
	"github.com/fredcamaral/deckgen/internal/adapters/secondary/logging"
	"github.com/fredcamaral/deckgen/internal/adapters/secondary/watcher"
	"github.com/fredcamaral/deckgen/internal/domain/entities"
)

type serveOptions struct {
	port    int
	host    string
	noWatch bool
	open    bool
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve [content-file]",
		Short: "Preview the deck in a browser with live reload",
		Long: `Start a local HTTP server showing the deck outline, with downloads of every
export format. When a content file is given, the deck is rebuilt and open
pages reload whenever the file changes.

Example:
  deckgen serve
  deckgen serve slides.md --port 9000`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, args, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Port to serve on (overrides config)")
	cmd.Flags().StringVar(&opts.host, "host", "", "Host to bind to (overrides config)")
	cmd.Flags().BoolVar(&opts.noWatch, "no-watch", false, "Don't rebuild when the content file changes")
	cmd.Flags().BoolVar(&opts.open, "open", false, "Open the preview in a browser")

	return cmd
}

func runServe(cmd *cobra.Command, args []string, opts *serveOptions) error {
	ctx := cmd.Context()

	flags := map[string]interface{}{
		"port": opts.port,
		"host": opts.host,
	}
	if len(args) == 1 {
		flags["content"] = args[0]
	}

	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Logging)

	load := func(ctx context.Context) (*entities.Deck, error) {
		return buildDeck(ctx, cfg, logger)
	}

	deck, err := load(ctx)
	if err != nil {
		return err
	}

	server := httpadapter.NewServer(&cfg.Server, export.NewDefaultService(logger), logger)
	server.SetDeck(deck)

	if err := server.Start(ctx, cfg.Server.Port, cfg.Server.Host); err != nil {
		return err
	}

	url := "http://" + server.Addr()
	fmt.Fprintf(cmd.OutOrStdout(), "🚀 Preview server running at %s\n", url)

	if opts.open {
		if err := browser.NewLauncher().Open(ctx, url); err != nil {
			logger.Warn("failed to open browser", slog.Any("error", err))
		}
	}

	if cfg.Deck.Content != "" && !opts.noWatch {
		w := watcher.NewPollingWatcher(cfg.Watcher.GetInterval(), cfg.Watcher.GetDebounce(), logger)
		events, err := w.Watch(ctx, cfg.Deck.Content)
		if err != nil {
			_ = server.Stop(context.Background())
			return fmt.Errorf("watching %s: %w", cfg.Deck.Content, err)
		}
		defer func() { _ = w.Stop() }()

		go server.WatchAndReload(ctx, events, load)
		logger.Info("watching content file", slog.String("path", cfg.Deck.Content))
	}

	<-ctx.Done()

	// ctx is already cancelled; shutdown gets its own deadline
	if err := server.Stop(context.Background()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "👋 Preview server stopped")
	return nil
}
