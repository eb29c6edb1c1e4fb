package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fredcamaral/deckgen/internal/adapters/secondary/config"
	"github.com/fredcamaral/deckgen/internal/adapters/secondary/content"
	"github.com/fredcamaral/deckgen/internal/adapters/secondary/export"
	"github.com/fredcamaral/deckgen/internal/adapters/secondary/logging"
	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
	"github.com/fredcamaral/deckgen/internal/domain/services"
)

type buildOptions struct {
	output  string
	format  string
	content string
	width   float64
	height  float64
}

func (o *buildOptions) flags() map[string]interface{} {
	return map[string]interface{}{
		"output":  o.output,
		"format":  o.format,
		"content": o.content,
		"width":   o.width,
		"height":  o.height,
	}
}

func runBuild(cmd *cobra.Command, opts *buildOptions) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd, opts.flags())
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Logging)
	exporter := export.NewDefaultService(logger)

	// Reject an unknown format before doing any work
	format := cfg.Output.GetFormat()
	if _, err := exporter.Writer(format); err != nil {
		return err
	}

	deck, err := buildDeck(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if err := exporter.Export(ctx, deck, format, cfg.Output.Path); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Output.Path, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✅ Presentation created successfully: %s\n", cfg.Output.Path)
	fmt.Fprintf(out, "📊 Total slides: %d\n", deck.SlideCount())

	return nil
}

// loadConfig resolves the layered configuration. flags holds command-specific
// overrides; zero values leave the configured value alone.
func loadConfig(cmd *cobra.Command, flags map[string]interface{}) (*entities.Config, error) {
	if flags == nil {
		flags = make(map[string]interface{})
	}

	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	flags["verbose"] = verbose

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}

	svc := services.NewConfigService(config.NewTOMLLoader(), config.NewConfigMerger())
	cfg, err := svc.LoadConfig(cmd.Context(), ports.LoadOptions{
		WorkingDir: wd,
		ConfigFile: configFile,
		Flags:      flags,
	})
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	return cfg, nil
}

// buildDeck loads the configured content and runs it through the builder.
// Deck properties set in config win over the content's own.
func buildDeck(ctx context.Context, cfg *entities.Config, logger *slog.Logger) (*entities.Deck, error) {
	source, err := content.Resolve(cfg.Deck.Content)
	if err != nil {
		return nil, err
	}

	spec, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}

	deck := entities.NewDeck(cfg.Page.Size(), entities.DeckProperties{})

	builder := services.NewBuilderService(nil, nil, logger)
	if err := builder.Apply(deck, spec); err != nil {
		return nil, fmt.Errorf("building deck: %w", err)
	}

	if cfg.Deck.Title != "" {
		deck.Title = cfg.Deck.Title
	}
	if cfg.Deck.Author != "" {
		deck.Author = cfg.Deck.Author
	}
	if cfg.Deck.Subject != "" {
		deck.Subject = cfg.Deck.Subject
	}
	if deck.Title == "" {
		deck.Title = titleFromPath(cfg.Output.Path)
	}

	logger.Debug("deck built",
		slog.String("source", sourceName(source)),
		slog.Int("slides", deck.SlideCount()),
		slog.Float64("width_in", deck.Page.WidthInches()),
		slog.Float64("height_in", deck.Page.HeightInches()),
	)

	return deck, nil
}

// titleFromPath turns an output file name into a title,
// e.g. "falcon_9-results.pptx" becomes "Falcon 9 Results"
func titleFromPath(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(base))
	return cases.Title(language.English).String(strings.Join(words, " "))
}

func sourceName(source ports.ContentSource) string {
	if path := source.Path(); path != "" {
		return path
	}
	return "built-in"
}
