package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// BuilderService implements the slide construction operations and writes the
// finished deck through a DeckWriter
type BuilderService struct {
	writer ports.DeckWriter
	fs     ports.FileSystem
	logger *slog.Logger
}

// NewBuilderService creates a builder that finalizes decks with writer
func NewBuilderService(writer ports.DeckWriter, fs ports.FileSystem, logger *slog.Logger) *BuilderService {
	if fs == nil {
		fs = ports.NewRealFileSystem()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BuilderService{
		writer: writer,
		fs:     fs,
		logger: logger,
	}
}

// AddTitleSlide appends a title-layout slide. The subtitle region is only set
// when subtitle is non-empty.
func (b *BuilderService) AddTitleSlide(deck *entities.Deck, title, subtitle string) *entities.Slide {
	slide := deck.Append(&entities.Slide{
		Kind:     entities.SlideKindTitle,
		Layout:   entities.LayoutTitle,
		Title:    title,
		Subtitle: subtitle,
	})

	b.logger.Debug("added title slide",
		slog.Int("index", slide.Index),
		slog.String("title", title),
		slog.Bool("subtitle", subtitle != ""),
	)

	return slide
}

// AddContentSlide appends a title+body slide with one level-0 bullet per entry,
// in input order. An empty bullets slice yields a slide with no body text.
func (b *BuilderService) AddContentSlide(deck *entities.Deck, title string, bullets []string) *entities.Slide {
	body := make([]entities.Bullet, 0, len(bullets))
	for _, text := range bullets {
		body = append(body, entities.Bullet{Text: text, Level: 0})
	}

	slide := deck.Append(&entities.Slide{
		Kind:    entities.SlideKindContent,
		Layout:  entities.LayoutTitleAndContent,
		Title:   title,
		Bullets: body,
	})

	b.logger.Debug("added content slide",
		slog.Int("index", slide.Index),
		slog.String("title", title),
		slog.Int("bullets", len(body)),
	)

	return slide
}

// Apply runs the content table against the deck, one append per record
func (b *BuilderService) Apply(deck *entities.Deck, spec *entities.DeckSpec) error {
	if deck == nil {
		return errors.New("deck cannot be nil")
	}
	if spec == nil {
		return errors.New("deck spec cannot be nil")
	}

	if spec.Title != "" {
		deck.Title = spec.Title
	}
	if spec.Author != "" {
		deck.Author = spec.Author
	}
	if spec.Subject != "" {
		deck.Subject = spec.Subject
	}

	for i, rec := range spec.Slides {
		kind, err := entities.ParseSlideKind(rec.Kind)
		if err != nil {
			return fmt.Errorf("slide %d: %w", i+1, err)
		}

		switch kind {
		case entities.SlideKindTitle:
			b.AddTitleSlide(deck, rec.Title, rec.Subtitle)
		case entities.SlideKindContent:
			b.AddContentSlide(deck, rec.Title, rec.Bullets)
		}
	}

	return nil
}

// Finalize serializes the deck to path. The artifact is rendered in memory
// and written to a temporary file beside path, which replaces path only once
// it is complete. A failure never leaves a partial file behind and never
// touches an existing file at path. The deck is not modified.
func (b *BuilderService) Finalize(ctx context.Context, deck *entities.Deck, path string) error {
	if deck == nil {
		return errors.New("deck cannot be nil")
	}
	if path == "" {
		return errors.New("output path cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := deck.Validate(); err != nil {
		return fmt.Errorf("invalid deck: %w", err)
	}

	var buf bytes.Buffer
	if err := b.writer.Write(ctx, deck, &buf); err != nil {
		return fmt.Errorf("rendering %s: %w", b.writer.Format(), err)
	}

	file, err := b.fs.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	tmp := file.Name()

	if _, err := buf.WriteTo(file); err != nil {
		_ = file.Close()
		_ = b.fs.Remove(tmp)
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		_ = b.fs.Remove(tmp)
		return fmt.Errorf("closing %s: %w", path, err)
	}

	if err := b.fs.Rename(tmp, path); err != nil {
		_ = b.fs.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	b.logger.Debug("deck finalized",
		slog.String("path", path),
		slog.String("format", b.writer.Format()),
		slog.Int("slides", deck.SlideCount()),
	)

	return nil
}

// Ensure BuilderService implements ports.DeckBuilder
var _ ports.DeckBuilder = (*BuilderService)(nil)
