// Package pptx writes decks as PowerPoint packages with GoPPT and reads them back.
package pptx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// Creator is recorded in the document properties of every written deck
const Creator = "deckgen"

// Writer renders a deck to the PowerPoint 2007+ format
type Writer struct {
	logger *slog.Logger
}

// NewWriter creates a pptx writer
func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger}
}

// Format returns "pptx"
func (w *Writer) Format() string {
	return "pptx"
}

// Extension returns ".pptx"
func (w *Writer) Extension() string {
	return ".pptx"
}

// MimeType returns the OOXML presentation media type
func (w *Writer) MimeType() string {
	return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
}

// Write renders every slide and writes the finished package to out. GoPPT
// always starts a presentation with one slide, which becomes the deck's first
// slide, so an empty deck cannot be represented. The page size is recorded as
// a custom layout.
func (w *Writer) Write(ctx context.Context, deck *entities.Deck, out io.Writer) error {
	if deck == nil {
		return errors.New("deck cannot be nil")
	}
	if deck.SlideCount() == 0 {
		return entities.ErrEmptyDeck
	}

	p := ppt.New()
	p.GetLayout().SetCustomLayout(deck.Page.Width, deck.Page.Height)

	props := p.GetDocumentProperties()
	props.Title = deck.Title
	props.Subject = deck.Subject
	props.Creator = Creator
	if deck.Author != "" {
		props.Creator = deck.Author
	}

	for i, s := range deck.Slides {
		if err := ctx.Err(); err != nil {
			return err
		}

		slide := p.GetActiveSlide()
		if i > 0 {
			slide = p.CreateSlide()
		}

		switch s.Kind {
		case entities.SlideKindTitle:
			renderTitleSlide(slide, s, deck.Page)
		case entities.SlideKindContent:
			renderContentSlide(slide, s, deck.Page)
		default:
			return fmt.Errorf("slide %d: %w: %q", i+1, entities.ErrUnknownSlideKind, s.Kind)
		}
	}

	pw, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return fmt.Errorf("creating pptx writer: %w", err)
	}
	writer, ok := pw.(*ppt.PPTXWriter)
	if !ok {
		return fmt.Errorf("unexpected pptx writer type %T", pw)
	}

	if err := writer.WriteTo(out); err != nil {
		return fmt.Errorf("saving pptx: %w", err)
	}

	w.logger.Debug("pptx rendered",
		slog.Int("slides", deck.SlideCount()),
		slog.Float64("width_in", deck.Page.WidthInches()),
		slog.Float64("height_in", deck.Page.HeightInches()),
	)

	return nil
}

// Ensure Writer implements ports.DeckWriter
var _ ports.DeckWriter = (*Writer)(nil)
