package export

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// Outline is the JSON view of a deck
type Outline struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Author     string            `json:"author,omitempty"`
	Subject    string            `json:"subject,omitempty"`
	WidthIn    float64           `json:"width_in"`
	HeightIn   float64           `json:"height_in"`
	SlideCount int               `json:"slide_count"`
	Slides     []*entities.Slide `json:"slides"`
}

// NewOutline summarizes deck
func NewOutline(deck *entities.Deck) *Outline {
	return &Outline{
		ID:         deck.ID,
		Title:      deck.Title,
		Author:     deck.Author,
		Subject:    deck.Subject,
		WidthIn:    deck.Page.WidthInches(),
		HeightIn:   deck.Page.HeightInches(),
		SlideCount: deck.SlideCount(),
		Slides:     deck.Slides,
	}
}

// JSONWriter writes the deck outline as indented JSON
type JSONWriter struct{}

// NewJSONWriter creates a json writer
func NewJSONWriter() *JSONWriter {
	return &JSONWriter{}
}

func (w *JSONWriter) Format() string    { return FormatJSON }
func (w *JSONWriter) Extension() string { return ".json" }
func (w *JSONWriter) MimeType() string  { return "application/json" }

func (w *JSONWriter) Write(ctx context.Context, deck *entities.Deck, out io.Writer) error {
	if deck == nil {
		return errors.New("deck cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(NewOutline(deck))
}

// Ensure JSONWriter implements ports.DeckWriter
var _ ports.DeckWriter = (*JSONWriter)(nil)
