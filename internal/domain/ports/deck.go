package ports

import (
	"context"
	"io"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
)

// DeckWriter serializes a deck into one artifact format
type DeckWriter interface {
	// Format returns the short format name, e.g. "pptx"
	Format() string

	// Extension returns the file extension including the dot
	Extension() string

	// Write serializes the whole deck to w. It must not mutate the deck.
	Write(ctx context.Context, deck *entities.Deck, w io.Writer) error
}

// DeckReader loads a previously written artifact back into a deck
type DeckReader interface {
	Read(ctx context.Context, path string) (*entities.Deck, error)
}

// ContentSource supplies the slide content table a deck is built from
type ContentSource interface {
	// Load parses the content into a deck spec
	Load(ctx context.Context) (*entities.DeckSpec, error)

	// Path returns the file backing the source, or "" for built-in content
	Path() string
}

// DeckBuilder defines the slide construction operations
type DeckBuilder interface {
	AddTitleSlide(deck *entities.Deck, title, subtitle string) *entities.Slide
	AddContentSlide(deck *entities.Deck, title string, bullets []string) *entities.Slide
	Apply(deck *entities.Deck, spec *entities.DeckSpec) error
	Finalize(ctx context.Context, deck *entities.Deck, path string) error
}
