package content

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

//go:embed decks/spacex.yaml
var spacexDeck []byte

// EmbeddedSource serves the SpaceX Falcon 9 capstone deck compiled into the binary
type EmbeddedSource struct{}

// Embedded returns the built-in deck source
func Embedded() *EmbeddedSource {
	return &EmbeddedSource{}
}

// Load decodes the built-in deck
func (s *EmbeddedSource) Load(ctx context.Context) (*entities.DeckSpec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	spec, err := decodeYAML(spacexDeck)
	if err != nil {
		return nil, fmt.Errorf("parsing built-in deck: %w", err)
	}

	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid built-in deck: %w", err)
	}

	return spec, nil
}

// Path returns "" because the deck is not backed by a file
func (s *EmbeddedSource) Path() string {
	return ""
}

// Ensure EmbeddedSource implements ports.ContentSource
var _ ports.ContentSource = (*EmbeddedSource)(nil)
