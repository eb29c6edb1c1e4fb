package content

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
)

// decodeTOML reads a deck laid out as top-level properties plus [[slides]] tables
func decodeTOML(data []byte) (*entities.DeckSpec, error) {
	var spec entities.DeckSpec

	meta, err := toml.Decode(string(data), &spec)
	if err != nil {
		return nil, err
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
	}

	return &spec, nil
}
