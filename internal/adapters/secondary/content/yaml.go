package content

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
)

func decodeYAML(data []byte) (*entities.DeckSpec, error) {
	var spec entities.DeckSpec

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return &spec, nil
}
