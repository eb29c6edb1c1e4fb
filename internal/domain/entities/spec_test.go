package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckSpec_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		spec := DeckSpec{Slides: []SlideSpec{
			{Kind: "title", Title: "Hello", Subtitle: "World"},
			{Kind: "content", Title: "Topic", Bullets: []string{"a"}},
			{Title: "implicit content"},
		}}
		assert.NoError(t, spec.Validate())
	})

	t.Run("unknown kind", func(t *testing.T) {
		spec := DeckSpec{Slides: []SlideSpec{{Kind: "title"}, {Kind: "video"}}}
		err := spec.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownSlideKind))
		assert.Contains(t, err.Error(), "slide 2")
	})

	t.Run("title with bullets", func(t *testing.T) {
		spec := DeckSpec{Slides: []SlideSpec{{Kind: "title", Bullets: []string{"a"}}}}
		assert.Error(t, spec.Validate())
	})

	t.Run("content with subtitle", func(t *testing.T) {
		spec := DeckSpec{Slides: []SlideSpec{{Kind: "content", Subtitle: "S"}}}
		assert.Error(t, spec.Validate())
	})
}
