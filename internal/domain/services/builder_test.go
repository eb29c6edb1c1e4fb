package services

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// MockDeckWriter records what it is asked to write and emits a fixed payload
type MockDeckWriter struct {
	mock.Mock
}

func (m *MockDeckWriter) Format() string {
	return "mock"
}

func (m *MockDeckWriter) Extension() string {
	return ".mock"
}

func (m *MockDeckWriter) Write(ctx context.Context, deck *entities.Deck, w io.Writer) error {
	args := m.Called(ctx, deck)
	if err := args.Error(0); err != nil {
		return err
	}
	_, err := io.WriteString(w, args.String(1))
	return err
}

// failingFile accepts the create but fails every write
type failingFile struct{ name string }

func (f *failingFile) Write(p []byte) (int, error) { return 0, errors.New("disk full") }
func (f *failingFile) Close() error                { return nil }
func (f *failingFile) Name() string                { return f.name }

type failingFS struct {
	ports.FileSystem
	removed []string
}

func (fs *failingFS) CreateTemp(dir, pattern string) (ports.File, error) {
	return &failingFile{name: filepath.Join(dir, "partial.tmp")}, nil
}

func (fs *failingFS) Remove(name string) error {
	fs.removed = append(fs.removed, name)
	return nil
}

// diskFullFS creates real temp files whose writes fail
type diskFullFS struct {
	ports.FileSystem
}

func (fs diskFullFS) CreateTemp(dir, pattern string) (ports.File, error) {
	f, err := fs.FileSystem.CreateTemp(dir, pattern)
	if err != nil {
		return nil, err
	}
	return diskFullFile{f}, nil
}

type diskFullFile struct{ ports.File }

func (f diskFullFile) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func newDeck() *entities.Deck {
	return entities.NewDeck(entities.DefaultPageSize, entities.DeckProperties{Title: "Test"})
}

func TestBuilderService_AddTitleSlide(t *testing.T) {
	builder := NewBuilderService(new(MockDeckWriter), nil, nil)

	t.Run("without subtitle", func(t *testing.T) {
		deck := newDeck()
		slide := builder.AddTitleSlide(deck, "T", "")

		assert.Equal(t, entities.SlideKindTitle, slide.Kind)
		assert.Equal(t, entities.LayoutTitle, slide.Layout)
		assert.Equal(t, "T", slide.Title)
		assert.False(t, slide.HasSubtitle())
		assert.Empty(t, slide.Subtitle)
	})

	t.Run("with subtitle", func(t *testing.T) {
		deck := newDeck()
		slide := builder.AddTitleSlide(deck, "T", "S")

		assert.True(t, slide.HasSubtitle())
		assert.Equal(t, "S", slide.Subtitle)
		assert.Same(t, slide, deck.Slides[0])
	})
}

func TestBuilderService_AddContentSlide(t *testing.T) {
	builder := NewBuilderService(new(MockDeckWriter), nil, nil)

	t.Run("keeps bullets verbatim and in order", func(t *testing.T) {
		deck := newDeck()
		bullets := []string{"zeta", "alpha", "alpha", "", "  padded  "}

		slide := builder.AddContentSlide(deck, "Topic", bullets)

		assert.Equal(t, entities.SlideKindContent, slide.Kind)
		assert.Equal(t, entities.LayoutTitleAndContent, slide.Layout)
		assert.Equal(t, bullets, slide.BulletTexts())
		for _, b := range slide.Bullets {
			assert.Equal(t, 0, b.Level)
		}
	})

	t.Run("empty bullets", func(t *testing.T) {
		deck := newDeck()
		slide := builder.AddContentSlide(deck, "Empty", nil)

		assert.Equal(t, "Empty", slide.Title)
		assert.Empty(t, slide.Bullets)
		assert.Equal(t, 1, deck.SlideCount())
	})

	t.Run("does not alias the caller's slice", func(t *testing.T) {
		deck := newDeck()
		bullets := []string{"a", "b"}
		slide := builder.AddContentSlide(deck, "Topic", bullets)

		bullets[0] = "changed"
		assert.Equal(t, []string{"a", "b"}, slide.BulletTexts())
	})
}

func TestBuilderService_SlideCountMatchesAppends(t *testing.T) {
	builder := NewBuilderService(new(MockDeckWriter), nil, nil)
	deck := newDeck()

	for i := 0; i < 7; i++ {
		if i%3 == 0 {
			builder.AddTitleSlide(deck, "title", "")
		} else {
			builder.AddContentSlide(deck, "content", []string{"x"})
		}
	}

	assert.Equal(t, 7, deck.SlideCount())
	for i, slide := range deck.Slides {
		assert.Equal(t, i, slide.Index)
	}
}

func TestBuilderService_Apply(t *testing.T) {
	builder := NewBuilderService(new(MockDeckWriter), nil, nil)

	t.Run("interprets records in order", func(t *testing.T) {
		deck := newDeck()
		spec := &entities.DeckSpec{
			DeckProperties: entities.DeckProperties{Title: "Capstone", Author: "Analyst"},
			Slides: []entities.SlideSpec{
				{Kind: "title", Title: "Hello", Subtitle: "World"},
				{Kind: "content", Title: "Topic", Bullets: []string{"a", "b", "c"}},
				{Title: "Defaults to content"},
			},
		}

		require.NoError(t, builder.Apply(deck, spec))

		require.Equal(t, 3, deck.SlideCount())
		assert.Equal(t, "Capstone", deck.Title)
		assert.Equal(t, "Analyst", deck.Author)
		assert.Equal(t, "World", deck.Slides[0].Subtitle)
		assert.Equal(t, []string{"a", "b", "c"}, deck.Slides[1].BulletTexts())
		assert.Equal(t, entities.SlideKindContent, deck.Slides[2].Kind)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		deck := newDeck()
		spec := &entities.DeckSpec{Slides: []entities.SlideSpec{{Kind: "chart", Title: "x"}}}

		err := builder.Apply(deck, spec)
		require.Error(t, err)
		assert.True(t, errors.Is(err, entities.ErrUnknownSlideKind))
		assert.Contains(t, err.Error(), "slide 1")
	})

	t.Run("nil arguments", func(t *testing.T) {
		assert.Error(t, builder.Apply(nil, &entities.DeckSpec{}))
		assert.Error(t, builder.Apply(newDeck(), nil))
	})
}

func TestBuilderService_Finalize(t *testing.T) {
	ctx := context.Background()

	t.Run("writes the rendered artifact", func(t *testing.T) {
		writer := new(MockDeckWriter)
		builder := NewBuilderService(writer, nil, nil)
		deck := newDeck()
		builder.AddTitleSlide(deck, "Hello", "World")

		writer.On("Write", ctx, deck).Return(nil, "payload")

		path := filepath.Join(t.TempDir(), "nested", "deck.mock")
		require.NoError(t, builder.Finalize(ctx, deck, path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
		writer.AssertExpectations(t)
	})

	t.Run("does not mutate the deck", func(t *testing.T) {
		writer := new(MockDeckWriter)
		builder := NewBuilderService(writer, nil, nil)
		deck := newDeck()
		builder.AddContentSlide(deck, "Topic", []string{"a", "b"})
		writer.On("Write", ctx, deck).Return(nil, "payload")

		dir := t.TempDir()
		require.NoError(t, builder.Finalize(ctx, deck, filepath.Join(dir, "one.mock")))
		require.NoError(t, builder.Finalize(ctx, deck, filepath.Join(dir, "two.mock")))

		assert.Equal(t, 1, deck.SlideCount())
		assert.Equal(t, []string{"a", "b"}, deck.Slides[0].BulletTexts())
		writer.AssertNumberOfCalls(t, "Write", 2)
	})

	t.Run("writer failure leaves no file", func(t *testing.T) {
		writer := new(MockDeckWriter)
		builder := NewBuilderService(writer, nil, nil)
		deck := newDeck()
		builder.AddTitleSlide(deck, "Hello", "")
		writer.On("Write", ctx, deck).Return(errors.New("library exploded"), "")

		path := filepath.Join(t.TempDir(), "deck.mock")
		err := builder.Finalize(ctx, deck, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "library exploded")

		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("write failure removes partial file", func(t *testing.T) {
		writer := new(MockDeckWriter)
		fs := &failingFS{}
		builder := NewBuilderService(writer, fs, nil)
		deck := newDeck()
		builder.AddTitleSlide(deck, "Hello", "")
		writer.On("Write", ctx, deck).Return(nil, "payload")

		err := builder.Finalize(ctx, deck, "out.mock")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		assert.Equal(t, []string{"partial.tmp"}, fs.removed)
	})

	t.Run("write failure keeps the previous artifact", func(t *testing.T) {
		writer := new(MockDeckWriter)
		builder := NewBuilderService(writer, diskFullFS{ports.NewRealFileSystem()}, nil)
		deck := newDeck()
		builder.AddTitleSlide(deck, "Hello", "")
		writer.On("Write", ctx, deck).Return(nil, "new payload")

		dir := t.TempDir()
		path := filepath.Join(dir, "deck.mock")
		require.NoError(t, os.WriteFile(path, []byte("previous"), 0600))

		err := builder.Finalize(ctx, deck, path)
		require.Error(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "previous", string(data))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temporary file left behind")
	})

	t.Run("replaces an existing artifact", func(t *testing.T) {
		writer := new(MockDeckWriter)
		builder := NewBuilderService(writer, nil, nil)
		deck := newDeck()
		builder.AddTitleSlide(deck, "Hello", "")
		writer.On("Write", ctx, deck).Return(nil, "new payload")

		dir := t.TempDir()
		path := filepath.Join(dir, "deck.mock")
		require.NoError(t, os.WriteFile(path, []byte("previous"), 0600))

		require.NoError(t, builder.Finalize(ctx, deck, path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new payload", string(data))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("unwritable path", func(t *testing.T) {
		writer := new(MockDeckWriter)
		builder := NewBuilderService(writer, nil, nil)
		deck := newDeck()
		builder.AddTitleSlide(deck, "Hello", "")
		writer.On("Write", ctx, deck).Return(nil, "payload")

		// A regular file cannot act as a parent directory
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

		err := builder.Finalize(ctx, deck, filepath.Join(blocker, "deck.mock"))
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		builder := NewBuilderService(new(MockDeckWriter), nil, nil)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		err := builder.Finalize(cancelled, newDeck(), "out.mock")
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("empty path", func(t *testing.T) {
		builder := NewBuilderService(new(MockDeckWriter), nil, nil)
		assert.Error(t, builder.Finalize(ctx, newDeck(), ""))
	})
}
