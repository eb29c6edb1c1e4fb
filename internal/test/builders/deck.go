package builders

import (
	"fmt"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
)

// DeckBuilder helps build Deck entities for testing
type DeckBuilder struct {
	deck *entities.Deck
}

// NewDeckBuilder creates an empty 10in x 7.5in deck
func NewDeckBuilder() *DeckBuilder {
	return &DeckBuilder{
		deck: entities.NewDeck(entities.DefaultPageSize, entities.DeckProperties{}),
	}
}

// WithTitle sets the deck title
func (b *DeckBuilder) WithTitle(title string) *DeckBuilder {
	b.deck.Title = title
	return b
}

// WithAuthor sets the deck author
func (b *DeckBuilder) WithAuthor(author string) *DeckBuilder {
	b.deck.Author = author
	return b
}

// WithSubject sets the deck subject
func (b *DeckBuilder) WithSubject(subject string) *DeckBuilder {
	b.deck.Subject = subject
	return b
}

// WithPage sets the page size
func (b *DeckBuilder) WithPage(page entities.PageSize) *DeckBuilder {
	b.deck.Page = page
	return b
}

// WithTitleSlide appends a title slide
func (b *DeckBuilder) WithTitleSlide(title, subtitle string) *DeckBuilder {
	b.deck.Append(NewSlideBuilder().Title(title, subtitle).Build())
	return b
}

// WithContentSlide appends a content slide with level-0 bullets
func (b *DeckBuilder) WithContentSlide(title string, bullets ...string) *DeckBuilder {
	b.deck.Append(NewSlideBuilder().Content(title, bullets...).Build())
	return b
}

// WithSlide appends a prepared slide
func (b *DeckBuilder) WithSlide(slide *entities.Slide) *DeckBuilder {
	b.deck.Append(slide)
	return b
}

// WithSlideCount appends count numbered content slides
func (b *DeckBuilder) WithSlideCount(count int) *DeckBuilder {
	for i := 0; i < count; i++ {
		b.WithContentSlide(fmt.Sprintf("Slide %d", i+1), fmt.Sprintf("Point %d", i+1))
	}
	return b
}

// Build returns the built deck
func (b *DeckBuilder) Build() *entities.Deck {
	return b.deck
}

// SlideBuilder helps build Slide entities for testing
type SlideBuilder struct {
	slide *entities.Slide
}

// NewSlideBuilder creates a content slide with no text
func NewSlideBuilder() *SlideBuilder {
	return &SlideBuilder{
		slide: &entities.Slide{
			Kind:   entities.SlideKindContent,
			Layout: entities.LayoutTitleAndContent,
		},
	}
}

// Title turns the slide into a title slide
func (b *SlideBuilder) Title(title, subtitle string) *SlideBuilder {
	b.slide.Kind = entities.SlideKindTitle
	b.slide.Layout = entities.LayoutTitle
	b.slide.Title = title
	b.slide.Subtitle = subtitle
	b.slide.Bullets = nil
	return b
}

// Content turns the slide into a content slide
func (b *SlideBuilder) Content(title string, bullets ...string) *SlideBuilder {
	b.slide.Kind = entities.SlideKindContent
	b.slide.Layout = entities.LayoutTitleAndContent
	b.slide.Title = title
	b.slide.Subtitle = ""
	b.slide.Bullets = nil
	for _, text := range bullets {
		b.slide.Bullets = append(b.slide.Bullets, entities.Bullet{Text: text})
	}
	return b
}

// WithBullet appends a bullet at level
func (b *SlideBuilder) WithBullet(text string, level int) *SlideBuilder {
	b.slide.Bullets = append(b.slide.Bullets, entities.Bullet{Text: text, Level: level})
	return b
}

// Build returns the built slide
func (b *SlideBuilder) Build() *entities.Slide {
	return b.slide
}

// SpecBuilder helps build DeckSpec content tables for testing
type SpecBuilder struct {
	spec *entities.DeckSpec
}

// NewSpecBuilder creates an empty content table
func NewSpecBuilder() *SpecBuilder {
	return &SpecBuilder{spec: &entities.DeckSpec{}}
}

// WithTitle sets the deck title property
func (b *SpecBuilder) WithTitle(title string) *SpecBuilder {
	b.spec.Title = title
	return b
}

// Title appends a title record
func (b *SpecBuilder) Title(title, subtitle string) *SpecBuilder {
	b.spec.Slides = append(b.spec.Slides, entities.SlideSpec{
		Kind: string(entities.SlideKindTitle), Title: title, Subtitle: subtitle,
	})
	return b
}

// Content appends a content record
func (b *SpecBuilder) Content(title string, bullets ...string) *SpecBuilder {
	b.spec.Slides = append(b.spec.Slides, entities.SlideSpec{
		Kind: string(entities.SlideKindContent), Title: title, Bullets: bullets,
	})
	return b
}

// Build returns the built content table
func (b *SpecBuilder) Build() *entities.DeckSpec {
	return b.spec
}
