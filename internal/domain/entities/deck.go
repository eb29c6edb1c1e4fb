package entities

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// EMUPerInch is the number of English Metric Units in one inch
const EMUPerInch = 914400

// ErrEmptyDeck is returned when a deck without slides is finalized
var ErrEmptyDeck = errors.New("deck has no slides")

// PageSize holds slide dimensions in EMU
type PageSize struct {
	Width  int64 `json:"width"`
	Height int64 `json:"height"`
}

// Inches converts a length in inches to EMU
func Inches(in float64) int64 {
	return int64(in * EMUPerInch)
}

// DefaultPageSize is the 4:3 page used by the capstone deck (10in x 7.5in)
var DefaultPageSize = PageSize{Width: Inches(10), Height: Inches(7.5)}

// PageSizeInches builds a PageSize from inch dimensions
func PageSizeInches(width, height float64) PageSize {
	return PageSize{Width: Inches(width), Height: Inches(height)}
}

// Validate ensures both dimensions are positive
func (p PageSize) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("page size must be positive, got %dx%d EMU", p.Width, p.Height)
	}
	return nil
}

// WidthInches returns the page width in inches
func (p PageSize) WidthInches() float64 {
	return float64(p.Width) / EMUPerInch
}

// HeightInches returns the page height in inches
func (p PageSize) HeightInches() float64 {
	return float64(p.Height) / EMUPerInch
}

// DeckProperties are the document properties written alongside the slides
type DeckProperties struct {
	Title   string `json:"title" yaml:"title" toml:"title"`
	Author  string `json:"author,omitempty" yaml:"author" toml:"author"`
	Subject string `json:"subject,omitempty" yaml:"subject" toml:"subject"`
}

// Deck is the in-memory document handle: an ordered, append-only slide sequence
// with page dimensions fixed at creation.
type Deck struct {
	ID string `json:"id"`

	DeckProperties

	Page PageSize `json:"page"`

	Slides []*Slide `json:"slides"`
}

// NewDeck creates an empty deck with the given page size
func NewDeck(page PageSize, props DeckProperties) *Deck {
	return &Deck{
		ID:             uuid.New().String(),
		DeckProperties: props,
		Page:           page,
		Slides:         []*Slide{},
	}
}

// Append adds a slide at the end of the deck and fixes its index
func (d *Deck) Append(slide *Slide) *Slide {
	slide.Index = len(d.Slides)
	d.Slides = append(d.Slides, slide)
	return slide
}

// SlideCount returns the total number of slides
func (d *Deck) SlideCount() int {
	return len(d.Slides)
}

// GetSlideByIndex returns a slide by its index (0-based)
func (d *Deck) GetSlideByIndex(index int) (*Slide, error) {
	if index < 0 || index >= len(d.Slides) {
		return nil, fmt.Errorf("slide index %d out of range (0-%d)", index, len(d.Slides)-1)
	}
	return d.Slides[index], nil
}

// Validate checks the page size and every slide
func (d *Deck) Validate() error {
	if err := d.Page.Validate(); err != nil {
		return err
	}

	for i, slide := range d.Slides {
		if slide.Index != i {
			return fmt.Errorf("slide %d has index %d", i+1, slide.Index)
		}
		if err := slide.Validate(); err != nil {
			return fmt.Errorf("slide %d validation failed: %w", i+1, err)
		}
	}

	return nil
}
