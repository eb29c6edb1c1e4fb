package entities

import (
	"errors"
	"fmt"
	"strings"
)

// SlideKind distinguishes the two slide variants a deck can hold
type SlideKind string

const (
	// SlideKindTitle is a slide with a title and an optional subtitle
	SlideKindTitle SlideKind = "title"
	// SlideKindContent is a slide with a title and a bulleted body
	SlideKindContent SlideKind = "content"
)

// Layout names the template a slide is created from
type Layout string

const (
	LayoutTitle           Layout = "title"
	LayoutTitleAndContent Layout = "title_and_content"
)

// BulletFontSize is the font size, in points, of every bullet paragraph
const BulletFontSize = 18

// ErrUnknownSlideKind is returned when a slide or slide spec names a kind other than title or content
var ErrUnknownSlideKind = errors.New("unknown slide kind")

// ParseSlideKind converts a user supplied kind name to a SlideKind
func ParseSlideKind(s string) (SlideKind, error) {
	switch SlideKind(strings.ToLower(strings.TrimSpace(s))) {
	case SlideKindTitle:
		return SlideKindTitle, nil
	case SlideKindContent, "":
		return SlideKindContent, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSlideKind, s)
	}
}

// Layout returns the template layout used for slides of this kind
func (k SlideKind) Layout() Layout {
	if k == SlideKindTitle {
		return LayoutTitle
	}
	return LayoutTitleAndContent
}

// Bullet is one paragraph of body text on a content slide
type Bullet struct {
	Text  string `json:"text" yaml:"text"`
	Level int    `json:"level,omitempty" yaml:"level,omitempty"`
}

// Slide represents a single slide in a deck
type Slide struct {
	// Index is the slide position in the deck (0-based)
	Index int `json:"index"`

	Kind   SlideKind `json:"kind"`
	Layout Layout    `json:"layout"`

	Title string `json:"title"`

	// Subtitle is only used by title slides; empty means the subtitle region is omitted
	Subtitle string `json:"subtitle,omitempty"`

	// Bullets are kept in display order
	Bullets []Bullet `json:"bullets,omitempty"`
}

// Validate ensures the slide is structurally consistent. Text content is never checked.
func (s *Slide) Validate() error {
	if s.Index < 0 {
		return errors.New("slide index must be non-negative")
	}

	switch s.Kind {
	case SlideKindTitle:
		if len(s.Bullets) > 0 {
			return errors.New("title slide cannot have bullets")
		}
	case SlideKindContent:
		if s.Subtitle != "" {
			return errors.New("content slide cannot have a subtitle")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSlideKind, s.Kind)
	}

	for i, b := range s.Bullets {
		if b.Level < 0 {
			return fmt.Errorf("bullet %d: level must be non-negative", i+1)
		}
	}

	return nil
}

// IsTitle reports whether the slide is a title slide
func (s *Slide) IsTitle() bool {
	return s.Kind == SlideKindTitle
}

// HasSubtitle returns true if the slide has a non-empty subtitle region
func (s *Slide) HasSubtitle() bool {
	return s.Subtitle != ""
}

// BulletTexts returns the text of each bullet in display order
func (s *Slide) BulletTexts() []string {
	texts := make([]string, len(s.Bullets))
	for i, b := range s.Bullets {
		texts[i] = b.Text
	}
	return texts
}

// SubtitleLines splits the subtitle into the lines it is displayed as
func (s *Slide) SubtitleLines() []string {
	if s.Subtitle == "" {
		return nil
	}
	return strings.Split(s.Subtitle, "\n")
}
