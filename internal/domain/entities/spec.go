package entities

import (
	"fmt"
)

// SlideSpec is one record of deck content: the kind of slide plus its text
type SlideSpec struct {
	Kind     string   `yaml:"kind" toml:"kind" json:"kind"`
	Title    string   `yaml:"title" toml:"title" json:"title"`
	Subtitle string   `yaml:"subtitle,omitempty" toml:"subtitle" json:"subtitle,omitempty"`
	Bullets  []string `yaml:"bullets,omitempty" toml:"bullets" json:"bullets,omitempty"`
}

// DeckSpec is the full content table consumed by the deck builder
type DeckSpec struct {
	DeckProperties `yaml:",inline"`

	Slides []SlideSpec `yaml:"slides" toml:"slides" json:"slides"`
}

// Validate checks every record names a known kind and carries only the fields of that kind
func (s *DeckSpec) Validate() error {
	for i, rec := range s.Slides {
		kind, err := ParseSlideKind(rec.Kind)
		if err != nil {
			return fmt.Errorf("slide %d: %w", i+1, err)
		}
		if kind == SlideKindTitle && len(rec.Bullets) > 0 {
			return fmt.Errorf("slide %d: title slide cannot have bullets", i+1)
		}
		if kind == SlideKindContent && rec.Subtitle != "" {
			return fmt.Errorf("slide %d: content slide cannot have a subtitle", i+1)
		}
	}
	return nil
}
