package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// MarkdownWriter writes a deck as a Markdown outline that the markdown
// content source reads back into the same slides
type MarkdownWriter struct{}

// NewMarkdownWriter creates a markdown writer
func NewMarkdownWriter() *MarkdownWriter {
	return &MarkdownWriter{}
}

func (w *MarkdownWriter) Format() string    { return FormatMarkdown }
func (w *MarkdownWriter) Extension() string { return ".md" }
func (w *MarkdownWriter) MimeType() string  { return "text/markdown; charset=utf-8" }

// Write renders frontmatter followed by one section per slide
func (w *MarkdownWriter) Write(ctx context.Context, deck *entities.Deck, out io.Writer) error {
	if deck == nil {
		return errors.New("deck cannot be nil")
	}

	var content bytes.Buffer

	frontmatter, err := yaml.Marshal(deck.DeckProperties)
	if err != nil {
		return fmt.Errorf("encoding frontmatter: %w", err)
	}
	content.WriteString("---\n")
	content.Write(frontmatter)
	content.WriteString("---\n")

	for _, slide := range deck.Slides {
		if err := ctx.Err(); err != nil {
			return err
		}

		content.WriteString("\n")
		switch slide.Kind {
		case entities.SlideKindTitle:
			fmt.Fprintf(&content, "# %s\n", slide.Title)
			if slide.HasSubtitle() {
				content.WriteString("\n" + slide.Subtitle + "\n")
			}
		default:
			fmt.Fprintf(&content, "## %s\n", slide.Title)
			if len(slide.Bullets) > 0 {
				content.WriteString("\n")
			}
			for _, b := range slide.Bullets {
				content.WriteString(strings.Repeat("  ", b.Level) + "- " + b.Text + "\n")
			}
		}
		content.WriteString("\n---\n")
	}

	_, err = content.WriteTo(out)
	return err
}

// Ensure MarkdownWriter implements ports.DeckWriter
var _ ports.DeckWriter = (*MarkdownWriter)(nil)
