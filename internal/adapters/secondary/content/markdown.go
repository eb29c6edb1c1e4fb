package content

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
)

// MarkdownDecoder reads decks written as Markdown: optional YAML frontmatter,
// then slides separated by `---`. A level-1 heading starts a title slide whose
// paragraphs form the subtitle; any deeper heading starts a content slide
// whose list items become bullets.
type MarkdownDecoder struct {
	md goldmark.Markdown
}

// NewMarkdownDecoder creates a decoder with GitHub Flavored Markdown enabled
func NewMarkdownDecoder() *MarkdownDecoder {
	return &MarkdownDecoder{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Decode parses a Markdown deck
func (d *MarkdownDecoder) Decode(data []byte) (*entities.DeckSpec, error) {
	spec := &entities.DeckSpec{}

	body, frontmatter := extractFrontmatter(data)
	if frontmatter != nil {
		if err := yaml.Unmarshal(frontmatter, &spec.DeckProperties); err != nil {
			return nil, fmt.Errorf("parsing frontmatter: %w", err)
		}
	}

	for _, chunk := range splitSlides(body) {
		spec.Slides = append(spec.Slides, d.parseSlide(chunk))
	}

	return spec, nil
}

func (d *MarkdownDecoder) parseSlide(src []byte) entities.SlideSpec {
	doc := d.md.Parser().Parse(text.NewReader(src))

	var (
		slide      entities.SlideSpec
		paragraphs []string
		hasHeading bool
	)

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if hasHeading {
				// later headings are body text
				paragraphs = append(paragraphs, inlineText(node, src))
				continue
			}
			hasHeading = true
			slide.Title = inlineText(node, src)
			if node.Level == 1 {
				slide.Kind = string(entities.SlideKindTitle)
			} else {
				slide.Kind = string(entities.SlideKindContent)
			}
		case *ast.Paragraph:
			paragraphs = append(paragraphs, inlineText(node, src))
		case *ast.List:
			slide.Bullets = append(slide.Bullets, listItems(node, src)...)
		}
	}

	if !hasHeading {
		if len(slide.Bullets) > 0 {
			slide.Kind = string(entities.SlideKindContent)
		} else {
			slide.Kind = string(entities.SlideKindTitle)
		}
	}

	if slide.Kind == string(entities.SlideKindTitle) {
		slide.Subtitle = strings.Join(paragraphs, "\n\n")
		// a list on a title slide is kept as subtitle text
		for _, b := range slide.Bullets {
			if slide.Subtitle != "" {
				slide.Subtitle += "\n"
			}
			slide.Subtitle += b
		}
		slide.Bullets = nil
	}

	return slide
}

// listItems flattens a list, nested items following their parent
func listItems(list *ast.List, src []byte) []string {
	var items []string
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		var textParts []string
		var nested []string
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				nested = append(nested, listItems(sub, src)...)
				continue
			}
			textParts = append(textParts, inlineText(c, src))
		}
		items = append(items, strings.Join(textParts, " "))
		items = append(items, nested...)
	}
	return items
}

// inlineText concatenates the raw text under n. Soft and hard line breaks become newlines.
func inlineText(n ast.Node, src []byte) string {
	var sb strings.Builder
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch node := c.(type) {
			case *ast.Text:
				sb.Write(node.Segment.Value(src))
				if node.SoftLineBreak() || node.HardLineBreak() {
					sb.WriteByte('\n')
				}
			case *ast.String:
				sb.Write(node.Value)
			case *ast.AutoLink:
				sb.Write(node.Label(src))
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimRight(sb.String(), "\n")
}

// extractFrontmatter splits leading YAML frontmatter from the body. A missing
// closing delimiter means the document has no frontmatter.
func extractFrontmatter(content []byte) (body, frontmatter []byte) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))

	if !bytes.HasPrefix(content, []byte("---\n")) {
		return content, nil
	}

	lines := bytes.Split(content, []byte("\n"))
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			frontmatter = bytes.Join(lines[1:i], []byte("\n"))
			body = bytes.Join(lines[i+1:], []byte("\n"))
			return body, frontmatter
		}
	}

	return content, nil
}

// splitSlides splits on `---` lines and drops empty chunks
func splitSlides(content []byte) [][]byte {
	var slides [][]byte
	var current []string

	flush := func() {
		chunk := strings.TrimSpace(strings.Join(current, "\n"))
		if chunk != "" {
			slides = append(slides, []byte(chunk))
		}
		current = current[:0]
	}

	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == "---" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return slides
}
