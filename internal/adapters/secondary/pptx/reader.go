package pptx

import (
	"context"
	"fmt"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// Reader loads pptx files back into decks
type Reader struct{}

// NewReader creates a pptx reader
func NewReader() *Reader {
	return &Reader{}
}

// Read parses the file at path. Text is kept verbatim.
func (r *Reader) Read(ctx context.Context, path string) (*entities.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader := &ppt.PPTXReader{}
	pres, err := reader.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	page := entities.DefaultPageSize
	if layout := pres.GetLayout(); layout != nil && layout.CX > 0 && layout.CY > 0 {
		page = entities.PageSize{Width: layout.CX, Height: layout.CY}
	}

	props := pres.GetDocumentProperties()
	deckProps := entities.DeckProperties{Title: props.Title, Subject: props.Subject}
	if props.Creator != Creator {
		deckProps.Author = props.Creator
	}

	deck := entities.NewDeck(page, deckProps)

	for _, slide := range pres.GetAllSlides() {
		var shapes []textShape
		for _, shape := range slide.GetShapes() {
			if rts, ok := shape.(*ppt.RichTextShape); ok {
				shapes = append(shapes, readTextShape(rts))
			}
		}
		deck.Append(classify(shapes))
	}

	return deck, nil
}

// textShape is the text content of one shape, reduced to what classify needs
type textShape struct {
	name  string
	paras []paragraph
}

type paragraph struct {
	text   string
	bullet string // bullet character, "" when the paragraph has none
}

func readTextShape(rts *ppt.RichTextShape) textShape {
	ts := textShape{name: rts.GetName()}
	for _, para := range rts.GetParagraphs() {
		var sb strings.Builder
		for _, elem := range para.GetElements() {
			if run, ok := elem.(*ppt.TextRun); ok {
				sb.WriteString(run.GetText())
			}
		}
		p := paragraph{text: sb.String()}
		if b := para.GetBullet(); b != nil && b.Type == ppt.BulletTypeChar {
			p.bullet = b.Style
		}
		ts.paras = append(ts.paras, p)
	}
	return ts
}

func (ts textShape) text() string {
	lines := make([]string, len(ts.paras))
	for i, p := range ts.paras {
		lines[i] = p.text
	}
	return strings.Join(lines, "\n")
}

func (ts textShape) hasBullets() bool {
	for _, p := range ts.paras {
		if p.bullet != "" {
			return true
		}
	}
	return false
}

// classify turns a slide's text shapes into a slide. Shapes written by Writer
// are recognized by name. For other files the first shape is the title and a
// second shape is a body when any paragraph carries a bullet, otherwise a
// subtitle.
func classify(shapes []textShape) *entities.Slide {
	slide := &entities.Slide{Kind: entities.SlideKindTitle, Layout: entities.LayoutTitle}
	if len(shapes) == 0 {
		return slide
	}

	titleAt := 0
	for i, s := range shapes {
		if s.name == shapeTitle {
			titleAt = i
			break
		}
	}
	slide.Title = shapes[titleAt].text()

	var second *textShape
	for i := range shapes {
		if i != titleAt {
			second = &shapes[i]
			break
		}
	}
	if second == nil {
		return slide
	}

	isBody := second.name == shapeBody || (second.name != shapeSubtitle && second.hasBullets())
	if !isBody {
		slide.Subtitle = second.text()
		return slide
	}

	slide.Kind = entities.SlideKindContent
	slide.Layout = entities.LayoutTitleAndContent
	for _, p := range second.paras {
		// the empty paragraph every text shape starts with
		if p.bullet == "" && p.text == "" {
			continue
		}
		slide.Bullets = append(slide.Bullets, entities.Bullet{Text: p.text, Level: bulletLevel(p.bullet)})
	}
	return slide
}

// Ensure Reader implements ports.DeckReader
var _ ports.DeckReader = (*Reader)(nil)
