package pptx

import (
	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
)

// Font sizes in points
const (
	fontTitleSlideTitle = 40
	fontSubtitle        = 24
	fontContentTitle    = 32
)

// Text colors (ARGB)
const (
	colorTitle    = "FF1F2937"
	colorSubtitle = "FF4B5563"
	colorBody     = "FF111827"
)

// Shape names mark the role of each text shape so Reader can tell a
// subtitle from a body regardless of the text it holds
const (
	shapeTitle    = "Title"
	shapeSubtitle = "Subtitle"
	shapeBody     = "Body"
)

// bulletChars holds the bullet character for each nesting level. GoPPT does
// not read the paragraph level back, so the character also encodes it; levels
// past the end reuse the last character.
var bulletChars = []string{"•", "–", "▪", "◦", "»"}

// BulletChar returns the bullet character drawn for a nesting level
func BulletChar(level int) string {
	if level < 0 {
		level = 0
	}
	if level >= len(bulletChars) {
		level = len(bulletChars) - 1
	}
	return bulletChars[level]
}

// bulletLevel maps a bullet character back to its nesting level
func bulletLevel(char string) int {
	for i, c := range bulletChars {
		if c == char {
			return i
		}
	}
	return 0
}

// frame is a shape rectangle expressed as fractions of the page
type frame struct {
	x, y, w, h float64
}

var (
	titleSlideTitle    = frame{x: 0.05, y: 0.28, w: 0.90, h: 0.20}
	titleSlideSubtitle = frame{x: 0.10, y: 0.52, w: 0.80, h: 0.32}
	contentTitle       = frame{x: 0.05, y: 0.05, w: 0.90, h: 0.15}
	contentBody        = frame{x: 0.05, y: 0.22, w: 0.90, h: 0.72}
)

func (f frame) place(shape *ppt.RichTextShape, page entities.PageSize) {
	w, h := float64(page.Width), float64(page.Height)
	shape.SetOffsetX(int64(f.x * w)).SetOffsetY(int64(f.y * h))
	shape.SetWidth(int64(f.w * w)).SetHeight(int64(f.h * h))
}

func newTextShape(slide *ppt.Slide, name string, f frame, page entities.PageSize) *ppt.RichTextShape {
	shape := slide.CreateRichTextShape()
	shape.SetName(name)
	f.place(shape, page)
	return shape
}

func alignCenter(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
}

// renderTitleSlide lays out the title and, if present, one subtitle paragraph per line
func renderTitleSlide(slide *ppt.Slide, s *entities.Slide, page entities.PageSize) {
	title := newTextShape(slide, shapeTitle, titleSlideTitle, page)
	tr := title.CreateTextRun(s.Title)
	tr.GetFont().SetSize(fontTitleSlideTitle).SetBold(true).SetColor(ppt.NewColor(colorTitle))
	alignCenter(title.GetActiveParagraph())

	if !s.HasSubtitle() {
		return
	}

	subtitle := newTextShape(slide, shapeSubtitle, titleSlideSubtitle, page)
	for i, line := range s.SubtitleLines() {
		para := subtitle.GetActiveParagraph()
		if i > 0 {
			para = subtitle.CreateParagraph()
		}
		alignCenter(para)
		// blank lines stay as empty paragraphs
		if line == "" {
			continue
		}
		run := para.CreateTextRun(line)
		run.GetFont().SetSize(fontSubtitle).SetColor(ppt.NewColor(colorSubtitle))
	}
}

// renderContentSlide lays out the title and a body with one bullet paragraph per bullet
func renderContentSlide(slide *ppt.Slide, s *entities.Slide, page entities.PageSize) {
	title := newTextShape(slide, shapeTitle, contentTitle, page)
	tr := title.CreateTextRun(s.Title)
	tr.GetFont().SetSize(fontContentTitle).SetBold(true).SetColor(ppt.NewColor(colorTitle))

	body := newTextShape(slide, shapeBody, contentBody, page)
	for i, b := range s.Bullets {
		para := body.GetActiveParagraph()
		if i > 0 {
			para = body.CreateParagraph()
		}

		align := ppt.NewAlignment()
		align.Level = b.Level
		para.SetAlignment(align)
		para.SetBullet(ppt.NewBullet().SetCharBullet(BulletChar(b.Level)))

		run := para.CreateTextRun(b.Text)
		run.GetFont().SetSize(entities.BulletFontSize).SetColor(ppt.NewColor(colorBody))
	}
}
