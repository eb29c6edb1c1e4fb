package export

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

const pdfMargin = 0.5 // inches

// pdfFont is registered from the embedded DejaVu faces so text outside
// Latin-1, such as arrows, is kept
const pdfFont = "DejaVu"

var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	fontRegular []byte

	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	fontBold []byte
)

// PDFWriter renders a handout with one page per slide, sized like the deck
type PDFWriter struct{}

// NewPDFWriter creates a pdf writer
func NewPDFWriter() *PDFWriter {
	return &PDFWriter{}
}

func (w *PDFWriter) Format() string    { return FormatPDF }
func (w *PDFWriter) Extension() string { return ".pdf" }
func (w *PDFWriter) MimeType() string  { return "application/pdf" }

// Write lays out every slide with the embedded UTF-8 font
func (w *PDFWriter) Write(ctx context.Context, deck *entities.Deck, out io.Writer) error {
	if deck == nil {
		return errors.New("deck cannot be nil")
	}
	if deck.SlideCount() == 0 {
		return entities.ErrEmptyDeck
	}

	width, height := deck.Page.WidthInches(), deck.Page.HeightInches()

	// The page size already carries the orientation, so it is used as-is
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetTitle(deck.Title, true)
	pdf.SetAuthor(deck.Author, true)
	pdf.SetSubject(deck.Subject, true)
	pdf.SetCreator("deckgen", true)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)

	pdf.AddUTF8FontFromBytes(pdfFont, "", fontRegular)
	pdf.AddUTF8FontFromBytes(pdfFont, "B", fontBold)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("loading pdf font: %w", err)
	}

	for i, slide := range deck.Slides {
		if err := ctx.Err(); err != nil {
			return err
		}

		pdf.AddPage()
		switch slide.Kind {
		case entities.SlideKindTitle:
			pdf.SetY(height * 0.3)
			pdf.SetFont(pdfFont, "B", 32)
			pdf.MultiCell(0, 0.55, slide.Title, "", "C", false)
			if slide.HasSubtitle() {
				pdf.Ln(0.3)
				pdf.SetFont(pdfFont, "", 18)
				for _, line := range slide.SubtitleLines() {
					pdf.MultiCell(0, 0.35, line, "", "C", false)
				}
			}
		case entities.SlideKindContent:
			pdf.SetFont(pdfFont, "B", 24)
			pdf.MultiCell(0, 0.45, slide.Title, "", "L", false)
			pdf.Ln(0.2)
			pdf.SetFont(pdfFont, "", entities.BulletFontSize)
			for _, b := range slide.Bullets {
				text := strings.Repeat("    ", b.Level) + "• " + b.Text
				pdf.MultiCell(0, 0.35, text, "", "L", false)
				pdf.Ln(0.05)
			}
		default:
			return fmt.Errorf("slide %d: %w: %q", i+1, entities.ErrUnknownSlideKind, slide.Kind)
		}
	}

	if err := pdf.Output(out); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}

	return nil
}

// Ensure PDFWriter implements ports.DeckWriter
var _ ports.DeckWriter = (*PDFWriter)(nil)
