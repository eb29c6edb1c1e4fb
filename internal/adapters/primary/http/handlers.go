package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/microcosm-cc/bluemonday"

	"github.com/fredcamaral/deckgen/internal/adapters/secondary/export"
	"github.com/fredcamaral/deckgen/internal/domain/entities"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string    `json:"error"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// DeckResponse represents the deck API response
type DeckResponse struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Author     string          `json:"author,omitempty"`
	Subject    string          `json:"subject,omitempty"`
	WidthIn    float64         `json:"width_in"`
	HeightIn   float64         `json:"height_in"`
	SlideCount int             `json:"slide_count"`
	Slides     []SlideResponse `json:"slides"`
}

// SlideResponse represents a single slide in the API response
type SlideResponse struct {
	Index    int      `json:"index"`
	Kind     string   `json:"kind"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle,omitempty"`
	Bullets  []string `json:"bullets,omitempty"`
}

// FormatsResponse lists the export formats the server can render
type FormatsResponse struct {
	Formats []string `json:"formats"`
}

// Slide text is plain text. The strict policy strips any markup a content file
// carries; its entity escaping is undone because every sink escapes again.
var textSanitizer = bluemonday.StrictPolicy()

func sanitize(text string) string {
	return html.UnescapeString(textSanitizer.Sanitize(text))
}

func slideToResponse(slide *entities.Slide) SlideResponse {
	resp := SlideResponse{
		Index:    slide.Index,
		Kind:     string(slide.Kind),
		Title:    sanitize(slide.Title),
		Subtitle: sanitize(slide.Subtitle),
	}
	for _, text := range slide.BulletTexts() {
		resp.Bullets = append(resp.Bullets, sanitize(text))
	}
	return resp
}

func deckToResponse(deck *entities.Deck) DeckResponse {
	slides := make([]SlideResponse, 0, deck.SlideCount())
	for _, slide := range deck.Slides {
		slides = append(slides, slideToResponse(slide))
	}
	return DeckResponse{
		ID:         deck.ID,
		Title:      sanitize(deck.Title),
		Author:     sanitize(deck.Author),
		Subject:    sanitize(deck.Subject),
		WidthIn:    deck.Page.WidthInches(),
		HeightIn:   deck.Page.HeightInches(),
		SlideCount: deck.SlideCount(),
		Slides:     slides,
	}
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 52rem; color: #222; }
section { border: 1px solid #ccc; border-radius: 4px; margin: 1rem 0; padding: 1rem 1.5rem; }
section.title { text-align: center; }
.subtitle { color: #666; white-space: pre-line; }
.meta { color: #888; font-size: 0.9rem; }
</style>
</head>
<body>
<p class="meta">{{.SlideCount}} slides · {{printf "%.3g" .WidthIn}}in × {{printf "%.3g" .HeightIn}}in{{range .Formats}} · <a href="/api/export/{{.}}">{{.}}</a>{{end}}</p>
{{range .Slides}}
{{if eq .Kind "title"}}<section class="title"><h1>{{.Title}}</h1>{{if .Subtitle}}<p class="subtitle">{{.Subtitle}}</p>{{end}}</section>
{{else}}<section><h2>{{.Title}}</h2>{{if .Bullets}}<ul>{{range .Bullets}}<li>{{.}}</li>{{end}}</ul>{{end}}</section>
{{end}}{{else}}<p>No deck loaded</p>{{end}}
<script>
(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  ws.onmessage = function (msg) {
    var event = JSON.parse(msg.data);
    if (event.type === "reload") { location.reload(); }
  };
})();
</script>
</body>
</html>
`))

type indexData struct {
	DeckResponse
	Formats []string
}

// handleIndex serves the HTML outline of the current deck
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := indexData{DeckResponse: DeckResponse{Title: "No deck loaded"}}
	if deck := s.GetDeck(); deck != nil {
		data.DeckResponse = deckToResponse(deck)
		data.Formats = s.exporter.Formats()
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		s.handleError(w, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Warn("failed to write index response", "error", err)
	}
}

// handleDeck returns the deck outline as JSON
func (s *Server) handleDeck(w http.ResponseWriter, r *http.Request) {
	deck := s.GetDeck()
	if deck == nil {
		s.handleError(w, errors.New("no deck loaded"), http.StatusServiceUnavailable)
		return
	}
	s.writeJSON(w, deckToResponse(deck))
}

// handleSlide returns one slide by its 0-based index
func (s *Server) handleSlide(w http.ResponseWriter, r *http.Request) {
	deck := s.GetDeck()
	if deck == nil {
		s.handleError(w, errors.New("no deck loaded"), http.StatusServiceUnavailable)
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		s.handleError(w, err, http.StatusBadRequest)
		return
	}

	slide, err := deck.GetSlideByIndex(index)
	if err != nil {
		s.handleError(w, err, http.StatusNotFound)
		return
	}

	s.writeJSON(w, slideToResponse(slide))
}

// handleFormats returns available export formats
func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, FormatsResponse{Formats: s.exporter.Formats()})
}

// handleExport renders the current deck in the requested format as a download
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	deck := s.GetDeck()
	if deck == nil {
		s.handleError(w, errors.New("no deck loaded"), http.StatusServiceUnavailable)
		return
	}

	format := mux.Vars(r)["format"]

	var buf bytes.Buffer
	if err := s.exporter.Render(r.Context(), deck, format, &buf); err != nil {
		switch {
		case errors.Is(err, export.ErrUnsupportedFormat):
			s.handleError(w, err, http.StatusNotFound)
		case errors.Is(err, entities.ErrEmptyDeck):
			s.handleError(w, err, http.StatusConflict)
		default:
			s.handleError(w, err, http.StatusInternalServerError)
		}
		return
	}

	filename := s.exporter.FileName(downloadBase(deck.Title), format)

	w.Header().Set("Content-Type", s.exporter.MimeType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Warn("failed to write export response", "format", format, "error", err)
	}
}

// downloadBase turns a deck title into a file name stem
func downloadBase(title string) string {
	base := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, title)
	if base == "" {
		return "deck"
	}
	return base
}

// handleError handles error responses with sanitized messages
func (s *Server) handleError(w http.ResponseWriter, err error, status int) {
	var message string
	switch status {
	case http.StatusBadRequest:
		message = "Invalid request"
	case http.StatusNotFound:
		message = "Resource not found"
	case http.StatusConflict:
		message = "Deck has no slides"
	case http.StatusServiceUnavailable:
		message = "No deck loaded"
	case http.StatusTooManyRequests:
		message = "Too many requests"
	case http.StatusInternalServerError:
		message = "Internal server error"
	default:
		message = "An error occurred"
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "error", err)
	} else {
		s.logger.Debug("request rejected", "status", status, "error", err)
	}

	response := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Time:    time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		s.logger.Warn("failed to encode error response", "error", encodeErr)
	}
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		s.handleError(w, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		s.logger.Warn("failed to write JSON response", "error", err)
	}
}
