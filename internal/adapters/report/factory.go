package report

import (
	"strings"

	"go.trai.ch/envspec/internal/core/domain"
	"go.trai.ch/envspec/internal/core/ports"
	"go.trai.ch/zerr"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Factory selects renderers by format name.
type Factory struct {
	text *TextRenderer
	json *JSONRenderer
}

// NewFactory creates a renderer factory.
func NewFactory() *Factory {
	return &Factory{text: NewTextRenderer(), json: NewJSONRenderer()}
}

// Renderer returns the renderer for format. An empty format selects text.
func (f *Factory) Renderer(format string) (ports.Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return f.text, nil
	case FormatJSON:
		return f.json, nil
	default:
		return nil, zerr.With(domain.ErrUnknownFormat, "format", format)
	}
}
