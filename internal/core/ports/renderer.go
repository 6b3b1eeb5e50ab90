package ports

import (
	"io"

	"go.trai.ch/envspec/internal/core/domain"
)

// Renderer writes reports and dependency listings in one output format.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Render writes the report to w.
	Render(w io.Writer, report *domain.Report) error
	// RenderDependencies writes the given entries of a descriptor to w.
	RenderDependencies(w io.Writer, deps []domain.Dependency) error
}

// RendererFactory selects a Renderer by format name.
type RendererFactory interface {
	// Renderer returns the renderer for format, or domain.ErrUnknownFormat.
	Renderer(format string) (Renderer, error)
}
