package render

import (
	"context"

	"cv-builder/resume/document"
)

const (
	// FileName is the name offered for downloaded CVs.
	FileName = "cv.pdf"
	// ContentType is the MIME type of rendered CVs.
	ContentType = "application/pdf"
)

// Renderer lays a document onto pages and serializes it.
type Renderer interface {
	Render(ctx context.Context, doc document.Document) ([]byte, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, doc document.Document) ([]byte, error)

// Render calls fn.
func (fn RendererFunc) Render(ctx context.Context, doc document.Document) ([]byte, error) {
	return fn(ctx, doc)
}
