package export

import (
	"fmt"

	"asciisketch/diagram"
	"asciisketch/render"
)

// ASCIIExporter exports documents as a plain text character grid
type ASCIIExporter struct {
	renderer *render.Renderer
}

// NewASCIIExporter creates a new ASCII exporter drawing with r.
func NewASCIIExporter(r *render.Renderer) *ASCIIExporter {
	if r == nil {
		r = render.NewRenderer()
	}
	return &ASCIIExporter{
		renderer: r,
	}
}

// Export converts the document to text
func (e *ASCIIExporter) Export(d *diagram.Document) (string, error) {
	if d == nil {
		return "", fmt.Errorf("document is nil")
	}

	output, err := e.renderer.RenderDocument(d)
	if err != nil {
		return "", fmt.Errorf("failed to render sketch: %w", err)
	}

	return output, nil
}

// GetFileExtension returns the recommended file extension
func (e *ASCIIExporter) GetFileExtension() string {
	return ".txt"
}

// GetFormatName returns the format name
func (e *ASCIIExporter) GetFormatName() string {
	return "Plain Text"
}
