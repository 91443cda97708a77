// Package export provides functionality to export shape documents to text-based formats
package export

import (
	"fmt"

	"asciisketch/diagram"
	"asciisketch/render"
)

// Format represents an export format
type Format string

const (
	// FormatASCII exports the rasterized character grid (default)
	FormatASCII Format = "ascii"
	// FormatJSON exports the shape document as JSON
	FormatJSON Format = "json"
	// FormatYAML exports the shape document as YAML
	FormatYAML Format = "yaml"
)

// Exporter interface for different export formats
type Exporter interface {
	// Export converts a document to the target format
	Export(d *diagram.Document) (string, error)
	// GetFileExtension returns the recommended file extension for this format
	GetFileExtension() string
	// GetFormatName returns a human-readable name for this format
	GetFormatName() string
}

// NewExporter creates an exporter for the specified format. The ASCII
// exporter draws with r; a nil r uses a default renderer.
func NewExporter(format Format, r *render.Renderer) (Exporter, error) {
	switch format {
	case FormatASCII:
		return NewASCIIExporter(r), nil
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatYAML:
		return NewYAMLExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch s {
	case "ascii", "text", "txt":
		return FormatASCII, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// GetAvailableFormats returns a list of all available export formats
func GetAvailableFormats() []Format {
	return []Format{
		FormatASCII,
		FormatJSON,
		FormatYAML,
	}
}

// GetFormatDescriptions returns human-readable descriptions of all formats
func GetFormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatASCII: "Plain text character grid",
		FormatJSON:  "Shape document as JSON",
		FormatYAML:  "Shape document as YAML",
	}
}
