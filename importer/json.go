package importer

import (
	"encoding/json"
	"fmt"
	"strings"

	"asciisketch/diagram"
)

// JSONImporter reads shape documents written as JSON. Both a bare array of
// shape records and the {"grid_cell_size": n, "shapes": [...]} object are accepted.
type JSONImporter struct{}

// NewJSONImporter creates a new JSON importer
func NewJSONImporter() *JSONImporter {
	return &JSONImporter{}
}

// CanImport checks if the content is a JSON array or object
func (j *JSONImporter) CanImport(content string) bool {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "{") {
		return false
	}
	return json.Valid([]byte(trimmed))
}

// Import decodes JSON content into a document
func (j *JSONImporter) Import(content string) (*diagram.Document, error) {
	trimmed := strings.TrimSpace(content)

	var dr diagram.DocumentRecord
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal([]byte(trimmed), &dr.Shapes); err != nil {
			return nil, fmt.Errorf("parsing JSON shapes: %w", err)
		}
	} else if err := json.Unmarshal([]byte(trimmed), &dr); err != nil {
		return nil, fmt.Errorf("parsing JSON document: %w", err)
	}

	return dr.Document()
}

// GetFormatName returns the format name
func (j *JSONImporter) GetFormatName() string {
	return "json"
}

// GetFileExtensions returns common file extensions for JSON documents
func (j *JSONImporter) GetFileExtensions() []string {
	return []string{".json"}
}
