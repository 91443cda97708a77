package export

import (
	"encoding/json"
	"fmt"

	"asciisketch/diagram"

	"gopkg.in/yaml.v3"
)

// JSONExporter exports documents to JSON format
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts a document to JSON
func (e *JSONExporter) Export(d *diagram.Document) (string, error) {
	if d == nil {
		return "", fmt.Errorf("document is nil")
	}
	data, err := json.MarshalIndent(diagram.NewDocumentRecord(d), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GetFileExtension returns the file extension for JSON
func (e *JSONExporter) GetFileExtension() string {
	return ".json"
}

// GetFormatName returns the format name
func (e *JSONExporter) GetFormatName() string {
	return "JSON"
}

// YAMLExporter exports documents to YAML format
type YAMLExporter struct{}

// NewYAMLExporter creates a new YAML exporter
func NewYAMLExporter() *YAMLExporter {
	return &YAMLExporter{}
}

// Export converts a document to YAML
func (e *YAMLExporter) Export(d *diagram.Document) (string, error) {
	if d == nil {
		return "", fmt.Errorf("document is nil")
	}
	data, err := yaml.Marshal(diagram.NewDocumentRecord(d))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GetFileExtension returns the file extension for YAML
func (e *YAMLExporter) GetFileExtension() string {
	return ".yaml"
}

// GetFormatName returns the format name
func (e *YAMLExporter) GetFormatName() string {
	return "YAML"
}
