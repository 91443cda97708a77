package importer

import (
	"fmt"

	"asciisketch/diagram"

	"gopkg.in/yaml.v3"
)

// YAMLImporter reads shape documents written as YAML, in the same two
// layouts the JSON importer accepts.
type YAMLImporter struct{}

// NewYAMLImporter creates a new YAML importer
func NewYAMLImporter() *YAMLImporter {
	return &YAMLImporter{}
}

// CanImport checks if the content parses as a YAML sequence, or a mapping with a shapes key
func (y *YAMLImporter) CanImport(content string) bool {
	root, err := parseYAML(content)
	if err != nil || root == nil {
		return false
	}
	switch root.Kind {
	case yaml.SequenceNode:
		return true
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			if root.Content[i].Value == "shapes" {
				return true
			}
		}
	}
	return false
}

// Import decodes YAML content into a document
func (y *YAMLImporter) Import(content string) (*diagram.Document, error) {
	root, err := parseYAML(content)
	if err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	var dr diagram.DocumentRecord
	switch {
	case root == nil:
		// Empty input is an empty document.
	case root.Kind == yaml.SequenceNode:
		if err := root.Decode(&dr.Shapes); err != nil {
			return nil, fmt.Errorf("parsing YAML shapes: %w", err)
		}
	case root.Kind == yaml.MappingNode:
		if err := root.Decode(&dr); err != nil {
			return nil, fmt.Errorf("parsing YAML document: %w", err)
		}
	default:
		return nil, fmt.Errorf("parsing YAML: expected a list of shapes or a document, got %q", root.Value)
	}

	return dr.Document()
}

// GetFormatName returns the format name
func (y *YAMLImporter) GetFormatName() string {
	return "yaml"
}

// GetFileExtensions returns common file extensions for YAML documents
func (y *YAMLImporter) GetFileExtensions() []string {
	return []string{".yaml", ".yml"}
}

// parseYAML returns the top-level node of content, or nil for an empty stream.
func parseYAML(content string) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}
	return doc.Content[0], nil
}
