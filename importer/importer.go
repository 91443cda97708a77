// Package importer decodes shape documents from their on-disk formats.
package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"asciisketch/diagram"
)

// ErrUnknownFormat is returned when no importer matches the requested or detected format.
var ErrUnknownFormat = errors.New("unknown input format")

// Importer interface defines methods for importing shape documents from various formats
type Importer interface {
	// CanImport checks if the given content can be imported by this importer
	CanImport(content string) bool

	// Import converts the input content into a shape document
	Import(content string) (*diagram.Document, error)

	// GetFormatName returns the name of the format, as accepted by ImportWithFormat
	GetFormatName() string

	// GetFileExtensions returns common file extensions for this format
	GetFileExtensions() []string
}

// ImporterRegistry manages available importers
type ImporterRegistry struct {
	importers []Importer
}

// NewImporterRegistry creates a new importer registry
func NewImporterRegistry() *ImporterRegistry {
	return &ImporterRegistry{
		importers: []Importer{
			NewJSONImporter(),
			NewYAMLImporter(),
		},
	}
}

// Register adds a new importer to the registry
func (r *ImporterRegistry) Register(importer Importer) {
	r.importers = append(r.importers, importer)
}

// DetectFormat attempts to detect the format of the given content
func (r *ImporterRegistry) DetectFormat(content string) (Importer, error) {
	for _, imp := range r.importers {
		if imp.CanImport(content) {
			return imp, nil
		}
	}
	return nil, fmt.Errorf("%w: unable to detect format", ErrUnknownFormat)
}

// Import attempts to import content using auto-detection
func (r *ImporterRegistry) Import(content string) (*diagram.Document, error) {
	importer, err := r.DetectFormat(content)
	if err != nil {
		return nil, err
	}
	return importer.Import(content)
}

// ImportWithFormat imports content using a specific format
func (r *ImporterRegistry) ImportWithFormat(content, format string) (*diagram.Document, error) {
	imp, err := r.Lookup(format)
	if err != nil {
		return nil, err
	}
	return imp.Import(content)
}

// Lookup returns the importer registered under format. Format names are
// matched case-insensitively, and a file extension such as "yml" also
// selects its importer.
func (r *ImporterRegistry) Lookup(format string) (Importer, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))

	for _, imp := range r.importers {
		if strings.ToLower(imp.GetFormatName()) == format {
			return imp, nil
		}
	}
	if imp := r.ForExtension("." + format); imp != nil {
		return imp, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// ForExtension returns the importer claiming the extension of path, or nil.
func (r *ImporterRegistry) ForExtension(path string) Importer {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil
	}
	for _, imp := range r.importers {
		for _, e := range imp.GetFileExtensions() {
			if e == ext {
				return imp
			}
		}
	}
	return nil
}

// GetAvailableFormats returns a list of available import formats
func (r *ImporterRegistry) GetAvailableFormats() []string {
	formats := make([]string, len(r.importers))
	for i, imp := range r.importers {
		formats[i] = imp.GetFormatName()
	}
	return formats
}
