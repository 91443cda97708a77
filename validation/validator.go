// Package validation checks shape documents before rendering and rendered
// text afterwards. Problems are reported, never fixed; the renderer itself
// accepts any input.
package validation

import (
	"fmt"
	"math"
	"strings"

	"asciisketch/diagram"
)

// Severity grades a validation finding.
type Severity int

const (
	// SeverityWarning marks input that renders, but probably not as intended.
	SeverityWarning Severity = iota
	// SeverityError marks input or output that breaks an invariant.
	SeverityError
)

// String returns the lower-case name of the severity.
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// ValidationError represents a validation finding. Shape findings carry the
// shape's index and id; output findings carry the row and column.
type ValidationError struct {
	Severity Severity
	Index    int    // shape index, -1 for output findings
	ShapeID  string // shape id, empty for output findings
	X, Y     int    // output column and row
	Message  string
}

// String formats the finding for display.
func (e ValidationError) String() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: shape %d (%q): %s", e.Severity, e.Index, e.ShapeID, e.Message)
	}
	return fmt.Sprintf("%s: row %d, column %d: %s", e.Severity, e.Y+1, e.X+1, e.Message)
}

// HasErrors reports whether any finding has error severity.
func HasErrors(findings []ValidationError) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ShapeValidator checks a shape list for problems the renderer silently tolerates.
type ShapeValidator struct {
	errors []ValidationError
	// strictMode promotes warnings to errors.
	strictMode bool
}

// NewShapeValidator creates a new validator with default settings.
func NewShapeValidator() *ShapeValidator {
	return &ShapeValidator{}
}

// SetStrictMode enables or disables strict validation.
func (v *ShapeValidator) SetStrictMode(strict bool) {
	v.strictMode = strict
}

// Validate checks shapes and returns every finding, in shape order.
func (v *ShapeValidator) Validate(shapes []diagram.Shape) []ValidationError {
	v.errors = nil
	seen := make(map[string]int, len(shapes))

	for i, s := range shapes {
		id := s.Meta().ID
		switch first, dup := seen[id]; {
		case id == "":
			v.addError(i, id, SeverityError, "missing id")
		case dup:
			v.addError(i, id, SeverityError, fmt.Sprintf("duplicate id, first used by shape %d", first))
		default:
			seen[id] = i
		}

		v.checkShape(i, s)
	}

	return v.errors
}

func (v *ShapeValidator) checkShape(i int, s diagram.Shape) {
	id := s.Meta().ID
	var coords []float64

	switch sh := s.(type) {
	case diagram.Box:
		coords = []float64{sh.X, sh.Y, sh.Width, sh.Height}
		if sh.Width < 0 || sh.Height < 0 {
			v.addError(i, id, SeverityWarning, "negative extent, drawn as a one-cell box")
		}
	case diagram.Line:
		coords = []float64{sh.X1, sh.Y1, sh.X2, sh.Y2}
	case diagram.Arrow:
		coords = []float64{sh.X1, sh.Y1, sh.X2, sh.Y2}
	case diagram.Text:
		coords = []float64{sh.X, sh.Y}
		if sh.Text == "" {
			v.addError(i, id, SeverityWarning, "empty text draws nothing")
		}
		if strings.ContainsAny(sh.Text, "\n\r\t") {
			v.addError(i, id, SeverityWarning, "text is drawn on one row; control characters take no space")
		}
	}

	for _, c := range coords {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			v.addError(i, id, SeverityError, "non-finite coordinate, drawn at 0")
			break
		}
	}
}

func (v *ShapeValidator) addError(index int, id string, severity Severity, message string) {
	if v.strictMode {
		severity = SeverityError
	}
	v.errors = append(v.errors, ValidationError{
		Severity: severity,
		Index:    index,
		ShapeID:  id,
		Message:  message,
	})
}

// OutputValidator checks rendered text against the serialization rules:
// rows carry no trailing blanks and no control characters.
type OutputValidator struct {
	errors []ValidationError
}

// NewOutputValidator creates a new output validator.
func NewOutputValidator() *OutputValidator {
	return &OutputValidator{}
}

// Validate checks a rendered sketch for serialization errors.
func (v *OutputValidator) Validate(output string) []ValidationError {
	v.errors = nil
	if output == "" {
		return nil
	}

	for y, row := range strings.Split(output, "\n") {
		runes := []rune(row)
		if n := len(runes); n > 0 && runes[n-1] == ' ' {
			v.addError(n-1, y, "trailing blank")
		}
		for x, r := range runes {
			if r == '\t' || r == '\r' {
				v.addError(x, y, fmt.Sprintf("control character %q", r))
			}
		}
	}

	return v.errors
}

func (v *OutputValidator) addError(x, y int, message string) {
	v.errors = append(v.errors, ValidationError{
		Severity: SeverityError,
		Index:    -1,
		X:        x,
		Y:        y,
		Message:  message,
	})
}
