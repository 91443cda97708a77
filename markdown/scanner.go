// Package markdown finds sketch blocks in Markdown documents and swaps them
// for their rendered drawings.
package markdown

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"asciisketch/canvas"
)

// Fence info strings recognised as sketch blocks.
const (
	LangSketch     = "sketch"      // JSON shape document
	LangSketchYAML = "sketch-yaml" // YAML shape document
)

// ErrBlockModified is returned when a block no longer matches the scanned content.
var ErrBlockModified = errors.New("block content has been modified externally")

// SketchBlock represents a sketch code block found in markdown
type SketchBlock struct {
	Lang        string // sketch or sketch-yaml
	Content     string // block body with the fence indentation removed
	StartLine   int    // line of the opening fence (0-based)
	EndLine     int    // line of the closing fence
	Indent      string // indentation before the opening fence
	ContentHash string // SHA256 of Content
}

// Format returns the importer format name for the block's content.
func (b SketchBlock) Format() string {
	if b.Lang == LangSketchYAML {
		return "yaml"
	}
	return "json"
}

// Scanner finds and extracts sketch blocks from markdown content
type Scanner struct {
	content string
	lines   []string
}

// NewScanner creates a new markdown scanner
func NewScanner(content string) *Scanner {
	return &Scanner{
		content: content,
		lines:   strings.Split(content, "\n"),
	}
}

// UpdateContent updates the scanner's internal content after a successful replacement
func (s *Scanner) UpdateContent(newContent string) {
	s.content = newContent
	s.lines = strings.Split(newContent, "\n")
}

// GetContent returns the current markdown content
func (s *Scanner) GetContent() string {
	return s.content
}

// FindSketchBlocks finds all sketch code blocks in the markdown.
// An unterminated block at the end of the document is ignored.
func (s *Scanner) FindSketchBlocks() []SketchBlock {
	var blocks []SketchBlock
	var current *SketchBlock
	var body []string

	for i, line := range s.lines {
		trimmed := strings.TrimLeft(line, " \t")

		if current == nil {
			if !strings.HasPrefix(trimmed, "```") {
				continue
			}
			lang := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(trimmed, "```")))
			if isSketchLanguage(lang) {
				current = &SketchBlock{
					Lang:      lang,
					StartLine: i,
					Indent:    line[:len(line)-len(trimmed)],
				}
				body = body[:0]
			}
			continue
		}

		if strings.HasPrefix(trimmed, "```") {
			current.EndLine = i
			current.Content = strings.Join(body, "\n")
			current.ContentHash = hashContent(current.Content)
			blocks = append(blocks, *current)
			current = nil
			continue
		}

		body = append(body, strings.TrimPrefix(line, current.Indent))
	}

	return blocks
}

// ValidateBlockUnchanged checks if a block's content matches its original hash
func (s *Scanner) ValidateBlockUnchanged(block SketchBlock) error {
	if err := s.checkBoundaries(block); err != nil {
		return err
	}

	body := make([]string, 0, block.EndLine-block.StartLine-1)
	for i := block.StartLine + 1; i < block.EndLine; i++ {
		body = append(body, strings.TrimPrefix(s.lines[i], block.Indent))
	}

	if hashContent(strings.Join(body, "\n")) != block.ContentHash {
		return fmt.Errorf("%w (hash mismatch at line %d)", ErrBlockModified, block.StartLine+1)
	}
	return nil
}

// ReplaceBlock replaces the whole fenced block, fences included, with the
// given content. Each content line gets the block's indentation. The
// scanner's own content is left untouched; callers apply the result with
// UpdateContent. Blocks found later in the document shift when the line
// count changes, so replace from the last block backwards.
func (s *Scanner) ReplaceBlock(block SketchBlock, newContent string) (string, error) {
	if err := s.checkBoundaries(block); err != nil {
		return "", err
	}

	// Check that the opening fence still has the right language
	trimmedStart := strings.TrimLeft(s.lines[block.StartLine], " \t")
	if lang := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(trimmedStart, "```"))); !strings.HasPrefix(trimmedStart, "```") || lang != block.Lang {
		return "", fmt.Errorf("block start marker has changed at line %d: expected '```%s', found '%s'",
			block.StartLine+1, block.Lang, trimmedStart)
	}

	trimmedEnd := strings.TrimLeft(s.lines[block.EndLine], " \t")
	if !strings.HasPrefix(trimmedEnd, "```") {
		return "", fmt.Errorf("block end marker has changed at line %d: expected '```', found '%s'",
			block.EndLine+1, trimmedEnd)
	}

	if err := s.ValidateBlockUnchanged(block); err != nil {
		return "", err
	}

	replacement := strings.Split(newContent, "\n")
	for i, line := range replacement {
		if line != "" {
			replacement[i] = block.Indent + line
		}
	}

	newLines := make([]string, 0, len(s.lines)-(block.EndLine-block.StartLine+1)+len(replacement))
	newLines = append(newLines, s.lines[:block.StartLine]...)
	newLines = append(newLines, replacement...)
	newLines = append(newLines, s.lines[block.EndLine+1:]...)

	return strings.Join(newLines, "\n"), nil
}

func (s *Scanner) checkBoundaries(block SketchBlock) error {
	if block.StartLine < 0 || block.EndLine >= len(s.lines) || block.StartLine >= block.EndLine {
		return fmt.Errorf("invalid block boundaries: start=%d, end=%d, total lines=%d",
			block.StartLine, block.EndLine, len(s.lines))
	}
	return nil
}

// RenderedBlock wraps a drawing in a ```text fence. The result carries no
// indentation; ReplaceBlock applies the source block's.
func RenderedBlock(drawing string) string {
	var sb strings.Builder
	sb.WriteString("```text\n")
	if drawing != "" {
		sb.WriteString(drawing)
		sb.WriteByte('\n')
	}
	sb.WriteString("```")
	return sb.String()
}

// isSketchLanguage checks if a fence info string names a sketch block
func isSketchLanguage(lang string) bool {
	switch lang {
	case LangSketch, LangSketchYAML:
		return true
	default:
		return false
	}
}

func hashContent(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// FormatBlockInfo returns a human-readable description of a block
func FormatBlockInfo(block SketchBlock, index int) string {
	// First meaningful line of content as a preview
	preview := ""
	for _, line := range strings.Split(block.Content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "[" || trimmed == "{" || trimmed == "---" {
			continue
		}
		preview = trimmed
		if canvas.StringWidth(preview) > 50 {
			preview = canvas.TruncateToWidth(preview, 47) + "..."
		}
		break
	}

	return fmt.Sprintf("%d. %s (line %d): %s", index+1, block.Lang, block.StartLine+1, preview)
}
