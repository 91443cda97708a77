package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = "# Notes\n" +
	"\n" +
	"```sketch\n" +
	"[{\"type\": \"box\", \"id\": \"a\", \"x\": 0, \"y\": 0, \"width\": 40, \"height\": 20}]\n" +
	"```\n" +
	"\n" +
	"```go\n" +
	"fmt.Println(\"not a sketch\")\n" +
	"```\n" +
	"\n" +
	"- item\n" +
	"  ```sketch-yaml\n" +
	"  - type: text\n" +
	"    id: t\n" +
	"    text: hi\n" +
	"  ```\n"

func TestFindSketchBlocks(t *testing.T) {
	blocks := NewScanner(sampleDoc).FindSketchBlocks()
	require.Len(t, blocks, 2)

	first := blocks[0]
	assert.Equal(t, LangSketch, first.Lang)
	assert.Equal(t, "json", first.Format())
	assert.Equal(t, 2, first.StartLine)
	assert.Equal(t, 4, first.EndLine)
	assert.Equal(t, "", first.Indent)
	assert.True(t, strings.HasPrefix(first.Content, `[{"type": "box"`))
	assert.Len(t, first.ContentHash, 64)

	second := blocks[1]
	assert.Equal(t, LangSketchYAML, second.Lang)
	assert.Equal(t, "yaml", second.Format())
	assert.Equal(t, "  ", second.Indent)
	assert.Equal(t, "- type: text\n  id: t\n  text: hi", second.Content)
}

func TestFindSketchBlocks_EdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"no blocks", "just text\n", 0},
		{"unterminated", "```sketch\n[]\n", 0},
		{"upper-case info", "```SKETCH\n[]\n```\n", 1},
		{"empty body", "```sketch\n```\n", 1},
		{"other languages", "```mermaid\ngraph TD\n```\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, NewScanner(tt.content).FindSketchBlocks(), tt.want)
		})
	}
}

func TestReplaceBlock(t *testing.T) {
	s := NewScanner(sampleDoc)
	blocks := s.FindSketchBlocks()
	require.Len(t, blocks, 2)

	// Last block first keeps earlier line numbers valid.
	out, err := s.ReplaceBlock(blocks[1], RenderedBlock("hi"))
	require.NoError(t, err)
	s.UpdateContent(out)

	out, err = s.ReplaceBlock(blocks[0], RenderedBlock("+-+\n+-+"))
	require.NoError(t, err)

	assert.Contains(t, out, "# Notes\n\n```text\n+-+\n+-+\n```\n\n```go\n")
	assert.Contains(t, out, "- item\n  ```text\n  hi\n  ```\n")
	assert.NotContains(t, out, "```sketch")
	assert.Empty(t, NewScanner(out).FindSketchBlocks())
}

func TestReplaceBlock_Modified(t *testing.T) {
	blocks := NewScanner(sampleDoc).FindSketchBlocks()
	require.NotEmpty(t, blocks)

	edited := strings.Replace(sampleDoc, `"width": 40`, `"width": 50`, 1)
	_, err := NewScanner(edited).ReplaceBlock(blocks[0], RenderedBlock(""))
	assert.ErrorIs(t, err, ErrBlockModified)

	moved := "intro\n" + sampleDoc
	_, err = NewScanner(moved).ReplaceBlock(blocks[0], RenderedBlock(""))
	assert.Error(t, err)

	_, err = NewScanner("short").ReplaceBlock(blocks[0], RenderedBlock(""))
	assert.Error(t, err)
}

func TestRenderedBlock(t *testing.T) {
	assert.Equal(t, "```text\n```", RenderedBlock(""))
	assert.Equal(t, "```text\n\n  +-+\n```", RenderedBlock("\n  +-+"))
}

func TestFormatBlockInfo(t *testing.T) {
	blocks := NewScanner(sampleDoc).FindSketchBlocks()
	require.Len(t, blocks, 2)

	assert.Equal(t, "2. sketch-yaml (line 12): - type: text", FormatBlockInfo(blocks[1], 1))

	long := SketchBlock{Lang: LangSketch, Content: "[\n" + strings.Repeat("x", 80)}
	info := FormatBlockInfo(long, 0)
	assert.Equal(t, "1. sketch (line 1): "+strings.Repeat("x", 47)+"...", info)
}
