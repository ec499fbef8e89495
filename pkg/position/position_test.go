package position_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/walteh/djtmpls/pkg/position"
)

func TestGetLineAndColumn(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		offset   int
		wantLine int
		wantCol  int
	}{
		{
			name:     "empty text",
			text:     "",
			offset:   0,
			wantLine: 0,
			wantCol:  0,
		},
		{
			name:     "single line, middle position",
			text:     "Hello, World!",
			offset:   7,
			wantLine: 0,
			wantCol:  7,
		},
		{
			name:     "multiple lines, second line",
			text:     "Hello\nWorld\nTest zzz",
			offset:   8,
			wantLine: 1,
			wantCol:  2,
		},
		{
			name:     "block on third line",
			text:     "{% load humanize %}\nAddress:\n  {% for x in items %}",
			offset:   34,
			wantLine: 2,
			wantCol:  5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := position.NewBasicPosition("", tt.offset)
			gotLine, gotCol := pos.GetLineAndColumn(tt.text)
			assert.Equal(t, tt.wantLine, gotLine, "line should match")
			assert.Equal(t, tt.wantCol, gotCol, "column should match")
		})
	}
}

func TestContains(t *testing.T) {
	pos := position.NewBasicPosition("items", 12)

	assert.False(t, pos.Contains(11), "before start")
	assert.True(t, pos.Contains(12), "at start")
	assert.True(t, pos.Contains(15), "middle")
	assert.True(t, pos.Contains(17), "just past the end counts as inside")
	assert.False(t, pos.Contains(18), "after end")
}

func TestVisualColumn(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		byteCol  int
		tabWidth int
		want     int
	}{
		{
			name:     "ascii",
			line:     "{% if a %}",
			byteCol:  3,
			tabWidth: 4,
			want:     3,
		},
		{
			name:     "leading tab",
			line:     "\t{% if a %}",
			byteCol:  4,
			tabWidth: 4,
			want:     7,
		},
		{
			name:     "multibyte cluster",
			line:     "é {% if a %}",
			byteCol:  len("é "),
			tabWidth: 4,
			want:     2,
		},
		{
			name:     "column past end is clamped",
			line:     "ab",
			byteCol:  10,
			tabWidth: 8,
			want:     2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, position.VisualColumn(tt.line, tt.byteCol, tt.tabWidth))
		})
	}
}

func TestLineAt(t *testing.T) {
	text := "first\n{% if a %}\nlast"

	assert.Equal(t, "first", position.LineAt(text, 2))
	assert.Equal(t, "{% if a %}", position.LineAt(text, 8))
	assert.Equal(t, "last", position.LineAt(text, len(text)))
}
