package semtok_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/walteh/djtmpls/pkg/semtok"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		tokens   []semtok.Token
		expected []uint32
	}{
		{
			name:     "test_empty",
			content:  "{% %}",
			tokens:   nil,
			expected: []uint32{},
		},
		{
			name:    "test_single_line",
			content: "{% for x in items %}",
			tokens: []semtok.Token{
				semtok.NewToken(semtok.ClassificationKeyword, "for", 3),
				semtok.NewToken(semtok.ClassificationKeyword, "in", 9),
				semtok.NewToken(semtok.ClassificationIdentifier, "items", 12),
			},
			expected: []uint32{
				0, 3, 3, uint32(semtok.ClassificationKeyword), 0,
				0, 6, 2, uint32(semtok.ClassificationKeyword), 0,
				0, 3, 5, uint32(semtok.ClassificationIdentifier), 0,
			},
		},
		{
			name:    "test_multi_line_unsorted_input",
			content: "{% if a %}\n  {% debug %}",
			tokens: []semtok.Token{
				semtok.NewToken(semtok.ClassificationKeyword, "debug", 16),
				semtok.NewToken(semtok.ClassificationKeyword, "if", 3),
				semtok.NewToken(semtok.ClassificationIdentifier, "a", 6),
			},
			expected: []uint32{
				0, 3, 2, uint32(semtok.ClassificationKeyword), 0,
				0, 3, 1, uint32(semtok.ClassificationIdentifier), 0,
				1, 5, 5, uint32(semtok.ClassificationKeyword), 0,
			},
		},
		{
			name:    "test_token_cut_at_line_break",
			content: "{% blah one\ntwo",
			tokens: []semtok.Token{
				semtok.NewToken(semtok.ClassificationKeyword, "blah", 3),
				semtok.NewToken(semtok.ClassificationExcludedCode, " one\ntwo", 7),
			},
			expected: []uint32{
				0, 3, 4, uint32(semtok.ClassificationKeyword), 0,
				0, 4, 4, uint32(semtok.ClassificationExcludedCode), 0,
			},
		},
		{
			name:    "test_utf16_columns",
			content: "é {{ x }}",
			tokens: []semtok.Token{
				semtok.NewToken(semtok.ClassificationIdentifier, "x", 6),
			},
			expected: []uint32{
				0, 5, 1, uint32(semtok.ClassificationIdentifier), 0,
			},
		},
		{
			name:    "test_utf16_surrogate_pairs",
			content: "😀 {% if '😀' %}",
			tokens: []semtok.Token{
				semtok.NewToken(semtok.ClassificationKeyword, "if", 8),
				semtok.NewToken(semtok.ClassificationLiteral, "'😀'", 11),
			},
			expected: []uint32{
				0, 6, 2, uint32(semtok.ClassificationKeyword), 0,
				0, 3, 4, uint32(semtok.ClassificationLiteral), 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := semtok.Encode(tt.content, tt.tokens)
			assert.Equal(t, tt.expected, got, "encoded tokens should match")
		})
	}
}

func TestClassificationString(t *testing.T) {
	assert.Equal(t, "keyword", semtok.ClassificationKeyword.String())
	assert.Equal(t, "excluded", semtok.ClassificationExcludedCode.String())
	assert.Equal(t, "unknown", semtok.Classification(99).String())
	assert.Len(t, semtok.Legend(), 7)
	assert.Equal(t, "dot", semtok.Legend()[semtok.ClassificationDot])
}

func TestTokenShift(t *testing.T) {
	tok := semtok.NewToken(semtok.ClassificationIdentifier, "upper", 14)

	shifted := tok.Shift(-4)

	assert.Equal(t, semtok.NewToken(semtok.ClassificationIdentifier, "upper", 10), shifted)
	assert.Equal(t, 14, tok.Range.Offset, "original token is unchanged")
	assert.Equal(t, "identifier(upper@10)", shifted.String())
}
