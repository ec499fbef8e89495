/*
Classifications:
---------------
This file defines the core types used for classifying the contents of a tag.

	+----------------+     +-----------+
	| Classification | --> | Position  |
	+----------------+     +-----------+
	      |                     |
	      v                     v
	[Keyword,             [Offset, Text]
	 Identifier,           absolute into
	 Literal,              the parsed text
	 etc.]

Each token carries both its classification and the text it covers.
*/
package semtok

import (
	"github.com/walteh/djtmpls/pkg/position"
)

// Classification is the highlighting kind of a span inside a tag
type Classification uint32

const (
	// ClassificationNone marks text that carries no highlighting
	ClassificationNone Classification = iota

	// ClassificationKeyword marks commands and sub-keywords (e.g., for, in, and)
	ClassificationKeyword

	// ClassificationExcludedCode marks argument text the parser does not understand
	ClassificationExcludedCode

	// ClassificationIdentifier marks variable, attribute and filter names
	ClassificationIdentifier

	// ClassificationLiteral marks quoted string constants
	ClassificationLiteral

	// ClassificationNumber marks numeric constants (e.g., 0, 1.5)
	ClassificationNumber

	// ClassificationDot marks the dot between the parts of a lookup (e.g., user.name)
	ClassificationDot
)

// Token is one classified span of text
type Token struct {
	// Type is the classification of the span
	Type Classification

	// Range is the span itself, its offset is absolute
	Range position.RawPosition
}

// NewToken builds a token covering text at offset
func NewToken(kind Classification, text string, offset int) Token {
	return Token{
		Type:  kind,
		Range: position.NewBasicPosition(text, offset),
	}
}

// Shift returns a copy of the token moved by delta bytes
func (t Token) Shift(delta int) Token {
	return Token{
		Type:  t.Type,
		Range: t.Range.Shift(delta),
	}
}

func (t Token) String() string {
	return t.Type.String() + "(" + t.Range.String() + ")"
}

// String returns a human-readable representation of the classification
func (c Classification) String() string {
	switch c {
	case ClassificationNone:
		return "none"
	case ClassificationKeyword:
		return "keyword"
	case ClassificationExcludedCode:
		return "excluded"
	case ClassificationIdentifier:
		return "identifier"
	case ClassificationLiteral:
		return "literal"
	case ClassificationNumber:
		return "number"
	case ClassificationDot:
		return "dot"
	default:
		return "unknown"
	}
}

// Legend lists the classifications in the order used by Encode, the same order a
// language client expects in its token legend.
func Legend() []string {
	return []string{
		ClassificationNone.String(),
		ClassificationKeyword.String(),
		ClassificationExcludedCode.String(),
		ClassificationIdentifier.String(),
		ClassificationLiteral.String(),
		ClassificationNumber.String(),
		ClassificationDot.String(),
	}
}
