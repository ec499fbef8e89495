package semtok

import (
	"sort"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Encode converts absolute tokens into the relative integer form used by language
// clients: five values per token (delta line, delta start, length, type, modifiers).
// Columns and lengths count UTF-16 code units, the default LSP position encoding.
// Tokens that span a line break are cut at the end of their first line.
func Encode(content string, tokens []Token) []uint32 {
	sorted := make([]Token, len(tokens))
	copy(sorted, tokens)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Range.Offset < sorted[j].Range.Offset
	})

	data := make([]uint32, 0, len(sorted)*5)
	prevLine, prevCol := 0, 0
	for _, tok := range sorted {
		if tok.Range.Length() == 0 || tok.Range.Offset > len(content) {
			continue
		}

		text := tok.Range.Text
		if nl := strings.IndexAny(text, "\r\n"); nl != -1 {
			text = text[:nl]
		}
		if text == "" {
			continue
		}

		line, byteCol := tok.Range.GetLineAndColumn(content)
		col := utf16Len(content[tok.Range.Offset-byteCol : tok.Range.Offset])

		deltaLine := line - prevLine
		deltaCol := col
		if deltaLine == 0 {
			deltaCol = col - prevCol
		}

		data = append(data, uint32(deltaLine), uint32(deltaCol), uint32(utf16Len(text)), uint32(tok.Type), 0)
		prevLine, prevCol = line, col
	}

	return data
}

// utf16Len counts the UTF-16 code units of s, invalid bytes count as one unit each
func utf16Len(s string) int {
	n := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size <= 1 {
			n++
		} else {
			n += utf16.RuneLen(r)
		}
		s = s[size:]
	}
	return n
}
