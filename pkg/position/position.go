package position

import (
	"fmt"
	"strings"

	"github.com/apparentlymart/go-textseg/v13/textseg"
)

// RawPosition represents a position in the source text
type RawPosition struct {
	// Offset is the byte offset in the source text
	Offset int
	// Text is the actual text at this position
	Text string
}

// Length returns the length of the text at this position
func (p RawPosition) Length() int {
	return len(p.Text)
}

// End returns the offset just past the last byte of the text
func (p RawPosition) End() int {
	return p.Offset + len(p.Text)
}

func NewBasicPosition(text string, offset int) RawPosition {
	return RawPosition{Text: text, Offset: offset}
}

// NewOptionalPosition is like NewBasicPosition but returns a pointer, the form used for
// positions that may be absent.
func NewOptionalPosition(text string, offset int) *RawPosition {
	return &RawPosition{Text: text, Offset: offset}
}

func NewRawPositionFromLineAndColumn(line, col int, text, fileText string) RawPosition {
	split := strings.Split(fileText, "\n")
	offset := 0
	for i := 0; i < line && i < len(split); i++ {
		offset += len(split[i]) + 1
	}
	offset += col
	return RawPosition{Text: text, Offset: offset}
}

// Contains reports whether offset falls inside the text, counting the offset just past the
// end as inside so a cursor at the end of a word still belongs to it.
func (p RawPosition) Contains(offset int) bool {
	return offset >= p.Offset && offset <= p.Offset+len(p.Text)
}

// Shift returns a copy of the position moved by delta bytes
func (p RawPosition) Shift(delta int) RawPosition {
	return RawPosition{Text: p.Text, Offset: p.Offset + delta}
}

// GetLineAndColumn calculates the line and column number for a given position in the text
// Returns zero-based line and column numbers
func (p RawPosition) GetLineAndColumn(text string) (line, col int) {
	if p.Offset == 0 {
		return 0, 0
	}

	end := p.Offset
	if end > len(text) {
		end = len(text)
	}

	lastNewline := -1
	for i := 0; i < end; i++ {
		if text[i] == '\n' {
			line++
			lastNewline = i
		}
	}

	col = p.Offset - lastNewline - 1

	return line, col
}

// VisualColumn converts a byte column on a single line into the column a reader sees:
// grapheme clusters count as one cell and tabs advance to the next multiple of tabWidth.
func VisualColumn(line string, byteCol, tabWidth int) int {
	if byteCol > len(line) {
		byteCol = len(line)
	}
	if tabWidth <= 0 {
		tabWidth = 1
	}

	col := 0
	rest := []byte(line[:byteCol])
	for len(rest) > 0 {
		adv, cluster, err := textseg.ScanGraphemeClusters(rest, true)
		if err != nil || adv == 0 {
			// not valid utf8 at this point, count the remaining bytes one by one
			return col + len(rest)
		}
		if len(cluster) == 1 && cluster[0] == '\t' {
			col += tabWidth - col%tabWidth
		} else {
			col++
		}
		rest = rest[adv:]
	}
	return col
}

// LineAt returns the full line of text that contains offset
func LineAt(text string, offset int) string {
	if offset > len(text) {
		offset = len(text)
	}
	start := strings.LastIndexByte(text[:offset], '\n') + 1
	end := strings.IndexByte(text[offset:], '\n')
	if end == -1 {
		return text[start:]
	}
	return text[start : offset+end]
}

func (p RawPosition) String() string {
	return fmt.Sprintf("%s@%d", p.Text, p.Offset)
}
