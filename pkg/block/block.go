/*
Package block parses the contents of a single Django block tag.

	 {% for x in items reversed %}
	    |   |  |    |       |
	    |   |  |    |       +-- keyword
	    |   |  |    +---------- iterable (variable expression)
	    |   |  +--------------- keyword
	    |   +------------------ loop target
	    +---------------------- command, picks the grammar

The command selects a parse function from a fixed registry; commands the registry does
not know parse as an UnknownBlock. Every block reports classification spans for
highlighting and completion items for a cursor offset. All offsets are absolute.

Parsing is lenient. Arguments are split on single spaces with no regard for quotes, a
line break inside an argument ends the tag, and anything that does not fit a grammar is
dropped rather than reported.
*/
package block

import (
	"strings"

	"github.com/walteh/djtmpls/pkg/completion"
	"github.com/walteh/djtmpls/pkg/position"
	"github.com/walteh/djtmpls/pkg/semtok"
	"github.com/walteh/djtmpls/pkg/variable"
)

// ParseInfo is the split form of a tag handed to a block parser
type ParseInfo struct {
	// Command is the first word of the tag
	Command string
	// Args is everything after Command, including the separating space
	Args string
	// Start is the absolute offset of the first byte of Command
	Start int
}

// ArgsStart returns the absolute offset of the first byte of Args
func (p ParseInfo) ArgsStart() int {
	return p.Start + len(p.Command)
}

// CommandPosition returns the position of the command word
func (p ParseInfo) CommandPosition() position.RawPosition {
	return position.NewBasicPosition(p.Command, p.Start)
}

// Block is one parsed tag
type Block interface {
	// Info returns what the block was parsed from
	Info() ParseInfo
	// Spans returns the classified spans of the tag ordered by offset
	Spans() []semtok.Token
	// Completions returns the completion items that fit at position
	Completions(ctx completion.Context, position int) []completion.Item
	// Variables returns the names the block binds for its body
	Variables() []string
}

// base carries the default behavior shared by every block
type base struct {
	info ParseInfo
}

func (b *base) Info() ParseInfo {
	return b.info
}

func (b *base) Spans() []semtok.Token {
	return []semtok.Token{b.commandSpan()}
}

func (b *base) Completions(ctx completion.Context, _ int) []completion.Item {
	return completion.VariableItems(ctx)
}

func (b *base) Variables() []string {
	return nil
}

func (b *base) commandSpan() semtok.Token {
	return semtok.Token{Type: semtok.ClassificationKeyword, Range: b.info.CommandPosition()}
}

// cutAtLineBreak returns word up to its first line break and whether one was found. A
// line break inside a tag means the tag was never closed, so nothing after it belongs
// to the block.
func cutAtLineBreak(word string) (string, bool) {
	if i := strings.IndexAny(word, "\r\n"); i != -1 {
		return word[:i], true
	}
	return word, false
}

// parseVariables parses each space separated argument as a variable expression, keeping
// at most limit of them when limit is positive.
func parseVariables(info ParseInfo, limit int) []*variable.Variable {
	var vars []*variable.Variable
	offset := info.ArgsStart()
	for _, word := range strings.Split(info.Args, " ") {
		text, cut := cutAtLineBreak(word)
		if text != "" {
			vars = append(vars, variable.Parse(text, offset))
			if len(vars) == limit {
				break
			}
		}
		if cut {
			break
		}
		offset += len(word) + 1
	}
	return vars
}

// variableCompletions asks the argument under position for completions and falls back
// to the known variables while more arguments may still be typed.
func variableCompletions(ctx completion.Context, position int, vars []*variable.Variable, limit int) []completion.Item {
	for i, v := range vars {
		if position < v.Start {
			continue
		}
		if i != len(vars)-1 && position >= vars[i+1].Start {
			continue
		}
		if items := v.Completions(ctx, position); len(items) != 0 {
			return items
		}
	}

	if limit <= 0 || len(vars) < limit {
		return completion.VariableItems(ctx)
	}
	return nil
}

func variableSpans(vars []*variable.Variable) []semtok.Token {
	var spans []semtok.Token
	for _, v := range vars {
		spans = append(spans, v.Spans(0)...)
	}
	return spans
}
