package block

import (
	"sort"
	"strings"

	"github.com/walteh/djtmpls/pkg/completion"
	"github.com/walteh/djtmpls/pkg/position"
	"github.com/walteh/djtmpls/pkg/semtok"
	"github.com/walteh/djtmpls/pkg/variable"
)

// ForBlock is {% for a, b in iterable reversed %}
type ForBlock struct {
	base
	// Targets are the loop variables in the order written
	Targets []position.RawPosition
	// In is the in keyword, nil when it has not been typed yet
	In *position.RawPosition
	// Iterable is everything between in and reversed, nil when empty
	Iterable *variable.Variable
	// Reversed is the reversed keyword, nil when absent
	Reversed *position.RawPosition
}

func parseFor(info ParseInfo) Block {
	b := &ForBlock{base: base{info: info}}

	words := strings.Split(info.Args, " ")
	offset := info.ArgsStart()

	i := 0
	for ; i < len(words); i++ {
		word := words[i]
		text, cut := cutAtLineBreak(word)
		if text == "in" {
			b.In = position.NewOptionalPosition(text, offset)
			if cut {
				return b
			}
			offset += len(word) + 1
			i++
			break
		}

		b.addTargets(text, offset)
		if cut {
			return b
		}
		offset += len(word) + 1
	}

	if b.In == nil {
		return b
	}

	iterStart, iterEnd := -1, -1
	for ; i < len(words); i++ {
		word := words[i]
		text, cut := cutAtLineBreak(word)
		if text == "reversed" {
			b.Reversed = position.NewOptionalPosition(text, offset)
			break
		}
		if text != "" {
			if iterStart == -1 {
				iterStart = offset
			}
			iterEnd = offset + len(text)
		}
		if cut {
			break
		}
		offset += len(word) + 1
	}

	if iterStart != -1 {
		argsStart := info.ArgsStart()
		b.Iterable = variable.Parse(info.Args[iterStart-argsStart:iterEnd-argsStart], iterStart)
	}

	return b
}

// addTargets records the comma separated loop variables in word
func (b *ForBlock) addTargets(word string, offset int) {
	for _, name := range strings.Split(word, ",") {
		if name != "" && name != "reversed" {
			b.Targets = append(b.Targets, position.NewBasicPosition(name, offset))
		}
		offset += len(name) + 1
	}
}

// Variables returns the distinct loop variable names, sorted
func (b *ForBlock) Variables() []string {
	seen := make(map[string]bool, len(b.Targets))
	var names []string
	for _, t := range b.Targets {
		if seen[t.Text] {
			continue
		}
		seen[t.Text] = true
		names = append(names, t.Text)
	}
	sort.Strings(names)
	return names
}

func (b *ForBlock) Spans() []semtok.Token {
	spans := []semtok.Token{b.commandSpan()}
	for _, t := range b.Targets {
		spans = append(spans, semtok.Token{Type: semtok.ClassificationIdentifier, Range: t})
	}
	if b.In != nil {
		spans = append(spans, semtok.Token{Type: semtok.ClassificationKeyword, Range: *b.In})
	}
	if b.Iterable != nil {
		spans = append(spans, b.Iterable.Spans(0)...)
	}
	if b.Reversed != nil {
		spans = append(spans, semtok.Token{Type: semtok.ClassificationKeyword, Range: *b.Reversed})
	}
	return spans
}

func (b *ForBlock) Completions(ctx completion.Context, position int) []completion.Item {
	if b.In == nil || position < b.In.Offset {
		// still naming the loop variables
		return nil
	}

	if b.Iterable != nil && position > b.In.End() {
		items := b.Iterable.Completions(ctx, position)
		if position > b.Iterable.End() && b.Reversed == nil {
			items = append(items, completion.Item{Label: "reversed", Kind: completion.KindKeyword})
		}
		return items
	}

	return b.base.Completions(ctx, position)
}
