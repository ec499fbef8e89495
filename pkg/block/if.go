package block

import (
	"strings"

	"github.com/walteh/djtmpls/pkg/completion"
	"github.com/walteh/djtmpls/pkg/semtok"
)

// IfBlock is {% if a and not b %}. Operands are not parsed as expressions, each word is
// either a boolean operator or an identifier.
type IfBlock struct {
	base
	Args []semtok.Token
}

func parseIf(info ParseInfo) Block {
	b := &IfBlock{base: base{info: info}}

	offset := info.ArgsStart()
	for _, word := range strings.Split(info.Args, " ") {
		text, cut := cutAtLineBreak(word)
		if text != "" {
			kind := semtok.ClassificationIdentifier
			switch text {
			case "and", "or", "not":
				kind = semtok.ClassificationKeyword
			}
			b.Args = append(b.Args, semtok.NewToken(kind, text, offset))
		}
		if cut {
			break
		}
		offset += len(word) + 1
	}

	return b
}

func (b *IfBlock) Spans() []semtok.Token {
	spans := make([]semtok.Token, 0, len(b.Args)+1)
	spans = append(spans, semtok.NewToken(semtok.ClassificationKeyword, "if", b.info.Start))
	return append(spans, b.Args...)
}

// Completions offers operands after an operator and operators after an operand. The
// last word that starts before position decides, so a cursor at the end of an operand
// gets operators.
func (b *IfBlock) Completions(ctx completion.Context, position int) []completion.Item {
	var last *semtok.Token
	for i := range b.Args {
		if b.Args[i].Range.Offset < position {
			last = &b.Args[i]
		}
	}

	if last == nil || last.Type == semtok.ClassificationKeyword {
		items := []completion.Item{{Label: "not", Kind: completion.KindKeyword}}
		return append(items, completion.VariableItems(ctx)...)
	}

	return completion.NewItems(completion.KindKeyword, "and", "or")
}
