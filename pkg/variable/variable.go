// Package variable parses Django variable expressions: a name, string or number followed
// by any number of filters, as in user.name|default:"anonymous"|upper.
package variable

import (
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/walteh/djtmpls/pkg/completion"
	"github.com/walteh/djtmpls/pkg/position"
	"github.com/walteh/djtmpls/pkg/semtok"
)

// Kind says what a Value holds
type Kind int

const (
	KindVariable Kind = iota
	KindString
	KindNumber
)

// Value is a lookup path, a quoted string or a number
type Value struct {
	Kind  Kind
	Range position.RawPosition
}

// Filter is one |name:arg section of an expression. Name may be empty text when the
// user has only typed the pipe.
type Filter struct {
	Name  position.RawPosition
	Colon *position.RawPosition
	Arg   *Value
}

// Variable is a parsed expression. All offsets are absolute.
type Variable struct {
	Text       string
	Start      int
	Expression *Value
	Filters    []*Filter
}

// TrimDelimitedText strips {% %} or {{ }} delimiters and the whitespace inside them. It
// returns the remaining text and its offset within text, or false when nothing is left.
func TrimDelimitedText(text string) (string, int, bool) {
	start, end := 0, len(text)

	for _, delims := range [][2]string{{"{%", "%}"}, {"{{", "}}"}} {
		if strings.HasPrefix(text, delims[0]) {
			start = len(delims[0])
			if len(text) >= len(delims[0])+len(delims[1]) && strings.HasSuffix(text, delims[1]) {
				end = len(text) - len(delims[1])
			}
			break
		}
	}

	inner := text[start:end]
	left := strings.TrimLeftFunc(inner, unicode.IsSpace)
	start += len(inner) - len(left)

	trimmed := strings.TrimRightFunc(left, unicode.IsSpace)
	if trimmed == "" {
		return "", 0, false
	}
	return trimmed, start, true
}

// Parse parses text as a variable expression whose first byte sits at offset start.
// Parsing stops silently at the first token that does not fit the grammar.
func Parse(text string, start int) *Variable {
	p := &parser{
		text:   text,
		start:  start,
		tokens: lex(text),
	}

	v := &Variable{
		Text:       text,
		Start:      start,
		Expression: p.value(),
	}

	for p.peek(tokPipe) {
		pipe := p.next()
		f := &Filter{
			Name: position.NewBasicPosition("", p.abs(pipe)+1),
		}
		if p.peek(tokIdent) {
			f.Name = p.pos(p.next())
		}
		if p.peek(tokColon) {
			colon := p.pos(p.next())
			f.Colon = &colon
			f.Arg = p.value()
		}
		v.Filters = append(v.Filters, f)
	}

	return v
}

// End returns the offset just past the whole text, filters included
func (v *Variable) End() int {
	return v.Start + len(v.Text)
}

// Spans classifies the expression and its filters, moving every span by adjust
func (v *Variable) Spans(adjust int) []semtok.Token {
	var spans []semtok.Token
	if v.Expression != nil {
		spans = append(spans, v.Expression.Spans(adjust)...)
	}
	for _, f := range v.Filters {
		spans = append(spans, f.Spans(adjust)...)
	}
	return spans
}

// Completions offers what fits at position: variables or attributes inside the
// expression, filter names inside a filter, variables inside a filter argument.
func (v *Variable) Completions(ctx completion.Context, pos int) []completion.Item {
	if v.Expression == nil {
		return completion.VariableItems(ctx)
	}

	expr := v.Expression.Range
	if pos <= expr.End() {
		if v.Expression.Kind == KindVariable && pos > expr.Offset && expr.Text[pos-expr.Offset-1] == '.' {
			return completion.MemberItems(ctx, expr.Text[:pos-expr.Offset-1])
		}
		return completion.VariableItems(ctx)
	}

	for _, f := range v.Filters {
		if f.Name.Contains(pos) {
			return completion.FilterItems(ctx)
		}
		if f.Colon == nil || pos <= f.Colon.Offset {
			continue
		}
		if f.Arg == nil {
			if pos == f.Colon.End() {
				return completion.VariableItems(ctx)
			}
			continue
		}
		if pos <= f.Arg.Range.End() {
			return completion.VariableItems(ctx)
		}
	}

	return nil
}

// Spans classifies the filter name and its argument
func (f *Filter) Spans(adjust int) []semtok.Token {
	var spans []semtok.Token
	if f.Name.Length() > 0 {
		spans = append(spans, semtok.Token{Type: semtok.ClassificationIdentifier, Range: f.Name.Shift(adjust)})
	}
	if f.Arg != nil {
		spans = append(spans, f.Arg.Spans(adjust)...)
	}
	return spans
}

// Spans classifies the value; lookup paths are split into names and dots
func (val *Value) Spans(adjust int) []semtok.Token {
	switch val.Kind {
	case KindString:
		return []semtok.Token{{Type: semtok.ClassificationLiteral, Range: val.Range.Shift(adjust)}}
	case KindNumber:
		return []semtok.Token{{Type: semtok.ClassificationNumber, Range: val.Range.Shift(adjust)}}
	}

	var spans []semtok.Token
	offset := val.Range.Offset + adjust
	for i, part := range strings.Split(val.Range.Text, ".") {
		if i > 0 {
			spans = append(spans, semtok.NewToken(semtok.ClassificationDot, ".", offset))
			offset++
		}
		if part != "" {
			spans = append(spans, semtok.NewToken(semtok.ClassificationIdentifier, part, offset))
		}
		offset += len(part)
	}
	return spans
}

type parser struct {
	text   string
	start  int
	tokens []lexer.Token
	idx    int
}

func (p *parser) peek(typ lexer.TokenType) bool {
	return p.idx < len(p.tokens) && p.tokens[p.idx].Type == typ
}

func (p *parser) next() lexer.Token {
	tok := p.tokens[p.idx]
	p.idx++
	return tok
}

func (p *parser) abs(tok lexer.Token) int {
	return p.start + tok.Pos.Offset
}

func (p *parser) pos(tok lexer.Token) position.RawPosition {
	return position.NewBasicPosition(tok.Value, p.abs(tok))
}

// value parses a string, a number or a dotted lookup path. A trailing dot stays part of
// the path so completion can tell the user is asking for attributes.
func (p *parser) value() *Value {
	switch {
	case p.peek(tokString):
		return &Value{Kind: KindString, Range: p.pos(p.next())}
	case p.peek(tokNumber):
		return &Value{Kind: KindNumber, Range: p.pos(p.next())}
	case !p.peek(tokIdent):
		return nil
	}

	first := p.next()
	from := first.Pos.Offset
	to := from + len(first.Value)

	for p.peek(tokDot) && p.tokens[p.idx].Pos.Offset == to {
		p.next()
		to++
		if (p.peek(tokIdent) || p.peek(tokNumber)) && p.tokens[p.idx].Pos.Offset == to {
			part := p.next()
			to += len(part.Value)
			continue
		}
		break
	}

	return &Value{
		Kind:  KindVariable,
		Range: position.NewBasicPosition(p.text[from:to], p.start+from),
	}
}
