package block

import (
	"strings"

	"github.com/walteh/djtmpls/pkg/completion"
	"github.com/walteh/djtmpls/pkg/semtok"
	"github.com/walteh/djtmpls/pkg/variable"
)

// filterPrefix turns the filter chain of {% filter lower|escape %} into a complete
// variable expression so the variable grammar can parse it
const filterPrefix = "var|"

// FilterBlock is {% filter f1|f2:arg %}
type FilterBlock struct {
	base
	// Expression is filterPrefix followed by the arguments, offset so that its filters
	// land on their real positions once shifted back by len(filterPrefix)
	Expression *variable.Variable
}

func parseFilter(info ParseInfo) Block {
	args := strings.TrimLeft(info.Args, " ")
	lead := len(info.Args) - len(args)
	args, _ = cutAtLineBreak(args)

	return &FilterBlock{
		base:       base{info: info},
		Expression: variable.Parse(filterPrefix+args, info.ArgsStart()+lead),
	}
}

func (b *FilterBlock) Spans() []semtok.Token {
	spans := []semtok.Token{b.commandSpan()}
	for _, f := range b.Expression.Filters {
		spans = append(spans, f.Spans(-len(filterPrefix))...)
	}
	return spans
}

func (b *FilterBlock) Completions(ctx completion.Context, position int) []completion.Item {
	return b.Expression.Completions(ctx, position+len(filterPrefix))
}
