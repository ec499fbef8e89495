package block

import (
	"github.com/walteh/djtmpls/pkg/completion"
	"github.com/walteh/djtmpls/pkg/semtok"
	"github.com/walteh/djtmpls/pkg/variable"
)

// VariablesBlock is a command whose arguments are all variable expressions. Limit caps
// how many are parsed, zero means no cap.
type VariablesBlock struct {
	base
	Args  []*variable.Variable
	Limit int
}

func newVariablesBlock(info ParseInfo, limit int) VariablesBlock {
	return VariablesBlock{
		base:  base{info: info},
		Args:  parseVariables(info, limit),
		Limit: limit,
	}
}

func (b *VariablesBlock) Spans() []semtok.Token {
	return append([]semtok.Token{b.commandSpan()}, variableSpans(b.Args)...)
}

func (b *VariablesBlock) Completions(ctx completion.Context, position int) []completion.Item {
	return variableCompletions(ctx, position, b.Args, b.Limit)
}

// IfEqualBlock is {% ifequal a b %} or {% ifnotequal a b %}
type IfEqualBlock struct{ VariablesBlock }

// MultiVariableBlock is a command taking any number of variables (firstof, ifchanged)
type MultiVariableBlock struct{ VariablesBlock }

// WidthRatioBlock is {% widthratio value max_value max_width %}
type WidthRatioBlock struct{ VariablesBlock }

func parseIfEqual(info ParseInfo) Block {
	return &IfEqualBlock{newVariablesBlock(info, 2)}
}

func parseMultiVariable(info ParseInfo) Block {
	return &MultiVariableBlock{newVariablesBlock(info, 0)}
}

func parseWidthRatio(info ParseInfo) Block {
	return &WidthRatioBlock{newVariablesBlock(info, 3)}
}
