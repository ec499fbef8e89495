package block

import (
	"github.com/walteh/djtmpls/pkg/completion"
	"github.com/walteh/djtmpls/pkg/position"
	"github.com/walteh/djtmpls/pkg/semtok"
)

// UnknownBlock is any command without a grammar of its own. Its arguments are kept as
// one opaque span.
type UnknownBlock struct {
	base
}

func parseUnknown(info ParseInfo) Block {
	b := newUnknown(info)
	return &b
}

func newUnknown(info ParseInfo) UnknownBlock {
	return UnknownBlock{base: base{info: info}}
}

func (b *UnknownBlock) Spans() []semtok.Token {
	spans := []semtok.Token{b.commandSpan()}
	if len(b.info.Args) > 0 {
		spans = append(spans, semtok.Token{
			Type:  semtok.ClassificationExcludedCode,
			Range: position.NewBasicPosition(b.info.Args, b.info.ArgsStart()),
		})
	}
	return spans
}

func (b *UnknownBlock) Completions(completion.Context, int) []completion.Item {
	return nil
}

// The commands below have no grammar yet and behave exactly like an UnknownBlock; they
// are separate types so callers can already tell them apart.

type CycleBlock struct{ UnknownBlock }

type SsiBlock struct{ UnknownBlock }

type NowBlock struct{ UnknownBlock }

type RegroupBlock struct{ UnknownBlock }

type WithBlock struct{ UnknownBlock }

type UrlBlock struct{ UnknownBlock }

func parseCycle(info ParseInfo) Block   { return &CycleBlock{newUnknown(info)} }
func parseSsi(info ParseInfo) Block     { return &SsiBlock{newUnknown(info)} }
func parseNow(info ParseInfo) Block     { return &NowBlock{newUnknown(info)} }
func parseRegroup(info ParseInfo) Block { return &RegroupBlock{newUnknown(info)} }
func parseWith(info ParseInfo) Block    { return &WithBlock{newUnknown(info)} }
func parseUrl(info ParseInfo) Block     { return &UrlBlock{newUnknown(info)} }
