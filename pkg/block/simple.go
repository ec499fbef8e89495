package block

import (
	"strings"

	"github.com/walteh/djtmpls/pkg/completion"
	"github.com/walteh/djtmpls/pkg/position"
	"github.com/walteh/djtmpls/pkg/semtok"
)

// ArgumentlessBlock is a command that takes no arguments (comment, csrf, debug,
// spaceless)
type ArgumentlessBlock struct {
	base
}

func parseArgumentless(info ParseInfo) Block {
	return &ArgumentlessBlock{base: base{info: info}}
}

func (b *ArgumentlessBlock) Completions(completion.Context, int) []completion.Item {
	return nil
}

// AutoEscapeBlock is {% autoescape on|off %}
type AutoEscapeBlock struct {
	base
	// Arg is the first argument, nil when none was typed
	Arg *position.RawPosition
}

func parseAutoEscape(info ParseInfo) Block {
	b := &AutoEscapeBlock{base: base{info: info}}

	offset := info.ArgsStart()
	for _, word := range strings.Split(info.Args, " ") {
		if word != "" {
			if text, _ := cutAtLineBreak(word); text != "" {
				b.Arg = position.NewOptionalPosition(text, offset)
			}
			break
		}
		offset++
	}

	return b
}

func (b *AutoEscapeBlock) Spans() []semtok.Token {
	spans := []semtok.Token{b.commandSpan()}
	if b.Arg != nil {
		spans = append(spans, semtok.Token{Type: semtok.ClassificationKeyword, Range: *b.Arg})
	}
	return spans
}

func (b *AutoEscapeBlock) Completions(completion.Context, int) []completion.Item {
	if b.Arg == nil {
		return completion.NewItems(completion.KindKeyword, "on", "off")
	}
	return nil
}

// tagTypes is the closed set of arguments accepted by templatetag
var tagTypes = []string{
	"openblock",
	"closeblock",
	"openvariable",
	"closevariable",
	"openbrace",
	"closebrace",
	"opencomment",
	"closecomment",
}

// TemplateTagBlock is {% templatetag <type> %}
type TemplateTagBlock struct {
	base
	// TagType is the first argument, nil when none was typed
	TagType *position.RawPosition
}

func parseTemplateTag(info ParseInfo) Block {
	b := &TemplateTagBlock{base: base{info: info}}

	offset := info.ArgsStart()
	for _, word := range strings.Split(info.Args, " ") {
		if word != "" {
			if text, _ := cutAtLineBreak(word); text != "" {
				b.TagType = position.NewOptionalPosition(text, offset)
			}
			break
		}
		offset++
	}

	return b
}

// Known reports whether the tag type is one templatetag accepts
func (b *TemplateTagBlock) Known() bool {
	if b.TagType == nil {
		return false
	}
	for _, t := range tagTypes {
		if t == b.TagType.Text {
			return true
		}
	}
	return false
}

func (b *TemplateTagBlock) Spans() []semtok.Token {
	spans := []semtok.Token{b.commandSpan()}
	if b.Known() {
		spans = append(spans, semtok.Token{Type: semtok.ClassificationKeyword, Range: *b.TagType})
	}
	return spans
}

func (b *TemplateTagBlock) Completions(_ completion.Context, position int) []completion.Item {
	all := completion.NewItems(completion.KindKeyword, tagTypes...)
	if b.TagType == nil {
		return all
	}
	if b.TagType.Contains(position) {
		return completion.WithPrefix(all, b.TagType.Text[:position-b.TagType.Offset])
	}
	return nil
}

// LoadBlock is {% load name ... %} or {% load name ... from library %}
type LoadBlock struct {
	base
	// Name is the first library or tag name, nil when none was typed
	Name *position.RawPosition
	// From is the from keyword, nil unless the tag has the from form
	From *position.RawPosition
}

func parseLoad(info ParseInfo) Block {
	b := &LoadBlock{base: base{info: info}}

	words := strings.Split(info.Args, " ")

	offset := info.ArgsStart()
	for _, word := range words {
		if strings.TrimSpace(word) != "" {
			if text, _ := cutAtLineBreak(word); text != "" {
				b.Name = position.NewOptionalPosition(text, offset)
			}
			break
		}
		offset += len(word) + 1
	}

	// the leading empty word counts, so {% load x from y %} has four
	if len(words) >= 4 && words[len(words)-2] == "from" {
		fromOffset := info.ArgsStart()
		for _, word := range words[:len(words)-2] {
			fromOffset += len(word) + 1
		}
		// TODO: extract the library after from so completion can offer its tags
		b.From = position.NewOptionalPosition("from", fromOffset)
	}

	return b
}

func (b *LoadBlock) Spans() []semtok.Token {
	spans := []semtok.Token{b.commandSpan()}
	if b.From != nil {
		spans = append(spans, semtok.Token{Type: semtok.ClassificationKeyword, Range: *b.From})
	}
	return spans
}
