/*
Package document finds the tags of a whole Django template and parses each of them.

	 <p>{% for user in users %}{{ user.name|upper }}{% endfor %}</p>
	    |                     ||                   ||            |
	    +------ block --------++----- variable ----++-- block ---+

Block tags become block.Block values and variable tags become variable.Variable values,
both with offsets into the whole document. A tag that is missing its closing delimiter
ends at the end of its line. Comments ({# #}) are skipped.
*/
package document

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/walteh/djtmpls/pkg/block"
	"github.com/walteh/djtmpls/pkg/completion"
	"github.com/walteh/djtmpls/pkg/position"
	"github.com/walteh/djtmpls/pkg/semtok"
	"github.com/walteh/djtmpls/pkg/variable"
)

// TagKind tells block tags from variable tags
type TagKind int

const (
	TagBlock TagKind = iota
	TagVariable
)

// Tag is one {% %} or {{ }} found in a document
type Tag struct {
	Kind TagKind
	// Range covers the tag including its delimiters
	Range position.RawPosition
	// Closed is false when the closing delimiter is missing
	Closed bool
	// Block is set for block tags with a command
	Block block.Block
	// Variable is set for variable tags with an expression
	Variable *variable.Variable
}

// Inside reports whether offset falls between the delimiters of the tag
func (me *Tag) Inside(offset int) bool {
	end := me.Range.End()
	if me.Closed {
		end -= 2
	}
	return offset >= me.Range.Offset+2 && offset <= end
}

// Document is a parsed template
type Document struct {
	Content string
	Tags    []*Tag
}

var delimiters = map[string]string{
	"{%": "%}",
	"{{": "}}",
	"{#": "#}",
}

// Parse scans content for tags. It never fails; text outside tags is ignored.
func Parse(ctx context.Context, content string) *Document {
	doc := &Document{Content: content}

	unknown := map[string]int{}
	offset := 0
	for {
		i := nextOpening(content, offset)
		if i == -1 {
			break
		}

		open := content[i : i+2]
		end, closed := tagEnd(content, i, delimiters[open])
		offset = end

		if open == "{#" {
			continue
		}

		tag := &Tag{
			Range:  position.NewBasicPosition(content[i:end], i),
			Closed: closed,
		}

		switch open {
		case "{%":
			tag.Kind = TagBlock
			tag.Block = block.ParseAt(tag.Range.Text, i)
			if tag.Block != nil {
				if _, ok := block.Lookup(tag.Block.Info().Command); !ok {
					unknown[tag.Block.Info().Command]++
				}
			}
		case "{{":
			tag.Kind = TagVariable
			if text, start, ok := variable.TrimDelimitedText(tag.Range.Text); ok {
				tag.Variable = variable.Parse(text, i+start)
			}
		}

		doc.Tags = append(doc.Tags, tag)
	}

	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Int("tags", len(doc.Tags)).
		Int("bytes", len(content)).
		Msg("parsed document")

	for cmd, count := range unknown {
		logger.Debug().Str("command", cmd).Int("count", count).Msg("no grammar for command")
	}

	return doc
}

// nextOpening returns the offset of the next opening delimiter at or after from, or -1
func nextOpening(content string, from int) int {
	for i := from; i+1 < len(content); i++ {
		if content[i] != '{' {
			continue
		}
		if _, ok := delimiters[content[i:i+2]]; ok {
			return i
		}
	}
	return -1
}

// tagEnd returns the offset just past the tag opened at start and whether its closing
// delimiter was found before the end of the line
func tagEnd(content string, start int, closing string) (int, bool) {
	rest := content[start+2:]

	lineEnd := strings.IndexAny(rest, "\r\n")
	if lineEnd == -1 {
		lineEnd = len(rest)
	}

	if c := strings.Index(rest[:lineEnd], closing); c != -1 {
		return start + 2 + c + len(closing), true
	}
	return start + 2 + lineEnd, false
}

// TagAt returns the tag whose inside holds offset, or nil
func (me *Document) TagAt(offset int) *Tag {
	i := sort.Search(len(me.Tags), func(i int) bool {
		return me.Tags[i].Range.End() >= offset
	})
	for ; i < len(me.Tags) && me.Tags[i].Range.Offset <= offset; i++ {
		if me.Tags[i].Inside(offset) {
			return me.Tags[i]
		}
	}
	return nil
}

// Blocks returns the parsed block tags in document order
func (me *Document) Blocks() []block.Block {
	var blocks []block.Block
	for _, tag := range me.Tags {
		if tag.Block != nil {
			blocks = append(blocks, tag.Block)
		}
	}
	return blocks
}

// Tokens returns the spans of every tag ordered by offset
func (me *Document) Tokens() []semtok.Token {
	var tokens []semtok.Token
	for _, tag := range me.Tags {
		switch {
		case tag.Block != nil:
			tokens = append(tokens, tag.Block.Spans()...)
		case tag.Variable != nil:
			tokens = append(tokens, tag.Variable.Spans(0)...)
		}
	}
	sort.SliceStable(tokens, func(i, j int) bool {
		return tokens[i].Range.Offset < tokens[j].Range.Offset
	})
	return tokens
}

// Variables returns the distinct loop variables bound anywhere in the document, sorted
func (me *Document) Variables() []string {
	seen := map[string]bool{}
	var names []string
	for _, blk := range me.Blocks() {
		for _, name := range blk.Variables() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Completions returns what fits at offset. Inside a block command word that is the
// command names; elsewhere the tag under the cursor decides, with the loop variables in
// scope at offset added to cctx.
func (me *Document) Completions(cctx completion.Context, offset int) []completion.Item {
	tag := me.TagAt(offset)
	if tag == nil {
		return nil
	}

	scoped := newScopedContext(cctx, me.scopeAt(offset))

	switch tag.Kind {
	case TagBlock:
		if tag.Block == nil {
			return commandItems("")
		}
		cmd := tag.Block.Info().CommandPosition()
		if cmd.Contains(offset) {
			return commandItems(cmd.Text[:offset-cmd.Offset])
		}
		return tag.Block.Completions(scoped, offset)
	default:
		if tag.Variable == nil {
			return completion.VariableItems(scoped)
		}
		return tag.Variable.Completions(scoped, offset)
	}
}

func commandItems(prefix string) []completion.Item {
	return completion.WithPrefix(completion.NewItems(completion.KindKeyword, block.Commands()...), prefix)
}

// scopeAt returns the variables bound by the for loops still open at offset
func (me *Document) scopeAt(offset int) []string {
	var open [][]string
	for _, tag := range me.Tags {
		if tag.Range.Offset >= offset {
			break
		}
		if tag.Block == nil || tag.Range.End() > offset {
			continue
		}
		switch tag.Block.Info().Command {
		case "for":
			open = append(open, tag.Block.Variables())
		case "endfor":
			if len(open) > 0 {
				open = open[:len(open)-1]
			}
		}
	}

	var names []string
	for _, vars := range open {
		names = append(names, vars...)
	}
	return names
}
