package block

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/walteh/djtmpls/pkg/variable"
)

// ParseFunc builds a block from the split form of a tag
type ParseFunc func(info ParseInfo) Block

// registry maps each command to its parser. It is filled once and only read afterwards.
var registry = map[string]ParseFunc{
	"autoescape":  parseAutoEscape,
	"comment":     parseArgumentless,
	"csrf":        parseArgumentless,
	"cycle":       parseCycle,
	"debug":       parseArgumentless,
	"filter":      parseFilter,
	"firstof":     parseMultiVariable,
	"for":         parseFor,
	"if":          parseIf,
	"ifchanged":   parseMultiVariable,
	"ifequal":     parseIfEqual,
	"ifnotequal":  parseIfEqual,
	"load":        parseLoad,
	"now":         parseNow,
	"regroup":     parseRegroup,
	"spaceless":   parseArgumentless,
	"ssi":         parseSsi,
	"templatetag": parseTemplateTag,
	"url":         parseUrl,
	"widthratio":  parseWidthRatio,
	"with":        parseWith,
}

// Commands returns every command with a dedicated grammar, sorted
func Commands() []string {
	commands := make([]string, 0, len(registry))
	for cmd := range registry {
		commands = append(commands, cmd)
	}
	sort.Strings(commands)
	return commands
}

// Lookup returns the parser registered for command and whether there is one
func Lookup(command string) (ParseFunc, bool) {
	fn, ok := registry[command]
	return fn, ok
}

// Parse parses one tag, with or without its {% %} delimiters. It returns nil when the
// text holds no command.
func Parse(text string) Block {
	return ParseAt(text, 0)
}

// ParseAt is Parse for a tag that starts at offset base of a larger document; every
// offset in the result is shifted by base.
func ParseAt(text string, base int) Block {
	start := 0
	if strings.HasPrefix(text, "{%") {
		trimmed, offset, ok := variable.TrimDelimitedText(text)
		if !ok {
			return nil
		}
		text, start = trimmed, offset
	}

	firstChar := 0
	for firstChar < len(text) && text[firstChar] == ' ' {
		firstChar++
	}

	length := 0
	for firstChar+length < len(text) && text[firstChar+length] != ' ' {
		length++
	}
	if length == 0 {
		return nil
	}

	command := text[firstChar : firstChar+length]
	if r, _ := utf8.DecodeRuneInString(command); !unicode.IsLetter(r) && !unicode.IsDigit(r) {
		return nil
	}

	parse, ok := registry[command]
	if !ok {
		parse = parseUnknown
	}

	return parse(ParseInfo{
		Command: command,
		Args:    text[firstChar+length:],
		Start:   base + start + firstChar,
	})
}
