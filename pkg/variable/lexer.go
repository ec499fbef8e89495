package variable

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	// LexerRules defines the tokens of a variable expression such as user.name|default:"x"
	LexerRules = []lexer.SimpleRule{
		{Name: "String", Pattern: `"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'`},
		{Name: "Number", Pattern: `[-+]?\d+(?:\.\d+)?`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Dot", Pattern: `\.`},
		{Name: "Pipe", Pattern: `\|`},
		{Name: "Colon", Pattern: `:`},
		{Name: "Whitespace", Pattern: `\s+`},
		// anything else ends the expression
		{Name: "Char", Pattern: `.`},
	}

	// VariableLexer is the lexer for variable expressions
	VariableLexer = lexer.MustSimple(LexerRules)

	symbols = VariableLexer.Symbols()

	tokString     = symbols["String"]
	tokNumber     = symbols["Number"]
	tokIdent      = symbols["Ident"]
	tokDot        = symbols["Dot"]
	tokPipe       = symbols["Pipe"]
	tokColon      = symbols["Colon"]
	tokWhitespace = symbols["Whitespace"]
)

// lex splits text into tokens, dropping whitespace. Lexing stops quietly at the first
// byte no rule accepts, which with the catch-all rule only happens on invalid utf8.
func lex(text string) []lexer.Token {
	l, err := VariableLexer.LexString("", text)
	if err != nil {
		return nil
	}

	var tokens []lexer.Token
	for {
		tok, err := l.Next()
		if err != nil || tok.EOF() {
			return tokens
		}
		if tok.Type == tokWhitespace {
			continue
		}
		tokens = append(tokens, tok)
	}
}
