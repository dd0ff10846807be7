// Package lexer turns BOLI source text into a flat token.Token stream.
//
// Tokenising is delegated to a participle stateful lexer (the same
// technique the retrieval pack uses for other from-scratch language front
// ends); BOLI's grammar needs only a single lexer state since, unlike a
// template-literal-bearing language, there is no nested sub-grammar to
// switch into mid-token.
package lexer

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/bollmeier/boli/internal/token"
)

var rules = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `;[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
		{Name: "Ellipsis", Pattern: `\.\.\.`},
		{Name: "Number", Pattern: `[+-]?[0-9][0-9.]*(,[0-9]+)?`},
		{Name: "QuoteOpen", Pattern: `'[(\[{]`},
		{Name: "Open", Pattern: `[(\[{]`},
		{Name: "Close", Pattern: `[)\]}]`},
		{Name: "LogicalOp", Pattern: `>=|<=|=|>|<`},
		{Name: "Operator", Pattern: `[+\-*/^%]`},
		{Name: "Dot", Pattern: `\.`},
		{Name: "QuoteIdent", Pattern: `'[^\s"(){}\[\]/.:]+`},
		{Name: "Word", Pattern: `[^\s"(){}\[\]/.:]+(::[^\s"(){}\[\]/.:]+)*`},
	},
})

// Lex tokenises source, tagging every token with the given source name
// (used only for diagnostics).
func Lex(source, text string) ([]token.Token, error) {
	raw, err := rules.Lex(source, strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("lexer init: %w", err)
	}
	var out []token.Token
	symbols := rules.Symbols()
	names := make(map[lexer.TokenType]string, len(symbols))
	for name, tt := range symbols {
		names[tt] = name
	}
	for {
		tok, err := raw.Next()
		if err != nil {
			return nil, fmt.Errorf("%s:%d:%d: %w", source, tok.Pos.Line, tok.Pos.Column, err)
		}
		if tok.EOF() {
			out = append(out, token.Token{Kind: token.EOF, Pos: pos(source, tok)})
			break
		}
		name := names[tok.Type]
		if name == "Comment" || name == "Whitespace" {
			continue
		}
		converted, err := convert(name, tok.Value, pos(source, tok))
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

func pos(source string, t lexer.Token) token.Position {
	return token.Position{Source: source, Line: t.Pos.Line, Col: t.Pos.Column}
}

func convert(ruleName, value string, p token.Position) (token.Token, error) {
	switch ruleName {
	case "String":
		unq := strings.NewReplacer(`\"`, `"`).Replace(value[1 : len(value)-1])
		return token.Token{Kind: token.String, Value: unq, Pos: p}, nil
	case "Number":
		if strings.Contains(value, ",") {
			return token.Token{Kind: token.Real, Value: strings.ReplaceAll(value, ".", ""), Pos: p}, nil
		}
		return token.Token{Kind: token.Int, Value: strings.ReplaceAll(value, ".", ""), Pos: p}, nil
	case "QuoteOpen":
		return token.Token{Kind: token.QuoteLParen, Value: value, Pos: p}, nil
	case "Open":
		return token.Token{Kind: token.LParen, Value: value, Pos: p}, nil
	case "Close":
		return token.Token{Kind: token.RParen, Value: value, Pos: p}, nil
	case "LogicalOp":
		return token.Token{Kind: token.LogicalOp, Value: value, Pos: p}, nil
	case "Operator":
		return token.Token{Kind: token.Operator, Value: value, Pos: p}, nil
	case "Ellipsis":
		return token.Token{Kind: token.Ellipsis, Value: value, Pos: p}, nil
	case "Dot":
		return token.Token{Kind: token.Dot, Value: value, Pos: p}, nil
	case "QuoteIdent":
		return token.Token{Kind: token.QuoteIdent, Value: value[1:], Pos: p}, nil
	case "Word":
		switch value {
		case "#t", "#true", "#f", "#false":
			return token.Token{Kind: token.Bool, Value: value, Pos: p}, nil
		}
		if kw, ok := token.Keyword(value); ok {
			return token.Token{Kind: kw, Value: value, Pos: p}, nil
		}
		if strings.Contains(value, "::") {
			return token.Token{Kind: token.AbsoluteName, Value: value, Pos: p}, nil
		}
		return token.Token{Kind: token.Ident, Value: value, Pos: p}, nil
	default:
		return token.Token{}, fmt.Errorf("%s: unrecognised token %q", p, value)
	}
}
