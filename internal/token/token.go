// Package token defines the lexical token kinds and source positions shared
// by the lexer and parser.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	EOF Kind = iota
	LParen
	RParen
	QuoteLParen // '( '[ '{  (quote-prefixed grouping open)
	Int
	Real
	Bool
	String
	Ident
	AbsoluteName // a::b::c
	QuoteIdent   // 'name
	Operator     // + - * / ^ %
	LogicalOp    // = > >= < <=
	Dot
	Ellipsis // ...
	KwDef
	KwDefStruct
	KwSetBang
	KwIf
	KwCond
	KwAnd
	KwOr
	KwLambda
	KwNil
	KwBlock
	KwLet
)

var names = map[Kind]string{
	EOF:          "EOF",
	LParen:       "(",
	RParen:       ")",
	QuoteLParen:  "'(",
	Int:          "int",
	Real:         "real",
	Bool:         "bool",
	String:       "string",
	Ident:        "identifier",
	AbsoluteName: "absolute-name",
	QuoteIdent:   "quoted-identifier",
	Operator:     "operator",
	LogicalOp:    "logical-operator",
	Dot:          ".",
	Ellipsis:     "...",
	KwDef:        "def",
	KwDefStruct:  "def-struct",
	KwSetBang:    "set!",
	KwIf:         "if",
	KwCond:       "cond",
	KwAnd:        "and",
	KwOr:         "or",
	KwLambda:     "lambda",
	KwNil:        "nil",
	KwBlock:      "block",
	KwLet:        "let",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Position marks where a token (or the AST node built from it) began in
// the source text; carried through to the evaluator for diagnostics.
type Position struct {
	Source string
	Line   int
	Col    int
}

func (p Position) String() string {
	if p.Source == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.Source, p.Line, p.Col)
}

// Token is a single lexical unit with its textual value and position.
type Token struct {
	Kind  Kind
	Value string
	Pos   Position
}

var keywords = map[string]Kind{
	"def":        KwDef,
	"def-struct": KwDefStruct,
	"set!":       KwSetBang,
	"if":         KwIf,
	"cond":       KwCond,
	"and":        KwAnd,
	"or":         KwOr,
	"lambda":     KwLambda,
	"λ":          KwLambda,
	"nil":        KwNil,
	"block":      KwBlock,
	"let":        KwLet,
}

// Keyword reports whether word is a reserved keyword and, if so, its Kind.
func Keyword(word string) (Kind, bool) {
	k, ok := keywords[word]
	return k, ok
}
