// Package ast defines the BOLI abstract syntax tree: a closed sum of node
// types dispatched by a type switch, rather than a visitor over boxed
// polymorphic nodes with runtime downcasting.
package ast

import "github.com/bollmeier/boli/internal/token"

// Node is implemented by every AST variant. Position returns where the
// node began in source, for diagnostics.
type Node interface {
	Position() token.Position
	node()
}

type base struct {
	Pos token.Position
}

func (b base) Position() token.Position { return b.Pos }
func (base) node()                      {}

// Program is the root node: a flat sequence of top-level forms.
type Program struct {
	base
	Children []Node
}

// Block evaluates its children in a fresh child environment; its value is
// the value of the last child. Used by `let` and `block`.
type Block struct {
	base
	Children []Node
}

type Integer struct {
	base
	Value int64
}

type Rational struct {
	base
	Num, Den int64
}

type Real struct {
	base
	Value float64
}

type Bool struct {
	base
	Value bool
}

type Str struct {
	base
	Value string
}

type Nil struct {
	base
}

// Identifier is an unqualified name looked up in the environment chain.
type Identifier struct {
	base
	Name string
}

// AbsoluteName is a `::`-joined path, e.g. after `(require 'mod 'alias)`.
type AbsoluteName struct {
	base
	Segments []string
}

// Symbol is a quote-prefixed bare name, `'foo`.
type Symbol struct {
	base
	Name string
}

// Quote wraps a raw token for later inspection without evaluating it.
type Quote struct {
	base
	Token token.Token
}

// Operator is one of + - * / ^ %.
type Operator struct {
	base
	Op string
}

// LogicalOperator is one of = > >= < <=.
type LogicalOperator struct {
	base
	Op string
}

// Pair is a dotted-pair literal `(a . b)`.
type Pair struct {
	base
	Left, Right Node
}

// List is a bracketed sequence of elements, evaluated left to right into a
// Vector (or, when quote-prefixed, a literal collection).
type List struct {
	base
	Elements []Node
	Quoted   bool
}

// Definition is `(def name expr)` or the lambda-sugar `(def (f p...) body...)`
// — the parser desugars the latter into a Definition whose Value is a
// Lambda, so the evaluator only ever sees one shape.
type Definition struct {
	base
	Name  string
	Value Node
}

// StructDefinition installs a struct type plus its generated constructor,
// predicate, and per-field getter/setter.
type StructDefinition struct {
	base
	Name   string
	Fields []string
}

// SetBang is `(set! name expr)`.
type SetBang struct {
	base
	Name  string
	Value Node
}

// IfExpression is `(if cond then else?)`; Else may be nil.
type IfExpression struct {
	base
	Cond, Then, Else Node
}

// Lambda is `(lambda (params...) body...)`, optionally carrying Name when
// produced by the `(def (name params...) ...)` sugar (used by the
// tail-call analyzer to recognise self-recursion).
type Lambda struct {
	base
	Name       string
	Parameters []string
	Variadic   bool // last parameter is a rest-parameter
	Body       *Block
}

// Call is a function application; IsTailCall is set by the tail-call
// analyzer pass, never by the parser.
type Call struct {
	base
	Callee     Node
	Arguments  []Node
	IsTailCall bool
}

// SpreadExpr splices its inner collection into the enclosing Call's
// argument list at evaluation time.
type SpreadExpr struct {
	base
	Inner Node
}

// New constructs nodes with their position pre-filled; the parser uses
// these instead of struct literals so every node is guaranteed a Pos.
func NewProgram(p token.Position, children []Node) *Program { return &Program{base{p}, children} }
func NewBlock(p token.Position, children []Node) *Block     { return &Block{base{p}, children} }
func NewInteger(p token.Position, v int64) *Integer          { return &Integer{base{p}, v} }
func NewRational(p token.Position, n, d int64) *Rational     { return &Rational{base{p}, n, d} }
func NewReal(p token.Position, v float64) *Real              { return &Real{base{p}, v} }
func NewBool(p token.Position, v bool) *Bool                 { return &Bool{base{p}, v} }
func NewStr(p token.Position, v string) *Str                 { return &Str{base{p}, v} }
func NewNil(p token.Position) *Nil                            { return &Nil{base{p}} }
func NewIdentifier(p token.Position, name string) *Identifier { return &Identifier{base{p}, name} }
func NewAbsoluteName(p token.Position, segs []string) *AbsoluteName {
	return &AbsoluteName{base{p}, segs}
}
func NewSymbol(p token.Position, name string) *Symbol { return &Symbol{base{p}, name} }
func NewQuote(p token.Position, t token.Token) *Quote { return &Quote{base{p}, t} }
func NewOperator(p token.Position, op string) *Operator { return &Operator{base{p}, op} }
func NewLogicalOperator(p token.Position, op string) *LogicalOperator {
	return &LogicalOperator{base{p}, op}
}
func NewPair(p token.Position, l, r Node) *Pair { return &Pair{base{p}, l, r} }
func NewList(p token.Position, elems []Node, quoted bool) *List {
	return &List{base{p}, elems, quoted}
}
func NewDefinition(p token.Position, name string, v Node) *Definition {
	return &Definition{base{p}, name, v}
}
func NewStructDefinition(p token.Position, name string, fields []string) *StructDefinition {
	return &StructDefinition{base{p}, name, fields}
}
func NewSetBang(p token.Position, name string, v Node) *SetBang { return &SetBang{base{p}, name, v} }
func NewIfExpression(p token.Position, cond, then, els Node) *IfExpression {
	return &IfExpression{base{p}, cond, then, els}
}
func NewLambda(p token.Position, name string, params []string, variadic bool, body *Block) *Lambda {
	return &Lambda{base{p}, name, params, variadic, body}
}
func NewCall(p token.Position, callee Node, args []Node) *Call {
	return &Call{base{p}, callee, args, false}
}
func NewSpreadExpr(p token.Position, inner Node) *SpreadExpr { return &SpreadExpr{base{p}, inner} }
