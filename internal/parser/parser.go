// Package parser is a hand-written recursive-descent reader over a
// token.Token stream, grounded on the teacher's own scm/parser.go
// readFrom shape (tokenize once, then a single recursive reader consumes
// the slice) rather than a struct-tag grammar: BOLI's homoiconic,
// interchangeable-bracket, dotted-pair surface syntax doesn't fit a
// participle grammar cleanly, so participle is used only for lexing
// (internal/lexer) and this package owns the grammar.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bollmeier/boli/internal/ast"
	"github.com/bollmeier/boli/internal/ierr"
	"github.com/bollmeier/boli/internal/lexer"
	"github.com/bollmeier/boli/internal/token"
)

// Parse tokenises and parses a complete source unit into a Program.
func Parse(source, text string) (*ast.Program, error) {
	toks, err := lexer.Lex(source, text)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	var children []ast.Node
	pos := p.peek().Pos
	for p.peek().Kind != token.EOF {
		n, err := p.parseForm()
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	return ast.NewProgram(pos, children), nil
}

type parser struct {
	toks []token.Token
	pos  int
	gensym int
}

func (p *parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *parser) next() token.Token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) expect(k token.Kind) (token.Token, error) {
	t := p.next()
	if t.Kind != k {
		return t, ierr.Lex(t.Pos, "expecting %s, got %s", k, t.Kind)
	}
	return t, nil
}

func (p *parser) newTemp() string {
	p.gensym++
	return fmt.Sprintf("%%tmp%d", p.gensym)
}

// parseForm parses exactly one top-level or nested form.
func (p *parser) parseForm() (ast.Node, error) {
	t := p.peek()
	switch t.Kind {
	case token.EOF:
		return nil, ierr.Lex(t.Pos, "unexpected end of input")
	case token.RParen:
		return nil, ierr.Lex(t.Pos, "unexpected %s", t.Value)
	case token.Int:
		p.next()
		v, err := strconv.ParseInt(t.Value, 10, 64)
		if err != nil {
			return nil, ierr.Lex(t.Pos, "malformed integer %q", t.Value)
		}
		return ast.NewInteger(t.Pos, v), nil
	case token.Real:
		p.next()
		f, err := strconv.ParseFloat(strings.Replace(t.Value, ",", ".", 1), 64)
		if err != nil {
			return nil, ierr.Lex(t.Pos, "malformed real %q", t.Value)
		}
		return ast.NewReal(t.Pos, f), nil
	case token.Bool:
		p.next()
		return ast.NewBool(t.Pos, t.Value == "#t" || t.Value == "#true"), nil
	case token.String:
		p.next()
		return ast.NewStr(t.Pos, t.Value), nil
	case token.KwNil:
		p.next()
		return ast.NewNil(t.Pos), nil
	case token.Ident:
		p.next()
		return ast.NewIdentifier(t.Pos, t.Value), nil
	case token.AbsoluteName:
		p.next()
		return ast.NewAbsoluteName(t.Pos, strings.Split(t.Value, "::")), nil
	case token.QuoteIdent:
		p.next()
		return ast.NewSymbol(t.Pos, t.Value), nil
	case token.Operator:
		p.next()
		return ast.NewOperator(t.Pos, t.Value), nil
	case token.LogicalOp:
		p.next()
		return ast.NewLogicalOperator(t.Pos, t.Value), nil
	case token.Ellipsis:
		p.next()
		inner, err := p.parseForm()
		if err != nil {
			return nil, err
		}
		return ast.NewSpreadExpr(t.Pos, inner), nil
	case token.QuoteLParen:
		p.next()
		return p.parseQuotedGroup(t.Pos)
	case token.LParen:
		p.next()
		return p.parseGroup(t.Pos)
	default:
		return nil, ierr.Lex(t.Pos, "unexpected token %s", t.Kind)
	}
}

// parseGroup parses the contents of a non-quoted `( ... )` grouping,
// dispatching to a keyword form or falling back to a Call/Pair.
func (p *parser) parseGroup(pos token.Position) (ast.Node, error) {
	switch p.peek().Kind {
	case token.KwDef:
		return p.parseDef(pos)
	case token.KwDefStruct:
		return p.parseDefStruct(pos)
	case token.KwSetBang:
		return p.parseSetBang(pos)
	case token.KwIf:
		return p.parseIf(pos)
	case token.KwCond:
		return p.parseCond(pos)
	case token.KwAnd:
		return p.parseAnd(pos)
	case token.KwOr:
		return p.parseOr(pos)
	case token.KwLambda:
		return p.parseLambda(pos, "")
	case token.KwBlock:
		p.next()
		children, err := p.parseUntilClose()
		if err != nil {
			return nil, err
		}
		return ast.NewBlock(pos, children), nil
	case token.KwLet:
		return p.parseLet(pos)
	case token.RParen:
		p.next()
		return ast.NewList(pos, nil, false), nil
	default:
		return p.parseCallOrPair(pos)
	}
}

func (p *parser) parseUntilClose() ([]ast.Node, error) {
	var out []ast.Node
	for {
		t := p.peek()
		if t.Kind == token.RParen {
			p.next()
			return out, nil
		}
		if t.Kind == token.EOF {
			return nil, ierr.Lex(t.Pos, "expecting matching )")
		}
		n, err := p.parseForm()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
}

func (p *parser) parseCallOrPair(pos token.Position) (ast.Node, error) {
	first, err := p.parseForm()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind == token.Dot {
		p.next()
		right, err := p.parseForm()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return ast.NewPair(pos, first, right), nil
	}
	var args []ast.Node
	for p.peek().Kind != token.RParen {
		if p.peek().Kind == token.EOF {
			return nil, ierr.Lex(p.peek().Pos, "expecting matching )")
		}
		a, err := p.parseForm()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	p.next()
	return ast.NewCall(pos, first, args), nil
}

// parseQuotedGroup parses a quote-prefixed grouping into a literal List,
// recursing so nested groupings are literal too.
func (p *parser) parseQuotedGroup(pos token.Position) (ast.Node, error) {
	var elems []ast.Node
	for p.peek().Kind != token.RParen {
		if p.peek().Kind == token.EOF {
			return nil, ierr.Lex(p.peek().Pos, "expecting matching )")
		}
		var n ast.Node
		var err error
		if p.peek().Kind == token.QuoteLParen {
			open := p.next()
			n, err = p.parseQuotedGroup(open.Pos)
		} else if p.peek().Kind == token.LParen {
			open := p.next()
			n, err = p.parseQuotedGroup(open.Pos)
		} else {
			n, err = p.parseForm()
		}
		if err != nil {
			return nil, err
		}
		elems = append(elems, n)
	}
	p.next()
	return ast.NewList(pos, elems, true), nil
}

func (p *parser) parseParamList() (params []string, variadic bool, err error) {
	if _, err = p.expect(token.LParen); err != nil {
		return nil, false, err
	}
	for p.peek().Kind != token.RParen {
		name, err := p.expect(token.Ident)
		if err != nil {
			return nil, false, err
		}
		params = append(params, name.Value)
		if p.peek().Kind == token.Ellipsis {
			p.next()
			variadic = true
			break
		}
	}
	if _, err = p.expect(token.RParen); err != nil {
		return nil, false, err
	}
	return params, variadic, nil
}

func (p *parser) parseLambda(pos token.Position, name string) (ast.Node, error) {
	p.next() // KwLambda
	params, variadic, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	bodyPos := p.peek().Pos
	children, err := p.parseUntilClose()
	if err != nil {
		return nil, err
	}
	return ast.NewLambda(pos, name, params, variadic, ast.NewBlock(bodyPos, children)), nil
}

func (p *parser) parseDef(pos token.Position) (ast.Node, error) {
	p.next() // KwDef
	if p.peek().Kind == token.LParen {
		p.next()
		nameTok, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		var params []string
		variadic := false
		for p.peek().Kind != token.RParen {
			pt, err := p.expect(token.Ident)
			if err != nil {
				return nil, err
			}
			params = append(params, pt.Value)
			if p.peek().Kind == token.Ellipsis {
				p.next()
				variadic = true
				break
			}
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		bodyPos := p.peek().Pos
		children, err := p.parseUntilClose()
		if err != nil {
			return nil, err
		}
		lam := ast.NewLambda(pos, nameTok.Value, params, variadic, ast.NewBlock(bodyPos, children))
		return ast.NewDefinition(pos, nameTok.Value, lam), nil
	}
	nameTok, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	val, err := p.parseForm()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return ast.NewDefinition(pos, nameTok.Value, val), nil
}

func (p *parser) parseDefStruct(pos token.Position) (ast.Node, error) {
	p.next() // KwDefStruct
	nameTok, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	var fields []string
	for p.peek().Kind != token.RParen {
		ft, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		fields = append(fields, ft.Value)
	}
	p.next()
	return ast.NewStructDefinition(pos, nameTok.Value, fields), nil
}

func (p *parser) parseSetBang(pos token.Position) (ast.Node, error) {
	p.next() // KwSetBang
	nameTok, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	val, err := p.parseForm()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return ast.NewSetBang(pos, nameTok.Value, val), nil
}

func (p *parser) parseIf(pos token.Position) (ast.Node, error) {
	p.next() // KwIf
	cond, err := p.parseForm()
	if err != nil {
		return nil, err
	}
	then, err := p.parseForm()
	if err != nil {
		return nil, err
	}
	var els ast.Node
	if p.peek().Kind != token.RParen {
		els, err = p.parseForm()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return ast.NewIfExpression(pos, cond, then, els), nil
}

// parseCond desugars `(cond (t1 e1) (t2 e2) ... (else eN))` into nested
// IfExpression nodes right-to-left; `cond` is not its own AST variant.
func (p *parser) parseCond(pos token.Position) (ast.Node, error) {
	p.next() // KwCond
	type clause struct {
		test ast.Node
		body ast.Node
	}
	var clauses []clause
	for p.peek().Kind != token.RParen {
		if _, err := p.expect(token.LParen); err != nil {
			return nil, err
		}
		var test ast.Node
		if peeked := p.peek(); peeked.Kind == token.Ident && peeked.Value == "else" {
			t := p.next()
			test = ast.NewBool(t.Pos, true)
		} else {
			var err error
			test, err = p.parseForm()
			if err != nil {
				return nil, err
			}
		}
		bodyPos := p.peek().Pos
		body, err := p.parseUntilClose()
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause{test: test, body: ast.NewBlock(bodyPos, body)})
	}
	p.next()
	var result ast.Node = ast.NewNil(pos)
	for i := len(clauses) - 1; i >= 0; i-- {
		result = ast.NewIfExpression(clauses[i].test.Position(), clauses[i].test, clauses[i].body, result)
	}
	return result, nil
}

// parseAnd desugars `(and a b c)` into right-nested IfExpressions; no
// temporary binding is needed since unevaluated operands are simply
// never reached.
func (p *parser) parseAnd(pos token.Position) (ast.Node, error) {
	p.next()
	operands, err := p.parseUntilClose()
	if err != nil {
		return nil, err
	}
	if len(operands) == 0 {
		return ast.NewBool(pos, true), nil
	}
	result := operands[len(operands)-1]
	for i := len(operands) - 2; i >= 0; i-- {
		result = ast.NewIfExpression(operands[i].Position(), operands[i], result, ast.NewBool(pos, false))
	}
	return result, nil
}

// parseOr desugars `(or a b c)` into a chain of blocks binding each
// operand to a fresh temporary once, so it is not evaluated twice.
func (p *parser) parseOr(pos token.Position) (ast.Node, error) {
	p.next()
	operands, err := p.parseUntilClose()
	if err != nil {
		return nil, err
	}
	if len(operands) == 0 {
		return ast.NewBool(pos, false), nil
	}
	result := operands[len(operands)-1]
	for i := len(operands) - 2; i >= 0; i-- {
		tmp := p.newTemp()
		opPos := operands[i].Position()
		result = ast.NewBlock(opPos, []ast.Node{
			ast.NewDefinition(opPos, tmp, operands[i]),
			ast.NewIfExpression(opPos, ast.NewIdentifier(opPos, tmp), ast.NewIdentifier(opPos, tmp), result),
		})
	}
	return result, nil
}

// parseLet handles `(let ((name val) ...) body...)`, desugaring to a
// Block of Definitions followed by the body forms.
func (p *parser) parseLet(pos token.Position) (ast.Node, error) {
	p.next() // KwLet
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var children []ast.Node
	for p.peek().Kind != token.RParen {
		if _, err := p.expect(token.LParen); err != nil {
			return nil, err
		}
		nameTok, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		val, err := p.parseForm()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		children = append(children, ast.NewDefinition(nameTok.Pos, nameTok.Value, val))
	}
	p.next() // close bindings list
	body, err := p.parseUntilClose()
	if err != nil {
		return nil, err
	}
	children = append(children, body...)
	return ast.NewBlock(pos, children), nil
}
