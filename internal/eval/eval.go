// Package eval is the tree-walking evaluator from spec.md §4.3: a visitor
// over the AST producing (value.Value, error) per node, with tail-call
// trampolining implemented the way the teacher's scm/scm.go Eval/Apply
// does it — a `goto restart` loop that reassigns the node/environment
// pair being evaluated instead of recursing — generalised from the
// teacher's small node set to BOLI's full one.
package eval

import (
	"strings"

	"github.com/bollmeier/boli/internal/ast"
	"github.com/bollmeier/boli/internal/environment"
	"github.com/bollmeier/boli/internal/ierr"
	"github.com/bollmeier/boli/internal/value"
)

// Eval evaluates n in env. Tail positions (the last statement of a Block,
// the selected branch of an IfExpression) are handled by reassigning n
// and env and jumping back to restart rather than recursing, so a chain
// of nested blocks/ifs in tail position costs no Go stack; genuine
// self-recursive tail calls are trampolined one level up, in Apply (call.go).
func Eval(n ast.Node, env *environment.Environment) (value.Value, error) {
restart:
	switch t := n.(type) {
	case *ast.Integer:
		return value.Int(t.Value), nil
	case *ast.Rational:
		return value.ReduceRational(value.NewRational(t.Num, t.Den)), nil
	case *ast.Real:
		return value.Real(t.Value), nil
	case *ast.Bool:
		return value.Bool(t.Value), nil
	case *ast.Str:
		return value.Str(t.Value), nil
	case *ast.Nil:
		return value.Nil{}, nil
	case *ast.Identifier:
		v, ok := env.Get(t.Name)
		if !ok {
			return nil, ierr.Undefined(t.Pos, t.Name)
		}
		return v, nil
	case *ast.AbsoluteName:
		name := strings.Join(t.Segments, "::")
		v, ok := env.Get(name)
		if !ok {
			return nil, ierr.Undefined(t.Pos, name)
		}
		return v, nil
	case *ast.Symbol:
		return value.Symbol(t.Name), nil
	case *ast.Quote:
		return value.Quote{Token: t.Token}, nil
	case *ast.Operator:
		v, ok := env.Get(t.Op)
		if !ok {
			return nil, ierr.Undefined(t.Pos, t.Op)
		}
		return v, nil
	case *ast.LogicalOperator:
		v, ok := env.Get(t.Op)
		if !ok {
			return nil, ierr.Undefined(t.Pos, t.Op)
		}
		return v, nil
	case *ast.List:
		if t.Quoted {
			elems := make([]value.Value, 0, len(t.Elements))
			for _, e := range t.Elements {
				v, err := quoteNode(e)
				if err != nil {
					return nil, err
				}
				elems = append(elems, v)
			}
			return value.NewVector(elems), nil
		}
		elems := make([]value.Value, 0, len(t.Elements))
		for _, e := range t.Elements {
			v, err := Eval(e, env)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return value.NewVector(elems), nil
	case *ast.Pair:
		l, err := Eval(t.Left, env)
		if err != nil {
			return nil, err
		}
		r, err := Eval(t.Right, env)
		if err != nil {
			return nil, err
		}
		return &value.Pair{Left: l, Right: r}, nil
	case *ast.SpreadExpr:
		inner, err := Eval(t.Inner, env)
		if err != nil {
			return nil, err
		}
		return value.Spread{Inner: inner}, nil
	case *ast.Definition:
		return evalDefinition(t, env)
	case *ast.StructDefinition:
		return evalStructDefinition(t, env), nil
	case *ast.SetBang:
		v, err := Eval(t.Value, env)
		if err != nil {
			return nil, err
		}
		if !env.SetBang(t.Name, v) {
			return nil, ierr.Undefined(t.Pos, t.Name)
		}
		return v, nil
	case *ast.IfExpression:
		c, err := Eval(t.Cond, env)
		if err != nil {
			return nil, err
		}
		if value.Truthy(c) {
			n = t.Then
		} else if t.Else != nil {
			n = t.Else
		} else {
			return value.Nil{}, nil
		}
		goto restart
	case *ast.Lambda:
		return buildLambda(t, env), nil
	case *ast.Block:
		if len(t.Children) == 0 {
			return value.Nil{}, nil
		}
		child := environment.NewChild(env)
		for _, c := range t.Children[:len(t.Children)-1] {
			if _, err := Eval(c, child); err != nil {
				return nil, err
			}
		}
		n = t.Children[len(t.Children)-1]
		env = child
		goto restart
	case *ast.Call:
		return evalCall(t, env)
	default:
		return nil, ierr.Internal("unreachable AST node %T", n)
	}
}

func evalDefinition(t *ast.Definition, env *environment.Environment) (value.Value, error) {
	v, err := Eval(t.Value, env)
	if err != nil {
		return nil, err
	}
	if newLam, ok := v.(*value.Lambda); ok {
		if prevVal, exists := env.Get(t.Name); exists {
			if prevLam, ok2 := prevVal.(*value.Lambda); ok2 && prevLam.Variadic == nil && newLam.Variadic == nil {
				for arity, body := range newLam.Arities {
					prevLam.MergeArity(arity, body)
				}
				env.Set(t.Name, prevLam)
				return prevLam, nil
			}
		}
	}
	env.Set(t.Name, v)
	return v, nil
}
