package eval

import (
	"github.com/bollmeier/boli/internal/ast"
	"github.com/bollmeier/boli/internal/environment"
	"github.com/bollmeier/boli/internal/ierr"
	"github.com/bollmeier/boli/internal/token"
	"github.com/bollmeier/boli/internal/value"
)

// evalCall evaluates the callee and arguments, expands any Spread
// arguments, and dispatches. A call in tail position whose callee is a
// Lambda does not invoke it — it returns a value.TailCall sentinel that
// the enclosing apply loop (below) recognises and loops on, so
// self-recursive tail calls run in constant Go stack space.
func evalCall(call *ast.Call, env *environment.Environment) (value.Value, error) {
	if id, ok := call.Callee.(*ast.Identifier); ok {
		switch id.Name {
		case "require":
			return evalRequire(call, env)
		case "provide":
			return evalProvide(call, env)
		}
	}
	calleeVal, err := Eval(call.Callee, env)
	if err != nil {
		return nil, err
	}
	args, err := evalArgs(call.Arguments, call.Position(), env)
	if err != nil {
		return nil, err
	}
	switch fn := calleeVal.(type) {
	case *value.BuiltInFunction:
		return fn.Fn(args)
	case *value.Lambda:
		if call.IsTailCall {
			return value.TailCall{Lambda: fn, Args: args}, nil
		}
		return Apply(call.Position(), fn, args)
	default:
		return nil, ierr.Type(call.Position(), "cannot call a value of type %T", calleeVal)
	}
}

// Apply invokes lam with args, trampolining self-recursive tail calls:
// each loop iteration evaluates the selected arity's body fresh (not as a
// nested Go call), so a value.TailCall result from that Eval simply
// rebinds args and loops instead of growing the stack.
func Apply(pos token.Position, lam *value.Lambda, args []value.Value) (value.Value, error) {
	for {
		arity, variadic, err := selectArity(pos, lam, args)
		if err != nil {
			return nil, err
		}
		parentEnv, ok := lam.Env.(*environment.Environment)
		if !ok {
			return nil, ierr.Internal("lambda %q has no captured environment", lambdaLabel(lam))
		}
		callEnv := environment.NewChild(parentEnv)
		bindParams(callEnv, arity, variadic, args)
		result, err := Eval(arity.Body, callEnv)
		if err != nil {
			return nil, err
		}
		if tc, ok := result.(value.TailCall); ok && tc.Lambda == lam {
			args = tc.Args
			continue
		}
		return result, nil
	}
}

func selectArity(pos token.Position, lam *value.Lambda, args []value.Value) (value.LambdaArity, bool, error) {
	if lam.Variadic != nil {
		n := len(lam.Variadic.Parameters) - 1
		if len(args) < n {
			return value.LambdaArity{}, false, ierr.Arity(pos,
				"%s expects at least %d arguments, got %d", lambdaLabel(lam), n, len(args))
		}
		return *lam.Variadic, true, nil
	}
	arity, ok := lam.Arities[len(args)]
	if !ok {
		return value.LambdaArity{}, false, ierr.Arity(pos,
			"%s has no arity accepting %d arguments", lambdaLabel(lam), len(args))
	}
	return arity, false, nil
}

func bindParams(env *environment.Environment, arity value.LambdaArity, variadic bool, args []value.Value) {
	if variadic {
		n := len(arity.Parameters) - 1
		for i := 0; i < n; i++ {
			env.Set(arity.Parameters[i], args[i])
		}
		rest := make([]value.Value, len(args)-n)
		copy(rest, args[n:])
		env.Set(arity.Parameters[n], value.NewVector(rest))
		return
	}
	for i, p := range arity.Parameters {
		env.Set(p, args[i])
	}
}

func lambdaLabel(lam *value.Lambda) string {
	if lam.Name != "" {
		return lam.Name
	}
	return "lambda"
}

// buildLambda constructs a closure value from a Lambda literal, capturing
// env as its definition-time environment per spec.md §4.4.
func buildLambda(n *ast.Lambda, env *environment.Environment) *value.Lambda {
	params := append([]string(nil), n.Parameters...)
	lam := &value.Lambda{Name: n.Name, Env: env}
	if n.Variadic {
		lam.Variadic = &value.LambdaArity{Parameters: params, Body: n.Body}
	} else {
		lam.Arities = map[int]value.LambdaArity{len(params): {Parameters: params, Body: n.Body}}
	}
	return lam
}

// evalArgs evaluates each argument expression, then expands any resulting
// Spread values into the flattened argument slice.
func evalArgs(args []ast.Node, pos token.Position, env *environment.Environment) ([]value.Value, error) {
	raw := make([]value.Value, 0, len(args))
	for _, a := range args {
		v, err := Eval(a, env)
		if err != nil {
			return nil, err
		}
		raw = append(raw, v)
	}
	return expandSpreads(raw, pos)
}

func expandSpreads(raw []value.Value, pos token.Position) ([]value.Value, error) {
	hasSpread := false
	for _, v := range raw {
		if _, ok := v.(value.Spread); ok {
			hasSpread = true
			break
		}
	}
	if !hasSpread {
		return raw, nil
	}
	out := make([]value.Value, 0, len(raw))
	for _, v := range raw {
		sp, ok := v.(value.Spread)
		if !ok {
			out = append(out, v)
			continue
		}
		elems, err := spreadElements(sp.Inner, pos)
		if err != nil {
			return nil, err
		}
		out = append(out, elems...)
	}
	return out, nil
}

func spreadElements(v value.Value, pos token.Position) ([]value.Value, error) {
	switch t := v.(type) {
	case *value.Vector:
		return t.Elements, nil
	case value.Nil:
		return nil, nil
	case *value.Pair:
		elems, ok := value.ListElements(t)
		if !ok {
			return nil, ierr.Type(pos, "cannot spread a dotted pair")
		}
		return elems, nil
	default:
		return nil, ierr.Type(pos, "cannot spread a value of type %T", v)
	}
}

// quoteNode converts an AST node into the literal Value it denotes under
// quotation: identifiers become Symbols instead of being looked up,
// nested quoted Lists/Pairs recurse, everything else self-evaluates.
func quoteNode(n ast.Node) (value.Value, error) {
	switch t := n.(type) {
	case *ast.Identifier:
		return value.Symbol(t.Name), nil
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
	case *ast.Symbol:
		return value.Symbol(t.Name), nil
	case *ast.Quote:
		return value.Quote{Token: t.Token}, nil
	case *ast.List:
		elems := make([]value.Value, 0, len(t.Elements))
		for _, e := range t.Elements {
			v, err := quoteNode(e)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return value.NewVector(elems), nil
	case *ast.Pair:
		l, err := quoteNode(t.Left)
		if err != nil {
			return nil, err
		}
		r, err := quoteNode(t.Right)
		if err != nil {
			return nil, err
		}
		return &value.Pair{Left: l, Right: r}, nil
	default:
		return nil, ierr.Type(n.Position(), "cannot quote %T", n)
	}
}
