package builtin

import (
	"github.com/bollmeier/boli/internal/environment"
	"github.com/bollmeier/boli/internal/ierr"
	"github.com/bollmeier/boli/internal/token"
	"github.com/bollmeier/boli/internal/value"
)

// installArithmetic binds the variadic arithmetic and comparison
// operators onto value.Add/Sub/.../Ge from internal/value/arith.go — the
// Operator/LogicalOperator AST nodes are plain Identifier-like lookups
// (internal/eval resolves `+` etc. the same way it resolves any other
// name), so these are the only place the coercion lattice is exposed to
// user code.
func installArithmetic(env *environment.Environment) {
	num := func(name, desc string, fn func([]value.Value) (value.Value, error)) {
		Declare(env, &Declaration{
			Name: name, Desc: desc, MinParameter: 0, MaxParameter: -1,
			Params: []DeclarationParameter{{Name: "nums", Type: "number", Desc: "one or more numbers"}},
			Fn:     fn,
		})
	}
	num("+", "Sum of its arguments; 0 if called with none.", value.Add)
	num("-", "Left-associative difference; a single argument is returned unchanged.", value.Sub)
	num("*", "Product of its arguments; 0 if called with none.", value.Mul)
	num("/", "Left-associative quotient. Division by a zero Rational is an arithmetic error.", value.Div)
	num("^", "Right-associative exponentiation.", value.Pow)
	num("%", "Left-associative remainder.", value.Rem)

	cmp := func(name, desc string, fn func([]value.Value) (value.Value, error)) {
		Declare(env, &Declaration{
			Name: name, Desc: desc, MinParameter: 0, MaxParameter: -1,
			Params: []DeclarationParameter{{Name: "nums", Type: "number", Desc: "values to compare pairwise"}},
			Fn:     fn,
		})
	}
	cmp("=", "True if every adjacent pair of arguments is numerically equal.", value.Eq)
	cmp("<", "True if arguments are strictly increasing.", value.Lt)
	cmp(">", "True if arguments are strictly decreasing.", value.Gt)
	cmp("<=", "True if arguments are non-decreasing.", value.Le)
	cmp(">=", "True if arguments are non-increasing.", value.Ge)

	Declare(env, &Declaration{
		Name: "not", Desc: "Logical negation of a value's truthiness.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{{Name: "v", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			return value.Bool(!value.Truthy(args[0])), nil
		},
	})

	Declare(env, &Declaration{
		Name: "number?", Desc: "True if v is an Int, Rational, or Real.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{{Name: "v", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			switch args[0].(type) {
			case value.Int, value.Rational, value.Real:
				return value.Bool(true), nil
			default:
				return value.Bool(false), nil
			}
		},
	})

	Declare(env, &Declaration{
		Name: "int?", Desc: "True if v is an Int.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{{Name: "v", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			_, ok := args[0].(value.Int)
			return value.Bool(ok), nil
		},
	})

	Declare(env, &Declaration{
		Name: "bool?", Desc: "True if v is a Bool.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{{Name: "v", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			_, ok := args[0].(value.Bool)
			return value.Bool(ok), nil
		},
	})

	Declare(env, &Declaration{
		Name: "nil?", Desc: "True if v is Nil.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{{Name: "v", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			_, ok := args[0].(value.Nil)
			return value.Bool(ok), nil
		},
	})

	Declare(env, &Declaration{
		Name: "->int", Desc: "Truncating conversion of a number to Int.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{{Name: "n", Type: "number"}},
		Fn: func(args []value.Value) (value.Value, error) {
			switch t := args[0].(type) {
			case value.Int:
				return t, nil
			case value.Rational:
				return value.Int(t.Num / t.Den), nil
			case value.Real:
				return value.Int(int64(t)), nil
			default:
				return nil, ierr.Type(token.Position{}, "->int expects a number, got %T", args[0])
			}
		},
	})

	Declare(env, &Declaration{
		Name: "->real", Desc: "Conversion of a number to Real.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{{Name: "n", Type: "number"}},
		Fn: func(args []value.Value) (value.Value, error) {
			switch t := args[0].(type) {
			case value.Int:
				return value.Real(float64(t)), nil
			case value.Rational:
				return value.Real(float64(t.Num) / float64(t.Den)), nil
			case value.Real:
				return t, nil
			default:
				return nil, ierr.Type(token.Position{}, "->real expects a number, got %T", args[0])
			}
		},
	})
}
