// Package builtin registers BOLI's native prelude: arithmetic/comparison,
// sequence operations (vector, pair/list, stream — dispatched by runtime
// kind per spec.md §4.5), string, struct/hash-table/set, and I/O
// primitives.
//
// The registration idiom — a Declaration record carrying name, arity
// bounds, per-parameter docs, and the native function, installed into an
// Environment by Declare — is grounded on the teacher's scm/declare.go,
// generalized into one consistent shape (the teacher itself has several
// slightly different literal shapes for the same struct across files;
// this package picks the 7-field one and applies it uniformly).
package builtin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bollmeier/boli/internal/environment"
	"github.com/bollmeier/boli/internal/ierr"
	"github.com/bollmeier/boli/internal/token"
	"github.com/bollmeier/boli/internal/value"
)

// DeclarationParameter documents one formal parameter for `help`.
type DeclarationParameter struct {
	Name string
	Type string // any | number | string | symbol | func | list | vector | struct
	Desc string
}

// Declaration is one native function's metadata plus its implementation.
// MaxParameter of -1 means unbounded (a variadic builtin).
type Declaration struct {
	Name         string
	Desc         string
	MinParameter int
	MaxParameter int
	Params       []DeclarationParameter
	Fn           func(args []value.Value) (value.Value, error)
}

var declarations = map[string]*Declaration{}

// Declare registers def both for `help` lookup and as a callable value
// bound under def.Name in env, wrapped with an arity check so individual
// Fn implementations don't each re-derive it.
func Declare(env *environment.Environment, def *Declaration) {
	declarations[def.Name] = def
	env.Set(def.Name, &value.BuiltInFunction{Name: def.Name, Fn: checkedArity(def)})
}

func checkedArity(def *Declaration) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		if len(args) < def.MinParameter || (def.MaxParameter >= 0 && len(args) > def.MaxParameter) {
			return nil, ierr.Arity(token.Position{}, "%s expects %s, got %d", def.Name, arityRange(def), len(args))
		}
		return def.Fn(args)
	}
}

func arityRange(def *Declaration) string {
	switch {
	case def.MaxParameter < 0:
		return fmt.Sprintf("at least %d argument(s)", def.MinParameter)
	case def.MinParameter == def.MaxParameter:
		return fmt.Sprintf("exactly %d argument(s)", def.MinParameter)
	default:
		return fmt.Sprintf("%d-%d argument(s)", def.MinParameter, def.MaxParameter)
	}
}

// Help renders documentation the way the teacher's Help does: an index
// when fn is empty, full parameter detail for one name otherwise.
func Help(fn string) string {
	var b strings.Builder
	if fn == "" {
		b.WriteString("Available functions:\n\n")
		names := make([]string, 0, len(declarations))
		for name := range declarations {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			def := declarations[name]
			first := strings.SplitN(def.Desc, "\n", 2)[0]
			fmt.Fprintf(&b, "  %s: %s\n", name, first)
		}
		b.WriteString("\nType (help \"name\") for details on one function.\n")
		return b.String()
	}
	def, ok := declarations[fn]
	if !ok {
		return fmt.Sprintf("no such function: %s", fn)
	}
	fmt.Fprintf(&b, "Help for: %s\n===\n\n%s\n\n", def.Name, def.Desc)
	fmt.Fprintf(&b, "Arguments: %s\n\n", arityRange(def))
	for _, p := range def.Params {
		fmt.Fprintf(&b, " - %s (%s): %s\n", p.Name, p.Type, p.Desc)
	}
	return b.String()
}

// InstallPrelude binds every category of native function into env, the
// single entry point cmd/boli and internal/repl use to build a fresh
// top-level environment.
func InstallPrelude(env *environment.Environment) {
	installArithmetic(env)
	installSequences(env)
	installStrings(env)
	installCollections(env)
	installIO(env)
	Declare(env, &Declaration{
		Name: "help", Desc: "Prints function documentation, or an index of all functions when called with no arguments.",
		MinParameter: 0, MaxParameter: 1,
		Params: []DeclarationParameter{{Name: "name", Type: "string", Desc: "function name"}},
		Fn: func(args []value.Value) (value.Value, error) {
			name := ""
			if len(args) == 1 {
				s, ok := args[0].(value.Str)
				if !ok {
					return nil, ierr.Type(token.Position{}, "help expects a string, got %T", args[0])
				}
				name = string(s)
			}
			fmt.Print(Help(name))
			return value.Nil{}, nil
		},
	})
	Declare(env, &Declaration{
		Name: "equal?", Desc: "Structural equality between two values.",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{{Name: "a", Type: "any"}, {Name: "b", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			return value.Bool(value.String(args[0]) == value.String(args[1])), nil
		},
	})
}
