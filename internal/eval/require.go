package eval

import (
	"github.com/bollmeier/boli/internal/ast"
	"github.com/bollmeier/boli/internal/environment"
	"github.com/bollmeier/boli/internal/ierr"
	"github.com/bollmeier/boli/internal/module"
	"github.com/bollmeier/boli/internal/parser"
	"github.com/bollmeier/boli/internal/tailcall"
	"github.com/bollmeier/boli/internal/value"
)

// Extensions, if non-nil, is consulted by `require` for programmatically
// registered modules alongside the filesystem tree. It is nil unless the
// host program assigns it; cmd/boli does not.
var Extensions *module.ExtensionDir

// require and provide are implemented as special forms rather than
// ordinary BuiltInFunctions because they must mutate the *calling*
// lexical environment directly (import bindings, mark exports) — a
// BuiltInFunction's `func(args []Value) (Value, error)` signature has no
// environment parameter to do that through. Grounded on original_source's
// RequireFn/ProvideFn, which instead capture their environment at
// construction time; special-casing the identifier at the call site gets
// the same effect without needing a fresh closure per environment.
func evalRequire(call *ast.Call, env *environment.Environment) (value.Value, error) {
	argVals, err := evalArgs(call.Arguments, call.Position(), env)
	if err != nil {
		return nil, err
	}
	if len(argVals) != 1 && len(argVals) != 2 {
		return nil, ierr.Arity(call.Position(), "require expects 1-2 arguments, got %d", len(argVals))
	}
	pathSym, ok := argVals[0].(value.Symbol)
	if !ok {
		return nil, ierr.Type(call.Position(), "require expects a symbol module path, got %T", argVals[0])
	}

	exports, err := loadModule(call, env, string(pathSym))
	if err != nil {
		return nil, err
	}

	if len(argVals) == 2 {
		alias, ok := argVals[1].(value.Symbol)
		if !ok {
			return nil, ierr.Type(call.Position(), "require expects a symbol alias, got %T", argVals[1])
		}
		env.ImportWithAlias(exports, string(alias))
	} else {
		env.Import(exports)
	}
	return value.Nil{}, nil
}

func loadModule(call *ast.Call, env *environment.Environment, path string) (map[string]value.Value, error) {
	dirs := env.GetModuleSearchDirs()
	resolved, err := module.Resolve(dirs, Extensions, path)
	if err != nil {
		return nil, err
	}
	if resolved.Extension != nil {
		return resolved.Extension.Values, nil
	}

	prog, err := parser.Parse(resolved.SourceName, resolved.Source)
	if err != nil {
		return nil, err
	}
	tailcall.Mark(prog)

	moduleEnv := environment.NewChild(env)
	for _, n := range prog.Children {
		if _, err := Eval(n, moduleEnv); err != nil {
			return nil, err
		}
	}
	return moduleEnv.GetExportedValues(), nil
}

func evalProvide(call *ast.Call, env *environment.Environment) (value.Value, error) {
	argVals, err := evalArgs(call.Arguments, call.Position(), env)
	if err != nil {
		return nil, err
	}
	if len(argVals) != 1 {
		return nil, ierr.Arity(call.Position(), "provide expects 1 argument, got %d", len(argVals))
	}
	vec, ok := argVals[0].(*value.Vector)
	if !ok {
		return nil, ierr.Type(call.Position(), "provide expects a list of quoted identifiers, got %T", argVals[0])
	}
	for _, e := range vec.Elements {
		sym, ok := e.(value.Symbol)
		if !ok {
			return nil, ierr.Type(call.Position(), "provide expects a list of quoted identifiers, got %T", e)
		}
		env.Export(string(sym))
	}
	return value.Nil{}, nil
}
