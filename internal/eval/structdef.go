package eval

import (
	"github.com/bollmeier/boli/internal/ast"
	"github.com/bollmeier/boli/internal/environment"
	"github.com/bollmeier/boli/internal/ierr"
	"github.com/bollmeier/boli/internal/value"
)

// evalStructDefinition installs a StructType plus its generated
// constructor, predicate, and per-field getter/setter, per spec.md §4.3's
// StructDefinition semantics (i-iv). The generated callables are plain
// BuiltInFunctions, not Lambdas, since they have no AST body to re-enter.
func evalStructDefinition(t *ast.StructDefinition, env *environment.Environment) value.Value {
	st := &value.StructType{Name: t.Name, Fields: append([]string(nil), t.Fields...)}

	env.Set(st.Name, &value.BuiltInFunction{
		Name: st.Name,
		Fn: func(args []value.Value) (value.Value, error) {
			if len(args) != len(st.Fields) {
				return nil, ierr.Arity(t.Pos, "%s expects %d fields, got %d", st.Name, len(st.Fields), len(args))
			}
			s := value.NewStruct(st)
			for i, f := range st.Fields {
				s.Set(f, value.Symbol(f), args[i])
			}
			return s, nil
		},
	})

	predicateName := st.Name + "?"
	env.Set(predicateName, &value.BuiltInFunction{
		Name: predicateName,
		Fn: func(args []value.Value) (value.Value, error) {
			if len(args) != 1 {
				return nil, ierr.Arity(t.Pos, "%s expects 1 argument, got %d", predicateName, len(args))
			}
			s, ok := args[0].(*value.Struct)
			return value.Bool(ok && s.Type == st), nil
		},
	})

	for _, field := range st.Fields {
		field := field
		getterName := st.Name + "-" + field
		env.Set(getterName, &value.BuiltInFunction{
			Name: getterName,
			Fn: func(args []value.Value) (value.Value, error) {
				if len(args) != 1 {
					return nil, ierr.Arity(t.Pos, "%s expects 1 argument, got %d", getterName, len(args))
				}
				s, ok := args[0].(*value.Struct)
				if !ok || s.Type != st {
					return nil, ierr.Type(t.Pos, "%s expects a %s, got %T", getterName, st.Name, args[0])
				}
				v, _ := s.Get(field)
				return v, nil
			},
		})

		setterName := "set-" + st.Name + "-" + field + "!"
		env.Set(setterName, &value.BuiltInFunction{
			Name: setterName,
			Fn: func(args []value.Value) (value.Value, error) {
				if len(args) != 2 {
					return nil, ierr.Arity(t.Pos, "%s expects 2 arguments, got %d", setterName, len(args))
				}
				s, ok := args[0].(*value.Struct)
				if !ok || s.Type != st {
					return nil, ierr.Type(t.Pos, "%s expects a %s, got %T", setterName, st.Name, args[0])
				}
				s.Set(field, value.Symbol(field), args[1])
				return args[1], nil
			},
		})
	}

	return st
}
