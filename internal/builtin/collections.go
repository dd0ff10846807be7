package builtin

import (
	"github.com/bollmeier/boli/internal/environment"
	"github.com/bollmeier/boli/internal/ierr"
	"github.com/bollmeier/boli/internal/token"
	"github.com/bollmeier/boli/internal/value"
)

// hashKey canonicalizes a Value to the printed form Struct stores its
// entries under, so two structurally equal keys (e.g. two Strs holding
// "x") collide in a hash table the way spec.md §4.7 requires.
func hashKey(v value.Value) string { return value.String(v) }

// fieldPath normalizes struct-get/struct-set's path argument — a single
// quoted identifier or a quoted vector of identifiers — into an ordered
// list of bare field names, per spec.md §4.7's "quoted-identifier path
// for nested access".
func fieldPath(v value.Value, fname string) ([]string, error) {
	switch t := v.(type) {
	case value.Symbol:
		return []string{string(t)}, nil
	case *value.Vector:
		path := make([]string, 0, len(t.Elements))
		for _, e := range t.Elements {
			sym, ok := e.(value.Symbol)
			if !ok {
				return nil, ierr.Type(token.Position{}, "%s expects a quoted identifier path, got %T in path", fname, e)
			}
			path = append(path, string(sym))
		}
		if len(path) == 0 {
			return nil, ierr.Arity(token.Position{}, "%s expects a non-empty path", fname)
		}
		return path, nil
	default:
		return nil, ierr.Type(token.Position{}, "%s expects a quoted identifier or vector of identifiers as path, got %T", fname, v)
	}
}

func asHashOrSet(v value.Value, wantValues bool, fname string) (*value.Struct, error) {
	s, ok := v.(*value.Struct)
	if !ok || s.Type != nil || s.HasValues != wantValues {
		kind := "a set"
		if wantValues {
			kind = "a hash table"
		}
		return nil, ierr.Type(token.Position{}, "%s expects %s, got %T", fname, kind, v)
	}
	return s, nil
}

func installCollections(env *environment.Environment) {
	Declare(env, &Declaration{
		Name: "hash-table", Desc: "An empty hash table, or one pre-populated from alternating key/value arguments.",
		MinParameter: 0, MaxParameter: -1,
		Fn: func(args []value.Value) (value.Value, error) {
			if len(args)%2 != 0 {
				return nil, ierr.Arity(token.Position{}, "hash-table expects an even number of key/value arguments, got %d", len(args))
			}
			h := value.NewHashTable()
			for i := 0; i < len(args); i += 2 {
				h.Set(hashKey(args[i]), args[i], args[i+1])
			}
			return h, nil
		},
	})
	Declare(env, &Declaration{
		Name: "hash-get", Desc: "Looks up key in a hash table; nil if absent.",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{{Name: "h", Type: "struct"}, {Name: "key", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			h, err := asHashOrSet(args[0], true, "hash-get")
			if err != nil {
				return nil, err
			}
			v, ok := h.Get(hashKey(args[1]))
			if !ok {
				return value.Nil{}, nil
			}
			return v, nil
		},
	})
	Declare(env, &Declaration{
		Name: "hash-set!", Desc: "Installs or overwrites key with value in place; returns the value.",
		MinParameter: 3, MaxParameter: 3,
		Params: []DeclarationParameter{{Name: "h", Type: "struct"}, {Name: "key", Type: "any"}, {Name: "value", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			h, err := asHashOrSet(args[0], true, "hash-set!")
			if err != nil {
				return nil, err
			}
			h.Set(hashKey(args[1]), args[1], args[2])
			return args[2], nil
		},
	})
	Declare(env, &Declaration{
		Name: "hash-remove!", Desc: "Removes key from a hash table in place; true if it was present.",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{{Name: "h", Type: "struct"}, {Name: "key", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			h, err := asHashOrSet(args[0], true, "hash-remove!")
			if err != nil {
				return nil, err
			}
			return value.Bool(h.Remove(hashKey(args[1]))), nil
		},
	})
	Declare(env, &Declaration{
		Name: "hash-contains?", Desc: "True if key is present in a hash table.",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{{Name: "h", Type: "struct"}, {Name: "key", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			h, err := asHashOrSet(args[0], true, "hash-contains?")
			if err != nil {
				return nil, err
			}
			return value.Bool(h.Contains(hashKey(args[1]))), nil
		},
	})
	Declare(env, &Declaration{
		Name: "hash-keys", Desc: "A Vector of a hash table's keys in insertion order.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{{Name: "h", Type: "struct"}},
		Fn: func(args []value.Value) (value.Value, error) {
			h, err := asHashOrSet(args[0], true, "hash-keys")
			if err != nil {
				return nil, err
			}
			return value.NewVector(h.Keys()), nil
		},
	})

	Declare(env, &Declaration{
		Name: "set", Desc: "A set pre-populated from its arguments.",
		MinParameter: 0, MaxParameter: -1,
		Fn: func(args []value.Value) (value.Value, error) {
			s := value.NewSet()
			for _, a := range args {
				s.Set(hashKey(a), a, nil)
			}
			return s, nil
		},
	})
	Declare(env, &Declaration{
		Name: "set-add!", Desc: "Adds v to a set in place; returns true if it was newly added.",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{{Name: "s", Type: "struct"}, {Name: "v", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			s, err := asHashOrSet(args[0], false, "set-add!")
			if err != nil {
				return nil, err
			}
			already := s.Contains(hashKey(args[1]))
			s.Set(hashKey(args[1]), args[1], nil)
			return value.Bool(!already), nil
		},
	})
	Declare(env, &Declaration{
		Name: "set-remove!", Desc: "Removes v from a set in place; true if it was present.",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{{Name: "s", Type: "struct"}, {Name: "v", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			s, err := asHashOrSet(args[0], false, "set-remove!")
			if err != nil {
				return nil, err
			}
			return value.Bool(s.Remove(hashKey(args[1]))), nil
		},
	})
	Declare(env, &Declaration{
		Name: "set-contains?", Desc: "True if v is a member of a set.",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{{Name: "s", Type: "struct"}, {Name: "v", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			s, err := asHashOrSet(args[0], false, "set-contains?")
			if err != nil {
				return nil, err
			}
			return value.Bool(s.Contains(hashKey(args[1]))), nil
		},
	})
	Declare(env, &Declaration{
		Name: "struct?", Desc: "True if v is an instance of any def-struct type.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{{Name: "v", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			s, ok := args[0].(*value.Struct)
			return value.Bool(ok && s.Type != nil), nil
		},
	})

	Declare(env, &Declaration{
		Name: "struct-get", Desc: "Looks up a struct field by a quoted identifier, or walks a quoted vector of identifiers for nested access.",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{{Name: "s", Type: "struct"}, {Name: "path", Type: "symbol"}},
		Fn: func(args []value.Value) (value.Value, error) {
			path, err := fieldPath(args[1], "struct-get")
			if err != nil {
				return nil, err
			}
			cur := args[0]
			for _, field := range path {
				s, ok := cur.(*value.Struct)
				if !ok || s.Type == nil {
					return nil, ierr.Type(token.Position{}, "struct-get expects a struct, got %T", cur)
				}
				v, ok := s.Get(field)
				if !ok {
					return nil, ierr.Type(token.Position{}, "struct-get: %s has no field %q", s.Type.Name, field)
				}
				cur = v
			}
			return cur, nil
		},
	})
	Declare(env, &Declaration{
		Name: "struct-set", Desc: "Mutates a struct field in place by a quoted identifier, or the last segment of a quoted path for nested access; returns the new value.",
		MinParameter: 3, MaxParameter: 3,
		Params: []DeclarationParameter{{Name: "s", Type: "struct"}, {Name: "path", Type: "symbol"}, {Name: "value", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			path, err := fieldPath(args[1], "struct-set")
			if err != nil {
				return nil, err
			}
			cur := args[0]
			for _, field := range path[:len(path)-1] {
				s, ok := cur.(*value.Struct)
				if !ok || s.Type == nil {
					return nil, ierr.Type(token.Position{}, "struct-set expects a struct, got %T", cur)
				}
				v, ok := s.Get(field)
				if !ok {
					return nil, ierr.Type(token.Position{}, "struct-set: %s has no field %q", s.Type.Name, field)
				}
				cur = v
			}
			s, ok := cur.(*value.Struct)
			if !ok || s.Type == nil {
				return nil, ierr.Type(token.Position{}, "struct-set expects a struct, got %T", cur)
			}
			last := path[len(path)-1]
			if !s.Contains(last) {
				return nil, ierr.Type(token.Position{}, "struct-set: %s has no field %q", s.Type.Name, last)
			}
			s.Set(last, value.Symbol(last), args[2])
			return args[2], nil
		},
	})
}
