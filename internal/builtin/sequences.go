package builtin

import (
	"github.com/bollmeier/boli/internal/environment"
	"github.com/bollmeier/boli/internal/eval"
	"github.com/bollmeier/boli/internal/ierr"
	"github.com/bollmeier/boli/internal/token"
	"github.com/bollmeier/boli/internal/value"
)

// callValue invokes a user-supplied callable (Lambda or BuiltInFunction)
// with args — the one place this package crosses into internal/eval,
// needed because filter/map/iterator/etc. accept predicate/step
// functions that may themselves be BOLI closures.
func callValue(fn value.Value, args []value.Value) (value.Value, error) {
	switch t := fn.(type) {
	case *value.BuiltInFunction:
		return t.Fn(args)
	case *value.Lambda:
		return eval.Apply(token.Position{}, t, args)
	default:
		return nil, ierr.Type(token.Position{}, "expected a function, got %T", fn)
	}
}

// asStream normalizes any of BOLI's three sequence kinds into a fresh
// Stream for the lazy combinators (filter/map/drop/drop-while/take/
// take-while/stream->vector all read through this), matching spec.md §4.5's
// "dispatch by runtime kind" rule for sequence-consuming builtins. A
// Stream argument is cloned, so pulling from the result never advances
// the caller's stream.
func asStream(v value.Value) (*value.Stream, error) {
	switch t := v.(type) {
	case *value.Stream:
		return t.Clone(), nil
	case *value.Vector:
		return value.NewFromVector(t), nil
	case value.Nil:
		return value.NewFromVector(value.NewVector(nil)), nil
	case *value.Pair:
		elems, ok := value.ListElements(t)
		if !ok {
			return nil, ierr.Type(token.Position{}, "expected a list-shaped sequence")
		}
		return value.NewFromVector(value.NewVector(elems)), nil
	default:
		return nil, ierr.Type(token.Position{}, "expected a sequence (vector, list, or stream), got %T", v)
	}
}

func drain(s *value.Stream) ([]value.Value, error) {
	var out []value.Value
	for {
		v, ok, err := s.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}

// wrapEager re-wraps a drained element slice in the same kind of sequence
// the operation was asked to produce, per spec.md §4.5's "filter/map
// dispatch on their sequence argument's kind" rule: a Vector argument
// yields an eager Vector, a Pair-list argument yields an eager Pair-list.
func wrapEager(like value.Value, elems []value.Value) value.Value {
	if _, ok := like.(*value.Pair); ok {
		return value.ListFromSlice(elems)
	}
	return value.NewVector(elems)
}

func installSequences(env *environment.Environment) {
	seqParam := DeclarationParameter{Name: "seq", Type: "any", Desc: "a vector, list, or stream"}
	fnParam := DeclarationParameter{Name: "fn", Type: "func", Desc: "a 1-argument predicate or transform"}

	Declare(env, &Declaration{
		Name: "list", Desc: "Builds a Pair-list from its arguments.",
		MinParameter: 0, MaxParameter: -1,
		Fn: func(args []value.Value) (value.Value, error) {
			return value.ListFromSlice(args), nil
		},
	})
	Declare(env, &Declaration{
		Name: "cons", Desc: "Builds a Pair from two values.",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{{Name: "left", Type: "any"}, {Name: "right", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			return &value.Pair{Left: args[0], Right: args[1]}, nil
		},
	})
	Declare(env, &Declaration{
		Name: "car", Desc: "The left element of a Pair.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{{Name: "p", Type: "list"}},
		Fn: func(args []value.Value) (value.Value, error) {
			p, ok := args[0].(*value.Pair)
			if !ok {
				return nil, ierr.Type(token.Position{}, "car expects a pair, got %T", args[0])
			}
			return p.Left, nil
		},
	})
	Declare(env, &Declaration{
		Name: "cdr", Desc: "The right element of a Pair.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{{Name: "p", Type: "list"}},
		Fn: func(args []value.Value) (value.Value, error) {
			p, ok := args[0].(*value.Pair)
			if !ok {
				return nil, ierr.Type(token.Position{}, "cdr expects a pair, got %T", args[0])
			}
			return p.Right, nil
		},
	})
	Declare(env, &Declaration{
		Name: "pair?", Desc: "True if v is a Pair (list or dotted).",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{{Name: "v", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			_, ok := args[0].(*value.Pair)
			return value.Bool(ok), nil
		},
	})
	Declare(env, &Declaration{
		Name: "vector", Desc: "Builds a Vector from its arguments.",
		MinParameter: 0, MaxParameter: -1,
		Fn: func(args []value.Value) (value.Value, error) {
			elems := make([]value.Value, len(args))
			copy(elems, args)
			return value.NewVector(elems), nil
		},
	})
	Declare(env, &Declaration{
		Name: "vector?", Desc: "True if v is a Vector.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{{Name: "v", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			_, ok := args[0].(*value.Vector)
			return value.Bool(ok), nil
		},
	})
	Declare(env, &Declaration{
		Name: "stream?", Desc: "True if v is a Stream.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{{Name: "v", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			_, ok := args[0].(*value.Stream)
			return value.Bool(ok), nil
		},
	})
	Declare(env, &Declaration{
		Name: "vector-ref", Desc: "The element of vec at a 0-based index.",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{{Name: "vec", Type: "vector"}, {Name: "i", Type: "number"}},
		Fn: func(args []value.Value) (value.Value, error) {
			vec, ok := args[0].(*value.Vector)
			if !ok {
				return nil, ierr.Type(token.Position{}, "vector-ref expects a vector, got %T", args[0])
			}
			i, ok := args[1].(value.Int)
			if !ok {
				return nil, ierr.Type(token.Position{}, "vector-ref expects an int index, got %T", args[1])
			}
			if int(i) < 0 || int(i) >= len(vec.Elements) {
				return nil, ierr.Type(token.Position{}, "vector-ref index %d out of range [0,%d)", i, len(vec.Elements))
			}
			return vec.Elements[i], nil
		},
	})
	Declare(env, &Declaration{
		Name: "vector-set!", Desc: "Mutates vec at a 0-based index in place; returns the new value.",
		MinParameter: 3, MaxParameter: 3,
		Params: []DeclarationParameter{
			{Name: "vec", Type: "vector"}, {Name: "i", Type: "number"}, {Name: "v", Type: "any"},
		},
		Fn: func(args []value.Value) (value.Value, error) {
			vec, ok := args[0].(*value.Vector)
			if !ok {
				return nil, ierr.Type(token.Position{}, "vector-set! expects a vector, got %T", args[0])
			}
			i, ok := args[1].(value.Int)
			if !ok {
				return nil, ierr.Type(token.Position{}, "vector-set! expects an int index, got %T", args[1])
			}
			if int(i) < 0 || int(i) >= len(vec.Elements) {
				return nil, ierr.Type(token.Position{}, "vector-set! index %d out of range [0,%d)", i, len(vec.Elements))
			}
			vec.Elements[i] = args[2]
			return args[2], nil
		},
	})
	Declare(env, &Declaration{
		Name: "vector-remove!", Desc: "Removes and returns the element at a 0-based index, shifting the rest down.",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{{Name: "vec", Type: "vector"}, {Name: "i", Type: "number"}},
		Fn: func(args []value.Value) (value.Value, error) {
			vec, ok := args[0].(*value.Vector)
			if !ok {
				return nil, ierr.Type(token.Position{}, "vector-remove! expects a vector, got %T", args[0])
			}
			i, ok := args[1].(value.Int)
			if !ok || int(i) < 0 || int(i) >= len(vec.Elements) {
				return nil, ierr.Type(token.Position{}, "vector-remove! index out of range")
			}
			removed := vec.Elements[i]
			vec.Elements = append(vec.Elements[:i], vec.Elements[i+1:]...)
			return removed, nil
		},
	})
	Declare(env, &Declaration{
		Name: "vector->stream", Desc: "A Stream yielding vec's elements in order.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{{Name: "vec", Type: "vector"}},
		Fn: func(args []value.Value) (value.Value, error) {
			vec, ok := args[0].(*value.Vector)
			if !ok {
				return nil, ierr.Type(token.Position{}, "vector->stream expects a vector, got %T", args[0])
			}
			return value.NewFromVector(vec), nil
		},
	})
	Declare(env, &Declaration{
		Name: "iterator", Desc: "A Stream that starts at `start` and repeatedly applies `fn` to produce the next element, terminating the first time `fn` returns nil.",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{{Name: "start", Type: "any"}, fnParam},
		Fn: func(args []value.Value) (value.Value, error) {
			step := args[1]
			return value.NewIterator(args[0], func(cur value.Value) (value.Value, error) {
				return callValue(step, []value.Value{cur})
			}), nil
		},
	})
	Declare(env, &Declaration{
		Name: "count", Desc: "The number of elements in a vector, list, or the rune count of a string.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{seqParam},
		Fn: func(args []value.Value) (value.Value, error) {
			switch t := args[0].(type) {
			case *value.Vector:
				return value.Int(t.Count()), nil
			case value.Str:
				return value.Int(len([]rune(string(t)))), nil
			case value.Nil:
				return value.Int(0), nil
			case *value.Pair:
				n, ok := value.ListCount(t)
				if !ok {
					return nil, ierr.Type(token.Position{}, "count expects a list-shaped pair")
				}
				return value.Int(n), nil
			default:
				return nil, ierr.Type(token.Position{}, "count expects a sequence, got %T", args[0])
			}
		},
	})
	Declare(env, &Declaration{
		Name: "empty?", Desc: "True if a vector, list, or string has no elements.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{seqParam},
		Fn: func(args []value.Value) (value.Value, error) {
			switch t := args[0].(type) {
			case *value.Vector:
				return value.Bool(t.Count() == 0), nil
			case value.Str:
				return value.Bool(t == ""), nil
			case value.Nil:
				return value.Bool(true), nil
			case *value.Pair:
				return value.Bool(false), nil
			default:
				return nil, ierr.Type(token.Position{}, "empty? expects a sequence, got %T", args[0])
			}
		},
	})
	Declare(env, &Declaration{
		Name: "concat", Desc: "Concatenates two vectors, two lists, or two strings of the same kind.",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{{Name: "a", Type: "any"}, {Name: "b", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			switch a := args[0].(type) {
			case *value.Vector:
				b, ok := args[1].(*value.Vector)
				if !ok {
					return nil, ierr.Type(token.Position{}, "concat expects two vectors")
				}
				out := make([]value.Value, 0, len(a.Elements)+len(b.Elements))
				out = append(out, a.Elements...)
				out = append(out, b.Elements...)
				return value.NewVector(out), nil
			case value.Str:
				b, ok := args[1].(value.Str)
				if !ok {
					return nil, ierr.Type(token.Position{}, "concat expects two strings")
				}
				return a + b, nil
			case value.Nil, *value.Pair:
				aElems, ok := value.ListElements(a)
				if !ok {
					return nil, ierr.Type(token.Position{}, "concat expects two lists")
				}
				bElems, ok := value.ListElements(args[1])
				if !ok {
					return nil, ierr.Type(token.Position{}, "concat expects two lists")
				}
				return value.ListFromSlice(append(aElems, bElems...)), nil
			default:
				return nil, ierr.Type(token.Position{}, "concat expects two vectors, lists, or strings, got %T", args[0])
			}
		},
	})

	Declare(env, &Declaration{
		Name: "filter", Desc: "seq's elements for which fn returns truthy: eager Vector for a Vector, eager Pair-list for a Pair-list, Nil unchanged for Nil, lazy Stream for a Stream.",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{seqParam, fnParam},
		Fn: func(args []value.Value) (value.Value, error) {
			pred := args[1]
			predFn := func(v value.Value) (bool, error) {
				r, err := callValue(pred, []value.Value{v})
				if err != nil {
					return false, err
				}
				return value.Truthy(r), nil
			}
			switch seq := args[0].(type) {
			case value.Nil:
				return value.Nil{}, nil
			case *value.Stream:
				return value.NewFiltered(predFn, seq), nil
			case *value.Vector, *value.Pair:
				s, err := asStream(seq)
				if err != nil {
					return nil, err
				}
				elems, err := drain(value.NewFiltered(predFn, s))
				if err != nil {
					return nil, err
				}
				return wrapEager(seq, elems), nil
			default:
				return nil, ierr.Type(token.Position{}, "filter expects a sequence (vector, list, or stream), got %T", args[0])
			}
		},
	})
	Declare(env, &Declaration{
		Name: "map", Desc: "fn applied to the elements of one or more sequences pulled in lockstep: eager Vector when the first sequence is a Vector, eager Pair-list when it's a Pair-list, Nil unchanged when it's Nil, lazy Stream when it's a Stream.",
		MinParameter: 2, MaxParameter: -1,
		Params: []DeclarationParameter{fnParam, seqParam},
		Fn: func(args []value.Value) (value.Value, error) {
			fn := args[0]
			if _, ok := args[1].(value.Nil); ok {
				return value.Nil{}, nil
			}
			streams := make([]*value.Stream, 0, len(args)-1)
			for _, a := range args[1:] {
				s, err := asStream(a)
				if err != nil {
					return nil, err
				}
				streams = append(streams, s)
			}
			mapped := value.NewMapped(func(vals []value.Value) (value.Value, error) {
				return callValue(fn, vals)
			}, streams)
			if _, ok := args[1].(*value.Stream); ok {
				return mapped, nil
			}
			elems, err := drain(mapped)
			if err != nil {
				return nil, err
			}
			return wrapEager(args[1], elems), nil
		},
	})
	Declare(env, &Declaration{
		Name: "drop", Desc: "A Stream of seq's elements after discarding the first n.",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{seqParam, {Name: "n", Type: "number"}},
		Fn: func(args []value.Value) (value.Value, error) {
			s, err := asStream(args[0])
			if err != nil {
				return nil, err
			}
			n, ok := args[1].(value.Int)
			if !ok {
				return nil, ierr.Type(token.Position{}, "drop expects an int count, got %T", args[1])
			}
			return value.NewDropped(int(n), s), nil
		},
	})
	Declare(env, &Declaration{
		Name: "drop-while", Desc: "A Stream of seq's elements after discarding a leading run for which fn is truthy.",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{seqParam, fnParam},
		Fn: func(args []value.Value) (value.Value, error) {
			s, err := asStream(args[0])
			if err != nil {
				return nil, err
			}
			pred := args[1]
			return value.NewDroppedWhile(func(v value.Value) (bool, error) {
				r, err := callValue(pred, []value.Value{v})
				if err != nil {
					return false, err
				}
				return value.Truthy(r), nil
			}, s), nil
		},
	})
	Declare(env, &Declaration{
		Name: "take", Desc: "A Vector of the first n elements pulled from seq (eager).",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{seqParam, {Name: "n", Type: "number"}},
		Fn: func(args []value.Value) (value.Value, error) {
			s, err := asStream(args[0])
			if err != nil {
				return nil, err
			}
			n, ok := args[1].(value.Int)
			if !ok {
				return nil, ierr.Type(token.Position{}, "take expects an int count, got %T", args[1])
			}
			out := make([]value.Value, 0, n)
			for i := int64(0); i < int64(n); i++ {
				v, ok, err := s.Next()
				if err != nil {
					return nil, err
				}
				if !ok {
					break
				}
				out = append(out, v)
			}
			return value.NewVector(out), nil
		},
	})
	Declare(env, &Declaration{
		Name: "take-while", Desc: "A Vector of the leading run of seq's elements for which fn is truthy (eager).",
		MinParameter: 2, MaxParameter: 2,
		Params: []DeclarationParameter{seqParam, fnParam},
		Fn: func(args []value.Value) (value.Value, error) {
			s, err := asStream(args[0])
			if err != nil {
				return nil, err
			}
			pred := args[1]
			var out []value.Value
			for {
				v, ok, err := s.Next()
				if err != nil {
					return nil, err
				}
				if !ok {
					break
				}
				keep, err := callValue(pred, []value.Value{v})
				if err != nil {
					return nil, err
				}
				if !value.Truthy(keep) {
					break
				}
				out = append(out, v)
			}
			return value.NewVector(out), nil
		},
	})
	Declare(env, &Declaration{
		Name: "stream->vector", Desc: "Eagerly drains a stream (or vector, or list) into a Vector.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{seqParam},
		Fn: func(args []value.Value) (value.Value, error) {
			s, err := asStream(args[0])
			if err != nil {
				return nil, err
			}
			elems, err := drain(s)
			if err != nil {
				return nil, err
			}
			return value.NewVector(elems), nil
		},
	})
}
