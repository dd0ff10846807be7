package value

import "github.com/bollmeier/boli/internal/ast"

// LambdaArity is one fixed-arity body of a (possibly multi-arity) Lambda.
type LambdaArity struct {
	Parameters []string
	Body       *ast.Block
}

// Lambda is a closure: optional name (set when bound by the
// `(def (name params...) body...)` sugar, used by the tail-call analyzer
// to recognise self-recursion), a variadic-or-arity-map body selector, and
// the environment captured at creation time.
//
// Env is stored as `any` holding a *environment.Environment; value cannot
// import environment (environment imports value, for its name→Value map),
// so the concrete type is recovered by a type assertion in package eval,
// the only package that needs to open a child environment from it.
type Lambda struct {
	Name     string
	Env      any
	Variadic *LambdaArity // non-nil: fixed params + one rest-parameter
	Arities  map[int]LambdaArity
}

func (*Lambda) value()       {}
func (*Lambda) Truthy() bool { return true }

// MergeArity adds or replaces a fixed-arity body on a non-variadic Lambda,
// implementing spec.md §3's "lambda arity map" invariant: repeated `def`s
// of the same name with different fixed arities extend one Lambda value
// rather than shadowing it. Variadic lambdas never merge.
func (l *Lambda) MergeArity(arity int, a LambdaArity) {
	if l.Arities == nil {
		l.Arities = map[int]LambdaArity{}
	}
	l.Arities[arity] = a
}

// BuiltInFunction is a native callable registered via the builtin
// package's Declare; the metadata `help` prints is kept in that package's
// Declaration records, not here.
type BuiltInFunction struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

func (*BuiltInFunction) value()       {}
func (*BuiltInFunction) Truthy() bool { return true }
