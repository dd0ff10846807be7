package eval_test

import (
	"testing"

	"github.com/bollmeier/boli/internal/builtin"
	"github.com/bollmeier/boli/internal/environment"
	"github.com/bollmeier/boli/internal/eval"
	"github.com/bollmeier/boli/internal/ierr"
	"github.com/bollmeier/boli/internal/parser"
	"github.com/bollmeier/boli/internal/tailcall"
	"github.com/bollmeier/boli/internal/value"
)

func run(t *testing.T, src string) value.Value {
	t.Helper()
	env := environment.New(nil)
	builtin.InstallPrelude(env)
	prog, err := parser.Parse("test", src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	tailcall.Mark(prog)
	var result value.Value = value.Nil{}
	for _, n := range prog.Children {
		result, err = eval.Eval(n, env)
		if err != nil {
			t.Fatalf("Eval(%q): %v", src, err)
		}
	}
	return result
}

func runErr(t *testing.T, src string) error {
	t.Helper()
	env := environment.New(nil)
	builtin.InstallPrelude(env)
	prog, err := parser.Parse("test", src)
	if err != nil {
		return err
	}
	tailcall.Mark(prog)
	for _, n := range prog.Children {
		if _, err := eval.Eval(n, env); err != nil {
			return err
		}
	}
	return nil
}

func TestEvalArithmetic(t *testing.T) {
	got := run(t, "(+ 1 2 3)")
	if got != value.Int(6) {
		t.Fatalf("got %v, want 6", got)
	}
}

func TestEvalDefAndLookup(t *testing.T) {
	got := run(t, "(def x 10) (* x x)")
	if got != value.Int(100) {
		t.Fatalf("got %v, want 100", got)
	}
}

func TestEvalIf(t *testing.T) {
	got := run(t, "(if (> 3 2) 1 2)")
	if got != value.Int(1) {
		t.Fatalf("got %v, want 1", got)
	}
}

func TestEvalLambdaCall(t *testing.T) {
	got := run(t, "(def (square x) (* x x)) (square 7)")
	if got != value.Int(49) {
		t.Fatalf("got %v, want 49", got)
	}
}

func TestEvalSelfTailRecursionDoesNotOverflow(t *testing.T) {
	got := run(t, `
		(def (count-down n acc)
			(if (= n 0) acc (count-down (- n 1) (+ acc 1))))
		(count-down 200000 0)
	`)
	if got != value.Int(200000) {
		t.Fatalf("got %v, want 200000", got)
	}
}

func TestEvalUndefinedNameIsUndefinedError(t *testing.T) {
	err := runErr(t, "no-such-name")
	if err == nil {
		t.Fatal("expected an error")
	}
	ie, ok := ierr.As(err)
	if !ok || ie.Kind != ierr.KindUndefined {
		t.Fatalf("got %v, want KindUndefined", err)
	}
}

func TestEvalStructDefinitionInstallsConstructorPredicateAccessors(t *testing.T) {
	got := run(t, `
		(def-struct point x y)
		(def p (point 3 4))
		(point-x p)
	`)
	if got != value.Int(3) {
		t.Fatalf("got %v, want 3", got)
	}

	isPoint := run(t, `
		(def-struct point x y)
		(def p (point 3 4))
		(point? p)
	`)
	if isPoint != value.Bool(true) {
		t.Fatalf("got %v, want true", isPoint)
	}
}

func TestEvalSetBangMutatesNearestBinding(t *testing.T) {
	got := run(t, "(def x 1) (set! x (+ x 1)) x")
	if got != value.Int(2) {
		t.Fatalf("got %v, want 2", got)
	}
}

func TestEvalBlockReturnsLastValue(t *testing.T) {
	got := run(t, "(block 1 2 3)")
	if got != value.Int(3) {
		t.Fatalf("got %v, want 3", got)
	}
}

func TestEvalLetScopesBindings(t *testing.T) {
	got := run(t, "(let ((x 1) (y 2)) (+ x y))")
	if got != value.Int(3) {
		t.Fatalf("got %v, want 3", got)
	}
}

func TestEvalAndOrShortCircuit(t *testing.T) {
	got := run(t, "(and #f (/ 1 0))")
	if got != value.Bool(false) {
		t.Fatalf("got %v, want false (should short-circuit before dividing by zero)", got)
	}
	got = run(t, "(or 5 (/ 1 0))")
	if got != value.Int(5) {
		t.Fatalf("got %v, want 5 (should short-circuit)", got)
	}
}

func TestEvalCondDesugars(t *testing.T) {
	got := run(t, `(cond ((= 1 2) "a") ((= 1 1) "b") (else "c"))`)
	if got != value.Str("b") {
		t.Fatalf("got %v, want b", got)
	}
}

func TestEvalQuotedListIsSymbolsNotLookups(t *testing.T) {
	got := run(t, "'(a b c)")
	vec, ok := got.(*value.Vector)
	if !ok {
		t.Fatalf("got %T, want *value.Vector", got)
	}
	if len(vec.Elements) != 3 {
		t.Fatalf("got %d elements, want 3", len(vec.Elements))
	}
	if vec.Elements[0] != value.Symbol("a") {
		t.Fatalf("got %v, want Symbol(a)", vec.Elements[0])
	}
}

func TestEvalVariadicLambda(t *testing.T) {
	got := run(t, "(def (my-list a ...) a) (my-list 1 2 3)")
	vec, ok := got.(*value.Vector)
	if !ok {
		t.Fatalf("got %T, want *value.Vector", got)
	}
	if len(vec.Elements) != 3 {
		t.Fatalf("got %d elements, want 3", len(vec.Elements))
	}
}
