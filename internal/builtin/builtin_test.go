package builtin_test

import (
	"testing"

	"github.com/bollmeier/boli/internal/builtin"
	"github.com/bollmeier/boli/internal/environment"
	"github.com/bollmeier/boli/internal/eval"
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

func vectorInts(t *testing.T, v value.Value) []int64 {
	t.Helper()
	vec, ok := v.(*value.Vector)
	if !ok {
		t.Fatalf("got %T, want *value.Vector", v)
	}
	out := make([]int64, len(vec.Elements))
	for i, e := range vec.Elements {
		n, ok := e.(value.Int)
		if !ok {
			t.Fatalf("element %d = %T, want value.Int", i, e)
		}
		out[i] = int64(n)
	}
	return out
}

func listInts(t *testing.T, v value.Value) []int64 {
	t.Helper()
	elems, ok := value.ListElements(v)
	if !ok {
		t.Fatalf("got %T, want a Pair-list", v)
	}
	out := make([]int64, len(elems))
	for i, e := range elems {
		n, ok := e.(value.Int)
		if !ok {
			t.Fatalf("element %d = %T, want value.Int", i, e)
		}
		out[i] = int64(n)
	}
	return out
}

func TestFilterOnVectorIsEagerVector(t *testing.T) {
	got := run(t, `(filter (vector 1 2 3 4 5 6) (lambda (x) (= 0 (% x 2))))`)
	if _, ok := got.(*value.Vector); !ok {
		t.Fatalf("got %T, want *value.Vector directly (no stream->vector needed)", got)
	}
	ints := vectorInts(t, got)
	if len(ints) != 3 || ints[0] != 2 || ints[1] != 4 || ints[2] != 6 {
		t.Fatalf("got %v, want [2 4 6]", ints)
	}
}

func TestFilterOnListIsEagerList(t *testing.T) {
	got := run(t, `(filter (list 1 2 3 4 5 6) (lambda (x) (= 0 (% x 2))))`)
	ints := listInts(t, got)
	if len(ints) != 3 || ints[0] != 2 || ints[1] != 4 || ints[2] != 6 {
		t.Fatalf("got %v, want [2 4 6]", ints)
	}
}

func TestFilterOnNilPassesThrough(t *testing.T) {
	got := run(t, `(filter nil (lambda (x) #t))`)
	if _, ok := got.(value.Nil); !ok {
		t.Fatalf("got %T, want value.Nil", got)
	}
}

func TestFilterOnStreamIsLazy(t *testing.T) {
	got := run(t, `(stream->vector (filter (vector->stream (vector 1 2 3 4 5 6)) (lambda (x) (= 0 (% x 2)))))`)
	ints := vectorInts(t, got)
	if len(ints) != 3 || ints[0] != 2 || ints[1] != 4 || ints[2] != 6 {
		t.Fatalf("got %v, want [2 4 6]", ints)
	}
}

func TestMapOnVectorsIsEagerVector(t *testing.T) {
	got := run(t, `(map (lambda (a b) (+ a b)) (vector 1 2 3) (vector 10 20 30))`)
	if _, ok := got.(*value.Vector); !ok {
		t.Fatalf("got %T, want *value.Vector directly (no stream->vector needed)", got)
	}
	ints := vectorInts(t, got)
	if len(ints) != 3 || ints[0] != 11 || ints[1] != 22 || ints[2] != 33 {
		t.Fatalf("got %v, want [11 22 33]", ints)
	}
}

func TestMapOnListIsEagerList(t *testing.T) {
	got := run(t, `(map (lambda (a b) (+ a b)) (list 1 2 3) (list 10 20 30))`)
	ints := listInts(t, got)
	if len(ints) != 3 || ints[0] != 11 || ints[1] != 22 || ints[2] != 33 {
		t.Fatalf("got %v, want [11 22 33]", ints)
	}
}

func TestMapOnNilPassesThrough(t *testing.T) {
	got := run(t, `(map (lambda (x) x) nil)`)
	if _, ok := got.(value.Nil); !ok {
		t.Fatalf("got %T, want value.Nil", got)
	}
}

func TestMapOnStreamsIsLazy(t *testing.T) {
	got := run(t, `(stream->vector (map (lambda (a b) (+ a b)) (vector->stream (vector 1 2 3)) (vector->stream (vector 10 20 30))))`)
	ints := vectorInts(t, got)
	if len(ints) != 3 || ints[0] != 11 || ints[1] != 22 || ints[2] != 33 {
		t.Fatalf("got %v, want [11 22 33]", ints)
	}
}

func TestTakeIsEagerVector(t *testing.T) {
	got := run(t, `(take (vector->stream (vector 1 2 3 4 5)) 3)`)
	ints := vectorInts(t, got)
	if len(ints) != 3 || ints[0] != 1 || ints[2] != 3 {
		t.Fatalf("got %v, want [1 2 3]", ints)
	}
}

func TestDropSkipsLeadingElements(t *testing.T) {
	got := run(t, `(stream->vector (drop (vector 1 2 3 4) 2))`)
	ints := vectorInts(t, got)
	if len(ints) != 2 || ints[0] != 3 || ints[1] != 4 {
		t.Fatalf("got %v, want [3 4]", ints)
	}
}

func TestConcatVectors(t *testing.T) {
	got := run(t, `(concat (vector 1 2) (vector 3 4))`)
	ints := vectorInts(t, got)
	if len(ints) != 4 {
		t.Fatalf("got %v, want length 4", ints)
	}
}

func TestHashTableRoundTrip(t *testing.T) {
	got := run(t, `
		(def h (hash-table))
		(hash-set! h "a" 1)
		(hash-set! h "b" 2)
		(hash-get h "a")
	`)
	if got != value.Int(1) {
		t.Fatalf("got %v, want 1", got)
	}
}

func TestHashContainsAfterRemove(t *testing.T) {
	got := run(t, `
		(def h (hash-table))
		(hash-set! h "a" 1)
		(hash-remove! h "a")
		(hash-contains? h "a")
	`)
	if got != value.Bool(false) {
		t.Fatalf("got %v, want false", got)
	}
}

func TestSetAddContains(t *testing.T) {
	got := run(t, `
		(def s (set))
		(set-add! s 1)
		(set-add! s 1)
		(set-contains? s 1)
	`)
	if got != value.Bool(true) {
		t.Fatalf("got %v, want true", got)
	}
}

func TestStringUpperLower(t *testing.T) {
	got := run(t, `(string-upper "hello")`)
	if got != value.Str("HELLO") {
		t.Fatalf("got %v, want HELLO", got)
	}
	got = run(t, `(string-lower "WORLD")`)
	if got != value.Str("world") {
		t.Fatalf("got %v, want world", got)
	}
}

func TestStringSubIsRuneIndexed(t *testing.T) {
	got := run(t, `(string-sub "héllo" 0 2)`)
	if got != value.Str("hé") {
		t.Fatalf("got %v, want hé", got)
	}
}

func TestArityErrorOnTooFewArguments(t *testing.T) {
	env := environment.New(nil)
	builtin.InstallPrelude(env)
	prog, err := parser.Parse("test", "(cons 1)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tailcall.Mark(prog)
	_, err = eval.Eval(prog.Children[0], env)
	if err == nil {
		t.Fatal("expected an arity error")
	}
}

func TestEqualStructuralEquality(t *testing.T) {
	got := run(t, `(equal? (vector 1 2 3) (vector 1 2 3))`)
	if got != value.Bool(true) {
		t.Fatalf("got %v, want true", got)
	}
	got = run(t, `(equal? (vector 1 2) (vector 1 2 3))`)
	if got != value.Bool(false) {
		t.Fatalf("got %v, want false", got)
	}
}
