package parser

import (
	"testing"

	"github.com/bollmeier/boli/internal/ast"
)

func parseOne(t *testing.T, src string) ast.Node {
	t.Helper()
	prog, err := Parse("test", src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	if len(prog.Children) != 1 {
		t.Fatalf("Parse(%q) produced %d top-level forms, want 1", src, len(prog.Children))
	}
	return prog.Children[0]
}

func TestParseInteger(t *testing.T) {
	n, ok := parseOne(t, "42").(*ast.Integer)
	if !ok {
		t.Fatalf("expected *ast.Integer")
	}
	if n.Value != 42 {
		t.Fatalf("got %d, want 42", n.Value)
	}
}

func TestParseReal(t *testing.T) {
	n, ok := parseOne(t, "3,5").(*ast.Real)
	if !ok {
		t.Fatalf("expected *ast.Real, got %T", parseOne(t, "3,5"))
	}
	if n.Value != 3.5 {
		t.Fatalf("got %v, want 3.5", n.Value)
	}
}

func TestParseRealWithDigitGroupSeparator(t *testing.T) {
	n, ok := parseOne(t, "1.000,5").(*ast.Real)
	if !ok {
		t.Fatalf("expected *ast.Real, got %T", parseOne(t, "1.000,5"))
	}
	if n.Value != 1000.5 {
		t.Fatalf("got %v, want 1000.5", n.Value)
	}
}

func TestParseCall(t *testing.T) {
	n, ok := parseOne(t, "(+ 1 2)").(*ast.Call)
	if !ok {
		t.Fatalf("expected *ast.Call")
	}
	if len(n.Arguments) != 2 {
		t.Fatalf("got %d args, want 2", len(n.Arguments))
	}
	if _, ok := n.Callee.(*ast.Operator); !ok {
		t.Fatalf("callee = %T, want *ast.Operator", n.Callee)
	}
}

func TestParseDottedPair(t *testing.T) {
	n, ok := parseOne(t, "(1 . 2)").(*ast.Pair)
	if !ok {
		t.Fatalf("expected *ast.Pair, got %T", parseOne(t, "(1 . 2)"))
	}
	if _, ok := n.Left.(*ast.Integer); !ok {
		t.Fatalf("left = %T, want *ast.Integer", n.Left)
	}
}

func TestParseDef(t *testing.T) {
	n, ok := parseOne(t, "(def x 10)").(*ast.Definition)
	if !ok {
		t.Fatalf("expected *ast.Definition")
	}
	if n.Name != "x" {
		t.Fatalf("name = %q, want x", n.Name)
	}
}

func TestParseDefLambdaSugar(t *testing.T) {
	n, ok := parseOne(t, "(def (square x) (* x x))").(*ast.Definition)
	if !ok {
		t.Fatalf("expected *ast.Definition")
	}
	lam, ok := n.Value.(*ast.Lambda)
	if !ok {
		t.Fatalf("value = %T, want *ast.Lambda", n.Value)
	}
	if lam.Name != "square" || len(lam.Parameters) != 1 || lam.Parameters[0] != "x" {
		t.Fatalf("lambda = %+v", lam)
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	n, ok := parseOne(t, "(if #t 1)").(*ast.IfExpression)
	if !ok {
		t.Fatalf("expected *ast.IfExpression")
	}
	if n.Else != nil {
		t.Fatalf("else = %v, want nil", n.Else)
	}
}

func TestParseCondDesugarsToNestedIf(t *testing.T) {
	n, ok := parseOne(t, "(cond (#f 1) (#t 2) (else 3))").(*ast.IfExpression)
	if !ok {
		t.Fatalf("expected *ast.IfExpression, got %T", parseOne(t, "(cond (#f 1) (#t 2) (else 3))"))
	}
	if _, ok := n.Else.(*ast.IfExpression); !ok {
		t.Fatalf("else = %T, want nested *ast.IfExpression", n.Else)
	}
}

func TestParseAndDesugarsToIf(t *testing.T) {
	if _, ok := parseOne(t, "(and 1 2 3)").(*ast.IfExpression); !ok {
		t.Fatalf("expected (and ...) to desugar to *ast.IfExpression")
	}
}

func TestParseOrDesugarsToBlock(t *testing.T) {
	if _, ok := parseOne(t, "(or 1 2)").(*ast.Block); !ok {
		t.Fatalf("expected (or ...) to desugar to *ast.Block")
	}
}

func TestParseLetDesugarsToBlock(t *testing.T) {
	n, ok := parseOne(t, "(let ((x 1) (y 2)) (+ x y))").(*ast.Block)
	if !ok {
		t.Fatalf("expected *ast.Block")
	}
	if len(n.Children) != 3 {
		t.Fatalf("got %d children, want 3 (2 defs + 1 body form)", len(n.Children))
	}
	if _, ok := n.Children[0].(*ast.Definition); !ok {
		t.Fatalf("children[0] = %T, want *ast.Definition", n.Children[0])
	}
}

func TestParseQuotedList(t *testing.T) {
	n, ok := parseOne(t, "'(1 2 3)").(*ast.List)
	if !ok {
		t.Fatalf("expected *ast.List, got %T", parseOne(t, "'(1 2 3)"))
	}
	if !n.Quoted || len(n.Elements) != 3 {
		t.Fatalf("quoted=%v elements=%d, want true, 3", n.Quoted, len(n.Elements))
	}
}

func TestParseUnclosedGroupReportsExpectingMatchingParen(t *testing.T) {
	_, err := Parse("test", "(+ 1 2")
	if err == nil {
		t.Fatal("expected an error for unclosed group")
	}
	if err.Error() != "expecting matching )" {
		t.Fatalf("Error() = %q, want %q", err.Error(), "expecting matching )")
	}
}

func TestParseLambdaVariadic(t *testing.T) {
	n, ok := parseOne(t, "(lambda (a b ...) a)").(*ast.Lambda)
	if !ok {
		t.Fatalf("expected *ast.Lambda")
	}
	if !n.Variadic {
		t.Fatal("expected Variadic = true")
	}
	if len(n.Parameters) != 2 {
		t.Fatalf("got %d parameters, want 2", len(n.Parameters))
	}
}
