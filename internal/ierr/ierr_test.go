package ierr

import (
	"errors"
	"testing"

	"github.com/bollmeier/boli/internal/token"
)

func TestUndefinedMessageAndKind(t *testing.T) {
	err := Undefined(token.Position{Source: "f", Line: 1, Col: 2}, "foo")
	if err.Kind != KindUndefined {
		t.Fatalf("Kind = %v, want KindUndefined", err.Kind)
	}
	if err.Error() != "Undefined identifier: foo" {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestAsUnwrapsToConcreteType(t *testing.T) {
	var err error = Arithmetic("division by zero")
	ie, ok := As(err)
	if !ok {
		t.Fatal("As() = false, want true")
	}
	if ie.Kind != KindArithmetic {
		t.Fatalf("Kind = %v, want KindArithmetic", ie.Kind)
	}
}

func TestAsFailsForPlainError(t *testing.T) {
	_, ok := As(errors.New("plain"))
	if ok {
		t.Fatal("As() = true for a plain error, want false")
	}
}

func TestUnwrapExposesOopsCause(t *testing.T) {
	err := Type(token.Position{}, "expected a number, got %T", 1)
	if errors.Unwrap(err) == nil {
		t.Fatal("expected a non-nil wrapped cause")
	}
}
