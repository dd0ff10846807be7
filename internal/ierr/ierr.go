// Package ierr defines BOLI's seven-kind error taxonomy. Every error the
// evaluator, parser, or module loader returns is wrapped with
// github.com/samber/oops so a caller can recover structured context (the
// kind as the oops code, and the source position when known), while the default
// one-line message stays exactly the prefix text callers (and the literal
// scenarios in spec §8) assert on.
package ierr

import (
	"errors"
	"fmt"

	"github.com/samber/oops"

	"github.com/bollmeier/boli/internal/token"
)

// Kind is one of the seven error categories from spec §7, distinguished
// only by message prefix — never exposed to user code as a type.
type Kind string

const (
	KindLex        Kind = "lex"
	KindUndefined  Kind = "undefined-identifier"
	KindArity      Kind = "arity"
	KindType       Kind = "type"
	KindArithmetic Kind = "arithmetic"
	KindModule     Kind = "module"
	KindInternal   Kind = "internal"
)

// InterpError is the concrete error type surfaced to REPL/CLI callers.
// The oops-wrapped cause carries the structured debug context; Error()
// itself returns only the plain prefixed message.
type InterpError struct {
	Kind    Kind
	Message string
	Pos     *token.Position
	cause   error
}

func (e *InterpError) Error() string { return e.Message }
func (e *InterpError) Unwrap() error { return e.cause }

func new(kind Kind, pos *token.Position, format string, args ...any) *InterpError {
	msg := fmt.Sprintf(format, args...)
	builder := oops.Code(string(kind))
	if pos != nil {
		builder = builder.With("position", pos.String())
	}
	return &InterpError{
		Kind:    kind,
		Message: msg,
		Pos:     pos,
		cause:   builder.Errorf("%s", msg),
	}
}

func Lex(pos token.Position, format string, args ...any) *InterpError {
	return new(KindLex, &pos, format, args...)
}

func Undefined(pos token.Position, name string) *InterpError {
	return new(KindUndefined, &pos, "Undefined identifier: %s", name)
}

func Arity(pos token.Position, format string, args ...any) *InterpError {
	return new(KindArity, &pos, format, args...)
}

func Type(pos token.Position, format string, args ...any) *InterpError {
	return new(KindType, &pos, format, args...)
}

func Arithmetic(format string, args ...any) *InterpError {
	return new(KindArithmetic, nil, format, args...)
}

func Module(format string, args ...any) *InterpError {
	return new(KindModule, nil, format, args...)
}

func Internal(format string, args ...any) *InterpError {
	return new(KindInternal, nil, format, args...)
}

// As reports whether err (or something it wraps) is an *InterpError.
func As(err error) (*InterpError, bool) {
	var ie *InterpError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}
