// Package value implements the BOLI runtime value lattice: a closed sum of
// Go types dispatched by a type switch rather than a trait object with
// runtime downcasting, per spec.md §9's design note. Reference-kind values
// (Pair, Vector, Struct, Lambda, Stream) are always held behind a pointer
// so mutation through one handle is visible through every other handle to
// the same value, the Go equivalent of the teacher's reference-counted
// interior-mutable cell.
package value

import "github.com/bollmeier/boli/internal/token"

// Value is implemented by every runtime value tag named in spec.md §3.
type Value interface {
	Truthy() bool
	value()
}

// Nil is the sole absence-of-value; falsy.
type Nil struct{}

func (Nil) value()       {}
func (Nil) Truthy() bool { return false }

// Bool wraps a boolean.
type Bool bool

func (Bool) value()          {}
func (b Bool) Truthy() bool  { return bool(b) }

// Int is a signed 64-bit integer.
type Int int64

func (Int) value()          {}
func (i Int) Truthy() bool  { return i != 0 }

// Rational is always kept normalised: Den > 0, gcd(|Num|, Den) = 1. Use
// NewRational rather than a struct literal so that invariant always
// holds — arithmetic in arith.go relies on it.
type Rational struct {
	Num, Den int64
}

func (Rational) value()        {}
func (Rational) Truthy() bool  { return true } // a reduced Rational is never the zero Int

// NewRational normalises (n, d) to the canonical form required by spec.md
// §3's Rational invariant, collapsing to nothing special-cased here —
// callers that want auto-collapse to Int when Den==1 use ReduceRational.
func NewRational(n, d int64) Rational {
	if d < 0 {
		n, d = -n, -d
	}
	if g := gcd(abs(n), d); g > 1 {
		n, d = n/g, d/g
	}
	return Rational{Num: n, Den: d}
}

// ReduceRational collapses a normalised Rational with Den==1 down to Int,
// matching number_functions.rs's calculate_value rewrap rule.
func ReduceRational(r Rational) Value {
	if r.Den == 1 {
		return Int(r.Num)
	}
	return r
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func abs(a int64) int64 {
	if a < 0 {
		return -a
	}
	return a
}

// Real is an IEEE-754 binary64 value.
type Real float64

func (Real) value()        {}
func (Real) Truthy() bool  { return true }

// Str is a UTF-8 string, indexed by rune for string-sub/string-count.
type Str string

func (Str) value()         {}
func (Str) Truthy() bool   { return true }

// Symbol is an interned-by-value identifier-like text produced by quote
// syntax, `'name`.
type Symbol string

func (Symbol) value()        {}
func (Symbol) Truthy() bool  { return true }

// Quote preserves a raw token for later inspection without evaluating it.
type Quote struct {
	Token token.Token
}

func (Quote) value()        {}
func (Quote) Truthy() bool  { return true }

// TailCall is the sentinel produced by a tail-marked self-recursive call
// site; the enclosing lambda invocation's trampoline loop detects it by
// tag and refreshes its bindings instead of returning.
type TailCall struct {
	Lambda *Lambda
	Args   []Value
}

func (TailCall) value()        {}
func (TailCall) Truthy() bool  { return true }

// Spread wraps a collection to be spliced into the enclosing call's
// argument list at the call site, never observed past evaluation of the
// Call node itself.
type Spread struct {
	Inner Value
}

func (Spread) value()        {}
func (Spread) Truthy() bool  { return true }

// Truthy implements spec.md §4.3's if-truthiness rule uniformly: Nil and
// Bool(false) are falsy, Int(0) is falsy, every other scalar is truthy;
// collection falsiness (empty Vector / empty Pair-list) is implemented on
// those concrete types in pair.go and vector.go.
func Truthy(v Value) bool { return v.Truthy() }
