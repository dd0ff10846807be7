package value

import (
	"math"

	"github.com/bollmeier/boli/internal/ierr"
	"github.com/bollmeier/boli/internal/token"
)

// number is the internal Int|Rational|Real sum used only inside this
// file's coercion matrix, mirroring original_source's number_functions.rs
// Number enum so the add/sub/mul/div/pow/rem/compare rules transcribe
// directly from its match arms.
type number struct {
	kind int // 0 Int, 1 Rational, 2 Real
	i    int64
	n, d int64
	f    float64
}

const (
	kindInt = iota
	kindRational
	kindReal
)

func toNumber(v Value) (number, bool) {
	switch t := v.(type) {
	case Int:
		return number{kind: kindInt, i: int64(t)}, true
	case Rational:
		return number{kind: kindRational, n: t.Num, d: t.Den}, true
	case Real:
		return number{kind: kindReal, f: float64(t)}, true
	default:
		return number{}, false
	}
}

func (n number) toFloat() float64 {
	switch n.kind {
	case kindInt:
		return float64(n.i)
	case kindRational:
		return float64(n.n) / float64(n.d)
	default:
		return n.f
	}
}

func fromNumber(n number) Value {
	switch n.kind {
	case kindInt:
		return Int(n.i)
	case kindRational:
		return ReduceRational(NewRational(n.n, n.d))
	default:
		return Real(n.f)
	}
}

func add(a, b number) number {
	switch {
	case a.kind == kindInt && b.kind == kindInt:
		return number{kind: kindInt, i: a.i + b.i}
	case a.kind == kindReal || b.kind == kindReal:
		return number{kind: kindReal, f: a.toFloat() + b.toFloat()}
	default:
		an, ad := asFrac(a)
		bn, bd := asFrac(b)
		return number{kind: kindRational, n: an*bd + bn*ad, d: ad * bd}
	}
}

func sub(a, b number) number {
	switch {
	case a.kind == kindInt && b.kind == kindInt:
		return number{kind: kindInt, i: a.i - b.i}
	case a.kind == kindReal || b.kind == kindReal:
		return number{kind: kindReal, f: a.toFloat() - b.toFloat()}
	default:
		an, ad := asFrac(a)
		bn, bd := asFrac(b)
		return number{kind: kindRational, n: an*bd - bn*ad, d: ad * bd}
	}
}

func mul(a, b number) number {
	switch {
	case a.kind == kindInt && b.kind == kindInt:
		return number{kind: kindInt, i: a.i * b.i}
	case a.kind == kindReal || b.kind == kindReal:
		return number{kind: kindReal, f: a.toFloat() * b.toFloat()}
	default:
		an, ad := asFrac(a)
		bn, bd := asFrac(b)
		return number{kind: kindRational, n: an * bn, d: ad * bd}
	}
}

func div(a, b number) (number, error) {
	switch {
	case a.kind == kindReal || b.kind == kindReal:
		return number{kind: kindReal, f: a.toFloat() / b.toFloat()}, nil
	default:
		an, ad := asFrac(a)
		bn, bd := asFrac(b)
		if bn == 0 {
			return number{}, ierr.Arithmetic("division by zero")
		}
		return number{kind: kindRational, n: an * bd, d: ad * bn}, nil
	}
}

func pow(a, b number) number {
	if a.kind == kindInt && b.kind == kindInt {
		return number{kind: kindInt, i: intPow(a.i, b.i)}
	}
	if b.kind == kindInt {
		return number{kind: kindReal, f: math.Pow(a.toFloat(), float64(b.i))}
	}
	return number{kind: kindReal, f: math.Pow(a.toFloat(), b.toFloat())}
}

func rem(a, b number) number {
	if a.kind == kindInt && b.kind == kindInt {
		return number{kind: kindInt, i: a.i % b.i}
	}
	return number{kind: kindReal, f: math.Mod(a.toFloat(), b.toFloat())}
}

func asFrac(n number) (int64, int64) {
	if n.kind == kindInt {
		return n.i, 1
	}
	return n.n, n.d
}

func intPow(base, exp int64) int64 {
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	return result
}

func numEq(a, b number) bool {
	if a.kind != kindReal && b.kind != kindReal {
		an, ad := asFrac(a)
		bn, bd := asFrac(b)
		return an*bd == bn*ad
	}
	return math.Abs(a.toFloat()-b.toFloat()) < 1e-9
}

func numLt(a, b number) bool { return a.toFloat() < b.toFloat() }
func numGt(a, b number) bool { return a.toFloat() > b.toFloat() }

// reduce implements number_functions.rs's calculate(): empty → Int(0),
// singleton → itself, otherwise fold left-to-right or right-to-left per
// leftAssoc (only `^` uses false, matching its right-associative rule).
func reduce(op func(a, b number) number, nums []number, leftAssoc bool) number {
	if len(nums) == 0 {
		return number{kind: kindInt, i: 0}
	}
	if len(nums) == 1 {
		return nums[0]
	}
	if leftAssoc {
		result := nums[0]
		for _, n := range nums[1:] {
			result = op(result, n)
		}
		return result
	}
	result := nums[len(nums)-1]
	for i := len(nums) - 2; i >= 0; i-- {
		result = op(nums[i], result)
	}
	return result
}

func toNumbers(args []Value) ([]number, error) {
	nums := make([]number, len(args))
	for i, a := range args {
		n, ok := toNumber(a)
		if !ok {
			return nil, ierr.Type(token.Position{}, "expected a number, got %T", a)
		}
		nums[i] = n
	}
	return nums, nil
}

// Add implements variadic `+`.
func Add(args []Value) (Value, error) { return arith(args, add, true) }

// Sub implements variadic `-`.
func Sub(args []Value) (Value, error) { return arith(args, sub, true) }

// Mul implements variadic `*`.
func Mul(args []Value) (Value, error) { return arith(args, mul, true) }

// Div implements variadic `/`, rejecting a zero Rational denominator
// explicitly per spec.md §7 kind 5.
func Div(args []Value) (Value, error) {
	nums, err := toNumbers(args)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return Int(0), nil
	}
	result := nums[0]
	for _, n := range nums[1:] {
		var err error
		result, err = div(result, n)
		if err != nil {
			return nil, err
		}
	}
	return fromNumber(result), nil
}

// Pow implements right-associative `^`.
func Pow(args []Value) (Value, error) { return arith(args, pow, false) }

// Rem implements variadic `%`.
func Rem(args []Value) (Value, error) { return arith(args, rem, true) }

func arith(args []Value, op func(a, b number) number, leftAssoc bool) (Value, error) {
	nums, err := toNumbers(args)
	if err != nil {
		return nil, err
	}
	return fromNumber(reduce(op, nums, leftAssoc)), nil
}

// compareAll implements spec.md §4.1's "all adjacent pairs satisfy" rule:
// empty → false, singleton → true.
func compareAll(args []Value, cmp func(a, b number) bool) (Value, error) {
	nums, err := toNumbers(args)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return Bool(false), nil
	}
	for i := 1; i < len(nums); i++ {
		if !cmp(nums[i-1], nums[i]) {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}

func Eq(args []Value) (Value, error) { return compareAll(args, numEq) }
func Lt(args []Value) (Value, error) { return compareAll(args, numLt) }
func Gt(args []Value) (Value, error) { return compareAll(args, numGt) }
func Le(args []Value) (Value, error) {
	return compareAll(args, func(a, b number) bool { return numEq(a, b) || numLt(a, b) })
}
func Ge(args []Value) (Value, error) {
	return compareAll(args, func(a, b number) bool { return numEq(a, b) || numGt(a, b) })
}
