package value

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders v the way `write` would: machine-readable, quoting
// strings, re-emitting the `,`-decimal convention for Real, grounded on
// the teacher's scm/printer.go String() quick-printer.
func String(v Value) string {
	var b strings.Builder
	write(&b, v)
	return b.String()
}

// Display renders v the way `display` would: unquoted strings, otherwise
// identical to String.
func Display(v Value) string {
	if s, ok := v.(Str); ok {
		return string(s)
	}
	return String(v)
}

func write(b *strings.Builder, v Value) {
	switch t := v.(type) {
	case Nil:
		b.WriteString("nil")
	case Bool:
		if t {
			b.WriteString("#t")
		} else {
			b.WriteString("#f")
		}
	case Int:
		b.WriteString(strconv.FormatInt(int64(t), 10))
	case Rational:
		fmt.Fprintf(b, "%d/%d", t.Num, t.Den)
	case Real:
		b.WriteString(formatReal(float64(t)))
	case Str:
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(string(t), `"`, `\"`))
		b.WriteByte('"')
	case Symbol:
		b.WriteByte('\'')
		b.WriteString(string(t))
	case Quote:
		b.WriteByte('\'')
		b.WriteString(t.Token.Value)
	case *Pair:
		writePairOrList(b, t)
	case *Vector:
		b.WriteString("(vector")
		for _, e := range t.Elements {
			b.WriteByte(' ')
			write(b, e)
		}
		b.WriteByte(')')
	case *Stream:
		b.WriteString("#<stream>")
	case *StructType:
		fmt.Fprintf(b, "#<struct-type %s>", t.Name)
	case *Struct:
		writeStruct(b, t)
	case *Lambda:
		if t.Name != "" {
			fmt.Fprintf(b, "#<lambda %s>", t.Name)
		} else {
			b.WriteString("#<lambda>")
		}
	case *BuiltInFunction:
		fmt.Fprintf(b, "#<builtin %s>", t.Name)
	case TailCall:
		b.WriteString("#<tail-call>")
	case Spread:
		b.WriteString("#<spread>")
	default:
		fmt.Fprintf(b, "#<unknown %T>", v)
	}
}

// writePairOrList prints a list-shaped Pair chain as `(list ...)` and a
// genuine dotted pair as `(a . b)`, matching spec.md §3's Pair/list
// duality.
func writePairOrList(b *strings.Builder, p *Pair) {
	if elems, ok := ListElements(p); ok {
		b.WriteString("(list")
		for _, e := range elems {
			b.WriteByte(' ')
			write(b, e)
		}
		b.WriteByte(')')
		return
	}
	b.WriteByte('(')
	write(b, p.Left)
	b.WriteString(" . ")
	write(b, p.Right)
	b.WriteByte(')')
}

func writeStruct(b *strings.Builder, s *Struct) {
	switch {
	case s.Type != nil:
		fmt.Fprintf(b, "#<%s", s.Type.Name)
		for _, f := range s.Type.Fields {
			v, _ := s.Get(f)
			b.WriteByte(' ')
			write(b, v)
		}
		b.WriteByte('>')
	case !s.HasValues:
		b.WriteString("(set")
		for _, k := range s.Keys() {
			b.WriteByte(' ')
			write(b, k)
		}
		b.WriteByte(')')
	default:
		b.WriteString("(hash-table")
		for _, k := range s.Keys() {
			kp := String(k)
			val, _ := s.Get(kp)
			b.WriteString(" (")
			write(b, k)
			b.WriteString(" . ")
			write(b, val)
			b.WriteByte(')')
		}
		b.WriteByte(')')
	}
}

// formatReal renders a float64 with BOLI's comma decimal separator, e.g.
// 7.0 → "7,0", matching the literal scenarios in spec.md §8.
func formatReal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return strings.Replace(s, ".", ",", 1)
}
