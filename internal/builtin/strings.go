package builtin

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bollmeier/boli/internal/environment"
	"github.com/bollmeier/boli/internal/ierr"
	"github.com/bollmeier/boli/internal/token"
	"github.com/bollmeier/boli/internal/value"
)

var upperCaser = cases.Upper(language.Und)
var lowerCaser = cases.Lower(language.Und)

func installStrings(env *environment.Environment) {
	strParam := DeclarationParameter{Name: "s", Type: "string"}

	Declare(env, &Declaration{
		Name: "string?", Desc: "True if v is a Str.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{{Name: "v", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			_, ok := args[0].(value.Str)
			return value.Bool(ok), nil
		},
	})
	Declare(env, &Declaration{
		Name: "string-count", Desc: "Number of Unicode code points in s.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{strParam},
		Fn: func(args []value.Value) (value.Value, error) {
			s, ok := args[0].(value.Str)
			if !ok {
				return nil, ierr.Type(token.Position{}, "string-count expects a string, got %T", args[0])
			}
			return value.Int(len([]rune(string(s)))), nil
		},
	})
	Declare(env, &Declaration{
		Name: "string-concat", Desc: "Concatenates its string arguments.",
		MinParameter: 0, MaxParameter: -1,
		Fn: func(args []value.Value) (value.Value, error) {
			var b strings.Builder
			for _, a := range args {
				s, ok := a.(value.Str)
				if !ok {
					return nil, ierr.Type(token.Position{}, "string-concat expects strings, got %T", a)
				}
				b.WriteString(string(s))
			}
			return value.Str(b.String()), nil
		},
	})
	Declare(env, &Declaration{
		Name: "string-sub", Desc: "The substring of s from a 0-based start index (inclusive) to an end index (exclusive), by rune position.",
		MinParameter: 3, MaxParameter: 3,
		Params: []DeclarationParameter{strParam, {Name: "start", Type: "number"}, {Name: "end", Type: "number"}},
		Fn: func(args []value.Value) (value.Value, error) {
			s, ok := args[0].(value.Str)
			if !ok {
				return nil, ierr.Type(token.Position{}, "string-sub expects a string, got %T", args[0])
			}
			start, ok1 := args[1].(value.Int)
			end, ok2 := args[2].(value.Int)
			if !ok1 || !ok2 {
				return nil, ierr.Type(token.Position{}, "string-sub expects int bounds")
			}
			runes := []rune(string(s))
			if start < 0 || end > value.Int(len(runes)) || start > end {
				return nil, ierr.Type(token.Position{}, "string-sub bounds [%d,%d) out of range for length %d", start, end, len(runes))
			}
			return value.Str(string(runes[start:end])), nil
		},
	})
	Declare(env, &Declaration{
		Name: "string-upper", Desc: "Unicode-aware uppercasing of s.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{strParam},
		Fn: func(args []value.Value) (value.Value, error) {
			s, ok := args[0].(value.Str)
			if !ok {
				return nil, ierr.Type(token.Position{}, "string-upper expects a string, got %T", args[0])
			}
			return value.Str(upperCaser.String(string(s))), nil
		},
	})
	Declare(env, &Declaration{
		Name: "string-lower", Desc: "Unicode-aware lowercasing of s.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{strParam},
		Fn: func(args []value.Value) (value.Value, error) {
			s, ok := args[0].(value.Str)
			if !ok {
				return nil, ierr.Type(token.Position{}, "string-lower expects a string, got %T", args[0])
			}
			return value.Str(lowerCaser.String(string(s))), nil
		},
	})
	Declare(env, &Declaration{
		Name: "string->int", Desc: "Parses s as a base-10 integer; an arithmetic error if malformed.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{strParam},
		Fn: func(args []value.Value) (value.Value, error) {
			s, ok := args[0].(value.Str)
			if !ok {
				return nil, ierr.Type(token.Position{}, "string->int expects a string, got %T", args[0])
			}
			n, err := strconv.ParseInt(strings.TrimSpace(string(s)), 10, 64)
			if err != nil {
				return nil, ierr.Arithmetic("cannot parse %q as an integer", string(s))
			}
			return value.Int(n), nil
		},
	})
	Declare(env, &Declaration{
		Name: "string->real", Desc: "Parses s (accepting either `.` or `,` as the decimal separator) as a Real; an arithmetic error if malformed.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{strParam},
		Fn: func(args []value.Value) (value.Value, error) {
			s, ok := args[0].(value.Str)
			if !ok {
				return nil, ierr.Type(token.Position{}, "string->real expects a string, got %T", args[0])
			}
			normalized := strings.Replace(strings.TrimSpace(string(s)), ",", ".", 1)
			f, err := strconv.ParseFloat(normalized, 64)
			if err != nil {
				return nil, ierr.Arithmetic("cannot parse %q as a real", string(s))
			}
			return value.Real(f), nil
		},
	})
	Declare(env, &Declaration{
		Name: "string->symbol", Desc: "Converts s into a Symbol of the same text.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{strParam},
		Fn: func(args []value.Value) (value.Value, error) {
			s, ok := args[0].(value.Str)
			if !ok {
				return nil, ierr.Type(token.Position{}, "string->symbol expects a string, got %T", args[0])
			}
			return value.Symbol(string(s)), nil
		},
	})
	Declare(env, &Declaration{
		Name: "symbol->string", Desc: "Converts a Symbol into a Str of the same text.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{{Name: "sym", Type: "symbol"}},
		Fn: func(args []value.Value) (value.Value, error) {
			sym, ok := args[0].(value.Symbol)
			if !ok {
				return nil, ierr.Type(token.Position{}, "symbol->string expects a symbol, got %T", args[0])
			}
			return value.Str(string(sym)), nil
		},
	})
}
