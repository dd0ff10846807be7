package builtin

import (
	"fmt"

	"github.com/bollmeier/boli/internal/environment"
	"github.com/bollmeier/boli/internal/value"
)

// installIO binds the printing primitives. These always go to stdout
// directly (BOLI has no port/file-handle type in scope) — grounded on
// the teacher's scm/builtin_io.go, which does the same.
func installIO(env *environment.Environment) {
	Declare(env, &Declaration{
		Name: "write", Desc: "Prints v in machine-readable form (strings quoted), no trailing newline.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{{Name: "v", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			fmt.Print(value.String(args[0]))
			return args[0], nil
		},
	})
	Declare(env, &Declaration{
		Name: "writeln", Desc: "Like write, followed by a newline.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{{Name: "v", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			fmt.Println(value.String(args[0]))
			return args[0], nil
		},
	})
	Declare(env, &Declaration{
		Name: "display", Desc: "Prints v in human-readable form (strings unquoted), no trailing newline.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{{Name: "v", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			fmt.Print(value.Display(args[0]))
			return args[0], nil
		},
	})
	Declare(env, &Declaration{
		Name: "displayln", Desc: "Like display, followed by a newline.",
		MinParameter: 1, MaxParameter: 1,
		Params: []DeclarationParameter{{Name: "v", Type: "any"}},
		Fn: func(args []value.Value) (value.Value, error) {
			fmt.Println(value.Display(args[0]))
			return args[0], nil
		},
	})
}
