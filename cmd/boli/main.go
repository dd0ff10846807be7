// Command boli is BOLI's command-line entry point: `boli run <file>`
// (the default when no subcommand matches), `boli parse <file>` for
// AST inspection, and `boli repl` for the interactive top-level.
// Grounded on the teacher's main.go flag/mode dispatch, rewritten onto
// spf13/cobra the way the rest of the retrieval pack's CLI tools do it.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dc0d/onexit"
	"github.com/spf13/cobra"

	"github.com/bollmeier/boli/internal/builtin"
	"github.com/bollmeier/boli/internal/config"
	"github.com/bollmeier/boli/internal/environment"
	"github.com/bollmeier/boli/internal/eval"
	"github.com/bollmeier/boli/internal/ierr"
	"github.com/bollmeier/boli/internal/parser"
	"github.com/bollmeier/boli/internal/repl"
	"github.com/bollmeier/boli/internal/tailcall"
	"github.com/bollmeier/boli/internal/value"
)

var configFile string

func main() {
	root := &cobra.Command{
		Use:   "boli [file]",
		Short: "BOLI — Bollmeier's Own Lisp Interpreter",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := "-"
			if len(args) == 1 {
				file = args[0]
			}
			return runFile(cmd, file)
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a boli.yaml config file")

	runCmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Evaluate a .boli source file (use - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(cmd, args[0])
		},
	}

	parseCmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the parsed AST of a .boli source file as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return parseFile(args[0])
		},
	}

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive read-eval-print loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd)
		},
	}

	root.AddCommand(runCmd, parseCmd, replCmd)

	if err := root.Execute(); err != nil {
		if ie, ok := ierr.As(err); ok {
			fmt.Fprintln(os.Stderr, ie.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(configFile, cmd.Flags())
}

func newTopLevelEnv(cfg *config.Config) *environment.Environment {
	dirs := cfg.SearchDirs
	if cfg.PreludeDir != "" {
		dirs = append([]string{cfg.PreludeDir}, dirs...)
	}
	env := environment.New(dirs)
	builtin.InstallPrelude(env)
	return env
}

func readSource(path string) (string, string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return path, string(data), nil
}

func runFile(cmd *cobra.Command, path string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	source, text, err := readSource(path)
	if err != nil {
		return err
	}
	prog, err := parser.Parse(source, text)
	if err != nil {
		return err
	}
	tailcall.Mark(prog)

	env := newTopLevelEnv(cfg)
	var result value.Value = value.Nil{}
	for _, n := range prog.Children {
		v, err := eval.Eval(n, env)
		if err != nil {
			return err
		}
		result = v
	}
	fmt.Println(value.String(result))
	return nil
}

func parseFile(path string) error {
	source, text, err := readSource(path)
	if err != nil {
		return err
	}
	prog, err := parser.Parse(source, text)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(prog)
}

func runRepl(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	env := newTopLevelEnv(cfg)
	r := repl.New(env, cfg.HistoryFile)

	onexit.Register(func() {
		fmt.Println("\ngoodbye")
	})

	return r.Run()
}
