// Package repl implements BOLI's interactive top-level, grounded on the
// teacher's scm/prompt.go: a chzyer/readline loop with ANSI-colored
// prompts and a continuation-buffering strategy for multi-line input,
// generalized to recover on a parse error (internal/parser returns an
// error rather than the teacher's panic, so this uses a plain error
// comparison where the teacher used recover()).
package repl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fsnotify/fsnotify"

	"github.com/bollmeier/boli/internal/environment"
	"github.com/bollmeier/boli/internal/eval"
	"github.com/bollmeier/boli/internal/ierr"
	"github.com/bollmeier/boli/internal/parser"
	"github.com/bollmeier/boli/internal/tailcall"
	"github.com/bollmeier/boli/internal/value"
)

const (
	newPrompt    = "\033[32mboλi>\033[0m "
	contPrompt   = "\033[32m.\033[0m "
	resultPrompt = "\033[31m=\033[0m "
)

// REPL holds the interactive session's state: the top-level environment,
// result-history bindings ($0, $1, ...), and an optional module watcher.
type REPL struct {
	env         *environment.Environment
	historyFile string
	resultCount int
	watcher     *fsnotify.Watcher
}

func New(env *environment.Environment, historyFile string) *REPL {
	return &REPL{env: env, historyFile: historyFile}
}

// Run drives the read-eval-print loop until EOF, ^D, or a `:q` command.
func (r *REPL) Run() error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            newPrompt,
		HistoryFile:       r.historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer l.Close()
	l.CaptureExitSignal()
	defer r.closeWatcher()

	pending := ""
	for {
		line, err := l.Readline()
		line = pending + line
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			pending = ""
			l.SetPrompt(newPrompt)
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			pending = ""
			continue
		}

		if pending == "" {
			if handled, quit := r.handleMeta(line); handled {
				if quit {
					return nil
				}
				continue
			}
		}

		result, err := r.evalLine(line)
		if err != nil {
			if ie, ok := ierr.As(err); ok && ie.Kind == ierr.KindLex && ie.Message == "expecting matching )" {
				pending = line + "\n"
				l.SetPrompt(contPrompt)
				continue
			}
			fmt.Println(err.Error())
			pending = ""
			l.SetPrompt(newPrompt)
			continue
		}
		pending = ""
		l.SetPrompt(newPrompt)

		binding := resultBindingName(r.resultCount)
		r.resultCount++
		r.env.Set(binding, result)
		fmt.Print(resultPrompt)
		fmt.Printf("%s (bound to %s)\n", value.String(result), binding)
	}
}

func (r *REPL) evalLine(line string) (value.Value, error) {
	prog, err := parser.Parse("repl", line)
	if err != nil {
		return nil, err
	}
	tailcall.Mark(prog)
	var result value.Value = value.Nil{}
	for _, n := range prog.Children {
		result, err = eval.Eval(n, r.env)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// handleMeta recognises `:`-prefixed meta-commands; handled is false for
// any ordinary BOLI expression, quit is true only for `:q`.
func (r *REPL) handleMeta(line string) (handled bool, quit bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, ":") {
		return false, false
	}
	fields := strings.Fields(trimmed)
	switch fields[0] {
	case ":q", ":quit":
		return true, true
	case ":h", ":help":
		fmt.Println("Meta-commands: :q (quit), :h (help), :env (list bindings), :watch <dir> (report file changes in dir)")
		return true, false
	case ":env":
		names := r.env.Names()
		for _, n := range names {
			fmt.Println(" ", n)
		}
		return true, false
	case ":watch":
		if len(fields) != 2 {
			fmt.Println(":watch requires a directory argument")
			return true, false
		}
		r.startWatch(fields[1])
		return true, false
	default:
		fmt.Println("unknown meta-command:", fields[0])
		return true, false
	}
}

// startWatch begins watching dir with fsnotify; file-change events print
// a notice rather than auto-reloading anything, since BOLI has no
// concept of a "currently loaded" module to invalidate mid-session —
// it's a prompt for the user to `require` again.
func (r *REPL) startWatch(dir string) {
	r.closeWatcher()
	w, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Println("watch failed:", err)
		return
	}
	if err := w.Add(dir); err != nil {
		fmt.Println("watch failed:", err)
		w.Close()
		return
	}
	r.watcher = w
	go func() {
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				fmt.Printf("\n[watch] %s changed; re-require it to pick up changes\n", event.Name)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				fmt.Println("[watch] error:", err)
			}
		}
	}()
	fmt.Println("watching", dir)
}

func (r *REPL) closeWatcher() {
	if r.watcher != nil {
		r.watcher.Close()
		r.watcher = nil
	}
}

// resultBindingName names the binding for the nth result: $0, $1, ...
func resultBindingName(n int) string { return "$" + strconv.Itoa(n) }
