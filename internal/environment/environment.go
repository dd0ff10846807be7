// Package environment implements the lexically nested name→value mapping
// shared between a lambda and its call frames, grounded on the teacher's
// scm/scm.go Env{Vars, Outer} parent-chain walk, generalised with the
// exported-name tracking and module search roots described by
// original_source's richer EnvironmentBuilder (referenced by
// module_loader.rs's tests even though its own definition predates the
// file this repo ports literally).
package environment

import "github.com/bollmeier/boli/internal/value"

// Environment is always used behind a pointer: closures hold a
// back-reference to the Environment active at their creation time, and
// set_bang must be able to rebind a name found in an ancestor frame.
type Environment struct {
	vars       map[string]value.Value
	outer      *Environment
	exported   map[string]bool
	anyProvide bool // true once a `provide` form ran in this environment
	searchDirs []string
}

// New creates a root environment with the given module search roots.
func New(searchDirs []string) *Environment {
	return &Environment{
		vars:       map[string]value.Value{},
		exported:   map[string]bool{},
		searchDirs: searchDirs,
	}
}

// NewChild creates a fresh environment nested under parent — used on
// entry to a call, `let`, `block`, or module load, per spec.md's
// Lifecycles list.
func NewChild(parent *Environment) *Environment {
	return &Environment{
		vars:     map[string]value.Value{},
		outer:    parent,
		exported: map[string]bool{},
	}
}

// Get walks the parent chain; ok is false if name is bound nowhere.
func (e *Environment) Get(name string) (value.Value, bool) {
	for env := e; env != nil; env = env.outer {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set defines name in the current scope (shadowing any ancestor binding).
func (e *Environment) Set(name string, v value.Value) {
	e.vars[name] = v
}

// SetBang locates the nearest binding of name in the parent chain and
// rebinds it there in place; ok is false if name is undefined anywhere.
func (e *Environment) SetBang(name string, v value.Value) bool {
	for env := e; env != nil; env = env.outer {
		if _, ok := env.vars[name]; ok {
			env.vars[name] = v
			return true
		}
	}
	return false
}

// Export marks name for export from this environment (used when this
// environment is a module's top-level scope).
func (e *Environment) Export(name string) {
	e.anyProvide = true
	e.exported[name] = true
}

// GetExportedValues snapshots (name, value) for every name this
// environment should export: if no `provide` form ran, every top-level
// definition is exported; otherwise only the names passed to `provide`.
func (e *Environment) GetExportedValues() map[string]value.Value {
	out := map[string]value.Value{}
	if !e.anyProvide {
		for k, v := range e.vars {
			out[k] = v
		}
		return out
	}
	for k := range e.exported {
		if v, ok := e.vars[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Import bulk-inserts a module's exports into e under their own names.
func (e *Environment) Import(exports map[string]value.Value) {
	for k, v := range exports {
		e.vars[k] = v
	}
}

// ImportWithAlias bulk-inserts a module's exports under `alias::name`.
func (e *Environment) ImportWithAlias(exports map[string]value.Value, alias string) {
	for k, v := range exports {
		e.vars[alias+"::"+k] = v
	}
}

// GetModuleSearchDirs returns the root environment's search roots.
func (e *Environment) GetModuleSearchDirs() []string {
	for env := e; env != nil; env = env.outer {
		if env.outer == nil {
			return env.searchDirs
		}
	}
	return nil
}

// Names returns every name bound directly in this environment (not
// ancestors) — backs the REPL's `:env` meta-command.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.vars))
	for k := range e.vars {
		names = append(names, k)
	}
	return names
}
