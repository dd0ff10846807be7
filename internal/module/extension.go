package module

import "github.com/bollmeier/boli/internal/value"

// Extension is a programmatically-registered module: a flat name→value
// map installed by the host program instead of read from a `.boli` file.
// Grounded on original_source's module_mgmt/extension.rs Extension type.
type Extension struct {
	Name   string
	Values map[string]value.Value
}

func NewExtension(name string, values map[string]value.Value) *Extension {
	return &Extension{Name: name, Values: values}
}

// ExtensionDir is a named node in the extension tree, mirroring the
// directory/file shape of the filesystem module tree so `require` can
// walk `::`-paths uniformly across both.
type ExtensionDir struct {
	name       string
	dirs       map[string]*ExtensionDir
	extensions map[string]*Extension
}

func NewExtensionDir(name string) *ExtensionDir {
	return &ExtensionDir{name: name, dirs: map[string]*ExtensionDir{}, extensions: map[string]*Extension{}}
}

func (d *ExtensionDir) AddDir(sub *ExtensionDir)       { d.dirs[sub.name] = sub }
func (d *ExtensionDir) AddExtension(e *Extension)      { d.extensions[e.Name] = e }
func (d *ExtensionDir) Dir(name string) (*ExtensionDir, bool) {
	sub, ok := d.dirs[name]
	return sub, ok
}
func (d *ExtensionDir) Extension(name string) (*Extension, bool) {
	e, ok := d.extensions[name]
	return e, ok
}
