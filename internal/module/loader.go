// Package module resolves `require`-style `::`-separated module paths
// against a list of filesystem search roots, grounded on original_source's
// interpreter/module_mgmt/module_loader.rs per-root retry algorithm: each
// search root is tried in turn; an error from one root does not stop the
// search, and if every root fails the last root's error is returned.
//
// This package deliberately does not depend on internal/eval: Resolve
// returns raw module source text (or, for an Extension, already-built
// values) and lets the caller — internal/eval's `require` special form —
// own parsing and evaluation, avoiding an eval<->module import cycle.
package module

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/bollmeier/boli/internal/ierr"
)

// Resolved is what Resolve finds at the end of a `::`-path: either a
// module's source text (to be parsed and evaluated by the caller) or a
// pre-built Extension's value map.
type Resolved struct {
	Source     string // set when Extension is nil
	SourceName string
	Extension  *Extension
}

// Resolve searches dirs in order for path ("core::list" etc.), trying the
// filesystem first (name.boli, then the xz-compressed name.boli.xz) and
// falling back to ext, the programmatic extension tree, at each
// directory level. ext may be nil.
func Resolve(dirs []string, ext *ExtensionDir, path string) (*Resolved, error) {
	var lastErr error
	for _, root := range dirs {
		resolved, err := resolveInDir(root, ext, path)
		if err == nil {
			return resolved, nil
		}
		lastErr = err
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ierr.Module("module '%s' not found", path)
}

func resolveInDir(dir string, ext *ExtensionDir, path string) (*Resolved, error) {
	segments := strings.Split(path, "::")
	if len(segments) == 0 || segments[0] == "" {
		return nil, ierr.Module("empty module path")
	}

	if len(segments) == 1 {
		name := segments[0]

		plainPath := filepath.Join(dir, name+".boli")
		if src, ok := readFile(plainPath); ok {
			return &Resolved{Source: src, SourceName: plainPath}, nil
		}

		xzPath := filepath.Join(dir, name+".boli.xz")
		if src, ok := readXZFile(xzPath); ok {
			return &Resolved{Source: src, SourceName: xzPath}, nil
		}

		if ext != nil {
			if e, ok := ext.Extension(name); ok {
				return &Resolved{Extension: e}, nil
			}
		}

		return nil, ierr.Module("module '%s' not found", name)
	}

	dirName := segments[0]
	rest := strings.Join(segments[1:], "::")

	subdir := filepath.Join(dir, dirName)
	info, statErr := os.Stat(subdir)
	var subExt *ExtensionDir
	if ext != nil {
		subExt, _ = ext.Dir(dirName)
	}
	if statErr != nil || !info.IsDir() {
		if subExt == nil {
			return nil, ierr.Module("directory '%s' not found", dirName)
		}
		return resolveInDir(subdir, subExt, rest)
	}
	return resolveInDir(subdir, subExt, rest)
}

func readFile(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

func readXZFile(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()
	xr, err := xz.NewReader(f)
	if err != nil {
		return "", false
	}
	data, err := io.ReadAll(xr)
	if err != nil {
		return "", false
	}
	return string(data), true
}
