// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"workshed/internal/workspace"
	"workshed/pkg/workmod"
)

// ModuleCollisionError is returned when two module directories declare the
// same module identity within one workspace.
type ModuleCollisionError struct {
	Key       workspace.Key
	FirstDir  string
	SecondDir string
}

// Error implements the error interface.
func (e *ModuleCollisionError) Error() string {
	return fmt.Sprintf(
		"module identity collision: '%s' declared in both:\n"+
			"  - %s\n"+
			"  - %s",
		e.Key, e.FirstDir, e.SecondDir)
}

// Scanner discovers the modules participating in a workspace.
type Scanner struct {
	root string
}

// New creates a Scanner rooted at dir.
func New(dir string) *Scanner {
	return &Scanner{root: dir}
}

// foundModule is one descriptor located during the walk, before effective
// versions are known.
type foundModule struct {
	dir          string
	desc         *workmod.Workmod
	lastModified time.Time
}

// Scan walks the workspace tree, loads every workmod.cue and returns a
// freshly populated registry. Placeholder versions are resolved against the
// root descriptor's revision before registration, so registered modules are
// immutable from the start.
func (s *Scanner) Scan() (*workspace.Registry, error) {
	root, err := filepath.Abs(s.root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root %s: %w", s.root, err)
	}

	var found []foundModule
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}

		desc, err := workmod.Load(path)
		if err != nil {
			if errors.Is(err, workmod.ErrWorkmodNotFound) {
				return nil
			}
			return err
		}

		info, err := os.Stat(desc.FilePath)
		if err != nil {
			return fmt.Errorf("stat %s: %w", desc.FilePath, err)
		}

		slog.Debug("discovered workspace module", "coords", desc.Coords(), "dir", path)
		found = append(found, foundModule{dir: path, desc: desc, lastModified: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning workspace %s: %w", root, err)
	}

	revision := rootRevision(found, root)

	registry := workspace.NewRegistry()
	for _, f := range found {
		version := f.desc.Version
		if workspace.IsPlaceholder(version) && revision != "" {
			version = revision
			registry.SetResolvedVersion(revision)
		}

		mod := workspace.NewLocalModule(f.desc, f.dir, version)
		if existing := registry.Lookup(mod.Key); existing != nil {
			return nil, &ModuleCollisionError{Key: mod.Key, FirstDir: existing.Dir, SecondDir: mod.Dir}
		}
		registry.Register(mod, f.lastModified)
	}

	slog.Debug("workspace scan complete",
		"root", root, "modules", registry.Len(), "fingerprint", registry.Fingerprint())
	return registry, nil
}

// rootRevision returns the concrete revision declared by the workspace root
// descriptor, the only place a CI-style version placeholder can be pinned.
func rootRevision(found []foundModule, root string) string {
	for _, f := range found {
		if f.dir == root {
			return f.desc.Revision
		}
	}
	return ""
}

// skipDir reports whether a directory should be pruned from the walk:
// hidden directories and build output trees never contain module roots.
func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == workspace.DefaultOutputDir
}
