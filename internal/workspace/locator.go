// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
)

type (
	// Query is one artifact resolution request, supplied per call by the
	// host build engine's dependency graph resolver.
	Query struct {
		Group      string
		Name       string
		Version    string
		Classifier string
		// Type is the requested packaging type; it doubles as the file
		// extension of packaged artifacts.
		Type string
	}

	// Reason explains why a query was or was not handled by the workspace.
	Reason int

	// CacheProbe checks whether an artifact is already present in the local
	// package cache. It is consulted only for the empty-package case, to
	// decide between fabricating an empty output and deferring to the real
	// resolver.
	CacheProbe interface {
		ExistsInLocalCache(group, name, version, classifier, ext string) bool
	}

	// Locator resolves artifact queries against the workspace registry.
	// It is safe for concurrent use once the registry is populated.
	Locator struct {
		registry *Registry
		probe    CacheProbe
		versions atomic.Pointer[versionsSlot]
	}
)

const (
	// Resolved means the query was satisfied by a workspace module.
	Resolved Reason = iota
	// UnknownModule means no module is registered under the queried identity.
	UnknownModule
	// VersionMismatch means the queried version matches neither the
	// module's version nor the placeholder alias rule.
	VersionMismatch
	// ClassifierMismatch means the queried classifier is not the module's
	// natural one and is not a satisfiable "tests" request.
	ClassifierMismatch
	// UnsupportedType means the packaging type is not special-cased here.
	UnsupportedType
	// NotBuilt means the module matched but no usable output exists yet
	// (or fabricating one failed, or the local cache should serve it).
	NotBuilt
)

// String renders the reason for diagnostics.
func (r Reason) String() string {
	switch r {
	case Resolved:
		return "resolved"
	case UnknownModule:
		return "unknown module"
	case VersionMismatch:
		return "version mismatch"
	case ClassifierMismatch:
		return "classifier mismatch"
	case UnsupportedType:
		return "unsupported packaging type"
	case NotBuilt:
		return "not built"
	default:
		return "unknown"
	}
}

// NewLocator creates a locator over registry. probe may be nil, in which
// case the empty-package check conservatively treats the local cache as not
// containing the artifact.
func NewLocator(registry *Registry, probe CacheProbe) *Locator {
	return &Locator{registry: registry, probe: probe}
}

// Locate resolves query against the workspace's own build outputs. The
// returned bool reports whether the query was handled; false means the
// caller should fall back to its regular repository-based resolution and is
// the expected outcome for anything this workspace does not own.
func (l *Locator) Locate(query Query) (string, bool) {
	path, reason := l.locate(query)
	return path, reason == Resolved
}

// Explain runs the same resolution as Locate but reports the step that
// rejected the query. Intended for diagnostics; the host engine only needs
// the handled/not-handled outcome.
func (l *Locator) Explain(query Query) (string, Reason) {
	return l.locate(query)
}

func (l *Locator) locate(query Query) (string, Reason) {
	mod := l.registry.Lookup(NewKey(query.Group, query.Name))
	if mod == nil {
		return "", UnknownModule
	}

	// An exact version match succeeds. A placeholder query succeeds only if
	// the module's own version was itself resolved from a placeholder to
	// that same concrete value.
	if query.Version != "" && query.Version != mod.Version &&
		!(IsPlaceholder(query.Version) && mod.Version == l.registry.ResolvedVersion()) {
		return "", VersionMismatch
	}

	if query.Classifier != "" {
		// Test artifacts are the one classifier variant a workspace module
		// can serve, from its test output directory.
		if query.Classifier == ClassifierTests && dirExists(mod.TestClassesDir) {
			return mod.TestClassesDir, Resolved
		}
		return "", ClassifierMismatch
	}

	switch query.Type {
	case TypeLib:
		return l.locateLib(query, mod)
	case TypeDescriptor:
		if path := mod.DescriptorPath(); fileExists(path) {
			return path, Resolved
		}
		return "", NotBuilt
	default:
		return "", UnsupportedType
	}
}

// locateLib walks the freshest-available-representation-first chain for a
// library query: compiled classes, then a previously packaged file, then the
// empty-package fabrication for modules with nothing to compile.
func (l *Locator) locateLib(query Query, mod *LocalModule) (string, Reason) {
	if dirExists(mod.ClassesDir) {
		return mod.ClassesDir, Resolved
	}

	// The module may have been packaged earlier in this run.
	if packaged := filepath.Join(mod.OutputDir, artifactFileName(query.Name, query.Version, query.Classifier, query.Type)); fileExists(packaged) {
		return packaged, Resolved
	}

	// A module with neither sources nor resources legitimately produces an
	// empty package. Deferring to the repository resolver would fail for a
	// never-installed empty module, so unless the local cache already holds
	// it we materialize the empty classes directory instead.
	if !dirExists(mod.SourcesDir) && !dirExists(mod.ResourcesDir) && !l.cacheHas(query) {
		if err := os.MkdirAll(mod.ClassesDir, 0o755); err != nil {
			slog.Warn("failed to fabricate empty classes directory",
				"module", mod.Coords(), "dir", mod.ClassesDir, "error", err)
			return "", NotBuilt
		}
		return mod.ClassesDir, Resolved
	}

	// The module simply has not been built yet.
	return "", NotBuilt
}

func (l *Locator) cacheHas(query Query) bool {
	if l.probe == nil {
		return false
	}
	return l.probe.ExistsInLocalCache(query.Group, query.Name, query.Version, query.Classifier, query.Type)
}

// artifactFileName builds the conventional packaged file name:
// name-version[-classifier].ext.
func artifactFileName(name, version, classifier, ext string) string {
	if classifier != "" {
		return fmt.Sprintf("%s-%s-%s.%s", name, version, classifier, ext)
	}
	return fmt.Sprintf("%s-%s.%s", name, version, ext)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
