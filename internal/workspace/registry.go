// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"encoding/binary"
	"hash/fnv"
	"time"

	"golang.org/x/exp/maps"
)

// Registry catalogs every module participating in the current workspace,
// keyed by module identity. One Registry is constructed per build
// invocation; there is no ambient singleton.
//
// Registration happens sequentially during workspace discovery. After that
// the registry is read-only (the single write-once resolved-version
// assignment also belongs to the discovery phase), which is what makes the
// lookup path safe for a host engine that resolves dependency edges
// concurrently.
type Registry struct {
	modules      map[Key]*LocalModule
	lastModified time.Time
	fingerprint  uint64

	// resolvedVersion is the concrete value the workspace's placeholder
	// version resolved to, set at most once per build.
	resolvedVersion string
	versionResolved bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[Key]*LocalModule)}
}

// Register inserts mod under its identity, overwriting any previous entry,
// and folds lastModified into the workspace's aggregate metadata.
//
// The fingerprint is accumulated per registration with a commutative
// combiner (XOR of per-module hashes), so the same set of modules yields the
// same fingerprint regardless of registration order; the workspace is never
// rescanned to recompute it.
func (r *Registry) Register(mod *LocalModule, lastModified time.Time) {
	r.modules[mod.Key] = mod
	if lastModified.After(r.lastModified) {
		r.lastModified = lastModified
	}
	r.fingerprint ^= moduleStamp(mod.Key, lastModified)
}

// Lookup returns the module registered under key, or nil.
func (r *Registry) Lookup(key Key) *LocalModule {
	return r.modules[key]
}

// Modules returns the registered modules in unspecified order.
func (r *Registry) Modules() []*LocalModule {
	return maps.Values(r.modules)
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	return len(r.modules)
}

// LastModified returns the most recent modification time seen across all
// registered modules.
func (r *Registry) LastModified() time.Time {
	return r.lastModified
}

// Fingerprint returns the workspace identity accumulated over all
// registered modules.
func (r *Registry) Fingerprint() uint64 {
	return r.fingerprint
}

// SetResolvedVersion records the concrete value a placeholder version
// resolved to. The first value sticks for the life of the registry; later
// calls are ignored.
func (r *Registry) SetResolvedVersion(version string) {
	if r.versionResolved {
		return
	}
	r.resolvedVersion = version
	r.versionResolved = true
}

// ResolvedVersion returns the resolved placeholder value, or "" when the
// workspace uses concrete versions only.
func (r *Registry) ResolvedVersion() string {
	return r.resolvedVersion
}

// moduleStamp hashes one module's identity together with its modification
// time into the term that module contributes to the fingerprint.
func moduleStamp(key Key, lastModified time.Time) uint64 {
	h := fnv.New64a()
	h.Write([]byte(key.Group))
	h.Write([]byte{0})
	h.Write([]byte(key.Name))
	h.Write([]byte{0})
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(lastModified.UnixMilli()))
	h.Write(ts[:])
	return h.Sum64()
}
