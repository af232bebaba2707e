// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"testing"
	"time"

	"workshed/pkg/workmod"
)

// newTestModule assembles a LocalModule rooted in a fresh temp directory.
func newTestModule(t *testing.T, group, name, version string) *LocalModule {
	t.Helper()
	desc := &workmod.Workmod{Group: group, Name: name, Version: version}
	return NewLocalModule(desc, t.TempDir(), version)
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	registry := NewRegistry()
	mod := newTestModule(t, "io.acme", "core", "1.0")

	registry.Register(mod, time.Now())

	got := registry.Lookup(NewKey("io.acme", "core"))
	if got != mod {
		t.Fatalf("Lookup returned %v, want the registered module", got)
	}
	if registry.Len() != 1 {
		t.Errorf("Len() = %d, want 1", registry.Len())
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	registry := NewRegistry()
	if got := registry.Lookup(NewKey("io.acme", "nope")); got != nil {
		t.Errorf("Lookup of unregistered key = %v, want nil", got)
	}
}

func TestRegistry_LastModifiedKeepsMaximum(t *testing.T) {
	registry := NewRegistry()
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	registry.Register(newTestModule(t, "io.acme", "a", "1.0"), newer)
	registry.Register(newTestModule(t, "io.acme", "b", "1.0"), older)

	if got := registry.LastModified(); !got.Equal(newer) {
		t.Errorf("LastModified() = %v, want %v", got, newer)
	}
}

func TestRegistry_FingerprintOrderIndependent(t *testing.T) {
	modA := newTestModule(t, "io.acme", "a", "1.0")
	modB := newTestModule(t, "io.acme", "b", "1.0")
	tsA := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	tsB := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)

	forward := NewRegistry()
	forward.Register(modA, tsA)
	forward.Register(modB, tsB)

	backward := NewRegistry()
	backward.Register(modB, tsB)
	backward.Register(modA, tsA)

	if forward.Fingerprint() != backward.Fingerprint() {
		t.Errorf("fingerprint depends on registration order: %x vs %x",
			forward.Fingerprint(), backward.Fingerprint())
	}
	if forward.Fingerprint() == 0 {
		t.Error("fingerprint of a non-empty workspace is zero")
	}
}

func TestRegistry_FingerprintReflectsTimestamps(t *testing.T) {
	mod := newTestModule(t, "io.acme", "a", "1.0")

	first := NewRegistry()
	first.Register(mod, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	second := NewRegistry()
	second.Register(mod, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))

	if first.Fingerprint() == second.Fingerprint() {
		t.Error("fingerprint did not change with the module's modification time")
	}
}

func TestRegistry_ResolvedVersionWriteOnce(t *testing.T) {
	registry := NewRegistry()
	if got := registry.ResolvedVersion(); got != "" {
		t.Fatalf("ResolvedVersion() on fresh registry = %q, want empty", got)
	}

	registry.SetResolvedVersion("1.0-ci")
	registry.SetResolvedVersion("2.0-ci")

	if got := registry.ResolvedVersion(); got != "1.0-ci" {
		t.Errorf("ResolvedVersion() = %q, want the first assigned value %q", got, "1.0-ci")
	}
}

func TestIsPlaceholder(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"${revision}", true},
		{"1.0-${sha1}", true},
		{"1.0", false},
		{"", false},
		{"revision", false},
	}
	for _, tt := range tests {
		if got := IsPlaceholder(tt.version); got != tt.want {
			t.Errorf("IsPlaceholder(%q) = %v, want %v", tt.version, got, tt.want)
		}
	}
}
