// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"workshed/internal/testutil"
	"workshed/internal/workspace"
	"workshed/pkg/workmod"
)

// writeDescriptor creates a workmod.cue for a module rooted at dir.
func writeDescriptor(t *testing.T, dir, group, name, version string, extra ...string) {
	t.Helper()
	content := fmt.Sprintf("group: %q\nname: %q\nversion: %q\n", group, name, version)
	for _, line := range extra {
		content += line + "\n"
	}
	testutil.MustWriteFile(t, filepath.Join(dir, workmod.FileName), content)
}

func TestScan_FindsNestedModules(t *testing.T) {
	root := t.TempDir()
	writeDescriptor(t, root, "io.acme", "parent", "1.0")
	writeDescriptor(t, filepath.Join(root, "core"), "io.acme", "core", "1.0")
	writeDescriptor(t, filepath.Join(root, "libs", "api"), "io.acme", "api", "1.0")

	registry, err := New(root).Scan()
	if err != nil {
		t.Fatalf("Scan() returned error: %v", err)
	}

	if registry.Len() != 3 {
		t.Errorf("Scan() registered %d modules, want 3", registry.Len())
	}
	for _, name := range []string{"parent", "core", "api"} {
		mod := registry.Lookup(workspace.NewKey("io.acme", name))
		if mod == nil {
			t.Errorf("module io.acme:%s not registered", name)
			continue
		}
		if mod.Version != "1.0" {
			t.Errorf("module %s version = %q, want 1.0", name, mod.Version)
		}
	}
	if registry.LastModified().IsZero() {
		t.Error("LastModified() is zero after registering modules")
	}
	if registry.Fingerprint() == 0 {
		t.Error("Fingerprint() is zero after registering modules")
	}
}

func TestScan_SkipsHiddenAndBuildDirs(t *testing.T) {
	root := t.TempDir()
	writeDescriptor(t, root, "io.acme", "parent", "1.0")
	writeDescriptor(t, filepath.Join(root, ".cache", "stale"), "io.acme", "stale", "1.0")
	writeDescriptor(t, filepath.Join(root, "build", "unpacked"), "io.acme", "unpacked", "1.0")

	registry, err := New(root).Scan()
	if err != nil {
		t.Fatalf("Scan() returned error: %v", err)
	}

	if registry.Len() != 1 {
		t.Errorf("Scan() registered %d modules, want only the parent", registry.Len())
	}
	if registry.Lookup(workspace.NewKey("io.acme", "stale")) != nil {
		t.Error("module under a hidden directory was registered")
	}
	if registry.Lookup(workspace.NewKey("io.acme", "unpacked")) != nil {
		t.Error("module under a build output tree was registered")
	}
}

func TestScan_IdentityCollision(t *testing.T) {
	root := t.TempDir()
	writeDescriptor(t, filepath.Join(root, "a"), "io.acme", "core", "1.0")
	writeDescriptor(t, filepath.Join(root, "b"), "io.acme", "core", "2.0")

	_, err := New(root).Scan()
	if err == nil {
		t.Fatal("Scan() succeeded despite duplicate module identity")
	}

	var collision *ModuleCollisionError
	if !errors.As(err, &collision) {
		t.Fatalf("Scan() error = %v, want ModuleCollisionError", err)
	}
	if collision.Key != workspace.NewKey("io.acme", "core") {
		t.Errorf("collision key = %v, want io.acme:core", collision.Key)
	}
}

func TestScan_ResolvesPlaceholderVersions(t *testing.T) {
	root := t.TempDir()
	writeDescriptor(t, root, "io.acme", "parent", "${revision}", `revision: "1.2.3-ci"`)
	writeDescriptor(t, filepath.Join(root, "core"), "io.acme", "core", "${revision}")

	registry, err := New(root).Scan()
	if err != nil {
		t.Fatalf("Scan() returned error: %v", err)
	}

	if got := registry.ResolvedVersion(); got != "1.2.3-ci" {
		t.Errorf("ResolvedVersion() = %q, want 1.2.3-ci", got)
	}
	for _, name := range []string{"parent", "core"} {
		mod := registry.Lookup(workspace.NewKey("io.acme", name))
		if mod == nil {
			t.Fatalf("module io.acme:%s not registered", name)
		}
		if mod.Version != "1.2.3-ci" {
			t.Errorf("module %s effective version = %q, want 1.2.3-ci", name, mod.Version)
		}
		if mod.RawVersion != "${revision}" {
			t.Errorf("module %s raw version = %q, want the placeholder", name, mod.RawVersion)
		}
	}
}

func TestScan_PlaceholderWithoutRevisionStaysRaw(t *testing.T) {
	root := t.TempDir()
	writeDescriptor(t, root, "io.acme", "parent", "${revision}")

	registry, err := New(root).Scan()
	if err != nil {
		t.Fatalf("Scan() returned error: %v", err)
	}

	if got := registry.ResolvedVersion(); got != "" {
		t.Errorf("ResolvedVersion() = %q, want empty without a revision", got)
	}
	mod := registry.Lookup(workspace.NewKey("io.acme", "parent"))
	if mod == nil || mod.Version != "${revision}" {
		t.Errorf("module version = %v, want the unresolved placeholder", mod)
	}
}

func TestScan_InvalidDescriptorFails(t *testing.T) {
	root := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(root, workmod.FileName), "name: \"core\"\nversion: \"1.0\"\n")

	if _, err := New(root).Scan(); err == nil {
		t.Error("Scan() succeeded with a descriptor missing its group")
	}
}

func TestScan_EmptyWorkspace(t *testing.T) {
	registry, err := New(t.TempDir()).Scan()
	if err != nil {
		t.Fatalf("Scan() returned error: %v", err)
	}
	if registry.Len() != 0 {
		t.Errorf("Scan() of empty dir registered %d modules, want 0", registry.Len())
	}
}
