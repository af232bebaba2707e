// SPDX-License-Identifier: MPL-2.0

package buildctx

import (
	"path/filepath"
	"testing"

	"workshed/internal/testutil"
)

func TestLoad_ExplicitCacheRootWins(t *testing.T) {
	t.Cleanup(testutil.MustSetenv(t, "WORKSHED_CACHE_DIR", "/from-env"))

	ctx, err := NewProvider(Options{CacheRoot: "/explicit/cache"}).Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if got := ctx.CacheRoot(); got != filepath.Clean("/explicit/cache") {
		t.Errorf("CacheRoot() = %q, want the explicit option", got)
	}
}

func TestLoad_EnvOverridesDefault(t *testing.T) {
	tmpDir := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, tmpDir))
	t.Cleanup(testutil.MustSetenv(t, "WORKSHED_CACHE_DIR", "/from-env"))

	ctx, err := NewProvider(Options{ConfigDir: filepath.Join(tmpDir, "no-config")}).Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if got := ctx.CacheRoot(); got != filepath.Clean("/from-env") {
		t.Errorf("CacheRoot() = %q, want env value", got)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, tmpDir))

	configDir := filepath.Join(tmpDir, "config", AppName)
	testutil.MustWriteFile(t, filepath.Join(configDir, "config.toml"), "cache_dir = \"/from-config\"\n")

	ctx, err := NewProvider(Options{ConfigDir: configDir}).Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if got := ctx.CacheRoot(); got != filepath.Clean("/from-config") {
		t.Errorf("CacheRoot() = %q, want config file value", got)
	}
}

func TestLoad_DefaultUnderHome(t *testing.T) {
	tmpDir := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, tmpDir))

	ctx, err := NewProvider(Options{ConfigDir: filepath.Join(tmpDir, "no-config")}).Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	want := filepath.Join(tmpDir, "."+AppName, "cache")
	if got := ctx.CacheRoot(); got != want {
		t.Errorf("CacheRoot() = %q, want default %q", got, want)
	}
}

func TestLoad_MalformedConfigFails(t *testing.T) {
	tmpDir := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, tmpDir))

	configDir := filepath.Join(tmpDir, "config", AppName)
	testutil.MustWriteFile(t, filepath.Join(configDir, "config.toml"), "cache_dir = [not toml")

	if _, err := NewProvider(Options{ConfigDir: configDir}).Load(); err == nil {
		t.Error("Load() succeeded with a malformed config file, want error")
	}
}

func TestConfigDir_Override(t *testing.T) {
	t.Cleanup(Reset)
	SetConfigDirOverride("/custom/config")

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if dir != "/custom/config" {
		t.Errorf("ConfigDir() = %q, want override", dir)
	}
}
