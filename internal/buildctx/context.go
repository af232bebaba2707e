// SPDX-License-Identifier: MPL-2.0

package buildctx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name used for config and cache paths.
	AppName = "workshed"

	envPrefix     = "WORKSHED"
	cacheDirKey   = "cache_dir"
	configName    = "config"
	configFileExt = "toml"
)

type (
	// Options defines explicit build-context construction inputs.
	Options struct {
		// CacheRoot forces the local artifact cache root when set,
		// bypassing env and config file lookup.
		CacheRoot string
		// ConfigDir overrides the config directory lookup when set.
		ConfigDir string
	}

	// Context is an immutable snapshot of build-context configuration.
	Context struct {
		cacheRoot string
	}

	// Provider constructs a build context from explicit options.
	Provider interface {
		Load() (*Context, error)
	}

	fileProvider struct {
		opts Options
	}
)

// CacheRoot returns the local artifact cache root directory.
func (c *Context) CacheRoot() string {
	return c.cacheRoot
}

// NewProvider creates a build-context provider.
func NewProvider(opts Options) Provider {
	return &fileProvider{opts: opts}
}

// Load resolves the build context. It never touches the filesystem beyond
// reading an optional config file; the cache root is not required to exist.
func (p *fileProvider) Load() (*Context, error) {
	if p.opts.CacheRoot != "" {
		return &Context{cacheRoot: filepath.Clean(p.opts.CacheRoot)}, nil
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	if err := v.BindEnv(cacheDirKey); err != nil {
		return nil, fmt.Errorf("binding %s env: %w", cacheDirKey, err)
	}

	if def, err := DefaultCacheDir(); err == nil {
		v.SetDefault(cacheDirKey, def)
	}

	configDir := p.opts.ConfigDir
	if configDir == "" {
		dir, err := ConfigDir()
		if err == nil {
			configDir = dir
		}
	}
	if configDir != "" {
		v.SetConfigName(configName)
		v.SetConfigType(configFileExt)
		v.AddConfigPath(configDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	root := v.GetString(cacheDirKey)
	if root == "" {
		return nil, errors.New("local artifact cache root is not configured")
	}
	return &Context{cacheRoot: filepath.Clean(root)}, nil
}

// ConfigDir returns the workshed configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string
	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// DefaultCacheDir returns the default local artifact cache root,
// ~/.workshed/cache on all platforms.
func DefaultCacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, "."+AppName, "cache"), nil
}
