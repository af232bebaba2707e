// SPDX-License-Identifier: MPL-2.0

package workmod

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"workshed/pkg/cueutil"
)

const (
	// FileName is the descriptor file name looked up in every module root.
	FileName = "workmod.cue"

	// PackagingLib identifies modules that compile into a library package.
	PackagingLib = "lib"
	// PackagingDescriptor identifies descriptor-only (aggregator) modules.
	PackagingDescriptor = "workmod"
)

var (
	//go:embed workmod_schema.cue
	workmodSchema []byte

	// ErrWorkmodNotFound is returned when a directory holds no workmod.cue.
	// Callers can check for it with errors.Is(err, ErrWorkmodNotFound).
	ErrWorkmodNotFound = errors.New("workmod.cue not found")
)

type (
	// Layout holds directory-layout overrides, relative to the module root.
	// Empty fields fall back to the conventional layout.
	Layout struct {
		Sources     string `json:"sources,omitempty"`
		Resources   string `json:"resources,omitempty"`
		Classes     string `json:"classes,omitempty"`
		Output      string `json:"output,omitempty"`
		TestClasses string `json:"testClasses,omitempty"`
	}

	// Workmod is the parsed content of a workmod.cue descriptor.
	Workmod struct {
		// Group and Name form the module identity within the workspace.
		Group string `json:"group"`
		Name  string `json:"name"`
		// Version is the declared version, possibly a "${...}" placeholder.
		Version string `json:"version"`
		// Packaging defaults to PackagingLib when empty.
		Packaging   string `json:"packaging,omitempty"`
		Description string `json:"description,omitempty"`
		// Revision supplies the concrete value for placeholder versions.
		// Only meaningful on the workspace root descriptor.
		Revision string `json:"revision,omitempty"`
		Layout   Layout `json:"layout,omitempty"`

		// FilePath is where this descriptor was loaded from (not in CUE).
		FilePath string `json:"-"`
	}
)

// EffectivePackaging returns the packaging type with the default applied.
func (w *Workmod) EffectivePackaging() string {
	if w.Packaging == "" {
		return PackagingLib
	}
	return w.Packaging
}

// Coords returns the human-readable group:name:version coordinates.
func (w *Workmod) Coords() string {
	return fmt.Sprintf("%s:%s:%s", w.Group, w.Name, w.Version)
}

// Load reads and validates the workmod.cue descriptor in dir.
// Returns ErrWorkmodNotFound (wrapped) when the file does not exist.
func Load(dir string) (*Workmod, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", dir, ErrWorkmodNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse validates raw descriptor bytes against the embedded schema.
// filePath is recorded on the result and used in error messages.
func Parse(data []byte, filePath string) (*Workmod, error) {
	w, err := cueutil.Decode[Workmod](workmodSchema, data, "#Workmod", filePath)
	if err != nil {
		return nil, err
	}
	w.FilePath = filePath
	return w, nil
}
