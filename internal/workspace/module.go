// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"fmt"
	"path/filepath"

	"workshed/pkg/workmod"
)

const (
	// ClassifierTests is the classifier requesting a module's test output.
	ClassifierTests = "tests"

	// TypeLib requests the compiled library package of a module.
	TypeLib = workmod.PackagingLib
	// TypeDescriptor requests the module's build descriptor file.
	TypeDescriptor = workmod.PackagingDescriptor
)

// Default directory layout, relative to a module root.
const (
	DefaultSourcesDir     = "src"
	DefaultResourcesDir   = "resources"
	DefaultClassesDir     = "build/classes"
	DefaultOutputDir      = "build"
	DefaultTestClassesDir = "build/test-classes"
)

type (
	// Key is the unique module identity within a workspace. At most one
	// module is registered per Key.
	Key struct {
		Group string
		Name  string
	}

	// LocalModule is one buildable unit participating in the current
	// workspace. Instances are assembled during workspace discovery and are
	// immutable afterwards; directory fields are absolute paths that are
	// only ever tested for existence, never read.
	LocalModule struct {
		Key Key

		// Version is the effective version: the declared one, or the
		// concrete value a "${...}" placeholder resolved to.
		Version string
		// RawVersion is the version string as declared in the descriptor.
		RawVersion string

		// Dir is the module root directory.
		Dir string
		// SourcesDir and ResourcesDir are only checked for existence to
		// detect modules with nothing to compile.
		SourcesDir   string
		ResourcesDir string
		// ClassesDir is the compiled output directory.
		ClassesDir string
		// OutputDir is where packaged artifact files land.
		OutputDir string
		// TestClassesDir is the test build output directory.
		TestClassesDir string

		// Descriptor is the module's parsed workmod.cue. The resolver only
		// consults identity and version; everything else is opaque to it.
		Descriptor *workmod.Workmod
	}
)

// NewKey builds a Key from group and name.
func NewKey(group, name string) Key {
	return Key{Group: group, Name: name}
}

// String renders the key as "group:name".
func (k Key) String() string {
	return k.Group + ":" + k.Name
}

// NewLocalModule assembles a LocalModule for the module rooted at dir,
// applying the descriptor's layout overrides on top of the conventional
// layout. version is the effective version (see LocalModule.Version).
func NewLocalModule(desc *workmod.Workmod, dir, version string) *LocalModule {
	layout := desc.Layout
	return &LocalModule{
		Key:            NewKey(desc.Group, desc.Name),
		Version:        version,
		RawVersion:     desc.Version,
		Dir:            dir,
		SourcesDir:     layoutDir(dir, layout.Sources, DefaultSourcesDir),
		ResourcesDir:   layoutDir(dir, layout.Resources, DefaultResourcesDir),
		ClassesDir:     layoutDir(dir, layout.Classes, DefaultClassesDir),
		OutputDir:      layoutDir(dir, layout.Output, DefaultOutputDir),
		TestClassesDir: layoutDir(dir, layout.TestClasses, DefaultTestClassesDir),
		Descriptor:     desc,
	}
}

// DescriptorPath returns the path of the module's workmod.cue.
func (m *LocalModule) DescriptorPath() string {
	return filepath.Join(m.Dir, workmod.FileName)
}

// Coords renders the module's effective coordinates.
func (m *LocalModule) Coords() string {
	return fmt.Sprintf("%s:%s:%s", m.Key.Group, m.Key.Name, m.Version)
}

func layoutDir(root, override, fallback string) string {
	if override != "" {
		return filepath.Join(root, filepath.FromSlash(override))
	}
	return filepath.Join(root, filepath.FromSlash(fallback))
}
