// SPDX-License-Identifier: MPL-2.0

package diag

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	UnknownModuleId Id = iota + 1
	VersionMismatchId
	ClassifierMismatchId
	UnsupportedTypeId
	NotBuiltId
)

type MarkdownMsg string

// Diagnostic explains one not-handled resolver outcome.
type Diagnostic struct {
	id    Id          // ID used to look up the diagnostic
	mdMsg MarkdownMsg // Markdown text that will be rendered
}

func (d *Diagnostic) Id() Id {
	return d.id
}

func (d *Diagnostic) MarkdownMsg() MarkdownMsg {
	return d.mdMsg
}

func (d *Diagnostic) Render(stylePath string) (string, error) {
	return render(string(d.mdMsg), stylePath)
}

var (
	render = glamour.Render

	unknownModuleDiag = &Diagnostic{
		id: UnknownModuleId,
		mdMsg: `
# Module is not part of this workspace

No module with the requested group and name is registered in the current
workspace, so resolution is deferred to the regular repository resolver.

## Things you can check:
- List the modules the workspace actually contains:
~~~
$ workshed workspace show
~~~
- Check for typos in the group or name of the coordinate
- Make sure the module directory contains a workmod.cue descriptor`,
	}

	versionMismatchDiag = &Diagnostic{
		id: VersionMismatchId,
		mdMsg: `
# Version does not match the workspace module

A module with this identity exists in the workspace, but its version is not
the one requested. Workspace resolution only short-circuits exact version
matches (or a "${revision}"-style placeholder that resolved to the module's
own version); everything else defers to the repository resolver.

## Things you can check:
- Compare the requested version with the workspace version:
~~~
$ workshed workspace show
~~~
- If you use a CI-friendly placeholder version, confirm the root
  workmod.cue declares the concrete revision:
~~~cue
version:  "${revision}"
revision: "1.0.0-ci"
~~~`,
	}

	classifierMismatchDiag = &Diagnostic{
		id: ClassifierMismatchId,
		mdMsg: `
# Classifier not available from the workspace

The requested classifier is not the module's natural one. The only
classifier a workspace module can serve is "tests", and only after its test
output directory exists.

## Things you can try:
- Build the module's tests first so build/test-classes exists
- Drop the classifier to request the module's primary artifact`,
	}

	unsupportedTypeDiag = &Diagnostic{
		id: UnsupportedTypeId,
		mdMsg: `
# Packaging type not handled by the workspace

Workspace resolution special-cases two packaging types: "lib" (compiled
library packages) and "workmod" (the module descriptor itself). Any other
type is always resolved by the regular repository resolver.`,
	}

	notBuiltDiag = &Diagnostic{
		id: NotBuiltId,
		mdMsg: `
# Module matched but has no usable output yet

The module is part of this workspace and matched the query, but none of its
representations exist on disk: no compiled classes directory, no previously
packaged file, and the empty-package fabrication did not apply (the module
has sources, the artifact already sits in the local cache, or creating the
directory failed).

## Things you can try:
- Build the module so build/classes exists
- If the artifact is expected in the local cache, let the regular resolver
  serve it - this outcome is not an error`,
	}

	diagnostics = map[Id]*Diagnostic{
		unknownModuleDiag.Id():      unknownModuleDiag,
		versionMismatchDiag.Id():    versionMismatchDiag,
		classifierMismatchDiag.Id(): classifierMismatchDiag,
		unsupportedTypeDiag.Id():    unsupportedTypeDiag,
		notBuiltDiag.Id():           notBuiltDiag,
	}
)

// Values returns all diagnostics ordered by id.
func Values() []*Diagnostic {
	all := maps.Values(diagnostics)
	slices.SortFunc(all, func(a, b *Diagnostic) int { return int(a.id) - int(b.id) })
	return all
}

func Get(id Id) *Diagnostic {
	return diagnostics[id]
}
