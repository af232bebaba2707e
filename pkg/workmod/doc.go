// SPDX-License-Identifier: MPL-2.0

// Package workmod models the workmod.cue module descriptor.
//
// A workmod.cue file sits at the root of every module directory in a
// workspace and declares the module's identity (group, name), its version,
// its packaging type and, optionally, overrides for the conventional
// directory layout. Descriptors are validated against an embedded CUE schema
// at load time, so downstream consumers (the discovery walker, the workspace
// registry) only ever see well-formed, already-parsed values.
//
// Continuous-integration version schemes are supported through the revision
// field: a module may declare `version: "${revision}"` and the workspace root
// descriptor supplies the concrete value once per build.
package workmod
