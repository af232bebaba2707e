// SPDX-License-Identifier: MPL-2.0

// Package discovery scans a workspace directory tree for module descriptors
// and assembles the per-build workspace registry.
//
// Every directory containing a workmod.cue is treated as a module root.
// Build output trees and hidden directories are skipped during the walk.
// Placeholder versions ("${revision}"-style) are substituted with the
// concrete revision declared by the workspace root descriptor, and that
// value is recorded on the registry exactly once so the locator can honor
// placeholder-version queries.
package discovery
