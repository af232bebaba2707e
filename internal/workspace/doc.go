// SPDX-License-Identifier: MPL-2.0

// Package workspace implements the workspace-aware artifact resolver used
// during multi-module builds.
//
// When a workspace is built as a unit, one module may depend on a sibling
// module that has not been published anywhere yet. The Registry catalogs
// every module participating in the current build; the Locator answers
// per-dependency resolution requests by redirecting matching queries to the
// sibling's own build output (compiled classes directory, a previously
// packaged file, or the descriptor itself) instead of a package cache.
// Queries this component cannot satisfy are reported as not handled so the
// host build engine falls back to its regular repository-based resolution;
// not-handled is the dominant, non-error outcome.
//
// The registry is populated once during workspace discovery and is read-only
// for the rest of the build, so its read path is safe for concurrent
// resolution walks. The only mutation the resolver ever performs is the
// fabrication of an empty classes directory for source-less modules, which
// is idempotent under concurrent callers.
package workspace
