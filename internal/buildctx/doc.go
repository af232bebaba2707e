// SPDX-License-Identifier: MPL-2.0

// Package buildctx supplies build-context configuration to the workspace
// resolver, most importantly the local artifact cache root consulted by the
// empty-package probe.
//
// Resolution order for the cache root: explicit option, then the
// WORKSHED_CACHE_DIR environment variable, then a config.toml in the
// platform config directory, then ~/.workshed/cache. Construction is
// explicit and per-build; callers that need laziness wrap a Provider behind
// a sync.Once rather than relying on hidden package state.
package buildctx
