// SPDX-License-Identifier: MPL-2.0

// Package diag maps resolver outcomes to user-facing diagnostics. Each
// diagnostic carries a markdown message rendered with glamour, explaining
// why a query was not handled by the workspace and what to try next.
package diag
