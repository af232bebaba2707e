// SPDX-License-Identifier: MPL-2.0

package workspace

import "strings"

// IsPlaceholder reports whether version is a symbolic placeholder of the
// "${revision}" family used by continuous-integration version schemes. Such
// versions are substituted with a concrete value once per build; until then
// the raw string still contains the "${" marker.
func IsPlaceholder(version string) bool {
	return strings.Contains(version, "${")
}
