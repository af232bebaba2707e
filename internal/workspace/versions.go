// SPDX-License-Identifier: MPL-2.0

package workspace

// versionsSlot is the populated state of the single-entry findVersions
// cache. A nil slot pointer is the empty state; any query that does not
// match the slot exactly repopulates or clears it.
type versionsSlot struct {
	key      Key
	versions []string
}

// FindVersions reports which versions of the identified module exist in the
// workspace: a single-element list when the module is registered under
// exactly the queried version, an empty list otherwise.
//
// Dependency graph resolution tends to repeat the same version query
// back-to-back, so the previous result is kept in a single slot and reused
// when the immediately preceding call matches. The cache is purely a
// recomputation saver: its result is identical to an uncached lookup, and
// under concurrent callers a lost slot update merely costs one extra map
// lookup.
func (l *Locator) FindVersions(group, name, version string) []string {
	if slot := l.versions.Load(); slot != nil &&
		version == slot.versions[0] && slot.key.Group == group && slot.key.Name == name {
		return slot.versions
	}

	key := NewKey(group, name)
	mod := l.registry.Lookup(key)
	if mod == nil || mod.Version != version {
		l.versions.Store(nil)
		return nil
	}

	slot := &versionsSlot{key: key, versions: []string{version}}
	l.versions.Store(slot)
	return slot.versions
}
