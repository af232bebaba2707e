// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"workshed/internal/buildctx"
)

// LocalCacheProbe checks the local artifact cache for already-installed
// artifacts. The build context is constructed lazily on first use and
// memoized (success and failure alike); a context that cannot be
// constructed degrades to "not present", which biases the locator toward
// fabricating an empty artifact rather than deferring to a resolution that
// would fail. Misconfiguration never aborts resolution of an unrelated
// module.
type LocalCacheProbe struct {
	provider buildctx.Provider

	once sync.Once
	ctx  *buildctx.Context
	err  error
}

// NewLocalCacheProbe creates a probe backed by provider.
func NewLocalCacheProbe(provider buildctx.Provider) *LocalCacheProbe {
	return &LocalCacheProbe{provider: provider}
}

// ExistsInLocalCache reports whether the identified artifact is present in
// the local cache, at the conventional path: group segments as nested
// directories, then name, then version, then name-version[-classifier].ext.
func (p *LocalCacheProbe) ExistsInLocalCache(group, name, version, classifier, ext string) bool {
	ctx, err := p.context()
	if err != nil {
		slog.Debug("build context unavailable, treating artifact as absent from cache",
			"artifact", group+":"+name+":"+version, "error", err)
		return false
	}

	path := ctx.CacheRoot()
	for _, segment := range strings.Split(group, ".") {
		path = filepath.Join(path, segment)
	}
	path = filepath.Join(path, name, version, artifactFileName(name, version, classifier, ext))
	return fileExists(path)
}

func (p *LocalCacheProbe) context() (*buildctx.Context, error) {
	p.once.Do(func() {
		p.ctx, p.err = p.provider.Load()
	})
	return p.ctx, p.err
}
