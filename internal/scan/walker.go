// Package scan discovers candidate files under a source tree.
package scan

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
)

// SkipFunc is invoked when part of the tree cannot be read during a walk.
// The walk continues with that subtree skipped.
type SkipFunc func(path string, err error)

// Walker streams candidate file paths out of a directory tree. A candidate
// is a regular file whose extension is on the allow-list; extension matching
// is case-insensitive. Symlinks are not followed, so a symlinked directory
// never contributes files. Special files (fifos, devices) are ignored.
type Walker struct {
	exts   map[string]bool
	onSkip SkipFunc
}

// NewWalker builds a Walker for the given extension allow-list (lowercase,
// leading dot, as produced by config.NormalizeExtensions). onSkip may be nil.
func NewWalker(extensions []string, onSkip SkipFunc) *Walker {
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		exts[e] = true
	}
	if onSkip == nil {
		onSkip = func(string, error) {}
	}
	return &Walker{exts: exts, onSkip: onSkip}
}

// Match reports whether name carries one of the allowed extensions.
func (w *Walker) Match(name string) bool {
	return w.exts[strings.ToLower(filepath.Ext(name))]
}

// Walk streams matching file paths on the returned channel, walking root
// depth-first in lexical order. The channel is unbuffered, so discovery is
// paced by the consumers, and it is closed when the walk finishes or ctx is
// canceled. Unreadable directories go through the skip hook and do not abort
// the walk.
func (w *Walker) Walk(ctx context.Context, root string) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				w.onSkip(path, err)
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			if !w.Match(d.Name()) {
				return nil
			}
			select {
			case out <- path:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()
	return out
}
