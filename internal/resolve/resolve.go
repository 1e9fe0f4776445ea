// Package resolve derives local filenames for downloaded URLs and guarantees
// that no two entries of one run resolve to the same path.
package resolve

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Resolver maps URLs to destination paths under a single directory. It owns
// the set of names already claimed during the current run, so one Resolver
// must be constructed per batch and used from a single goroutine.
type Resolver struct {
	dir     string
	claimed map[string]struct{}
}

// New creates a Resolver for the given destination directory.
func New(dir string) *Resolver {
	return &Resolver{
		dir:     dir,
		claimed: make(map[string]struct{}),
	}
}

// Resolve returns the destination path for rawURL. position is the entry's
// 1-based index in the input list and seeds the fallback name for URLs that
// carry no usable filename. Resolve never fails and never touches the
// filesystem beyond an existence probe; the file itself is created later by
// the downloader.
//
// Names already claimed in this run, or already present on disk from an
// earlier run, get a numeric disambiguator before the extension:
// a.txt, a_1.txt, a_2.txt, ...
func (r *Resolver) Resolve(rawURL string, position int) string {
	name := baseName(rawURL)
	if name == "" {
		name = fmt.Sprintf("download_%d", position)
	}

	final := name
	for i := 1; r.taken(final); i++ {
		final = numbered(name, i)
	}
	r.claimed[final] = struct{}{}

	return filepath.Join(r.dir, final)
}

// taken reports whether name is unavailable, either because an earlier entry
// of this run claimed it or because a file with that name already exists in
// the destination directory.
func (r *Resolver) taken(name string) bool {
	if _, ok := r.claimed[name]; ok {
		return true
	}
	if _, err := os.Stat(filepath.Join(r.dir, name)); err == nil {
		return true
	}

	return false
}

// baseName extracts the final path segment of rawURL as a filename candidate.
// It returns "" when the URL cannot be parsed, ends in a slash, has no path,
// or the segment is not usable as a filename.
func baseName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	// split on the raw path so an encoded %2F cannot hide a separator,
	// then decode the segment for use as a filename
	seg := u.EscapedPath()
	if i := strings.LastIndex(seg, "/"); i >= 0 {
		seg = seg[i+1:]
	}
	if dec, err := url.PathUnescape(seg); err == nil {
		seg = dec
	}

	if seg == "" || seg == "." || seg == ".." {
		return ""
	}
	if strings.ContainsAny(seg, "/\\\x00") {
		return ""
	}

	return seg
}

// numbered inserts a numeric disambiguator before the extension:
// numbered("a.txt", 2) == "a_2.txt".
func numbered(name string, i int) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	return fmt.Sprintf("%s_%d%s", stem, i, ext)
}
