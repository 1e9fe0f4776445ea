// Package urllist reads a URL list file and yields its usable entries one at
// a time. A list is plain UTF-8 text with one URL per line; blank lines and
// lines whose first non-whitespace character is '#' are ignored. Entries are
// not validated as URLs here: a malformed URL simply fails later at fetch time.
package urllist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"gimmie/pkg/serrors"
)

// Entry is a single usable line from the URL list.
type Entry struct {
	// URL is the cleaned line content.
	URL string
	// Line is the 1-based line number in the source file.
	Line int
	// Position is the 1-based index among yielded entries. It feeds the
	// fallback filename scheme, so it must be stable for a given input.
	Position int
}

// Source is a lazy, single-pass iterator over the entries of a URL list.
// It is not restartable; reopen the list to iterate again.
type Source struct {
	scanner  *bufio.Scanner
	closer   io.Closer
	line     int
	position int
	err      error
}

// Open opens the URL list at path. The returned error matches
// serrors.ErrInputFile when the file cannot be opened, which callers treat as
// fatal for the whole run.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrInputFile, err, "could not open URL list %q", path)
	}

	s := FromReader(f)
	s.closer = f

	return s, nil
}

// FromReader builds a Source reading from r. The caller keeps ownership of r;
// Close is a no-op for sources built this way.
func FromReader(r io.Reader) *Source {
	return &Source{scanner: bufio.NewScanner(r)}
}

// Next returns the next entry of the list. The second return value is false
// when the list is exhausted or a read error occurred; check Err afterwards to
// distinguish the two.
func (s *Source) Next() (Entry, bool) {
	if s.err != nil {
		return Entry{}, false
	}

	for s.scanner.Scan() {
		s.line++

		url := Clean(s.scanner.Text())
		if url == "" || strings.HasPrefix(url, "#") {
			continue
		}

		s.position++

		return Entry{URL: url, Line: s.line, Position: s.position}, true
	}

	if err := s.scanner.Err(); err != nil {
		s.err = serrors.Wrap(serrors.ErrInputFile, err, "could not read URL list")
	}

	return Entry{}, false
}

// Err returns the first read error encountered while iterating, or nil.
func (s *Source) Err() error { return s.err }

// Close releases the underlying file when the source was built with Open.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	if err := s.closer.Close(); err != nil {
		return fmt.Errorf("could not close URL list: %w", err)
	}

	return nil
}

// Clean normalizes a raw line from the list: surrounding whitespace is
// trimmed, then surrounding double/single quotes and commas are stripped so
// lines pasted from JSON or CSV fragments (`"https://x/a.txt",`) still parse.
// A '#' comment marker is detected before quote stripping, on the
// whitespace-trimmed line.
func Clean(raw string) string {
	url := strings.TrimSpace(raw)
	if strings.HasPrefix(url, "#") {
		return url
	}

	// one cutset, so a closing quote before a trailing comma ("...",)
	// is removed along with the comma
	return strings.Trim(url, `"',`)
}
