package urllist_test

import (
	"gimmie/internal/urllist"
	"gimmie/pkg/serrors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "plain url untouched",
			in:   "https://example.com/a.txt",
			out:  "https://example.com/a.txt",
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "  https://example.com/a.txt\t",
			out:  "https://example.com/a.txt",
		},
		{
			name: "double quotes stripped",
			in:   `"https://example.com/a.txt"`,
			out:  "https://example.com/a.txt",
		},
		{
			name: "json array fragment",
			in:   `"https://example.com/a.txt",`,
			out:  "https://example.com/a.txt",
		},
		{
			name: "single quotes stripped",
			in:   "'https://example.com/a.txt'",
			out:  "https://example.com/a.txt",
		},
		{
			name: "single-quoted array fragment",
			in:   "  'https://example.com/a.txt',",
			out:  "https://example.com/a.txt",
		},
		{
			name: "blank line collapses to empty",
			in:   "   \t ",
			out:  "",
		},
		{
			name: "comment kept for the caller to skip",
			in:   "  # mirror list, updated weekly",
			out:  "# mirror list, updated weekly",
		},
	}

	for _, tc := range cases {
		if got := urllist.Clean(tc.in); got != tc.out {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.out)
		}
	}
}

func collect(t *testing.T, s *urllist.Source) []urllist.Entry {
	t.Helper()

	var entries []urllist.Entry
	for {
		e, ok := s.Next()
		if !ok {
			break
		}
		entries = append(entries, e)
	}

	return entries
}

func TestSource_skipsBlanksAndComments(t *testing.T) {
	body := strings.Join([]string{
		"https://example.com/a.txt",
		"",
		"# comment",
		"   ",
		"https://example.com/b.txt",
	}, "\n")

	s := urllist.FromReader(strings.NewReader(body))
	entries := collect(t, s)
	require.NoError(t, s.Err())

	require.Len(t, entries, 2)
	require.Equal(t, "https://example.com/a.txt", entries[0].URL)
	require.Equal(t, 1, entries[0].Line)
	require.Equal(t, 1, entries[0].Position)
	require.Equal(t, "https://example.com/b.txt", entries[1].URL)
	require.Equal(t, 5, entries[1].Line)
	require.Equal(t, 2, entries[1].Position)
}

func TestSource_duplicatesYieldedIndividually(t *testing.T) {
	body := "https://example.com/a.txt\nhttps://example.com/a.txt\n"

	s := urllist.FromReader(strings.NewReader(body))
	entries := collect(t, s)
	require.NoError(t, s.Err())

	// a duplicate line is not deduplicated: one outcome per line
	require.Len(t, entries, 2)
	require.Equal(t, entries[0].URL, entries[1].URL)
	require.NotEqual(t, entries[0].Position, entries[1].Position)
}

func TestSource_emptyInput(t *testing.T) {
	s := urllist.FromReader(strings.NewReader(""))
	require.Empty(t, collect(t, s))
	require.NoError(t, s.Err())
}

func TestOpen_missingFile(t *testing.T) {
	_, err := urllist.Open(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrInputFile)
}

func TestOpen_readsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("https://example.com/a.txt\n"), 0o600))

	s, err := urllist.Open(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, s.Close())
	}()

	entries := collect(t, s)
	require.NoError(t, s.Err())
	require.Len(t, entries, 1)
	require.Equal(t, "https://example.com/a.txt", entries[0].URL)
}
