package resolve_test

import (
	"gimmie/internal/resolve"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve_basename(t *testing.T) {
	cases := []struct {
		name     string
		url      string
		position int
		want     string
	}{
		{
			name:     "simple file",
			url:      "https://example.com/files/a.txt",
			position: 1,
			want:     "a.txt",
		},
		{
			name:     "query string ignored",
			url:      "https://example.com/archive.tar.gz?token=abc",
			position: 1,
			want:     "archive.tar.gz",
		},
		{
			name:     "trailing slash falls back",
			url:      "https://example.com/dir/",
			position: 3,
			want:     "download_3",
		},
		{
			name:     "no path falls back",
			url:      "https://example.com",
			position: 7,
			want:     "download_7",
		},
		{
			name:     "dot segment falls back",
			url:      "https://example.com/a/..",
			position: 2,
			want:     "download_2",
		},
		{
			name:     "encoded separator falls back",
			url:      "https://example.com/a%2Fb",
			position: 4,
			want:     "download_4",
		},
		{
			name:     "unparseable url falls back",
			url:      "http://exa mple.com/a.txt",
			position: 5,
			want:     "download_5",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			r := resolve.New(dir)
			got := r.Resolve(tc.url, tc.position)
			require.Equal(t, filepath.Join(dir, tc.want), got)
		})
	}
}

func TestResolve_disambiguatesWithinRun(t *testing.T) {
	dir := t.TempDir()
	r := resolve.New(dir)

	first := r.Resolve("https://a.example.com/report.pdf", 1)
	second := r.Resolve("https://b.example.com/report.pdf", 2)
	third := r.Resolve("https://c.example.com/report.pdf", 3)

	require.Equal(t, filepath.Join(dir, "report.pdf"), first)
	require.Equal(t, filepath.Join(dir, "report_1.pdf"), second)
	require.Equal(t, filepath.Join(dir, "report_2.pdf"), third)
}

func TestResolve_disambiguatesAgainstDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("old"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_1.txt"), []byte("old"), 0o600))

	r := resolve.New(dir)
	got := r.Resolve("https://example.com/a.txt", 1)
	require.Equal(t, filepath.Join(dir, "a_2.txt"), got)
}

func TestResolve_fallbacksAreDisambiguatedToo(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "download_1"), []byte("old"), 0o600))

	r := resolve.New(dir)
	got := r.Resolve("https://example.com/", 1)
	require.Equal(t, filepath.Join(dir, "download_1_1"), got)
}

func TestResolve_deterministicForSameInputOrder(t *testing.T) {
	urls := []string{
		"https://example.com/a.txt",
		"https://example.com/a.txt",
		"https://example.com/",
	}

	run := func(dir string) []string {
		r := resolve.New(dir)
		var out []string
		for i, u := range urls {
			out = append(out, r.Resolve(u, i+1))
		}

		return out
	}

	dirA, dirB := t.TempDir(), t.TempDir()
	a, b := run(dirA), run(dirB)
	require.Len(t, a, len(b))
	for i := range a {
		require.Equal(t, filepath.Base(a[i]), filepath.Base(b[i]), "position %d", i+1)
	}
}

func TestResolve_extensionlessCollision(t *testing.T) {
	dir := t.TempDir()
	r := resolve.New(dir)

	require.Equal(t, filepath.Join(dir, "LICENSE"), r.Resolve("https://example.com/LICENSE", 1))
	require.Equal(t, filepath.Join(dir, "LICENSE_1"), r.Resolve("https://mirror.example.com/LICENSE", 2))
}
