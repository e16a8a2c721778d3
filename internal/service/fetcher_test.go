package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelearn-ai/server/internal/github"
)

func TestParseRepoURL(t *testing.T) {
	t.Run("plain https URL", func(t *testing.T) {
		owner, repo, err := ParseRepoURL("https://github.com/octo/demo")
		require.NoError(t, err)
		assert.Equal(t, "octo", owner)
		assert.Equal(t, "demo", repo)
	})

	t.Run("trims .git suffix", func(t *testing.T) {
		owner, repo, err := ParseRepoURL("https://github.com/octo/demo.git")
		require.NoError(t, err)
		assert.Equal(t, "octo", owner)
		assert.Equal(t, "demo", repo)
	})

	t.Run("bare host path", func(t *testing.T) {
		owner, repo, err := ParseRepoURL("github.com/torvalds/linux")
		require.NoError(t, err)
		assert.Equal(t, "torvalds", owner)
		assert.Equal(t, "linux", repo)
	})

	t.Run("rejects non-GitHub URLs", func(t *testing.T) {
		_, _, err := ParseRepoURL("https://gitlab.com/octo/demo")
		assert.ErrorIs(t, err, ErrInvalidRepoURL)
	})

	t.Run("rejects URLs without a repo segment", func(t *testing.T) {
		_, _, err := ParseRepoURL("https://github.com/octo")
		assert.ErrorIs(t, err, ErrInvalidRepoURL)
	})
}

type fakeTreeEntry struct {
	Path string `json:"path"`
	Mode string `json:"mode"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
}

// newGitHubFake serves just enough of the GitHub REST API for the fetcher:
// repository metadata, the recursive tree and per-file contents.
func newGitHubFake(t *testing.T, branch string, entries []fakeTreeEntry, contents map[string]string, fail map[string]bool) http.Handler {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/repos/octo/demo", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"id": 1, "name": "demo", "full_name": "octo/demo",
			"default_branch": branch,
		})
	})

	mux.HandleFunc("/repos/octo/demo/git/trees/"+branch, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"sha": "t1", "tree": entries, "truncated": false})
	})

	mux.HandleFunc("/repos/octo/demo/contents/", func(w http.ResponseWriter, r *http.Request) {
		p := strings.TrimPrefix(r.URL.Path, "/repos/octo/demo/contents/")
		if fail[p] {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		content, ok := contents[p]
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(t, w, map[string]any{
			"type":     "file",
			"encoding": "base64",
			"name":     path.Base(p),
			"path":     p,
			"content":  base64.StdEncoding.EncodeToString([]byte(content)),
		})
	})

	return mux
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode fake response: %v", err)
	}
}

func newTestFetcher(t *testing.T, h http.Handler, concurrency int) Fetcher {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c := github.NewClient("")
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	c.GitHub().BaseURL = base

	return NewRepoFetcher(c, concurrency)
}

func blob(p string) fakeTreeEntry {
	return fakeTreeEntry{Path: p, Mode: "100644", Type: "blob", SHA: "s-" + p}
}

func TestFetch(t *testing.T) {
	t.Run("invalid URL fails before any API call", func(t *testing.T) {
		f := newTestFetcher(t, http.NotFoundHandler(), 2)

		_, err := f.Fetch(context.Background(), "not a url at all")
		assert.ErrorIs(t, err, ErrInvalidRepoURL)
	})

	t.Run("missing repository maps to ErrRepoNotFound", func(t *testing.T) {
		f := newTestFetcher(t, http.NotFoundHandler(), 2)

		_, err := f.Fetch(context.Background(), "https://github.com/octo/demo")
		assert.ErrorIs(t, err, ErrRepoNotFound)
	})

	t.Run("filters by extension and keeps tree order", func(t *testing.T) {
		entries := []fakeTreeEntry{
			blob("main.py"),
			{Path: "docs", Mode: "040000", Type: "tree", SHA: "d"},
			blob("README.md"),
			blob("src/utils.PY"), // extension match is case-insensitive
			blob("web/app.js"),
			blob("logo.png"),
		}
		contents := map[string]string{
			"main.py":      strings.Repeat("x", 6000),
			"src/utils.PY": "import os\n",
			"web/app.js":   "console.log(1)\n",
		}
		f := newTestFetcher(t, newGitHubFake(t, "main", entries, contents, nil), 4)

		got, err := f.Fetch(context.Background(), "https://github.com/octo/demo")
		require.NoError(t, err)

		assert.Equal(t, "octo", got.Owner)
		assert.Equal(t, "demo", got.Repo)
		assert.Equal(t, 3, got.TotalFiles)
		require.Len(t, got.Files, 3)

		assert.Equal(t, "main.py", got.Files[0].Path)
		assert.Len(t, got.Files[0].Content, 5000) // hard content budget
		assert.Equal(t, "py", got.Files[0].Language)

		assert.Equal(t, "src/utils.PY", got.Files[1].Path)
		assert.Equal(t, "py", got.Files[1].Language)

		assert.Equal(t, "web/app.js", got.Files[2].Path)
		assert.Equal(t, "js", got.Files[2].Language)
	})

	t.Run("uses the repository's default branch", func(t *testing.T) {
		entries := []fakeTreeEntry{blob("lib.rs")}
		contents := map[string]string{"lib.rs": "fn main() {}\n"}
		f := newTestFetcher(t, newGitHubFake(t, "develop", entries, contents, nil), 2)

		got, err := f.Fetch(context.Background(), "https://github.com/octo/demo")
		require.NoError(t, err)
		require.Len(t, got.Files, 1)
		assert.Equal(t, "rs", got.Files[0].Language)
	})

	t.Run("a failing file is skipped, not fatal", func(t *testing.T) {
		entries := []fakeTreeEntry{blob("a.go"), blob("b.go"), blob("c.go")}
		contents := map[string]string{
			"a.go": "package a",
			"b.go": "package b",
			"c.go": "package c",
		}
		fail := map[string]bool{"b.go": true}
		f := newTestFetcher(t, newGitHubFake(t, "main", entries, contents, fail), 2)

		got, err := f.Fetch(context.Background(), "https://github.com/octo/demo")
		require.NoError(t, err)

		assert.Equal(t, 3, got.TotalFiles) // matched count, not fetched count
		require.Len(t, got.Files, 2)
		assert.Equal(t, "a.go", got.Files[0].Path)
		assert.Equal(t, "c.go", got.Files[1].Path)
	})

	t.Run("returns at most twenty files", func(t *testing.T) {
		var entries []fakeTreeEntry
		contents := map[string]string{}
		for i := 0; i < 25; i++ {
			p := fmt.Sprintf("pkg/f%02d.go", i)
			entries = append(entries, blob(p))
			contents[p] = fmt.Sprintf("package f%02d", i)
		}
		f := newTestFetcher(t, newGitHubFake(t, "main", entries, contents, nil), 8)

		got, err := f.Fetch(context.Background(), "https://github.com/octo/demo")
		require.NoError(t, err)

		assert.Equal(t, 25, got.TotalFiles)
		require.Len(t, got.Files, 20)
		assert.Equal(t, "pkg/f00.go", got.Files[0].Path)
		assert.Equal(t, "pkg/f19.go", got.Files[19].Path)
	})
}
