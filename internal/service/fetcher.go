package service

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/codelearn-ai/server/internal/github"
	"github.com/codelearn-ai/server/internal/models"
)

// Fetch budgets: at most maxFiles files are returned per repository, each
// truncated to maxContentChars characters.
const (
	maxFiles        = 20
	maxContentChars = 5000

	defaultFetchConcurrency = 4
)

// codeExtensions is the allow-list of source-file extensions worth analyzing.
var codeExtensions = map[string]struct{}{
	".py": {}, ".js": {}, ".jsx": {}, ".ts": {}, ".tsx": {},
	".java": {}, ".cpp": {}, ".c": {}, ".go": {}, ".rs": {},
	".php": {}, ".rb": {}, ".swift": {}, ".kt": {},
}

var repoURLPattern = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)`)

// RepoContent is the result of fetching one repository.
//
// TotalFiles counts every allow-listed file found in the tree, before the
// maxFiles cap is applied, so it is usually larger than len(Files).
type RepoContent struct {
	Owner      string
	Repo       string
	Files      []models.SourceFile
	TotalFiles int
}

// Fetcher retrieves source files from a hosted repository.
type Fetcher interface {
	Fetch(ctx context.Context, repoURL string) (RepoContent, error)
}

type repoFetcher struct {
	gh          *github.Client
	concurrency int
}

// NewRepoFetcher returns a Fetcher backed by the GitHub REST API.
// concurrency bounds parallel file-content fetches; <=0 selects the default.
func NewRepoFetcher(gh *github.Client, concurrency int) Fetcher {
	if concurrency <= 0 {
		concurrency = defaultFetchConcurrency
	}
	return &repoFetcher{gh: gh, concurrency: concurrency}
}

// ParseRepoURL extracts the owner and repository name from a GitHub URL.
func ParseRepoURL(repoURL string) (owner, repo string, err error) {
	m := repoURLPattern.FindStringSubmatch(strings.TrimSuffix(repoURL, ".git"))
	if m == nil {
		return "", "", ErrInvalidRepoURL
	}
	return m[1], m[2], nil
}

// Fetch resolves the repository, walks its default-branch tree and pulls the
// content of every allow-listed file through a bounded worker pool. A single
// file-content failure is skipped, never fatal to the whole fetch.
func (f *repoFetcher) Fetch(ctx context.Context, repoURL string) (RepoContent, error) {
	owner, repo, err := ParseRepoURL(repoURL)
	if err != nil {
		return RepoContent{}, err
	}

	repository, err := f.gh.GetRepository(ctx, owner, repo)
	if err != nil {
		return RepoContent{}, fmt.Errorf("%w: %v", ErrRepoNotFound, err)
	}
	branch := repository.GetDefaultBranch()
	if branch == "" {
		branch = "main"
	}

	tree, err := f.gh.GetTree(ctx, owner, repo, branch)
	if err != nil {
		return RepoContent{}, fmt.Errorf("%w: %v", ErrRepoNotFound, err)
	}

	// Collect allow-listed blobs in tree order.
	var paths []string
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}
		if _, ok := codeExtensions[strings.ToLower(filepath.Ext(entry.GetPath()))]; ok {
			paths = append(paths, entry.GetPath())
		}
	}

	// One slot per matched file keeps tree order stable under concurrency;
	// a nil slot marks a skipped file.
	fetched := make([]*models.SourceFile, len(paths))

	g := new(errgroup.Group)
	g.SetLimit(f.concurrency)
	for i, p := range paths {
		g.Go(func() error {
			content, err := f.gh.GetFileContent(ctx, owner, repo, p)
			if err != nil {
				log.Printf("[Fetcher] skipping %s/%s %s: %v", owner, repo, p, err)
				return nil
			}
			ext := strings.ToLower(filepath.Ext(p))
			fetched[i] = &models.SourceFile{
				Path:     p,
				Content:  truncateRunes(strings.ToValidUTF8(content, ""), maxContentChars),
				Language: strings.TrimPrefix(ext, "."),
			}
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		// Job deadline expired mid-fetch; don't pass off mass skips as success.
		return RepoContent{}, err
	}

	files := make([]models.SourceFile, 0, maxFiles)
	for _, sf := range fetched {
		if sf == nil {
			continue
		}
		files = append(files, *sf)
		if len(files) == maxFiles {
			break
		}
	}

	return RepoContent{
		Owner:      owner,
		Repo:       repo,
		Files:      files,
		TotalFiles: len(paths),
	}, nil
}

// truncateRunes caps s at n characters (not bytes).
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
