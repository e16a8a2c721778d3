package github

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

// requestTimeout bounds a single API round-trip.
const requestTimeout = 30 * time.Second

// Client is a minimal wrapper around GitHub's REST API v3.
// It is intentionally light—just the endpoints the analysis pipeline requires.
type Client struct {
	gh      *gh.Client
	limiter *RateLimiter
}

// NewClient returns a ready-to-use GitHub API client.
// token may be an empty string, but you will be subject to very low rate-limits.
func NewClient(token string) *Client {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(context.Background(), ts)
	} else {
		hc = &http.Client{}
	}
	hc.Timeout = requestTimeout

	return &Client{
		gh:      gh.NewClient(hc),
		limiter: NewRateLimiter(),
	}
}

// GitHub exposes the underlying go-github client so tests can point it at a
// fake API server via BaseURL.
func (c *Client) GitHub() *gh.Client {
	return c.gh
}

// GetRepository fetches repository metadata (used to resolve the default branch).
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*gh.Repository, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	repository, resp, err := c.gh.Repositories.Get(ctx, owner, repo)
	c.limiter.Update(resp)
	if err != nil {
		return nil, fmt.Errorf("get repo: %w", err)
	}
	return repository, nil
}

// GetTree fetches the full recursive tree for a ref in one API call.
func (c *Client) GetTree(ctx context.Context, owner, repo, ref string) (*gh.Tree, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	tree, resp, err := c.gh.Git.GetTree(ctx, owner, repo, ref, true)
	c.limiter.Update(resp)
	if err != nil {
		return nil, fmt.Errorf("get tree: %w", err)
	}
	return tree, nil
}

// GetFileContent fetches and decodes the content of a single file.
// GitHub returns contents base64-encoded for files under 1MB.
func (c *Client) GetFileContent(ctx context.Context, owner, repo, path string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	content, _, resp, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	c.limiter.Update(resp)
	if err != nil {
		return "", fmt.Errorf("get contents: %w", err)
	}
	if content == nil {
		return "", fmt.Errorf("path %q is a directory, not a file", path)
	}

	decoded, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("decode content: %w", err)
	}
	return decoded, nil
}
