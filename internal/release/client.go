// SPDX-License-Identifier: MPL-2.0

package release

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dorion-updater/internal/issue"
)

const (
	// DefaultBaseURL is the public GitHub REST API.
	DefaultBaseURL = "https://api.github.com"

	// maxJSONResponseBytes is the upper bound on JSON API response size (10 MB).
	maxJSONResponseBytes = 10 << 20

	acceptJSON   = "application/vnd.github+json"
	acceptBinary = "application/octet-stream"
)

var (
	// ErrReleaseNotFound is returned when the project or the requested release
	// does not exist. It wraps issue.ErrNotFound.
	ErrReleaseNotFound = fmt.Errorf("release %w", issue.ErrNotFound)

	errUnexpectedStatus = errors.New("unexpected status")
)

type (
	// RateLimitError is returned when the GitHub API rate limit is exceeded.
	// It wraps issue.ErrNetwork.
	RateLimitError struct {
		Limit     int
		Remaining int
		ResetAt   time.Time
	}

	// Client queries the GitHub Releases API and downloads release assets.
	// A Client holds no per-project state; owner and repo are passed per call.
	Client struct {
		httpClient *http.Client
		baseURL    string // API base URL, overridable for tests and GitHub Enterprise
		token      string // Optional token for authenticated requests
		userAgent  string
	}

	// ClientOption configures a Client during construction.
	ClientOption func(*Client)
)

var _ Source = (*Client)(nil)

// Error formats the rate limit details as a human-readable message.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("GitHub API rate limit exceeded (%d remaining, resets at %s)",
		e.Remaining, e.ResetAt.UTC().Format("15:04 UTC"))
}

// Unwrap classifies rate limiting as a network failure.
func (e *RateLimitError) Unwrap() error { return issue.ErrNetwork }

// WithHTTPClient sets a custom HTTP client, useful for tests or proxies.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(g *Client) {
		g.httpClient = c
	}
}

// WithBaseURL overrides the API base URL. Empty values are ignored.
func WithBaseURL(base string) ClientOption {
	return func(g *Client) {
		if base != "" {
			g.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithToken sets a GitHub token. Authenticated requests have a rate limit of
// 5000/hour instead of 60/hour.
func WithToken(token string) ClientOption {
	return func(g *Client) {
		g.token = token
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(g *Client) {
		g.userAgent = ua
	}
}

// NewClient creates a Client. Defaults: baseURL=DefaultBaseURL,
// userAgent="dorion-updater/dev", httpClient=http.DefaultClient.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    DefaultBaseURL,
		userAgent:  "dorion-updater/dev",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LatestRelease fetches the most recent published, non-draft, non-prerelease
// release of owner/repo. Returns ErrReleaseNotFound when the project has no
// release or does not exist.
func (c *Client) LatestRelease(ctx context.Context, owner, repo string) (*Release, error) {
	latestURL := fmt.Sprintf("%s/repos/%s/%s/releases/latest",
		c.baseURL, url.PathEscape(owner), url.PathEscape(repo))

	r, err := c.getRelease(ctx, latestURL)
	if err != nil {
		return nil, fmt.Errorf("getting latest release of %s/%s: %w", owner, repo, err)
	}
	return r, nil
}

// ReleaseByTag fetches a single release by its Git tag.
// Returns ErrReleaseNotFound if the tag does not correspond to a release.
func (c *Client) ReleaseByTag(ctx context.Context, owner, repo, tag string) (*Release, error) {
	tagURL := fmt.Sprintf("%s/repos/%s/%s/releases/tags/%s",
		c.baseURL, url.PathEscape(owner), url.PathEscape(repo), url.PathEscape(tag))

	r, err := c.getRelease(ctx, tagURL)
	if err != nil {
		return nil, fmt.Errorf("getting release %s of %s/%s: %w", tag, owner, repo, err)
	}
	return r, nil
}

// getRelease performs a GET for a single release object.
func (c *Client) getRelease(ctx context.Context, reqURL string) (*Release, error) {
	resp, err := c.doRequest(ctx, reqURL, acceptJSON)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if err := checkRateLimit(resp); err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrReleaseNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %w %d", issue.ErrNetwork, errUnexpectedStatus, resp.StatusCode)
	}

	var gr githubRelease
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONResponseBytes)).Decode(&gr); err != nil {
		return nil, fmt.Errorf("decoding response: %w: %w", issue.ErrNetwork, err)
	}

	r := toRelease(gr)
	return &r, nil
}

// openAsset starts the download of assetURL and returns the streaming body.
// The caller closes the returned ReadCloser.
func (c *Client) openAsset(ctx context.Context, assetURL string) (io.ReadCloser, error) {
	resp, err := c.doRequest(ctx, assetURL, acceptBinary)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", redactURL(assetURL), err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("downloading %s: %w: %w %d",
			redactURL(assetURL), issue.ErrNetwork, errUnexpectedStatus, resp.StatusCode)
	}

	return resp.Body, nil
}

// doRequest creates and executes a GET request with the common GitHub headers.
// Transport failures are classified as issue.ErrNetwork.
func (c *Client) doRequest(ctx context.Context, reqURL, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", accept)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", c.userAgent)

	// Only attach the token for known GitHub hosts so a redirect to a CDN
	// never receives it.
	if c.token != "" && isGitHubHost(req.URL, c.baseURL) {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w: %w", issue.ErrNetwork, err)
	}

	return resp, nil
}

// checkRateLimit returns a RateLimitError when X-RateLimit-Remaining is zero.
// It does not inspect the status code.
func checkRateLimit(resp *http.Response) error {
	remaining := resp.Header.Get("X-RateLimit-Remaining")
	if remaining == "" {
		return nil
	}

	rem, err := strconv.Atoi(remaining)
	if err != nil {
		return nil //nolint:nilerr // Non-numeric header is non-fatal.
	}

	if rem > 0 {
		return nil
	}

	limit, _ := strconv.Atoi(resp.Header.Get("X-RateLimit-Limit"))                 //nolint:errcheck // Best-effort header parsing.
	resetUnix, _ := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64) //nolint:errcheck // Best-effort header parsing.

	return &RateLimitError{
		Limit:     limit,
		Remaining: 0,
		ResetAt:   time.Unix(resetUnix, 0),
	}
}

// isGitHubHost reports whether reqURL targets the configured API host or, for
// the public API, github.com itself.
func isGitHubHost(reqURL *url.URL, baseURL string) bool {
	base, err := url.Parse(baseURL)
	if err != nil {
		return false
	}
	if strings.EqualFold(reqURL.Host, base.Host) {
		return true
	}
	if strings.EqualFold(base.Host, "api.github.com") && strings.EqualFold(reqURL.Host, "github.com") {
		return true
	}
	return false
}

// redactURL strips query parameters and fragments (signed CDN URLs carry
// credentials there) for inclusion in error messages.
func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid-url>"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
