// SPDX-License-Identifier: MPL-2.0

package release

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"dorion-updater/internal/issue"
)

func TestLatestRelease_Success(t *testing.T) {
	t.Parallel()

	release := githubRelease{
		TagName: "v2.1.0",
		Name:    "Vencordorion 2.1.0",
		Assets: []githubAsset{
			{Name: "browser.js", BrowserDownloadURL: "https://example.invalid/browser.js", Size: 120, ContentType: "text/javascript"},
			{Name: "browser.css", BrowserDownloadURL: "https://example.invalid/browser.css", Size: 40, ContentType: "text/css", Digest: "sha256:abc"},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/SpikeHD/Vencordorion/releases/latest" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Accept"); got != acceptJSON {
			t.Errorf("Accept = %q, want %q", got, acceptJSON)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(release); err != nil {
			t.Errorf("encoding release: %v", err)
		}
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	got, err := client.LatestRelease(context.Background(), "SpikeHD", "Vencordorion")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &Release{
		Tag:  "v2.1.0",
		Name: "Vencordorion 2.1.0",
		Assets: []Asset{
			{Name: "browser.js", DownloadURL: "https://example.invalid/browser.js", Size: 120, ContentType: "text/javascript"},
			{Name: "browser.css", DownloadURL: "https://example.invalid/browser.css", Size: 40, ContentType: "text/css", Digest: "sha256:abc"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LatestRelease() mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"browser.js", "browser.css"}, got.AssetNames()); diff != "" {
		t.Errorf("AssetNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestLatestRelease_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	got, err := client.LatestRelease(context.Background(), "SpikeHD", "missing")

	if got != nil {
		t.Errorf("expected nil release, got %+v", got)
	}
	if !errors.Is(err, ErrReleaseNotFound) {
		t.Errorf("expected ErrReleaseNotFound, got %v", err)
	}
	if kind := issue.KindOf(err); kind != issue.KindNotFound {
		t.Errorf("KindOf() = %v, want %v", kind, issue.KindNotFound)
	}
}

func TestLatestRelease_UnexpectedStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.LatestRelease(context.Background(), "SpikeHD", "Dorion")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if kind := issue.KindOf(err); kind != issue.KindNetwork {
		t.Errorf("KindOf() = %v, want %v", kind, issue.KindNetwork)
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error %q should mention the status code", err)
	}
}

func TestLatestRelease_MalformedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"tag_name": `)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.LatestRelease(context.Background(), "SpikeHD", "Dorion")
	if kind := issue.KindOf(err); kind != issue.KindNetwork {
		t.Errorf("KindOf() = %v, want %v (err: %v)", kind, issue.KindNetwork, err)
	}
}

func TestLatestRelease_TransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	client := NewClient(WithBaseURL(base))
	_, err := client.LatestRelease(context.Background(), "SpikeHD", "Dorion")
	if kind := issue.KindOf(err); kind != issue.KindNetwork {
		t.Errorf("KindOf() = %v, want %v (err: %v)", kind, issue.KindNetwork, err)
	}
}

func TestRateLimitError(t *testing.T) {
	t.Parallel()

	resetTime := time.Date(2026, 7, 1, 14, 30, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-RateLimit-Limit", "60")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.LatestRelease(context.Background(), "SpikeHD", "Dorion")

	var rateLimitErr *RateLimitError
	if !errors.As(err, &rateLimitErr) {
		t.Fatalf("expected RateLimitError, got %T: %v", err, err)
	}
	if rateLimitErr.Limit != 60 {
		t.Errorf("Limit = %d, want 60", rateLimitErr.Limit)
	}
	if !rateLimitErr.ResetAt.Equal(resetTime) {
		t.Errorf("ResetAt = %v, want %v", rateLimitErr.ResetAt, resetTime)
	}
	if !strings.Contains(err.Error(), "14:30 UTC") {
		t.Errorf("error %q should mention the reset time", err)
	}
	if kind := issue.KindOf(err); kind != issue.KindNetwork {
		t.Errorf("KindOf() = %v, want %v", kind, issue.KindNetwork)
	}
}

func TestRequestHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     []ClientOption
		wantAuth string
		wantUA   string
	}{
		{
			name:   "anonymous",
			wantUA: "dorion-updater/dev",
		},
		{
			name:     "token and agent",
			opts:     []ClientOption{WithToken("ghp_secret"), WithUserAgent("dorion-updater/1.2.3")},
			wantAuth: "Bearer ghp_secret",
			wantUA:   "dorion-updater/1.2.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			headers := make(chan http.Header, 1)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				headers <- r.Header.Clone()
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"tag_name":"v1.0.0","assets":[]}`)
			}))
			defer srv.Close()

			opts := append([]ClientOption{WithBaseURL(srv.URL)}, tt.opts...)
			if _, err := NewClient(opts...).LatestRelease(context.Background(), "o", "r"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			h := <-headers
			gotAuth, gotUA, gotVersion := h.Get("Authorization"), h.Get("User-Agent"), h.Get("X-GitHub-Api-Version")
			if gotAuth != tt.wantAuth {
				t.Errorf("Authorization = %q, want %q", gotAuth, tt.wantAuth)
			}
			if gotUA != tt.wantUA {
				t.Errorf("User-Agent = %q, want %q", gotUA, tt.wantUA)
			}
			if gotVersion == "" {
				t.Error("X-GitHub-Api-Version header not set")
			}
		})
	}
}

func TestWithBaseURL_IgnoresEmpty(t *testing.T) {
	t.Parallel()

	c := NewClient(WithBaseURL(""))
	if c.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, DefaultBaseURL)
	}

	c = NewClient(WithBaseURL("https://ghe.example.com/api/v3/"))
	if c.baseURL != "https://ghe.example.com/api/v3" {
		t.Errorf("baseURL = %q, want trailing slash trimmed", c.baseURL)
	}
}

func TestIsGitHubHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		reqURL  string
		baseURL string
		want    bool
	}{
		{"api host", "https://api.github.com/repos/o/r", DefaultBaseURL, true},
		{"github.com for public api", "https://github.com/o/r/releases/download/v1/a", DefaultBaseURL, true},
		{"cdn", "https://objects.githubusercontent.com/x", DefaultBaseURL, false},
		{"enterprise host", "https://ghe.example.com/api/v3/repos", "https://ghe.example.com/api/v3", true},
		{"github.com for enterprise", "https://github.com/o/r", "https://ghe.example.com/api/v3", false},
		{"case insensitive", "https://API.GitHub.com/repos", DefaultBaseURL, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			u, err := url.Parse(tt.reqURL)
			if err != nil {
				t.Fatalf("parsing %q: %v", tt.reqURL, err)
			}
			if got := isGitHubHost(u, tt.baseURL); got != tt.want {
				t.Errorf("isGitHubHost(%q, %q) = %v, want %v", tt.reqURL, tt.baseURL, got, tt.want)
			}
		})
	}
}

func TestRedactURL(t *testing.T) {
	t.Parallel()

	got := redactURL("https://objects.githubusercontent.com/a/b?X-Amz-Signature=secret#frag")
	if got != "https://objects.githubusercontent.com/a/b" {
		t.Errorf("redactURL() = %q", got)
	}
	if strings.Contains(got, "secret") {
		t.Error("redactURL() leaked the query string")
	}
}

func TestFindAsset(t *testing.T) {
	t.Parallel()

	r := &Release{Tag: "v1.0.0", Assets: []Asset{{Name: "browser.js"}, {Name: "browser.js.map"}}}

	a, err := r.FindAsset("browser.js")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Name != "browser.js" {
		t.Errorf("FindAsset() = %q, want exact match", a.Name)
	}

	_, err = r.FindAsset("browser")
	if !errors.Is(err, issue.ErrAssetNotFound) {
		t.Errorf("expected ErrAssetNotFound for a prefix, got %v", err)
	}
}
