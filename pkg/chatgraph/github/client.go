// Package github provides the small slice of the GitHub REST API the tool
// agent needs: the authenticated user, repository listing, commit listing,
// and pull-request search counts.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	cgerrors "github.com/randalmurphal/chatgraph/pkg/chatgraph/errors"
)

// listPageSize is the per_page value used for paged listing calls.
const listPageSize = 100

// Client talks to the GitHub REST API.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	timeout    time.Duration
	httpClient *http.Client
}

// Option configures Client.
type Option func(*Client)

// NewClient creates a GitHub API client authenticated with the given token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    "https://api.github.com",
		token:      token,
		timeout:    30 * time.Second,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithBaseURL sets the API base URL (useful for tests and GHE).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// User is the authenticated GitHub account.
type User struct {
	Login string `json:"login"`
}

// Repository is a repository owned by a user.
type Repository struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
}

// Commit is one commit in a repository's history.
type Commit struct {
	SHA    string   `json:"sha"`
	Author *Account `json:"author"`
}

// Account is the GitHub account attached to a commit, if any.
type Account struct {
	Login string `json:"login"`
}

// AuthenticatedUser returns the account the client's token belongs to.
func (c *Client) AuthenticatedUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListRepositories returns all repositories for the given user, following
// pagination until a short page is returned.
func (c *Client) ListRepositories(ctx context.Context, login string) ([]Repository, error) {
	var all []Repository
	for page := 1; ; page++ {
		var repos []Repository
		query := url.Values{
			"per_page": {fmt.Sprint(listPageSize)},
			"page":     {fmt.Sprint(page)},
		}
		if err := c.get(ctx, "/users/"+url.PathEscape(login)+"/repos", query, &repos); err != nil {
			return nil, err
		}
		all = append(all, repos...)
		if len(repos) < listPageSize {
			return all, nil
		}
	}
}

// ListCommits returns the commits of one repository, following pagination.
// Callers counting across many repositories should treat a per-repository
// error as a soft failure and move on.
func (c *Client) ListCommits(ctx context.Context, login, repo string) ([]Commit, error) {
	var all []Commit
	for page := 1; ; page++ {
		var commits []Commit
		query := url.Values{
			"per_page": {fmt.Sprint(listPageSize)},
			"page":     {fmt.Sprint(page)},
		}
		path := "/repos/" + url.PathEscape(login) + "/" + url.PathEscape(repo) + "/commits"
		if err := c.get(ctx, path, query, &commits); err != nil {
			return nil, err
		}
		all = append(all, commits...)
		if len(commits) < listPageSize {
			return all, nil
		}
	}
}

// CountPullRequests returns the number of pull requests authored by the
// authenticated user, via the issue search endpoint's total count.
func (c *Client) CountPullRequests(ctx context.Context) (int, error) {
	var result struct {
		TotalCount int `json:"total_count"`
	}
	query := url.Values{"q": {"author:@me type:pr"}}
	if err := c.get(ctx, "/search/issues", query, &result); err != nil {
		return 0, err
	}
	return result.TotalCount, nil
}

// get performs a GET request and decodes the JSON response into out.
// Non-2xx statuses are returned as *cgerrors.HTTPError.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return &cgerrors.TimeoutError{Operation: "GET " + path, Duration: c.timeout.String()}
		}
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &cgerrors.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(data)),
			Endpoint:   path,
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &cgerrors.JSONParseError{Input: string(data), Message: err.Error()}
	}
	return nil
}
