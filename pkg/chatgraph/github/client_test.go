package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cgerrors "github.com/randalmurphal/chatgraph/pkg/chatgraph/errors"
)

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestAuthenticatedUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user", r.URL.Path)
		assert.Equal(t, "Bearer gh-token", r.Header.Get("Authorization"))
		writeJSON(t, w, map[string]string{"login": "octocat"})
	}))
	defer srv.Close()

	client := NewClient("gh-token", WithBaseURL(srv.URL))

	user, err := client.AuthenticatedUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "octocat", user.Login)
}

func TestAuthenticatedUser_BadToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Bad credentials"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient("bad", WithBaseURL(srv.URL))

	_, err := client.AuthenticatedUser(context.Background())
	require.Error(t, err)

	var httpErr *cgerrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.False(t, cgerrors.IsRetryable(err))
}

func TestListRepositories_Paged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		switch page {
		case 1:
			repos := make([]Repository, listPageSize)
			for i := range repos {
				repos[i] = Repository{Name: fmt.Sprintf("repo-%d", i)}
			}
			writeJSON(t, w, repos)
		case 2:
			writeJSON(t, w, []Repository{{Name: "last-repo"}})
		default:
			t.Errorf("unexpected page %d", page)
		}
	}))
	defer srv.Close()

	client := NewClient("gh-token", WithBaseURL(srv.URL))

	repos, err := client.ListRepositories(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, repos, listPageSize+1)
	assert.Equal(t, "repo-0", repos[0].Name)
	assert.Equal(t, "last-repo", repos[listPageSize].Name)
}

func TestListCommits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/hello/commits", r.URL.Path)
		writeJSON(t, w, []Commit{
			{SHA: "abc", Author: &Account{Login: "octocat"}},
			{SHA: "def", Author: nil}, // commit with no linked account
			{SHA: "ghi", Author: &Account{Login: "someone-else"}},
		})
	}))
	defer srv.Close()

	client := NewClient("gh-token", WithBaseURL(srv.URL))

	commits, err := client.ListCommits(context.Background(), "octocat", "hello")
	require.NoError(t, err)
	require.Len(t, commits, 3)
	assert.Equal(t, "octocat", commits[0].Author.Login)
	assert.Nil(t, commits[1].Author)
}

func TestListCommits_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient("gh-token", WithBaseURL(srv.URL))

	_, err := client.ListCommits(context.Background(), "octocat", "hello")
	require.Error(t, err)

	var httpErr *cgerrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
	assert.True(t, cgerrors.IsRetryable(err))
}

func TestCountPullRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/issues", r.URL.Path)
		assert.Equal(t, "author:@me type:pr", r.URL.Query().Get("q"))
		writeJSON(t, w, map[string]any{"total_count": 42, "items": []any{}})
	}))
	defer srv.Close()

	client := NewClient("gh-token", WithBaseURL(srv.URL))

	count, err := client.CountPullRequests(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, count)
}

func TestClient_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client := NewClient("gh-token", WithBaseURL(srv.URL))

	_, err := client.AuthenticatedUser(context.Background())
	require.Error(t, err)

	var jsonErr *cgerrors.JSONParseError
	assert.ErrorAs(t, err, &jsonErr)
}
