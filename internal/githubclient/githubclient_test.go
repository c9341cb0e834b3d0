package githubclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zarmaks/gitfolio/internal/contract"
)

func newTestClient(baseURL, token string) *Client {
	return NewClient(&contract.Config{
		Token:       token,
		APIBaseURL:  baseURL,
		HTTPTimeout: 5 * time.Second,
	})
}

func TestFetchSnapshots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/users/octocat":
			fmt.Fprint(w, `{
				"login": "octocat",
				"name": "The Octocat",
				"created_at": "2011-01-25T18:44:36Z",
				"followers": 4000,
				"public_repos": 8
			}`)
		case "/users/octocat/repos":
			fmt.Fprint(w, `[
				{
					"name": "ml-pipeline",
					"description": "Training pipeline",
					"language": "Python",
					"size": 2048,
					"stargazers_count": 42,
					"forks_count": 7,
					"open_issues_count": 3,
					"created_at": "2023-01-01T00:00:00Z",
					"updated_at": "2025-06-01T00:00:00Z",
					"pushed_at": "2025-06-01T00:00:00Z",
					"topics": ["machine-learning", "python"],
					"fork": false,
					"archived": false,
					"license": {"key": "mit"}
				},
				{
					"name": "forked-thing",
					"fork": true
				},
				{
					"name": "old-site",
					"language": "JavaScript",
					"size": 128,
					"created_at": "2018-01-01T00:00:00Z",
					"updated_at": "2019-01-01T00:00:00Z",
					"pushed_at": "2019-01-01T00:00:00Z",
					"fork": false,
					"archived": true,
					"license": null
				}
			]`)
		case "/repos/octocat/ml-pipeline/languages":
			fmt.Fprint(w, `{"Python": 90000, "Shell": 1000}`)
		case "/repos/octocat/old-site/languages":
			fmt.Fprint(w, `{"JavaScript": 5000}`)
		case "/repos/octocat/ml-pipeline/contents/":
			fmt.Fprint(w, `[
				{"name": "README.md", "type": "file"},
				{"name": "tests", "type": "dir"},
				{"name": ".github", "type": "dir"},
				{"name": "src", "type": "dir"}
			]`)
		case "/repos/octocat/old-site/contents/":
			fmt.Fprint(w, `[
				{"name": "index.html", "type": "file"}
			]`)
		default:
			t.Errorf("Unexpected request path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	set, err := client.FetchSnapshots(context.Background(), "octocat")
	require.NoError(t, err)
	require.NotNil(t, set)

	assert.Equal(t, "octocat", set.User.Login)
	assert.Equal(t, "The Octocat", set.User.Name)
	assert.Equal(t, 4000, set.User.Followers)
	assert.Equal(t, 8, set.User.PublicRepos)
	assert.False(t, set.FetchedAt.IsZero())

	// The fork is excluded
	require.Len(t, set.Repos, 2)

	byName := make(map[string]int)
	for i, repo := range set.Repos {
		byName[repo.Name] = i
	}

	ml := set.Repos[byName["ml-pipeline"]]
	assert.Equal(t, "Training pipeline", ml.Description)
	assert.Equal(t, "Python", ml.PrimaryLanguage)
	assert.Equal(t, int64(2048), ml.SizeKB)
	assert.Equal(t, 42, ml.Stars)
	assert.Equal(t, 7, ml.Forks)
	assert.Equal(t, 3, ml.OpenIssues)
	assert.Equal(t, []string{"machine-learning", "python"}, ml.Topics)
	assert.True(t, ml.HasLicense)
	assert.True(t, ml.HasReadme)
	assert.True(t, ml.HasTests)
	assert.True(t, ml.HasCI)
	assert.False(t, ml.Archived)
	assert.Equal(t, int64(90000), ml.Languages["Python"])
	assert.Equal(t, int64(1000), ml.Languages["Shell"])

	old := set.Repos[byName["old-site"]]
	assert.Equal(t, "JavaScript", old.PrimaryLanguage)
	assert.False(t, old.HasLicense)
	assert.False(t, old.HasReadme)
	assert.False(t, old.HasTests)
	assert.False(t, old.HasCI)
	assert.True(t, old.Archived)
}

func TestFetchSnapshotsPagination(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/users/octocat":
			fmt.Fprint(w, `{"login": "octocat", "created_at": "2011-01-25T18:44:36Z"}`)
		case "/users/octocat/repos":
			page := r.URL.Query().Get("page")
			if page == "2" {
				fmt.Fprint(w, `[{"name": "page-two-repo", "fork": false,
					"created_at": "2023-01-01T00:00:00Z",
					"updated_at": "2023-01-01T00:00:00Z",
					"pushed_at": "2023-01-01T00:00:00Z"}]`)
				return
			}
			next := fmt.Sprintf("%s/users/octocat/repos?per_page=100&page=2", server.URL)
			w.Header().Set("Link", fmt.Sprintf(`<%s>; rel="next", <%s>; rel="last"`, next, next))
			fmt.Fprint(w, `[{"name": "page-one-repo", "fork": false,
				"created_at": "2023-01-01T00:00:00Z",
				"updated_at": "2023-01-01T00:00:00Z",
				"pushed_at": "2023-01-01T00:00:00Z"}]`)
		default:
			// Languages and contents for both repos
			if strings.HasSuffix(r.URL.Path, "/contents/") {
				fmt.Fprint(w, `[]`)
			} else {
				fmt.Fprint(w, `{}`)
			}
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	set, err := client.FetchSnapshots(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, set.Repos, 2)

	names := []string{set.Repos[0].Name, set.Repos[1].Name}
	assert.Contains(t, names, "page-one-repo")
	assert.Contains(t, names, "page-two-repo")
}

func TestFetchSnapshotsUserNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	_, err := client.FetchSnapshots(context.Background(), "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFetchSnapshotsEmptyUsername(t *testing.T) {
	client := newTestClient("http://unused.example.com", "")
	_, err := client.FetchSnapshots(context.Background(), "  ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username")
}

func TestAuthorizationHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer ghp_testtoken", r.Header.Get("Authorization"))
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/users/octocat":
			fmt.Fprint(w, `{"login": "octocat", "created_at": "2011-01-25T18:44:36Z"}`)
		case "/users/octocat/repos":
			fmt.Fprint(w, `[]`)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, "ghp_testtoken")
	set, err := client.FetchSnapshots(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Empty(t, set.Repos)
}

func TestNoAuthorizationHeaderWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/users/octocat":
			fmt.Fprint(w, `{"login": "octocat", "created_at": "2011-01-25T18:44:36Z"}`)
		case "/users/octocat/repos":
			fmt.Fprint(w, `[]`)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	_, err := client.FetchSnapshots(context.Background(), "octocat")
	require.NoError(t, err)
}

func TestRateLimitRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"login": "octocat", "created_at": "2011-01-25T18:44:36Z"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	user, err := client.fetchUser(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, "octocat", user.Login)
	assert.Equal(t, int32(2), calls.Load())
}

func TestServerErrorRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"login": "octocat", "created_at": "2011-01-25T18:44:36Z"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	user, err := client.fetchUser(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, "octocat", user.Login)
	assert.Equal(t, int32(3), calls.Load())
}

func TestServerErrorRetryExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	_, err := client.fetchUser(context.Background(), "octocat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 retries")
}

func TestRateLimitContextCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(time.Hour).Unix()))
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	client := newTestClient(server.URL, "")
	_, err := client.fetchUser(ctx, "octocat")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEmptyRepoContents(t *testing.T) {
	// GitHub returns 404 for the contents listing of an empty repository
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	entries, err := client.fetchRootContents(context.Background(), "octocat", "empty-repo")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParseNextLink(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{
			name:   "next and last",
			header: `<https://api.github.com/user/1/repos?page=2>; rel="next", <https://api.github.com/user/1/repos?page=5>; rel="last"`,
			want:   "https://api.github.com/user/1/repos?page=2",
		},
		{
			name:   "only prev and first",
			header: `<https://api.github.com/user/1/repos?page=1>; rel="prev", <https://api.github.com/user/1/repos?page=1>; rel="first"`,
			want:   "",
		},
		{
			name:   "empty header",
			header: "",
			want:   "",
		},
		{
			name:   "malformed header",
			header: "not a link header",
			want:   "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseNextLink(tc.header))
		})
	}
}

func TestIsTestDirName(t *testing.T) {
	assert.True(t, isTestDirName("tests"))
	assert.True(t, isTestDirName("test"))
	assert.True(t, isTestDirName("spec"))
	assert.True(t, isTestDirName("__tests__"))
	assert.False(t, isTestDirName("src"))
	assert.False(t, isTestDirName("testdata"))
}

func TestIsCIFileName(t *testing.T) {
	assert.True(t, isCIFileName(".github"))
	assert.True(t, isCIFileName(".travis.yml"))
	assert.True(t, isCIFileName("jenkinsfile"))
	assert.False(t, isCIFileName("main.go"))
	assert.False(t, isCIFileName("makefile"))
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(&contract.Config{})
	assert.Equal(t, contract.DefaultAPIBaseURL, client.baseURL)
	assert.Empty(t, client.token)
}
