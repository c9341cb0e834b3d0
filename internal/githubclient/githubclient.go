// Package githubclient fetches user accounts and repository snapshots from
// the GitHub REST v3 API.
package githubclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/zarmaks/gitfolio/internal/contract"
	"github.com/zarmaks/gitfolio/schema"
)

const (
	// reposPerPage is the page size used when listing repositories.
	reposPerPage = 100

	// maxRetries bounds retry attempts for rate limits and server errors.
	maxRetries = 3

	// maxRateLimitWait caps how long a single rate-limit wait can block.
	maxRateLimitWait = 2 * time.Minute

	// enrichWorkers is the number of concurrent repository enrichment goroutines.
	enrichWorkers = 8
)

// Client talks to the GitHub REST v3 API and implements contract.RepoFetcher.
type Client struct {
	token   string
	baseURL string
	client  *http.Client
}

var _ contract.RepoFetcher = &Client{} // Compile-time check

// NewClient creates a new GitHub API client from the validated config.
// An empty token means unauthenticated requests with GitHub's lower rate limit.
func NewClient(cfg *contract.Config) *Client {
	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = contract.DefaultAPIBaseURL
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = contract.DefaultHTTPTimeout
	}
	return &Client{
		token:   cfg.Token,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchSnapshots retrieves the user's account metadata and a snapshot of every
// public repository the user owns. Forks are excluded.
func (c *Client) FetchSnapshots(ctx context.Context, username string) (*schema.SnapshotSet, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}

	user, err := c.fetchUser(ctx, username)
	if err != nil {
		return nil, err
	}

	repos, err := c.fetchRepos(ctx, username)
	if err != nil {
		return nil, err
	}

	snapshots := make([]schema.RepositorySnapshot, len(repos))
	errs := make([]error, len(repos))

	// Enrichment needs extra API calls per repository; run them through a
	// bounded worker pool. Each goroutine writes to a unique index, which is safe.
	idxCh := make(chan int, len(repos))
	var wg sync.WaitGroup
	for range enrichWorkers {
		wg.Go(func() {
			for i := range idxCh {
				snapshots[i], errs[i] = c.enrichRepo(ctx, username, repos[i])
			}
		})
	}
	for i := range repos {
		idxCh <- i
	}
	close(idxCh)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return &schema.SnapshotSet{
		User:      *user,
		Repos:     snapshots,
		FetchedAt: time.Now(),
	}, nil
}

// ghUser is the subset of the GitHub user payload we consume.
type ghUser struct {
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	Followers   int       `json:"followers"`
	PublicRepos int       `json:"public_repos"`
}

// ghRepo is the subset of the GitHub repository payload we consume.
type ghRepo struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Language        string    `json:"language"`
	Size            int64     `json:"size"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	OpenIssuesCount int       `json:"open_issues_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	PushedAt        time.Time `json:"pushed_at"`
	Topics          []string  `json:"topics"`
	Fork            bool      `json:"fork"`
	Archived        bool      `json:"archived"`
	License         *struct {
		Key string `json:"key"`
	} `json:"license"`
}

// ghContentEntry is a single entry from the repository contents listing.
type ghContentEntry struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (c *Client) fetchUser(ctx context.Context, username string) (*schema.UserAccount, error) {
	endpoint := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(username))
	resp, err := c.doRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("github user %q not found", username)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github API returned status %d for user %q", resp.StatusCode, username)
	}

	var user ghUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode github user response: %w", err)
	}

	return &schema.UserAccount{
		Login:       user.Login,
		Name:        user.Name,
		JoinedAt:    user.CreatedAt,
		Followers:   user.Followers,
		PublicRepos: user.PublicRepos,
	}, nil
}

// fetchRepos lists all repositories owned by the user, following the
// Link header for pagination.
func (c *Client) fetchRepos(ctx context.Context, username string) ([]ghRepo, error) {
	var all []ghRepo

	nextURL := fmt.Sprintf("%s/users/%s/repos?per_page=%d&type=owner&sort=pushed",
		c.baseURL, url.PathEscape(username), reposPerPage)

	for nextURL != "" {
		resp, err := c.doRequest(ctx, nextURL)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("github API returned status %d listing repos for %q", resp.StatusCode, username)
		}

		var page []ghRepo
		if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("decode github repos response: %w", err)
		}
		next := parseNextLink(resp.Header.Get("Link"))
		_ = resp.Body.Close()

		for _, repo := range page {
			if repo.Fork {
				continue
			}
			all = append(all, repo)
		}
		nextURL = next
	}

	return all, nil
}

// enrichRepo converts a repository payload into a snapshot, probing the
// repository contents for README, tests and CI signals.
func (c *Client) enrichRepo(ctx context.Context, username string, repo ghRepo) (schema.RepositorySnapshot, error) {
	snap := schema.RepositorySnapshot{
		Name:            repo.Name,
		Description:     repo.Description,
		PrimaryLanguage: repo.Language,
		SizeKB:          repo.Size,
		Stars:           repo.StargazersCount,
		Forks:           repo.ForksCount,
		OpenIssues:      repo.OpenIssuesCount,
		CreatedAt:       repo.CreatedAt,
		UpdatedAt:       repo.UpdatedAt,
		PushedAt:        repo.PushedAt,
		HasLicense:      repo.License != nil,
		Topics:          repo.Topics,
		Archived:        repo.Archived,
	}

	languages, err := c.fetchLanguages(ctx, username, repo.Name)
	if err != nil {
		return snap, err
	}
	snap.Languages = languages

	entries, err := c.fetchRootContents(ctx, username, repo.Name)
	if err != nil {
		return snap, err
	}

	for _, entry := range entries {
		name := strings.ToLower(entry.Name)
		switch {
		case entry.Type == "file" && strings.HasPrefix(name, "readme"):
			snap.HasReadme = true
		case entry.Type == "dir" && isTestDirName(name):
			snap.HasTests = true
		case isCIFileName(name):
			snap.HasCI = true
		}
	}

	return snap, nil
}

func (c *Client) fetchLanguages(ctx context.Context, username, repoName string) (map[string]int64, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/languages",
		c.baseURL, url.PathEscape(username), url.PathEscape(repoName))
	resp, err := c.doRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github API returned status %d fetching languages for %q", resp.StatusCode, repoName)
	}

	var languages map[string]int64
	if err := json.NewDecoder(resp.Body).Decode(&languages); err != nil {
		return nil, fmt.Errorf("decode github languages response: %w", err)
	}
	return languages, nil
}

// fetchRootContents lists the repository root. An empty repository returns 404,
// which is treated as an empty listing rather than an error.
func (c *Client) fetchRootContents(ctx context.Context, username, repoName string) ([]ghContentEntry, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/contents/",
		c.baseURL, url.PathEscape(username), url.PathEscape(repoName))
	resp, err := c.doRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github API returned status %d fetching contents for %q", resp.StatusCode, repoName)
	}

	var entries []ghContentEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode github contents response: %w", err)
	}
	return entries, nil
}

// isTestDirName reports whether a root directory name signals a test suite.
func isTestDirName(name string) bool {
	switch name {
	case "test", "tests", "spec", "specs", "__tests__":
		return true
	}
	return false
}

// isCIFileName reports whether a root entry name signals a CI setup.
// The .github directory is treated as a CI signal since workflow files
// live beneath it.
func isCIFileName(name string) bool {
	switch name {
	case ".github", ".travis.yml", ".gitlab-ci.yml", ".circleci", "jenkinsfile", "azure-pipelines.yml":
		return true
	}
	return false
}

// doRequest performs a GET with auth headers, retrying on rate limits and
// transient server errors with bounded backoff.
func (c *Client) doRequest(ctx context.Context, endpoint string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/vnd.github+json")
		req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("github API request: %w", err)
		}

		if wait, limited := rateLimitWait(resp); limited {
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("github API rate limited (status %d)", resp.StatusCode)
			if err := sleepContext(ctx, wait); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("github API returned status %d", resp.StatusCode)
			if err := sleepContext(ctx, time.Duration(attempt+1)*500*time.Millisecond); err != nil {
				return nil, err
			}
			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("github API request failed after %d retries: %w", maxRetries, lastErr)
}

// rateLimitWait inspects a response for rate-limit signals and returns how
// long to wait before retrying.
func rateLimitWait(resp *http.Response) (time.Duration, bool) {
	if resp.StatusCode != http.StatusForbidden && resp.StatusCode != http.StatusTooManyRequests {
		return 0, false
	}

	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			return clampWait(time.Duration(seconds) * time.Second), true
		}
	}

	if resp.Header.Get("X-RateLimit-Remaining") == "0" {
		if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
			if epoch, err := strconv.ParseInt(reset, 10, 64); err == nil {
				return clampWait(time.Until(time.Unix(epoch, 0))), true
			}
		}
		return clampWait(time.Minute), true
	}

	// Plain 403 without rate-limit headers is an authorization problem,
	// not worth retrying.
	if resp.StatusCode == http.StatusForbidden {
		return 0, false
	}
	return clampWait(time.Second), true
}

func clampWait(wait time.Duration) time.Duration {
	if wait < time.Second {
		return time.Second
	}
	if wait > maxRateLimitWait {
		return maxRateLimitWait
	}
	return wait
}

// sleepContext waits for the duration or until the context is canceled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// parseNextLink extracts the rel="next" URL from a GitHub Link header.
func parseNextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		section := strings.Split(part, ";")
		if len(section) < 2 {
			continue
		}
		if strings.TrimSpace(section[1]) != `rel="next"` {
			continue
		}
		urlPart := strings.TrimSpace(section[0])
		return strings.Trim(urlPart, "<>")
	}
	return ""
}
