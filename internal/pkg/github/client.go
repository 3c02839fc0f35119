// Package github is a thin client for the GitHub Contents API, scoped to one
// file on one branch. The content sha returned by Fetch is the version token
// a later Put must carry; GitHub rejects the write when the file changed in
// between, which is the only concurrency control this system relies on.
package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

const defaultBaseURL = "https://api.github.com"

var (
	ErrNotFound        = errors.New("remote file not found")
	ErrVersionConflict = errors.New("remote file changed since last fetch")
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	repo       string
	filePath   string
	branch     string
}

// NewClient builds a Contents API client for owner/name repo, authenticated
// with a static token.
func NewClient(token, repo, filePath, branch string) (*Client, error) {
	if !strings.Contains(repo, "/") {
		return nil, fmt.Errorf("repo must be in the format 'owner/name', got %q", repo)
	}
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Client{
		httpClient: oauth2.NewClient(context.Background(), source),
		baseURL:    defaultBaseURL,
		repo:       repo,
		filePath:   strings.Trim(filePath, "/"),
		branch:     branch,
	}, nil
}

type contentsResponse struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

// Fetch returns the current file content and its sha version token, or
// ErrNotFound when the file does not exist yet.
func (c *Client) Fetch(ctx context.Context) (string, string, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/contents/%s?ref=%s", c.baseURL, c.repo, c.filePath, url.QueryEscape(c.branch))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to build fetch request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch %s: %w", c.filePath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", "", ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("fetch %s: unexpected status %d", c.filePath, resp.StatusCode)
	}

	var payload contentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", "", fmt.Errorf("failed to decode contents response: %w", err)
	}

	// GitHub wraps the base64 body across lines.
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(payload.Content, "\n", ""))
	if err != nil {
		return "", "", fmt.Errorf("failed to decode file content: %w", err)
	}
	return string(decoded), payload.SHA, nil
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

// Put writes content conditionally on sha. An empty sha creates the file;
// ErrVersionConflict reports that the remote moved on from that sha.
func (c *Client) Put(ctx context.Context, content, sha, message string) error {
	body, err := json.Marshal(putRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString([]byte(content)),
		Branch:  c.branch,
		SHA:     sha,
	})
	if err != nil {
		return fmt.Errorf("failed to encode put request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/repos/%s/contents/%s", c.baseURL, c.repo, c.filePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return fmt.Errorf("failed to build put request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", c.filePath, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusConflict, http.StatusUnprocessableEntity:
		// 409 for a stale sha; 422 when the file exists but no sha was sent.
		return ErrVersionConflict
	default:
		return fmt.Errorf("put %s: unexpected status %d", c.filePath, resp.StatusCode)
	}
}
