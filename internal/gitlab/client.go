package gitlab

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

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Soft-failure reasons for merge request lookups. Callers decide whether
// these warrant a user-facing hint or silent degradation.
var (
	ErrAuthRequired = errors.New("gitlab: authorization required")
	ErrNotFound     = errors.New("gitlab: merge request not found")
	ErrUnavailable  = errors.New("gitlab: host unreachable")
)

// Client talks to the GitLab v4 API, optionally bearer-token
// authenticated.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        zerolog.Logger
}

func NewClient(baseURL, token string, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(5), 10),
		log:        log.With().Str("component", "gitlab").Logger(),
	}
}

// HasToken reports whether an access token is configured. A 404 without a
// token usually means the project is private, not missing.
func (c *Client) HasToken() bool { return c.token != "" }

type User struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

type MergeRequest struct {
	IID    int    `json:"iid"`
	State  string `json:"state"`
	Title  string `json:"title"`
	WebURL string `json:"web_url"`
	Author User   `json:"author"`
}

type Change struct {
	OldPath string `json:"old_path"`
	NewPath string `json:"new_path"`
	Diff    string `json:"diff"`
}

type MRChanges struct {
	Changes []Change `json:"changes"`
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("PRIVATE-TOKEN", c.token)
	}

	c.log.Debug().Str("url", c.baseURL+path).Msg("gitlab request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrAuthRequired
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("gitlab API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func mrPath(projectPath string, iid int) string {
	return "/api/v4/projects/" + url.PathEscape(projectPath) + "/merge_requests/" + strconv.Itoa(iid)
}

// MergeRequest fetches merge request metadata.
func (c *Client) MergeRequest(ctx context.Context, projectPath string, iid int) (*MergeRequest, error) {
	var mr MergeRequest
	if err := c.get(ctx, mrPath(projectPath, iid), &mr); err != nil {
		return nil, err
	}
	return &mr, nil
}

// MergeRequestChanges fetches the merge request diff listing.
func (c *Client) MergeRequestChanges(ctx context.Context, projectPath string, iid int) (*MRChanges, error) {
	var changes MRChanges
	if err := c.get(ctx, mrPath(projectPath, iid)+"/changes", &changes); err != nil {
		return nil, err
	}
	return &changes, nil
}
