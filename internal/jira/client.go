package jira

import (
	"context"
	"encoding/json"
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

// Client talks to the Jira REST and Agile APIs with basic credential
// authentication. Requests are rate limited client-side.
type Client struct {
	baseURL    string
	email      string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        zerolog.Logger
}

func NewClient(baseURL, email, token string, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		email:      email,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(5), 10),
		log:        log.With().Str("component", "jira").Logger(),
	}
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Accept", "application/json")

	c.log.Debug().Str("url", u).Msg("jira request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("jira API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Sprints returns one page of the board's sprint listing.
func (c *Client) Sprints(ctx context.Context, boardID, startAt, maxResults int) (*SprintPage, error) {
	q := url.Values{}
	q.Set("startAt", strconv.Itoa(startAt))
	q.Set("maxResults", strconv.Itoa(maxResults))

	var page SprintPage
	path := "/rest/agile/1.0/board/" + strconv.Itoa(boardID) + "/sprint"
	if err := c.get(ctx, path, q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

type searchResponse struct {
	Issues []Issue `json:"issues"`
}

// SearchIssues runs a JQL query, requesting only the given fields.
func (c *Client) SearchIssues(ctx context.Context, jql string, fields []string, maxResults int) ([]Issue, error) {
	q := url.Values{}
	q.Set("jql", jql)
	q.Set("fields", strings.Join(fields, ","))
	q.Set("maxResults", strconv.Itoa(maxResults))

	var out searchResponse
	if err := c.get(ctx, "/rest/api/3/search/jql", q, &out); err != nil {
		return nil, err
	}
	return out.Issues, nil
}

// IssueWithChangelog fetches a single issue with its changelog expanded.
func (c *Client) IssueWithChangelog(ctx context.Context, key string) (*Issue, error) {
	q := url.Values{}
	q.Set("expand", "changelog")

	var issue Issue
	if err := c.get(ctx, "/rest/api/3/issue/"+url.PathEscape(key), q, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

type commentsResponse struct {
	Comments []Comment `json:"comments"`
}

// Comments lists the comments on an issue.
func (c *Client) Comments(ctx context.Context, key string) ([]Comment, error) {
	var out commentsResponse
	if err := c.get(ctx, "/rest/api/3/issue/"+url.PathEscape(key)+"/comment", nil, &out); err != nil {
		return nil, err
	}
	return out.Comments, nil
}
