package jira

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/Ilia01/jira-to-pr/internal/config"
	"github.com/Ilia01/jira-to-pr/internal/httpclient"
	"github.com/Ilia01/jira-to-pr/internal/models"
)

const (
	DefaultJQL = "assignee = currentUser() AND status != Done"
	MaxResults = 50

	apiPath = "/rest/api/3"
)

var issueFields = []string{"summary", "description", "status", "assignee", "priority"}

type Client struct {
	baseURL *url.URL
	http    *httpclient.Client
	logger  *slog.Logger
}

// Option adjusts the underlying HTTP client, mainly its transport and timeout.
type Option func(*httpclient.Options)

func NewClient(settings *config.Settings, logger *slog.Logger, opts ...Option) (*Client, error) {
	if settings == nil {
		return nil, fmt.Errorf("jira settings are required")
	}
	base, err := url.Parse(strings.TrimRight(settings.BaseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid jira base url %q: %w", settings.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid jira base url %q: scheme and host are required", settings.BaseURL)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	credentials := base64.StdEncoding.EncodeToString([]byte(settings.Email + ":" + settings.APIToken))
	httpOpts := httpclient.Options{
		Headers: map[string]string{
			"Authorization": "Basic " + credentials,
			"Accept":        "application/json",
		},
		Logger: logger,
	}
	for _, opt := range opts {
		opt(&httpOpts)
	}

	logger.Debug("jira client configured", "settings", settings)

	return &Client{
		baseURL: base,
		http:    httpclient.New(httpOpts),
		logger:  logger,
	}, nil
}

// SearchIssues runs a JQL search and returns at most MaxResults tickets.
// An empty query uses DefaultJQL.
func (c *Client) SearchIssues(ctx context.Context, jql string) ([]models.Ticket, error) {
	if strings.TrimSpace(jql) == "" {
		jql = DefaultJQL
	}

	query := url.Values{}
	query.Set("jql", jql)
	query.Set("fields", strings.Join(issueFields, ","))
	query.Set("maxResults", strconv.Itoa(MaxResults))

	c.logger.Debug("searching jira issues", "jql", jql)

	var response models.SearchResponse
	if err := c.http.Get(ctx, c.endpoint(query, "search"), nil, &response); err != nil {
		return nil, err
	}
	if response.Issues == nil {
		return []models.Ticket{}, nil
	}
	return response.Issues, nil
}

func (c *Client) GetIssue(ctx context.Context, key string) (*models.Ticket, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("issue key is required")
	}

	query := url.Values{}
	query.Set("fields", strings.Join(issueFields, ","))

	c.logger.Debug("fetching jira issue", "key", key)

	var ticket models.Ticket
	if err := c.http.Get(ctx, c.endpoint(query, "issue", key), nil, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// endpoint resolves the API path below the base URL, so a base URL with a
// context path (https://host/jira) keeps it.
func (c *Client) endpoint(query url.Values, segments ...string) string {
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	prefix := strings.TrimPrefix(apiPath, "/") + "/"
	ref := &url.URL{
		Path:     prefix + strings.Join(segments, "/"),
		RawPath:  prefix + strings.Join(escaped, "/"),
		RawQuery: query.Encode(),
	}
	return c.baseURL.ResolveReference(ref).String()
}
