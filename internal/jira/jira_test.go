package jira

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ilia01/jira-to-pr/internal/config"
	"github.com/Ilia01/jira-to-pr/internal/httpclient"
)

const fieldsParam = "summary,description,status,assignee,priority"

type roundTripFunc func(*http.Request) *http.Response

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func testSettings(baseURL string) *config.Settings {
	return &config.Settings{BaseURL: baseURL, Email: "test@example.com", APIToken: "test-token"}
}

func withTransport(rt http.RoundTripper) Option {
	return func(o *httpclient.Options) { o.Transport = rt }
}

func TestNewClientSetsAuthHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`{"issues":[],"total":0}`))
	}))
	defer server.Close()

	client, err := NewClient(testSettings(server.URL), nil)
	require.NoError(t, err)

	_, err = client.SearchIssues(context.Background(), "")
	require.NoError(t, err)

	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("test@example.com:test-token"))
	assert.Equal(t, want, got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
}

func TestNewClientRejectsInvalidBaseURL(t *testing.T) {
	_, err := NewClient(testSettings("not a url"), nil)
	require.Error(t, err)

	_, err = NewClient(nil, nil)
	require.Error(t, err)
}

func TestSearchIssuesDefaultJQL(t *testing.T) {
	var gotPath, gotJQL, gotFields, gotMax string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotJQL = r.URL.Query().Get("jql")
		gotFields = r.URL.Query().Get("fields")
		gotMax = r.URL.Query().Get("maxResults")
		_, _ = w.Write([]byte(`{
			"issues": [
				{"id":"1","key":"TEST-1","fields":{"summary":"Test issue 1","description":"Description 1","status":{"name":"To Do"},"assignee":{"displayName":"John Doe"},"priority":{"name":"High"}}},
				{"id":"2","key":"TEST-2","fields":{"summary":"Test issue 2","description":null,"status":{"name":"In Progress"},"assignee":null,"priority":{"name":"Medium"}}}
			],
			"total": 2
		}`))
	}))
	defer server.Close()

	client, err := NewClient(testSettings(server.URL), nil)
	require.NoError(t, err)

	tickets, err := client.SearchIssues(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "/rest/api/3/search", gotPath)
	assert.Equal(t, DefaultJQL, gotJQL)
	assert.Equal(t, fieldsParam, gotFields)
	assert.Equal(t, "50", gotMax)

	require.Len(t, tickets, 2)
	assert.Equal(t, "TEST-1", tickets[0].Key)
	assert.Equal(t, "TEST-2", tickets[1].Key)
	assert.True(t, tickets[0].HasDescription())
	assert.False(t, tickets[1].HasDescription())
	_, hasAssignee := tickets[1].AssigneeName()
	assert.False(t, hasAssignee)
}

func TestSearchIssuesCustomJQLIsEncoded(t *testing.T) {
	var rawQuery string
	client, err := NewClient(testSettings("https://example.atlassian.net"), nil, withTransport(roundTripFunc(func(req *http.Request) *http.Response {
		rawQuery = req.URL.RawQuery
		assert.Equal(t, "example.atlassian.net", req.URL.Host)
		return jsonResponse(http.StatusOK, `{"issues":[],"total":0}`)
	})))
	require.NoError(t, err)

	_, err = client.SearchIssues(context.Background(), `project = "Test Project" AND status = "In Progress"`)
	require.NoError(t, err)

	assert.Contains(t, rawQuery, "jql=project+%3D+%22Test+Project%22+AND+status+%3D+%22In+Progress%22")
	assert.Contains(t, rawQuery, "fields=summary%2Cdescription%2Cstatus%2Cassignee%2Cpriority")
}

func TestSearchIssuesEmptyResult(t *testing.T) {
	client, err := NewClient(testSettings("https://example.atlassian.net"), nil, withTransport(roundTripFunc(func(req *http.Request) *http.Response {
		return jsonResponse(http.StatusOK, `{"total":0}`)
	})))
	require.NoError(t, err)

	tickets, err := client.SearchIssues(context.Background(), "project = EMPTY")
	require.NoError(t, err)
	assert.NotNil(t, tickets)
	assert.Empty(t, tickets)
}

func TestSearchIssuesKeepsContextPath(t *testing.T) {
	var gotPath string
	client, err := NewClient(testSettings("https://example.com/jira/"), nil, withTransport(roundTripFunc(func(req *http.Request) *http.Response {
		gotPath = req.URL.Path
		return jsonResponse(http.StatusOK, `{"issues":[]}`)
	})))
	require.NoError(t, err)

	_, err = client.SearchIssues(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "/jira/rest/api/3/search", gotPath)
}

func TestGetIssue(t *testing.T) {
	var gotPath, gotFields string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotFields = r.URL.Query().Get("fields")
		_, _ = w.Write([]byte(`{"id":"1","key":"TEST-123","fields":{"summary":"Test issue","description":"Test description","status":{"name":"To Do"},"assignee":{"displayName":"John Doe"},"priority":{"name":"High"}}}`))
	}))
	defer server.Close()

	client, err := NewClient(testSettings(server.URL), nil)
	require.NoError(t, err)

	ticket, err := client.GetIssue(context.Background(), "TEST-123")
	require.NoError(t, err)

	assert.Equal(t, "/rest/api/3/issue/TEST-123", gotPath)
	assert.Equal(t, fieldsParam, gotFields)
	assert.Equal(t, "TEST-123", ticket.Key)
	assert.Equal(t, "Test issue", ticket.Title())
	assert.Equal(t, "High", ticket.Fields.Priority.Name)
}

func TestGetIssueEscapesKey(t *testing.T) {
	var gotEscaped string
	client, err := NewClient(testSettings("https://example.atlassian.net"), nil, withTransport(roundTripFunc(func(req *http.Request) *http.Response {
		gotEscaped = req.URL.EscapedPath()
		return jsonResponse(http.StatusOK, `{"key":"A/B","fields":{"summary":"s","status":{"name":"x"},"priority":{"name":"y"}}}`)
	})))
	require.NoError(t, err)

	_, err = client.GetIssue(context.Background(), "A/B")
	require.NoError(t, err)
	assert.Equal(t, "/rest/api/3/issue/A%2FB", gotEscaped)
}

func TestGetIssueNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errorMessages":["Issue does not exist or you do not have permission to see it."]}`))
	}))
	defer server.Close()

	client, err := NewClient(testSettings(server.URL), nil)
	require.NoError(t, err)

	ticket, err := client.GetIssue(context.Background(), "NOTFOUND-1")
	require.Error(t, err)
	assert.Nil(t, ticket)
	assert.Contains(t, err.Error(), "HTTP 404")

	var statusErr *httpclient.StatusError
	assert.True(t, errors.As(err, &statusErr))
}

func TestGetIssueRequiresKey(t *testing.T) {
	client, err := NewClient(testSettings("https://example.atlassian.net"), nil)
	require.NoError(t, err)

	_, err = client.GetIssue(context.Background(), "  ")
	require.Error(t, err)
}

func TestSearchIssuesTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client, err := NewClient(testSettings(server.URL), nil, func(o *httpclient.Options) {
		o.Timeout = 20 * time.Millisecond
	})
	require.NoError(t, err)

	_, err = client.SearchIssues(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, httpclient.ErrTimeout)
}
