// Package jira reads tickets from and creates release issues in a Jira cloud
// instance through its REST API v3.
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/menghanl/release-doc-gen/adf"
	"github.com/menghanl/release-doc-gen/notes"
)

// Placeholder values for tickets the tracker could not return.
const (
	NotFoundSummary = "Not found"
	UnknownStatus   = "Unknown"
	DefaultEpic     = "Other"
)

// Options configures a Client.
type Options struct {
	BaseURL    string
	Email      string
	Token      string
	ProjectKey string
	IssueType  string
	Labels     []string
}

// Client is a minimal Jira REST client.
type Client struct {
	opts       Options
	httpClient *http.Client
}

// New returns a client. hc may be nil.
func New(opts Options, hc *http.Client) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("jira: base url is not set")
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{opts: opts, httpClient: hc}, nil
}

// TicketURL returns the browse page of id.
func (c *Client) TicketURL(id string) string {
	return c.opts.BaseURL + "/browse/" + id
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal jira payload: %w", err)
		}
		r = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.opts.BaseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.opts.Email, c.opts.Token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// FetchTicket returns the ticket id. When Jira answers with anything but 200
// the returned ticket is a placeholder and the error is nil; transport errors
// return the placeholder and the error.
func (c *Client) FetchTicket(ctx context.Context, id string) (notes.Ticket, error) {
	placeholder := notes.Ticket{
		ID:      id,
		Summary: NotFoundSummary,
		Status:  UnknownStatus,
		URL:     c.TicketURL(id),
		Epic:    DefaultEpic,
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/rest/api/3/issue/"+id, nil)
	if err != nil {
		return placeholder, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return placeholder, fmt.Errorf("fetch ticket %s: %w", id, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return placeholder, nil
	}

	var parsed struct {
		Fields struct {
			Summary string `json:"summary"`
			Status  struct {
				Name string `json:"name"`
			} `json:"status"`
			Epic json.RawMessage `json:"customfield_10014"`
		} `json:"fields"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return placeholder, fmt.Errorf("decode ticket %s: %w", id, err)
	}

	epic := DefaultEpic
	var s string
	if json.Unmarshal(parsed.Fields.Epic, &s) == nil && s != "" {
		epic = s
	}
	return notes.Ticket{
		ID:      id,
		Summary: parsed.Fields.Summary,
		Status:  parsed.Fields.Status.Name,
		URL:     c.TicketURL(id),
		Epic:    epic,
	}, nil
}

// FetchTickets fetches every id. Failures are reported but do not stop
// processing; the placeholder ticket is kept for them.
func (c *Client) FetchTickets(ctx context.Context, ids []string) ([]notes.Ticket, []error) {
	var (
		tickets []notes.Ticket
		errs    []error
	)
	for _, id := range ids {
		t, err := c.FetchTicket(ctx, id)
		if err != nil {
			errs = append(errs, err)
		}
		tickets = append(tickets, t)
	}
	return tickets, errs
}

// Issue is a new tracker issue.
type Issue struct {
	Summary     string
	Description *adf.Document
	Labels      []string
}

type issueFields struct {
	Project     map[string]string `json:"project"`
	Summary     string            `json:"summary"`
	Description *adf.Document     `json:"description,omitempty"`
	IssueType   map[string]string `json:"issuetype"`
	Labels      []string          `json:"labels,omitempty"`
}

// CreateIssue creates the issue in the configured project and returns its key.
func (c *Client) CreateIssue(ctx context.Context, issue Issue) (string, error) {
	labels := issue.Labels
	if len(labels) == 0 {
		labels = c.opts.Labels
	}
	payload := struct {
		Fields issueFields `json:"fields"`
	}{
		Fields: issueFields{
			Project:     map[string]string{"key": c.opts.ProjectKey},
			Summary:     issue.Summary,
			Description: issue.Description,
			IssueType:   map[string]string{"name": c.opts.IssueType},
			Labels:      labels,
		},
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/rest/api/3/issue", payload)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("create issue: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("jira responded with status %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}
	var created struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decode created issue: %w", err)
	}
	return created.Key, nil
}
