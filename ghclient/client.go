// Package ghclient reads release notes from github.
package ghclient

import (
	"context"
	"net/http"
	"time"

	"github.com/google/go-github/github"
	"golang.org/x/oauth2"
)

// Logger receives progress lines.
type Logger interface {
	Printf(format string, args ...any)
}

// Client is a github client used to get release info from one repository.
type Client struct {
	owner string
	repo  string

	c   *github.Client
	log Logger
}

// Release is the text of a release and when it was published.
type Release struct {
	Tag         string
	Body        string
	PublishedAt time.Time
	// FromCommits is set when Body was assembled from commit messages because
	// the release had no notes.
	FromCommits bool
}

// New creates a client for owner/repo. tc may be nil for unauthenticated
// access.
func New(tc *http.Client, owner, repo string) *Client {
	return &Client{
		owner: owner,
		repo:  repo,
		c:     github.NewClient(tc),
	}
}

// NewWithToken creates a client authenticating with a personal access token.
// An empty token gives an unauthenticated client.
func NewWithToken(ctx context.Context, token, owner, repo string) *Client {
	var tc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		tc = oauth2.NewClient(ctx, ts)
	}
	return New(tc, owner, repo)
}

// SetLogger sets where progress lines go.
func (c *Client) SetLogger(l Logger) {
	c.log = l
}

// GetReleaseNotes returns the release for tag. When the release has no notes,
// the body lists the messages of commits since the tag that mention it.
func (c *Client) GetReleaseNotes(ctx context.Context, tag string) (*Release, error) {
	return c.getReleaseNotes(ctx, tag)
}

func (c *Client) printf(format string, args ...any) {
	if c.log != nil {
		c.log.Printf(format, args...)
	}
}
