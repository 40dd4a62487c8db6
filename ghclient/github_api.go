package ghclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/go-github/github"
)

func (c *Client) getReleaseByTag(ctx context.Context, tag string) (*github.RepositoryRelease, error) {
	c.printf("release tag: %v", tag)
	release, _, err := c.c.Repositories.GetReleaseByTag(ctx, c.owner, c.repo, tag)
	if err != nil {
		return nil, fmt.Errorf("get release %q: %w", tag, err)
	}
	return release, nil
}

// getTagCommitDate resolves tag to its commit, following annotated tags, and
// returns the commit's author date.
func (c *Client) getTagCommitDate(ctx context.Context, tag string) (time.Time, error) {
	ref, _, err := c.c.Git.GetRef(ctx, c.owner, c.repo, "tags/"+tag)
	if err != nil {
		return time.Time{}, fmt.Errorf("get ref for tag %q: %w", tag, err)
	}
	sha := ref.GetObject().GetSHA()
	if ref.GetObject().GetType() == "tag" {
		t, _, err := c.c.Git.GetTag(ctx, c.owner, c.repo, sha)
		if err != nil {
			return time.Time{}, fmt.Errorf("get annotated tag %q: %w", tag, err)
		}
		sha = t.GetObject().GetSHA()
	}
	commit, _, err := c.c.Repositories.GetCommit(ctx, c.owner, c.repo, sha)
	if err != nil {
		return time.Time{}, fmt.Errorf("get commit %v: %w", sha, err)
	}
	return commit.GetCommit().GetAuthor().GetDate(), nil
}

func (c *Client) getCommitMessagesSince(ctx context.Context, since time.Time) ([]string, error) {
	opt := &github.CommitsListOptions{
		Since:       since,
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var msgs []string
	for {
		commits, resp, err := c.c.Repositories.ListCommits(ctx, c.owner, c.repo, opt)
		if err != nil {
			return nil, fmt.Errorf("list commits: %w", err)
		}
		for _, rc := range commits {
			msgs = append(msgs, rc.GetCommit().GetMessage())
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	c.printf("count commits since %v: %v", since.Format("2006-01-02"), len(msgs))
	return msgs, nil
}

func (c *Client) getReleaseNotes(ctx context.Context, tag string) (*Release, error) {
	release, err := c.getReleaseByTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	ret := &Release{
		Tag:         tag,
		Body:        release.GetBody(),
		PublishedAt: release.GetPublishedAt().Time,
	}
	if ret.PublishedAt.IsZero() {
		ret.PublishedAt = time.Now()
	}
	if strings.TrimSpace(ret.Body) != "" {
		return ret, nil
	}

	c.printf("no release notes for %v, looking for commits mentioning the tag", tag)
	since, err := c.getTagCommitDate(ctx, tag)
	if err != nil {
		return nil, err
	}
	msgs, err := c.getCommitMessagesSince(ctx, since)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	for _, m := range msgs {
		if strings.Contains(m, tag) {
			fmt.Fprintf(&b, "- %v\n", m)
		}
	}
	ret.Body = b.String()
	ret.FromCommits = true
	if ret.Body == "" {
		ret.Body = fmt.Sprintf("No release notes or matching commits found for tag %v.", tag)
	}
	return ret, nil
}
