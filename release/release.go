// Package release runs the whole release documentation flow: release notes
// from github, ticket details from the tracker, records, summary, document
// and tracker issue.
package release

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/menghanl/release-doc-gen/adf"
	"github.com/menghanl/release-doc-gen/docwriter"
	"github.com/menghanl/release-doc-gen/ghclient"
	"github.com/menghanl/release-doc-gen/internal/logging"
	"github.com/menghanl/release-doc-gen/jira"
	"github.com/menghanl/release-doc-gen/notes"
	"github.com/menghanl/release-doc-gen/summary"
)

// ErrMissingTag is returned when Run is called without a tag.
var ErrMissingTag = errors.New("release: tag is required")

// Source returns the release notes of a tag.
type Source interface {
	GetReleaseNotes(ctx context.Context, tag string) (*ghclient.Release, error)
}

// Tracker reads tickets and creates the release issue.
type Tracker interface {
	FetchTickets(ctx context.Context, ids []string) ([]notes.Ticket, []error)
	CreateIssue(ctx context.Context, issue jira.Issue) (string, error)
}

// Runner wires the collaborators. Tracker and Summary may be nil.
type Runner struct {
	Source    Source
	Tracker   Tracker
	Summary   *summary.Summarizer
	Config    notes.Config
	Meta      docwriter.Meta
	OutputDir string
	Log       *logging.Logger
}

// Options selects the side effects of Run.
type Options struct {
	Tag         string
	WriteFiles  bool
	CreateIssue bool
}

// Result is everything produced for one release.
type Result struct {
	Tag     string
	Date    string
	Body    string
	Tickets []notes.Ticket
	Records []notes.Record
	Mode    notes.Mode
	Notes   *notes.Notes
	// Document is the release tree built from Body.
	Document *adf.Document
	// Description is Document with the summary highlights after its title.
	Description *adf.Document

	DocPath   string
	AIDocPath string
	IssueKey  string
}

// Run generates the documentation for opts.Tag. Failures of github, the
// tracker or the text generator are logged and the run continues with what is
// available.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	tag := strings.TrimSpace(opts.Tag)
	if tag == "" {
		return nil, ErrMissingTag
	}

	var (
		body string
		date = time.Now()
	)
	r.Log.Printf("fetching release notes for %v", tag)
	rel, err := r.Source.GetReleaseNotes(ctx, tag)
	if err != nil {
		r.Log.Warnf("failed to get release notes: %v", err)
	} else {
		body = rel.Body
		date = rel.PublishedAt
		if rel.FromCommits {
			r.Log.Warnf("release %v has no notes, using commit messages", tag)
		}
	}

	res, err := r.Compose(ctx, tag, body)
	if err != nil {
		return nil, err
	}
	res.Date = date.Format("2006-01-02")

	if opts.WriteFiles {
		r.writeFiles(ctx, res)
	}
	if opts.CreateIssue {
		r.createIssue(ctx, res)
	}
	return res, nil
}

// Compose turns body into records and documents without writing anything.
func (r *Runner) Compose(ctx context.Context, tag, body string) (*Result, error) {
	builder := adf.NewBuilder(r.Config)
	doc, err := builder.Build(body)
	if err != nil {
		return nil, err
	}

	res := &Result{Tag: tag, Body: body, Document: doc}

	ids := notes.NewExtractor(r.Config).UniqueTickets(body)
	if r.Tracker != nil && len(ids) > 0 {
		r.Log.Printf("fetching %v tickets from the tracker", len(ids))
		tickets, errs := r.Tracker.FetchTickets(ctx, ids)
		for _, e := range errs {
			r.Log.Warnf("%v", e)
		}
		res.Tickets = tickets
	}

	res.Records, res.Mode = notes.NewSynthesizer(r.Config).Synthesize(body, res.Tickets)
	res.Notes = notes.GenerateNotes(tag, res.Records, r.Config, notes.Filters{})
	r.Log.Printf("%v records from %v", len(res.Records), res.Mode)

	res.Description = &adf.Document{Nodes: append([]adf.Node(nil), doc.Nodes...)}
	if r.Summary != nil {
		highlights, err := r.Summary.Highlights(ctx, tag, res.Records)
		if err != nil {
			r.Log.Warnf("%v, using local summary", err)
		}
		res.Description.InsertAfterHeading(highlights...)
	}
	return res, nil
}

func (r *Runner) writeFiles(ctx context.Context, res *Result) {
	meta := r.Meta
	meta.Version = res.Tag
	meta.Date = res.Date

	path := filepath.Join(r.OutputDir, docwriter.FileName(res.Tag, ".md"))
	if err := docwriter.WriteFile(path, meta, res.Description); err != nil {
		r.Log.Errorf("%v", err)
	} else {
		res.DocPath = path
		r.Log.Successf("document saved: %v", path)
	}

	if r.Summary == nil {
		return
	}
	text, err := r.Summary.ReleaseDocument(ctx, res.Tag, res.Body, res.Tickets)
	switch {
	case errors.Is(err, summary.ErrNoGenerator):
		return
	case err != nil:
		r.Log.Warnf("%v", err)
		return
	}
	aiPath := filepath.Join(r.OutputDir, docwriter.FileName(res.Tag, "_ai.md"))
	if err := os.WriteFile(aiPath, []byte(text+"\n"), 0o644); err != nil {
		r.Log.Errorf("write ai document: %v", err)
		return
	}
	res.AIDocPath = aiPath
	r.Log.Successf("ai document saved: %v", aiPath)
}

func (r *Runner) createIssue(ctx context.Context, res *Result) {
	if r.Tracker == nil {
		r.Log.Warnf("no tracker configured, skipping issue creation")
		return
	}
	key, err := r.Tracker.CreateIssue(ctx, jira.Issue{
		Summary:     fmt.Sprintf("Release Document for %v", res.Tag),
		Description: res.Description,
	})
	if err != nil {
		r.Log.Errorf("failed to create issue: %v", err)
		return
	}
	res.IssueKey = key
	r.Log.Successf("issue created: %v", key)
}
