package release

import (
	"context"
	"fmt"

	"github.com/menghanl/release-doc-gen/docwriter"
	"github.com/menghanl/release-doc-gen/ghclient"
	"github.com/menghanl/release-doc-gen/internal/config"
	"github.com/menghanl/release-doc-gen/internal/logging"
	"github.com/menghanl/release-doc-gen/jira"
	"github.com/menghanl/release-doc-gen/openai"
	"github.com/menghanl/release-doc-gen/summary"
)

// NewRunner builds a runner from cfg. The tracker is only used when its
// credentials are set, and the text generator only when an API key is set.
func NewRunner(ctx context.Context, cfg *config.Config, log *logging.Logger) (*Runner, error) {
	if cfg.GitHub.Owner == "" || cfg.GitHub.Repo == "" {
		return nil, fmt.Errorf("github owner and repo are required")
	}
	pc, err := cfg.PipelineConfig()
	if err != nil {
		return nil, err
	}

	gh := ghclient.NewWithToken(ctx, cfg.GitHub.Token, cfg.GitHub.Owner, cfg.GitHub.Repo)
	gh.SetLogger(log)

	r := &Runner{
		Source: gh,
		Config: pc,
		Meta: docwriter.Meta{
			ProjectName: cfg.Document.ProjectName,
			Owner:       cfg.Document.Owner,
		},
		OutputDir: cfg.Document.OutputDir,
		Log:       log,
	}

	if cfg.Tracker.Email != "" && cfg.Tracker.Token != "" {
		jc, err := jira.New(jira.Options{
			BaseURL:    cfg.Tracker.BaseURL,
			Email:      cfg.Tracker.Email,
			Token:      cfg.Tracker.Token,
			ProjectKey: cfg.Tracker.ProjectKey,
			IssueType:  cfg.Tracker.IssueType,
			Labels:     cfg.Tracker.Labels,
		}, nil)
		if err != nil {
			return nil, err
		}
		r.Tracker = jc
	} else {
		log.Warnf("JIRA_EMAIL or JIRA_TOKEN not set, tickets will not be fetched")
	}

	var gen summary.Generator
	if cfg.LLM.APIKey != "" {
		oc, err := openai.New(openai.Options{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
		}, nil)
		if err != nil {
			return nil, err
		}
		gen = oc
	} else {
		log.Warnf("OPENAI_API_KEY not set, using the local summary")
	}
	r.Summary = summary.New(gen, pc)
	return r, nil
}
