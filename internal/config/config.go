// Package config loads the release-doc-gen configuration file and the
// credentials passed through the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/menghanl/release-doc-gen/notes"
)

// GitHubConfig selects the repository releases are read from.
type GitHubConfig struct {
	Owner string `yaml:"owner"`
	Repo  string `yaml:"repo"`
	Token string `yaml:"-"`
}

// TrackerConfig describes the issue tracker.
type TrackerConfig struct {
	BaseURL    string   `yaml:"base_url"`
	ProjectKey string   `yaml:"project_key"`
	IssueType  string   `yaml:"issue_type"`
	Labels     []string `yaml:"labels"`
	Prefixes   []string `yaml:"prefixes"`
	Email      string   `yaml:"-"`
	Token      string   `yaml:"-"`
}

// LLMConfig configures the text generation client.
type LLMConfig struct {
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	APIKey      string  `yaml:"-"`
}

// HeaderConfig maps a section header token to a bucket name
// (feature, bug, known_issue or unclassified).
type HeaderConfig struct {
	Token  string `yaml:"token"`
	Bucket string `yaml:"bucket"`
}

// NotesConfig tunes classification and record synthesis.
type NotesConfig struct {
	Threshold      int            `yaml:"threshold"`
	TitleMaxLen    int            `yaml:"title_max_len"`
	SectionHeaders []HeaderConfig `yaml:"section_headers"`
}

// DocumentConfig fills the header block of the generated document.
type DocumentConfig struct {
	ProjectName string `yaml:"project_name"`
	Owner       string `yaml:"owner"`
	OutputDir   string `yaml:"output_dir"`
}

// ServerConfig configures the HTTP front end.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Config models the YAML configuration file.
type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Tracker  TrackerConfig  `yaml:"tracker"`
	LLM      LLMConfig      `yaml:"llm"`
	Notes    NotesConfig    `yaml:"notes"`
	Document DocumentConfig `yaml:"document"`
	Server   ServerConfig   `yaml:"server"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	n := notes.DefaultConfig()
	headers := make([]HeaderConfig, 0, len(n.SectionHeaders))
	for _, h := range n.SectionHeaders {
		headers = append(headers, HeaderConfig{Token: h.Token, Bucket: h.Bucket.String()})
	}
	return &Config{
		Tracker: TrackerConfig{
			BaseURL:   n.TrackerBaseURL,
			IssueType: "Task",
			Labels:    []string{"release-documentation"},
			Prefixes:  n.ProjectPrefixes,
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			BaseURL:     "https://api.openai.com/v1",
			Temperature: 0.5,
			MaxTokens:   1200,
		},
		Notes: NotesConfig{
			Threshold:      n.Threshold,
			TitleMaxLen:    n.TitleMaxLen,
			SectionHeaders: headers,
		},
		Document: DocumentConfig{OutputDir: "."},
		Server:   ServerConfig{Addr: ":8080"},
	}
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("GITHUB_REPO"); v != "" {
		owner, repo, ok := strings.Cut(v, "/")
		if !ok || owner == "" || repo == "" {
			return fmt.Errorf("GITHUB_REPO must be owner/repo, got %q", v)
		}
		c.GitHub.Owner, c.GitHub.Repo = owner, repo
	}
	setFromEnv(&c.GitHub.Token, "GITHUB_TOKEN")
	setFromEnv(&c.Tracker.BaseURL, "JIRA_URL")
	setFromEnv(&c.Tracker.Email, "JIRA_EMAIL")
	setFromEnv(&c.Tracker.Token, "JIRA_TOKEN")
	setFromEnv(&c.Tracker.ProjectKey, "JIRA_PROJECT_KEY")
	setFromEnv(&c.Tracker.IssueType, "JIRA_ISSUE_TYPE")
	setFromEnv(&c.LLM.APIKey, "OPENAI_API_KEY")
	return nil
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// PipelineConfig returns the validated configuration of the notes pipeline.
func (c *Config) PipelineConfig() (notes.Config, error) {
	n := notes.Config{
		TrackerBaseURL:  c.Tracker.BaseURL,
		ProjectPrefixes: c.Tracker.Prefixes,
		Threshold:       c.Notes.Threshold,
		TitleMaxLen:     c.Notes.TitleMaxLen,
	}
	for _, h := range c.Notes.SectionHeaders {
		b, err := notes.ParseBucket(h.Bucket)
		if err != nil {
			return notes.Config{}, fmt.Errorf("section header %q: %w", h.Token, err)
		}
		n.SectionHeaders = append(n.SectionHeaders, notes.HeaderToken{Token: h.Token, Bucket: b})
	}
	if err := n.Validate(); err != nil {
		return notes.Config{}, err
	}
	return n, nil
}
