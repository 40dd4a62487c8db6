package ghclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-github/github"
)

func setup(t *testing.T) (*Client, *http.ServeMux) {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := New(nil, "o", "r")
	u, err := url.Parse(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	c.c.BaseURL = u
	return c, mux
}

func TestGetReleaseNotes(t *testing.T) {
	c, mux := setup(t)
	mux.HandleFunc("/repos/o/r/releases/tags/v1.0.0", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tag_name":"v1.0.0","body":"### Features\n- Add x","published_at":"2024-05-01T10:00:00Z"}`)
	})

	rel, err := c.GetReleaseNotes(context.Background(), "v1.0.0")
	if err != nil {
		t.Fatalf("GetReleaseNotes() error: %v", err)
	}
	if rel.Body != "### Features\n- Add x" || rel.FromCommits {
		t.Fatalf("unexpected release %+v", rel)
	}
	if got := rel.PublishedAt.Format("2006-01-02"); got != "2024-05-01" {
		t.Fatalf("PublishedAt = %v", got)
	}
}

func TestGetReleaseNotesFallsBackToCommits(t *testing.T) {
	c, mux := setup(t)
	mux.HandleFunc("/repos/o/r/releases/tags/v2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tag_name":"v2","body":""}`)
	})
	mux.HandleFunc("/repos/o/r/git/refs/tags/v2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ref":"refs/tags/v2","object":{"type":"commit","sha":"abc"}}`)
	})
	mux.HandleFunc("/repos/o/r/commits/abc", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"sha":"abc","commit":{"message":"release","author":{"date":"2024-05-01T00:00:00Z"}}}`)
	})
	mux.HandleFunc("/repos/o/r/commits", func(w http.ResponseWriter, r *http.Request) {
		if since := r.URL.Query().Get("since"); !strings.HasPrefix(since, "2024-05-01") {
			t.Errorf("since = %q", since)
		}
		fmt.Fprint(w, `[{"commit":{"message":"Fix player for v2"}},{"commit":{"message":"chore: deps"}}]`)
	})

	rel, err := c.GetReleaseNotes(context.Background(), "v2")
	if err != nil {
		t.Fatalf("GetReleaseNotes() error: %v", err)
	}
	if !rel.FromCommits || rel.Body != "- Fix player for v2\n" {
		t.Fatalf("unexpected release %+v", rel)
	}
}

func TestGetReleaseNotesNoMatchingCommits(t *testing.T) {
	c, mux := setup(t)
	mux.HandleFunc("/repos/o/r/releases/tags/v3", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tag_name":"v3","body":"  "}`)
	})
	mux.HandleFunc("/repos/o/r/git/refs/tags/v3", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ref":"refs/tags/v3","object":{"type":"tag","sha":"t1"}}`)
	})
	mux.HandleFunc("/repos/o/r/git/tags/t1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"sha":"t1","object":{"type":"commit","sha":"c1"}}`)
	})
	mux.HandleFunc("/repos/o/r/commits/c1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"sha":"c1","commit":{"author":{"date":"2024-06-01T00:00:00Z"}}}`)
	})
	mux.HandleFunc("/repos/o/r/commits", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	rel, err := c.GetReleaseNotes(context.Background(), "v3")
	if err != nil {
		t.Fatalf("GetReleaseNotes() error: %v", err)
	}
	if rel.Body != "No release notes or matching commits found for tag v3." {
		t.Fatalf("Body = %q", rel.Body)
	}
}

func TestGetReleaseNotesError(t *testing.T) {
	c, mux := setup(t)
	mux.HandleFunc("/repos/o/r/releases/tags/missing", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	})
	if _, err := c.GetReleaseNotes(context.Background(), "missing"); err == nil {
		t.Fatalf("expected error for missing release")
	}
}

func TestNewWithToken(t *testing.T) {
	c := NewWithToken(context.Background(), "secret", "o", "r")
	if c.owner != "o" || c.repo != "r" || c.c == nil {
		t.Fatalf("unexpected client %+v", c)
	}
	var _ *github.Client = c.c
}
