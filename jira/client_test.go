package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/menghanl/release-doc-gen/adf"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Options{
		BaseURL:    srv.URL + "/",
		Email:      "me@example.com",
		Token:      "secret",
		ProjectKey: "REL",
		IssueType:  "Task",
		Labels:     []string{"release-documentation"},
	}, srv.Client())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return c
}

func TestFetchTicket(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/api/3/issue/CWB-1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if user, pass, ok := r.BasicAuth(); !ok || user != "me@example.com" || pass != "secret" {
			t.Errorf("missing basic auth")
		}
		fmt.Fprint(w, `{"fields":{"summary":"Add carousel","status":{"name":"Done"},"customfield_10014":"EPIC-1"}}`)
	})

	got, err := c.FetchTicket(context.Background(), "CWB-1")
	if err != nil {
		t.Fatalf("FetchTicket() error: %v", err)
	}
	if got.Summary != "Add carousel" || got.Status != "Done" || got.Epic != "EPIC-1" {
		t.Fatalf("unexpected ticket %+v", got)
	}
	if got.URL != c.TicketURL("CWB-1") {
		t.Fatalf("URL = %q", got.URL)
	}
}

func TestFetchTicketNullEpic(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"fields":{"summary":"Fix","status":{"name":"Done"},"customfield_10014":null}}`)
	})
	got, err := c.FetchTicket(context.Background(), "CWB-2")
	if err != nil {
		t.Fatalf("FetchTicket() error: %v", err)
	}
	if got.Epic != DefaultEpic {
		t.Fatalf("Epic = %q, want %q", got.Epic, DefaultEpic)
	}
}

func TestFetchTicketsPlaceholder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	tickets, errs := c.FetchTickets(context.Background(), []string{"CWB-404", "CWB-405"})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	if len(tickets) != 2 || tickets[0].Summary != NotFoundSummary || tickets[1].Status != UnknownStatus {
		t.Fatalf("unexpected tickets %+v", tickets)
	}
}

func TestCreateIssue(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/rest/api/3/issue" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var payload struct {
			Fields struct {
				Project     map[string]string `json:"project"`
				Summary     string            `json:"summary"`
				IssueType   map[string]string `json:"issuetype"`
				Labels      []string          `json:"labels"`
				Description map[string]any    `json:"description"`
			} `json:"fields"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		f := payload.Fields
		if f.Project["key"] != "REL" || f.IssueType["name"] != "Task" || f.Summary != "Release Document for v1" {
			t.Errorf("unexpected fields %+v", f)
		}
		if len(f.Labels) != 1 || f.Labels[0] != "release-documentation" {
			t.Errorf("labels = %v", f.Labels)
		}
		if f.Description["type"] != "doc" {
			t.Errorf("description = %v", f.Description)
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"key":"REL-42"}`)
	})

	doc := &adf.Document{}
	doc.Append(adf.Heading(2, "Release"))
	key, err := c.CreateIssue(context.Background(), Issue{Summary: "Release Document for v1", Description: doc})
	if err != nil {
		t.Fatalf("CreateIssue() error: %v", err)
	}
	if key != "REL-42" {
		t.Fatalf("key = %q", key)
	}
}

func TestCreateIssueFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errorMessages":["bad project"]}`, http.StatusBadRequest)
	})
	if _, err := c.CreateIssue(context.Background(), Issue{Summary: "x"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Options{}, nil); err == nil {
		t.Fatalf("expected error for empty base url")
	}
}
