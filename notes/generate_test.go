package notes

import "testing"

func TestGenerateNotes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TrackerBaseURL = "https://tracker.example.com/"
	recs := []Record{
		{Type: Bug, Title: "Fix a", TicketID: "CWB-1"},
		{Type: Feature, Title: "Add b", TicketID: UnknownTicket},
		{Type: Feature, Title: "Add c", TicketID: "CWB-3"},
	}
	ns := GenerateNotes("v1.0.0", recs, cfg, Filters{
		Ignore: func(r Record) bool { return r.Title == "Add c" },
	})

	if len(ns.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(ns.Sections))
	}
	if ns.Sections[0].Name != "New Features" || ns.Sections[1].Name != "Bug Fixes" {
		t.Fatalf("unexpected section order: %q, %q", ns.Sections[0].Name, ns.Sections[1].Name)
	}
	if n := len(ns.Section(Feature).Entries); n != 1 {
		t.Fatalf("feature entries = %d, want 1", n)
	}
	if got := ns.Section(Feature).Entries[0].HTMLURL; got != "" {
		t.Fatalf("unknown ticket got url %q", got)
	}
	if got, want := ns.Section(Bug).Entries[0].HTMLURL, "https://tracker.example.com/browse/CWB-1"; got != want {
		t.Fatalf("HTMLURL = %q, want %q", got, want)
	}
}

func TestGenerateNotesSkipsEmptySections(t *testing.T) {
	ns := GenerateNotes("v1", []Record{{Type: Bug, Title: "Fix", TicketID: UnknownTicket}}, DefaultConfig(), Filters{})
	if len(ns.Sections) != 1 || ns.Section(Feature) != nil {
		t.Fatalf("unexpected sections: %+v", ns.Sections)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	cfg := DefaultConfig()
	cfg.ProjectPrefixes = []string{"cwb"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for lowercase prefix")
	}
	cfg = DefaultConfig()
	cfg.TitleMaxLen = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for zero title length")
	}
}
