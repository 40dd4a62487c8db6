package notes

// Filters controls which records make it into the notes.
type Filters struct {
	// If Ignore returns true, the record will be excluded from the notes.
	Ignore func(r Record) bool
}

var sectionNames = []struct {
	kind Kind
	name string
}{
	{Feature, "New Features"},
	{Bug, "Bug Fixes"},
}

// GenerateNotes groups the records into one section per kind, features first.
// Sections without entries are left out.
func GenerateNotes(version string, recs []Record, cfg Config, filters Filters) *Notes {
	ns := &Notes{Version: version}
	for _, sn := range sectionNames {
		section := &Section{Name: sn.name, Kind: sn.kind}
		for _, r := range recs {
			if r.Type != sn.kind {
				continue
			}
			if filters.Ignore != nil && filters.Ignore(r) {
				continue
			}
			entry := &Entry{
				TicketID:    r.TicketID,
				Title:       r.Title,
				Description: r.Description,
			}
			if r.TicketID != UnknownTicket {
				entry.HTMLURL = cfg.TicketURL(r.TicketID)
			}
			section.Entries = append(section.Entries, entry)
		}
		if len(section.Entries) > 0 {
			ns.Sections = append(ns.Sections, section)
		}
	}
	return ns
}

// Section returns the section holding kind, or nil.
func (n *Notes) Section(kind Kind) *Section {
	for _, s := range n.Sections {
		if s.Kind == kind {
			return s
		}
	}
	return nil
}
