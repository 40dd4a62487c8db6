package notes

import (
	"strings"
	"unicode/utf8"
)

// Mode tells which input populated a record list.
type Mode string

// Synthesis modes.
const (
	TextMode   Mode = "text"
	TicketMode Mode = "tickets"
)

var (
	ticketFeatureWords = []string{
		"add", "rsc", "migrate", "move", "create", "implement",
		"profile", "modal", "pill", "tab", "ui", "gate", "flow",
		"state machine", "component", "split screen", "login", "logout", "subscribe",
	}
	ticketBugWords = []string{"fix", "bug", "error", "issue", "broken", "not working"}
)

// Synthesizer builds semantic records from release text or tracker tickets.
type Synthesizer struct {
	cfg        Config
	classifier *Classifier
	extractor  *Extractor
}

// NewSynthesizer returns a synthesizer using cfg.
func NewSynthesizer(cfg Config) *Synthesizer {
	return &Synthesizer{
		cfg:        cfg,
		classifier: NewClassifier(cfg),
		extractor:  NewExtractor(cfg),
	}
}

// Synthesize picks ticket mode when at least cfg.Threshold tickets are given,
// and text mode otherwise.
func (s *Synthesizer) Synthesize(body string, tickets []Ticket) ([]Record, Mode) {
	if len(tickets) >= s.cfg.Threshold {
		return s.FromTickets(tickets), TicketMode
	}
	return s.FromText(body), TextMode
}

// FromText returns one record per content line of body. Lines under a feature
// or bug header take that type; lines outside any section are typed by
// keyword. Known issue lines are skipped.
func (s *Synthesizer) FromText(body string) []Record {
	var recs []Record
	for _, l := range s.classifier.Classify(body) {
		var kind Kind
		switch l.Bucket {
		case FeatureBucket:
			kind = Feature
		case BugBucket:
			kind = Bug
		case KnownIssueBucket:
			continue
		default:
			kind = ClassifyHeuristic(l.Text)
		}
		rec, err := NewRecord(kind, truncate(l.Text, s.cfg.TitleMaxLen), l.Text, s.extractor.FirstTicket(l.Text))
		if err != nil {
			continue
		}
		recs = append(recs, rec)
	}
	return recs
}

// FromTickets returns one record per ticket that has an ID. Feature words are
// checked before bug words; a summary matching neither is a feature.
func (s *Synthesizer) FromTickets(tickets []Ticket) []Record {
	var recs []Record
	for _, t := range tickets {
		id := strings.TrimSpace(t.ID)
		if id == "" {
			continue
		}
		summary := strings.TrimSpace(t.Summary)
		rec, err := NewRecord(classifyTicket(summary), summary, summary, id)
		if err != nil {
			continue
		}
		recs = append(recs, rec)
	}
	return recs
}

func classifyTicket(summary string) Kind {
	l := strings.ToLower(summary)
	if containsAny(l, ticketFeatureWords) {
		return Feature
	}
	if containsAny(l, ticketBugWords) {
		return Bug
	}
	return Feature
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
