package notes

import "testing"

const sampleBody = `## [1.2.0](https://github.com/x/y/compare/v1.1.0...v1.2.0) (2024-05-01)

### Features
- [CWB-1] Add carousel

### Bug Fixes
* fix login
Known Issues
- Safari flicker
### Performance
- faster
`

func TestClassify(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	got := c.Classify(sampleBody)

	want := []struct {
		text   string
		bucket Bucket
	}{
		{"- [CWB-1] Add carousel", FeatureBucket},
		{"* fix login", BugBucket},
		{"- Safari flicker", KnownIssueBucket},
		{"- faster", Unclassified},
	}
	if len(got) != len(want) {
		t.Fatalf("Classify() returned %d lines, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Text != w.text || got[i].Bucket != w.bucket {
			t.Fatalf("line %d = (%q, %v), want (%q, %v)", i, got[i].Text, got[i].Bucket, w.text, w.bucket)
		}
	}
	if got[0].Index != 3 {
		t.Fatalf("line index = %d, want 3", got[0].Index)
	}
}

func TestClassifyHeaderCaseInsensitive(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	b := c.Buckets("### FEATURES\none\n   \nBUG FIXES:\ntwo\n")
	if len(b[FeatureBucket]) != 1 || b[FeatureBucket][0] != "one" {
		t.Fatalf("feature bucket = %v", b[FeatureBucket])
	}
	if len(b[BugBucket]) != 1 || b[BugBucket][0] != "two" {
		t.Fatalf("bug bucket = %v", b[BugBucket])
	}
	if len(b[Unclassified]) != 0 {
		t.Fatalf("unexpected unclassified lines %v", b[Unclassified])
	}
}

func TestClassifyHeuristic(t *testing.T) {
	tests := []struct {
		line string
		want Kind
	}{
		{"Fix crash on Safari", Bug},
		{"Add new login flow", Feature},
		{"Update copy on landing page", Feature},
		{"Resolve race in player", Bug},
		{"Migrate settings page", Feature},
		{"Add retry to fix flaky upload", Bug},
	}
	for _, tc := range tests {
		if got := ClassifyHeuristic(tc.line); got != tc.want {
			t.Fatalf("ClassifyHeuristic(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}

func TestParseBucket(t *testing.T) {
	for _, b := range []Bucket{Unclassified, FeatureBucket, BugBucket, KnownIssueBucket} {
		got, err := ParseBucket(b.String())
		if err != nil || got != b {
			t.Fatalf("ParseBucket(%q) = %v, %v", b.String(), got, err)
		}
	}
	if _, err := ParseBucket("chore"); err == nil {
		t.Fatalf("expected error for unknown bucket")
	}
}

func TestClassifyHashContentLine(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	got := c.Classify("### Bug Fixes\n#42 Fix crash on Safari\n- Fix other thing\n# Other\n- tail\n")

	want := []struct {
		text   string
		bucket Bucket
	}{
		{"#42 Fix crash on Safari", BugBucket},
		{"- Fix other thing", BugBucket},
		{"- tail", Unclassified},
	}
	if len(got) != len(want) {
		t.Fatalf("Classify() returned %d lines, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Text != w.text || got[i].Bucket != w.bucket {
			t.Fatalf("line %d = (%q, %v), want (%q, %v)", i, got[i].Text, got[i].Bucket, w.text, w.bucket)
		}
	}
}
