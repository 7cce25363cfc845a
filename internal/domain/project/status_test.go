package project

import "testing"

func TestParseStatus(t *testing.T) {
	cases := []struct {
		input string
		want  Status
	}{
		{"Not Started", StatusNotStarted},
		{"not_started", StatusNotStarted},
		{"pending", StatusNotStarted},
		{"In Progress", StatusInProgress},
		{"in-progress", StatusInProgress},
		{"in_progress", StatusInProgress},
		{"IN PROGRESS", StatusInProgress},
		{"Completed", StatusCompleted},
		{"done", StatusCompleted},
		{"On Hold", StatusOnHold},
		{"on_hold", StatusOnHold},
		{"  completed  ", StatusCompleted},
	}
	for _, c := range cases {
		got, ok := ParseStatus(c.input)
		if !ok {
			t.Errorf("ParseStatus(%q) not recognized", c.input)
			continue
		}
		if got != c.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestParseStatusRejectsUnknown(t *testing.T) {
	for _, input := range []string{"", "started", "cancelled", "wip"} {
		if _, ok := ParseStatus(input); ok {
			t.Errorf("ParseStatus(%q) should not be recognized", input)
		}
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []Status{StatusNotStarted, StatusInProgress, StatusCompleted, StatusOnHold} {
		if !s.IsValid() {
			t.Errorf("Status %q should be valid", s)
		}
	}
	if Status("Pending").IsValid() {
		t.Error("non-canonical casing should not be a valid Status")
	}
}
