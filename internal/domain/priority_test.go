package domain

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		category string
		want     Priority
	}{
		{"Wirtschaft & Gewerbe", PriorityHighest},
		{"Kommunalpolitik", PriorityHighest},
		{"VERKEHR & Infrastruktur", PriorityHighest},
		{"Umwelt & Nachhaltigkeit", PriorityHigh},
		{"Bürgerbeteiligung & Demokratie", PriorityHigh},
		{"BÜRGERBETEILIGUNG", PriorityHigh},
		{"Jugendthemen", PriorityHigh},
		{"Sport", PriorityStandard},
		{"General", PriorityStandard},
		{"", PriorityStandard},
	}

	for _, tc := range cases {
		if got := Classify(tc.category); got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.category, got, tc.want)
		}
	}
}

func TestClassifyPrecedence(t *testing.T) {
	t.Parallel()

	// Matches both sets; the first rule wins.
	if got := Classify("Wirtschaft und Umwelt"); got != PriorityHighest {
		t.Fatalf("expected highest, got %s", got)
	}

	rules := []PriorityRule{
		{Priority: PriorityHigh, Keywords: []string{"sport"}},
		{Priority: PriorityHighest, Keywords: []string{"sport"}},
	}
	if got := ClassifyWith(rules, "Sport"); got != PriorityHigh {
		t.Fatalf("expected first matching rule, got %s", got)
	}
}

func TestPriorityLabels(t *testing.T) {
	t.Parallel()

	for _, p := range []Priority{PriorityStandard, PriorityHigh, PriorityHighest} {
		if got := ParsePriority(p.String()); got != p {
			t.Errorf("ParsePriority(%q) = %v, want %v", p.String(), got, p)
		}
	}
	if ParsePriority("unknown") != PriorityStandard {
		t.Error("unknown label should map to standard")
	}
}
