package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func validPlanDoc(t *testing.T, mutate func(m map[string]any)) []byte {
	t.Helper()
	weeks := make([]map[string]any, 0, WeekCount)
	for i := 1; i <= WeekCount; i++ {
		weeks = append(weeks, map[string]any{
			"weekNumber":  i,
			"theme":       "Foundations",
			"goals":       []string{"Understand the field"},
			"actionItems": []string{"Read an introduction"},
		})
	}
	doc := map[string]any{
		"career":          "Marine Biologist",
		"isFictional":     false,
		"intro":           "An ocean of opportunity.",
		"skillsToDevelop": []string{"Scuba diving"},
		"thoughtLeaders": []map[string]any{
			{"title": "Sylvia Earle", "url": "https://example.org/earle"},
		},
		"recommendedCourses": []map[string]any{
			{"title": "Oceanography 101"},
		},
		"targetCompanies": []map[string]any{
			{"title": "NOAA", "url": "https://noaa.gov"},
		},
		"weeks": weeks,
	}
	if mutate != nil {
		mutate(doc)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return raw
}

func TestParsePlanValid(t *testing.T) {
	plan, err := ParsePlan(validPlanDoc(t, nil))
	if err != nil {
		t.Fatalf("ParsePlan: %v", err)
	}
	if plan.Career != "Marine Biologist" {
		t.Fatalf("career = %q", plan.Career)
	}
	if len(plan.Weeks) != WeekCount {
		t.Fatalf("weeks = %d", len(plan.Weeks))
	}
	if plan.Weeks[0].WeekNumber != 1 || plan.Weeks[7].WeekNumber != 8 {
		t.Fatalf("week numbers = %d..%d", plan.Weeks[0].WeekNumber, plan.Weeks[7].WeekNumber)
	}
}

func TestParsePlanRejectsWrongWeekCount(t *testing.T) {
	raw := validPlanDoc(t, func(m map[string]any) {
		weeks := m["weeks"].([]map[string]any)
		m["weeks"] = weeks[:7]
	})
	if _, err := ParsePlan(raw); err == nil {
		t.Fatalf("7-week roadmap must be rejected")
	}
}

func TestParsePlanRejectsMissingField(t *testing.T) {
	raw := validPlanDoc(t, func(m map[string]any) {
		delete(m, "intro")
	})
	if _, err := ParsePlan(raw); err == nil {
		t.Fatalf("missing intro must be rejected")
	}
}

func TestParsePlanRejectsEmptyPayload(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte(""), []byte("   ")} {
		if _, err := ParsePlan(raw); err == nil {
			t.Fatalf("empty payload %q must be rejected", raw)
		}
	}
}

func TestParsePlanRejectsDuplicateWeekNumbers(t *testing.T) {
	raw := validPlanDoc(t, func(m map[string]any) {
		weeks := m["weeks"].([]map[string]any)
		weeks[3]["weekNumber"] = 3
	})
	if _, err := ParsePlan(raw); err == nil {
		t.Fatalf("duplicate week numbers must be rejected")
	}
}

func TestParsePlanRejectsOutOfRangeWeekNumber(t *testing.T) {
	raw := validPlanDoc(t, func(m map[string]any) {
		weeks := m["weeks"].([]map[string]any)
		weeks[7]["weekNumber"] = 9
	})
	if _, err := ParsePlan(raw); err == nil {
		t.Fatalf("weekNumber 9 must be rejected")
	}
}

func TestResolvedURL(t *testing.T) {
	withURL := LinkableItem{Title: "Oceanography 101", URL: "https://coursera.org/ocean"}
	if got := withURL.ResolvedURL(); got != "https://coursera.org/ocean" {
		t.Fatalf("got %q", got)
	}

	withoutURL := LinkableItem{Title: "Sylvia Earle"}
	got := withoutURL.ResolvedURL()
	if !strings.HasPrefix(got, "https://www.google.com/search?q=") {
		t.Fatalf("fallback = %q", got)
	}
	if !strings.Contains(got, "Sylvia+Earle") {
		t.Fatalf("title not escaped into query: %q", got)
	}
}

func TestDisplayLabel(t *testing.T) {
	cases := []struct {
		item LinkableItem
		want string
	}{
		{LinkableItem{Title: "Course", URL: "https://www.coursera.org/learn/ocean"}, "coursera.org"},
		{LinkableItem{Title: "Agency", URL: "https://research.noaa.gov"}, "noaa.gov"},
		{LinkableItem{Title: "No URL"}, "google.com"},
		{LinkableItem{Title: "Bad", URL: "http://"}, "link"},
	}
	for _, tc := range cases {
		if got := tc.item.DisplayLabel(); got != tc.want {
			t.Errorf("DisplayLabel(%q) = %q, want %q", tc.item.URL, got, tc.want)
		}
	}
}
