package model

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Go models that match plan.schema.json used for validation and rendering.

// LinkableItem is a titled reference returned by the plan generator. The URL
// may be empty or unusable; display layers should go through ResolvedURL.
type LinkableItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ResolvedURL returns the item's URL, or a deterministic search-engine query
// built from the title when the generator omitted a usable one. This is a
// rendering-time default, not a property of the stored record.
func (li LinkableItem) ResolvedURL() string {
	if strings.TrimSpace(li.URL) != "" {
		return li.URL
	}
	return "https://www.google.com/search?q=" + url.QueryEscape(li.Title)
}

// DisplayLabel reduces the item's URL to a tidy eTLD+1 label for compact
// display (e.g. "coursera.org"). Falls back to the hostname, then "link".
func (li LinkableItem) DisplayLabel() string {
	candidate := li.ResolvedURL()
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return "link"
	}
	host := parsed.Hostname()
	if host == "" {
		return "link"
	}
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return strings.TrimPrefix(etld, "www.")
	}
	return strings.TrimPrefix(host, "www.")
}

// PlanWeek is one week of the transition roadmap.
type PlanWeek struct {
	WeekNumber  int      `json:"weekNumber"`
	Theme       string   `json:"theme"`
	Goals       []string `json:"goals"`
	ActionItems []string `json:"actionItems"`
}

// WeekCount is the fixed length of a plan's roadmap.
const WeekCount = 8

// CareerPlan is the structured output of the plan generator. Immutable once
// produced; the Career field doubles as the session cache key.
type CareerPlan struct {
	Career             string         `json:"career"`
	IsFictional        bool           `json:"isFictional"`
	Intro              string         `json:"intro"`
	SkillsToDevelop    []string       `json:"skillsToDevelop"`
	ThoughtLeaders     []LinkableItem `json:"thoughtLeaders"`
	RecommendedCourses []LinkableItem `json:"recommendedCourses"`
	TargetCompanies    []LinkableItem `json:"targetCompanies"`
	Weeks              []PlanWeek     `json:"weeks"`
}
