package models

import (
	"encoding/json"
	"sort"
)

// Granularity selects one of the three timeline resolutions.
type Granularity string

const (
	Daily   Granularity = "daily_timeline"
	Weekly  Granularity = "weekly_timeline"
	Monthly Granularity = "monthly_timeline"
)

// DefaultCategories is the fixed category list used by the KPI and trend views.
var DefaultCategories = []string{"privacy", "child", "safety", "finance"}

// RawDataset maps a category key (privacy/child/safety/finance, optional
// aggregate "all") to its news and social timelines.
type RawDataset map[string]CategoryBucket

// Category returns the bucket for a category, or an empty bucket when the
// category is missing. Missing paths contribute zero, never an error.
func (ds RawDataset) Category(name string) CategoryBucket {
	return ds[name]
}

// DailyIndex returns the sorted union of all daily period keys across every
// category and both channels. Daily keys are YYYY-MM-DD, so lexicographic
// order is chronological order.
func (ds RawDataset) DailyIndex() []string {
	seen := make(map[string]struct{})
	for _, bucket := range ds {
		for key := range bucket.News.Daily {
			seen[key] = struct{}{}
		}
		for key := range bucket.Social.Daily {
			seen[key] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// CategoryBucket holds the two channels of a category. The social channel is
// keyed "addsocial" in the source data.
type CategoryBucket struct {
	News   TimelineSet `json:"news"`
	Social TimelineSet `json:"addsocial"`
}

// TimelineSet maps period keys to entries at the three granularities.
// Daily keys are YYYY-MM-DD, weekly keys YYYY-Www.
type TimelineSet struct {
	Daily   map[string]PeriodEntry `json:"daily_timeline"`
	Weekly  map[string]PeriodEntry `json:"weekly_timeline"`
	Monthly map[string]PeriodEntry `json:"monthly_timeline"`
}

// Timeline returns the map for the requested granularity.
func (ts TimelineSet) Timeline(g Granularity) map[string]PeriodEntry {
	switch g {
	case Weekly:
		return ts.Weekly
	case Monthly:
		return ts.Monthly
	default:
		return ts.Daily
	}
}

// PeriodEntry is one time bucket: the mid-category map ("중분류목록") plus
// entry-level stance counts used by the KPI view.
type PeriodEntry struct {
	Mids   map[string]MidCategory `json:"중분류목록"`
	Counts StanceCounts           `json:"counts"`
}

// MidCategory groups sub-categories ("소분류목록") under one mid-level topic.
type MidCategory struct {
	Count Count                  `json:"count"`
	Subs  map[string]SubCategory `json:"소분류목록"`
}

// StanceCounts carries precomputed totals by stance label.
type StanceCounts struct {
	Agree    Count `json:"찬성"`
	Disagree Count `json:"반대"`
	Maintain Count `json:"현상유지"`
}

// AgreeBucket splits the agree side into reform stances. The loosen stance
// appears under two legacy spellings that are alternates for one concept:
// exactly one is populated in any given leaf.
type AgreeBucket struct {
	Strengthen    StanceBucket `json:"개정강화"`
	LoosenPrimary StanceBucket `json:"폐지약화"`
	LoosenAlt     StanceBucket `json:"폐지완화"`
}

// StanceBucket is a count plus its evidence list ("소셜목록").
type StanceBucket struct {
	Count    Count     `json:"count"`
	Opinions []Opinion `json:"소셜목록"`
}

// Opinion is one piece of textual evidence.
type Opinion struct {
	Content string `json:"content"`
}

// SubCategory is the leaf unit. Social channels populate the stance buckets;
// news channels populate the articles list instead. Articles are kept opaque:
// the engine only counts them and passes the first one through as detail.
type SubCategory struct {
	Count      Count             `json:"count"`
	Agree      AgreeBucket       `json:"찬성"`
	Disagree   StanceBucket      `json:"반대"`
	Maintain   StanceBucket      `json:"현상유지"`
	Counts     StanceCounts      `json:"counts"`
	RelatedLaw string            `json:"관련법"`
	TopNews    string            `json:"대표뉴스"`
	Articles   []json.RawMessage `json:"articles"`
}

// StrengthenCount returns the strengthen-reform stance count.
func (s *SubCategory) StrengthenCount() int {
	return s.Agree.Strengthen.Count.Int()
}

// LoosenCount resolves the two legacy loosen spellings into one value: the
// non-zero alternate wins, never the sum. When both are non-zero (unspecified
// in the source data) the primary spelling wins.
func (s *SubCategory) LoosenCount() int {
	if v := s.Agree.LoosenPrimary.Count.Int(); v != 0 {
		return v
	}
	return s.Agree.LoosenAlt.Count.Int()
}

// LoosenOpinions returns the evidence list of whichever loosen spelling is
// populated, preferring the primary spelling.
func (s *SubCategory) LoosenOpinions() []Opinion {
	if len(s.Agree.LoosenPrimary.Opinions) > 0 {
		return s.Agree.LoosenPrimary.Opinions
	}
	return s.Agree.LoosenAlt.Opinions
}

// DisagreeCount returns the direct disagree count, falling back to the
// evidence-list length when the count is absent.
func (s *SubCategory) DisagreeCount() int {
	if v := s.Counts.Disagree.Int(); v != 0 {
		return v
	}
	return len(s.Disagree.Opinions)
}

// MaintainCount returns the status-quo count with the same fallback rule.
func (s *SubCategory) MaintainCount() int {
	if v := s.Counts.Maintain.Int(); v != 0 {
		return v
	}
	return len(s.Maintain.Opinions)
}

// EngagementTotal is the leaf's overall magnitude: agree plus disagree counts.
func (s *SubCategory) EngagementTotal() int {
	return s.Counts.Agree.Int() + s.Counts.Disagree.Int()
}
