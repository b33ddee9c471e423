package analytics

import (
	"encoding/json"

	"github.com/pzsluna26/Dashboard/internal/models"
)

// noSubLabel stands in when a mid-category has a count but no sub-categories.
const noSubLabel = "(소분류 없음)"

// TrendDetail points at the day's dominant incident: the highest-count
// mid-category, its highest-count sub-category, and that sub's first article
// passed through opaquely.
type TrendDetail struct {
	Mid     string          `json:"mid"`
	Sub     string          `json:"sub"`
	Count   int             `json:"count"`
	Article json.RawMessage `json:"article,omitempty"`
}

// TrendPoint is one day of a category's news/social trend.
type TrendPoint struct {
	Date   string       `json:"date"`
	News   int          `json:"news"`
	Social int          `json:"social"`
	Detail *TrendDetail `json:"detail,omitempty"`
}

// TrendSeries is the per-category trend view.
type TrendSeries struct {
	Category string       `json:"category"`
	Points   []TrendPoint `json:"points"`
}

// BuildTrend produces, for each canonical category, the per-day news and
// social totals over the window together with the dominant incident of the
// day. Ties on counts keep the first candidate in sorted key order.
func BuildTrend(ds models.RawDataset, w Window) []TrendSeries {
	out := make([]TrendSeries, 0, len(models.DefaultCategories))
	for _, cat := range models.DefaultCategories {
		bucket := ds.Category(cat)
		days := w.DateKeys()
		points := make([]TrendPoint, 0, len(days))

		for _, day := range days {
			points = append(points, TrendPoint{
				Date:   day,
				News:   newsTotalForDay(bucket, day),
				Social: socialTotalForDay(bucket, day),
				Detail: bestIncident(bucket, day),
			})
		}
		out = append(out, TrendSeries{Category: cat, Points: points})
	}
	return out
}

// bestIncident finds the highest-count mid-category of the day's news entry
// and the highest-count sub inside it. Returns nil when the day has no mids.
func bestIncident(bucket models.CategoryBucket, day string) *TrendDetail {
	entry, ok := bucket.News.Daily[day]
	if !ok || len(entry.Mids) == 0 {
		return nil
	}

	bestMid := ""
	bestMidCount := -1
	for _, midKey := range sortedKeys(entry.Mids) {
		if c := entry.Mids[midKey].Count.Int(); c > bestMidCount {
			bestMidCount = c
			bestMid = midKey
		}
	}

	mid := entry.Mids[bestMid]
	detail := &TrendDetail{Mid: bestMid, Sub: noSubLabel, Count: mid.Count.Int()}
	bestSubCount := -1
	for _, subKey := range sortedKeys(mid.Subs) {
		sub := mid.Subs[subKey]
		if c := sub.Count.Int(); c > bestSubCount {
			bestSubCount = c
			detail.Sub = subKey
			detail.Count = c
			detail.Article = nil
			if len(sub.Articles) > 0 {
				detail.Article = sub.Articles[0]
			}
		}
	}
	return detail
}
