package analytics

import (
	"sort"

	"github.com/pzsluna26/Dashboard/internal/models"
)

// StanceValue is one stance's share of a time bucket: the percentage that is
// charted plus the raw count shown in tooltips.
type StanceValue struct {
	Pct   float64 `json:"pct"`
	Count int     `json:"count"`
}

// StancePoint is one time bucket of the percentage-stacked stance series.
// Key keeps the source period form (YYYY-MM-DD or YYYY-Www) for display.
type StancePoint struct {
	Key        string      `json:"key"`
	Strengthen StanceValue `json:"strengthen"`
	Loosen     StanceValue `json:"loosen"`
	Disagree   StanceValue `json:"disagree"`
	Total      int         `json:"total"`
}

// StanceSeries is the stance-over-time view across all categories.
type StanceSeries struct {
	Granularity models.Granularity `json:"granularity"`
	Points      []StancePoint      `json:"points"`
}

type stanceTotals struct {
	strengthen int
	loosen     int
	disagree   int
}

// BuildStanceSeries produces the normalized percentage-stacked series. With a
// window it buckets by day over the daily timelines; without one it buckets by
// week, ordering week keys by their ISO Monday while keeping the week form as
// the display key. An empty bucket reads 0% for all three stances, which is
// the defined empty behavior, not an error.
func BuildStanceSeries(ds models.RawDataset, w *Window) StanceSeries {
	granularity := models.Weekly
	if w != nil {
		granularity = models.Daily
	}

	agg := make(map[string]*stanceTotals)
	var keys []string

	for dom := range ds {
		walkTimeline(ds[dom].Social, models.Weekly, w, func(key string, entry models.PeriodEntry) {
			totals, ok := agg[key]
			if !ok {
				totals = &stanceTotals{}
				agg[key] = totals
				keys = append(keys, key)
			}
			walkLeaves(entry, func(_, _ string, sub *models.SubCategory) {
				totals.strengthen += sub.StrengthenCount()
				totals.loosen += sub.LoosenCount()
				totals.disagree += sub.DisagreeCount()
			})
		})
	}

	if granularity == models.Weekly {
		sortWeekKeys(keys)
	} else {
		sort.Strings(keys)
	}

	points := make([]StancePoint, 0, len(keys))
	for _, key := range keys {
		totals := agg[key]
		bucketTotal := totals.strengthen + totals.loosen + totals.disagree
		points = append(points, StancePoint{
			Key:        key,
			Strengthen: stanceValue(totals.strengthen, bucketTotal),
			Loosen:     stanceValue(totals.loosen, bucketTotal),
			Disagree:   stanceValue(totals.disagree, bucketTotal),
			Total:      bucketTotal,
		})
	}
	return StanceSeries{Granularity: granularity, Points: points}
}

// stanceValue floors the denominator at one so an empty bucket yields 0, not NaN.
func stanceValue(count, total int) StanceValue {
	if total < 1 {
		total = 1
	}
	return StanceValue{Pct: float64(count) / float64(total) * 100, Count: count}
}
