package analytics

import (
	"sort"

	"github.com/pzsluna26/Dashboard/internal/models"
)

// walkTimeline visits (periodKey, entry) pairs of a timeline in chronological
// order. With a window it always consults the daily timeline regardless of the
// requested granularity, so sub-day-range slicing stays exact; without one it
// uses the timeline matching the granularity. Weekly keys are ordered by their
// ISO Monday, everything else lexicographically.
func walkTimeline(ts models.TimelineSet, g models.Granularity, w *Window, visit func(key string, entry models.PeriodEntry)) {
	timeline := ts.Timeline(g)
	if w != nil {
		timeline = ts.Daily
	}
	if len(timeline) == 0 {
		return
	}

	keys := make([]string, 0, len(timeline))
	for key := range timeline {
		if w != nil && !w.Contains(key) {
			continue
		}
		keys = append(keys, key)
	}

	if w == nil && g == models.Weekly {
		sortWeekKeys(keys)
	} else {
		sort.Strings(keys)
	}

	for _, key := range keys {
		visit(key, timeline[key])
	}
}

// walkLeaves visits every (midKey, subKey, leaf) of a period entry. Mid and
// sub keys are visited in sorted order so traversal-order tie-breaks and
// evidence sampling stay deterministic across runs.
func walkLeaves(entry models.PeriodEntry, visit func(midKey, subKey string, sub *models.SubCategory)) {
	midKeys := sortedKeys(entry.Mids)
	for _, midKey := range midKeys {
		mid := entry.Mids[midKey]
		for _, subKey := range sortedKeys(mid.Subs) {
			sub := mid.Subs[subKey]
			visit(midKey, subKey, &sub)
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// sortWeekKeys orders YYYY-Www keys by calendar date. Keys that fail to parse
// sort first, in their lexicographic order.
func sortWeekKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		a, aok := weekStart(keys[i])
		b, bok := weekStart(keys[j])
		if aok != bok {
			return !aok
		}
		if !aok {
			return keys[i] < keys[j]
		}
		return a.Before(b)
	})
}

// domainsOrDefault substitutes the fixed category list when no domains are
// requested.
func domainsOrDefault(domains []string) []string {
	if len(domains) == 0 {
		return models.DefaultCategories
	}
	return domains
}
