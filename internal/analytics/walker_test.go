package analytics

import (
	"testing"

	"github.com/pzsluna26/Dashboard/internal/models"
	"github.com/stretchr/testify/assert"
)

func visitedKeys(ts models.TimelineSet, g models.Granularity, w *Window) []string {
	var keys []string
	walkTimeline(ts, g, w, func(key string, _ models.PeriodEntry) {
		keys = append(keys, key)
	})
	return keys
}

func TestWalkTimeline_WindowSlicesDaily(t *testing.T) {
	ts := models.TimelineSet{
		Daily: map[string]models.PeriodEntry{
			"2025-07-01": {},
			"2025-07-02": {},
			"2025-07-03": {},
			"2025-07-04": {},
		},
		Weekly: map[string]models.PeriodEntry{"2025-W27": {}},
	}
	w := mustWindow(t, "2025-07-02", "2025-07-03")

	// A window forces the daily timeline even when weekly is requested.
	assert.Equal(t, []string{"2025-07-02", "2025-07-03"}, visitedKeys(ts, models.Weekly, &w))
}

func TestWalkTimeline_NoWindowUsesGranularity(t *testing.T) {
	ts := models.TimelineSet{
		Daily:  map[string]models.PeriodEntry{"2025-07-01": {}},
		Weekly: map[string]models.PeriodEntry{"2025-W27": {}, "2025-W28": {}},
	}

	assert.Equal(t, []string{"2025-W27", "2025-W28"}, visitedKeys(ts, models.Weekly, nil))
	assert.Equal(t, []string{"2025-07-01"}, visitedKeys(ts, models.Daily, nil))
}

func TestWalkTimeline_WeekKeysOrderedByCalendar(t *testing.T) {
	// "2025-W10" < "2025-W9" lexicographically; calendar order must win.
	ts := models.TimelineSet{
		Weekly: map[string]models.PeriodEntry{
			"2025-W10": {},
			"2025-W9":  {},
			"2024-W52": {},
		},
	}

	assert.Equal(t, []string{"2024-W52", "2025-W9", "2025-W10"}, visitedKeys(ts, models.Weekly, nil))
}

func TestWalkTimeline_EmptyTimeline(t *testing.T) {
	assert.Empty(t, visitedKeys(models.TimelineSet{}, models.Daily, nil))
}

func TestWalkLeaves_DeterministicOrder(t *testing.T) {
	entry := models.PeriodEntry{
		Mids: map[string]models.MidCategory{
			"b법": {Subs: map[string]models.SubCategory{"b법_2": {}, "b법_1": {}}},
			"a법": {Subs: map[string]models.SubCategory{"a법_1": {}}},
		},
	}

	var visited []string
	walkLeaves(entry, func(midKey, subKey string, _ *models.SubCategory) {
		visited = append(visited, midKey+"/"+subKey)
	})
	assert.Equal(t, []string{"a법/a법_1", "b법/b법_1", "b법/b법_2"}, visited)
}
