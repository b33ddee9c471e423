package analytics

import (
	"encoding/json"
	"testing"

	"github.com/pzsluna26/Dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trendDataset() models.RawDataset {
	article := json.RawMessage(`{"title":"유출 기사","url":"https://news.example/1"}`)
	return models.RawDataset{
		"privacy": {
			News: models.TimelineSet{Daily: map[string]models.PeriodEntry{
				"2025-07-08": {Mids: map[string]models.MidCategory{
					"개인정보보호법": {Count: 5, Subs: map[string]models.SubCategory{
						"개인정보보호법_유출": {Count: 3, Articles: []json.RawMessage{article}},
						"개인정보보호법_해킹": {Count: 2},
					}},
					"정보통신망법": {Count: 1},
				}},
			}},
			Social: models.TimelineSet{Daily: map[string]models.PeriodEntry{
				"2025-07-08": {Counts: models.StanceCounts{Agree: 7, Disagree: 3}},
			}},
		},
	}
}

func TestBuildTrend_SeriesPerCategory(t *testing.T) {
	w := mustWindow(t, "2025-07-08", "2025-07-09")
	out := BuildTrend(trendDataset(), w)

	require.Len(t, out, len(models.DefaultCategories))
	privacy := out[0]
	require.Equal(t, "privacy", privacy.Category)
	require.Len(t, privacy.Points, 2)

	day1 := privacy.Points[0]
	assert.Equal(t, "2025-07-08", day1.Date)
	assert.Equal(t, 6, day1.News)
	assert.Equal(t, 10, day1.Social)

	// The quiet day still appears, with zeros and no detail.
	day2 := privacy.Points[1]
	assert.Equal(t, 0, day2.News)
	assert.Equal(t, 0, day2.Social)
	assert.Nil(t, day2.Detail)
}

func TestBuildTrend_DominantIncidentDetail(t *testing.T) {
	w := mustWindow(t, "2025-07-08", "2025-07-08")
	out := BuildTrend(trendDataset(), w)

	detail := out[0].Points[0].Detail
	require.NotNil(t, detail)
	assert.Equal(t, "개인정보보호법", detail.Mid)
	assert.Equal(t, "개인정보보호법_유출", detail.Sub)
	assert.Equal(t, 3, detail.Count)
	assert.JSONEq(t, `{"title":"유출 기사","url":"https://news.example/1"}`, string(detail.Article))
}

func TestBuildTrend_MidWithoutSubs(t *testing.T) {
	ds := models.RawDataset{
		"privacy": {News: models.TimelineSet{Daily: map[string]models.PeriodEntry{
			"2025-07-08": {Mids: map[string]models.MidCategory{
				"정보통신망법": {Count: 4},
			}},
		}}},
	}
	w := mustWindow(t, "2025-07-08", "2025-07-08")
	out := BuildTrend(ds, w)

	detail := out[0].Points[0].Detail
	require.NotNil(t, detail)
	assert.Equal(t, "정보통신망법", detail.Mid)
	assert.Equal(t, "(소분류 없음)", detail.Sub)
	assert.Equal(t, 4, detail.Count)
	assert.Nil(t, detail.Article)
}

func TestBuildTrend_TieKeepsFirstSortedKey(t *testing.T) {
	ds := models.RawDataset{
		"privacy": {News: models.TimelineSet{Daily: map[string]models.PeriodEntry{
			"2025-07-08": {Mids: map[string]models.MidCategory{
				"나법": {Count: 2},
				"가법": {Count: 2},
			}},
		}}},
	}
	w := mustWindow(t, "2025-07-08", "2025-07-08")
	out := BuildTrend(ds, w)

	detail := out[0].Points[0].Detail
	require.NotNil(t, detail)
	assert.Equal(t, "가법", detail.Mid)
}

func TestBuildTrend_EmptyDataset(t *testing.T) {
	w := mustWindow(t, "2025-07-08", "2025-07-09")
	out := BuildTrend(models.RawDataset{}, w)

	require.Len(t, out, len(models.DefaultCategories))
	for _, series := range out {
		require.Len(t, series.Points, 2)
		for _, point := range series.Points {
			assert.Zero(t, point.News)
			assert.Zero(t, point.Social)
			assert.Nil(t, point.Detail)
		}
	}
}
