package analytics

import (
	"encoding/json"
	"testing"

	"github.com/pzsluna26/Dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankingDataset() models.RawDataset {
	return models.RawDataset{
		"privacy": dailySocial(map[string]models.PeriodEntry{
			"2025-07-08": socialEntry("개인정보보호법", map[string]models.SubCategory{
				"개인정보보호법_유출": socialSub("개인정보보호법", 6, 2, 2),
			}),
			"2025-07-09": socialEntry("개인정보보호법", map[string]models.SubCategory{
				"개인정보보호법_유출": socialSub("개인정보보호법", 3, 1, 1),
			}),
		}),
		"child": dailySocial(map[string]models.PeriodEntry{
			"2025-07-08": socialEntry("아동복지법", map[string]models.SubCategory{
				"아동복지법_학대": socialSub("아동복지법", 2, 0, 1),
				"아동복지법_방임": socialSub("", 1, 0, 1),
			}),
		}),
	}
}

func TestTopLaws_TotalsAndStances(t *testing.T) {
	w := mustWindow(t, "2025-07-08", "2025-07-09")
	laws := TopLaws(rankingDataset(), &w, nil, 5)

	require.Len(t, laws, 3)
	first := laws[0]
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, "개인정보보호법", first.Law)
	assert.Equal(t, 15, first.Total)
	assert.Equal(t, 9, first.Strengthen)
	assert.Equal(t, 3, first.Loosen)
	assert.Equal(t, 3, first.Disagree)
	assert.Equal(t, 1, first.IncidentCount)
}

func TestTopLaws_UnknownLawBucket(t *testing.T) {
	w := mustWindow(t, "2025-07-08", "2025-07-09")
	laws := TopLaws(rankingDataset(), &w, nil, 5)

	var found bool
	for _, law := range laws {
		if law.Law == UnknownLaw {
			found = true
			assert.Equal(t, 2, law.Total)
		}
	}
	assert.True(t, found, "leaves without a related law must be ranked, not dropped")
}

func TestTopLaws_WindowExclusion(t *testing.T) {
	w := mustWindow(t, "2025-07-09", "2025-07-09")
	laws := TopLaws(rankingDataset(), &w, nil, 5)

	require.NotEmpty(t, laws)
	assert.Equal(t, "개인정보보호법", laws[0].Law)
	assert.Equal(t, 5, laws[0].Total)

	outside := mustWindow(t, "2024-01-01", "2024-01-07")
	assert.Empty(t, TopLaws(rankingDataset(), &outside, nil, 5))
}

func TestTopLaws_StableTieBreak(t *testing.T) {
	// A and B tie at 50, C trails at 30; first-seen order decides the tie.
	ds := models.RawDataset{
		"privacy": dailySocial(map[string]models.PeriodEntry{
			"2025-07-08": socialEntry("법안", map[string]models.SubCategory{
				"법안_a": socialSub("A법", 50, 0, 0),
				"법안_b": socialSub("B법", 50, 0, 0),
				"법안_c": socialSub("C법", 30, 0, 0),
			}),
		}),
	}
	w := mustWindow(t, "2025-07-08", "2025-07-08")
	laws := TopLaws(ds, &w, nil, 2)

	require.Len(t, laws, 2)
	assert.Equal(t, "A법", laws[0].Law)
	assert.Equal(t, "B법", laws[1].Law)
}

func TestTopLaws_PercentagesSumToHundred(t *testing.T) {
	tests := []struct {
		name                         string
		strengthen, loosen, disagree int
	}{
		{"thirds", 1, 1, 1},
		{"skewed", 7, 2, 1},
		{"rounding", 33, 33, 34},
		{"all zero", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := models.RawDataset{
				"privacy": dailySocial(map[string]models.PeriodEntry{
					"2025-07-08": socialEntry("법안", map[string]models.SubCategory{
						"법안_x": socialSub("X법", tt.strengthen, tt.loosen, tt.disagree),
					}),
				}),
			}
			w := mustWindow(t, "2025-07-08", "2025-07-08")
			laws := TopLaws(ds, &w, nil, 1)
			require.Len(t, laws, 1)
			sum := laws[0].StrengthenPct + laws[0].LoosenPct + laws[0].DisagreePct
			assert.Equal(t, 100, sum)
		})
	}
}

func TestTopLaws_NewsCountSecondPass(t *testing.T) {
	article := json.RawMessage(`{"title":"기사"}`)
	ds := rankingDataset()
	bucket := ds["privacy"]
	bucket.News = models.TimelineSet{Daily: map[string]models.PeriodEntry{
		"2025-07-08": socialEntry("개인정보보호법", map[string]models.SubCategory{
			"개인정보보호법_유출": {
				RelatedLaw: "개인정보보호법",
				Articles:   []json.RawMessage{article, article, article},
			},
		}),
	}}
	ds["privacy"] = bucket

	w := mustWindow(t, "2025-07-08", "2025-07-09")
	laws := TopLaws(ds, &w, nil, 5)

	require.NotEmpty(t, laws)
	assert.Equal(t, "개인정보보호법", laws[0].Law)
	assert.Equal(t, 3, laws[0].NewsCount)
	// News articles never contribute to the ranking total.
	assert.Equal(t, 15, laws[0].Total)
}

func TestTopLaws_DomainFilter(t *testing.T) {
	w := mustWindow(t, "2025-07-08", "2025-07-09")
	laws := TopLaws(rankingDataset(), &w, []string{"child"}, 5)

	require.Len(t, laws, 2)
	assert.Equal(t, "아동복지법", laws[0].Law)
}

func TestTopLaws_Truncation(t *testing.T) {
	w := mustWindow(t, "2025-07-08", "2025-07-09")
	laws := TopLaws(rankingDataset(), &w, nil, 1)
	require.Len(t, laws, 1)
	assert.Equal(t, "개인정보보호법", laws[0].Law)
}
