package analytics

import (
	"github.com/pzsluna26/Dashboard/internal/models"
)

// socialSub builds a social-channel leaf with the given stance counts. The
// agree-side count is strengthen+loosen so EngagementTotal matches the sum of
// all three stances. The maintain count mirrors disagree, as it does in the
// source data where "disagree" means keeping the status quo.
func socialSub(law string, strengthen, loosen, disagree int) models.SubCategory {
	return models.SubCategory{
		RelatedLaw: law,
		Counts: models.StanceCounts{
			Agree:    models.Count(strengthen + loosen),
			Disagree: models.Count(disagree),
			Maintain: models.Count(disagree),
		},
		Agree: models.AgreeBucket{
			Strengthen:    models.StanceBucket{Count: models.Count(strengthen)},
			LoosenPrimary: models.StanceBucket{Count: models.Count(loosen)},
		},
	}
}

// opinionSub builds a social leaf whose magnitude comes from evidence lists,
// the way the relation graph reads leaves.
func opinionSub(agree, loosen, disagree []string) models.SubCategory {
	return models.SubCategory{
		Agree: models.AgreeBucket{
			Strengthen:    models.StanceBucket{Opinions: opinions(agree)},
			LoosenPrimary: models.StanceBucket{Opinions: opinions(loosen)},
		},
		Disagree: models.StanceBucket{Opinions: opinions(disagree)},
	}
}

func opinions(texts []string) []models.Opinion {
	out := make([]models.Opinion, 0, len(texts))
	for _, text := range texts {
		out = append(out, models.Opinion{Content: text})
	}
	return out
}

// socialEntry wraps leaves of one mid-category into a period entry.
func socialEntry(midKey string, subs map[string]models.SubCategory) models.PeriodEntry {
	return models.PeriodEntry{
		Mids: map[string]models.MidCategory{
			midKey: {Subs: subs},
		},
	}
}

// dailySocial builds a category bucket with a daily social timeline.
func dailySocial(days map[string]models.PeriodEntry) models.CategoryBucket {
	return models.CategoryBucket{Social: models.TimelineSet{Daily: days}}
}
