package analytics

import (
	"sort"

	"github.com/pzsluna26/Dashboard/internal/models"
)

// UnknownLaw is the explicit bucket for leaves without a related-law key.
// They are ranked like any other entity rather than being dropped.
const UnknownLaw = "(관련법 미상)"

// defaultRankingLimit matches the dashboard's TOP 5 card.
const defaultRankingLimit = 5

// RankedLaw is one entry of the ranked law list. The three stance percentages
// always sum to exactly 100: the disagree share is assigned the remainder
// instead of being rounded independently.
type RankedLaw struct {
	Rank          int    `json:"rank"`
	Law           string `json:"law"`
	Total         int    `json:"total"`
	Strengthen    int    `json:"strengthen"`
	Loosen        int    `json:"loosen"`
	Disagree      int    `json:"disagree"`
	StrengthenPct int    `json:"strengthenPct"`
	LoosenPct     int    `json:"loosenPct"`
	DisagreePct   int    `json:"disagreePct"`
	NewsCount     int    `json:"newsCount"`
	IncidentCount int    `json:"incidentCount"`
}

type lawAccumulator struct {
	law        string
	total      int
	strengthen int
	loosen     int
	disagree   int
	newsCount  int
	incidents  map[string]int
}

// TopLaws ranks laws by aggregated agree+disagree magnitude across the social
// channels of the requested domains, sliced to the window when one is given.
// Ties keep first-seen traversal order; this is a stable tie-break, not a
// semantically meaningful one. A second pass over the news channels attaches
// article counts without affecting the ranking order.
func TopLaws(ds models.RawDataset, w *Window, domains []string, limit int) []RankedLaw {
	if limit <= 0 {
		limit = defaultRankingLimit
	}
	domains = domainsOrDefault(domains)

	aggs := make(map[string]*lawAccumulator)
	var order []string

	lookup := func(law string) *lawAccumulator {
		if law == "" {
			law = UnknownLaw
		}
		agg, ok := aggs[law]
		if !ok {
			agg = &lawAccumulator{law: law, incidents: make(map[string]int)}
			aggs[law] = agg
			order = append(order, law)
		}
		return agg
	}

	for _, dom := range domains {
		walkTimeline(ds.Category(dom).Social, models.Daily, w, func(_ string, entry models.PeriodEntry) {
			walkLeaves(entry, func(midKey, subKey string, sub *models.SubCategory) {
				agg := lookup(sub.RelatedLaw)
				total := sub.EngagementTotal()
				agg.total += total
				agg.strengthen += sub.StrengthenCount()
				agg.loosen += sub.LoosenCount()
				agg.disagree += sub.DisagreeCount()
				agg.incidents[midKey+"::"+subKey] += total
			})
		})
	}

	for _, dom := range domains {
		walkTimeline(ds.Category(dom).News, models.Daily, w, func(_ string, entry models.PeriodEntry) {
			walkLeaves(entry, func(_, _ string, sub *models.SubCategory) {
				lookup(sub.RelatedLaw).newsCount += len(sub.Articles)
			})
		})
	}

	sort.SliceStable(order, func(i, j int) bool {
		return aggs[order[i]].total > aggs[order[j]].total
	})
	if len(order) > limit {
		order = order[:limit]
	}

	out := make([]RankedLaw, 0, len(order))
	for i, law := range order {
		agg := aggs[law]
		p1, p2, p3 := stanceSplit(agg.strengthen, agg.loosen, agg.disagree)
		out = append(out, RankedLaw{
			Rank:          i + 1,
			Law:           agg.law,
			Total:         agg.total,
			Strengthen:    agg.strengthen,
			Loosen:        agg.loosen,
			Disagree:      agg.disagree,
			StrengthenPct: p1,
			LoosenPct:     p2,
			DisagreePct:   p3,
			NewsCount:     agg.newsCount,
			IncidentCount: len(agg.incidents),
		})
	}
	return out
}

// stanceSplit computes the stance percentages with the denominator floored at
// one, and assigns the third share as the remainder so the bar sums to 100.
func stanceSplit(strengthen, loosen, disagree int) (int, int, int) {
	sum := strengthen + loosen + disagree
	if sum < 1 {
		sum = 1
	}
	p1 := int(float64(strengthen)/float64(sum)*100 + 0.5)
	p2 := int(float64(loosen)/float64(sum)*100 + 0.5)
	return p1, p2, 100 - p1 - p2
}
