package analytics

import (
	"math"
	"strconv"

	"github.com/pzsluna26/Dashboard/internal/models"
)

// PctChange is a period-over-period percentage delta. A previous total of zero
// with a non-zero current total is defined as positive infinity, which
// marshals as the distinct "∞" sentinel instead of breaking JSON encoding.
type PctChange float64

func (p PctChange) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(p), 1) {
		return []byte(`"∞"`), nil
	}
	return []byte(strconv.FormatFloat(float64(p), 'f', -1, 64)), nil
}

// pctChange applies the sentinel policy: 0/0 is no change, n/0 is infinite
// growth, never NaN and never an error.
func pctChange(curr, prev int) PctChange {
	if prev == 0 && curr == 0 {
		return 0
	}
	if prev == 0 {
		return PctChange(math.Inf(1))
	}
	return PctChange(float64(curr-prev) / float64(prev) * 100)
}

// KpiPoint is one day of a category's cumulative series.
type KpiPoint struct {
	Date      string `json:"date"`
	News      int    `json:"news"`
	Social    int    `json:"social"`
	NewsCum   int    `json:"newsCum"`
	SocialCum int    `json:"socialCum"`
}

// CategoryKpi is the KPI card for one category: the cumulative day series over
// the window plus totals and deltas against the preceding equal-length window.
type CategoryKpi struct {
	Category     string     `json:"category"`
	Points       []KpiPoint `json:"points"`
	NewsTotal    int        `json:"newsTotal"`
	SocialTotal  int        `json:"socialTotal"`
	NewsChange   PctChange  `json:"newsChange"`
	SocialChange PctChange  `json:"socialChange"`
}

// KpiSeries is the full KPI view. HasData is false when no category has any
// nonzero day total inside the window; callers must branch on it instead of
// rendering an all-zero chart.
type KpiSeries struct {
	Window   Window        `json:"window"`
	Previous Window        `json:"previous"`
	HasData  bool          `json:"hasData"`
	Cards    []CategoryKpi `json:"cards"`
}

// BuildKpi builds per-category cumulative day series over the window and
// percentage deltas against the immediately preceding window of equal length.
func BuildKpi(ds models.RawDataset, w Window) KpiSeries {
	prev := w.Previous()
	out := KpiSeries{Window: w, Previous: prev, Cards: make([]CategoryKpi, 0, len(models.DefaultCategories))}

	for _, cat := range models.DefaultCategories {
		bucket := ds.Category(cat)

		points, newsTotal, socialTotal := cumulativeSeries(bucket, w)
		_, prevNews, prevSocial := cumulativeSeries(bucket, prev)

		out.Cards = append(out.Cards, CategoryKpi{
			Category:     cat,
			Points:       points,
			NewsTotal:    newsTotal,
			SocialTotal:  socialTotal,
			NewsChange:   pctChange(newsTotal, prevNews),
			SocialChange: pctChange(socialTotal, prevSocial),
		})

		if newsTotal > 0 || socialTotal > 0 {
			out.HasData = true
		}
	}
	return out
}

// cumulativeSeries walks the inclusive day list of the window and produces the
// running sums that are actually charted, plus the final totals.
func cumulativeSeries(bucket models.CategoryBucket, w Window) ([]KpiPoint, int, int) {
	days := w.DateKeys()
	points := make([]KpiPoint, 0, len(days))
	newsCum, socialCum := 0, 0

	for _, day := range days {
		news := newsTotalForDay(bucket, day)
		social := socialTotalForDay(bucket, day)
		newsCum += news
		socialCum += social
		points = append(points, KpiPoint{
			Date:      day,
			News:      news,
			Social:    social,
			NewsCum:   newsCum,
			SocialCum: socialCum,
		})
	}
	return points, newsCum, socialCum
}

// newsTotalForDay sums the mid-category counts of the news channel for one day.
func newsTotalForDay(bucket models.CategoryBucket, day string) int {
	entry, ok := bucket.News.Daily[day]
	if !ok {
		return 0
	}
	total := 0
	for _, mid := range entry.Mids {
		total += mid.Count.Int()
	}
	return total
}

// socialTotalForDay reads the entry-level agree+disagree counts of the social
// channel for one day.
func socialTotalForDay(bucket models.CategoryBucket, day string) int {
	entry, ok := bucket.Social.Daily[day]
	if !ok {
		return 0
	}
	return entry.Counts.Agree.Int() + entry.Counts.Disagree.Int()
}
