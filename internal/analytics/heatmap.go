package analytics

import (
	"fmt"
	"sort"

	"github.com/pzsluna26/Dashboard/internal/models"
)

// StanceColumns are the three fixed reform-stance column labels, in the order
// they appear in the matrix.
var StanceColumns = []string{"개정강화", "폐지약화", "현상유지"}

// Insight kinds, in the fixed order they are reported.
const (
	InsightMaxRatio = "max_ratio"
	InsightMinRatio = "min_ratio"
	InsightMaxCount = "max_count"
)

// HeatmapCell is one category×stance cell: the ratio against the row total
// plus the raw count for display. A row total of zero yields ratio 0, not NaN.
type HeatmapCell struct {
	Row   string  `json:"row"`
	Col   string  `json:"col"`
	Ratio float64 `json:"ratio"`
	Count int     `json:"count"`
}

// Insight is one derived textual highlight of the matrix.
type Insight struct {
	Kind  string  `json:"kind"`
	Row   string  `json:"row"`
	Col   string  `json:"col"`
	Ratio float64 `json:"ratio"`
	Count int     `json:"count"`
	Text  string  `json:"text"`
}

// HeatmapMatrix is the category×stance ratio matrix. Rows follow the dataset
// (data-driven), columns are the fixed stance labels. Cells are row-major.
type HeatmapMatrix struct {
	Rows     []string      `json:"rows"`
	Cols     []string      `json:"cols"`
	Cells    []HeatmapCell `json:"cells"`
	Insights []Insight     `json:"insights"`
}

// BuildHeatmap aggregates stance counts per category and derives exactly three
// insights: the maximum-ratio cell, the minimum-ratio cell, and the
// maximum-raw-count cell. Ties resolve to the first cell in row-major order.
// With a window it slices the daily timelines; otherwise it uses the timeline
// of the requested granularity.
func BuildHeatmap(ds models.RawDataset, w *Window, g models.Granularity) HeatmapMatrix {
	rows := orderedCategories(ds)
	out := HeatmapMatrix{
		Rows:     rows,
		Cols:     append([]string(nil), StanceColumns...),
		Cells:    make([]HeatmapCell, 0, len(rows)*len(StanceColumns)),
		Insights: []Insight{},
	}

	for _, row := range rows {
		var strengthen, loosen, maintain int
		walkTimeline(ds[row].Social, g, w, func(_ string, entry models.PeriodEntry) {
			walkLeaves(entry, func(_, _ string, sub *models.SubCategory) {
				strengthen += sub.StrengthenCount()
				loosen += sub.LoosenCount()
				maintain += sub.MaintainCount()
			})
		})

		rowTotal := strengthen + loosen + maintain
		counts := []int{strengthen, loosen, maintain}
		for i, col := range StanceColumns {
			ratio := 0.0
			if rowTotal > 0 {
				ratio = float64(counts[i]) / float64(rowTotal)
			}
			out.Cells = append(out.Cells, HeatmapCell{Row: row, Col: col, Ratio: ratio, Count: counts[i]})
		}
	}

	out.Insights = deriveInsights(out.Cells)
	return out
}

// deriveInsights scans the cells once in row-major order; strict comparisons
// keep the first-encountered cell on ties.
func deriveInsights(cells []HeatmapCell) []Insight {
	if len(cells) == 0 {
		return []Insight{}
	}
	maxRatio, minRatio, maxCount := cells[0], cells[0], cells[0]
	for _, cell := range cells[1:] {
		if cell.Ratio > maxRatio.Ratio {
			maxRatio = cell
		}
		if cell.Ratio < minRatio.Ratio {
			minRatio = cell
		}
		if cell.Count > maxCount.Count {
			maxCount = cell
		}
	}
	return []Insight{
		insightOf(InsightMaxRatio, maxRatio, fmt.Sprintf("최고 비율: %s · %s (%.1f%%, 댓글 %d건)", maxRatio.Row, maxRatio.Col, maxRatio.Ratio*100, maxRatio.Count)),
		insightOf(InsightMinRatio, minRatio, fmt.Sprintf("최저 비율: %s · %s (%.1f%%, 댓글 %d건)", minRatio.Row, minRatio.Col, minRatio.Ratio*100, minRatio.Count)),
		insightOf(InsightMaxCount, maxCount, fmt.Sprintf("댓글 최다: %s · %s (%d건)", maxCount.Row, maxCount.Col, maxCount.Count)),
	}
}

func insightOf(kind string, cell HeatmapCell, text string) Insight {
	return Insight{Kind: kind, Row: cell.Row, Col: cell.Col, Ratio: cell.Ratio, Count: cell.Count, Text: text}
}

// orderedCategories returns the dataset's category keys in deterministic
// order: the canonical categories first, then any remaining keys sorted.
func orderedCategories(ds models.RawDataset) []string {
	rows := make([]string, 0, len(ds))
	seen := make(map[string]bool)
	for _, cat := range models.DefaultCategories {
		if _, ok := ds[cat]; ok {
			rows = append(rows, cat)
			seen[cat] = true
		}
	}
	var rest []string
	for cat := range ds {
		if !seen[cat] {
			rest = append(rest, cat)
		}
	}
	sort.Strings(rest)
	return append(rows, rest...)
}
