package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/pzsluna26/Dashboard/internal/models"
)

// NodeType tags graph nodes: law entities or their sub-incidents.
type NodeType string

const (
	NodeLaw      NodeType = "legal"
	NodeIncident NodeType = "incident"
)

const (
	defaultGraphLaws      = 5
	defaultGraphIncidents = 10
	sampleOpinionsCap     = 2

	// Incident node sizes map onto this fixed visual range via a square-root
	// scale, so encoded area stays proportional to magnitude.
	sizeScaleMin = 8.0
	sizeScaleMax = 36.0
)

// OpinionSamples carries a few evidence texts per stance for display. This is
// display-sampling in traversal order, not a statistically meaningful sample.
type OpinionSamples struct {
	Agree    []string `json:"agree"`
	Loosen   []string `json:"loosen"`
	Disagree []string `json:"disagree"`
}

// GraphNode is one node of the relation graph. Law nodes carry Total; incident
// nodes carry Count, Size, Parent, and Samples.
type GraphNode struct {
	ID      string          `json:"id"`
	Type    NodeType        `json:"type"`
	Label   string          `json:"label"`
	Total   int             `json:"total,omitempty"`
	Count   int             `json:"count,omitempty"`
	Size    float64         `json:"size,omitempty"`
	Parent  string          `json:"parent,omitempty"`
	Samples *OpinionSamples `json:"samples,omitempty"`
}

// GraphLink connects a law node to one of its incident nodes.
type GraphLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// RelationGraph is the pruned weighted bipartite law→incident graph.
type RelationGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

type incidentAcc struct {
	id      string
	label   string
	parent  string
	count   int
	samples OpinionSamples
}

type lawNodeAcc struct {
	key       string
	total     int
	incidents map[string]*incidentAcc
	order     []string
}

// BuildGraph accumulates per-law and per-incident magnitudes from the social
// evidence lists inside the window, keeps the maxLaws highest-total laws and
// the maxIncidents highest-count incidents of each, and emits nodes and
// weighted links. Incidents are keyed law::sub so same-named sub-categories
// under different laws stay distinct. Zero-magnitude incidents are dropped.
func BuildGraph(ds models.RawDataset, w *Window, maxLaws, maxIncidents int) RelationGraph {
	if maxLaws <= 0 {
		maxLaws = defaultGraphLaws
	}
	if maxIncidents <= 0 {
		maxIncidents = defaultGraphIncidents
	}

	laws := make(map[string]*lawNodeAcc)
	var lawOrder []string

	for _, dom := range sortedKeys(ds) {
		walkTimeline(ds[dom].Social, models.Daily, w, func(_ string, entry models.PeriodEntry) {
			walkLeaves(entry, func(midKey, subKey string, sub *models.SubCategory) {
				agreeList := sub.Agree.Strengthen.Opinions
				loosenList := sub.LoosenOpinions()
				disagreeList := sub.Disagree.Opinions
				count := len(agreeList) + len(loosenList) + len(disagreeList)

				law, ok := laws[midKey]
				if !ok {
					law = &lawNodeAcc{key: midKey, incidents: make(map[string]*incidentAcc)}
					laws[midKey] = law
					lawOrder = append(lawOrder, midKey)
				}

				incID := midKey + "::" + subKey
				inc, ok := law.incidents[incID]
				if !ok {
					inc = &incidentAcc{
						id:     incID,
						label:  strings.TrimPrefix(subKey, midKey+"_"),
						parent: midKey,
					}
					law.incidents[incID] = inc
					law.order = append(law.order, incID)
				}

				inc.count += count
				law.total += count
				sampleInto(&inc.samples.Agree, agreeList)
				sampleInto(&inc.samples.Loosen, loosenList)
				sampleInto(&inc.samples.Disagree, disagreeList)
			})
		})
	}

	sort.SliceStable(lawOrder, func(i, j int) bool {
		return laws[lawOrder[i]].total > laws[lawOrder[j]].total
	})
	if len(lawOrder) > maxLaws {
		lawOrder = lawOrder[:maxLaws]
	}

	graph := RelationGraph{Nodes: []GraphNode{}, Links: []GraphLink{}}
	var selected []*incidentAcc

	for _, lawKey := range lawOrder {
		law := laws[lawKey]
		graph.Nodes = append(graph.Nodes, GraphNode{
			ID:    lawKey,
			Type:  NodeLaw,
			Label: lawKey,
			Total: law.total,
		})

		kept := make([]*incidentAcc, 0, len(law.order))
		for _, incID := range law.order {
			if inc := law.incidents[incID]; inc.count > 0 {
				kept = append(kept, inc)
			}
		}
		sort.SliceStable(kept, func(i, j int) bool { return kept[i].count > kept[j].count })
		if len(kept) > maxIncidents {
			kept = kept[:maxIncidents]
		}
		selected = append(selected, kept...)
	}

	scale := sqrtSizeScale(selected)
	for _, inc := range selected {
		samples := inc.samples
		graph.Nodes = append(graph.Nodes, GraphNode{
			ID:      inc.id,
			Type:    NodeIncident,
			Label:   inc.label,
			Count:   inc.count,
			Size:    scale(inc.count),
			Parent:  inc.parent,
			Samples: &samples,
		})
		graph.Links = append(graph.Links, GraphLink{
			Source: inc.parent,
			Target: inc.id,
			Weight: inc.count,
		})
	}
	return graph
}

// sampleInto appends opinion texts until the per-stance cap is reached.
func sampleInto(dst *[]string, opinions []models.Opinion) {
	for _, op := range opinions {
		if len(*dst) >= sampleOpinionsCap {
			return
		}
		*dst = append(*dst, op.Content)
	}
}

// sqrtSizeScale maps incident counts onto the fixed visual size range,
// anchored to the min/max magnitude of the current selection.
func sqrtSizeScale(incidents []*incidentAcc) func(int) float64 {
	min, max := 1, 50
	if len(incidents) > 0 {
		min, max = incidents[0].count, incidents[0].count
		for _, inc := range incidents[1:] {
			if inc.count < min {
				min = inc.count
			}
			if inc.count > max {
				max = inc.count
			}
		}
	}
	lo := math.Sqrt(float64(min))
	span := math.Sqrt(float64(max)) - lo
	if span == 0 {
		span = 1
	}
	return func(count int) float64 {
		t := (math.Sqrt(float64(count)) - lo) / span
		return sizeScaleMin + t*(sizeScaleMax-sizeScaleMin)
	}
}
