package hierarchy

import (
	"math"
	"sort"

	"github.com/DOGE-network/cali-doge-sub006/pkg/departments"
	"github.com/DOGE-network/cali-doge-sub006/pkg/diagnostics"
)

// bucketRange keys aggregation: buckets sum only when their (low, high)
// ranges are identical.
type bucketRange struct {
	low  float64
	high float64
}

// Aggregate rolls metric and distribution data up the tree in a single
// post-order pass (children before parents) and computes subordinate
// counts. Results land in each node's Aggregates, never in the source
// records, so aggregation is non-destructive and calling it again from
// the same tree produces the same values. Malformed buckets are skipped
// with a diagnostic and do not abort the rest of the subtree.
func (t *Tree) Aggregate(collector *diagnostics.Collector) {
	t.aggregate(t.Root(), collector)
}

func (t *Tree) aggregate(n *Node, collector *diagnostics.Collector) {
	for _, idx := range n.children {
		t.aggregate(t.nodes[idx], collector)
	}

	n.SubordinateCount = 0
	if len(n.children) == 0 {
		n.Aggregates = nil
		return
	}

	agg := &Aggregates{
		Headcount: make(map[string]float64),
		Wages:     make(map[string]float64),
	}

	distributions := make(map[string]map[bucketRange]float64)

	for _, idx := range n.children {
		child := t.nodes[idx]
		n.SubordinateCount += child.SubordinateCount + 1

		// Scalars sum each child's effective value: the child's own
		// recorded number when non-zero, otherwise its subtree sum. A
		// department's own figure already covers its sub-organizations,
		// so summing both would double count.
		for _, year := range scalarYears(child, func(d *departments.Department) map[string]float64 { return d.Headcount },
			func(a *Aggregates) map[string]float64 { return a.Headcount }) {
			agg.Headcount[year] += child.EffectiveHeadcount(year)
		}
		for _, year := range scalarYears(child, func(d *departments.Department) map[string]float64 { return d.Wages },
			func(a *Aggregates) map[string]float64 { return a.Wages }) {
			agg.Wages[year] += child.EffectiveWages(year)
		}

		// Distributions sum every descendant's own buckets: the child's
		// own plus everything already rolled up beneath it.
		mergeDistributions(distributions, child.Department.Distributions, child.Department.Name, collector)
		if child.Aggregates != nil {
			mergeDistributions(distributions, child.Aggregates.Distributions, child.Department.Name, nil)
		}
	}

	if len(distributions) > 0 {
		agg.Distributions = make(map[string][]departments.Bucket, len(distributions))
		for year, buckets := range distributions {
			agg.Distributions[year] = sortedBuckets(buckets)
		}
	}

	n.Aggregates = agg
}

// scalarYears returns the union of years present in the child's own
// metric map and its aggregated map, deduplicated, in no particular
// order (the caller accumulates into maps).
func scalarYears(child *Node, own func(*departments.Department) map[string]float64, agg func(*Aggregates) map[string]float64) []string {
	seen := make(map[string]struct{})
	var years []string
	for year := range own(&child.Department) {
		if _, dup := seen[year]; !dup {
			seen[year] = struct{}{}
			years = append(years, year)
		}
	}
	if child.Aggregates != nil {
		for year := range agg(child.Aggregates) {
			if _, dup := seen[year]; !dup {
				seen[year] = struct{}{}
				years = append(years, year)
			}
		}
	}
	return years
}

// mergeDistributions adds every bucket of src into acc, keyed by year and
// identical range. Buckets with inverted ranges or non-finite counts are
// reported and skipped; a nil collector (already-validated aggregated
// buckets) skips silently.
func mergeDistributions(acc map[string]map[bucketRange]float64, src map[string][]departments.Bucket, name string, collector *diagnostics.Collector) {
	for year, buckets := range src {
		for _, bucket := range buckets {
			if bucket.Low > bucket.High || math.IsNaN(bucket.Count) || math.IsInf(bucket.Count, 0) {
				if collector != nil {
					collector.Recordf(diagnostics.KindMalformedDistribution, name,
						"year %s: bucket (%v, %v) count %v", year, bucket.Low, bucket.High, bucket.Count)
				}
				continue
			}
			if acc[year] == nil {
				acc[year] = make(map[bucketRange]float64)
			}
			acc[year][bucketRange{low: bucket.Low, high: bucket.High}] += bucket.Count
		}
	}
}

// sortedBuckets converts an accumulation map to an ordered bucket slice,
// sorted by range for deterministic output.
func sortedBuckets(acc map[bucketRange]float64) []departments.Bucket {
	out := make([]departments.Bucket, 0, len(acc))
	for r, count := range acc {
		out = append(out, departments.Bucket{Low: r.low, High: r.high, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Low != out[j].Low {
			return out[i].Low < out[j].Low
		}
		return out[i].High < out[j].High
	})
	return out
}
