package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DOGE-network/cali-doge-sub006/pkg/departments"
	"github.com/DOGE-network/cali-doge-sub006/pkg/diagnostics"
	"github.com/DOGE-network/cali-doge-sub006/pkg/logging"
)

func aggregatedTree(t *testing.T, records []departments.Department) (*Tree, *diagnostics.Collector) {
	t.Helper()
	logging.DisableLoggingForTest(t)

	collector := diagnostics.New(diagnostics.WithLogger(logging.NewNopLogger()))
	tree, report, err := Build(records, WithCollector(collector))
	require.NoError(t, err)
	require.Empty(t, report.Unattached)

	tree.Aggregate(collector)
	return tree, collector
}

func metricsRecords() []departments.Department {
	return []departments.Department{
		{Name: "State Government", OrgLevel: 0},
		{
			Name: "Dept A", OrgLevel: 1, ParentName: "State Government",
			Headcount: map[string]float64{"2023": 100},
		},
		{
			Name: "Office B", OrgLevel: 2, ParentName: "Dept A",
			Headcount: map[string]float64{"2023": 30},
			Wages:     map[string]float64{"2023": 1000},
			Distributions: map[string][]departments.Bucket{
				"2023": {
					{Low: 0, High: 50000, Count: 10},
					{Low: 50000, High: 100000, Count: 3},
				},
			},
		},
		{
			Name: "Office C", OrgLevel: 2, ParentName: "Dept A",
			Headcount: map[string]float64{"2023": 20},
			Wages:     map[string]float64{"2023": 500},
			Distributions: map[string][]departments.Bucket{
				"2023": {{Low: 0, High: 50000, Count: 5}},
			},
		},
	}
}

// Buckets with identical ranges sum; distinct ranges stay separate, and
// the merged distribution is ordered by range.
func TestAggregateDistributionMerge(t *testing.T) {
	tree, _ := aggregatedTree(t, metricsRecords())

	deptA := tree.Find("Dept A")
	require.NotNil(t, deptA)
	require.NotNil(t, deptA.Aggregates)

	assert.Equal(t, []departments.Bucket{
		{Low: 0, High: 50000, Count: 15},
		{Low: 50000, High: 100000, Count: 3},
	}, deptA.Aggregates.Distributions["2023"])

	// The root sees the same buckets again: its only child contributes
	// no buckets of its own, just the rolled-up ones.
	root := tree.Root()
	require.NotNil(t, root.Aggregates)
	assert.Equal(t, deptA.Aggregates.Distributions["2023"], root.Aggregates.Distributions["2023"])
}

func TestAggregateSubordinateCounts(t *testing.T) {
	tree, _ := aggregatedTree(t, metricsRecords())

	assert.Equal(t, 3, tree.Root().SubordinateCount)
	assert.Equal(t, 2, tree.Find("Dept A").SubordinateCount)
	assert.Equal(t, 0, tree.Find("Office B").SubordinateCount)

	// The root's count equals every other attached node.
	assert.Equal(t, tree.Size()-1, tree.Root().SubordinateCount)
}

// A node's own recorded figure takes precedence over its subtree sum;
// the subtree sum fills in only where the node recorded nothing.
func TestAggregateEffectiveValues(t *testing.T) {
	tree, _ := aggregatedTree(t, metricsRecords())

	deptA := tree.Find("Dept A")
	require.NotNil(t, deptA.Aggregates)

	// Children sum to 50 but the department's own figure wins.
	assert.Equal(t, 50.0, deptA.Aggregates.Headcount["2023"])
	assert.Equal(t, 100.0, deptA.EffectiveHeadcount("2023"))

	// No own wages figure, so the subtree sum is effective.
	assert.Equal(t, 1500.0, deptA.Aggregates.Wages["2023"])
	assert.Equal(t, 1500.0, deptA.EffectiveWages("2023"))

	// Each parent's aggregate is the sum of its children's effective
	// values, so the root counts Dept A once, not Dept A plus its
	// offices.
	root := tree.Root()
	assert.Equal(t, 100.0, root.Aggregates.Headcount["2023"])
	assert.Equal(t, 1500.0, root.Aggregates.Wages["2023"])
}

func TestAggregateLeavesHaveNoAggregates(t *testing.T) {
	tree, _ := aggregatedTree(t, metricsRecords())
	assert.Nil(t, tree.Find("Office B").Aggregates)
}

// Source records are never mutated: aggregation writes beside them.
func TestAggregateNonDestructive(t *testing.T) {
	tree, _ := aggregatedTree(t, metricsRecords())

	deptA := tree.Find("Dept A")
	assert.Equal(t, map[string]float64{"2023": 100}, deptA.Original().Headcount)
	assert.Empty(t, deptA.Original().Distributions)
}

func TestAggregateRepeatable(t *testing.T) {
	tree, _ := aggregatedTree(t, metricsRecords())

	first := tree.Find("Dept A").Aggregates
	firstCount := tree.Root().SubordinateCount

	tree.Aggregate(nil)

	assert.Equal(t, first, tree.Find("Dept A").Aggregates)
	assert.Equal(t, firstCount, tree.Root().SubordinateCount)
}

// An inverted bucket range is skipped with a diagnostic; the rest of the
// node's buckets still aggregate.
func TestAggregateMalformedBucketSkipped(t *testing.T) {
	records := []departments.Department{
		{Name: "State Government", OrgLevel: 0},
		{Name: "Dept A", OrgLevel: 1, ParentName: "State Government"},
		{
			Name: "Office B", OrgLevel: 2, ParentName: "Dept A",
			Distributions: map[string][]departments.Bucket{
				"2023": {
					{Low: 90000, High: 10000, Count: 5},
					{Low: 0, High: 50000, Count: 7},
				},
			},
		},
	}

	tree, collector := aggregatedTree(t, records)

	deptA := tree.Find("Dept A")
	require.NotNil(t, deptA.Aggregates)
	assert.Equal(t, []departments.Bucket{{Low: 0, High: 50000, Count: 7}},
		deptA.Aggregates.Distributions["2023"])

	assert.NotEmpty(t, collector.ByKind(diagnostics.KindMalformedDistribution))
}

func TestAggregateMultipleYears(t *testing.T) {
	records := []departments.Department{
		{Name: "State Government", OrgLevel: 0},
		{
			Name: "Dept A", OrgLevel: 1, ParentName: "State Government",
			Headcount: map[string]float64{"2022": 40},
		},
		{
			Name: "Dept B", OrgLevel: 1, ParentName: "State Government",
			Headcount: map[string]float64{"2023": 60},
		},
	}

	tree, _ := aggregatedTree(t, records)

	root := tree.Root()
	require.NotNil(t, root.Aggregates)
	assert.Equal(t, 40.0, root.Aggregates.Headcount["2022"])
	assert.Equal(t, 60.0, root.Aggregates.Headcount["2023"])
}
