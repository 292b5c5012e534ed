package departments

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DOGE-network/cali-doge-sub006/pkg/diagnostics"
	"github.com/DOGE-network/cali-doge-sub006/pkg/errors"
	"github.com/DOGE-network/cali-doge-sub006/pkg/logging"
)

const validSnapshot = `
departments:
  - name: State Government
    org_level: 0
  - name: Air Resources Board
    canonical_name: California Air Resources Board
    aliases: [CARB]
    org_level: 1
    parent_name: State Government
    budget_code: "3900"
    headcount:
      "2023": 1500
    wages:
      "2023": 210000000
    salary_distribution:
      "2023":
        - range: [0, 50000]
          count: 120
        - range: [50000, 100000]
          count: 900
`

func TestReadSnapshot(t *testing.T) {
	logging.DisableLoggingForTest(t)

	records, err := ReadSnapshot(strings.NewReader(validSnapshot), nil)
	require.NoError(t, err)
	require.Len(t, records, 2)

	carb := records[1]
	assert.Equal(t, "Air Resources Board", carb.Name)
	assert.Equal(t, "California Air Resources Board", carb.Canonical())
	assert.Equal(t, []string{"CARB"}, carb.Aliases)
	assert.Equal(t, 1, carb.OrgLevel)
	assert.Equal(t, "3900", carb.BudgetCode)
	assert.Equal(t, 1500.0, carb.Headcount["2023"])

	require.Len(t, carb.Distributions["2023"], 2)
	assert.Equal(t, Bucket{Low: 0, High: 50000, Count: 120}, carb.Distributions["2023"][0])
}

func TestReadSnapshotSkipsInvalidRecords(t *testing.T) {
	logging.DisableLoggingForTest(t)
	collector := diagnostics.New(diagnostics.WithLogger(logging.NewNopLogger()))

	const snapshot = `
departments:
  - org_level: 1
    parent_name: State Government
  - name: Below Ground
    org_level: -2
  - name: Dept A
    org_level: 1
`

	records, err := ReadSnapshot(strings.NewReader(snapshot), collector)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "Dept A", records[0].Name)
	assert.Len(t, collector.ByKind(diagnostics.KindInvalidRecord), 2)
}

// A bucket that cannot be interpreted is dropped; the record and its
// readable buckets survive.
func TestReadSnapshotSkipsMalformedBuckets(t *testing.T) {
	logging.DisableLoggingForTest(t)
	collector := diagnostics.New(diagnostics.WithLogger(logging.NewNopLogger()))

	const snapshot = `
departments:
  - name: Dept A
    org_level: 1
    salary_distribution:
      "2023":
        - range: [0]
          count: 10
        - range: [90000, 10000]
          count: 5
        - range: [0, 50000]
          count: not-a-number
        - range: [0, 50000]
          count: 7
`

	records, err := ReadSnapshot(strings.NewReader(snapshot), collector)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, []Bucket{{Low: 0, High: 50000, Count: 7}}, records[0].Distributions["2023"])
	assert.Len(t, collector.ByKind(diagnostics.KindMalformedDistribution), 3)
}

func TestReadSnapshotUndecodable(t *testing.T) {
	logging.DisableLoggingForTest(t)

	_, err := ReadSnapshot(strings.NewReader("departments: [not: [valid"), nil)
	assert.Error(t, err)
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	logging.DisableLoggingForTest(t)

	_, err := LoadSnapshot("testdata/does-not-exist.yaml", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestNameFields(t *testing.T) {
	record := ExternalRecord{
		Fields: []Field{
			{Name: "vendor_name", Value: "CARB"},
			{Name: "department", Value: "Air Resources Board"},
			{Name: "agency", Value: "CalEPA"},
			{Name: "description", Value: "air quality grants"},
		},
	}

	assert.Equal(t, []string{"CARB", "Air Resources Board", "CalEPA"}, record.NameFields())
}
