package departments

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/DOGE-network/cali-doge-sub006/pkg/diagnostics"
	"github.com/DOGE-network/cali-doge-sub006/pkg/errors"
)

// Snapshot is the on-disk form of one entity-list export.
type Snapshot struct {
	Departments []rawDepartment `yaml:"departments"`
}

// rawDepartment mirrors Department but keeps distribution buckets loose so
// malformed entries can be skipped individually instead of failing the
// whole decode.
type rawDepartment struct {
	Name          string                 `yaml:"name"`
	CanonicalName string                 `yaml:"canonical_name"`
	Aliases       []string               `yaml:"aliases"`
	OrgLevel      int                    `yaml:"org_level"`
	ParentName    string                 `yaml:"parent_name"`
	BudgetCode    string                 `yaml:"budget_code"`
	Headcount     map[string]float64     `yaml:"headcount"`
	Wages         map[string]float64     `yaml:"wages"`
	Distributions map[string][]rawBucket `yaml:"salary_distribution"`
}

// rawBucket accepts any shape for range and count; validation happens in
// toBucket.
type rawBucket struct {
	Range []any `yaml:"range"`
	Count any   `yaml:"count"`
}

// LoadSnapshot reads and validates a YAML snapshot file. Structurally
// invalid records and malformed distribution buckets are skipped and
// reported to the collector; only an unreadable or undecodable file is an
// error.
func LoadSnapshot(path string, collector *diagnostics.Collector) ([]Department, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("snapshot", path)
		}
		return nil, errors.Wrapf(err, "opening snapshot %s", path)
	}
	defer f.Close() //nolint:errcheck // read-only file

	records, err := ReadSnapshot(f, collector)
	if err != nil {
		return nil, &errors.ParseError{Path: path, Err: err}
	}
	return records, nil
}

// ReadSnapshot decodes a YAML snapshot from r and validates each record
// at the boundary.
func ReadSnapshot(r io.Reader, collector *diagnostics.Collector) ([]Department, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading snapshot")
	}

	var snapshot Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.Wrap(err, "decoding snapshot")
	}

	records := make([]Department, 0, len(snapshot.Departments))
	for i, raw := range snapshot.Departments {
		dept, ok := validate(i, raw, collector)
		if !ok {
			continue
		}
		records = append(records, dept)
	}
	return records, nil
}

// validate converts one raw record, reporting and skipping anything that
// cannot be interpreted. Messy-but-usable records are kept.
func validate(index int, raw rawDepartment, collector *diagnostics.Collector) (Department, bool) {
	if raw.Name == "" {
		collector.Recordf(diagnostics.KindInvalidRecord, fmt.Sprintf("record %d", index),
			"missing name")
		return Department{}, false
	}
	if raw.OrgLevel < 0 {
		collector.Recordf(diagnostics.KindInvalidRecord, raw.Name,
			"negative org_level %d", raw.OrgLevel)
		return Department{}, false
	}

	dept := Department{
		Name:          raw.Name,
		CanonicalName: raw.CanonicalName,
		Aliases:       raw.Aliases,
		OrgLevel:      raw.OrgLevel,
		ParentName:    raw.ParentName,
		BudgetCode:    raw.BudgetCode,
		Headcount:     raw.Headcount,
		Wages:         raw.Wages,
	}

	if len(raw.Distributions) > 0 {
		dept.Distributions = make(map[string][]Bucket, len(raw.Distributions))
		for year, buckets := range raw.Distributions {
			valid := make([]Bucket, 0, len(buckets))
			for _, rb := range buckets {
				bucket, ok := toBucket(rb)
				if !ok {
					collector.Recordf(diagnostics.KindMalformedDistribution, raw.Name,
						"year %s: unreadable bucket", year)
					continue
				}
				valid = append(valid, bucket)
			}
			if len(valid) > 0 {
				dept.Distributions[year] = valid
			}
		}
	}

	return dept, true
}

// toBucket interprets one loose bucket entry. A bucket needs a two-element
// numeric range with low ≤ high and a non-negative numeric count.
func toBucket(raw rawBucket) (Bucket, bool) {
	if len(raw.Range) != 2 {
		return Bucket{}, false
	}
	low, okLow := toFloat(raw.Range[0])
	high, okHigh := toFloat(raw.Range[1])
	count, okCount := toFloat(raw.Count)
	if !okLow || !okHigh || !okCount || low > high || count < 0 {
		return Bucket{}, false
	}
	return Bucket{Low: low, High: high, Count: count}, true
}

// toFloat coerces YAML scalar types to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
