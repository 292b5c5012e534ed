// Package departments defines the record types flowing through the
// reconciliation engine: organizational entities drawn from a snapshot of
// independently-maintained datasets, and the foreign records from other
// datasets that get matched against them. Records enter the engine once
// per build and are validated at this boundary; everything past it works
// with the closed set of types defined here.
package departments

import (
	"strings"
)

// Bucket is one histogram bucket of a distribution (e.g. a salary band).
// Low and High bound the bucket's range; buckets from different records
// aggregate only when their ranges are identical.
type Bucket struct {
	Low   float64 `yaml:"low" json:"low"`
	High  float64 `yaml:"high" json:"high"`
	Count float64 `yaml:"count" json:"count"`
}

// Department is one organizational-entity record from the snapshot.
// Metric and distribution maps are keyed by fiscal year (e.g. "2023").
type Department struct {
	// Name is the display name as it appears in the source dataset.
	Name string `yaml:"name" json:"name"`

	// CanonicalName is the agreed canonical form; falls back to Name.
	CanonicalName string `yaml:"canonical_name,omitempty" json:"canonical_name,omitempty"`

	// Aliases are alternate names (abbreviations, historical names,
	// free-text variants) collected by an external alias-maintenance tool.
	Aliases []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`

	// OrgLevel is the depth in the organizational hierarchy; 0 is the
	// unique root.
	OrgLevel int `yaml:"org_level" json:"org_level"`

	// ParentName is a free-text reference to the parent entity's name or
	// alias. It may be misspelled or stale; empty means no parent given.
	ParentName string `yaml:"parent_name,omitempty" json:"parent_name,omitempty"`

	// BudgetCode is the structured organization code, when known.
	BudgetCode string `yaml:"budget_code,omitempty" json:"budget_code,omitempty"`

	// Headcount is the recorded headcount per fiscal year.
	Headcount map[string]float64 `yaml:"headcount,omitempty" json:"headcount,omitempty"`

	// Wages is the recorded total wages per fiscal year.
	Wages map[string]float64 `yaml:"wages,omitempty" json:"wages,omitempty"`

	// Distributions holds histogram data (salary bands) per fiscal year.
	Distributions map[string][]Bucket `yaml:"salary_distribution,omitempty" json:"salary_distribution,omitempty"`
}

// Canonical returns the canonical name, falling back to the display name.
func (d *Department) Canonical() string {
	if d.CanonicalName != "" {
		return d.CanonicalName
	}
	return d.Name
}

// Field is one candidate identification field on a foreign record, with
// its fixed priority weight. Structured fields carry high weights;
// free-text description fields carry low ones.
type Field struct {
	Name   string  `yaml:"name" json:"name"`
	Value  string  `yaml:"value" json:"value"`
	Weight float64 `yaml:"weight" json:"weight"`
}

// ExternalRecord is a record from another dataset (spending, workforce,
// budget, narrative content) that may identify a department by code, by
// one of several name fields, or not at all.
type ExternalRecord struct {
	// Code is the structured organization code carried by the record,
	// when present.
	Code string `yaml:"code,omitempty" json:"code,omitempty"`

	// Fields are the candidate identification fields in priority order.
	Fields []Field `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// NameFields returns the values of fields conventionally treated as name
// fields (field name contains "name" or equals "department"), in order.
func (r *ExternalRecord) NameFields() []string {
	var out []string
	for _, f := range r.Fields {
		lower := strings.ToLower(f.Name)
		if strings.Contains(lower, "name") || lower == "department" || lower == "agency" {
			out = append(out, f.Value)
		}
	}
	return out
}
