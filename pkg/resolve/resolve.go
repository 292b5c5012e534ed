// Package resolve maps noisy strings from foreign datasets (spending,
// workforce, budget, narrative records) onto canonical organizational
// entities. Identification evidence is ranked: a structured code plus an
// exact name outranks a code alone, a code outranks an exact name, and an
// exact name outranks any amount of fuzzy evidence — weighted fuzzy
// scores are capped at 0.7 so they can never displace an exact textual
// match.
package resolve

import (
	"strings"

	"github.com/DOGE-network/cali-doge-sub006/pkg/departments"
	"github.com/DOGE-network/cali-doge-sub006/pkg/errors"
	"github.com/DOGE-network/cali-doge-sub006/pkg/fuzzy"
)

// Score constants for the evidence ladder.
const (
	scoreCode      = 1.0
	scoreExactName = 0.8
	fuzzyScoreCap  = 0.7
	// defaultThreshold is the floor below which no identification is
	// plausible and nil is returned.
	defaultThreshold = 0.3
)

// Well-known matched-field labels.
const (
	FieldCodeAndName = "code & name"
	FieldCode        = "code"
	FieldName        = "name"
)

// Target is the canonical entity a foreign record is matched against.
type Target struct {
	// Name is the canonical name.
	Name string

	// Code is the known structured organization code, when any.
	Code string

	// Aliases are registered alternate names, treated as name fields for
	// exact matching.
	Aliases []string
}

// Options tunes resolution.
type Options struct {
	// Threshold is the minimum score of a plausible identification.
	// Zero means the default of 0.3.
	Threshold float64

	// Fuzzy configures the fuzzy engine for weighted field scoring.
	// Nil means threshold 0.3 with phonetic and substring rules enabled.
	Fuzzy *fuzzy.Options
}

// Result is a successful identification.
type Result struct {
	// Score is the identification strength in [0,1].
	Score float64 `json:"score" yaml:"score"`

	// Confidence bands the score.
	Confidence fuzzy.Confidence `json:"confidence" yaml:"confidence"`

	// Algorithm names the rule that produced the score.
	Algorithm fuzzy.Algorithm `json:"algorithm" yaml:"algorithm"`

	// Field is which candidate field matched ("code & name", "code",
	// "name", or the field's own name for weighted fuzzy matches).
	Field string `json:"field" yaml:"field"`

	// MatchedText is the foreign text that matched.
	MatchedText string `json:"matched_text" yaml:"matched_text"`
}

// Match resolves the best identification of target within record.
// A nil result means no plausible identification exists — the expected
// outcome for unrelated records, not an error. An error is returned only
// for contract violations in the supplied target or options.
func Match(target Target, record departments.ExternalRecord, opts *Options) (*Result, error) {
	if target.Name == "" && target.Code == "" {
		return nil, errors.NewValidationError("Target", target, "needs a name or a code")
	}

	threshold := defaultThreshold
	fuzzyOpts := fuzzy.DefaultOptions()
	if opts != nil {
		if opts.Threshold < 0 || opts.Threshold > 1 {
			return nil, errors.NewValidationError("Threshold", opts.Threshold, "must be in [0,1]")
		}
		if opts.Threshold > 0 {
			threshold = opts.Threshold
		}
		if opts.Fuzzy != nil {
			if err := opts.Fuzzy.Validate(); err != nil {
				return nil, err
			}
			fuzzyOpts = opts.Fuzzy
		}
	}

	exactName, exactText := exactNameField(target, record)

	// A structured code is the strongest evidence. Code plus exact name is
	// a certain identification; code alone is still certain but labeled so
	// callers can tell the two apart.
	if record.Code != "" && target.Code != "" && strings.EqualFold(strings.TrimSpace(record.Code), strings.TrimSpace(target.Code)) {
		field := FieldCode
		text := record.Code
		if exactName {
			field = FieldCodeAndName
			text = exactText
		}
		return &Result{
			Score:       scoreCode,
			Confidence:  fuzzy.ConfidenceHigh,
			Algorithm:   fuzzy.AlgorithmExact,
			Field:       field,
			MatchedText: text,
		}, nil
	}

	if exactName {
		return &Result{
			Score:       scoreExactName,
			Confidence:  fuzzy.BandConfidence(scoreExactName),
			Algorithm:   fuzzy.AlgorithmExact,
			Field:       FieldName,
			MatchedText: exactText,
		}, nil
	}

	// Weighted fuzzy pass over every non-empty candidate field. An exact
	// case-insensitive field match scores 0.8; fuzzy evidence is weighted
	// by field priority and capped at 0.7 so it can never outrank an
	// exact match regardless of its raw score.
	var best *Result
	for _, field := range record.Fields {
		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		var candidate *Result
		if equalsTarget(target, value) {
			candidate = &Result{
				Score:       scoreExactName,
				Algorithm:   fuzzy.AlgorithmExact,
				Field:       field.Name,
				MatchedText: field.Value,
			}
		} else {
			match := fuzzy.Match(target.Name, value, fuzzyOpts)
			weight := field.Weight
			if weight <= 0 {
				weight = 1
			}
			weighted := match.Score * weight
			if weighted > fuzzyScoreCap {
				weighted = fuzzyScoreCap
			}
			candidate = &Result{
				Score:       weighted,
				Algorithm:   fuzzy.AlgorithmFieldWeighted,
				Field:       field.Name,
				MatchedText: field.Value,
			}
		}

		// Strictly-greater keeps the earliest field on ties, preserving
		// field priority order.
		if best == nil || candidate.Score > best.Score {
			best = candidate
		}
	}

	if best == nil || best.Score < threshold {
		return nil, nil
	}
	best.Confidence = fuzzy.BandConfidence(best.Score)
	return best, nil
}

// exactNameField reports whether any name field of the record equals the
// target's name or a registered alias, case-insensitively.
func exactNameField(target Target, record departments.ExternalRecord) (bool, string) {
	for _, value := range record.NameFields() {
		if equalsTarget(target, value) {
			return true, value
		}
	}
	return false, ""
}

// equalsTarget reports a case-insensitive exact match against the
// target's name or any alias.
func equalsTarget(target Target, value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	if strings.EqualFold(trimmed, strings.TrimSpace(target.Name)) {
		return true
	}
	for _, alias := range target.Aliases {
		if strings.EqualFold(trimmed, strings.TrimSpace(alias)) {
			return true
		}
	}
	return false
}
