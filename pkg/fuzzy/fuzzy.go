// Package fuzzy implements the string-matching engine used to reconcile
// inconsistently-named organizational entities: Levenshtein edit
// distance, Jaro and Jaro-Winkler similarity, Soundex phonetic coding,
// and a combined scorer that layers exact, substring, and phonetic
// evidence into a single confidence-banded result.
package fuzzy

import (
	"strings"

	"github.com/DOGE-network/cali-doge-sub006/pkg/errors"
	"github.com/DOGE-network/cali-doge-sub006/pkg/normalize"
)

// Confidence bands a match score: ≥0.9 high, ≥0.7 medium, below low.
type Confidence string

// Confidence bands.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Algorithm identifies which rule produced a match score.
type Algorithm string

// Match algorithms.
const (
	AlgorithmExact         Algorithm = "exact"
	AlgorithmSubstring     Algorithm = "substring"
	AlgorithmJaroWinkler   Algorithm = "jaro-winkler"
	AlgorithmLevenshtein   Algorithm = "levenshtein"
	AlgorithmSoundex       Algorithm = "soundex"
	AlgorithmFieldWeighted Algorithm = "field-weighted"
)

// Result is the outcome of one pairwise comparison. It is a pure value
// with no lifecycle beyond the call that produced it.
type Result struct {
	// Score is the similarity in [0,1].
	Score float64 `json:"score" yaml:"score"`

	// Confidence bands the score.
	Confidence Confidence `json:"confidence" yaml:"confidence"`

	// Algorithm names the rule that produced the score.
	Algorithm Algorithm `json:"algorithm" yaml:"algorithm"`

	// MatchedText is the candidate string that was compared.
	MatchedText string `json:"matched_text" yaml:"matched_text"`

	// Distance is the Levenshtein distance between the normalized
	// strings, attached for diagnostics.
	Distance int `json:"distance" yaml:"distance"`
}

// Options tunes the combined scorer.
type Options struct {
	// Threshold is the minimum score for substring short-circuiting and
	// for FindBestMatches filtering. Must be in [0,1].
	Threshold float64

	// UsePhonetic raises the score to at least 0.7 when Soundex codes
	// agree. It never lowers a score.
	UsePhonetic bool

	// PreferExact enables the substring short-circuit: when one
	// normalized string contains the other, score by length ratio.
	PreferExact bool

	// Limit caps the number of candidates FindBestMatches returns.
	// Zero means the default of 10.
	Limit int
}

// DefaultOptions returns the scorer defaults used for cross-dataset
// resolution.
func DefaultOptions() *Options {
	return &Options{
		Threshold:   0.3,
		UsePhonetic: true,
		PreferExact: true,
	}
}

// Validate checks the option contract. Invalid options are a programming
// error, unlike messy data.
func (o *Options) Validate() error {
	if o.Threshold < 0 || o.Threshold > 1 {
		return errors.NewValidationError("Threshold", o.Threshold, "must be in [0,1]")
	}
	if o.Limit < 0 {
		return errors.NewValidationError("Limit", o.Limit, "must be non-negative")
	}
	return nil
}

// BandConfidence maps a score to its confidence band.
func BandConfidence(score float64) Confidence {
	switch {
	case score >= 0.9:
		return ConfidenceHigh
	case score >= 0.7:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Match scores candidate b against target a. Both strings are normalized
// before comparison. The rules layer in order: exact normalized equality,
// substring containment (when PreferExact), the better of Jaro-Winkler
// and normalized Levenshtein, and a Soundex floor of 0.7 (when
// UsePhonetic). Match never fails; callers filter by score.
func Match(a, b string, opts *Options) *Result {
	if opts == nil {
		opts = DefaultOptions()
	}

	na := normalize.Name(a)
	nb := normalize.Name(b)

	if na == nb {
		return &Result{
			Score:       1,
			Confidence:  ConfidenceHigh,
			Algorithm:   AlgorithmExact,
			MatchedText: b,
		}
	}

	distance := Levenshtein(na, nb)

	if opts.PreferExact && na != "" && nb != "" {
		if contains(na, nb) {
			shorter, longer := len([]rune(na)), len([]rune(nb))
			if shorter > longer {
				shorter, longer = longer, shorter
			}
			ratio := float64(shorter) / float64(longer)
			if ratio >= opts.Threshold {
				return &Result{
					Score:       ratio,
					Confidence:  BandConfidence(ratio),
					Algorithm:   AlgorithmSubstring,
					MatchedText: b,
					Distance:    distance,
				}
			}
		}
	}

	best := JaroWinkler(na, nb)
	algorithm := AlgorithmJaroWinkler
	if lev := LevenshteinScore(na, nb); lev > best {
		best = lev
		algorithm = AlgorithmLevenshtein
	}

	if opts.UsePhonetic && best < 0.7 {
		if codeA := Soundex(na); codeA != "" && codeA == Soundex(nb) {
			best = 0.7
			algorithm = AlgorithmSoundex
		}
	}

	return &Result{
		Score:       best,
		Confidence:  BandConfidence(best),
		Algorithm:   algorithm,
		MatchedText: b,
		Distance:    distance,
	}
}

// contains reports whether either normalized string contains the other.
func contains(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}
