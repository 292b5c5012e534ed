package fuzzy

import (
	"sort"
)

// defaultLimit caps FindBestMatches results when Options.Limit is zero.
const defaultLimit = 10

// Candidate pairs one candidate string with its match result and its
// position in the original candidate slice.
type Candidate struct {
	Text   string  `json:"text" yaml:"text"`
	Index  int     `json:"index" yaml:"index"`
	Result *Result `json:"result" yaml:"result"`
}

// FindBestMatches scores target against every candidate, drops results
// below the threshold, and returns the rest sorted by descending score.
// The sort is stable, so ties keep the original candidate order. An empty
// candidate list yields an empty slice, not an error.
func FindBestMatches(target string, candidates []string, opts *Options) ([]Candidate, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	limit := opts.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	matched := make([]Candidate, 0, len(candidates))
	for i, text := range candidates {
		result := Match(target, text, opts)
		if result.Score < opts.Threshold {
			continue
		}
		matched = append(matched, Candidate{Text: text, Index: i, Result: result})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Result.Score > matched[j].Result.Score
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}
