package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchExact(t *testing.T) {
	result := Match("California Department of Transportation", "Transportation, Department of", nil)

	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, ConfidenceHigh, result.Confidence)
	assert.Equal(t, AlgorithmExact, result.Algorithm)
	assert.Equal(t, "Transportation, Department of", result.MatchedText)
	assert.Equal(t, 0, result.Distance)
}

func TestMatchEmptyStrings(t *testing.T) {
	result := Match("", "", nil)
	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, AlgorithmExact, result.Algorithm)
}

func TestMatchSubstring(t *testing.T) {
	result := Match("motor vehicles", "motor vehicles field offices", nil)

	assert.Equal(t, AlgorithmSubstring, result.Algorithm)
	assert.InDelta(t, 0.5, result.Score, 1e-9)
	assert.Equal(t, ConfidenceLow, result.Confidence)
}

// With PreferExact off the substring rule is skipped and the scorer
// falls through to similarity.
func TestMatchSubstringDisabled(t *testing.T) {
	opts := &Options{Threshold: 0.3, UsePhonetic: true}
	result := Match("motor vehicles", "motor vehicles field offices", opts)

	assert.NotEqual(t, AlgorithmSubstring, result.Algorithm)
}

func TestMatchSimilarity(t *testing.T) {
	result := Match("deptt a", "dept a", &Options{Threshold: 0.3})

	assert.Greater(t, result.Score, 0.9)
	assert.Equal(t, AlgorithmJaroWinkler, result.Algorithm)
	assert.Equal(t, 1, result.Distance)
}

// Matching Soundex codes raise a weak score to exactly 0.7 and never
// lower a stronger one.
func TestMatchPhoneticFloor(t *testing.T) {
	boosted := Match("bard", "burt", &Options{Threshold: 0.3, UsePhonetic: true})
	require.Equal(t, 0.7, boosted.Score)
	assert.Equal(t, AlgorithmSoundex, boosted.Algorithm)
	assert.Equal(t, ConfidenceMedium, boosted.Confidence)

	unboosted := Match("bard", "burt", &Options{Threshold: 0.3})
	assert.Less(t, unboosted.Score, 0.7)

	// A strong score is left alone even when the codes also agree.
	strong := Match("deptt a", "dept a", &Options{Threshold: 0.3, UsePhonetic: true})
	assert.Greater(t, strong.Score, 0.7)
	assert.NotEqual(t, AlgorithmSoundex, strong.Algorithm)
}

func TestBandConfidence(t *testing.T) {
	assert.Equal(t, ConfidenceHigh, BandConfidence(0.95))
	assert.Equal(t, ConfidenceHigh, BandConfidence(0.9))
	assert.Equal(t, ConfidenceMedium, BandConfidence(0.89))
	assert.Equal(t, ConfidenceMedium, BandConfidence(0.7))
	assert.Equal(t, ConfidenceLow, BandConfidence(0.69))
}

func TestFindBestMatches(t *testing.T) {
	candidates := []string{
		"Department of Justice",
		"Dept A",
		"Department of Transportation",
		"Deptt A", // near-exact
	}

	results, err := FindBestMatches("Dept A", candidates, &Options{Threshold: 0.5})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, "Dept A", results[0].Text)
	assert.Equal(t, 1.0, results[0].Result.Score)
	assert.Equal(t, "Deptt A", results[1].Text)

	// Scores descend.
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Result.Score, results[i].Result.Score)
	}
}

func TestFindBestMatchesEmptyCandidates(t *testing.T) {
	results, err := FindBestMatches("anything", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindBestMatchesLimit(t *testing.T) {
	candidates := make([]string, 25)
	for i := range candidates {
		candidates[i] = "dept a"
	}

	results, err := FindBestMatches("dept a", candidates, &Options{Threshold: 0.3})
	require.NoError(t, err)
	assert.Len(t, results, defaultLimit)

	limited, err := FindBestMatches("dept a", candidates, &Options{Threshold: 0.3, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, limited, 3)
}

// Equal scores keep the original candidate order.
func TestFindBestMatchesStableTies(t *testing.T) {
	results, err := FindBestMatches("dept a", []string{"Dept A", "DEPT A", "dept a"}, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{results[0].Index, results[1].Index, results[2].Index})
}

func TestFindBestMatchesInvalidOptions(t *testing.T) {
	_, err := FindBestMatches("x", []string{"y"}, &Options{Threshold: 1.5})
	assert.Error(t, err)

	_, err = FindBestMatches("x", []string{"y"}, &Options{Limit: -1})
	assert.Error(t, err)
}
