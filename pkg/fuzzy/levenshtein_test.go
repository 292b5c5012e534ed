package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"", "abc", 3},
		{"abc", "", 3},
		{"", "", 0},
		{"same", "same", 0},
		{"transportation", "transprtation", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestLevenshteinSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"dept a", "deptt a"},
		{"", "anything"},
		{"air resources", "resources air"},
	}
	for _, p := range pairs {
		assert.Equal(t, Levenshtein(p[0], p[1]), Levenshtein(p[1], p[0]))
	}
}

func TestLevenshteinScore(t *testing.T) {
	assert.Equal(t, 1.0, LevenshteinScore("", ""))
	assert.Equal(t, 1.0, LevenshteinScore("abc", "abc"))
	assert.Equal(t, 0.0, LevenshteinScore("", "abc"))
	assert.InDelta(t, 1-3.0/7.0, LevenshteinScore("kitten", "sitting"), 1e-9)
}
