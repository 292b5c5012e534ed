package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJaro(t *testing.T) {
	assert.InDelta(t, 0.9444, Jaro("martha", "marhta"), 1e-3)
	assert.InDelta(t, 0.8222, Jaro("dwayne", "duane"), 1e-3)
	assert.Equal(t, 1.0, Jaro("abc", "abc"))
	assert.Equal(t, 0.0, Jaro("", "abc"))
	assert.Equal(t, 0.0, Jaro("abc", ""))
	assert.Equal(t, 0.0, Jaro("abc", "xyz"))
}

func TestJaroWinkler(t *testing.T) {
	assert.InDelta(t, 0.9611, JaroWinkler("martha", "marhta"), 1e-3)
	assert.InDelta(t, 0.8400, JaroWinkler("dwayne", "duane"), 1e-3)
}

// The prefix bonus applies only when the Jaro score is already at least
// 0.7; weak matches stay unboosted.
func TestJaroWinklerNoBonusBelowThreshold(t *testing.T) {
	jaro := Jaro("abcdef", "abxyzq")
	if jaro >= 0.7 {
		t.Skipf("pair no longer below bonus threshold: %v", jaro)
	}
	assert.Equal(t, jaro, JaroWinkler("abcdef", "abxyzq"))
}

func TestJaroWinklerBounds(t *testing.T) {
	pairs := [][2]string{
		{"a", "a"},
		{"martha", "marhta"},
		{"completely", "different"},
		{"", ""},
		{"x", ""},
	}
	for _, p := range pairs {
		score := JaroWinkler(p[0], p[1])
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestJaroWinklerIdentity(t *testing.T) {
	for _, s := range []string{"a", "dept a", "air resources board"} {
		assert.Equal(t, 1.0, JaroWinkler(s, s))
	}
}
