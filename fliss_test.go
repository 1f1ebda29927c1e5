package paradigma

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func repeat(v string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestNovelty(t *testing.T) {
	assert.InDelta(t, 4.0/9.0, Novelty([]string{"a", "b"}), 1e-9)
	assert.InDelta(t, 0.25, Novelty([]string{"", ""}), 1e-9)
	assert.InDelta(t, 0.5, Novelty([]string{"a"}), 1e-9)
}

func TestInferPatternSingleton(t *testing.T) {
	for _, values := range [][]string{{"am"}, {"am", "am", "am"}, {""}} {
		p, pat := InferPattern(values, DefaultThreshold)
		assert.Zero(t, p)
		assert.False(t, pat.Open)
		assert.Equal(t, values[:1], pat.Values)
	}
	_, pat := InferPattern([]string{"ama-"}, DefaultThreshold)
	assert.Equal(t, `ama\-`, pat.String())
}

func TestInferPatternTwoDistinctTrims(t *testing.T) {
	p, pat := InferPattern([]string{"a", "b"}, DefaultThreshold)
	assert.True(t, pat.Open)
	assert.InDelta(t, 0.25, p, 1e-9)
	assert.Equal(t, []string{""}, pat.Prefixes)
	assert.Equal(t, []string{""}, pat.Suffixes)
	assert.Equal(t, ".", pat.String())
	assert.Equal(t, ".*", pat.Expr())
}

func TestInferPatternExactBelowThreshold(t *testing.T) {
	values := slices.Concat(repeat("laud", 30), repeat("am", 30))
	p, pat := InferPattern(values, DefaultThreshold)
	assert.LessOrEqual(t, p, DefaultThreshold)
	assert.False(t, pat.Open)
	assert.Equal(t, []string{"am", "laud"}, pat.Values)
	assert.Equal(t, "(am|laud)", pat.String())
	assert.Equal(t, pat.String(), pat.Expr())
}

func TestInferPatternKeepsSharedAffixes(t *testing.T) {
	// Prefixes stop at one letter, suffixes at the last two.
	var values []string
	for _, s := range []string{"fac", "jac", "lac", "pac", "rac", "tac", "vac", "dic", "duc", "nec"} {
		values = append(values, repeat(s, 3)...)
	}
	p, pat := InferPattern(values, DefaultThreshold)
	assert.True(t, pat.Open)
	assert.LessOrEqual(t, p, DefaultThreshold)
	assert.Equal(t, []string{"d", "f", "j", "l", "n", "p", "r", "t", "v"}, pat.Prefixes)
	assert.Equal(t, []string{"ac", "ec", "ic", "uc"}, pat.Suffixes)
	for _, v := range values {
		assert.True(t, pat.Matches(v), v)
	}
	assert.False(t, pat.Matches("fas"))
}

func TestPatternMatches(t *testing.T) {
	closed := Pattern{Values: []string{"am", "laud"}}
	assert.True(t, closed.Matches("am"))
	assert.False(t, closed.Matches("port"))

	open := Pattern{Open: true, Prefixes: []string{"a"}, Suffixes: []string{"m"}}
	assert.True(t, open.Matches("am"))
	assert.True(t, open.Matches("aurum"))
	assert.False(t, open.Matches("a"))
	assert.False(t, open.Matches("ma"))
}
