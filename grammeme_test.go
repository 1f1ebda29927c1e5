package paradigma

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGrammeme(t *testing.T) {
	g := NewGrammeme("pres", "1", "pres", " s ")
	assert.Equal(t, []string{"pres", "1", "s"}, g.Tags())
	assert.Equal(t, "pres|1|s", g.String())
	assert.Equal(t, "1|pres|s", g.Key())

	assert.True(t, NewGrammeme().IsNone())
	assert.True(t, NewGrammeme("", " ").IsNone())
	assert.True(t, Grammeme{}.IsNone())
	assert.Equal(t, "none", Grammeme{}.String())
}

func TestGrammemeEqualIgnoresOrder(t *testing.T) {
	assert.True(t, ParseGrammeme("1|s|pres").Equal(NewGrammeme("pres", "s", "1")))
	assert.False(t, ParseGrammeme("1|s").Equal(ParseGrammeme("1|p")))
	assert.True(t, NewGrammeme().Equal(Grammeme{}))
}

func TestGrammemeSetOperations(t *testing.T) {
	a := ParseGrammeme("1|s|pres|actv")
	b := ParseGrammeme("2|s|pres|actv")

	assert.Equal(t, "s|pres|actv", a.Intersection(b).String())
	assert.Equal(t, "1", a.Difference(b).String())
	assert.True(t, a.Difference(a).IsNone())
	assert.True(t, a.Intersection(ParseGrammeme("perf")).IsNone())

	assert.Equal(t, "s|pres|1", ParseGrammeme("s|pres").Union(ParseGrammeme("1|s")).String())
	assert.Equal(t, "1", NewGrammeme().Union(ParseGrammeme("1")).String())
	assert.True(t, NewGrammeme().Union(NewGrammeme()).IsNone())
}

func TestGrammemeDifferenceIsNilpotent(t *testing.T) {
	sets := []Grammeme{
		NewGrammeme(),
		ParseGrammeme("1"),
		ParseGrammeme("1|s|pres"),
		ParseGrammeme("2|p|perf|pass"),
		ParseGrammeme("s|pres|indc"),
	}
	for _, a := range sets {
		for _, b := range sets {
			once := a.Difference(b)
			assert.True(t, once.Difference(b).Equal(once), "(%s - %s) - %s", a, b, b)
		}
	}
}

func TestGrammemeHas(t *testing.T) {
	g := ParseGrammeme("1|s")
	assert.True(t, g.Has("s"))
	assert.False(t, g.Has("p"))
	assert.True(t, Grammeme{}.Has(NoneTag))
}
