package paradigma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexemeParadigm(t *testing.T) {
	p := paradigmOf(t, present("amare", "am"))

	assert.Equal(t, "am_", p.Stem.Form)
	assert.True(t, p.Stem.IsRoot)
	assert.Equal(t, presentTags, p.Stem.Grammeme.String())
	require.Len(t, p.Affixes, 3)
	assert.Equal(t, []string{"o", "as", "at"}, []string{p.Affixes[0].Form, p.Affixes[1].Form, p.Affixes[2].Form})
	assert.Equal(t, "1", p.Affixes[0].Grammeme.String())
	assert.Equal(t, "1|"+presentTags, p.LemmaAffix.Grammeme.String())
	assert.Equal(t, "am_="+presentTags+"\no # 1\nas # 2\nat # 3", p.String())
}

func TestNewLexemeErrors(t *testing.T) {
	_, err := NewLexeme(nil)
	assert.ErrorIs(t, err, ErrEmptyLexeme)

	forms := append(present("amare", "am"), NewWordForm("laudo", "laudare", ParseGrammeme("1")))
	_, err = NewLexeme(forms)
	require.ErrorIs(t, err, ErrMixedLemma)
	var me *MixedLemmaError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "amare", me.Lemma)
	assert.Equal(t, "laudare", me.Alien)
	assert.Equal(t, "laudo", me.Form)
}

func TestNewLexemeDemacronizes(t *testing.T) {
	lx, err := NewLexeme([]WordForm{{Form: "amō", Lemma: "amare", Grammeme: ParseGrammeme("1")}})
	require.NoError(t, err)
	assert.Equal(t, []string{"amo-"}, lx.Surfaces())
}

func TestIsCompatibleWith(t *testing.T) {
	am := paradigmOf(t, present("amare", "am"))
	laud := paradigmOf(t, present("laudare", "laud"))
	short := paradigmOf(t, present("portare", "port")[:2])
	other := paradigmOf(t, []WordForm{
		NewWordForm("puella", "puella", ParseGrammeme("nom|s")),
		NewWordForm("puellae", "puella", ParseGrammeme("gen|s")),
	})

	assert.True(t, am.IsCompatibleWith(am))
	assert.True(t, am.IsCompatibleWith(laud))
	assert.True(t, am.IsCompatibleWith(short))
	assert.True(t, short.IsCompatibleWith(am))
	assert.False(t, am.IsCompatibleWith(other))
}

func TestMorpheme(t *testing.T) {
	a := NewAffix("as", ParseGrammeme("2|s"))
	b := NewAffix("as", ParseGrammeme("s|2"))
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key())
	assert.False(t, a.Equal(NewAffix("at", ParseGrammeme("2|s"))))

	assert.Equal(t, "as # 2|s", a.String())
	assert.Equal(t, "am_", NewRoot("am_", NewGrammeme()).String())
	assert.Equal(t, "am_=pres", NewRoot("am_", ParseGrammeme("pres")).String())
}

func TestClusterEndToEnd(t *testing.T) {
	paradigms := []*Paradigm{
		paradigmOf(t, present("amare", "am")),
		paradigmOf(t, present("laudare", "laud")),
		paradigmOf(t, present("portare", "port")),
	}
	models := Cluster(paradigms, DefaultThreshold)
	require.Len(t, models, 1)

	m := models[0]
	assert.Equal(t, "amare", m.Name)
	assert.Equal(t, 3, m.Power())
	assert.Equal(t, 3, m.Size())
	assert.Equal(t, 1, m.Gaps())
	assert.Equal(t, "o", m.LemmaAffix.Form)
	assert.Equal(t, "laudo", m.LemmaForm(m.Stems[1]))

	slots := m.Slots()
	require.Len(t, slots, 2)
	assert.True(t, slots[0].Pattern.Open)
	assert.InDelta(t, 0.125, slots[0].Openness, 1e-9)
	assert.Equal(t, ".", slots[0].Pattern.String())
	assert.False(t, slots[1].Pattern.Open)
	assert.Equal(t, "amare: 3 stems\nVariables:\n0.125: .\n0: \n", m.Summary())
}

func TestClusterDisjointCoverage(t *testing.T) {
	paradigms := []*Paradigm{
		paradigmOf(t, present("amare", "am")),
		paradigmOf(t, []WordForm{
			NewWordForm("puella", "puella", ParseGrammeme("nom|s")),
			NewWordForm("puellae", "puella", ParseGrammeme("gen|s")),
		}),
		paradigmOf(t, present("laudare", "laud")),
		paradigmOf(t, []WordForm{
			NewWordForm("rosa", "rosa", ParseGrammeme("nom|s")),
			NewWordForm("rosae", "rosa", ParseGrammeme("gen|s")),
		}),
		paradigmOf(t, present("portare", "port")[:2]),
	}
	models := Cluster(paradigms, DefaultThreshold)
	require.Len(t, models, 2)

	seen := make(map[string]int)
	for _, m := range models {
		for _, s := range m.Stems {
			seen[s.Form]++
		}
	}
	assert.Equal(t, map[string]int{"am_": 1, "laud_": 1, "port_": 1, "puella_": 1, "rosa_": 1}, seen)
	assert.Equal(t, 3, models[0].Power())
	assert.Equal(t, 2, models[1].Power())
}

func TestClusterIsOrderDependent(t *testing.T) {
	p := func(stem string, affixes ...string) *Paradigm {
		var ms []Morpheme
		for _, a := range affixes {
			ms = append(ms, NewAffix(a, ParseGrammeme(a+"tag")))
		}
		par, err := NewParadigm(stem, ms, stem)
		require.NoError(t, err)
		return par
	}
	full := p("x_", "a", "b", "c")
	sub := p("y_", "a", "b")
	side := p("z_", "a", "b", "d")

	assert.Len(t, Cluster([]*Paradigm{full, sub, side}, DefaultThreshold), 2)

	models := Cluster([]*Paradigm{sub, full, side}, DefaultThreshold)
	require.Len(t, models, 1)
	assert.Equal(t, 3, models[0].Power())
}

func TestClusterInto(t *testing.T) {
	existing := Cluster([]*Paradigm{paradigmOf(t, present("amare", "am"))}, DefaultThreshold)
	require.Len(t, existing, 1)
	assert.Equal(t, "am", existing[0].Slots()[0].Pattern.String())

	models := ClusterInto(existing, []*Paradigm{
		paradigmOf(t, present("laudare", "laud")),
		paradigmOf(t, []WordForm{
			NewWordForm("puella", "puella", ParseGrammeme("nom|s")),
			NewWordForm("puellae", "puella", ParseGrammeme("gen|s")),
		}),
	}, DefaultThreshold)
	require.Len(t, models, 2)
	assert.Same(t, existing[0], models[0])
	assert.Equal(t, 2, models[0].Power())
	assert.Equal(t, "puella", models[1].Name)
	assert.NotEqual(t, "am", models[0].Slots()[0].Pattern.String())
}

// edoNoun is a noun homograph of the verb present("edo", "ed").
func edoNoun() []WordForm {
	return []WordForm{
		NewWordForm("edo", "edo", ParseGrammeme("nom|s")),
		NewWordForm("edonis", "edo", ParseGrammeme("gen|s")),
	}
}

func TestClusterNamesHomographs(t *testing.T) {
	models := Cluster([]*Paradigm{
		paradigmOf(t, present("edo", "ed")),
		paradigmOf(t, edoNoun()),
		paradigmOf(t, present("amo", "am")),
	}, DefaultThreshold)
	require.Len(t, models, 2)
	assert.Equal(t, "edo", models[0].Name)
	assert.Equal(t, "edo#2", models[1].Name)

	models = ClusterInto(models, []*Paradigm{
		paradigmOf(t, []WordForm{
			NewWordForm("edo", "edo", ParseGrammeme("abl|s")),
			NewWordForm("edone", "edo", ParseGrammeme("abl|s|x")),
		}),
	}, DefaultThreshold)
	require.Len(t, models, 3)
	assert.Equal(t, "edo#3", models[2].Name)
}

func TestModelAddStemRecomputes(t *testing.T) {
	m := NewModel("amare", []Morpheme{NewRoot("am_", NewGrammeme())}, []Morpheme{NewAffix("o", ParseGrammeme("1"))}, 0)
	assert.Equal(t, "am", m.Slots()[0].Pattern.String())
	m.AddStem(NewRoot("laud_", NewGrammeme()))
	assert.True(t, m.Slots()[0].Pattern.Matches("laud"))
}

func TestInflectionTable(t *testing.T) {
	m := Cluster([]*Paradigm{paradigmOf(t, present("amare", "am"))}, DefaultThreshold)[0]
	table := m.InflectionTable(m.Stems[0])
	assert.Equal(t, "amare", table.Model)
	assert.Equal(t, "amo", table.Lemma)
	require.Len(t, table.Forms, 3)
	assert.Equal(t, "amas", table.Forms[1].Form)
	assert.True(t, table.Forms[1].Grammeme.Equal(ParseGrammeme("2|"+presentTags)))
	assert.Len(t, m.InflectionTables(), 1)
}
