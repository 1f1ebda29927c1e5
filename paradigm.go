package paradigma

import (
	"fmt"
	"strings"
)

// Morpheme is a form with its grammeme. Affix forms hold one slot per stem
// gap, separated by Gap; a root morpheme holds a stem skeleton.
type Morpheme struct {
	Form     string
	Grammeme Grammeme
	IsRoot   bool
}

// NewAffix returns an affix morpheme.
func NewAffix(form string, g Grammeme) Morpheme {
	return Morpheme{Form: form, Grammeme: g}
}

// NewRoot returns a root morpheme.
func NewRoot(skeleton string, g Grammeme) Morpheme {
	return Morpheme{Form: skeleton, Grammeme: g, IsRoot: true}
}

// Equal reports equal forms and equal grammemes.
func (m Morpheme) Equal(o Morpheme) bool {
	return m.Form == o.Form && m.Grammeme.Equal(o.Grammeme)
}

// Key identifies the morpheme in affix sets.
func (m Morpheme) Key() string {
	return m.Form + "#" + m.Grammeme.Key()
}

// Slots splits an affix form into its slot strings.
func (m Morpheme) Slots() []string {
	return splitSlots(m.Form)
}

// String renders roots as "skeleton" or "skeleton=tags" and affixes as
// "form # tags", the layout of exported model files.
func (m Morpheme) String() string {
	if m.IsRoot {
		if m.Grammeme.IsNone() {
			return m.Form
		}
		return m.Form + "=" + m.Grammeme.String()
	}
	return m.Form + " # " + m.Grammeme.String()
}

// Paradigm is a lexeme decomposed into a stem skeleton and one affix per
// form. Tags shared by every affix are moved to the stem.
type Paradigm struct {
	Stem    Morpheme
	Affixes []Morpheme
	// LemmaAffix is the first affix with its tags before factoring.
	LemmaAffix Morpheme
	Lemma      string

	keys map[string]bool
}

// NewParadigm factors the tags common to all affixes into the stem.
func NewParadigm(skeleton string, affixes []Morpheme, lemma string) (*Paradigm, error) {
	if len(affixes) == 0 {
		return nil, fmt.Errorf("paradigm of %q: %w", lemma, ErrEmptyLexeme)
	}
	common := affixes[0].Grammeme
	for _, a := range affixes[1:] {
		common = common.Intersection(a.Grammeme)
	}

	p := &Paradigm{
		Stem:       NewRoot(skeleton, common),
		Affixes:    make([]Morpheme, len(affixes)),
		LemmaAffix: affixes[0],
		Lemma:      lemma,
		keys:       make(map[string]bool, len(affixes)),
	}
	for i, a := range affixes {
		local := Morpheme{Form: a.Form, Grammeme: a.Grammeme.Difference(common), IsRoot: a.IsRoot}
		p.Affixes[i] = local
		p.keys[local.Key()] = true
	}
	return p, nil
}

// IsCompatibleWith reports whether one paradigm's affix set is a subset of
// the other's. The relation is reflexive and symmetric but not transitive.
func (p *Paradigm) IsCompatibleWith(o *Paradigm) bool {
	return isSubset(p.keys, o.keys) || isSubset(o.keys, p.keys)
}

func isSubset(a, b map[string]bool) bool {
	if len(a) > len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func affixKeys(affixes []Morpheme) map[string]bool {
	keys := make(map[string]bool, len(affixes))
	for _, a := range affixes {
		keys[a.Key()] = true
	}
	return keys
}

func (p *Paradigm) String() string {
	var b strings.Builder
	b.WriteString(p.Stem.String())
	for _, a := range p.Affixes {
		b.WriteString("\n")
		b.WriteString(a.String())
	}
	return b.String()
}
