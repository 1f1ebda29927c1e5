package paradigma

import (
	"errors"
	"fmt"
)

// WordForm is one inflected form of a word: the surface form, its lemma and
// the grammeme it realizes.
type WordForm struct {
	Form     string
	Lemma    string
	Grammeme Grammeme
}

// NewWordForm builds a WordForm with its form in hyphen notation.
func NewWordForm(form, lemma string, g Grammeme) WordForm {
	return WordForm{Form: Demacronize(form), Lemma: lemma, Grammeme: g}
}

func (w WordForm) String() string {
	return fmt.Sprintf("%s\t%s[%s]", Remacronize(w.Form), w.Lemma, w.Grammeme)
}

// Affix segments the form against skeleton and wraps the affix slots as a
// morpheme carrying the form's grammeme.
func (w WordForm) Affix(skeleton string) (Morpheme, error) {
	slots, err := Segment(w.Form, skeleton)
	if err != nil {
		var ue *AlignmentUnderflowError
		if errors.As(err, &ue) {
			ue.Lemma = w.Lemma
		}
		return Morpheme{}, err
	}
	return NewAffix(joinSlots(slots), w.Grammeme), nil
}

// Lexeme is the ordered set of all forms of one word.
type Lexeme struct {
	Lemma string
	Forms []WordForm
}

// NewLexeme groups forms that share one lemma. The first form's lemma is
// the lexeme's; any other lemma yields a *MixedLemmaError.
func NewLexeme(forms []WordForm) (*Lexeme, error) {
	if len(forms) == 0 {
		return nil, ErrEmptyLexeme
	}
	lx := &Lexeme{Lemma: forms[0].Lemma, Forms: make([]WordForm, len(forms))}
	for i, w := range forms {
		if w.Lemma != lx.Lemma {
			return nil, &MixedLemmaError{Lemma: lx.Lemma, Alien: w.Lemma, Form: w.Form}
		}
		w.Form = Demacronize(w.Form)
		lx.Forms[i] = w
	}
	return lx, nil
}

// Surfaces returns the forms' strings in order.
func (lx *Lexeme) Surfaces() []string {
	out := make([]string, len(lx.Forms))
	for i, w := range lx.Forms {
		out[i] = w.Form
	}
	return out
}

// Paradigm aligns the lexeme's forms into a stem skeleton and segments every
// form against it.
func (lx *Lexeme) Paradigm() (*Paradigm, error) {
	skeleton := Align(lx.Surfaces())
	affixes := make([]Morpheme, 0, len(lx.Forms))
	for _, w := range lx.Forms {
		a, err := w.Affix(skeleton)
		if err != nil {
			return nil, fmt.Errorf("paradigm of %q: %w", lx.Lemma, err)
		}
		affixes = append(affixes, a)
	}
	return NewParadigm(skeleton, affixes, lx.Lemma)
}
