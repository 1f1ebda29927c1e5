package paradigma

import (
	"errors"
	"fmt"
)

var (
	// ErrMixedLemma is matched by *MixedLemmaError.
	ErrMixedLemma = errors.New("paradigma: word forms with different lemmas")

	// ErrAlignmentUnderflow is matched by *AlignmentUnderflowError.
	ErrAlignmentUnderflow = errors.New("paradigma: form does not fit its stem skeleton")

	// ErrEmptyModel is matched by *EmptyModelError.
	ErrEmptyModel = errors.New("paradigma: model has no affixes")

	// ErrEmptyLexeme indicates a lexeme built from no word forms.
	ErrEmptyLexeme = errors.New("paradigma: lexeme has no word forms")

	// ErrNothingToSynthesize indicates that no model could be turned into a
	// transducer.
	ErrNothingToSynthesize = errors.New("paradigma: no model to synthesize")
)

// MixedLemmaError reports a word form whose lemma differs from the lexeme's.
type MixedLemmaError struct {
	Lemma string
	Alien string
	Form  string
}

func (e *MixedLemmaError) Error() string {
	return fmt.Sprintf("paradigma: form %q with alien lemma %q in lexeme %q", e.Form, e.Alien, e.Lemma)
}

// Is makes errors.Is(err, ErrMixedLemma) hold.
func (e *MixedLemmaError) Is(target error) bool { return target == ErrMixedLemma }

// AlignmentUnderflowError reports a form that cannot be segmented against
// its skeleton: a mismatch before the first gap, a length disagreement, or
// slots that do not reassemble into the form.
type AlignmentUnderflowError struct {
	Lemma    string
	Form     string
	Skeleton string
}

func (e *AlignmentUnderflowError) Error() string {
	if e.Lemma == "" {
		return fmt.Sprintf("paradigma: form %q does not fit skeleton %q", e.Form, e.Skeleton)
	}
	return fmt.Sprintf("paradigma: form %q of %q does not fit skeleton %q", e.Form, e.Lemma, e.Skeleton)
}

// Is makes errors.Is(err, ErrAlignmentUnderflow) hold.
func (e *AlignmentUnderflowError) Is(target error) bool { return target == ErrAlignmentUnderflow }

// EmptyModelError reports a model skipped by the synthesizer.
type EmptyModelError struct {
	Name string
}

func (e *EmptyModelError) Error() string {
	return fmt.Sprintf("paradigma: model %q has no affixes", e.Name)
}

// Is makes errors.Is(err, ErrEmptyModel) hold.
func (e *EmptyModelError) Is(target error) bool { return target == ErrEmptyModel }
