package paradigma

import (
	"math/rand/v2"
	"slices"
)

// Evaluation counts how an analyzer fares on a sample of tagged word forms.
type Evaluation struct {
	// Total is the number of forms evaluated.
	Total int
	// Good counts forms with a reading of the right lemma and tags.
	Good int
	// TagsOnly counts forms with a reading of the right tags but none of
	// the right lemma.
	TagsOnly int
	// Misses lists the forms without a fully correct reading.
	Misses []WordForm
}

// Accuracy is the share of forms with a fully correct reading.
func (e Evaluation) Accuracy() float64 {
	if e.Total == 0 {
		return 0
	}
	return float64(e.Good) / float64(e.Total)
}

// TagAccuracy is the share of forms with a reading of the right tags,
// whatever its lemma.
func (e Evaluation) TagAccuracy() float64 {
	if e.Total == 0 {
		return 0
	}
	return float64(e.Good+e.TagsOnly) / float64(e.Total)
}

// Evaluate applies the transducer to every form of sample. A reading
// matches the tags of a form when all its tags belong to the form's
// grammeme: readings carry only the tags that tell the forms of a model
// apart. Extra readings are not penalized.
func (a *Analyzer) Evaluate(sample []WordForm) Evaluation {
	var e Evaluation
	for _, w := range sample {
		e.Total++
		lemma := NormalizeForm(w.Lemma)
		tagged := false
		good := false
		for _, r := range a.readings(w.Form) {
			if !r.Grammeme.Difference(w.Grammeme).IsNone() {
				continue
			}
			tagged = true
			if NormalizeForm(r.Lemma) == lemma {
				good = true
				break
			}
		}
		if good {
			e.Good++
			continue
		}
		if tagged {
			e.TagsOnly++
		}
		e.Misses = append(e.Misses, w)
	}
	a.logger.Info("evaluation done",
		"forms", e.Total, "accuracy", e.Accuracy(), "tag_accuracy", e.TagAccuracy())
	return e
}

// Sample returns n lexeme blocks drawn at random from groups, or all of
// them in order when n is not positive or not below len(groups).
func Sample(groups [][]WordForm, n int) [][]WordForm {
	if n <= 0 || n >= len(groups) {
		return groups
	}
	out := slices.Clone(groups)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out[:n]
}

// Flatten concatenates lexeme blocks into one list of word forms.
func Flatten(groups [][]WordForm) []WordForm {
	return slices.Concat(groups...)
}
