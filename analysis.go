package paradigma

import (
	"strings"
)

// Analysis is one reading of a surface form.
type Analysis struct {
	// Lemma is the lemma form, with macrons.
	Lemma string
	// Grammeme holds the feature tags of the reading.
	Grammeme Grammeme
}

// String renders the reading as the transducer emits it, "lemma\ttags".
func (a Analysis) String() string {
	return a.Lemma + "\t" + a.Grammeme.String()
}

// ParseAnalysis splits a transducer output string into its lemma and tags.
func ParseAnalysis(out string) Analysis {
	lemma, tags, _ := strings.Cut(out, "\t")
	return Analysis{Lemma: Remacronize(strings.TrimSpace(lemma)), Grammeme: ParseGrammeme(tags)}
}

// TokenAnalysis holds the readings of a single token of a text.
type TokenAnalysis struct {
	// Token is the word as it appears in the text.
	Token string
	// Analyses lists the readings, empty when the form is unknown.
	Analyses []Analysis
}

// InflectionTable holds the forms generated for one stem of a model.
type InflectionTable struct {
	// Model is the name of the model the table was generated from.
	Model string
	// Lemma is the lemma form of the stem.
	Lemma string
	// Forms lists one word form per affix of the model.
	Forms []WordForm
}
