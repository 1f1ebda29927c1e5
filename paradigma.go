// Package paradigma induces inflection models from tagged word forms and
// compiles them into a finite-state transducer that maps a surface form to
// every (lemma, features) reading consistent with it.
//
// The pipeline aligns the forms of each lexeme into a gapped stem skeleton,
// segments the affixes, clusters lexemes with compatible affix sets into
// models, describes every stem slot of a model with a compact pattern, and
// unions the models into one minimized transducer.
package paradigma

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/cours-de-latin/paradigma/fst"
)

// Analyzer holds a compiled transducer and provides the public query API.
type Analyzer struct {
	// transducer maps surface forms to "lemma\ttags" strings.
	transducer *fst.FST

	// filter accepts the surface forms made of letters only.
	filter *fst.FST

	// models the transducer was built from, if known.
	models []*Model

	logger *slog.Logger
}

// NewAnalyzer wraps a transducer built with cfg. models may be nil.
func NewAnalyzer(t *fst.FST, models []*Model, cfg Config) (*Analyzer, error) {
	filter, err := LetterFilter(cfg)
	if err != nil {
		return nil, fmt.Errorf("letter filter: %w", err)
	}
	return &Analyzer{transducer: t, filter: filter, models: models, logger: cfg.logger()}, nil
}

// LoadAnalyzer decodes a transducer saved with Analyzer.MarshalBinary.
func LoadAnalyzer(data []byte, models []*Model, cfg Config) (*Analyzer, error) {
	t := new(fst.FST)
	if err := t.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return NewAnalyzer(t, models, cfg)
}

// MarshalBinary encodes the transducer.
func (a *Analyzer) MarshalBinary() ([]byte, error) {
	return a.transducer.MarshalBinary()
}

// Transducer returns the underlying transducer.
func (a *Analyzer) Transducer() *fst.FST {
	return a.transducer
}

// Models returns the models the analyzer was built from.
func (a *Analyzer) Models() []*Model {
	return slices.Clone(a.models)
}

// Apply yields the raw "lemma\ttags" outputs for a surface form, in hyphen
// notation. Forms that are not made of letters yield nothing.
func (a *Analyzer) Apply(form string) iter.Seq[string] {
	form = NormalizeForm(form)
	if !a.filter.Accepts(form) {
		return func(func(string) bool) {}
	}
	return a.transducer.Apply(form)
}

// AnalyzeWord returns the readings of a single word, sorted.
func (a *Analyzer) AnalyzeWord(form string) []Analysis {
	return a.analyzeWord(form)
}

// AnalyzeText splits text into tokens and analyzes each word.
func (a *Analyzer) AnalyzeText(text string) []TokenAnalysis {
	return a.analyzeText(text)
}
