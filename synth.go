package paradigma

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cours-de-latin/paradigma/fst"
)

// Synthesizer compiles models into one analysis transducer.
type Synthesizer struct {
	opts     *fst.Options
	eachStep bool
	logger   *slog.Logger
}

// NewSynthesizer returns a synthesizer configured by cfg.
func NewSynthesizer(cfg Config) *Synthesizer {
	return &Synthesizer{opts: cfg.fstOptions(), eachStep: cfg.MinimizeEachUnion, logger: cfg.logger()}
}

// AffixExprs returns one fst expression per affix of m. Each maps a surface
// form of the model to its lemma form followed by a tab and the affix tags:
// stem pieces pass through under their slot pattern, and every affix slot
// either passes through, when it equals the lemma affix slot, or is
// rewritten to it.
func AffixExprs(m *Model) []string {
	gaps := m.Gaps()
	slots := m.Slots()
	lemma := affixSlots(m.LemmaAffix, gaps)
	exprs := make([]string, 0, len(m.Affixes))
	for _, a := range m.Affixes {
		form := affixSlots(a, gaps)
		var b strings.Builder
		for i, s := range slots {
			if i > 0 {
				b.WriteString(slotExpr(form[i-1], lemma[i-1]))
				b.WriteByte(' ')
			}
			if e := s.Pattern.Expr(); e != "" {
				b.WriteString("(" + e + ") ")
			}
		}
		b.WriteString(fst.Quote("") + ":" + fst.Quote("\t"+a.Grammeme.String()))
		exprs = append(exprs, b.String())
	}
	return exprs
}

func slotExpr(form, lemma string) string {
	if form == lemma {
		return fst.Quote(form)
	}
	return fst.Quote(form) + ":" + fst.Quote(lemma)
}

// Model compiles the union of the affix expressions of m.
func (s *Synthesizer) Model(m *Model) (*fst.FST, error) {
	if len(m.Affixes) == 0 || len(m.Stems) == 0 {
		return nil, &EmptyModelError{Name: m.Name}
	}
	var out *fst.FST
	for _, expr := range AffixExprs(m) {
		f, err := fst.Compile(expr, nil, s.opts)
		if err != nil {
			return nil, fmt.Errorf("model %q: %w", m.Name, err)
		}
		if out == nil {
			out = f
		} else {
			out = fst.Union(out, f)
		}
		if s.eachStep {
			out = out.Normalize()
		}
	}
	if !s.eachStep {
		out = out.Normalize()
	}
	return out, nil
}

// Synthesize unions the transducers of all models, normalizing after every
// union. Models that cannot be compiled are logged and skipped; when none
// is left ErrNothingToSynthesize is returned.
func (s *Synthesizer) Synthesize(ctx context.Context, models []*Model) (*fst.FST, error) {
	var total *fst.FST
	built := 0
	for _, m := range models {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := s.Model(m)
		if err != nil {
			if errors.Is(err, ErrEmptyModel) {
				s.logger.Warn("skipping empty model", "model", m.Name)
			} else {
				s.logger.Warn("skipping model", "model", m.Name, "error", err)
			}
			continue
		}
		if total == nil {
			total = f
		} else {
			total = fst.Union(total, f)
		}
		if s.eachStep {
			total = total.Normalize()
		}
		built++
		s.logger.Debug("model synthesized",
			"model", m.Name, "stems", m.Power(), "affixes", m.Size(), "states", total.NumStates())
	}
	if built == 0 {
		return nil, ErrNothingToSynthesize
	}
	if !s.eachStep {
		total = total.Normalize()
	}
	s.logger.Info("transducer ready", "models", built, "states", total.NumStates(), "arcs", total.NumArcs())
	return total, nil
}

// LetterFilter compiles the acceptor for one or more letters, a letter
// being a consonant or a vowel optionally marked long with a hyphen.
func LetterFilter(cfg Config) (*fst.FST, error) {
	opts := cfg.fstOptions()
	defs := make(map[string]*fst.FST)
	var err error
	if defs["vowel"], err = fst.Compile("["+cfg.Vowels+`]\-?`, nil, opts); err != nil {
		return nil, fmt.Errorf("vowel class: %w", err)
	}
	if defs["cons"], err = fst.Compile("["+cfg.Consonants+"]", nil, opts); err != nil {
		return nil, fmt.Errorf("consonant class: %w", err)
	}
	if defs["letter"], err = fst.Compile("$cons | $vowel", defs, opts); err != nil {
		return nil, err
	}
	f, err := fst.Compile("$letter+", defs, opts)
	if err != nil {
		return nil, err
	}
	return f.Normalize(), nil
}
