package paradigma

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Builder runs the induction pipeline: lexemes, paradigms, models and the
// analysis transducer.
type Builder struct {
	cfg    Config
	logger *slog.Logger
	synth  *Synthesizer
}

// NewBuilder validates cfg and returns a builder.
func NewBuilder(cfg Config) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("builder config: %w", err)
	}
	return &Builder{cfg: cfg, logger: cfg.logger(), synth: NewSynthesizer(cfg)}, nil
}

// Lexemes groups each block of word forms into a lexeme. Blocks mixing
// lemmas are logged and skipped.
func (b *Builder) Lexemes(groups [][]WordForm) []*Lexeme {
	out := make([]*Lexeme, 0, len(groups))
	for _, g := range groups {
		lx, err := NewLexeme(g)
		if err != nil {
			var me *MixedLemmaError
			if errors.As(err, &me) {
				b.logger.Warn("skipping lexeme with mixed lemmas",
					"lemma", me.Lemma, "alien", me.Alien, "form", me.Form)
			} else {
				b.logger.Warn("skipping lexeme", "error", err)
			}
			continue
		}
		out = append(out, lx)
	}
	return out
}

// Paradigms aligns and segments the lexemes in parallel, at most
// Config.Workers at a time. Lexemes whose forms do not fit their skeleton
// are logged and skipped; the result keeps the input order.
func (b *Builder) Paradigms(ctx context.Context, lexemes []*Lexeme) ([]*Paradigm, error) {
	results := make([]*Paradigm, len(lexemes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Workers)
	for i, lx := range lexemes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := lx.Paradigm()
			if err != nil {
				var ue *AlignmentUnderflowError
				if errors.As(err, &ue) {
					b.logger.Warn("skipping lexeme that does not fit its skeleton",
						"lemma", ue.Lemma, "form", ue.Form, "skeleton", ue.Skeleton)
					return nil
				}
				return err
			}
			results[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*Paradigm, 0, len(results))
	for _, p := range results {
		if p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

// Models builds the paradigms of lexemes and clusters them, offering each
// to the existing models first.
func (b *Builder) Models(ctx context.Context, lexemes []*Lexeme, existing []*Model) ([]*Model, error) {
	paradigms, err := b.Paradigms(ctx, lexemes)
	if err != nil {
		return nil, err
	}
	models := ClusterInto(existing, paradigms, b.cfg.Threshold)
	b.logger.Info("models clustered",
		"lexemes", len(lexemes), "paradigms", len(paradigms), "models", len(models))
	return models, nil
}

// Build runs the whole pipeline on blocks of word forms and returns the
// analyzer of the resulting models.
func (b *Builder) Build(ctx context.Context, groups [][]WordForm, existing []*Model) (*Analyzer, error) {
	models, err := b.Models(ctx, b.Lexemes(groups), existing)
	if err != nil {
		return nil, err
	}
	return b.Analyzer(ctx, models)
}

// Analyzer synthesizes the transducer of models.
func (b *Builder) Analyzer(ctx context.Context, models []*Model) (*Analyzer, error) {
	t, err := b.synth.Synthesize(ctx, models)
	if err != nil {
		return nil, err
	}
	return NewAnalyzer(t, models, b.cfg)
}
