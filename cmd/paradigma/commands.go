package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/cours-de-latin/paradigma"
	"github.com/spf13/cobra"
)

var (
	modelsOut     string
	modelsIn      string
	transducerOut string
	transducerIn  string
	sampleSize    int
	showMisses    bool

	buildCmd = &cobra.Command{
		Use:   "build corpus.tsv...",
		Short: "Induce models from tagged corpora and compile the analysis transducer",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runBuild,
	}

	analyzeCmd = &cobra.Command{
		Use:   "analyze word...",
		Short: "Print every reading of the given word forms",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAnalyze,
	}

	evaluateCmd = &cobra.Command{
		Use:   "evaluate corpus.tsv...",
		Short: "Measure how many tagged word forms the transducer analyzes correctly",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runEvaluate,
	}

	modelsCmd = &cobra.Command{
		Use:   "models [models.txt]",
		Short: "Print a summary of every model",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runModels,
	}
)

func init() {
	buildCmd.Flags().StringVarP(&modelsOut, "models", "m", "", "write the models to this file")
	buildCmd.Flags().StringVar(&modelsIn, "extend", "", "offer the paradigms to the models of this file first")
	buildCmd.Flags().StringVarP(&transducerOut, "transducer", "t", "", "write the transducer to this file")
	buildCmd.Flags().IntVarP(&sampleSize, "sample", "n", 0, "learn from this many lexemes drawn at random, 0 for all")

	analyzeCmd.Flags().StringVarP(&transducerIn, "transducer", "t", "", "transducer file written by build")

	evaluateCmd.Flags().StringVarP(&transducerIn, "transducer", "t", "", "transducer file written by build")
	evaluateCmd.Flags().IntVarP(&sampleSize, "sample", "n", 0, "evaluate on this many lexemes drawn at random, 0 for all")
	evaluateCmd.Flags().BoolVar(&showMisses, "misses", false, "list the forms without a correct reading")
}

func openStore() (*paradigma.ModelStore, error) {
	if config.StoreDSN == "" {
		return nil, nil
	}
	return paradigma.OpenModelStore(config.StoreDSN)
}

func readModelsFile(path string) ([]*paradigma.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return paradigma.ReadModels(f, config.Threshold)
}

// readCorpora reads every corpus file and keeps sampleSize lexemes of them.
func readCorpora(paths []string) ([][]paradigma.WordForm, error) {
	var groups [][]paradigma.WordForm
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		g, err := paradigma.ReadCorpus(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		groups = append(groups, g...)
	}
	return paradigma.Sample(groups, sampleSize), nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	groups, err := readCorpora(args)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	var existing []*paradigma.Model
	switch {
	case modelsIn != "":
		if existing, err = readModelsFile(modelsIn); err != nil {
			return err
		}
	case store != nil:
		if existing, err = store.Load(ctx, config.Threshold); err != nil {
			return err
		}
	}

	b, err := paradigma.NewBuilder(config)
	if err != nil {
		return err
	}
	an, err := b.Build(ctx, groups, existing)
	if err != nil {
		return err
	}

	if modelsOut != "" {
		f, err := os.Create(modelsOut)
		if err != nil {
			return err
		}
		if err := paradigma.WriteModels(f, an.Models()); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	if transducerOut != "" {
		data, err := an.MarshalBinary()
		if err != nil {
			return err
		}
		if err := os.WriteFile(transducerOut, data, 0o644); err != nil {
			return err
		}
	}
	if store != nil {
		if err := store.Save(ctx, an.Models()); err != nil {
			return err
		}
		if err := store.SaveTransducer(ctx, an); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d models, %d states, %d arcs\n",
		len(an.Models()), an.Transducer().NumStates(), an.Transducer().NumArcs())
	return nil
}

func loadAnalyzer(ctx context.Context) (*paradigma.Analyzer, error) {
	if transducerIn != "" {
		data, err := os.ReadFile(transducerIn)
		if err != nil {
			return nil, err
		}
		return paradigma.LoadAnalyzer(data, nil, config)
	}
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("need --transducer or a model store")
	}
	defer store.Close()
	data, err := store.LoadTransducer(ctx)
	if err != nil {
		return nil, err
	}
	return paradigma.LoadAnalyzer(data, nil, config)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	an, err := loadAnalyzer(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, word := range args {
		readings := an.AnalyzeWord(word)
		if len(readings) == 0 {
			fmt.Fprintf(out, "%s\t?\n", word)
			continue
		}
		for _, a := range readings {
			fmt.Fprintf(out, "%s\t%s\n", word, a)
		}
	}
	return nil
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	groups, err := readCorpora(args)
	if err != nil {
		return err
	}
	an, err := loadAnalyzer(ctx)
	if err != nil {
		return err
	}

	e := an.Evaluate(paradigma.Flatten(groups))
	out := cmd.OutOrStdout()
	if showMisses {
		for _, w := range e.Misses {
			fmt.Fprintf(out, "miss\t%s\n", w)
		}
	}
	fmt.Fprintf(out, "forms: %d\nwith lemma: %g\ntags only: %g\n", e.Total, e.Accuracy(), e.TagAccuracy())
	return nil
}

func runModels(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	var models []*paradigma.Model
	if len(args) == 1 {
		var err error
		if models, err = readModelsFile(args[0]); err != nil {
			return err
		}
	} else {
		store, err := openStore()
		if err != nil {
			return err
		}
		if store == nil {
			return errors.New("need a models file or a model store")
		}
		defer store.Close()
		if models, err = store.Load(ctx, config.Threshold); err != nil {
			return err
		}
	}
	out := cmd.OutOrStdout()
	for i, m := range models {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprint(out, strings.TrimRight(m.Summary(), "\n")+"\n")
	}
	return nil
}
