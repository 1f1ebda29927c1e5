package paradigma

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const modelHeader = "Paradigm type "

// ReadCorpus reads tagged word forms, one "form\tlemma\ttag|tag" triple per
// line. Blocks separated by blank lines hold the forms of one lexeme each.
// Lines starting with "#" are comments. A missing tag field means none.
func ReadCorpus(r io.Reader) ([][]WordForm, error) {
	var (
		blocks [][]WordForm
		block  []WordForm
		n      int
	)
	flush := func() {
		if len(block) > 0 {
			blocks = append(blocks, block)
			block = nil
		}
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		n++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 || len(fields) > 3 {
			return nil, fmt.Errorf("corpus line %d: want form, lemma and tags separated by tabs, got %d fields", n, len(fields))
		}
		form := NormalizeForm(fields[0])
		lemma := strings.TrimSpace(fields[1])
		if form == "" || lemma == "" {
			return nil, fmt.Errorf("corpus line %d: empty form or lemma", n)
		}
		var g Grammeme
		if len(fields) == 3 {
			g = ParseGrammeme(fields[2])
		} else {
			g = NewGrammeme()
		}
		block = append(block, NewWordForm(form, lemma, g))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	flush()
	return blocks, nil
}

// WriteModel writes m in the text layout read by ReadModels:
//
//	Paradigm type "amo":
//	Stems: am_, laud_
//
//	o # ind|pres|1sg
//	as # ind|pres|2sg
//
// The first affix line is the lemma affix.
func WriteModel(w io.Writer, m *Model) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s%s:\n", modelHeader, strconv.Quote(m.Name))
	stems := make([]string, len(m.Stems))
	for i, s := range m.Stems {
		stems[i] = s.String()
	}
	fmt.Fprintf(bw, "Stems: %s\n\n", strings.Join(stems, ", "))
	for _, a := range lemmaFirst(m) {
		fmt.Fprintln(bw, a.String())
	}
	return bw.Flush()
}

// lemmaFirst orders the affixes of m so that the lemma affix comes first.
func lemmaFirst(m *Model) []Morpheme {
	out := make([]Morpheme, 0, len(m.Affixes))
	idx := -1
	for i, a := range m.Affixes {
		if a.Form == m.LemmaAffix.Form && idx < 0 {
			idx = i
			out = append(out, a)
		}
	}
	for i, a := range m.Affixes {
		if i != idx {
			out = append(out, a)
		}
	}
	return out
}

// WriteModels writes every model, separated by blank lines.
func WriteModels(w io.Writer, models []*Model) error {
	for i, m := range models {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := WriteModel(w, m); err != nil {
			return fmt.Errorf("write model %q: %w", m.Name, err)
		}
	}
	return nil
}

// modelBlock accumulates the lines of one model while reading.
type modelBlock struct {
	name    string
	stems   []Morpheme
	affixes []Morpheme
}

func (b *modelBlock) build(threshold float64) (*Model, error) {
	if len(b.stems) > 0 {
		gaps := strings.Count(b.stems[0].Form, string(Gap))
		for _, s := range b.stems[1:] {
			if strings.Count(s.Form, string(Gap)) != gaps {
				return nil, fmt.Errorf("model %q: stems %q and %q differ in gaps", b.name, b.stems[0].Form, s.Form)
			}
		}
	}
	return NewModel(b.name, b.stems, b.affixes, threshold), nil
}

// ReadModels parses models written by WriteModels. Slot patterns are
// inferred with threshold.
func ReadModels(r io.Reader, threshold float64) ([]*Model, error) {
	var (
		models []*Model
		cur    *modelBlock
		n      int
	)
	flush := func() error {
		if cur == nil {
			return nil
		}
		m, err := cur.build(threshold)
		if err != nil {
			return err
		}
		models = append(models, m)
		cur = nil
		return nil
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "!"):
			continue

		case strings.HasPrefix(line, modelHeader):
			if err := flush(); err != nil {
				return nil, err
			}
			name, err := strconv.Unquote(strings.TrimSuffix(strings.TrimPrefix(line, modelHeader), ":"))
			if err != nil {
				return nil, fmt.Errorf("model line %d: bad name: %w", n, err)
			}
			cur = &modelBlock{name: name}

		case cur == nil:
			return nil, fmt.Errorf("model line %d: %q outside a model", n, line)

		case strings.HasPrefix(line, "Stems:"):
			for _, s := range strings.Split(strings.TrimPrefix(line, "Stems:"), ",") {
				s = strings.TrimSpace(s)
				if s == "" {
					continue
				}
				skel, tags, _ := strings.Cut(s, "=")
				cur.stems = append(cur.stems, NewRoot(skel, ParseGrammeme(tags)))
			}

		default:
			form, tags, ok := strings.Cut(line, "#")
			if !ok {
				return nil, fmt.Errorf("model line %d: affix %q lacks '#'", n, line)
			}
			cur.affixes = append(cur.affixes, NewAffix(strings.TrimSpace(form), ParseGrammeme(tags)))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read models: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return models, nil
}

// ReadModel parses a single model.
func ReadModel(r io.Reader, threshold float64) (*Model, error) {
	models, err := ReadModels(r, threshold)
	if err != nil {
		return nil, err
	}
	if len(models) != 1 {
		return nil, errors.New("read model: want exactly one model, got " + strconv.Itoa(len(models)))
	}
	return models[0], nil
}
