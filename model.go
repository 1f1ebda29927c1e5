package paradigma

import (
	"fmt"
	"slices"
	"strings"
)

// Slot is the description of one literal piece of the stems of a model:
// how open the set of values is and the pattern inferred for it.
type Slot struct {
	Openness float64
	Pattern  Pattern
}

// Model is an inflection class: the stems of structurally compatible
// paradigms sharing one affix set.
type Model struct {
	Name       string
	Stems      []Morpheme
	Affixes    []Morpheme
	LemmaAffix Morpheme
	// Threshold is the novelty threshold used by pattern inference; zero
	// means DefaultThreshold.
	Threshold float64

	keys  map[string]bool
	slots []Slot
	stale bool
}

// NewModel builds a model and infers its slot patterns. The first affix is
// the lemma affix.
func NewModel(name string, stems, affixes []Morpheme, threshold float64) *Model {
	m := &Model{
		Name:      name,
		Stems:     slices.Clone(stems),
		Affixes:   slices.Clone(affixes),
		Threshold: threshold,
		keys:      affixKeys(affixes),
	}
	if len(affixes) > 0 {
		m.LemmaAffix = affixes[0]
	}
	m.RecomputePatterns()
	return m
}

// Power is the number of stems.
func (m *Model) Power() int { return len(m.Stems) }

// Size is the number of affixes.
func (m *Model) Size() int { return len(m.Affixes) }

// Gaps is the number of affix positions in the model's stems. All stems of a
// model share it.
func (m *Model) Gaps() int {
	if len(m.Stems) == 0 {
		return 0
	}
	return strings.Count(m.Stems[0].Form, string(Gap))
}

// AddStem adds a stem and invalidates the slot patterns.
func (m *Model) AddStem(stem Morpheme) {
	m.Stems = append(m.Stems, stem)
	m.stale = true
}

// RecomputePatterns infers the pattern of every stem piece from the current
// stems.
func (m *Model) RecomputePatterns() {
	threshold := m.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	n := m.Gaps() + 1
	m.slots = make([]Slot, n)
	for i := range n {
		values := make([]string, len(m.Stems))
		for j, s := range m.Stems {
			values[j] = piece(s.Form, i)
		}
		p, pat := InferPattern(values, threshold)
		m.slots[i] = Slot{Openness: p, Pattern: pat}
	}
	m.stale = false
}

// piece returns the i-th literal piece of a skeleton, "" when missing.
func piece(skeleton string, i int) string {
	parts := strings.Split(skeleton, string(Gap))
	if i < len(parts) {
		return parts[i]
	}
	return ""
}

// Slots returns the slot descriptions, recomputing them first if stems were
// added since the last computation.
func (m *Model) Slots() []Slot {
	if m.stale || m.slots == nil {
		m.RecomputePatterns()
	}
	return slices.Clone(m.slots)
}

// Accepts reports whether the paradigm's affix set is compatible with the
// model's.
func (m *Model) Accepts(p *Paradigm) bool {
	if m.keys == nil {
		m.keys = affixKeys(m.Affixes)
	}
	return isSubset(m.keys, p.keys) || isSubset(p.keys, m.keys)
}

// LemmaForm reassembles the lemma of the given stem.
func (m *Model) LemmaForm(stem Morpheme) string {
	return Reassemble(stem.Form, affixSlots(m.LemmaAffix, m.Gaps()))
}

// Summary renders the model name, its stem count and every slot's openness
// and pattern.
func (m *Model) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d stems\nVariables:\n", m.Name, m.Power())
	for _, s := range m.Slots() {
		fmt.Fprintf(&b, "%g: %s\n", s.Openness, s.Pattern)
	}
	return b.String()
}

func (m *Model) String() string {
	return fmt.Sprintf("%s[%d stems, %d affixes]", m.Name, m.Power(), m.Size())
}

// affixSlots splits an affix into exactly gaps slots.
func affixSlots(a Morpheme, gaps int) []string {
	if gaps == 0 {
		return nil
	}
	slots := a.Slots()
	for len(slots) < gaps {
		slots = append(slots, "")
	}
	return slots[:gaps]
}

// Cluster groups paradigms into models in one forward sweep. Each paradigm
// not yet claimed opens a model, which absorbs the stems of every later
// unclaimed paradigm compatible with it. The result depends on input order:
// the first representative wins. Models are named after their seed's lemma,
// with a "#n" suffix from the second model of a lemma on.
func Cluster(paradigms []*Paradigm, threshold float64) []*Model {
	return cluster(paradigms, threshold, make(map[string]bool))
}

func cluster(paradigms []*Paradigm, threshold float64, taken map[string]bool) []*Model {
	claimed := make([]bool, len(paradigms))
	var models []*Model
	for i, seed := range paradigms {
		if claimed[i] {
			continue
		}
		claimed[i] = true
		stems := []Morpheme{seed.Stem}
		for j := i + 1; j < len(paradigms); j++ {
			if !claimed[j] && seed.IsCompatibleWith(paradigms[j]) {
				stems = append(stems, paradigms[j].Stem)
				claimed[j] = true
			}
		}
		m := NewModel(uniqueName(seed.Lemma, taken), stems, seed.Affixes, threshold)
		m.LemmaAffix = seed.LemmaAffix
		models = append(models, m)
	}
	return models
}

// uniqueName returns name, or name#2, name#3... when taken, and marks the
// result taken.
func uniqueName(name string, taken map[string]bool) string {
	out := name
	for n := 2; taken[out]; n++ {
		out = fmt.Sprintf("%s#%d", name, n)
	}
	taken[out] = true
	return out
}

// ClusterInto offers each paradigm to the existing models first, in order,
// and clusters the ones no model accepts. Existing models that gained stems
// have their patterns recomputed. New models never reuse an existing name.
func ClusterInto(existing []*Model, paradigms []*Paradigm, threshold float64) []*Model {
	var rest []*Paradigm
	for _, p := range paradigms {
		absorbed := false
		for _, m := range existing {
			if m.Accepts(p) {
				m.AddStem(p.Stem)
				absorbed = true
				break
			}
		}
		if !absorbed {
			rest = append(rest, p)
		}
	}
	taken := make(map[string]bool, len(existing))
	for _, m := range existing {
		taken[m.Name] = true
		if m.stale {
			m.RecomputePatterns()
		}
	}
	return slices.Concat(existing, cluster(rest, threshold, taken))
}
