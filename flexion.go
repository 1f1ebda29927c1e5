package paradigma

// InflectionTable generates every form of one stem of the model: each affix
// is put back into the stem's gaps, tagged with the stem's shared tags and
// the affix's own.
func (m *Model) InflectionTable(stem Morpheme) *InflectionTable {
	gaps := m.Gaps()
	table := &InflectionTable{
		Model: m.Name,
		Lemma: m.LemmaForm(stem),
		Forms: make([]WordForm, 0, len(m.Affixes)),
	}
	for _, a := range m.Affixes {
		table.Forms = append(table.Forms, WordForm{
			Form:     Reassemble(stem.Form, affixSlots(a, gaps)),
			Lemma:    table.Lemma,
			Grammeme: stem.Grammeme.Union(a.Grammeme),
		})
	}
	return table
}

// InflectionTables generates the tables of all stems of the model.
func (m *Model) InflectionTables() []*InflectionTable {
	out := make([]*InflectionTable, 0, len(m.Stems))
	for _, s := range m.Stems {
		out = append(out, m.InflectionTable(s))
	}
	return out
}

// unique returns a deduplicated slice preserving order.
func unique(ss []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range ss {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
