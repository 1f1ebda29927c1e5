package paradigma

import (
	"regexp"
	"sort"
	"strings"
)

// reWord matches a single word token, macrons and combining marks included.
var reWord = regexp.MustCompile(`[a-zA-ZÀ-ÿ\x{0100}-\x{024F}\x{0300}-\x{036F}]+`)

// enclitics are suffixes stripped when a form gets no reading as a whole.
// "st" is the contraction of est after a form in -s or a vowel: the form
// is retried with a trailing "s".
var enclitics = []string{"que", "ne", "ue", "ve", "st"}

// analyzeWord applies the transducer and, when nothing comes out, retries
// without a trailing enclitic.
func (a *Analyzer) analyzeWord(form string) []Analysis {
	out := a.readings(form)
	if len(out) > 0 {
		return out
	}
	norm := NormalizeForm(form)
	for _, suf := range enclitics {
		if len(norm) <= len(suf) || !strings.HasSuffix(norm, suf) {
			continue
		}
		stem := norm[:len(norm)-len(suf)]
		if suf == "st" {
			stem += "s"
		}
		if out = a.readings(stem); len(out) > 0 {
			return out
		}
	}
	return nil
}

func (a *Analyzer) readings(form string) []Analysis {
	var raw []string
	for s := range a.Apply(form) {
		raw = append(raw, s)
	}
	raw = unique(raw)
	sort.Strings(raw)

	out := make([]Analysis, 0, len(raw))
	for _, s := range raw {
		out = append(out, ParseAnalysis(s))
	}
	return out
}

// analyzeText tokenizes text and analyzes each word token.
func (a *Analyzer) analyzeText(text string) []TokenAnalysis {
	var results []TokenAnalysis
	for _, token := range reWord.FindAllString(text, -1) {
		results = append(results, TokenAnalysis{
			Token:    token,
			Analyses: a.analyzeWord(token),
		})
	}
	return results
}
