package paradigma

import (
	"math"
	"slices"
	"strings"

	"github.com/cours-de-latin/paradigma/fst"
)

// DefaultThreshold is the novelty probability at or below which a value set
// is enumerated exactly.
const DefaultThreshold = 0.05

// Novelty estimates the probability that a fresh draw from the process that
// produced values is not among them: (1 - 1/(distinct+1))^count.
func Novelty(values []string) float64 {
	return math.Pow(1-1/float64(len(distinct(values))+1), float64(len(values)))
}

// distinct returns the distinct values in sorted order.
func distinct(values []string) []string {
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}

// Pattern describes the values seen in one stem slot. A closed pattern
// enumerates them; an open pattern keeps a set of prefixes and a set of
// suffixes around an unconstrained middle.
type Pattern struct {
	Open     bool
	Values   []string
	Prefixes []string
	Suffixes []string
}

// String renders the pattern as an alternation, or as "prefix.suffix" when
// open.
func (p Pattern) String() string {
	if !p.Open {
		return alternation(p.Values)
	}
	return alternation(p.Prefixes) + "." + alternation(p.Suffixes)
}

// Expr renders the pattern as an fst expression; the open middle becomes
// any run of alphabet symbols.
func (p Pattern) Expr() string {
	if !p.Open {
		return alternation(p.Values)
	}
	return alternation(p.Prefixes) + ".*" + alternation(p.Suffixes)
}

// Matches reports whether s is described by the pattern.
func (p Pattern) Matches(s string) bool {
	if !p.Open {
		return slices.Contains(p.Values, s)
	}
	for _, pre := range p.Prefixes {
		if !strings.HasPrefix(s, pre) {
			continue
		}
		for _, suf := range p.Suffixes {
			if len(pre)+len(suf) <= len(s) && strings.HasSuffix(s, suf) {
				return true
			}
		}
	}
	return false
}

// alternation renders distinct values as "v" or "(v1|v2|...)", escaping
// characters the fst compiler reserves.
func alternation(values []string) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return fst.Escape(values[0])
	}
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = fst.Escape(v)
	}
	return "(" + strings.Join(escaped, "|") + ")"
}

// InferPattern finds a compact description of values. A set with a single
// distinct value, or whose novelty is at or below threshold, is enumerated
// exactly. Otherwise prefixes and suffixes are trimmed one character at a
// time until their own novelty drops to the threshold, and the openness
// returned is the lower of the two final probabilities.
func InferPattern(values []string, threshold float64) (float64, Pattern) {
	if len(values) == 0 {
		return 0, Pattern{}
	}
	d := distinct(values)
	if len(d) == 1 {
		return 0, Pattern{Values: d}
	}
	if p := Novelty(values); p <= threshold {
		return p, Pattern{Values: d}
	}
	p1, prefixes := trimValues(values, true, threshold)
	p2, suffixes := trimValues(values, false, threshold)
	return min(p1, p2), Pattern{Open: true, Prefixes: prefixes, Suffixes: suffixes}
}

// trimValues shortens every value to one character less than the current
// longest, keeping prefixes or suffixes, until the novelty of the trimmed
// set is at or below threshold or nothing is left.
func trimValues(values []string, keepPrefix bool, threshold float64) (float64, []string) {
	cur := make([][]rune, len(values))
	for i, v := range values {
		cur[i] = []rune(v)
	}
	p := 1.0
	for p > threshold {
		longest := 0
		for _, r := range cur {
			longest = max(longest, len(r))
		}
		if longest == 0 {
			break
		}
		strs := make([]string, len(cur))
		for i, r := range cur {
			if len(r) > longest-1 {
				if keepPrefix {
					r = r[:longest-1]
				} else {
					r = r[len(r)-(longest-1):]
				}
			}
			cur[i] = r
			strs[i] = string(r)
		}
		p = Novelty(strs)
	}
	out := make([]string, len(cur))
	for i, r := range cur {
		out[i] = string(r)
	}
	return p, distinct(out)
}
