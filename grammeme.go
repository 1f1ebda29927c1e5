package paradigma

import (
	"slices"
	"strings"
)

// NoneTag is the only tag of a grammeme built from no features,
// the usual grammeme of a root morpheme.
const NoneTag = "none"

// Grammeme is an immutable, order-insensitive set of grammatical feature
// tags. Two grammemes are equal when they hold the same tags; the
// insertion order is kept only for display.
type Grammeme struct {
	// tags in first-seen order, without duplicates.
	tags []string
	// key is the sorted, "|"-joined tag set used for equality and hashing.
	key string
}

// NewGrammeme builds a grammeme from tags. Empty tags are dropped; an empty
// set becomes the singleton NoneTag.
func NewGrammeme(tags ...string) Grammeme {
	seen := make(map[string]bool, len(tags))
	var kept []string
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		kept = append(kept, t)
	}
	if len(kept) == 0 {
		kept = []string{NoneTag}
	}
	sorted := slices.Clone(kept)
	slices.Sort(sorted)
	return Grammeme{tags: kept, key: strings.Join(sorted, "|")}
}

// ParseGrammeme splits a "|"-separated tag string, e.g. "1|s|pres|actv|indc".
func ParseGrammeme(s string) Grammeme {
	return NewGrammeme(strings.Split(s, "|")...)
}

// Tags returns a copy of the tags in display order.
func (g Grammeme) Tags() []string {
	if g.tags == nil {
		return []string{NoneTag}
	}
	return slices.Clone(g.tags)
}

// Key returns the canonical identity of the tag set.
func (g Grammeme) Key() string {
	if g.key == "" {
		return NoneTag
	}
	return g.key
}

// IsNone reports whether g carries no real feature.
func (g Grammeme) IsNone() bool {
	return g.Key() == NoneTag
}

// Has reports whether tag belongs to g.
func (g Grammeme) Has(tag string) bool {
	return slices.Contains(g.Tags(), tag)
}

// Equal reports tag-set identity.
func (g Grammeme) Equal(o Grammeme) bool {
	return g.Key() == o.Key()
}

// Difference returns the tags of g that are not in o.
func (g Grammeme) Difference(o Grammeme) Grammeme {
	var out []string
	for _, t := range g.Tags() {
		if !o.Has(t) {
			out = append(out, t)
		}
	}
	return NewGrammeme(out...)
}

// Intersection returns the tags of g that are also in o.
func (g Grammeme) Intersection(o Grammeme) Grammeme {
	var out []string
	for _, t := range g.Tags() {
		if o.Has(t) {
			out = append(out, t)
		}
	}
	return NewGrammeme(out...)
}

// Union returns the tags of g followed by the tags of o not already in g.
// NoneTag is absorbed by any real feature.
func (g Grammeme) Union(o Grammeme) Grammeme {
	var out []string
	for _, t := range append(g.Tags(), o.Tags()...) {
		if t != NoneTag {
			out = append(out, t)
		}
	}
	return NewGrammeme(out...)
}

// String renders the tags in display order joined by "|".
func (g Grammeme) String() string {
	return strings.Join(g.Tags(), "|")
}
