package paradigma

import (
	"strings"
)

// demacronizeReplacer rewrites macron vowels as the bare vowel followed by
// a hyphen, the notation the transducer alphabet is built on. Breves mark
// short vowels, which is the default, so they are dropped.
var demacronizeReplacer = strings.NewReplacer(
	"\u0101", "a-", // ā
	"\u0113", "e-", // ē
	"\u012b", "i-", // ī
	"\u014d", "o-", // ō
	"\u016b", "u-", // ū
	"\u0233", "y-", // ȳ
	"\u0100", "A-", // Ā
	"\u0112", "E-", // Ē
	"\u012a", "I-", // Ī
	"\u014c", "O-", // Ō
	"\u016a", "U-", // Ū
	"\u0232", "Y-", // Ȳ
	"\u0103", "a", // ă
	"\u0115", "e", // ĕ
	"\u012d", "i", // ĭ
	"\u014f", "o", // ŏ
	"\u016d", "u", // ŭ
	"\u0306", "", // combining breve
)

// remacronizeReplacer is the inverse of demacronizeReplacer for long vowels.
var remacronizeReplacer = strings.NewReplacer(
	"a-", "ā",
	"e-", "ē",
	"i-", "ī",
	"o-", "ō",
	"u-", "ū",
	"y-", "ȳ",
	"A-", "Ā",
	"E-", "Ē",
	"I-", "Ī",
	"O-", "Ō",
	"U-", "Ū",
	"Y-", "Ȳ",
)

// Demacronize writes long vowels in hyphen notation: "amō" → "amo-".
func Demacronize(s string) string {
	return demacronizeReplacer.Replace(s)
}

// Remacronize turns hyphen notation back into macrons: "amo-" → "amō".
func Remacronize(s string) string {
	return remacronizeReplacer.Replace(s)
}

// NormalizeForm prepares a surface form for analysis: trimmed, lowercased,
// long vowels in hyphen notation.
func NormalizeForm(s string) string {
	return Demacronize(strings.ToLower(strings.TrimSpace(s)))
}
