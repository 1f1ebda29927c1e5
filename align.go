package paradigma

import (
	"slices"
	"strings"
)

// Gap marks an affix position in a stem skeleton and separates affix slots
// in an affix morpheme.
const Gap = '_'

// lcsTable fills the classic longest-common-subsequence table of a and b:
// t[i][j] is the LCS length of a[:i] and b[:j].
func lcsTable(a, b []rune) [][]int {
	t := make([][]int, len(a)+1)
	for i := range t {
		t[i] = make([]int, len(b)+1)
	}
	for i := range a {
		for j := range b {
			if a[i] == b[j] {
				t[i+1][j+1] = t[i][j] + 1
			} else {
				t[i+1][j+1] = max(t[i+1][j], t[i][j+1])
			}
		}
	}
	return t
}

// backtrack walks t from the bottom-right corner and returns the common
// subsequence of a and b with one Gap wherever characters of either string
// are skipped. Runs of skips collapse into a single Gap, and Gaps already
// present in the inputs open a gap as well.
func backtrack(t [][]int, a, b []rune) string {
	var rev []rune
	inGap := false
	gap := func() {
		if !inGap {
			inGap = true
			rev = append(rev, Gap)
		}
	}

	i, j := len(a), len(b)
	for {
		switch {
		case i == 0 || j == 0:
			if i != j {
				gap()
			}
			slices.Reverse(rev)
			return string(rev)
		case a[i-1] == Gap:
			gap()
			i--
		case b[j-1] == Gap:
			gap()
			j--
		case a[i-1] == b[j-1]:
			inGap = false
			rev = append(rev, a[i-1])
			i--
			j--
		case t[i][j-1] > t[i-1][j]:
			gap()
			j--
		default:
			gap()
			i--
		}
	}
}

// PairLCS aligns two strings left to right.
func PairLCS(a, b string) string {
	ra, rb := []rune(a), []rune(b)
	return backtrack(lcsTable(ra, rb), ra, rb)
}

// ReversedLCS aligns the reversals of a and b and reverses the result, which
// favours suffix-anchored alignments.
func ReversedLCS(a, b string) string {
	return reverse(PairLCS(reverse(a), reverse(b)))
}

func reverse(s string) string {
	r := []rune(s)
	slices.Reverse(r)
	return string(r)
}

// solidLen counts the non-gap characters of a skeleton.
func solidLen(s string) int {
	return len([]rune(s)) - strings.Count(s, string(Gap))
}

// BetterSkeleton picks between two candidate alignments: more non-gap
// characters wins, then fewer gaps, then the one not ending on a gap.
// Remaining ties go to a.
func BetterSkeleton(a, b string) string {
	if a == b {
		return a
	}
	if la, lb := solidLen(a), solidLen(b); la != lb {
		if la > lb {
			return a
		}
		return b
	}
	ga, gb := strings.Count(a, string(Gap)), strings.Count(b, string(Gap))
	if ga != gb {
		if ga < gb {
			return a
		}
		return b
	}
	if strings.HasSuffix(a, string(Gap)) && !strings.HasSuffix(b, string(Gap)) {
		return b
	}
	return a
}

// Align folds the forms into one gapped skeleton shared by all of them. The
// last two forms are aligned first, and the result takes their place until
// one skeleton remains. No forms give "", a single form is returned as is.
func Align(forms []string) string {
	if len(forms) == 0 {
		return ""
	}
	acc := forms[len(forms)-1]
	for i := len(forms) - 2; i >= 0; i-- {
		acc = BetterSkeleton(PairLCS(forms[i], acc), ReversedLCS(forms[i], acc))
	}
	return acc
}
