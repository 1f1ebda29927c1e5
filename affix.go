package paradigma

import (
	"strings"
)

// Segment walks form against skeleton and returns one affix string per gap
// of the skeleton. A gap opens a new slot; matching characters advance both
// strings; any other form character goes to the open slot; whatever is left
// of the form once the skeleton is exhausted goes to the last slot. A walk
// that puts characters into a slot lying before an already matched literal
// does not reassemble into form and is reported as an underflow.
//
// For "gesungen" against "_s_ng_" the slots are "ge", "u", "en"; for "sang"
// they are "", "a", "".
func Segment(form, skeleton string) ([]string, error) {
	f, s := []rune(form), []rune(skeleton)
	var slots [][]rune
	underflow := func() ([]string, error) {
		return nil, &AlignmentUnderflowError{Form: form, Skeleton: skeleton}
	}

	fi := 0
	for si := 0; si < len(s); {
		switch {
		case s[si] == Gap:
			slots = append(slots, []rune{})
			si++
		case fi >= len(f):
			return underflow()
		case s[si] == f[fi]:
			si++
			fi++
		case len(slots) == 0:
			return underflow()
		default:
			slots[len(slots)-1] = append(slots[len(slots)-1], f[fi])
			fi++
		}
	}
	if fi < len(f) {
		if len(slots) == 0 {
			return underflow()
		}
		slots[len(slots)-1] = append(slots[len(slots)-1], f[fi:]...)
	}

	out := make([]string, len(slots))
	for i := range slots {
		out[i] = string(slots[i])
	}
	if Reassemble(skeleton, out) != form {
		return underflow()
	}
	return out, nil
}

// Reassemble fills the gaps of skeleton with affix slots in order; it is the
// inverse of Segment. Missing slots are treated as empty.
func Reassemble(skeleton string, slots []string) string {
	var b strings.Builder
	k := 0
	for _, r := range skeleton {
		if r != Gap {
			b.WriteRune(r)
			continue
		}
		if k < len(slots) {
			b.WriteString(slots[k])
		}
		k++
	}
	return b.String()
}

// joinSlots renders affix slots as a morpheme form.
func joinSlots(slots []string) string {
	return strings.Join(slots, string(Gap))
}

// splitSlots is the inverse of joinSlots.
func splitSlots(form string) []string {
	return strings.Split(form, string(Gap))
}
