package fst

import (
	"iter"
)

// Apply returns the output strings f produces for input. The sequence is
// computed lazily, contains no duplicates and can be ranged over again.
func (f *FST) Apply(input string) iter.Seq[string] {
	in := []rune(input)
	return func(yield func(string) bool) {
		type step struct {
			state int
			pos   int
			out   []rune
			// eps counts consecutive moves that consumed no input; it bounds
			// the search on cycles whose input side is empty.
			eps int
		}
		seen := make(map[string]bool)
		stack := []step{{state: f.start}}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			st := f.states[cur.state]
			if cur.pos == len(in) && st.final {
				s := string(cur.out)
				if !seen[s] {
					seen[s] = true
					if !yield(s) {
						return
					}
				}
			}
			for i := len(st.arcs) - 1; i >= 0; i-- {
				a := st.arcs[i]
				next := step{state: a.To, pos: cur.pos, out: cur.out}
				if a.Label.In == Epsilon {
					if cur.eps >= len(f.states) {
						continue
					}
					next.eps = cur.eps + 1
				} else {
					if cur.pos >= len(in) || in[cur.pos] != a.Label.In {
						continue
					}
					next.pos++
				}
				if a.Label.Out != Epsilon {
					next.out = append(cur.out[:len(cur.out):len(cur.out)], a.Label.Out)
				}
				stack = append(stack, next)
			}
		}
	}
}

// Accepts reports whether input is in the input language of f.
func (f *FST) Accepts(input string) bool {
	cur := f.inputClosure(map[int]bool{f.start: true})
	for _, r := range input {
		next := make(map[int]bool)
		for s := range cur {
			for _, a := range f.states[s].arcs {
				if a.Label.In == r {
					next[a.To] = true
				}
			}
		}
		if len(next) == 0 {
			return false
		}
		cur = f.inputClosure(next)
	}
	for s := range cur {
		if f.states[s].final {
			return true
		}
	}
	return false
}

// inputClosure extends set with every state reachable through arcs whose
// input side is empty.
func (f *FST) inputClosure(set map[int]bool) map[int]bool {
	stack := make([]int, 0, len(set))
	for s := range set {
		stack = append(stack, s)
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, a := range f.states[s].arcs {
			if a.Label.In == Epsilon && !set[a.To] {
				set[a.To] = true
				stack = append(stack, a.To)
			}
		}
	}
	return set
}
