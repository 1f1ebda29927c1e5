package fst

import (
	"sort"
	"strconv"
)

// EpsilonRemove returns an equivalent transducer without (ε:ε) arcs.
// Arcs with only one empty side are ordinary symbols and are kept.
func (f *FST) EpsilonRemove() *FST {
	out := &FST{start: f.start, states: make([]state, len(f.states))}
	for i := range f.states {
		seen := make(map[Arc]bool)
		for _, c := range f.closure(i) {
			if f.states[c].final {
				out.states[i].final = true
			}
			for _, a := range f.states[c].arcs {
				if a.Label.IsEpsilon() || seen[a] {
					continue
				}
				seen[a] = true
				out.states[i].arcs = append(out.states[i].arcs, a)
			}
		}
	}
	return out.trim()
}

// closure returns the states reachable from s through (ε:ε) arcs, s included.
func (f *FST) closure(s int) []int {
	visited := map[int]bool{s: true}
	stack := []int{s}
	out := []int{s}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, a := range f.states[cur].arcs {
			if a.Label.IsEpsilon() && !visited[a.To] {
				visited[a.To] = true
				stack = append(stack, a.To)
				out = append(out, a.To)
			}
		}
	}
	return out
}

func (f *FST) hasEpsilon() bool {
	for _, s := range f.states {
		for _, a := range s.arcs {
			if a.Label.IsEpsilon() {
				return true
			}
		}
	}
	return false
}

// IsDeterministic reports whether f has no (ε:ε) arcs and no state with
// two arcs sharing a label.
func (f *FST) IsDeterministic() bool {
	for _, s := range f.states {
		seen := make(map[Label]bool, len(s.arcs))
		for _, a := range s.arcs {
			if a.Label.IsEpsilon() || seen[a.Label] {
				return false
			}
			seen[a.Label] = true
		}
	}
	return true
}

// Determinize applies the subset construction over label pairs.
func (f *FST) Determinize() *FST {
	g := f
	if g.hasEpsilon() {
		g = g.EpsilonRemove()
	}

	out := &FST{}
	index := make(map[string]int)
	var queue [][]int

	add := func(set []int) int {
		k := setKey(set)
		if id, ok := index[k]; ok {
			return id
		}
		final := false
		for _, s := range set {
			if g.states[s].final {
				final = true
				break
			}
		}
		id := len(out.states)
		index[k] = id
		out.states = append(out.states, state{final: final})
		queue = append(queue, set)
		return id
	}
	add([]int{g.start})

	for qi := 0; qi < len(queue); qi++ {
		targets := make(map[Label]map[int]bool)
		for _, s := range queue[qi] {
			for _, a := range g.states[s].arcs {
				if targets[a.Label] == nil {
					targets[a.Label] = make(map[int]bool)
				}
				targets[a.Label][a.To] = true
			}
		}
		labels := make([]Label, 0, len(targets))
		for l := range targets {
			labels = append(labels, l)
		}
		sort.Slice(labels, func(i, j int) bool { return labels[i].less(labels[j]) })
		for _, l := range labels {
			set := make([]int, 0, len(targets[l]))
			for s := range targets[l] {
				set = append(set, s)
			}
			sort.Ints(set)
			id := add(set)
			out.addArc(qi, l, id)
		}
	}
	return out
}

func setKey(set []int) string {
	b := make([]byte, 0, len(set)*4)
	for i, s := range set {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(s), 10)
	}
	return string(b)
}

// Minimize returns the minimal deterministic transducer for f, computed by
// partition refinement. Non-deterministic input is determinized first.
func (f *FST) Minimize() *FST {
	g := f
	if !g.IsDeterministic() {
		g = g.Determinize()
	}
	g = g.trim()
	n := len(g.states)

	class := make([]int, n)
	classes := 0
	hasFinal, hasNonFinal := false, false
	for i, s := range g.states {
		if s.final {
			class[i] = 1
			hasFinal = true
		} else {
			hasNonFinal = true
		}
	}
	if hasFinal {
		classes++
	}
	if hasNonFinal {
		classes++
	}

	sorted := make([][]Arc, n)
	for i, s := range g.states {
		sorted[i] = sortedArcs(s.arcs)
	}

	for {
		sigs := make(map[string]int)
		next := make([]int, n)
		for i := range g.states {
			b := strconv.AppendInt(nil, int64(class[i]), 10)
			for _, a := range sorted[i] {
				b = append(b, '|')
				b = strconv.AppendInt(b, int64(a.Label.In), 10)
				b = append(b, ':')
				b = strconv.AppendInt(b, int64(a.Label.Out), 10)
				b = append(b, '>')
				b = strconv.AppendInt(b, int64(class[a.To]), 10)
			}
			k := string(b)
			id, ok := sigs[k]
			if !ok {
				id = len(sigs)
				sigs[k] = id
			}
			next[i] = id
		}
		class = next
		if len(sigs) == classes {
			break
		}
		classes = len(sigs)
	}

	out := &FST{start: class[g.start], states: make([]state, classes)}
	done := make([]bool, classes)
	for i, s := range g.states {
		c := class[i]
		if done[c] {
			continue
		}
		done[c] = true
		out.states[c].final = s.final
		for _, a := range sorted[i] {
			out.addArc(c, a.Label, class[a.To])
		}
	}
	return out.trim()
}

// trim drops states that are unreachable from the start or cannot reach a
// final state, and renumbers the rest in breadth-first order.
func (f *FST) trim() *FST {
	n := len(f.states)
	rev := make([][]int, n)
	for i, s := range f.states {
		for _, a := range s.arcs {
			rev[a.To] = append(rev[a.To], i)
		}
	}
	coacc := make([]bool, n)
	var stack []int
	for i, s := range f.states {
		if s.final {
			coacc[i] = true
			stack = append(stack, i)
		}
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range rev[cur] {
			if !coacc[p] {
				coacc[p] = true
				stack = append(stack, p)
			}
		}
	}
	if !coacc[f.start] {
		return Empty()
	}

	remap := make([]int, n)
	for i := range remap {
		remap[i] = -1
	}
	order := []int{f.start}
	remap[f.start] = 0
	for qi := 0; qi < len(order); qi++ {
		for _, a := range sortedArcs(f.states[order[qi]].arcs) {
			if coacc[a.To] && remap[a.To] < 0 {
				remap[a.To] = len(order)
				order = append(order, a.To)
			}
		}
	}

	out := &FST{states: make([]state, len(order))}
	for newID, old := range order {
		s := f.states[old]
		out.states[newID].final = s.final
		for _, a := range sortedArcs(s.arcs) {
			if remap[a.To] >= 0 {
				out.addArc(newID, a.Label, remap[a.To])
			}
		}
	}
	return out
}

// Equivalent reports whether a and b encode the same set of
// (input, output) pairs when labels are read as atomic symbols.
func Equivalent(a, b *FST) bool {
	ma, mb := a.Minimize(), b.Minimize()
	if len(ma.states) != len(mb.states) {
		return false
	}
	pair := map[int]int{ma.start: mb.start}
	queue := []int{ma.start}
	for qi := 0; qi < len(queue); qi++ {
		sa := queue[qi]
		sb := pair[sa]
		if ma.states[sa].final != mb.states[sb].final {
			return false
		}
		arcsA := sortedArcs(ma.states[sa].arcs)
		arcsB := sortedArcs(mb.states[sb].arcs)
		if len(arcsA) != len(arcsB) {
			return false
		}
		for i := range arcsA {
			if arcsA[i].Label != arcsB[i].Label {
				return false
			}
			if t, ok := pair[arcsA[i].To]; ok {
				if t != arcsB[i].To {
					return false
				}
				continue
			}
			pair[arcsA[i].To] = arcsB[i].To
			queue = append(queue, arcsA[i].To)
		}
	}
	return true
}
