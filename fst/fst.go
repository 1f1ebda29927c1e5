// Package fst is a small finite-state transducer engine: construction
// from an algebraic expression, union and concatenation, epsilon removal,
// determinization, minimization and lookup.
//
// Every transition carries an (input, output) label pair. Determinization
// and minimization treat the pair as one atomic symbol, so they preserve
// the relation the transducer encodes without requiring it to be
// functional.
package fst

import (
	"sort"
)

// Epsilon marks an empty side of a label.
const Epsilon rune = -1

// Label is the (input, output) pair carried by a transition.
type Label struct {
	In  rune
	Out rune
}

// IsEpsilon reports whether both sides of the label are empty.
func (l Label) IsEpsilon() bool {
	return l.In == Epsilon && l.Out == Epsilon
}

func (l Label) less(o Label) bool {
	if l.In != o.In {
		return l.In < o.In
	}
	return l.Out < o.Out
}

// Arc is a labelled transition to state To.
type Arc struct {
	Label Label
	To    int
}

type state struct {
	final bool
	arcs  []Arc
}

// FST is an immutable transducer. All operations return a new value.
type FST struct {
	start  int
	states []state
}

// Empty returns a transducer accepting nothing.
func Empty() *FST {
	return &FST{states: []state{{}}}
}

// EpsilonFST returns a transducer accepting only the empty pair.
func EpsilonFST() *FST {
	return &FST{states: []state{{final: true}}}
}

// Symbol returns a transducer mapping in to out. Either side may be Epsilon.
func Symbol(in, out rune) *FST {
	return symbolSet([]Label{{In: in, Out: out}})
}

// Identity returns a transducer accepting exactly s, mapped to itself.
func Identity(s string) *FST {
	f := &FST{states: []state{{}}}
	cur := 0
	for _, r := range s {
		f.states = append(f.states, state{})
		next := len(f.states) - 1
		f.states[cur].arcs = append(f.states[cur].arcs, Arc{Label: Label{In: r, Out: r}, To: next})
		cur = next
	}
	f.states[cur].final = true
	return f
}

// symbolSet builds a two-state transducer with one arc per label.
func symbolSet(labels []Label) *FST {
	f := &FST{states: []state{{}, {final: true}}}
	for _, l := range labels {
		f.states[0].arcs = append(f.states[0].arcs, Arc{Label: l, To: 1})
	}
	return f
}

// NumStates returns the number of states.
func (f *FST) NumStates() int { return len(f.states) }

// NumArcs returns the total number of transitions.
func (f *FST) NumArcs() int {
	n := 0
	for _, s := range f.states {
		n += len(s.arcs)
	}
	return n
}

// copyInto appends the states of src to dst and returns the offset applied
// to src's state numbers.
func copyInto(dst *FST, src *FST) int {
	off := len(dst.states)
	for _, s := range src.states {
		arcs := make([]Arc, len(s.arcs))
		for i, a := range s.arcs {
			arcs[i] = Arc{Label: a.Label, To: a.To + off}
		}
		dst.states = append(dst.states, state{final: s.final, arcs: arcs})
	}
	return off
}

func (f *FST) addArc(from int, l Label, to int) {
	f.states[from].arcs = append(f.states[from].arcs, Arc{Label: l, To: to})
}

var epsilon = Label{In: Epsilon, Out: Epsilon}

// Union returns a transducer for the union of the relations of a and b.
func Union(a, b *FST) *FST {
	f := &FST{states: []state{{}}}
	oa := copyInto(f, a)
	ob := copyInto(f, b)
	f.addArc(0, epsilon, a.start+oa)
	f.addArc(0, epsilon, b.start+ob)
	return f
}

// Concat returns a transducer for the concatenation of a and b.
func Concat(a, b *FST) *FST {
	f := &FST{}
	oa := copyInto(f, a)
	ob := copyInto(f, b)
	f.start = a.start + oa
	for i := oa; i < ob; i++ {
		if f.states[i].final {
			f.states[i].final = false
			f.addArc(i, epsilon, b.start+ob)
		}
	}
	return f
}

// Star returns the Kleene closure of a.
func Star(a *FST) *FST {
	f := &FST{states: []state{{final: true}}}
	off := copyInto(f, a)
	f.addArc(0, epsilon, a.start+off)
	for i := off; i < len(f.states); i++ {
		if f.states[i].final {
			f.addArc(i, epsilon, 0)
		}
	}
	return f
}

// Plus returns one or more repetitions of a.
func Plus(a *FST) *FST {
	return Concat(a, Star(a))
}

// Optional returns a or the empty pair.
func Optional(a *FST) *FST {
	return Union(a, EpsilonFST())
}

// mapLabels rewrites every label of a through fn.
func mapLabels(a *FST, fn func(Label) Label) *FST {
	f := &FST{start: a.start, states: make([]state, len(a.states))}
	for i, s := range a.states {
		arcs := make([]Arc, len(s.arcs))
		for j, arc := range s.arcs {
			arcs[j] = Arc{Label: fn(arc.Label), To: arc.To}
		}
		f.states[i] = state{final: s.final, arcs: arcs}
	}
	return f
}

// Cross returns the cross product of the input language of a and the
// output language of b: every string of a maps to every string of b.
func Cross(a, b *FST) *FST {
	left := mapLabels(a, func(l Label) Label { return Label{In: l.In, Out: Epsilon} })
	right := mapLabels(b, func(l Label) Label { return Label{In: Epsilon, Out: l.Out} })
	return Concat(left, right)
}

// Normalize removes epsilons, determinizes and minimizes f.
func (f *FST) Normalize() *FST {
	return f.EpsilonRemove().Determinize().Minimize()
}

// sortedArcs returns a copy of arcs ordered by label then target.
func sortedArcs(arcs []Arc) []Arc {
	out := append([]Arc(nil), arcs...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Label != out[j].Label {
			return out[i].Label.less(out[j].Label)
		}
		return out[i].To < out[j].To
	})
	return out
}
