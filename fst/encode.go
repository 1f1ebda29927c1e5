package fst

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

type wireFST struct {
	Start int
	Final []bool
	Arcs  [][]Arc
}

// MarshalBinary encodes f with encoding/gob.
func (f *FST) MarshalBinary() ([]byte, error) {
	w := wireFST{Start: f.start, Final: make([]bool, len(f.states)), Arcs: make([][]Arc, len(f.states))}
	for i, s := range f.states {
		w.Final[i] = s.final
		w.Arcs[i] = s.arcs
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(w); err != nil {
		return nil, fmt.Errorf("encode fst: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes data produced by MarshalBinary into f.
func (f *FST) UnmarshalBinary(data []byte) error {
	var w wireFST
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return fmt.Errorf("decode fst: %w", err)
	}
	if len(w.Final) != len(w.Arcs) || len(w.Final) == 0 || w.Start < 0 || w.Start >= len(w.Final) {
		return fmt.Errorf("decode fst: inconsistent state table")
	}
	states := make([]state, len(w.Final))
	for i := range states {
		for _, a := range w.Arcs[i] {
			if a.To < 0 || a.To >= len(states) {
				return fmt.Errorf("decode fst: arc target %d out of range", a.To)
			}
		}
		states[i] = state{final: w.Final[i], arcs: w.Arcs[i]}
	}
	f.start = w.Start
	f.states = states
	return nil
}
