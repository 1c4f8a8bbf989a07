// Copyright 2024, The srcomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mtf implements a Move-To-Front transducer over the full 256-byte
// alphabet, maintaining both directions of the permutation so that coding
// and decoding a symbol are each a single promotion away from the other.
package mtf

const (
	numSymbols = 256
	lastSymbol = numSymbols - 1
)

// State holds a Move-To-Front permutation: symbols maps position to symbol
// and distances maps symbol to position. The two are always mutual inverses:
// symbols[lastSymbol-distances[c]] == c for every byte c. The most recently
// coded or decoded symbol always sits at position lastSymbol (distance 0).
type State struct {
	symbols   [numSymbols]uint8 // position -> symbol
	distances [numSymbols]uint8 // symbol -> position (= rank, 0 most recent)
}

// Reset restores the canonical initial permutation: symbols[i] = 255-i,
// distances[c] = c.
func (s *State) Reset() {
	for i := 0; i < numSymbols; i++ {
		s.distances[i] = uint8(i)
		s.symbols[i] = uint8(lastSymbol - i)
	}
}

// touch promotes the symbol at pos to the front (position lastSymbol),
// shifting the symbols above it down by one slot, and keeps distances in
// step with the new layout. It returns the promoted symbol.
func (s *State) touch(pos int) uint8 {
	c := s.symbols[pos]
	copy(s.symbols[pos:lastSymbol], s.symbols[pos+1:])
	s.symbols[lastSymbol] = c
	for i := pos; i <= lastSymbol; i++ {
		s.distances[s.symbols[i]] = uint8(lastSymbol - i)
	}
	return c
}

// Code writes dst[i] = rank(src[i]), the current MTF distance of each byte,
// promoting it to the front of the recency list after each step.
func Code(src, dst []byte, s *State) {
	for i, c := range src {
		d := s.distances[c]
		dst[i] = d
		s.touch(lastSymbol - int(d))
	}
}

// Decode reverses Code: dst[i] = symbols[lastSymbol-src[i]], then promotes
// that symbol to the front.
func Decode(src, dst []byte, s *State) {
	for i, d := range src {
		dst[i] = s.touch(lastSymbol - int(d))
	}
}
