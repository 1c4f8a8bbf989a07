// Copyright 2024, The srcomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package srcomp

import (
	"github.com/System25/srcomp/internal/bitio"
	"github.com/System25/srcomp/internal/mtf"
)

// maxGammaBits bounds the width of an Elias-gamma code for any value this
// pipeline ever encodes: bytes are shifted into 1..256 before coding, and
// 256 (e=8) is the widest case, costing 2*8+1 bits.
const maxGammaBits = 17

// bytesToWords reinterprets a 2L-byte buffer as L big-endian words: the
// first byte of each pair is the more significant half.
func bytesToWords(data []byte) []word {
	l := len(data) / 2
	words := make([]word, l)
	for i := range words {
		words[i] = makeWord(data[2*i], data[2*i+1])
	}
	return words
}

// wordsToBytes is the inverse of bytesToWords, writing into a
// caller-supplied 2*len(words)-byte buffer.
func wordsToBytes(words []word, out []byte) {
	for i, w := range words {
		out[2*i] = w.high()
		out[2*i+1] = w.low()
	}
}

// compressBlock runs the five-stage pipeline over an L-word block and
// returns the packed code elements plus the side-band last byte the
// decoder needs. words must be non-empty.
func compressBlock(words []word, usePreviousByte bool) (payload []uint32, lastByte byte) {
	l := len(words)
	if l == 0 {
		panic(errorf(InvalidArgument, "empty block"))
	}

	var state mtf.State
	state.Reset()

	permuted := make([]word, l)
	separateWords(words, permuted, usePreviousByte)
	lastByte = permuted[l-1].low()

	split := make([]byte, 2*l)
	separateBytes(permuted, split)

	coded := make([]byte, 2*l)
	mtf.Code(split, coded, &state)

	maxElems := (2*l*maxGammaBits+bitio.ElementBits-1)/bitio.ElementBits + 1
	data := make([]uint32, maxElems)
	var bb bitio.BitBuffer
	bb.Init(data)
	for _, b := range coded {
		if err := bb.WriteEG(uint32(b) + 1); err != nil {
			// b+1 is always in [1,256]; WriteEG only rejects 0.
			panic(errorf(InvalidArgument, err.Error()))
		}
	}
	bb.Flush()

	return data[:bb.Len()], lastByte
}

// decompressBlock reverses compressBlock. payload must hold exactly 2*l
// Elias-gamma codes; l is the word count recorded in the block header.
func decompressBlock(payload []uint32, lastWord word, lastByte byte, l int, usePreviousByte bool) ([]word, error) {
	if l == 0 {
		return nil, errorf(InvalidArgument, "empty block")
	}

	var bb bitio.BitBuffer
	bb.Init(payload)

	coded := make([]byte, 2*l)
	for i := range coded {
		v, err := bb.ReadEG()
		if err != nil {
			if err == bitio.ErrTruncated {
				return nil, errorf(Truncated, "short elias-gamma stream")
			}
			return nil, errorf(CorruptBlock, err.Error())
		}
		// v == 0 cannot arise from a well-formed gamma code; guarded here to
		// honor the documented failure mode for a corrupted stream.
		if v == 0 || v > 256 {
			return nil, errorf(CorruptBlock, "elias-gamma value out of byte range")
		}
		coded[i] = byte(v - 1)
	}

	var state mtf.State
	state.Reset()
	split := make([]byte, 2*l)
	mtf.Decode(coded, split, &state)

	permuted := make([]word, l)
	joinBytes(split, permuted, lastByte)

	words := make([]word, l)
	joinWords(permuted, words, lastWord, usePreviousByte)

	return words, nil
}
