// Copyright 2024, The srcomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package srcomp

import (
	"reflect"
	"testing"

	"github.com/System25/srcomp/internal/testutil"
)

func TestCompressDecompressBlockRoundTrip(t *testing.T) {
	rng := testutil.NewRand(7)
	for _, usePreviousByte := range []bool{false, true} {
		for _, l := range []int{1, 2, 17, 512, 4097} {
			words := make([]word, l)
			for i := range words {
				words[i] = word(rng.Intn(1 << 16))
			}

			payload, lastByte := compressBlock(words, usePreviousByte)
			got, err := decompressBlock(payload, words[l-1], lastByte, l, usePreviousByte)
			if err != nil {
				t.Fatalf("p=%v l=%d: unexpected error: %v", usePreviousByte, l, err)
			}
			if !reflect.DeepEqual(got, words) {
				t.Fatalf("p=%v l=%d: round trip mismatch", usePreviousByte, l)
			}
		}
	}
}

func TestCompressBlockUniformInputWorstCase(t *testing.T) {
	// All-0xFFFF words make the first MTF rank 255, whose Elias-gamma code
	// has the 17-bit maximum width; every later byte repeats it and codes as
	// rank 0 (a 1-bit code), so the payload stays well below the capacity
	// bound in compressBlock.
	l := 1000
	words := make([]word, l)
	for i := range words {
		words[i] = 0xFFFF
	}
	payload, lastByte := compressBlock(words, false)
	got, err := decompressBlock(payload, words[l-1], lastByte, l, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, words) {
		t.Fatalf("round trip mismatch")
	}
}

func TestDecompressBlockTruncatedPayload(t *testing.T) {
	_, lastByte := compressBlock([]word{1, 2, 3}, false)
	if _, err := decompressBlock(nil, 3, lastByte, 3, false); err == nil {
		t.Fatalf("expected an error decoding an empty payload")
	}
}
