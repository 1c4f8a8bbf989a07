// Copyright 2024, The srcomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package srcomp

import (
	"reflect"
	"testing"

	"github.com/System25/srcomp/internal/testutil"
)

func TestSeparateJoinBytesRoundTrip(t *testing.T) {
	vectors := [][]word{
		{0x0000},
		{0x0102, 0x0304, 0x0102, 0x0506},
		{0xFF00, 0x00FF, 0xFFFF, 0x0000, 0xFF00},
	}

	for i, v := range vectors {
		l := len(v)
		split := make([]byte, 2*l)
		separateBytes(v, split)

		joined := make([]word, l)
		joinBytes(split, joined, v[l-1].low())

		if !reflect.DeepEqual(joined, v) {
			t.Errorf("test %d: got %v, want %v", i, joined, v)
		}
	}
}

func TestSeparateBytesColumnLayout(t *testing.T) {
	words := []word{makeWord(1, 10), makeWord(0, 20), makeWord(1, 30)}
	dst := make([]byte, 6)
	separateBytes(words, dst)

	wantHigh := []byte{1, 0, 1}
	if !reflect.DeepEqual(dst[:3], wantHigh) {
		t.Errorf("high column: got %v, want %v", dst[:3], wantHigh)
	}

	// The low column is grouped by high-byte key, stable within each group:
	// high==0 comes first (just word[1]'s low byte, 20), then high==1's
	// low bytes in original order (10, 30).
	wantLow := []byte{20, 10, 30}
	if !reflect.DeepEqual(dst[3:], wantLow) {
		t.Errorf("low column: got %v, want %v", dst[3:], wantLow)
	}
}

func TestSeparateJoinBytesRandom(t *testing.T) {
	rng := testutil.NewRand(1)
	for trial := 0; trial < 20; trial++ {
		l := 1 + rng.Intn(500)
		words := make([]word, l)
		for i := range words {
			words[i] = word(rng.Intn(1 << 16))
		}

		split := make([]byte, 2*l)
		separateBytes(words, split)

		joined := make([]word, l)
		joinBytes(split, joined, words[l-1].low())

		if !reflect.DeepEqual(joined, words) {
			t.Fatalf("trial %d: round trip mismatch", trial)
		}
	}
}
