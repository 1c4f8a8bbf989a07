// Copyright 2024, The srcomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package srcomp

// numContexts is the number of predecessor contexts a word can fall under:
// every possible 16-bit word value.
const numContexts = 1 << 16

// medianNeutral is the initial value of each context's tracked median: the
// midpoint of a byte's range, biasing the first decision in either
// direction equally likely.
const medianNeutral = 127

// separateWords groups src, a length-L word stream, by the value of the
// predecessor word: dst[cursor[ctx]++] = src[i], where ctx is src[i-1] (0
// for i == 0) and cursor starts at the stable-counting-sort offset of each
// context.
//
// When usePreviousByte is set, each context is split into two growing
// cursors, front and back, and a per-context median of the low byte of the
// context-before-the-context tracks which cursor a word's context routes
// it to; the median nudges toward that low byte after every decision.
func separateWords(src, dst []word, usePreviousByte bool) {
	l := len(src)

	var count [numContexts]int
	for _, w := range src {
		count[w]++
	}
	// The last word is never itself used as a context; position 0 always
	// uses the synthetic context 0.
	count[src[l-1]]--
	count[0]++

	var front [numContexts]int
	for c := 1; c < numContexts; c++ {
		front[c] = front[c-1] + count[c-1]
	}

	var back []int
	var median []byte
	if usePreviousByte {
		back = make([]int, numContexts)
		back[numContexts-1] = l - 1
		for c := numContexts - 2; c >= 0; c-- {
			back[c] = back[c+1] - count[c+1]
		}
		median = make([]byte, numContexts)
		for i := range median {
			median[i] = medianNeutral
		}
	}

	var previous word
	var prevByte byte
	for i, cur := range src {
		p := previous
		if usePreviousByte {
			if median[p] >= prevByte {
				dst[front[p]] = cur
				front[p]++
			} else {
				dst[back[p]] = cur
				back[p]--
			}
			switch {
			case median[p] < prevByte:
				median[p]++
			case median[p] > prevByte:
				median[p]--
			}
			prevByte = byte(p)
		} else {
			dst[front[p]] = cur
			front[p]++
		}
		previous = cur
	}
}

// joinWords reverses separateWords. Because separateWords only reorders
// words without changing their values, the context histogram it used can be
// rebuilt by counting word values in src (the permuted buffer) and applying
// the same lastWord adjustment; walking the same cursor decisions in the
// same order then recovers the original order.
func joinWords(src, dst []word, lastWord word, usePreviousByte bool) {
	l := len(dst)

	var count [numContexts]int
	for _, w := range src {
		count[w]++
	}
	count[lastWord]--
	count[0]++

	var front [numContexts]int
	for c := 1; c < numContexts; c++ {
		front[c] = front[c-1] + count[c-1]
	}

	var back []int
	var median []byte
	if usePreviousByte {
		back = make([]int, numContexts)
		back[numContexts-1] = l - 1
		for c := numContexts - 2; c >= 0; c-- {
			back[c] = back[c+1] - count[c+1]
		}
		median = make([]byte, numContexts)
		for i := range median {
			median[i] = medianNeutral
		}
	}

	var previous word
	var prevByte byte
	for i := 0; i < l; i++ {
		p := previous
		var cur word
		if usePreviousByte {
			if median[p] >= prevByte {
				cur = src[front[p]]
				front[p]++
			} else {
				cur = src[back[p]]
				back[p]--
			}
			switch {
			case median[p] < prevByte:
				median[p]++
			case median[p] > prevByte:
				median[p]--
			}
			prevByte = byte(p)
		} else {
			cur = src[front[p]]
			front[p]++
		}
		dst[i] = cur
		previous = cur
	}
}
