// Copyright 2024, The srcomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bitio

import "math/bits"

// WriteUnary writes n zero bits followed by a single terminating one bit.
func (b *BitBuffer) WriteUnary(n uint) {
	for ; n > 0; n-- {
		b.WriteBit(0)
	}
	b.WriteBit(1)
}

// ReadUnary counts zero bits up to and including the terminating one bit
// and returns the count.
func (b *BitBuffer) ReadUnary() (uint, error) {
	var n uint
	for {
		v, err := b.ReadBit()
		if err != nil {
			return 0, err
		}
		if v == 1 {
			return n, nil
		}
		n++
	}
}

// gammaTable holds the precomputed (bit pattern, bit length) encoding of
// Elias-gamma codes for every n in [1, maxGammaTable], indexed by n-1.
// Entry i encodes i+1 the same way the arithmetic path in WriteEG would,
// letting WriteEG skip the unary/remainder split for small values.
//
// The table is capped one below 1<<16: at n == 1<<16 the code is 33 bits
// wide (e=16, 2e+1=33), which WriteNBits cannot deliver in a single call.
// That one value, and anything larger, falls through to the arithmetic path.
const maxGammaTable = 1<<16 - 1

var gammaTable [maxGammaTable]struct {
	pattern uint32
	length  uint
}

func init() {
	// n's own binary form is "1" followed by e remainder bits, i.e. exactly
	// e+1 bits. Zero-extending that to 2e+1 bits reproduces the Elias-gamma
	// layout directly: e leading zeros, the implicit 1, then the remainder.
	for i := range gammaTable {
		n := uint32(i + 1)
		e := uint(bits.Len32(n)) - 1
		gammaTable[i].pattern = n
		gammaTable[i].length = 2*e + 1
	}
}

// WriteEG writes n >= 1 using Elias-gamma coding: e = floor(log2(n)) zero
// bits, a one bit, then the low e bits of n.
func (b *BitBuffer) WriteEG(n uint32) error {
	if n == 0 {
		return ErrOutOfRange
	}
	if n <= maxGammaTable {
		t := gammaTable[n-1]
		b.WriteNBits(t.length, t.pattern)
		return nil
	}
	e := uint(bits.Len32(n)) - 1
	b.WriteUnary(e)
	if e > 0 {
		b.WriteNBits(e, n&mask(e))
	}
	return nil
}

// ReadEG reads an Elias-gamma coded value.
func (b *BitBuffer) ReadEG() (uint32, error) {
	e, err := b.ReadUnary()
	if err != nil {
		return 0, err
	}
	if e > ElementBits {
		return 0, ErrOutOfRange
	}
	var r uint32
	if e > 0 {
		r, err = b.ReadNBits(e)
		if err != nil {
			return 0, err
		}
	}
	return (1 << e) | r, nil
}
