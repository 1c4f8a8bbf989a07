// Copyright 2024, The srcomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bitio

import "testing"

func TestWriteUnaryVector(t *testing.T) {
	data := make([]uint32, 4)
	var bb BitBuffer
	bb.Init(data)

	for _, n := range []uint{7, 0, 6, 16, 94} {
		bb.WriteUnary(n)
	}
	bb.Flush()

	want := []uint32{0x01810000, 0x80000000, 0x00000000, 0x00000001}
	for i, w := range want {
		if data[i] != w {
			t.Errorf("element %d: got %#08x, want %#08x", i, data[i], w)
		}
	}
}

func TestUnaryRoundTrip(t *testing.T) {
	// Unary codes for 0..10000 take sum(n+1) = 10001*10002/2 bits in total.
	data := make([]uint32, 10001*10002/2/ElementBits+2)
	var bb BitBuffer
	bb.Init(data)
	for n := uint(0); n <= 10000; n++ {
		bb.WriteUnary(n)
	}
	bb.Flush()

	bb.Reset()
	for n := uint(0); n <= 10000; n++ {
		got, err := bb.ReadUnary()
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if got != n {
			t.Fatalf("n=%d: got %d", n, got)
		}
	}
}

func TestWriteEGVector(t *testing.T) {
	data := make([]uint32, 1)
	var bb BitBuffer
	bb.Init(data)

	for _, n := range []uint32{1, 3, 15} {
		if err := bb.WriteEG(n); err != nil {
			t.Fatalf("WriteEG(%d): unexpected error: %v", n, err)
		}
	}
	bb.Flush()

	if want := uint32(0xB1E00000); data[0] != want {
		t.Errorf("got %#08x, want %#08x", data[0], want)
	}

	bb.Reset()
	for _, want := range []uint32{1, 3, 15} {
		got, err := bb.ReadEG()
		if err != nil {
			t.Fatalf("ReadEG: unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("got %d, want %d", got, want)
		}
	}
}

func TestEGRoundTrip(t *testing.T) {
	data := make([]uint32, 1<<16)
	var bb BitBuffer
	bb.Init(data)
	for n := uint32(1); n <= 65536; n++ {
		if err := bb.WriteEG(n); err != nil {
			t.Fatalf("WriteEG(%d): unexpected error: %v", n, err)
		}
	}
	bb.Flush()

	bb.Reset()
	for n := uint32(1); n <= 65536; n++ {
		got, err := bb.ReadEG()
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if got != n {
			t.Fatalf("n=%d: got %d", n, got)
		}
	}
}

func TestWriteEGZero(t *testing.T) {
	var bb BitBuffer
	bb.Init(make([]uint32, 1))
	if err := bb.WriteEG(0); err != ErrOutOfRange {
		t.Errorf("got %v, want ErrOutOfRange", err)
	}
}

func TestGammaTableMatchesArithmeticPath(t *testing.T) {
	for n := uint32(1); n <= maxGammaTable; n++ {
		data := make([]uint32, 2)

		var tableBB BitBuffer
		tableBB.Init(data)
		if err := tableBB.WriteEG(n); err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		tableBB.Flush()

		var arithBB BitBuffer
		arithData := make([]uint32, 2)
		arithBB.Init(arithData)
		arithBB.WriteUnary(uint(31 - leadingZeros32(n)))
		if n > 1 {
			shift := uint(31 - leadingZeros32(n))
			arithBB.WriteNBits(shift, n&((1<<shift)-1))
		}
		arithBB.Flush()

		if data[0] != arithData[0] {
			t.Errorf("n=%d: table path %#08x != arithmetic path %#08x", n, data[0], arithData[0])
		}
	}
}

func leadingZeros32(n uint32) uint {
	var c uint
	for i := 31; i >= 0; i-- {
		if n&(1<<uint(i)) != 0 {
			break
		}
		c++
	}
	return c
}
