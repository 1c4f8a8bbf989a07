// Copyright 2024, The srcomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package srcomp

import (
	"encoding/binary"
	"io"
)

// fileHeaderSize is the on-wire size, in bytes, of a FileHeader.
const fileHeaderSize = 6

// FileHeader describes a whole compressed stream: the format version and the
// parameters every block in the stream was encoded with.
type FileHeader struct {
	// UsePreviousByte reports whether blocks use the word-context
	// permutation's previous-byte median heuristic.
	UsePreviousByte bool

	// BlockSizeKB is the nominal block size, in kilobytes, that the
	// compressor read per block (1..65536). The final block of a stream may
	// be shorter.
	//
	// The value is held here as a uint32 so the full documented range fits
	// in memory, but the wire field is only 2 bytes wide: 65536 is the one
	// value that does not fit a raw uint16, so it is encoded as 0 and
	// decoded back on read (0 is not otherwise a usable block size).
	BlockSizeKB uint32
}

func (h FileHeader) validate() error {
	if h.BlockSizeKB < minBlockSizeKB || h.BlockSizeKB > maxBlockSizeKB {
		return errorf(InvalidArgument, "block size out of range")
	}
	return nil
}

func writeFileHeader(w io.Writer, h FileHeader) error {
	if err := h.validate(); err != nil {
		return err
	}
	var buf [fileHeaderSize]byte
	buf[0], buf[1] = magic0, magic1
	buf[2] = formatVersion
	if h.UsePreviousByte {
		buf[3] = 1
	}
	wire := uint16(h.BlockSizeKB)
	if h.BlockSizeKB == maxBlockSizeKB {
		wire = 0
	}
	binary.LittleEndian.PutUint16(buf[4:6], wire)
	_, err := w.Write(buf[:])
	return err
}

func readFileHeader(r io.Reader) (FileHeader, error) {
	var buf [fileHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return FileHeader{}, errorf(Truncated, "short file header")
	}
	if buf[0] != magic0 || buf[1] != magic1 {
		return FileHeader{}, errorf(BadMagic, "missing \"SR\" magic")
	}
	if buf[2] != formatVersion {
		return FileHeader{}, errorf(BadVersion, "unsupported format version")
	}
	wire := binary.LittleEndian.Uint16(buf[4:6])
	blockSizeKB := uint32(wire)
	if wire == 0 {
		blockSizeKB = maxBlockSizeKB
	}
	h := FileHeader{
		UsePreviousByte: buf[3] != 0,
		BlockSizeKB:     blockSizeKB,
	}
	if err := h.validate(); err != nil {
		return FileHeader{}, err
	}
	return h, nil
}

// blockHeaderSize is the on-wire size, in bytes, of a blockHeader.
const blockHeaderSize = 8 + 8 + 4 + 2 + 1

// blockHeader frames one block's payload: enough to decode and validate it
// without touching neighboring blocks.
type blockHeader struct {
	originalLength   uint64
	compressedLength uint64
	checksum         uint32
	lastWord         uint16
	lastByte         uint8
}

func writeBlockHeader(w io.Writer, h blockHeader) error {
	var buf [blockHeaderSize]byte
	binary.LittleEndian.PutUint64(buf[0:8], h.originalLength)
	binary.LittleEndian.PutUint64(buf[8:16], h.compressedLength)
	binary.LittleEndian.PutUint32(buf[16:20], h.checksum)
	binary.LittleEndian.PutUint16(buf[20:22], h.lastWord)
	buf[22] = h.lastByte
	_, err := w.Write(buf[:])
	return err
}

// readBlockHeader reads one blockHeader. A clean EOF before any byte of the
// header is read signals the end of the stream (eof == true, err == nil);
// anything short of a full header thereafter is Truncated.
func readBlockHeader(r io.Reader) (h blockHeader, eof bool, err error) {
	var buf [blockHeaderSize]byte
	n, rerr := io.ReadFull(r, buf[:])
	if rerr == io.EOF && n == 0 {
		return blockHeader{}, true, nil
	}
	if rerr != nil {
		return blockHeader{}, false, errorf(Truncated, "short block header")
	}
	h.originalLength = binary.LittleEndian.Uint64(buf[0:8])
	h.compressedLength = binary.LittleEndian.Uint64(buf[8:16])
	h.checksum = binary.LittleEndian.Uint32(buf[16:20])
	h.lastWord = binary.LittleEndian.Uint16(buf[20:22])
	h.lastByte = buf[22]
	return h, false, nil
}

// writeElements serializes data as little-endian 32-bit code elements.
func writeElements(w io.Writer, data []uint32) error {
	buf := make([]byte, 4*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[4*i:], v)
	}
	_, err := w.Write(buf)
	return err
}

// readElements reads exactly n little-endian 32-bit code elements.
func readElements(r io.Reader, n int) ([]uint32, error) {
	buf := make([]byte, 4*n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errorf(Truncated, "short block payload")
	}
	data := make([]uint32, n)
	for i := range data {
		data[i] = binary.LittleEndian.Uint32(buf[4*i:])
	}
	return data, nil
}
