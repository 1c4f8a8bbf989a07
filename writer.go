// Copyright 2024, The srcomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package srcomp

import (
	"hash/crc32"
	"io"

	"github.com/dsnet/golib/hashutil"
)

// WriterConfig selects the file-header parameters a Writer encodes with.
type WriterConfig struct {
	// BlockSizeKB is the block size in kilobytes (1..65536). Zero defaults
	// to 1.
	BlockSizeKB uint32

	// UsePreviousByte enables the word-context permutation's previous-byte
	// median heuristic on every block.
	UsePreviousByte bool
}

// Writer compresses data written to it and writes the framed result to an
// underlying io.Writer. The file header is written eagerly by NewWriter;
// callers must call Close to flush the final, possibly short, block.
type Writer struct {
	w               io.Writer
	blockSize       int
	usePreviousByte bool

	buf []byte

	combinedCRC uint32
	combinedLen int64

	err    error
	closed bool
}

// NewWriter writes cfg as a FileHeader to w and returns a Writer ready to
// accept data.
func NewWriter(w io.Writer, cfg WriterConfig) (*Writer, error) {
	if cfg.BlockSizeKB == 0 {
		cfg.BlockSizeKB = minBlockSizeKB
	}
	fh := FileHeader{UsePreviousByte: cfg.UsePreviousByte, BlockSizeKB: cfg.BlockSizeKB}
	if err := writeFileHeader(w, fh); err != nil {
		return nil, err
	}
	return &Writer{
		w:               w,
		blockSize:       int(cfg.BlockSizeKB) * baseBlockSize,
		usePreviousByte: cfg.UsePreviousByte,
		buf:             make([]byte, 0, int(cfg.BlockSizeKB)*baseBlockSize),
	}, nil
}

// Write buffers p, emitting one block each time the configured block size
// is reached.
func (zw *Writer) Write(p []byte) (n int, err error) {
	if zw.err != nil {
		return 0, zw.err
	}
	defer errRecover(&zw.err)

	n = len(p)
	for len(p) > 0 {
		room := zw.blockSize - len(zw.buf)
		cnt := room
		if cnt > len(p) {
			cnt = len(p)
		}
		zw.buf = append(zw.buf, p[:cnt]...)
		p = p[cnt:]
		if len(zw.buf) == zw.blockSize {
			zw.flushBlock(zw.buf)
			zw.buf = zw.buf[:0]
		}
	}
	return n, zw.err
}

// Close flushes any buffered data as a final, possibly short, block. It is
// safe to call Close without a matching Write for an empty stream.
func (zw *Writer) Close() (err error) {
	if zw.closed {
		return zw.err
	}
	zw.closed = true
	if zw.err != nil {
		return zw.err
	}
	defer func() { err = zw.err }()
	defer errRecover(&zw.err)
	if len(zw.buf) > 0 {
		zw.flushBlock(zw.buf)
		zw.buf = zw.buf[:0]
	}
	return zw.err
}

// Checksum reports the running CRC-32 (IEEE) of every byte written so far,
// combined block by block via hashutil.CombineCRC32. It lets a caller embed
// a whole-stream digest alongside the file without buffering the input a
// second time.
func (zw *Writer) Checksum() uint32 { return zw.combinedCRC }

func (zw *Writer) flushBlock(data []byte) {
	origLen := uint64(len(data))

	padded := data
	if len(data)%2 != 0 {
		padded = make([]byte, len(data)+1)
		copy(padded, data)
	}
	words := bytesToWords(padded)

	payload, lastByte := compressBlock(words, zw.usePreviousByte)
	lastWord := words[len(words)-1]

	checksum := crc32.ChecksumIEEE(data)
	zw.combinedCRC = hashutil.CombineCRC32(crc32.IEEE, zw.combinedCRC, checksum, int64(len(data)))
	zw.combinedLen += int64(len(data))

	bh := blockHeader{
		originalLength:   origLen,
		compressedLength: uint64(4 * len(payload)),
		checksum:         checksum,
		lastWord:         uint16(lastWord),
		lastByte:         lastByte,
	}
	if err := writeBlockHeader(zw.w, bh); err != nil {
		panic(err)
	}
	if err := writeElements(zw.w, payload); err != nil {
		panic(err)
	}
}
