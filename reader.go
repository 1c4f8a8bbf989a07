// Copyright 2024, The srcomp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package srcomp

import (
	"hash/crc32"
	"io"

	"github.com/dsnet/golib/hashutil"
)

// Reader decompresses a stream written by Writer. NewReader reads the file
// header eagerly; Read then decodes one block at a time as needed.
type Reader struct {
	r      io.Reader
	header FileHeader

	pending []byte
	eof     bool

	combinedCRC uint32
	combinedLen int64

	err error
}

// NewReader reads and validates a FileHeader from r and returns a Reader
// bound to the rest of the stream.
func NewReader(r io.Reader) (*Reader, error) {
	h, err := readFileHeader(r)
	if err != nil {
		return nil, err
	}
	return &Reader{r: r, header: h}, nil
}

// Header reports the parameters the stream was compressed with.
func (zr *Reader) Header() FileHeader { return zr.header }

// Checksum reports the running CRC-32 (IEEE) of every byte decoded so far,
// combined block by block the same way Writer.Checksum does.
func (zr *Reader) Checksum() uint32 { return zr.combinedCRC }

// Read decodes blocks as needed to satisfy p, returning io.EOF once the
// stream is exhausted.
func (zr *Reader) Read(p []byte) (n int, err error) {
	if zr.err != nil {
		return 0, zr.err
	}
	defer errRecover(&zr.err)

	for len(p) > 0 {
		if len(zr.pending) == 0 {
			if zr.eof {
				break
			}
			if !zr.nextBlock() {
				zr.eof = true
				break
			}
		}
		cnt := copy(p, zr.pending)
		zr.pending = zr.pending[cnt:]
		p = p[cnt:]
		n += cnt
	}
	if n == 0 && zr.eof {
		return 0, io.EOF
	}
	return n, nil
}

// nextBlock reads and decodes the next block into zr.pending, returning
// false on a clean end of stream.
func (zr *Reader) nextBlock() bool {
	bh, eof, err := readBlockHeader(zr.r)
	if err != nil {
		panic(err)
	}
	if eof {
		return false
	}
	if bh.compressedLength%4 != 0 {
		panic(errorf(CorruptBlock, "compressed length not element-aligned"))
	}

	l := int(bh.originalLength/2) + int(bh.originalLength%2)
	payload, err := readElements(zr.r, int(bh.compressedLength/4))
	if err != nil {
		panic(err)
	}

	words, err := decompressBlock(payload, word(bh.lastWord), bh.lastByte, l, zr.header.UsePreviousByte)
	if err != nil {
		panic(err)
	}

	data := make([]byte, 2*l)
	wordsToBytes(words, data)
	data = data[:bh.originalLength]

	checksum := crc32.ChecksumIEEE(data)
	if checksum != bh.checksum {
		panic(errorf(CorruptBlock, "checksum mismatch"))
	}
	zr.combinedCRC = hashutil.CombineCRC32(crc32.IEEE, zr.combinedCRC, checksum, int64(len(data)))
	zr.combinedLen += int64(len(data))

	zr.pending = data
	return true
}
