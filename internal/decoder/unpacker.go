// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package decoder

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"
)

// Compression is an enumeration of the compressions an augmented diff
// document may be stored with.
type Compression int

const (
	// AUTO detects the compression from the leading bytes of the document.
	AUTO Compression = iota
	RAW
	GZIP
	ZLIB
	ZSTD
	LZ4
	XZ
)

var compressionNames = [...]string{
	AUTO: "auto",
	RAW:  "raw",
	GZIP: "gzip",
	ZLIB: "zlib",
	ZSTD: "zstd",
	LZ4:  "lz4",
	XZ:   "xz",
}

func (c Compression) String() string {
	if c < 0 || int(c) >= len(compressionNames) {
		return "unknown"
	}

	return compressionNames[c]
}

// ParseCompression returns the Compression named name.
func ParseCompression(name string) (Compression, error) {
	for c, n := range compressionNames {
		if n == name {
			return Compression(c), nil
		}
	}

	return 0, fmt.Errorf("%w: %s", ErrUnknownCompressionType, name)
}

var ErrUnknownCompressionType = errors.New("unknown compression type")

const sniffSize = 6

var magics = []struct {
	compression Compression
	magic       []byte
}{
	{GZIP, []byte{0x1f, 0x8b}},
	{ZSTD, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{LZ4, []byte{0x04, 0x22, 0x4d, 0x18}},
	{XZ, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}},
}

// Detect guesses the compression of a document from its leading bytes.
// Anything unrecognized is assumed to be raw XML.
func Detect(head []byte) Compression {
	for _, m := range magics {
		if bytes.HasPrefix(head, m.magic) {
			return m.compression
		}
	}

	// RFC 1950: deflate method, header checksum a multiple of 31
	if len(head) >= 2 && head[0]&0x0f == 8 && (uint16(head[0])<<8|uint16(head[1]))%31 == 0 {
		return ZLIB
	}

	return RAW
}

// Unpack wraps rdr with the decompressor for c.  Closing the returned reader
// does not close rdr.
func Unpack(rdr io.Reader, c Compression) (io.ReadCloser, error) {
	if c == AUTO {
		br := bufio.NewReader(rdr)

		head, err := br.Peek(sniffSize)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("unable to sniff compression: %w", err)
		}

		c = Detect(head)
		rdr = br
	}

	var factory func(r io.Reader) (io.ReadCloser, error)

	switch c {
	case RAW:
		return io.NopCloser(rdr), nil
	case GZIP:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			return gzip.NewReader(r)
		}
	case ZLIB:
		factory = zlib.NewReader
	case ZSTD:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			d, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}

			return d.IOReadCloser(), nil
		}
	case LZ4:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			return io.NopCloser(lz4.NewReader(r)), nil
		}
	case XZ:
		factory = func(r io.Reader) (io.ReadCloser, error) {
			x, err := xz.NewReader(r)
			if err != nil {
				return nil, err
			}

			return io.NopCloser(x), nil
		}
	default:
		return nil, ErrUnknownCompressionType
	}

	rc, err := factory(rdr)
	if err != nil {
		return nil, fmt.Errorf("unpacker factory error: %w", err)
	}

	return rc, nil
}
